package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"log/slog"

	"github.com/alecgard/quill/internal/config"
	"github.com/alecgard/quill/internal/contact"
	"github.com/alecgard/quill/internal/draft"
	"github.com/alecgard/quill/internal/generate"
	"github.com/alecgard/quill/internal/ledger"
	"github.com/alecgard/quill/internal/pipeline"
	"github.com/alecgard/quill/internal/report"
	"github.com/alecgard/quill/internal/tracker"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Generate email drafts for every contact and report API usage",
	RunE:  runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	setupLogging()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ldg, loadResult := ledger.Load(cfg.Budget.LedgerPath, cfg.Budget.MonthlyLimit)
	if loadResult.Recovered {
		slog.Warn("usage ledger reinitialized", "reason", loadResult.Reason)
	}

	var trk *tracker.Tracker
	if cfg.Budget.TrackCosts {
		trk = tracker.New(ldg)
	}

	source, cleanup, err := buildSource(ctx, cfg)
	if err != nil {
		return err
	}
	if cleanup != nil {
		defer cleanup()
	}

	sink, err := buildSink(cfg)
	if err != nil {
		return err
	}

	if cfg.HuggingFace.APIKey == "" {
		return fmt.Errorf("hugging face api key is not set (huggingface.api_key or HUGGINGFACE_API_KEY)")
	}
	gen := generate.NewHuggingFaceClient(
		cfg.HuggingFace.APIKey,
		cfg.HuggingFace.BaseURL,
		cfg.Models.MaxNewTokens,
		cfg.Models.Temperature,
	)

	runner := &pipeline.Runner{
		Source:       source,
		Gen:          gen,
		Sink:         sink,
		Tracker:      trk,
		DefaultModel: cfg.Models.Default,
		PremiumModel: cfg.Models.Premium,
	}

	summary, err := runner.Run(ctx)
	if err != nil {
		return err
	}

	slog.Info("run finished",
		"contacts", summary.Contacts,
		"generated", summary.Generated,
		"drafted", summary.Drafted,
		"failed", summary.Failed,
	)

	if cfg.Budget.TrackCosts {
		fmt.Print(report.Render(ldg, ""))
	}

	return nil
}

// buildSource constructs the configured contact source. The returned cleanup
// closes the database pool when the postgres source is used.
func buildSource(ctx context.Context, cfg *config.Config) (contact.Source, func(), error) {
	switch cfg.Contacts.Source {
	case "sample":
		return contact.SampleSource{}, nil, nil

	case "csv":
		if cfg.Contacts.CSVPath == "" {
			return nil, nil, fmt.Errorf("contacts.csv_path is required for the csv source")
		}
		return &contact.CSVSource{Path: cfg.Contacts.CSVPath, Columns: cfg.Columns()}, nil, nil

	case "sheet":
		if cfg.Sheet.SpreadsheetID == "" {
			return nil, nil, fmt.Errorf("sheet.spreadsheet_id is required for the sheet source")
		}
		// A broken or empty sheet degrades to the sample contacts instead of
		// aborting the run.
		return &contact.FallbackSource{
			Primary: &contact.SheetSource{
				SpreadsheetID: cfg.Sheet.SpreadsheetID,
				Columns:       cfg.Columns(),
			},
			Fallback: contact.SampleSource{},
		}, nil, nil

	case "postgres":
		pool, err := pgxpool.New(ctx, cfg.Database.URL)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to database: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("pinging database: %w", err)
		}
		return contact.NewStore(pool), pool.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown contacts source %q (want sample, csv, sheet, or postgres)", cfg.Contacts.Source)
	}
}

func buildSink(cfg *config.Config) (draft.Sink, error) {
	switch cfg.Drafts.Sink {
	case "stdout":
		return &draft.WriterSink{W: os.Stdout}, nil

	case "gmail":
		if cfg.Gmail.AccessToken == "" {
			return nil, fmt.Errorf("gmail access token is not set (gmail.access_token or GMAIL_ACCESS_TOKEN)")
		}
		return draft.NewGmailSink(cfg.Gmail.AccessToken, cfg.Gmail.BaseURL), nil

	default:
		return nil, fmt.Errorf("unknown drafts sink %q (want stdout or gmail)", cfg.Drafts.Sink)
	}
}
