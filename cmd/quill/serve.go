package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecgard/quill/internal/api"
	"github.com/alecgard/quill/internal/config"
	"github.com/alecgard/quill/internal/ledger"
	"github.com/alecgard/quill/internal/metrics"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the usage ledger over HTTP (usage JSON, report, metrics)",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	setupLogging()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	// The ledger file is owned by a single process: serve reads it once at
	// startup and exposes that state read-only.
	ldg, loadResult := ledger.Load(cfg.Budget.LedgerPath, cfg.Budget.MonthlyLimit)
	if loadResult.Recovered {
		slog.Warn("usage ledger reinitialized", "reason", loadResult.Reason)
	}
	slog.Info("usage ledger loaded", "path", ldg.Path(), "total_requests", ldg.TotalRequests())

	mtr := metrics.New(func() metrics.UsageSnapshot {
		month := ledger.CurrentMonthKey()
		usage := ldg.MonthlyUsage(month)
		return metrics.UsageSnapshot{
			Month:             month,
			MonthCost:         usage.Cost,
			MonthRequests:     usage.Requests,
			MonthOutputTokens: usage.Tokens.Output,
			RemainingBudget:   ldg.RemainingBudget(),
			BudgetLimit:       ldg.BudgetLimit(),
			TotalCost:         ldg.TotalCost(),
			TotalRequests:     ldg.TotalRequests(),
		}
	})

	router := api.NewRouter(api.RouterDeps{
		Ledger:       ldg,
		Metrics:      mtr,
		AdminKeyHash: cfg.Auth.AdminKeyHash,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-sigCh
	slog.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	return srv.Shutdown(shutdownCtx)
}
