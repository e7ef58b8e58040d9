package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/alecgard/quill/internal/config"
	"github.com/alecgard/quill/internal/ledger"
	"github.com/alecgard/quill/internal/report"
	"github.com/spf13/cobra"
)

var reportMonth string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the API usage report from the ledger file",
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportMonth, "month", "", "month to report in YYYY-MM format (default: current month)")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	setupLogging()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	if reportMonth != "" {
		if _, err := time.Parse("2006-01", reportMonth); err != nil {
			return fmt.Errorf("invalid --month %q: want YYYY-MM", reportMonth)
		}
	}

	ldg, loadResult := ledger.Load(cfg.Budget.LedgerPath, cfg.Budget.MonthlyLimit)
	if loadResult.Recovered {
		slog.Warn("usage ledger reinitialized", "reason", loadResult.Reason)
	}

	fmt.Print(report.Render(ldg, reportMonth))
	return nil
}
