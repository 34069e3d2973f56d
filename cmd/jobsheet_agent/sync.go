package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonathan/jobsheet-sync/internal/config"
	"github.com/jonathan/jobsheet-sync/internal/observability"
	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run one sync pass and print the report",
	Long: `Read the sheet once, extract fields for every row that has a description
but no "Done" marker, write them back and mark the row done. Rows whose
extraction fails are left for the next pass. Ctrl-C stops before the next row.`,
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner, cleanup, err := newSyncer(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	report, runErr := runner.Run(ctx)
	observability.NewPrinter(cmd.OutOrStdout()).PrintReport(report)
	if runErr != nil {
		return runErr
	}
	if n := len(report.Failed); n > 0 {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "%d row(s) failed extraction and will be retried next run\n", n)
	}
	return nil
}
