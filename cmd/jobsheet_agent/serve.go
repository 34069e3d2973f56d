package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonathan/jobsheet-sync/internal/config"
	"github.com/jonathan/jobsheet-sync/internal/server"
	"github.com/jonathan/jobsheet-sync/internal/server/ratelimit"
	"github.com/spf13/cobra"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the trigger web page",
	Long:  `Start an HTTP server with a page that runs one sync pass per click (GET /process), a streaming variant (POST /process/stream) and a health check.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from PORT or 8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner, cleanup, err := newSyncer(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	srv, err := server.New(server.Config{
		Port:       cfg.Port,
		Syncer:     runner,
		RateLimit:  ratelimit.LoadConfig(),
		SheetLabel: cfg.SheetName,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start(ctx)
}
