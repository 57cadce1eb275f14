// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/cord19-explorer/internal/logging"
	"github.com/pdiddy/cord19-explorer/internal/web"
	"github.com/pdiddy/cord19-explorer/pkg/types"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the interactive dashboard",
	Long: `Serve starts the web dashboard. The metadata file is loaded and cleaned
on the first request and kept for the life of the process. Pick a year
range and the sizes of the top journals and top words views in the
sidebar, and download the filtered rows as CSV or XLSX.

With --sqlite the dashboard reads a snapshot written by analyze instead
of the CSV.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", ":8501", "listen address")
	serveCmd.Flags().String("log-level", "info", "log level: debug, info, warn, error")
	serveCmd.Flags().String("log-format", "text", "log format: text or json")

	bindFlags(serveCmd.Flags(), map[string]string{
		"addr":       "addr",
		"log_level":  "log-level",
		"log_format": "log-format",
	})

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	var cfg types.ServerConfig
	if err := loadConfig(&cfg); err != nil {
		return err
	}
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	server, err := web.NewServer(cfg)
	if err != nil {
		return err
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	if err := server.Start(cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	slog.Info("server stopped")
	return nil
}
