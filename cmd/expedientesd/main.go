package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/EliasGomez98/PDF-Scrapping/internal/batch"
	"github.com/EliasGomez98/PDF-Scrapping/internal/common"
	"github.com/EliasGomez98/PDF-Scrapping/internal/export"
	"github.com/EliasGomez98/PDF-Scrapping/internal/pdftext"
	"github.com/EliasGomez98/PDF-Scrapping/internal/registry"
	"github.com/EliasGomez98/PDF-Scrapping/internal/server"
)

func main() {
	configPath := flag.String("config", "", "path to TOML config (default expedientes.toml)")
	flag.Parse()

	cfg := common.Load(*configPath)

	var lvl slog.Level
	switch cfg.Log.Level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	reg, err := registry.FromConfig(cfg.Registry)
	if err != nil {
		logger.Error("invalid field registry", "err", err)
		os.Exit(1)
	}
	logger.Info("registry ready", "fields", reg.Len())

	exportSvc, err := export.NewService(cfg.Export, logger)
	if err != nil {
		// Export is the only component allowed to fail fatally, and only
		// here at startup.
		logger.Error("spreadsheet engine unavailable", "err", err)
		os.Exit(1)
	}

	extractor := pdftext.NewExtractor(logger)
	proc := batch.NewProcessor(extractor, reg, logger)
	srv := server.New(proc, exportSvc, cfg, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	httpSrv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("http serving", "addr", cfg.Server.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http serve failed", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "err", err)
	}
	logger.Info("stopped")
}
