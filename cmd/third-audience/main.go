// Command third-audience serves a store catalog as AI-readable Markdown
// and XML, either as a live HTTP service or as a static export.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/juneandco/third-audience/internal/cache"
	"github.com/juneandco/third-audience/internal/config"
	"github.com/juneandco/third-audience/internal/export"
	"github.com/juneandco/third-audience/internal/htmlmd"
	"github.com/juneandco/third-audience/internal/metrics"
	"github.com/juneandco/third-audience/internal/render"
	"github.com/juneandco/third-audience/internal/server"
	"github.com/juneandco/third-audience/internal/service"
	"github.com/juneandco/third-audience/internal/shopify"
)

var CLI struct {
	Config  string `short:"c" help:"Configuration file path" default:"config.yaml"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Serve struct {
		Addr string `short:"a" help:"Listen address (overrides config)"`
	} `cmd:"" help:"Serve AI-readable store content over HTTP"`

	Export struct {
		Output string `short:"o" help:"Output directory (overrides config)"`
	} `cmd:"" help:"Export the full document set as static files"`

	Init struct {
		Force bool `help:"Overwrite existing configuration file"`
	} `cmd:"" help:"Write a starter configuration file"`
}

func main() {
	ctx := kong.Parse(&CLI)

	if ctx.Command() == "init" {
		if err := config.WriteStarter(CLI.Config, CLI.Init.Force); err != nil {
			fmt.Fprintf(os.Stderr, "init failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", CLI.Config)
		return
	}

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Logging, CLI.Verbose)
	slog.SetDefault(logger)

	switch ctx.Command() {
	case "serve":
		if err := runServe(cfg, logger); err != nil {
			logger.Error("serve failed", "error", err)
			os.Exit(1)
		}
	case "export":
		if err := runExport(cfg, logger); err != nil {
			logger.Error("export failed", "error", err)
			os.Exit(1)
		}
	}
}

func newLogger(cfg config.LoggingConfig, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(handler)
}

func runServe(cfg *config.Config, logger *slog.Logger) error {
	recorder := metrics.NewPrometheusRecorder()
	source := metrics.InstrumentSource(shopify.New(cfg.Store.Domain, cfg.Store.Token, nil), recorder)
	renderer := render.New(cfg.Store.PublicURL, cfg.Store.Currency, htmlmd.New())
	contentCache := cache.New(cfg.Cache.Capacity, cfg.Cache.TTL.Std())
	svc := service.New(source, contentCache, renderer, recorder, logger)

	srv := server.New(serveAddr(cfg), svc, logger, server.Options{
		MetricsHandler: recorder.Handler(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.Start(ctx)
}

func serveAddr(cfg *config.Config) string {
	if CLI.Serve.Addr != "" {
		return CLI.Serve.Addr
	}
	return cfg.Server.Addr
}

func runExport(cfg *config.Config, logger *slog.Logger) error {
	outDir := cfg.Export.Output
	if CLI.Export.Output != "" {
		outDir = CLI.Export.Output
	}

	source := shopify.New(cfg.Store.Domain, cfg.Store.Token, nil)
	renderer := render.New(cfg.Store.PublicURL, cfg.Store.Currency, htmlmd.New())
	exporter := export.New(source, renderer, outDir, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary, err := exporter.Run(ctx)
	if err != nil {
		return err
	}
	for _, item := range summary.Failures() {
		logger.Warn("document not exported", "path", item.Path, "error", item.Err)
	}
	return nil
}
