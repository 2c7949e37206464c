package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/logscout/logscout/internal/config"
	"github.com/logscout/logscout/internal/knowledge"
	"github.com/logscout/logscout/internal/platform"
	"github.com/logscout/logscout/internal/server"
)

func main() {
	// Subcommand dispatch.
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "version":
			printVersion()
			return
		}
	}

	if err := run(); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func printVersion() {
	fmt.Fprintf(os.Stdout, "logscout %s (%s, %s)\n", server.Version, server.Commit, server.Built)
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Stdout carries the MCP stream, so logs go to stderr.
	setupLogging(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := platform.NewRegistry(platform.Credentials{
		Profile:         cfg.Profile,
		AccessKeyID:     cfg.AccessKeyID,
		SecretAccessKey: cfg.SecretAccessKey,
		SessionToken:    cfg.SessionToken,
	}, "logscout/"+server.Version)

	store, err := knowledge.NewStore()
	if err != nil {
		return fmt.Errorf("knowledge store: %w", err)
	}

	slog.Info("starting", "version", server.Version, "region", cfg.Region)

	srv := server.New(registry, store, cfg.Region, cfg.MaxWait())
	return srv.Run(ctx)
}

func setupLogging(level string) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}
