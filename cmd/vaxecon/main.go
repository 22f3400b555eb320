package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/JonMunkholm/vaxecon/internal/config"
	"github.com/JonMunkholm/vaxecon/internal/core"
	_ "github.com/JonMunkholm/vaxecon/internal/core/tables" // Register all sources
	"github.com/JonMunkholm/vaxecon/internal/logging"
	"github.com/JonMunkholm/vaxecon/internal/pipeline"
	"github.com/JonMunkholm/vaxecon/internal/resolve"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		return 1
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = logging.WithRunID(ctx, "")
	logger := logging.FromContext(ctx)

	logger.Info("configuration loaded", "config", cfg.String())
	logger.Info("sources registered", "count", core.SourceCount())

	resolver, err := resolve.New(cfg.Resolver.CountriesFile, cfg.Resolver.CacheSize)
	if err != nil {
		logger.Error("failed to build country resolver", "error", err)
		return 1
	}

	res, err := pipeline.Run(ctx, cfg, resolver)
	if err != nil {
		uerr := core.MapError(err)
		logger.Error("run failed", "code", uerr.Code, "error", err)
		fmt.Fprintln(os.Stderr, uerr.String())
		return 1
	}

	hits, misses := resolver.Stats()
	logger.Debug("resolver cache", "hits", hits, "misses", misses)

	fmt.Print(res.Audit.Table())
	fmt.Println(res.Description)
	return 0
}
