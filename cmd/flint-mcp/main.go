// Package main provides the entry point for the flint MCP server.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/nfriedel/flint/internal/config"
	"github.com/nfriedel/flint/internal/db"
	"github.com/nfriedel/flint/internal/llm"
	"github.com/nfriedel/flint/internal/metrics"
	"github.com/nfriedel/flint/internal/random"
	"github.com/nfriedel/flint/internal/server"
	"github.com/nfriedel/flint/internal/service"
	"github.com/nfriedel/flint/internal/tools"
)

const version = "0.1.0"

func main() {
	cfg := config.Load()

	// Stdout carries the protocol, logs go to stderr and the log file.
	logger, cleanup := config.SetupLogger(cfg.LogFile, cfg.LogLevel, false)
	defer cleanup()

	logger.Info("flint-mcp starting",
		"version", version,
		"surrealdb_url", cfg.SurrealDBURL,
		"vault", cfg.VaultDir,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	dbCfg := db.Config{
		URL:       cfg.SurrealDBURL,
		Namespace: cfg.SurrealDBNamespace,
		Database:  cfg.SurrealDBDatabase,
		Username:  cfg.SurrealDBUser,
		Password:  cfg.SurrealDBPass,
		AuthLevel: cfg.SurrealDBAuthLevel,
	}

	dbClient, err := db.NewClient(ctx, dbCfg, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer func() {
		logger.Info("closing database connection")
		_ = dbClient.Close(ctx)
	}()

	if err := dbClient.InitSchema(ctx); err != nil {
		logger.Error("failed to initialize database schema", "error", err)
		os.Exit(1)
	}

	collector := metrics.NewCollector()

	rng, err := random.NewRand()
	if err != nil {
		logger.Error("failed to seed draw source", "error", err)
		os.Exit(1)
	}

	// The muse is optional, draw_pair falls back to canned questions.
	muse, err := llm.NewMuse(cfg, collector)
	if err != nil {
		logger.Warn("muse unavailable", "error", err)
		muse = nil
	}

	strike := service.NewStrikeService(dbClient, cfg.VaultDir, rng, muse, collector)
	if err := strike.Start(ctx); err != nil {
		logger.Error("failed to start strike session", "error", err)
		os.Exit(1)
	}

	srv := server.New(version, logger)
	srv.Setup()

	deps := &tools.Dependencies{
		Strike:    strike,
		Collector: collector,
		Logger:    logger,
	}
	tools.RegisterAll(srv.MCPServer(), deps)
	logger.Info("tools registered", "count", 7)

	logger.Info("server ready, awaiting connections")

	if err := srv.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}

	snap := collector.Snapshot()
	logOp := func(name string, op *metrics.OperationSnapshot) {
		if op == nil {
			return
		}
		logger.Info("operation stats", "op", name, "count", op.Count, "avg_ms", op.AvgTimeMs)
	}
	logOp("draw", snap.Draw)
	logOp("spark_write", snap.SparkWrite)
	logOp("muse", snap.Muse)
	logOp("db_query", snap.DBQuery)

	logger.Info("shutdown complete", "uptime_seconds", snap.UptimeSeconds)
}
