// Package main implements the entry point for the taskboard server, a
// task-management API with live updates over WebSocket.
package main

import (
	"context"
	"fmt"
	"log"

	"taskboard/internal/config"
	"taskboard/internal/platform/logger"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}

// run loads configuration, wires the application and serves until shutdown.
func run() error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logg := logger.Setup(cfg.Server.LogLevel)
	logg.Info("configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	db, err := openDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	if err := runMigrations(db); err != nil {
		_ = db.Close()
		return err
	}
	logg.Info("database migrated")

	rdb, err := openRedis(ctx, cfg.Redis)
	if err != nil {
		_ = db.Close()
		return err
	}

	app, err := newApplication(cfg, logg, db, rdb)
	if err != nil {
		_ = rdb.Close()
		_ = db.Close()
		return err
	}

	return app.startHTTPServer(ctx, app.setupRouter())
}
