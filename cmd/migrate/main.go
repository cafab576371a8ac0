package main

// Run KV table migrations for the configured backend:
//   go run ./cmd/migrate

import (
	"context"
	"log"
	"os"

	"prep-backend/internal/shared/config"
	"prep-backend/internal/shared/storage/db"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	switch cfg.KVBackend {
	case config.KVPostgres:
		opts := db.OptionsFromEnv(db.DefaultMigrateOptions())
		sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
		if err != nil {
			log.Printf("failed to connect database: %v", err)
			os.Exit(1)
		}
		defer sqlDB.Close()
		if err := db.RunMigrations(ctx, sqlDB, db.DialectPostgres); err != nil {
			log.Printf("failed to run migrations: %v", err)
			os.Exit(1)
		}
	case config.KVSQLite:
		sqlDB, err := db.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			log.Printf("failed to open sqlite: %v", err)
			os.Exit(1)
		}
		defer sqlDB.Close()
		if err := db.RunMigrations(ctx, sqlDB, db.DialectSQLite); err != nil {
			log.Printf("failed to run migrations: %v", err)
			os.Exit(1)
		}
	default:
		log.Printf("kv backend %q has no migrations", cfg.KVBackend)
		return
	}
	log.Printf("migrations applied (kv=%s)", cfg.KVBackend)
}
