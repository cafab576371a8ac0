package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"prep-backend/internal/analyses"
	"prep-backend/internal/proof"
	"prep-backend/internal/services/health"
	"prep-backend/internal/shared/config"
	"prep-backend/internal/shared/server"
	"prep-backend/internal/shared/storage/db"
	"prep-backend/internal/shared/storage/kv"
	"prep-backend/internal/shared/storage/object"
	localstore "prep-backend/internal/shared/storage/object/local"
	s3store "prep-backend/internal/shared/storage/object/s3"
)

// App holds shared dependencies.
type App struct {
	Config          config.Config
	Router          *gin.Engine
	DB              *sql.DB
	KV              kv.Store
	Archive         object.Store
	History         *analyses.History
	AnalysesService *analyses.Service
	AnalysisHandler *analyses.Handler
	ProofHandler    *proof.Handler
	Health          *health.Service
}

// Build prepares dependencies. Router is only wired when withRouter is set.
func Build(ctx context.Context, cfg config.Config, withRouter bool) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = config.StoreLocal
	}

	store, sqlDB, err := buildKV(ctx, &cfg)
	if err != nil {
		return nil, err
	}

	archive, err := buildArchive(ctx, cfg)
	if err != nil {
		closeDB(sqlDB)
		return nil, err
	}

	history := analyses.NewHistory(store)
	svc := analyses.NewService(history, archive)

	app := &App{
		Config:          cfg,
		DB:              sqlDB,
		KV:              store,
		Archive:         archive,
		History:         history,
		AnalysesService: svc,
		AnalysisHandler: analyses.NewHandler(svc),
		ProofHandler:    proof.NewHandler(store),
		Health:          health.NewService(store, cfg.KVBackend),
	}

	if withRouter {
		app.Router = server.NewRouter(server.RouterDeps{
			Config:          app.Config,
			AnalysisHandler: app.AnalysisHandler,
			ProofHandler:    app.ProofHandler,
			Health:          app.Health,
		})
	}
	return app, nil
}

// Close releases the database connection, if any.
func (a *App) Close() {
	if a != nil {
		closeDB(a.DB)
	}
}

// buildKV opens the configured backend. Dev-like environments fall back to
// memory when the backend cannot be opened; cfg.KVBackend records the result.
func buildKV(ctx context.Context, cfg *config.Config) (kv.Store, *sql.DB, error) {
	store, sqlDB, err := openKV(ctx, *cfg)
	if err == nil {
		return store, sqlDB, nil
	}
	if isDevLike(cfg.Env) {
		log.Printf("bootstrap: %s kv backend unavailable; using in-memory store: %v", cfg.KVBackend, err)
		cfg.KVBackend = config.KVMemory
		return kv.NewMemoryStore(), nil, nil
	}
	return nil, nil, err
}

func openKV(ctx context.Context, cfg config.Config) (kv.Store, *sql.DB, error) {
	switch cfg.KVBackend {
	case config.KVMemory:
		return kv.NewMemoryStore(), nil, nil
	case config.KVSQLite:
		sqlDB, err := db.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		if err := db.RunMigrations(ctx, sqlDB, db.DialectSQLite); err != nil {
			closeDB(sqlDB)
			return nil, nil, err
		}
		return &kv.SQLiteStore{DB: sqlDB, Namespace: cfg.KVNamespace}, sqlDB, nil
	case config.KVPostgres:
		if strings.TrimSpace(cfg.DatabaseURL) == "" {
			return nil, nil, fmt.Errorf("DATABASE_URL is required for the postgres kv backend")
		}
		opts := db.OptionsFromEnv(db.DefaultServerOptions())
		sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
		if err != nil {
			return nil, nil, err
		}
		if err := db.RunMigrations(ctx, sqlDB, db.DialectPostgres); err != nil {
			closeDB(sqlDB)
			return nil, nil, err
		}
		return &kv.PGStore{DB: sqlDB, Namespace: cfg.KVNamespace}, sqlDB, nil
	default:
		return nil, nil, fmt.Errorf("unknown kv backend %q", cfg.KVBackend)
	}
}

func buildArchive(ctx context.Context, cfg config.Config) (object.Store, error) {
	switch cfg.ObjectStoreType {
	case config.StoreNone:
		return nil, nil
	case config.StoreS3:
		if strings.TrimSpace(cfg.AWSRegion) == "" || strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires AWS_REGION and S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func closeDB(sqlDB *sql.DB) {
	if sqlDB == nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Printf("bootstrap: close database: %v", err)
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
