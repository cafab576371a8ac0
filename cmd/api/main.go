package main

import (
	"context"
	"log"

	"prep-backend/internal/bootstrap"
	"prep-backend/internal/shared/config"
	"prep-backend/internal/shared/server"
)

func main() {
	cfg := config.Load()
	app, err := bootstrap.Build(context.Background(), cfg, true)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	addr := server.Addr(app.Config.Port)
	log.Printf("Starting API server on %s (kv=%s, archive=%s)", addr, app.Config.KVBackend, app.Config.ObjectStoreType)

	if err := app.Router.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
