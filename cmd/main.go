package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"ticket-app/internal/config"
	"ticket-app/internal/router"
	"ticket-app/internal/services"
	"ticket-app/internal/storage"
	"ticket-app/internal/utils"
)

func main() {
	baseCtx := context.Background()
	ctx, shutdownManager := utils.NewShutdownManager(baseCtx)
	shutdownManager.StartListening()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	store, err := newStorage(cfg)
	if err != nil {
		log.Fatal("Failed to initialize storage:", err)
	}
	shutdownManager.Register(func(ctx context.Context) error {
		log.Println("[SHUTDOWN] Closing storage...")
		return store.Close()
	})

	sessions := services.NewSessionService(store, cfg.AuthDelay)
	tickets := services.NewTicketService(store)

	// Hydrate state from whatever the previous run persisted.
	sessions.CheckAuth(ctx)
	tickets.LoadTickets(ctx)

	routes, err := router.LoadRoutes(cfg.RoutesFile)
	if err != nil {
		log.Fatal("Failed to load routes:", err)
	}

	engine := router.Setup(routes, store, sessions, tickets)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: engine,
	}

	go func() {
		log.Println("Ticket app running on :" + cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	shutdownManager.Register(func(ctx context.Context) error {
		log.Println("[SHUTDOWN] Shutting down HTTP server...")
		return server.Shutdown(ctx)
	})

	select {}
}

func newStorage(cfg *config.Config) (storage.Storage, error) {
	switch cfg.StorageDriver {
	case "memory":
		return storage.NewMemoryStorage(), nil
	case "file":
		return storage.NewFileStorage(cfg.DataDir)
	case "redis":
		return storage.NewRedisStorage(cfg.RedisURL)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
