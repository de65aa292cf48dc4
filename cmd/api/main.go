package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vkoval/automarket/internal/catalog"
	"github.com/vkoval/automarket/internal/config"
	"github.com/vkoval/automarket/internal/delivery/events"
	httpDelivery "github.com/vkoval/automarket/internal/delivery/http"
	"github.com/vkoval/automarket/internal/delivery/http/handler"
	"github.com/vkoval/automarket/internal/ledger"
	"github.com/vkoval/automarket/internal/pkg/cache"
	"github.com/vkoval/automarket/internal/pkg/database"
	"github.com/vkoval/automarket/internal/pkg/logger"
	"github.com/vkoval/automarket/internal/repository/postgres"
	redisRepo "github.com/vkoval/automarket/internal/repository/redis"

	_ "github.com/vkoval/automarket/docs"
)

// @title Automarket Catalog API
// @version 1.0
// @description Marketplace catalog engine: tiered catalog resolution with TTL caching, filtering and sorting, debounced search suggestions, and a cart/favorites ledger.

// @contact.name API Support
// @contact.url http://github.com/vkoval/automarket

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @tag.name Catalog
// @tag.description Catalog resolution, filtering and suggestions

// @tag.name Cart
// @tag.description Cart ledger endpoints

// @tag.name Favorites
// @tag.description Favorites ledger endpoints

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger := logger.New(cfg.Env)
	appLogger.Info("Starting Automarket Catalog API...")

	appLogger.Info("Connecting to PostgreSQL...")
	db, err := database.WaitForDB(cfg, 10, 2*time.Second)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", err)
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL successfully")

	appLogger.Info("Connecting to Redis...")
	redisClient, err := cache.WaitForRedis(cfg, 10, 2*time.Second)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", err)
	}
	defer redisClient.Close()
	appLogger.Info("Connected to Redis successfully")

	appLogger.Info("Connecting to NATS...")
	publisher, err := events.NewPublisher(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to create NATS publisher", err)
	}
	defer publisher.Close()

	snapshotCache := catalog.NewSnapshotCache(cfg.Catalog.SnapshotTTL)
	resolver := catalog.NewResolver(
		snapshotCache,
		postgres.NewProductSource(db),
		catalog.NewSeedSource(),
		cfg.Catalog.ResolveTimeout,
		publisher,
		appLogger,
	)
	engine := catalog.NewEngine()
	suggester := catalog.NewSuggester(cfg.Catalog.SuggestLimit, cfg.Catalog.SuggestDebounce)

	ledgerStore := redisRepo.NewLedgerStore(redisClient)
	ledgerService := ledger.NewService(ledgerStore, resolver, publisher, appLogger)

	catalogHandler := handler.NewCatalogHandler(resolver, engine, suggester, publisher, appLogger)
	cartHandler := handler.NewCartHandler(ledgerService, appLogger)

	router := httpDelivery.NewRouter(catalogHandler, cartHandler, cfg, appLogger)
	httpHandler := router.Setup()

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      httpHandler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		appLogger.Infof("HTTP server listening on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("HTTP server failed", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", err)
	}

	appLogger.Info("Server stopped gracefully")
}
