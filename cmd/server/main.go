// Package main is the entry point for the StockPilot API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stockpilot/internal/domain/documents/purchase"
	"stockpilot/internal/domain/documents/purchasereturn"
	"stockpilot/internal/domain/documents/sale"
	"stockpilot/internal/domain/documents/salereturn"
	"stockpilot/internal/domain/documents/transfer"
	"stockpilot/internal/domain/movement"
	"stockpilot/internal/domain/registers/inventory"
	v1 "stockpilot/internal/infrastructure/http/v1"
	"stockpilot/internal/infrastructure/numerator"
	"stockpilot/internal/infrastructure/storage/postgres"
	"stockpilot/internal/infrastructure/storage/postgres/catalog_repo"
	"stockpilot/internal/infrastructure/storage/postgres/document_repo"
	"stockpilot/internal/infrastructure/storage/postgres/register_repo"
	"stockpilot/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting stockpilot server")

	// --- Database ---
	poolCfg := postgres.DefaultPoolConfig(mustEnv("DATABASE_URL"))
	if maxConns := getEnvInt("DB_MAX_CONNS", 0); maxConns > 0 {
		poolCfg.MaxConns = int32(maxConns)
	}

	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	txManager := postgres.NewTxManager(pool)

	// --- Repositories ---
	productRepo := catalog_repo.NewProductRepo(txManager)
	storeRepo := catalog_repo.NewStoreRepo(txManager)
	vendorRepo := catalog_repo.NewVendorRepo(txManager)
	customerRepo := catalog_repo.NewCustomerRepo(txManager)
	inventoryRepo := register_repo.NewInventoryRepo(txManager)

	purchaseRepo := document_repo.NewPurchaseRepo(txManager)
	saleRepo := document_repo.NewSaleRepo(txManager)
	transferRepo := document_repo.NewTransferRepo(txManager)
	purchaseReturnRepo := document_repo.NewPurchaseReturnRepo(txManager)
	saleReturnRepo := document_repo.NewSaleReturnRepo(txManager)

	// --- Domain services ---
	validator := movement.NewValidator(productRepo, storeRepo, vendorRepo, customerRepo, inventoryRepo)
	numeratorService := numerator.New(txManager)

	purchaseService := purchase.NewService(purchaseRepo, validator, inventoryRepo, numeratorService, txManager)
	saleService := sale.NewService(saleRepo, validator, inventoryRepo, numeratorService, txManager)
	transferService := transfer.NewService(transferRepo, validator, inventoryRepo, numeratorService, txManager)
	purchaseReturnService := purchasereturn.NewService(
		purchaseReturnRepo, purchaseRepo, validator, inventoryRepo, numeratorService, txManager)
	saleReturnService := salereturn.NewService(
		saleReturnRepo, saleRepo, validator, inventoryRepo, numeratorService, txManager)
	inventoryService := inventory.NewService(inventoryRepo, txManager)

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:      pool.Pool,
		Logger:    log,
		JWTSecret: []byte(mustEnv("JWT_SECRET")),

		Purchases:       purchaseService,
		Sales:           saleService,
		Transfers:       transferService,
		PurchaseReturns: purchaseReturnService,
		SaleReturns:     saleReturnService,
		Inventory:       inventoryService,
	})

	// --- HTTP server ---
	port := getEnv("APP_PORT", "8080")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")
	postgres.LogPoolStats(ctx, pool.Pool)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func mustEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		fmt.Printf("required environment variable %s not set\n", key)
		os.Exit(1)
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}
