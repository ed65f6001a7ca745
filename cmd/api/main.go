// @title Question Bank Import API
// @version 1.0
// @description Bulk CSV import, review and export of practice questions.
// @contact.name API Support
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8090
// @BasePath /api
// @schemes http https
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "question-bank/cmd/api/docs"
	"question-bank/internal/app"
	"question-bank/internal/config"
	"question-bank/internal/logger"
	"question-bank/internal/server"

	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	container, err := app.Build(cfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize application", zap.Error(err))
	}
	defer container.Close()

	fiberApp := server.New(cfg, server.Dependencies{
		Imports:  container.Imports,
		Exports:  container.Exports,
		DB:       container.DB,
		Cache:    container.Cache,
		Gatherer: container.Registry,
	})

	go func() {
		appLogger.Info("Starting server",
			zap.Int("port", cfg.Server.Port),
			zap.String("env", cfg.Logger.Env),
			zap.String("db_driver", cfg.DB.Driver))
		if err := fiberApp.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := fiberApp.ShutdownWithContext(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
