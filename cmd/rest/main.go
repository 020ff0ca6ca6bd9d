package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"transcript-assistant-be/internal/bootstrap"
	"transcript-assistant-be/internal/config"
	"transcript-assistant-be/internal/model"
	"transcript-assistant-be/internal/pkg/logger"
	"transcript-assistant-be/internal/server"
	"transcript-assistant-be/internal/tracer"
	"transcript-assistant-be/pkg/database"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// 1. Load Configuration
	cfg := config.Load()
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	defer sysLogger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 2. Initialize Tracer
	shutdownTracer := tracer.InitTracer(cfg.App, sysLogger)

	// 3. Initialize Database
	gormDB, err := database.NewGormDB(database.GormConfig{
		DSN:      cfg.Database.Connection,
		LogLevel: cfg.Database.LogLevel,
	})
	if err != nil {
		log.Fatalf("Unable to connect to GORM DB: %v", err)
	}
	if err := database.Migrate(gormDB, model.All()...); err != nil {
		log.Fatalf("Unable to migrate database: %v", err)
	}

	// 4. Bootstrap Dependencies (Container)
	container, err := bootstrap.NewContainer(gormDB, cfg, sysLogger)
	if err != nil {
		log.Fatalf("Unable to build container: %v", err)
	}

	// 5. Restore In-Memory State
	if _, err := container.ConsumerService.Warm(ctx); err != nil {
		log.Fatalf("Unable to load embeddings: %v", err)
	}
	if _, err := container.SummaryService.LoadHistories(ctx); err != nil {
		log.Fatalf("Unable to load summary histories: %v", err)
	}

	// 6. Start Background Services
	go container.WebSocketHub.Run(ctx)
	go container.MaintenanceService.Run(ctx)
	if err := container.ConsumerService.Consume(ctx); err != nil {
		log.Fatalf("Unable to start ingest consumer: %v", err)
	}

	// 7. Run Server
	srv := server.New(cfg, container)
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Run()
	}()

	select {
	case err := <-serverErr:
		sysLogger.Error("Server", "Server stopped", map[string]interface{}{
			"error": err.Error(),
		})
	case <-ctx.Done():
		sysLogger.Info("Server", "Shutting down", nil)
	}
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		sysLogger.Warn("Server", "Graceful shutdown failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
	if err := container.PubSub.Close(); err != nil {
		sysLogger.Warn("Server", "Failed to close event bus", map[string]interface{}{
			"error": err.Error(),
		})
	}
	if err := shutdownTracer(shutdownCtx); err != nil {
		sysLogger.Warn("Tracer", "Failed to flush spans", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
