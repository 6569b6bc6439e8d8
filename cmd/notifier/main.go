package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/streetkicks/storefront/internal/config"
	"github.com/streetkicks/storefront/internal/delivery/events"
	"github.com/streetkicks/storefront/internal/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger := logger.New(cfg.Env)
	appLogger.Info("Starting notifier service...")

	consumer, err := events.NewConsumer(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to create NATS consumer", err)
	}
	defer consumer.Close()

	if err := consumer.Subscribe(events.StreamSubjects, events.ActivityHandler(appLogger)); err != nil {
		appLogger.Fatal("Failed to subscribe to review events", err)
	}

	appLogger.Info("Notifier service started and listening for events...")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down notifier service...")
}
