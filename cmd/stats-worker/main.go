package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/nats-io/nats.go"

	"github.com/streetkicks/storefront/internal/config"
	"github.com/streetkicks/storefront/internal/delivery/events"
	"github.com/streetkicks/storefront/internal/pkg/cache"
	"github.com/streetkicks/storefront/internal/pkg/database"
	"github.com/streetkicks/storefront/internal/pkg/logger"
	cacheRepo "github.com/streetkicks/storefront/internal/repository/cache"
	"github.com/streetkicks/storefront/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger := logger.New(cfg.Env)
	appLogger.Info("Starting stats worker...")

	appLogger.Info("Connecting to PostgreSQL...")
	db, err := database.WaitForDB(cfg, 10, 2*time.Second)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", err)
	}
	defer db.Close()
	appLogger.Info("Connected to database")

	// The catalog cache is optional here: the denormalized rating columns
	// are refreshed either way, and stale catalog entries expire by TTL.
	var invalidator worker.Invalidator
	redisClient, err := cache.WaitForRedis(cfg, 3, 2*time.Second)
	if err != nil {
		appLogger.Error("Redis unavailable, catalog entries will expire by TTL only", err)
	} else {
		defer redisClient.Close()
		invalidator = cacheRepo.NewProductCache(
			redisClient,
			cfg.Cache.ProductListTTL,
			cfg.Cache.ProductDetailTTL,
		)
	}

	calculator := worker.NewCalculator(db, invalidator, appLogger)
	statsWorker := worker.NewStatsWorker(calculator, appLogger)

	appLogger.Info("Connecting to NATS JetStream...")
	nc, err := nats.Connect(cfg.NATS.URL)
	if err != nil {
		appLogger.Fatal("Failed to connect to NATS", err)
	}
	defer nc.Close()

	js, err := nc.JetStream()
	if err != nil {
		appLogger.Fatal("Failed to create JetStream context", err)
	}

	appLogger.WithFields(map[string]any{
		"url": cfg.NATS.URL,
	}).Info("Connected to NATS JetStream")

	appLogger.Info("Initializing JetStream stream and consumer...")
	streamConfig := events.NewStreamConfig(js, appLogger)

	if err := streamConfig.EnsureStream(); err != nil {
		appLogger.Fatal("Failed to ensure stream", err)
	}

	if err := streamConfig.EnsureConsumer(); err != nil {
		appLogger.Fatal("Failed to ensure consumer", err)
	}

	sub, err := js.PullSubscribe(events.StreamSubjects, events.ConsumerName, nats.ManualAck())
	if err != nil {
		appLogger.Fatal("Failed to subscribe to JetStream consumer", err)
	}
	defer func() {
		if err := sub.Unsubscribe(); err != nil {
			appLogger.Error("Failed to unsubscribe from JetStream", err)
		}
	}()

	appLogger.WithFields(map[string]any{
		"stream":   events.StreamName,
		"consumer": events.ConsumerName,
	}).Info("Subscribed to JetStream consumer")

	go func() {
		for {
			msgs, err := sub.Fetch(10, nats.MaxWait(5*time.Second))
			if err != nil {
				if err == nats.ErrTimeout {
					continue
				}
				appLogger.Error("Failed to fetch messages from JetStream", err)
				time.Sleep(5 * time.Second)
				continue
			}

			for _, msg := range msgs {
				if err := statsWorker.HandleEvent(msg.Data); err != nil {
					appLogger.Error("Failed to handle event", err)

					// Redelivered with exponential backoff; after MaxDeliver
					// attempts the message is discarded. The next review event
					// for the product recomputes everything anyway.
					if nackErr := msg.Nak(); nackErr != nil {
						appLogger.Error("Failed to NACK message", nackErr)
					}
					continue
				}

				if ackErr := msg.Ack(); ackErr != nil {
					appLogger.Error("Failed to ACK message", ackErr)
				}
			}
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	<-sigCh
	appLogger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := statsWorker.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Error during shutdown", err)
	}

	appLogger.Info("Stats worker stopped")
}
