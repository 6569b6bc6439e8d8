package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/streetkicks/storefront/internal/pkg/logger"
)

const (
	// Debounce window - events for the same product within this
	// duration collapse into a single refresh
	debounceWindow = 1 * time.Second

	// Retry configuration
	maxRetries     = 3
	initialBackoff = 100 * time.Millisecond
)

// ReviewEvent is the shape of a review event consumed from the stream
type ReviewEvent struct {
	EventType string    `json:"event_type"`
	ProductID int64     `json:"product_id"`
	Timestamp time.Time `json:"timestamp"`
}

// StatsWorker consumes review events and refreshes the denormalized
// product rating columns asynchronously
type StatsWorker struct {
	calculator *Calculator
	logger     *logger.Logger

	// Debouncing state
	mu             sync.Mutex
	pendingUpdates map[int64]*pendingUpdate
	shutdownCh     chan struct{}
	wg             sync.WaitGroup
	ctx            context.Context
	cancel         context.CancelFunc
}

type pendingUpdate struct {
	productID int64
	timestamp time.Time
	timer     *time.Timer
}

// NewStatsWorker creates a new stats worker
func NewStatsWorker(calculator *Calculator, logger *logger.Logger) *StatsWorker {
	ctx, cancel := context.WithCancel(context.Background())

	return &StatsWorker{
		calculator:     calculator,
		logger:         logger,
		pendingUpdates: make(map[int64]*pendingUpdate),
		shutdownCh:     make(chan struct{}),
		ctx:            ctx,
		cancel:         cancel,
	}
}

// HandleEvent processes a review event
func (w *StatsWorker) HandleEvent(data []byte) error {
	var event ReviewEvent
	if err := json.Unmarshal(data, &event); err != nil {
		w.logger.Error("Failed to unmarshal review event", err)
		return fmt.Errorf("failed to unmarshal event: %w", err)
	}

	w.logger.WithFields(map[string]any{
		"event_type": event.EventType,
		"product_id": event.ProductID,
		"timestamp":  event.Timestamp,
	}).Info("Received review event")

	w.scheduleUpdate(event.ProductID, event.Timestamp)

	return nil
}

// scheduleUpdate debounces refreshes: several events for the same
// product inside the window result in one database update
func (w *StatsWorker) scheduleUpdate(productID int64, timestamp time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()

	select {
	case <-w.shutdownCh:
		w.logger.Info("Worker shutting down, ignoring new event")
		return
	default:
	}

	existing, found := w.pendingUpdates[productID]

	if found {
		// Ignore stale events
		if timestamp.Before(existing.timestamp) {
			w.logger.WithFields(map[string]any{
				"product_id":  productID,
				"existing_ts": existing.timestamp,
				"event_ts":    timestamp,
			}).Debug("Ignoring stale event")
			return
		}

		existing.timer.Stop()
		w.logger.WithFields(map[string]any{
			"product_id": productID,
		}).Debug("Debouncing: resetting timer for product")
	} else {
		w.wg.Add(1)
	}

	timer := time.AfterFunc(debounceWindow, func() {
		w.processUpdate(productID)
	})

	w.pendingUpdates[productID] = &pendingUpdate{
		productID: productID,
		timestamp: timestamp,
		timer:     timer,
	}
}

// processUpdate executes the refresh with retry and backoff
func (w *StatsWorker) processUpdate(productID int64) {
	defer w.wg.Done()

	w.mu.Lock()
	delete(w.pendingUpdates, productID)
	w.mu.Unlock()

	w.logger.WithFields(map[string]any{
		"product_id": productID,
	}).Info("Processing rating refresh")

	var lastErr error
	backoff := initialBackoff

	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			w.logger.WithFields(map[string]any{
				"product_id": productID,
				"attempt":    attempt + 1,
				"backoff_ms": backoff.Milliseconds(),
			}).Warn("Retrying rating refresh")

			select {
			case <-time.After(backoff):
			case <-w.ctx.Done():
				w.logger.Info("Worker context cancelled, aborting retry")
				return
			}

			backoff *= 2
		}

		ctx, cancel := context.WithTimeout(w.ctx, 5*time.Second)
		err := w.calculator.CalculateAndUpdate(ctx, productID)
		cancel()

		if err == nil {
			return
		}

		lastErr = err
		w.logger.WithFields(map[string]any{
			"product_id": productID,
			"attempt":    attempt + 1,
		}).Error("Failed to refresh rating", err)
	}

	w.logger.WithFields(map[string]any{
		"product_id":  productID,
		"max_retries": maxRetries,
	}).Error("Rating refresh failed after all retries", lastErr)
}

// Shutdown cancels pending timers and waits for in-flight refreshes
func (w *StatsWorker) Shutdown(ctx context.Context) error {
	w.logger.Info("Shutting down stats worker...")

	close(w.shutdownCh)
	w.cancel()

	w.mu.Lock()
	pendingCount := len(w.pendingUpdates)
	for _, update := range w.pendingUpdates {
		update.timer.Stop()
		w.wg.Done()
	}
	w.pendingUpdates = make(map[int64]*pendingUpdate)
	w.mu.Unlock()

	w.logger.WithFields(map[string]any{
		"cancelled_updates": pendingCount,
	}).Info("Cancelled pending updates")

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		w.logger.Info("All in-flight refreshes completed")
		return nil
	case <-ctx.Done():
		w.logger.Warn("Shutdown timeout reached, forcing exit")
		return ctx.Err()
	}
}

// GetPendingCount returns the number of pending refreshes (used for monitoring/testing)
func (w *StatsWorker) GetPendingCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.pendingUpdates)
}
