package events

import (
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/streetkicks/storefront/internal/pkg/logger"
)

const (
	// StreamName is the JetStream stream for review events
	StreamName = "REVIEWS"

	// StreamSubjects defines the subjects this stream listens to
	StreamSubjects = "reviews.events"

	// ConsumerName is the durable consumer for the stats worker
	ConsumerName = "stats-worker"

	// MaxDeliveryAttempts is the number of delivery attempts before a
	// message is discarded. The refresh is idempotent against database
	// state, so the next review event recomputes everything a dropped
	// message would have.
	MaxDeliveryAttempts = 3

	// AckWait is how long to wait for acknowledgment before redelivery
	AckWait = 30 * time.Second
)

// StreamConfig holds the JetStream stream configuration
type StreamConfig struct {
	js     nats.JetStreamContext
	logger *logger.Logger
}

// NewStreamConfig creates a new stream configuration helper
func NewStreamConfig(js nats.JetStreamContext, log *logger.Logger) *StreamConfig {
	return &StreamConfig{
		js:     js,
		logger: log,
	}
}

// generateExponentialBackoff creates a backoff schedule for redeliveries.
// MaxDeliver N requires N-1 backoff durations (first delivery is immediate).
func generateExponentialBackoff(maxDeliveryAttempts int) []time.Duration {
	if maxDeliveryAttempts <= 1 {
		return nil
	}

	backoff := make([]time.Duration, maxDeliveryAttempts-1)
	for i := range backoff {
		backoff[i] = time.Duration(1<<i) * time.Second
	}
	return backoff
}

// EnsureStream creates the work-queue stream for review events if it
// does not exist yet. Messages are file-backed and deleted once acked;
// events older than 24 hours are stale for a rating refresh and dropped.
func (s *StreamConfig) EnsureStream() error {
	stream, err := s.js.StreamInfo(StreamName)

	if errors.Is(err, nats.ErrStreamNotFound) {
		s.logger.WithFields(map[string]any{
			"stream":   StreamName,
			"subjects": StreamSubjects,
		}).Info("Creating JetStream stream")

		_, err = s.js.AddStream(&nats.StreamConfig{
			Name:        StreamName,
			Subjects:    []string{StreamSubjects},
			Retention:   nats.WorkQueuePolicy,
			Storage:     nats.FileStorage,
			Replicas:    1,
			MaxAge:      24 * time.Hour,
			Discard:     nats.DiscardOld,
			Description: "Review events stream for product rating refresh",
		})
		if err != nil {
			return fmt.Errorf("failed to create stream: %w", err)
		}

		s.logger.Info("JetStream stream created successfully")
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to get stream info: %w", err)
	}

	s.logger.WithFields(map[string]any{
		"stream":   stream.Config.Name,
		"messages": stream.State.Msgs,
		"bytes":    stream.State.Bytes,
	}).Info("JetStream stream already exists")

	return nil
}

// EnsureConsumer creates the durable consumer for the stats worker if
// it does not exist yet. Messages that fail MaxDeliveryAttempts times
// are discarded rather than dead-lettered; the next review event for
// the product triggers a full recalculation anyway.
func (s *StreamConfig) EnsureConsumer() error {
	consumerInfo, err := s.js.ConsumerInfo(StreamName, ConsumerName)

	if errors.Is(err, nats.ErrConsumerNotFound) {
		s.logger.WithFields(map[string]any{
			"stream":   StreamName,
			"consumer": ConsumerName,
		}).Info("Creating JetStream consumer")

		_, err = s.js.AddConsumer(StreamName, &nats.ConsumerConfig{
			Durable:       ConsumerName,
			AckPolicy:     nats.AckExplicitPolicy,
			AckWait:       AckWait,
			MaxDeliver:    MaxDeliveryAttempts,
			FilterSubject: StreamSubjects,
			BackOff:       generateExponentialBackoff(MaxDeliveryAttempts),
			Description:   "Stats worker consumer for processing review events",
		})
		if err != nil {
			return fmt.Errorf("failed to create consumer: %w", err)
		}

		s.logger.Info("JetStream consumer created successfully")
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to get consumer info: %w", err)
	}

	s.logger.WithFields(map[string]any{
		"consumer":    consumerInfo.Name,
		"pending":     consumerInfo.NumPending,
		"redelivered": consumerInfo.NumRedelivered,
		"ack_pending": consumerInfo.NumAckPending,
	}).Info("JetStream consumer already exists")

	return nil
}
