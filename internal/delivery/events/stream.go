package events

import (
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/vkoval/automarket/internal/pkg/logger"
)

const (
	// ViewStreamName is the JetStream stream for product view events
	ViewStreamName = "CATALOG_VIEWS"

	// ViewStreamSubjects defines the subjects this stream listens to
	ViewStreamSubjects = "catalog.views"

	// ViewConsumerName is the durable consumer for the view-count worker
	ViewConsumerName = "view-worker"

	// EventStreamName is the JetStream stream for ledger and catalog
	// lifecycle events
	EventStreamName = "CATALOG_EVENTS"

	// MaxDeliveryAttempts is the max number of delivery attempts before
	// discarding. A lost view increment is tolerable; counts are
	// popularity hints, not accounting data.
	MaxDeliveryAttempts = 3

	// AckWait is how long to wait for acknowledgment before redelivery
	AckWait = 30 * time.Second
)

// EventStreamSubjects are the subjects the event stream covers: cart and
// favorites mutations plus catalog refreshes.
var EventStreamSubjects = []string{"cart.events", "catalog.events"}

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

// generateExponentialBackoff creates a backoff schedule for NATS
// redeliveries: 1s, 2s, 4s, ... MaxDeliver N requires N-1 durations
// (first delivery is immediate).
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

// EnsureViewStream creates the JetStream stream for view events if it does
// not exist yet. Work-queue retention, file storage, messages older than
// 24 hours are useless for a popularity counter and get discarded.
func (s *StreamConfig) EnsureViewStream() error {
	stream, err := s.js.StreamInfo(ViewStreamName)

	if errors.Is(err, nats.ErrStreamNotFound) {
		s.logger.WithFields(map[string]interface{}{
			"stream":   ViewStreamName,
			"subjects": ViewStreamSubjects,
		}).Info("Creating JetStream stream")

		_, err = s.js.AddStream(&nats.StreamConfig{
			Name:        ViewStreamName,
			Subjects:    []string{ViewStreamSubjects},
			Retention:   nats.WorkQueuePolicy,
			Storage:     nats.FileStorage,
			Replicas:    1,
			MaxAge:      24 * time.Hour,
			Discard:     nats.DiscardOld,
			Description: "Product view events stream for view-count aggregation",
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

	s.logger.WithFields(map[string]interface{}{
		"stream":   stream.Config.Name,
		"messages": stream.State.Msgs,
	}).Info("JetStream stream already exists")

	return nil
}

// EnsureEventStream creates the JetStream stream for ledger and catalog
// events if it does not exist yet. Limits retention: the notifier reads
// these as a fan-out subscriber, so consuming must not delete messages.
func (s *StreamConfig) EnsureEventStream() error {
	stream, err := s.js.StreamInfo(EventStreamName)

	if errors.Is(err, nats.ErrStreamNotFound) {
		s.logger.WithFields(map[string]interface{}{
			"stream":   EventStreamName,
			"subjects": EventStreamSubjects,
		}).Info("Creating JetStream stream")

		_, err = s.js.AddStream(&nats.StreamConfig{
			Name:        EventStreamName,
			Subjects:    EventStreamSubjects,
			Retention:   nats.LimitsPolicy,
			Storage:     nats.FileStorage,
			Replicas:    1,
			MaxAge:      7 * 24 * time.Hour,
			Discard:     nats.DiscardOld,
			Description: "Cart, favorites and catalog refresh events",
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

	s.logger.WithFields(map[string]interface{}{
		"stream":   stream.Config.Name,
		"messages": stream.State.Msgs,
	}).Info("JetStream stream already exists")

	return nil
}

// EnsureViewConsumer creates the durable consumer for the view-count
// worker if it does not exist yet. Messages that fail MaxDeliveryAttempts
// times are discarded, not dead-lettered: the next view of the same
// product carries the loss.
func (s *StreamConfig) EnsureViewConsumer() error {
	consumerInfo, err := s.js.ConsumerInfo(ViewStreamName, ViewConsumerName)

	if errors.Is(err, nats.ErrConsumerNotFound) {
		s.logger.WithFields(map[string]interface{}{
			"stream":   ViewStreamName,
			"consumer": ViewConsumerName,
		}).Info("Creating JetStream consumer")

		_, err = s.js.AddConsumer(ViewStreamName, &nats.ConsumerConfig{
			Durable:       ViewConsumerName,
			AckPolicy:     nats.AckExplicitPolicy,
			AckWait:       AckWait,
			MaxDeliver:    MaxDeliveryAttempts,
			FilterSubject: ViewStreamSubjects,
			BackOff:       generateExponentialBackoff(MaxDeliveryAttempts),
			Description:   "View-count worker consumer for processing view events",
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

	s.logger.WithFields(map[string]interface{}{
		"consumer":    consumerInfo.Name,
		"pending":     consumerInfo.NumPending,
		"redelivered": consumerInfo.NumRedelivered,
	}).Info("JetStream consumer already exists")

	return nil
}
