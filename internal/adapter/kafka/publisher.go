// Package kafka publishes normalized weather and flight-plan records to a
// Kafka topic so other services can consume what the pad fetched.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/storm-data-shared/retry"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/flypad/internal/config"
	"github.com/couchcryptid/flypad/internal/domain"
	"github.com/couchcryptid/flypad/internal/observability"
)

// Record types, sent as the record_type header.
const (
	RecordWeather    = "weather"
	RecordFlightPlan = "flightplan"
)

const (
	maxAttempts    = 3
	initialBackoff = 200 * time.Millisecond
	maxBackoff     = 2 * time.Second
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Publisher writes records to the configured topic.
// It implements fetch.RecordPublisher.
type Publisher struct {
	writer  messageWriter
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewPublisher creates a Kafka producer for the record topic.
func NewPublisher(cfg *config.Config, metrics *observability.Metrics, logger *slog.Logger) *Publisher {
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.KafkaBrokers...),
		Topic:                  cfg.KafkaTopic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
	}
	return newPublisher(w, metrics, logger)
}

func newPublisher(w messageWriter, metrics *observability.Metrics, logger *slog.Logger) *Publisher {
	return &Publisher{writer: w, metrics: metrics, logger: logger}
}

// PublishWeather writes one weather record keyed by station.
func (p *Publisher) PublishWeather(ctx context.Context, w domain.Weather) error {
	msg, err := serializeWeather(w)
	if err != nil {
		return err
	}
	return p.publish(ctx, RecordWeather, msg)
}

// PublishFlightPlan writes one flight plan keyed by user id.
func (p *Publisher) PublishFlightPlan(ctx context.Context, plan domain.FlightPlan) error {
	msg, err := serializeFlightPlan(plan)
	if err != nil {
		return err
	}
	return p.publish(ctx, RecordFlightPlan, msg)
}

// publish retries transient write failures with exponential backoff.
func (p *Publisher) publish(ctx context.Context, recordType string, msg kafkago.Message) error {
	backoff := initialBackoff
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err = p.writer.WriteMessages(ctx, msg); err == nil {
			p.metrics.RecordsPublished.WithLabelValues(recordType).Inc()
			return nil
		}
		if attempt == maxAttempts {
			break
		}
		p.logger.Debug("publish failed, retrying",
			"record_type", recordType, "attempt", attempt, "backoff", backoff, "error", err)
		if !retry.SleepWithContext(ctx, backoff) {
			err = ctx.Err()
			break
		}
		backoff = retry.NextBackoff(backoff, maxBackoff)
	}

	p.metrics.PublishErrors.Inc()
	return fmt.Errorf("publish %s record: %w", recordType, err)
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

func serializeWeather(w domain.Weather) (kafkago.Message, error) {
	data, err := json.Marshal(w)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize weather record: %w", err)
	}
	return newMessage(w.Station(), RecordWeather, w.FetchedAt(), data), nil
}

func serializeFlightPlan(plan domain.FlightPlan) (kafkago.Message, error) {
	data, err := json.Marshal(plan)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize flight plan record: %w", err)
	}
	return newMessage(plan.UserID, RecordFlightPlan, plan.FetchedAt, data), nil
}

func newMessage(key, recordType string, fetchedAt time.Time, value []byte) kafkago.Message {
	return kafkago.Message{
		Key:   []byte(key),
		Value: value,
		Headers: []kafkago.Header{
			{Key: "record_type", Value: []byte(recordType)},
			{Key: "fetched_at", Value: []byte(fetchedAt.Format(time.RFC3339))},
		},
	}
}
