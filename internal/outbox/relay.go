// Package outbox moves committed events from the outbox table to Kafka.
package outbox

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/segmentio/kafka-go"
	"github.com/stichkala/order-service/internal/config"
	"github.com/stichkala/order-service/internal/entities"
	"github.com/stichkala/order-service/pkg/trm"
)

var (
	published = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "order_service",
		Subsystem: "outbox",
		Name:      "published_total",
		Help:      "Total number of outbox messages published to Kafka.",
	})

	publishErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "order_service",
		Subsystem: "outbox",
		Name:      "publish_errors_total",
		Help:      "Total number of failed outbox publish batches.",
	})
)

type Store interface {
	PendingOutbox(ctx context.Context, limit int) ([]entities.OutboxMessage, error)
	MarkPublished(ctx context.Context, ids []int64) error
	MarkAttempted(ctx context.Context, ids []int64) error
}

type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Relay struct {
	logger   *slog.Logger
	store    Store
	tx       trm.Manager
	writer   MessageWriter
	interval time.Duration
	batch    int
}

func NewRelay(logger *slog.Logger, tx trm.Manager, store Store, writer MessageWriter, cfg config.Outbox) *Relay {
	return &Relay{
		logger:   logger.With(slog.String("component", "outbox")),
		store:    store,
		tx:       tx,
		writer:   writer,
		interval: cfg.RelayInterval,
		batch:    cfg.BatchSize,
	}
}

// NewKafkaWriter builds a writer that routes each message by its own topic.
func NewKafkaWriter(cfg config.Kafka) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               &kafka.Hash{},
		BatchTimeout:           cfg.BatchTimeout,
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}
}

// Start polls the outbox until ctx is done.
func (r *Relay) Start(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := r.Flush(ctx); err != nil && ctx.Err() == nil {
				r.logger.Error("failed to flush outbox", slog.Any("error", err))
			}
		}
	}
}

// Flush publishes one batch. Rows stay locked for the duration so parallel
// relays never send the same row twice. A failed publish only bumps attempts.
func (r *Relay) Flush(ctx context.Context) (int, error) {
	var (
		sent       int
		publishErr error
	)

	err := r.tx.Do(ctx, func(ctx context.Context) error {
		msgs, err := r.store.PendingOutbox(ctx, r.batch)
		if err != nil {
			return err
		}
		if len(msgs) == 0 {
			return nil
		}

		ids := make([]int64, len(msgs))
		kmsgs := make([]kafka.Message, len(msgs))
		for i, m := range msgs {
			ids[i] = m.ID
			kmsgs[i] = kafka.Message{
				Topic: m.Topic,
				Key:   []byte(m.Key),
				Value: m.Payload,
				Headers: []kafka.Header{
					{Key: "event_id", Value: []byte(m.EventID)},
				},
			}
		}

		if publishErr = r.writer.WriteMessages(ctx, kmsgs...); publishErr != nil {
			publishErrors.Inc()
			return r.store.MarkAttempted(ctx, ids)
		}

		if err := r.store.MarkPublished(ctx, ids); err != nil {
			return err
		}
		sent = len(msgs)
		return nil
	})
	if err != nil {
		return 0, err
	}
	if publishErr != nil {
		return 0, publishErr
	}

	if sent > 0 {
		published.Add(float64(sent))
		r.logger.Debug("outbox flushed", slog.Int("count", sent))
	}
	return sent, nil
}

func (r *Relay) Close() error {
	return r.writer.Close()
}
