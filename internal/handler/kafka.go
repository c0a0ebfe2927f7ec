package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stichkala/order-service/internal/config"
	"github.com/stichkala/order-service/internal/contracts"
	"github.com/stichkala/order-service/internal/entities"
)

type Notifier interface {
	SendOrderConfirmation(ctx context.Context, order entities.Order, reason string) error
}

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type kafkaHandler struct {
	dlq      messageWriter
	reader   messageReader
	logger   *slog.Logger
	notifier Notifier
}

// NewKafkaHandler consumes order events and hands confirmations to the notifier.
func NewKafkaHandler(logger *slog.Logger, cfg config.Kafka, notifier Notifier) *kafkaHandler {
	return &kafkaHandler{
		logger: logger.With(slog.String("handler", "kafka")),
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers: cfg.Brokers,
			GroupID: cfg.GroupID,
			Topic:   cfg.Topic,
			MaxWait: cfg.ReaderMaxWait,
		}),
		dlq: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: cfg.BatchTimeout,
		},
		notifier: notifier,
	}
}

func (h *kafkaHandler) Consume(ctx context.Context) {
	for {
		m, err := h.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
				break
			}
			h.logger.Error("failed to fetch message", slog.Any("error", err))
			continue
		}

		start := time.Now()
		if err := h.handleEvent(ctx, m); err != nil {
			notificationsFailed.Inc()
			h.logger.Error("failed to handle message", slog.Any("error", err), slog.String("key", string(m.Key)))

			// В библиотеке уже есть retry
			if err := h.WriteToDLQ(ctx, m); err != nil {
				h.logger.Error("failed to write message to DLQ", slog.Any("error", err))
				continue
			}
			notificationsDLQ.Inc()
		} else {
			notificationsSent.Inc()
		}
		notificationDuration.Observe(time.Since(start).Seconds())

		if err := h.reader.CommitMessages(ctx, m); err != nil {
			commitErrors.Inc()
			h.logger.Error("failed to commit message", slog.Any("error", err))
		}
	}
}

func (h *kafkaHandler) handleEvent(ctx context.Context, m kafka.Message) error {
	event, err := contracts.Decode(m.Value)
	if err != nil {
		return err
	}

	switch event.Type {
	case contracts.EventOrderConfirmed:
		return h.notifier.SendOrderConfirmation(ctx, event.Order.ToEntity(), event.Reason)
	default:
		// чужие события пропускаем
		h.logger.Debug("skipping event", slog.String("type", event.Type), slog.String("event_id", event.EventID))
		return nil
	}
}

func (h *kafkaHandler) WriteToDLQ(ctx context.Context, m kafka.Message) error {
	m.Topic = fmt.Sprintf("%s-dlq", m.Topic)
	return h.dlq.WriteMessages(ctx, m)
}

func (h *kafkaHandler) Close() error {
	if err := h.reader.Close(); err != nil {
		return err
	}
	return h.dlq.Close()
}
