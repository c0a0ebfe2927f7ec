package repo

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/stichkala/order-service/internal/entities"
)

// AddOutbox stores an event. It must run in the transaction that made the
// state change the event describes.
func (r *postgresRepo) AddOutbox(ctx context.Context, m entities.OutboxMessage) error {
	query, args := r.qb.Insert("outbox").
		Columns("event_id", "topic", "key", "payload").
		Values(m.EventID, m.Topic, m.Key, m.Payload).
		Suffix("ON CONFLICT (event_id) DO NOTHING").
		MustSql()

	if _, err := r.execContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to save outbox message: %w", err)
	}
	return nil
}

// PendingOutbox locks up to limit unpublished messages. Concurrent relays
// skip rows another relay already holds.
func (r *postgresRepo) PendingOutbox(ctx context.Context, limit int) ([]entities.OutboxMessage, error) {
	query, args := r.qb.Select("id", "event_id", "topic", "key", "payload", "attempts", "created_at").
		From("outbox").
		Where(sq.Eq{"published_at": nil}).
		OrderBy("id").
		Limit(uint64(limit)).
		Suffix("FOR UPDATE SKIP LOCKED").
		MustSql()

	var rows []OutboxMessage
	if err := r.selectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select outbox: %w", err)
	}

	res := make([]entities.OutboxMessage, len(rows))
	for i, m := range rows {
		res[i] = OutboxToEntity(m)
	}
	return res, nil
}

func (r *postgresRepo) MarkPublished(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	query, args := r.qb.Update("outbox").
		Set("published_at", sq.Expr("now()")).
		Where(sq.Eq{"id": ids}).
		MustSql()

	if _, err := r.execContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to mark outbox published: %w", err)
	}
	return nil
}

func (r *postgresRepo) MarkAttempted(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	query, args := r.qb.Update("outbox").
		Set("attempts", sq.Expr("attempts + 1")).
		Where(sq.Eq{"id": ids}).
		MustSql()

	if _, err := r.execContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to mark outbox attempt: %w", err)
	}
	return nil
}
