package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/stichkala/order-service/internal/entities"
	"github.com/stichkala/order-service/pkg/trm"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const (
	uniqueViolation       = "23505"
	orderNumberConstraint = "orders_order_number_key"
)

type postgresRepo struct {
	db *sqlx.DB
	qb sq.StatementBuilderType
}

func NewPostgresRepo(db *sqlx.DB) *postgresRepo {
	return &postgresRepo{
		db: db,
		qb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// NextOrderNumber allocates the next value of the order number sequence.
// Values are never reused, even when the enclosing transaction rolls back.
func (r *postgresRepo) NextOrderNumber(ctx context.Context) (int64, error) {
	var seq int64
	if err := r.getContext(ctx, &seq, "SELECT nextval('order_number_seq')"); err != nil {
		return 0, fmt.Errorf("failed to allocate order number: %w", err)
	}
	return seq, nil
}

// CreateOrder inserts the order with its items. Callers wrap it in a
// transaction so a failed item insert leaves nothing behind.
func (r *postgresRepo) CreateOrder(ctx context.Context, o entities.Order) (entities.Order, error) {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}

	c, a, pd := o.Customer, o.Customer.Address, o.PaymentDetails
	query, args := r.qb.Insert("orders").
		Columns(orderColumns...).
		Values(
			o.ID, o.OrderNumber,
			c.Name, c.Phone, nullString(c.WhatsApp), c.Email,
			a.Street, a.City, a.State, a.PostalCode, a.Country,
			o.GiftWrap, o.TotalAmount, string(o.Status), string(o.PaymentStatus), string(o.PaymentMethod),
			nullString(pd.GatewayOrderID), nullString(pd.GatewayPaymentID), nullString(pd.GatewaySignature),
			nullString(pd.TransactionRef), nullString(pd.ProofRef),
			o.EstimatedDelivery, nullTime(o.ActualDelivery), nullString(o.TrackingNumber), nullString(o.Notes),
			o.CreatedAt, o.UpdatedAt,
		).
		MustSql()

	if _, err := r.execContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err, orderNumberConstraint) {
			return entities.Order{}, fmt.Errorf("%w: %s", entities.ErrDuplicateOrderNumber, o.OrderNumber)
		}
		return entities.Order{}, fmt.Errorf("failed to save order: %w", err)
	}

	if err := r.saveItems(ctx, o.ID, o.Items); err != nil {
		return entities.Order{}, err
	}
	return o, nil
}

func (r *postgresRepo) saveItems(ctx context.Context, orderID string, items []entities.Item) error {
	if len(items) == 0 {
		return nil
	}

	q := r.qb.Insert("order_items").Columns(itemColumns...)
	for i, it := range items {
		custom, err := marshalCustomization(it.Customization)
		if err != nil {
			return fmt.Errorf("failed to encode customization: %w", err)
		}
		q = q.Values(orderID, i, it.ProductID, it.ProductName, it.Quantity, it.UnitPrice, custom)
	}

	query, args := q.MustSql()
	if _, err := r.execContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to save items: %w", err)
	}
	return nil
}

func (r *postgresRepo) GetOrderByID(ctx context.Context, id string) (entities.Order, error) {
	if _, err := uuid.Parse(id); err != nil {
		return entities.Order{}, entities.ErrOrderNotFound
	}
	return r.getOrder(ctx, sq.Eq{"id": id})
}

// GetOrderByNumber matches the order number case-insensitively.
func (r *postgresRepo) GetOrderByNumber(ctx context.Context, number string) (entities.Order, error) {
	return r.getOrder(ctx, sq.Expr("upper(order_number) = upper(?)", number))
}

func (r *postgresRepo) getOrder(ctx context.Context, where sq.Sqlizer) (entities.Order, error) {
	query, args := r.qb.Select(orderColumns...).
		From("orders").
		Where(where).
		MustSql()

	var order Order
	err := r.getContext(ctx, &order, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Order{}, entities.ErrOrderNotFound
	}
	if err != nil {
		return entities.Order{}, fmt.Errorf("failed to get order: %w", err)
	}

	query, args = r.qb.Select(itemColumns...).
		From("order_items").
		Where(sq.Eq{"order_id": order.ID}).
		OrderBy("position").
		MustSql()

	var items []Item
	if err := r.selectContext(ctx, &items, query, args...); err != nil {
		return entities.Order{}, fmt.Errorf("failed to get items: %w", err)
	}

	res, err := OrderToEntity(order, items)
	if err != nil {
		return entities.Order{}, fmt.Errorf("%w: %v", entities.ErrInvalidOrder, err)
	}
	return res, nil
}

func (r *postgresRepo) ListOrders(ctx context.Context, limit int) ([]entities.Order, error) {
	// Получаем последние limit заказов
	query, args := r.qb.Select(orderColumns...).
		From("orders").
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		MustSql()

	var orders []Order
	if err := r.selectContext(ctx, &orders, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select orders: %w", err)
	}
	if len(orders) == 0 {
		return []entities.Order{}, nil
	}

	ids := make([]string, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}

	// Товары для всех заказов одним запросом
	query, args = r.qb.Select(itemColumns...).
		From("order_items").
		Where(sq.Eq{"order_id": ids}).
		OrderBy("order_id", "position").
		MustSql()

	var items []Item
	if err := r.selectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select items: %w", err)
	}
	itemsMap := make(map[string][]Item, len(ids))
	for _, it := range items {
		itemsMap[it.OrderID] = append(itemsMap[it.OrderID], it)
	}

	result := make([]entities.Order, 0, len(orders))
	for _, o := range orders {
		order, err := OrderToEntity(o, itemsMap[o.ID])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", entities.ErrInvalidOrder, err)
		}
		result = append(result, order)
	}
	return result, nil
}

// UpdatePayment writes a reconciliation outcome only if the order still has
// the status pair it was read with. total_amount is never touched.
func (r *postgresRepo) UpdatePayment(ctx context.Context, current entities.Order, patch entities.PaymentPatch) error {
	q := r.qb.Update("orders").
		Set("status", string(patch.Status)).
		Set("payment_status", string(patch.PaymentStatus)).
		Set("updated_at", sq.Expr("now()"))

	if d := patch.Details; d != nil {
		q = q.Set("gateway_payment_id", nullString(d.GatewayPaymentID)).
			Set("gateway_signature", nullString(d.GatewaySignature)).
			Set("transaction_ref", nullString(d.TransactionRef)).
			Set("proof_ref", nullString(d.ProofRef))
	}

	return r.compareAndSet(ctx, q, current)
}

// UpdateFulfillment advances the fulfillment status under the same
// compare-and-set rule as UpdatePayment.
func (r *postgresRepo) UpdateFulfillment(ctx context.Context, current entities.Order, patch entities.FulfillmentPatch) error {
	q := r.qb.Update("orders").
		Set("status", string(patch.Status)).
		Set("updated_at", sq.Expr("now()"))

	if patch.TrackingNumber != "" {
		q = q.Set("tracking_number", patch.TrackingNumber)
	}
	if patch.Notes != "" {
		q = q.Set("notes", patch.Notes)
	}
	if patch.ActualDelivery != nil {
		q = q.Set("actual_delivery", *patch.ActualDelivery)
	}

	return r.compareAndSet(ctx, q, current)
}

func (r *postgresRepo) compareAndSet(ctx context.Context, q sq.UpdateBuilder, current entities.Order) error {
	query, args := q.Where(sq.Eq{
		"id":             current.ID,
		"status":         string(current.Status),
		"payment_status": string(current.PaymentStatus),
	}).MustSql()

	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}
	if n > 0 {
		return nil
	}

	exists, err := r.orderExists(ctx, current.ID)
	if err != nil {
		return err
	}
	if !exists {
		return entities.ErrOrderNotFound
	}
	return entities.ErrConflict
}

func (r *postgresRepo) orderExists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.getContext(ctx, &exists, "SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1)", id)
	if err != nil {
		return false, fmt.Errorf("failed to check order: %w", err)
	}
	return exists, nil
}

func isUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == uniqueViolation && (constraint == "" || pqErr.Constraint == constraint)
}

func (r *postgresRepo) execContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	tx := trm.ExtractTx(ctx)
	if tx != nil {
		return tx.ExecContext(ctx, query, args...)
	}
	return r.db.ExecContext(ctx, query, args...)
}

func (r *postgresRepo) getContext(ctx context.Context, dest any, query string, args ...any) error {
	tx := trm.ExtractTx(ctx)
	if tx != nil {
		return tx.GetContext(ctx, dest, query, args...)
	}
	return r.db.GetContext(ctx, dest, query, args...)
}

func (r *postgresRepo) selectContext(ctx context.Context, dest any, query string, args ...any) error {
	tx := trm.ExtractTx(ctx)
	if tx != nil {
		return tx.SelectContext(ctx, dest, query, args...)
	}
	return r.db.SelectContext(ctx, dest, query, args...)
}
