package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/stichkala/order-service/internal/entities"
)

// GetProduct returns an active catalog product.
func (r *postgresRepo) GetProduct(ctx context.Context, id string) (entities.Product, error) {
	query, args := r.qb.Select("id", "name", "base_price").
		From("products").
		Where(sq.Eq{"id": id, "active": true}).
		MustSql()

	var p Product
	err := r.getContext(ctx, &p, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Product{}, fmt.Errorf("%w: %s", entities.ErrProductNotFound, id)
	}
	if err != nil {
		return entities.Product{}, fmt.Errorf("failed to get product: %w", err)
	}
	return ProductToEntity(p), nil
}
