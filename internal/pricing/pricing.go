// Package pricing computes the authoritative order total.
package pricing

import (
	"fmt"
	"math"

	"github.com/stichkala/order-service/internal/entities"
)

const (
	GiftWrapFee           int64 = 50
	DeliveryFee           int64 = 50
	FreeDeliveryThreshold int64 = 500
)

type Line struct {
	UnitPrice int64
	Quantity  int
}

type Breakdown struct {
	Subtotal    int64
	GiftWrapFee int64
	DeliveryFee int64
	Total       int64
}

// Calculate applies the fee schedule exactly once. The delivery threshold is
// checked against subtotal plus gift wrap. A total that does not fit in int64
// is rejected with ErrInvalidQuantity.
func Calculate(lines []Line, giftWrap bool) (Breakdown, error) {
	if len(lines) == 0 {
		return Breakdown{}, entities.ErrEmptyOrder
	}

	var b Breakdown
	for i, l := range lines {
		if l.Quantity < 1 {
			return Breakdown{}, fmt.Errorf("%w: line %d", entities.ErrInvalidQuantity, i)
		}
		if l.UnitPrice < 0 {
			return Breakdown{}, fmt.Errorf("%w: line %d", entities.ErrInvalidPrice, i)
		}
		headroom := math.MaxInt64 - GiftWrapFee - DeliveryFee - b.Subtotal
		if l.UnitPrice > 0 && int64(l.Quantity) > headroom/l.UnitPrice {
			return Breakdown{}, fmt.Errorf("%w: line %d overflows the total", entities.ErrInvalidQuantity, i)
		}
		b.Subtotal += l.UnitPrice * int64(l.Quantity)
	}

	if giftWrap {
		b.GiftWrapFee = GiftWrapFee
	}

	running := b.Subtotal + b.GiftWrapFee
	if running < FreeDeliveryThreshold {
		b.DeliveryFee = DeliveryFee
	}

	b.Total = running + b.DeliveryFee
	return b, nil
}

// Policy controls what happens when the client proposes its own total.
type Policy struct {
	RejectMismatch bool
	Tolerance      int64
}

// Reconcile returns the total to persist. The computed figure always wins;
// with RejectMismatch a client total outside the tolerance is an error.
func Reconcile(computed int64, client *int64, p Policy) (int64, error) {
	if client == nil || !p.RejectMismatch {
		return computed, nil
	}

	diff := *client - computed
	if diff < 0 {
		diff = -diff
	}
	if diff > p.Tolerance {
		return 0, fmt.Errorf("%w: client %d, computed %d", entities.ErrTotalMismatch, *client, computed)
	}
	return computed, nil
}
