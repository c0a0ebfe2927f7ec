package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stichkala/order-service/internal/config"
	"github.com/stichkala/order-service/internal/entities"
	"github.com/stichkala/order-service/internal/gateway"
	"github.com/stichkala/order-service/pkg/trm"
)

// memStore is an in-memory OrderRepo, Catalog and trm.Manager. Transactions
// are serialized and roll back every write made inside them on error.
type memStore struct {
	txMu sync.Mutex

	mu       sync.Mutex
	seq      int64
	orders   map[string]entities.Order
	taken    map[string]bool
	products map[string]entities.Product
	outbox   []entities.OutboxMessage
}

func newMemStore(products ...entities.Product) *memStore {
	s := &memStore{
		orders:   make(map[string]entities.Order),
		taken:    make(map[string]bool),
		products: make(map[string]entities.Product),
	}
	for _, p := range products {
		s.products[p.ID] = p
	}
	return s
}

var defaultProducts = []entities.Product{
	{ID: "hoop", Name: "Embroidery hoop", BasePrice: 300},
	{ID: "tote", Name: "Hand-painted tote", BasePrice: 600},
	{ID: "card", Name: "Greeting card", BasePrice: 120},
	{ID: "coaster", Name: "Coaster", BasePrice: 100},
	{ID: "frame", Name: "Pressed flower frame", BasePrice: 450},
}

func (s *memStore) NextOrderNumber(context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	return s.seq, nil
}

func (s *memStore) CreateOrder(_ context.Context, o entities.Order) (entities.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.taken[o.OrderNumber] {
		return entities.Order{}, entities.ErrDuplicateOrderNumber
	}
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	s.taken[o.OrderNumber] = true
	s.orders[o.ID] = o
	return o, nil
}

func (s *memStore) GetOrderByID(_ context.Context, id string) (entities.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return entities.Order{}, entities.ErrOrderNotFound
	}
	return o, nil
}

func (s *memStore) GetOrderByNumber(_ context.Context, number string) (entities.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.orders {
		if strings.EqualFold(o.OrderNumber, number) {
			return o, nil
		}
	}
	return entities.Order{}, entities.ErrOrderNotFound
}

func (s *memStore) ListOrders(_ context.Context, limit int) ([]entities.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := slices.Collect(maps.Values(s.orders))
	slices.SortFunc(res, func(a, b entities.Order) int { return b.CreatedAt.Compare(a.CreatedAt) })
	if len(res) > limit {
		res = res[:limit]
	}
	return res, nil
}

func (s *memStore) casLocked(current entities.Order) (entities.Order, error) {
	o, ok := s.orders[current.ID]
	if !ok {
		return entities.Order{}, entities.ErrOrderNotFound
	}
	if o.Status != current.Status || o.PaymentStatus != current.PaymentStatus {
		return entities.Order{}, entities.ErrConflict
	}
	return o, nil
}

func (s *memStore) UpdatePayment(_ context.Context, current entities.Order, patch entities.PaymentPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, err := s.casLocked(current)
	if err != nil {
		return err
	}
	o.Status = patch.Status
	o.PaymentStatus = patch.PaymentStatus
	if d := patch.Details; d != nil {
		o.PaymentDetails.GatewayPaymentID = d.GatewayPaymentID
		o.PaymentDetails.GatewaySignature = d.GatewaySignature
		o.PaymentDetails.TransactionRef = d.TransactionRef
		o.PaymentDetails.ProofRef = d.ProofRef
	}
	o.UpdatedAt = time.Now()
	s.orders[o.ID] = o
	return nil
}

func (s *memStore) UpdateFulfillment(_ context.Context, current entities.Order, patch entities.FulfillmentPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, err := s.casLocked(current)
	if err != nil {
		return err
	}
	o.Status = patch.Status
	if patch.TrackingNumber != "" {
		o.TrackingNumber = patch.TrackingNumber
	}
	if patch.Notes != "" {
		o.Notes = patch.Notes
	}
	if patch.ActualDelivery != nil {
		o.ActualDelivery = patch.ActualDelivery
	}
	s.orders[o.ID] = o
	return nil
}

func (s *memStore) AddOutbox(_ context.Context, m entities.OutboxMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outbox = append(s.outbox, m)
	return nil
}

func (s *memStore) GetProduct(_ context.Context, id string) (entities.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return entities.Product{}, entities.ErrProductNotFound
	}
	return p, nil
}

func (s *memStore) BeginTx(ctx context.Context) (context.Context, trm.Transaction, error) {
	return nil, nil, errors.New("memStore: use Do")
}

func (s *memStore) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	orders := maps.Clone(s.orders)
	taken := maps.Clone(s.taken)
	outboxLen := len(s.outbox)
	s.mu.Unlock()

	if err := fn(ctx); err != nil {
		s.mu.Lock()
		s.orders, s.taken, s.outbox = orders, taken, s.outbox[:outboxLen]
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *memStore) orderCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}

func (s *memStore) events() []entities.OutboxMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.outbox)
}

// testGateway signs like Razorpay and hands out sequential remote order ids.
type testGateway struct {
	*gateway.Razorpay
	calls atomic.Int64
	err   error
}

func newTestGateway() *testGateway {
	return &testGateway{Razorpay: gateway.NewRazorpay(discardLogger(), config.Gateway{KeySecret: "rzp_test_secret"})}
}

func (g *testGateway) CreatePaymentIntent(_ context.Context, receipt string, amount int64) (gateway.Intent, error) {
	g.calls.Add(1)
	if g.err != nil {
		return gateway.Intent{}, g.err
	}
	return gateway.Intent{ID: "order_rzp_" + receipt, Amount: amount * 100, Currency: "INR", Receipt: receipt}, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testDraft(method entities.PaymentMethod, items ...entities.DraftItem) entities.Draft {
	return entities.Draft{
		Customer: entities.Customer{
			Name:  "Asha",
			Phone: "+911234567890",
			Email: "asha@example.com",
			Address: entities.Address{
				Street: "12 MG Road", City: "Pune", State: "MH", PostalCode: "411001",
			},
		},
		Items:         items,
		PaymentMethod: method,
	}
}

func item(productID string, qty int) entities.DraftItem {
	return entities.DraftItem{ProductID: productID, Quantity: qty}
}

func (s *memStore) mustOrder(t *testing.T, id string) entities.Order {
	t.Helper()
	o, err := s.GetOrderByID(context.Background(), id)
	if err != nil {
		t.Fatalf("order %s: %v", id, err)
	}
	return o
}
