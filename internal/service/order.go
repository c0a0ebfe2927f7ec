package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/stichkala/order-service/internal/contracts"
	"github.com/stichkala/order-service/internal/entities"
	"github.com/stichkala/order-service/internal/gateway"
	"github.com/stichkala/order-service/internal/pricing"
	"github.com/stichkala/order-service/pkg/trm"
	"github.com/stichkala/order-service/pkg/utils"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100

	catalogConcurrency = 4
)

type OrderRepo interface {
	NextOrderNumber(ctx context.Context) (int64, error)
	CreateOrder(ctx context.Context, o entities.Order) (entities.Order, error)
	GetOrderByID(ctx context.Context, id string) (entities.Order, error)
	GetOrderByNumber(ctx context.Context, number string) (entities.Order, error)
	ListOrders(ctx context.Context, limit int) ([]entities.Order, error)

	// Условные обновления: применяются только если статусы не изменились с момента чтения
	UpdatePayment(ctx context.Context, current entities.Order, patch entities.PaymentPatch) error
	UpdateFulfillment(ctx context.Context, current entities.Order, patch entities.FulfillmentPatch) error

	AddOutbox(ctx context.Context, m entities.OutboxMessage) error
}

type Catalog interface {
	GetProduct(ctx context.Context, id string) (entities.Product, error)
}

type Gateway interface {
	CreatePaymentIntent(ctx context.Context, receipt string, amount int64) (gateway.Intent, error)
	VerifySignature(gatewayOrderID, paymentID, signature string) bool
}

type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
}

type Config struct {
	Pricing          pricing.Policy
	DeliveryLeadTime time.Duration
	GatewayTimeout   time.Duration
	EventTopic       string
}

type orderService struct {
	logger    *slog.Logger
	txManager trm.Manager
	repo      OrderRepo
	catalog   Catalog
	gateway   Gateway
	cache     Cache
	cfg       Config
	now       func() time.Time
}

func NewOrderService(logger *slog.Logger, txManager trm.Manager, repo OrderRepo, catalog Catalog, gw Gateway, cache Cache, cfg Config) *orderService {
	return &orderService{
		logger:    logger.With(slog.String("service", "order")),
		txManager: txManager,
		repo:      repo,
		catalog:   catalog,
		gateway:   gw,
		cache:     cache,
		cfg:       cfg,
		now:       time.Now,
	}
}

// CreateOrder prices the draft from the catalog, assigns an order number and,
// for online payment, registers a remote payment intent before persisting.
// Nothing is stored if any step fails.
func (s *orderService) CreateOrder(ctx context.Context, d entities.Draft) (entities.Order, error) {
	if err := validateDraft(d); err != nil {
		return entities.Order{}, err
	}

	products, err := s.lookupProducts(ctx, d.Items)
	if err != nil {
		return entities.Order{}, err
	}

	items := make([]entities.Item, len(d.Items))
	lines := make([]pricing.Line, len(d.Items))
	for i, it := range d.Items {
		p := products[i]
		items[i] = entities.Item{
			ProductID:     p.ID,
			ProductName:   p.Name,
			Quantity:      it.Quantity,
			UnitPrice:     p.BasePrice,
			Customization: it.Customization,
		}
		if it.Customization.IsEmpty() {
			items[i].Customization = nil
		}
		lines[i] = pricing.Line{UnitPrice: p.BasePrice, Quantity: it.Quantity}
	}

	breakdown, err := pricing.Calculate(lines, d.GiftWrap)
	if err != nil {
		return entities.Order{}, err
	}
	total, err := pricing.Reconcile(breakdown.Total, d.ClientTotal, s.cfg.Pricing)
	if err != nil {
		return entities.Order{}, err
	}
	if d.ClientTotal != nil && *d.ClientTotal != total {
		s.logger.WarnContext(ctx, "client total ignored",
			slog.Int64("client_total", *d.ClientTotal),
			slog.Int64("computed_total", total),
		)
	}

	customer := d.Customer
	if customer.Address.Country == "" {
		customer.Address.Country = entities.DefaultCountry
	}

	now := s.now().UTC()
	order := entities.Order{
		Customer:          customer,
		Items:             items,
		GiftWrap:          d.GiftWrap,
		TotalAmount:       total,
		Status:            entities.StatusPending,
		PaymentStatus:     entities.PaymentStatusPending,
		PaymentMethod:     d.PaymentMethod,
		Notes:             d.Notes,
		EstimatedDelivery: now.Add(s.cfg.DeliveryLeadTime),
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	var created entities.Order
	fn := func() error {
		seq, err := s.repo.NextOrderNumber(ctx)
		if err != nil {
			return err
		}
		order.OrderNumber = entities.FormatOrderNumber(seq)

		if order.PaymentMethod == entities.PaymentMethodOnline {
			intent, err := s.createIntent(ctx, order.OrderNumber, order.TotalAmount)
			if err != nil {
				return err
			}
			order.PaymentDetails.GatewayOrderID = intent.ID
		}

		return s.txManager.Do(ctx, func(ctx context.Context) error {
			created, err = s.repo.CreateOrder(ctx, order)
			return err
		})
	}

	cfg := utils.RetryConfig{
		MaxAttempts:  3,
		InitialDelay: 10 * time.Millisecond,
		RetryOn:      []error{entities.ErrDuplicateOrderNumber},
	}
	if err := utils.Retry(ctx, cfg, fn); err != nil {
		return entities.Order{}, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.InfoContext(ctx, "order created",
		slog.String("order_number", created.OrderNumber),
		slog.String("payment_method", string(created.PaymentMethod)),
		slog.Int64("total", created.TotalAmount),
	)
	s.cacheOrder(created)
	return created, nil
}

func (s *orderService) createIntent(ctx context.Context, receipt string, amount int64) (gateway.Intent, error) {
	if s.cfg.GatewayTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.GatewayTimeout)
		defer cancel()
	}

	intent, err := s.gateway.CreatePaymentIntent(ctx, receipt, amount)
	if err != nil {
		if !errors.Is(err, entities.ErrGatewayUnavailable) {
			err = fmt.Errorf("%w: %v", entities.ErrGatewayUnavailable, err)
		}
		return gateway.Intent{}, err
	}
	return intent, nil
}

// lookupProducts resolves every line concurrently. One unknown product fails the whole order.
func (s *orderService) lookupProducts(ctx context.Context, items []entities.DraftItem) ([]entities.Product, error) {
	products := make([]entities.Product, len(items))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(catalogConcurrency)
	for i, it := range items {
		g.Go(func() error {
			p, err := s.catalog.GetProduct(ctx, it.ProductID)
			if err != nil {
				return err
			}
			if p.BasePrice < 0 {
				return fmt.Errorf("%w: product %s", entities.ErrInvalidPrice, p.ID)
			}
			products[i] = p
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return products, nil
}

func validateDraft(d entities.Draft) error {
	if len(d.Items) == 0 {
		return entities.ErrEmptyOrder
	}
	if !d.PaymentMethod.Valid() {
		return fmt.Errorf("%w: unknown payment method %q", entities.ErrInvalidOrder, d.PaymentMethod)
	}

	if err := validateAddress(d.Customer.Address); err != nil {
		return err
	}

	customized := false
	for i, it := range d.Items {
		if strings.TrimSpace(it.ProductID) == "" {
			return fmt.Errorf("%w: item %d has no product", entities.ErrInvalidOrder, i)
		}
		if it.Quantity < 1 || it.Quantity > entities.MaxItemQuantity {
			return fmt.Errorf("%w: item %d", entities.ErrInvalidQuantity, i)
		}
		if !it.Customization.IsEmpty() {
			customized = true
		}
	}

	// по кастомным заказам мастер связывается с покупателем в WhatsApp
	if customized && strings.TrimSpace(d.Customer.WhatsApp) == "" {
		return entities.ErrWhatsAppRequired
	}
	return nil
}

func validateAddress(a entities.Address) error {
	missing := make([]string, 0, 4)
	for _, f := range []struct{ name, value string }{
		{"street", a.Street},
		{"city", a.City},
		{"state", a.State},
		{"postal code", a.PostalCode},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: address is missing %s", entities.ErrInvalidOrder, strings.Join(missing, ", "))
	}
	return nil
}

func (s *orderService) GetOrderByID(ctx context.Context, id string) (entities.Order, error) {
	if data, ok := s.cache.Get(id); ok {
		var order entities.Order
		if err := order.Unmarshal(data); err != nil {
			s.logger.Error("failed to unmarshal order", slog.String("id", id), slog.Any("error", err))
			return entities.Order{}, err
		}
		return order, nil
	}

	var order entities.Order
	fn := func() error {
		var err error
		order, err = s.repo.GetOrderByID(ctx, id)
		return err
	}
	cfg := utils.RetryConfig{
		InitialDelay: 50 * time.Millisecond,
		MaxAttempts:  3,
		Multiplier:   2,
	}
	if err := utils.Retry(ctx, cfg, fn, entities.ErrOrderNotFound); err != nil {
		return entities.Order{}, err
	}

	s.cacheOrder(order)
	return order, nil
}

// GetOrderByNumber looks the order up by its human-facing number, ignoring case.
func (s *orderService) GetOrderByNumber(ctx context.Context, number string) (entities.Order, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return entities.Order{}, entities.ErrOrderNotFound
	}

	order, err := s.repo.GetOrderByNumber(ctx, number)
	if err != nil {
		return entities.Order{}, err
	}
	s.cacheOrder(order)
	return order, nil
}

func (s *orderService) ListOrders(ctx context.Context, limit int) ([]entities.Order, error) {
	switch {
	case limit <= 0:
		limit = DefaultListLimit
	case limit > MaxListLimit:
		limit = MaxListLimit
	}
	return s.repo.ListOrders(ctx, limit)
}

// UpdateStatus moves an order one step along the fulfillment pipeline or
// cancels it. Repeating the current status only applies the supplied
// tracking number and notes; with neither it is a no-op.
func (s *orderService) UpdateStatus(ctx context.Context, id string, upd entities.StatusUpdate) (entities.Order, error) {
	var updated entities.Order

	fn := func() error {
		current, err := s.repo.GetOrderByID(ctx, id)
		if err != nil {
			return err
		}
		now := s.now().UTC()
		patch := entities.FulfillmentPatch{Status: upd.Status, Notes: upd.Notes}

		if current.Status == upd.Status {
			if upd.TrackingNumber != "" {
				if current.Status != entities.StatusShipped {
					return fmt.Errorf("%w: tracking number needs a shipped order", entities.ErrInvalidTransition)
				}
				patch.TrackingNumber = upd.TrackingNumber
			}
			if patch.TrackingNumber == "" && patch.Notes == "" {
				updated = current
				return nil
			}
			return s.txManager.Do(ctx, func(ctx context.Context) error {
				if err := s.repo.UpdateFulfillment(ctx, current, patch); err != nil {
					return err
				}
				updated, err = s.repo.GetOrderByID(ctx, id)
				return err
			})
		}

		next, err := entities.Transition(current, upd.Status, current.PaymentStatus)
		if err != nil {
			return err
		}

		switch next.Status {
		case entities.StatusShipped:
			patch.TrackingNumber = upd.TrackingNumber
		case entities.StatusDelivered:
			patch.ActualDelivery = &now
		}

		return s.txManager.Do(ctx, func(ctx context.Context) error {
			if err := s.repo.UpdateFulfillment(ctx, current, patch); err != nil {
				return err
			}
			updated, err = s.repo.GetOrderByID(ctx, id)
			if err != nil {
				return err
			}
			if next.Status == entities.StatusConfirmed {
				return enqueueConfirmation(ctx, s.repo, updated, s.cfg.EventTopic, now)
			}
			return nil
		})
	}

	cfg := utils.RetryConfig{MaxAttempts: 3, InitialDelay: 10 * time.Millisecond, RetryOn: []error{entities.ErrConflict}}
	if err := utils.Retry(ctx, cfg, fn); err != nil {
		return entities.Order{}, err
	}

	s.logger.InfoContext(ctx, "order status updated",
		slog.String("order_number", updated.OrderNumber),
		slog.String("status", string(updated.Status)),
	)
	s.cacheOrder(updated)
	return updated, nil
}

func (s *orderService) WarmUpCache(ctx context.Context, count int) error {
	orders, err := s.repo.ListOrders(ctx, count)
	if err != nil {
		return fmt.Errorf("failed to get latest orders: %w", err)
	}
	for _, o := range orders {
		s.cacheOrder(o)
	}
	s.logger.Info("cache warmed up", slog.Int("count", len(orders)))
	return nil
}

func (s *orderService) cacheOrder(o entities.Order) {
	putCache(s.cache, s.logger, o)
}

func putCache(c Cache, logger *slog.Logger, o entities.Order) {
	data, err := o.Marshal()
	if err != nil {
		logger.Error("failed to marshal order", slog.String("id", o.ID), slog.Any("error", err))
		return
	}
	c.Set(o.ID, data)
}

// enqueueConfirmation writes the confirmation event. Callers run it in the
// transaction that confirmed the order.
func enqueueConfirmation(ctx context.Context, repo OrderRepo, o entities.Order, topic string, now time.Time) error {
	event := contracts.NewOrderEvent(contracts.EventOrderConfirmed, contracts.ReasonConfirmed, o, now)
	msg, err := event.OutboxMessage(topic)
	if err != nil {
		return err
	}
	if err := repo.AddOutbox(ctx, msg); err != nil {
		return fmt.Errorf("failed to enqueue confirmation: %w", err)
	}
	return nil
}
