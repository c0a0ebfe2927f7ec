package service_test

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stichkala/order-service/internal/entities"
	"github.com/stichkala/order-service/internal/gateway"
	"github.com/stichkala/order-service/internal/pricing"
	"github.com/stichkala/order-service/internal/service"
	mocks "github.com/stichkala/order-service/internal/service/mocks"
	"github.com/stichkala/order-service/pkg/cache"
	txMocks "github.com/stichkala/order-service/pkg/trm/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const leadTime = 7 * 24 * time.Hour

func testConfig(policy pricing.Policy) service.Config {
	return service.Config{
		Pricing:          policy,
		DeliveryLeadTime: leadTime,
		GatewayTimeout:   time.Second,
		EventTopic:       "order-events",
	}
}

type orderFixture struct {
	store *memStore
	gw    *testGateway
	cache *cache.LRUCache
	svc   interface {
		CreateOrder(ctx context.Context, d entities.Draft) (entities.Order, error)
		GetOrderByID(ctx context.Context, id string) (entities.Order, error)
		GetOrderByNumber(ctx context.Context, number string) (entities.Order, error)
		ListOrders(ctx context.Context, limit int) ([]entities.Order, error)
		UpdateStatus(ctx context.Context, id string, upd entities.StatusUpdate) (entities.Order, error)
	}
}

func newOrderFixture(policy pricing.Policy) *orderFixture {
	store := newMemStore(defaultProducts...)
	gw := newTestGateway()
	c := cache.NewLRUCache(100, time.Minute)
	cfg := testConfig(policy)
	return &orderFixture{
		store: store,
		gw:    gw,
		cache: c,
		svc:   service.NewOrderService(discardLogger(), store, store, store, gw, c, cfg),
	}
}

func ptr[T any](v T) *T { return &v }

func TestCreateOrder_Pricing(t *testing.T) {
	testCases := []struct {
		name        string
		items       []entities.DraftItem
		giftWrap    bool
		clientTotal *int64
		want        int64
	}{
		{name: "delivery fee under threshold", items: []entities.DraftItem{item("hoop", 1)}, want: 350},
		{name: "gift wrap and delivery", items: []entities.DraftItem{item("hoop", 1)}, giftWrap: true, want: 400},
		{name: "free delivery", items: []entities.DraftItem{item("tote", 1)}, want: 600},
		{name: "gift wrap reaches threshold", items: []entities.DraftItem{item("frame", 1)}, giftWrap: true, want: 500},
		{name: "several lines", items: []entities.DraftItem{item("card", 2), item("coaster", 3)}, want: 540},
		{name: "client total ignored", items: []entities.DraftItem{item("hoop", 1)}, clientTotal: ptr(int64(9999)), want: 350},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newOrderFixture(pricing.Policy{})
			d := testDraft(entities.PaymentMethodCashOnDelivery, tc.items...)
			d.GiftWrap = tc.giftWrap
			d.ClientTotal = tc.clientTotal

			order, err := f.svc.CreateOrder(context.Background(), d)
			require.NoError(t, err)
			assert.Equal(t, tc.want, order.TotalAmount)
			assert.Equal(t, tc.want, f.store.mustOrder(t, order.ID).TotalAmount)
		})
	}
}

func TestCreateOrder_Defaults(t *testing.T) {
	f := newOrderFixture(pricing.Policy{})
	d := testDraft(entities.PaymentMethodManualTransfer, item("hoop", 2))

	order, err := f.svc.CreateOrder(context.Background(), d)
	require.NoError(t, err)

	assert.Equal(t, "HG000001", order.OrderNumber)
	assert.Equal(t, entities.StatusPending, order.Status)
	assert.Equal(t, entities.PaymentStatusPending, order.PaymentStatus)
	assert.Equal(t, entities.DefaultCountry, order.Customer.Address.Country)
	assert.Equal(t, order.CreatedAt.Add(leadTime), order.EstimatedDelivery)
	assert.Equal(t, "Embroidery hoop", order.Items[0].ProductName)
	assert.Equal(t, int64(300), order.Items[0].UnitPrice)
	assert.Empty(t, order.PaymentDetails.GatewayOrderID)
	assert.Zero(t, f.gw.calls.Load())

	_, cached := f.cache.Get(order.ID)
	assert.True(t, cached)
}

func TestCreateOrder_Online(t *testing.T) {
	f := newOrderFixture(pricing.Policy{})

	order, err := f.svc.CreateOrder(context.Background(), testDraft(entities.PaymentMethodOnline, item("hoop", 1)))
	require.NoError(t, err)

	assert.Equal(t, "order_rzp_HG000001", order.PaymentDetails.GatewayOrderID)
	assert.Equal(t, int64(1), f.gw.calls.Load())
}

func TestCreateOrder_GatewayFailure(t *testing.T) {
	f := newOrderFixture(pricing.Policy{})
	f.gw.err = errors.New("connection refused")

	_, err := f.svc.CreateOrder(context.Background(), testDraft(entities.PaymentMethodOnline, item("hoop", 1)))
	assert.ErrorIs(t, err, entities.ErrGatewayUnavailable)
	assert.Zero(t, f.store.orderCount())
}

func TestCreateOrder_UnknownProduct(t *testing.T) {
	f := newOrderFixture(pricing.Policy{})

	_, err := f.svc.CreateOrder(context.Background(),
		testDraft(entities.PaymentMethodOnline, item("hoop", 1), item("ghost", 1)))

	assert.ErrorIs(t, err, entities.ErrProductNotFound)
	assert.Zero(t, f.store.orderCount())
	assert.Zero(t, f.gw.calls.Load())
}

func TestCreateOrder_Validation(t *testing.T) {
	customized := item("hoop", 1)
	customized.Customization = &entities.Customization{Text: "Asha"}

	noAddress := testDraft(entities.PaymentMethodCashOnDelivery, item("hoop", 1))
	noAddress.Customer.Address = entities.Address{}

	noPostalCode := testDraft(entities.PaymentMethodCashOnDelivery, item("hoop", 1))
	noPostalCode.Customer.Address.PostalCode = "  "

	testCases := []struct {
		name    string
		draft   entities.Draft
		wantErr error
	}{
		{"no items", testDraft(entities.PaymentMethodCashOnDelivery), entities.ErrEmptyOrder},
		{"zero quantity", testDraft(entities.PaymentMethodCashOnDelivery, item("hoop", 0)), entities.ErrInvalidQuantity},
		{"unknown payment method", testDraft("card", item("hoop", 1)), entities.ErrInvalidOrder},
		{"missing product id", testDraft(entities.PaymentMethodCashOnDelivery, item("", 1)), entities.ErrInvalidOrder},
		{"customized without whatsapp", testDraft(entities.PaymentMethodCashOnDelivery, customized), entities.ErrWhatsAppRequired},
		{"quantity above cap", testDraft(entities.PaymentMethodCashOnDelivery, item("hoop", entities.MaxItemQuantity+1)), entities.ErrInvalidQuantity},
		{"quantity overflows total", testDraft(entities.PaymentMethodOnline, item("hoop", math.MaxInt)), entities.ErrInvalidQuantity},
		{"empty address", noAddress, entities.ErrInvalidOrder},
		{"missing postal code", noPostalCode, entities.ErrInvalidOrder},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newOrderFixture(pricing.Policy{})
			_, err := f.svc.CreateOrder(context.Background(), tc.draft)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Zero(t, f.store.orderCount())
			assert.Zero(t, f.gw.calls.Load(), "no gateway intent for a rejected draft")
		})
	}
}

func TestCreateOrder_CustomizedWithWhatsApp(t *testing.T) {
	f := newOrderFixture(pricing.Policy{})
	it := item("hoop", 1)
	it.Customization = &entities.Customization{Text: "Asha", Color: "gold"}
	d := testDraft(entities.PaymentMethodCashOnDelivery, it, item("card", 1))
	d.Customer.WhatsApp = "+911234567890"

	order, err := f.svc.CreateOrder(context.Background(), d)
	require.NoError(t, err)
	assert.True(t, order.HasCustomization())
	assert.Nil(t, order.Items[1].Customization)
}

func TestCreateOrder_RejectMismatch(t *testing.T) {
	f := newOrderFixture(pricing.Policy{RejectMismatch: true})
	d := testDraft(entities.PaymentMethodCashOnDelivery, item("hoop", 1))
	d.ClientTotal = ptr(int64(9999))

	_, err := f.svc.CreateOrder(context.Background(), d)
	assert.ErrorIs(t, err, entities.ErrTotalMismatch)
	assert.Zero(t, f.store.orderCount())

	d.ClientTotal = ptr(int64(350))
	order, err := f.svc.CreateOrder(context.Background(), d)
	require.NoError(t, err)
	assert.Equal(t, int64(350), order.TotalAmount)
}

func TestCreateOrder_DuplicateNumberRetried(t *testing.T) {
	f := newOrderFixture(pricing.Policy{})
	f.store.taken["HG000001"] = true

	order, err := f.svc.CreateOrder(context.Background(), testDraft(entities.PaymentMethodCashOnDelivery, item("hoop", 1)))
	require.NoError(t, err)
	assert.Equal(t, "HG000002", order.OrderNumber)
}

func TestCreateOrder_ConcurrentNumbering(t *testing.T) {
	f := newOrderFixture(pricing.Policy{})
	const n = 50

	var wg sync.WaitGroup
	numbers := make([]string, n)
	errs := make([]error, n)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			method := entities.PaymentMethodCashOnDelivery
			if i%2 == 0 {
				method = entities.PaymentMethodOnline
			}
			o, err := f.svc.CreateOrder(context.Background(), testDraft(method, item("hoop", 1)))
			numbers[i], errs[i] = o.OrderNumber, err
		}()
	}
	wg.Wait()

	seen := make(map[string]bool, n)
	for i := range n {
		require.NoError(t, errs[i])
		assert.Regexp(t, `^HG\d{6}$`, numbers[i])
		assert.False(t, seen[numbers[i]], "duplicate %s", numbers[i])
		seen[numbers[i]] = true
	}
	assert.Equal(t, n, f.store.orderCount())
}

func TestGetOrderByNumber(t *testing.T) {
	f := newOrderFixture(pricing.Policy{})
	created, err := f.svc.CreateOrder(context.Background(), testDraft(entities.PaymentMethodCashOnDelivery, item("hoop", 1)))
	require.NoError(t, err)

	got, err := f.svc.GetOrderByNumber(context.Background(), " hg000001 ")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = f.svc.GetOrderByNumber(context.Background(), "HG999999")
	assert.ErrorIs(t, err, entities.ErrOrderNotFound)

	_, err = f.svc.GetOrderByNumber(context.Background(), "")
	assert.ErrorIs(t, err, entities.ErrOrderNotFound)
}

func TestListOrders(t *testing.T) {
	f := newOrderFixture(pricing.Policy{})
	for range 3 {
		_, err := f.svc.CreateOrder(context.Background(), testDraft(entities.PaymentMethodCashOnDelivery, item("hoop", 1)))
		require.NoError(t, err)
	}

	all, err := f.svc.ListOrders(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	two, err := f.svc.ListOrders(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, two, 2)
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("cod pipeline", func(t *testing.T) {
		f := newOrderFixture(pricing.Policy{})
		order, err := f.svc.CreateOrder(ctx, testDraft(entities.PaymentMethodCashOnDelivery, item("hoop", 1)))
		require.NoError(t, err)

		steps := []entities.Status{
			entities.StatusConfirmed, entities.StatusInProgress, entities.StatusCompleted,
			entities.StatusShipped, entities.StatusDelivered,
		}
		for _, st := range steps {
			order, err = f.svc.UpdateStatus(ctx, order.ID, entities.StatusUpdate{Status: st, TrackingNumber: "DTDC123"})
			require.NoError(t, err, "step %s", st)
			assert.Equal(t, st, order.Status)
		}

		assert.Equal(t, "DTDC123", order.TrackingNumber)
		assert.NotNil(t, order.ActualDelivery)
		assert.Len(t, f.store.events(), 1, "only the confirmation is announced")

		_, err = f.svc.UpdateStatus(ctx, order.ID, entities.StatusUpdate{Status: entities.StatusCancelled})
		assert.ErrorIs(t, err, entities.ErrInvalidTransition)
	})

	t.Run("online order waits for payment", func(t *testing.T) {
		f := newOrderFixture(pricing.Policy{})
		order, err := f.svc.CreateOrder(ctx, testDraft(entities.PaymentMethodOnline, item("hoop", 1)))
		require.NoError(t, err)

		_, err = f.svc.UpdateStatus(ctx, order.ID, entities.StatusUpdate{Status: entities.StatusConfirmed})
		assert.ErrorIs(t, err, entities.ErrInvalidTransition)

		cancelled, err := f.svc.UpdateStatus(ctx, order.ID, entities.StatusUpdate{Status: entities.StatusCancelled})
		require.NoError(t, err)
		assert.Equal(t, entities.StatusCancelled, cancelled.Status)
		assert.Empty(t, f.store.events())
	})

	t.Run("no skipping", func(t *testing.T) {
		f := newOrderFixture(pricing.Policy{})
		order, err := f.svc.CreateOrder(ctx, testDraft(entities.PaymentMethodCashOnDelivery, item("hoop", 1)))
		require.NoError(t, err)

		_, err = f.svc.UpdateStatus(ctx, order.ID, entities.StatusUpdate{Status: entities.StatusShipped})
		assert.ErrorIs(t, err, entities.ErrInvalidTransition)
		assert.Equal(t, entities.StatusPending, f.store.mustOrder(t, order.ID).Status)
	})

	t.Run("same status is a no-op", func(t *testing.T) {
		f := newOrderFixture(pricing.Policy{})
		order, err := f.svc.CreateOrder(ctx, testDraft(entities.PaymentMethodCashOnDelivery, item("hoop", 1)))
		require.NoError(t, err)

		got, err := f.svc.UpdateStatus(ctx, order.ID, entities.StatusUpdate{Status: entities.StatusPending})
		require.NoError(t, err)
		assert.Equal(t, order.ID, got.ID)
		assert.Equal(t, entities.StatusPending, got.Status)
	})

	t.Run("same status keeps notes and tracking", func(t *testing.T) {
		f := newOrderFixture(pricing.Policy{})
		order, err := f.svc.CreateOrder(ctx, testDraft(entities.PaymentMethodCashOnDelivery, item("hoop", 1)))
		require.NoError(t, err)

		got, err := f.svc.UpdateStatus(ctx, order.ID, entities.StatusUpdate{Status: entities.StatusPending, Notes: "call before delivery"})
		require.NoError(t, err)
		assert.Equal(t, "call before delivery", got.Notes)
		assert.Equal(t, "call before delivery", f.store.mustOrder(t, order.ID).Notes)

		_, err = f.svc.UpdateStatus(ctx, order.ID, entities.StatusUpdate{Status: entities.StatusPending, TrackingNumber: "DTDC1"})
		assert.ErrorIs(t, err, entities.ErrInvalidTransition)

		for _, st := range []entities.Status{
			entities.StatusConfirmed, entities.StatusInProgress, entities.StatusCompleted, entities.StatusShipped,
		} {
			_, err = f.svc.UpdateStatus(ctx, order.ID, entities.StatusUpdate{Status: st})
			require.NoError(t, err, "step %s", st)
		}

		got, err = f.svc.UpdateStatus(ctx, order.ID, entities.StatusUpdate{Status: entities.StatusShipped, TrackingNumber: "DTDC2"})
		require.NoError(t, err)
		assert.Equal(t, entities.StatusShipped, got.Status)
		assert.Equal(t, "DTDC2", got.TrackingNumber)
		assert.Len(t, f.store.events(), 1)
	})

	t.Run("unknown order", func(t *testing.T) {
		f := newOrderFixture(pricing.Policy{})
		_, err := f.svc.UpdateStatus(ctx, "missing", entities.StatusUpdate{Status: entities.StatusConfirmed})
		assert.ErrorIs(t, err, entities.ErrOrderNotFound)
	})
}

func TestOrderService_GetOrderByID(t *testing.T) {
	type MockBehavior func(orderRepo *mocks.MockOrderRepo, cache *mocks.MockCache)

	validOrder := entities.Order{ID: "123", OrderNumber: "HG000123"}
	validData, err := validOrder.Marshal()
	require.NoError(t, err)

	testCases := []struct {
		name         string
		id           string
		mockBehavior MockBehavior
		wantErr      error
		want         entities.Order
	}{
		{
			name: "success from cache",
			id:   "123",
			mockBehavior: func(_ *mocks.MockOrderRepo, cache *mocks.MockCache) {
				cache.EXPECT().Get("123").Return(validData, true).Once()
			},
			want: validOrder,
		},
		{
			name: "cache hit but unmarshal fails",
			id:   "123",
			mockBehavior: func(_ *mocks.MockOrderRepo, cache *mocks.MockCache) {
				cache.EXPECT().Get("123").Return([]byte("broken"), true).Once()
			},
			wantErr: entities.ErrInvalidOrder,
		},
		{
			name: "success from repo and set to cache",
			id:   "123",
			mockBehavior: func(orderRepo *mocks.MockOrderRepo, cache *mocks.MockCache) {
				cache.EXPECT().Get("123").Return(nil, false).Once()
				orderRepo.EXPECT().GetOrderByID(mock.Anything, "123").Return(validOrder, nil).Once()
				cache.EXPECT().Set("123", validData).Return().Once()
			},
			want: validOrder,
		},
		{
			name: "not found is not retried",
			id:   "not-exist",
			mockBehavior: func(orderRepo *mocks.MockOrderRepo, cache *mocks.MockCache) {
				cache.EXPECT().Get("not-exist").Return(nil, false).Once()
				orderRepo.EXPECT().GetOrderByID(mock.Anything, "not-exist").
					Return(entities.Order{}, entities.ErrOrderNotFound).Once()
			},
			wantErr: entities.ErrOrderNotFound,
		},
		{
			name: "second attempt from repo",
			id:   "123",
			mockBehavior: func(orderRepo *mocks.MockOrderRepo, cache *mocks.MockCache) {
				cache.EXPECT().Get("123").Return(nil, false).Once()
				// первая попытка - временная ошибка
				orderRepo.EXPECT().GetOrderByID(mock.Anything, "123").
					Return(entities.Order{}, errors.New("some error")).Once()
				// вторая попытка - всё ок
				orderRepo.EXPECT().GetOrderByID(mock.Anything, "123").Return(validOrder, nil).Once()
				cache.EXPECT().Set("123", validData).Return().Once()
			},
			want: validOrder,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			orderRepo := mocks.NewMockOrderRepo(t)
			cache := mocks.NewMockCache(t)
			catalog := mocks.NewMockCatalog(t)
			gw := mocks.NewMockGateway(t)
			tx := txMocks.NewMockManager(t)

			tc.mockBehavior(orderRepo, cache)

			svc := service.NewOrderService(discardLogger(), tx, orderRepo, catalog, gw, cache, service.Config{})

			got, err := svc.GetOrderByID(context.Background(), tc.id)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestOrderService_CreateOrder_PersistFailure(t *testing.T) {
	orderRepo := mocks.NewMockOrderRepo(t)
	cache := mocks.NewMockCache(t)
	catalog := mocks.NewMockCatalog(t)
	gw := mocks.NewMockGateway(t)
	tx := txMocks.NewMockManager(t)
	dbErr := errors.New("db error")

	catalog.EXPECT().GetProduct(mock.Anything, "hoop").
		Return(entities.Product{ID: "hoop", Name: "Embroidery hoop", BasePrice: 300}, nil).Once()
	orderRepo.EXPECT().NextOrderNumber(mock.Anything).Return(int64(7), nil).Once()
	gw.EXPECT().CreatePaymentIntent(mock.Anything, "HG000007", int64(350)).
		Return(gateway.Intent{ID: "order_rzp_7", Amount: 35000, Currency: "INR"}, nil).Once()
	tx.EXPECT().Do(mock.Anything, mock.Anything).
		RunAndReturn(func(ctx context.Context, cb func(ctx context.Context) error) error {
			return cb(ctx)
		}).Once()
	orderRepo.EXPECT().CreateOrder(mock.Anything, mock.MatchedBy(func(o entities.Order) bool {
		return o.OrderNumber == "HG000007" && o.PaymentDetails.GatewayOrderID == "order_rzp_7" && o.TotalAmount == 350
	})).Return(entities.Order{}, dbErr).Once()

	svc := service.NewOrderService(discardLogger(), tx, orderRepo, catalog, gw, cache, service.Config{})
	_, err := svc.CreateOrder(context.Background(), testDraft(entities.PaymentMethodOnline, item("hoop", 1)))
	assert.ErrorIs(t, err, dbErr)
}

func TestOrderService_WarmUpCache(t *testing.T) {
	orderRepo := mocks.NewMockOrderRepo(t)
	cache := mocks.NewMockCache(t)

	orders := []entities.Order{{ID: "a"}, {ID: "b"}}
	orderRepo.EXPECT().ListOrders(mock.Anything, 10).Return(orders, nil).Once()
	cache.EXPECT().Set(mock.Anything, mock.Anything).Return().Times(2)

	svc := service.NewOrderService(discardLogger(), txMocks.NewMockManager(t), orderRepo,
		mocks.NewMockCatalog(t), mocks.NewMockGateway(t), cache, service.Config{})
	require.NoError(t, svc.WarmUpCache(context.Background(), 10))

	orderRepo.EXPECT().ListOrders(mock.Anything, 5).Return(nil, fmt.Errorf("boom")).Once()
	assert.Error(t, svc.WarmUpCache(context.Background(), 5))
}
