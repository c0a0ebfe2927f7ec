package handler_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stichkala/order-service/internal/entities"
	"github.com/stichkala/order-service/internal/handler"
	mocks "github.com/stichkala/order-service/internal/handler/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockBehavior func(orders *mocks.MockOrderService, payments *mocks.MockPaymentService)

type testCase struct {
	name         string
	method       string
	path         string
	body         string
	mockBehavior MockBehavior
	wantStatus   int
	wantBody     string
}

func runCases(t *testing.T, testCases []testCase, middlewares ...func(http.Handler) http.Handler) {
	t.Helper()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			orders := mocks.NewMockOrderService(t)
			payments := mocks.NewMockPaymentService(t)
			if tc.mockBehavior != nil {
				tc.mockBehavior(orders, payments)
			}

			logger := slog.New(slog.NewTextHandler(io.Discard, nil))
			h := handler.NewHTTPHandler(logger, orders, payments, middlewares...)

			r := chi.NewRouter()
			h.Init(r)

			var body io.Reader
			if tc.body != "" {
				body = strings.NewReader(tc.body)
			}
			req := httptest.NewRequest(tc.method, tc.path, body)
			rr := httptest.NewRecorder()

			r.ServeHTTP(rr, req)

			res := rr.Result()
			defer res.Body.Close()

			data, err := io.ReadAll(res.Body)
			require.NoError(t, err)

			assert.Equal(t, tc.wantStatus, res.StatusCode)
			assert.Contains(t, string(data), tc.wantBody)
		})
	}
}

var paidOrder = entities.Order{
	ID:            "7f1c",
	OrderNumber:   "HG000001",
	Customer:      entities.Customer{Name: "Asha", Phone: "+911234567890"},
	Items:         []entities.Item{{ProductID: "hoop", ProductName: "Embroidery hoop", Quantity: 1, UnitPrice: 300}},
	TotalAmount:   350,
	Status:        entities.StatusConfirmed,
	PaymentStatus: entities.PaymentStatusPaid,
	PaymentMethod: entities.PaymentMethodOnline,
	PaymentDetails: entities.PaymentDetails{
		GatewayOrderID:   "order_rzp_1",
		GatewayPaymentID: "pay_1",
		GatewaySignature: "secret-signature",
	},
}

const createBody = `{
	"customerInfo": {"name": "Asha", "phone": "+911234567890", "address": {"street": "12 MG Road", "city": "Pune", "state": "MH", "pincode": "411001"}},
	"items": [{"productId": "hoop", "quantity": 1, "customization": {"text": "Asha", "specialInstructions": "gold thread"}}],
	"totalAmount": 9999,
	"paymentMethod": "online",
	"giftWrap": true
}`

func TestHTTPHandler_CreateOrder(t *testing.T) {
	created := paidOrder
	created.Status, created.PaymentStatus = entities.StatusPending, entities.PaymentStatusPending

	runCases(t, []testCase{
		{
			name:   "success",
			method: http.MethodPost,
			path:   "/orders",
			body:   createBody,
			mockBehavior: func(orders *mocks.MockOrderService, _ *mocks.MockPaymentService) {
				orders.EXPECT().CreateOrder(mock.Anything, mock.MatchedBy(func(d entities.Draft) bool {
					return d.PaymentMethod == entities.PaymentMethodOnline &&
						d.GiftWrap &&
						d.ClientTotal != nil && *d.ClientTotal == 9999 &&
						d.Customer.Address.PostalCode == "411001" &&
						len(d.Items) == 1 &&
						d.Items[0].Customization.Instructions == "gold thread"
				})).Return(created, nil).Once()
			},
			wantStatus: http.StatusCreated,
			wantBody:   `"razorpayOrderId":"order_rzp_1"`,
		},
		{
			name:       "no items",
			method:     http.MethodPost,
			path:       "/orders",
			body:       `{"customerInfo": {"name": "Asha", "phone": "1"}, "items": [], "paymentMethod": "cod"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `Items":"min"`,
		},
		{
			name:       "unknown payment method",
			method:     http.MethodPost,
			path:       "/orders",
			body:       `{"customerInfo": {"name": "Asha", "phone": "1"}, "items": [{"productId": "hoop", "quantity": 1}], "paymentMethod": "card"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `PaymentMethod":"oneof"`,
		},
		{
			name:       "missing address",
			method:     http.MethodPost,
			path:       "/orders",
			body:       `{"customerInfo": {"name": "Asha", "phone": "1", "address": {"city": "Pune", "pincode": "411001"}}, "items": [{"productId": "hoop", "quantity": 1}], "paymentMethod": "cod"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `Address.Street":"required"`,
		},
		{
			name:       "bad pincode",
			method:     http.MethodPost,
			path:       "/orders",
			body:       `{"customerInfo": {"name": "Asha", "phone": "1", "address": {"street": "12 MG Road", "city": "Pune", "state": "MH", "pincode": "41100"}}, "items": [{"productId": "hoop", "quantity": 1}], "paymentMethod": "cod"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `Address.Pincode":"len"`,
		},
		{
			name:       "quantity above cap",
			method:     http.MethodPost,
			path:       "/orders",
			body:       `{"customerInfo": {"name": "Asha", "phone": "1", "address": {"street": "12 MG Road", "city": "Pune", "state": "MH", "pincode": "411001"}}, "items": [{"productId": "hoop", "quantity": 61489146912365173}], "paymentMethod": "online"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `Quantity":"max"`,
		},
		{
			name:   "quantity rejected by pricing",
			method: http.MethodPost,
			path:   "/orders",
			body:   createBody,
			mockBehavior: func(orders *mocks.MockOrderService, _ *mocks.MockPaymentService) {
				orders.EXPECT().CreateOrder(mock.Anything, mock.Anything).
					Return(entities.Order{}, fmt.Errorf("%w: line 0 overflows the total", entities.ErrInvalidQuantity)).Once()
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   `"item quantity is out of range: line 0 overflows the total"`,
		},
		{
			name:       "unknown field",
			method:     http.MethodPost,
			path:       "/orders",
			body:       `{"orderNumber": "HG999999"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `"invalid request body"`,
		},
		{
			name:   "unknown product",
			method: http.MethodPost,
			path:   "/orders",
			body:   createBody,
			mockBehavior: func(orders *mocks.MockOrderService, _ *mocks.MockPaymentService) {
				orders.EXPECT().CreateOrder(mock.Anything, mock.Anything).
					Return(entities.Order{}, fmt.Errorf("%w: ghost", entities.ErrProductNotFound)).Once()
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   `"product not found: ghost"`,
		},
		{
			name:   "gateway down",
			method: http.MethodPost,
			path:   "/orders",
			body:   createBody,
			mockBehavior: func(orders *mocks.MockOrderService, _ *mocks.MockPaymentService) {
				orders.EXPECT().CreateOrder(mock.Anything, mock.Anything).
					Return(entities.Order{}, entities.ErrGatewayUnavailable).Once()
			},
			wantStatus: http.StatusBadGateway,
			wantBody:   `"payment gateway unavailable"`,
		},
		{
			name:   "internal error",
			method: http.MethodPost,
			path:   "/orders",
			body:   createBody,
			mockBehavior: func(orders *mocks.MockOrderService, _ *mocks.MockPaymentService) {
				orders.EXPECT().CreateOrder(mock.Anything, mock.Anything).
					Return(entities.Order{}, errors.New("db error")).Once()
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `"internal server error"`,
		},
	})
}

func TestHTTPHandler_GetOrders(t *testing.T) {
	runCases(t, []testCase{
		{
			name:   "by id",
			method: http.MethodGet,
			path:   "/orders/7f1c",
			mockBehavior: func(orders *mocks.MockOrderService, _ *mocks.MockPaymentService) {
				orders.EXPECT().GetOrderByID(mock.Anything, "7f1c").Return(paidOrder, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   `"orderNumber":"HG000001"`,
		},
		{
			name:   "not found",
			method: http.MethodGet,
			path:   "/orders/not-exist",
			mockBehavior: func(orders *mocks.MockOrderService, _ *mocks.MockPaymentService) {
				orders.EXPECT().GetOrderByID(mock.Anything, "not-exist").
					Return(entities.Order{}, entities.ErrOrderNotFound).Once()
			},
			wantStatus: http.StatusNotFound,
			wantBody:   `"order not found"`,
		},
		{
			name:   "track by number",
			method: http.MethodGet,
			path:   "/orders/track/hg000001",
			mockBehavior: func(orders *mocks.MockOrderService, _ *mocks.MockPaymentService) {
				orders.EXPECT().GetOrderByNumber(mock.Anything, "hg000001").Return(paidOrder, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   `"id":"7f1c"`,
		},
		{
			name:   "list with limit",
			method: http.MethodGet,
			path:   "/orders?limit=5",
			mockBehavior: func(orders *mocks.MockOrderService, _ *mocks.MockPaymentService) {
				orders.EXPECT().ListOrders(mock.Anything, 5).Return([]entities.Order{paidOrder}, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   `"orders":[{`,
		},
		{
			name:   "empty list",
			method: http.MethodGet,
			path:   "/orders",
			mockBehavior: func(orders *mocks.MockOrderService, _ *mocks.MockPaymentService) {
				orders.EXPECT().ListOrders(mock.Anything, 0).Return(nil, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   `"orders":[]`,
		},
		{
			name:       "bad limit",
			method:     http.MethodGet,
			path:       "/orders?limit=abc",
			wantStatus: http.StatusBadRequest,
			wantBody:   `"invalid limit"`,
		},
	})
}

func TestHTTPHandler_OrderJSONHidesSignature(t *testing.T) {
	orders := mocks.NewMockOrderService(t)
	orders.EXPECT().GetOrderByID(mock.Anything, "7f1c").Return(paidOrder, nil).Once()

	h := handler.NewHTTPHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), orders, mocks.NewMockPaymentService(t))
	r := chi.NewRouter()
	h.Init(r)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/orders/7f1c", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	assert.NotContains(t, rr.Body.String(), "secret-signature")

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "paid", resp["paymentStatus"])
	assert.Equal(t, float64(350), resp["totalAmount"])
}

func TestHTTPHandler_UpdateStatus(t *testing.T) {
	runCases(t, []testCase{
		{
			name:   "shipped",
			method: http.MethodPatch,
			path:   "/orders/7f1c/status",
			body:   `{"status": "shipped", "trackingNumber": "DTDC123"}`,
			mockBehavior: func(orders *mocks.MockOrderService, _ *mocks.MockPaymentService) {
				shipped := paidOrder
				shipped.Status, shipped.TrackingNumber = entities.StatusShipped, "DTDC123"
				orders.EXPECT().UpdateStatus(mock.Anything, "7f1c", entities.StatusUpdate{
					Status: entities.StatusShipped, TrackingNumber: "DTDC123",
				}).Return(shipped, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   `"trackingNumber":"DTDC123"`,
		},
		{
			name:       "unknown status",
			method:     http.MethodPatch,
			path:       "/orders/7f1c/status",
			body:       `{"status": "lost"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `Status":"oneof"`,
		},
		{
			name:   "illegal transition",
			method: http.MethodPatch,
			path:   "/orders/7f1c/status",
			body:   `{"status": "delivered"}`,
			mockBehavior: func(orders *mocks.MockOrderService, _ *mocks.MockPaymentService) {
				orders.EXPECT().UpdateStatus(mock.Anything, "7f1c", mock.Anything).
					Return(entities.Order{}, entities.ErrInvalidTransition).Once()
			},
			wantStatus: http.StatusConflict,
			wantBody:   `"invalid order transition"`,
		},
	})
}

const verifyBody = `{"orderId": "7f1c", "razorpay_order_id": "order_rzp_1", "razorpay_payment_id": "pay_1", "razorpay_signature": "abc"}`

func TestHTTPHandler_VerifyPayment(t *testing.T) {
	confirmation := entities.GatewayConfirmation{
		OrderID: "7f1c", GatewayOrderID: "order_rzp_1", GatewayPaymentID: "pay_1", Signature: "abc",
	}

	runCases(t, []testCase{
		{
			name:   "verified",
			method: http.MethodPost,
			path:   "/payment/verify",
			body:   verifyBody,
			mockBehavior: func(_ *mocks.MockOrderService, payments *mocks.MockPaymentService) {
				payments.EXPECT().VerifyPayment(mock.Anything, confirmation).Return(paidOrder, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   `"paymentStatus":"paid"`,
		},
		{
			name:   "signature mismatch",
			method: http.MethodPost,
			path:   "/payment/verify",
			body:   verifyBody,
			mockBehavior: func(_ *mocks.MockOrderService, payments *mocks.MockPaymentService) {
				payments.EXPECT().VerifyPayment(mock.Anything, confirmation).
					Return(entities.Order{}, entities.ErrSignatureMismatch).Once()
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   `"code":"payment_verification_failed"`,
		},
		{
			name:   "already paid differently",
			method: http.MethodPost,
			path:   "/payment/verify",
			body:   verifyBody,
			mockBehavior: func(_ *mocks.MockOrderService, payments *mocks.MockPaymentService) {
				payments.EXPECT().VerifyPayment(mock.Anything, confirmation).
					Return(entities.Order{}, entities.ErrPaymentConflict).Once()
			},
			wantStatus: http.StatusConflict,
			wantBody:   `"order already paid with different evidence"`,
		},
		{
			name:   "order not found",
			method: http.MethodPost,
			path:   "/payment/verify",
			body:   verifyBody,
			mockBehavior: func(_ *mocks.MockOrderService, payments *mocks.MockPaymentService) {
				payments.EXPECT().VerifyPayment(mock.Anything, confirmation).
					Return(entities.Order{}, entities.ErrOrderNotFound).Once()
			},
			wantStatus: http.StatusNotFound,
			wantBody:   `"order not found"`,
		},
		{
			name:       "missing signature",
			method:     http.MethodPost,
			path:       "/payment/verify",
			body:       `{"orderId": "7f1c", "razorpay_order_id": "order_rzp_1", "razorpay_payment_id": "pay_1"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `RazorpaySignature":"required"`,
		},
	})
}

func TestHTTPHandler_ConfirmPayment(t *testing.T) {
	runCases(t, []testCase{
		{
			name:   "confirmed",
			method: http.MethodPost,
			path:   "/payment/confirm",
			body:   `{"orderId": "7f1c", "upi_transaction_id": "UTR123", "payment_screenshot": "uploads/shot.png"}`,
			mockBehavior: func(_ *mocks.MockOrderService, payments *mocks.MockPaymentService) {
				payments.EXPECT().ConfirmManualPayment(mock.Anything, entities.ManualConfirmation{
					OrderID: "7f1c", TransactionRef: "UTR123", ProofRef: "uploads/shot.png",
				}).Return(paidOrder, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   `"paymentStatus":"paid"`,
		},
		{
			name:   "cancelled order",
			method: http.MethodPost,
			path:   "/payment/confirm",
			body:   `{"orderId": "7f1c"}`,
			mockBehavior: func(_ *mocks.MockOrderService, payments *mocks.MockPaymentService) {
				payments.EXPECT().ConfirmManualPayment(mock.Anything, entities.ManualConfirmation{OrderID: "7f1c"}).
					Return(entities.Order{}, entities.ErrInvalidTransition).Once()
			},
			wantStatus: http.StatusConflict,
			wantBody:   `"invalid order transition"`,
		},
		{
			name:       "missing order id",
			method:     http.MethodPost,
			path:       "/payment/confirm",
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `OrderID":"required"`,
		},
	})
}

func TestHTTPHandler_PaymentMiddlewares(t *testing.T) {
	blocked := func(http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		})
	}

	runCases(t, []testCase{
		{
			name:       "payment route wrapped",
			method:     http.MethodPost,
			path:       "/payment/verify",
			body:       verifyBody,
			wantStatus: http.StatusTooManyRequests,
		},
		{
			name:   "order routes untouched",
			method: http.MethodGet,
			path:   "/orders/7f1c",
			mockBehavior: func(orders *mocks.MockOrderService, _ *mocks.MockPaymentService) {
				orders.EXPECT().GetOrderByID(mock.Anything, "7f1c").Return(paidOrder, nil).Once()
			},
			wantStatus: http.StatusOK,
		},
	}, blocked)
}
