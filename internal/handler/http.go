package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/stichkala/order-service/internal/entities"
	"github.com/stichkala/order-service/pkg/utils"
)

type OrderService interface {
	CreateOrder(ctx context.Context, d entities.Draft) (entities.Order, error)
	GetOrderByID(ctx context.Context, id string) (entities.Order, error)
	GetOrderByNumber(ctx context.Context, number string) (entities.Order, error)
	ListOrders(ctx context.Context, limit int) ([]entities.Order, error)
	UpdateStatus(ctx context.Context, id string, upd entities.StatusUpdate) (entities.Order, error)
}

type PaymentService interface {
	VerifyPayment(ctx context.Context, c entities.GatewayConfirmation) (entities.Order, error)
	ConfirmManualPayment(ctx context.Context, m entities.ManualConfirmation) (entities.Order, error)
}

const codePaymentVerificationFailed = "payment_verification_failed"

type HTTPHandler struct {
	logger   *slog.Logger
	validate *validator.Validate
	orders   OrderService
	payments PaymentService

	paymentMiddlewares []func(http.Handler) http.Handler
}

// NewHTTPHandler builds the storefront API. paymentMiddlewares wrap only the
// payment routes.
func NewHTTPHandler(logger *slog.Logger, orders OrderService, payments PaymentService, paymentMiddlewares ...func(http.Handler) http.Handler) *HTTPHandler {
	return &HTTPHandler{
		logger:             logger.With(slog.String("handler", "http")),
		validate:           validator.New(),
		orders:             orders,
		payments:           payments,
		paymentMiddlewares: paymentMiddlewares,
	}
}

func (h *HTTPHandler) Init(r chi.Router) {
	r.Route("/orders", func(r chi.Router) {
		r.Post("/", h.CreateOrder)
		r.Get("/", h.ListOrders)
		r.Get("/track/{order_number}", h.TrackOrder)
		r.Get("/{id}", h.GetOrderByID)
		r.Patch("/{id}/status", h.UpdateStatus)
	})

	r.Route("/payment", func(r chi.Router) {
		r.Use(h.paymentMiddlewares...)
		r.Post("/verify", h.VerifyPayment)
		r.Post("/confirm", h.ConfirmPayment)
	})
}

// CreateOrder оформляет заказ.
// @Summary      Оформить заказ
// @Description  Считает итоговую сумму по каталогу, присваивает номер заказа и для онлайн-оплаты создаёт заказ в Razorpay
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        request  body      CreateOrderRequest  true  "Заказ"
// @Success      201  {object}  CreateOrderResponse
// @Failure      400  {object}  utils.ValidationErrorResponse "Ошибка валидации"
// @Failure      502  {object}  utils.ErrorResponse "Платёжный шлюз недоступен"
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /orders [post]
func (h *HTTPHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateOrderRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	order, err := h.orders.CreateOrder(ctx, CreateOrderJSONToDraft(req))
	if err != nil {
		h.writeServiceError(ctx, w, err, "failed to create order")
		return
	}

	ordersCreated.WithLabelValues(string(order.PaymentMethod)).Inc()
	utils.WriteJSON(w, CreateOrderResponse{
		Order:           OrderEntityToJSON(order),
		RazorpayOrderID: order.PaymentDetails.GatewayOrderID,
	}, http.StatusCreated)
}

// ListOrders возвращает последние заказы.
// @Summary      Список заказов
// @Tags         orders
// @Produce      json
// @Param        limit  query     int  false  "Количество заказов (по умолчанию 20, максимум 100)"
// @Success      200  {object}  OrderList
// @Failure      400  {object}  utils.ErrorResponse "Некорректный limit"
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /orders [get]
func (h *HTTPHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			utils.WriteError(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	orders, err := h.orders.ListOrders(ctx, limit)
	if err != nil {
		h.writeServiceError(ctx, w, err, "failed to list orders")
		return
	}
	utils.WriteJSON(w, OrdersEntityToJSON(orders), http.StatusOK)
}

// GetOrderByID возвращает заказ по ID.
// @Summary      Получить заказ по ID
// @Tags         orders
// @Produce      json
// @Param        id   path      string  true  "Идентификатор заказа"
// @Success      200  {object}  Order
// @Failure      404  {object}  utils.ErrorResponse "Заказ не найден"
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /orders/{id} [get]
func (h *HTTPHandler) GetOrderByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	if err := h.validate.Var(id, "required"); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	order, err := h.orders.GetOrderByID(ctx, id)
	if err != nil {
		h.writeServiceError(ctx, w, err, "failed to get order")
		return
	}
	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusOK)
}

// TrackOrder возвращает заказ по номеру.
// @Summary      Отследить заказ
// @Description  Поиск по номеру заказа без учёта регистра
// @Tags         orders
// @Produce      json
// @Param        order_number  path      string  true  "Номер заказа, например HG000001"
// @Success      200  {object}  Order
// @Failure      404  {object}  utils.ErrorResponse "Заказ не найден"
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /orders/track/{order_number} [get]
func (h *HTTPHandler) TrackOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	number := chi.URLParam(r, "order_number")

	order, err := h.orders.GetOrderByNumber(ctx, number)
	if err != nil {
		h.writeServiceError(ctx, w, err, "failed to track order")
		return
	}
	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusOK)
}

// UpdateStatus переводит заказ на следующий этап.
// @Summary      Сменить статус заказа
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id       path      string               true  "Идентификатор заказа"
// @Param        request  body      UpdateStatusRequest  true  "Новый статус"
// @Success      200  {object}  Order
// @Failure      400  {object}  utils.ValidationErrorResponse "Ошибка валидации"
// @Failure      404  {object}  utils.ErrorResponse "Заказ не найден"
// @Failure      409  {object}  utils.ErrorResponse "Недопустимый переход"
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /orders/{id}/status [patch]
func (h *HTTPHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	var req UpdateStatusRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	order, err := h.orders.UpdateStatus(ctx, id, entities.StatusUpdate{
		Status:         entities.Status(req.Status),
		TrackingNumber: req.TrackingNumber,
		Notes:          req.Notes,
	})
	if err != nil {
		h.writeServiceError(ctx, w, err, "failed to update order status")
		return
	}
	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusOK)
}

// VerifyPayment проверяет подпись Razorpay.
// @Summary      Подтвердить онлайн-оплату
// @Description  Проверяет HMAC-подпись платежа и подтверждает заказ
// @Tags         payment
// @Accept       json
// @Produce      json
// @Param        request  body      VerifyPaymentRequest  true  "Ответ Razorpay checkout"
// @Success      200  {object}  Order
// @Failure      400  {object}  utils.ErrorResponse "Подпись не прошла проверку"
// @Failure      404  {object}  utils.ErrorResponse "Заказ не найден"
// @Failure      409  {object}  utils.ErrorResponse "Заказ уже оплачен другим платежом"
// @Failure      429  {string}  string "Слишком много запросов"
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /payment/verify [post]
func (h *HTTPHandler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req VerifyPaymentRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	order, err := h.payments.VerifyPayment(ctx, entities.GatewayConfirmation{
		OrderID:          req.OrderID,
		GatewayOrderID:   req.RazorpayOrderID,
		GatewayPaymentID: req.RazorpayPaymentID,
		Signature:        req.RazorpaySignature,
	})
	paymentResults.WithLabelValues("gateway", resultLabel(err)).Inc()
	if err != nil {
		h.writeServiceError(ctx, w, err, "failed to verify payment")
		return
	}
	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusOK)
}

// ConfirmPayment фиксирует ручной перевод.
// @Summary      Подтвердить перевод по UPI
// @Tags         payment
// @Accept       json
// @Produce      json
// @Param        request  body      ConfirmPaymentRequest  true  "Данные перевода"
// @Success      200  {object}  Order
// @Failure      400  {object}  utils.ValidationErrorResponse "Ошибка валидации"
// @Failure      404  {object}  utils.ErrorResponse "Заказ не найден"
// @Failure      409  {object}  utils.ErrorResponse "Заказ нельзя подтвердить"
// @Failure      429  {string}  string "Слишком много запросов"
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /payment/confirm [post]
func (h *HTTPHandler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ConfirmPaymentRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	order, err := h.payments.ConfirmManualPayment(ctx, entities.ManualConfirmation{
		OrderID:        req.OrderID,
		TransactionRef: req.UpiTransactionID,
		ProofRef:       req.PaymentScreenshot,
	})
	paymentResults.WithLabelValues("manual", resultLabel(err)).Inc()
	if err != nil {
		h.writeServiceError(ctx, w, err, "failed to confirm payment")
		return
	}
	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusOK)
}

// writeServiceError maps domain errors to HTTP statuses. Anything unknown is
// logged and hidden behind a 500.
func (h *HTTPHandler) writeServiceError(ctx context.Context, w http.ResponseWriter, err error, msg string) {
	switch {
	case errors.Is(err, entities.ErrOrderNotFound):
		utils.WriteError(w, "order not found", http.StatusNotFound)
	case errors.Is(err, entities.ErrSignatureMismatch):
		utils.WriteCodedError(w, err.Error(), codePaymentVerificationFailed, http.StatusBadRequest)
	case errors.Is(err, entities.ErrProductNotFound),
		errors.Is(err, entities.ErrEmptyOrder),
		errors.Is(err, entities.ErrInvalidQuantity),
		errors.Is(err, entities.ErrWhatsAppRequired),
		errors.Is(err, entities.ErrTotalMismatch),
		errors.Is(err, entities.ErrNotOnlinePayment),
		errors.Is(err, entities.ErrInvalidOrder):
		utils.WriteError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, entities.ErrInvalidTransition),
		errors.Is(err, entities.ErrPaymentConflict),
		errors.Is(err, entities.ErrConflict):
		utils.WriteError(w, err.Error(), http.StatusConflict)
	case errors.Is(err, entities.ErrGatewayUnavailable):
		h.logger.WarnContext(ctx, msg, slog.Any("error", err))
		utils.WriteError(w, "payment gateway unavailable", http.StatusBadGateway)
	default:
		h.logger.ErrorContext(ctx, msg, slog.Any("error", err))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
	}
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, entities.ErrSignatureMismatch):
		return "mismatch"
	case errors.Is(err, entities.ErrPaymentConflict), errors.Is(err, entities.ErrInvalidTransition):
		return "conflict"
	case errors.Is(err, entities.ErrOrderNotFound):
		return "not_found"
	default:
		return "error"
	}
}
