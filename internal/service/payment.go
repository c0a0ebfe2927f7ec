package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/stichkala/order-service/internal/entities"
	"github.com/stichkala/order-service/pkg/trm"
	"github.com/stichkala/order-service/pkg/utils"
)

type paymentService struct {
	logger    *slog.Logger
	txManager trm.Manager
	repo      OrderRepo
	gateway   Gateway
	cache     Cache
	topic     string
	now       func() time.Time
}

func NewPaymentService(logger *slog.Logger, txManager trm.Manager, repo OrderRepo, gw Gateway, cache Cache, eventTopic string) *paymentService {
	return &paymentService{
		logger:    logger.With(slog.String("service", "payment")),
		txManager: txManager,
		repo:      repo,
		gateway:   gw,
		cache:     cache,
		topic:     eventTopic,
		now:       time.Now,
	}
}

// Повтор при ErrConflict: заказ перечитывается и решение принимается заново
var casRetry = utils.RetryConfig{
	MaxAttempts:  3,
	InitialDelay: 5 * time.Millisecond,
	RetryOn:      []error{entities.ErrConflict},
}

// VerifyPayment reconciles a signed gateway confirmation. A valid signature
// marks the order paid and confirmed; an invalid one fails and cancels a
// pending order and returns ErrSignatureMismatch. Paid orders are never
// downgraded and a repeated valid confirmation is a no-op.
func (s *paymentService) VerifyPayment(ctx context.Context, c entities.GatewayConfirmation) (entities.Order, error) {
	var (
		result   entities.Order
		mismatch bool
	)

	fn := func() error {
		mismatch = false

		order, err := s.repo.GetOrderByID(ctx, c.OrderID)
		if err != nil {
			return err
		}
		if order.PaymentMethod != entities.PaymentMethodOnline {
			return entities.ErrNotOnlinePayment
		}

		valid := order.PaymentDetails.GatewayOrderID != "" &&
			c.GatewayOrderID == order.PaymentDetails.GatewayOrderID &&
			s.gateway.VerifySignature(c.GatewayOrderID, c.GatewayPaymentID, c.Signature)

		switch order.PaymentStatus {
		case entities.PaymentStatusPaid:
			result = order
			if !valid {
				mismatch = true
				return nil
			}
			if c.GatewayPaymentID != order.PaymentDetails.GatewayPaymentID {
				return fmt.Errorf("%w: order %s", entities.ErrPaymentConflict, order.OrderNumber)
			}
			return nil

		case entities.PaymentStatusFailed:
			result = order
			if !valid {
				mismatch = true
				return nil
			}
			s.logger.WarnContext(ctx, "valid payment for a failed order",
				slog.String("order_number", order.OrderNumber),
				slog.String("gateway_payment_id", c.GatewayPaymentID),
			)
			return fmt.Errorf("%w: order %s already failed", entities.ErrPaymentConflict, order.OrderNumber)

		case entities.PaymentStatusPending:
			if !valid {
				mismatch = true
				result, err = s.apply(ctx, order, entities.PaymentPatch{
					Status:        entities.StatusCancelled,
					PaymentStatus: entities.PaymentStatusFailed,
				}, false)
				return err
			}
			result, err = s.apply(ctx, order, entities.PaymentPatch{
				Status:        entities.StatusConfirmed,
				PaymentStatus: entities.PaymentStatusPaid,
				Details: &entities.PaymentDetails{
					GatewayOrderID:   order.PaymentDetails.GatewayOrderID,
					GatewayPaymentID: c.GatewayPaymentID,
					GatewaySignature: c.Signature,
				},
			}, true)
			return err

		default:
			return fmt.Errorf("%w: payment is %s", entities.ErrInvalidTransition, order.PaymentStatus)
		}
	}

	if err := utils.Retry(ctx, casRetry, fn); err != nil {
		return entities.Order{}, err
	}

	if mismatch {
		s.logger.WarnContext(ctx, "payment signature mismatch",
			slog.String("order_number", result.OrderNumber),
			slog.String("payment_status", string(result.PaymentStatus)),
		)
		return result, entities.ErrSignatureMismatch
	}
	return result, nil
}

// ConfirmManualPayment records an out-of-band transfer for cod and upi
// orders. The reference defaults to DefaultManualTransactionRef. Already paid
// orders are returned unchanged.
func (s *paymentService) ConfirmManualPayment(ctx context.Context, m entities.ManualConfirmation) (entities.Order, error) {
	ref := strings.TrimSpace(m.TransactionRef)
	if ref == "" {
		ref = entities.DefaultManualTransactionRef
	}

	var result entities.Order
	fn := func() error {
		order, err := s.repo.GetOrderByID(ctx, m.OrderID)
		if err != nil {
			return err
		}
		if order.PaymentStatus == entities.PaymentStatusPaid {
			result = order
			return nil
		}
		if order.PaymentMethod == entities.PaymentMethodOnline {
			return fmt.Errorf("%w: online orders are confirmed through the gateway", entities.ErrInvalidTransition)
		}
		if order.Status == entities.StatusCancelled {
			return fmt.Errorf("%w: order %s is cancelled", entities.ErrInvalidTransition, order.OrderNumber)
		}

		status := order.Status
		if status == entities.StatusPending {
			status = entities.StatusConfirmed
		}
		if _, err := entities.Transition(order, status, entities.PaymentStatusPaid); err != nil {
			return err
		}

		result, err = s.apply(ctx, order, entities.PaymentPatch{
			Status:        status,
			PaymentStatus: entities.PaymentStatusPaid,
			Details: &entities.PaymentDetails{
				GatewayOrderID: order.PaymentDetails.GatewayOrderID,
				TransactionRef: ref,
				ProofRef:       strings.TrimSpace(m.ProofRef),
			},
		}, status != order.Status)
		return err
	}

	if err := utils.Retry(ctx, casRetry, fn); err != nil {
		return entities.Order{}, err
	}
	return result, nil
}

// apply validates and writes the patch, plus the confirmation event when
// confirmed is set, in one transaction.
func (s *paymentService) apply(ctx context.Context, order entities.Order, patch entities.PaymentPatch, confirmed bool) (entities.Order, error) {
	if _, err := entities.Transition(order, patch.Status, patch.PaymentStatus); err != nil {
		return entities.Order{}, err
	}

	var updated entities.Order
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.repo.UpdatePayment(ctx, order, patch); err != nil {
			return err
		}

		var err error
		updated, err = s.repo.GetOrderByID(ctx, order.ID)
		if err != nil {
			return err
		}
		if confirmed {
			return enqueueConfirmation(ctx, s.repo, updated, s.topic, s.now().UTC())
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, entities.ErrConflict) {
			s.logger.ErrorContext(ctx, "failed to apply payment",
				slog.String("order_number", order.OrderNumber),
				slog.Any("error", err),
			)
		}
		return entities.Order{}, err
	}

	s.logger.InfoContext(ctx, "payment reconciled",
		slog.String("order_number", updated.OrderNumber),
		slog.String("status", string(updated.Status)),
		slog.String("payment_status", string(updated.PaymentStatus)),
	)
	putCache(s.cache, s.logger, updated)
	return updated, nil
}
