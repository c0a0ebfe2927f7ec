package entities

import (
	"fmt"
	"slices"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// pipeline is the forward fulfillment order; cancelled sits outside it.
var pipeline = []Status{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
	StatusShipped,
	StatusDelivered,
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if st == StatusCancelled || slices.Contains(pipeline, st) {
		return st, nil
	}
	return "", fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, s)
}

func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

func (s Status) rank() int {
	return slices.Index(pipeline, s)
}

// CanTransition reports whether the fulfillment status may move from s to next.
// Only single forward steps and cancellation of a non-terminal order are legal.
func (s Status) CanTransition(next Status) bool {
	if s.IsTerminal() {
		return false
	}
	if next == StatusCancelled {
		return true
	}
	cur, nxt := s.rank(), next.rank()
	return cur >= 0 && nxt == cur+1
}

// Next returns the following pipeline status, if any.
func (s Status) Next() (Status, bool) {
	r := s.rank()
	if r < 0 || r+1 >= len(pipeline) {
		return "", false
	}
	return pipeline[r+1], true
}

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentStatusPending: {PaymentStatusPaid, PaymentStatusFailed},
	PaymentStatusPaid:    {PaymentStatusRefunded},
}

func (p PaymentStatus) CanTransition(next PaymentStatus) bool {
	return slices.Contains(paymentTransitions[p], next)
}

// Transition moves the order to the given (status, paymentStatus) pair,
// validating both axes together. Unchanged axes are always allowed.
func Transition(o Order, status Status, payment PaymentStatus) (Order, error) {
	if status != o.Status && !o.Status.CanTransition(status) {
		return o, fmt.Errorf("%w: status %s -> %s", ErrInvalidTransition, o.Status, status)
	}
	if payment != o.PaymentStatus && !o.PaymentStatus.CanTransition(payment) {
		return o, fmt.Errorf("%w: payment %s -> %s", ErrInvalidTransition, o.PaymentStatus, payment)
	}

	// онлайн-заказ не двигается дальше pending, пока не оплачен
	if o.PaymentMethod == PaymentMethodOnline &&
		payment == PaymentStatusPending &&
		status != StatusCancelled &&
		status.rank() > StatusPending.rank() {
		return o, fmt.Errorf("%w: online order %s is awaiting payment", ErrInvalidTransition, o.OrderNumber)
	}

	o.Status = status
	o.PaymentStatus = payment
	return o, nil
}
