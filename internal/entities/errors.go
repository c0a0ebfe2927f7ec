package entities

import "errors"

var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrInvalidOrder    = errors.New("invalid order data")
	ErrProductNotFound = errors.New("product not found")

	ErrEmptyOrder       = errors.New("order must contain at least one item")
	ErrInvalidQuantity  = errors.New("item quantity is out of range")
	ErrInvalidPrice     = errors.New("product price must not be negative")
	ErrWhatsAppRequired = errors.New("whatsapp number is required for customized orders")
	ErrTotalMismatch    = errors.New("client total does not match computed total")

	ErrDuplicateOrderNumber = errors.New("order number already allocated")
	ErrConflict             = errors.New("order was modified concurrently")
	ErrInvalidTransition    = errors.New("invalid order transition")

	ErrSignatureMismatch  = errors.New("payment verification failed")
	ErrPaymentConflict    = errors.New("order already paid with different evidence")
	ErrNotOnlinePayment   = errors.New("order is not an online payment order")
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
)
