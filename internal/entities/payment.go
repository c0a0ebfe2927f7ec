package entities

import "time"

type PaymentMethod string

const (
	PaymentMethodCashOnDelivery PaymentMethod = "cod"
	PaymentMethodOnline         PaymentMethod = "online"
	PaymentMethodManualTransfer PaymentMethod = "upi"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCashOnDelivery, PaymentMethodOnline, PaymentMethodManualTransfer:
		return true
	}
	return false
}

// DefaultManualTransactionRef is stored when a manual confirmation comes without a reference.
const DefaultManualTransactionRef = "Manual UPI Payment"

type PaymentDetails struct {
	GatewayOrderID   string
	GatewayPaymentID string
	GatewaySignature string

	TransactionRef string
	ProofRef       string
}

// PaymentPatch describes a reconciliation write. Nil Details leaves the
// stored evidence untouched.
type PaymentPatch struct {
	Status        Status
	PaymentStatus PaymentStatus
	Details       *PaymentDetails
}

// FulfillmentPatch describes a staff-driven status change.
type FulfillmentPatch struct {
	Status         Status
	TrackingNumber string
	Notes          string
	ActualDelivery *time.Time
}

// GatewayConfirmation is the signed result returned by the gateway checkout.
type GatewayConfirmation struct {
	OrderID          string
	GatewayOrderID   string
	GatewayPaymentID string
	Signature        string
}

// ManualConfirmation records an out-of-band transfer reported by the customer.
type ManualConfirmation struct {
	OrderID        string
	TransactionRef string
	ProofRef       string
}
