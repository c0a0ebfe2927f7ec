// Package contracts defines the JSON events published through the outbox.
package contracts

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stichkala/order-service/internal/entities"
)

const (
	EventOrderConfirmed = "order.confirmed"
)

const ReasonConfirmed = "confirmed"

type Event struct {
	EventID   string    `json:"event_id"`
	Type      string    `json:"type"`
	OrderID   string    `json:"order_id"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
	Order     Order     `json:"order"`
}

// Order is the snapshot a notifier needs to address and describe the order.
type Order struct {
	ID                string    `json:"id"`
	OrderNumber       string    `json:"order_number"`
	CustomerName      string    `json:"customer_name"`
	Email             string    `json:"email"`
	Phone             string    `json:"phone"`
	WhatsApp          string    `json:"whatsapp,omitempty"`
	Items             []Item    `json:"items"`
	TotalAmount       int64     `json:"total_amount"`
	Status            string    `json:"status"`
	PaymentStatus     string    `json:"payment_status"`
	PaymentMethod     string    `json:"payment_method"`
	EstimatedDelivery time.Time `json:"estimated_delivery"`
	TrackingNumber    string    `json:"tracking_number,omitempty"`
}

type Item struct {
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	UnitPrice   int64  `json:"unit_price"`
	Customized  bool   `json:"customized"`
}

func NewOrderEvent(eventType, reason string, o entities.Order, now time.Time) Event {
	return Event{
		EventID:   ulid.Make().String(),
		Type:      eventType,
		OrderID:   o.ID,
		Reason:    reason,
		CreatedAt: now,
		Order:     Snapshot(o),
	}
}

// OutboxMessage keys the message by order id so one order's events stay ordered.
func (e Event) OutboxMessage(topic string) (entities.OutboxMessage, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return entities.OutboxMessage{}, fmt.Errorf("failed to encode event: %w", err)
	}
	return entities.OutboxMessage{
		EventID: e.EventID,
		Topic:   topic,
		Key:     e.OrderID,
		Payload: payload,
	}, nil
}

func Decode(data []byte) (Event, error) {
	var e Event
	if err := json.Unmarshal(data, &e); err != nil {
		return Event{}, fmt.Errorf("failed to decode event: %w", err)
	}
	if e.EventID == "" || e.OrderID == "" || e.Type == "" {
		return Event{}, fmt.Errorf("failed to decode event: missing identity fields")
	}
	return e, nil
}

// Snapshot copies the fields notifiers need out of the order.
func Snapshot(o entities.Order) Order {
	items := make([]Item, len(o.Items))
	for i, it := range o.Items {
		items[i] = Item{
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Customized:  !it.Customization.IsEmpty(),
		}
	}
	return Order{
		ID:                o.ID,
		OrderNumber:       o.OrderNumber,
		CustomerName:      o.Customer.Name,
		Email:             o.Customer.Email,
		Phone:             o.Customer.Phone,
		WhatsApp:          o.Customer.WhatsApp,
		Items:             items,
		TotalAmount:       o.TotalAmount,
		Status:            string(o.Status),
		PaymentStatus:     string(o.PaymentStatus),
		PaymentMethod:     string(o.PaymentMethod),
		EstimatedDelivery: o.EstimatedDelivery,
		TrackingNumber:    o.TrackingNumber,
	}
}

// ToEntity rebuilds the parts of the order carried by the snapshot.
func (s Order) ToEntity() entities.Order {
	items := make([]entities.Item, len(s.Items))
	for i, it := range s.Items {
		items[i] = entities.Item{
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		}
	}
	return entities.Order{
		ID:          s.ID,
		OrderNumber: s.OrderNumber,
		Customer: entities.Customer{
			Name:     s.CustomerName,
			Email:    s.Email,
			Phone:    s.Phone,
			WhatsApp: s.WhatsApp,
		},
		Items:             items,
		TotalAmount:       s.TotalAmount,
		Status:            entities.Status(s.Status),
		PaymentStatus:     entities.PaymentStatus(s.PaymentStatus),
		PaymentMethod:     entities.PaymentMethod(s.PaymentMethod),
		EstimatedDelivery: s.EstimatedDelivery,
		TrackingNumber:    s.TrackingNumber,
	}
}
