package repo

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/stichkala/order-service/internal/entities"
)

type Order struct {
	ID          string `db:"id"`
	OrderNumber string `db:"order_number"`

	CustomerName     string         `db:"customer_name"`
	CustomerPhone    string         `db:"customer_phone"`
	CustomerWhatsApp sql.NullString `db:"customer_whatsapp"`
	CustomerEmail    string         `db:"customer_email"`
	Street           string         `db:"street"`
	City             string         `db:"city"`
	State            string         `db:"state"`
	PostalCode       string         `db:"postal_code"`
	Country          string         `db:"country"`

	GiftWrap      bool   `db:"gift_wrap"`
	TotalAmount   int64  `db:"total_amount"`
	Status        string `db:"status"`
	PaymentStatus string `db:"payment_status"`
	PaymentMethod string `db:"payment_method"`

	GatewayOrderID   sql.NullString `db:"gateway_order_id"`
	GatewayPaymentID sql.NullString `db:"gateway_payment_id"`
	GatewaySignature sql.NullString `db:"gateway_signature"`
	TransactionRef   sql.NullString `db:"transaction_ref"`
	ProofRef         sql.NullString `db:"proof_ref"`

	EstimatedDelivery time.Time      `db:"estimated_delivery"`
	ActualDelivery    sql.NullTime   `db:"actual_delivery"`
	TrackingNumber    sql.NullString `db:"tracking_number"`
	Notes             sql.NullString `db:"notes"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

var orderColumns = []string{
	"id", "order_number",
	"customer_name", "customer_phone", "customer_whatsapp", "customer_email",
	"street", "city", "state", "postal_code", "country",
	"gift_wrap", "total_amount", "status", "payment_status", "payment_method",
	"gateway_order_id", "gateway_payment_id", "gateway_signature", "transaction_ref", "proof_ref",
	"estimated_delivery", "actual_delivery", "tracking_number", "notes",
	"created_at", "updated_at",
}

type Item struct {
	OrderID       string `db:"order_id"`
	Position      int    `db:"position"`
	ProductID     string `db:"product_id"`
	ProductName   string `db:"product_name"`
	Quantity      int    `db:"quantity"`
	UnitPrice     int64  `db:"unit_price"`
	Customization []byte `db:"customization"`
}

var itemColumns = []string{
	"order_id", "position", "product_id", "product_name", "quantity", "unit_price", "customization",
}

type Product struct {
	ID        string `db:"id"`
	Name      string `db:"name"`
	BasePrice int64  `db:"base_price"`
}

type OutboxMessage struct {
	ID        int64     `db:"id"`
	EventID   string    `db:"event_id"`
	Topic     string    `db:"topic"`
	Key       string    `db:"key"`
	Payload   []byte    `db:"payload"`
	Attempts  int       `db:"attempts"`
	CreatedAt time.Time `db:"created_at"`
}

// customization хранится в jsonb, ключи стабильны для внешних отчетов
type customization struct {
	Text         string   `json:"text,omitempty"`
	Color        string   `json:"color,omitempty"`
	Size         string   `json:"size,omitempty"`
	Material     string   `json:"material,omitempty"`
	Instructions string   `json:"specialInstructions,omitempty"`
	Files        []string `json:"uploadedFiles,omitempty"`
}

func OrderToEntity(o Order, items []Item) (entities.Order, error) {
	res := entities.Order{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		Customer: entities.Customer{
			Name:     o.CustomerName,
			Phone:    o.CustomerPhone,
			WhatsApp: nullStringToString(o.CustomerWhatsApp),
			Email:    o.CustomerEmail,
			Address: entities.Address{
				Street:     o.Street,
				City:       o.City,
				State:      o.State,
				PostalCode: o.PostalCode,
				Country:    o.Country,
			},
		},
		GiftWrap:      o.GiftWrap,
		TotalAmount:   o.TotalAmount,
		Status:        entities.Status(o.Status),
		PaymentStatus: entities.PaymentStatus(o.PaymentStatus),
		PaymentMethod: entities.PaymentMethod(o.PaymentMethod),
		PaymentDetails: entities.PaymentDetails{
			GatewayOrderID:   nullStringToString(o.GatewayOrderID),
			GatewayPaymentID: nullStringToString(o.GatewayPaymentID),
			GatewaySignature: nullStringToString(o.GatewaySignature),
			TransactionRef:   nullStringToString(o.TransactionRef),
			ProofRef:         nullStringToString(o.ProofRef),
		},
		EstimatedDelivery: o.EstimatedDelivery,
		TrackingNumber:    nullStringToString(o.TrackingNumber),
		Notes:             nullStringToString(o.Notes),
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
		Items:             make([]entities.Item, 0, len(items)),
	}
	if o.ActualDelivery.Valid {
		t := o.ActualDelivery.Time
		res.ActualDelivery = &t
	}

	for _, it := range items {
		item, err := ItemToEntity(it)
		if err != nil {
			return entities.Order{}, err
		}
		res.Items = append(res.Items, item)
	}
	return res, nil
}

func ItemToEntity(it Item) (entities.Item, error) {
	res := entities.Item{
		ProductID:   it.ProductID,
		ProductName: it.ProductName,
		Quantity:    it.Quantity,
		UnitPrice:   it.UnitPrice,
	}
	if len(it.Customization) == 0 {
		return res, nil
	}

	var c customization
	if err := json.Unmarshal(it.Customization, &c); err != nil {
		return entities.Item{}, err
	}
	res.Customization = &entities.Customization{
		Text:         c.Text,
		Color:        c.Color,
		Size:         c.Size,
		Material:     c.Material,
		Instructions: c.Instructions,
		Files:        c.Files,
	}
	return res, nil
}

// marshalCustomization returns a jsonb-ready string or nil for an empty customization.
func marshalCustomization(c *entities.Customization) (any, error) {
	if c.IsEmpty() {
		return nil, nil
	}
	b, err := json.Marshal(customization{
		Text:         c.Text,
		Color:        c.Color,
		Size:         c.Size,
		Material:     c.Material,
		Instructions: c.Instructions,
		Files:        c.Files,
	})
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func ProductToEntity(p Product) entities.Product {
	return entities.Product{ID: p.ID, Name: p.Name, BasePrice: p.BasePrice}
}

func OutboxToEntity(m OutboxMessage) entities.OutboxMessage {
	return entities.OutboxMessage{
		ID:        m.ID,
		EventID:   m.EventID,
		Topic:     m.Topic,
		Key:       m.Key,
		Payload:   m.Payload,
		Attempts:  m.Attempts,
		CreatedAt: m.CreatedAt,
	}
}

func nullStringToString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
