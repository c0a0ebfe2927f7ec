package entities

import (
	"fmt"
	"time"
)

const (
	OrderNumberPrefix = "HG"
	DefaultCountry    = "India"

	// MaxItemQuantity ограничение на количество в одной позиции
	MaxItemQuantity = 1000
)

type Address struct {
	Street     string
	City       string
	State      string
	PostalCode string
	Country    string
}

type Customer struct {
	Name     string
	Phone    string
	WhatsApp string
	Email    string
	Address  Address
}

type Customization struct {
	Text         string
	Color        string
	Size         string
	Material     string
	Instructions string
	Files        []string
}

func (c *Customization) IsEmpty() bool {
	return c == nil || (c.Text == "" && c.Color == "" && c.Size == "" &&
		c.Material == "" && c.Instructions == "" && len(c.Files) == 0)
}

// Item is a line of an order. ProductName and UnitPrice are copied from the
// catalog when the order is placed and never change afterwards.
type Item struct {
	ProductID     string
	ProductName   string
	Quantity      int
	UnitPrice     int64
	Customization *Customization
}

func (i Item) LineTotal() int64 {
	return i.UnitPrice * int64(i.Quantity)
}

type Order struct {
	ID          string
	OrderNumber string

	Customer Customer
	Items    []Item
	GiftWrap bool

	// в целых рупиях, фиксируется при создании
	TotalAmount int64

	Status         Status
	PaymentStatus  PaymentStatus
	PaymentMethod  PaymentMethod
	PaymentDetails PaymentDetails

	EstimatedDelivery time.Time
	ActualDelivery    *time.Time
	TrackingNumber    string
	Notes             string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasCustomization reports whether any item carries a customization payload.
func (o *Order) HasCustomization() bool {
	for _, it := range o.Items {
		if !it.Customization.IsEmpty() {
			return true
		}
	}
	return false
}

func FormatOrderNumber(seq int64) string {
	return fmt.Sprintf("%s%06d", OrderNumberPrefix, seq)
}

type Product struct {
	ID        string
	Name      string
	BasePrice int64
}

// Draft is an order as submitted by the storefront, before catalog lookup,
// pricing and numbering.
type Draft struct {
	Customer      Customer
	Items         []DraftItem
	GiftWrap      bool
	PaymentMethod PaymentMethod
	Notes         string

	// ClientTotal is what the storefront displayed. It is never persisted.
	ClientTotal *int64
}

type DraftItem struct {
	ProductID     string
	Quantity      int
	Customization *Customization
}

// StatusUpdate is a staff request to move an order along the pipeline.
type StatusUpdate struct {
	Status         Status
	TrackingNumber string
	Notes          string
}
