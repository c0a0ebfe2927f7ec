package handler

import (
	"time"

	"github.com/stichkala/order-service/internal/entities"
)

// Address адрес доставки
type Address struct {
	Street  string `json:"street" validate:"required"`
	City    string `json:"city" validate:"required"`
	State   string `json:"state" validate:"required"`
	Pincode string `json:"pincode" validate:"required,numeric,len=6"`
	Country string `json:"country,omitempty"`
}

// CustomerInfo контакты покупателя
type CustomerInfo struct {
	Name           string  `json:"name" validate:"required"`
	Email          string  `json:"email,omitempty" validate:"omitempty,email"`
	Phone          string  `json:"phone" validate:"required"`
	WhatsappNumber string  `json:"whatsappNumber,omitempty"`
	Address        Address `json:"address"`
}

// Customization пожелания к изделию
type Customization struct {
	Text                string   `json:"text,omitempty"`
	Color               string   `json:"color,omitempty"`
	Size                string   `json:"size,omitempty"`
	Material            string   `json:"material,omitempty"`
	SpecialInstructions string   `json:"specialInstructions,omitempty"`
	UploadedFiles       []string `json:"uploadedFiles,omitempty"`
}

// OrderItemRequest позиция в запросе на создание заказа
type OrderItemRequest struct {
	ProductID     string         `json:"productId" validate:"required"`
	Quantity      int            `json:"quantity" validate:"required,gte=1,max=1000"`
	Customization *Customization `json:"customization,omitempty"`
}

// CreateOrderRequest запрос на создание заказа.
// TotalAmount is what the storefront displayed; the server recomputes it.
type CreateOrderRequest struct {
	CustomerInfo  CustomerInfo       `json:"customerInfo" validate:"required"`
	Items         []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	TotalAmount   *int64             `json:"totalAmount,omitempty" validate:"omitempty,gte=0"`
	PaymentMethod string             `json:"paymentMethod" validate:"required,oneof=cod online upi"`
	GiftWrap      bool               `json:"giftWrap,omitempty"`
	Notes         string             `json:"notes,omitempty" validate:"max=1000"`
}

// UpdateStatusRequest запрос на смену статуса заказа
type UpdateStatusRequest struct {
	Status         string `json:"status" validate:"required,oneof=pending confirmed in-progress completed shipped delivered cancelled"`
	TrackingNumber string `json:"trackingNumber,omitempty"`
	Notes          string `json:"notes,omitempty" validate:"max=1000"`
}

// VerifyPaymentRequest подтверждение оплаты от Razorpay checkout
type VerifyPaymentRequest struct {
	OrderID           string `json:"orderId" validate:"required"`
	RazorpayOrderID   string `json:"razorpay_order_id" validate:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" validate:"required"`
	RazorpaySignature string `json:"razorpay_signature" validate:"required"`
}

// ConfirmPaymentRequest ручное подтверждение перевода
type ConfirmPaymentRequest struct {
	OrderID           string `json:"orderId" validate:"required"`
	UpiTransactionID  string `json:"upi_transaction_id,omitempty"`
	PaymentScreenshot string `json:"payment_screenshot,omitempty"`
}

// OrderItem позиция заказа
type OrderItem struct {
	ProductID     string         `json:"productId"`
	ProductName   string         `json:"productName"`
	Quantity      int            `json:"quantity"`
	Price         int64          `json:"price"`
	Customization *Customization `json:"customization,omitempty"`
}

// PaymentDetails доказательства оплаты
type PaymentDetails struct {
	RazorpayOrderID   string `json:"razorpay_order_id,omitempty"`
	RazorpayPaymentID string `json:"razorpay_payment_id,omitempty"`
	UpiTransactionID  string `json:"upi_transaction_id,omitempty"`
	PaymentScreenshot string `json:"payment_screenshot,omitempty"`
}

// Order представляет заказ
type Order struct {
	ID                string         `json:"id"`
	OrderNumber       string         `json:"orderNumber"`
	CustomerInfo      CustomerInfo   `json:"customerInfo"`
	Items             []OrderItem    `json:"items"`
	GiftWrap          bool           `json:"giftWrap"`
	TotalAmount       int64          `json:"totalAmount"`
	Status            string         `json:"status"`
	PaymentStatus     string         `json:"paymentStatus"`
	PaymentMethod     string         `json:"paymentMethod"`
	PaymentDetails    PaymentDetails `json:"paymentDetails"`
	EstimatedDelivery *time.Time     `json:"estimatedDelivery,omitempty"`
	ActualDelivery    *time.Time     `json:"actualDelivery,omitempty"`
	TrackingNumber    string         `json:"trackingNumber,omitempty"`
	Notes             string         `json:"notes,omitempty"`
	CreatedAt         time.Time      `json:"createdAt"`
	UpdatedAt         time.Time      `json:"updatedAt"`
}

// CreateOrderResponse ответ на создание заказа
type CreateOrderResponse struct {
	Order           Order  `json:"order"`
	RazorpayOrderID string `json:"razorpayOrderId,omitempty"`
}

// OrderList список заказов
type OrderList struct {
	Orders []Order `json:"orders"`
}

func CustomizationJSONToEntity(c *Customization) *entities.Customization {
	if c == nil {
		return nil
	}
	return &entities.Customization{
		Text:         c.Text,
		Color:        c.Color,
		Size:         c.Size,
		Material:     c.Material,
		Instructions: c.SpecialInstructions,
		Files:        c.UploadedFiles,
	}
}

func CustomizationEntityToJSON(c *entities.Customization) *Customization {
	if c.IsEmpty() {
		return nil
	}
	return &Customization{
		Text:                c.Text,
		Color:               c.Color,
		Size:                c.Size,
		Material:            c.Material,
		SpecialInstructions: c.Instructions,
		UploadedFiles:       c.Files,
	}
}

func CustomerJSONToEntity(c CustomerInfo) entities.Customer {
	return entities.Customer{
		Name:     c.Name,
		Phone:    c.Phone,
		WhatsApp: c.WhatsappNumber,
		Email:    c.Email,
		Address: entities.Address{
			Street:     c.Address.Street,
			City:       c.Address.City,
			State:      c.Address.State,
			PostalCode: c.Address.Pincode,
			Country:    c.Address.Country,
		},
	}
}

func CustomerEntityToJSON(c entities.Customer) CustomerInfo {
	return CustomerInfo{
		Name:           c.Name,
		Email:          c.Email,
		Phone:          c.Phone,
		WhatsappNumber: c.WhatsApp,
		Address: Address{
			Street:  c.Address.Street,
			City:    c.Address.City,
			State:   c.Address.State,
			Pincode: c.Address.PostalCode,
			Country: c.Address.Country,
		},
	}
}

func CreateOrderJSONToDraft(r CreateOrderRequest) entities.Draft {
	items := make([]entities.DraftItem, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, entities.DraftItem{
			ProductID:     it.ProductID,
			Quantity:      it.Quantity,
			Customization: CustomizationJSONToEntity(it.Customization),
		})
	}

	return entities.Draft{
		Customer:      CustomerJSONToEntity(r.CustomerInfo),
		Items:         items,
		GiftWrap:      r.GiftWrap,
		PaymentMethod: entities.PaymentMethod(r.PaymentMethod),
		Notes:         r.Notes,
		ClientTotal:   r.TotalAmount,
	}
}

func ItemEntityToJSON(i entities.Item) OrderItem {
	return OrderItem{
		ProductID:     i.ProductID,
		ProductName:   i.ProductName,
		Quantity:      i.Quantity,
		Price:         i.UnitPrice,
		Customization: CustomizationEntityToJSON(i.Customization),
	}
}

func OrderEntityToJSON(o entities.Order) Order {
	items := make([]OrderItem, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, ItemEntityToJSON(it))
	}

	res := Order{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		CustomerInfo:  CustomerEntityToJSON(o.Customer),
		Items:         items,
		GiftWrap:      o.GiftWrap,
		TotalAmount:   o.TotalAmount,
		Status:        string(o.Status),
		PaymentStatus: string(o.PaymentStatus),
		PaymentMethod: string(o.PaymentMethod),
		// подпись наружу не отдаём
		PaymentDetails: PaymentDetails{
			RazorpayOrderID:   o.PaymentDetails.GatewayOrderID,
			RazorpayPaymentID: o.PaymentDetails.GatewayPaymentID,
			UpiTransactionID:  o.PaymentDetails.TransactionRef,
			PaymentScreenshot: o.PaymentDetails.ProofRef,
		},
		ActualDelivery: o.ActualDelivery,
		TrackingNumber: o.TrackingNumber,
		Notes:          o.Notes,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
	if !o.EstimatedDelivery.IsZero() {
		ed := o.EstimatedDelivery
		res.EstimatedDelivery = &ed
	}
	return res
}

func OrdersEntityToJSON(orders []entities.Order) OrderList {
	res := OrderList{Orders: make([]Order, 0, len(orders))}
	for _, o := range orders {
		res.Orders = append(res.Orders, OrderEntityToJSON(o))
	}
	return res
}
