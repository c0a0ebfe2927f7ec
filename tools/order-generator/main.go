// Command order-generator places random storefront orders against a running
// service and walks some of them through payment.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/stichkala/order-service/internal/handler"
)

var products = []string{"hoop", "tote", "card", "coaster", "frame"}

func randomString(n int) string {
	letters := []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789")
	b := make([]rune, n)
	for i := range b {
		b[i] = letters[rand.Intn(len(letters))]
	}
	return string(b)
}

func generateRandomOrder() handler.CreateOrderRequest {
	items := make([]handler.OrderItemRequest, 1+rand.Intn(3))
	customized := false
	for i := range items {
		items[i] = handler.OrderItemRequest{
			ProductID: products[rand.Intn(len(products))],
			Quantity:  1 + rand.Intn(3),
		}
		if rand.Intn(4) == 0 {
			customized = true
			items[i].Customization = &handler.Customization{
				Text:  "For " + randomString(5),
				Color: "gold",
			}
		}
	}

	phone := fmt.Sprintf("+91%010d", rand.Intn(9999999999))
	req := handler.CreateOrderRequest{
		CustomerInfo: handler.CustomerInfo{
			Name:  "Customer " + randomString(4),
			Email: fmt.Sprintf("user%d@example.com", rand.Intn(1000)),
			Phone: phone,
			Address: handler.Address{
				Street:  fmt.Sprintf("%d MG Road", rand.Intn(100)),
				City:    "Pune",
				State:   "MH",
				Pincode: fmt.Sprintf("%06d", 100000+rand.Intn(899999)),
			},
		},
		Items:         items,
		PaymentMethod: []string{"cod", "upi", "online"}[rand.Intn(3)],
		GiftWrap:      rand.Intn(2) == 0,
	}
	if customized {
		req.CustomerInfo.WhatsappNumber = phone
	}
	return req
}

func post(ctx context.Context, url string, body any, out any) (int, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return 0, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if out != nil && resp.StatusCode < 300 {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, err
		}
	}
	return resp.StatusCode, nil
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "service base url")
	interval := flag.Duration("interval", 2*time.Second, "delay between orders")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			var created handler.CreateOrderResponse
			status, err := post(ctx, *baseURL+"/orders", generateRandomOrder(), &created)
			if err != nil {
				log.Println("failed to create order:", err)
				continue
			}
			log.Println("order", created.Order.OrderNumber, created.Order.PaymentMethod, created.Order.TotalAmount, "->", status)

			// часть ручных оплат сразу подтверждаем
			if created.Order.PaymentMethod == "upi" && rand.Intn(2) == 0 {
				status, err := post(ctx, *baseURL+"/payment/confirm", handler.ConfirmPaymentRequest{
					OrderID:          created.Order.ID,
					UpiTransactionID: "UTR" + randomString(10),
				}, nil)
				log.Println("confirm", created.Order.OrderNumber, "->", status, err)
			}
		case <-ctx.Done():
			return
		}
	}
}
