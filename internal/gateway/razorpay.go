// Package gateway talks to the Razorpay orders API and checks payment
// signatures returned by its checkout.
package gateway

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/stichkala/order-service/internal/config"
	"github.com/stichkala/order-service/internal/entities"
)

// minorUnits converts whole rupees to paise.
const minorUnits = 100

type Intent struct {
	ID       string
	Amount   int64
	Currency string
	Receipt  string
}

type Razorpay struct {
	keyID    string
	secret   []byte
	baseURL  string
	currency string
	client   *http.Client
	logger   *slog.Logger
}

func NewRazorpay(logger *slog.Logger, cfg config.Gateway) *Razorpay {
	return &Razorpay{
		keyID:    cfg.KeyID,
		secret:   []byte(cfg.KeySecret),
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		currency: cfg.Currency,
		client:   &http.Client{Timeout: cfg.Timeout},
		logger:   logger.With(slog.String("component", "razorpay")),
	}
}

type createOrderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

type orderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

// CreatePaymentIntent registers a remote order for amount (whole rupees) with the
// order number as receipt. Any failure is reported as ErrGatewayUnavailable.
func (g *Razorpay) CreatePaymentIntent(ctx context.Context, receipt string, amount int64) (Intent, error) {
	log := g.logger.With(slog.String("receipt", receipt), slog.Int64("amount", amount))

	body, err := json.Marshal(createOrderRequest{
		Amount:   amount * minorUnits,
		Currency: g.currency,
		Receipt:  receipt,
	})
	if err != nil {
		return Intent{}, fmt.Errorf("%w: %v", entities.ErrGatewayUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return Intent{}, fmt.Errorf("%w: %v", entities.ErrGatewayUnavailable, err)
	}
	req.SetBasicAuth(g.keyID, string(g.secret))
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		log.Error("gateway request failed", "error", err)
		return Intent{}, fmt.Errorf("%w: %v", entities.ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Intent{}, fmt.Errorf("%w: read response: %v", entities.ErrGatewayUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Error("gateway rejected order", "status", resp.StatusCode, "body", string(raw))
		return Intent{}, fmt.Errorf("%w: status %d", entities.ErrGatewayUnavailable, resp.StatusCode)
	}

	var out orderResponse
	if err := json.Unmarshal(raw, &out); err != nil || out.ID == "" {
		return Intent{}, fmt.Errorf("%w: malformed response", entities.ErrGatewayUnavailable)
	}

	log.Debug("gateway order created", "gateway_order_id", out.ID)
	return Intent{ID: out.ID, Amount: out.Amount, Currency: out.Currency, Receipt: out.Receipt}, nil
}

// Sign returns the hex HMAC-SHA256 of "orderID|paymentID" under the key secret.
func (g *Razorpay) Sign(gatewayOrderID, paymentID string) string {
	return hex.EncodeToString(g.mac(gatewayOrderID, paymentID))
}

// VerifySignature compares in constant time. Malformed signatures never match.
func (g *Razorpay) VerifySignature(gatewayOrderID, paymentID, signature string) bool {
	if gatewayOrderID == "" || paymentID == "" || signature == "" {
		return false
	}
	got, err := hex.DecodeString(strings.ToLower(signature))
	if err != nil {
		return false
	}
	return hmac.Equal(got, g.mac(gatewayOrderID, paymentID))
}

func (g *Razorpay) mac(gatewayOrderID, paymentID string) []byte {
	m := hmac.New(sha256.New, g.secret)
	m.Write([]byte(gatewayOrderID + "|" + paymentID))
	return m.Sum(nil)
}
