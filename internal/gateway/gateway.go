// internal/gateway/gateway.go

// Package gateway talks to the external payment provider. A checkout is
// started by creating a preference and later resolved by fetching a payment.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrNotConfigured = errors.New("payment provider not configured")

type PreferenceItem struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	CurrencyID string  `json:"currency_id"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
}

type Payer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type BackURLs struct {
	Success string `json:"success"`
	Failure string `json:"failure"`
	Pending string `json:"pending"`
}

// Preference describes a purchase before the payer is redirected.
// ExternalReference carries the local order id. ReturnURL is the page that
// reconciles on return; providers that can pass the payment id back in the
// redirect send the payer there instead of the static back URLs.
type Preference struct {
	Items               []PreferenceItem `json:"items"`
	Payer               Payer            `json:"payer"`
	BackURLs            BackURLs         `json:"back_urls"`
	AutoReturn          string           `json:"auto_return,omitempty"`
	NotificationURL     string           `json:"notification_url"`
	StatementDescriptor string           `json:"statement_descriptor,omitempty"`
	ExternalReference   string           `json:"external_reference"`
	ReturnURL           string           `json:"-"`
}

type PreferenceResult struct {
	ID                 string `json:"id"`
	CheckoutURL        string `json:"init_point"`
	SandboxCheckoutURL string `json:"sandbox_init_point"`
}

// RedirectURL prefers the live checkout over the sandbox one.
func (r *PreferenceResult) RedirectURL() string {
	if r.CheckoutURL != "" {
		return r.CheckoutURL
	}
	return r.SandboxCheckoutURL
}

type Payment struct {
	ID                string
	Status            string
	ExternalReference string
}

type PaymentGateway interface {
	CreatePreference(ctx context.Context, pref *Preference) (*PreferenceResult, error)
	FetchPayment(ctx context.Context, paymentID string) (*Payment, error)
	Configured() bool
}

// StatusError is returned when the provider answers with an unexpected
// HTTP status.
type StatusError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: provider returned status %d: %s", e.Op, e.StatusCode, e.Body)
}

// rawString accepts a JSON string, number or null.
func rawString(raw json.RawMessage) string {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return ""
	}
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		return str
	}
	return s
}
