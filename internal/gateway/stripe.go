// internal/gateway/stripe.go
package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/checkout/session"

	"github.com/soutech/shop-backend/internal/config"
)

// StripeGateway maps preferences onto Stripe Checkout Sessions. The session
// id plays the role of the payment id and client_reference_id carries the
// external reference.
type StripeGateway struct {
	sessions session.Client
}

var _ PaymentGateway = (*StripeGateway)(nil)

// NewStripeGateway uses backend when given, otherwise the default API
// backend with the configured timeout and no retries.
func NewStripeGateway(cfg config.PaymentConfig, backend stripe.Backend) *StripeGateway {
	if backend == nil {
		backend = stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
			HTTPClient:        &http.Client{Timeout: cfg.RequestTimeout()},
			MaxNetworkRetries: stripe.Int64(0),
		})
	}
	return &StripeGateway{
		sessions: session.Client{B: backend, Key: cfg.StripeSecretKey},
	}
}

func (g *StripeGateway) Configured() bool {
	return g.sessions.Key != ""
}

func (g *StripeGateway) CreatePreference(ctx context.Context, pref *Preference) (*PreferenceResult, error) {
	if !g.Configured() {
		return nil, ErrNotConfigured
	}

	successURL, cancelURL := pref.BackURLs.Success, pref.BackURLs.Failure
	if pref.ReturnURL != "" {
		successURL, cancelURL = pref.ReturnURL, pref.ReturnURL
	}

	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(withSessionParams(successURL, pref.ExternalReference)),
		CancelURL:         stripe.String(withSessionParams(cancelURL, pref.ExternalReference)),
		ClientReferenceID: stripe.String(pref.ExternalReference),
	}
	params.Context = ctx
	if pref.Payer.Email != "" {
		params.CustomerEmail = stripe.String(pref.Payer.Email)
	}

	for _, item := range pref.Items {
		params.LineItems = append(params.LineItems, &stripe.CheckoutSessionLineItemParams{
			Quantity: stripe.Int64(int64(item.Quantity)),
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(strings.ToLower(item.CurrencyID)),
				UnitAmount: stripe.Int64(toMinorUnits(item.UnitPrice)),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(item.Title),
				},
			},
		})
	}

	s, err := g.sessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}

	return &PreferenceResult{ID: s.ID, CheckoutURL: s.URL}, nil
}

func (g *StripeGateway) FetchPayment(ctx context.Context, paymentID string) (*Payment, error) {
	if !g.Configured() {
		return nil, ErrNotConfigured
	}

	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	s, err := g.sessions.Get(paymentID, params)
	if err != nil {
		return nil, fmt.Errorf("fetch checkout session: %w", err)
	}

	return &Payment{
		ID:                s.ID,
		Status:            sessionStatus(s),
		ExternalReference: s.ClientReferenceID,
	}, nil
}

func sessionStatus(s *stripe.CheckoutSession) string {
	switch {
	case s.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid:
		return "approved"
	case s.Status == stripe.CheckoutSessionStatusExpired:
		return "cancelled"
	default:
		return "pending"
	}
}

func toMinorUnits(amount float64) int64 {
	return decimal.NewFromFloat(amount).Shift(2).Round(0).IntPart()
}

// withSessionParams lets the return page look the session up. The
// {CHECKOUT_SESSION_ID} placeholder is expanded by Stripe and must stay
// unescaped.
func withSessionParams(rawURL, externalReference string) string {
	sep := "?"
	if strings.Contains(rawURL, "?") {
		sep = "&"
	}
	return rawURL + sep + "payment_id={CHECKOUT_SESSION_ID}&external_reference=" + url.QueryEscape(externalReference)
}
