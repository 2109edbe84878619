// internal/services/checkout_service.go
package services

import (
	"context"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/soutech/shop-backend/internal/config"
	"github.com/soutech/shop-backend/internal/gateway"
	"github.com/soutech/shop-backend/internal/models"
)

type CheckoutService struct {
	orders  *OrderService
	gateway gateway.PaymentGateway
	cfg     *config.PaymentConfig
}

type CheckoutRequest struct {
	Items []OrderLine `json:"items"`
}

type CheckoutResult struct {
	CheckoutURL string `json:"checkout_url"`
	OrderID     uint   `json:"order_id"`
}

func NewCheckoutService(orders *OrderService, paymentGateway gateway.PaymentGateway, cfg *config.PaymentConfig) *CheckoutService {
	return &CheckoutService{
		orders:  orders,
		gateway: paymentGateway,
		cfg:     cfg,
	}
}

// CreateCheckout records an order for the cart and opens a preference for it
// at the provider. The order is committed before the provider is called, so
// a gateway failure leaves it in status "created".
func (s *CheckoutService) CreateCheckout(ctx context.Context, user *models.User, lines []OrderLine, callbackBase string) (*CheckoutResult, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}
	if !s.gateway.Configured() {
		return nil, NewError(KindGateway, "payment provider not configured", gateway.ErrNotConfigured)
	}

	customer := Customer{
		Name:  strings.TrimSpace(user.Name),
		Email: strings.TrimSpace(user.Email),
	}
	// The provider rejects malformed payer emails.
	if customer.Email == "" || !strings.Contains(customer.Email, "@") {
		customer.Email = s.cfg.FallbackPayerEmail
	}

	order, err := s.orders.CreateWithItems(customer, lines)
	if err != nil {
		return nil, err
	}

	logger := logrus.WithFields(logrus.Fields{"order_id": order.ID, "user_id": user.ID})

	pref, err := s.gateway.CreatePreference(ctx, s.buildPreference(order, callbackBase))
	if err != nil {
		logger.WithError(err).Error("Failed to create payment preference")
		return nil, NewError(KindGateway, "checkout failed", err)
	}

	if err := s.orders.SetPreference(order.ID, pref.ID); err != nil {
		logger.WithError(err).WithField("preference_id", pref.ID).Error("Failed to store preference id")
		return nil, err
	}

	checkoutURL := pref.RedirectURL()
	if checkoutURL == "" {
		logger.WithField("preference_id", pref.ID).Error("Provider returned no checkout URL")
		return nil, NewError(KindGateway, "checkout failed", nil)
	}

	logger.WithField("preference_id", pref.ID).Info("Checkout created")
	return &CheckoutResult{CheckoutURL: checkoutURL, OrderID: order.ID}, nil
}

func (s *CheckoutService) buildPreference(order *models.Order, base string) *gateway.Preference {
	base = strings.TrimRight(base, "/")

	items := make([]gateway.PreferenceItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, gateway.PreferenceItem{
			ID:         strconv.FormatUint(uint64(item.ProductID), 10),
			Title:      item.Name,
			CurrencyID: s.cfg.Currency,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
		})
	}

	return &gateway.Preference{
		Items: items,
		Payer: gateway.Payer{
			Name:  order.CustomerName,
			Email: order.CustomerEmail,
		},
		BackURLs: gateway.BackURLs{
			Success: base + "/checkout/success",
			Failure: base + "/checkout/failure",
			Pending: base + "/checkout/pending",
		},
		AutoReturn:          "approved",
		NotificationURL:     base + "/webhooks/mp",
		StatementDescriptor: s.cfg.StatementDescriptor,
		ExternalReference:   strconv.FormatUint(uint64(order.ID), 10),
		ReturnURL:           base + "/checkout/result",
	}
}
