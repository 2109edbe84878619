// internal/services/reconciliation_service.go
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/soutech/shop-backend/internal/gateway"
)

type Outcome string

const (
	OutcomeApproved Outcome = "approved"
	OutcomePending  Outcome = "pending"
	OutcomeFailed   Outcome = "failed"
)

// ClassifyOutcome groups provider statuses into the three result pages.
func ClassifyOutcome(status string) Outcome {
	switch strings.ToLower(status) {
	case "approved":
		return OutcomeApproved
	case "in_process", "pending", "authorized":
		return OutcomePending
	default:
		return OutcomeFailed
	}
}

// ReconciliationService updates orders from the provider's payment status.
// Both entry points re-fetch the payment instead of trusting the caller.
type ReconciliationService struct {
	orders  *OrderService
	gateway gateway.PaymentGateway
}

type RedirectParams struct {
	PaymentID         string
	ExternalReference string
	Status            string
}

type WebhookResult struct {
	OK     bool   `json:"ok"`
	Detail string `json:"detail,omitempty"`
}

func NewReconciliationService(orders *OrderService, paymentGateway gateway.PaymentGateway) *ReconciliationService {
	return &ReconciliationService{
		orders:  orders,
		gateway: paymentGateway,
	}
}

// ReconcileRedirect handles the payer returning from the provider and
// returns the status to display. Errors are logged and never returned.
func (s *ReconciliationService) ReconcileRedirect(ctx context.Context, params RedirectParams) string {
	status := strings.ToLower(params.Status)
	if params.PaymentID == "" {
		return status
	}

	logger := logrus.WithField("payment_id", params.PaymentID)

	payment, err := s.gateway.FetchPayment(ctx, params.PaymentID)
	if err != nil {
		logger.WithError(err).Warn("Failed to fetch payment on redirect")
		return status
	}

	if payment.Status != "" {
		status = strings.ToLower(payment.Status)
	}

	ref := params.ExternalReference
	if ref == "" {
		ref = payment.ExternalReference
	}

	s.apply(logger, ref, status, paymentIDOf(payment, params.PaymentID))
	return status
}

// HandleWebhook processes a provider notification. It never fails: the
// result is always acknowledged so the provider does not retry.
func (s *ReconciliationService) HandleWebhook(ctx context.Context, body []byte, queryID string) WebhookResult {
	payload := decodeNotification(body)

	topic := firstString(payload, "type", "topic", "action")
	if !isPaymentTopic(topic) {
		return WebhookResult{OK: true}
	}

	data, _ := payload["data"].(map[string]interface{})
	paymentID := firstString(data, "id", "payment_id")
	if paymentID == "" {
		if object, ok := data["object"].(map[string]interface{}); ok {
			paymentID = firstString(object, "id")
		}
	}
	if paymentID == "" {
		paymentID = queryID
	}
	if paymentID == "" {
		return WebhookResult{OK: true}
	}

	logger := logrus.WithFields(logrus.Fields{"payment_id": paymentID, "topic": topic})

	payment, err := s.gateway.FetchPayment(ctx, paymentID)
	if err != nil {
		logger.WithError(err).Warn("Failed to fetch payment on webhook")
		return WebhookResult{OK: false, Detail: "payment fetch failed"}
	}

	s.apply(logger, payment.ExternalReference, payment.Status, paymentIDOf(payment, paymentID))
	return WebhookResult{OK: true}
}

func (s *ReconciliationService) apply(logger *logrus.Entry, ref, status, paymentID string) {
	orderID, ok := ParseExternalReference(ref)
	if !ok {
		logger.WithField("external_reference", ref).Debug("Payment has no usable external reference")
		return
	}

	logger = logger.WithField("order_id", orderID)
	if _, err := s.orders.ApplyPaymentStatus(orderID, status, paymentID); err != nil {
		if errors.Is(err, ErrNotFound) {
			logger.Warn("Payment references unknown order")
			return
		}
		logger.WithError(err).Error("Failed to apply payment status")
		return
	}

	logger.WithField("status", status).Info("Order payment status updated")
}

// ParseExternalReference accepts only a plain positive decimal order id.
func ParseExternalReference(ref string) (uint, bool) {
	if ref == "" {
		return 0, false
	}
	for _, r := range ref {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	id, err := strconv.ParseUint(ref, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func isPaymentTopic(topic string) bool {
	return strings.Contains(topic, "payment") || strings.HasPrefix(topic, "checkout.session")
}

func paymentIDOf(payment *gateway.Payment, requested string) string {
	if payment.ID != "" {
		return payment.ID
	}
	return requested
}

// decodeNotification treats an unreadable body as empty.
func decodeNotification(body []byte) map[string]interface{} {
	payload := map[string]interface{}{}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&payload); err != nil || payload == nil {
		return map[string]interface{}{}
	}
	return payload
}

func firstString(m map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		switch v := m[key].(type) {
		case nil:
			continue
		case string:
			if v != "" {
				return v
			}
		case json.Number:
			return v.String()
		case bool:
			continue
		default:
			return fmt.Sprint(v)
		}
	}
	return ""
}
