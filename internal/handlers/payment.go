// internal/handlers/payment.go
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/soutech/shop-backend/internal/i18n"
	"github.com/soutech/shop-backend/internal/services"
	"github.com/soutech/shop-backend/internal/utils"
)

const (
	staticPageRefreshSeconds = 4
	maxWebhookBodyBytes      = 64 << 10
)

type PaymentHandler struct {
	checkoutService       *services.CheckoutService
	reconciliationService *services.ReconciliationService
	baseURL               string
}

func NewPaymentHandler(checkoutService *services.CheckoutService, reconciliationService *services.ReconciliationService, baseURL string) *PaymentHandler {
	return &PaymentHandler{
		checkoutService:       checkoutService,
		reconciliationService: reconciliationService,
		baseURL:               baseURL,
	}
}

// POST /checkout
func (h *PaymentHandler) CreateCheckout(c *gin.Context) {
	user, ok := utils.GetUserFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeyAuthRequired))
		return
	}

	var req services.CheckoutRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.checkoutService.CreateCheckout(c.Request.Context(), user, req.Items, h.callbackBase(c))
	if err != nil {
		respondError(c, err, "")
		return
	}

	utils.SuccessResponse(c, result)
}

// GET /checkout/result
func (h *PaymentHandler) CheckoutResult(c *gin.Context) {
	status := h.reconciliationService.ReconcileRedirect(c.Request.Context(), services.RedirectParams{
		PaymentID:         firstQuery(c, "payment_id", "collection_id", "id"),
		ExternalReference: firstQuery(c, "external_reference", "externalReference"),
		Status:            firstQuery(c, "status", "collection_status"),
	})

	renderOutcome(c, services.ClassifyOutcome(status), 0)
}

// GET /checkout/success
func (h *PaymentHandler) CheckoutSuccess(c *gin.Context) {
	renderOutcome(c, services.OutcomeApproved, staticPageRefreshSeconds)
}

// GET /checkout/failure
func (h *PaymentHandler) CheckoutFailure(c *gin.Context) {
	renderOutcome(c, services.OutcomeFailed, staticPageRefreshSeconds)
}

// GET /checkout/pending
func (h *PaymentHandler) CheckoutPending(c *gin.Context) {
	renderOutcome(c, services.OutcomePending, staticPageRefreshSeconds)
}

// POST /webhooks/mp
// Always answers 200 so the provider does not retry.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBodyBytes)
	body, err := c.GetRawData()
	if err != nil {
		requestLogger(c).WithError(err).Warn("Failed to read webhook body")
		body = nil
	}

	result := h.reconciliationService.HandleWebhook(c.Request.Context(), body, c.Query("id"))
	c.JSON(http.StatusOK, result)
}

// callbackBase is the configured public URL, or one rebuilt from the
// proxy headers of the current request.
func (h *PaymentHandler) callbackBase(c *gin.Context) string {
	if h.baseURL != "" {
		return h.baseURL
	}

	host := firstHeaderValue(c.GetHeader("X-Forwarded-Host"))
	if host == "" {
		host = c.Request.Host
	}
	if host == "" {
		host = "localhost:8001"
	}

	scheme := firstHeaderValue(c.GetHeader("X-Forwarded-Proto"))
	if scheme == "" {
		scheme = "http"
		if c.Request.TLS != nil {
			scheme = "https"
		}
	}

	return scheme + "://" + host
}

func firstQuery(c *gin.Context, keys ...string) string {
	for _, key := range keys {
		if v := strings.TrimSpace(c.Query(key)); v != "" {
			return v
		}
	}
	return ""
}

func firstHeaderValue(v string) string {
	if i := strings.IndexByte(v, ','); i >= 0 {
		v = v[:i]
	}
	return strings.TrimSpace(v)
}
