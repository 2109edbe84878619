// internal/handlers/health.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/soutech/shop-backend/internal/gateway"
)

type HealthHandler struct {
	gateway gateway.PaymentGateway
	baseURL string
}

func NewHealthHandler(paymentGateway gateway.PaymentGateway, baseURL string) *HealthHandler {
	return &HealthHandler{
		gateway: paymentGateway,
		baseURL: baseURL,
	}
}

// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ok":                 true,
		"payment_configured": h.gateway.Configured(),
		"base_url":           h.baseURL,
	})
}
