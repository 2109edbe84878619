// internal/handlers/order.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/soutech/shop-backend/internal/i18n"
	"github.com/soutech/shop-backend/internal/services"
	"github.com/soutech/shop-backend/internal/utils"
)

type OrderHandler struct {
	orderService *services.OrderService
}

func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// GET /orders/mine
func (h *OrderHandler) MyOrders(c *gin.Context) {
	user, ok := utils.GetUserFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	orders, err := h.orderService.ListForCustomer(user.Email)
	if err != nil {
		respondError(c, err, "")
		return
	}

	utils.SuccessResponse(c, orders)
}

// GET /admin/orders
func (h *OrderHandler) ListOrders(c *gin.Context) {
	params, paginated := utils.GetPaginationParams(c)
	if !paginated {
		orders, _, err := h.orderService.ListAll(nil)
		if err != nil {
			respondError(c, err, "")
			return
		}
		utils.SuccessResponse(c, orders)
		return
	}

	orders, total, err := h.orderService.ListAll(&params)
	if err != nil {
		respondError(c, err, "")
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(orders, total, params))
}

// GET /admin/orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.orderService.GetOrder(id)
	if err != nil {
		respondError(c, err, i18n.KeyOrderNotFound)
		return
	}

	utils.SuccessResponse(c, order)
}

// DELETE /admin/orders/:id
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.orderService.DeleteOrder(id); err != nil {
		respondError(c, err, i18n.KeyOrderNotFound)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"ok":      true,
		"message": i18n.T(utils.GetLangFromContext(c), i18n.KeyOrderDeleted),
	})
}
