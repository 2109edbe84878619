// internal/handlers/admin.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/soutech/shop-backend/internal/services"
	"github.com/soutech/shop-backend/internal/utils"
)

const defaultAuditLogLimit = 50

type AdminHandler struct {
	adminService *services.AdminService
}

func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
	}
}

// GET /admin/dashboard
func (h *AdminHandler) GetDashboard(c *gin.Context) {
	stats, err := h.adminService.GetDashboardStats()
	if err != nil {
		respondError(c, err, "")
		return
	}

	utils.SuccessResponse(c, stats)
}

// GET /admin/audit-logs
func (h *AdminHandler) GetAuditLogs(c *gin.Context) {
	params, paginated := utils.GetPaginationParams(c)
	if !paginated {
		params = utils.PaginationParams{Page: 1, Limit: defaultAuditLogLimit}
	}

	logs, total, err := h.adminService.ListAuditLogs(params, c.Query("resource_type"))
	if err != nil {
		respondError(c, err, "")
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(logs, total, params))
}
