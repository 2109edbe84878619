// internal/handlers/user.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/soutech/shop-backend/internal/i18n"
	"github.com/soutech/shop-backend/internal/services"
	"github.com/soutech/shop-backend/internal/utils"
)

// UserHandler serves the admin user screens.
type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// GET /admin/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	params, paginated := utils.GetPaginationParams(c)
	if !paginated {
		users, _, err := h.userService.ListUsers(nil)
		if err != nil {
			respondError(c, err, "")
			return
		}
		utils.SuccessResponse(c, users)
		return
	}

	users, total, err := h.userService.ListUsers(&params)
	if err != nil {
		respondError(c, err, "")
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(users, total, params))
}

// POST /admin/users
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req services.AdminCreateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.CreateUser(&req)
	if err != nil {
		respondError(c, err, "")
		return
	}

	utils.CreatedResponse(c, user)
}

// PATCH /admin/users/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.AdminUpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.UpdateUser(id, &req)
	if err != nil {
		respondError(c, err, i18n.KeyUserNotFound)
		return
	}

	utils.SuccessResponse(c, user)
}
