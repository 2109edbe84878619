// internal/handlers/auth.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/soutech/shop-backend/internal/i18n"
	"github.com/soutech/shop-backend/internal/services"
	"github.com/soutech/shop-backend/internal/utils"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// POST /auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req services.SignupRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.authService.CreateUser(&req)
	if err != nil {
		respondError(c, err, "")
		return
	}

	utils.CreatedResponse(c, user)
}

// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	token, err := h.authService.Login(&req)
	if err != nil {
		respondError(c, err, "")
		return
	}

	utils.SuccessResponse(c, token)
}

// GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := utils.GetUserFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeyAuthRequired))
		return
	}

	utils.SuccessResponse(c, user)
}
