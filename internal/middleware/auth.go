// internal/middleware/auth.go
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/soutech/shop-backend/internal/i18n"
	"github.com/soutech/shop-backend/internal/models"
	"github.com/soutech/shop-backend/internal/services"
	"github.com/soutech/shop-backend/internal/utils"
)

// Authenticator resolves bearer tokens and checks the admin role.
type Authenticator interface {
	ResolveToken(token string) (*models.User, error)
	RequireAdmin(user *models.User) error
}

func AuthRequired(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := utils.GetLangFromContext(c)

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthRequired))
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthInvalidToken))
			c.Abort()
			return
		}

		user, err := auth.ResolveToken(strings.TrimSpace(parts[1]))
		if err != nil {
			switch services.KindOf(err) {
			case services.KindUserNotFound:
				utils.ErrorResponse(c, http.StatusUnauthorized, "USER_NOT_FOUND", i18n.T(lang, i18n.KeyAuthUserNotFound), nil)
			case services.KindUnauthenticated:
				utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthTokenExpired))
			default:
				utils.InternalErrorResponse(c, "")
			}
			c.Abort()
			return
		}

		c.Set(utils.ContextUserKey, user)
		c.Set(utils.ContextUserIDKey, user.ID)
		c.Next()
	}
}

// AdminRequired must run after AuthRequired.
func AdminRequired(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := utils.GetUserFromContext(c)
		if err := auth.RequireAdmin(user); err != nil {
			utils.ForbiddenResponse(c, "")
			c.Abort()
			return
		}
		c.Next()
	}
}
