// internal/handlers/errors.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/soutech/shop-backend/internal/i18n"
	"github.com/soutech/shop-backend/internal/services"
	"github.com/soutech/shop-backend/internal/utils"
)

// respondError translates a service error into a status code and envelope.
// notFoundKey names the message used for a NotFound error.
func respondError(c *gin.Context, err error, notFoundKey string) {
	lang := utils.GetLangFromContext(c)

	var appErr *services.AppError
	if !errors.As(err, &appErr) {
		appErr = services.NewError(services.KindInternal, "unexpected error", err)
	}

	switch appErr.Kind {
	case services.KindValidation:
		if details := utils.GetValidationErrors(err); len(details) > 0 {
			utils.ValidationErrorResponse(c, details)
			return
		}
		utils.BadRequestResponse(c, appErr.Message, nil)
	case services.KindDuplicateEmail:
		utils.ErrorResponse(c, http.StatusBadRequest, "DUPLICATE_EMAIL", i18n.T(lang, i18n.KeyAuthEmailExists), nil)
	case services.KindEmptyCart:
		utils.ErrorResponse(c, http.StatusBadRequest, "EMPTY_CART", i18n.T(lang, i18n.KeyCheckoutEmptyCart), nil)
	case services.KindInvalidItem:
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_ITEM", i18n.T(lang, i18n.KeyCheckoutInvalidItem), nil)
	case services.KindInvalidQuantity:
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_QUANTITY", i18n.T(lang, i18n.KeyCheckoutInvalidQuantity), nil)
	case services.KindUnauthenticated:
		utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthTokenExpired))
	case services.KindInvalidCredentials:
		utils.ErrorResponse(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", i18n.T(lang, i18n.KeyAuthInvalidCredentials), nil)
	case services.KindUserNotFound:
		utils.ErrorResponse(c, http.StatusUnauthorized, "USER_NOT_FOUND", i18n.T(lang, i18n.KeyAuthUserNotFound), nil)
	case services.KindForbidden:
		utils.ForbiddenResponse(c, "")
	case services.KindNotFound:
		message := appErr.Message
		if notFoundKey != "" {
			message = i18n.T(lang, notFoundKey)
		}
		utils.NotFoundResponse(c, message)
	case services.KindDuplicateSKU:
		utils.ConflictResponse(c, i18n.T(lang, i18n.KeyProductSKUExists))
	case services.KindGateway:
		requestLogger(c).WithError(err).Error("Payment gateway failure")
		utils.InternalErrorResponse(c, i18n.T(lang, i18n.KeyCheckoutFailed))
	default:
		requestLogger(c).WithError(err).Error("Request failed")
		utils.InternalErrorResponse(c, "")
	}
}

// bindJSON reports malformed bodies and returns false when it did.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		lang := utils.GetLangFromContext(c)
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return false
	}
	return true
}

// parseIDParam reads a positive numeric path parameter.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		lang := utils.GetLangFromContext(c)
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, name), nil)
		return 0, false
	}
	return uint(id), true
}

func requestLogger(c *gin.Context) *logrus.Entry {
	fields := logrus.Fields{
		"method": c.Request.Method,
		"path":   c.Request.URL.Path,
	}
	if requestID := c.GetString(utils.ContextRequestIDKey); requestID != "" {
		fields["request_id"] = requestID
	}
	if userID, ok := utils.GetUserIDFromContext(c); ok {
		fields["user_id"] = userID
	}
	return logrus.WithFields(fields)
}
