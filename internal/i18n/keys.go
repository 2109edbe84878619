// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeyInternalError     = "error.internal"
	KeyRateLimitExceeded = "error.rate_limit"

	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthTokenExpired       = "auth.token_expired"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthUserNotFound       = "auth.user_not_found"
	KeyAuthEmailExists        = "auth.email_exists"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAuthRegisterSuccess    = "auth.register_success"

	// Admin
	KeyAdminAccessDenied = "admin.access_denied"

	// Users
	KeyUserNotFound = "user.not_found"
	KeyUserUpdated  = "user.updated"

	// Products
	KeyProductNotFound      = "product.not_found"
	KeyProductSKUExists     = "product.sku_exists"
	KeyProductDeleted       = "product.deleted"
	KeyProductImageUploaded = "product.image_uploaded"
	KeyProductImageInvalid  = "product.image_invalid"

	// Orders
	KeyOrderNotFound = "order.not_found"
	KeyOrderDeleted  = "order.deleted"

	// Checkout
	KeyCheckoutEmptyCart       = "checkout.empty_cart"
	KeyCheckoutInvalidItem     = "checkout.invalid_item"
	KeyCheckoutInvalidQuantity = "checkout.invalid_quantity"
	KeyCheckoutFailed          = "checkout.failed"

	// Validation
	KeyValidationRequired = "validation.required"
	KeyValidationInvalid  = "validation.invalid"

	// Payment outcome pages
	KeyPageApprovedTitle   = "page.approved.title"
	KeyPageApprovedMessage = "page.approved.message"
	KeyPagePendingTitle    = "page.pending.title"
	KeyPagePendingMessage  = "page.pending.message"
	KeyPageFailedTitle     = "page.failed.title"
	KeyPageFailedMessage   = "page.failed.message"
	KeyPageRedirectNotice  = "page.redirect_notice"
	KeyPageBack            = "page.back"
	KeyPageBackNow         = "page.back_now"
)
