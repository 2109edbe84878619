// internal/services/errors.go
package services

import "errors"

type ErrorKind string

const (
	KindValidation         ErrorKind = "validation"
	KindUnauthenticated    ErrorKind = "unauthenticated"
	KindForbidden          ErrorKind = "forbidden"
	KindNotFound           ErrorKind = "not_found"
	KindInvalidCredentials ErrorKind = "invalid_credentials"
	KindUserNotFound       ErrorKind = "user_not_found"
	KindDuplicateEmail     ErrorKind = "duplicate_email"
	KindDuplicateSKU       ErrorKind = "duplicate_sku"
	KindEmptyCart          ErrorKind = "empty_cart"
	KindInvalidItem        ErrorKind = "invalid_item"
	KindInvalidQuantity    ErrorKind = "invalid_quantity"
	KindGateway            ErrorKind = "gateway"
	KindInternal           ErrorKind = "internal"
)

// AppError is the error type returned across the service boundary. Two
// AppErrors match under errors.Is when their kinds are equal.
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Kind == e.Kind
}

func NewError(kind ErrorKind, message string, err error) *AppError {
	return &AppError{Kind: kind, Message: message, Err: err}
}

var (
	ErrValidation         = &AppError{Kind: KindValidation, Message: "validation failed"}
	ErrUnauthenticated    = &AppError{Kind: KindUnauthenticated, Message: "invalid or expired token"}
	ErrForbidden          = &AppError{Kind: KindForbidden, Message: "admin access required"}
	ErrNotFound           = &AppError{Kind: KindNotFound, Message: "not found"}
	ErrInvalidCredentials = &AppError{Kind: KindInvalidCredentials, Message: "invalid email or password"}
	ErrUserNotFound       = &AppError{Kind: KindUserNotFound, Message: "user not found"}
	ErrDuplicateEmail     = &AppError{Kind: KindDuplicateEmail, Message: "email already registered"}
	ErrDuplicateSKU       = &AppError{Kind: KindDuplicateSKU, Message: "sku already exists"}
	ErrEmptyCart          = &AppError{Kind: KindEmptyCart, Message: "cart is empty"}
	ErrInvalidItem        = &AppError{Kind: KindInvalidItem, Message: "invalid item"}
	ErrInvalidQuantity    = &AppError{Kind: KindInvalidQuantity, Message: "invalid quantity"}
	ErrGateway            = &AppError{Kind: KindGateway, Message: "payment gateway error"}
	ErrInternal           = &AppError{Kind: KindInternal, Message: "internal error"}
)

// KindOf reports the kind of err, or KindInternal for foreign errors.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

func internalError(message string, err error) error {
	return NewError(KindInternal, message, err)
}
