package shared

import (
	"errors"
	"net/http"
)

// AppError carries the HTTP status and user-facing message for a domain
// failure. Services return these for expected conditions; anything else is
// treated as an internal error by the HTTP layer.
type AppError struct {
	StatusCode int
	Message    string
	Data       interface{}
	Err        error
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

func NewAppError(statusCode int, message string, err error) *AppError {
	return &AppError{StatusCode: statusCode, Message: message, Err: err}
}

func NewBadRequestError(err error, message string) *AppError {
	if message == "" {
		message = "Bad Request"
	}
	return &AppError{StatusCode: http.StatusBadRequest, Message: message, Err: err}
}

// NewUnauthenticatedError covers operations that require a resolved account.
func NewUnauthenticatedError() *AppError {
	return &AppError{StatusCode: http.StatusUnauthorized, Message: "Please sign in to continue"}
}

// NewInvalidCredentialsError is deliberately identical for unknown accounts,
// federated-only accounts and password mismatches so sign-in failures cannot
// be used to enumerate accounts.
func NewInvalidCredentialsError() *AppError {
	return &AppError{StatusCode: http.StatusUnauthorized, Message: "Invalid email/username or password"}
}

func NewInsufficientCreditError() *AppError {
	return &AppError{StatusCode: http.StatusPaymentRequired, Message: "Not enough credits. Purchase more credits to export reports"}
}

func NewDuplicateAccountError(field string) *AppError {
	return &AppError{StatusCode: http.StatusConflict, Message: field + " is already registered"}
}

func NewNotFoundError(message string) *AppError {
	if message == "" {
		message = "Not Found"
	}
	return &AppError{StatusCode: http.StatusNotFound, Message: message}
}

func NewForbiddenError() *AppError {
	return &AppError{StatusCode: http.StatusForbidden, Message: "Forbidden"}
}

func GetAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
