package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	domainErrors "github.com/vraxaserver/eygarpayment/internal/domain/errors"
)

// ErrorResponse is the uniform error envelope every failed request returns.
type ErrorResponse struct {
	ErrorCode string `json:"error_code"`
	Message   string `json:"message"`
}

// Wire error codes.
const (
	CodeValidationError   = "VALIDATION_ERROR"
	CodeUnauthenticated   = "UNAUTHENTICATED"
	CodeForbidden         = "FORBIDDEN"
	CodeNotFound          = "NOT_FOUND"
	CodeConflict          = "CONFLICT"
	CodeInvalidTransition = "INVALID_TRANSITION"
	CodeInternalError     = "INTERNAL_ERROR"
)

func respondError(c echo.Context, status int, code, message string) error {
	return c.JSON(status, ErrorResponse{ErrorCode: code, Message: message})
}

func validationFailed(c echo.Context, message string) error {
	return respondError(c, http.StatusBadRequest, CodeValidationError, message)
}

func authenticationRequired(c echo.Context) error {
	return respondError(c, http.StatusUnauthorized, CodeUnauthenticated, "Authentication required")
}

// serviceError maps domain errors onto wire responses. An ownership denial
// produces exactly the same status and body as a missing record, so callers
// cannot probe which ids belong to other users.
func (h *PaymentHandler) serviceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domainErrors.ErrPaymentNotFound),
		errors.Is(err, domainErrors.ErrPaymentAccessDenied):
		return respondError(c, http.StatusNotFound, CodeNotFound, "Payment not found")

	case errors.Is(err, domainErrors.ErrAdminRequired):
		return respondError(c, http.StatusForbidden, CodeForbidden, "Admin privileges required")

	case errors.Is(err, domainErrors.ErrDuplicatePayment):
		return respondError(c, http.StatusConflict, CodeConflict,
			"A payment with the same payment_id or checkout_session_id already exists")

	case errors.Is(err, domainErrors.ErrInvalidTransition):
		return respondError(c, http.StatusConflict, CodeInvalidTransition, err.Error())

	default:
		h.logger.Error("unhandled service error",
			zap.String("path", c.Path()),
			zap.Error(err))
		return respondError(c, http.StatusInternalServerError, CodeInternalError, "Internal server error")
	}
}
