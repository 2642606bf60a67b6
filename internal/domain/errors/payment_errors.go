package errors

import "errors"

var (
	// ErrPaymentNotFound indicates that no payment record matches the given identifier
	ErrPaymentNotFound = errors.New("payment not found")

	// ErrDuplicatePayment indicates a uniqueness violation on payment_id or checkout_session_id
	ErrDuplicatePayment = errors.New("payment already exists")

	// ErrInvalidTransition indicates an attempt to move a payment out of a terminal status
	ErrInvalidTransition = errors.New("payment status transition not allowed")

	// ErrPaymentAccessDenied indicates the caller does not own the payment record
	ErrPaymentAccessDenied = errors.New("payment access denied")

	// ErrAdminRequired indicates the operation is restricted to admin callers
	ErrAdminRequired = errors.New("admin capability required")
)
