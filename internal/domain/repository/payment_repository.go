package repository

import (
	"context"

	"github.com/vraxaserver/eygarpayment/internal/domain/dto"
	"github.com/vraxaserver/eygarpayment/internal/domain/entity"
	"github.com/vraxaserver/eygarpayment/internal/domain/model"
)

// PaymentRepository is the record store contract. It owns persistence and the
// status state machine; it carries no authorization logic.
type PaymentRepository interface {
	// Create inserts a new record. Uniqueness of payment_id and
	// checkout_session_id is enforced by the database constraints and
	// surfaces as ErrDuplicatePayment.
	Create(ctx context.Context, payment *model.Payment) error

	// GetByID returns the record or ErrPaymentNotFound.
	GetByID(ctx context.Context, id int64) (*model.Payment, error)

	// GetByPaymentID looks a record up by the gateway-assigned key.
	GetByPaymentID(ctx context.Context, paymentID string) (*model.Payment, error)

	// ListByBooking returns every record referencing the booking.
	ListByBooking(ctx context.Context, bookingID int64) ([]model.Payment, error)

	// List returns one page of filtered records ordered by created_at
	// descending, plus the total size of the filtered set.
	List(ctx context.Context, filter entity.PaymentFilter, page entity.PaginationParams) ([]model.Payment, int64, error)

	// Update applies the provided patch fields and returns the updated
	// record. A patch carrying a status is subject to the terminal-state
	// rule.
	Update(ctx context.Context, id int64, patch *dto.UpdatePaymentRequest) (*model.Payment, error)

	// UpdateStatus moves the record to status, rejecting transitions out of
	// terminal states with ErrInvalidTransition.
	UpdateStatus(ctx context.Context, id int64, status model.Status) (*model.Payment, error)
}
