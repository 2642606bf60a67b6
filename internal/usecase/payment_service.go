package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/vraxaserver/eygarpayment/internal/domain/dto"
	"github.com/vraxaserver/eygarpayment/internal/domain/entity"
	domainErrors "github.com/vraxaserver/eygarpayment/internal/domain/errors"
	"github.com/vraxaserver/eygarpayment/internal/domain/model"
	"github.com/vraxaserver/eygarpayment/internal/domain/repository"
)

// PaymentService enforces per-user ownership on top of the record store.
// Callers with the admin capability bypass the ownership checks; nobody
// bypasses the store's own constraints.
type PaymentService struct {
	repo   repository.PaymentRepository
	logger *zap.Logger
}

// NewPaymentService creates a new payment service
func NewPaymentService(repo repository.PaymentRepository, logger *zap.Logger) *PaymentService {
	return &PaymentService{
		repo:   repo,
		logger: logger,
	}
}

// Create records a new payment owned by the caller. Any identity carried in
// the request body is irrelevant: ownership always comes from the
// authenticated caller.
func (s *PaymentService) Create(ctx context.Context, caller entity.Caller, req *dto.CreatePaymentRequest) (*model.Payment, error) {
	payment := req.ToModel(caller.UserID)

	if err := s.repo.Create(ctx, payment); err != nil {
		return nil, err
	}

	s.logger.Info("payment created",
		zap.Int64("id", payment.ID),
		zap.String("payment_id", payment.PaymentID),
		zap.Int64("user_id", caller.UserID))

	return payment, nil
}

// Get returns a payment the caller owns, or any payment for admins.
func (s *PaymentService) Get(ctx context.Context, caller entity.Caller, id int64) (*model.Payment, error) {
	payment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !caller.CanAccess(payment.UserID) {
		s.logger.Warn("payment access denied",
			zap.Int64("id", id),
			zap.Int64("caller_id", caller.UserID),
			zap.Int64("owner_id", payment.UserID))
		return nil, domainErrors.ErrPaymentAccessDenied
	}

	return payment, nil
}

// GetByGatewayID is Get keyed by the gateway-assigned payment id.
func (s *PaymentService) GetByGatewayID(ctx context.Context, caller entity.Caller, paymentID string) (*model.Payment, error) {
	payment, err := s.repo.GetByPaymentID(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	if !caller.CanAccess(payment.UserID) {
		s.logger.Warn("payment access denied",
			zap.String("payment_id", paymentID),
			zap.Int64("caller_id", caller.UserID),
			zap.Int64("owner_id", payment.UserID))
		return nil, domainErrors.ErrPaymentAccessDenied
	}

	return payment, nil
}

// ListForBooking returns the booking's payments, reduced to the caller's own
// records unless the caller is an admin.
func (s *PaymentService) ListForBooking(ctx context.Context, caller entity.Caller, bookingID int64) ([]model.Payment, error) {
	payments, err := s.repo.ListByBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if caller.IsAdmin {
		if payments == nil {
			payments = []model.Payment{}
		}
		return payments, nil
	}

	owned := make([]model.Payment, 0, len(payments))
	for _, payment := range payments {
		if payment.UserID == caller.UserID {
			owned = append(owned, payment)
		}
	}

	return owned, nil
}

// ListMine returns one page of the caller's own payments. The filter's
// user_id is overwritten with the caller's id, so no filter combination can
// surface another user's records.
func (s *PaymentService) ListMine(ctx context.Context, caller entity.Caller, filter entity.PaymentFilter, page entity.PaginationParams) (*dto.PaymentListResponse, error) {
	filter.UserID = &caller.UserID

	payments, total, err := s.repo.List(ctx, filter, page)
	if err != nil {
		return nil, err
	}

	return newListResponse(payments, total, page), nil
}

// ListAll returns one page across all users. Restricted to admins; the
// optional user_id filter is honored as given.
func (s *PaymentService) ListAll(ctx context.Context, caller entity.Caller, filter entity.PaymentFilter, page entity.PaginationParams) (*dto.PaymentListResponse, error) {
	if !caller.IsAdmin {
		s.logger.Warn("admin listing denied",
			zap.Int64("caller_id", caller.UserID))
		return nil, domainErrors.ErrAdminRequired
	}

	payments, total, err := s.repo.List(ctx, filter, page)
	if err != nil {
		return nil, err
	}

	return newListResponse(payments, total, page), nil
}

// Update applies a partial update to a payment the caller owns. The patch
// has no user_id field, so ownership cannot change.
func (s *PaymentService) Update(ctx context.Context, caller entity.Caller, id int64, patch *dto.UpdatePaymentRequest) (*model.Payment, error) {
	if _, err := s.Get(ctx, caller, id); err != nil {
		return nil, err
	}

	return s.repo.Update(ctx, id, patch)
}

// UpdateStatus moves a payment the caller owns through the status machine.
func (s *PaymentService) UpdateStatus(ctx context.Context, caller entity.Caller, id int64, status model.Status) (*model.Payment, error) {
	if _, err := s.Get(ctx, caller, id); err != nil {
		return nil, err
	}

	return s.repo.UpdateStatus(ctx, id, status)
}

// Cancel is the logical delete: the record is kept and its status becomes
// canceled, which is terminal.
func (s *PaymentService) Cancel(ctx context.Context, caller entity.Caller, id int64) (*model.Payment, error) {
	payment, err := s.UpdateStatus(ctx, caller, id, model.StatusCanceled)
	if err != nil {
		return nil, err
	}

	s.logger.Info("payment canceled",
		zap.Int64("id", id),
		zap.Int64("caller_id", caller.UserID))

	return payment, nil
}

func newListResponse(payments []model.Payment, total int64, page entity.PaginationParams) *dto.PaymentListResponse {
	if payments == nil {
		payments = []model.Payment{}
	}

	return &dto.PaymentListResponse{
		Items:    payments,
		Total:    total,
		Page:     page.Page,
		PageSize: page.PageSize,
	}
}
