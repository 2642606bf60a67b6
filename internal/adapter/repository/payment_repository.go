package repository

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/vraxaserver/eygarpayment/internal/domain/dto"
	"github.com/vraxaserver/eygarpayment/internal/domain/entity"
	domainErrors "github.com/vraxaserver/eygarpayment/internal/domain/errors"
	"github.com/vraxaserver/eygarpayment/internal/domain/model"
	"github.com/vraxaserver/eygarpayment/internal/domain/repository"
)

// paymentRepository implements the PaymentRepository interface
type paymentRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB, logger *zap.Logger) repository.PaymentRepository {
	return &paymentRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new payment record. Duplicate payment_id or
// checkout_session_id values are rejected by the unique constraints, never by
// a check-then-insert.
func (r *paymentRepository) Create(ctx context.Context, payment *model.Payment) error {
	err := r.db.WithContext(ctx).Create(payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainErrors.ErrDuplicatePayment
		}
		r.logger.Error("failed to create payment",
			zap.String("payment_id", payment.PaymentID),
			zap.Error(err))
		return fmt.Errorf("failed to create payment: %w", err)
	}

	return nil
}

// GetByID retrieves a payment record by its primary key
func (r *paymentRepository) GetByID(ctx context.Context, id int64) (*model.Payment, error) {
	var payment model.Payment

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&payment).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrors.ErrPaymentNotFound
		}
		r.logger.Error("failed to get payment by id",
			zap.Int64("id", id),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}

	return &payment, nil
}

// GetByPaymentID retrieves a payment record by the gateway-assigned key
func (r *paymentRepository) GetByPaymentID(ctx context.Context, paymentID string) (*model.Payment, error) {
	var payment model.Payment

	err := r.db.WithContext(ctx).
		Where("payment_id = ?", paymentID).
		First(&payment).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrors.ErrPaymentNotFound
		}
		r.logger.Error("failed to get payment by gateway id",
			zap.String("payment_id", paymentID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}

	return &payment, nil
}

// ListByBooking retrieves every payment record referencing a booking
func (r *paymentRepository) ListByBooking(ctx context.Context, bookingID int64) ([]model.Payment, error) {
	var payments []model.Payment

	err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("created_at DESC").
		Find(&payments).Error

	if err != nil {
		r.logger.Error("failed to list payments by booking",
			zap.Int64("booking_id", bookingID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	return payments, nil
}

// List retrieves one page of filtered payment records ordered by creation
// time descending, plus the total size of the filtered set.
func (r *paymentRepository) List(ctx context.Context, filter entity.PaymentFilter, page entity.PaginationParams) ([]model.Payment, int64, error) {
	var total int64
	if err := r.filtered(ctx, filter).Count(&total).Error; err != nil {
		r.logger.Error("failed to count payments", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to count payments: %w", err)
	}

	var payments []model.Payment
	err := r.filtered(ctx, filter).
		Order("created_at DESC").
		Limit(page.PageSize).
		Offset(page.Offset()).
		Find(&payments).Error

	if err != nil {
		r.logger.Error("failed to list payments", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to list payments: %w", err)
	}

	return payments, total, nil
}

// Update applies the patch inside one transaction: load, enforce the
// terminal-state rule when the patch carries a status, write the provided
// columns, reload. Uniqueness of changed keys is re-checked by the database
// constraints. An empty patch returns the record unchanged.
func (r *paymentRepository) Update(ctx context.Context, id int64, patch *dto.UpdatePaymentRequest) (*model.Payment, error) {
	var updated model.Payment

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.Payment
		if err := tx.Where("id = ?", id).First(&existing).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainErrors.ErrPaymentNotFound
			}
			r.logger.Error("failed to load payment for update",
				zap.Int64("id", id),
				zap.Error(err))
			return fmt.Errorf("failed to load payment: %w", err)
		}

		if status, ok := patch.NewStatus(); ok {
			if !existing.PaymentStatus.CanTransitionTo(status) {
				return fmt.Errorf("cannot transition from %s to %s: %w",
					existing.PaymentStatus, status, domainErrors.ErrInvalidTransition)
			}
		}

		changes := patch.Changes()
		if len(changes) == 0 {
			updated = existing
			return nil
		}

		if err := tx.Model(&existing).Updates(changes).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domainErrors.ErrDuplicatePayment
			}
			r.logger.Error("failed to update payment",
				zap.Int64("id", id),
				zap.Error(err))
			return fmt.Errorf("failed to update payment: %w", err)
		}

		if err := tx.Where("id = ?", id).First(&updated).Error; err != nil {
			r.logger.Error("failed to reload payment after update",
				zap.Int64("id", id),
				zap.Error(err))
			return fmt.Errorf("failed to reload payment: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// UpdateStatus moves a payment to a new status inside one transaction.
// Transitions out of canceled or refunded are rejected and leave the record
// unchanged; every other transition, including to the current status,
// succeeds and bumps updated_at.
func (r *paymentRepository) UpdateStatus(ctx context.Context, id int64, status model.Status) (*model.Payment, error) {
	var updated model.Payment

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.Payment
		if err := tx.Where("id = ?", id).First(&existing).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainErrors.ErrPaymentNotFound
			}
			r.logger.Error("failed to load payment for status update",
				zap.Int64("id", id),
				zap.Error(err))
			return fmt.Errorf("failed to load payment: %w", err)
		}

		if !existing.PaymentStatus.CanTransitionTo(status) {
			return fmt.Errorf("cannot transition from %s to %s: %w",
				existing.PaymentStatus, status, domainErrors.ErrInvalidTransition)
		}

		err := tx.Model(&existing).
			Updates(map[string]interface{}{"payment_status": string(status)}).Error
		if err != nil {
			r.logger.Error("failed to update payment status",
				zap.Int64("id", id),
				zap.String("status", string(status)),
				zap.Error(err))
			return fmt.Errorf("failed to update payment status: %w", err)
		}

		if err := tx.Where("id = ?", id).First(&updated).Error; err != nil {
			r.logger.Error("failed to reload payment after status update",
				zap.Int64("id", id),
				zap.Error(err))
			return fmt.Errorf("failed to reload payment: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// filtered builds the WHERE chain for list queries. Each call starts a fresh
// statement so count and page queries stay independent.
func (r *paymentRepository) filtered(ctx context.Context, filter entity.PaymentFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&model.Payment{})

	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Status != nil {
		query = query.Where("payment_status = ?", string(*filter.Status))
	}
	if filter.Provider != nil {
		query = query.Where("provider = ?", string(*filter.Provider))
	}
	if filter.BookingID != nil {
		query = query.Where("booking_id = ?", *filter.BookingID)
	}
	if filter.PropertyID != nil {
		query = query.Where("property_id = ?", *filter.PropertyID)
	}

	return query
}
