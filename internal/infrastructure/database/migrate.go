package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/vraxaserver/eygarpayment/internal/domain/model"
)

// Migrate runs database migrations
func Migrate(db *gorm.DB, logger *zap.Logger) error {
	logger.Info("Running database migrations...")

	if err := db.AutoMigrate(&model.Payment{}); err != nil {
		logger.Error("Failed to run migrations", zap.Error(err))
		return err
	}

	// Create custom indexes that GORM tags cannot express
	logger.Info("Creating custom indexes...")
	if err := createCustomIndexes(db); err != nil {
		logger.Error("Failed to create custom indexes", zap.Error(err))
		return err
	}

	logger.Info("Database migrations completed successfully")
	return nil
}

// createCustomIndexes covers the hot list queries: per-user listings ordered
// by creation time, and booking lookups that skip rows without a booking.
func createCustomIndexes(db *gorm.DB) error {
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_payments_user_created ON payments (user_id, created_at DESC)`).Error; err != nil {
		return err
	}

	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_payments_booking_present ON payments (booking_id) WHERE booking_id IS NOT NULL`).Error; err != nil {
		return err
	}

	return nil
}
