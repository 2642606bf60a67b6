package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the lifecycle state of a payment record.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusSucceeded  Status = "succeeded"
	StatusFailed     Status = "failed"
	StatusCanceled   Status = "canceled"
	StatusRefunded   Status = "refunded"
)

// Valid reports whether s is a known payment status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusSucceeded, StatusFailed, StatusCanceled, StatusRefunded:
		return true
	}
	return false
}

// Terminal reports whether s permits no outgoing transitions.
func (s Status) Terminal() bool {
	return s == StatusCanceled || s == StatusRefunded
}

// CanTransitionTo reports whether a record in status s may move to next.
// Any non-terminal status may move to any valid status, including itself,
// to accommodate gateway retries and out-of-order webhook delivery.
func (s Status) CanTransitionTo(next Status) bool {
	return next.Valid() && !s.Terminal()
}

// Provider identifies the external payment gateway that reported a record.
type Provider string

const (
	ProviderStripe   Provider = "stripe"
	ProviderPaypal   Provider = "paypal"
	ProviderSquare   Provider = "square"
	ProviderRazorpay Provider = "razorpay"
	ProviderOther    Provider = "other"
)

// Valid reports whether p is a known payment provider.
func (p Provider) Valid() bool {
	switch p {
	case ProviderStripe, ProviderPaypal, ProviderSquare, ProviderRazorpay, ProviderOther:
		return true
	}
	return false
}

// DefaultCurrency is applied when a creation request omits the currency.
const DefaultCurrency = "USD"

// Payment represents a payment transaction record reported by an external
// gateway. The service is a system of record for this metadata; it never
// moves money itself.
type Payment struct {
	ID                 int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	CheckoutSessionID  *string         `gorm:"column:checkout_session_id;size:255;uniqueIndex" json:"checkout_session_id,omitempty"`
	PaymentID          string          `gorm:"column:payment_id;size:255;not null;uniqueIndex" json:"payment_id"`
	PaymentMethodID    *string         `gorm:"size:255" json:"payment_method_id,omitempty"`
	PaymentMethodTypes *string         `gorm:"size:100" json:"payment_method_types,omitempty"`
	PaymentStatus      Status          `gorm:"size:20;not null;default:'pending';index" json:"payment_status"`
	Currency           string          `gorm:"size:3;not null;default:'USD'" json:"currency"`
	AmountTotal        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount_total"`
	CustomerID         *string         `gorm:"size:255" json:"customer_id,omitempty"`
	CustomerEmail      *string         `gorm:"size:255" json:"customer_email,omitempty"`
	BookingID          *int64          `json:"booking_id,omitempty"`
	PropertyID         *int64          `gorm:"index" json:"property_id,omitempty"`
	UserID             int64           `gorm:"not null" json:"user_id"`
	Provider           Provider        `gorm:"size:20;not null;default:'stripe'" json:"provider"`
	Description        *string         `gorm:"type:text" json:"description,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Payment) TableName() string {
	return "payments"
}
