package dto

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/vraxaserver/eygarpayment/internal/domain/model"
)

// validate backs the field-level checks that run outside struct tags, such as
// email checks on optional update fields.
var validate = validator.New()

// maxAmount is the first value a decimal(10,2) column cannot hold.
var maxAmount = decimal.New(1, 8)

// CreatePaymentRequest is the body of POST /payments. It deliberately has no
// user_id field: ownership always comes from the authenticated caller.
type CreatePaymentRequest struct {
	CheckoutSessionID  *string          `json:"checkout_session_id" validate:"omitempty,max=255"`
	PaymentID          string           `json:"payment_id" validate:"required,max=255"`
	PaymentMethodID    *string          `json:"payment_method_id" validate:"omitempty,max=255"`
	PaymentMethodTypes *string          `json:"payment_method_types" validate:"omitempty,max=100"`
	PaymentStatus      model.Status     `json:"payment_status"`
	Currency           string           `json:"currency"`
	AmountTotal        *decimal.Decimal `json:"amount_total" validate:"required"`
	CustomerID         *string          `json:"customer_id" validate:"omitempty,max=255"`
	CustomerEmail      *string          `json:"customer_email" validate:"omitempty,email,max=255"`
	BookingID          *int64           `json:"booking_id"`
	PropertyID         *int64           `json:"property_id"`
	Provider           model.Provider   `json:"provider"`
	Description        *string          `json:"description"`
}

// Validate covers the semantic checks struct tags cannot express: enum
// membership, the currency length, and the decimal(10,2) amount range.
func (r *CreatePaymentRequest) Validate() error {
	if r.PaymentStatus != "" && !r.PaymentStatus.Valid() {
		return fmt.Errorf("payment_status must be one of pending, processing, succeeded, failed, canceled, refunded")
	}
	if r.Provider != "" && !r.Provider.Valid() {
		return fmt.Errorf("provider must be one of stripe, paypal, square, razorpay, other")
	}
	if r.Currency != "" && len(r.Currency) != 3 {
		return errors.New("currency must be a 3-letter code")
	}
	if r.AmountTotal != nil {
		if err := validateAmount(*r.AmountTotal); err != nil {
			return err
		}
	}
	return nil
}

// ToModel builds the payment row for the store, applying the schema defaults
// and stamping the authenticated caller as owner.
func (r *CreatePaymentRequest) ToModel(userID int64) *model.Payment {
	status := r.PaymentStatus
	if status == "" {
		status = model.StatusPending
	}

	currency := r.Currency
	if currency == "" {
		currency = model.DefaultCurrency
	}

	provider := r.Provider
	if provider == "" {
		provider = model.ProviderStripe
	}

	return &model.Payment{
		CheckoutSessionID:  r.CheckoutSessionID,
		PaymentID:          r.PaymentID,
		PaymentMethodID:    r.PaymentMethodID,
		PaymentMethodTypes: r.PaymentMethodTypes,
		PaymentStatus:      status,
		Currency:           currency,
		AmountTotal:        *r.AmountTotal,
		CustomerID:         r.CustomerID,
		CustomerEmail:      r.CustomerEmail,
		BookingID:          r.BookingID,
		PropertyID:         r.PropertyID,
		UserID:             userID,
		Provider:           provider,
		Description:        r.Description,
	}
}

// UpdatePaymentRequest is the body of PUT /payments/:id. Every field is
// wrapped so the handler can tell "clear this column" (explicit null) apart
// from "leave it alone" (absent). There is no user_id field: ownership is
// immutable and any user_id key in the body is dropped during binding.
type UpdatePaymentRequest struct {
	CheckoutSessionID  Optional[string]          `json:"checkout_session_id"`
	PaymentID          Optional[string]          `json:"payment_id"`
	PaymentMethodID    Optional[string]          `json:"payment_method_id"`
	PaymentMethodTypes Optional[string]          `json:"payment_method_types"`
	PaymentStatus      Optional[model.Status]    `json:"payment_status"`
	Currency           Optional[string]          `json:"currency"`
	AmountTotal        Optional[decimal.Decimal] `json:"amount_total"`
	CustomerID         Optional[string]          `json:"customer_id"`
	CustomerEmail      Optional[string]          `json:"customer_email"`
	BookingID          Optional[int64]           `json:"booking_id"`
	PropertyID         Optional[int64]           `json:"property_id"`
	Provider           Optional[model.Provider]  `json:"provider"`
	Description        Optional[string]          `json:"description"`
}

// Validate checks every provided field. Required columns reject explicit
// nulls; optional columns accept them as "clear".
func (r *UpdatePaymentRequest) Validate() error {
	if r.PaymentID.Set {
		if r.PaymentID.Value == nil || *r.PaymentID.Value == "" {
			return errors.New("payment_id cannot be empty")
		}
		if len(*r.PaymentID.Value) > 255 {
			return errors.New("payment_id must be at most 255 characters")
		}
	}
	if r.CheckoutSessionID.Set && r.CheckoutSessionID.Value != nil && len(*r.CheckoutSessionID.Value) > 255 {
		return errors.New("checkout_session_id must be at most 255 characters")
	}
	if r.PaymentMethodID.Set && r.PaymentMethodID.Value != nil && len(*r.PaymentMethodID.Value) > 255 {
		return errors.New("payment_method_id must be at most 255 characters")
	}
	if r.PaymentMethodTypes.Set && r.PaymentMethodTypes.Value != nil && len(*r.PaymentMethodTypes.Value) > 100 {
		return errors.New("payment_method_types must be at most 100 characters")
	}
	if r.PaymentStatus.Set {
		if r.PaymentStatus.Value == nil || !r.PaymentStatus.Value.Valid() {
			return fmt.Errorf("payment_status must be one of pending, processing, succeeded, failed, canceled, refunded")
		}
	}
	if r.Currency.Set {
		if r.Currency.Value == nil || len(*r.Currency.Value) != 3 {
			return errors.New("currency must be a 3-letter code")
		}
	}
	if r.AmountTotal.Set {
		if r.AmountTotal.Value == nil {
			return errors.New("amount_total cannot be null")
		}
		if err := validateAmount(*r.AmountTotal.Value); err != nil {
			return err
		}
	}
	if r.CustomerID.Set && r.CustomerID.Value != nil && len(*r.CustomerID.Value) > 255 {
		return errors.New("customer_id must be at most 255 characters")
	}
	if r.CustomerEmail.Set && r.CustomerEmail.Value != nil {
		if err := validate.Var(*r.CustomerEmail.Value, "email,max=255"); err != nil {
			return errors.New("customer_email must be a valid email address")
		}
	}
	if r.Provider.Set {
		if r.Provider.Value == nil || !r.Provider.Value.Valid() {
			return fmt.Errorf("provider must be one of stripe, paypal, square, razorpay, other")
		}
	}
	return nil
}

// Changes builds the column map the store applies. Only provided fields
// appear; nil values clear nullable columns.
func (r *UpdatePaymentRequest) Changes() map[string]interface{} {
	changes := make(map[string]interface{})

	if r.CheckoutSessionID.Set {
		changes["checkout_session_id"] = r.CheckoutSessionID.Value
	}
	if r.PaymentID.Set && r.PaymentID.Value != nil {
		changes["payment_id"] = *r.PaymentID.Value
	}
	if r.PaymentMethodID.Set {
		changes["payment_method_id"] = r.PaymentMethodID.Value
	}
	if r.PaymentMethodTypes.Set {
		changes["payment_method_types"] = r.PaymentMethodTypes.Value
	}
	if r.PaymentStatus.Set && r.PaymentStatus.Value != nil {
		changes["payment_status"] = string(*r.PaymentStatus.Value)
	}
	if r.Currency.Set && r.Currency.Value != nil {
		changes["currency"] = *r.Currency.Value
	}
	if r.AmountTotal.Set && r.AmountTotal.Value != nil {
		changes["amount_total"] = *r.AmountTotal.Value
	}
	if r.CustomerID.Set {
		changes["customer_id"] = r.CustomerID.Value
	}
	if r.CustomerEmail.Set {
		changes["customer_email"] = r.CustomerEmail.Value
	}
	if r.BookingID.Set {
		changes["booking_id"] = r.BookingID.Value
	}
	if r.PropertyID.Set {
		changes["property_id"] = r.PropertyID.Value
	}
	if r.Provider.Set && r.Provider.Value != nil {
		changes["provider"] = string(*r.Provider.Value)
	}
	if r.Description.Set {
		changes["description"] = r.Description.Value
	}

	return changes
}

// NewStatus returns the requested status when the patch carries one.
func (r *UpdatePaymentRequest) NewStatus() (model.Status, bool) {
	if r.PaymentStatus.Set && r.PaymentStatus.Value != nil {
		return *r.PaymentStatus.Value, true
	}
	return "", false
}

// UpdateStatusRequest is the body of PATCH /payments/:id/status.
type UpdateStatusRequest struct {
	PaymentStatus model.Status `json:"payment_status" validate:"required"`
}

// Validate checks enum membership of the requested status.
func (r *UpdateStatusRequest) Validate() error {
	if !r.PaymentStatus.Valid() {
		return fmt.Errorf("payment_status must be one of pending, processing, succeeded, failed, canceled, refunded")
	}
	return nil
}

// PaymentListResponse is the paginated list envelope.
type PaymentListResponse struct {
	Items    []model.Payment `json:"items"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}

func validateAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return errors.New("amount_total must be greater than or equal to 0")
	}
	if !amount.Equal(amount.Round(2)) {
		return errors.New("amount_total must have at most two decimal places")
	}
	if amount.GreaterThanOrEqual(maxAmount) {
		return errors.New("amount_total exceeds the supported range")
	}
	return nil
}
