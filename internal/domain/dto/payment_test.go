package dto

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/vraxaserver/eygarpayment/internal/domain/model"
)

func amountPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestCreatePaymentRequestValidate(t *testing.T) {
	base := func() CreatePaymentRequest {
		return CreatePaymentRequest{
			PaymentID:   "pi_123",
			AmountTotal: amountPtr("99.99"),
		}
	}

	t.Run("minimal request passes", func(t *testing.T) {
		req := base()
		assert.NoError(t, req.Validate())
	})

	t.Run("zero amount is allowed", func(t *testing.T) {
		req := base()
		req.AmountTotal = amountPtr("0")
		assert.NoError(t, req.Validate())
	})

	tests := []struct {
		name   string
		mutate func(*CreatePaymentRequest)
	}{
		{"unknown status", func(r *CreatePaymentRequest) { r.PaymentStatus = "paid" }},
		{"unknown provider", func(r *CreatePaymentRequest) { r.Provider = "visa" }},
		{"currency too short", func(r *CreatePaymentRequest) { r.Currency = "US" }},
		{"currency too long", func(r *CreatePaymentRequest) { r.Currency = "USDT" }},
		{"negative amount", func(r *CreatePaymentRequest) { r.AmountTotal = amountPtr("-0.01") }},
		{"too many decimal places", func(r *CreatePaymentRequest) { r.AmountTotal = amountPtr("1.999") }},
		{"amount out of range", func(r *CreatePaymentRequest) { r.AmountTotal = amountPtr("100000000.00") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := base()
			tt.mutate(&req)
			assert.Error(t, req.Validate())
		})
	}
}

func TestCreatePaymentRequestToModel(t *testing.T) {
	t.Run("defaults applied", func(t *testing.T) {
		req := CreatePaymentRequest{
			PaymentID:   "pi_123",
			AmountTotal: amountPtr("10.00"),
		}

		payment := req.ToModel(42)

		assert.Equal(t, "pi_123", payment.PaymentID)
		assert.Equal(t, model.StatusPending, payment.PaymentStatus)
		assert.Equal(t, "USD", payment.Currency)
		assert.Equal(t, model.ProviderStripe, payment.Provider)
		assert.Equal(t, int64(42), payment.UserID)
		assert.True(t, payment.AmountTotal.Equal(decimal.RequireFromString("10.00")))
	})

	t.Run("explicit values preserved and owner forced", func(t *testing.T) {
		session := "cs_987"
		req := CreatePaymentRequest{
			CheckoutSessionID: &session,
			PaymentID:         "pi_456",
			PaymentStatus:     model.StatusSucceeded,
			Currency:          "EUR",
			AmountTotal:       amountPtr("5.50"),
			Provider:          model.ProviderRazorpay,
		}

		payment := req.ToModel(7)

		assert.Equal(t, model.StatusSucceeded, payment.PaymentStatus)
		assert.Equal(t, "EUR", payment.Currency)
		assert.Equal(t, model.ProviderRazorpay, payment.Provider)
		assert.Equal(t, int64(7), payment.UserID)
		if assert.NotNil(t, payment.CheckoutSessionID) {
			assert.Equal(t, "cs_987", *payment.CheckoutSessionID)
		}
	})
}

func TestUpdatePaymentRequestValidate(t *testing.T) {
	t.Run("empty patch is valid", func(t *testing.T) {
		var req UpdatePaymentRequest
		assert.NoError(t, req.Validate())
	})

	t.Run("clearing optional fields is valid", func(t *testing.T) {
		var req UpdatePaymentRequest
		err := json.Unmarshal([]byte(`{"checkout_session_id": null, "description": null, "booking_id": null}`), &req)
		assert.NoError(t, err)
		assert.NoError(t, req.Validate())
	})

	tests := []struct {
		name string
		body string
	}{
		{"null payment_id", `{"payment_id": null}`},
		{"empty payment_id", `{"payment_id": ""}`},
		{"null status", `{"payment_status": null}`},
		{"unknown status", `{"payment_status": "paid"}`},
		{"null currency", `{"currency": null}`},
		{"bad currency length", `{"currency": "EURO"}`},
		{"null amount", `{"amount_total": null}`},
		{"negative amount", `{"amount_total": -1}`},
		{"null provider", `{"provider": null}`},
		{"unknown provider", `{"provider": "visa"}`},
		{"bad email", `{"customer_email": "not-an-email"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req UpdatePaymentRequest
			err := json.Unmarshal([]byte(tt.body), &req)
			assert.NoError(t, err)
			assert.Error(t, req.Validate())
		})
	}
}

func TestUpdatePaymentRequestChanges(t *testing.T) {
	t.Run("empty patch produces no changes", func(t *testing.T) {
		var req UpdatePaymentRequest
		assert.Empty(t, req.Changes())
	})

	t.Run("only provided fields appear", func(t *testing.T) {
		var req UpdatePaymentRequest
		body := `{"payment_status": "succeeded", "amount_total": "25.00", "description": null}`
		assert.NoError(t, json.Unmarshal([]byte(body), &req))

		changes := req.Changes()

		assert.Len(t, changes, 3)
		assert.Equal(t, "succeeded", changes["payment_status"])
		assert.Nil(t, changes["description"])

		amount, ok := changes["amount_total"].(decimal.Decimal)
		assert.True(t, ok)
		assert.True(t, amount.Equal(decimal.RequireFromString("25.00")))

		_, hasPaymentID := changes["payment_id"]
		assert.False(t, hasPaymentID)
	})

	t.Run("status extraction", func(t *testing.T) {
		var req UpdatePaymentRequest
		assert.NoError(t, json.Unmarshal([]byte(`{"payment_status": "failed"}`), &req))

		status, ok := req.NewStatus()
		assert.True(t, ok)
		assert.Equal(t, model.StatusFailed, status)

		var empty UpdatePaymentRequest
		_, ok = empty.NewStatus()
		assert.False(t, ok)
	})
}

func TestUpdateStatusRequestValidate(t *testing.T) {
	req := UpdateStatusRequest{PaymentStatus: model.StatusSucceeded}
	assert.NoError(t, req.Validate())

	req = UpdateStatusRequest{PaymentStatus: "paid"}
	assert.Error(t, req.Validate())

	req = UpdateStatusRequest{}
	assert.Error(t, req.Validate())
}
