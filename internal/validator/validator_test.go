package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vraxaserver/eygarpayment/internal/validator"
)

type sampleRequest struct {
	PaymentID     string `json:"payment_id" validate:"required,max=10"`
	CustomerEmail string `json:"customer_email" validate:"omitempty,email"`
}

func TestValidator_Validate(t *testing.T) {
	v := validator.New()

	t.Run("valid struct passes", func(t *testing.T) {
		err := v.Validate(&sampleRequest{PaymentID: "pi_1"})
		assert.NoError(t, err)
	})

	t.Run("failures are keyed by json field name", func(t *testing.T) {
		err := v.Validate(&sampleRequest{CustomerEmail: "not-an-email"})

		var validationErr *validator.ValidationError
		assert.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "this field is required", validationErr.Errors["payment_id"])
		assert.Equal(t, "must be a valid email address", validationErr.Errors["customer_email"])
	})

	t.Run("max length message names the limit", func(t *testing.T) {
		err := v.Validate(&sampleRequest{PaymentID: "pi_12345678901"})

		var validationErr *validator.ValidationError
		assert.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "must be at most 10 characters long", validationErr.Errors["payment_id"])
	})
}
