package gateway_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v79"

	"github.com/vraxaserver/eygarpayment/internal/domain/model"
	"github.com/vraxaserver/eygarpayment/internal/gateway"
)

func TestFromCheckoutSession(t *testing.T) {
	t.Run("paid session maps to succeeded", func(t *testing.T) {
		session := &stripe.CheckoutSession{
			ID:            "cs_test_123",
			PaymentIntent: &stripe.PaymentIntent{ID: "pi_123"},
			PaymentStatus: stripe.CheckoutSessionPaymentStatusPaid,
			Currency:      stripe.CurrencyUSD,
			AmountTotal:   9999,
			Customer:      &stripe.Customer{ID: "cus_123"},
			CustomerDetails: &stripe.CheckoutSessionCustomerDetails{
				Email: "guest@example.com",
			},
			PaymentMethodTypes: []string{"card"},
			Metadata: map[string]string{
				"booking_id":  "55",
				"property_id": "9",
				"description": "Two nights at the lake house",
			},
		}

		req := gateway.FromCheckoutSession(session)

		require.NotNil(t, req.CheckoutSessionID)
		assert.Equal(t, "cs_test_123", *req.CheckoutSessionID)
		assert.Equal(t, "pi_123", req.PaymentID)
		assert.Equal(t, model.StatusSucceeded, req.PaymentStatus)
		assert.Equal(t, "USD", req.Currency)
		require.NotNil(t, req.AmountTotal)
		assert.Equal(t, "99.99", req.AmountTotal.StringFixed(2))
		require.NotNil(t, req.CustomerID)
		assert.Equal(t, "cus_123", *req.CustomerID)
		require.NotNil(t, req.CustomerEmail)
		assert.Equal(t, "guest@example.com", *req.CustomerEmail)
		require.NotNil(t, req.PaymentMethodTypes)
		assert.Equal(t, "card", *req.PaymentMethodTypes)
		require.NotNil(t, req.BookingID)
		assert.Equal(t, int64(55), *req.BookingID)
		require.NotNil(t, req.PropertyID)
		assert.Equal(t, int64(9), *req.PropertyID)
		require.NotNil(t, req.Description)
		assert.Equal(t, "Two nights at the lake house", *req.Description)
		assert.Equal(t, model.ProviderStripe, req.Provider)

		// The mapped request must satisfy the same validation as a direct one.
		assert.NoError(t, req.Validate())
	})

	t.Run("unpaid session maps to pending", func(t *testing.T) {
		session := &stripe.CheckoutSession{
			ID:            "cs_test_456",
			PaymentStatus: stripe.CheckoutSessionPaymentStatusUnpaid,
			Currency:      stripe.CurrencyEUR,
			AmountTotal:   1000,
		}

		req := gateway.FromCheckoutSession(session)

		assert.Equal(t, model.StatusPending, req.PaymentStatus)
		assert.Equal(t, "EUR", req.Currency)
		assert.Nil(t, req.CustomerID)
		assert.Nil(t, req.CustomerEmail)
		assert.Nil(t, req.BookingID)
	})

	t.Run("no payment required counts as succeeded", func(t *testing.T) {
		session := &stripe.CheckoutSession{
			ID:            "cs_test_789",
			PaymentStatus: stripe.CheckoutSessionPaymentStatusNoPaymentRequired,
			Currency:      stripe.CurrencyUSD,
		}

		req := gateway.FromCheckoutSession(session)

		assert.Equal(t, model.StatusSucceeded, req.PaymentStatus)
	})

	t.Run("malformed metadata ids are ignored", func(t *testing.T) {
		session := &stripe.CheckoutSession{
			ID:            "cs_test_999",
			PaymentStatus: stripe.CheckoutSessionPaymentStatusPaid,
			Currency:      stripe.CurrencyUSD,
			Metadata: map[string]string{
				"booking_id": "not-a-number",
			},
		}

		req := gateway.FromCheckoutSession(session)

		assert.Nil(t, req.BookingID)
	})
}

func TestFromPaymentIntent(t *testing.T) {
	t.Run("succeeded intent", func(t *testing.T) {
		intent := &stripe.PaymentIntent{
			ID:                 "pi_456",
			Status:             stripe.PaymentIntentStatusSucceeded,
			Currency:           stripe.CurrencyUSD,
			Amount:             150000,
			Customer:           &stripe.Customer{ID: "cus_456"},
			PaymentMethod:      &stripe.PaymentMethod{ID: "pm_456"},
			ReceiptEmail:       "buyer@example.com",
			PaymentMethodTypes: []string{"card", "link"},
		}

		req := gateway.FromPaymentIntent(intent)

		assert.Equal(t, "pi_456", req.PaymentID)
		assert.Equal(t, model.StatusSucceeded, req.PaymentStatus)
		require.NotNil(t, req.AmountTotal)
		assert.Equal(t, "1500.00", req.AmountTotal.StringFixed(2))
		require.NotNil(t, req.PaymentMethodID)
		assert.Equal(t, "pm_456", *req.PaymentMethodID)
		require.NotNil(t, req.CustomerEmail)
		assert.Equal(t, "buyer@example.com", *req.CustomerEmail)
		require.NotNil(t, req.PaymentMethodTypes)
		assert.Equal(t, "card,link", *req.PaymentMethodTypes)

		assert.NoError(t, req.Validate())
	})

	t.Run("lifecycle mapping", func(t *testing.T) {
		tests := []struct {
			stripeStatus stripe.PaymentIntentStatus
			want         model.Status
		}{
			{stripe.PaymentIntentStatusSucceeded, model.StatusSucceeded},
			{stripe.PaymentIntentStatusProcessing, model.StatusProcessing},
			{stripe.PaymentIntentStatusCanceled, model.StatusCanceled},
			{stripe.PaymentIntentStatusRequiresPaymentMethod, model.StatusPending},
			{stripe.PaymentIntentStatusRequiresConfirmation, model.StatusPending},
			{stripe.PaymentIntentStatusRequiresAction, model.StatusPending},
			{stripe.PaymentIntentStatusRequiresCapture, model.StatusPending},
		}

		for _, tt := range tests {
			t.Run(string(tt.stripeStatus), func(t *testing.T) {
				req := gateway.FromPaymentIntent(&stripe.PaymentIntent{
					ID:       "pi_status",
					Status:   tt.stripeStatus,
					Currency: stripe.CurrencyUSD,
				})
				assert.Equal(t, tt.want, req.PaymentStatus)
			})
		}
	})
}
