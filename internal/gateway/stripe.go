package gateway

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v79"

	"github.com/vraxaserver/eygarpayment/internal/domain/dto"
	"github.com/vraxaserver/eygarpayment/internal/domain/model"
)

// Stripe reports money in minor units; the record store keeps major units
// with two decimal places.
func amountFromCents(cents int64) *decimal.Decimal {
	amount := decimal.New(cents, -2)
	return &amount
}

// FromCheckoutSession converts a Stripe Checkout Session into a creation
// request for the record store. Booking and property references travel in
// the session metadata.
func FromCheckoutSession(session *stripe.CheckoutSession) *dto.CreatePaymentRequest {
	req := &dto.CreatePaymentRequest{
		CheckoutSessionID: stringPtr(session.ID),
		PaymentStatus:     checkoutStatus(session.PaymentStatus),
		Currency:          strings.ToUpper(string(session.Currency)),
		AmountTotal:       amountFromCents(session.AmountTotal),
		Provider:          model.ProviderStripe,
	}

	if session.PaymentIntent != nil {
		req.PaymentID = session.PaymentIntent.ID
	}
	if session.Customer != nil {
		req.CustomerID = stringPtr(session.Customer.ID)
	}
	if session.CustomerDetails != nil && session.CustomerDetails.Email != "" {
		req.CustomerEmail = stringPtr(session.CustomerDetails.Email)
	} else {
		req.CustomerEmail = stringPtr(session.CustomerEmail)
	}
	if len(session.PaymentMethodTypes) > 0 {
		req.PaymentMethodTypes = stringPtr(strings.Join(session.PaymentMethodTypes, ","))
	}

	applyMetadata(req, session.Metadata)

	return req
}

// FromPaymentIntent converts a Stripe PaymentIntent into a creation request
// for the record store.
func FromPaymentIntent(intent *stripe.PaymentIntent) *dto.CreatePaymentRequest {
	req := &dto.CreatePaymentRequest{
		PaymentID:     intent.ID,
		PaymentStatus: intentStatus(intent.Status),
		Currency:      strings.ToUpper(string(intent.Currency)),
		AmountTotal:   amountFromCents(intent.Amount),
		Provider:      model.ProviderStripe,
	}

	if intent.Customer != nil {
		req.CustomerID = stringPtr(intent.Customer.ID)
	}
	if intent.PaymentMethod != nil {
		req.PaymentMethodID = stringPtr(intent.PaymentMethod.ID)
	}
	if intent.ReceiptEmail != "" {
		req.CustomerEmail = stringPtr(intent.ReceiptEmail)
	}
	if len(intent.PaymentMethodTypes) > 0 {
		req.PaymentMethodTypes = stringPtr(strings.Join(intent.PaymentMethodTypes, ","))
	}

	applyMetadata(req, intent.Metadata)

	return req
}

// checkoutStatus maps Stripe's checkout payment status onto the record
// lifecycle. Sessions that require no payment count as succeeded.
func checkoutStatus(status stripe.CheckoutSessionPaymentStatus) model.Status {
	switch status {
	case stripe.CheckoutSessionPaymentStatusPaid, stripe.CheckoutSessionPaymentStatusNoPaymentRequired:
		return model.StatusSucceeded
	default:
		return model.StatusPending
	}
}

// intentStatus maps a PaymentIntent status onto the record lifecycle. The
// various requires_* states all mean the payment has not completed yet.
func intentStatus(status stripe.PaymentIntentStatus) model.Status {
	switch status {
	case stripe.PaymentIntentStatusSucceeded:
		return model.StatusSucceeded
	case stripe.PaymentIntentStatusProcessing:
		return model.StatusProcessing
	case stripe.PaymentIntentStatusCanceled:
		return model.StatusCanceled
	default:
		return model.StatusPending
	}
}

func applyMetadata(req *dto.CreatePaymentRequest, metadata map[string]string) {
	if v, ok := metadata["booking_id"]; ok {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			req.BookingID = &id
		}
	}
	if v, ok := metadata["property_id"]; ok {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			req.PropertyID = &id
		}
	}
	if v, ok := metadata["description"]; ok && v != "" {
		req.Description = &v
	}
}

func stringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
