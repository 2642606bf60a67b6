package entity

import "github.com/vraxaserver/eygarpayment/internal/domain/model"

// PaymentFilter restricts list queries. Nil fields apply no restriction.
type PaymentFilter struct {
	UserID     *int64
	Status     *model.Status
	Provider   *model.Provider
	BookingID  *int64
	PropertyID *int64
}
