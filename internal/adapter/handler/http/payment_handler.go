package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/vraxaserver/eygarpayment/internal/config"
	"github.com/vraxaserver/eygarpayment/internal/domain/dto"
	"github.com/vraxaserver/eygarpayment/internal/domain/entity"
	"github.com/vraxaserver/eygarpayment/internal/domain/model"
	"github.com/vraxaserver/eygarpayment/internal/middleware/auth"
	"github.com/vraxaserver/eygarpayment/internal/usecase"
)

type PaymentHandler struct {
	payments   *usecase.PaymentService
	pagination config.PaginationConfig
	logger     *zap.Logger
}

func NewPaymentHandler(payments *usecase.PaymentService, pagination config.PaginationConfig, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		payments:   payments,
		pagination: pagination,
		logger:     logger,
	}
}

// CreatePayment handles POST /payments
func (h *PaymentHandler) CreatePayment(c echo.Context) error {
	caller, err := auth.GetCaller(c)
	if err != nil {
		return authenticationRequired(c)
	}

	var req dto.CreatePaymentRequest
	if err := c.Bind(&req); err != nil {
		return validationFailed(c, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err.Error())
	}
	if err := req.Validate(); err != nil {
		return validationFailed(c, err.Error())
	}

	payment, err := h.payments.Create(c.Request().Context(), caller, &req)
	if err != nil {
		return h.serviceError(c, err)
	}

	return c.JSON(http.StatusCreated, payment)
}

// ListMyPayments handles GET /payments
func (h *PaymentHandler) ListMyPayments(c echo.Context) error {
	caller, err := auth.GetCaller(c)
	if err != nil {
		return authenticationRequired(c)
	}

	filter, err := bindFilter(c, false)
	if err != nil {
		return validationFailed(c, err.Error())
	}

	page, err := h.bindPagination(c)
	if err != nil {
		return validationFailed(c, err.Error())
	}

	result, err := h.payments.ListMine(c.Request().Context(), caller, filter, page)
	if err != nil {
		return h.serviceError(c, err)
	}

	h.logger.Debug("listed payments",
		zap.Int64("user_id", caller.UserID),
		zap.Int("count", len(result.Items)),
		zap.Int64("total", result.Total))

	return c.JSON(http.StatusOK, result)
}

// GetPayment handles GET /payments/:id
func (h *PaymentHandler) GetPayment(c echo.Context) error {
	caller, err := auth.GetCaller(c)
	if err != nil {
		return authenticationRequired(c)
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return validationFailed(c, err.Error())
	}

	payment, err := h.payments.Get(c.Request().Context(), caller, id)
	if err != nil {
		return h.serviceError(c, err)
	}

	return c.JSON(http.StatusOK, payment)
}

// GetPaymentByGatewayID handles GET /payments/gateway/:payment_id
func (h *PaymentHandler) GetPaymentByGatewayID(c echo.Context) error {
	caller, err := auth.GetCaller(c)
	if err != nil {
		return authenticationRequired(c)
	}

	paymentID := c.Param("payment_id")

	payment, err := h.payments.GetByGatewayID(c.Request().Context(), caller, paymentID)
	if err != nil {
		return h.serviceError(c, err)
	}

	return c.JSON(http.StatusOK, payment)
}

// ListBookingPayments handles GET /payments/booking/:booking_id
func (h *PaymentHandler) ListBookingPayments(c echo.Context) error {
	caller, err := auth.GetCaller(c)
	if err != nil {
		return authenticationRequired(c)
	}

	bookingID, err := parseIDParam(c, "booking_id")
	if err != nil {
		return validationFailed(c, err.Error())
	}

	payments, err := h.payments.ListForBooking(c.Request().Context(), caller, bookingID)
	if err != nil {
		return h.serviceError(c, err)
	}

	return c.JSON(http.StatusOK, payments)
}

// UpdatePayment handles PUT /payments/:id
func (h *PaymentHandler) UpdatePayment(c echo.Context) error {
	caller, err := auth.GetCaller(c)
	if err != nil {
		return authenticationRequired(c)
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return validationFailed(c, err.Error())
	}

	var req dto.UpdatePaymentRequest
	if err := c.Bind(&req); err != nil {
		return validationFailed(c, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return validationFailed(c, err.Error())
	}

	payment, err := h.payments.Update(c.Request().Context(), caller, id, &req)
	if err != nil {
		return h.serviceError(c, err)
	}

	return c.JSON(http.StatusOK, payment)
}

// UpdatePaymentStatus handles PATCH /payments/:id/status
func (h *PaymentHandler) UpdatePaymentStatus(c echo.Context) error {
	caller, err := auth.GetCaller(c)
	if err != nil {
		return authenticationRequired(c)
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return validationFailed(c, err.Error())
	}

	var req dto.UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return validationFailed(c, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err.Error())
	}
	if err := req.Validate(); err != nil {
		return validationFailed(c, err.Error())
	}

	payment, err := h.payments.UpdateStatus(c.Request().Context(), caller, id, req.PaymentStatus)
	if err != nil {
		return h.serviceError(c, err)
	}

	return c.JSON(http.StatusOK, payment)
}

// CancelPayment handles DELETE /payments/:id. The record is retained with
// status canceled rather than removed.
func (h *PaymentHandler) CancelPayment(c echo.Context) error {
	caller, err := auth.GetCaller(c)
	if err != nil {
		return authenticationRequired(c)
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return validationFailed(c, err.Error())
	}

	payment, err := h.payments.Cancel(c.Request().Context(), caller, id)
	if err != nil {
		return h.serviceError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Payment canceled successfully",
		"payment": payment,
	})
}

// ListAllPayments handles GET /payments/admin/all
func (h *PaymentHandler) ListAllPayments(c echo.Context) error {
	caller, err := auth.GetCaller(c)
	if err != nil {
		return authenticationRequired(c)
	}

	filter, err := bindFilter(c, true)
	if err != nil {
		return validationFailed(c, err.Error())
	}

	page, err := h.bindPagination(c)
	if err != nil {
		return validationFailed(c, err.Error())
	}

	result, err := h.payments.ListAll(c.Request().Context(), caller, filter, page)
	if err != nil {
		return h.serviceError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

func parseIDParam(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%s must be a positive integer", name)
	}
	return id, nil
}

// bindFilter reads the list filter from the query string. The user_id
// parameter is only honored on the admin route.
func bindFilter(c echo.Context, includeUser bool) (entity.PaymentFilter, error) {
	var filter entity.PaymentFilter

	if v := c.QueryParam("status"); v != "" {
		status := model.Status(v)
		if !status.Valid() {
			return filter, errors.New("status must be one of pending, processing, succeeded, failed, canceled, refunded")
		}
		filter.Status = &status
	}

	if v := c.QueryParam("provider"); v != "" {
		provider := model.Provider(v)
		if !provider.Valid() {
			return filter, errors.New("provider must be one of stripe, paypal, square, razorpay, other")
		}
		filter.Provider = &provider
	}

	if v := c.QueryParam("booking_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return filter, errors.New("booking_id must be an integer")
		}
		filter.BookingID = &id
	}

	if v := c.QueryParam("property_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return filter, errors.New("property_id must be an integer")
		}
		filter.PropertyID = &id
	}

	if includeUser {
		if v := c.QueryParam("user_id"); v != "" {
			id, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return filter, errors.New("user_id must be an integer")
			}
			filter.UserID = &id
		}
	}

	return filter, nil
}

// bindPagination reads page and page_size, clamping out-of-range values to
// the configured bounds. Non-numeric values are rejected.
func (h *PaymentHandler) bindPagination(c echo.Context) (entity.PaginationParams, error) {
	var page entity.PaginationParams

	if v := c.QueryParam("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return page, errors.New("page must be an integer")
		}
		page.Page = n
	}

	if v := c.QueryParam("page_size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return page, errors.New("page_size must be an integer")
		}
		page.PageSize = n
	}

	page.Validate(h.pagination.DefaultPageSize, h.pagination.MaxPageSize)
	return page, nil
}
