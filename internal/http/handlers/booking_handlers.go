package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vinay2003/Airion-backend-sub001/domain"
	"github.com/vinay2003/Airion-backend-sub001/internal/http/middleware"
)

const maxWebhookBytes = 64 << 10

// BookingHandlers handles booking HTTP requests and payment callbacks
type BookingHandlers struct {
	bookingSvc domain.BookingService
}

// NewBookingHandlers creates new booking handlers
func NewBookingHandlers(bookingSvc domain.BookingService) *BookingHandlers {
	return &BookingHandlers{bookingSvc: bookingSvc}
}

// Create books a service for the calling customer
func (h *BookingHandlers) Create(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.BindError(c, err)
		return
	}

	checkout, err := h.bookingSvc.Create(c.Request.Context(), a, req.toDraft())
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	respond(c, http.StatusCreated, checkoutView{
		Booking:      newBookingView(checkout.Booking),
		ClientSecret: checkout.ClientSecret,
	})
}

// List lists the bookings visible to the caller's role
func (h *BookingHandlers) List(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	var q ListBookingsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		middleware.BindError(c, err)
		return
	}

	bookings, total, err := h.bookingSvc.List(c.Request.Context(), a, q.filter())
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	respondPage(c, newBookingViews(bookings), total, q.PageQuery)
}

// ListForUser lists a customer's bookings; access is decided by the
// ownership rule on the route
func (h *BookingHandlers) ListForUser(c *gin.Context) {
	userID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var q ListBookingsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		middleware.BindError(c, err)
		return
	}

	bookings, total, err := h.bookingSvc.ListForUser(c.Request.Context(), userID, q.filter())
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	respondPage(c, newBookingViews(bookings), total, q.PageQuery)
}

// Get returns one booking to a party of it
func (h *BookingHandlers) Get(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	booking, err := h.bookingSvc.Get(c.Request.Context(), a, id)
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	respond(c, http.StatusOK, newBookingView(booking))
}

// UpdateStatus applies a status transition
func (h *BookingHandlers) UpdateStatus(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.BindError(c, err)
		return
	}

	booking, err := h.bookingSvc.Transition(c.Request.Context(), a, id, req.Status)
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	respond(c, http.StatusOK, newBookingView(booking))
}

// StripeWebhook records payment outcomes sent by Stripe
func (h *BookingHandlers) StripeWebhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBytes))
	if err != nil {
		middleware.Fail(c, domain.BadRequest("unreadable webhook body").WithCause(err))
		return
	}

	if err := h.bookingSvc.HandlePaymentEvent(c.Request.Context(), payload, c.GetHeader("Stripe-Signature")); err != nil {
		middleware.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
