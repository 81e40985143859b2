package handlers

import (
	"time"

	"github.com/google/uuid"
	"github.com/vinay2003/Airion-backend-sub001/domain"
)

const dateLayout = "2006-01-02"

// CreateBookingRequest books a vendor service
type CreateBookingRequest struct {
	VendorID      string  `json:"vendor_id" binding:"required,uuid"`
	ServiceID     string  `json:"service_id" binding:"required,uuid"`
	PackageID     string  `json:"package_id" binding:"omitempty,uuid"`
	Amount        float64 `json:"amount" binding:"omitempty,gte=0"`
	BookingDate   string  `json:"booking_date" binding:"omitempty,datetime=2006-01-02"`
	EventDate     string  `json:"event_date" binding:"required,datetime=2006-01-02"`
	Address       string  `json:"address" binding:"max=255"`
	PaymentMethod string  `json:"payment_method" binding:"omitempty,payment_method"`
	Notes         string  `json:"notes" binding:"max=1000"`
}

func (r CreateBookingRequest) toDraft() domain.BookingDraft {
	draft := domain.BookingDraft{
		VendorID:      uuid.MustParse(r.VendorID),
		ServiceID:     uuid.MustParse(r.ServiceID),
		PackageID:     optionalUUID(r.PackageID),
		Amount:        r.Amount,
		Address:       r.Address,
		PaymentMethod: r.PaymentMethod,
		Notes:         r.Notes,
	}
	draft.EventDate, _ = time.Parse(dateLayout, r.EventDate)
	if r.BookingDate != "" {
		draft.BookingDate, _ = time.Parse(dateLayout, r.BookingDate)
	}
	return draft
}

// UpdateBookingStatusRequest moves a booking through its lifecycle
type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed rejected cancelled completed"`
}

// ListBookingsQuery filters booking listings
type ListBookingsQuery struct {
	PageQuery
	Status string `form:"status" binding:"omitempty,oneof=pending confirmed rejected cancelled completed"`
}

func (q ListBookingsQuery) filter() domain.BookingFilter {
	return domain.BookingFilter{Status: q.Status, Limit: q.Limit, Offset: q.Offset}
}

type bookingView struct {
	ID               uuid.UUID  `json:"id"`
	CustomerID       uuid.UUID  `json:"customer_id"`
	VendorID         uuid.UUID  `json:"vendor_id"`
	ServiceID        uuid.UUID  `json:"service_id"`
	PackageID        *uuid.UUID `json:"package_id,omitempty"`
	Amount           float64    `json:"amount"`
	BookingDate      string     `json:"booking_date"`
	EventDate        string     `json:"event_date"`
	Address          string     `json:"address,omitempty"`
	PaymentMethod    string     `json:"payment_method"`
	PaymentStatus    string     `json:"payment_status"`
	PaymentReference string     `json:"payment_reference,omitempty"`
	Status           string     `json:"status"`
	Notes            string     `json:"notes,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func newBookingView(b *domain.Booking) bookingView {
	return bookingView{
		ID:               b.ID,
		CustomerID:       b.CustomerID,
		VendorID:         b.VendorID,
		ServiceID:        b.ServiceID,
		PackageID:        b.PackageID,
		Amount:           b.Amount,
		BookingDate:      b.BookingDate.Format(dateLayout),
		EventDate:        b.EventDate.Format(dateLayout),
		Address:          b.Address,
		PaymentMethod:    b.PaymentMethod,
		PaymentStatus:    b.PaymentStatus,
		PaymentReference: b.PaymentReference,
		Status:           b.Status,
		Notes:            b.Notes,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}
}

func newBookingViews(bookings []domain.Booking) []bookingView {
	views := make([]bookingView, 0, len(bookings))
	for i := range bookings {
		views = append(views, newBookingView(&bookings[i]))
	}
	return views
}

type checkoutView struct {
	Booking      bookingView `json:"booking"`
	ClientSecret string      `json:"client_secret,omitempty"`
}
