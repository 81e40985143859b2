package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/vinay2003/Airion-backend-sub001/domain"
)

// bookingTransitions lists the legal moves out of each status; statuses
// missing from the map are terminal.
var bookingTransitions = map[string][]string{
	domain.BookingPending:   {domain.BookingConfirmed, domain.BookingRejected, domain.BookingCancelled},
	domain.BookingConfirmed: {domain.BookingCompleted, domain.BookingCancelled},
}

// CanTransition reports whether a booking may move from one status to another.
func CanTransition(from, to string) bool {
	return slices.Contains(bookingTransitions[from], to)
}

// BookingServiceImpl implements domain.BookingService
type BookingServiceImpl struct {
	bookingRepo domain.BookingRepository
	vendorRepo  domain.VendorRepository
	serviceRepo domain.ServiceRepository
	payments    domain.PaymentGateway
	audit       domain.AuditLogger
	clock       clockwork.Clock
}

// NewBookingService creates a new booking service. payments may be nil,
// in which case card bookings fail with domain.ErrPaymentsUnavailable.
func NewBookingService(
	bookingRepo domain.BookingRepository,
	vendorRepo domain.VendorRepository,
	serviceRepo domain.ServiceRepository,
	payments domain.PaymentGateway,
	audit domain.AuditLogger,
	clock clockwork.Clock,
) domain.BookingService {
	return &BookingServiceImpl{
		bookingRepo: bookingRepo,
		vendorRepo:  vendorRepo,
		serviceRepo: serviceRepo,
		payments:    payments,
		audit:       audit,
		clock:       clock,
	}
}

// Create implements domain.BookingService
func (s *BookingServiceImpl) Create(ctx context.Context, actor domain.Actor, draft domain.BookingDraft) (*domain.BookingCheckout, error) {
	if actor.Role != domain.RoleCustomer {
		return nil, domain.ErrInsufficientRole
	}

	now := s.clock.Now()
	if draft.BookingDate.IsZero() {
		draft.BookingDate = now
	}
	if draft.EventDate.Before(truncateDay(draft.BookingDate)) {
		return nil, domain.ErrInvalidEventDate
	}
	if draft.PaymentMethod == "" {
		draft.PaymentMethod = domain.PaymentCash
	}
	if !slices.Contains(domain.PaymentMethods, draft.PaymentMethod) {
		return nil, domain.BadRequest("unsupported payment method " + draft.PaymentMethod)
	}

	vendor, err := s.vendorRepo.FindByID(ctx, draft.VendorID)
	if err != nil {
		return nil, err
	}
	if !vendor.Bookable() {
		return nil, domain.ErrVendorNotBookable
	}

	service, err := s.serviceRepo.FindByID(ctx, draft.ServiceID)
	if err != nil {
		return nil, err
	}
	if service.VendorID != vendor.ID {
		return nil, domain.ErrServiceVendor
	}
	if !service.IsActive {
		return nil, domain.ErrServiceInactive
	}

	amount := draft.Amount
	if draft.PackageID != nil {
		pkg, err := s.serviceRepo.FindPackageByID(ctx, *draft.PackageID)
		if err != nil {
			return nil, err
		}
		if pkg.ServiceID != service.ID {
			return nil, domain.ErrPackageService
		}
		if amount == 0 {
			amount = pkg.Price
		}
	}
	if amount == 0 {
		amount = service.Price
	}

	booking := &domain.Booking{
		ID:            uuid.New(),
		CustomerID:    actor.UserID,
		VendorID:      vendor.ID,
		ServiceID:     service.ID,
		PackageID:     draft.PackageID,
		Amount:        amount,
		BookingDate:   draft.BookingDate,
		EventDate:     draft.EventDate,
		Address:       draft.Address,
		PaymentMethod: draft.PaymentMethod,
		PaymentStatus: domain.PaymentUnpaid,
		Status:        domain.BookingPending,
		Notes:         draft.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	checkout := &domain.BookingCheckout{Booking: booking}
	if booking.PaymentMethod == domain.PaymentCard {
		if s.payments == nil {
			return nil, domain.ErrPaymentsUnavailable
		}
		intent, err := s.payments.CreateIntent(ctx, booking.ID, booking.Amount)
		if err != nil {
			return nil, fmt.Errorf("failed to create payment: %w", err)
		}
		booking.PaymentReference = intent.ID
		booking.PaymentStatus = domain.PaymentPending
		checkout.ClientSecret = intent.ClientSecret
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}
	return checkout, nil
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Get implements domain.BookingService. Bookings the actor may not see are
// reported as missing.
func (s *BookingServiceImpl) Get(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Booking, error) {
	booking, err := s.bookingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	party, err := s.partyOf(ctx, actor, booking)
	if err != nil {
		return nil, err
	}
	if party == "" {
		return nil, domain.ErrBookingNotFound
	}
	return booking, nil
}

// partyOf returns the role under which actor takes part in booking, or ""
func (s *BookingServiceImpl) partyOf(ctx context.Context, actor domain.Actor, booking *domain.Booking) (string, error) {
	switch actor.Role {
	case domain.RoleAdmin:
		return domain.RoleAdmin, nil
	case domain.RoleCustomer:
		if booking.CustomerID == actor.UserID {
			return domain.RoleCustomer, nil
		}
	case domain.RoleVendor:
		vendor, err := s.vendorRepo.FindByUserID(ctx, actor.UserID)
		if errors.Is(err, domain.ErrVendorNotFound) {
			return "", nil
		}
		if err != nil {
			return "", fmt.Errorf("failed to look up vendor: %w", err)
		}
		if vendor.ID == booking.VendorID {
			return domain.RoleVendor, nil
		}
	}
	return "", nil
}

// List implements domain.BookingService. Customers see their own
// bookings, vendors the bookings of their vendor profile, admins all.
func (s *BookingServiceImpl) List(ctx context.Context, actor domain.Actor, filter domain.BookingFilter) ([]domain.Booking, int64, error) {
	switch actor.Role {
	case domain.RoleAdmin:
	case domain.RoleVendor:
		vendor, err := s.vendorRepo.FindByUserID(ctx, actor.UserID)
		if errors.Is(err, domain.ErrVendorNotFound) {
			return []domain.Booking{}, 0, nil
		}
		if err != nil {
			return nil, 0, fmt.Errorf("failed to look up vendor: %w", err)
		}
		filter.VendorID = &vendor.ID
		filter.CustomerID = nil
	default:
		filter.CustomerID = &actor.UserID
		filter.VendorID = nil
	}
	return s.list(ctx, filter)
}

// ListForUser implements domain.BookingService
func (s *BookingServiceImpl) ListForUser(ctx context.Context, userID uuid.UUID, filter domain.BookingFilter) ([]domain.Booking, int64, error) {
	filter.CustomerID = &userID
	return s.list(ctx, filter)
}

func (s *BookingServiceImpl) list(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, int64, error) {
	filter.Limit, filter.Offset = pageBounds(filter.Limit, filter.Offset)
	bookings, total, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, total, nil
}

// Transition implements domain.BookingService. Customers may only cancel;
// vendors and admins may make any legal move.
func (s *BookingServiceImpl) Transition(ctx context.Context, actor domain.Actor, id uuid.UUID, status string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	party, err := s.partyOf(ctx, actor, booking)
	if err != nil {
		return nil, err
	}
	if party == "" {
		return nil, domain.ErrBookingNotFound
	}

	if party == domain.RoleCustomer && status != domain.BookingCancelled {
		return nil, fmt.Errorf("customers may only cancel: %w", domain.ErrForbidden)
	}
	if !CanTransition(booking.Status, status) {
		return nil, fmt.Errorf("%s -> %s: %w", booking.Status, status, domain.ErrInvalidTransition)
	}

	previous := booking.Status
	if err := s.bookingRepo.UpdateStatus(ctx, booking.ID, previous, status, s.clock.Now()); err != nil {
		if errors.Is(err, domain.ErrInvalidTransition) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}

	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.BookingStatusEvent, actor.UserID).
		WithMetadata("booking_id", booking.ID.String()).
		WithMetadata("from", previous).WithMetadata("to", status))

	updated, err := s.bookingRepo.FindByID(ctx, booking.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload booking: %w", err)
	}
	return updated, nil
}

// HandlePaymentEvent implements domain.BookingService. Events that do not
// concern a known booking are acknowledged and dropped.
func (s *BookingServiceImpl) HandlePaymentEvent(ctx context.Context, payload []byte, signature string) error {
	if s.payments == nil {
		return domain.ErrPaymentsUnavailable
	}
	event, ok, err := s.payments.ParseEvent(payload, signature)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	if err := s.bookingRepo.SetPaymentStatus(ctx, event.Reference, event.Status); err != nil {
		if errors.Is(err, domain.ErrBookingNotFound) {
			return nil
		}
		return fmt.Errorf("failed to record payment: %w", err)
	}
	return nil
}
