package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vinay2003/Airion-backend-sub001/domain"
	"gorm.io/gorm"
)

// BookingRepositoryImpl implements domain.BookingRepository using GORM
type BookingRepositoryImpl struct {
	db *gorm.DB
}

// DBBooking represents the database model for Booking
type DBBooking struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerID       uuid.UUID  `gorm:"type:uuid;index"`
	VendorID         uuid.UUID  `gorm:"type:uuid;index"`
	ServiceID        uuid.UUID  `gorm:"type:uuid"`
	PackageID        *uuid.UUID `gorm:"type:uuid"`
	Amount           float64
	BookingDate      time.Time
	EventDate        time.Time
	Address          string
	PaymentMethod    string `gorm:"size:32"`
	PaymentStatus    string `gorm:"size:16"`
	PaymentReference string `gorm:"index;size:255"`
	Status           string `gorm:"size:16"`
	Notes            string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName returns the table name for GORM
func (DBBooking) TableName() string {
	return "bookings"
}

// NewBookingRepository creates a new booking repository
func NewBookingRepository(db *gorm.DB) domain.BookingRepository {
	return &BookingRepositoryImpl{db: db}
}

// Create implements domain.BookingRepository
func (r *BookingRepositoryImpl) Create(ctx context.Context, booking *domain.Booking) error {
	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	row := bookingToDB(booking)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	booking.CreatedAt, booking.UpdatedAt = row.CreatedAt, row.UpdatedAt
	return nil
}

// FindByID implements domain.BookingRepository
func (r *BookingRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	var row DBBooking
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}
	return bookingToDomain(&row), nil
}

// List implements domain.BookingRepository
func (r *BookingRepositoryImpl) List(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, int64, error) {
	q := r.db.WithContext(ctx).Model(&DBBooking{})
	if filter.CustomerID != nil {
		q = q.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.VendorID != nil {
		q = q.Where("vendor_id = ?", *filter.VendorID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	var rows []DBBooking
	if err := paginate(q, filter.Limit, filter.Offset).Order("event_date DESC").Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}
	bookings := make([]domain.Booking, 0, len(rows))
	for i := range rows {
		bookings = append(bookings, *bookingToDomain(&rows[i]))
	}
	return bookings, total, nil
}

// UpdateStatus implements domain.BookingRepository. The status guard in the
// WHERE clause makes concurrent transitions out of the same state race to
// a single winner; payment columns are never touched here.
func (r *BookingRepositoryImpl) UpdateStatus(ctx context.Context, id uuid.UUID, from, to string, at time.Time) error {
	res := r.db.WithContext(ctx).Model(&DBBooking{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]interface{}{"status": to, "updated_at": at})
	if res.Error != nil {
		return fmt.Errorf("failed to update booking status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("booking is no longer %s: %w", from, domain.ErrInvalidTransition)
	}
	return nil
}

// SetPaymentStatus implements domain.BookingRepository
func (r *BookingRepositoryImpl) SetPaymentStatus(ctx context.Context, reference, status string) error {
	res := r.db.WithContext(ctx).Model(&DBBooking{}).
		Where("payment_reference = ?", reference).
		Update("payment_status", status)
	if res.Error != nil {
		return fmt.Errorf("failed to update payment status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrBookingNotFound
	}
	return nil
}

func bookingToDB(b *domain.Booking) *DBBooking {
	return &DBBooking{
		ID:               b.ID,
		CustomerID:       b.CustomerID,
		VendorID:         b.VendorID,
		ServiceID:        b.ServiceID,
		PackageID:        b.PackageID,
		Amount:           b.Amount,
		BookingDate:      b.BookingDate,
		EventDate:        b.EventDate,
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

func bookingToDomain(row *DBBooking) *domain.Booking {
	return &domain.Booking{
		ID:               row.ID,
		CustomerID:       row.CustomerID,
		VendorID:         row.VendorID,
		ServiceID:        row.ServiceID,
		PackageID:        row.PackageID,
		Amount:           row.Amount,
		BookingDate:      row.BookingDate,
		EventDate:        row.EventDate,
		Address:          row.Address,
		PaymentMethod:    row.PaymentMethod,
		PaymentStatus:    row.PaymentStatus,
		PaymentReference: row.PaymentReference,
		Status:           row.Status,
		Notes:            row.Notes,
		CreatedAt:        row.CreatedAt,
		UpdatedAt:        row.UpdatedAt,
	}
}
