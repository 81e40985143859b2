package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vinay2003/Airion-backend-sub001/domain"
)

// MockVendorRepository implements domain.VendorRepository interface for testing
type MockVendorRepository struct {
	CreateFunc       func(ctx context.Context, vendor *domain.Vendor) error
	FindByIDFunc     func(ctx context.Context, id uuid.UUID) (*domain.Vendor, error)
	FindByUserIDFunc func(ctx context.Context, userID uuid.UUID) (*domain.Vendor, error)
	ListFunc         func(ctx context.Context, filter domain.VendorFilter) ([]domain.Vendor, int64, error)
	UpdateFunc       func(ctx context.Context, vendor *domain.Vendor, columns ...string) error
	DeleteFunc       func(ctx context.Context, id uuid.UUID) error
	StatsFunc        func(ctx context.Context) (*domain.VendorStats, error)
}

// NewMockVendorRepository creates a new MockVendorRepository with default behaviors
func NewMockVendorRepository() *MockVendorRepository {
	return &MockVendorRepository{}
}

// Create creates a vendor
func (m *MockVendorRepository) Create(ctx context.Context, vendor *domain.Vendor) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, vendor)
	}
	if vendor.ID == uuid.Nil {
		vendor.ID = uuid.New()
	}
	return nil
}

// FindByID finds a vendor by ID
func (m *MockVendorRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Vendor, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrVendorNotFound
}

// FindByUserID finds the vendor owned by a user
func (m *MockVendorRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*domain.Vendor, error) {
	if m.FindByUserIDFunc != nil {
		return m.FindByUserIDFunc(ctx, userID)
	}
	return nil, domain.ErrVendorNotFound
}

// List lists vendors
func (m *MockVendorRepository) List(ctx context.Context, filter domain.VendorFilter) ([]domain.Vendor, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

// Update updates the named vendor columns
func (m *MockVendorRepository) Update(ctx context.Context, vendor *domain.Vendor, columns ...string) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, vendor, columns...)
	}
	return nil
}

// Delete deletes a vendor
func (m *MockVendorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// Stats aggregates vendor counters
func (m *MockVendorRepository) Stats(ctx context.Context) (*domain.VendorStats, error) {
	if m.StatsFunc != nil {
		return m.StatsFunc(ctx)
	}
	return &domain.VendorStats{}, nil
}

// MockCategoryRepository implements domain.CategoryRepository interface for testing
type MockCategoryRepository struct {
	CreateFunc     func(ctx context.Context, category *domain.Category) error
	FindByIDFunc   func(ctx context.Context, id uuid.UUID) (*domain.Category, error)
	FindByNameFunc func(ctx context.Context, name string) (*domain.Category, error)
	ListFunc       func(ctx context.Context) ([]domain.Category, error)
}

// NewMockCategoryRepository creates a new MockCategoryRepository with default behaviors
func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{}
}

// Create creates a category
func (m *MockCategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, category)
	}
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	return nil
}

// FindByID finds a category by ID
func (m *MockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrCategoryNotFound
}

// FindByName finds a category by name
func (m *MockCategoryRepository) FindByName(ctx context.Context, name string) (*domain.Category, error) {
	if m.FindByNameFunc != nil {
		return m.FindByNameFunc(ctx, name)
	}
	return nil, domain.ErrCategoryNotFound
}

// List lists categories
func (m *MockCategoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

// MockServiceRepository implements domain.ServiceRepository interface for testing
type MockServiceRepository struct {
	CreateFunc          func(ctx context.Context, service *domain.Service) error
	FindByIDFunc        func(ctx context.Context, id uuid.UUID) (*domain.Service, error)
	ListFunc            func(ctx context.Context, filter domain.ServiceFilter) ([]domain.Service, int64, error)
	UpdateFunc          func(ctx context.Context, service *domain.Service) error
	DeleteFunc          func(ctx context.Context, id uuid.UUID) error
	CreatePackageFunc   func(ctx context.Context, pkg *domain.ServicePackage) error
	FindPackageByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.ServicePackage, error)
	ListPackagesFunc    func(ctx context.Context, serviceID uuid.UUID) ([]domain.ServicePackage, error)
}

// NewMockServiceRepository creates a new MockServiceRepository with default behaviors
func NewMockServiceRepository() *MockServiceRepository {
	return &MockServiceRepository{}
}

// Create creates a service
func (m *MockServiceRepository) Create(ctx context.Context, service *domain.Service) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, service)
	}
	if service.ID == uuid.Nil {
		service.ID = uuid.New()
	}
	return nil
}

// FindByID finds a service by ID
func (m *MockServiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Service, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrServiceNotFound
}

// List lists services
func (m *MockServiceRepository) List(ctx context.Context, filter domain.ServiceFilter) ([]domain.Service, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

// Update updates a service
func (m *MockServiceRepository) Update(ctx context.Context, service *domain.Service) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, service)
	}
	return nil
}

// Delete deletes a service
func (m *MockServiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// CreatePackage creates a service package
func (m *MockServiceRepository) CreatePackage(ctx context.Context, pkg *domain.ServicePackage) error {
	if m.CreatePackageFunc != nil {
		return m.CreatePackageFunc(ctx, pkg)
	}
	if pkg.ID == uuid.Nil {
		pkg.ID = uuid.New()
	}
	return nil
}

// FindPackageByID finds a package by ID
func (m *MockServiceRepository) FindPackageByID(ctx context.Context, id uuid.UUID) (*domain.ServicePackage, error) {
	if m.FindPackageByIDFunc != nil {
		return m.FindPackageByIDFunc(ctx, id)
	}
	return nil, domain.ErrPackageNotFound
}

// ListPackages lists a service's packages
func (m *MockServiceRepository) ListPackages(ctx context.Context, serviceID uuid.UUID) ([]domain.ServicePackage, error) {
	if m.ListPackagesFunc != nil {
		return m.ListPackagesFunc(ctx, serviceID)
	}
	return nil, nil
}

// MockBookingRepository implements domain.BookingRepository interface for testing
type MockBookingRepository struct {
	CreateFunc           func(ctx context.Context, booking *domain.Booking) error
	FindByIDFunc         func(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	ListFunc             func(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, int64, error)
	UpdateStatusFunc     func(ctx context.Context, id uuid.UUID, from, to string, at time.Time) error
	SetPaymentStatusFunc func(ctx context.Context, reference, status string) error
}

// NewMockBookingRepository creates a new MockBookingRepository with default behaviors
func NewMockBookingRepository() *MockBookingRepository {
	return &MockBookingRepository{}
}

// Create creates a booking
func (m *MockBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, booking)
	}
	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	return nil
}

// FindByID finds a booking by ID
func (m *MockBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrBookingNotFound
}

// List lists bookings
func (m *MockBookingRepository) List(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

// UpdateStatus moves a booking between statuses
func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to string, at time.Time) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, from, to, at)
	}
	return nil
}

// SetPaymentStatus updates the payment status by gateway reference
func (m *MockBookingRepository) SetPaymentStatus(ctx context.Context, reference, status string) error {
	if m.SetPaymentStatusFunc != nil {
		return m.SetPaymentStatusFunc(ctx, reference, status)
	}
	return nil
}

// Compile-time interface compliance verification
var (
	_ domain.VendorRepository   = (*MockVendorRepository)(nil)
	_ domain.CategoryRepository = (*MockCategoryRepository)(nil)
	_ domain.ServiceRepository  = (*MockServiceRepository)(nil)
	_ domain.BookingRepository  = (*MockBookingRepository)(nil)
)
