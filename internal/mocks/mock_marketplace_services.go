package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/vinay2003/Airion-backend-sub001/domain"
)

// MockVendorService implements domain.VendorService interface for testing
type MockVendorService struct {
	CreateFunc     func(ctx context.Context, actor domain.Actor, ownerID *uuid.UUID, vendor *domain.Vendor) (*domain.Vendor, error)
	GetFunc        func(ctx context.Context, actor *domain.Actor, id uuid.UUID) (*domain.Vendor, error)
	ListFunc       func(ctx context.Context, actor *domain.Actor, filter domain.VendorFilter) ([]domain.Vendor, int64, error)
	UpdateFunc     func(ctx context.Context, actor domain.Actor, id uuid.UUID, patch domain.VendorPatch) (*domain.Vendor, error)
	DeleteFunc     func(ctx context.Context, actor domain.Actor, id uuid.UUID) error
	SetStatusFunc  func(ctx context.Context, id uuid.UUID, status string) (*domain.Vendor, error)
	SetActiveFunc  func(ctx context.Context, id uuid.UUID, active bool) (*domain.Vendor, error)
	StatsFunc      func(ctx context.Context) (*domain.VendorStats, error)
	UploadLogoFunc func(ctx context.Context, actor domain.Actor, id uuid.UUID, image domain.Image) (*domain.Vendor, error)
}

// NewMockVendorService creates a new MockVendorService with default behaviors
func NewMockVendorService() *MockVendorService {
	return &MockVendorService{}
}

// Create creates a vendor
func (m *MockVendorService) Create(ctx context.Context, actor domain.Actor, ownerID *uuid.UUID, vendor *domain.Vendor) (*domain.Vendor, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, actor, ownerID, vendor)
	}
	vendor.ID = uuid.New()
	vendor.UserID = actor.UserID
	vendor.Status = domain.VendorPending
	return vendor, nil
}

// Get returns a vendor
func (m *MockVendorService) Get(ctx context.Context, actor *domain.Actor, id uuid.UUID) (*domain.Vendor, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, actor, id)
	}
	return nil, domain.ErrVendorNotFound
}

// List lists vendors
func (m *MockVendorService) List(ctx context.Context, actor *domain.Actor, filter domain.VendorFilter) ([]domain.Vendor, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, actor, filter)
	}
	return nil, 0, nil
}

// Update updates a vendor
func (m *MockVendorService) Update(ctx context.Context, actor domain.Actor, id uuid.UUID, patch domain.VendorPatch) (*domain.Vendor, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, actor, id, patch)
	}
	return nil, domain.ErrVendorNotFound
}

// Delete deletes a vendor
func (m *MockVendorService) Delete(ctx context.Context, actor domain.Actor, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, actor, id)
	}
	return nil
}

// SetStatus changes a vendor's approval status
func (m *MockVendorService) SetStatus(ctx context.Context, id uuid.UUID, status string) (*domain.Vendor, error) {
	if m.SetStatusFunc != nil {
		return m.SetStatusFunc(ctx, id, status)
	}
	return &domain.Vendor{ID: id, Status: status}, nil
}

// SetActive toggles a vendor
func (m *MockVendorService) SetActive(ctx context.Context, id uuid.UUID, active bool) (*domain.Vendor, error) {
	if m.SetActiveFunc != nil {
		return m.SetActiveFunc(ctx, id, active)
	}
	return &domain.Vendor{ID: id, IsActive: active}, nil
}

// Stats returns vendor counters
func (m *MockVendorService) Stats(ctx context.Context) (*domain.VendorStats, error) {
	if m.StatsFunc != nil {
		return m.StatsFunc(ctx)
	}
	return &domain.VendorStats{}, nil
}

// UploadLogo stores a vendor logo
func (m *MockVendorService) UploadLogo(ctx context.Context, actor domain.Actor, id uuid.UUID, image domain.Image) (*domain.Vendor, error) {
	if m.UploadLogoFunc != nil {
		return m.UploadLogoFunc(ctx, actor, id, image)
	}
	return &domain.Vendor{ID: id, LogoURL: "https://cdn.example.com/logo.png"}, nil
}

// MockCatalogService implements domain.CatalogService interface for testing
type MockCatalogService struct {
	ListCategoriesFunc func(ctx context.Context) ([]domain.Category, error)
	CreateCategoryFunc func(ctx context.Context, name, description string) (*domain.Category, error)
	CreateServiceFunc  func(ctx context.Context, actor domain.Actor, service *domain.Service) (*domain.Service, error)
	GetServiceFunc     func(ctx context.Context, id uuid.UUID) (*domain.Service, error)
	ListServicesFunc   func(ctx context.Context, actor *domain.Actor, filter domain.ServiceFilter) ([]domain.Service, int64, error)
	UpdateServiceFunc  func(ctx context.Context, actor domain.Actor, id uuid.UUID, patch domain.ServicePatch) (*domain.Service, error)
	DeleteServiceFunc  func(ctx context.Context, actor domain.Actor, id uuid.UUID) error
	AddPackageFunc     func(ctx context.Context, actor domain.Actor, serviceID uuid.UUID, pkg *domain.ServicePackage) (*domain.ServicePackage, error)
	ListPackagesFunc   func(ctx context.Context, serviceID uuid.UUID) ([]domain.ServicePackage, error)
}

// NewMockCatalogService creates a new MockCatalogService with default behaviors
func NewMockCatalogService() *MockCatalogService {
	return &MockCatalogService{}
}

// ListCategories lists categories
func (m *MockCatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	if m.ListCategoriesFunc != nil {
		return m.ListCategoriesFunc(ctx)
	}
	return nil, nil
}

// CreateCategory creates a category
func (m *MockCatalogService) CreateCategory(ctx context.Context, name, description string) (*domain.Category, error) {
	if m.CreateCategoryFunc != nil {
		return m.CreateCategoryFunc(ctx, name, description)
	}
	return &domain.Category{ID: uuid.New(), Name: name, Description: description}, nil
}

// CreateService creates a service
func (m *MockCatalogService) CreateService(ctx context.Context, actor domain.Actor, service *domain.Service) (*domain.Service, error) {
	if m.CreateServiceFunc != nil {
		return m.CreateServiceFunc(ctx, actor, service)
	}
	service.ID = uuid.New()
	return service, nil
}

// GetService returns a service
func (m *MockCatalogService) GetService(ctx context.Context, id uuid.UUID) (*domain.Service, error) {
	if m.GetServiceFunc != nil {
		return m.GetServiceFunc(ctx, id)
	}
	return nil, domain.ErrServiceNotFound
}

// ListServices lists services
func (m *MockCatalogService) ListServices(ctx context.Context, actor *domain.Actor, filter domain.ServiceFilter) ([]domain.Service, int64, error) {
	if m.ListServicesFunc != nil {
		return m.ListServicesFunc(ctx, actor, filter)
	}
	return nil, 0, nil
}

// UpdateService updates a service
func (m *MockCatalogService) UpdateService(ctx context.Context, actor domain.Actor, id uuid.UUID, patch domain.ServicePatch) (*domain.Service, error) {
	if m.UpdateServiceFunc != nil {
		return m.UpdateServiceFunc(ctx, actor, id, patch)
	}
	return nil, domain.ErrServiceNotFound
}

// DeleteService deletes a service
func (m *MockCatalogService) DeleteService(ctx context.Context, actor domain.Actor, id uuid.UUID) error {
	if m.DeleteServiceFunc != nil {
		return m.DeleteServiceFunc(ctx, actor, id)
	}
	return nil
}

// AddPackage adds a package to a service
func (m *MockCatalogService) AddPackage(ctx context.Context, actor domain.Actor, serviceID uuid.UUID, pkg *domain.ServicePackage) (*domain.ServicePackage, error) {
	if m.AddPackageFunc != nil {
		return m.AddPackageFunc(ctx, actor, serviceID, pkg)
	}
	pkg.ID = uuid.New()
	pkg.ServiceID = serviceID
	return pkg, nil
}

// ListPackages lists a service's packages
func (m *MockCatalogService) ListPackages(ctx context.Context, serviceID uuid.UUID) ([]domain.ServicePackage, error) {
	if m.ListPackagesFunc != nil {
		return m.ListPackagesFunc(ctx, serviceID)
	}
	return nil, nil
}

// MockBookingService implements domain.BookingService interface for testing
type MockBookingService struct {
	CreateFunc             func(ctx context.Context, actor domain.Actor, draft domain.BookingDraft) (*domain.BookingCheckout, error)
	GetFunc                func(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Booking, error)
	ListFunc               func(ctx context.Context, actor domain.Actor, filter domain.BookingFilter) ([]domain.Booking, int64, error)
	ListForUserFunc        func(ctx context.Context, userID uuid.UUID, filter domain.BookingFilter) ([]domain.Booking, int64, error)
	TransitionFunc         func(ctx context.Context, actor domain.Actor, id uuid.UUID, status string) (*domain.Booking, error)
	HandlePaymentEventFunc func(ctx context.Context, payload []byte, signature string) error
}

// NewMockBookingService creates a new MockBookingService with default behaviors
func NewMockBookingService() *MockBookingService {
	return &MockBookingService{}
}

// Create creates a booking
func (m *MockBookingService) Create(ctx context.Context, actor domain.Actor, draft domain.BookingDraft) (*domain.BookingCheckout, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, actor, draft)
	}
	return &domain.BookingCheckout{Booking: &domain.Booking{
		ID:            uuid.New(),
		CustomerID:    actor.UserID,
		VendorID:      draft.VendorID,
		ServiceID:     draft.ServiceID,
		PaymentMethod: draft.PaymentMethod,
		PaymentStatus: domain.PaymentUnpaid,
		Status:        domain.BookingPending,
	}}, nil
}

// Get returns a booking
func (m *MockBookingService) Get(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Booking, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, actor, id)
	}
	return nil, domain.ErrBookingNotFound
}

// List lists bookings visible to the actor
func (m *MockBookingService) List(ctx context.Context, actor domain.Actor, filter domain.BookingFilter) ([]domain.Booking, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, actor, filter)
	}
	return nil, 0, nil
}

// ListForUser lists a customer's bookings
func (m *MockBookingService) ListForUser(ctx context.Context, userID uuid.UUID, filter domain.BookingFilter) ([]domain.Booking, int64, error) {
	if m.ListForUserFunc != nil {
		return m.ListForUserFunc(ctx, userID, filter)
	}
	return nil, 0, nil
}

// Transition moves a booking to a new status
func (m *MockBookingService) Transition(ctx context.Context, actor domain.Actor, id uuid.UUID, status string) (*domain.Booking, error) {
	if m.TransitionFunc != nil {
		return m.TransitionFunc(ctx, actor, id, status)
	}
	return nil, domain.ErrBookingNotFound
}

// HandlePaymentEvent applies a gateway webhook
func (m *MockBookingService) HandlePaymentEvent(ctx context.Context, payload []byte, signature string) error {
	if m.HandlePaymentEventFunc != nil {
		return m.HandlePaymentEventFunc(ctx, payload, signature)
	}
	return nil
}

// Compile-time interface compliance verification
var (
	_ domain.VendorService  = (*MockVendorService)(nil)
	_ domain.CatalogService = (*MockCatalogService)(nil)
	_ domain.BookingService = (*MockBookingService)(nil)
)
