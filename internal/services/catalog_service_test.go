package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/vinay2003/Airion-backend-sub001/domain"
	"github.com/vinay2003/Airion-backend-sub001/internal/mocks"
)

// catalogFixture holds one approved vendor with one active service in one category
type catalogFixture struct {
	vendor     *domain.Vendor
	category   *domain.Category
	service    *domain.Service
	vendors    *mocks.MockVendorRepository
	categories *mocks.MockCategoryRepository
	services   *mocks.MockServiceRepository
	svc        domain.CatalogService
}

func newCatalogFixture(t *testing.T) *catalogFixture {
	t.Helper()

	f := &catalogFixture{
		vendor:     newTestVendor(uuid.New(), domain.VendorApproved, true),
		category:   &domain.Category{ID: uuid.New(), Name: "Photography"},
		vendors:    mocks.NewMockVendorRepository(),
		categories: mocks.NewMockCategoryRepository(),
		services:   mocks.NewMockServiceRepository(),
	}
	f.service = &domain.Service{
		ID:              uuid.New(),
		VendorID:        f.vendor.ID,
		CategoryID:      f.category.ID,
		Name:            "Wedding shoot",
		Price:           25000,
		DurationMinutes: 480,
		IsActive:        true,
	}

	stubVendors(f.vendors, f.vendor)
	f.categories.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
		if id == f.category.ID {
			return f.category, nil
		}
		return nil, domain.ErrCategoryNotFound
	}
	f.categories.FindByNameFunc = func(ctx context.Context, name string) (*domain.Category, error) {
		if name == f.category.Name {
			return f.category, nil
		}
		return nil, domain.ErrCategoryNotFound
	}
	f.services.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.Service, error) {
		if id == f.service.ID {
			return f.service, nil
		}
		return nil, domain.ErrServiceNotFound
	}

	f.svc = NewCatalogService(f.categories, f.services, f.vendors, clockwork.NewFakeClockAt(testNow))
	return f
}

func (f *catalogFixture) owner() domain.Actor {
	return domain.Actor{UserID: f.vendor.UserID, Role: domain.RoleVendor}
}

func TestCatalogServiceImpl_CreateCategory(t *testing.T) {
	tests := []struct {
		name          string
		category      string
		expectedError error
	}{
		{name: "new category", category: "  Catering "},
		{name: "duplicate name", category: "Photography", expectedError: domain.ErrCategoryExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCatalogFixture(t)

			got, err := f.svc.CreateCategory(context.Background(), tt.category, "desc")

			if !errors.Is(err, tt.expectedError) {
				t.Fatalf("expected error %v, got %v", tt.expectedError, err)
			}
			if err == nil && (got.Name != "Catering" || got.ID == uuid.Nil) {
				t.Errorf("unexpected category %+v", got)
			}
		})
	}
}

func TestCatalogServiceImpl_CreateService(t *testing.T) {
	tests := []struct {
		name          string
		actor         func(f *catalogFixture) domain.Actor
		mutate        func(f *catalogFixture, s *domain.Service)
		expectedError error
	}{
		{
			name:  "owner creates",
			actor: (*catalogFixture).owner,
		},
		{
			name: "admin creates for any vendor",
			actor: func(f *catalogFixture) domain.Actor {
				return domain.Actor{UserID: uuid.New(), Role: domain.RoleAdmin}
			},
		},
		{
			name: "other vendor forbidden",
			actor: func(f *catalogFixture) domain.Actor {
				return domain.Actor{UserID: uuid.New(), Role: domain.RoleVendor}
			},
			expectedError: domain.ErrForbidden,
		},
		{
			name:  "unknown vendor",
			actor: (*catalogFixture).owner,
			mutate: func(f *catalogFixture, s *domain.Service) {
				s.VendorID = uuid.New()
			},
			expectedError: domain.ErrVendorNotFound,
		},
		{
			name:  "unknown category",
			actor: (*catalogFixture).owner,
			mutate: func(f *catalogFixture, s *domain.Service) {
				s.CategoryID = uuid.New()
			},
			expectedError: domain.ErrCategoryNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCatalogFixture(t)
			input := &domain.Service{VendorID: f.vendor.ID, CategoryID: f.category.ID, Name: " Pre-wedding ", Price: 12000, DurationMinutes: 120}
			if tt.mutate != nil {
				tt.mutate(f, input)
			}

			got, err := f.svc.CreateService(context.Background(), tt.actor(f), input)

			if !errors.Is(err, tt.expectedError) {
				t.Fatalf("expected error %v, got %v", tt.expectedError, err)
			}
			if err == nil && (!got.IsActive || got.Name != "Pre-wedding" || !got.CreatedAt.Equal(testNow)) {
				t.Errorf("unexpected service %+v", got)
			}
		})
	}
}

func TestCatalogServiceImpl_ListServices_ActiveOnlyForPublic(t *testing.T) {
	tests := []struct {
		name       string
		actor      *domain.Actor
		activeOnly bool
	}{
		{name: "anonymous", activeOnly: true},
		{name: "vendor", actor: &domain.Actor{UserID: uuid.New(), Role: domain.RoleVendor}, activeOnly: true},
		{name: "admin", actor: &domain.Actor{UserID: uuid.New(), Role: domain.RoleAdmin}, activeOnly: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCatalogFixture(t)
			vendorID := f.vendor.ID
			f.services.ListFunc = func(ctx context.Context, filter domain.ServiceFilter) ([]domain.Service, int64, error) {
				if filter.ActiveOnly != tt.activeOnly {
					t.Errorf("expected ActiveOnly=%v", tt.activeOnly)
				}
				if filter.VendorID == nil || *filter.VendorID != vendorID {
					t.Error("vendor filter must pass through")
				}
				return []domain.Service{*f.service}, 1, nil
			}

			got, total, err := f.svc.ListServices(context.Background(), tt.actor, domain.ServiceFilter{VendorID: &vendorID})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if total != 1 || len(got) != 1 {
				t.Errorf("expected one service, got %d/%d", len(got), total)
			}
		})
	}
}

func TestCatalogServiceImpl_UpdateService(t *testing.T) {
	f := newCatalogFixture(t)
	price := 30000.0
	inactive := false
	missing := uuid.New()

	if _, err := f.svc.UpdateService(context.Background(), domain.Actor{UserID: uuid.New(), Role: domain.RoleVendor},
		f.service.ID, domain.ServicePatch{Price: &price}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("stranger update: expected ErrForbidden, got %v", err)
	}
	if _, err := f.svc.UpdateService(context.Background(), f.owner(), f.service.ID,
		domain.ServicePatch{CategoryID: &missing}); !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Fatalf("bad category: expected ErrCategoryNotFound, got %v", err)
	}

	got, err := f.svc.UpdateService(context.Background(), f.owner(), f.service.ID,
		domain.ServicePatch{Price: &price, IsActive: &inactive})
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if got.Price != 30000 || got.IsActive || got.Name != "Wedding shoot" {
		t.Errorf("patch not applied correctly: %+v", got)
	}
}

func TestCatalogServiceImpl_DeleteService(t *testing.T) {
	f := newCatalogFixture(t)
	deleted := uuid.Nil
	f.services.DeleteFunc = func(ctx context.Context, id uuid.UUID) error {
		deleted = id
		return nil
	}

	if err := f.svc.DeleteService(context.Background(), domain.Actor{UserID: uuid.New(), Role: domain.RoleCustomer}, f.service.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("customer delete: expected ErrForbidden, got %v", err)
	}
	if err := f.svc.DeleteService(context.Background(), f.owner(), uuid.New()); !errors.Is(err, domain.ErrServiceNotFound) {
		t.Fatalf("unknown service: expected ErrServiceNotFound, got %v", err)
	}
	if err := f.svc.DeleteService(context.Background(), f.owner(), f.service.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if deleted != f.service.ID {
		t.Error("repository delete not called")
	}
}

func TestCatalogServiceImpl_Packages(t *testing.T) {
	f := newCatalogFixture(t)
	var stored []domain.ServicePackage
	f.services.CreatePackageFunc = func(ctx context.Context, pkg *domain.ServicePackage) error {
		stored = append(stored, *pkg)
		return nil
	}
	f.services.ListPackagesFunc = func(ctx context.Context, serviceID uuid.UUID) ([]domain.ServicePackage, error) {
		return stored, nil
	}

	pkg, err := f.svc.AddPackage(context.Background(), f.owner(), f.service.ID, &domain.ServicePackage{Name: "Gold", Price: 40000})
	if err != nil {
		t.Fatalf("add package: %v", err)
	}
	if pkg.ServiceID != f.service.ID {
		t.Errorf("package bound to wrong service %v", pkg.ServiceID)
	}

	stranger := domain.Actor{UserID: uuid.New(), Role: domain.RoleVendor}
	if _, err := f.svc.AddPackage(context.Background(), stranger, f.service.ID, &domain.ServicePackage{Name: "X"}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("stranger add: expected ErrForbidden, got %v", err)
	}

	list, err := f.svc.ListPackages(context.Background(), f.service.ID)
	if err != nil || len(list) != 1 || list[0].Name != "Gold" {
		t.Fatalf("unexpected package list %v, %v", list, err)
	}
	if _, err := f.svc.ListPackages(context.Background(), uuid.New()); !errors.Is(err, domain.ErrServiceNotFound) {
		t.Fatalf("expected ErrServiceNotFound, got %v", err)
	}
}
