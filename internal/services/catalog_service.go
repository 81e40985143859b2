package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/vinay2003/Airion-backend-sub001/domain"
)

// CatalogServiceImpl implements domain.CatalogService
type CatalogServiceImpl struct {
	categoryRepo domain.CategoryRepository
	serviceRepo  domain.ServiceRepository
	vendorRepo   domain.VendorRepository
	clock        clockwork.Clock
}

// NewCatalogService creates a new catalog service
func NewCatalogService(categoryRepo domain.CategoryRepository, serviceRepo domain.ServiceRepository, vendorRepo domain.VendorRepository, clock clockwork.Clock) domain.CatalogService {
	return &CatalogServiceImpl{
		categoryRepo: categoryRepo,
		serviceRepo:  serviceRepo,
		vendorRepo:   vendorRepo,
		clock:        clock,
	}
}

// ListCategories implements domain.CatalogService
func (s *CatalogServiceImpl) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// CreateCategory implements domain.CatalogService
func (s *CatalogServiceImpl) CreateCategory(ctx context.Context, name, description string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if _, err := s.categoryRepo.FindByName(ctx, name); err == nil {
		return nil, domain.ErrCategoryExists
	} else if !errors.Is(err, domain.ErrCategoryNotFound) {
		return nil, fmt.Errorf("failed to look up category: %w", err)
	}

	category := &domain.Category{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		CreatedAt:   s.clock.Now(),
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

// CreateService implements domain.CatalogService
func (s *CatalogServiceImpl) CreateService(ctx context.Context, actor domain.Actor, service *domain.Service) (*domain.Service, error) {
	if _, err := s.managedVendor(ctx, actor, service.VendorID); err != nil {
		return nil, err
	}
	if _, err := s.categoryRepo.FindByID(ctx, service.CategoryID); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	service.ID = uuid.New()
	service.Name = strings.TrimSpace(service.Name)
	service.IsActive = true
	service.CreatedAt = now
	service.UpdatedAt = now
	if err := s.serviceRepo.Create(ctx, service); err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}
	return service, nil
}

// GetService implements domain.CatalogService
func (s *CatalogServiceImpl) GetService(ctx context.Context, id uuid.UUID) (*domain.Service, error) {
	return s.serviceRepo.FindByID(ctx, id)
}

// ListServices implements domain.CatalogService. Inactive services are
// listed for admins only.
func (s *CatalogServiceImpl) ListServices(ctx context.Context, actor *domain.Actor, filter domain.ServiceFilter) ([]domain.Service, int64, error) {
	if actor == nil || !actor.IsAdmin() {
		filter.ActiveOnly = true
	}
	filter.Limit, filter.Offset = pageBounds(filter.Limit, filter.Offset)

	services, total, err := s.serviceRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list services: %w", err)
	}
	return services, total, nil
}

// UpdateService implements domain.CatalogService
func (s *CatalogServiceImpl) UpdateService(ctx context.Context, actor domain.Actor, id uuid.UUID, patch domain.ServicePatch) (*domain.Service, error) {
	service, err := s.managedService(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if patch.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *patch.CategoryID); err != nil {
			return nil, err
		}
		service.CategoryID = *patch.CategoryID
	}
	if patch.Name != nil {
		service.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Description != nil {
		service.Description = *patch.Description
	}
	if patch.Price != nil {
		service.Price = *patch.Price
	}
	if patch.DurationMinutes != nil {
		service.DurationMinutes = *patch.DurationMinutes
	}
	if patch.IsActive != nil {
		service.IsActive = *patch.IsActive
	}

	service.UpdatedAt = s.clock.Now()
	if err := s.serviceRepo.Update(ctx, service); err != nil {
		return nil, fmt.Errorf("failed to update service: %w", err)
	}
	return service, nil
}

// DeleteService implements domain.CatalogService
func (s *CatalogServiceImpl) DeleteService(ctx context.Context, actor domain.Actor, id uuid.UUID) error {
	if _, err := s.managedService(ctx, actor, id); err != nil {
		return err
	}
	if err := s.serviceRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}
	return nil
}

// AddPackage implements domain.CatalogService
func (s *CatalogServiceImpl) AddPackage(ctx context.Context, actor domain.Actor, serviceID uuid.UUID, pkg *domain.ServicePackage) (*domain.ServicePackage, error) {
	if _, err := s.managedService(ctx, actor, serviceID); err != nil {
		return nil, err
	}

	pkg.ID = uuid.New()
	pkg.ServiceID = serviceID
	pkg.Name = strings.TrimSpace(pkg.Name)
	pkg.CreatedAt = s.clock.Now()
	if err := s.serviceRepo.CreatePackage(ctx, pkg); err != nil {
		return nil, fmt.Errorf("failed to create package: %w", err)
	}
	return pkg, nil
}

// ListPackages implements domain.CatalogService
func (s *CatalogServiceImpl) ListPackages(ctx context.Context, serviceID uuid.UUID) ([]domain.ServicePackage, error) {
	if _, err := s.serviceRepo.FindByID(ctx, serviceID); err != nil {
		return nil, err
	}
	packages, err := s.serviceRepo.ListPackages(ctx, serviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}
	return packages, nil
}

func (s *CatalogServiceImpl) managedVendor(ctx context.Context, actor domain.Actor, vendorID uuid.UUID) (*domain.Vendor, error) {
	vendor, err := s.vendorRepo.FindByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	if !canManageVendor(&actor, vendor) {
		return nil, domain.ErrForbidden
	}
	return vendor, nil
}

func (s *CatalogServiceImpl) managedService(ctx context.Context, actor domain.Actor, serviceID uuid.UUID) (*domain.Service, error) {
	service, err := s.serviceRepo.FindByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if _, err := s.managedVendor(ctx, actor, service.VendorID); err != nil {
		return nil, err
	}
	return service, nil
}
