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

// ServiceRepositoryImpl implements domain.ServiceRepository using GORM
type ServiceRepositoryImpl struct {
	db *gorm.DB
}

// DBService represents the database model for Service
type DBService struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	VendorID        uuid.UUID `gorm:"type:uuid;index"`
	CategoryID      uuid.UUID `gorm:"type:uuid;index"`
	Name            string    `gorm:"size:255"`
	Description     string
	Price           float64
	DurationMinutes int
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName returns the table name for GORM
func (DBService) TableName() string {
	return "services"
}

// DBPackage represents the database model for ServicePackage
type DBPackage struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	ServiceID   uuid.UUID `gorm:"type:uuid;index"`
	Name        string    `gorm:"size:255"`
	Description string
	Price       float64
	CreatedAt   time.Time
}

// TableName returns the table name for GORM
func (DBPackage) TableName() string {
	return "packages"
}

// NewServiceRepository creates a new service repository
func NewServiceRepository(db *gorm.DB) domain.ServiceRepository {
	return &ServiceRepositoryImpl{db: db}
}

// Create implements domain.ServiceRepository
func (r *ServiceRepositoryImpl) Create(ctx context.Context, service *domain.Service) error {
	if service.ID == uuid.Nil {
		service.ID = uuid.New()
	}
	row := serviceToDB(service)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}
	service.CreatedAt, service.UpdatedAt = row.CreatedAt, row.UpdatedAt
	return nil
}

// FindByID implements domain.ServiceRepository
func (r *ServiceRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Service, error) {
	var row DBService
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrServiceNotFound
		}
		return nil, fmt.Errorf("failed to find service: %w", err)
	}
	return serviceToDomain(&row), nil
}

// List implements domain.ServiceRepository
func (r *ServiceRepositoryImpl) List(ctx context.Context, filter domain.ServiceFilter) ([]domain.Service, int64, error) {
	q := r.db.WithContext(ctx).Model(&DBService{})
	if filter.VendorID != nil {
		q = q.Where("vendor_id = ?", *filter.VendorID)
	}
	if filter.CategoryID != nil {
		q = q.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.ActiveOnly {
		q = q.Where("is_active = ?", true)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count services: %w", err)
	}

	var rows []DBService
	if err := paginate(q, filter.Limit, filter.Offset).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list services: %w", err)
	}
	services := make([]domain.Service, 0, len(rows))
	for i := range rows {
		services = append(services, *serviceToDomain(&rows[i]))
	}
	return services, total, nil
}

// Update implements domain.ServiceRepository
func (r *ServiceRepositoryImpl) Update(ctx context.Context, service *domain.Service) error {
	row := serviceToDB(service)
	if err := r.db.WithContext(ctx).Save(row).Error; err != nil {
		return fmt.Errorf("failed to update service: %w", err)
	}
	service.UpdatedAt = row.UpdatedAt
	return nil
}

// Delete implements domain.ServiceRepository
func (r *ServiceRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("service_id = ?", id).Delete(&DBPackage{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&DBService{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrServiceNotFound
		}
		return nil
	})
	if err != nil && !errors.Is(err, domain.ErrServiceNotFound) {
		return fmt.Errorf("failed to delete service: %w", err)
	}
	return err
}

// CreatePackage implements domain.ServiceRepository
func (r *ServiceRepositoryImpl) CreatePackage(ctx context.Context, pkg *domain.ServicePackage) error {
	if pkg.ID == uuid.Nil {
		pkg.ID = uuid.New()
	}
	row := &DBPackage{
		ID:          pkg.ID,
		ServiceID:   pkg.ServiceID,
		Name:        pkg.Name,
		Description: pkg.Description,
		Price:       pkg.Price,
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return fmt.Errorf("failed to create package: %w", err)
	}
	pkg.CreatedAt = row.CreatedAt
	return nil
}

// FindPackageByID implements domain.ServiceRepository
func (r *ServiceRepositoryImpl) FindPackageByID(ctx context.Context, id uuid.UUID) (*domain.ServicePackage, error) {
	var row DBPackage
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPackageNotFound
		}
		return nil, fmt.Errorf("failed to find package: %w", err)
	}
	return packageToDomain(&row), nil
}

// ListPackages implements domain.ServiceRepository
func (r *ServiceRepositoryImpl) ListPackages(ctx context.Context, serviceID uuid.UUID) ([]domain.ServicePackage, error) {
	var rows []DBPackage
	if err := r.db.WithContext(ctx).Where("service_id = ?", serviceID).Order("price").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}
	pkgs := make([]domain.ServicePackage, 0, len(rows))
	for i := range rows {
		pkgs = append(pkgs, *packageToDomain(&rows[i]))
	}
	return pkgs, nil
}

func serviceToDB(s *domain.Service) *DBService {
	return &DBService{
		ID:              s.ID,
		VendorID:        s.VendorID,
		CategoryID:      s.CategoryID,
		Name:            s.Name,
		Description:     s.Description,
		Price:           s.Price,
		DurationMinutes: s.DurationMinutes,
		IsActive:        s.IsActive,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

func serviceToDomain(row *DBService) *domain.Service {
	return &domain.Service{
		ID:              row.ID,
		VendorID:        row.VendorID,
		CategoryID:      row.CategoryID,
		Name:            row.Name,
		Description:     row.Description,
		Price:           row.Price,
		DurationMinutes: row.DurationMinutes,
		IsActive:        row.IsActive,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
}

func packageToDomain(row *DBPackage) *domain.ServicePackage {
	return &domain.ServicePackage{
		ID:          row.ID,
		ServiceID:   row.ServiceID,
		Name:        row.Name,
		Description: row.Description,
		Price:       row.Price,
		CreatedAt:   row.CreatedAt,
	}
}
