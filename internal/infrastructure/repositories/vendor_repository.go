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

// VendorRepositoryImpl implements domain.VendorRepository using GORM
type VendorRepositoryImpl struct {
	db *gorm.DB
}

// DBVendor represents the database model for Vendor
type DBVendor struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	BusinessName string    `gorm:"size:255"`
	Description  string
	Email        string `gorm:"size:255"`
	Phone        string `gorm:"size:32"`
	Address      string
	City         string `gorm:"index;size:128"`
	LogoURL      string
	Status       string `gorm:"index;size:16"`
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName returns the table name for GORM
func (DBVendor) TableName() string {
	return "vendors"
}

// NewVendorRepository creates a new vendor repository
func NewVendorRepository(db *gorm.DB) domain.VendorRepository {
	return &VendorRepositoryImpl{db: db}
}

// Create implements domain.VendorRepository
func (r *VendorRepositoryImpl) Create(ctx context.Context, vendor *domain.Vendor) error {
	if vendor.ID == uuid.Nil {
		vendor.ID = uuid.New()
	}
	row := vendorToDB(vendor)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrVendorExists
		}
		return fmt.Errorf("failed to create vendor: %w", err)
	}
	vendor.CreatedAt, vendor.UpdatedAt = row.CreatedAt, row.UpdatedAt
	return nil
}

// FindByID implements domain.VendorRepository
func (r *VendorRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Vendor, error) {
	return r.findOne(ctx, "id = ?", id)
}

// FindByUserID implements domain.VendorRepository
func (r *VendorRepositoryImpl) FindByUserID(ctx context.Context, userID uuid.UUID) (*domain.Vendor, error) {
	return r.findOne(ctx, "user_id = ?", userID)
}

func (r *VendorRepositoryImpl) findOne(ctx context.Context, query string, args ...interface{}) (*domain.Vendor, error) {
	var row DBVendor
	if err := r.db.WithContext(ctx).Where(query, args...).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrVendorNotFound
		}
		return nil, fmt.Errorf("failed to find vendor: %w", err)
	}
	return vendorToDomain(&row), nil
}

// List implements domain.VendorRepository
func (r *VendorRepositoryImpl) List(ctx context.Context, filter domain.VendorFilter) ([]domain.Vendor, int64, error) {
	q := r.db.WithContext(ctx).Model(&DBVendor{})
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.City != "" {
		q = q.Where("LOWER(city) = LOWER(?)", filter.City)
	}
	if filter.ActiveOnly {
		q = q.Where("is_active = ?", true)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count vendors: %w", err)
	}

	var rows []DBVendor
	if err := paginate(q, filter.Limit, filter.Offset).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list vendors: %w", err)
	}
	vendors := make([]domain.Vendor, 0, len(rows))
	for i := range rows {
		vendors = append(vendors, *vendorToDomain(&rows[i]))
	}
	return vendors, total, nil
}

// Update implements domain.VendorRepository
func (r *VendorRepositoryImpl) Update(ctx context.Context, vendor *domain.Vendor, columns ...string) error {
	if len(columns) == 0 {
		return nil
	}
	row := vendorToDB(vendor)
	res := r.db.WithContext(ctx).Model(&DBVendor{ID: vendor.ID}).Select(columns).Updates(row)
	if res.Error != nil {
		return fmt.Errorf("failed to update vendor: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrVendorNotFound
	}
	return nil
}

// Delete implements domain.VendorRepository
func (r *VendorRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&DBVendor{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete vendor: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrVendorNotFound
	}
	return nil
}

// Stats implements domain.VendorRepository
func (r *VendorRepositoryImpl) Stats(ctx context.Context) (*domain.VendorStats, error) {
	var counts []struct {
		Status   string
		IsActive bool
		N        int64
	}
	err := r.db.WithContext(ctx).Model(&DBVendor{}).
		Select("status, is_active, COUNT(*) AS n").
		Group("status, is_active").
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate vendors: %w", err)
	}

	stats := &domain.VendorStats{}
	for _, c := range counts {
		stats.Total += c.N
		switch c.Status {
		case domain.VendorPending:
			stats.Pending += c.N
		case domain.VendorApproved:
			stats.Approved += c.N
		case domain.VendorRejected:
			stats.Rejected += c.N
		}
		if c.IsActive {
			stats.Active += c.N
		} else {
			stats.Inactive += c.N
		}
	}

	if err := r.db.WithContext(ctx).Model(&DBBooking{}).Count(&stats.TotalBookings).Error; err != nil {
		return nil, fmt.Errorf("failed to count bookings: %w", err)
	}
	return stats, nil
}

func paginate(q *gorm.DB, limit, offset int) *gorm.DB {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return q.Limit(limit).Offset(offset)
}

func vendorToDB(v *domain.Vendor) *DBVendor {
	return &DBVendor{
		ID:           v.ID,
		UserID:       v.UserID,
		BusinessName: v.BusinessName,
		Description:  v.Description,
		Email:        v.Email,
		Phone:        v.Phone,
		Address:      v.Address,
		City:         v.City,
		LogoURL:      v.LogoURL,
		Status:       v.Status,
		IsActive:     v.IsActive,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}

func vendorToDomain(row *DBVendor) *domain.Vendor {
	return &domain.Vendor{
		ID:           row.ID,
		UserID:       row.UserID,
		BusinessName: row.BusinessName,
		Description:  row.Description,
		Email:        row.Email,
		Phone:        row.Phone,
		Address:      row.Address,
		City:         row.City,
		LogoURL:      row.LogoURL,
		Status:       row.Status,
		IsActive:     row.IsActive,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}
