package handlers

import (
	"time"

	"github.com/google/uuid"
	"github.com/vinay2003/Airion-backend-sub001/domain"
)

// CreateCategoryRequest adds a service category
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=80"`
	Description string `json:"description" binding:"max=500"`
}

// CreateServiceRequest adds a service to a vendor's catalog
type CreateServiceRequest struct {
	VendorID        string  `json:"vendor_id" binding:"required,uuid"`
	CategoryID      string  `json:"category_id" binding:"required,uuid"`
	Name            string  `json:"name" binding:"required,min=2,max=120"`
	Description     string  `json:"description" binding:"max=2000"`
	Price           float64 `json:"price" binding:"gte=0"`
	DurationMinutes int     `json:"duration_minutes" binding:"omitempty,min=1,max=1440"`
}

func (r CreateServiceRequest) toDomain() *domain.Service {
	return &domain.Service{
		VendorID:        uuid.MustParse(r.VendorID),
		CategoryID:      uuid.MustParse(r.CategoryID),
		Name:            r.Name,
		Description:     r.Description,
		Price:           r.Price,
		DurationMinutes: r.DurationMinutes,
	}
}

// UpdateServiceRequest patches a service
type UpdateServiceRequest struct {
	CategoryID      *string  `json:"category_id" binding:"omitempty,uuid"`
	Name            *string  `json:"name" binding:"omitempty,min=2,max=120"`
	Description     *string  `json:"description" binding:"omitempty,max=2000"`
	Price           *float64 `json:"price" binding:"omitempty,gte=0"`
	DurationMinutes *int     `json:"duration_minutes" binding:"omitempty,min=1,max=1440"`
	IsActive        *bool    `json:"is_active"`
}

func (r UpdateServiceRequest) toPatch() domain.ServicePatch {
	patch := domain.ServicePatch{
		Name:            r.Name,
		Description:     r.Description,
		Price:           r.Price,
		DurationMinutes: r.DurationMinutes,
		IsActive:        r.IsActive,
	}
	if r.CategoryID != nil {
		patch.CategoryID = optionalUUID(*r.CategoryID)
	}
	return patch
}

// ListServicesQuery filters the service listing
type ListServicesQuery struct {
	PageQuery
	VendorID   string `form:"vendor_id" binding:"omitempty,uuid"`
	CategoryID string `form:"category_id" binding:"omitempty,uuid"`
}

// CreatePackageRequest adds a priced package to a service
type CreatePackageRequest struct {
	Name        string  `json:"name" binding:"required,min=2,max=120"`
	Description string  `json:"description" binding:"max=2000"`
	Price       float64 `json:"price" binding:"gte=0"`
}

type categoryView struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func newCategoryView(c *domain.Category) categoryView {
	return categoryView{ID: c.ID, Name: c.Name, Description: c.Description, CreatedAt: c.CreatedAt}
}

type serviceView struct {
	ID              uuid.UUID `json:"id"`
	VendorID        uuid.UUID `json:"vendor_id"`
	CategoryID      uuid.UUID `json:"category_id"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	Price           float64   `json:"price"`
	DurationMinutes int       `json:"duration_minutes,omitempty"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func newServiceView(s *domain.Service) serviceView {
	return serviceView{
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

type packageView struct {
	ID          uuid.UUID `json:"id"`
	ServiceID   uuid.UUID `json:"service_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	CreatedAt   time.Time `json:"created_at"`
}

func newPackageView(p *domain.ServicePackage) packageView {
	return packageView{
		ID:          p.ID,
		ServiceID:   p.ServiceID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		CreatedAt:   p.CreatedAt,
	}
}
