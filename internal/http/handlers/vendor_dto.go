package handlers

import (
	"time"

	"github.com/google/uuid"
	"github.com/vinay2003/Airion-backend-sub001/domain"
)

// CreateVendorRequest registers a vendor profile. UserID is honoured for admins only.
type CreateVendorRequest struct {
	UserID       string `json:"user_id" binding:"omitempty,uuid"`
	BusinessName string `json:"business_name" binding:"required,min=2,max=120"`
	Description  string `json:"description" binding:"max=2000"`
	Email        string `json:"email" binding:"omitempty,email"`
	Phone        string `json:"phone" binding:"omitempty,phone"`
	Address      string `json:"address" binding:"max=255"`
	City         string `json:"city" binding:"max=100"`
}

func (r CreateVendorRequest) toDomain() *domain.Vendor {
	return &domain.Vendor{
		BusinessName: r.BusinessName,
		Description:  r.Description,
		Email:        r.Email,
		Phone:        r.Phone,
		Address:      r.Address,
		City:         r.City,
	}
}

// UpdateVendorRequest patches a vendor profile
type UpdateVendorRequest struct {
	BusinessName *string `json:"business_name" binding:"omitempty,min=2,max=120"`
	Description  *string `json:"description" binding:"omitempty,max=2000"`
	Email        *string `json:"email" binding:"omitempty,email"`
	Phone        *string `json:"phone" binding:"omitempty,phone"`
	Address      *string `json:"address" binding:"omitempty,max=255"`
	City         *string `json:"city" binding:"omitempty,max=100"`
}

func (r UpdateVendorRequest) toPatch() domain.VendorPatch {
	return domain.VendorPatch{
		BusinessName: r.BusinessName,
		Description:  r.Description,
		Email:        r.Email,
		Phone:        r.Phone,
		Address:      r.Address,
		City:         r.City,
	}
}

// ListVendorsQuery filters the vendor listing
type ListVendorsQuery struct {
	PageQuery
	Status string `form:"status" binding:"omitempty,oneof=pending approved rejected"`
	City   string `form:"city" binding:"max=100"`
}

type vendorView struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	BusinessName string    `json:"business_name"`
	Description  string    `json:"description,omitempty"`
	Email        string    `json:"email,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Address      string    `json:"address,omitempty"`
	City         string    `json:"city,omitempty"`
	LogoURL      string    `json:"logo_url,omitempty"`
	Status       string    `json:"status"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func newVendorView(v *domain.Vendor) vendorView {
	return vendorView{
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

func newVendorViews(vendors []domain.Vendor) []vendorView {
	views := make([]vendorView, 0, len(vendors))
	for i := range vendors {
		views = append(views, newVendorView(&vendors[i]))
	}
	return views
}
