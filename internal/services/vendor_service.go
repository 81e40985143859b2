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

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// pageBounds clamps a requested page to sane limits
func pageBounds(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// VendorServiceImpl implements domain.VendorService
type VendorServiceImpl struct {
	vendorRepo domain.VendorRepository
	storage    domain.ImageStorage
	audit      domain.AuditLogger
	clock      clockwork.Clock
}

// NewVendorService creates a new vendor service. storage may be nil, in
// which case logo uploads fail with domain.ErrStorageUnavailable.
func NewVendorService(vendorRepo domain.VendorRepository, storage domain.ImageStorage, audit domain.AuditLogger, clock clockwork.Clock) domain.VendorService {
	return &VendorServiceImpl{
		vendorRepo: vendorRepo,
		storage:    storage,
		audit:      audit,
		clock:      clock,
	}
}

// Create implements domain.VendorService. Vendors register themselves;
// admins may create a profile on behalf of ownerID.
func (s *VendorServiceImpl) Create(ctx context.Context, actor domain.Actor, ownerID *uuid.UUID, vendor *domain.Vendor) (*domain.Vendor, error) {
	owner := actor.UserID
	switch {
	case actor.IsAdmin() && ownerID != nil:
		owner = *ownerID
	case actor.Role != domain.RoleVendor && !actor.IsAdmin():
		return nil, domain.ErrInsufficientRole
	}

	if _, err := s.vendorRepo.FindByUserID(ctx, owner); err == nil {
		return nil, domain.ErrVendorExists
	} else if !errors.Is(err, domain.ErrVendorNotFound) {
		return nil, fmt.Errorf("failed to look up vendor: %w", err)
	}

	now := s.clock.Now()
	vendor.ID = uuid.New()
	vendor.UserID = owner
	vendor.BusinessName = strings.TrimSpace(vendor.BusinessName)
	vendor.Status = domain.VendorPending
	vendor.IsActive = true
	vendor.CreatedAt = now
	vendor.UpdatedAt = now
	if err := s.vendorRepo.Create(ctx, vendor); err != nil {
		return nil, fmt.Errorf("failed to create vendor: %w", err)
	}
	return vendor, nil
}

// Get implements domain.VendorService. Vendors that are not bookable are
// visible only to their owner and admins.
func (s *VendorServiceImpl) Get(ctx context.Context, actor *domain.Actor, id uuid.UUID) (*domain.Vendor, error) {
	vendor, err := s.vendorRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !vendor.Bookable() && !canManageVendor(actor, vendor) {
		return nil, domain.ErrVendorNotFound
	}
	return vendor, nil
}

// List implements domain.VendorService
func (s *VendorServiceImpl) List(ctx context.Context, actor *domain.Actor, filter domain.VendorFilter) ([]domain.Vendor, int64, error) {
	if actor == nil || !actor.IsAdmin() {
		filter.Status = domain.VendorApproved
		filter.ActiveOnly = true
	}
	filter.Limit, filter.Offset = pageBounds(filter.Limit, filter.Offset)

	vendors, total, err := s.vendorRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list vendors: %w", err)
	}
	return vendors, total, nil
}

// Update implements domain.VendorService
func (s *VendorServiceImpl) Update(ctx context.Context, actor domain.Actor, id uuid.UUID, patch domain.VendorPatch) (*domain.Vendor, error) {
	vendor, err := s.ownedVendor(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	var columns []string
	if patch.BusinessName != nil {
		vendor.BusinessName = strings.TrimSpace(*patch.BusinessName)
		columns = append(columns, "business_name")
	}
	if patch.Description != nil {
		vendor.Description = *patch.Description
		columns = append(columns, "description")
	}
	if patch.Email != nil {
		vendor.Email = normalizeEmail(*patch.Email)
		columns = append(columns, "email")
	}
	if patch.Phone != nil {
		vendor.Phone = *patch.Phone
		columns = append(columns, "phone")
	}
	if patch.Address != nil {
		vendor.Address = *patch.Address
		columns = append(columns, "address")
	}
	if patch.City != nil {
		vendor.City = strings.TrimSpace(*patch.City)
		columns = append(columns, "city")
	}
	if len(columns) == 0 {
		return vendor, nil
	}
	return s.save(ctx, vendor, columns...)
}

// Delete implements domain.VendorService
func (s *VendorServiceImpl) Delete(ctx context.Context, actor domain.Actor, id uuid.UUID) error {
	if !actor.IsAdmin() {
		return domain.ErrInsufficientRole
	}
	if _, err := s.vendorRepo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.vendorRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete vendor: %w", err)
	}
	return nil
}

// SetStatus implements domain.VendorService
func (s *VendorServiceImpl) SetStatus(ctx context.Context, id uuid.UUID, status string) (*domain.Vendor, error) {
	switch status {
	case domain.VendorPending, domain.VendorApproved, domain.VendorRejected:
	default:
		return nil, domain.BadRequest("unknown vendor status " + status)
	}

	vendor, err := s.vendorRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	previous := vendor.Status
	vendor.Status = status
	vendor, err = s.save(ctx, vendor, "status")
	if err != nil {
		return nil, err
	}

	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.VendorStatusEvent, vendor.UserID).
		WithMetadata("vendor_id", vendor.ID.String()).
		WithMetadata("from", previous).WithMetadata("to", status))
	return vendor, nil
}

// SetActive implements domain.VendorService
func (s *VendorServiceImpl) SetActive(ctx context.Context, id uuid.UUID, active bool) (*domain.Vendor, error) {
	vendor, err := s.vendorRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	vendor.IsActive = active
	vendor, err = s.save(ctx, vendor, "is_active")
	if err != nil {
		return nil, err
	}

	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.VendorStatusEvent, vendor.UserID).
		WithMetadata("vendor_id", vendor.ID.String()).WithMetadata("active", active))
	return vendor, nil
}

// Stats implements domain.VendorService
func (s *VendorServiceImpl) Stats(ctx context.Context) (*domain.VendorStats, error) {
	stats, err := s.vendorRepo.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load vendor stats: %w", err)
	}
	return stats, nil
}

// UploadLogo implements domain.VendorService
func (s *VendorServiceImpl) UploadLogo(ctx context.Context, actor domain.Actor, id uuid.UUID, image domain.Image) (*domain.Vendor, error) {
	if s.storage == nil {
		return nil, domain.ErrStorageUnavailable
	}
	vendor, err := s.ownedVendor(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	url, err := s.storage.Upload(ctx, "vendors/"+vendor.ID.String(), image)
	if err != nil {
		return nil, fmt.Errorf("failed to upload logo: %w", err)
	}
	vendor.LogoURL = url
	return s.save(ctx, vendor, "logo_url")
}

// ownedVendor loads a vendor the actor owns or administers
func (s *VendorServiceImpl) ownedVendor(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Vendor, error) {
	vendor, err := s.vendorRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canManageVendor(&actor, vendor) {
		return nil, domain.ErrForbidden
	}
	return vendor, nil
}

// save writes the given columns and returns the row as stored.
func (s *VendorServiceImpl) save(ctx context.Context, vendor *domain.Vendor, columns ...string) (*domain.Vendor, error) {
	vendor.UpdatedAt = s.clock.Now()
	if err := s.vendorRepo.Update(ctx, vendor, append(columns, "updated_at")...); err != nil {
		return nil, fmt.Errorf("failed to update vendor: %w", err)
	}
	stored, err := s.vendorRepo.FindByID(ctx, vendor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload vendor: %w", err)
	}
	return stored, nil
}

func canManageVendor(actor *domain.Actor, vendor *domain.Vendor) bool {
	if actor == nil {
		return false
	}
	return actor.IsAdmin() || actor.UserID == vendor.UserID
}
