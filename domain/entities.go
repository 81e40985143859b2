package domain

import (
	"time"

	"github.com/google/uuid"
)

// Roles known to the RBAC policies
const (
	RoleAdmin    = "admin"
	RoleVendor   = "vendor"
	RoleCustomer = "customer"
)

// User represents a marketplace account
type User struct {
	ID             uuid.UUID
	Email          string
	Phone          string
	Name           string
	PasswordHash   string
	Role           string
	IsActive       bool
	PhoneVerified  bool
	LastLoginAt    *time.Time
	LoginAttempts  int
	LockedUntil    *time.Time
	MFAEnabled     bool
	MFASecret      string
	SocialID       string
	SocialProvider string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsLocked reports whether the account is inside a lockout window at t.
func (u *User) IsLocked(t time.Time) bool {
	return u.LockedUntil != nil && u.LockedUntil.After(t)
}

// ClientInfo describes the device a session was opened from
type ClientInfo struct {
	IPAddress  string
	UserAgent  string
	DeviceName string
}

// Session is a refresh-token-backed login
type Session struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	TokenHash  string
	IPAddress  string
	UserAgent  string
	DeviceName string
	CreatedAt  time.Time
	ExpiresAt  time.Time
	LastUsedAt *time.Time
	RevokedAt  *time.Time
}

// Active reports whether the session can still be used at t.
func (s *Session) Active(t time.Time) bool {
	return s.RevokedAt == nil && s.ExpiresAt.After(t)
}

// Otp is a one-time password issued to a phone number
type Otp struct {
	ID        uuid.UUID
	Phone     string
	Otp       string
	CreatedAt time.Time
}

// AuthResult represents authentication outcome
type AuthResult struct {
	User         *User
	AccessToken  string
	RefreshToken string
	SessionID    uuid.UUID
	ExpiresIn    int64
	// MFAChallenge is set instead of tokens when a second factor is required.
	MFAChallenge string
}

// MFASetup carries a freshly generated TOTP secret awaiting confirmation
type MFASetup struct {
	Secret string
	URL    string
}

// SocialProfile is the identity returned by an OAuth provider
type SocialProfile struct {
	Provider string
	ID       string
	Email    string
	Name     string
}

// Vendor statuses
const (
	VendorPending  = "pending"
	VendorApproved = "approved"
	VendorRejected = "rejected"
)

// Vendor is a business offering services on the marketplace
type Vendor struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	BusinessName string
	Description  string
	Email        string
	Phone        string
	Address      string
	City         string
	LogoURL      string
	Status       string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Bookable reports whether customers may book the vendor.
func (v *Vendor) Bookable() bool {
	return v.Status == VendorApproved && v.IsActive
}

// VendorFilter narrows vendor listings
type VendorFilter struct {
	Status     string
	City       string
	ActiveOnly bool
	Limit      int
	Offset     int
}

// VendorStats aggregates vendor and booking counters for the admin panel
type VendorStats struct {
	Total         int64 `json:"total"`
	Pending       int64 `json:"pending"`
	Approved      int64 `json:"approved"`
	Rejected      int64 `json:"rejected"`
	Active        int64 `json:"active"`
	Inactive      int64 `json:"inactive"`
	TotalBookings int64 `json:"total_bookings"`
}

// Category groups services
type Category struct {
	ID          uuid.UUID
	Name        string
	Description string
	CreatedAt   time.Time
}

// Service is something a vendor sells
type Service struct {
	ID              uuid.UUID
	VendorID        uuid.UUID
	CategoryID      uuid.UUID
	Name            string
	Description     string
	Price           float64
	DurationMinutes int
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ServiceFilter narrows service listings
type ServiceFilter struct {
	VendorID   *uuid.UUID
	CategoryID *uuid.UUID
	ActiveOnly bool
	Limit      int
	Offset     int
}

// ServicePackage is a priced bundle of a service
type ServicePackage struct {
	ID          uuid.UUID
	ServiceID   uuid.UUID
	Name        string
	Description string
	Price       float64
	CreatedAt   time.Time
}

// Booking statuses
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingRejected  = "rejected"
	BookingCancelled = "cancelled"
	BookingCompleted = "completed"
)

// Payment methods
const (
	PaymentCash         = "cash"
	PaymentCard         = "card"
	PaymentUPI          = "upi"
	PaymentBankTransfer = "bank_transfer"
)

// Payment statuses
const (
	PaymentUnpaid  = "unpaid"
	PaymentPending = "pending"
	PaymentPaid    = "paid"
	PaymentFailed  = "failed"
)

// PaymentMethods lists the accepted payment methods.
var PaymentMethods = []string{PaymentCash, PaymentCard, PaymentUPI, PaymentBankTransfer}

// Booking is a customer's reservation of a vendor service
type Booking struct {
	ID               uuid.UUID
	CustomerID       uuid.UUID
	VendorID         uuid.UUID
	ServiceID        uuid.UUID
	PackageID        *uuid.UUID
	Amount           float64
	BookingDate      time.Time
	EventDate        time.Time
	Address          string
	PaymentMethod    string
	PaymentStatus    string
	PaymentReference string
	Status           string
	Notes            string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// BookingFilter narrows booking listings
type BookingFilter struct {
	CustomerID *uuid.UUID
	VendorID   *uuid.UUID
	Status     string
	Limit      int
	Offset     int
}

// BookingDraft is the validated input for a new booking
type BookingDraft struct {
	VendorID      uuid.UUID
	ServiceID     uuid.UUID
	PackageID     *uuid.UUID
	Amount        float64
	BookingDate   time.Time
	EventDate     time.Time
	Address       string
	PaymentMethod string
	Notes         string
}

// BookingCheckout is returned from booking creation
type BookingCheckout struct {
	Booking      *Booking
	ClientSecret string
}

// Actor is the authenticated caller of a service operation
type Actor struct {
	UserID uuid.UUID
	Role   string
}

// IsAdmin reports whether the actor has the admin role.
func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }
