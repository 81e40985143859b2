package domain

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
)

// UserRepository defines user data access operations
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByPhone(ctx context.Context, phone string) (*User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindBySocial(ctx context.Context, provider, socialID string) (*User, error)
	Update(ctx context.Context, user *User) error
	ActivatePhone(ctx context.Context, userID uuid.UUID) error
	// IncrementLoginAttempts atomically bumps login_attempts and returns the new value.
	IncrementLoginAttempts(ctx context.Context, userID uuid.UUID) (int, error)
	// Lock sets locked_until and clears the attempt counter.
	Lock(ctx context.Context, userID uuid.UUID, until time.Time) error
	// RecordLogin stamps last_login_at and clears attempts and lock.
	RecordLogin(ctx context.Context, userID uuid.UUID, at time.Time) error
}

// SessionRepository defines session data access operations
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	FindByID(ctx context.Context, sessionID uuid.UUID) (*Session, error)
	ListActive(ctx context.Context, userID uuid.UUID, now time.Time) ([]Session, error)
	// Rotate swaps oldHash for newHash; ErrTokenReuse when oldHash is no longer current.
	Rotate(ctx context.Context, sessionID uuid.UUID, oldHash, newHash string, usedAt time.Time) error
	Revoke(ctx context.Context, sessionID uuid.UUID, at time.Time) error
	// RevokeAll revokes every live session of the user except keep (may be uuid.Nil).
	RevokeAll(ctx context.Context, userID uuid.UUID, keep uuid.UUID, at time.Time) (int64, error)
	// DeleteExpired removes sessions that expired or were revoked before cutoff.
	DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error)
}

// OtpRepository persists one-time passwords
type OtpRepository interface {
	// Replace stores otp as the only live code for its phone.
	Replace(ctx context.Context, otp *Otp) error
	FindByPhone(ctx context.Context, phone string) (*Otp, error)
	DeleteByPhone(ctx context.Context, phone string) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// VendorRepository defines vendor data access operations
type VendorRepository interface {
	Create(ctx context.Context, vendor *Vendor) error
	FindByID(ctx context.Context, id uuid.UUID) (*Vendor, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*Vendor, error)
	List(ctx context.Context, filter VendorFilter) ([]Vendor, int64, error)
	// Update writes only the named columns of vendor.
	Update(ctx context.Context, vendor *Vendor, columns ...string) error
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context) (*VendorStats, error)
}

// CategoryRepository defines category data access operations
type CategoryRepository interface {
	Create(ctx context.Context, category *Category) error
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	FindByName(ctx context.Context, name string) (*Category, error)
	List(ctx context.Context) ([]Category, error)
}

// ServiceRepository defines service and package data access operations
type ServiceRepository interface {
	Create(ctx context.Context, service *Service) error
	FindByID(ctx context.Context, id uuid.UUID) (*Service, error)
	List(ctx context.Context, filter ServiceFilter) ([]Service, int64, error)
	Update(ctx context.Context, service *Service) error
	Delete(ctx context.Context, id uuid.UUID) error
	CreatePackage(ctx context.Context, pkg *ServicePackage) error
	FindPackageByID(ctx context.Context, id uuid.UUID) (*ServicePackage, error)
	ListPackages(ctx context.Context, serviceID uuid.UUID) ([]ServicePackage, error)
}

// BookingRepository defines booking data access operations
type BookingRepository interface {
	Create(ctx context.Context, booking *Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	List(ctx context.Context, filter BookingFilter) ([]Booking, int64, error)
	// UpdateStatus moves the booking from one status to another and fails
	// with ErrInvalidTransition when it is no longer in status from.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to string, at time.Time) error
	// SetPaymentStatus updates the booking carrying the given payment reference.
	SetPaymentStatus(ctx context.Context, reference, status string) error
}

// EphemeralStore keeps short-lived single-use values (MFA challenges, OAuth state)
type EphemeralStore interface {
	Put(ctx context.Context, key, value string, ttl time.Duration) error
	// Take returns and deletes the value; ErrResourceNotFound when absent.
	Take(ctx context.Context, key string) (string, error)
}

// AuthService defines authentication business logic
type AuthService interface {
	Register(ctx context.Context, email, phone, password, name, role string) (*User, error)
	Login(ctx context.Context, email, password string, client ClientInfo) (*AuthResult, error)
	CompleteMFALogin(ctx context.Context, challenge, code string, client ClientInfo) (*AuthResult, error)
	SocialLogin(ctx context.Context, profile SocialProfile, client ClientInfo) (*AuthResult, error)
	RefreshToken(ctx context.Context, refreshToken string, client ClientInfo) (*AuthResult, error)
	Logout(ctx context.Context, sessionID uuid.UUID) error
	LogoutAll(ctx context.Context, userID uuid.UUID) error
	ListSessions(ctx context.Context, userID uuid.UUID) ([]Session, error)
	RevokeSession(ctx context.Context, userID, sessionID uuid.UUID) error
	VerifyPhone(ctx context.Context, phone, code string) (*User, error)
	ChangePassword(ctx context.Context, userID, sessionID uuid.UUID, oldPassword, newPassword string) error
	SetupMFA(ctx context.Context, userID uuid.UUID) (*MFASetup, error)
	EnableMFA(ctx context.Context, userID uuid.UUID, code string) error
	DisableMFA(ctx context.Context, userID uuid.UUID, code string) error
	GetUserProfile(ctx context.Context, userID uuid.UUID) (*User, error)
}

// OTPService defines OTP operations
type OTPService interface {
	Generate(ctx context.Context, phone string) (*Otp, error)
	Verify(ctx context.Context, phone, code string) (bool, error)
	CanResend(ctx context.Context, phone string) (bool, int64, error)
}

// VendorService defines vendor business logic
type VendorService interface {
	Create(ctx context.Context, actor Actor, ownerID *uuid.UUID, vendor *Vendor) (*Vendor, error)
	Get(ctx context.Context, actor *Actor, id uuid.UUID) (*Vendor, error)
	List(ctx context.Context, actor *Actor, filter VendorFilter) ([]Vendor, int64, error)
	Update(ctx context.Context, actor Actor, id uuid.UUID, patch VendorPatch) (*Vendor, error)
	Delete(ctx context.Context, actor Actor, id uuid.UUID) error
	SetStatus(ctx context.Context, id uuid.UUID, status string) (*Vendor, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) (*Vendor, error)
	Stats(ctx context.Context) (*VendorStats, error)
	UploadLogo(ctx context.Context, actor Actor, id uuid.UUID, image Image) (*Vendor, error)
}

// VendorPatch holds optional vendor field updates
type VendorPatch struct {
	BusinessName *string
	Description  *string
	Email        *string
	Phone        *string
	Address      *string
	City         *string
}

// ServicePatch holds optional service field updates
type ServicePatch struct {
	CategoryID      *uuid.UUID
	Name            *string
	Description     *string
	Price           *float64
	DurationMinutes *int
	IsActive        *bool
}

// CatalogService defines category, service and package business logic
type CatalogService interface {
	ListCategories(ctx context.Context) ([]Category, error)
	CreateCategory(ctx context.Context, name, description string) (*Category, error)
	CreateService(ctx context.Context, actor Actor, service *Service) (*Service, error)
	GetService(ctx context.Context, id uuid.UUID) (*Service, error)
	ListServices(ctx context.Context, actor *Actor, filter ServiceFilter) ([]Service, int64, error)
	UpdateService(ctx context.Context, actor Actor, id uuid.UUID, patch ServicePatch) (*Service, error)
	DeleteService(ctx context.Context, actor Actor, id uuid.UUID) error
	AddPackage(ctx context.Context, actor Actor, serviceID uuid.UUID, pkg *ServicePackage) (*ServicePackage, error)
	ListPackages(ctx context.Context, serviceID uuid.UUID) ([]ServicePackage, error)
}

// BookingService defines booking business logic
type BookingService interface {
	Create(ctx context.Context, actor Actor, draft BookingDraft) (*BookingCheckout, error)
	Get(ctx context.Context, actor Actor, id uuid.UUID) (*Booking, error)
	List(ctx context.Context, actor Actor, filter BookingFilter) ([]Booking, int64, error)
	ListForUser(ctx context.Context, userID uuid.UUID, filter BookingFilter) ([]Booking, int64, error)
	Transition(ctx context.Context, actor Actor, id uuid.UUID, status string) (*Booking, error)
	HandlePaymentEvent(ctx context.Context, payload []byte, signature string) error
}

// PasswordService defines password operations
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenService defines token operations
type TokenService interface {
	GenerateAccessToken(userID uuid.UUID, role string, sessionID uuid.UUID) (string, error)
	GenerateRefreshToken(userID uuid.UUID, role string, sessionID uuid.UUID) (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
	ValidateRefreshToken(token string) (*TokenClaims, error)
	AccessTTL() time.Duration
	RefreshTTL() time.Duration
}

// TOTPService generates and validates time-based one-time codes
type TOTPService interface {
	Generate(accountName string) (*MFASetup, error)
	Validate(secret, code string) bool
}

// NotificationService defines notification operations
type NotificationService interface {
	SendSMS(to, message string) error
	SendEmail(to, subject, body string) error
}

// Image is an uploaded image payload
type Image struct {
	Body        io.Reader
	Size        int64
	ContentType string
}

// ImageStorage stores images and returns their public URL
type ImageStorage interface {
	Upload(ctx context.Context, keyPrefix string, image Image) (string, error)
}

// PaymentIntent is the gateway's handle for a pending card payment
type PaymentIntent struct {
	ID           string
	ClientSecret string
}

// PaymentEvent is a verified gateway notification
type PaymentEvent struct {
	Reference string
	Status    string
}

// PaymentGateway creates card payments and verifies gateway callbacks
type PaymentGateway interface {
	CreateIntent(ctx context.Context, bookingID uuid.UUID, amount float64) (*PaymentIntent, error)
	// ParseEvent verifies the payload signature; ok is false for irrelevant events.
	ParseEvent(payload []byte, signature string) (event *PaymentEvent, ok bool, err error)
}

// OAuthProvider drives an OAuth2 authorization-code login
type OAuthProvider interface {
	Name() string
	AuthCodeURL(state string) string
	// Exchange trades the callback code for the provider's user profile.
	Exchange(ctx context.Context, code string) (*SocialProfile, error)
}

// PolicyService defines authorization policy operations
type PolicyService interface {
	AddPolicy(role, resource, action string) error
	RemovePolicy(role, resource, action string) error
	CheckPermission(role, resource, action string) (bool, error)
	GetPolicies() [][]string
}

// TokenClaims represents JWT token claims
type TokenClaims struct {
	UserID    uuid.UUID `json:"user_id"`
	Role      string    `json:"role"`
	SessionID uuid.UUID `json:"session_id"`
	TokenType string    `json:"typ"`
	IssuedAt  int64     `json:"iat"`
	ExpiresAt int64     `json:"exp"`
}

// CasbinEnforcer interface defines the methods we need from Casbin enforcer
type CasbinEnforcer interface {
	AddPolicy(params ...interface{}) (bool, error)
	RemovePolicy(params ...interface{}) (bool, error)
	Enforce(rvals ...interface{}) (bool, error)
	GetPolicy() ([][]string, error)
	SavePolicy() error
}
