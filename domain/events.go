package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AuditEventType defines the type of audit event
type AuditEventType string

const (
	// Phone verification events
	PhoneOTPRequestEvent AuditEventType = "PHONE_OTP_REQUESTED"
	PhoneVerifiedEvent   AuditEventType = "PHONE_VERIFIED"

	// Authentication events
	UserLoginEvent        AuditEventType = "USER_LOGIN"
	UserLoginFailureEvent AuditEventType = "USER_LOGIN_FAILED"
	UserLockedEvent       AuditEventType = "USER_LOCKED"
	UserRegistrationEvent AuditEventType = "USER_REGISTERED"
	UserLogoutEvent       AuditEventType = "USER_LOGOUT"
	PasswordChangedEvent  AuditEventType = "PASSWORD_CHANGED"
	MFAEnabledEvent       AuditEventType = "MFA_ENABLED"
	MFADisabledEvent      AuditEventType = "MFA_DISABLED"
	TokenReuseEvent       AuditEventType = "REFRESH_TOKEN_REUSED"

	// Marketplace events
	VendorStatusEvent  AuditEventType = "VENDOR_STATUS_CHANGED"
	BookingStatusEvent AuditEventType = "BOOKING_STATUS_CHANGED"
)

// AuditEvent represents a business event that occurred in the system
type AuditEvent struct {
	EventType AuditEventType         `json:"event_type"`
	UserID    uuid.UUID              `json:"user_id"`
	Email     string                 `json:"email,omitempty"`
	Phone     string                 `json:"phone,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	IPAddress string                 `json:"ip_address,omitempty"`
	UserAgent string                 `json:"user_agent,omitempty"`
	SessionID string                 `json:"session_id,omitempty"`
	ErrorMsg  string                 `json:"error_msg,omitempty"`
	Success   bool                   `json:"success"`
}

// AuditLogger records audit events
type AuditLogger interface {
	LogEvent(ctx context.Context, event *AuditEvent)
}

// NewAuditEvent creates a new audit event with common fields populated
func NewAuditEvent(eventType AuditEventType, userID uuid.UUID) *AuditEvent {
	return &AuditEvent{
		EventType: eventType,
		UserID:    userID,
		Timestamp: time.Now().UTC(),
		Metadata:  make(map[string]interface{}),
		Success:   true,
	}
}

// WithError sets error information on the audit event
func (e *AuditEvent) WithError(err error) *AuditEvent {
	e.Success = false
	if err != nil {
		e.ErrorMsg = err.Error()
	}
	return e
}

// WithEmail sets the email field
func (e *AuditEvent) WithEmail(email string) *AuditEvent {
	e.Email = email
	return e
}

// WithPhone sets the phone field
func (e *AuditEvent) WithPhone(phone string) *AuditEvent {
	e.Phone = phone
	return e
}

// WithClient sets client context information
func (e *AuditEvent) WithClient(client ClientInfo) *AuditEvent {
	e.IPAddress = client.IPAddress
	e.UserAgent = client.UserAgent
	return e
}

// WithSession sets the session id
func (e *AuditEvent) WithSession(id uuid.UUID) *AuditEvent {
	if id != uuid.Nil {
		e.SessionID = id.String()
	}
	return e
}

// WithMetadata adds metadata to the event
func (e *AuditEvent) WithMetadata(key string, value interface{}) *AuditEvent {
	e.Metadata[key] = value
	return e
}

// NopAuditLogger discards events
type NopAuditLogger struct{}

// LogEvent implements AuditLogger
func (NopAuditLogger) LogEvent(context.Context, *AuditEvent) {}
