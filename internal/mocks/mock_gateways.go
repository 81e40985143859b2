package mocks

import (
	"context"
	"io"
	"sync"

	"github.com/google/uuid"
	"github.com/vinay2003/Airion-backend-sub001/domain"
)

// MockImageStorage implements domain.ImageStorage interface for testing
type MockImageStorage struct {
	UploadFunc func(ctx context.Context, keyPrefix string, image domain.Image) (string, error)
}

// NewMockImageStorage creates a new MockImageStorage with default behaviors
func NewMockImageStorage() *MockImageStorage {
	return &MockImageStorage{}
}

// Upload drains the image and returns a fake URL under keyPrefix
func (m *MockImageStorage) Upload(ctx context.Context, keyPrefix string, image domain.Image) (string, error) {
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, keyPrefix, image)
	}
	if image.Body != nil {
		_, _ = io.Copy(io.Discard, image.Body)
	}
	return "https://cdn.example.com/" + keyPrefix + "/logo.png", nil
}

// MockPaymentGateway implements domain.PaymentGateway interface for testing
type MockPaymentGateway struct {
	CreateIntentFunc func(ctx context.Context, bookingID uuid.UUID, amount float64) (*domain.PaymentIntent, error)
	ParseEventFunc   func(payload []byte, signature string) (*domain.PaymentEvent, bool, error)
}

// NewMockPaymentGateway creates a new MockPaymentGateway with default behaviors
func NewMockPaymentGateway() *MockPaymentGateway {
	return &MockPaymentGateway{}
}

// CreateIntent creates a fake payment intent
func (m *MockPaymentGateway) CreateIntent(ctx context.Context, bookingID uuid.UUID, amount float64) (*domain.PaymentIntent, error) {
	if m.CreateIntentFunc != nil {
		return m.CreateIntentFunc(ctx, bookingID, amount)
	}
	return &domain.PaymentIntent{ID: "pi_" + bookingID.String(), ClientSecret: "pi_secret_" + bookingID.String()}, nil
}

// ParseEvent verifies and decodes a webhook
func (m *MockPaymentGateway) ParseEvent(payload []byte, signature string) (*domain.PaymentEvent, bool, error) {
	if m.ParseEventFunc != nil {
		return m.ParseEventFunc(payload, signature)
	}
	return nil, false, nil
}

// MockOAuthProvider implements domain.OAuthProvider interface for testing
type MockOAuthProvider struct {
	ProviderName string
	ExchangeFunc func(ctx context.Context, code string) (*domain.SocialProfile, error)
}

// NewMockOAuthProvider creates a new MockOAuthProvider with the given name
func NewMockOAuthProvider(name string) *MockOAuthProvider {
	return &MockOAuthProvider{ProviderName: name}
}

// Name returns the provider name
func (m *MockOAuthProvider) Name() string { return m.ProviderName }

// AuthCodeURL returns a fake consent URL carrying state
func (m *MockOAuthProvider) AuthCodeURL(state string) string {
	return "https://" + m.ProviderName + ".example.com/authorize?state=" + state
}

// Exchange trades a code for a profile
func (m *MockOAuthProvider) Exchange(ctx context.Context, code string) (*domain.SocialProfile, error) {
	if m.ExchangeFunc != nil {
		return m.ExchangeFunc(ctx, code)
	}
	return &domain.SocialProfile{Provider: m.ProviderName, ID: "social-" + code, Email: code + "@example.com", Name: "Social User"}, nil
}

// MockAuditLogger records audit events for assertions
type MockAuditLogger struct {
	mu     sync.Mutex
	Events []*domain.AuditEvent
}

// NewMockAuditLogger creates an empty MockAuditLogger
func NewMockAuditLogger() *MockAuditLogger {
	return &MockAuditLogger{}
}

// LogEvent records the event
func (m *MockAuditLogger) LogEvent(ctx context.Context, event *domain.AuditEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, event)
}

// Types returns the recorded event types in order
func (m *MockAuditLogger) Types() []domain.AuditEventType {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.AuditEventType, len(m.Events))
	for i, e := range m.Events {
		out[i] = e.EventType
	}
	return out
}

// Compile-time interface compliance verification
var (
	_ domain.ImageStorage   = (*MockImageStorage)(nil)
	_ domain.PaymentGateway = (*MockPaymentGateway)(nil)
	_ domain.OAuthProvider  = (*MockOAuthProvider)(nil)
	_ domain.AuditLogger    = (*MockAuditLogger)(nil)
)
