package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vinay2003/Airion-backend-sub001/domain"
)

func TestSlogLogger_LogEvent(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogLogger(slog.New(slog.NewJSONHandler(&buf, nil)))
	userID := uuid.New()

	event := domain.NewAuditEvent(domain.UserLoginFailureEvent, userID).
		WithEmail("a@example.com").
		WithClient(domain.ClientInfo{IPAddress: "10.0.0.1"}).
		WithMetadata("attempts", 3).
		WithError(errors.New("invalid credentials"))
	logger.LogEvent(context.Background(), event)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "WARN", record["level"])
	assert.Equal(t, "USER_LOGIN_FAILED", record["event"])
	assert.Equal(t, userID.String(), record["user_id"])
	assert.Equal(t, "a@example.com", record["email"])
	assert.Equal(t, "10.0.0.1", record["ip"])
	assert.Equal(t, "invalid credentials", record["error"])
	assert.Equal(t, float64(3), record["meta"].(map[string]any)["attempts"])
	assert.NotContains(t, record, "phone")
}

func TestSlogLogger_AnonymousEvent(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogLogger(slog.New(slog.NewJSONHandler(&buf, nil)))

	logger.LogEvent(context.Background(), domain.NewAuditEvent(domain.PhoneOTPRequestEvent, uuid.Nil).WithPhone("+15550001"))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "INFO", record["level"])
	assert.NotContains(t, record, "user_id")
	assert.Equal(t, "+15550001", record["phone"])
}
