package audit

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/vinay2003/Airion-backend-sub001/domain"
)

// SlogLogger implements domain.AuditLogger by writing structured log records
type SlogLogger struct {
	logger *slog.Logger
}

// NewSlogLogger creates an audit logger on top of logger
func NewSlogLogger(logger *slog.Logger) domain.AuditLogger {
	return &SlogLogger{logger: logger.With("component", "audit")}
}

// LogEvent implements domain.AuditLogger
func (l *SlogLogger) LogEvent(ctx context.Context, event *domain.AuditEvent) {
	attrs := []slog.Attr{
		slog.String("event", string(event.EventType)),
		slog.Bool("success", event.Success),
		slog.Time("at", event.Timestamp),
	}
	if event.UserID != uuid.Nil {
		attrs = append(attrs, slog.String("user_id", event.UserID.String()))
	}
	for _, kv := range []struct{ k, v string }{
		{"email", event.Email},
		{"phone", event.Phone},
		{"ip", event.IPAddress},
		{"user_agent", event.UserAgent},
		{"session_id", event.SessionID},
		{"error", event.ErrorMsg},
	} {
		if kv.v != "" {
			attrs = append(attrs, slog.String(kv.k, kv.v))
		}
	}
	if len(event.Metadata) > 0 {
		meta := make([]any, 0, len(event.Metadata)*2)
		for k, v := range event.Metadata {
			meta = append(meta, k, v)
		}
		attrs = append(attrs, slog.Group("meta", meta...))
	}

	level := slog.LevelInfo
	if !event.Success {
		level = slog.LevelWarn
	}
	l.logger.LogAttrs(ctx, level, "audit", attrs...)
}
