package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/vinay2003/Airion-backend-sub001/domain"
)

// Janitor purges dead sessions and stale OTP rows on a fixed interval.
type Janitor struct {
	Sessions         domain.SessionRepository
	Otps             domain.OtpRepository
	Clock            clockwork.Clock
	Logger           *slog.Logger
	Interval         time.Duration
	SessionRetention time.Duration
	OtpTTL           time.Duration
}

// Run sweeps once per Interval until ctx is done.
func (j *Janitor) Run(ctx context.Context) {
	if j.Interval <= 0 {
		return
	}
	ticker := j.Clock.NewTicker(j.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			j.Sweep(ctx)
		}
	}
}

// Sweep runs a single cleanup pass.
func (j *Janitor) Sweep(ctx context.Context) {
	now := j.Clock.Now()

	sessions, err := j.Sessions.DeleteExpired(ctx, now.Add(-j.SessionRetention))
	if err != nil {
		j.Logger.ErrorContext(ctx, "session cleanup failed", "error", err)
	}
	otps, err := j.Otps.DeleteOlderThan(ctx, now.Add(-j.OtpTTL))
	if err != nil {
		j.Logger.ErrorContext(ctx, "otp cleanup failed", "error", err)
	}
	if sessions > 0 || otps > 0 {
		j.Logger.InfoContext(ctx, "maintenance sweep", "sessions_deleted", sessions, "otps_deleted", otps)
	}
}
