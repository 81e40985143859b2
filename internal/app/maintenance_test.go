package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vinay2003/Airion-backend-sub001/internal/mocks"
)

var janitorNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newJanitor(clock clockwork.Clock) (*Janitor, *mocks.MockSessionRepository, *mocks.MockOtpRepository) {
	sessions := mocks.NewMockSessionRepository()
	otps := mocks.NewMockOtpRepository()
	return &Janitor{
		Sessions:         sessions,
		Otps:             otps,
		Clock:            clock,
		Logger:           slog.New(slog.NewTextHandler(io.Discard, nil)),
		Interval:         time.Hour,
		SessionRetention: 7 * 24 * time.Hour,
		OtpTTL:           5 * time.Minute,
	}, sessions, otps
}

func TestJanitor_SweepUsesRetentionCutoffs(t *testing.T) {
	j, sessions, otps := newJanitor(clockwork.NewFakeClockAt(janitorNow))

	var sessionCutoff, otpCutoff time.Time
	sessions.DeleteExpiredFunc = func(_ context.Context, cutoff time.Time) (int64, error) {
		sessionCutoff = cutoff
		return 3, nil
	}
	otps.DeleteOlderThanFunc = func(_ context.Context, cutoff time.Time) (int64, error) {
		otpCutoff = cutoff
		return 1, nil
	}

	j.Sweep(context.Background())

	assert.Equal(t, janitorNow.Add(-7*24*time.Hour), sessionCutoff)
	assert.Equal(t, janitorNow.Add(-5*time.Minute), otpCutoff)
}

func TestJanitor_SweepContinuesAfterSessionFailure(t *testing.T) {
	j, sessions, otps := newJanitor(clockwork.NewFakeClockAt(janitorNow))

	sessions.DeleteExpiredFunc = func(context.Context, time.Time) (int64, error) {
		return 0, errors.New("db down")
	}
	otpCalled := false
	otps.DeleteOlderThanFunc = func(context.Context, time.Time) (int64, error) {
		otpCalled = true
		return 0, nil
	}

	j.Sweep(context.Background())
	assert.True(t, otpCalled)
}

func TestJanitor_RunTicksUntilCancelled(t *testing.T) {
	clock := clockwork.NewFakeClockAt(janitorNow)
	j, sessions, _ := newJanitor(clock)

	swept := make(chan struct{}, 1)
	sessions.DeleteExpiredFunc = func(context.Context, time.Time) (int64, error) {
		swept <- struct{}{}
		return 0, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		j.Run(ctx)
		close(done)
	}()

	require.NoError(t, clock.BlockUntilContext(ctx, 1))
	clock.Advance(time.Hour)

	select {
	case <-swept:
	case <-time.After(time.Second):
		t.Fatal("janitor did not sweep after one interval")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop after cancel")
	}
}

func TestJanitor_ZeroIntervalDisablesRun(t *testing.T) {
	j, _, _ := newJanitor(clockwork.NewFakeClock())
	j.Interval = 0

	done := make(chan struct{})
	go func() {
		j.Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run should return immediately when the interval is zero")
	}
}
