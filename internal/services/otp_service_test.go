package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"
	"github.com/vinay2003/Airion-backend-sub001/domain"
	"github.com/vinay2003/Airion-backend-sub001/internal/mocks"
)

const testPhone = "+919876543210"

type otpFixture struct {
	svc     domain.OTPService
	repo    *mocks.MockOtpRepository
	stored  map[string]*domain.Otp
	notify  *mocks.MockNotificationService
	redis   *redis.Client
	mini    *miniredis.Miniredis
	clock   *clockwork.FakeClock
	sent    []string
}

// createOTPServiceForTest wires the OTP service to miniredis and a map-backed repository
func createOTPServiceForTest(t *testing.T) *otpFixture {
	t.Helper()

	mini := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mini.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	f := &otpFixture{
		repo:   mocks.NewMockOtpRepository(),
		stored: make(map[string]*domain.Otp),
		notify: mocks.NewMockNotificationService(),
		redis:  client,
		mini:   mini,
		clock:  clockwork.NewFakeClockAt(time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)),
	}
	f.repo.ReplaceFunc = func(ctx context.Context, otp *domain.Otp) error {
		f.stored[otp.Phone] = otp
		return nil
	}
	f.repo.FindByPhoneFunc = func(ctx context.Context, phone string) (*domain.Otp, error) {
		if otp, ok := f.stored[phone]; ok {
			return otp, nil
		}
		return nil, domain.ErrOTPNotFound
	}
	f.repo.DeleteByPhoneFunc = func(ctx context.Context, phone string) error {
		delete(f.stored, phone)
		return nil
	}
	f.notify.SendSMSFunc = func(to, message string) error {
		f.sent = append(f.sent, message)
		return nil
	}

	f.svc = NewOTPService(f.repo, f.notify, client, f.clock, createTestOTPConfig(t))
	return f
}

// createTestOTPConfig creates a test OTP configuration
func createTestOTPConfig(t *testing.T) OTPConfig {
	t.Helper()

	return OTPConfig{
		Length:       6,
		TTL:          5 * time.Minute,
		MaxAttempts:  3,
		ResendWindow: 60 * time.Second,
	}
}

func TestOTPServiceImpl_Generate(t *testing.T) {
	tests := []struct {
		name          string
		setup         func(*otpFixture)
		expectedError error
		validate      func(t *testing.T, f *otpFixture, otp *domain.Otp)
	}{
		{
			name: "successful OTP generation",
			validate: func(t *testing.T, f *otpFixture, otp *domain.Otp) {
				if otp == nil {
					t.Fatal("OTP is nil")
				}
				if len(otp.Otp) != 6 {
					t.Errorf("expected OTP code length 6, got %d", len(otp.Otp))
				}
				for _, c := range otp.Otp {
					if c < '0' || c > '9' {
						t.Errorf("OTP contains non-digit %q", c)
					}
				}
				if f.stored[testPhone] != otp {
					t.Error("OTP should be persisted for the phone")
				}
				if !f.mini.Exists("otp:res:" + testPhone) {
					t.Error("resend throttle key should exist")
				}
				if len(f.sent) != 1 {
					t.Fatalf("expected one SMS, got %d", len(f.sent))
				}
			},
		},
		{
			name: "resend throttled",
			setup: func(f *otpFixture) {
				_ = f.mini.Set("otp:res:"+testPhone, "1")
				f.mini.SetTTL("otp:res:"+testPhone, 45*time.Second)
			},
			expectedError: domain.ErrOTPResendLimit,
		},
		{
			name: "previous attempts reset",
			setup: func(f *otpFixture) {
				_ = f.mini.Set("otp:att:"+testPhone, "2")
			},
			validate: func(t *testing.T, f *otpFixture, otp *domain.Otp) {
				if f.mini.Exists("otp:att:" + testPhone) {
					t.Error("attempt counter should be cleared")
				}
			},
		},
		{
			name: "SMS failure cleans up",
			setup: func(f *otpFixture) {
				f.notify.SendSMSFunc = func(to, message string) error {
					return errors.New("twilio unavailable")
				}
			},
			expectedError: errors.New("failed to send OTP SMS: twilio unavailable"),
			validate: func(t *testing.T, f *otpFixture, otp *domain.Otp) {
				if _, ok := f.stored[testPhone]; ok {
					t.Error("OTP should be removed after send failure")
				}
				if f.mini.Exists("otp:res:" + testPhone) {
					t.Error("resend throttle should be removed after send failure")
				}
			},
		},
		{
			name: "repository failure",
			setup: func(f *otpFixture) {
				f.repo.ReplaceFunc = func(ctx context.Context, otp *domain.Otp) error {
					return errors.New("db down")
				}
			},
			expectedError: errors.New("failed to store OTP: db down"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := createOTPServiceForTest(t)
			if tt.setup != nil {
				tt.setup(f)
			}

			otp, err := f.svc.Generate(createTestContext(t), testPhone)

			if tt.expectedError != nil {
				if err == nil {
					t.Fatalf("expected error %v, got nil", tt.expectedError)
				}
				if !errors.Is(err, tt.expectedError) && err.Error() != tt.expectedError.Error() {
					t.Fatalf("expected error %v, got %v", tt.expectedError, err)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.validate != nil {
				tt.validate(t, f, otp)
			}
		})
	}
}

func TestOTPServiceImpl_Verify(t *testing.T) {
	tests := []struct {
		name          string
		code          string
		setup         func(t *testing.T, f *otpFixture) string
		expectedValid bool
		expectedError error
	}{
		{
			name: "correct code",
			setup: func(t *testing.T, f *otpFixture) string {
				otp, err := f.svc.Generate(createTestContext(t), testPhone)
				if err != nil {
					t.Fatal(err)
				}
				return otp.Otp
			},
			expectedValid: true,
		},
		{
			name: "wrong code",
			code: "000000",
			setup: func(t *testing.T, f *otpFixture) string {
				f.stored[testPhone] = &domain.Otp{Phone: testPhone, Otp: "123456", CreatedAt: f.clock.Now()}
				return ""
			},
			expectedError: domain.ErrOTPInvalid,
		},
		{
			name:          "no OTP issued",
			code:          "123456",
			expectedError: domain.ErrOTPNotFound,
		},
		{
			name: "expired code",
			setup: func(t *testing.T, f *otpFixture) string {
				f.stored[testPhone] = &domain.Otp{Phone: testPhone, Otp: "123456", CreatedAt: f.clock.Now()}
				f.clock.Advance(5*time.Minute + time.Second)
				return "123456"
			},
			expectedError: domain.ErrOTPExpired,
		},
		{
			name: "max attempts exceeded",
			setup: func(t *testing.T, f *otpFixture) string {
				f.stored[testPhone] = &domain.Otp{Phone: testPhone, Otp: "123456", CreatedAt: f.clock.Now()}
				_ = f.mini.Set("otp:att:"+testPhone, "3")
				return "123456"
			},
			expectedError: domain.ErrOTPMaxAttempts,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := createOTPServiceForTest(t)
			code := tt.code
			if tt.setup != nil {
				if c := tt.setup(t, f); c != "" {
					code = c
				}
			}

			valid, err := f.svc.Verify(createTestContext(t), testPhone, code)

			if !errors.Is(err, tt.expectedError) {
				t.Fatalf("expected error %v, got %v", tt.expectedError, err)
			}
			if valid != tt.expectedValid {
				t.Errorf("expected valid=%v, got %v", tt.expectedValid, valid)
			}
		})
	}
}

func TestOTPServiceImpl_Verify_ConsumesCode(t *testing.T) {
	f := createOTPServiceForTest(t)
	ctx := createTestContext(t)
	otp, err := f.svc.Generate(ctx, testPhone)
	if err != nil {
		t.Fatal(err)
	}

	if ok, err := f.svc.Verify(ctx, testPhone, otp.Otp); !ok || err != nil {
		t.Fatalf("first verify: ok=%v err=%v", ok, err)
	}
	if _, err := f.svc.Verify(ctx, testPhone, otp.Otp); !errors.Is(err, domain.ErrOTPNotFound) {
		t.Fatalf("second verify should find no code, got %v", err)
	}
}

func TestOTPServiceImpl_Verify_LockoutDeletesCode(t *testing.T) {
	f := createOTPServiceForTest(t)
	ctx := createTestContext(t)
	f.stored[testPhone] = &domain.Otp{Phone: testPhone, Otp: "123456", CreatedAt: f.clock.Now()}

	for i := 0; i < 3; i++ {
		if _, err := f.svc.Verify(ctx, testPhone, "999999"); !errors.Is(err, domain.ErrOTPInvalid) {
			t.Fatalf("attempt %d: expected invalid, got %v", i+1, err)
		}
	}
	if _, err := f.svc.Verify(ctx, testPhone, "123456"); !errors.Is(err, domain.ErrOTPMaxAttempts) {
		t.Fatalf("expected max attempts, got %v", err)
	}
	if _, ok := f.stored[testPhone]; ok {
		t.Error("code should be deleted once attempts are exhausted")
	}
}

func TestOTPServiceImpl_Verify_AttemptCounter(t *testing.T) {
	f := createOTPServiceForTest(t)
	ctx := createTestContext(t)

	if _, err := f.svc.Verify(ctx, testPhone, "123456"); !errors.Is(err, domain.ErrOTPNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if f.mini.Exists("otp:att:" + testPhone) {
		t.Error("verifying without an issued code must not count an attempt")
	}

	f.stored[testPhone] = &domain.Otp{Phone: testPhone, Otp: "123456", CreatedAt: f.clock.Now()}
	if _, err := f.svc.Verify(ctx, testPhone, "999999"); !errors.Is(err, domain.ErrOTPInvalid) {
		t.Fatalf("expected invalid, got %v", err)
	}
	if got, _ := f.mini.Get("otp:att:" + testPhone); got != "1" {
		t.Errorf("expected one attempt, got %q", got)
	}
	if ttl := f.mini.TTL("otp:att:" + testPhone); ttl != 5*time.Minute {
		t.Errorf("expected attempt counter to expire with the code, ttl=%v", ttl)
	}

	f.mini.FastForward(time.Minute)
	if _, err := f.svc.Verify(ctx, testPhone, "999999"); !errors.Is(err, domain.ErrOTPInvalid) {
		t.Fatalf("expected invalid, got %v", err)
	}
	if ttl := f.mini.TTL("otp:att:" + testPhone); ttl != 4*time.Minute {
		t.Errorf("later attempts must not extend the window, ttl=%v", ttl)
	}
}

func TestOTPServiceImpl_CanResend(t *testing.T) {
	f := createOTPServiceForTest(t)
	ctx := createTestContext(t)

	ok, wait, err := f.svc.CanResend(ctx, testPhone)
	if err != nil || !ok || wait != 0 {
		t.Fatalf("fresh phone: ok=%v wait=%d err=%v", ok, wait, err)
	}

	if _, err := f.svc.Generate(ctx, testPhone); err != nil {
		t.Fatal(err)
	}
	ok, wait, err = f.svc.CanResend(ctx, testPhone)
	if err != nil || ok || wait <= 0 || wait > 60 {
		t.Fatalf("after send: ok=%v wait=%d err=%v", ok, wait, err)
	}

	f.mini.FastForward(61 * time.Second)
	if ok, _, _ := f.svc.CanResend(ctx, testPhone); !ok {
		t.Error("resend should be allowed after the window")
	}
}
