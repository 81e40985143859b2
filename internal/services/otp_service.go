package services

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"
	"github.com/vinay2003/Airion-backend-sub001/domain"
)

// OTPServiceImpl implements domain.OTPService. Codes live in the otp table;
// the resend throttle and attempt counter live in Redis.
type OTPServiceImpl struct {
	otpRepo         domain.OtpRepository
	notificationSvc domain.NotificationService
	redisClient     *redis.Client
	clock           clockwork.Clock
	config          OTPConfig
}

type OTPConfig struct {
	Length       int
	TTL          time.Duration
	MaxAttempts  int
	ResendWindow time.Duration
}

// NewOTPService creates a new OTP service
func NewOTPService(otpRepo domain.OtpRepository, notificationSvc domain.NotificationService, redisClient *redis.Client, clock clockwork.Clock, config OTPConfig) domain.OTPService {
	return &OTPServiceImpl{
		otpRepo:         otpRepo,
		notificationSvc: notificationSvc,
		redisClient:     redisClient,
		clock:           clock,
		config:          config,
	}
}

func resendKey(phone string) string   { return "otp:res:" + phone }
func attemptsKey(phone string) string { return "otp:att:" + phone }

// Generate implements domain.OTPService
func (s *OTPServiceImpl) Generate(ctx context.Context, phone string) (*domain.Otp, error) {
	canResend, waitTime, err := s.CanResend(ctx, phone)
	if err != nil {
		return nil, err
	}
	if !canResend {
		return nil, fmt.Errorf("%w: wait %d seconds", domain.ErrOTPResendLimit, waitTime)
	}

	code, err := s.generateSecureCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate OTP code: %w", err)
	}

	otp := &domain.Otp{
		Phone:     phone,
		Otp:       code,
		CreatedAt: s.clock.Now(),
	}
	if err := s.otpRepo.Replace(ctx, otp); err != nil {
		return nil, fmt.Errorf("failed to store OTP: %w", err)
	}

	// A fresh code gets a fresh attempt budget
	pipe := s.redisClient.TxPipeline()
	pipe.Del(ctx, attemptsKey(phone))
	pipe.Set(ctx, resendKey(phone), 1, s.config.ResendWindow)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to set resend throttle: %w", err)
	}

	message := fmt.Sprintf("Your Airion verification code is %s. It expires in %d minutes.", code, int(s.config.TTL.Minutes()))
	if err := s.notificationSvc.SendSMS(phone, message); err != nil {
		// Clean up so the caller can retry immediately
		_ = s.otpRepo.DeleteByPhone(ctx, phone)
		s.redisClient.Del(ctx, resendKey(phone), attemptsKey(phone))
		return nil, fmt.Errorf("failed to send OTP SMS: %w", err)
	}

	return otp, nil
}

// Verify implements domain.OTPService. Only checks against an issued code
// count as attempts.
func (s *OTPServiceImpl) Verify(ctx context.Context, phone, code string) (bool, error) {
	stored, err := s.otpRepo.FindByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, domain.ErrOTPNotFound) {
			return false, domain.ErrOTPNotFound
		}
		return false, fmt.Errorf("failed to load OTP: %w", err)
	}

	var incr *redis.IntCmd
	_, err = s.redisClient.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, attemptsKey(phone))
		pipe.ExpireNX(ctx, attemptsKey(phone), s.config.TTL)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to count attempt: %w", err)
	}
	if incr.Val() > int64(s.config.MaxAttempts) {
		s.discard(ctx, phone)
		return false, domain.ErrOTPMaxAttempts
	}

	if s.clock.Now().After(stored.CreatedAt.Add(s.config.TTL)) {
		s.discard(ctx, phone)
		return false, domain.ErrOTPExpired
	}

	if subtle.ConstantTimeCompare([]byte(stored.Otp), []byte(code)) != 1 {
		return false, domain.ErrOTPInvalid
	}

	s.discard(ctx, phone)
	return true, nil
}

func (s *OTPServiceImpl) discard(ctx context.Context, phone string) {
	_ = s.otpRepo.DeleteByPhone(ctx, phone)
	s.redisClient.Del(ctx, attemptsKey(phone))
}

// CanResend implements domain.OTPService with Redis-based throttling
func (s *OTPServiceImpl) CanResend(ctx context.Context, phone string) (bool, int64, error) {
	ttl, err := s.redisClient.TTL(ctx, resendKey(phone)).Result()
	if err != nil {
		return false, 0, fmt.Errorf("failed to check resend TTL: %w", err)
	}

	// If TTL <= 0, key doesn't exist or has expired - can resend
	if ttl <= 0 {
		return true, 0, nil
	}

	return false, int64(ttl.Seconds()), nil
}

// generateSecureCode generates a cryptographically secure OTP code
func (s *OTPServiceImpl) generateSecureCode() (string, error) {
	digits := make([]byte, s.config.Length)
	for i := range digits {
		num, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit: %w", err)
		}
		digits[i] = byte('0' + num.Int64())
	}
	return string(digits), nil
}
