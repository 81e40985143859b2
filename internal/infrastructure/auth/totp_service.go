package auth

import (
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
	"github.com/vinay2003/Airion-backend-sub001/domain"
)

// TOTPServiceImpl implements domain.TOTPService with RFC 6238 codes
type TOTPServiceImpl struct {
	issuer string
	clock  clockwork.Clock
}

// NewTOTPService creates a TOTP service issuing secrets under issuer
func NewTOTPService(issuer string, clock clockwork.Clock) domain.TOTPService {
	return &TOTPServiceImpl{issuer: issuer, clock: clock}
}

// Generate implements domain.TOTPService
func (s *TOTPServiceImpl) Generate(accountName string) (*domain.MFASetup, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.issuer,
		AccountName: accountName,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate totp secret: %w", err)
	}
	return &domain.MFASetup{Secret: key.Secret(), URL: key.URL()}, nil
}

// Validate implements domain.TOTPService
func (s *TOTPServiceImpl) Validate(secret, code string) bool {
	if secret == "" || code == "" {
		return false
	}
	ok, err := totp.ValidateCustom(code, secret, s.clock.Now(), totp.ValidateOpts{
		Period:    30,
		Skew:      1,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	return err == nil && ok
}
