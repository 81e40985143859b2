package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/vinay2003/Airion-backend-sub001/domain"
)

// Token types carried in the typ claim
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

type claims struct {
	Role      string `json:"role"`
	SessionID string `json:"session_id"`
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

// JWTServiceImpl implements domain.TokenService
type JWTServiceImpl struct {
	secretKey       []byte
	issuer          string
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
	clock           clockwork.Clock
	parser          *jwt.Parser
}

// NewJWTService creates a new JWT service
func NewJWTService(secretKey, issuer string, accessTTL, refreshTTL time.Duration, clock clockwork.Clock) domain.TokenService {
	return &JWTServiceImpl{
		secretKey:       []byte(secretKey),
		issuer:          issuer,
		accessTokenTTL:  accessTTL,
		refreshTokenTTL: refreshTTL,
		clock:           clock,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(issuer),
			jwt.WithExpirationRequired(),
			jwt.WithTimeFunc(clock.Now),
		),
	}
}

// AccessTTL implements domain.TokenService
func (j *JWTServiceImpl) AccessTTL() time.Duration { return j.accessTokenTTL }

// RefreshTTL implements domain.TokenService
func (j *JWTServiceImpl) RefreshTTL() time.Duration { return j.refreshTokenTTL }

// GenerateAccessToken implements domain.TokenService
func (j *JWTServiceImpl) GenerateAccessToken(userID uuid.UUID, role string, sessionID uuid.UUID) (string, error) {
	return j.sign(userID, role, sessionID, TokenTypeAccess, j.accessTokenTTL)
}

// GenerateRefreshToken implements domain.TokenService
func (j *JWTServiceImpl) GenerateRefreshToken(userID uuid.UUID, role string, sessionID uuid.UUID) (string, error) {
	return j.sign(userID, role, sessionID, TokenTypeRefresh, j.refreshTokenTTL)
}

func (j *JWTServiceImpl) sign(userID uuid.UUID, role string, sessionID uuid.UUID, typ string, ttl time.Duration) (string, error) {
	now := j.clock.Now()
	c := claims{
		Role:      role,
		SessionID: sessionID.String(),
		TokenType: typ,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			// unique per token so rotated refresh tokens never collide
			ID: uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(j.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", typ, err)
	}
	return signed, nil
}

// ValidateAccessToken implements domain.TokenService
func (j *JWTServiceImpl) ValidateAccessToken(tokenString string) (*domain.TokenClaims, error) {
	return j.validateToken(tokenString, TokenTypeAccess)
}

// ValidateRefreshToken implements domain.TokenService
func (j *JWTServiceImpl) ValidateRefreshToken(tokenString string) (*domain.TokenClaims, error) {
	return j.validateToken(tokenString, TokenTypeRefresh)
}

// validateToken validates a JWT token of the expected type and returns claims
func (j *JWTServiceImpl) validateToken(tokenString, wantType string) (*domain.TokenClaims, error) {
	var c claims
	_, err := j.parser.ParseWithClaims(tokenString, &c, func(*jwt.Token) (interface{}, error) {
		return j.secretKey, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, domain.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, domain.ErrTokenMalformed
		default:
			return nil, domain.ErrTokenInvalid
		}
	}

	if c.TokenType != wantType {
		return nil, domain.ErrTokenInvalid
	}

	userID, err := uuid.Parse(c.Subject)
	if err != nil {
		return nil, domain.ErrTokenMalformed
	}
	sessionID, err := uuid.Parse(c.SessionID)
	if err != nil {
		return nil, domain.ErrTokenMalformed
	}

	out := &domain.TokenClaims{
		UserID:    userID,
		Role:      c.Role,
		SessionID: sessionID,
		TokenType: c.TokenType,
	}
	if c.IssuedAt != nil {
		out.IssuedAt = c.IssuedAt.Unix()
	}
	if c.ExpiresAt != nil {
		out.ExpiresAt = c.ExpiresAt.Unix()
	}
	return out, nil
}
