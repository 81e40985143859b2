package domain

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Authentication errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrPhoneNotVerified   = errors.New("phone number not verified")
	ErrAccountLocked      = errors.New("account is temporarily locked")
	ErrRoleNotAllowed     = errors.New("role cannot be self-assigned")
)

// MFA errors
var (
	ErrMFAInvalidCode      = errors.New("invalid authentication code")
	ErrMFAAlreadyEnabled   = errors.New("mfa already enabled")
	ErrMFANotEnabled       = errors.New("mfa not enabled")
	ErrMFASetupNotFound    = errors.New("mfa setup not started or expired")
	ErrMFAChallengeInvalid = errors.New("mfa challenge invalid or expired")
)

// OAuth errors
var (
	ErrOAuthProviderUnknown = errors.New("unknown oauth provider")
	ErrOAuthStateInvalid    = errors.New("oauth state invalid or expired")
	ErrOAuthExchange        = errors.New("oauth code exchange failed")
)

// OTP errors
var (
	ErrOTPExpired     = errors.New("otp has expired")
	ErrOTPInvalid     = errors.New("invalid otp code")
	ErrOTPMaxAttempts = errors.New("maximum otp attempts exceeded")
	ErrOTPNotFound    = errors.New("otp not found")
	ErrOTPResendLimit = errors.New("otp resend limit exceeded")
)

// Token errors
var (
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("malformed token")
)

// Session errors
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session has expired")
	ErrSessionRevoked  = errors.New("session has been revoked")
	ErrTokenReuse      = errors.New("refresh token reuse detected")
)

// Authorization errors
var (
	ErrUnauthorized     = errors.New("unauthorized access")
	ErrForbidden        = errors.New("forbidden")
	ErrInsufficientRole = errors.New("insufficient role permissions")
	ErrResourceNotFound = errors.New("resource not found")
)

// Marketplace errors
var (
	ErrVendorNotFound      = errors.New("vendor not found")
	ErrVendorExists        = errors.New("user already owns a vendor profile")
	ErrVendorNotBookable   = errors.New("vendor is not accepting bookings")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrCategoryExists      = errors.New("category already exists")
	ErrServiceNotFound     = errors.New("service not found")
	ErrServiceInactive     = errors.New("service is not active")
	ErrServiceVendor       = errors.New("service does not belong to vendor")
	ErrPackageNotFound     = errors.New("package not found")
	ErrPackageService      = errors.New("package does not belong to service")
	ErrBookingNotFound     = errors.New("booking not found")
	ErrInvalidTransition   = errors.New("booking status transition not allowed")
	ErrInvalidEventDate    = errors.New("event date must not be before booking date")
	ErrStorageUnavailable  = errors.New("image storage not configured")
	ErrUnsupportedImage    = errors.New("unsupported image type")
	ErrImageTooLarge       = errors.New("image exceeds size limit")
	ErrPaymentsUnavailable = errors.New("card payments not configured")
	ErrWebhookSignature    = errors.New("invalid webhook signature")
)

// HTTPError is an error that already knows its HTTP status.
type HTTPError struct {
	Status  int
	Message string
	Cause   error
}

// NewHTTPError creates an HTTPError with the given status and message.
func NewHTTPError(status int, message string) *HTTPError {
	return &HTTPError{Status: status, Message: message}
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *HTTPError) Unwrap() error {
	return e.Cause
}

// WithCause attaches an underlying error (chainable).
func (e *HTTPError) WithCause(err error) *HTTPError {
	e.Cause = err
	return e
}

// BadRequest is a 400 HTTPError.
func BadRequest(message string) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, message)
}

// LockoutError reports a locked account and how long the lock lasts.
type LockoutError struct {
	RetryAfter time.Duration
}

func (e *LockoutError) Error() string {
	return fmt.Sprintf("%s, retry after %d seconds", ErrAccountLocked, int64(e.RetryAfter.Seconds()))
}

// Unwrap lets errors.Is match ErrAccountLocked.
func (e *LockoutError) Unwrap() error { return ErrAccountLocked }

var statusBySentinel = []struct {
	err    error
	status int
}{
	{ErrInvalidCredentials, http.StatusUnauthorized},
	{ErrTokenInvalid, http.StatusUnauthorized},
	{ErrTokenExpired, http.StatusUnauthorized},
	{ErrTokenMalformed, http.StatusUnauthorized},
	{ErrSessionNotFound, http.StatusUnauthorized},
	{ErrSessionExpired, http.StatusUnauthorized},
	{ErrSessionRevoked, http.StatusUnauthorized},
	{ErrTokenReuse, http.StatusUnauthorized},
	{ErrUnauthorized, http.StatusUnauthorized},
	{ErrMFAInvalidCode, http.StatusUnauthorized},
	{ErrMFAChallengeInvalid, http.StatusUnauthorized},
	{ErrUserInactive, http.StatusForbidden},
	{ErrPhoneNotVerified, http.StatusForbidden},
	{ErrForbidden, http.StatusForbidden},
	{ErrInsufficientRole, http.StatusForbidden},
	{ErrRoleNotAllowed, http.StatusForbidden},
	{ErrAccountLocked, http.StatusLocked},
	{ErrUserNotFound, http.StatusNotFound},
	{ErrResourceNotFound, http.StatusNotFound},
	{ErrVendorNotFound, http.StatusNotFound},
	{ErrCategoryNotFound, http.StatusNotFound},
	{ErrServiceNotFound, http.StatusNotFound},
	{ErrPackageNotFound, http.StatusNotFound},
	{ErrBookingNotFound, http.StatusNotFound},
	{ErrOTPNotFound, http.StatusNotFound},
	{ErrMFASetupNotFound, http.StatusNotFound},
	{ErrUserAlreadyExists, http.StatusConflict},
	{ErrVendorExists, http.StatusConflict},
	{ErrCategoryExists, http.StatusConflict},
	{ErrMFAAlreadyEnabled, http.StatusConflict},
	{ErrInvalidTransition, http.StatusConflict},
	{ErrOTPMaxAttempts, http.StatusTooManyRequests},
	{ErrOTPResendLimit, http.StatusTooManyRequests},
	{ErrImageTooLarge, http.StatusRequestEntityTooLarge},
	{ErrUnsupportedImage, http.StatusUnsupportedMediaType},
	{ErrStorageUnavailable, http.StatusServiceUnavailable},
	{ErrPaymentsUnavailable, http.StatusServiceUnavailable},
	{ErrOAuthExchange, http.StatusBadGateway},
	{ErrOTPExpired, http.StatusBadRequest},
	{ErrOTPInvalid, http.StatusBadRequest},
	{ErrMFANotEnabled, http.StatusBadRequest},
	{ErrOAuthProviderUnknown, http.StatusBadRequest},
	{ErrOAuthStateInvalid, http.StatusBadRequest},
	{ErrVendorNotBookable, http.StatusUnprocessableEntity},
	{ErrServiceInactive, http.StatusUnprocessableEntity},
	{ErrServiceVendor, http.StatusUnprocessableEntity},
	{ErrPackageService, http.StatusUnprocessableEntity},
	{ErrInvalidEventDate, http.StatusUnprocessableEntity},
	{ErrWebhookSignature, http.StatusBadRequest},
}

// Classify returns the HTTP status and client-facing message for err and
// whether err was recognised as an HTTP exception. Unrecognised errors map
// to 500 with a generic message.
func Classify(err error) (int, string, bool) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Status, httpErr.Message, true
	}
	var lockout *LockoutError
	if errors.As(err, &lockout) {
		return http.StatusLocked, lockout.Error(), true
	}
	for _, s := range statusBySentinel {
		if errors.Is(err, s.err) {
			return s.status, s.err.Error(), true
		}
	}
	return http.StatusInternalServerError, "internal server error", false
}
