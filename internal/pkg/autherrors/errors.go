package autherrors

import (
	"errors"
	"fmt"
	"time"
)

// Credential errors. ErrInvalidCredentials deliberately covers both the
// unknown-email and wrong-password cases so responses cannot be used to
// probe which accounts exist.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateEmail     = errors.New("an account with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotVerified        = errors.New("email address not verified")
)

// OTP challenge errors.
var (
	ErrOTPNotFound    = errors.New("otp challenge not found")
	ErrOTPExpired     = errors.New("otp challenge expired")
	ErrOTPInvalidCode = errors.New("otp code mismatch")
	ErrOTPConsumed    = errors.New("otp challenge already consumed")
	ErrOTPCooldown    = errors.New("otp resend cooldown active")
)

// Token errors.
var (
	ErrTokenExpired     = errors.New("token expired")
	ErrTokenMalformed   = errors.New("token malformed")
	ErrTokenInvalidKind = errors.New("token kind mismatch")
	ErrTokenSignature   = errors.New("token signature invalid")
)

// CooldownError carries the remaining cooldown so the transport layer
// can tell the client when to retry. Matches ErrOTPCooldown under
// errors.Is.
type CooldownError struct {
	RetryAfter time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("otp resend cooldown active, retry in %s", e.RetryAfter)
}

func (e *CooldownError) Unwrap() error { return ErrOTPCooldown }

// ErrSessionExpired is returned by the client once a refresh attempt has
// failed and the stored session has been cleared.
var ErrSessionExpired = errors.New("session expired, please login again")
