package models

import "time"

// OTP purposes. Exactly one unconsumed challenge may exist per
// (email, purpose) pair at any time.
const (
	OTPPurposeSignup        = "signup"
	OTPPurposePasswordReset = "password_reset"
)

// ValidOTPPurpose reports whether s names a known OTP purpose.
func ValidOTPPurpose(s string) bool {
	return s == OTPPurposeSignup || s == OTPPurposePasswordReset
}

// OTPChallenge is a single-use, time-limited verification code scoped to
// an email address and a purpose.
type OTPChallenge struct {
	Email     string    `json:"email"`
	Purpose   string    `json:"purpose"`
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
	Consumed  bool      `json:"consumed"`
	Attempts  int       `json:"attempts"`
}

// OTPEmailEvent is the payload handed to the mailer collaborator.
// Delivery is fire-and-forget; flow state does not depend on it.
type OTPEmailEvent struct {
	Email         string `json:"email"`
	Purpose       string `json:"purpose"`
	Code          string `json:"code"`
	ExpiresInMins int    `json:"expires_in_minutes"`
}
