package models

// RegisterRequest is the body of POST /auth/register/.
type RegisterRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	Name            string `json:"name,omitempty"`
}

// RegisterResponse acknowledges a registration and tells the client an OTP
// verification step is pending.
type RegisterResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	OTPRequired bool   `json:"otp_required"`
	Email       string `json:"email"`
}

// VerifyOTPRequest is shared by the signup and reset OTP verification
// endpoints.
type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// LoginRequest is the body of POST /auth/login/.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest is the body of POST /auth/refresh/.
type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

// RequestPasswordResetRequest is the body of POST /auth/request-password-reset/.
type RequestPasswordResetRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest is the body of POST /auth/reset-password/.
type ResetPasswordRequest struct {
	Email              string `json:"email"`
	OTP                string `json:"otp"`
	NewPassword        string `json:"new_password"`
	ConfirmNewPassword string `json:"confirm_new_password"`
}

// ResendOTPRequest is the body of POST /auth/resend-otp/.
type ResendOTPRequest struct {
	Email   string `json:"email"`
	OTPType string `json:"otp_type"`
}

// AuthResult is the usecase-level outcome of any operation that issues a
// token pair.
type AuthResult struct {
	User   *UserProfile
	Tokens *TokenPair
}

// AuthResponse returns the authenticated user and a fresh token pair.
type AuthResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	User    *UserProfile `json:"user"`
	Tokens  *TokenPair   `json:"tokens"`
}

// VerifyResetOTPResponse confirms a reset code without consuming it.
type VerifyResetOTPResponse struct {
	Success bool   `json:"success"`
	Valid   bool   `json:"valid"`
	Message string `json:"message"`
}

// MessageResponse is the generic success envelope.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// MeResponse wraps the profile of the authenticated user.
type MeResponse struct {
	Success bool         `json:"success"`
	User    *UserProfile `json:"user"`
}
