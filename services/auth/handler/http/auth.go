package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/adityarama/equipviz/internal/pkg/autherrors"
	"github.com/adityarama/equipviz/internal/pkg/logger"
	"github.com/adityarama/equipviz/internal/pkg/models"
	"github.com/adityarama/equipviz/internal/utils"
	"github.com/adityarama/equipviz/services/auth"
)

// AuthHandler handles HTTP requests for authentication operations
type AuthHandler struct {
	authUC auth.AuthUC
	cfg    *models.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authUC auth.AuthUC, cfg *models.Config) *AuthHandler {
	return &AuthHandler{
		authUC: authUC,
		cfg:    cfg,
	}
}

// Register handles account registration requests
func (h *AuthHandler) Register(c echo.Context) error {
	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	errs := utils.FieldErrors{}
	email := utils.NormalizeEmail(req.Email)
	if !utils.ValidEmail(email) {
		errs.Add("email", "Enter a valid email address.")
	}
	if len(req.Password) < utils.MinPasswordLength {
		errs.Add("password", "Password must be at least 8 characters long.")
	}
	if req.Password != req.ConfirmPassword {
		errs.Add("confirm_password", "Passwords do not match.")
	}
	if len(req.Name) > utils.MaxNameLength {
		errs.Add("name", "Name is too long.")
	}
	if len(errs) > 0 {
		return utils.ValidationErrorResponse(c, errs)
	}

	_, err := h.authUC.Register(c.Request().Context(), &req)
	if err != nil {
		if errors.Is(err, autherrors.ErrDuplicateEmail) {
			errs.Add("email", "An account with this email already exists.")
			return utils.ValidationErrorResponse(c, errs)
		}
		logger.Error("Registration failed", logger.Err(err))
		return utils.InternalServerErrorResponse(c, "Registration failed")
	}

	return c.JSON(http.StatusCreated, models.RegisterResponse{
		Success:     true,
		Message:     "Registration successful. Please check your email for the verification code.",
		OTPRequired: true,
		Email:       email,
	})
}

// VerifyOTP handles signup verification requests and logs the user in
// on success.
func (h *AuthHandler) VerifyOTP(c echo.Context) error {
	var req models.VerifyOTPRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}
	if errs := h.validateOTPRequest(req.Email, req.OTP); len(errs) > 0 {
		return utils.ValidationErrorResponse(c, errs)
	}

	result, err := h.authUC.VerifySignupOTP(c.Request().Context(), req.Email, req.OTP)
	if err != nil {
		if errors.Is(err, autherrors.ErrUserNotFound) {
			return utils.NotFoundResponse(c, "User not found.")
		}
		if handled, resp := otpErrorResponse(c, err); handled {
			return resp
		}
		logger.Error("Signup verification failed", logger.Err(err))
		return utils.InternalServerErrorResponse(c, "Verification failed")
	}

	return c.JSON(http.StatusOK, models.AuthResponse{
		Success: true,
		Message: "Email verified successfully.",
		User:    result.User,
		Tokens:  result.Tokens,
	})
}

// Login handles credential authentication requests
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	errs := utils.FieldErrors{}
	if utils.NormalizeEmail(req.Email) == "" {
		errs.Add("email", "This field is required.")
	}
	if req.Password == "" {
		errs.Add("password", "This field is required.")
	}
	if len(errs) > 0 {
		return utils.ValidationErrorResponse(c, errs)
	}

	result, err := h.authUC.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, autherrors.ErrInvalidCredentials):
			// Identical response for unknown email and wrong password.
			return utils.UnauthorizedResponse(c, "Invalid email or password.")
		case errors.Is(err, autherrors.ErrNotVerified):
			return utils.ErrorResponseHandler(c, http.StatusForbidden, "Please verify your email before logging in.")
		default:
			logger.Error("Login failed", logger.Err(err))
			return utils.InternalServerErrorResponse(c, "Login failed")
		}
	}

	return c.JSON(http.StatusOK, models.AuthResponse{
		Success: true,
		Message: "Login successful.",
		User:    result.User,
		Tokens:  result.Tokens,
	})
}

// Refresh exchanges a refresh token for a new token pair
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req models.RefreshRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}
	if req.Refresh == "" {
		return utils.BadRequestResponse(c, "Refresh token is required.")
	}

	result, err := h.authUC.Refresh(c.Request().Context(), req.Refresh)
	if err != nil {
		switch {
		case errors.Is(err, autherrors.ErrTokenExpired),
			errors.Is(err, autherrors.ErrTokenMalformed),
			errors.Is(err, autherrors.ErrTokenInvalidKind),
			errors.Is(err, autherrors.ErrTokenSignature),
			errors.Is(err, autherrors.ErrUserNotFound):
			return utils.UnauthorizedResponse(c, "Invalid or expired refresh token.")
		default:
			logger.Error("Token refresh failed", logger.Err(err))
			return utils.InternalServerErrorResponse(c, "Token refresh failed")
		}
	}

	return c.JSON(http.StatusOK, models.AuthResponse{
		Success: true,
		Message: "Token refreshed.",
		User:    result.User,
		Tokens:  result.Tokens,
	})
}

// RequestPasswordReset handles password reset initiation. The response
// is the same whether or not the account exists.
func (h *AuthHandler) RequestPasswordReset(c echo.Context) error {
	var req models.RequestPasswordResetRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}
	if !utils.ValidEmail(utils.NormalizeEmail(req.Email)) {
		errs := utils.FieldErrors{}
		errs.Add("email", "Enter a valid email address.")
		return utils.ValidationErrorResponse(c, errs)
	}

	if err := h.authUC.RequestPasswordReset(c.Request().Context(), req.Email); err != nil {
		logger.Error("Password reset request failed", logger.Err(err))
		return utils.InternalServerErrorResponse(c, "Password reset request failed")
	}

	return c.JSON(http.StatusOK, models.MessageResponse{
		Success: true,
		Message: "If an account exists with this email, you will receive a password reset code.",
	})
}

// VerifyResetOTP confirms a reset code without consuming it, so the
// client can collect the new password before calling ResetPassword.
func (h *AuthHandler) VerifyResetOTP(c echo.Context) error {
	var req models.VerifyOTPRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}
	if errs := h.validateOTPRequest(req.Email, req.OTP); len(errs) > 0 {
		return utils.ValidationErrorResponse(c, errs)
	}

	if err := h.authUC.VerifyResetOTP(c.Request().Context(), req.Email, req.OTP); err != nil {
		if handled, resp := otpErrorResponse(c, err); handled {
			return resp
		}
		logger.Error("Reset code verification failed", logger.Err(err))
		return utils.InternalServerErrorResponse(c, "Verification failed")
	}

	return c.JSON(http.StatusOK, models.VerifyResetOTPResponse{
		Success: true,
		Valid:   true,
		Message: "OTP is valid.",
	})
}

// ResetPassword consumes the reset code and sets a new password
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req models.ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	errs := utils.FieldErrors{}
	email := utils.NormalizeEmail(req.Email)
	if !utils.ValidEmail(email) {
		errs.Add("email", "Enter a valid email address.")
	}
	if !utils.ValidOTPCode(req.OTP, h.cfg.OTP.CodeLength) {
		errs.Add("otp", "Enter a valid OTP code.")
	}
	if len(req.NewPassword) < utils.MinPasswordLength {
		errs.Add("new_password", "Password must be at least 8 characters long.")
	}
	if req.NewPassword != req.ConfirmNewPassword {
		errs.Add("confirm_new_password", "Passwords do not match.")
	}
	if len(errs) > 0 {
		return utils.ValidationErrorResponse(c, errs)
	}

	if err := h.authUC.ResetPassword(c.Request().Context(), &req); err != nil {
		if errors.Is(err, autherrors.ErrUserNotFound) {
			return utils.NotFoundResponse(c, "User not found.")
		}
		if handled, resp := otpErrorResponse(c, err); handled {
			return resp
		}
		logger.Error("Password reset failed", logger.Err(err))
		return utils.InternalServerErrorResponse(c, "Password reset failed")
	}

	return c.JSON(http.StatusOK, models.MessageResponse{
		Success: true,
		Message: "Password reset successfully. You can now log in with your new password.",
	})
}

// ResendOTP reissues a verification or reset code
func (h *AuthHandler) ResendOTP(c echo.Context) error {
	var req models.ResendOTPRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}
	if !models.ValidOTPPurpose(req.OTPType) {
		return utils.BadRequestResponse(c, `Invalid OTP type. Use "signup" or "password_reset".`)
	}
	if !utils.ValidEmail(utils.NormalizeEmail(req.Email)) {
		errs := utils.FieldErrors{}
		errs.Add("email", "Enter a valid email address.")
		return utils.ValidationErrorResponse(c, errs)
	}

	if err := h.authUC.ResendOTP(c.Request().Context(), req.Email, req.OTPType); err != nil {
		if errors.Is(err, autherrors.ErrOTPCooldown) {
			return utils.TooManyRequestsResponse(c, "Please wait before requesting another OTP.")
		}
		logger.Error("OTP resend failed", logger.Err(err))
		return utils.InternalServerErrorResponse(c, "OTP resend failed")
	}

	return c.JSON(http.StatusOK, models.MessageResponse{
		Success: true,
		Message: "If an account exists with this email, a new OTP has been sent.",
	})
}

// Me returns the authenticated user's profile
func (h *AuthHandler) Me(c echo.Context) error {
	userID, ok := c.Get("user_id").(uuid.UUID)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	profile, err := h.authUC.Me(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, autherrors.ErrUserNotFound) {
			return utils.NotFoundResponse(c, "User not found.")
		}
		logger.Error("Failed to load profile", logger.Err(err))
		return utils.InternalServerErrorResponse(c, "Failed to load profile")
	}

	return c.JSON(http.StatusOK, models.MeResponse{
		Success: true,
		User:    profile,
	})
}

// validateOTPRequest checks the shared email+otp payload shape.
func (h *AuthHandler) validateOTPRequest(email, otp string) utils.FieldErrors {
	errs := utils.FieldErrors{}
	if !utils.ValidEmail(utils.NormalizeEmail(email)) {
		errs.Add("email", "Enter a valid email address.")
	}
	if !utils.ValidOTPCode(otp, h.cfg.OTP.CodeLength) {
		errs.Add("otp", "Enter a valid OTP code.")
	}
	return errs
}

// otpErrorResponse maps challenge errors onto responses. The bool
// reports whether err was challenge related and a response was written.
func otpErrorResponse(c echo.Context, err error) (bool, error) {
	switch {
	case errors.Is(err, autherrors.ErrOTPNotFound):
		return true, utils.BadRequestResponse(c, "No OTP found. Please request a new one.")
	case errors.Is(err, autherrors.ErrOTPExpired):
		return true, utils.BadRequestResponse(c, "OTP has expired. Please request a new one.")
	case errors.Is(err, autherrors.ErrOTPInvalidCode):
		return true, utils.BadRequestResponse(c, "Invalid OTP.")
	case errors.Is(err, autherrors.ErrOTPConsumed):
		return true, utils.BadRequestResponse(c, "OTP has already been used. Please request a new one.")
	case errors.Is(err, autherrors.ErrOTPCooldown):
		var cooldown *autherrors.CooldownError
		if errors.As(err, &cooldown) {
			secs := int((cooldown.RetryAfter + time.Second - 1) / time.Second)
			c.Response().Header().Set("Retry-After", strconv.Itoa(secs))
		}
		return true, utils.TooManyRequestsResponse(c, "Please wait before requesting another OTP.")
	default:
		return false, nil
	}
}
