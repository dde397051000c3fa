package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adityarama/equipviz/internal/pkg/autherrors"
	"github.com/adityarama/equipviz/internal/pkg/models"
	"github.com/adityarama/equipviz/services/auth/mocks"
)

func handlerTestConfig() *models.Config {
	cfg := &models.Config{}
	cfg.OTP.CodeLength = 6
	return cfg
}

func setupHandlerTest(t *testing.T) (*AuthHandler, *mocks.MockAuthUC) {
	ctrl := gomock.NewController(t)
	mockUC := mocks.NewMockAuthUC(ctrl)
	return NewAuthHandler(mockUC, handlerTestConfig()), mockUC
}

func doJSON(t *testing.T, handler echo.HandlerFunc, method, path, body string, setup ...func(echo.Context)) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	for _, fn := range setup {
		fn(c)
	}
	require.NoError(t, handler(c))
	return rec
}

func TestRegister_Success(t *testing.T) {
	h, mockUC := setupHandlerTest(t)

	mockUC.EXPECT().
		Register(gomock.Any(), gomock.Any()).
		Return(&models.User{ID: uuid.New(), Email: "mira@example.com"}, nil)

	body := `{"email":"mira@example.com","password":"s3cret-pass","confirm_password":"s3cret-pass","name":"Jane Soelistyo"}`
	rec := doJSON(t, h.Register, http.MethodPost, "/auth/register/", body)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp models.RegisterResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.True(t, resp.OTPRequired)
	assert.Equal(t, "mira@example.com", resp.Email)
	assert.Equal(t, "Registration successful. Please check your email for the verification code.", resp.Message)
}

func TestRegister_ValidationErrors(t *testing.T) {
	testCases := []struct {
		name  string
		body  string
		field string
	}{
		{
			name:  "Bad Email",
			body:  `{"email":"not-an-email","password":"s3cret-pass","confirm_password":"s3cret-pass"}`,
			field: "email",
		},
		{
			name:  "Short Password",
			body:  `{"email":"mira@example.com","password":"short","confirm_password":"short"}`,
			field: "password",
		},
		{
			name:  "Password Mismatch",
			body:  `{"email":"mira@example.com","password":"s3cret-pass","confirm_password":"different"}`,
			field: "confirm_password",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h, _ := setupHandlerTest(t)

			rec := doJSON(t, h.Register, http.MethodPost, "/auth/register/", tc.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var resp struct {
				Success bool                `json:"success"`
				Errors  map[string][]string `json:"errors"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			assert.Contains(t, resp.Errors, tc.field)
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	h, mockUC := setupHandlerTest(t)

	mockUC.EXPECT().
		Register(gomock.Any(), gomock.Any()).
		Return(nil, autherrors.ErrDuplicateEmail)

	body := `{"email":"taken@example.com","password":"s3cret-pass","confirm_password":"s3cret-pass"}`
	rec := doJSON(t, h.Register, http.MethodPost, "/auth/register/", body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "An account with this email already exists.")
}

func TestVerifyOTP_Success(t *testing.T) {
	h, mockUC := setupHandlerTest(t)
	userID := uuid.New()

	mockUC.EXPECT().
		VerifySignupOTP(gomock.Any(), "mira@example.com", "123456").
		Return(&models.AuthResult{
			User:   &models.UserProfile{ID: userID.String(), Email: "mira@example.com", Name: "Jane"},
			Tokens: &models.TokenPair{Access: "access-token", Refresh: "refresh-token"},
		}, nil)

	body := `{"email":"mira@example.com","otp":"123456"}`
	rec := doJSON(t, h.VerifyOTP, http.MethodPost, "/auth/verify-signup-otp/", body)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp models.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Email verified successfully.", resp.Message)
	require.NotNil(t, resp.Tokens)
	assert.Equal(t, "access-token", resp.Tokens.Access)
	assert.Equal(t, "refresh-token", resp.Tokens.Refresh)
}

func TestVerifyOTP_ChallengeErrors(t *testing.T) {
	testCases := []struct {
		name       string
		ucErr      error
		wantStatus int
		wantBody   string
	}{
		{"Expired", autherrors.ErrOTPExpired, http.StatusBadRequest, "OTP has expired. Please request a new one."},
		{"Wrong Code", autherrors.ErrOTPInvalidCode, http.StatusBadRequest, "Invalid OTP."},
		{"Already Used", autherrors.ErrOTPConsumed, http.StatusBadRequest, "OTP has already been used. Please request a new one."},
		{"Not Found", autherrors.ErrOTPNotFound, http.StatusBadRequest, "No OTP found. Please request a new one."},
		{"User Deleted", autherrors.ErrUserNotFound, http.StatusNotFound, "User not found."},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h, mockUC := setupHandlerTest(t)

			mockUC.EXPECT().
				VerifySignupOTP(gomock.Any(), "mira@example.com", "123456").
				Return(nil, tc.ucErr)

			body := `{"email":"mira@example.com","otp":"123456"}`
			rec := doJSON(t, h.VerifyOTP, http.MethodPost, "/auth/verify-signup-otp/", body)

			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.wantBody)
		})
	}
}

func TestVerifyOTP_BadCodeFormat(t *testing.T) {
	h, _ := setupHandlerTest(t)

	body := `{"email":"mira@example.com","otp":"12ab56"}`
	rec := doJSON(t, h.VerifyOTP, http.MethodPost, "/auth/verify-signup-otp/", body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "otp")
}

func TestLogin_Success(t *testing.T) {
	h, mockUC := setupHandlerTest(t)

	mockUC.EXPECT().
		Login(gomock.Any(), "mira@example.com", "s3cret-pass").
		Return(&models.AuthResult{
			User:   &models.UserProfile{ID: uuid.NewString(), Email: "mira@example.com", Name: "Jane"},
			Tokens: &models.TokenPair{Access: "access-token", Refresh: "refresh-token"},
		}, nil)

	body := `{"email":"mira@example.com","password":"s3cret-pass"}`
	rec := doJSON(t, h.Login, http.MethodPost, "/auth/login/", body)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp models.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.User)
	assert.Equal(t, "mira@example.com", resp.User.Email)
}

func TestLogin_IndistinguishableFailures(t *testing.T) {
	// An unknown email and a wrong password must produce byte-identical
	// responses.
	h1, mockUC1 := setupHandlerTest(t)
	mockUC1.EXPECT().
		Login(gomock.Any(), "ghost@example.com", "whatever").
		Return(nil, autherrors.ErrInvalidCredentials)
	rec1 := doJSON(t, h1.Login, http.MethodPost, "/auth/login/",
		`{"email":"ghost@example.com","password":"whatever"}`)

	h2, mockUC2 := setupHandlerTest(t)
	mockUC2.EXPECT().
		Login(gomock.Any(), "mira@example.com", "wrong-pass").
		Return(nil, autherrors.ErrInvalidCredentials)
	rec2 := doJSON(t, h2.Login, http.MethodPost, "/auth/login/",
		`{"email":"mira@example.com","password":"wrong-pass"}`)

	assert.Equal(t, http.StatusUnauthorized, rec1.Code)
	assert.Equal(t, rec1.Code, rec2.Code)
	assert.Equal(t, rec1.Body.String(), rec2.Body.String())
	assert.Contains(t, rec1.Body.String(), "Invalid email or password.")
}

func TestLogin_UnverifiedAccount(t *testing.T) {
	h, mockUC := setupHandlerTest(t)

	mockUC.EXPECT().
		Login(gomock.Any(), "pending@example.com", "s3cret-pass").
		Return(nil, autherrors.ErrNotVerified)

	body := `{"email":"pending@example.com","password":"s3cret-pass"}`
	rec := doJSON(t, h.Login, http.MethodPost, "/auth/login/", body)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Please verify your email before logging in.")
}

func TestRefresh_Success(t *testing.T) {
	h, mockUC := setupHandlerTest(t)

	mockUC.EXPECT().
		Refresh(gomock.Any(), "old-refresh-token").
		Return(&models.AuthResult{
			User:   &models.UserProfile{ID: uuid.NewString(), Email: "mira@example.com"},
			Tokens: &models.TokenPair{Access: "new-access", Refresh: "new-refresh"},
		}, nil)

	rec := doJSON(t, h.Refresh, http.MethodPost, "/auth/refresh/", `{"refresh":"old-refresh-token"}`)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp models.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "new-access", resp.Tokens.Access)
	assert.Equal(t, "new-refresh", resp.Tokens.Refresh)
}

func TestRefresh_InvalidToken(t *testing.T) {
	for _, ucErr := range []error{
		autherrors.ErrTokenExpired,
		autherrors.ErrTokenMalformed,
		autherrors.ErrTokenInvalidKind,
		autherrors.ErrTokenSignature,
		autherrors.ErrUserNotFound,
	} {
		h, mockUC := setupHandlerTest(t)
		mockUC.EXPECT().
			Refresh(gomock.Any(), "bad-token").
			Return(nil, ucErr)

		rec := doJSON(t, h.Refresh, http.MethodPost, "/auth/refresh/", `{"refresh":"bad-token"}`)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, ucErr.Error())
		assert.Contains(t, rec.Body.String(), "Invalid or expired refresh token.")
	}
}

func TestRefresh_MissingToken(t *testing.T) {
	h, _ := setupHandlerTest(t)

	rec := doJSON(t, h.Refresh, http.MethodPost, "/auth/refresh/", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRequestPasswordReset_AlwaysGeneric(t *testing.T) {
	h, mockUC := setupHandlerTest(t)

	mockUC.EXPECT().
		RequestPasswordReset(gomock.Any(), "anyone@example.com").
		Return(nil)

	rec := doJSON(t, h.RequestPasswordReset, http.MethodPost, "/auth/request-password-reset/",
		`{"email":"anyone@example.com"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "If an account exists with this email, you will receive a password reset code.")
}

func TestVerifyResetOTP_Valid(t *testing.T) {
	h, mockUC := setupHandlerTest(t)

	mockUC.EXPECT().
		VerifyResetOTP(gomock.Any(), "mira@example.com", "654321").
		Return(nil)

	rec := doJSON(t, h.VerifyResetOTP, http.MethodPost, "/auth/verify-reset-otp/",
		`{"email":"mira@example.com","otp":"654321"}`)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp models.VerifyResetOTPResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Valid)
}

func TestVerifyResetOTP_WrongCode(t *testing.T) {
	h, mockUC := setupHandlerTest(t)

	mockUC.EXPECT().
		VerifyResetOTP(gomock.Any(), "mira@example.com", "000000").
		Return(autherrors.ErrOTPInvalidCode)

	rec := doJSON(t, h.VerifyResetOTP, http.MethodPost, "/auth/verify-reset-otp/",
		`{"email":"mira@example.com","otp":"000000"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid OTP.")
}

func TestResetPassword_Success(t *testing.T) {
	h, mockUC := setupHandlerTest(t)

	mockUC.EXPECT().
		ResetPassword(gomock.Any(), gomock.Any()).
		Return(nil)

	body := `{"email":"mira@example.com","otp":"654321","new_password":"brand-new-pass","confirm_new_password":"brand-new-pass"}`
	rec := doJSON(t, h.ResetPassword, http.MethodPost, "/auth/reset-password/", body)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Password reset successfully. You can now log in with your new password.")
}

func TestResetPassword_PasswordMismatch(t *testing.T) {
	h, _ := setupHandlerTest(t)

	body := `{"email":"mira@example.com","otp":"654321","new_password":"brand-new-pass","confirm_new_password":"other"}`
	rec := doJSON(t, h.ResetPassword, http.MethodPost, "/auth/reset-password/", body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "confirm_new_password")
}

func TestResendOTP_InvalidType(t *testing.T) {
	h, _ := setupHandlerTest(t)

	rec := doJSON(t, h.ResendOTP, http.MethodPost, "/auth/resend-otp/",
		`{"email":"mira@example.com","otp_type":"magic"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `Invalid OTP type. Use \"signup\" or \"password_reset\".`)
}

func TestResendOTP_Success(t *testing.T) {
	h, mockUC := setupHandlerTest(t)

	mockUC.EXPECT().
		ResendOTP(gomock.Any(), "mira@example.com", models.OTPPurposeSignup).
		Return(nil)

	rec := doJSON(t, h.ResendOTP, http.MethodPost, "/auth/resend-otp/",
		`{"email":"mira@example.com","otp_type":"signup"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "If an account exists with this email, a new OTP has been sent.")
}

func TestResendOTP_Cooldown(t *testing.T) {
	h, mockUC := setupHandlerTest(t)

	mockUC.EXPECT().
		ResendOTP(gomock.Any(), "mira@example.com", models.OTPPurposePasswordReset).
		Return(autherrors.ErrOTPCooldown)

	rec := doJSON(t, h.ResendOTP, http.MethodPost, "/auth/resend-otp/",
		`{"email":"mira@example.com","otp_type":"password_reset"}`)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "Please wait before requesting another OTP.")
}

func TestResendOTP_CooldownRetryAfterHeader(t *testing.T) {
	h, mockUC := setupHandlerTest(t)

	mockUC.EXPECT().
		ResendOTP(gomock.Any(), "mira@example.com", models.OTPPurposeSignup).
		Return(&autherrors.CooldownError{RetryAfter: 42 * time.Second})

	rec := doJSON(t, h.ResendOTP, http.MethodPost, "/auth/resend-otp/",
		`{"email":"mira@example.com","otp_type":"signup"}`)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "42", rec.Header().Get("Retry-After"))
}

func TestMe_Success(t *testing.T) {
	h, mockUC := setupHandlerTest(t)
	userID := uuid.New()

	mockUC.EXPECT().
		Me(gomock.Any(), userID).
		Return(&models.UserProfile{ID: userID.String(), Email: "mira@example.com", Name: "Jane"}, nil)

	rec := doJSON(t, h.Me, http.MethodGet, "/auth/me/", "", func(c echo.Context) {
		c.Set("user_id", userID)
	})

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp models.MeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.User)
	assert.Equal(t, userID.String(), resp.User.ID)
}

func TestMe_MissingContextUser(t *testing.T) {
	h, _ := setupHandlerTest(t)

	rec := doJSON(t, h.Me, http.MethodGet, "/auth/me/", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
