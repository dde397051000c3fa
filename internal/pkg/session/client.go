package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/adityarama/equipviz/internal/pkg/autherrors"
	"github.com/adityarama/equipviz/internal/pkg/models"
)

// APIError carries a non-2xx response from the auth service.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("auth service returned %d: %s", e.StatusCode, e.Message)
}

// Client talks to the auth service and keeps the session current. On a
// 401 it refreshes the token pair exactly once and retries; if the
// refresh fails the session is cleared and ErrSessionExpired returned.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *Session
}

// NewClient creates an auth client bound to a session.
func NewClient(baseURL string, sess *Session, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		session:    sess,
	}
}

// Session returns the client's session.
func (c *Client) Session() *Session {
	return c.session
}

// Register starts a signup. The account stays inactive until the emailed
// code is verified.
func (c *Client) Register(ctx context.Context, req *models.RegisterRequest) (*models.RegisterResponse, error) {
	var resp models.RegisterResponse
	if err := c.post(ctx, "/auth/register/", req, &resp, false); err != nil {
		return nil, err
	}
	return &resp, nil
}

// VerifySignupOTP completes signup. On success the returned token pair
// and profile are stored; the client is logged in.
func (c *Client) VerifySignupOTP(ctx context.Context, email, code string) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	err := c.post(ctx, "/auth/verify-signup-otp/", &models.VerifyOTPRequest{Email: email, OTP: code}, &resp, false)
	if err != nil {
		return nil, err
	}

	if err := c.session.Update(resp.Tokens, resp.User); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Login authenticates and stores the fresh session.
func (c *Client) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	err := c.post(ctx, "/auth/login/", &models.LoginRequest{Email: email, Password: password}, &resp, false)
	if err != nil {
		return nil, err
	}

	if err := c.session.Update(resp.Tokens, resp.User); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logout discards the local session. Tokens are stateless so there is
// nothing to revoke server side; they lapse on expiry.
func (c *Client) Logout() error {
	return c.session.Clear()
}

// Me fetches the authenticated profile.
func (c *Client) Me(ctx context.Context) (*models.UserProfile, error) {
	var resp models.MeResponse
	if err := c.get(ctx, "/auth/me/", &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

// RequestPasswordReset asks for a reset code. The response is generic
// regardless of whether the account exists.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	var resp models.MessageResponse
	return c.post(ctx, "/auth/request-password-reset/", &models.RequestPasswordResetRequest{Email: email}, &resp, false)
}

// VerifyResetOTP checks a reset code without consuming it.
func (c *Client) VerifyResetOTP(ctx context.Context, email, code string) error {
	var resp models.VerifyResetOTPResponse
	return c.post(ctx, "/auth/verify-reset-otp/", &models.VerifyOTPRequest{Email: email, OTP: code}, &resp, false)
}

// ResetPassword consumes the reset code and sets the new password.
func (c *Client) ResetPassword(ctx context.Context, req *models.ResetPasswordRequest) error {
	var resp models.MessageResponse
	return c.post(ctx, "/auth/reset-password/", req, &resp, false)
}

// ResendOTP requests redelivery of a signup or reset code.
func (c *Client) ResendOTP(ctx context.Context, email, purpose string) error {
	var resp models.MessageResponse
	return c.post(ctx, "/auth/resend-otp/", &models.ResendOTPRequest{Email: email, OTPType: purpose}, &resp, false)
}

// Refresh exchanges the stored refresh token for a new pair and stores
// it. A failed refresh clears the session.
func (c *Client) Refresh(ctx context.Context) error {
	refresh := c.session.RefreshToken()
	if refresh == "" {
		_ = c.session.Clear()
		return autherrors.ErrSessionExpired
	}

	var resp models.AuthResponse
	err := c.post(ctx, "/auth/refresh/", &models.RefreshRequest{Refresh: refresh}, &resp, false)
	if err != nil {
		_ = c.session.Clear()
		return autherrors.ErrSessionExpired
	}

	return c.session.Update(resp.Tokens, resp.User)
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, out, true)
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}, authed bool) error {
	return c.do(ctx, http.MethodPost, path, body, out, authed)
}

// do sends one request. Authenticated requests that come back 401 are
// retried exactly once after a refresh.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}, authed bool) error {
	resp, err := c.send(ctx, method, path, body, authed)
	if err != nil {
		return err
	}

	if authed && resp.StatusCode == http.StatusUnauthorized {
		drain(resp)

		if err := c.Refresh(ctx); err != nil {
			return err
		}

		resp, err = c.send(ctx, method, path, body, authed)
		if err != nil {
			return err
		}
		if resp.StatusCode == http.StatusUnauthorized {
			drain(resp)
			_ = c.session.Clear()
			return autherrors.ErrSessionExpired
		}
	}

	return decode(resp, out)
}

func (c *Client) send(ctx context.Context, method, path string, body interface{}, authed bool) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		if token := c.session.AccessToken(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	return c.httpClient.Do(req)
}

func decode(resp *http.Response, out interface{}) error {
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}

		var envelope struct {
			Error   string              `json:"error"`
			Errors  map[string][]string `json:"errors"`
			Message string              `json:"message"`
		}
		if err := json.Unmarshal(data, &envelope); err == nil {
			switch {
			case envelope.Error != "":
				apiErr.Message = envelope.Error
			case len(envelope.Errors) > 0:
				apiErr.Message = fmt.Sprintf("validation failed: %v", envelope.Errors)
			case envelope.Message != "":
				apiErr.Message = envelope.Message
			}
		}
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}
