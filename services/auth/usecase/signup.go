package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/adityarama/equipviz/internal/pkg/autherrors"
	jwtpkg "github.com/adityarama/equipviz/internal/pkg/jwt"
	"github.com/adityarama/equipviz/internal/pkg/logger"
	"github.com/adityarama/equipviz/internal/pkg/models"
	"github.com/adityarama/equipviz/internal/utils"
)

// Register creates an inactive account and issues a signup challenge.
// Registering again with the email of a stalled, unverified account
// replaces its credentials instead of failing, so the signup can be
// restarted.
func (u *AuthUC) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	email := utils.NormalizeEmail(req.Email)

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		FullName:     req.Name,
		Verified:     false,
	}

	existing, err := u.userRepo.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		if existing.Verified {
			return nil, autherrors.ErrDuplicateEmail
		}
		// Stalled registration, take over the account.
		if err := u.userRepo.UpdateUnverifiedUser(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to recycle unverified user: %w", err)
		}
		user.ID = existing.ID
		user.CreatedAt = existing.CreatedAt
	case errors.Is(err, autherrors.ErrUserNotFound):
		if err := u.userRepo.CreateUser(ctx, user); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	if err := u.issueChallenge(ctx, email, models.OTPPurposeSignup, false); err != nil {
		return nil, err
	}

	logger.Info("Registered user pending verification",
		logger.String("email", email),
		logger.String("user_id", user.ID.String()))

	return user, nil
}

// VerifySignupOTP consumes the signup challenge, activates the account,
// and returns a fresh token pair so the client is logged in immediately.
func (u *AuthUC) VerifySignupOTP(ctx context.Context, email, code string) (*models.AuthResult, error) {
	email = utils.NormalizeEmail(email)

	if err := u.otpRepo.VerifyOTP(ctx, email, models.OTPPurposeSignup, code, true); err != nil {
		return nil, err
	}

	user, err := u.userRepo.ActivateUser(ctx, email)
	if err != nil {
		return nil, err
	}

	tokens, err := jwtpkg.IssuePair(user.ID, user.Email, u.cfg.JWT)
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}

	logger.Info("User verified and activated",
		logger.String("email", email),
		logger.String("user_id", user.ID.String()))

	return &models.AuthResult{User: user.Profile(), Tokens: tokens}, nil
}

// ResendOTP reissues a challenge for the given purpose. Requests for
// unknown emails or accounts in the wrong state succeed silently so the
// endpoint cannot be used to probe which accounts exist. The resend
// cooldown is surfaced.
func (u *AuthUC) ResendOTP(ctx context.Context, email, purpose string) error {
	email = utils.NormalizeEmail(email)

	user, err := u.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, autherrors.ErrUserNotFound) {
			return nil
		}
		return err
	}

	// A verified account has nothing left to verify, and an unverified
	// one cannot reset its password. Both cases degrade silently.
	if purpose == models.OTPPurposeSignup && user.Verified {
		return nil
	}
	if purpose == models.OTPPurposePasswordReset && !user.Verified {
		return nil
	}

	return u.issueChallenge(ctx, email, purpose, true)
}

// issueChallenge generates a code, stores it (replacing any unconsumed
// challenge for the pair), and hands delivery to the mailer in the
// background. With surfaceCooldown false an active cooldown is logged
// and ignored.
func (u *AuthUC) issueChallenge(ctx context.Context, email, purpose string, surfaceCooldown bool) error {
	code, err := utils.GenerateOTPCode(u.cfg.OTP.CodeLength)
	if err != nil {
		return fmt.Errorf("failed to generate otp code: %w", err)
	}

	now := time.Now()
	challenge := &models.OTPChallenge{
		Email:     email,
		Purpose:   purpose,
		Code:      code,
		CreatedAt: now,
		ExpiresAt: now.Add(time.Duration(u.cfg.OTP.ExpiryMinutes) * time.Minute),
	}

	if err := u.otpRepo.StoreOTP(ctx, challenge); err != nil {
		if errors.Is(err, autherrors.ErrOTPCooldown) {
			if !surfaceCooldown {
				logger.Warn("OTP issuance skipped, cooldown active",
					logger.String("email", email),
					logger.String("purpose", purpose))
				return nil
			}
			if remaining, cerr := u.otpRepo.CooldownRemaining(ctx, email, purpose); cerr == nil && remaining > 0 {
				return &autherrors.CooldownError{RetryAfter: remaining}
			}
		}
		return err
	}

	// Delivery must not block or fail the auth flow.
	event := &models.OTPEmailEvent{
		Email:         email,
		Purpose:       purpose,
		Code:          code,
		ExpiresInMins: u.cfg.OTP.ExpiryMinutes,
	}
	go func() {
		if err := u.mailerGW.PublishOTPEmail(context.Background(), event); err != nil {
			logger.Error("OTP email delivery failed",
				logger.String("email", email),
				logger.String("purpose", purpose),
				logger.Err(err))
		}
	}()

	return nil
}
