package usecase

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/adityarama/equipviz/internal/pkg/autherrors"
	"github.com/adityarama/equipviz/internal/pkg/models"
)

func TestRequestPasswordReset_VerifiedAccount(t *testing.T) {
	uc, m := setupUC(t)
	published := expectPublish(m)

	m.userRepo.EXPECT().
		GetUserByEmail(gomock.Any(), "mira@example.com").
		Return(&models.User{ID: uuid.New(), Email: "mira@example.com", Verified: true}, nil)

	var stored *models.OTPChallenge
	m.otpRepo.EXPECT().
		StoreOTP(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, challenge *models.OTPChallenge) error {
			stored = challenge
			return nil
		})

	err := uc.RequestPasswordReset(context.Background(), "Mira@Example.com")
	require.NoError(t, err)

	event := waitForPublish(t, published)
	require.NotNil(t, stored)
	assert.Equal(t, models.OTPPurposePasswordReset, stored.Purpose)
	assert.Equal(t, stored.Code, event.Code)
}

func TestRequestPasswordReset_UnknownEmailSucceedsSilently(t *testing.T) {
	uc, m := setupUC(t)

	m.userRepo.EXPECT().
		GetUserByEmail(gomock.Any(), "ghost@example.com").
		Return(nil, autherrors.ErrUserNotFound)

	// No challenge, no email, still success.
	err := uc.RequestPasswordReset(context.Background(), "ghost@example.com")
	assert.NoError(t, err)
}

func TestRequestPasswordReset_UnverifiedAccountNoop(t *testing.T) {
	uc, m := setupUC(t)

	m.userRepo.EXPECT().
		GetUserByEmail(gomock.Any(), "pending@example.com").
		Return(&models.User{ID: uuid.New(), Email: "pending@example.com", Verified: false}, nil)

	err := uc.RequestPasswordReset(context.Background(), "pending@example.com")
	assert.NoError(t, err)
}

func TestRequestPasswordReset_CooldownSwallowed(t *testing.T) {
	uc, m := setupUC(t)

	m.userRepo.EXPECT().
		GetUserByEmail(gomock.Any(), "mira@example.com").
		Return(&models.User{ID: uuid.New(), Email: "mira@example.com", Verified: true}, nil)
	m.otpRepo.EXPECT().
		StoreOTP(gomock.Any(), gomock.Any()).
		Return(autherrors.ErrOTPCooldown)

	// A cooldown hit looks exactly like success from the outside.
	err := uc.RequestPasswordReset(context.Background(), "mira@example.com")
	assert.NoError(t, err)
}

func TestVerifyResetOTP_PeeksWithoutConsuming(t *testing.T) {
	uc, m := setupUC(t)

	m.otpRepo.EXPECT().
		VerifyOTP(gomock.Any(), "mira@example.com", models.OTPPurposePasswordReset, "654321", false).
		Return(nil)

	err := uc.VerifyResetOTP(context.Background(), "Mira@example.com", "654321")
	assert.NoError(t, err)
}

func TestVerifyResetOTP_WrongCode(t *testing.T) {
	uc, m := setupUC(t)

	m.otpRepo.EXPECT().
		VerifyOTP(gomock.Any(), "mira@example.com", models.OTPPurposePasswordReset, "000000", false).
		Return(autherrors.ErrOTPInvalidCode)

	err := uc.VerifyResetOTP(context.Background(), "mira@example.com", "000000")
	assert.ErrorIs(t, err, autherrors.ErrOTPInvalidCode)
}

func TestResetPassword_Success(t *testing.T) {
	uc, m := setupUC(t)
	userID := uuid.New()

	m.otpRepo.EXPECT().
		VerifyOTP(gomock.Any(), "mira@example.com", models.OTPPurposePasswordReset, "654321", true).
		Return(nil)
	m.userRepo.EXPECT().
		GetUserByEmail(gomock.Any(), "mira@example.com").
		Return(&models.User{ID: userID, Email: "mira@example.com", Verified: true}, nil)
	m.userRepo.EXPECT().
		UpdatePassword(gomock.Any(), userID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, hash string) error {
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("brand-new-pass")))
			return nil
		})

	err := uc.ResetPassword(context.Background(), &models.ResetPasswordRequest{
		Email:       "Mira@Example.com",
		OTP:         "654321",
		NewPassword: "brand-new-pass",
	})
	assert.NoError(t, err)
}

func TestResetPassword_ChallengeErrors(t *testing.T) {
	testCases := []struct {
		name    string
		repoErr error
	}{
		{"Not Found", autherrors.ErrOTPNotFound},
		{"Expired", autherrors.ErrOTPExpired},
		{"Wrong Code", autherrors.ErrOTPInvalidCode},
		{"Already Used", autherrors.ErrOTPConsumed},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			uc, m := setupUC(t)

			m.otpRepo.EXPECT().
				VerifyOTP(gomock.Any(), "mira@example.com", models.OTPPurposePasswordReset, "654321", true).
				Return(tc.repoErr)

			err := uc.ResetPassword(context.Background(), &models.ResetPasswordRequest{
				Email:       "mira@example.com",
				OTP:         "654321",
				NewPassword: "brand-new-pass",
			})
			assert.ErrorIs(t, err, tc.repoErr)
		})
	}
}

func TestResetPassword_SameCodeCannotBeReplayed(t *testing.T) {
	uc, m := setupUC(t)
	userID := uuid.New()

	first := m.otpRepo.EXPECT().
		VerifyOTP(gomock.Any(), "mira@example.com", models.OTPPurposePasswordReset, "654321", true).
		Return(nil)
	m.otpRepo.EXPECT().
		VerifyOTP(gomock.Any(), "mira@example.com", models.OTPPurposePasswordReset, "654321", true).
		Return(autherrors.ErrOTPConsumed).
		After(first)
	m.userRepo.EXPECT().
		GetUserByEmail(gomock.Any(), "mira@example.com").
		Return(&models.User{ID: userID, Email: "mira@example.com", Verified: true}, nil)
	m.userRepo.EXPECT().
		UpdatePassword(gomock.Any(), userID, gomock.Any()).
		Return(nil)

	req := &models.ResetPasswordRequest{
		Email:       "mira@example.com",
		OTP:         "654321",
		NewPassword: "brand-new-pass",
	}
	require.NoError(t, uc.ResetPassword(context.Background(), req))
	assert.ErrorIs(t, uc.ResetPassword(context.Background(), req), autherrors.ErrOTPConsumed)
}
