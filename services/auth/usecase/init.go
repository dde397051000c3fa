package usecase

import (
	"github.com/adityarama/equipviz/internal/pkg/models"
	"github.com/adityarama/equipviz/services/auth"
)

type AuthUC struct {
	userRepo auth.UserRepo
	otpRepo  auth.OTPRepo
	mailerGW auth.MailerGW
	cfg      *models.Config
}

// NewAuthUC creates a new auth usecase instance
func NewAuthUC(
	cfg *models.Config,
	userRepo auth.UserRepo,
	otpRepo auth.OTPRepo,
	mailerGW auth.MailerGW,
) *AuthUC {
	return &AuthUC{
		userRepo: userRepo,
		otpRepo:  otpRepo,
		mailerGW: mailerGW,
		cfg:      cfg,
	}
}
