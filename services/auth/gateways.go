package auth

import (
	"context"

	"github.com/adityarama/equipviz/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_gateway.go -package=mocks github.com/adityarama/equipviz/services/auth MailerGW

// MailerGW defines the auth gateways interface
type MailerGW interface {
	// NATS Gateway
	PublishOTPEmail(ctx context.Context, event *models.OTPEmailEvent) error
}
