// Package gateway publishes auth events to collaborating services.
// OTP email delivery is fire-and-forget; authentication flow state
// never depends on it.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/adityarama/equipviz/internal/pkg/constants"
	"github.com/adityarama/equipviz/internal/pkg/logger"
	"github.com/adityarama/equipviz/internal/pkg/models"
	"github.com/adityarama/equipviz/internal/pkg/retry"
)

// publisher is the slice of the NATS client the gateway needs.
type publisher interface {
	Publish(subject string, data []byte) error
}

// MailerGW hands OTP codes off to the notification service over NATS.
// Publishes are retried with backoff since the caller fires them
// asynchronously and has no other recovery path.
type MailerGW struct {
	client  publisher
	retrier *retry.Retrier
}

// NewMailerGW creates a new mailer gateway instance
func NewMailerGW(client publisher) *MailerGW {
	cfg := retry.DefaultConfig()
	cfg.MaxDelay = 2 * time.Second
	return &MailerGW{
		client:  client,
		retrier: retry.New(cfg),
	}
}

// PublishOTPEmail publishes an OTP delivery event for the mailer.
func (g *MailerGW) PublishOTPEmail(ctx context.Context, event *models.OTPEmailEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal otp email event: %w", err)
	}

	err = g.retrier.Do(ctx, func(ctx context.Context) error {
		return g.client.Publish(constants.SubjectEmailOTP, data)
	})
	if err != nil {
		logger.Error("Failed to publish OTP email event",
			logger.String("email", event.Email),
			logger.String("purpose", event.Purpose),
			logger.Err(err))
		return fmt.Errorf("failed to publish otp email event: %w", err)
	}

	logger.Info("Published OTP email event",
		logger.String("email", event.Email),
		logger.String("purpose", event.Purpose))

	return nil
}
