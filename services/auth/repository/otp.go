package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/adityarama/equipviz/internal/pkg/autherrors"
	"github.com/adityarama/equipviz/internal/pkg/constants"
	"github.com/adityarama/equipviz/internal/pkg/models"
)

// otpRecord is the Redis representation of a challenge. Timestamps are
// unix seconds so the verify script can compare them in Lua.
type otpRecord struct {
	Code      string `json:"code"`
	CreatedAt int64  `json:"created_at"`
	ExpiresAt int64  `json:"expires_at"`
	Consumed  bool   `json:"consumed"`
	Attempts  int    `json:"attempts"`
}

// expiredGrace keeps an expired challenge around so verification can
// report "expired" instead of "not found".
const expiredGrace = time.Hour

// verifyScript atomically checks and updates a challenge. It returns one
// of: not_found, consumed, expired, invalid, ok. A wrong code increments
// the attempt counter and deletes the challenge once the limit is hit.
// ARGV: code, now (unix seconds), max attempts, consume flag.
const verifyScript = `
local raw = redis.call('GET', KEYS[1])
if not raw then
  return 'not_found'
end
local rec = cjson.decode(raw)
if rec.consumed then
  return 'consumed'
end
local now = tonumber(ARGV[2])
if now >= rec.expires_at then
  return 'expired'
end
if rec.code ~= ARGV[1] then
  rec.attempts = rec.attempts + 1
  if rec.attempts >= tonumber(ARGV[3]) then
    redis.call('DEL', KEYS[1])
  else
    local ttl = redis.call('PTTL', KEYS[1])
    if ttl > 0 then
      redis.call('SET', KEYS[1], cjson.encode(rec), 'PX', ttl)
    end
  end
  return 'invalid'
end
if ARGV[4] == '1' then
  rec.consumed = true
  local ttl = redis.call('PTTL', KEYS[1])
  if ttl > 0 then
    redis.call('SET', KEYS[1], cjson.encode(rec), 'PX', ttl)
  end
end
return 'ok'
`

// StoreOTP saves a challenge, replacing any unconsumed challenge for the
// same (email, purpose) pair. A cooldown key guards against rapid resends.
func (r *OTPRepo) StoreOTP(ctx context.Context, challenge *models.OTPChallenge) error {
	cooldownKey := fmt.Sprintf(constants.KeyOTPCooldown, challenge.Purpose, challenge.Email)
	cooldown := time.Duration(r.cfg.OTP.ResendCooldown) * time.Second

	ok, err := r.client.SetNX(ctx, cooldownKey, "1", cooldown)
	if err != nil {
		return fmt.Errorf("failed to set otp cooldown: %w", err)
	}
	if !ok {
		return autherrors.ErrOTPCooldown
	}

	rec := otpRecord{
		Code:      challenge.Code,
		CreatedAt: challenge.CreatedAt.Unix(),
		ExpiresAt: challenge.ExpiresAt.Unix(),
		Consumed:  challenge.Consumed,
		Attempts:  challenge.Attempts,
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal otp record: %w", err)
	}

	key := fmt.Sprintf(constants.KeyOTPChallenge, challenge.Purpose, challenge.Email)
	ttl := challenge.ExpiresAt.Sub(challenge.CreatedAt) + expiredGrace

	if err := r.client.Set(ctx, key, data, ttl); err != nil {
		return fmt.Errorf("failed to store otp challenge: %w", err)
	}

	return nil
}

// VerifyOTP checks the submitted code against the stored challenge. With
// consume set the challenge is marked used on success; without it the
// check is a non-destructive peek.
func (r *OTPRepo) VerifyOTP(ctx context.Context, email, purpose, code string, consume bool) error {
	key := fmt.Sprintf(constants.KeyOTPChallenge, purpose, email)

	consumeFlag := "0"
	if consume {
		consumeFlag = "1"
	}

	result, err := r.client.Eval(ctx, verifyScript, []string{key},
		code, time.Now().Unix(), r.cfg.OTP.MaxAttempts, consumeFlag)
	if err != nil {
		return fmt.Errorf("failed to verify otp challenge: %w", err)
	}

	status, ok := result.(string)
	if !ok {
		return fmt.Errorf("unexpected otp verify result: %v", result)
	}

	switch status {
	case "ok":
		return nil
	case "not_found":
		return autherrors.ErrOTPNotFound
	case "expired":
		return autherrors.ErrOTPExpired
	case "consumed":
		return autherrors.ErrOTPConsumed
	case "invalid":
		return autherrors.ErrOTPInvalidCode
	default:
		return fmt.Errorf("unexpected otp verify status: %s", status)
	}
}

// CooldownRemaining returns how long until another challenge may be
// issued for the pair, or zero when no cooldown is active.
func (r *OTPRepo) CooldownRemaining(ctx context.Context, email, purpose string) (time.Duration, error) {
	key := fmt.Sprintf(constants.KeyOTPCooldown, purpose, email)

	ttl, err := r.client.PTTL(ctx, key)
	if err != nil && err != redis.Nil {
		return 0, fmt.Errorf("failed to check otp cooldown: %w", err)
	}
	if ttl < 0 {
		return 0, nil
	}

	return ttl, nil
}
