package constants

// Redis key formats
const (
	KeyOTPChallenge = "auth:otp:%s:%s"          // Format: auth:otp:{purpose}:{email}
	KeyOTPCooldown  = "auth:otp:cooldown:%s:%s" // Format: auth:otp:cooldown:{purpose}:{email}

	// Rate Limiting
	KeyRateLimit = "rate:limit:%s:%s" // Format: rate:limit:{path}:{ip}
)
