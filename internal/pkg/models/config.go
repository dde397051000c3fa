package models

// Config represents application configuration
type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	NATS     NATSConfig
	JWT      JWTConfig
	OTP      OTPConfig
	Logger   LoggerConfig
}

// AppConfig contains application-specific configuration
type AppConfig struct {
	Name        string
	Environment string
	Debug       bool
	Version     string
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	Database  string
	SSLMode   string
	MaxConns  int
	IdleConns int
}

// RedisConfig contains Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
}

// NATSConfig contains NATS connection configuration
type NATSConfig struct {
	URL string
}

// JWTConfig contains token signing configuration. Expirations are minutes.
type JWTConfig struct {
	Secret            string
	Issuer            string
	AccessExpiration  int
	RefreshExpiration int
}

// OTPConfig governs challenge issuance and verification.
type OTPConfig struct {
	CodeLength     int // digits per code
	ExpiryMinutes  int // challenge lifetime
	MaxAttempts    int // wrong guesses before the challenge is invalidated
	ResendCooldown int // seconds between issuances per (email, purpose)
	ThrottleLimit  int // per-IP requests per throttle period on /auth
	ThrottlePeriod int // seconds
}

// LoggerConfig contains logging configuration
type LoggerConfig struct {
	Level    string
	FilePath string
}
