package repository

import (
	"github.com/jmoiron/sqlx"

	"github.com/adityarama/equipviz/internal/pkg/database"
	"github.com/adityarama/equipviz/internal/pkg/models"
)

// UserRepo implements the user repository interface on Postgres.
type UserRepo struct {
	cfg *models.Config
	db  *sqlx.DB
}

// NewUserRepo creates a new user repository instance
func NewUserRepo(cfg *models.Config, db *sqlx.DB) *UserRepo {
	return &UserRepo{
		cfg: cfg,
		db:  db,
	}
}

// OTPRepo implements the OTP challenge store on Redis.
type OTPRepo struct {
	cfg    *models.Config
	client *database.RedisClient
}

// NewOTPRepo creates a new OTP repository instance
func NewOTPRepo(cfg *models.Config, client *database.RedisClient) *OTPRepo {
	return &OTPRepo{
		cfg:    cfg,
		client: client,
	}
}
