// Package jwt issues and verifies the signed access and refresh tokens
// used by the auth service. Both token kinds share the HS256 signing key
// and carry a kind claim so one can never stand in for the other.
package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/adityarama/equipviz/internal/pkg/autherrors"
	"github.com/adityarama/equipviz/internal/pkg/models"
)

// Claims is the payload carried by every token the service issues.
type Claims struct {
	Kind  string `json:"kind"`
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// IssuePair mints a fresh access and refresh token for the given user.
// The two tokens carry independent expirations from the JWT config.
func IssuePair(userID uuid.UUID, email string, cfg models.JWTConfig) (*models.TokenPair, error) {
	now := time.Now()

	access, err := sign(userID, email, models.TokenKindAccess, now,
		time.Duration(cfg.AccessExpiration)*time.Minute, cfg)
	if err != nil {
		return nil, err
	}

	refresh, err := sign(userID, email, models.TokenKindRefresh, now,
		time.Duration(cfg.RefreshExpiration)*time.Minute, cfg)
	if err != nil {
		return nil, err
	}

	return &models.TokenPair{Access: access, Refresh: refresh}, nil
}

func sign(userID uuid.UUID, email, kind string, now time.Time, ttl time.Duration, cfg models.JWTConfig) (string, error) {
	claims := Claims{
		Kind:  kind,
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.Secret))
}

// VerifyAccess validates an access token and returns the user ID it
// was issued to. A refresh token fails with ErrTokenInvalidKind.
func VerifyAccess(tokenString string, cfg models.JWTConfig) (uuid.UUID, error) {
	return verify(tokenString, models.TokenKindAccess, cfg)
}

// VerifyRefresh validates a refresh token and returns the user ID it
// was issued to. An access token fails with ErrTokenInvalidKind.
func VerifyRefresh(tokenString string, cfg models.JWTConfig) (uuid.UUID, error) {
	return verify(tokenString, models.TokenKindRefresh, cfg)
}

func verify(tokenString, wantKind string, cfg models.JWTConfig) (uuid.UUID, error) {
	claims, err := ParseClaims(tokenString, cfg)
	if err != nil {
		return uuid.Nil, err
	}

	if claims.Kind != wantKind {
		return uuid.Nil, autherrors.ErrTokenInvalidKind
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, autherrors.ErrTokenMalformed
	}

	return userID, nil
}

// ParseClaims extracts the claims from a valid token of either kind.
func ParseClaims(tokenString string, cfg models.JWTConfig) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrTokenSignature
		}
		return []byte(cfg.Secret), nil
	})
	if err != nil {
		return nil, mapValidationError(err)
	}
	return claims, nil
}

func mapValidationError(err error) error {
	var vErr *jwt.ValidationError
	if !errors.As(err, &vErr) {
		return autherrors.ErrTokenMalformed
	}

	switch {
	case vErr.Errors&jwt.ValidationErrorMalformed != 0:
		return autherrors.ErrTokenMalformed
	case vErr.Errors&(jwt.ValidationErrorExpired|jwt.ValidationErrorNotValidYet) != 0:
		return autherrors.ErrTokenExpired
	case vErr.Errors&jwt.ValidationErrorSignatureInvalid != 0:
		return autherrors.ErrTokenSignature
	case errors.Is(vErr.Inner, autherrors.ErrTokenSignature):
		return autherrors.ErrTokenSignature
	default:
		return autherrors.ErrTokenMalformed
	}
}
