package jwt

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adityarama/equipviz/internal/pkg/autherrors"
	"github.com/adityarama/equipviz/internal/pkg/models"
)

func testJWTConfig() models.JWTConfig {
	return models.JWTConfig{
		Secret:            "test-secret-key",
		Issuer:            "equipviz-test",
		AccessExpiration:  15,
		RefreshExpiration: 1440,
	}
}

func TestIssuePairAndVerify(t *testing.T) {
	cfg := testJWTConfig()
	userID := uuid.New()

	pair, err := IssuePair(userID, "mira@example.com", cfg)
	require.NoError(t, err)
	require.NotEmpty(t, pair.Access)
	require.NotEmpty(t, pair.Refresh)
	assert.NotEqual(t, pair.Access, pair.Refresh)

	gotID, err := VerifyAccess(pair.Access, cfg)
	assert.NoError(t, err)
	assert.Equal(t, userID, gotID)

	gotID, err = VerifyRefresh(pair.Refresh, cfg)
	assert.NoError(t, err)
	assert.Equal(t, userID, gotID)
}

func TestVerifyRejectsWrongKind(t *testing.T) {
	cfg := testJWTConfig()
	pair, err := IssuePair(uuid.New(), "mira@example.com", cfg)
	require.NoError(t, err)

	_, err = VerifyAccess(pair.Refresh, cfg)
	assert.ErrorIs(t, err, autherrors.ErrTokenInvalidKind)

	_, err = VerifyRefresh(pair.Access, cfg)
	assert.ErrorIs(t, err, autherrors.ErrTokenInvalidKind)
}

func TestVerifyExpiredToken(t *testing.T) {
	cfg := testJWTConfig()
	userID := uuid.New()

	claims := Claims{
		Kind: models.TokenKindAccess,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    cfg.Issuer,
			IssuedAt:  jwtlib.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte(cfg.Secret))
	require.NoError(t, err)

	_, err = VerifyAccess(token, cfg)
	assert.ErrorIs(t, err, autherrors.ErrTokenExpired)
}

func TestVerifyTamperedSignature(t *testing.T) {
	cfg := testJWTConfig()
	pair, err := IssuePair(uuid.New(), "mira@example.com", cfg)
	require.NoError(t, err)

	otherCfg := cfg
	otherCfg.Secret = "another-secret"

	_, err = VerifyAccess(pair.Access, otherCfg)
	assert.ErrorIs(t, err, autherrors.ErrTokenSignature)
}

func TestVerifyMalformedToken(t *testing.T) {
	cfg := testJWTConfig()

	_, err := VerifyAccess("not-a-token", cfg)
	assert.ErrorIs(t, err, autherrors.ErrTokenMalformed)

	_, err = VerifyAccess("", cfg)
	assert.ErrorIs(t, err, autherrors.ErrTokenMalformed)
}

func TestVerifyRejectsNonHMACAlg(t *testing.T) {
	cfg := testJWTConfig()

	// alg=none style token signed with the "none" method.
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodNone, Claims{
		Kind: models.TokenKindAccess,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   uuid.NewString(),
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString(jwtlib.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = VerifyAccess(signed, cfg)
	assert.Error(t, err)
}

func TestParseClaims(t *testing.T) {
	cfg := testJWTConfig()
	userID := uuid.New()

	pair, err := IssuePair(userID, "mira@example.com", cfg)
	require.NoError(t, err)

	claims, err := ParseClaims(pair.Access, cfg)
	require.NoError(t, err)
	assert.Equal(t, models.TokenKindAccess, claims.Kind)
	assert.Equal(t, "mira@example.com", claims.Email)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.Equal(t, cfg.Issuer, claims.Issuer)
}
