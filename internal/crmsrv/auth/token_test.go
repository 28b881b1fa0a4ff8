package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/quotaflow/quotaflow/internal/crmsrv/crmcommon"
	"github.com/quotaflow/quotaflow/internal/crmsrv/db/models"
)

func testUser() *models.User {
	return &models.User{
		ID:       primitive.NewObjectID(),
		Email:    "jane@acme.test",
		Role:     crmcommon.RoleAdmin,
		TenantID: primitive.NewObjectID(),
	}
}

func TestNewTokenIssuer(t *testing.T) {
	_, err := NewTokenIssuer("", 24*time.Hour)
	assert.Error(t, err)

	_, err = NewTokenIssuer("secret", 0)
	assert.Error(t, err)

	_, err = NewTokenIssuer("secret", -time.Hour)
	assert.Error(t, err)

	ti, err := NewTokenIssuer("secret", 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, ti.Validity())
}

func TestTokenRoundTrip(t *testing.T) {
	ti, err := NewTokenIssuer("secret", 24*time.Hour)
	require.NoError(t, err)
	user := testUser()

	token, aerr := ti.Issue(user)
	require.Nil(t, aerr)

	claims, aerr := ti.Validate(token)
	require.Nil(t, aerr)
	assert.Equal(t, user.ID.Hex(), claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, user.TenantID.Hex(), claims.TenantID)
}

func TestTokenExpiry(t *testing.T) {
	ti, err := NewTokenIssuer("secret", 24*time.Hour)
	require.NoError(t, err)

	token, aerr := ti.Issue(testUser())
	require.Nil(t, aerr)

	parseAt := func(at time.Time) error {
		parser := jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
			jwt.WithTimeFunc(func() time.Time { return at }),
		)
		_, err := parser.Parse(token, func(t *jwt.Token) (any, error) {
			return []byte("secret"), nil
		})
		return err
	}

	assert.NoError(t, parseAt(time.Now().Add(24*time.Hour-time.Minute)))
	assert.Error(t, parseAt(time.Now().Add(24*time.Hour+time.Minute)))
}

func TestTokenWrongSecret(t *testing.T) {
	ti, err := NewTokenIssuer("secret", 24*time.Hour)
	require.NoError(t, err)
	other, err := NewTokenIssuer("other-secret", 24*time.Hour)
	require.NoError(t, err)

	token, aerr := ti.Issue(testUser())
	require.Nil(t, aerr)

	_, aerr = other.Validate(token)
	assert.NotNil(t, aerr)
	assert.True(t, aerr.Is(ErrInvalidToken))
}

func TestTokenRejectsUnsignedAlg(t *testing.T) {
	ti, err := NewTokenIssuer("secret", 24*time.Hour)
	require.NoError(t, err)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub":       "x",
		"email":     "jane@acme.test",
		"role":      "admin",
		"tenant_id": "y",
		"exp":       time.Now().Add(time.Hour).Unix(),
	})
	token, serr := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, serr)

	_, aerr := ti.Validate(token)
	assert.NotNil(t, aerr)
}

func TestTokenMissingClaims(t *testing.T) {
	ti, err := NewTokenIssuer("secret", 24*time.Hour)
	require.NoError(t, err)

	// signed with the right secret but without the identity claims
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "x",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	token, serr := tok.SignedString([]byte("secret"))
	require.NoError(t, serr)

	_, aerr := ti.Validate(token)
	assert.NotNil(t, aerr)
	assert.True(t, aerr.Is(ErrInvalidToken))
}

func TestValidateEmptyToken(t *testing.T) {
	ti, err := NewTokenIssuer("secret", 24*time.Hour)
	require.NoError(t, err)

	_, aerr := ti.Validate("")
	assert.NotNil(t, aerr)
}
