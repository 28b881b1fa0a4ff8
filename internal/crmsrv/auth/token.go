package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/quotaflow/quotaflow/internal/common/apperrors"
	"github.com/quotaflow/quotaflow/internal/crmsrv/db/models"
)

// AuthCookieName is the cookie carrying the session token.
const AuthCookieName = "authToken"

// SessionClaims is the identity a validated session token proves. The server
// holds no session store; everything a request needs is in the token.
type SessionClaims struct {
	UserID   string
	Email    string
	Role     string
	TenantID string
}

// TokenIssuer signs and validates session tokens with a shared secret
// (HS256). The secret is injected at construction; an empty secret is a
// programming error caught at startup.
type TokenIssuer struct {
	secret   []byte
	validity time.Duration
}

func NewTokenIssuer(secret string, validity time.Duration) (*TokenIssuer, error) {
	if secret == "" {
		return nil, errors.New("signing secret must not be empty")
	}
	if validity <= 0 {
		return nil, errors.New("token validity must be positive")
	}
	return &TokenIssuer{
		secret:   []byte(secret),
		validity: validity,
	}, nil
}

// Validity returns the configured token lifetime.
func (ti *TokenIssuer) Validity() time.Duration {
	return ti.validity
}

// Issue creates a signed session token for the user.
func (ti *TokenIssuer) Issue(user *models.User) (string, apperrors.Error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":       user.ID.Hex(),
		"email":     user.Email,
		"role":      string(user.Role),
		"tenant_id": user.TenantID.Hex(),
		"jti":       uuid.New().String(),
		"iat":       now.Unix(),
		"exp":       now.Add(ti.validity).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(ti.secret)
	if err != nil {
		return "", ErrTokenGeneration.Err(err)
	}
	return signed, nil
}

// Validate parses and verifies a session token and returns its claims.
// Signature, algorithm, expiry and claim presence are all checked.
func (ti *TokenIssuer) Validate(tokenString string) (*SessionClaims, apperrors.Error) {
	if tokenString == "" {
		return nil, ErrInvalidToken.Msg("empty token")
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	token, err := parser.Parse(tokenString, func(t *jwt.Token) (any, error) {
		return ti.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken.Err(err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	sc := &SessionClaims{}
	for claim, dst := range map[string]*string{
		"sub":       &sc.UserID,
		"email":     &sc.Email,
		"role":      &sc.Role,
		"tenant_id": &sc.TenantID,
	} {
		v, ok := claims[claim].(string)
		if !ok || v == "" {
			return nil, ErrInvalidToken.Msg("missing claim: " + claim)
		}
		*dst = v
	}
	return sc, nil
}
