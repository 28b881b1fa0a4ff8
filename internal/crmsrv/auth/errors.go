package auth

import (
	"net/http"

	"github.com/quotaflow/quotaflow/internal/common/apperrors"
)

// Base auth error
var (
	ErrAuth apperrors.Error = apperrors.New("auth error").SetStatusCode(http.StatusInternalServerError)
)

// Dispatch errors
var (
	ErrInvalidAction  apperrors.Error = ErrAuth.New("Invalid action").SetStatusCode(http.StatusBadRequest)
	ErrInvalidRequest apperrors.Error = ErrAuth.New("invalid request").SetStatusCode(http.StatusBadRequest)
)

// Registration errors
var (
	ErrDuplicateEmail     apperrors.Error = ErrAuth.New("A user with this email already exists").SetStatusCode(http.StatusConflict)
	ErrRegistrationFailed apperrors.Error = ErrAuth.New("registration failed").SetStatusCode(http.StatusInternalServerError)
)

// Login errors
var (
	ErrUserNotFound       apperrors.Error = ErrAuth.New("User not found").SetStatusCode(http.StatusNotFound)
	ErrInvalidCredentials apperrors.Error = ErrAuth.New("Invalid credentials").SetStatusCode(http.StatusUnauthorized)
	ErrLoginFailed        apperrors.Error = ErrAuth.New("Error logging in").SetStatusCode(http.StatusInternalServerError)
)

// Token errors
var (
	ErrTokenGeneration apperrors.Error = ErrAuth.New("failed to generate token").SetStatusCode(http.StatusInternalServerError)
	ErrInvalidToken    apperrors.Error = ErrAuth.New("invalid or expired token").SetStatusCode(http.StatusUnauthorized)
)
