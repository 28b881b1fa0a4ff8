package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/quotaflow/quotaflow/internal/crmsrv/db/fake"
)

const testSigningSecret = "test-signing-secret"

func newTestHandler(t *testing.T) (*Handler, *fake.Store) {
	t.Helper()
	store := fake.New()
	issuer, err := NewTokenIssuer(testSigningSecret, 24*time.Hour)
	require.NoError(t, err)
	return NewHandler(store, issuer), store
}

// postAuth sends body to the auth endpoint through the real router and
// returns the recorded response.
func postAuth(t *testing.T, h *Handler, body map[string]any) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.Router().ServeHTTP(rr, req)
	return rr
}

func newRawAuthRequest(t *testing.T, body string) (*http.Request, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return req, httptest.NewRecorder()
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	return out
}

func sessionCookie(t *testing.T, rr *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rr.Result().Cookies() {
		if c.Name == AuthCookieName {
			return c
		}
	}
	return nil
}

func registerBody(companyName, name, email, password string) map[string]any {
	return map[string]any{
		"action":      "register",
		"companyName": companyName,
		"name":        name,
		"email":       email,
		"password":    password,
	}
}

func loginBody(email, password string) map[string]any {
	return map[string]any{
		"action":   "login",
		"email":    email,
		"password": password,
	}
}
