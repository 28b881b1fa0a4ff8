package auth

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/quotaflow/quotaflow/internal/common/httpx"
	"github.com/quotaflow/quotaflow/internal/crmsrv/crmcommon"
)

// SessionMiddleware guards a route group with the session token. It accepts
// the authToken cookie (the UI path) or a Bearer header (API clients),
// validates it and loads the caller's identity into the request context.
func SessionMiddleware(issuer *TokenIssuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := tokenFromRequest(r)
			if token == "" {
				httpx.ErrMissingAuthInRequest().Send(w)
				return
			}

			claims, err := issuer.Validate(token)
			if err != nil {
				log.Ctx(r.Context()).Info().Err(err).Msg("rejected session token")
				httpx.ErrUnAuthorized().Send(w)
				return
			}

			ctx := r.Context()
			ctx = crmcommon.SetTenantIdInContext(ctx, crmcommon.TenantId(claims.TenantID))
			ctx = crmcommon.SetUserIdInContext(ctx, crmcommon.UserId(claims.UserID))
			ctx = crmcommon.SetUserRoleInContext(ctx, crmcommon.Role(claims.Role))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func tokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(AuthCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	authHeader := r.Header.Get("Authorization")
	if after, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
		return after
	}
	return ""
}
