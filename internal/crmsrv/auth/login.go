package auth

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/quotaflow/quotaflow/internal/common/httpx"
	"github.com/quotaflow/quotaflow/internal/crmsrv/crmcommon"
	"github.com/quotaflow/quotaflow/internal/crmsrv/db/dberror"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginRsp struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	TenantID string `json:"tenantId"`
	Message  string `json:"message"`
}

// login verifies the credentials and issues a session token delivered as an
// HTTP-only cookie. Only public identity fields go in the response body.
func (h *Handler) login(ctx context.Context, req *loginRequest) (*httpx.Response, error) {
	if err := validate.Struct(req); err != nil {
		return nil, ErrInvalidRequest.Err(err)
	}

	user, err := h.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if err.Is(dberror.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, ErrLoginFailed.Err(err)
	}

	if !crmcommon.VerifyPassword(user.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}

	token, aerr := h.issuer.Issue(user)
	if aerr != nil {
		return nil, aerr
	}

	log.Ctx(ctx).Info().Str("user_id", user.ID.Hex()).Msg("login successful")
	return &httpx.Response{
		StatusCode: http.StatusOK,
		Response: &loginRsp{
			ID:       user.ID.Hex(),
			Email:    user.Email,
			Role:     string(user.Role),
			TenantID: user.TenantID.Hex(),
			Message:  "Login successful",
		},
		Cookies: []*http.Cookie{
			{
				Name:     AuthCookieName,
				Value:    token,
				HttpOnly: true,
				Path:     "/",
				MaxAge:   int(h.issuer.Validity().Seconds()),
			},
		},
	}, nil
}
