package users

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/quotaflow/quotaflow/internal/common/httpx"
	"github.com/quotaflow/quotaflow/internal/crmsrv/crmcommon"
	"github.com/quotaflow/quotaflow/internal/crmsrv/db/models"
)

type createUserRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	Role      string `json:"role" validate:"required"`
}

func (h *Handler) list(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	tenantID := crmcommon.TenantIdFromContext(ctx)

	users, err := h.store.ListUsersByTenant(ctx, string(tenantID))
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []*models.User{}
	}
	// password hashes are excluded by the model's JSON tags
	return &httpx.Response{
		StatusCode: http.StatusOK,
		Response:   users,
	}, nil
}

func (h *Handler) create(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	if crmcommon.UserRoleFromContext(ctx) != crmcommon.RoleAdmin {
		return nil, ErrForbidden
	}

	req := &createUserRequest{}
	if err := httpx.GetRequestData(r, req); err != nil {
		return nil, err
	}
	if err := validate.Struct(req); err != nil {
		return nil, ErrInvalidRequest.Err(err)
	}
	if !crmcommon.ValidRole(crmcommon.Role(req.Role)) {
		return nil, ErrInvalidRequest.Msg("unknown role: " + req.Role)
	}

	tenantID := crmcommon.TenantIdFromContext(ctx)
	tenantOID, err := primitive.ObjectIDFromHex(string(tenantID))
	if err != nil {
		return nil, ErrMissingTenant
	}

	hash, err := crmcommon.HashPassword(req.Password)
	if err != nil {
		return nil, ErrUsers.Err(err)
	}

	user := &models.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         crmcommon.Role(req.Role),
		Status:       models.UserStatusActive,
		TenantID:     tenantOID,
	}
	if aerr := h.store.CreateUser(ctx, user); aerr != nil {
		return nil, aerr
	}

	return &httpx.Response{
		StatusCode: http.StatusCreated,
		Location:   "/api/users/" + user.ID.Hex(),
		Response:   user,
	}, nil
}

func (h *Handler) delete(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	if crmcommon.UserRoleFromContext(ctx) != crmcommon.RoleAdmin {
		return nil, ErrForbidden
	}

	tenantID := crmcommon.TenantIdFromContext(ctx)
	userID := chi.URLParam(r, "userID")
	if userID == string(crmcommon.UserIdFromContext(ctx)) {
		return nil, ErrInvalidRequest.Msg("cannot delete your own account")
	}

	if err := h.store.DeleteUser(ctx, string(tenantID), userID); err != nil {
		return nil, err
	}
	return &httpx.Response{
		StatusCode: http.StatusNoContent,
	}, nil
}
