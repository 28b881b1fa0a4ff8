// Package users serves the tenant's user administration API: listing users
// for assignment pickers and admin-only user management.
package users

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/quotaflow/quotaflow/internal/common/apperrors"
	"github.com/quotaflow/quotaflow/internal/common/httpx"
	"github.com/quotaflow/quotaflow/internal/crmsrv/db"
)

var (
	ErrUsers          apperrors.Error = apperrors.New("user admin error").SetStatusCode(http.StatusInternalServerError)
	ErrInvalidRequest apperrors.Error = ErrUsers.New("invalid request").SetStatusCode(http.StatusBadRequest)
	ErrForbidden      apperrors.Error = ErrUsers.New("admin role required").SetStatusCode(http.StatusForbidden)
	ErrMissingTenant  apperrors.Error = ErrUsers.New("missing tenant context").SetStatusCode(http.StatusUnauthorized)
)

var validate = validator.New()

type Handler struct {
	store db.UserStore
}

func NewHandler(store db.UserStore) *Handler {
	return &Handler{store: store}
}

func (h *Handler) Router() chi.Router {
	handlers := []httpx.ResponseHandlerParam{
		{
			Method:  http.MethodGet,
			Path:    "/",
			Handler: h.list,
		},
		{
			Method:  http.MethodPost,
			Path:    "/",
			Handler: h.create,
		},
		{
			Method:  http.MethodDelete,
			Path:    "/{userID}",
			Handler: h.delete,
		},
	}

	router := chi.NewRouter()
	for _, handler := range handlers {
		router.Method(handler.Method, handler.Path, httpx.WrapHttpRsp(handler.Handler))
	}
	return router
}
