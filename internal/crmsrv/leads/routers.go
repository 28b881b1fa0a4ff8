// Package leads serves the tenant-scoped lead CRUD and listing API.
package leads

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/quotaflow/quotaflow/internal/common/apperrors"
	"github.com/quotaflow/quotaflow/internal/common/httpx"
	"github.com/quotaflow/quotaflow/internal/crmsrv/db"
)

var (
	ErrLead           apperrors.Error = apperrors.New("lead error").SetStatusCode(http.StatusInternalServerError)
	ErrInvalidRequest apperrors.Error = ErrLead.New("invalid request").SetStatusCode(http.StatusBadRequest)
	ErrMissingTenant  apperrors.Error = ErrLead.New("missing tenant context").SetStatusCode(http.StatusUnauthorized)
)

var validate = validator.New()

type Handler struct {
	store db.LeadStore
}

func NewHandler(store db.LeadStore) *Handler {
	return &Handler{store: store}
}

func (h *Handler) Router() chi.Router {
	handlers := []httpx.ResponseHandlerParam{
		{
			Method:  http.MethodPost,
			Path:    "/",
			Handler: h.create,
		},
		{
			Method:  http.MethodGet,
			Path:    "/",
			Handler: h.list,
		},
		{
			Method:  http.MethodGet,
			Path:    "/{leadID}",
			Handler: h.get,
		},
		{
			Method:  http.MethodPut,
			Path:    "/{leadID}",
			Handler: h.update,
		},
		{
			Method:  http.MethodDelete,
			Path:    "/{leadID}",
			Handler: h.delete,
		},
	}

	router := chi.NewRouter()
	for _, handler := range handlers {
		router.Method(handler.Method, handler.Path, httpx.WrapHttpRsp(handler.Handler))
	}
	return router
}
