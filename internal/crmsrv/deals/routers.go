// Package deals serves the tenant-scoped deal CRUD and listing API.
package deals

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/quotaflow/quotaflow/internal/common/apperrors"
	"github.com/quotaflow/quotaflow/internal/common/httpx"
	"github.com/quotaflow/quotaflow/internal/crmsrv/db"
)

var (
	ErrDeal           apperrors.Error = apperrors.New("deal error").SetStatusCode(http.StatusInternalServerError)
	ErrInvalidRequest apperrors.Error = ErrDeal.New("invalid request").SetStatusCode(http.StatusBadRequest)
	ErrMissingTenant  apperrors.Error = ErrDeal.New("missing tenant context").SetStatusCode(http.StatusUnauthorized)
)

var validate = validator.New()

type Handler struct {
	store db.DealStore
}

func NewHandler(store db.DealStore) *Handler {
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
			Path:    "/{dealID}",
			Handler: h.get,
		},
		{
			Method:  http.MethodPut,
			Path:    "/{dealID}",
			Handler: h.update,
		},
		{
			Method:  http.MethodDelete,
			Path:    "/{dealID}",
			Handler: h.delete,
		},
	}

	router := chi.NewRouter()
	for _, handler := range handlers {
		router.Method(handler.Method, handler.Path, httpx.WrapHttpRsp(handler.Handler))
	}
	return router
}
