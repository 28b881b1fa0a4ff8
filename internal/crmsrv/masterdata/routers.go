package masterdata

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quotaflow/quotaflow/internal/common/apperrors"
	"github.com/quotaflow/quotaflow/internal/common/httpx"
	"github.com/quotaflow/quotaflow/internal/crmsrv/crmcommon"
	"github.com/quotaflow/quotaflow/internal/crmsrv/db"
)

var (
	ErrMasterData      apperrors.Error = apperrors.New("master data error").SetStatusCode(http.StatusInternalServerError)
	ErrUnknownCategory apperrors.Error = ErrMasterData.New("unknown master data category").SetStatusCode(http.StatusBadRequest)
)

type Handler struct {
	store db.MasterDataStore
}

func NewHandler(store db.MasterDataStore) *Handler {
	return &Handler{store: store}
}

var mdHandlers = func(h *Handler) []httpx.ResponseHandlerParam {
	return []httpx.ResponseHandlerParam{
		{
			Method:  http.MethodGet,
			Path:    "/{category}",
			Handler: h.listByCategory,
		},
	}
}

// Router returns the routes for master data reads. The caller mounts it
// behind the session middleware.
func (h *Handler) Router() chi.Router {
	router := chi.NewRouter()
	for _, handler := range mdHandlers(h) {
		router.Method(handler.Method, handler.Path, httpx.WrapHttpRsp(handler.Handler))
	}
	return router
}

func (h *Handler) listByCategory(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	category := chi.URLParam(r, "category")
	if !KnownCategory(category) {
		return nil, ErrUnknownCategory.Msg("unknown master data category: " + category)
	}

	tenantID := crmcommon.TenantIdFromContext(ctx)
	entries, err := h.store.ListMasterDataByCategory(ctx, string(tenantID), category)
	if err != nil {
		return nil, err
	}

	return &httpx.Response{
		StatusCode: http.StatusOK,
		Response:   entries,
	}, nil
}
