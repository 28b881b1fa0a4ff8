package deals

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/quotaflow/quotaflow/internal/common/apperrors"
	"github.com/quotaflow/quotaflow/internal/common/httpx"
	"github.com/quotaflow/quotaflow/internal/crmsrv/crmcommon"
	"github.com/quotaflow/quotaflow/internal/crmsrv/db"
	"github.com/quotaflow/quotaflow/internal/crmsrv/db/models"
)

type dealRequest struct {
	Title      string     `json:"title" validate:"required"`
	Amount     float64    `json:"amount" validate:"gte=0"`
	Stage      string     `json:"stage"`
	Status     string     `json:"status"`
	AssignedTo string     `json:"assignedTo"`
	CloseDate  *time.Time `json:"closeDate"`
}

type listRsp struct {
	Data       []*models.Deal `json:"data"`
	Pagination *db.Pagination `json:"pagination"`
}

func (h *Handler) create(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	req := &dealRequest{}
	if err := httpx.GetRequestData(r, req); err != nil {
		return nil, err
	}
	if err := validate.Struct(req); err != nil {
		return nil, ErrInvalidRequest.Err(err)
	}

	tenantID, aerr := tenantOID(ctx)
	if aerr != nil {
		return nil, aerr
	}

	deal := &models.Deal{
		Title:      req.Title,
		Amount:     req.Amount,
		Stage:      req.Stage,
		Status:     models.DealStatus(req.Status),
		AssignedTo: req.AssignedTo,
		CloseDate:  req.CloseDate,
		TenantID:   tenantID,
	}
	if err := h.store.CreateDeal(ctx, deal); err != nil {
		return nil, err
	}

	return &httpx.Response{
		StatusCode: http.StatusCreated,
		Location:   "/api/deals/" + deal.ID.Hex(),
		Response:   deal,
	}, nil
}

func (h *Handler) get(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	tenantID := crmcommon.TenantIdFromContext(ctx)

	deal, err := h.store.GetDeal(ctx, string(tenantID), chi.URLParam(r, "dealID"))
	if err != nil {
		return nil, err
	}
	return &httpx.Response{
		StatusCode: http.StatusOK,
		Response:   deal,
	}, nil
}

func (h *Handler) update(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	req := &dealRequest{}
	if err := httpx.GetRequestData(r, req); err != nil {
		return nil, err
	}
	if err := validate.Struct(req); err != nil {
		return nil, ErrInvalidRequest.Err(err)
	}

	tenantID := crmcommon.TenantIdFromContext(ctx)
	deal, err := h.store.GetDeal(ctx, string(tenantID), chi.URLParam(r, "dealID"))
	if err != nil {
		return nil, err
	}

	deal.Title = req.Title
	deal.Amount = req.Amount
	deal.Stage = req.Stage
	if req.Status != "" {
		deal.Status = models.DealStatus(req.Status)
	}
	deal.AssignedTo = req.AssignedTo
	deal.CloseDate = req.CloseDate

	if err := h.store.UpdateDeal(ctx, deal); err != nil {
		return nil, err
	}
	return &httpx.Response{
		StatusCode: http.StatusOK,
		Response:   deal,
	}, nil
}

func (h *Handler) delete(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	tenantID := crmcommon.TenantIdFromContext(ctx)

	if err := h.store.DeleteDeal(ctx, string(tenantID), chi.URLParam(r, "dealID")); err != nil {
		return nil, err
	}
	return &httpx.Response{
		StatusCode: http.StatusNoContent,
	}, nil
}

func (h *Handler) list(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	tenantID := crmcommon.TenantIdFromContext(ctx)

	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	filter := db.DealFilter{
		Title:      q.Get("title"),
		Status:     q.Get("status"),
		AssignedTo: q.Get("assignedTo"),
	}

	deals, pagination, err := h.store.ListDeals(ctx, string(tenantID), filter, page, limit)
	if err != nil {
		return nil, err
	}
	if deals == nil {
		deals = []*models.Deal{}
	}
	return &httpx.Response{
		StatusCode: http.StatusOK,
		Response: &listRsp{
			Data:       deals,
			Pagination: pagination,
		},
	}, nil
}

func tenantOID(ctx context.Context) (primitive.ObjectID, apperrors.Error) {
	tenantID := crmcommon.TenantIdFromContext(ctx)
	oid, err := primitive.ObjectIDFromHex(string(tenantID))
	if err != nil {
		return primitive.NilObjectID, ErrMissingTenant
	}
	return oid, nil
}
