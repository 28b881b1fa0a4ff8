package leads

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/quotaflow/quotaflow/internal/common/apperrors"
	"github.com/quotaflow/quotaflow/internal/common/httpx"
	"github.com/quotaflow/quotaflow/internal/crmsrv/crmcommon"
	"github.com/quotaflow/quotaflow/internal/crmsrv/db"
	"github.com/quotaflow/quotaflow/internal/crmsrv/db/models"
)

type leadRequest struct {
	Name       string `json:"name" validate:"required"`
	Company    string `json:"company"`
	Email      string `json:"email" validate:"omitempty,email"`
	Phone      string `json:"phone"`
	Source     string `json:"source"`
	Status     string `json:"status"`
	AssignedTo string `json:"assignedTo"`
	Notes      string `json:"notes"`
}

type listRsp struct {
	Data       []*models.Lead `json:"data"`
	Pagination *db.Pagination `json:"pagination"`
}

func (h *Handler) create(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	req := &leadRequest{}
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

	lead := &models.Lead{
		Name:       req.Name,
		Company:    req.Company,
		Email:      req.Email,
		Phone:      req.Phone,
		Source:     req.Source,
		Status:     models.LeadStatus(req.Status),
		AssignedTo: req.AssignedTo,
		Notes:      req.Notes,
		TenantID:   tenantID,
	}
	if err := h.store.CreateLead(ctx, lead); err != nil {
		return nil, err
	}

	return &httpx.Response{
		StatusCode: http.StatusCreated,
		Location:   "/api/leads/" + lead.ID.Hex(),
		Response:   lead,
	}, nil
}

func (h *Handler) get(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	tenantID := crmcommon.TenantIdFromContext(ctx)

	lead, err := h.store.GetLead(ctx, string(tenantID), chi.URLParam(r, "leadID"))
	if err != nil {
		return nil, err
	}
	return &httpx.Response{
		StatusCode: http.StatusOK,
		Response:   lead,
	}, nil
}

func (h *Handler) update(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	req := &leadRequest{}
	if err := httpx.GetRequestData(r, req); err != nil {
		return nil, err
	}
	if err := validate.Struct(req); err != nil {
		return nil, ErrInvalidRequest.Err(err)
	}

	tenantID := crmcommon.TenantIdFromContext(ctx)
	lead, err := h.store.GetLead(ctx, string(tenantID), chi.URLParam(r, "leadID"))
	if err != nil {
		return nil, err
	}

	lead.Name = req.Name
	lead.Company = req.Company
	lead.Email = req.Email
	lead.Phone = req.Phone
	lead.Source = req.Source
	if req.Status != "" {
		lead.Status = models.LeadStatus(req.Status)
	}
	lead.AssignedTo = req.AssignedTo
	lead.Notes = req.Notes

	if err := h.store.UpdateLead(ctx, lead); err != nil {
		return nil, err
	}
	return &httpx.Response{
		StatusCode: http.StatusOK,
		Response:   lead,
	}, nil
}

func (h *Handler) delete(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	tenantID := crmcommon.TenantIdFromContext(ctx)

	if err := h.store.DeleteLead(ctx, string(tenantID), chi.URLParam(r, "leadID")); err != nil {
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
	filter := db.LeadFilter{
		Status:     q.Get("status"),
		Source:     q.Get("source"),
		AssignedTo: q.Get("assignedTo"),
	}

	leads, pagination, err := h.store.ListLeads(ctx, string(tenantID), filter, page, limit)
	if err != nil {
		return nil, err
	}
	if leads == nil {
		leads = []*models.Lead{}
	}
	return &httpx.Response{
		StatusCode: http.StatusOK,
		Response: &listRsp{
			Data:       leads,
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
