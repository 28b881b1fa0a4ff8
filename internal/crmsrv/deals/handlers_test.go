package deals

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/quotaflow/quotaflow/internal/crmsrv/crmcommon"
	"github.com/quotaflow/quotaflow/internal/crmsrv/db"
	"github.com/quotaflow/quotaflow/internal/crmsrv/db/fake"
	"github.com/quotaflow/quotaflow/internal/crmsrv/db/models"
)

func doRequest(t *testing.T, h *Handler, tenantID primitive.ObjectID, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	ctx := crmcommon.SetTenantIdInContext(context.Background(), crmcommon.TenantId(tenantID.Hex()))
	req = req.WithContext(ctx)
	rr := httptest.NewRecorder()
	h.Router().ServeHTTP(rr, req)
	return rr
}

func TestCreateDeal(t *testing.T) {
	store := fake.New()
	h := NewHandler(store)
	tenantID := primitive.NewObjectID()

	rr := doRequest(t, h, tenantID, http.MethodPost, "/", map[string]any{
		"title":  "Enterprise license",
		"amount": 25000.0,
		"stage":  "proposal",
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	require.Len(t, store.Deals, 1)
	deal := store.Deals[0]
	assert.Equal(t, "Enterprise license", deal.Title)
	assert.Equal(t, 25000.0, deal.Amount)
	assert.Equal(t, "proposal", deal.Stage)
	assert.Equal(t, models.DealStatusOpen, deal.Status)
	assert.Equal(t, tenantID, deal.TenantID)
}

func TestCreateDealValidation(t *testing.T) {
	h := NewHandler(fake.New())
	tenantID := primitive.NewObjectID()

	// title required
	rr := doRequest(t, h, tenantID, http.MethodPost, "/", map[string]any{"amount": 100.0})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	// amount must not be negative
	rr = doRequest(t, h, tenantID, http.MethodPost, "/", map[string]any{
		"title":  "Bad",
		"amount": -1.0,
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUpdateDealStatus(t *testing.T) {
	store := fake.New()
	h := NewHandler(store)
	tenantID := primitive.NewObjectID()

	deal := &models.Deal{Title: "Open deal", Status: models.DealStatusOpen, TenantID: tenantID}
	require.Nil(t, store.CreateDeal(context.Background(), deal))

	rr := doRequest(t, h, tenantID, http.MethodPut, "/"+deal.ID.Hex(), map[string]any{
		"title":  "Open deal",
		"amount": 5000.0,
		"status": "won",
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	got, err := store.GetDeal(context.Background(), tenantID.Hex(), deal.ID.Hex())
	require.Nil(t, err)
	assert.Equal(t, models.DealStatusWon, got.Status)
	assert.Equal(t, 5000.0, got.Amount)
}

func TestDeleteDealTenantScoped(t *testing.T) {
	store := fake.New()
	h := NewHandler(store)
	tenantID := primitive.NewObjectID()
	otherTenant := primitive.NewObjectID()

	deal := &models.Deal{Title: "Mine", TenantID: tenantID}
	require.Nil(t, store.CreateDeal(context.Background(), deal))

	rr := doRequest(t, h, otherTenant, http.MethodDelete, "/"+deal.ID.Hex(), nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Len(t, store.Deals, 1)

	rr = doRequest(t, h, tenantID, http.MethodDelete, "/"+deal.ID.Hex(), nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, store.Deals)
}

func TestListDealsTitleFilter(t *testing.T) {
	store := fake.New()
	h := NewHandler(store)
	tenantID := primitive.NewObjectID()

	require.Nil(t, store.CreateDeal(context.Background(), &models.Deal{
		Title: "Enterprise License Renewal", TenantID: tenantID,
	}))
	require.Nil(t, store.CreateDeal(context.Background(), &models.Deal{
		Title: "Starter Pack", TenantID: tenantID,
	}))

	rr := doRequest(t, h, tenantID, http.MethodGet, "/?title=license", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var rsp struct {
		Data       []*models.Deal `json:"data"`
		Pagination *db.Pagination `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &rsp))
	require.Len(t, rsp.Data, 1)
	assert.Equal(t, "Enterprise License Renewal", rsp.Data[0].Title)
	assert.Equal(t, 1, rsp.Pagination.TotalItems)
}
