package auth

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quotaflow/quotaflow/internal/crmsrv/crmcommon"
	"github.com/quotaflow/quotaflow/internal/crmsrv/db/dberror"
	"github.com/quotaflow/quotaflow/internal/crmsrv/db/models"
	"github.com/quotaflow/quotaflow/internal/crmsrv/masterdata"
)

func TestRegisterSuccess(t *testing.T) {
	h, store := newTestHandler(t)

	rr := postAuth(t, h, registerBody("Acme Corp", "Jane Doe", "jane@acme.test", "s3cret"))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	require.Len(t, store.Tenants, 1)
	tenant := store.Tenants[0]
	assert.Equal(t, "Acme Corp", tenant.CompanyName)
	assert.Equal(t, models.TenantStatusActive, tenant.Status)

	require.Len(t, store.Users, 1)
	user := store.Users[0]
	assert.Equal(t, "Jane", user.FirstName)
	assert.Equal(t, "Doe", user.LastName)
	assert.Equal(t, "jane@acme.test", user.Email)
	assert.Equal(t, crmcommon.RoleAdmin, user.Role)
	assert.Equal(t, tenant.ID, user.TenantID)
	assert.NotEqual(t, "s3cret", user.PasswordHash)
	assert.True(t, crmcommon.VerifyPassword(user.PasswordHash, "s3cret"))

	// both catalogs seeded, orders by list position, everything active
	require.Len(t, store.Master, 10)
	byCategory := map[string][]*models.MasterData{}
	for _, e := range store.Master {
		assert.Equal(t, tenant.ID, e.TenantID)
		assert.True(t, e.IsActive)
		byCategory[e.Category] = append(byCategory[e.Category], e)
	}
	require.Len(t, byCategory[masterdata.CategoryDealStages], 5)
	require.Len(t, byCategory[masterdata.CategoryLeadSources], 5)
	for i, e := range byCategory[masterdata.CategoryDealStages] {
		assert.Equal(t, masterdata.DealStages[i], e.Value)
		assert.Equal(t, i, e.DisplayOrder)
	}
	for i, e := range byCategory[masterdata.CategoryLeadSources] {
		assert.Equal(t, masterdata.LeadSources[i], e.Value)
		assert.Equal(t, i, e.DisplayOrder)
	}
}

func TestRegisterResponseOmitsPasswordHash(t *testing.T) {
	h, _ := newTestHandler(t)

	rr := postAuth(t, h, registerBody("Acme Corp", "Jane Doe", "jane@acme.test", "s3cret"))
	require.Equal(t, http.StatusOK, rr.Code)

	assert.NotContains(t, rr.Body.String(), "s3cret")
	assert.NotContains(t, rr.Body.String(), "password")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	h, store := newTestHandler(t)

	rr := postAuth(t, h, registerBody("Acme Corp", "Jane Doe", "jane@acme.test", "s3cret"))
	require.Equal(t, http.StatusOK, rr.Code)

	rr = postAuth(t, h, registerBody("Other Corp", "John Roe", "jane@acme.test", "different"))
	assert.Equal(t, http.StatusConflict, rr.Code)
	body := decodeBody(t, rr)
	assert.Equal(t, "A user with this email already exists", body["error"])

	// nothing from the second attempt persisted
	assert.Len(t, store.Tenants, 1)
	assert.Len(t, store.Users, 1)
	assert.Len(t, store.Master, 10)
}

func TestRegisterRollbackOnSeedFailure(t *testing.T) {
	h, store := newTestHandler(t)
	store.FailInsertMasterData = dberror.ErrDatabase.Msg("insert failed")

	rr := postAuth(t, h, registerBody("Acme Corp", "Jane Doe", "jane@acme.test", "s3cret"))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	// completed steps compensated in reverse: user deleted, then tenant
	assert.Empty(t, store.Tenants)
	assert.Empty(t, store.Users)
	assert.Empty(t, store.Master)
	assert.Equal(t, []string{
		"GetUserByEmail",
		"CreateTenant",
		"CreateUser",
		"InsertMasterData",
		"DeleteUser",
		"DeleteTenant",
	}, store.Ops)
}

func TestRegisterRollbackOnActivationFailure(t *testing.T) {
	h, store := newTestHandler(t)
	store.FailUpdateTenantStatus = dberror.ErrDatabase.Msg("update failed")

	rr := postAuth(t, h, registerBody("Acme Corp", "Jane Doe", "jane@acme.test", "s3cret"))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	assert.Empty(t, store.Tenants)
	assert.Empty(t, store.Users)
	assert.Empty(t, store.Master)
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing company", registerBody("", "Jane Doe", "jane@acme.test", "s3cret")},
		{"missing name", registerBody("Acme Corp", "", "jane@acme.test", "s3cret")},
		{"missing email", registerBody("Acme Corp", "Jane Doe", "", "s3cret")},
		{"invalid email", registerBody("Acme Corp", "Jane Doe", "not-an-email", "s3cret")},
		{"missing password", registerBody("Acme Corp", "Jane Doe", "jane@acme.test", "")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, store := newTestHandler(t)
			rr := postAuth(t, h, tt.body)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Empty(t, store.Tenants)
			assert.Empty(t, store.Users)
		})
	}
}

func TestSplitFullName(t *testing.T) {
	tests := []struct {
		name      string
		wantFirst string
		wantLast  string
	}{
		{"Jane Doe", "Jane", "Doe"},
		{"Jane", "Jane", ""},
		{"Mary Jane Watson", "Mary", "Jane Watson"},
		{"  Jane Doe  ", "Jane", "Doe"},
	}
	for _, tt := range tests {
		first, last := splitFullName(tt.name)
		assert.Equal(t, tt.wantFirst, first, tt.name)
		assert.Equal(t, tt.wantLast, last, tt.name)
	}
}
