package users

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
	"github.com/quotaflow/quotaflow/internal/crmsrv/db/fake"
	"github.com/quotaflow/quotaflow/internal/crmsrv/db/models"
)

type caller struct {
	tenantID primitive.ObjectID
	userID   string
	role     crmcommon.Role
}

func doRequest(t *testing.T, h *Handler, c caller, method, path string, body any) *httptest.ResponseRecorder {
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
	ctx := crmcommon.SetTenantIdInContext(context.Background(), crmcommon.TenantId(c.tenantID.Hex()))
	ctx = crmcommon.SetUserIdInContext(ctx, crmcommon.UserId(c.userID))
	ctx = crmcommon.SetUserRoleInContext(ctx, c.role)
	req = req.WithContext(ctx)
	rr := httptest.NewRecorder()
	h.Router().ServeHTTP(rr, req)
	return rr
}

func seedUser(t *testing.T, store *fake.Store, tenantID primitive.ObjectID, email string, role crmcommon.Role) *models.User {
	t.Helper()
	hash, err := crmcommon.HashPassword("s3cret")
	require.NoError(t, err)
	u := &models.User{
		FirstName:    "Test",
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Status:       models.UserStatusActive,
		TenantID:     tenantID,
	}
	require.Nil(t, store.CreateUser(context.Background(), u))
	return u
}

func TestListUsers(t *testing.T) {
	store := fake.New()
	h := NewHandler(store)
	tenantID := primitive.NewObjectID()
	otherTenant := primitive.NewObjectID()

	admin := seedUser(t, store, tenantID, "admin@acme.test", crmcommon.RoleAdmin)
	seedUser(t, store, tenantID, "rep@acme.test", crmcommon.RoleSalesRep)
	seedUser(t, store, otherTenant, "other@else.test", crmcommon.RoleAdmin)

	rr := doRequest(t, h, caller{tenantID, admin.ID.Hex(), crmcommon.RoleSalesRep}, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var users []map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &users))
	assert.Len(t, users, 2)
	for _, u := range users {
		_, present := u["password"]
		assert.False(t, present)
	}
	assert.NotContains(t, rr.Body.String(), "$2a$")
}

func TestCreateUser(t *testing.T) {
	store := fake.New()
	h := NewHandler(store)
	tenantID := primitive.NewObjectID()
	admin := seedUser(t, store, tenantID, "admin@acme.test", crmcommon.RoleAdmin)

	rr := doRequest(t, h, caller{tenantID, admin.ID.Hex(), crmcommon.RoleAdmin}, http.MethodPost, "/", map[string]any{
		"firstName": "New",
		"lastName":  "Rep",
		"email":     "rep@acme.test",
		"password":  "s3cret",
		"role":      "sales-rep",
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	require.Len(t, store.Users, 2)
	created := store.Users[1]
	assert.Equal(t, crmcommon.RoleSalesRep, created.Role)
	assert.Equal(t, tenantID, created.TenantID)
	assert.True(t, crmcommon.VerifyPassword(created.PasswordHash, "s3cret"))
	assert.NotContains(t, rr.Body.String(), created.PasswordHash)
}

func TestCreateUserForbiddenForNonAdmin(t *testing.T) {
	store := fake.New()
	h := NewHandler(store)
	tenantID := primitive.NewObjectID()
	rep := seedUser(t, store, tenantID, "rep@acme.test", crmcommon.RoleSalesRep)

	rr := doRequest(t, h, caller{tenantID, rep.ID.Hex(), crmcommon.RoleSalesRep}, http.MethodPost, "/", map[string]any{
		"firstName": "New",
		"email":     "new@acme.test",
		"password":  "s3cret",
		"role":      "sales-rep",
	})
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Len(t, store.Users, 1)
}

func TestCreateUserUnknownRole(t *testing.T) {
	store := fake.New()
	h := NewHandler(store)
	tenantID := primitive.NewObjectID()
	admin := seedUser(t, store, tenantID, "admin@acme.test", crmcommon.RoleAdmin)

	rr := doRequest(t, h, caller{tenantID, admin.ID.Hex(), crmcommon.RoleAdmin}, http.MethodPost, "/", map[string]any{
		"firstName": "New",
		"email":     "new@acme.test",
		"password":  "s3cret",
		"role":      "superuser",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	store := fake.New()
	h := NewHandler(store)
	tenantID := primitive.NewObjectID()
	admin := seedUser(t, store, tenantID, "admin@acme.test", crmcommon.RoleAdmin)

	rr := doRequest(t, h, caller{tenantID, admin.ID.Hex(), crmcommon.RoleAdmin}, http.MethodPost, "/", map[string]any{
		"firstName": "Dup",
		"email":     "admin@acme.test",
		"password":  "s3cret",
		"role":      "sales-rep",
	})
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestDeleteUser(t *testing.T) {
	store := fake.New()
	h := NewHandler(store)
	tenantID := primitive.NewObjectID()
	admin := seedUser(t, store, tenantID, "admin@acme.test", crmcommon.RoleAdmin)
	rep := seedUser(t, store, tenantID, "rep@acme.test", crmcommon.RoleSalesRep)

	adminCaller := caller{tenantID, admin.ID.Hex(), crmcommon.RoleAdmin}

	// self-delete is blocked
	rr := doRequest(t, h, adminCaller, http.MethodDelete, "/"+admin.ID.Hex(), nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Len(t, store.Users, 2)

	// non-admin cannot delete
	rr = doRequest(t, h, caller{tenantID, rep.ID.Hex(), crmcommon.RoleSalesRep}, http.MethodDelete, "/"+admin.ID.Hex(), nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = doRequest(t, h, adminCaller, http.MethodDelete, "/"+rep.ID.Hex(), nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Len(t, store.Users, 1)
}
