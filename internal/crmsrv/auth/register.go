package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/quotaflow/quotaflow/internal/common/apperrors"
	"github.com/quotaflow/quotaflow/internal/common/httpx"
	"github.com/quotaflow/quotaflow/internal/crmsrv/crmcommon"
	"github.com/quotaflow/quotaflow/internal/crmsrv/db/dberror"
	"github.com/quotaflow/quotaflow/internal/crmsrv/db/models"
	"github.com/quotaflow/quotaflow/internal/crmsrv/masterdata"
)

type registerRequest struct {
	CompanyName string `json:"companyName" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required"`
}

type registerRsp struct {
	Tenant *models.Tenant `json:"tenant"`
	User   *models.User   `json:"user"`
}

// register provisions a new tenant: tenant record, admin user, master data
// seeds, activation. The steps run sequentially; each successful step pushes
// an undo, and any later failure walks the undos in reverse so a failed
// registration persists nothing.
func (h *Handler) register(ctx context.Context, req *registerRequest) (*httpx.Response, error) {
	if err := validate.Struct(req); err != nil {
		return nil, ErrInvalidRequest.Err(err)
	}

	// Duplicate pre-check. The unique index on users.email backs this up for
	// the race between concurrent registrations of the same address.
	_, err := h.store.GetUserByEmail(ctx, req.Email)
	if err == nil {
		return nil, ErrDuplicateEmail
	}
	if !err.Is(dberror.ErrNotFound) {
		return nil, ErrRegistrationFailed.Err(err)
	}

	tenant, user, aerr := h.provisionTenant(ctx, req)
	if aerr != nil {
		return nil, aerr
	}

	return &httpx.Response{
		StatusCode: http.StatusOK,
		Response: &registerRsp{
			Tenant: tenant,
			User:   user,
		},
	}, nil
}

// undoStep is one compensation action recorded by a completed provisioning
// step.
type undoStep struct {
	name string
	fn   func(context.Context) error
}

func (h *Handler) provisionTenant(ctx context.Context, req *registerRequest) (*models.Tenant, *models.User, apperrors.Error) {
	var undos []undoStep

	// rollback walks the recorded undos in reverse order. Compensation is
	// best-effort: failures are logged and the walk continues.
	rollback := func() {
		for i := len(undos) - 1; i >= 0; i-- {
			if err := undos[i].fn(ctx); err != nil {
				log.Ctx(ctx).Error().Err(err).Str("step", undos[i].name).Msg("compensation failed")
			}
		}
	}

	tenant := &models.Tenant{
		CompanyName: req.CompanyName,
		Status:      models.TenantStatusPending,
	}
	if err := h.store.CreateTenant(ctx, tenant); err != nil {
		return nil, nil, ErrRegistrationFailed.Err(err)
	}
	tenantID := tenant.ID.Hex()
	undos = append(undos, undoStep{
		name: "create tenant",
		fn:   func(ctx context.Context) error { return h.store.DeleteTenant(ctx, tenantID) },
	})

	hash, hashErr := crmcommon.HashPassword(req.Password)
	if hashErr != nil {
		rollback()
		return nil, nil, ErrRegistrationFailed.Err(hashErr)
	}

	firstName, lastName := splitFullName(req.Name)
	user := &models.User{
		FirstName:    firstName,
		LastName:     lastName,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         crmcommon.RoleAdmin,
		Status:       models.UserStatusActive,
		TenantID:     tenant.ID,
	}
	if err := h.store.CreateUser(ctx, user); err != nil {
		rollback()
		if err.Is(dberror.ErrAlreadyExists) {
			// lost the race against a concurrent registration
			return nil, nil, ErrDuplicateEmail
		}
		return nil, nil, ErrRegistrationFailed.Err(err)
	}
	userID := user.ID.Hex()
	undos = append(undos, undoStep{
		name: "create admin user",
		fn:   func(ctx context.Context) error { return h.store.DeleteUser(ctx, tenantID, userID) },
	})

	if err := h.store.InsertMasterData(ctx, masterdata.SeedForTenant(tenant.ID)); err != nil {
		rollback()
		return nil, nil, ErrRegistrationFailed.Err(err)
	}
	undos = append(undos, undoStep{
		name: "seed master data",
		fn:   func(ctx context.Context) error { return h.store.DeleteMasterDataByTenant(ctx, tenantID) },
	})

	if err := h.store.UpdateTenantStatus(ctx, tenantID, models.TenantStatusActive); err != nil {
		rollback()
		return nil, nil, ErrRegistrationFailed.Err(err)
	}
	tenant.Status = models.TenantStatusActive

	log.Ctx(ctx).Info().Str("tenant_id", tenantID).Str("email", req.Email).Msg("tenant provisioned")
	return tenant, user, nil
}

// splitFullName splits a full name at the first whitespace boundary. The
// remainder becomes the last name; either part may be empty.
func splitFullName(name string) (firstName, lastName string) {
	name = strings.TrimSpace(name)
	firstName, lastName, _ = strings.Cut(name, " ")
	return firstName, lastName
}
