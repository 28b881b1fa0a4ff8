// Package db defines the persistence interfaces for the CRM service. Backends
// live in subpackages (mongodb); handlers depend only on these interfaces so
// tests can substitute an in-memory store.
package db

import (
	"context"

	"github.com/quotaflow/quotaflow/internal/common/apperrors"
	"github.com/quotaflow/quotaflow/internal/crmsrv/db/models"
)

// TenantStore manages tenant records.
type TenantStore interface {
	CreateTenant(ctx context.Context, tenant *models.Tenant) apperrors.Error
	GetTenant(ctx context.Context, tenantID string) (*models.Tenant, apperrors.Error)
	UpdateTenantStatus(ctx context.Context, tenantID string, status models.TenantStatus) apperrors.Error
	DeleteTenant(ctx context.Context, tenantID string) apperrors.Error
}

// UserStore manages user records. Email lookups are system-wide; listings are
// tenant-scoped.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) apperrors.Error
	GetUser(ctx context.Context, tenantID, userID string) (*models.User, apperrors.Error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, apperrors.Error)
	ListUsersByTenant(ctx context.Context, tenantID string) ([]*models.User, apperrors.Error)
	DeleteUser(ctx context.Context, tenantID, userID string) apperrors.Error
}

// MasterDataStore manages tenant-scoped reference data.
type MasterDataStore interface {
	InsertMasterData(ctx context.Context, entries []*models.MasterData) apperrors.Error
	ListMasterDataByCategory(ctx context.Context, tenantID, category string) ([]*models.MasterData, apperrors.Error)
	DeleteMasterDataByTenant(ctx context.Context, tenantID string) apperrors.Error
}

// LeadFilter narrows lead listings. Empty fields match everything.
type LeadFilter struct {
	Status     string
	Source     string
	AssignedTo string
}

// DealFilter narrows deal listings. Title is a case-insensitive substring
// match; the other fields are exact.
type DealFilter struct {
	Title      string
	Status     string
	AssignedTo string
}

// LeadStore manages tenant-scoped leads.
type LeadStore interface {
	CreateLead(ctx context.Context, lead *models.Lead) apperrors.Error
	GetLead(ctx context.Context, tenantID, leadID string) (*models.Lead, apperrors.Error)
	UpdateLead(ctx context.Context, lead *models.Lead) apperrors.Error
	DeleteLead(ctx context.Context, tenantID, leadID string) apperrors.Error
	ListLeads(ctx context.Context, tenantID string, filter LeadFilter, page, limit int) ([]*models.Lead, *Pagination, apperrors.Error)
}

// DealStore manages tenant-scoped deals.
type DealStore interface {
	CreateDeal(ctx context.Context, deal *models.Deal) apperrors.Error
	GetDeal(ctx context.Context, tenantID, dealID string) (*models.Deal, apperrors.Error)
	UpdateDeal(ctx context.Context, deal *models.Deal) apperrors.Error
	DeleteDeal(ctx context.Context, tenantID, dealID string) apperrors.Error
	ListDeals(ctx context.Context, tenantID string, filter DealFilter, page, limit int) ([]*models.Deal, *Pagination, apperrors.Error)
}

// Store is the full persistence surface of the service.
type Store interface {
	TenantStore
	UserStore
	MasterDataStore
	LeadStore
	DealStore
	Close(ctx context.Context) error
}
