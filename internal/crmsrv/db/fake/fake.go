// Package fake provides an in-memory db.Store for tests. It mirrors the
// mongodb backend's semantics (tenant scoping, duplicate email detection,
// pagination math) and supports per-operation failure injection.
package fake

import (
	"context"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/quotaflow/quotaflow/internal/common/apperrors"
	"github.com/quotaflow/quotaflow/internal/crmsrv/db"
	"github.com/quotaflow/quotaflow/internal/crmsrv/db/dberror"
	"github.com/quotaflow/quotaflow/internal/crmsrv/db/models"
)

type Store struct {
	mu      sync.Mutex
	Tenants []*models.Tenant
	Users   []*models.User
	Master  []*models.MasterData
	Leads   []*models.Lead
	Deals   []*models.Deal

	// Ops records every store call in order, for asserting that an operation
	// touched (or did not touch) the database.
	Ops []string

	// Failure injection: when set, the matching operation returns the error.
	FailCreateTenant       apperrors.Error
	FailCreateUser         apperrors.Error
	FailInsertMasterData   apperrors.Error
	FailUpdateTenantStatus apperrors.Error
}

func New() *Store {
	return &Store{}
}

func (s *Store) record(op string) {
	s.Ops = append(s.Ops, op)
}

func (s *Store) Close(ctx context.Context) error { return nil }

// TenantStore

func (s *Store) CreateTenant(ctx context.Context, tenant *models.Tenant) apperrors.Error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("CreateTenant")
	if s.FailCreateTenant != nil {
		return s.FailCreateTenant
	}
	if tenant.ID.IsZero() {
		tenant.ID = primitive.NewObjectID()
	}
	if tenant.Status == "" {
		tenant.Status = models.TenantStatusPending
	}
	s.Tenants = append(s.Tenants, tenant)
	return nil
}

func (s *Store) GetTenant(ctx context.Context, tenantID string) (*models.Tenant, apperrors.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("GetTenant")
	for _, t := range s.Tenants {
		if t.ID.Hex() == tenantID {
			return t, nil
		}
	}
	return nil, dberror.ErrNotFound.Msg("tenant not found")
}

func (s *Store) UpdateTenantStatus(ctx context.Context, tenantID string, status models.TenantStatus) apperrors.Error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("UpdateTenantStatus")
	if s.FailUpdateTenantStatus != nil {
		return s.FailUpdateTenantStatus
	}
	for _, t := range s.Tenants {
		if t.ID.Hex() == tenantID {
			t.Status = status
			return nil
		}
	}
	return dberror.ErrNotFound.Msg("tenant not found")
}

func (s *Store) DeleteTenant(ctx context.Context, tenantID string) apperrors.Error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("DeleteTenant")
	for i, t := range s.Tenants {
		if t.ID.Hex() == tenantID {
			s.Tenants = append(s.Tenants[:i], s.Tenants[i+1:]...)
			return nil
		}
	}
	return dberror.ErrNotFound.Msg("tenant not found")
}

// UserStore

func (s *Store) CreateUser(ctx context.Context, user *models.User) apperrors.Error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("CreateUser")
	if s.FailCreateUser != nil {
		return s.FailCreateUser
	}
	for _, u := range s.Users {
		if u.Email == user.Email {
			return dberror.ErrAlreadyExists.Msg("a user with this email already exists")
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	s.Users = append(s.Users, user)
	return nil
}

func (s *Store) GetUser(ctx context.Context, tenantID, userID string) (*models.User, apperrors.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("GetUser")
	for _, u := range s.Users {
		if u.ID.Hex() == userID && u.TenantID.Hex() == tenantID {
			return u, nil
		}
	}
	return nil, dberror.ErrNotFound.Msg("user not found")
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, apperrors.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("GetUserByEmail")
	for _, u := range s.Users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, dberror.ErrNotFound.Msg("user not found")
}

func (s *Store) ListUsersByTenant(ctx context.Context, tenantID string) ([]*models.User, apperrors.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("ListUsersByTenant")
	var users []*models.User
	for _, u := range s.Users {
		if u.TenantID.Hex() == tenantID {
			users = append(users, u)
		}
	}
	return users, nil
}

func (s *Store) DeleteUser(ctx context.Context, tenantID, userID string) apperrors.Error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("DeleteUser")
	for i, u := range s.Users {
		if u.ID.Hex() == userID && u.TenantID.Hex() == tenantID {
			s.Users = append(s.Users[:i], s.Users[i+1:]...)
			return nil
		}
	}
	return dberror.ErrNotFound.Msg("user not found")
}

// MasterDataStore

func (s *Store) InsertMasterData(ctx context.Context, entries []*models.MasterData) apperrors.Error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("InsertMasterData")
	if s.FailInsertMasterData != nil {
		return s.FailInsertMasterData
	}
	for _, e := range entries {
		if e.ID.IsZero() {
			e.ID = primitive.NewObjectID()
		}
		s.Master = append(s.Master, e)
	}
	return nil
}

func (s *Store) ListMasterDataByCategory(ctx context.Context, tenantID, category string) ([]*models.MasterData, apperrors.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("ListMasterDataByCategory")
	var entries []*models.MasterData
	for _, e := range s.Master {
		if e.TenantID.Hex() == tenantID && e.Category == category && e.IsActive {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (s *Store) DeleteMasterDataByTenant(ctx context.Context, tenantID string) apperrors.Error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("DeleteMasterDataByTenant")
	var kept []*models.MasterData
	for _, e := range s.Master {
		if e.TenantID.Hex() != tenantID {
			kept = append(kept, e)
		}
	}
	s.Master = kept
	return nil
}

// LeadStore

func (s *Store) CreateLead(ctx context.Context, lead *models.Lead) apperrors.Error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("CreateLead")
	if lead.ID.IsZero() {
		lead.ID = primitive.NewObjectID()
	}
	if lead.Status == "" {
		lead.Status = models.LeadStatusNew
	}
	s.Leads = append(s.Leads, lead)
	return nil
}

func (s *Store) GetLead(ctx context.Context, tenantID, leadID string) (*models.Lead, apperrors.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("GetLead")
	for _, l := range s.Leads {
		if l.ID.Hex() == leadID && l.TenantID.Hex() == tenantID {
			return l, nil
		}
	}
	return nil, dberror.ErrNotFound.Msg("lead not found")
}

func (s *Store) UpdateLead(ctx context.Context, lead *models.Lead) apperrors.Error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("UpdateLead")
	for i, l := range s.Leads {
		if l.ID == lead.ID && l.TenantID == lead.TenantID {
			s.Leads[i] = lead
			return nil
		}
	}
	return dberror.ErrNotFound.Msg("lead not found")
}

func (s *Store) DeleteLead(ctx context.Context, tenantID, leadID string) apperrors.Error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("DeleteLead")
	for i, l := range s.Leads {
		if l.ID.Hex() == leadID && l.TenantID.Hex() == tenantID {
			s.Leads = append(s.Leads[:i], s.Leads[i+1:]...)
			return nil
		}
	}
	return dberror.ErrNotFound.Msg("lead not found")
}

func (s *Store) ListLeads(ctx context.Context, tenantID string, filter db.LeadFilter, page, limit int) ([]*models.Lead, *db.Pagination, apperrors.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("ListLeads")
	page, limit = db.NormalizePage(page, limit)

	var matched []*models.Lead
	for _, l := range s.Leads {
		if l.TenantID.Hex() != tenantID {
			continue
		}
		if filter.Status != "" && string(l.Status) != filter.Status {
			continue
		}
		if filter.Source != "" && l.Source != filter.Source {
			continue
		}
		if filter.AssignedTo != "" && l.AssignedTo != filter.AssignedTo {
			continue
		}
		matched = append(matched, l)
	}

	pagination := db.NewPagination(page, limit, len(matched))
	start := (page - 1) * limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], pagination, nil
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// DealStore

func (s *Store) CreateDeal(ctx context.Context, deal *models.Deal) apperrors.Error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("CreateDeal")
	if deal.ID.IsZero() {
		deal.ID = primitive.NewObjectID()
	}
	if deal.Status == "" {
		deal.Status = models.DealStatusOpen
	}
	s.Deals = append(s.Deals, deal)
	return nil
}

func (s *Store) GetDeal(ctx context.Context, tenantID, dealID string) (*models.Deal, apperrors.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("GetDeal")
	for _, d := range s.Deals {
		if d.ID.Hex() == dealID && d.TenantID.Hex() == tenantID {
			return d, nil
		}
	}
	return nil, dberror.ErrNotFound.Msg("deal not found")
}

func (s *Store) UpdateDeal(ctx context.Context, deal *models.Deal) apperrors.Error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("UpdateDeal")
	for i, d := range s.Deals {
		if d.ID == deal.ID && d.TenantID == deal.TenantID {
			s.Deals[i] = deal
			return nil
		}
	}
	return dberror.ErrNotFound.Msg("deal not found")
}

func (s *Store) DeleteDeal(ctx context.Context, tenantID, dealID string) apperrors.Error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("DeleteDeal")
	for i, d := range s.Deals {
		if d.ID.Hex() == dealID && d.TenantID.Hex() == tenantID {
			s.Deals = append(s.Deals[:i], s.Deals[i+1:]...)
			return nil
		}
	}
	return dberror.ErrNotFound.Msg("deal not found")
}

func (s *Store) ListDeals(ctx context.Context, tenantID string, filter db.DealFilter, page, limit int) ([]*models.Deal, *db.Pagination, apperrors.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("ListDeals")
	page, limit = db.NormalizePage(page, limit)

	var matched []*models.Deal
	for _, d := range s.Deals {
		if d.TenantID.Hex() != tenantID {
			continue
		}
		if filter.Status != "" && string(d.Status) != filter.Status {
			continue
		}
		if filter.AssignedTo != "" && d.AssignedTo != filter.AssignedTo {
			continue
		}
		if filter.Title != "" && !containsFold(d.Title, filter.Title) {
			continue
		}
		matched = append(matched, d)
	}

	pagination := db.NewPagination(page, limit, len(matched))
	start := (page - 1) * limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], pagination, nil
}
