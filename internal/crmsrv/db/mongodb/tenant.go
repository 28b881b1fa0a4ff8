package mongodb

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/quotaflow/quotaflow/internal/common/apperrors"
	"github.com/quotaflow/quotaflow/internal/crmsrv/db/dberror"
	"github.com/quotaflow/quotaflow/internal/crmsrv/db/models"
)

func (s *store) CreateTenant(ctx context.Context, tenant *models.Tenant) apperrors.Error {
	if tenant.CompanyName == "" {
		return dberror.ErrInvalidInput.Msg("company name is required")
	}
	if tenant.ID.IsZero() {
		tenant.ID = primitive.NewObjectID()
	}
	if tenant.Status == "" {
		tenant.Status = models.TenantStatusPending
	}
	now := time.Now().UTC()
	tenant.CreatedAt = now
	tenant.UpdatedAt = now

	if _, err := s.tenants().InsertOne(ctx, tenant); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to create tenant")
		return dberror.ErrDatabase.Err(err)
	}
	return nil
}

func (s *store) GetTenant(ctx context.Context, tenantID string) (*models.Tenant, apperrors.Error) {
	oid, aerr := parseObjectID(tenantID)
	if aerr != nil {
		return nil, aerr
	}

	tenant := &models.Tenant{}
	err := s.tenants().FindOne(ctx, bson.M{"_id": oid}).Decode(tenant)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, dberror.ErrNotFound.Msg("tenant not found")
		}
		log.Ctx(ctx).Error().Err(err).Str("tenant_id", tenantID).Msg("failed to get tenant")
		return nil, dberror.ErrDatabase.Err(err)
	}
	return tenant, nil
}

func (s *store) UpdateTenantStatus(ctx context.Context, tenantID string, status models.TenantStatus) apperrors.Error {
	oid, aerr := parseObjectID(tenantID)
	if aerr != nil {
		return aerr
	}

	res, err := s.tenants().UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("tenant_id", tenantID).Msg("failed to update tenant status")
		return dberror.ErrDatabase.Err(err)
	}
	if res.MatchedCount == 0 {
		return dberror.ErrNotFound.Msg("tenant not found")
	}
	return nil
}

func (s *store) DeleteTenant(ctx context.Context, tenantID string) apperrors.Error {
	oid, aerr := parseObjectID(tenantID)
	if aerr != nil {
		return aerr
	}

	res, err := s.tenants().DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("tenant_id", tenantID).Msg("failed to delete tenant")
		return dberror.ErrDatabase.Err(err)
	}
	if res.DeletedCount == 0 {
		return dberror.ErrNotFound.Msg("tenant not found")
	}
	return nil
}
