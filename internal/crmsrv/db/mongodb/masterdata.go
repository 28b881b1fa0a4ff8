package mongodb

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/quotaflow/quotaflow/internal/common/apperrors"
	"github.com/quotaflow/quotaflow/internal/crmsrv/db/dberror"
	"github.com/quotaflow/quotaflow/internal/crmsrv/db/models"
)

func (s *store) InsertMasterData(ctx context.Context, entries []*models.MasterData) apperrors.Error {
	if len(entries) == 0 {
		return nil
	}

	now := time.Now().UTC()
	docs := make([]interface{}, 0, len(entries))
	for _, e := range entries {
		if e.TenantID.IsZero() {
			return dberror.ErrInvalidInput.Msg("master data entry missing tenant id")
		}
		if e.ID.IsZero() {
			e.ID = primitive.NewObjectID()
		}
		e.CreatedAt = now
		docs = append(docs, e)
	}

	if _, err := s.masterdata().InsertMany(ctx, docs); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to insert master data")
		return dberror.ErrDatabase.Err(err)
	}
	return nil
}

func (s *store) ListMasterDataByCategory(ctx context.Context, tenantID, category string) ([]*models.MasterData, apperrors.Error) {
	tenantOID, aerr := parseObjectID(tenantID)
	if aerr != nil {
		return nil, aerr
	}
	if category == "" {
		return nil, dberror.ErrInvalidInput.Msg("category is required")
	}

	opts := options.Find().SetSort(bson.D{{Key: "displayOrder", Value: 1}})
	cur, err := s.masterdata().Find(ctx, bson.M{
		"tenantId": tenantOID,
		"category": category,
		"isActive": true,
	}, opts)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("category", category).Msg("failed to list master data")
		return nil, dberror.ErrDatabase.Err(err)
	}
	defer cur.Close(ctx)

	var entries []*models.MasterData
	if err := cur.All(ctx, &entries); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to decode master data")
		return nil, dberror.ErrDatabase.Err(err)
	}
	return entries, nil
}

func (s *store) DeleteMasterDataByTenant(ctx context.Context, tenantID string) apperrors.Error {
	tenantOID, aerr := parseObjectID(tenantID)
	if aerr != nil {
		return aerr
	}

	if _, err := s.masterdata().DeleteMany(ctx, bson.M{"tenantId": tenantOID}); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("tenant_id", tenantID).Msg("failed to delete master data")
		return dberror.ErrDatabase.Err(err)
	}
	return nil
}
