package mongodb

import (
	"context"
	"regexp"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/quotaflow/quotaflow/internal/common/apperrors"
	"github.com/quotaflow/quotaflow/internal/crmsrv/db"
	"github.com/quotaflow/quotaflow/internal/crmsrv/db/dberror"
	"github.com/quotaflow/quotaflow/internal/crmsrv/db/models"
)

func (s *store) CreateDeal(ctx context.Context, deal *models.Deal) apperrors.Error {
	if deal.Title == "" {
		return dberror.ErrInvalidInput.Msg("deal title is required")
	}
	if deal.TenantID.IsZero() {
		return dberror.ErrInvalidInput.Msg("tenant id is required")
	}
	if deal.ID.IsZero() {
		deal.ID = primitive.NewObjectID()
	}
	if deal.Status == "" {
		deal.Status = models.DealStatusOpen
	}
	now := time.Now().UTC()
	deal.CreatedAt = now
	deal.UpdatedAt = now

	if _, err := s.deals().InsertOne(ctx, deal); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to create deal")
		return dberror.ErrDatabase.Err(err)
	}
	return nil
}

func (s *store) GetDeal(ctx context.Context, tenantID, dealID string) (*models.Deal, apperrors.Error) {
	tenantOID, aerr := parseObjectID(tenantID)
	if aerr != nil {
		return nil, aerr
	}
	dealOID, aerr := parseObjectID(dealID)
	if aerr != nil {
		return nil, aerr
	}

	deal := &models.Deal{}
	err := s.deals().FindOne(ctx, bson.M{"_id": dealOID, "tenantId": tenantOID}).Decode(deal)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, dberror.ErrNotFound.Msg("deal not found")
		}
		log.Ctx(ctx).Error().Err(err).Str("deal_id", dealID).Msg("failed to get deal")
		return nil, dberror.ErrDatabase.Err(err)
	}
	return deal, nil
}

func (s *store) UpdateDeal(ctx context.Context, deal *models.Deal) apperrors.Error {
	if deal.ID.IsZero() || deal.TenantID.IsZero() {
		return dberror.ErrInvalidInput.Msg("deal id and tenant id are required")
	}
	deal.UpdatedAt = time.Now().UTC()

	res, err := s.deals().ReplaceOne(ctx,
		bson.M{"_id": deal.ID, "tenantId": deal.TenantID},
		deal,
	)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("deal_id", deal.ID.Hex()).Msg("failed to update deal")
		return dberror.ErrDatabase.Err(err)
	}
	if res.MatchedCount == 0 {
		return dberror.ErrNotFound.Msg("deal not found")
	}
	return nil
}

func (s *store) DeleteDeal(ctx context.Context, tenantID, dealID string) apperrors.Error {
	tenantOID, aerr := parseObjectID(tenantID)
	if aerr != nil {
		return aerr
	}
	dealOID, aerr := parseObjectID(dealID)
	if aerr != nil {
		return aerr
	}

	res, err := s.deals().DeleteOne(ctx, bson.M{"_id": dealOID, "tenantId": tenantOID})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("deal_id", dealID).Msg("failed to delete deal")
		return dberror.ErrDatabase.Err(err)
	}
	if res.DeletedCount == 0 {
		return dberror.ErrNotFound.Msg("deal not found")
	}
	return nil
}

func (s *store) ListDeals(ctx context.Context, tenantID string, filter db.DealFilter, page, limit int) ([]*models.Deal, *db.Pagination, apperrors.Error) {
	tenantOID, aerr := parseObjectID(tenantID)
	if aerr != nil {
		return nil, nil, aerr
	}
	page, limit = db.NormalizePage(page, limit)

	query := bson.M{"tenantId": tenantOID}
	if filter.Title != "" {
		query["title"] = primitive.Regex{Pattern: regexp.QuoteMeta(filter.Title), Options: "i"}
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.AssignedTo != "" {
		query["assignedTo"] = filter.AssignedTo
	}

	total, err := s.deals().CountDocuments(ctx, query)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to count deals")
		return nil, nil, dberror.ErrDatabase.Err(err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))
	cur, err := s.deals().Find(ctx, query, opts)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to list deals")
		return nil, nil, dberror.ErrDatabase.Err(err)
	}
	defer cur.Close(ctx)

	var deals []*models.Deal
	if err := cur.All(ctx, &deals); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to decode deals")
		return nil, nil, dberror.ErrDatabase.Err(err)
	}
	return deals, db.NewPagination(page, limit, int(total)), nil
}
