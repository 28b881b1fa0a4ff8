package mongodb

import (
	"context"
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

func (s *store) CreateLead(ctx context.Context, lead *models.Lead) apperrors.Error {
	if lead.Name == "" {
		return dberror.ErrInvalidInput.Msg("lead name is required")
	}
	if lead.TenantID.IsZero() {
		return dberror.ErrInvalidInput.Msg("tenant id is required")
	}
	if lead.ID.IsZero() {
		lead.ID = primitive.NewObjectID()
	}
	if lead.Status == "" {
		lead.Status = models.LeadStatusNew
	}
	now := time.Now().UTC()
	lead.CreatedAt = now
	lead.UpdatedAt = now

	if _, err := s.leads().InsertOne(ctx, lead); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to create lead")
		return dberror.ErrDatabase.Err(err)
	}
	return nil
}

func (s *store) GetLead(ctx context.Context, tenantID, leadID string) (*models.Lead, apperrors.Error) {
	tenantOID, aerr := parseObjectID(tenantID)
	if aerr != nil {
		return nil, aerr
	}
	leadOID, aerr := parseObjectID(leadID)
	if aerr != nil {
		return nil, aerr
	}

	lead := &models.Lead{}
	err := s.leads().FindOne(ctx, bson.M{"_id": leadOID, "tenantId": tenantOID}).Decode(lead)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, dberror.ErrNotFound.Msg("lead not found")
		}
		log.Ctx(ctx).Error().Err(err).Str("lead_id", leadID).Msg("failed to get lead")
		return nil, dberror.ErrDatabase.Err(err)
	}
	return lead, nil
}

func (s *store) UpdateLead(ctx context.Context, lead *models.Lead) apperrors.Error {
	if lead.ID.IsZero() || lead.TenantID.IsZero() {
		return dberror.ErrInvalidInput.Msg("lead id and tenant id are required")
	}
	lead.UpdatedAt = time.Now().UTC()

	res, err := s.leads().ReplaceOne(ctx,
		bson.M{"_id": lead.ID, "tenantId": lead.TenantID},
		lead,
	)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("lead_id", lead.ID.Hex()).Msg("failed to update lead")
		return dberror.ErrDatabase.Err(err)
	}
	if res.MatchedCount == 0 {
		return dberror.ErrNotFound.Msg("lead not found")
	}
	return nil
}

func (s *store) DeleteLead(ctx context.Context, tenantID, leadID string) apperrors.Error {
	tenantOID, aerr := parseObjectID(tenantID)
	if aerr != nil {
		return aerr
	}
	leadOID, aerr := parseObjectID(leadID)
	if aerr != nil {
		return aerr
	}

	res, err := s.leads().DeleteOne(ctx, bson.M{"_id": leadOID, "tenantId": tenantOID})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("lead_id", leadID).Msg("failed to delete lead")
		return dberror.ErrDatabase.Err(err)
	}
	if res.DeletedCount == 0 {
		return dberror.ErrNotFound.Msg("lead not found")
	}
	return nil
}

func (s *store) ListLeads(ctx context.Context, tenantID string, filter db.LeadFilter, page, limit int) ([]*models.Lead, *db.Pagination, apperrors.Error) {
	tenantOID, aerr := parseObjectID(tenantID)
	if aerr != nil {
		return nil, nil, aerr
	}
	page, limit = db.NormalizePage(page, limit)

	query := bson.M{"tenantId": tenantOID}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Source != "" {
		query["source"] = filter.Source
	}
	if filter.AssignedTo != "" {
		query["assignedTo"] = filter.AssignedTo
	}

	total, err := s.leads().CountDocuments(ctx, query)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to count leads")
		return nil, nil, dberror.ErrDatabase.Err(err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))
	cur, err := s.leads().Find(ctx, query, opts)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to list leads")
		return nil, nil, dberror.ErrDatabase.Err(err)
	}
	defer cur.Close(ctx)

	var leads []*models.Lead
	if err := cur.All(ctx, &leads); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to decode leads")
		return nil, nil, dberror.ErrDatabase.Err(err)
	}
	return leads, db.NewPagination(page, limit, int(total)), nil
}
