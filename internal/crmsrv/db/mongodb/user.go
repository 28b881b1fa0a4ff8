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
	"github.com/quotaflow/quotaflow/internal/crmsrv/db/dberror"
	"github.com/quotaflow/quotaflow/internal/crmsrv/db/models"
)

func (s *store) CreateUser(ctx context.Context, user *models.User) apperrors.Error {
	if user.Email == "" {
		return dberror.ErrInvalidInput.Msg("email is required")
	}
	if user.TenantID.IsZero() {
		return dberror.ErrInvalidInput.Msg("tenant id is required")
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	if _, err := s.users().InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return dberror.ErrAlreadyExists.Msg("a user with this email already exists")
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to create user")
		return dberror.ErrDatabase.Err(err)
	}
	return nil
}

func (s *store) GetUser(ctx context.Context, tenantID, userID string) (*models.User, apperrors.Error) {
	tenantOID, aerr := parseObjectID(tenantID)
	if aerr != nil {
		return nil, aerr
	}
	userOID, aerr := parseObjectID(userID)
	if aerr != nil {
		return nil, aerr
	}

	user := &models.User{}
	err := s.users().FindOne(ctx, bson.M{"_id": userOID, "tenantId": tenantOID}).Decode(user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, dberror.ErrNotFound.Msg("user not found")
		}
		log.Ctx(ctx).Error().Err(err).Str("user_id", userID).Msg("failed to get user")
		return nil, dberror.ErrDatabase.Err(err)
	}
	return user, nil
}

func (s *store) GetUserByEmail(ctx context.Context, email string) (*models.User, apperrors.Error) {
	if email == "" {
		return nil, dberror.ErrInvalidInput.Msg("email is required")
	}

	user := &models.User{}
	err := s.users().FindOne(ctx, bson.M{"email": email}).Decode(user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, dberror.ErrNotFound.Msg("user not found")
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to get user by email")
		return nil, dberror.ErrDatabase.Err(err)
	}
	return user, nil
}

func (s *store) ListUsersByTenant(ctx context.Context, tenantID string) ([]*models.User, apperrors.Error) {
	tenantOID, aerr := parseObjectID(tenantID)
	if aerr != nil {
		return nil, aerr
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cur, err := s.users().Find(ctx, bson.M{"tenantId": tenantOID}, opts)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("tenant_id", tenantID).Msg("failed to list users")
		return nil, dberror.ErrDatabase.Err(err)
	}
	defer cur.Close(ctx)

	var users []*models.User
	if err := cur.All(ctx, &users); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to decode users")
		return nil, dberror.ErrDatabase.Err(err)
	}
	return users, nil
}

func (s *store) DeleteUser(ctx context.Context, tenantID, userID string) apperrors.Error {
	tenantOID, aerr := parseObjectID(tenantID)
	if aerr != nil {
		return aerr
	}
	userOID, aerr := parseObjectID(userID)
	if aerr != nil {
		return aerr
	}

	res, err := s.users().DeleteOne(ctx, bson.M{"_id": userOID, "tenantId": tenantOID})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("user_id", userID).Msg("failed to delete user")
		return dberror.ErrDatabase.Err(err)
	}
	if res.DeletedCount == 0 {
		return dberror.ErrNotFound.Msg("user not found")
	}
	return nil
}
