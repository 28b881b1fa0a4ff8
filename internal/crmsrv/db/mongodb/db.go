// Package mongodb implements db.Store on a MongoDB database. Collections map
// one-to-one to the document types; multi-step flows above this layer do not
// use multi-document transactions.
package mongodb

import (
	"context"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/quotaflow/quotaflow/internal/common/apperrors"
	"github.com/quotaflow/quotaflow/internal/crmsrv/db"
	"github.com/quotaflow/quotaflow/internal/crmsrv/db/dberror"
)

const (
	collTenants    = "tenants"
	collUsers      = "users"
	collMasterData = "masterdata"
	collLeads      = "leads"
	collDeals      = "deals"
)

type store struct {
	client *mongo.Client
	db     *mongo.Database
}

// New connects to MongoDB, verifies the connection and ensures the indexes
// the service relies on. The ping is retried to ride out transient startup
// races with the database.
func New(ctx context.Context, uri, dbName string) (db.Store, apperrors.Error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, dberror.ErrDatabase.MsgErr("unable to connect to mongodb", err)
	}

	err = retry.Do(
		func() error {
			pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
			defer cancel()
			return client.Ping(pingCtx, readpref.Primary())
		},
		retry.Context(ctx),
		retry.Attempts(5),
		retry.Delay(500*time.Millisecond),
	)
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, dberror.ErrDatabase.MsgErr("mongodb not reachable", err)
	}

	s := &store{
		client: client,
		db:     client.Database(dbName),
	}
	if aerr := s.ensureIndexes(ctx); aerr != nil {
		_ = client.Disconnect(ctx)
		return nil, aerr
	}
	return s, nil
}

// ensureIndexes creates the indexes the service depends on. The unique index
// on users.email closes the check-then-insert race between concurrent
// registrations: the losing insert fails with a duplicate-key error.
func (s *store) ensureIndexes(ctx context.Context) apperrors.Error {
	indexes := []struct {
		coll  string
		model mongo.IndexModel
	}{
		{
			coll: collUsers,
			model: mongo.IndexModel{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		{
			coll: collUsers,
			model: mongo.IndexModel{
				Keys: bson.D{{Key: "tenantId", Value: 1}},
			},
		},
		{
			coll: collMasterData,
			model: mongo.IndexModel{
				Keys: bson.D{{Key: "tenantId", Value: 1}, {Key: "category", Value: 1}},
			},
		},
		{
			coll: collLeads,
			model: mongo.IndexModel{
				Keys: bson.D{{Key: "tenantId", Value: 1}},
			},
		},
		{
			coll: collDeals,
			model: mongo.IndexModel{
				Keys: bson.D{{Key: "tenantId", Value: 1}},
			},
		},
	}
	for _, idx := range indexes {
		if _, err := s.db.Collection(idx.coll).Indexes().CreateOne(ctx, idx.model); err != nil {
			log.Ctx(ctx).Error().Err(err).Str("collection", idx.coll).Msg("failed to create index")
			return dberror.ErrDatabase.MsgErr("failed to create index on "+idx.coll, err)
		}
	}
	return nil
}

func (s *store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *store) tenants() *mongo.Collection    { return s.db.Collection(collTenants) }
func (s *store) users() *mongo.Collection      { return s.db.Collection(collUsers) }
func (s *store) masterdata() *mongo.Collection { return s.db.Collection(collMasterData) }
func (s *store) leads() *mongo.Collection      { return s.db.Collection(collLeads) }
func (s *store) deals() *mongo.Collection      { return s.db.Collection(collDeals) }

func parseObjectID(id string) (primitive.ObjectID, apperrors.Error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, dberror.ErrInvalidInput.Msg("invalid id: " + id)
	}
	return oid, nil
}
