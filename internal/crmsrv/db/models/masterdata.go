package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MasterData is a tenant-scoped reference entry used to populate selection
// fields (deal stages, lead sources). Seeded once per tenant at registration
// and read-only afterwards.
type MasterData struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Category     string             `bson:"category" json:"category"`
	Name         string             `bson:"name" json:"name"`
	Value        string             `bson:"value" json:"value"`
	DisplayOrder int                `bson:"displayOrder" json:"displayOrder"`
	IsActive     bool               `bson:"isActive" json:"isActive"`
	TenantID     primitive.ObjectID `bson:"tenantId" json:"tenantId"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}
