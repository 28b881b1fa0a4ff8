package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TenantStatus string

const (
	// TenantStatusPending is the state between tenant creation and the end of
	// provisioning. A pending tenant with no user is an orphan left by a
	// crashed registration.
	TenantStatusPending TenantStatus = "pending"
	TenantStatusActive  TenantStatus = "active"
)

// Tenant is an isolated customer organization. All users and master data are
// scoped to exactly one tenant.
type Tenant struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CompanyName string             `bson:"companyName" json:"companyName"`
	Status      TenantStatus       `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
