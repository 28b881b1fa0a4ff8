package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/quotaflow/quotaflow/internal/crmsrv/crmcommon"
)

type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
)

// User belongs to exactly one tenant. Email is unique across the whole
// system, not per tenant. The password hash is never serialized to JSON.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName    string             `bson:"firstName" json:"firstName"`
	LastName     string             `bson:"lastName" json:"lastName"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password" json:"-"`
	Role         crmcommon.Role     `bson:"role" json:"role"`
	Status       UserStatus         `bson:"status" json:"status"`
	TenantID     primitive.ObjectID `bson:"tenantId" json:"tenantId"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
