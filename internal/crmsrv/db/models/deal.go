package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type DealStatus string

const (
	DealStatusOpen DealStatus = "open"
	DealStatusWon  DealStatus = "won"
	DealStatusLost DealStatus = "lost"
)

// Deal is a tenant-scoped sales deal. Stage holds the value of a deal-stages
// master data entry.
type Deal struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title      string             `bson:"title" json:"title"`
	Amount     float64            `bson:"amount" json:"amount"`
	Stage      string             `bson:"stage" json:"stage,omitempty"`
	Status     DealStatus         `bson:"status" json:"status"`
	AssignedTo string             `bson:"assignedTo" json:"assignedTo,omitempty"`
	CloseDate  *time.Time         `bson:"closeDate,omitempty" json:"closeDate,omitempty"`
	TenantID   primitive.ObjectID `bson:"tenantId" json:"tenantId"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}
