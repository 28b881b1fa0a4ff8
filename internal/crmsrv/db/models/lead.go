package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type LeadStatus string

const (
	LeadStatusNew         LeadStatus = "new"
	LeadStatusContacted   LeadStatus = "contacted"
	LeadStatusQualified   LeadStatus = "qualified"
	LeadStatusUnqualified LeadStatus = "unqualified"
	LeadStatusConverted   LeadStatus = "converted"
)

// Lead is a tenant-scoped sales lead. Source holds the value of a
// lead-sources master data entry; AssignedTo references a user of the same
// tenant.
type Lead struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name       string             `bson:"name" json:"name"`
	Company    string             `bson:"company" json:"company,omitempty"`
	Email      string             `bson:"email" json:"email,omitempty"`
	Phone      string             `bson:"phone" json:"phone,omitempty"`
	Source     string             `bson:"source" json:"source,omitempty"`
	Status     LeadStatus         `bson:"status" json:"status"`
	AssignedTo string             `bson:"assignedTo" json:"assignedTo,omitempty"`
	Notes      string             `bson:"notes" json:"notes,omitempty"`
	TenantID   primitive.ObjectID `bson:"tenantId" json:"tenantId"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}
