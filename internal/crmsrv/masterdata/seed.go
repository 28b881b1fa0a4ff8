// Package masterdata holds the tenant-scoped reference catalogs (deal stages,
// lead sources): the static seed lists inserted at registration and the read
// API that populates selection fields.
package masterdata

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/quotaflow/quotaflow/internal/crmsrv/db/models"
)

const (
	CategoryDealStages  = "deal-stages"
	CategoryLeadSources = "lead-sources"
)

// The seed lists are static configuration. Order matters: displayOrder is the
// position in the list.
var (
	DealStages  = []string{"qualification", "meeting", "proposal", "negotiation", "closing"}
	LeadSources = []string{"event", "other", "referral", "social-media", "website"}
)

// KnownCategory reports whether category is one of the seeded catalogs.
func KnownCategory(category string) bool {
	return category == CategoryDealStages || category == CategoryLeadSources
}

// SeedForTenant builds the full set of master data entries for a newly
// provisioned tenant: every seeded catalog, display orders 0..len-1, all
// entries active.
func SeedForTenant(tenantID primitive.ObjectID) []*models.MasterData {
	entries := make([]*models.MasterData, 0, len(DealStages)+len(LeadSources))
	entries = append(entries, seedCategory(tenantID, CategoryDealStages, DealStages)...)
	entries = append(entries, seedCategory(tenantID, CategoryLeadSources, LeadSources)...)
	return entries
}

func seedCategory(tenantID primitive.ObjectID, category string, values []string) []*models.MasterData {
	entries := make([]*models.MasterData, 0, len(values))
	for i, v := range values {
		entries = append(entries, &models.MasterData{
			Category:     category,
			Name:         v,
			Value:        v,
			DisplayOrder: i,
			IsActive:     true,
			TenantID:     tenantID,
		})
	}
	return entries
}
