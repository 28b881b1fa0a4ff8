// Package crmcommon provides context management utilities shared across the
// CRM service: the identity of the authenticated user (tenant, user, role) and
// the password hashing primitive.
package crmcommon

import "context"

type TenantId string
type UserId string

// Role is the closed set of user roles the service knows about.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleSalesRep Role = "sales-rep"
	RoleSalesMgr Role = "sales-mgr"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleSalesRep, RoleSalesMgr:
		return true
	}
	return false
}

// ctxKeyType represents the type for all context keys
type ctxKeyType string

const (
	ctxTenantIdKey ctxKeyType = "CrmTenantId"
	ctxUserIdKey   ctxKeyType = "CrmUserId"
	ctxUserRoleKey ctxKeyType = "CrmUserRole"
)

// SetTenantIdInContext sets the tenant ID in the provided context.
func SetTenantIdInContext(ctx context.Context, tenantId TenantId) context.Context {
	return context.WithValue(ctx, ctxTenantIdKey, tenantId)
}

// TenantIdFromContext retrieves the tenant ID from the provided context.
func TenantIdFromContext(ctx context.Context) TenantId {
	if tenantId, ok := ctx.Value(ctxTenantIdKey).(TenantId); ok {
		return tenantId
	}
	return ""
}

// SetUserIdInContext sets the user ID in the provided context.
func SetUserIdInContext(ctx context.Context, userId UserId) context.Context {
	return context.WithValue(ctx, ctxUserIdKey, userId)
}

// UserIdFromContext retrieves the user ID from the provided context.
func UserIdFromContext(ctx context.Context) UserId {
	if userId, ok := ctx.Value(ctxUserIdKey).(UserId); ok {
		return userId
	}
	return ""
}

// SetUserRoleInContext sets the user role in the provided context.
func SetUserRoleInContext(ctx context.Context, role Role) context.Context {
	return context.WithValue(ctx, ctxUserRoleKey, role)
}

// UserRoleFromContext retrieves the user role from the provided context.
func UserRoleFromContext(ctx context.Context) Role {
	if role, ok := ctx.Value(ctxUserRoleKey).(Role); ok {
		return role
	}
	return ""
}
