package middleware

import "context"

// userIDKey and tenantIDKey hold the authenticated actor and tenant, set by
// the auth middleware from token claims.
const (
	userIDKey   = contextKey("userID")
	tenantIDKey = contextKey("tenantID")
)

// GetUserIDFromCtx retrieves the authenticated user ID from the context.
func GetUserIDFromCtx(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != ""
}

// GetTenantIDFromCtx retrieves the tenant ID from the context.
func GetTenantIDFromCtx(ctx context.Context) (string, bool) {
	tenantID, ok := ctx.Value(tenantIDKey).(string)
	return tenantID, ok && tenantID != ""
}
