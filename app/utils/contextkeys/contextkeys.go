package contextkeys

import "context"

type RequestId struct{}

type TenantId struct{}

type UserRole struct{}

// TenantIdFromContext returns the tenant id set by the auth middleware.
func TenantIdFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(TenantId{}).(string)
	return v, ok
}

// RequestIdFromContext returns the request id set by the logger middleware.
func RequestIdFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(RequestId{}).(string)
	return v, ok
}
