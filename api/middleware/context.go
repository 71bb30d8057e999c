package middleware

import (
	"context"

	"github.com/rhinostock/inventario-backend/internal/identity"
)

type contextKey string

const (
	ctxIdentity    contextKey = "identity"
	ctxAccessToken contextKey = "access_token"
)

// IdentityFromContext returns the resolved identity for the request, falling
// back to the guest identity when no middleware seeded one.
func IdentityFromContext(ctx context.Context) identity.Identity {
	if ctx == nil {
		return identity.Guest()
	}
	if v, ok := ctx.Value(ctxIdentity).(identity.Identity); ok {
		return v
	}
	return identity.Guest()
}

// AccessTokenFromContext returns the raw bearer token carried by the request,
// or "" when the request was unauthenticated.
func AccessTokenFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxAccessToken).(string); ok {
		return v
	}
	return ""
}

// WithIdentity injects the resolved identity into the context.
func WithIdentity(ctx context.Context, id identity.Identity) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxIdentity, id)
}

// WithAccessToken injects the raw bearer token into the context.
func WithAccessToken(ctx context.Context, token string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxAccessToken, token)
}
