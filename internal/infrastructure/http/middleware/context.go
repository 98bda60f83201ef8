package middleware

import (
	"context"

	"github.com/hyhong-code/tour-selling-api/internal/domain"
)

type contextKey string

const identityContextKey contextKey = "identity"

// WithIdentity injects the authenticated identity into the context.
func WithIdentity(ctx context.Context, identity *domain.Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, identity)
}

// IdentityFromContext returns the authenticated identity, or nil when the
// access guard has not run on this request.
func IdentityFromContext(ctx context.Context) *domain.Identity {
	v := ctx.Value(identityContextKey)
	if v == nil {
		return nil
	}
	i, _ := v.(*domain.Identity)
	return i
}
