package auth

import "context"

type ctxKey string

const ctxKeyOwner ctxKey = "owner"

func WithOwner(ctx context.Context, ownerID string) context.Context {
	return context.WithValue(ctx, ctxKeyOwner, ownerID)
}

// OwnerFromContext returns the authenticated owner ID, or "" when the
// request did not pass through the middleware.
func OwnerFromContext(ctx context.Context) string {
	if v := ctx.Value(ctxKeyOwner); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
