package auth

import "context"

type claimsKey struct{}

// WithClaims stores validated token claims in ctx.
// Called by the auth middleware once the bearer token checks out.
func WithClaims(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, c)
}

// FromCtx returns the claims stored by the auth middleware, or nil.
func FromCtx(ctx context.Context) *Claims {
	c, _ := ctx.Value(claimsKey{}).(*Claims)
	return c
}

// UserID returns the authenticated user's id, or 0 when unauthenticated.
func UserID(ctx context.Context) uint {
	if c := FromCtx(ctx); c != nil {
		return c.UserID
	}
	return 0
}
