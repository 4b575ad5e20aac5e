package auth

import (
	"context"
)

// Role is an access level for the admin dashboard
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleViewer Role = "viewer"
	// RoleService is assigned to API-key callers such as the sync client
	RoleService Role = "service"
)

// UserContext holds authenticated user information
type UserContext struct {
	Username string
	Role     Role
}

type contextKey string

const userContextKey contextKey = "userContext"

// WithUserContext adds user context to the context
func WithUserContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// FromContext extracts user context from the context
func FromContext(ctx context.Context) (*UserContext, bool) {
	user, ok := ctx.Value(userContextKey).(*UserContext)
	return user, ok
}

// CanWrite reports whether the user may mutate data
func (u *UserContext) CanWrite() bool {
	return u.Role == RoleAdmin || u.Role == RoleService
}
