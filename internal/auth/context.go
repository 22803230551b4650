package auth

import (
	"context"

	"github.com/jwilson7981/job-tracker-sub000/internal/domain"
)

// UserContext holds the authenticated session user
type UserContext struct {
	UserID      int64
	Username    string
	DisplayName string
	Role        domain.Role
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
	return user, ok && user != nil
}

// MustFromContext extracts user context or panics
func MustFromContext(ctx context.Context) *UserContext {
	user, ok := FromContext(ctx)
	if !ok {
		panic("user context not found in context")
	}
	return user
}

// HasAnyRole checks if user has any of the specified roles
func (u *UserContext) HasAnyRole(roles ...domain.Role) bool {
	return u.Role.In(roles...)
}

// IsOwner reports whether the user holds the owner role.
func (u *UserContext) IsOwner() bool {
	return u.Role == domain.RoleOwner
}

// Name returns the display name, falling back to the username.
func (u *UserContext) Name() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Username
}
