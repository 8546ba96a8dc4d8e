package models

import (
	"context"

	"github.com/gin-gonic/gin"
)

type userContextKey struct{}

// SetUserContext returns a copy of ctx carrying the signed-in user.
func SetUserContext(ctx context.Context, user *PublicUser) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// GetUserFromContext returns the user stored by SetUserContext, or by the
// RequireAuth middleware under the gin "user" key.
func GetUserFromContext(ctx context.Context) *PublicUser {
	if ginCtx, ok := ctx.(*gin.Context); ok {
		if userVal, exists := ginCtx.Get("user"); exists {
			if user, ok := userVal.(*PublicUser); ok {
				return user
			}
		}
		if ginCtx.Request == nil {
			return nil
		}
		ctx = ginCtx.Request.Context()
	}
	if user, ok := ctx.Value(userContextKey{}).(*PublicUser); ok {
		return user
	}
	return nil
}

// GetUsernameFromContext extracts the username from the user object in context.
// Returns empty string if user cannot be determined.
func GetUsernameFromContext(ctx context.Context) string {
	if user := GetUserFromContext(ctx); user != nil {
		return user.Username
	}
	return ""
}

// GetUserIDFromContext extracts the user ID, or empty string.
func GetUserIDFromContext(ctx context.Context) string {
	if user := GetUserFromContext(ctx); user != nil {
		return user.ID
	}
	return ""
}
