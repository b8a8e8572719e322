package utils

import (
	"context"
)

type contextKey string

const UserIDKey contextKey = "user_id"

// GetUserIDFromContext returns the identity set by the auth middleware
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDKey).(int64)
	if !ok || userID <= 0 {
		return 0, false
	}
	return userID, true
}

func SetUserContext(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}
