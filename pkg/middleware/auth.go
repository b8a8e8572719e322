package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"restaurant-menu/internal/data/entity"
	"restaurant-menu/internal/usecase"
	"restaurant-menu/pkg/utils"

	"go.uber.org/zap"
)

type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (int64, error)
}

type RoleChecker interface {
	RequireRole(ctx context.Context, userID int64, role entity.UserRole) error
}

// Authenticate validates the bearer token and stores the user id in the
// request context.
func Authenticate(verifier TokenVerifier, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Extract token
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			scheme, token, found := strings.Cut(authHeader, " ")
			token = strings.TrimSpace(token)
			if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			userID, err := verifier.VerifyToken(r.Context(), token)
			if err != nil {
				logger.Warn("Invalid or expired token",
					zap.String("path", r.URL.Path),
					zap.Error(err))
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(utils.SetUserContext(r.Context(), userID)))
		})
	}
}

// RequireRole lets the request through only when the authenticated user
// holds role. It must run after Authenticate.
func RequireRole(checker RoleChecker, role entity.UserRole, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// 1. Get user ID from context (set by Authenticate)
			userID, ok := utils.GetUserIDFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			// 2. Check role
			err := checker.RequireRole(r.Context(), userID, role)
			switch {
			case err == nil:
				next.ServeHTTP(w, r)
			case errors.Is(err, usecase.ErrUnauthorized):
				logger.Warn("Role check: access denied",
					zap.Int64("user_id", userID),
					zap.String("role", string(role)),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "Unauthorized")
			default:
				logger.Error("Role check: failed to get user",
					zap.Error(err), zap.Int64("user_id", userID))
				utils.ResponseInternalError(w, "Internal server error", nil)
			}
		})
	}
}
