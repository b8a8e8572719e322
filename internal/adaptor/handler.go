package adaptor

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"restaurant-menu/internal/usecase"
	"restaurant-menu/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	Auth *AuthHandler
	Menu *MenuHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth: NewAuthHandler(service.Auth, log),
		Menu: NewMenuHandler(service.Menu, log),
	}
}

// decodeJSON reports io.EOF for an empty body so callers can decide
// whether that is acceptable.
func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

func isEmptyBody(err error) bool {
	return errors.Is(err, io.EOF)
}

func parseIDParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// handleServiceError maps usecase errors to HTTP responses
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var validationErr *usecase.ValidationError

	switch {
	case errors.As(err, &validationErr):
		log.Warn(operation+" validation failed",
			zap.Error(err),
			zap.String("operation", operation))
		var fields any
		if len(validationErr.Fields) > 0 {
			fields = validationErr.Fields
		}
		utils.ResponseBadRequest(w, validationErr.Error(), fields)

	case errors.Is(err, usecase.ErrDuplicateUsername):
		log.Warn(operation+" failed - already exists",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, "Username already exists", nil)

	case errors.Is(err, usecase.ErrInvalidCredentials):
		log.Warn(operation+" failed - invalid credentials",
			zap.String("operation", operation))
		utils.ResponseUnauthorized(w, "Invalid credentials")

	case errors.Is(err, usecase.ErrInvalidToken):
		log.Warn(operation+" failed - invalid token",
			zap.String("operation", operation))
		utils.ResponseUnauthorized(w, "Invalid or expired token")

	case errors.Is(err, usecase.ErrUnauthorized):
		log.Warn(operation+" failed - forbidden",
			zap.String("operation", operation))
		utils.ResponseForbidden(w, "Unauthorized")

	case errors.Is(err, usecase.ErrNotFound):
		log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, "Not found")

	case errors.Is(err, usecase.ErrPersistence):
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Database error", err.Error())

	default:
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error", nil)
	}
}
