package wire

import (
	"restaurant-menu/internal/adaptor"
	"restaurant-menu/internal/usecase"
	"restaurant-menu/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	service *usecase.Service,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Post("/register", authHandler.Register)
	r.Post("/login", authHandler.Login)

	// ==================== PROTECTED ROUTES ====================
	r.With(middleware.Authenticate(service.Auth, log)).Get("/protected", authHandler.Protected)
}
