package wire

import (
	"restaurant-menu/internal/adaptor"
	"restaurant-menu/internal/data/entity"
	"restaurant-menu/internal/usecase"
	"restaurant-menu/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireMenu(
	r chi.Router,
	menuHandler *adaptor.MenuHandler,
	service *usecase.Service,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/starters", menuHandler.ListCourse(entity.CourseStarter))
	r.Get("/main_courses", menuHandler.ListCourse(entity.CourseMain))
	r.Get("/desserts", menuHandler.ListCourse(entity.CourseDessert))
	r.Get("/menu", menuHandler.GetMenu)

	// ==================== MANAGER ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(service.Auth, log))                  // Must be authenticated
		r.Use(middleware.RequireRole(service.Auth, entity.RoleManager, log)) // Must be a manager

		r.Post("/add_dish", menuHandler.AddDish)
		r.Put("/update_dish/{id}", menuHandler.UpdateDish)
		r.Delete("/delete_dish/{id}", menuHandler.DeleteDish)
	})
}
