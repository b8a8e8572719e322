package adaptor

import (
	"net/http"

	"restaurant-menu/internal/data/entity"
	"restaurant-menu/internal/dto/request"
	"restaurant-menu/internal/usecase"
	"restaurant-menu/pkg/utils"

	"go.uber.org/zap"
)

type MenuHandler struct {
	service usecase.MenuService
	log     *zap.Logger
}

func NewMenuHandler(service usecase.MenuService, log *zap.Logger) *MenuHandler {
	return &MenuHandler{
		service: service,
		log:     log,
	}
}

// ListCourse returns a handler listing every dish of course
func (h *MenuHandler) ListCourse(course entity.Course) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := h.service.ListByCourse(r.Context(), course)
		if err != nil {
			handleServiceError(w, h.log, err, "list "+string(course))
			return
		}
		utils.ResponseSuccess(w, items)
	}
}

// GetMenu handles GET /menu
func (h *MenuHandler) GetMenu(w http.ResponseWriter, r *http.Request) {
	menu, err := h.service.GetMenu(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get menu")
		return
	}
	utils.ResponseSuccess(w, menu)
}

// AddDish handles POST /add_dish (manager only)
func (h *MenuHandler) AddDish(w http.ResponseWriter, r *http.Request) {
	var req request.AddDishRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	dish, err := h.service.AddDish(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "add dish")
		return
	}
	utils.ResponseCreated(w, dish)
}

// UpdateDish handles PUT /update_dish/{id} (manager only)
func (h *MenuHandler) UpdateDish(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r)
	if !ok {
		utils.ResponseBadRequest(w, "Invalid dish ID", nil)
		return
	}

	var req request.UpdateDishRequest
	if err := decodeJSON(r, &req); err != nil && !isEmptyBody(err) {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	dish, err := h.service.UpdateDish(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update dish")
		return
	}
	utils.ResponseSuccess(w, dish)
}

// DeleteDish handles DELETE /delete_dish/{id} (manager only)
func (h *MenuHandler) DeleteDish(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r)
	if !ok {
		utils.ResponseBadRequest(w, "Invalid dish ID", nil)
		return
	}

	resp, err := h.service.DeleteDish(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "delete dish")
		return
	}
	utils.ResponseSuccess(w, resp)
}
