package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"restaurant-menu/internal/data/entity"
	"restaurant-menu/internal/data/repository"
	"restaurant-menu/internal/dto/request"
	"restaurant-menu/internal/dto/response"
	"restaurant-menu/pkg/utils"

	"go.uber.org/zap"
)

type MenuService interface {
	ListByCourse(ctx context.Context, course entity.Course) ([]response.FoodItemResponse, error)
	GetMenu(ctx context.Context) (*response.MenuResponse, error)
	AddDish(ctx context.Context, req *request.AddDishRequest) (*response.FoodItemResponse, error)
	UpdateDish(ctx context.Context, id int64, req *request.UpdateDishRequest) (*response.FoodItemResponse, error)
	DeleteDish(ctx context.Context, id int64) (*response.DeleteDishResponse, error)
}

type menuService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewMenuService(repo *repository.Repository, log *zap.Logger) MenuService {
	return &menuService{
		repo: repo,
		log:  log.With(zap.String("service", "menu")),
	}
}

func (s *menuService) ListByCourse(ctx context.Context, course entity.Course) ([]response.FoodItemResponse, error) {
	items, err := s.repo.FoodItem.FindByCourse(ctx, course)
	if err != nil {
		return nil, persistenceError("list dishes", err)
	}
	return response.FoodItemsToResponse(items), nil
}

// GetMenu reads the catalog once and splits it by course. Items whose
// course is not one of the three known courses are left out.
func (s *menuService) GetMenu(ctx context.Context) (*response.MenuResponse, error) {
	items, err := s.repo.FoodItem.FindAll(ctx)
	if err != nil {
		return nil, persistenceError("list menu", err)
	}

	byCourse := make(map[entity.Course][]*entity.FoodItem, len(entity.Courses))
	for _, item := range items {
		if !item.Course.Valid() {
			s.log.Warn("Dish with unknown course left out of menu",
				zap.Int64("food_item_id", item.ID),
				zap.String("course", string(item.Course)),
			)
			continue
		}
		byCourse[item.Course] = append(byCourse[item.Course], item)
	}

	return &response.MenuResponse{
		Starters:    response.FoodItemsToResponse(byCourse[entity.CourseStarter]),
		MainCourses: response.FoodItemsToResponse(byCourse[entity.CourseMain]),
		Desserts:    response.FoodItemsToResponse(byCourse[entity.CourseDessert]),
	}, nil
}

func (s *menuService) AddDish(ctx context.Context, req *request.AddDishRequest) (*response.FoodItemResponse, error) {
	// 1. Validate and normalize
	item, err := s.newFoodItem(req)
	if err != nil {
		return nil, err
	}

	// 2. Allocate the id and insert in one transaction
	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		id, err := tx.FoodItem.NextID(ctx)
		if err != nil {
			return persistenceError("allocate id", err)
		}
		item.ID = id

		if err := tx.FoodItem.Create(ctx, item); err != nil {
			return persistenceError("create dish", err)
		}
		return nil
	})
	if err != nil {
		err = transactionError("add dish", err)
		s.log.Error("Failed to add dish", zap.Error(err), zap.String("name", item.Name))
		return nil, err
	}

	// 3. Keep the store's own counter ahead of the explicit id
	s.resyncSequence(ctx)

	s.log.Info("Dish added",
		zap.Int64("food_item_id", item.ID),
		zap.String("name", item.Name),
		zap.String("course", string(item.Course)),
	)

	resp := response.FoodItemToResponse(item)
	return &resp, nil
}

// UpdateDish overwrites name, price, course and availability when present.
// A blank name or negative price is rejected. Course labels are normalized
// when recognized and stored as given otherwise.
func (s *menuService) UpdateDish(ctx context.Context, id int64, req *request.UpdateDishRequest) (*response.FoodItemResponse, error) {
	if req.IsEmpty() {
		return nil, newValidationError("no data", nil)
	}

	errs := make(map[string]string)
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		errs["name"] = "This field is required"
	}
	if req.Price != nil && *req.Price < 0 {
		errs["price"] = "Invalid price: must not be negative"
	}
	if len(errs) > 0 {
		s.log.Warn("Update dish validation failed", zap.Any("errors", errs))
		return nil, newValidationError(utils.FormatValidationErrors(errs), errs)
	}

	var updated *entity.FoodItem
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		item, err := tx.FoodItem.FindByID(ctx, id)
		if err != nil {
			return persistenceError("find dish", err)
		}
		if item == nil {
			return fmt.Errorf("dish %d: %w", id, ErrNotFound)
		}

		if req.Name != nil {
			item.Name = strings.TrimSpace(*req.Name)
		}
		if req.Price != nil {
			item.Price = req.Price
		}
		if req.Course != nil {
			if course, ok := entity.ParseCourse(*req.Course); ok {
				item.Course = course
			} else {
				item.Course = entity.Course(*req.Course)
			}
		}
		if req.Availability != nil {
			item.Availability = *req.Availability
		}

		if err := tx.FoodItem.Update(ctx, item); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("dish %d: %w", id, ErrNotFound)
			}
			return persistenceError("update dish", err)
		}
		updated = item
		return nil
	})
	if err != nil {
		return nil, transactionError("update dish", err)
	}

	s.log.Info("Dish updated", zap.Int64("food_item_id", id))

	resp := response.FoodItemToResponse(updated)
	return &resp, nil
}

func (s *menuService) DeleteDish(ctx context.Context, id int64) (*response.DeleteDishResponse, error) {
	var name string
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		item, err := tx.FoodItem.FindByID(ctx, id)
		if err != nil {
			return persistenceError("find dish", err)
		}
		if item == nil {
			return fmt.Errorf("dish %d: %w", id, ErrNotFound)
		}
		name = item.Name

		if err := tx.FoodItem.Delete(ctx, id); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("dish %d: %w", id, ErrNotFound)
			}
			return persistenceError("delete dish", err)
		}
		return nil
	})
	if err != nil {
		return nil, transactionError("delete dish", err)
	}

	s.log.Info("Dish deleted", zap.Int64("food_item_id", id), zap.String("name", name))

	return &response.DeleteDishResponse{
		Message: fmt.Sprintf("Dish '%s' deleted successfully", name),
		ID:      id,
	}, nil
}

func (s *menuService) newFoodItem(req *request.AddDishRequest) (*entity.FoodItem, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Course = strings.TrimSpace(req.Course)

	errs := utils.ValidateStruct(req)
	if errs == nil {
		errs = make(map[string]string)
	}

	course, ok := entity.ParseCourse(req.Course)
	if !ok && req.Course != "" {
		errs["course"] = "Must be one of: Starter, Main, Dessert"
	}

	price, err := utils.ParseOptionalPrice(req.Price)
	if err != nil {
		errs["price"] = "Invalid price: " + err.Error()
	}
	calories, err := utils.ParseOptionalCalories(req.Calories)
	if err != nil {
		errs["calories"] = "Invalid calories: " + err.Error()
	}

	if len(errs) > 0 {
		s.log.Warn("Add dish validation failed", zap.Any("errors", errs))
		return nil, newValidationError(utils.FormatValidationErrors(errs), errs)
	}

	availability := entity.DefaultAvailability
	if req.Availability != nil && strings.TrimSpace(*req.Availability) != "" {
		availability = *req.Availability
	}

	return &entity.FoodItem{
		Name:          req.Name,
		Variant:       req.Variant,
		Course:        course,
		Ingredients:   req.Ingredients,
		Description:   req.Description,
		Price:         price,
		Category:      req.Category,
		CountryOrigin: req.CountryOrigin,
		Availability:  availability,
		Calories:      calories,
	}, nil
}

// resyncSequence failures are not fatal; the next NextID still reads the
// current maximum.
func (s *menuService) resyncSequence(ctx context.Context) {
	if err := s.repo.FoodItem.ResyncSequence(ctx); err != nil {
		s.log.Warn("Failed to resync food item sequence", zap.Error(err))
	}
}
