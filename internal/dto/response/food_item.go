package response

import (
	"restaurant-menu/internal/data/entity"
)

type FoodItemResponse struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	Variant       *string  `json:"variant"`
	Course        string   `json:"course"`
	Ingredients   *string  `json:"ingredients"`
	Description   *string  `json:"description"`
	Price         *float64 `json:"price"`
	Category      *string  `json:"category"`
	CountryOrigin *string  `json:"country_origin"`
	Availability  string   `json:"availability"`
	Calories      *int     `json:"calories"`
}

type MenuResponse struct {
	Starters    []FoodItemResponse `json:"starters"`
	MainCourses []FoodItemResponse `json:"main_courses"`
	Desserts    []FoodItemResponse `json:"desserts"`
}

type DeleteDishResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

func FoodItemToResponse(item *entity.FoodItem) FoodItemResponse {
	return FoodItemResponse{
		ID:            item.ID,
		Name:          item.Name,
		Variant:       item.Variant,
		Course:        string(item.Course),
		Ingredients:   item.Ingredients,
		Description:   item.Description,
		Price:         item.Price,
		Category:      item.Category,
		CountryOrigin: item.CountryOrigin,
		Availability:  item.Availability,
		Calories:      item.Calories,
	}
}

// FoodItemsToResponse never returns nil so empty lists encode as []
func FoodItemsToResponse(items []*entity.FoodItem) []FoodItemResponse {
	out := make([]FoodItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, FoodItemToResponse(item))
	}
	return out
}
