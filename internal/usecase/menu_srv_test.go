package usecase

import (
	"context"
	"testing"

	"restaurant-menu/internal/data/entity"
	"restaurant-menu/internal/dto/request"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddDish(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	menu := env.service.Menu

	t.Run("first dish gets id 1 and defaults", func(t *testing.T) {
		dish, err := menu.AddDish(ctx, &request.AddDishRequest{Name: "Soup", Course: "Starter", Price: 5})
		require.NoError(t, err)
		assert.Equal(t, int64(1), dish.ID)
		assert.Equal(t, "Starter", dish.Course)
		assert.Equal(t, entity.DefaultAvailability, dish.Availability)
		require.NotNil(t, dish.Price)
		assert.Equal(t, 5.0, *dish.Price)
		assert.Nil(t, dish.Calories)
	})

	t.Run("numeric strings and course aliases are normalized", func(t *testing.T) {
		dish, err := menu.AddDish(ctx, &request.AddDishRequest{
			Name:     "Tarte",
			Course:   "dessert",
			Price:    "6.50",
			Calories: "320",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(2), dish.ID)
		assert.Equal(t, "Dessert", dish.Course)
		assert.Equal(t, 6.5, *dish.Price)
		assert.Equal(t, 320, *dish.Calories)

		plat, err := menu.AddDish(ctx, &request.AddDishRequest{Name: "Boeuf", Course: "Plat"})
		require.NoError(t, err)
		assert.Equal(t, "Main", plat.Course)
	})

	t.Run("invalid payloads never touch the store", func(t *testing.T) {
		before, err := env.repo.FoodItem.CountAll(ctx)
		require.NoError(t, err)

		tests := []struct {
			name  string
			req   request.AddDishRequest
			field string
		}{
			{"missing name", request.AddDishRequest{Course: "Main"}, "name"},
			{"blank name", request.AddDishRequest{Name: "   ", Course: "Main"}, "name"},
			{"missing course", request.AddDishRequest{Name: "Steak"}, "course"},
			{"unknown course", request.AddDishRequest{Name: "Steak", Course: "Brunch"}, "course"},
			{"price not numeric", request.AddDishRequest{Name: "Steak", Course: "Main", Price: "abc"}, "price"},
			{"negative price", request.AddDishRequest{Name: "Steak", Course: "Main", Price: -1}, "price"},
			{"fractional calories", request.AddDishRequest{Name: "Steak", Course: "Main", Calories: 10.5}, "calories"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := menu.AddDish(ctx, &tt.req)
				require.ErrorIs(t, err, ErrValidation)

				var vErr *ValidationError
				require.ErrorAs(t, err, &vErr)
				assert.Contains(t, vErr.Fields, tt.field)
			})
		}

		after, err := env.repo.FoodItem.CountAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})
}

func TestIdentifiersAreNeverReusedEvenAfterDeletingHighest(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	menu := env.service.Menu

	seen := make(map[int64]bool)
	var last int64
	for i := 0; i < 5; i++ {
		dish, err := menu.AddDish(ctx, &request.AddDishRequest{Name: "Dish", Course: "Main"})
		require.NoError(t, err)
		assert.False(t, seen[dish.ID])
		assert.Greater(t, dish.ID, last)
		seen[dish.ID] = true
		last = dish.ID
	}

	_, err := menu.DeleteDish(ctx, last)
	require.NoError(t, err)

	dish, err := menu.AddDish(ctx, &request.AddDishRequest{Name: "After delete", Course: "Main"})
	require.NoError(t, err)
	assert.Greater(t, dish.ID, last)
}

func TestGetMenu(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	menu := env.service.Menu

	empty, err := menu.GetMenu(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty.Starters)
	assert.Empty(t, empty.Starters)
	assert.Empty(t, empty.MainCourses)
	assert.Empty(t, empty.Desserts)

	for _, req := range []request.AddDishRequest{
		{Name: "Soup", Course: "Starter"},
		{Name: "Steak", Course: "Main"},
		{Name: "Fish", Course: "Main"},
		{Name: "Cake", Course: "Dessert"},
	} {
		_, err := menu.AddDish(ctx, &req)
		require.NoError(t, err)
	}
	// a course the menu does not know is omitted from every list
	require.NoError(t, env.repo.FoodItem.Create(ctx, &entity.FoodItem{
		ID: 50, Name: "Mystery", Course: "Brunch", Availability: "Available",
	}))

	got, err := menu.GetMenu(ctx)
	require.NoError(t, err)
	require.Len(t, got.Starters, 1)
	require.Len(t, got.MainCourses, 2)
	require.Len(t, got.Desserts, 1)
	assert.Equal(t, "Steak", got.MainCourses[0].Name)
	assert.Equal(t, "Fish", got.MainCourses[1].Name)

	mains, err := menu.ListByCourse(ctx, entity.CourseMain)
	require.NoError(t, err)
	assert.Equal(t, got.MainCourses, mains)
}

func TestUpdateDish(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	menu := env.service.Menu

	dish, err := menu.AddDish(ctx, &request.AddDishRequest{
		Name:        "Soup",
		Course:      "Starter",
		Price:       5,
		Ingredients: strPtr("tomato"),
	})
	require.NoError(t, err)

	t.Run("partial overwrite keeps other fields", func(t *testing.T) {
		updated, err := menu.UpdateDish(ctx, dish.ID, &request.UpdateDishRequest{Price: floatPtr(6.5)})
		require.NoError(t, err)
		assert.Equal(t, 6.5, *updated.Price)
		assert.Equal(t, "Soup", updated.Name)
		assert.Equal(t, "Starter", updated.Course)
		assert.Equal(t, "tomato", *updated.Ingredients)
	})

	t.Run("course is not validated", func(t *testing.T) {
		updated, err := menu.UpdateDish(ctx, dish.ID, &request.UpdateDishRequest{Course: strPtr("Brunch")})
		require.NoError(t, err)
		assert.Equal(t, "Brunch", updated.Course)
	})

	t.Run("empty payload", func(t *testing.T) {
		_, err := menu.UpdateDish(ctx, dish.ID, &request.UpdateDishRequest{})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("missing dish", func(t *testing.T) {
		_, err := menu.UpdateDish(ctx, 999, &request.UpdateDishRequest{Name: strPtr("x")})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("blank name and negative price are rejected", func(t *testing.T) {
		tests := []struct {
			name  string
			req   request.UpdateDishRequest
			field string
		}{
			{"empty name", request.UpdateDishRequest{Name: strPtr("")}, "name"},
			{"whitespace name", request.UpdateDishRequest{Name: strPtr("  ")}, "name"},
			{"negative price", request.UpdateDishRequest{Price: floatPtr(-3)}, "price"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := menu.UpdateDish(ctx, dish.ID, &tt.req)
				require.ErrorIs(t, err, ErrValidation)

				var vErr *ValidationError
				require.ErrorAs(t, err, &vErr)
				assert.Contains(t, vErr.Fields, tt.field)
			})
		}

		stored, err := env.repo.FoodItem.FindByID(ctx, dish.ID)
		require.NoError(t, err)
		assert.Equal(t, "Soup", stored.Name)
		assert.Equal(t, 6.5, *stored.Price)
	})
}

func TestMenuStorageFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("insert failure rolls back add", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.db.Exec(ctx, `
			CREATE TRIGGER reject_food_items BEFORE INSERT ON food_items
			BEGIN SELECT RAISE(ABORT, 'disk full'); END`)
		require.NoError(t, err)

		_, err = env.service.Menu.AddDish(ctx, &request.AddDishRequest{Name: "Soup", Course: "Starter"})
		require.ErrorIs(t, err, ErrPersistence)
		assert.Contains(t, err.Error(), "disk full")

		count, err := env.repo.FoodItem.CountAll(ctx)
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("transaction that cannot begin", func(t *testing.T) {
		env := newTestEnv(t)
		dish, err := env.service.Menu.AddDish(ctx, &request.AddDishRequest{Name: "Soup", Course: "Starter"})
		require.NoError(t, err)

		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err = env.service.Menu.AddDish(cancelled, &request.AddDishRequest{Name: "Steak", Course: "Main"})
		assert.ErrorIs(t, err, ErrPersistence)

		_, err = env.service.Menu.UpdateDish(cancelled, dish.ID, &request.UpdateDishRequest{Name: strPtr("Stew")})
		assert.ErrorIs(t, err, ErrPersistence)

		_, err = env.service.Menu.DeleteDish(cancelled, dish.ID)
		assert.ErrorIs(t, err, ErrPersistence)

		_, err = env.service.Auth.Register(cancelled, &request.RegisterRequest{Username: "carol", Password: "secret1"})
		assert.ErrorIs(t, err, ErrPersistence)

		count, err := env.repo.FoodItem.CountAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})
}

func TestDeleteDish(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	menu := env.service.Menu

	dish, err := menu.AddDish(ctx, &request.AddDishRequest{Name: "Soup", Course: "Starter"})
	require.NoError(t, err)

	resp, err := menu.DeleteDish(ctx, dish.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dish 'Soup' deleted successfully", resp.Message)
	assert.Equal(t, dish.ID, resp.ID)

	_, err = menu.DeleteDish(ctx, dish.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	starters, err := menu.ListByCourse(ctx, entity.CourseStarter)
	require.NoError(t, err)
	assert.Empty(t, starters)
}
