package usecase

import (
	"context"
	"strings"
	"testing"

	"restaurant-menu/internal/data/entity"
	"restaurant-menu/internal/dto/request"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const menuCSV = `id,name,variant,course,ingredients,description,price,category,country_origin,availability,calories
3,Salade niçoise,,Entrée,"thon, olives",,8.5,Salade,France,,250
7,Boeuf bourguignon,,Plat,boeuf,,19,Viande,France,Available,700
12,Crème brûlée,Vanille,Dessert,,,7,,France,Sold out,
`

func TestImportCSV(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	n, err := env.service.Import.ImportCSV(ctx, strings.NewReader(menuCSV))
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	salad, err := env.repo.FoodItem.FindByID(ctx, 3)
	require.NoError(t, err)
	require.NotNil(t, salad)
	assert.Equal(t, entity.CourseStarter, salad.Course)
	assert.Equal(t, "thon, olives", *salad.Ingredients)
	assert.Equal(t, entity.DefaultAvailability, salad.Availability)
	assert.Equal(t, 250, *salad.Calories)

	dessert, err := env.repo.FoodItem.FindByID(ctx, 12)
	require.NoError(t, err)
	require.NotNil(t, dessert)
	assert.Equal(t, "Sold out", dessert.Availability)
	assert.Nil(t, dessert.Calories)

	// new dishes continue after the imported ids
	dish, err := env.service.Menu.AddDish(ctx, &request.AddDishRequest{Name: "Soup", Course: "Starter"})
	require.NoError(t, err)
	assert.Equal(t, int64(13), dish.ID)

	t.Run("skipped when catalog has data", func(t *testing.T) {
		n, err := env.service.Import.ImportCSV(ctx, strings.NewReader(menuCSV))
		require.NoError(t, err)
		assert.Zero(t, n)
	})
}

func TestImportCSVRollsBackOnBadRow(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	data := "name,course,price\nSoup,Starter,5\nSteak,Brunch,20\n"
	_, err := env.service.Import.ImportCSV(ctx, strings.NewReader(data))
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "line 3")

	count, err := env.repo.FoodItem.CountAll(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestImportCSVWithoutIDs(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	n, err := env.service.Import.ImportCSV(ctx, strings.NewReader("name,course\nSoup,Starter\nCake,Desserts\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	menu, err := env.service.Menu.GetMenu(ctx)
	require.NoError(t, err)
	require.Len(t, menu.Starters, 1)
	require.Len(t, menu.Desserts, 1)
	assert.Equal(t, int64(1), menu.Starters[0].ID)
	assert.Equal(t, int64(2), menu.Desserts[0].ID)
}

func TestImportCSVMissingColumn(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.service.Import.ImportCSV(context.Background(), strings.NewReader("name,price\nSoup,5\n"))
	assert.ErrorIs(t, err, ErrValidation)
}
