package repository

import (
	"context"
	"errors"
	"fmt"

	"restaurant-menu/internal/data/entity"
	"restaurant-menu/pkg/database"

	"go.uber.org/zap"
)

type FoodItemRepository interface {
	FindAll(ctx context.Context) ([]*entity.FoodItem, error)
	FindByCourse(ctx context.Context, course entity.Course) ([]*entity.FoodItem, error)
	FindByID(ctx context.Context, id int64) (*entity.FoodItem, error)
	Create(ctx context.Context, item *entity.FoodItem) error
	Update(ctx context.Context, item *entity.FoodItem) error
	Delete(ctx context.Context, id int64) error
	CountAll(ctx context.Context) (int64, error)
	NextID(ctx context.Context) (int64, error)
	ResyncSequence(ctx context.Context) error
}

const foodItemColumns = `id, name, variant, course, ingredients, description, price,
		category, country_origin, availability, calories`

// Postgres refuses LOCK TABLE outside a transaction block, so NextID must
// run inside Repository.Transaction on that dialect.
var lockFoodItemsSQL = map[database.Dialect]string{
	database.Postgres: `LOCK TABLE food_items IN EXCLUSIVE MODE`,
}

// highWaterSQL returns the largest id ever handed out by the store's own
// counter, including ids of rows that were later deleted.
var highWaterSQL = map[database.Dialect]string{
	database.Postgres: `SELECT CASE WHEN is_called THEN last_value ELSE last_value - 1 END FROM food_items_id_seq`,
	database.SQLite:   `SELECT COALESCE((SELECT seq FROM sqlite_sequence WHERE name = 'food_items'), 0)`,
}

var resyncSQL = map[database.Dialect]string{
	database.Postgres: `
		SELECT setval('food_items_id_seq', GREATEST(
			(SELECT COALESCE(MAX(id), 0) FROM food_items),
			(SELECT CASE WHEN is_called THEN last_value ELSE last_value - 1 END FROM food_items_id_seq)
		) + 1, false)`,
	database.SQLite: `
		UPDATE sqlite_sequence
		SET seq = MAX(seq, (SELECT COALESCE(MAX(id), 0) FROM food_items))
		WHERE name = 'food_items'`,
}

type foodItemRepository struct {
	db      database.Querier
	dialect database.Dialect
	log     *zap.Logger
}

func NewFoodItemRepository(db database.Querier, dialect database.Dialect, log *zap.Logger) FoodItemRepository {
	return &foodItemRepository{
		db:      db,
		dialect: dialect,
		log:     log.With(zap.String("repository", "food_item")),
	}
}

func (fr *foodItemRepository) FindAll(ctx context.Context) ([]*entity.FoodItem, error) {
	query := `SELECT ` + foodItemColumns + ` FROM food_items ORDER BY id`

	items, err := fr.list(ctx, query)
	if err != nil {
		fr.log.Error("Failed to list food items", zap.Error(err))
		return nil, fmt.Errorf("find all food items: %w", err)
	}
	return items, nil
}

func (fr *foodItemRepository) FindByCourse(ctx context.Context, course entity.Course) ([]*entity.FoodItem, error) {
	query := `SELECT ` + foodItemColumns + ` FROM food_items WHERE course = $1 ORDER BY id`

	items, err := fr.list(ctx, query, string(course))
	if err != nil {
		fr.log.Error("Failed to list food items by course",
			zap.Error(err),
			zap.String("course", string(course)),
		)
		return nil, fmt.Errorf("find food items by course %s: %w", course, err)
	}
	return items, nil
}

func (fr *foodItemRepository) FindByID(ctx context.Context, id int64) (*entity.FoodItem, error) {
	query := `SELECT ` + foodItemColumns + ` FROM food_items WHERE id = $1`

	item, err := scanFoodItem(fr.db.QueryRow(ctx, query, id))
	if errors.Is(err, database.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		fr.log.Error("Failed to find food item by ID",
			zap.Error(err),
			zap.Int64("food_item_id", id),
		)
		return nil, fmt.Errorf("find food item by ID %d: %w", id, err)
	}
	return item, nil
}

// Create inserts item with the id it already carries. Allocate the id
// with NextID in the same transaction.
func (fr *foodItemRepository) Create(ctx context.Context, item *entity.FoodItem) error {
	query := `
		INSERT INTO food_items (` + foodItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := fr.db.Exec(ctx, query,
		item.ID,
		item.Name,
		item.Variant,
		string(item.Course),
		item.Ingredients,
		item.Description,
		item.Price,
		item.Category,
		item.CountryOrigin,
		item.Availability,
		item.Calories,
	)
	if fr.dialect.IsUniqueViolation(err) {
		return fmt.Errorf("create food item %d: %w", item.ID, ErrDuplicate)
	}
	if err != nil {
		fr.log.Error("Failed to create food item",
			zap.Error(err),
			zap.Int64("food_item_id", item.ID),
			zap.String("name", item.Name),
		)
		return fmt.Errorf("create food item %d: %w", item.ID, err)
	}
	return nil
}

func (fr *foodItemRepository) Update(ctx context.Context, item *entity.FoodItem) error {
	query := `
		UPDATE food_items
		SET name = $1, variant = $2, course = $3, ingredients = $4, description = $5,
			price = $6, category = $7, country_origin = $8, availability = $9, calories = $10
		WHERE id = $11
	`

	affected, err := fr.db.Exec(ctx, query,
		item.Name,
		item.Variant,
		string(item.Course),
		item.Ingredients,
		item.Description,
		item.Price,
		item.Category,
		item.CountryOrigin,
		item.Availability,
		item.Calories,
		item.ID,
	)
	if err != nil {
		fr.log.Error("Failed to update food item",
			zap.Error(err),
			zap.Int64("food_item_id", item.ID),
		)
		return fmt.Errorf("update food item %d: %w", item.ID, err)
	}
	if affected == 0 {
		return fmt.Errorf("update food item %d: %w", item.ID, ErrNotFound)
	}
	return nil
}

func (fr *foodItemRepository) Delete(ctx context.Context, id int64) error {
	affected, err := fr.db.Exec(ctx, `DELETE FROM food_items WHERE id = $1`, id)
	if err != nil {
		fr.log.Error("Failed to delete food item",
			zap.Error(err),
			zap.Int64("food_item_id", id),
		)
		return fmt.Errorf("delete food item %d: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("delete food item %d: %w", id, ErrNotFound)
	}
	return nil
}

func (fr *foodItemRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := fr.db.QueryRow(ctx, `SELECT COUNT(*) FROM food_items`).Scan(&count); err != nil {
		fr.log.Error("Database error counting food items", zap.Error(err))
		return 0, fmt.Errorf("count all food items: %w", err)
	}
	return count, nil
}

// NextID returns one more than the larger of the highest stored id and the
// store's own counter, so ids of deleted dishes are never handed out again.
func (fr *foodItemRepository) NextID(ctx context.Context) (int64, error) {
	if lock, ok := lockFoodItemsSQL[fr.dialect]; ok {
		if _, err := fr.db.Exec(ctx, lock); err != nil {
			fr.log.Error("Failed to lock food items", zap.Error(err))
			return 0, fmt.Errorf("lock food items: %w", err)
		}
	}

	var maxID, highWater int64
	if err := fr.db.QueryRow(ctx, `SELECT COALESCE(MAX(id), 0) FROM food_items`).Scan(&maxID); err != nil {
		fr.log.Error("Failed to read max food item id", zap.Error(err))
		return 0, fmt.Errorf("read max food item id: %w", err)
	}
	if err := fr.db.QueryRow(ctx, highWaterSQL[fr.dialect]).Scan(&highWater); err != nil {
		fr.log.Error("Failed to read food item sequence", zap.Error(err))
		return 0, fmt.Errorf("read food item sequence: %w", err)
	}

	return max(maxID, highWater) + 1, nil
}

// ResyncSequence moves the store's own counter past every explicitly
// assigned id.
func (fr *foodItemRepository) ResyncSequence(ctx context.Context) error {
	if _, err := fr.db.Exec(ctx, resyncSQL[fr.dialect]); err != nil {
		return fmt.Errorf("resync food item sequence: %w", err)
	}
	return nil
}

func (fr *foodItemRepository) list(ctx context.Context, query string, args ...any) ([]*entity.FoodItem, error) {
	rows, err := fr.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*entity.FoodItem, 0)
	for rows.Next() {
		item, err := scanFoodItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func scanFoodItem(row database.Row) (*entity.FoodItem, error) {
	var (
		item   entity.FoodItem
		course string
	)
	err := row.Scan(
		&item.ID,
		&item.Name,
		&item.Variant,
		&course,
		&item.Ingredients,
		&item.Description,
		&item.Price,
		&item.Category,
		&item.CountryOrigin,
		&item.Availability,
		&item.Calories,
	)
	if err != nil {
		return nil, err
	}
	item.Course = entity.Course(course)
	return &item, nil
}
