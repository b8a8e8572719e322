package usecase

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"restaurant-menu/internal/data/entity"
	"restaurant-menu/internal/data/repository"
	"restaurant-menu/pkg/utils"

	"go.uber.org/zap"
)

type ImportService interface {
	ImportCSV(ctx context.Context, r io.Reader) (int, error)
}

type importService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewImportService(repo *repository.Repository, log *zap.Logger) ImportService {
	return &importService{
		repo: repo,
		log:  log.With(zap.String("service", "import")),
	}
}

// ImportCSV seeds an empty catalog from CSV with a header row. It returns
// the number of inserted dishes, or 0 when the catalog already has data.
// A bad row aborts the whole import.
func (s *importService) ImportCSV(ctx context.Context, r io.Reader) (int, error) {
	rows, err := readFoodItemsCSV(r)
	if err != nil {
		return 0, err
	}

	inserted := 0
	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		count, err := tx.FoodItem.CountAll(ctx)
		if err != nil {
			return persistenceError("count dishes", err)
		}
		if count > 0 {
			s.log.Info("Catalog already populated, import skipped", zap.Int64("existing", count))
			return nil
		}

		for _, item := range rows {
			if item.ID == 0 {
				if item.ID, err = tx.FoodItem.NextID(ctx); err != nil {
					return persistenceError("allocate id", err)
				}
			}
			if err := tx.FoodItem.Create(ctx, item); err != nil {
				if errors.Is(err, repository.ErrDuplicate) {
					return newValidationError(fmt.Sprintf("duplicate id %d", item.ID), nil)
				}
				return persistenceError("import dish", err)
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		err = transactionError("import", err)
		s.log.Error("Import failed", zap.Error(err))
		return 0, err
	}

	if inserted > 0 {
		if err := s.repo.FoodItem.ResyncSequence(ctx); err != nil {
			s.log.Warn("Failed to resync food item sequence", zap.Error(err))
		}
		s.log.Info("Catalog imported", zap.Int("count", inserted))
	}

	return inserted, nil
}

func readFoodItemsCSV(r io.Reader) ([]*entity.FoodItem, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, newValidationError(fmt.Sprintf("read header: %v", err), nil)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))] = i
	}
	for _, required := range []string{"name", "course"} {
		if _, ok := columns[required]; !ok {
			return nil, newValidationError(fmt.Sprintf("missing column %q", required), nil)
		}
	}

	var items []*entity.FoodItem
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, newValidationError(fmt.Sprintf("line %d: %v", line, err), nil)
		}

		item, err := parseFoodItemRecord(record, columns)
		if err != nil {
			return nil, newValidationError(fmt.Sprintf("line %d: %v", line, err), nil)
		}
		items = append(items, item)
	}

	return items, nil
}

func parseFoodItemRecord(record []string, columns map[string]int) (*entity.FoodItem, error) {
	get := func(column string) string {
		i, ok := columns[column]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}
	optional := func(column string) *string {
		if v := get(column); v != "" {
			return &v
		}
		return nil
	}

	item := &entity.FoodItem{
		Name:          get("name"),
		Variant:       optional("variant"),
		Ingredients:   optional("ingredients"),
		Description:   optional("description"),
		Category:      optional("category"),
		CountryOrigin: optional("country_origin"),
		Availability:  get("availability"),
	}
	if item.Name == "" {
		return nil, errors.New("name is required")
	}
	if item.Availability == "" {
		item.Availability = entity.DefaultAvailability
	}

	course, ok := entity.ParseCourse(get("course"))
	if !ok {
		return nil, fmt.Errorf("unknown course %q", get("course"))
	}
	item.Course = course

	if raw := get("id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid id %q", raw)
		}
		item.ID = id
	}

	var err error
	if item.Price, err = utils.ParseOptionalPrice(get("price")); err != nil {
		return nil, fmt.Errorf("price: %w", err)
	}
	if item.Calories, err = utils.ParseOptionalCalories(get("calories")); err != nil {
		return nil, fmt.Errorf("calories: %w", err)
	}

	return item, nil
}
