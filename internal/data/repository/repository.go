package repository

import (
	"context"
	"errors"

	"restaurant-menu/pkg/database"

	"go.uber.org/zap"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate key")
)

type Repository struct {
	User     UserRepository
	FoodItem FoodItemRepository

	db   database.DB
	log  *zap.Logger
	inTx bool
}

func NewRepository(db database.DB, log *zap.Logger) *Repository {
	return &Repository{
		User:     NewUserRepository(db, db.Dialect(), log),
		FoodItem: NewFoodItemRepository(db, db.Dialect(), log),
		db:       db,
		log:      log,
	}
}

// Transaction runs fn with a Repository whose members all share one
// transaction. It commits when fn returns nil and rolls back otherwise.
// Calling Transaction on a transactional Repository reuses the open one.
func (r *Repository) Transaction(ctx context.Context, fn func(tx *Repository) error) error {
	if r.inTx {
		return fn(r)
	}

	return database.WithTx(ctx, r.db, func(tx database.Tx) error {
		return fn(&Repository{
			User:     NewUserRepository(tx, r.db.Dialect(), r.log),
			FoodItem: NewFoodItemRepository(tx, r.db.Dialect(), r.log),
			db:       r.db,
			log:      r.log,
			inTx:     true,
		})
	})
}
