package usecase

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"restaurant-menu/internal/data/repository"
	"restaurant-menu/pkg/database"
	"restaurant-menu/pkg/utils"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testEnv struct {
	db      database.DB
	repo    *repository.Repository
	service *Service
	config  *utils.Config
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	db, err := database.NewSQLite(ctx, filepath.Join(t.TempDir(), "usecase.db"))
	require.NoError(t, err)
	t.Cleanup(db.Close)
	require.NoError(t, database.Migrate(ctx, db, zap.NewNop()))

	config := &utils.Config{
		JWT: utils.JWTConfig{Secret: "test-secret", Expiry: 15 * time.Minute},
	}
	repo := repository.NewRepository(db, zap.NewNop())

	return &testEnv{
		db:      db,
		repo:    repo,
		service: NewService(repo, config, zap.NewNop()),
		config:  config,
	}
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }
