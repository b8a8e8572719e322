package usecase

import (
	"restaurant-menu/internal/data/repository"
	"restaurant-menu/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth   AuthService
	Menu   MenuService
	Import ImportService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:   NewAuthService(repo, config, log),
		Menu:   NewMenuService(repo, log),
		Import: NewImportService(repo, log),
	}
}
