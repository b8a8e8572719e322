package usecase

import (
	"context"
	"errors"
	"fmt"

	"restaurant-menu/internal/data/entity"
	"restaurant-menu/internal/data/repository"
	"restaurant-menu/internal/dto/request"
	"restaurant-menu/internal/dto/response"
	"restaurant-menu/pkg/utils"

	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.UserResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.LoginResponse, error)
	VerifyToken(ctx context.Context, token string) (int64, error)
	Profile(ctx context.Context, userID int64) (*response.UserResponse, error)
	RequireRole(ctx context.Context, userID int64, role entity.UserRole) error
}

type authService struct {
	repo   *repository.Repository
	tokens *utils.TokenManager
	log    *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		tokens: utils.NewTokenManager(config.JWT),
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.UserResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register validation failed", zap.Any("errors", errs))
		return nil, newValidationError(utils.FormatValidationErrors(errs), errs)
	}

	role := entity.RoleCustomer
	if req.Role != "" {
		role = entity.UserRole(req.Role)
	}

	// 2. Hash password before opening the transaction
	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &entity.User{
		Username:     req.Username,
		PasswordHash: hashedPassword,
		Role:         role,
	}

	// 3. Check and insert atomically
	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		existing, err := tx.User.FindByUsername(ctx, req.Username)
		if err != nil {
			return persistenceError("check username", err)
		}
		if existing != nil {
			return ErrDuplicateUsername
		}

		if err := tx.User.Create(ctx, user); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return ErrDuplicateUsername
			}
			return persistenceError("create user", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateUsername) {
			s.log.Warn("Username already taken", zap.String("username", req.Username))
		}
		return nil, transactionError("register", err)
	}

	s.log.Info("User registered",
		zap.Int64("user_id", user.ID),
		zap.String("username", user.Username),
		zap.String("role", string(user.Role)),
	)

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.LoginResponse, error) {
	// 1. Validate
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", errs))
		return nil, newValidationError(utils.FormatValidationErrors(errs), errs)
	}

	// 2. Find user
	user, err := s.repo.User.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, persistenceError("find user", err)
	}
	if user == nil {
		s.log.Warn("User not found for login", zap.String("username", req.Username))
		return nil, ErrInvalidCredentials
	}

	// 3. Check password
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid password", zap.Int64("user_id", user.ID))
		return nil, ErrInvalidCredentials
	}

	// 4. Issue token
	token, expiresAt, err := s.tokens.Issue(user.ID)
	if err != nil {
		s.log.Error("Failed to issue token", zap.Error(err), zap.Int64("user_id", user.ID))
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.log.Info("User logged in",
		zap.Int64("user_id", user.ID),
		zap.Time("expires_at", expiresAt),
	)

	return &response.LoginResponse{
		AccessToken: token,
		User:        response.UserToResponse(user),
	}, nil
}

func (s *authService) VerifyToken(_ context.Context, token string) (int64, error) {
	userID, err := s.tokens.Verify(token)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return userID, nil
}

func (s *authService) Profile(ctx context.Context, userID int64) (*response.UserResponse, error) {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, persistenceError("find user", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %d: %w", userID, ErrNotFound)
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

// RequireRole succeeds only when the user exists and holds exactly role.
func (s *authService) RequireRole(ctx context.Context, userID int64, role entity.UserRole) error {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return persistenceError("find user", err)
	}
	if user == nil || user.Role != role {
		s.log.Warn("Role check failed",
			zap.Int64("user_id", userID),
			zap.String("required_role", string(role)),
		)
		return ErrUnauthorized
	}
	return nil
}
