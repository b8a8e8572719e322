package response

import (
	"restaurant-menu/internal/data/entity"
)

type UserResponse struct {
	ID       int64           `json:"id"`
	Username string          `json:"username"`
	Role     entity.UserRole `json:"role"`
}

type RegisterResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
}

type ProtectedResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}

// Helper converters
func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Role:     user.Role,
	}
}
