package auth

import (
	"time"

	"github.com/google/uuid"

	"github.com/industrahub/industrahub-backend/pkg/db/models"
	"github.com/industrahub/industrahub-backend/pkg/enums"
)

// UserDTO is the public profile shape. The password hash never leaves the
// service layer.
type UserDTO struct {
	ID          uuid.UUID      `json:"id"`
	Email       string         `json:"email"`
	Phone       *string        `json:"phone,omitempty"`
	FirstName   string         `json:"first_name"`
	LastName    string         `json:"last_name"`
	CompanyName *string        `json:"company_name,omitempty"`
	Role        enums.UserRole `json:"role"`
	Permissions []string       `json:"permissions,omitempty"`
	IsActive    bool           `json:"is_active"`
	LastLoginAt *time.Time     `json:"last_login_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

// TokenPairDTO carries a freshly minted access token. The refresh token
// travels in an HTTP-only cookie, never in the body.
type TokenPairDTO struct {
	AccessToken string  `json:"access_token"`
	TokenType   string  `json:"token_type"`
	ExpiresIn   int     `json:"expires_in"`
	User        UserDTO `json:"user"`
}

// RefreshResult bundles what the controller needs to rewrite the cookie.
type RefreshResult struct {
	Pair         TokenPairDTO
	RefreshToken string
}

func newUserDTO(user *models.User) UserDTO {
	return UserDTO{
		ID:          user.ID,
		Email:       user.Email,
		Phone:       user.Phone,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		CompanyName: user.CompanyName,
		Role:        user.Role,
		Permissions: append([]string(nil), user.Permissions...),
		IsActive:    user.IsActive,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
	}
}
