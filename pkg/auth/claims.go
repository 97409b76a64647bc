package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/industrahub/industrahub-backend/pkg/enums"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID      uuid.UUID
	Role        enums.UserRole
	Permissions []string
	JTI         string
}

// AccessTokenClaims represents the typed JWT issued to clients. Permissions
// is only populated for ADMIN users; SUPER_ADMIN implies every permission.
type AccessTokenClaims struct {
	UserID      uuid.UUID      `json:"user_id"`
	Role        enums.UserRole `json:"role"`
	Permissions []string       `json:"permissions,omitempty"`
	jwt.RegisteredClaims
}
