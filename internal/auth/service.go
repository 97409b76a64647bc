package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgauth "github.com/industrahub/industrahub-backend/pkg/auth"
	"github.com/industrahub/industrahub-backend/pkg/auth/session"
	"github.com/industrahub/industrahub-backend/pkg/config"
	"github.com/industrahub/industrahub-backend/pkg/db"
	"github.com/industrahub/industrahub-backend/pkg/db/models"
	"github.com/industrahub/industrahub-backend/pkg/enums"
	pkgerrors "github.com/industrahub/industrahub-backend/pkg/errors"
	"github.com/industrahub/industrahub-backend/pkg/security"
)

// Service exposes signup, login, and session lifecycle operations.
type Service interface {
	Signup(ctx context.Context, input SignupInput) (*UserDTO, error)
	Login(ctx context.Context, input LoginInput) (*RefreshResult, error)
	Refresh(ctx context.Context, accessToken, refreshToken string) (*RefreshResult, error)
	Logout(ctx context.Context, accessID string) error
	Me(ctx context.Context, userID uuid.UUID) (*UserDTO, error)
}

// SignupInput holds the validated registration payload.
type SignupInput struct {
	Email       string
	Phone       *string
	Password    string
	FirstName   string
	LastName    string
	CompanyName *string
	Role        enums.UserRole
}

// LoginInput holds the validated credential payload.
type LoginInput struct {
	Email    string
	Password string
}

type userStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
	TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

type sessionManager interface {
	Generate(ctx context.Context, accessID string) (string, error)
	Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error)
	Revoke(ctx context.Context, accessID string) error
}

type service struct {
	users    userStore
	sessions sessionManager
	jwtCfg   config.JWTConfig
	pwCfg    config.PasswordConfig
}

// NewService constructs an auth service instance.
func NewService(users userStore, sessions sessionManager, jwtCfg config.JWTConfig, pwCfg config.PasswordConfig) (Service, error) {
	if users == nil {
		return nil, fmt.Errorf("user repository required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session manager required")
	}
	return &service{
		users:    users,
		sessions: sessions,
		jwtCfg:   jwtCfg,
		pwCfg:    pwCfg,
	}, nil
}

// Signup registers a buyer or vendor account. Admin accounts are provisioned
// out of band, never through this surface.
func (s *service) Signup(ctx context.Context, input SignupInput) (*UserDTO, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	if strings.TrimSpace(input.Password) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "password is required")
	}
	if input.Role != enums.UserRoleNormal && input.Role != enums.UserRoleVendor {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "role must be NORMAL_USER or VENDOR")
	}

	hash, err := security.HashPassword(input.Password, s.pwCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user := &models.User{
		Email:        email,
		Phone:        input.Phone,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		CompanyName:  input.CompanyName,
		Role:         input.Role,
		IsActive:     true,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email or phone already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert user")
	}

	dto := newUserDTO(created)
	return &dto, nil
}

// Login verifies credentials and opens a session. Bad email and bad password
// read the same so the response never confirms which accounts exist.
func (s *service) Login(ctx context.Context, input LoginInput) (*RefreshResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}

	ok, err := security.VerifyPassword(input.Password, user.PasswordHash)
	if err != nil || !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}
	if !user.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "account disabled")
	}

	result, err := s.openSession(ctx, user)
	if err != nil {
		return nil, err
	}

	// best effort; a failed stamp must not block the login
	_ = s.users.TouchLastLogin(ctx, user.ID, time.Now().UTC())

	return result, nil
}

// Refresh rotates the session identified by the expired access token's jti
// and mints a fresh pair. Role and permissions are re-read so revoked access
// does not survive a rotation.
func (s *service) Refresh(ctx context.Context, accessToken, refreshToken string) (*RefreshResult, error) {
	claims, err := pkgauth.ParseAccessTokenAllowExpired(s.jwtCfg, accessToken)
	if err != nil || claims.ID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid access token")
	}

	newAccessID, newRefresh, err := s.sessions.Rotate(ctx, claims.ID, refreshToken)
	if err != nil {
		if errors.Is(err, session.ErrInvalidRefreshToken) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid refresh token")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rotate session")
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "account not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	if !user.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "account disabled")
	}

	signed, err := s.mintToken(user, newAccessID)
	if err != nil {
		return nil, err
	}

	return &RefreshResult{
		Pair:         s.tokenPair(signed, user),
		RefreshToken: newRefresh,
	}, nil
}

func (s *service) Logout(ctx context.Context, accessID string) error {
	if err := s.sessions.Revoke(ctx, accessID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke session")
	}
	return nil
}

func (s *service) Me(ctx context.Context, userID uuid.UUID) (*UserDTO, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	dto := newUserDTO(user)
	return &dto, nil
}

func (s *service) openSession(ctx context.Context, user *models.User) (*RefreshResult, error) {
	accessID := session.NewAccessID()

	signed, err := s.mintToken(user, accessID)
	if err != nil {
		return nil, err
	}

	refresh, err := s.sessions.Generate(ctx, accessID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create session")
	}

	return &RefreshResult{
		Pair:         s.tokenPair(signed, user),
		RefreshToken: refresh,
	}, nil
}

func (s *service) mintToken(user *models.User, accessID string) (string, error) {
	signed, err := pkgauth.MintAccessToken(s.jwtCfg, time.Now().UTC(), pkgauth.AccessTokenPayload{
		UserID:      user.ID,
		Role:        user.Role,
		Permissions: append([]string(nil), user.Permissions...),
		JTI:         accessID,
	})
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}
	return signed, nil
}

func (s *service) tokenPair(signed string, user *models.User) TokenPairDTO {
	return TokenPairDTO{
		AccessToken: signed,
		TokenType:   "Bearer",
		ExpiresIn:   s.jwtCfg.ExpirationMinutes * 60,
		User:        newUserDTO(user),
	}
}
