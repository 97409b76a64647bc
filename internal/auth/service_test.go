package auth

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgauth "github.com/industrahub/industrahub-backend/pkg/auth"
	"github.com/industrahub/industrahub-backend/pkg/auth/session"
	"github.com/industrahub/industrahub-backend/pkg/config"
	"github.com/industrahub/industrahub-backend/pkg/db/models"
	"github.com/industrahub/industrahub-backend/pkg/enums"
	pkgerrors "github.com/industrahub/industrahub-backend/pkg/errors"
	"github.com/industrahub/industrahub-backend/pkg/security"
)

type fakeUserStore struct {
	byID        map[uuid.UUID]*models.User
	byEmail     map[string]*models.User
	createErr   error
	lastLoginAt *time.Time
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		byID:    map[uuid.UUID]*models.User{},
		byEmail: map[string]*models.User{},
	}
}

func (f *fakeUserStore) add(user *models.User) {
	f.byID[user.ID] = user
	f.byEmail[user.Email] = user
}

func (f *fakeUserStore) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	user, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (f *fakeUserStore) Create(_ context.Context, user *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	user.ID = uuid.New()
	f.add(user)
	return user, nil
}

func (f *fakeUserStore) TouchLastLogin(_ context.Context, _ uuid.UUID, at time.Time) error {
	f.lastLoginAt = &at
	return nil
}

type fakeSessionManager struct {
	generated map[string]string
	rotateErr error
}

func newFakeSessionManager() *fakeSessionManager {
	return &fakeSessionManager{generated: map[string]string{}}
}

func (f *fakeSessionManager) Generate(_ context.Context, accessID string) (string, error) {
	token := "refresh-" + accessID
	f.generated[accessID] = token
	return token, nil
}

func (f *fakeSessionManager) Rotate(_ context.Context, oldAccessID, provided string) (string, string, error) {
	if f.rotateErr != nil {
		return "", "", f.rotateErr
	}
	stored, ok := f.generated[oldAccessID]
	if !ok || stored != provided {
		return "", "", session.ErrInvalidRefreshToken
	}
	delete(f.generated, oldAccessID)
	newAccessID := session.NewAccessID()
	f.generated[newAccessID] = "refresh-" + newAccessID
	return newAccessID, f.generated[newAccessID], nil
}

func (f *fakeSessionManager) Revoke(_ context.Context, accessID string) error {
	delete(f.generated, accessID)
	return nil
}

func authTestConfigs() (config.JWTConfig, config.PasswordConfig) {
	jwtCfg := config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "industrahub-test",
		ExpirationMinutes: 15,
	}
	pwCfg := config.PasswordConfig{
		ArgonMemoryKB:    8 * 1024,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
	return jwtCfg, pwCfg
}

func newAuthService(t *testing.T, users *fakeUserStore, sessions *fakeSessionManager) Service {
	t.Helper()
	jwtCfg, pwCfg := authTestConfigs()
	svc, err := NewService(users, sessions, jwtCfg, pwCfg)
	if err != nil {
		t.Fatalf("building service: %v", err)
	}
	return svc
}

func seedUser(t *testing.T, users *fakeUserStore, email, password string, role enums.UserRole) *models.User {
	t.Helper()
	_, pwCfg := authTestConfigs()
	hash, err := security.HashPassword(password, pwCfg)
	if err != nil {
		t.Fatalf("hashing password: %v", err)
	}
	user := &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		FirstName:    "Test",
		LastName:     "User",
		Role:         role,
		IsActive:     true,
	}
	users.add(user)
	return user
}

func TestSignup(t *testing.T) {
	users := newFakeUserStore()
	svc := newAuthService(t, users, newFakeSessionManager())

	dto, err := svc.Signup(context.Background(), SignupInput{
		Email:     "  Buyer@Example.COM ",
		Password:  "hunter2hunter2",
		FirstName: "Ana",
		LastName:  "Reyes",
		Role:      enums.UserRoleNormal,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dto.Email != "buyer@example.com" {
		t.Fatalf("expected lowercased email, got %q", dto.Email)
	}

	stored := users.byEmail["buyer@example.com"]
	if stored == nil {
		t.Fatal("expected user to be stored")
	}
	if stored.PasswordHash == "hunter2hunter2" || !strings.HasPrefix(stored.PasswordHash, "$argon2id$") {
		t.Fatal("expected hashed password")
	}

	t.Run("admin role is rejected", func(t *testing.T) {
		_, err := svc.Signup(context.Background(), SignupInput{
			Email:    "admin@example.com",
			Password: "hunter2hunter2",
			Role:     enums.UserRoleAdmin,
		})
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("duplicate email is a conflict", func(t *testing.T) {
		users.createErr = fmt.Errorf(`ERROR: duplicate key value violates unique constraint "users_email_key"`)
		defer func() { users.createErr = nil }()

		_, err := svc.Signup(context.Background(), SignupInput{
			Email:    "buyer@example.com",
			Password: "hunter2hunter2",
			Role:     enums.UserRoleNormal,
		})
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
			t.Fatalf("expected conflict, got %v", err)
		}
	})
}

func TestLogin(t *testing.T) {
	users := newFakeUserStore()
	sessions := newFakeSessionManager()
	svc := newAuthService(t, users, sessions)
	user := seedUser(t, users, "vendor@example.com", "correct-password", enums.UserRoleVendor)

	result, err := svc.Login(context.Background(), LoginInput{Email: "Vendor@Example.com", Password: "correct-password"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Pair.TokenType != "Bearer" || result.Pair.AccessToken == "" {
		t.Fatalf("unexpected token pair: %+v", result.Pair)
	}
	if result.RefreshToken == "" {
		t.Fatal("expected refresh token")
	}
	if result.Pair.User.ID != user.ID {
		t.Fatal("expected user on the pair")
	}
	if users.lastLoginAt == nil {
		t.Fatal("expected last login stamp")
	}

	jwtCfg, _ := authTestConfigs()
	claims, err := pkgauth.ParseAccessToken(jwtCfg, result.Pair.AccessToken)
	if err != nil {
		t.Fatalf("parsing issued token: %v", err)
	}
	if claims.UserID != user.ID || claims.Role != enums.UserRoleVendor {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if _, ok := sessions.generated[claims.ID]; !ok {
		t.Fatal("expected session keyed by the token jti")
	}

	t.Run("unknown email and wrong password read the same", func(t *testing.T) {
		_, errUnknown := svc.Login(context.Background(), LoginInput{Email: "nobody@example.com", Password: "x"})
		_, errWrong := svc.Login(context.Background(), LoginInput{Email: "vendor@example.com", Password: "wrong"})

		for _, err := range []error{errUnknown, errWrong} {
			typed := pkgerrors.As(err)
			if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
				t.Fatalf("expected unauthorized, got %v", err)
			}
			if typed.Message() != "invalid credentials" {
				t.Fatalf("expected identical message, got %q", typed.Message())
			}
		}
	})

	t.Run("disabled account cannot log in", func(t *testing.T) {
		disabled := seedUser(t, users, "gone@example.com", "correct-password", enums.UserRoleNormal)
		disabled.IsActive = false

		_, err := svc.Login(context.Background(), LoginInput{Email: "gone@example.com", Password: "correct-password"})
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
			t.Fatalf("expected unauthorized, got %v", err)
		}
	})
}

func TestRefresh(t *testing.T) {
	users := newFakeUserStore()
	sessions := newFakeSessionManager()
	svc := newAuthService(t, users, sessions)
	user := seedUser(t, users, "vendor@example.com", "correct-password", enums.UserRoleVendor)

	login, err := svc.Login(context.Background(), LoginInput{Email: "vendor@example.com", Password: "correct-password"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	refreshed, err := svc.Refresh(context.Background(), login.Pair.AccessToken, login.RefreshToken)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if refreshed.Pair.AccessToken == login.Pair.AccessToken {
		t.Fatal("expected a fresh access token")
	}
	if refreshed.RefreshToken == login.RefreshToken {
		t.Fatal("expected a fresh refresh token")
	}
	if refreshed.Pair.User.ID != user.ID {
		t.Fatal("expected the same account")
	}

	t.Run("reusing the old refresh token fails", func(t *testing.T) {
		_, err := svc.Refresh(context.Background(), login.Pair.AccessToken, login.RefreshToken)
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
			t.Fatalf("expected unauthorized, got %v", err)
		}
	})

	t.Run("garbage access token fails", func(t *testing.T) {
		_, err := svc.Refresh(context.Background(), "not-a-jwt", "whatever")
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
			t.Fatalf("expected unauthorized, got %v", err)
		}
	})

	t.Run("disabled account does not survive rotation", func(t *testing.T) {
		second, err := svc.Login(context.Background(), LoginInput{Email: "vendor@example.com", Password: "correct-password"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		user.IsActive = false
		defer func() { user.IsActive = true }()

		_, err = svc.Refresh(context.Background(), second.Pair.AccessToken, second.RefreshToken)
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
			t.Fatalf("expected unauthorized, got %v", err)
		}
	})
}

func TestLogoutRevokesSession(t *testing.T) {
	users := newFakeUserStore()
	sessions := newFakeSessionManager()
	svc := newAuthService(t, users, sessions)
	seedUser(t, users, "vendor@example.com", "correct-password", enums.UserRoleVendor)

	login, err := svc.Login(context.Background(), LoginInput{Email: "vendor@example.com", Password: "correct-password"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	jwtCfg, _ := authTestConfigs()
	claims, err := pkgauth.ParseAccessToken(jwtCfg, login.Pair.AccessToken)
	if err != nil {
		t.Fatalf("parsing token: %v", err)
	}

	if err := svc.Logout(context.Background(), claims.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := sessions.generated[claims.ID]; ok {
		t.Fatal("expected session to be revoked")
	}
}

func TestMe(t *testing.T) {
	users := newFakeUserStore()
	svc := newAuthService(t, users, newFakeSessionManager())
	user := seedUser(t, users, "vendor@example.com", "correct-password", enums.UserRoleVendor)

	dto, err := svc.Me(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dto.ID != user.ID || dto.Email != user.Email {
		t.Fatalf("unexpected dto: %+v", dto)
	}

	_, err = svc.Me(context.Background(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
