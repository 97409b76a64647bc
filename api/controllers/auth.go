package controllers

import (
	"net/http"
	"strings"

	"github.com/industrahub/industrahub-backend/api/responses"
	"github.com/industrahub/industrahub-backend/api/validators"
	authsvc "github.com/industrahub/industrahub-backend/internal/auth"
	pkgauth "github.com/industrahub/industrahub-backend/pkg/auth"
	"github.com/industrahub/industrahub-backend/pkg/config"
	"github.com/industrahub/industrahub-backend/pkg/enums"
	pkgerrors "github.com/industrahub/industrahub-backend/pkg/errors"
	"github.com/industrahub/industrahub-backend/pkg/logger"
)

type signupRequest struct {
	Email       string  `json:"email" validate:"required,email"`
	Phone       *string `json:"phone,omitempty"`
	Password    string  `json:"password" validate:"required,min=8"`
	FirstName   string  `json:"first_name" validate:"required"`
	LastName    string  `json:"last_name" validate:"required"`
	CompanyName *string `json:"company_name,omitempty"`
	Role        string  `json:"role" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthSignup registers a new buyer or vendor account.
func AuthSignup(svc authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var body signupRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		role, err := enums.ParseUserRole(strings.TrimSpace(body.Role))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid role"))
			return
		}

		user, err := svc.Signup(r.Context(), authsvc.SignupInput{
			Email:       body.Email,
			Phone:       body.Phone,
			Password:    body.Password,
			FirstName:   body.FirstName,
			LastName:    body.LastName,
			CompanyName: body.CompanyName,
			Role:        role,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, user)
	}
}

// AuthLogin verifies credentials and opens a session. The refresh token
// travels in an HTTP-only cookie.
func AuthLogin(svc authsvc.Service, jwtCfg config.JWTConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var body loginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Login(r.Context(), authsvc.LoginInput{
			Email:    body.Email,
			Password: body.Password,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		setRefreshCookie(w, jwtCfg, result.RefreshToken)
		responses.WriteSuccess(w, result.Pair)
	}
}

// AuthRefresh rotates the session keyed by the expired access token's jti.
func AuthRefresh(svc authsvc.Service, jwtCfg config.JWTConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		token, err := bearerToken(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cookie, err := r.Cookie(jwtCfg.RefreshCookieName)
		if err != nil || cookie.Value == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "refresh cookie missing"))
			return
		}

		result, err := svc.Refresh(r.Context(), token, cookie.Value)
		if err != nil {
			clearRefreshCookie(w, jwtCfg)
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		setRefreshCookie(w, jwtCfg, result.RefreshToken)
		responses.WriteSuccess(w, result.Pair)
	}
}

// AuthLogout revokes the session behind the presented access token. Expired
// tokens are accepted so a stale tab can still sign out.
func AuthLogout(svc authsvc.Service, jwtCfg config.JWTConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		token, err := bearerToken(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		claims, err := pkgauth.ParseAccessTokenAllowExpired(jwtCfg, token)
		if err != nil || claims.ID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid access token"))
			return
		}

		if err := svc.Logout(r.Context(), claims.ID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		clearRefreshCookie(w, jwtCfg)
		responses.WriteSuccessMessage(w, http.StatusOK, nil, "logged out")
	}
}

// AuthMe returns the authenticated user's profile.
func AuthMe(svc authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		userID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.Me(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, user)
	}
}

const refreshCookiePath = "/api/v1/auth"

func setRefreshCookie(w http.ResponseWriter, cfg config.JWTConfig, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.RefreshCookieName,
		Value:    token,
		Path:     refreshCookiePath,
		MaxAge:   int(cfg.RefreshTokenTTL().Seconds()),
		HttpOnly: true,
		Secure:   cfg.RefreshCookieSecure,
		SameSite: http.SameSiteStrictMode,
	})
}

func clearRefreshCookie(w http.ResponseWriter, cfg config.JWTConfig) {
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.RefreshCookieName,
		Value:    "",
		Path:     refreshCookiePath,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cfg.RefreshCookieSecure,
		SameSite: http.SameSiteStrictMode,
	})
}
