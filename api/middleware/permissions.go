package middleware

import (
	"net/http"

	"github.com/industrahub/industrahub-backend/api/responses"
	"github.com/industrahub/industrahub-backend/pkg/enums"
	pkgerrors "github.com/industrahub/industrahub-backend/pkg/errors"
	"github.com/industrahub/industrahub-backend/pkg/logger"
)

// RequirePermission gates an admin surface behind a specific grant.
// SUPER_ADMIN bypasses the check; ADMIN must carry the permission in
// their token claims.
func RequirePermission(permission enums.AdminPermission, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := enums.UserRole(RoleFromContext(r.Context()))
			if role == enums.UserRoleSuperAdmin {
				next.ServeHTTP(w, r)
				return
			}
			if role != enums.UserRoleAdmin {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "admin role required"))
				return
			}
			for _, granted := range PermissionsFromContext(r.Context()) {
				if granted == string(permission) {
					next.ServeHTTP(w, r)
					return
				}
			}
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "permission required"))
		})
	}
}
