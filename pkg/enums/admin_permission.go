package enums

import "fmt"

// AdminPermission gates a sub-admin's access to one back-office surface.
// SUPER_ADMIN bypasses permission checks entirely.
type AdminPermission string

const (
	PermissionManageProducts    AdminPermission = "MANAGE_PRODUCTS"
	PermissionManageCategories  AdminPermission = "MANAGE_CATEGORIES"
	PermissionManageQuotes      AdminPermission = "MANAGE_QUOTES"
	PermissionManageSubmissions AdminPermission = "MANAGE_SUBMISSIONS"
	PermissionManageServices    AdminPermission = "MANAGE_SERVICES"
)

var validAdminPermissions = []AdminPermission{
	PermissionManageProducts,
	PermissionManageCategories,
	PermissionManageQuotes,
	PermissionManageSubmissions,
	PermissionManageServices,
}

// String implements fmt.Stringer.
func (p AdminPermission) String() string {
	return string(p)
}

// IsValid reports whether the value is a known AdminPermission.
func (p AdminPermission) IsValid() bool {
	for _, candidate := range validAdminPermissions {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseAdminPermission converts raw input into an AdminPermission.
func ParseAdminPermission(value string) (AdminPermission, error) {
	for _, candidate := range validAdminPermissions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid admin permission %q", value)
}
