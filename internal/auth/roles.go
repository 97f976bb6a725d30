package auth

import (
	"errors"
	"fmt"
)

// Numeric role ids are the canonical representation; names are derived.
// The id assignments are a fixed convention shared with the usuarios API.
const (
	RoleAdmin    = 1
	RoleStaff    = 2
	RoleCustomer = 3
)

// Landing routes per role after a successful login.
const (
	RouteAdminUsers    = "/list-user"
	RouteAdminProducts = "/list-product"
	RouteProfile       = "/profile"
	RouteLogin         = "/login"
	RouteHome          = "/"
)

var ErrUnknownRole = errors.New("unknown role")

// RoleName derives the display name the usuarios API expects for a role
// id. Unrecognized ids default to the customer role name, matching
// registration behavior.
func RoleName(roleID int) string {
	switch roleID {
	case RoleAdmin:
		return "Admin"
	case RoleStaff:
		return "User"
	case RoleCustomer:
		return "Client"
	default:
		return "Client"
	}
}

// LandingRoute maps a role id to its post-login landing route. An
// unrecognized id is an error state: the caller shows a warning and does
// not navigate.
func LandingRoute(roleID int) (string, error) {
	switch roleID {
	case RoleAdmin:
		return RouteAdminUsers, nil
	case RoleStaff:
		return RouteAdminProducts, nil
	case RoleCustomer:
		return RouteProfile, nil
	default:
		return "", fmt.Errorf("%w: %d", ErrUnknownRole, roleID)
	}
}
