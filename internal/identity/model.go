package identity

import "tienda-storefront/internal/auth"

// Role pairs the canonical numeric id with its derived display name.
type Role struct {
	ID   int    `json:"id"`
	Name string `json:"nombre"`
}

// User is the identity record exchanged with the usuarios API. Password
// travels opaque: this side never hashes or inspects it.
type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"nombre"`
	LastName  string `json:"apellido"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Birthdate string `json:"fechaNacimiento"`
	Address   string `json:"direccion"`
	Roles     []Role `json:"roles"`
}

// RoleID returns the user's primary role id, 0 when no role is attached.
func (u User) RoleID() int {
	if len(u.Roles) == 0 {
		return 0
	}
	return u.Roles[0].ID
}

// NewRoles builds the single-role list the usuarios API expects, deriving
// the display name from the id.
func NewRoles(roleID int) []Role {
	return []Role{{ID: roleID, Name: auth.RoleName(roleID)}}
}
