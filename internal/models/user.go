package models

// User roles. The set is closed: authorization code matches exhaustively
// over these three values, with IsSuperuser as an admin-equivalent override.
const (
	RoleAdmin       = "ADMIN"
	RoleResponsible = "RESPONSIBLE"
	RoleObserver    = "OBSERVER"
)

// User is a system actor. CanSoftDelete is an explicit capability flag
// independent of role; it is never inferred.
type User struct {
	ID            int    `json:"id"`
	Username      string `json:"username"`
	PasswordHash  string `json:"-"`
	Email         string `json:"email,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Position      string `json:"position,omitempty"`
	Role          string `json:"role"`
	IsSuperuser   bool   `json:"is_superuser"`
	CanSoftDelete bool   `json:"can_soft_delete"`
}

// IsAdmin reports whether the user has administrative rights, either by
// role or by the superuser flag.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.IsSuperuser
}
