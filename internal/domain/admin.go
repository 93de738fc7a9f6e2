package domain

// Admin roles, ordered by capability tier
const (
	RoleSuperAdmin = "super_admin"
	RoleAdmin      = "admin"
	RoleManager    = "manager"
)

// AdminUser represents a member of the static admin roster. Passwords are
// bcrypt-hashed by the credential provider at startup; the plaintext never
// leaves configuration.
type AdminUser struct {
	Username     string
	PasswordHash string
	Role         string
	Name         string
	Permissions  []string
}

// HasPermission reports whether the admin carries a named permission
func (u *AdminUser) HasPermission(p string) bool {
	for _, have := range u.Permissions {
		if have == p {
			return true
		}
	}
	return false
}
