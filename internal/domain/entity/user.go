package entity

import "time"

// Roles del catálogo fijo (se siembran en la migración inicial y no cambian en runtime).
const (
	RoleAdmin        = "Admin"
	RoleSales        = "Sales"
	RoleService      = "Service"
	RoleCustomer     = "Customer"
	RoleStoreManager = "StoreManager"
)

// User representa un usuario del sistema. Un usuario puede tener varios roles;
// la autorización siempre se decide contra la unión de todos ellos.
type User struct {
	ID           string
	Email        string // normalizado a minúsculas
	Name         string // opcional (columna nullable; vacío si no hay)
	PasswordHash string // bcrypt hash, nunca en claro ni expuesto al cliente
	Roles        []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasAnyRole indica si el usuario tiene al menos uno de los roles permitidos.
// Intersección vacía (o lista vacía de roles) deniega.
func (u *User) HasAnyRole(allowed ...string) bool {
	for _, have := range u.Roles {
		for _, want := range allowed {
			if have == want {
				return true
			}
		}
	}
	return false
}
