package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleTourist    = "tourist"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

// AdminUser - оператор диспетчерской панели (таблица admin_users)
type AdminUser struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	FullName     string     `json:"full_name"`
	Role         string     `json:"role"`
	IsActive     bool       `json:"is_active"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// IsAdminRole сообщает, относится ли роль к администраторам
func IsAdminRole(role string) bool {
	return role == RoleAdmin || role == RoleSuperAdmin
}
