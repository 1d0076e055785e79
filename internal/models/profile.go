package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile - профиль туриста (таблица profiles)
type Profile struct {
	ID                    uuid.UUID `json:"id"`
	Email                 string    `json:"email"`
	PasswordHash          string    `json:"-"`
	FullName              string    `json:"full_name"`
	Phone                 string    `json:"phone"`
	Nationality           string    `json:"nationality"`
	PassportNumber        string    `json:"passport_number"`
	EmergencyContactName  string    `json:"emergency_contact_name"`
	EmergencyContactPhone string    `json:"emergency_contact_phone"`
	IsActive              bool      `json:"is_active"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}
