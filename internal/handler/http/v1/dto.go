package v1

import (
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/tourist_safety_system/internal/models"
)

// RegisterRequest DTO для регистрации туриста
// @Description DTO для регистрации туриста
type RegisterRequest struct {
	Email                 string `json:"email" validate:"required,email"`
	Password              string `json:"password" validate:"required,min=8,max=72"`
	FullName              string `json:"full_name" validate:"required,min=2,max=255"`
	Phone                 string `json:"phone,omitempty" validate:"omitempty,max=32"`
	Nationality           string `json:"nationality,omitempty" validate:"omitempty,max=64"`
	PassportNumber        string `json:"passport_number,omitempty" validate:"omitempty,max=64"`
	EmergencyContactName  string `json:"emergency_contact_name,omitempty" validate:"omitempty,max=255"`
	EmergencyContactPhone string `json:"emergency_contact_phone,omitempty" validate:"omitempty,max=32"`
}

// LoginRequest DTO для входа туриста или администратора
// @Description DTO для входа
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse DTO с токеном доступа
// @Description DTO с токеном доступа
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Role      string    `json:"role"`
	User      any       `json:"user"`
}

// UpdateProfileRequest DTO для обновления профиля туриста
// @Description DTO для обновления профиля
type UpdateProfileRequest struct {
	FullName              string `json:"full_name" validate:"required,min=2,max=255"`
	Phone                 string `json:"phone,omitempty" validate:"omitempty,max=32"`
	Nationality           string `json:"nationality,omitempty" validate:"omitempty,max=64"`
	PassportNumber        string `json:"passport_number,omitempty" validate:"omitempty,max=64"`
	EmergencyContactName  string `json:"emergency_contact_name,omitempty" validate:"omitempty,max=255"`
	EmergencyContactPhone string `json:"emergency_contact_phone,omitempty" validate:"omitempty,max=32"`
}

// LocationRequest DTO для отправки координат.
// Координаты - указатели, чтобы 0 проходил проверку required.
// @Description DTO для отправки координат
type LocationRequest struct {
	Latitude       *float64   `json:"latitude" validate:"required,latitude"`
	Longitude      *float64   `json:"longitude" validate:"required,longitude"`
	AccuracyMeters float64    `json:"accuracy_meters,omitempty" validate:"gte=0"`
	RecordedAt     *time.Time `json:"recorded_at,omitempty"`
}

// LocationUpdateResponse DTO с результатом обработки точки
// @Description DTO с результатом обработки точки
type LocationUpdateResponse struct {
	Location *models.TouristLocation `json:"location"`
	Zones    []*GeofenceResponse     `json:"zones"`
	Alert    *models.EmergencyAlert  `json:"alert,omitempty"`
}

// CreateAlertRequest DTO для SOS
// @Description DTO для SOS
type CreateAlertRequest struct {
	AlertType string   `json:"alert_type,omitempty" validate:"omitempty,oneof=sos medical theft lost harassment other"`
	Priority  string   `json:"priority,omitempty" validate:"omitempty,oneof=low medium high critical"`
	Message   string   `json:"message,omitempty" validate:"max=2000"`
	Latitude  *float64 `json:"latitude" validate:"required,latitude"`
	Longitude *float64 `json:"longitude" validate:"required,longitude"`
}

// UpdateAlertStatusRequest DTO для смены статуса алерта диспетчером
// @Description DTO для смены статуса алерта
type UpdateAlertStatusRequest struct {
	Status          string `json:"status" validate:"required,oneof=acknowledged in_progress resolved false_alarm"`
	ResolutionNotes string `json:"resolution_notes,omitempty" validate:"max=2000"`
}

// GeofenceRequest DTO для создания и обновления зоны
// @Description DTO для создания и обновления зоны
type GeofenceRequest struct {
	Name         string       `json:"name" validate:"required,min=2,max=255"`
	Description  string       `json:"description,omitempty"`
	ZoneType     string       `json:"zone_type" validate:"required,oneof=safe caution restricted"`
	Shape        string       `json:"shape" validate:"required,oneof=circle polygon"`
	CenterLat    float64      `json:"center_lat,omitempty" validate:"latitude"`
	CenterLon    float64      `json:"center_lon,omitempty" validate:"longitude"`
	RadiusMeters int          `json:"radius_meters,omitempty" validate:"gte=0"`
	Polygon      [][2]float64 `json:"polygon,omitempty"`
	IsActive     *bool        `json:"is_active,omitempty"`
}

// GeofenceResponse DTO зоны
// @Description DTO зоны
type GeofenceResponse struct {
	ID           uuid.UUID    `json:"id"`
	Name         string       `json:"name"`
	Description  string       `json:"description,omitempty"`
	ZoneType     string       `json:"zone_type"`
	Shape        string       `json:"shape"`
	CenterLat    float64      `json:"center_lat"`
	CenterLon    float64      `json:"center_lon"`
	RadiusMeters int          `json:"radius_meters,omitempty"`
	Polygon      [][2]float64 `json:"polygon,omitempty"`
	IsActive     bool         `json:"is_active"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// CreateAdminRequest DTO для заведения администратора
// @Description DTO для заведения администратора
type CreateAdminRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	FullName string `json:"full_name" validate:"required,min=2,max=255"`
	Role     string `json:"role,omitempty" validate:"omitempty,oneof=admin super_admin"`
}

// HealthResponse DTO проверки состояния
// @Description DTO проверки состояния
type HealthResponse struct {
	Status string `json:"status"`
}
