package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shenikar/tourist_safety_system/internal/models"
)

// ProfileRepository определяет контракт для работы с профилями туристов
type ProfileRepository interface {
	Create(ctx context.Context, profile *models.Profile) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	GetByEmail(ctx context.Context, email string) (*models.Profile, error)
	Update(ctx context.Context, profile *models.Profile) error
	List(ctx context.Context, page, pageSize int, search string) ([]*models.Profile, error)
	Count(ctx context.Context) (int, error)
	GetProfileFromCache(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	SetProfileCache(ctx context.Context, profile *models.Profile) error
	InvalidateProfileCache(ctx context.Context, id uuid.UUID) error
}

// AdminRepository определяет контракт для работы с администраторами
type AdminRepository interface {
	Create(ctx context.Context, admin *models.AdminUser) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.AdminUser, error)
	GetByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	TouchLastLogin(ctx context.Context, id uuid.UUID) error
}

// AlertRepository определяет контракт для работы с экстренными алертами
type AlertRepository interface {
	Create(ctx context.Context, alert *models.EmergencyAlert) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.EmergencyAlert, error)
	UpdateStatus(ctx context.Context, alert *models.EmergencyAlert) error
	List(ctx context.Context, filter models.AlertFilter) ([]*models.EmergencyAlert, error)
	ListByTourist(ctx context.Context, touristID uuid.UUID, limit int) ([]*models.EmergencyAlert, error)
	HasOpenAlert(ctx context.Context, touristID uuid.UUID, alertType string) (bool, error)
	Counts(ctx context.Context) (*models.AlertCounts, error)
}

// LocationRepository определяет контракт для трека туристов
type LocationRepository interface {
	Save(ctx context.Context, location *models.TouristLocation) error
	History(ctx context.Context, touristID uuid.UUID, limit int) ([]*models.TouristLocation, error)
	Latest(ctx context.Context, touristID uuid.UUID) (*models.TouristLocation, error)
	LatestAll(ctx context.Context, minutes int) ([]*models.TouristLocation, error)
	CountActiveTourists(ctx context.Context, minutes int) (int, error)
	IndexPosition(ctx context.Context, location *models.TouristLocation) error
	FindNearby(ctx context.Context, lat, lon, radiusMeters float64) ([]*models.NearbyTourist, error)
}

// GeofenceRepository определяет контракт для зон
type GeofenceRepository interface {
	Create(ctx context.Context, geofence *models.Geofence) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Geofence, error)
	Update(ctx context.Context, geofence *models.Geofence) error
	Deactivate(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, activeOnly bool) ([]*models.Geofence, error)
}
