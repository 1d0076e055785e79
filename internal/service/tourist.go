package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/tourist_safety_system/internal/models"
	"github.com/shenikar/tourist_safety_system/internal/realtime"
	"github.com/sirupsen/logrus"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 500
)

// LocationUpdateResult - итог обработки новой точки туриста
type LocationUpdateResult struct {
	Location *models.TouristLocation
	Zones    []*models.Geofence
	Alert    *models.EmergencyAlert
}

// LocationEvent - полезная нагрузка события location-update
type LocationEvent struct {
	TouristID   uuid.UUID          `json:"tourist_id"`
	TouristName string             `json:"tourist_name,omitempty"`
	Latitude    float64            `json:"latitude"`
	Longitude   float64            `json:"longitude"`
	Accuracy    float64            `json:"accuracy_meters,omitempty"`
	RecordedAt  time.Time          `json:"recorded_at"`
	Zones       []*models.Geofence `json:"zones"`
}

// TouristService определяет контракт работы туриста со своим профилем и треком
type TouristService interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	UpdateProfile(ctx context.Context, profile *models.Profile) (*models.Profile, error)
	UpdateLocation(ctx context.Context, location *models.TouristLocation) (*LocationUpdateResult, error)
	LocationHistory(ctx context.Context, touristID uuid.UUID, limit int) ([]*models.TouristLocation, error)
}

type touristService struct {
	profiles    ProfileRepository
	locations   LocationRepository
	geofences   GeofenceService
	alerts      AlertService
	broadcaster realtime.Broadcaster
	logger      *logrus.Logger
}

func NewTouristService(
	profiles ProfileRepository,
	locations LocationRepository,
	geofences GeofenceService,
	alerts AlertService,
	broadcaster realtime.Broadcaster,
	logger *logrus.Logger,
) TouristService {
	return &touristService{
		profiles:    profiles,
		locations:   locations,
		geofences:   geofences,
		alerts:      alerts,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

// GetProfile получает профиль: сначала кэш, затем база
func (s *touristService) GetProfile(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":    "tourist",
		"method":     "GetProfile",
		"tourist_id": id,
	})

	cached, err := s.profiles.GetProfileFromCache(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Failed to read profile cache")
	}
	if cached != nil {
		return cached, nil
	}

	profile, err := s.profiles.GetByID(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Failed to get profile in repository")
		return nil, fmt.Errorf("service: could not get profile: %w", err)
	}

	if err := s.profiles.SetProfileCache(ctx, profile); err != nil {
		log.WithError(err).Warn("Failed to cache profile")
	}
	return profile, nil
}

// UpdateProfile обновляет редактируемые поля профиля
func (s *touristService) UpdateProfile(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":    "tourist",
		"method":     "UpdateProfile",
		"tourist_id": profile.ID,
	})
	log.Info("Updating tourist profile")

	existing, err := s.profiles.GetByID(ctx, profile.ID)
	if err != nil {
		log.WithError(err).Warn("Attempted to update a non-existent profile")
		return nil, fmt.Errorf("service: profile %s not found for update: %w", profile.ID, err)
	}

	existing.FullName = profile.FullName
	existing.Phone = profile.Phone
	existing.Nationality = profile.Nationality
	existing.PassportNumber = profile.PassportNumber
	existing.EmergencyContactName = profile.EmergencyContactName
	existing.EmergencyContactPhone = profile.EmergencyContactPhone

	if err := s.profiles.Update(ctx, existing); err != nil {
		log.WithError(err).Error("Failed to update profile in repository")
		return nil, fmt.Errorf("service: could not update profile: %w", err)
	}
	if err := s.profiles.InvalidateProfileCache(ctx, existing.ID); err != nil {
		log.WithError(err).Warn("Failed to invalidate profile cache")
	}

	log.Info("Tourist profile updated")
	return existing, nil
}

// UpdateLocation сохраняет точку, проверяет зоны и оповещает диспетчеров
func (s *touristService) UpdateLocation(ctx context.Context, location *models.TouristLocation) (*LocationUpdateResult, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":    "tourist",
		"method":     "UpdateLocation",
		"tourist_id": location.TouristID,
	})

	if err := s.locations.Save(ctx, location); err != nil {
		log.WithError(err).Error("Failed to save location")
		return nil, fmt.Errorf("service: could not save location: %w", err)
	}
	if err := s.locations.IndexPosition(ctx, location); err != nil {
		log.WithError(err).Warn("Failed to index live position")
	}

	result := &LocationUpdateResult{Location: location, Zones: []*models.Geofence{}}

	zones, err := s.geofences.Evaluate(ctx, location.Latitude, location.Longitude)
	if err != nil {
		// точка уже сохранена, зоны проверим на следующем обновлении
		log.WithError(err).Error("Failed to evaluate geofences")
	} else {
		result.Zones = zones
	}

	event := LocationEvent{
		TouristID:  location.TouristID,
		Latitude:   location.Latitude,
		Longitude:  location.Longitude,
		Accuracy:   location.AccuracyMeters,
		RecordedAt: location.RecordedAt,
		Zones:      result.Zones,
	}
	if profile, err := s.GetProfile(ctx, location.TouristID); err == nil {
		event.TouristName = profile.FullName
	}
	s.broadcaster.BroadcastToAdmins(realtime.EventLocationUpdate, event)

	for _, zone := range result.Zones {
		if zone.ZoneType != models.ZoneRestricted {
			continue
		}
		alert, err := s.alerts.RaiseGeofenceAlert(ctx, location.TouristID, zone, location.Latitude, location.Longitude)
		if err != nil {
			log.WithError(err).WithField("geofence_id", zone.ID).Error("Failed to raise geofence alert")
			break
		}
		if alert != nil {
			log.WithField("geofence_id", zone.ID).WithField("alert_id", alert.ID).Warn("Tourist entered restricted zone")
			result.Alert = alert
		}
		break
	}

	log.WithField("zones", len(result.Zones)).Debug("Location updated")
	return result, nil
}

// LocationHistory возвращает последние точки трека
func (s *touristService) LocationHistory(ctx context.Context, touristID uuid.UUID, limit int) ([]*models.TouristLocation, error) {
	if limit < 1 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	history, err := s.locations.History(ctx, touristID, limit)
	if err != nil {
		return nil, fmt.Errorf("service: could not get location history: %w", err)
	}
	return history, nil
}
