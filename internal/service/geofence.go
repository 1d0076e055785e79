package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shenikar/tourist_safety_system/internal/geo"
	"github.com/shenikar/tourist_safety_system/internal/models"
	"github.com/sirupsen/logrus"
)

// GeofenceService определяет контракт управления зонами
type GeofenceService interface {
	CreateGeofence(ctx context.Context, geofence *models.Geofence) error
	GetGeofence(ctx context.Context, id uuid.UUID) (*models.Geofence, error)
	UpdateGeofence(ctx context.Context, geofence *models.Geofence) error
	DeactivateGeofence(ctx context.Context, id uuid.UUID) error
	ListGeofences(ctx context.Context, activeOnly bool) ([]*models.Geofence, error)
	Evaluate(ctx context.Context, lat, lon float64) ([]*models.Geofence, error)
}

type geofenceService struct {
	repo   GeofenceRepository
	logger *logrus.Logger
}

func NewGeofenceService(repo GeofenceRepository, logger *logrus.Logger) GeofenceService {
	return &geofenceService{
		repo:   repo,
		logger: logger,
	}
}

// CreateGeofence валидирует и сохраняет зону
func (s *geofenceService) CreateGeofence(ctx context.Context, geofence *models.Geofence) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "geofence",
		"method":  "CreateGeofence",
		"name":    geofence.Name,
	})

	if err := geo.Normalize(geofence); err != nil {
		log.WithError(err).Warn("Invalid geofence")
		return fmt.Errorf("%w: %v", ErrInvalidGeofence, err)
	}
	geofence.IsActive = true

	if err := s.repo.Create(ctx, geofence); err != nil {
		log.WithError(err).Error("Failed to create geofence in repository")
		return fmt.Errorf("service: could not create geofence: %w", err)
	}

	log.WithField("geofence_id", geofence.ID).Info("Geofence created")
	return nil
}

func (s *geofenceService) GetGeofence(ctx context.Context, id uuid.UUID) (*models.Geofence, error) {
	geofence, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: could not get geofence: %w", err)
	}
	return geofence, nil
}

// UpdateGeofence заменяет контур и атрибуты существующей зоны
func (s *geofenceService) UpdateGeofence(ctx context.Context, geofence *models.Geofence) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "geofence",
		"method":      "UpdateGeofence",
		"geofence_id": geofence.ID,
	})

	existing, err := s.repo.GetByID(ctx, geofence.ID)
	if err != nil {
		log.WithError(err).Warn("Attempted to update a non-existent geofence")
		return fmt.Errorf("service: geofence %s not found for update: %w", geofence.ID, err)
	}
	if err := geo.Normalize(geofence); err != nil {
		log.WithError(err).Warn("Invalid geofence")
		return fmt.Errorf("%w: %v", ErrInvalidGeofence, err)
	}
	geofence.CreatedBy = existing.CreatedBy
	geofence.CreatedAt = existing.CreatedAt

	if err := s.repo.Update(ctx, geofence); err != nil {
		log.WithError(err).Error("Failed to update geofence in repository")
		return fmt.Errorf("service: could not update geofence: %w", err)
	}
	log.Info("Geofence updated")
	return nil
}

// DeactivateGeofence выключает зону, история алертов сохраняет ссылку на нее
func (s *geofenceService) DeactivateGeofence(ctx context.Context, id uuid.UUID) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "geofence",
		"method":      "DeactivateGeofence",
		"geofence_id": id,
	})

	if err := s.repo.Deactivate(ctx, id); err != nil {
		log.WithError(err).Warn("Failed to deactivate geofence")
		return fmt.Errorf("service: could not deactivate geofence: %w", err)
	}
	log.Info("Geofence deactivated")
	return nil
}

func (s *geofenceService) ListGeofences(ctx context.Context, activeOnly bool) ([]*models.Geofence, error) {
	zones, err := s.repo.List(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("service: could not list geofences: %w", err)
	}
	return zones, nil
}

// Evaluate возвращает активные зоны, содержащие точку
func (s *geofenceService) Evaluate(ctx context.Context, lat, lon float64) ([]*models.Geofence, error) {
	zones, err := s.repo.List(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("service: could not load geofences: %w", err)
	}
	return geo.Match(zones, lat, lon), nil
}
