package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shenikar/tourist_safety_system/internal/config"
	"github.com/shenikar/tourist_safety_system/internal/models"
	"github.com/sirupsen/logrus"
)

const (
	detailAlertsLimit = 10
	maxNearbyRadius   = 50000
)

// TouristDetail - карточка туриста для диспетчера
type TouristDetail struct {
	Profile      *models.Profile          `json:"profile"`
	LastLocation *models.TouristLocation  `json:"last_location,omitempty"`
	RecentAlerts []*models.EmergencyAlert `json:"recent_alerts"`
}

// AdminService определяет контракт панели администратора
type AdminService interface {
	Dashboard(ctx context.Context) (*models.DashboardStats, error)
	ListTourists(ctx context.Context, page, pageSize int, search string) ([]*models.Profile, error)
	TouristDetail(ctx context.Context, id uuid.UUID) (*TouristDetail, error)
	LatestLocations(ctx context.Context, withinMinutes int) ([]*models.TouristLocation, error)
	NearbyTourists(ctx context.Context, lat, lon, radiusMeters float64) ([]*models.NearbyTourist, error)
}

type adminService struct {
	profiles  ProfileRepository
	alerts    AlertRepository
	locations LocationRepository
	logger    *logrus.Logger
	cfg       *config.Config
}

func NewAdminService(profiles ProfileRepository, alerts AlertRepository, locations LocationRepository, logger *logrus.Logger, cfg *config.Config) AdminService {
	return &adminService{
		profiles:  profiles,
		alerts:    alerts,
		locations: locations,
		logger:    logger,
		cfg:       cfg,
	}
}

// Dashboard собирает сводку по туристам и алертам
func (s *adminService) Dashboard(ctx context.Context) (*models.DashboardStats, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "admin",
		"method":  "Dashboard",
	})

	total, err := s.profiles.Count(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to count tourists")
		return nil, fmt.Errorf("service: could not count tourists: %w", err)
	}
	active, err := s.locations.CountActiveTourists(ctx, s.cfg.StatsTimeWindowMinutes)
	if err != nil {
		log.WithError(err).Error("Failed to count active tourists")
		return nil, fmt.Errorf("service: could not count active tourists: %w", err)
	}
	counts, err := s.alerts.Counts(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to count alerts")
		return nil, fmt.Errorf("service: could not count alerts: %w", err)
	}

	stats := &models.DashboardStats{
		TotalTourists:    total,
		ActiveTourists:   active,
		CriticalAlerts:   counts.OpenCritical,
		ResolvedToday:    counts.ResolvedToday,
		AlertsByStatus:   counts.ByStatus,
		AlertsByPriority: counts.ByPriority,
	}
	for status, n := range counts.ByStatus {
		if models.IsOpenAlertStatus(status) {
			stats.OpenAlerts += n
		}
	}
	return stats, nil
}

// ListTourists возвращает страницу профилей с поиском по имени, email или телефону
func (s *adminService) ListTourists(ctx context.Context, page, pageSize int, search string) ([]*models.Profile, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	profiles, err := s.profiles.List(ctx, page, pageSize, strings.TrimSpace(search))
	if err != nil {
		return nil, fmt.Errorf("service: could not list tourists: %w", err)
	}
	return profiles, nil
}

// TouristDetail собирает профиль, последнюю точку и последние алерты
func (s *adminService) TouristDetail(ctx context.Context, id uuid.UUID) (*TouristDetail, error) {
	profile, err := s.profiles.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: could not get tourist: %w", err)
	}

	detail := &TouristDetail{Profile: profile}

	last, err := s.locations.Latest(ctx, id)
	switch {
	case err == nil:
		detail.LastLocation = last
	case !errors.Is(err, ErrNotFound):
		return nil, fmt.Errorf("service: could not get last location: %w", err)
	}

	alerts, err := s.alerts.ListByTourist(ctx, id, detailAlertsLimit)
	if err != nil {
		return nil, fmt.Errorf("service: could not get tourist alerts: %w", err)
	}
	detail.RecentAlerts = alerts
	return detail, nil
}

// LatestLocations - последняя точка каждого туриста, включая давно молчащих.
// withinMinutes > 0 ограничивает выборку недавно активными.
func (s *adminService) LatestLocations(ctx context.Context, withinMinutes int) ([]*models.TouristLocation, error) {
	if withinMinutes < 0 {
		withinMinutes = 0
	}
	locations, err := s.locations.LatestAll(ctx, withinMinutes)
	if err != nil {
		return nil, fmt.Errorf("service: could not get latest locations: %w", err)
	}
	return locations, nil
}

// NearbyTourists ищет туристов вокруг точки по живому индексу позиций
func (s *adminService) NearbyTourists(ctx context.Context, lat, lon, radiusMeters float64) ([]*models.NearbyTourist, error) {
	if radiusMeters <= 0 || radiusMeters > maxNearbyRadius {
		radiusMeters = maxNearbyRadius
	}
	nearby, err := s.locations.FindNearby(ctx, lat, lon, radiusMeters)
	if err != nil {
		return nil, fmt.Errorf("service: could not find nearby tourists: %w", err)
	}
	return nearby, nil
}
