package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/tourist_safety_system/internal/models"
	"github.com/shenikar/tourist_safety_system/internal/realtime"
	"github.com/shenikar/tourist_safety_system/internal/webhook"
	"github.com/sirupsen/logrus"
)

const recentAlertsLimit = 50

// Principal - аутентифицированный пользователь запроса
type Principal struct {
	ID   uuid.UUID
	Role string
}

func (p Principal) IsAdmin() bool {
	return models.IsAdminRole(p.Role)
}

// AlertService определяет контракт жизненного цикла экстренных алертов
type AlertService interface {
	CreateAlert(ctx context.Context, alert *models.EmergencyAlert) error
	RaiseGeofenceAlert(ctx context.Context, touristID uuid.UUID, zone *models.Geofence, lat, lon float64) (*models.EmergencyAlert, error)
	GetAlert(ctx context.Context, id uuid.UUID, principal Principal) (*models.EmergencyAlert, error)
	ListTouristAlerts(ctx context.Context, touristID uuid.UUID) ([]*models.EmergencyAlert, error)
	CancelAlert(ctx context.Context, id, touristID uuid.UUID) (*models.EmergencyAlert, error)
	UpdateAlertStatus(ctx context.Context, id, adminID uuid.UUID, status, notes string) (*models.EmergencyAlert, error)
	ListAlerts(ctx context.Context, filter models.AlertFilter) ([]*models.EmergencyAlert, error)
}

type alertService struct {
	repo        AlertRepository
	profiles    ProfileRepository
	broadcaster realtime.Broadcaster
	publisher   webhook.WebhookPublisher
	logger      *logrus.Logger
	now         func() time.Time
}

func NewAlertService(repo AlertRepository, profiles ProfileRepository, broadcaster realtime.Broadcaster, publisher webhook.WebhookPublisher, logger *logrus.Logger) AlertService {
	return &alertService{
		repo:        repo,
		profiles:    profiles,
		broadcaster: broadcaster,
		publisher:   publisher,
		logger:      logger,
		now:         time.Now,
	}
}

// CreateAlert сохраняет SOS и оповещает диспетчеров
func (s *alertService) CreateAlert(ctx context.Context, alert *models.EmergencyAlert) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":    "alert",
		"method":     "CreateAlert",
		"tourist_id": alert.TouristID,
	})

	if alert.AlertType == "" {
		alert.AlertType = models.AlertTypeSOS
	}
	if alert.Priority == "" {
		alert.Priority = models.PriorityHigh
		if alert.AlertType == models.AlertTypeSOS {
			alert.Priority = models.PriorityCritical
		}
	}
	alert.Status = models.AlertStatusActive
	log = log.WithField("alert_type", alert.AlertType).WithField("priority", alert.Priority)
	log.Info("Creating emergency alert")

	if err := s.repo.Create(ctx, alert); err != nil {
		if errors.Is(err, ErrAlertAlreadyOpen) {
			log.Info("Open alert of this type already exists")
			return fmt.Errorf("service: could not create alert: %w", err)
		}
		log.WithError(err).Error("Failed to create alert in repository")
		return fmt.Errorf("service: could not create alert: %w", err)
	}

	profile := s.lookupProfile(ctx, alert.TouristID, log)
	if profile != nil {
		alert.TouristName = profile.FullName
	}

	s.broadcaster.BroadcastToAdmins(realtime.EventNewAlert, alert)
	s.publish(ctx, webhook.EventAlertCreated, alert, profile, log)

	log.WithField("alert_id", alert.ID).Info("Emergency alert created")
	return nil
}

// RaiseGeofenceAlert создает алерт о входе в запретную зону, если открытого еще нет.
// Возвращает nil без ошибки, когда алерт уже существует.
func (s *alertService) RaiseGeofenceAlert(ctx context.Context, touristID uuid.UUID, zone *models.Geofence, lat, lon float64) (*models.EmergencyAlert, error) {
	open, err := s.repo.HasOpenAlert(ctx, touristID, models.AlertTypeGeofence)
	if err != nil {
		return nil, fmt.Errorf("service: could not check open geofence alerts: %w", err)
	}
	if open {
		return nil, nil
	}

	zoneID := zone.ID
	alert := &models.EmergencyAlert{
		TouristID:  touristID,
		AlertType:  models.AlertTypeGeofence,
		Priority:   models.PriorityHigh,
		Message:    fmt.Sprintf("Tourist entered restricted zone %q", zone.Name),
		Latitude:   lat,
		Longitude:  lon,
		GeofenceID: &zoneID,
	}
	if err := s.CreateAlert(ctx, alert); err != nil {
		// Параллельное обновление позиции успело создать алерт первым
		if errors.Is(err, ErrAlertAlreadyOpen) {
			return nil, nil
		}
		return nil, err
	}
	return alert, nil
}

// GetAlert возвращает алерт владельцу или администратору
func (s *alertService) GetAlert(ctx context.Context, id uuid.UUID, principal Principal) (*models.EmergencyAlert, error) {
	alert, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: could not get alert: %w", err)
	}
	if !principal.IsAdmin() && alert.TouristID != principal.ID {
		s.logger.WithFields(logrus.Fields{
			"service":  "alert",
			"method":   "GetAlert",
			"alert_id": id,
			"user_id":  principal.ID,
		}).Warn("Access to foreign alert denied")
		return nil, ErrForbidden
	}
	return alert, nil
}

// ListTouristAlerts возвращает последние алерты туриста
func (s *alertService) ListTouristAlerts(ctx context.Context, touristID uuid.UUID) ([]*models.EmergencyAlert, error) {
	alerts, err := s.repo.ListByTourist(ctx, touristID, recentAlertsLimit)
	if err != nil {
		return nil, fmt.Errorf("service: could not list tourist alerts: %w", err)
	}
	return alerts, nil
}

// CancelAlert - отмена алерта самим туристом
func (s *alertService) CancelAlert(ctx context.Context, id, touristID uuid.UUID) (*models.EmergencyAlert, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":    "alert",
		"method":     "CancelAlert",
		"alert_id":   id,
		"tourist_id": touristID,
	})

	alert, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: could not get alert for cancel: %w", err)
	}
	if alert.TouristID != touristID {
		log.Warn("Attempt to cancel foreign alert")
		return nil, ErrForbidden
	}
	if !models.CanCancel(alert.Status) {
		log.WithField("status", alert.Status).Warn("Alert can not be cancelled")
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, alert.Status, models.AlertStatusCancelled)
	}

	alert.Status = models.AlertStatusCancelled
	if err := s.repo.UpdateStatus(ctx, alert); err != nil {
		log.WithError(err).Error("Failed to cancel alert in repository")
		return nil, fmt.Errorf("service: could not cancel alert: %w", err)
	}

	s.notifyUpdated(ctx, alert, log)
	log.Info("Alert cancelled by tourist")
	return alert, nil
}

// UpdateAlertStatus - смена статуса диспетчером
func (s *alertService) UpdateAlertStatus(ctx context.Context, id, adminID uuid.UUID, status, notes string) (*models.EmergencyAlert, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "alert",
		"method":   "UpdateAlertStatus",
		"alert_id": id,
		"admin_id": adminID,
		"status":   status,
	})

	alert, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: could not get alert for update: %w", err)
	}
	if !models.CanTransition(alert.Status, status) {
		log.WithField("current_status", alert.Status).Warn("Rejected alert status transition")
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, alert.Status, status)
	}

	assignee := adminID
	alert.Status = status
	alert.AssignedTo = &assignee
	if notes = strings.TrimSpace(notes); notes != "" {
		alert.ResolutionNotes = notes
	}
	if status == models.AlertStatusResolved {
		resolvedAt := s.now().UTC()
		alert.ResolvedAt = &resolvedAt
	}

	if err := s.repo.UpdateStatus(ctx, alert); err != nil {
		log.WithError(err).Error("Failed to update alert status in repository")
		return nil, fmt.Errorf("service: could not update alert status: %w", err)
	}

	s.notifyUpdated(ctx, alert, log)
	log.Info("Alert status updated")
	return alert, nil
}

// ListAlerts возвращает алерты по фильтру с пагинацией
func (s *alertService) ListAlerts(ctx context.Context, filter models.AlertFilter) ([]*models.EmergencyAlert, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 || filter.PageSize > 100 {
		filter.PageSize = 20
	}

	alerts, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"service": "alert",
			"method":  "ListAlerts",
		}).WithError(err).Error("Failed to list alerts from repository")
		return nil, fmt.Errorf("service: could not list alerts: %w", err)
	}
	return alerts, nil
}

func (s *alertService) notifyUpdated(ctx context.Context, alert *models.EmergencyAlert, log *logrus.Entry) {
	s.broadcaster.BroadcastToAdmins(realtime.EventAlertUpdated, alert)
	s.broadcaster.SendToTourist(alert.TouristID, realtime.EventAlertUpdated, alert)
	s.publish(ctx, webhook.EventAlertUpdated, alert, s.lookupProfile(ctx, alert.TouristID, log), log)
}

// publish ставит вебхук в очередь; ошибка очереди не отменяет сам алерт
func (s *alertService) publish(ctx context.Context, event string, alert *models.EmergencyAlert, profile *models.Profile, log *logrus.Entry) {
	if err := s.publisher.Publish(ctx, webhook.NewWebhookEvent(event, alert, profile)); err != nil {
		log.WithError(err).Error("Failed to publish alert webhook")
	}
}

func (s *alertService) lookupProfile(ctx context.Context, touristID uuid.UUID, log *logrus.Entry) *models.Profile {
	profile, err := s.profiles.GetByID(ctx, touristID)
	if err != nil {
		log.WithError(err).Warn("Failed to load tourist profile for alert")
		return nil
	}
	return profile
}
