package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/tourist_safety_system/internal/models"
)

const (
	webhookQueueKey = "alert_webhook_events"

	EventAlertCreated = "alert.created"
	EventAlertUpdated = "alert.updated"
)

// TouristContact - данные туриста, нужные внешней службе реагирования
type TouristContact struct {
	FullName              string `json:"full_name"`
	Phone                 string `json:"phone,omitempty"`
	Nationality           string `json:"nationality,omitempty"`
	EmergencyContactName  string `json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone string `json:"emergency_contact_phone,omitempty"`
}

// WebhookEvent - структура для данных вебхука
type WebhookEvent struct {
	Event     string                 `json:"event"`
	Alert     *models.EmergencyAlert `json:"alert"`
	Tourist   *TouristContact        `json:"tourist,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

// NewWebhookEvent собирает событие по алерту и профилю (профиль может быть nil)
func NewWebhookEvent(event string, alert *models.EmergencyAlert, profile *models.Profile) WebhookEvent {
	ev := WebhookEvent{
		Event:     event,
		Alert:     alert,
		Timestamp: time.Now().UTC(),
	}
	if profile != nil {
		ev.Tourist = &TouristContact{
			FullName:              profile.FullName,
			Phone:                 profile.Phone,
			Nationality:           profile.Nationality,
			EmergencyContactName:  profile.EmergencyContactName,
			EmergencyContactPhone: profile.EmergencyContactPhone,
		}
	}
	return ev
}

// WebhookPublisher - интерфейс для публикации вебхуков
type WebhookPublisher interface {
	Publish(ctx context.Context, event WebhookEvent) error
}

// RedisWebhookPublisher - реализация WebhookPublisher, использующая Redis
type RedisWebhookPublisher struct {
	redisClient *redis.Client
}

// NewRedisWebhookPublisher создает новый RedisWebhookPublisher
func NewRedisWebhookPublisher(client *redis.Client) *RedisWebhookPublisher {
	return &RedisWebhookPublisher{
		redisClient: client,
	}
}

// Publish публикует событие вебхука в очередь Redis
func (p *RedisWebhookPublisher) Publish(ctx context.Context, event WebhookEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook event: %w", err)
	}

	// LPUSH в голову списка, воркер забирает с хвоста через BRPOP
	if err := p.redisClient.LPush(ctx, webhookQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish webhook event to Redis: %w", err)
	}
	return nil
}
