// Package realtime рассылает события алертов и перемещений подключенным клиентам:
// панели администратора (комната admin-room) и приложениям туристов.
package realtime

import (
	"github.com/google/uuid"
	"github.com/shenikar/tourist_safety_system/internal/auth"
)

const (
	AdminRoom = "admin-room"

	EventNewAlert       = "new-alert"
	EventAlertUpdated   = "alert-updated"
	EventLocationUpdate = "location-update"
)

// Broadcaster - интерфейс доставки событий в комнаты
type Broadcaster interface {
	BroadcastToAdmins(event string, payload any)
	SendToTourist(touristID uuid.UUID, event string, payload any)
}

// TokenParser проверяет JWT клиента при подключении
type TokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

// TouristRoom - персональная комната туриста
func TouristRoom(touristID uuid.UUID) string {
	return "tourist:" + touristID.String()
}

// Fanout рассылает событие во все транспорты
type Fanout []Broadcaster

func (f Fanout) BroadcastToAdmins(event string, payload any) {
	for _, b := range f {
		b.BroadcastToAdmins(event, payload)
	}
}

func (f Fanout) SendToTourist(touristID uuid.UUID, event string, payload any) {
	for _, b := range f {
		b.SendToTourist(touristID, event, payload)
	}
}
