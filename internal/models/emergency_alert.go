package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	AlertTypeSOS        = "sos"
	AlertTypeMedical    = "medical"
	AlertTypeTheft      = "theft"
	AlertTypeLost       = "lost"
	AlertTypeHarassment = "harassment"
	AlertTypeGeofence   = "geofence"
	AlertTypeOther      = "other"
)

const (
	PriorityLow      = "low"
	PriorityMedium   = "medium"
	PriorityHigh     = "high"
	PriorityCritical = "critical"
)

const (
	AlertStatusActive       = "active"
	AlertStatusAcknowledged = "acknowledged"
	AlertStatusInProgress   = "in_progress"
	AlertStatusResolved     = "resolved"
	AlertStatusCancelled    = "cancelled"
	AlertStatusFalseAlarm   = "false_alarm"
)

// EmergencyAlert - SOS-событие туриста (таблица emergency_alerts)
type EmergencyAlert struct {
	ID              uuid.UUID  `json:"id"`
	TouristID       uuid.UUID  `json:"tourist_id"`
	TouristName     string     `json:"tourist_name,omitempty"`
	AlertType       string     `json:"alert_type"`
	Priority        string     `json:"priority"`
	Status          string     `json:"status"`
	Message         string     `json:"message"`
	Latitude        float64    `json:"latitude"`
	Longitude       float64    `json:"longitude"`
	GeofenceID      *uuid.UUID `json:"geofence_id,omitempty"`
	AssignedTo      *uuid.UUID `json:"assigned_to,omitempty"`
	ResolutionNotes string     `json:"resolution_notes,omitempty"`
	ResolvedAt      *time.Time `json:"resolved_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// alertTransitions - допустимые переходы статусов, проставляемые диспетчером
var alertTransitions = map[string][]string{
	AlertStatusActive:       {AlertStatusAcknowledged, AlertStatusInProgress, AlertStatusResolved, AlertStatusFalseAlarm},
	AlertStatusAcknowledged: {AlertStatusInProgress, AlertStatusResolved, AlertStatusFalseAlarm},
	AlertStatusInProgress:   {AlertStatusResolved, AlertStatusFalseAlarm},
}

// IsTerminalAlertStatus сообщает, закрыт ли алерт окончательно
func IsTerminalAlertStatus(status string) bool {
	switch status {
	case AlertStatusResolved, AlertStatusCancelled, AlertStatusFalseAlarm:
		return true
	}
	return false
}

// IsOpenAlertStatus - алерт еще требует внимания диспетчера
func IsOpenAlertStatus(status string) bool {
	switch status {
	case AlertStatusActive, AlertStatusAcknowledged, AlertStatusInProgress:
		return true
	}
	return false
}

// CanTransition проверяет переход статуса диспетчером
func CanTransition(from, to string) bool {
	for _, next := range alertTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CanCancel - турист может отменить только еще не взятый в работу алерт
func CanCancel(status string) bool {
	return status == AlertStatusActive || status == AlertStatusAcknowledged
}

// AlertFilter - параметры выборки алертов для панели администратора
type AlertFilter struct {
	Status    string
	Priority  string
	TouristID *uuid.UUID
	Page      int
	PageSize  int
}
