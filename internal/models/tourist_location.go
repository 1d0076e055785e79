package models

import (
	"time"

	"github.com/google/uuid"
)

// TouristLocation - точка трека туриста (таблица tourist_locations)
type TouristLocation struct {
	ID             int64     `json:"id"`
	TouristID      uuid.UUID `json:"tourist_id"`
	TouristName    string    `json:"tourist_name,omitempty"`
	Latitude       float64   `json:"latitude"`
	Longitude      float64   `json:"longitude"`
	AccuracyMeters float64   `json:"accuracy_meters,omitempty"`
	RecordedAt     time.Time `json:"recorded_at"`
}

// NearbyTourist - результат поиска туристов в радиусе
type NearbyTourist struct {
	TouristID      uuid.UUID `json:"tourist_id"`
	Latitude       float64   `json:"latitude"`
	Longitude      float64   `json:"longitude"`
	DistanceMeters float64   `json:"distance_meters"`
}
