package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	ZoneSafe       = "safe"
	ZoneCaution    = "caution"
	ZoneRestricted = "restricted"
)

const (
	ShapeCircle  = "circle"
	ShapePolygon = "polygon"
)

// Geofence - зона на карте (таблица geofences).
// Для circle используются CenterLat/CenterLon/RadiusMeters, для polygon - Polygon
// в виде кольца точек [lon, lat].
type Geofence struct {
	ID           uuid.UUID    `json:"id"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	ZoneType     string       `json:"zone_type"`
	Shape        string       `json:"shape"`
	CenterLat    float64      `json:"center_lat,omitempty"`
	CenterLon    float64      `json:"center_lon,omitempty"`
	RadiusMeters int          `json:"radius_meters,omitempty"`
	Polygon      [][2]float64 `json:"polygon,omitempty"`
	IsActive     bool         `json:"is_active"`
	CreatedBy    *uuid.UUID   `json:"created_by,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}
