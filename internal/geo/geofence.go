// Package geo содержит геометрию зон: проверку попадания точки и валидацию контуров.
package geo

import (
	"errors"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/planar"
	"github.com/shenikar/tourist_safety_system/internal/models"
)

const minPolygonPoints = 4

// ValidCoordinates проверяет диапазоны широты и долготы
func ValidCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// DistanceMeters - расстояние по большому кругу между двумя точками
func DistanceMeters(lat1, lon1, lat2, lon2 float64) float64 {
	return geo.DistanceHaversine(orb.Point{lon1, lat1}, orb.Point{lon2, lat2})
}

// Normalize валидирует зону и замыкает кольцо полигона, если оно не замкнуто
func Normalize(g *models.Geofence) error {
	switch g.ZoneType {
	case models.ZoneSafe, models.ZoneCaution, models.ZoneRestricted:
	default:
		return fmt.Errorf("unknown zone type %q", g.ZoneType)
	}

	switch g.Shape {
	case models.ShapeCircle:
		if !ValidCoordinates(g.CenterLat, g.CenterLon) {
			return errors.New("circle center is out of range")
		}
		if g.RadiusMeters <= 0 {
			return errors.New("circle radius must be positive")
		}
		g.Polygon = nil
	case models.ShapePolygon:
		ring := toRing(g.Polygon)
		if len(ring) > 0 && !ring.Closed() {
			ring = append(ring, ring[0])
		}
		if len(ring) < minPolygonPoints {
			return fmt.Errorf("polygon needs at least %d points", minPolygonPoints)
		}
		for _, p := range ring {
			if !ValidCoordinates(p.Lat(), p.Lon()) {
				return fmt.Errorf("polygon point %v is out of range", p)
			}
		}
		g.Polygon = fromRing(ring)
		// центр используется для отрисовки и поиска ближайших
		center := ring.Bound().Center()
		g.CenterLon, g.CenterLat = center.Lon(), center.Lat()
		g.RadiusMeters = 0
	default:
		return fmt.Errorf("unknown shape %q", g.Shape)
	}
	return nil
}

// Contains проверяет попадание точки в зону
func Contains(g *models.Geofence, lat, lon float64) bool {
	point := orb.Point{lon, lat}
	switch g.Shape {
	case models.ShapeCircle:
		return geo.DistanceHaversine(orb.Point{g.CenterLon, g.CenterLat}, point) <= float64(g.RadiusMeters)
	case models.ShapePolygon:
		ring := toRing(g.Polygon)
		if len(ring) < minPolygonPoints {
			return false
		}
		return planar.PolygonContains(orb.Polygon{ring}, point)
	}
	return false
}

// Match возвращает зоны, содержащие точку, в исходном порядке
func Match(zones []*models.Geofence, lat, lon float64) []*models.Geofence {
	matched := make([]*models.Geofence, 0)
	for _, z := range zones {
		if z.IsActive && Contains(z, lat, lon) {
			matched = append(matched, z)
		}
	}
	return matched
}

func toRing(points [][2]float64) orb.Ring {
	ring := make(orb.Ring, len(points))
	for i, p := range points {
		ring[i] = orb.Point{p[0], p[1]}
	}
	return ring
}

func fromRing(ring orb.Ring) [][2]float64 {
	points := make([][2]float64, len(ring))
	for i, p := range ring {
		points[i] = [2]float64{p[0], p[1]}
	}
	return points
}
