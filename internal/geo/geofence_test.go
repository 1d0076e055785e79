package geo

import (
	"testing"

	"github.com/shenikar/tourist_safety_system/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square() [][2]float64 {
	return [][2]float64{{10, 10}, {10, 11}, {11, 11}, {11, 10}}
}

func TestNormalize_ClosesPolygon(t *testing.T) {
	g := &models.Geofence{ZoneType: models.ZoneRestricted, Shape: models.ShapePolygon, Polygon: square(), RadiusMeters: 50}

	require.NoError(t, Normalize(g))
	assert.Len(t, g.Polygon, 5)
	assert.Equal(t, g.Polygon[0], g.Polygon[4])
	assert.InDelta(t, 10.5, g.CenterLat, 1e-9)
	assert.InDelta(t, 10.5, g.CenterLon, 1e-9)
	assert.Zero(t, g.RadiusMeters)
}

func TestNormalize_Errors(t *testing.T) {
	cases := map[string]*models.Geofence{
		"zone type":     {ZoneType: "lava", Shape: models.ShapeCircle, RadiusMeters: 10},
		"shape":         {ZoneType: models.ZoneSafe, Shape: "hexagon"},
		"radius":        {ZoneType: models.ZoneSafe, Shape: models.ShapeCircle, CenterLat: 1, CenterLon: 1},
		"center":        {ZoneType: models.ZoneSafe, Shape: models.ShapeCircle, CenterLat: 91, RadiusMeters: 10},
		"few points":    {ZoneType: models.ZoneSafe, Shape: models.ShapePolygon, Polygon: [][2]float64{{0, 0}, {1, 1}}},
		"out of range":  {ZoneType: models.ZoneSafe, Shape: models.ShapePolygon, Polygon: [][2]float64{{0, 0}, {0, 1}, {200, 1}, {0, 0}}},
		"empty polygon": {ZoneType: models.ZoneSafe, Shape: models.ShapePolygon},
	}
	for name, g := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, Normalize(g))
		})
	}
}

func TestContains_Circle(t *testing.T) {
	g := &models.Geofence{Shape: models.ShapeCircle, CenterLat: 48.8584, CenterLon: 2.2945, RadiusMeters: 500}

	assert.True(t, Contains(g, 48.8584, 2.2945))
	assert.True(t, Contains(g, 48.8610, 2.2945))  // ~290 м севернее
	assert.False(t, Contains(g, 48.8700, 2.2945)) // ~1.3 км
}

func TestContains_Polygon(t *testing.T) {
	g := &models.Geofence{ZoneType: models.ZoneCaution, Shape: models.ShapePolygon, Polygon: square()}
	require.NoError(t, Normalize(g))

	assert.True(t, Contains(g, 10.5, 10.5))
	assert.False(t, Contains(g, 12, 10.5))
	assert.False(t, Contains(&models.Geofence{Shape: models.ShapePolygon}, 10.5, 10.5))
}

func TestMatch_SkipsInactive(t *testing.T) {
	active := &models.Geofence{Name: "a", Shape: models.ShapeCircle, CenterLat: 0, CenterLon: 0, RadiusMeters: 1000, IsActive: true}
	inactive := &models.Geofence{Name: "b", Shape: models.ShapeCircle, CenterLat: 0, CenterLon: 0, RadiusMeters: 1000}
	far := &models.Geofence{Name: "c", Shape: models.ShapeCircle, CenterLat: 5, CenterLon: 5, RadiusMeters: 1000, IsActive: true}

	matched := Match([]*models.Geofence{active, inactive, far}, 0, 0)
	require.Len(t, matched, 1)
	assert.Equal(t, "a", matched[0].Name)
	assert.NotNil(t, Match(nil, 0, 0))
}

func TestDistanceMeters(t *testing.T) {
	// 1 градус широты ~ 111.2 км
	assert.InDelta(t, 111195, DistanceMeters(0, 0, 1, 0), 200)
	assert.Zero(t, DistanceMeters(10, 10, 10, 10))
}
