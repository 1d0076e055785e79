package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/tourist_safety_system/internal/models"
	"github.com/shenikar/tourist_safety_system/internal/service"
	"github.com/shenikar/tourist_safety_system/internal/service/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestGeofenceService(t *testing.T) (service.GeofenceService, *mocks.MockGeofenceRepository) {
	ctrl := gomock.NewController(t)
	repoMock := mocks.NewMockGeofenceRepository(ctrl)
	return service.NewGeofenceService(repoMock, newTestLogger()), repoMock
}

func TestCreateGeofence_Polygon(t *testing.T) {
	// Подготовка
	svc, repoMock := newTestGeofenceService(t)
	ctx := context.Background()
	zone := &models.Geofence{
		Name:     "Old town",
		ZoneType: models.ZoneCaution,
		Shape:    models.ShapePolygon,
		Polygon:  [][2]float64{{0, 0}, {0, 1}, {1, 1}, {1, 0}},
	}

	// Ожидания
	repoMock.EXPECT().Create(ctx, zone).Return(nil)

	// Действие
	err := svc.CreateGeofence(ctx, zone)

	// Проверки
	require.NoError(t, err)
	assert.True(t, zone.IsActive)
	assert.Len(t, zone.Polygon, 5)
	assert.InDelta(t, 0.5, zone.CenterLat, 1e-9)
}

func TestCreateGeofence_Invalid(t *testing.T) {
	svc, _ := newTestGeofenceService(t)

	err := svc.CreateGeofence(context.Background(), &models.Geofence{
		Name:      "Bad",
		ZoneType:  models.ZoneRestricted,
		Shape:     models.ShapeCircle,
		CenterLat: 10,
		CenterLon: 10,
	})
	assert.ErrorIs(t, err, service.ErrInvalidGeofence)
}

func TestUpdateGeofence_KeepsCreator(t *testing.T) {
	svc, repoMock := newTestGeofenceService(t)
	ctx := context.Background()
	creator := uuid.New()
	createdAt := time.Now().Add(-time.Hour)
	id := uuid.New()
	update := &models.Geofence{ID: id, Name: "Beach", ZoneType: models.ZoneSafe, Shape: models.ShapeCircle, CenterLat: 1, CenterLon: 1, RadiusMeters: 300}

	repoMock.EXPECT().GetByID(ctx, id).Return(&models.Geofence{ID: id, CreatedBy: &creator, CreatedAt: createdAt}, nil)
	repoMock.EXPECT().Update(ctx, update).Return(nil)

	err := svc.UpdateGeofence(ctx, update)

	require.NoError(t, err)
	assert.Equal(t, &creator, update.CreatedBy)
	assert.Equal(t, createdAt, update.CreatedAt)
}

func TestUpdateGeofence_NotFound(t *testing.T) {
	svc, repoMock := newTestGeofenceService(t)
	ctx := context.Background()
	id := uuid.New()

	repoMock.EXPECT().GetByID(ctx, id).Return(nil, fmt.Errorf("geofence: %w", service.ErrNotFound))

	err := svc.UpdateGeofence(ctx, &models.Geofence{ID: id})
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestDeactivateGeofence(t *testing.T) {
	svc, repoMock := newTestGeofenceService(t)
	ctx := context.Background()
	id := uuid.New()

	repoMock.EXPECT().Deactivate(ctx, id).Return(nil)

	require.NoError(t, svc.DeactivateGeofence(ctx, id))
}

func TestEvaluate_MatchesActiveZones(t *testing.T) {
	svc, repoMock := newTestGeofenceService(t)
	ctx := context.Background()
	inside := &models.Geofence{ID: uuid.New(), ZoneType: models.ZoneRestricted, Shape: models.ShapeCircle, CenterLat: 41.0, CenterLon: 29.0, RadiusMeters: 500, IsActive: true}
	outside := &models.Geofence{ID: uuid.New(), ZoneType: models.ZoneSafe, Shape: models.ShapeCircle, CenterLat: 40.0, CenterLon: 29.0, RadiusMeters: 500, IsActive: true}

	repoMock.EXPECT().List(ctx, true).Return([]*models.Geofence{inside, outside}, nil)

	zones, err := svc.Evaluate(ctx, 41.001, 29.0)

	require.NoError(t, err)
	require.Len(t, zones, 1)
	assert.Equal(t, inside.ID, zones[0].ID)
}
