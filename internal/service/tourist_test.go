package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/tourist_safety_system/internal/models"
	"github.com/shenikar/tourist_safety_system/internal/realtime"
	realtime_mocks "github.com/shenikar/tourist_safety_system/internal/realtime/mocks"
	"github.com/shenikar/tourist_safety_system/internal/service"
	"github.com/shenikar/tourist_safety_system/internal/service/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type touristMocks struct {
	profiles    *mocks.MockProfileRepository
	locations   *mocks.MockLocationRepository
	geofences   *mocks.MockGeofenceService
	alerts      *mocks.MockAlertService
	broadcaster *realtime_mocks.MockBroadcaster
}

func newTestTouristService(t *testing.T) (service.TouristService, touristMocks) {
	ctrl := gomock.NewController(t)
	m := touristMocks{
		profiles:    mocks.NewMockProfileRepository(ctrl),
		locations:   mocks.NewMockLocationRepository(ctrl),
		geofences:   mocks.NewMockGeofenceService(ctrl),
		alerts:      mocks.NewMockAlertService(ctrl),
		broadcaster: realtime_mocks.NewMockBroadcaster(ctrl),
	}
	svc := service.NewTouristService(m.profiles, m.locations, m.geofences, m.alerts, m.broadcaster, newTestLogger())
	return svc, m
}

func TestGetProfile_FromCache(t *testing.T) {
	// Подготовка
	svc, m := newTestTouristService(t)
	ctx := context.Background()
	id := uuid.New()
	cached := &models.Profile{ID: id, FullName: "Из кеша"}

	// Ожидания
	m.profiles.EXPECT().GetProfileFromCache(ctx, id).Return(cached, nil)

	// Действие
	profile, err := svc.GetProfile(ctx, id)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, cached, profile)
}

func TestGetProfile_FromDB(t *testing.T) {
	svc, m := newTestTouristService(t)
	ctx := context.Background()
	id := uuid.New()
	stored := &models.Profile{ID: id, FullName: "Из базы"}

	gomock.InOrder(
		m.profiles.EXPECT().GetProfileFromCache(ctx, id).Return(nil, nil),
		m.profiles.EXPECT().GetByID(ctx, id).Return(stored, nil),
		m.profiles.EXPECT().SetProfileCache(ctx, stored).Return(nil),
	)

	profile, err := svc.GetProfile(ctx, id)

	require.NoError(t, err)
	assert.Equal(t, stored, profile)
}

func TestGetProfile_NotFound(t *testing.T) {
	svc, m := newTestTouristService(t)
	ctx := context.Background()
	id := uuid.New()

	m.profiles.EXPECT().GetProfileFromCache(ctx, id).Return(nil, fmt.Errorf("cache unavailable"))
	m.profiles.EXPECT().GetByID(ctx, id).Return(nil, fmt.Errorf("profile %s: %w", id, service.ErrNotFound))

	_, err := svc.GetProfile(ctx, id)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestUpdateProfile_Success(t *testing.T) {
	svc, m := newTestTouristService(t)
	ctx := context.Background()
	id := uuid.New()
	existing := &models.Profile{ID: id, Email: "anna@example.com", FullName: "Old", IsActive: true}
	update := &models.Profile{ID: id, Email: "hacker@example.com", FullName: "New", Phone: "+1", EmergencyContactPhone: "+2"}

	m.profiles.EXPECT().GetByID(ctx, id).Return(existing, nil)
	m.profiles.EXPECT().Update(ctx, existing).Return(nil)
	m.profiles.EXPECT().InvalidateProfileCache(ctx, id).Return(nil)

	profile, err := svc.UpdateProfile(ctx, update)

	require.NoError(t, err)
	assert.Equal(t, "New", profile.FullName)
	assert.Equal(t, "+2", profile.EmergencyContactPhone)
	assert.Equal(t, "anna@example.com", profile.Email)
}

func TestUpdateProfile_NotFound(t *testing.T) {
	svc, m := newTestTouristService(t)
	ctx := context.Background()
	id := uuid.New()

	m.profiles.EXPECT().GetByID(ctx, id).Return(nil, service.ErrNotFound)

	_, err := svc.UpdateProfile(ctx, &models.Profile{ID: id})
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestUpdateLocation_RestrictedZoneRaisesAlert(t *testing.T) {
	svc, m := newTestTouristService(t)
	ctx := context.Background()
	touristID := uuid.New()
	location := &models.TouristLocation{TouristID: touristID, Latitude: 41.0, Longitude: 29.0, RecordedAt: time.Now()}
	caution := &models.Geofence{ID: uuid.New(), ZoneType: models.ZoneCaution}
	restricted := &models.Geofence{ID: uuid.New(), ZoneType: models.ZoneRestricted}
	raised := &models.EmergencyAlert{ID: uuid.New(), AlertType: models.AlertTypeGeofence}

	m.locations.EXPECT().Save(ctx, location).Return(nil)
	m.locations.EXPECT().IndexPosition(ctx, location).Return(nil)
	m.geofences.EXPECT().Evaluate(ctx, 41.0, 29.0).Return([]*models.Geofence{caution, restricted}, nil)
	m.profiles.EXPECT().GetProfileFromCache(ctx, touristID).Return(&models.Profile{FullName: "Anna"}, nil)
	m.broadcaster.EXPECT().BroadcastToAdmins(realtime.EventLocationUpdate, gomock.Any()).
		Do(func(_ string, payload any) {
			event, ok := payload.(service.LocationEvent)
			require.True(t, ok)
			assert.Equal(t, "Anna", event.TouristName)
			assert.Len(t, event.Zones, 2)
		})
	m.alerts.EXPECT().RaiseGeofenceAlert(ctx, touristID, restricted, 41.0, 29.0).Return(raised, nil)

	result, err := svc.UpdateLocation(ctx, location)

	require.NoError(t, err)
	assert.Equal(t, location, result.Location)
	assert.Len(t, result.Zones, 2)
	assert.Equal(t, raised, result.Alert)
}

func TestUpdateLocation_NoZones(t *testing.T) {
	svc, m := newTestTouristService(t)
	ctx := context.Background()
	touristID := uuid.New()
	location := &models.TouristLocation{TouristID: touristID, Latitude: 1, Longitude: 2, RecordedAt: time.Now()}

	m.locations.EXPECT().Save(ctx, location).Return(nil)
	m.locations.EXPECT().IndexPosition(ctx, location).Return(fmt.Errorf("redis down"))
	m.geofences.EXPECT().Evaluate(ctx, 1.0, 2.0).Return([]*models.Geofence{}, nil)
	m.profiles.EXPECT().GetProfileFromCache(ctx, touristID).Return(nil, nil)
	m.profiles.EXPECT().GetByID(ctx, touristID).Return(nil, service.ErrNotFound)
	m.broadcaster.EXPECT().BroadcastToAdmins(realtime.EventLocationUpdate, gomock.Any())

	result, err := svc.UpdateLocation(ctx, location)

	require.NoError(t, err)
	assert.Empty(t, result.Zones)
	assert.Nil(t, result.Alert)
}

func TestUpdateLocation_SaveError(t *testing.T) {
	svc, m := newTestTouristService(t)
	ctx := context.Background()
	location := &models.TouristLocation{TouristID: uuid.New()}

	m.locations.EXPECT().Save(ctx, location).Return(fmt.Errorf("insert failed"))

	_, err := svc.UpdateLocation(ctx, location)
	assert.Error(t, err)
}

func TestLocationHistory_Limits(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"default", 0, 50},
		{"custom", 10, 10},
		{"capped", 10000, 500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newTestTouristService(t)
			ctx := context.Background()
			id := uuid.New()

			m.locations.EXPECT().History(ctx, id, tt.want).Return([]*models.TouristLocation{}, nil)

			_, err := svc.LocationHistory(ctx, id, tt.limit)
			require.NoError(t, err)
		})
	}
}
