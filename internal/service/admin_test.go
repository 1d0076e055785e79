package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/tourist_safety_system/internal/config"
	"github.com/shenikar/tourist_safety_system/internal/models"
	"github.com/shenikar/tourist_safety_system/internal/service"
	"github.com/shenikar/tourist_safety_system/internal/service/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type adminMocks struct {
	profiles  *mocks.MockProfileRepository
	alerts    *mocks.MockAlertRepository
	locations *mocks.MockLocationRepository
}

func newTestAdminService(t *testing.T) (service.AdminService, adminMocks) {
	ctrl := gomock.NewController(t)
	m := adminMocks{
		profiles:  mocks.NewMockProfileRepository(ctrl),
		alerts:    mocks.NewMockAlertRepository(ctrl),
		locations: mocks.NewMockLocationRepository(ctrl),
	}
	cfg := &config.Config{
		StatsTimeWindowMinutes: 60,
	}
	return service.NewAdminService(m.profiles, m.alerts, m.locations, newTestLogger(), cfg), m
}

func TestDashboard_Success(t *testing.T) {
	// Подготовка
	svc, m := newTestAdminService(t)
	ctx := context.Background()

	// Ожидания
	m.profiles.EXPECT().Count(ctx).Return(120, nil)
	m.locations.EXPECT().CountActiveTourists(ctx, 60).Return(37, nil)
	m.alerts.EXPECT().Counts(ctx).Return(&models.AlertCounts{
		ByStatus: map[string]int{
			models.AlertStatusActive:       4,
			models.AlertStatusAcknowledged: 2,
			models.AlertStatusInProgress:   1,
			models.AlertStatusResolved:     9,
			models.AlertStatusCancelled:    3,
		},
		ByPriority:    map[string]int{models.PriorityCritical: 5},
		OpenCritical:  2,
		ResolvedToday: 3,
	}, nil)

	// Действие
	stats, err := svc.Dashboard(ctx)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, 120, stats.TotalTourists)
	assert.Equal(t, 37, stats.ActiveTourists)
	assert.Equal(t, 7, stats.OpenAlerts)
	assert.Equal(t, 2, stats.CriticalAlerts)
	assert.Equal(t, 3, stats.ResolvedToday)
	assert.Equal(t, 5, stats.AlertsByPriority[models.PriorityCritical])
}

func TestDashboard_RepositoryError(t *testing.T) {
	svc, m := newTestAdminService(t)
	ctx := context.Background()

	m.profiles.EXPECT().Count(ctx).Return(0, fmt.Errorf("db down"))

	_, err := svc.Dashboard(ctx)
	assert.Error(t, err)
}

func TestListTourists_Paging(t *testing.T) {
	svc, m := newTestAdminService(t)
	ctx := context.Background()

	m.profiles.EXPECT().List(ctx, 1, 20, "anna").Return([]*models.Profile{{FullName: "Anna"}}, nil)

	profiles, err := svc.ListTourists(ctx, 0, 0, "  anna ")

	require.NoError(t, err)
	assert.Len(t, profiles, 1)
}

func TestTouristDetail_WithoutLocation(t *testing.T) {
	svc, m := newTestAdminService(t)
	ctx := context.Background()
	id := uuid.New()
	profile := &models.Profile{ID: id}
	alerts := []*models.EmergencyAlert{{ID: uuid.New()}}

	m.profiles.EXPECT().GetByID(ctx, id).Return(profile, nil)
	m.locations.EXPECT().Latest(ctx, id).Return(nil, fmt.Errorf("location: %w", service.ErrNotFound))
	m.alerts.EXPECT().ListByTourist(ctx, id, 10).Return(alerts, nil)

	detail, err := svc.TouristDetail(ctx, id)

	require.NoError(t, err)
	assert.Equal(t, profile, detail.Profile)
	assert.Nil(t, detail.LastLocation)
	assert.Equal(t, alerts, detail.RecentAlerts)
}

func TestTouristDetail_NotFound(t *testing.T) {
	svc, m := newTestAdminService(t)
	ctx := context.Background()
	id := uuid.New()

	m.profiles.EXPECT().GetByID(ctx, id).Return(nil, service.ErrNotFound)

	_, err := svc.TouristDetail(ctx, id)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestLatestLocations(t *testing.T) {
	tests := []struct {
		name          string
		withinMinutes int
		wantMinutes   int
	}{
		{name: "all tourists including stale", withinMinutes: 0, wantMinutes: 0},
		{name: "recent only", withinMinutes: 15, wantMinutes: 15},
		{name: "negative means all", withinMinutes: -5, wantMinutes: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newTestAdminService(t)
			ctx := context.Background()

			stale := &models.TouristLocation{ID: 1, RecordedAt: time.Now().Add(-3 * time.Hour)}
			m.locations.EXPECT().LatestAll(ctx, tt.wantMinutes).Return([]*models.TouristLocation{stale}, nil)

			locations, err := svc.LatestLocations(ctx, tt.withinMinutes)
			require.NoError(t, err)
			assert.Len(t, locations, 1)
		})
	}
}

func TestNearbyTourists_CapsRadius(t *testing.T) {
	svc, m := newTestAdminService(t)
	ctx := context.Background()

	m.locations.EXPECT().FindNearby(ctx, 41.0, 29.0, float64(50000)).Return([]*models.NearbyTourist{}, nil)

	_, err := svc.NearbyTourists(ctx, 41.0, 29.0, 1e9)
	require.NoError(t, err)
}
