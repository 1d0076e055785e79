//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/tourist_safety_system/internal/models"
	"github.com/shenikar/tourist_safety_system/internal/service"
	"github.com/shenikar/tourist_safety_system/pkg/postgres"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// newTestDB поднимает PostGIS в контейнере и применяет миграции
func newTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgis/postgis:16-3.4-alpine",
		tcpostgres.WithDatabase("tourist_safety_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(90*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	require.NoError(t, postgres.MigrateUp(dsn, "file://../../migrations"))

	pool, err := postgres.NewPostgresDB(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func TestRepositories_Integration(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	profiles := NewProfileRepository(db, nil)
	admins := NewAdminRepository(db)
	alerts := NewAlertRepository(db)
	locations := NewLocationRepository(db, nil)
	geofences := NewGeofenceRepository(db)

	profile := &models.Profile{Email: "anna@example.com", PasswordHash: "hash", FullName: "Anna Smith", Phone: "+100", IsActive: true}
	require.NoError(t, profiles.Create(ctx, profile))
	assert.NotEqual(t, uuid.Nil, profile.ID)

	t.Run("profile duplicate email", func(t *testing.T) {
		err := profiles.Create(ctx, &models.Profile{Email: "anna@example.com", PasswordHash: "x", FullName: "Dup"})
		assert.ErrorIs(t, err, service.ErrEmailTaken)
	})

	t.Run("profile lookup and search", func(t *testing.T) {
		got, err := profiles.GetByEmail(ctx, "anna@example.com")
		require.NoError(t, err)
		assert.Equal(t, profile.ID, got.ID)
		assert.Equal(t, "hash", got.PasswordHash)

		found, err := profiles.List(ctx, 1, 10, "smi")
		require.NoError(t, err)
		assert.Len(t, found, 1)

		_, err = profiles.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, service.ErrNotFound)
	})

	admin := &models.AdminUser{Email: "ops@example.com", PasswordHash: "hash", FullName: "Ops", Role: models.RoleAdmin, IsActive: true}
	require.NoError(t, admins.Create(ctx, admin))
	require.NoError(t, admins.TouchLastLogin(ctx, admin.ID))

	t.Run("admin last login", func(t *testing.T) {
		got, err := admins.GetByID(ctx, admin.ID)
		require.NoError(t, err)
		assert.NotNil(t, got.LastLoginAt)
	})

	zone := &models.Geofence{
		Name:      "Harbor",
		ZoneType:  models.ZoneRestricted,
		Shape:     models.ShapePolygon,
		Polygon:   [][2]float64{{29, 41}, {29, 41.01}, {29.01, 41.01}, {29.01, 41}, {29, 41}},
		CenterLat: 41.005,
		CenterLon: 29.005,
		IsActive:  true,
		CreatedBy: &admin.ID,
	}
	require.NoError(t, geofences.Create(ctx, zone))

	t.Run("geofence polygon roundtrip and deactivate", func(t *testing.T) {
		got, err := geofences.GetByID(ctx, zone.ID)
		require.NoError(t, err)
		assert.Equal(t, zone.Polygon, got.Polygon)
		assert.InDelta(t, 41.005, got.CenterLat, 1e-9)

		require.NoError(t, geofences.Deactivate(ctx, zone.ID))
		active, err := geofences.List(ctx, true)
		require.NoError(t, err)
		assert.Empty(t, active)
		all, err := geofences.List(ctx, false)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("alerts lifecycle and counts", func(t *testing.T) {
		alert := &models.EmergencyAlert{
			TouristID:  profile.ID,
			AlertType:  models.AlertTypeGeofence,
			Priority:   models.PriorityCritical,
			Status:     models.AlertStatusActive,
			Latitude:   41.005,
			Longitude:  29.005,
			GeofenceID: &zone.ID,
		}
		require.NoError(t, alerts.Create(ctx, alert))

		open, err := alerts.HasOpenAlert(ctx, profile.ID, models.AlertTypeGeofence)
		require.NoError(t, err)
		assert.True(t, open)

		duplicate := &models.EmergencyAlert{
			TouristID:  profile.ID,
			AlertType:  models.AlertTypeGeofence,
			Priority:   models.PriorityHigh,
			Status:     models.AlertStatusActive,
			Latitude:   41.006,
			Longitude:  29.006,
			GeofenceID: &zone.ID,
		}
		err = alerts.Create(ctx, duplicate)
		assert.ErrorIs(t, err, service.ErrAlertAlreadyOpen)

		// Обычные SOS индекс не ограничивает
		for i := 0; i < 2; i++ {
			require.NoError(t, alerts.Create(ctx, &models.EmergencyAlert{
				TouristID: profile.ID,
				AlertType: models.AlertTypeSOS,
				Priority:  models.PriorityLow,
				Status:    models.AlertStatusActive,
				Latitude:  41,
				Longitude: 29,
			}))
		}

		got, err := alerts.GetByID(ctx, alert.ID)
		require.NoError(t, err)
		assert.Equal(t, "Anna Smith", got.TouristName)
		assert.InDelta(t, 41.005, got.Latitude, 1e-9)

		counts, err := alerts.Counts(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, counts.OpenCritical)

		now := time.Now().UTC()
		got.Status = models.AlertStatusResolved
		got.AssignedTo = &admin.ID
		got.ResolvedAt = &now
		got.ResolutionNotes = "false trigger"
		require.NoError(t, alerts.UpdateStatus(ctx, got))

		counts, err = alerts.Counts(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, counts.OpenCritical)
		assert.Equal(t, 1, counts.ResolvedToday)

		// После закрытия предыдущего новый geofence-алерт снова разрешен
		duplicate.Status = models.AlertStatusActive
		require.NoError(t, alerts.Create(ctx, duplicate))

		listed, err := alerts.List(ctx, models.AlertFilter{Status: models.AlertStatusResolved, TouristID: &profile.ID, Page: 1, PageSize: 10})
		require.NoError(t, err)
		require.Len(t, listed, 1)
		assert.Equal(t, "false trigger", listed[0].ResolutionNotes)
	})

	t.Run("locations history and activity", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			require.NoError(t, locations.Save(ctx, &models.TouristLocation{
				TouristID:      profile.ID,
				Latitude:       41 + float64(i)*0.001,
				Longitude:      29,
				AccuracyMeters: 5,
				RecordedAt:     time.Now().Add(time.Duration(i-3) * time.Minute),
			}))
		}

		history, err := locations.History(ctx, profile.ID, 2)
		require.NoError(t, err)
		require.Len(t, history, 2)
		assert.InDelta(t, 41.002, history[0].Latitude, 1e-9)

		latest, err := locations.LatestAll(ctx, 60)
		require.NoError(t, err)
		require.Len(t, latest, 1)
		assert.Equal(t, "Anna Smith", latest[0].TouristName)

		// Турист, молчащий три часа, виден без окна и скрыт с окном
		silent := &models.Profile{Email: "silent@example.com", PasswordHash: "hash", FullName: "Silent Bob", IsActive: true}
		require.NoError(t, profiles.Create(ctx, silent))
		require.NoError(t, locations.Save(ctx, &models.TouristLocation{
			TouristID:  silent.ID,
			Latitude:   40,
			Longitude:  28,
			RecordedAt: time.Now().Add(-3 * time.Hour),
		}))

		all, err := locations.LatestAll(ctx, 0)
		require.NoError(t, err)
		assert.Len(t, all, 2)

		recent, err := locations.LatestAll(ctx, 60)
		require.NoError(t, err)
		assert.Len(t, recent, 1)

		active, err := locations.CountActiveTourists(ctx, 60)
		require.NoError(t, err)
		assert.Equal(t, 1, active)

		_, err = locations.Latest(ctx, uuid.New())
		assert.ErrorIs(t, err, service.ErrNotFound)
	})
}
