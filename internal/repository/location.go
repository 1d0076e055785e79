package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/tourist_safety_system/internal/models"
	"github.com/shenikar/tourist_safety_system/internal/service"
)

// positionsKey - GEO-множество последних позиций туристов
const positionsKey = "tourists:positions"

type LocationRepository struct {
	db          *pgxpool.Pool
	redisClient *redis.Client
}

func NewLocationRepository(db *pgxpool.Pool, redisClient *redis.Client) service.LocationRepository {
	return &LocationRepository{
		db:          db,
		redisClient: redisClient,
	}
}

// Save сохраняет точку трека, нулевое время заменяется на NOW()
func (r *LocationRepository) Save(ctx context.Context, location *models.TouristLocation) error {
	query := `
		INSERT INTO tourist_locations (tourist_id, location, accuracy_meters, recorded_at)
		VALUES ($1, ST_SetSRID(ST_MakePoint($2, $3), 4326), $4, COALESCE($5, NOW()))
		RETURNING id, recorded_at;
	`
	var recordedAt any
	if !location.RecordedAt.IsZero() {
		recordedAt = location.RecordedAt
	}
	err := r.db.QueryRow(ctx, query,
		location.TouristID,
		location.Longitude,
		location.Latitude,
		location.AccuracyMeters,
		recordedAt,
	).Scan(&location.ID, &location.RecordedAt)
	if err != nil {
		return fmt.Errorf("failed to save location: %w", err)
	}
	return nil
}

// History возвращает последние точки туриста, новые первыми
func (r *LocationRepository) History(ctx context.Context, touristID uuid.UUID, limit int) ([]*models.TouristLocation, error) {
	query := `
		SELECT
			id,
			tourist_id,
			'' as full_name,
			ST_Y(location::geometry) as latitude,
			ST_X(location::geometry) as longitude,
			accuracy_meters,
			recorded_at
		FROM tourist_locations
		WHERE tourist_id = $1
		ORDER BY recorded_at DESC
		LIMIT $2;
	`
	return r.queryLocations(ctx, query, touristID, limit)
}

func (r *LocationRepository) Latest(ctx context.Context, touristID uuid.UUID) (*models.TouristLocation, error) {
	locations, err := r.History(ctx, touristID, 1)
	if err != nil {
		return nil, err
	}
	if len(locations) == 0 {
		return nil, fmt.Errorf("location of tourist %s: %w", touristID, service.ErrNotFound)
	}
	return locations[0], nil
}

// LatestAll - последняя точка каждого туриста; minutes > 0 оставляет только
// туристов, отправлявших координаты за последние minutes минут
func (r *LocationRepository) LatestAll(ctx context.Context, minutes int) ([]*models.TouristLocation, error) {
	query := `
		SELECT DISTINCT ON (l.tourist_id)
			l.id,
			l.tourist_id,
			p.full_name,
			ST_Y(l.location::geometry) as latitude,
			ST_X(l.location::geometry) as longitude,
			l.accuracy_meters,
			l.recorded_at
		FROM tourist_locations l
		JOIN profiles p ON p.id = l.tourist_id
		WHERE $1::int <= 0 OR l.recorded_at >= NOW() - ($1::int * INTERVAL '1 minute')
		ORDER BY l.tourist_id, l.recorded_at DESC;
	`
	return r.queryLocations(ctx, query, minutes)
}

// CountActiveTourists возвращает количество уникальных туристов с точками в окне
func (r *LocationRepository) CountActiveTourists(ctx context.Context, minutes int) (int, error) {
	query := `
		SELECT COUNT(DISTINCT tourist_id)
		FROM tourist_locations
		WHERE recorded_at >= NOW() - ($1 * INTERVAL '1 minute');
	`
	var count int
	err := r.db.QueryRow(ctx, query, minutes).Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to count active tourists: %w", err)
	}
	return count, nil
}

// IndexPosition обновляет живую позицию туриста в Redis
func (r *LocationRepository) IndexPosition(ctx context.Context, location *models.TouristLocation) error {
	err := r.redisClient.GeoAdd(ctx, positionsKey, &redis.GeoLocation{
		Name:      location.TouristID.String(),
		Longitude: location.Longitude,
		Latitude:  location.Latitude,
	}).Err()
	if err != nil {
		return fmt.Errorf("failed to index tourist position: %w", err)
	}
	return nil
}

// FindNearby ищет туристов в радиусе по живым позициям, ближние первыми
func (r *LocationRepository) FindNearby(ctx context.Context, lat, lon, radiusMeters float64) ([]*models.NearbyTourist, error) {
	found, err := r.redisClient.GeoSearchLocation(ctx, positionsKey, &redis.GeoSearchLocationQuery{
		GeoSearchQuery: redis.GeoSearchQuery{
			Longitude:  lon,
			Latitude:   lat,
			Radius:     radiusMeters,
			RadiusUnit: "m",
			Sort:       "ASC",
		},
		WithCoord: true,
		WithDist:  true,
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to search nearby tourists: %w", err)
	}

	nearby := make([]*models.NearbyTourist, 0, len(found))
	for _, loc := range found {
		id, err := uuid.Parse(loc.Name)
		if err != nil {
			continue
		}
		nearby = append(nearby, &models.NearbyTourist{
			TouristID:      id,
			Latitude:       loc.Latitude,
			Longitude:      loc.Longitude,
			DistanceMeters: loc.Dist,
		})
	}
	return nearby, nil
}

func (r *LocationRepository) queryLocations(ctx context.Context, query string, args ...any) ([]*models.TouristLocation, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query locations: %w", err)
	}
	defer rows.Close()

	locations := make([]*models.TouristLocation, 0)
	for rows.Next() {
		location := &models.TouristLocation{}
		err := rows.Scan(
			&location.ID,
			&location.TouristID,
			&location.TouristName,
			&location.Latitude,
			&location.Longitude,
			&location.AccuracyMeters,
			&location.RecordedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan location row: %w", err)
		}
		locations = append(locations, location)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return locations, nil
}
