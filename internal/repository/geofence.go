package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/tourist_safety_system/internal/models"
	"github.com/shenikar/tourist_safety_system/internal/service"
)

const geofenceSelect = `
	SELECT
		id,
		name,
		description,
		zone_type,
		shape,
		ST_Y(center::geometry) as center_lat,
		ST_X(center::geometry) as center_lon,
		radius_meters,
		polygon,
		is_active,
		created_by,
		created_at,
		updated_at
	FROM geofences`

type GeofenceRepository struct {
	db *pgxpool.Pool
}

func NewGeofenceRepository(db *pgxpool.Pool) service.GeofenceRepository {
	return &GeofenceRepository{db: db}
}

// Create сохраняет зону, контур полигона хранится в jsonb
func (r *GeofenceRepository) Create(ctx context.Context, geofence *models.Geofence) error {
	polygon, err := marshalPolygon(geofence.Polygon)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO geofences (name, description, zone_type, shape, center, radius_meters, polygon, is_active, created_by)
		VALUES ($1, $2, $3, $4, ST_SetSRID(ST_MakePoint($5, $6), 4326), $7, $8, $9, $10)
		RETURNING id, created_at, updated_at;
	`
	err = r.db.QueryRow(ctx, query,
		geofence.Name,
		geofence.Description,
		geofence.ZoneType,
		geofence.Shape,
		geofence.CenterLon,
		geofence.CenterLat,
		geofence.RadiusMeters,
		polygon,
		geofence.IsActive,
		geofence.CreatedBy,
	).Scan(&geofence.ID, &geofence.CreatedAt, &geofence.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create geofence: %w", err)
	}
	return nil
}

func (r *GeofenceRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Geofence, error) {
	geofence, err := scanGeofence(r.db.QueryRow(ctx, geofenceSelect+` WHERE id = $1;`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("geofence with id %s: %w", id, service.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get geofence by id: %w", err)
	}
	return geofence, nil
}

func (r *GeofenceRepository) Update(ctx context.Context, geofence *models.Geofence) error {
	polygon, err := marshalPolygon(geofence.Polygon)
	if err != nil {
		return err
	}

	query := `
		UPDATE geofences SET
			name = $1,
			description = $2,
			zone_type = $3,
			shape = $4,
			center = ST_SetSRID(ST_MakePoint($5, $6), 4326),
			radius_meters = $7,
			polygon = $8,
			is_active = $9,
			updated_at = NOW()
		WHERE id = $10
		RETURNING updated_at;
	`
	err = r.db.QueryRow(ctx, query,
		geofence.Name,
		geofence.Description,
		geofence.ZoneType,
		geofence.Shape,
		geofence.CenterLon,
		geofence.CenterLat,
		geofence.RadiusMeters,
		polygon,
		geofence.IsActive,
		geofence.ID,
	).Scan(&geofence.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("geofence with id %s not found for update: %w", geofence.ID, service.ErrNotFound)
		}
		return fmt.Errorf("failed to update geofence: %w", err)
	}
	return nil
}

// Deactivate выключает зону вместо удаления
func (r *GeofenceRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE geofences SET
			is_active = FALSE,
			updated_at = NOW()
		WHERE id = $1;
	`
	cmdTag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate geofence: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("geofence with id %s not found for deactivate: %w", id, service.ErrNotFound)
	}
	return nil
}

func (r *GeofenceRepository) List(ctx context.Context, activeOnly bool) ([]*models.Geofence, error) {
	query := geofenceSelect + ` WHERE ($1 = FALSE OR is_active) ORDER BY created_at DESC;`
	rows, err := r.db.Query(ctx, query, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list geofences: %w", err)
	}
	defer rows.Close()

	geofences := make([]*models.Geofence, 0)
	for rows.Next() {
		geofence, err := scanGeofence(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan geofence row: %w", err)
		}
		geofences = append(geofences, geofence)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return geofences, nil
}

func marshalPolygon(polygon [][2]float64) ([]byte, error) {
	if len(polygon) == 0 {
		return nil, nil
	}
	raw, err := json.Marshal(polygon)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal geofence polygon: %w", err)
	}
	return raw, nil
}

func scanGeofence(row pgx.Row) (*models.Geofence, error) {
	geofence := &models.Geofence{}
	var polygon []byte
	err := row.Scan(
		&geofence.ID,
		&geofence.Name,
		&geofence.Description,
		&geofence.ZoneType,
		&geofence.Shape,
		&geofence.CenterLat,
		&geofence.CenterLon,
		&geofence.RadiusMeters,
		&polygon,
		&geofence.IsActive,
		&geofence.CreatedBy,
		&geofence.CreatedAt,
		&geofence.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(polygon) > 0 {
		if err := json.Unmarshal(polygon, &geofence.Polygon); err != nil {
			return nil, fmt.Errorf("failed to unmarshal geofence polygon: %w", err)
		}
	}
	return geofence, nil
}
