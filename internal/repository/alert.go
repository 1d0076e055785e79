package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/tourist_safety_system/internal/models"
	"github.com/shenikar/tourist_safety_system/internal/service"
)

const alertSelect = `
	SELECT
		a.id,
		a.tourist_id,
		p.full_name,
		a.alert_type,
		a.priority,
		a.status,
		a.message,
		ST_Y(a.location::geometry) as latitude,
		ST_X(a.location::geometry) as longitude,
		a.geofence_id,
		a.assigned_to,
		a.resolution_notes,
		a.resolved_at,
		a.created_at,
		a.updated_at
	FROM emergency_alerts a
	JOIN profiles p ON p.id = a.tourist_id`

type AlertRepository struct {
	db *pgxpool.Pool
}

func NewAlertRepository(db *pgxpool.Pool) service.AlertRepository {
	return &AlertRepository{db: db}
}

// Create сохраняет алерт, точка пишется как geography(Point)
func (r *AlertRepository) Create(ctx context.Context, alert *models.EmergencyAlert) error {
	query := `
		INSERT INTO emergency_alerts (tourist_id, alert_type, priority, status, message, location, geofence_id)
		VALUES ($1, $2, $3, $4, $5, ST_SetSRID(ST_MakePoint($6, $7), 4326), $8)
		RETURNING id, created_at, updated_at;
	`
	err := r.db.QueryRow(ctx, query,
		alert.TouristID,
		alert.AlertType,
		alert.Priority,
		alert.Status,
		alert.Message,
		alert.Longitude,
		alert.Latitude,
		alert.GeofenceID,
	).Scan(&alert.ID, &alert.CreatedAt, &alert.UpdatedAt)
	if err != nil {
		// uq_alerts_open_geofence: у туриста уже есть открытый geofence-алерт
		if isUniqueViolation(err) {
			return fmt.Errorf("failed to create alert: %w", service.ErrAlertAlreadyOpen)
		}
		return fmt.Errorf("failed to create alert: %w", err)
	}
	return nil
}

func (r *AlertRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.EmergencyAlert, error) {
	alert, err := scanAlert(r.db.QueryRow(ctx, alertSelect+` WHERE a.id = $1;`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("alert with id %s: %w", id, service.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get alert by id: %w", err)
	}
	return alert, nil
}

// UpdateStatus сохраняет статус, назначение и итог обработки
func (r *AlertRepository) UpdateStatus(ctx context.Context, alert *models.EmergencyAlert) error {
	query := `
		UPDATE emergency_alerts SET
			status = $1,
			assigned_to = $2,
			resolution_notes = $3,
			resolved_at = $4,
			updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at;
	`
	err := r.db.QueryRow(ctx, query,
		alert.Status,
		alert.AssignedTo,
		alert.ResolutionNotes,
		alert.ResolvedAt,
		alert.ID,
	).Scan(&alert.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("alert with id %s not found for update: %w", alert.ID, service.ErrNotFound)
		}
		return fmt.Errorf("failed to update alert status: %w", err)
	}
	return nil
}

// List возвращает алерты по фильтру, новые первыми
func (r *AlertRepository) List(ctx context.Context, filter models.AlertFilter) ([]*models.EmergencyAlert, error) {
	var (
		conds []string
		args  []any
	)
	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, fmt.Sprintf("a.status = $%d", len(args)))
	}
	if filter.Priority != "" {
		args = append(args, filter.Priority)
		conds = append(conds, fmt.Sprintf("a.priority = $%d", len(args)))
	}
	if filter.TouristID != nil {
		args = append(args, *filter.TouristID)
		conds = append(conds, fmt.Sprintf("a.tourist_id = $%d", len(args)))
	}

	query := alertSelect
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	args = append(args, filter.PageSize, (filter.Page-1)*filter.PageSize)
	query += fmt.Sprintf(" ORDER BY a.created_at DESC LIMIT $%d OFFSET $%d;", len(args)-1, len(args))

	return r.queryAlerts(ctx, query, args...)
}

func (r *AlertRepository) ListByTourist(ctx context.Context, touristID uuid.UUID, limit int) ([]*models.EmergencyAlert, error) {
	query := alertSelect + ` WHERE a.tourist_id = $1 ORDER BY a.created_at DESC LIMIT $2;`
	return r.queryAlerts(ctx, query, touristID, limit)
}

// HasOpenAlert проверяет, есть ли у туриста незакрытый алерт данного типа
func (r *AlertRepository) HasOpenAlert(ctx context.Context, touristID uuid.UUID, alertType string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM emergency_alerts
			WHERE tourist_id = $1
				AND alert_type = $2
				AND status IN ('active', 'acknowledged', 'in_progress')
		);
	`
	var exists bool
	if err := r.db.QueryRow(ctx, query, touristID, alertType).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check open alerts: %w", err)
	}
	return exists, nil
}

// Counts считает алерты по статусам и приоритетам для дашборда
func (r *AlertRepository) Counts(ctx context.Context) (*models.AlertCounts, error) {
	rows, err := r.db.Query(ctx, `SELECT status, priority, COUNT(*) FROM emergency_alerts GROUP BY status, priority;`)
	if err != nil {
		return nil, fmt.Errorf("failed to count alerts: %w", err)
	}
	defer rows.Close()

	counts := &models.AlertCounts{
		ByStatus:   make(map[string]int),
		ByPriority: make(map[string]int),
	}
	for rows.Next() {
		var (
			status, priority string
			n                int
		)
		if err := rows.Scan(&status, &priority, &n); err != nil {
			return nil, fmt.Errorf("failed to scan alert counts: %w", err)
		}
		counts.ByStatus[status] += n
		counts.ByPriority[priority] += n
		if priority == models.PriorityCritical && models.IsOpenAlertStatus(status) {
			counts.OpenCritical += n
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error counts iteration: %w", err)
	}

	query := `
		SELECT COUNT(*) FROM emergency_alerts
		WHERE status = 'resolved' AND resolved_at >= date_trunc('day', NOW());
	`
	if err := r.db.QueryRow(ctx, query).Scan(&counts.ResolvedToday); err != nil {
		return nil, fmt.Errorf("failed to count resolved alerts: %w", err)
	}
	return counts, nil
}

func (r *AlertRepository) queryAlerts(ctx context.Context, query string, args ...any) ([]*models.EmergencyAlert, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	defer rows.Close()

	alerts := make([]*models.EmergencyAlert, 0)
	for rows.Next() {
		alert, err := scanAlert(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan alert row: %w", err)
		}
		alerts = append(alerts, alert)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return alerts, nil
}

func scanAlert(row pgx.Row) (*models.EmergencyAlert, error) {
	alert := &models.EmergencyAlert{}
	err := row.Scan(
		&alert.ID,
		&alert.TouristID,
		&alert.TouristName,
		&alert.AlertType,
		&alert.Priority,
		&alert.Status,
		&alert.Message,
		&alert.Latitude,
		&alert.Longitude,
		&alert.GeofenceID,
		&alert.AssignedTo,
		&alert.ResolutionNotes,
		&alert.ResolvedAt,
		&alert.CreatedAt,
		&alert.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return alert, nil
}
