package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/tourist_safety_system/internal/models"
	"github.com/shenikar/tourist_safety_system/internal/service"
)

const adminColumns = `id, email, password_hash, full_name, role, is_active, last_login_at, created_at, updated_at`

type AdminRepository struct {
	db *pgxpool.Pool
}

func NewAdminRepository(db *pgxpool.Pool) service.AdminRepository {
	return &AdminRepository{db: db}
}

// Create создает администратора панели
func (r *AdminRepository) Create(ctx context.Context, admin *models.AdminUser) error {
	query := `
		INSERT INTO admin_users (email, password_hash, full_name, role, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at;
	`
	err := r.db.QueryRow(ctx, query,
		admin.Email,
		admin.PasswordHash,
		admin.FullName,
		admin.Role,
		admin.IsActive,
	).Scan(&admin.ID, &admin.CreatedAt, &admin.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("admin %s: %w", admin.Email, service.ErrEmailTaken)
		}
		return fmt.Errorf("failed to create admin: %w", err)
	}
	return nil
}

func (r *AdminRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.AdminUser, error) {
	query := `SELECT ` + adminColumns + ` FROM admin_users WHERE id = $1;`
	admin, err := scanAdmin(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("admin with id %s: %w", id, service.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get admin by id: %w", err)
	}
	return admin, nil
}

func (r *AdminRepository) GetByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	query := `SELECT ` + adminColumns + ` FROM admin_users WHERE email = $1;`
	admin, err := scanAdmin(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("admin with email %s: %w", email, service.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get admin by email: %w", err)
	}
	return admin, nil
}

// TouchLastLogin фиксирует время последнего входа
func (r *AdminRepository) TouchLastLogin(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `UPDATE admin_users SET last_login_at = NOW() WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("failed to update admin last login: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("admin with id %s: %w", id, service.ErrNotFound)
	}
	return nil
}

func scanAdmin(row pgx.Row) (*models.AdminUser, error) {
	admin := &models.AdminUser{}
	err := row.Scan(
		&admin.ID,
		&admin.Email,
		&admin.PasswordHash,
		&admin.FullName,
		&admin.Role,
		&admin.IsActive,
		&admin.LastLoginAt,
		&admin.CreatedAt,
		&admin.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return admin, nil
}
