package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/tourist_safety_system/internal/models"
	"github.com/shenikar/tourist_safety_system/internal/service"
)

const profileCacheTTL = 5 * time.Minute

const profileColumns = `
	id,
	email,
	password_hash,
	full_name,
	phone,
	nationality,
	passport_number,
	emergency_contact_name,
	emergency_contact_phone,
	is_active,
	created_at,
	updated_at`

type ProfileRepository struct {
	db          *pgxpool.Pool
	redisClient *redis.Client
}

func NewProfileRepository(db *pgxpool.Pool, redisClient *redis.Client) service.ProfileRepository {
	return &ProfileRepository{
		db:          db,
		redisClient: redisClient,
	}
}

// Create создает профиль туриста
func (r *ProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	query := `
		INSERT INTO profiles (
			email, password_hash, full_name, phone, nationality, passport_number,
			emergency_contact_name, emergency_contact_phone, is_active
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at;
	`
	err := r.db.QueryRow(ctx, query,
		profile.Email,
		profile.PasswordHash,
		profile.FullName,
		profile.Phone,
		profile.Nationality,
		profile.PassportNumber,
		profile.EmergencyContactName,
		profile.EmergencyContactPhone,
		profile.IsActive,
	).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("profile %s: %w", profile.Email, service.ErrEmailTaken)
		}
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

// GetByID возвращает профиль по UUID
func (r *ProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1;`
	profile, err := scanProfile(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("profile with id %s: %w", id, service.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get profile by id: %w", err)
	}
	return profile, nil
}

// GetByEmail возвращает профиль по email (email хранится в нижнем регистре)
func (r *ProfileRepository) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE email = $1;`
	profile, err := scanProfile(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("profile with email %s: %w", email, service.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get profile by email: %w", err)
	}
	return profile, nil
}

func (r *ProfileRepository) Update(ctx context.Context, profile *models.Profile) error {
	query := `
		UPDATE profiles SET
			full_name = $1,
			phone = $2,
			nationality = $3,
			passport_number = $4,
			emergency_contact_name = $5,
			emergency_contact_phone = $6,
			is_active = $7,
			updated_at = NOW()
		WHERE id = $8
		RETURNING updated_at;
	`
	err := r.db.QueryRow(ctx, query,
		profile.FullName,
		profile.Phone,
		profile.Nationality,
		profile.PassportNumber,
		profile.EmergencyContactName,
		profile.EmergencyContactPhone,
		profile.IsActive,
		profile.ID,
	).Scan(&profile.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("profile with id %s not found for update: %w", profile.ID, service.ErrNotFound)
		}
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return nil
}

// List возвращает страницу профилей, search ищет по имени, email и телефону
func (r *ProfileRepository) List(ctx context.Context, page, pageSize int, search string) ([]*models.Profile, error) {
	offset := (page - 1) * pageSize

	query := `
		SELECT ` + profileColumns + `
		FROM profiles
		WHERE $1 = ''
			OR full_name ILIKE '%' || $1 || '%'
			OR email ILIKE '%' || $1 || '%'
			OR phone ILIKE '%' || $1 || '%'
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.db.Query(ctx, query, search, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	profiles := make([]*models.Profile, 0)
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile row: %w", err)
		}
		profiles = append(profiles, profile)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return profiles, nil
}

func (r *ProfileRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM profiles;`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count profiles: %w", err)
	}
	return count, nil
}

// GetProfileFromCache пытается получить профиль из Redis, промах - (nil, nil)
func (r *ProfileRepository) GetProfileFromCache(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	val, err := r.redisClient.Get(ctx, profileCacheKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile from cache: %w", err)
	}

	profile := &models.Profile{}
	if err := json.Unmarshal(val, profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile from cache: %w", err)
	}
	return profile, nil
}

// SetProfileCache сохраняет профиль в Redis, хэш пароля в кэш не попадает
func (r *ProfileRepository) SetProfileCache(ctx context.Context, profile *models.Profile) error {
	val, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile for cache: %w", err)
	}
	if err := r.redisClient.Set(ctx, profileCacheKey(profile.ID), val, profileCacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to set profile in cache: %w", err)
	}
	return nil
}

func (r *ProfileRepository) InvalidateProfileCache(ctx context.Context, id uuid.UUID) error {
	if err := r.redisClient.Del(ctx, profileCacheKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate profile cache: %w", err)
	}
	return nil
}

func profileCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("profile:%s", id.String())
}

func scanProfile(row pgx.Row) (*models.Profile, error) {
	profile := &models.Profile{}
	err := row.Scan(
		&profile.ID,
		&profile.Email,
		&profile.PasswordHash,
		&profile.FullName,
		&profile.Phone,
		&profile.Nationality,
		&profile.PassportNumber,
		&profile.EmergencyContactName,
		&profile.EmergencyContactPhone,
		&profile.IsActive,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
