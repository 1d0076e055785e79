package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const connectRetries = 5

// NewPostgresDB создает пул соединений PostgreSQL (Supabase или локальный PostGIS)
// и ждет первого успешного Ping
func NewPostgresDB(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	cfgPool, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres config: %w", err)
	}
	cfgPool.MaxConnIdleTime = 5 * time.Minute
	cfgPool.HealthCheckPeriod = time.Minute
	cfgPool.ConnConfig.RuntimeParams["application_name"] = "tourist-safety"

	dbpool, err := pgxpool.NewWithConfig(ctx, cfgPool)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	for attempt := 1; attempt <= connectRetries; attempt++ {
		if err = dbpool.Ping(ctx); err == nil {
			return dbpool, nil
		}
		if attempt == connectRetries {
			break
		}
		select {
		case <-ctx.Done():
			dbpool.Close()
			return nil, fmt.Errorf("failed to ping postgres: %w", ctx.Err())
		case <-time.After(time.Duration(attempt) * time.Second):
		}
	}

	dbpool.Close()
	return nil, fmt.Errorf("failed to ping postgres after %d attempts: %w", connectRetries, err)
}
