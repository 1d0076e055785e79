package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMigrationURL(t *testing.T) {
	tests := map[string]string{
		"postgres://u:p@localhost:5432/db":              "pgx5://u:p@localhost:5432/db",
		"postgresql://u:p@db.supabase.co:5432/postgres": "pgx5://u:p@db.supabase.co:5432/postgres",
		"pgx5://u:p@localhost/db":                       "pgx5://u:p@localhost/db",
	}
	for in, want := range tests {
		assert.Equal(t, want, MigrationURL(in), in)
	}
}
