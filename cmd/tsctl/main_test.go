package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) error {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		migrationsPath = ""
		downSteps = 1
	})
	return rootCmd.Execute()
}

func TestCommandTree(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["migrate"])
	assert.True(t, names["create-admin"])

	sub := map[string]bool{}
	for _, c := range migrateCmd.Commands() {
		sub[c.Name()] = true
	}
	assert.True(t, sub["up"])
	assert.True(t, sub["down"])
}

func TestConfigRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("SUPABASE_DB_URL", "")
	t.Setenv("JWT_SECRET", "secret")

	err := execute(t, "migrate", "up")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestCreateAdmin_RequiredFlags(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:1/tourist")
	t.Setenv("JWT_SECRET", "secret")

	err := execute(t, "create-admin", "--email", "ops@example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag")
	assert.Contains(t, err.Error(), "password")
}

func TestMigrateDown_RejectsZeroSteps(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:1/tourist")
	t.Setenv("JWT_SECRET", "secret")

	err := execute(t, "migrate", "down", "--steps", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--steps")
}

func TestMigrationsPathDefaultsToConfig(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:1/tourist")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("MIGRATIONS_PATH", "file://custom")

	// down с 0 шагов завершается до подключения к базе
	_ = execute(t, "migrate", "down", "--steps", "0")
	assert.Equal(t, "file://custom", migrationsPath)
	assert.NotNil(t, cfg)
}
