package service_test

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/tourist_safety_system/internal/auth"
	"github.com/shenikar/tourist_safety_system/internal/models"
	"github.com/shenikar/tourist_safety_system/internal/service"
	"github.com/shenikar/tourist_safety_system/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах
	return logger
}

type authMocks struct {
	profiles *mocks.MockProfileRepository
	admins   *mocks.MockAdminRepository
	tokens   *mocks.MockTokenIssuer
}

// newTestAuthService - вспомогательная функция для создания сервиса с моками
func newTestAuthService(t *testing.T) (service.AuthService, authMocks) {
	ctrl := gomock.NewController(t)
	m := authMocks{
		profiles: mocks.NewMockProfileRepository(ctrl),
		admins:   mocks.NewMockAdminRepository(ctrl),
		tokens:   mocks.NewMockTokenIssuer(ctrl),
	}
	return service.NewAuthService(m.profiles, m.admins, m.tokens, newTestLogger()), m
}

func TestRegisterTourist_Success(t *testing.T) {
	// Подготовка
	svc, m := newTestAuthService(t)
	ctx := context.Background()
	touristID := uuid.New()
	expiresAt := time.Now().Add(time.Hour)
	profile := &models.Profile{Email: "  Anna@Example.COM ", FullName: "Anna"}

	// Ожидания
	m.profiles.EXPECT().GetByEmail(ctx, "anna@example.com").
		Return(nil, fmt.Errorf("profile: %w", service.ErrNotFound))
	m.profiles.EXPECT().Create(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, p *models.Profile) error {
			p.ID = touristID
			return nil
		})
	m.tokens.EXPECT().Generate(touristID, models.RoleTourist, "anna@example.com").
		Return("token", expiresAt, nil)

	// Действие
	result, err := svc.RegisterTourist(ctx, profile, "secret-password")

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, "token", result.Token)
	assert.Equal(t, models.RoleTourist, result.Role)
	assert.Equal(t, touristID, result.Profile.ID)
	assert.True(t, result.Profile.IsActive)
	assert.True(t, auth.CheckPassword(result.Profile.PasswordHash, "secret-password"))
}

func TestRegisterTourist_EmailTaken(t *testing.T) {
	svc, m := newTestAuthService(t)
	ctx := context.Background()

	m.profiles.EXPECT().GetByEmail(ctx, "anna@example.com").
		Return(&models.Profile{ID: uuid.New()}, nil)

	_, err := svc.RegisterTourist(ctx, &models.Profile{Email: "anna@example.com"}, "secret-password")
	assert.ErrorIs(t, err, service.ErrEmailTaken)
}

func TestRegisterTourist_RepositoryError(t *testing.T) {
	svc, m := newTestAuthService(t)
	ctx := context.Background()
	dbErr := fmt.Errorf("connection refused")

	m.profiles.EXPECT().GetByEmail(ctx, "anna@example.com").Return(nil, dbErr)

	_, err := svc.RegisterTourist(ctx, &models.Profile{Email: "anna@example.com"}, "secret-password")
	assert.ErrorIs(t, err, dbErr)
}

func TestLoginTourist(t *testing.T) {
	hash, err := auth.HashPassword("secret-password")
	require.NoError(t, err)
	touristID := uuid.New()

	tests := []struct {
		name     string
		profile  *models.Profile
		repoErr  error
		password string
		wantErr  error
	}{
		{
			name:     "success",
			profile:  &models.Profile{ID: touristID, Email: "anna@example.com", PasswordHash: hash, IsActive: true},
			password: "secret-password",
		},
		{
			name:     "unknown email",
			repoErr:  fmt.Errorf("wrap: %w", service.ErrNotFound),
			password: "secret-password",
			wantErr:  service.ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			profile:  &models.Profile{ID: touristID, PasswordHash: hash, IsActive: true},
			password: "wrong-password",
			wantErr:  service.ErrInvalidCredentials,
		},
		{
			name:     "disabled",
			profile:  &models.Profile{ID: touristID, PasswordHash: hash, IsActive: false},
			password: "secret-password",
			wantErr:  service.ErrAccountDisabled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newTestAuthService(t)
			ctx := context.Background()

			m.profiles.EXPECT().GetByEmail(ctx, "anna@example.com").Return(tt.profile, tt.repoErr)
			if tt.wantErr == nil {
				m.tokens.EXPECT().Generate(touristID, models.RoleTourist, "anna@example.com").
					Return("token", time.Now().Add(time.Hour), nil)
			}

			result, err := svc.LoginTourist(ctx, "Anna@example.com", tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, result)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "token", result.Token)
		})
	}
}

func TestLoginAdmin_Success(t *testing.T) {
	svc, m := newTestAuthService(t)
	ctx := context.Background()
	hash, err := auth.HashPassword("admin-password")
	require.NoError(t, err)
	admin := &models.AdminUser{ID: uuid.New(), Email: "ops@example.com", PasswordHash: hash, Role: models.RoleSuperAdmin, IsActive: true}

	m.admins.EXPECT().GetByEmail(ctx, "ops@example.com").Return(admin, nil)
	m.admins.EXPECT().TouchLastLogin(ctx, admin.ID).Return(fmt.Errorf("timeout"))
	m.tokens.EXPECT().Generate(admin.ID, models.RoleSuperAdmin, "ops@example.com").
		Return("admin-token", time.Now().Add(time.Hour), nil)

	result, err := svc.LoginAdmin(ctx, "ops@example.com", "admin-password")

	require.NoError(t, err)
	assert.Equal(t, models.RoleSuperAdmin, result.Role)
	assert.Equal(t, admin, result.Admin)
}

func TestLoginAdmin_WrongPassword(t *testing.T) {
	svc, m := newTestAuthService(t)
	ctx := context.Background()
	hash, err := auth.HashPassword("admin-password")
	require.NoError(t, err)

	m.admins.EXPECT().GetByEmail(ctx, "ops@example.com").
		Return(&models.AdminUser{PasswordHash: hash, IsActive: true}, nil)

	_, err = svc.LoginAdmin(ctx, "ops@example.com", "nope")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestCreateAdmin_DefaultRole(t *testing.T) {
	svc, m := newTestAuthService(t)
	ctx := context.Background()
	admin := &models.AdminUser{Email: "new@example.com", FullName: "New Admin"}

	m.admins.EXPECT().GetByEmail(ctx, "new@example.com").Return(nil, service.ErrNotFound)
	m.admins.EXPECT().Create(ctx, admin).Return(nil)

	err := svc.CreateAdmin(ctx, admin, "admin-password")

	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.True(t, admin.IsActive)
	assert.NotEmpty(t, admin.PasswordHash)
}

func TestCreateAdmin_InvalidRole(t *testing.T) {
	svc, _ := newTestAuthService(t)

	err := svc.CreateAdmin(context.Background(), &models.AdminUser{Email: "x@example.com", Role: models.RoleTourist}, "admin-password")
	assert.Error(t, err)
}

func TestCreateAdmin_EmailTaken(t *testing.T) {
	svc, m := newTestAuthService(t)
	ctx := context.Background()

	m.admins.EXPECT().GetByEmail(ctx, "ops@example.com").Return(&models.AdminUser{ID: uuid.New()}, nil)

	err := svc.CreateAdmin(ctx, &models.AdminUser{Email: "ops@example.com"}, "admin-password")
	assert.ErrorIs(t, err, service.ErrEmailTaken)
}

func TestRegisterTourist_MultibytePasswordTooLong(t *testing.T) {
	svc, _ := newTestAuthService(t)

	// 40 символов, 80 байт: больше предела bcrypt
	_, err := svc.RegisterTourist(context.Background(), &models.Profile{Email: "anna@example.com"}, strings.Repeat("é", 40))

	assert.ErrorIs(t, err, service.ErrInvalidPassword)
	assert.ErrorContains(t, err, "72 bytes")
}

func TestCreateAdmin_ShortPassword(t *testing.T) {
	svc, _ := newTestAuthService(t)

	err := svc.CreateAdmin(context.Background(), &models.AdminUser{Email: "ops@example.com"}, "short")

	assert.ErrorIs(t, err, service.ErrInvalidPassword)
}
