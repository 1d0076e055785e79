package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/tourist_safety_system/internal/auth"
	"github.com/shenikar/tourist_safety_system/internal/models"
	"github.com/sirupsen/logrus"
)

// TokenIssuer выпускает токены доступа
type TokenIssuer interface {
	Generate(userID uuid.UUID, role, email string) (string, time.Time, error)
}

// AuthResult - результат регистрации или входа
type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	Role      string
	Profile   *models.Profile
	Admin     *models.AdminUser
}

// AuthService определяет контракт регистрации и аутентификации
type AuthService interface {
	RegisterTourist(ctx context.Context, profile *models.Profile, password string) (*AuthResult, error)
	LoginTourist(ctx context.Context, email, password string) (*AuthResult, error)
	LoginAdmin(ctx context.Context, email, password string) (*AuthResult, error)
	CreateAdmin(ctx context.Context, admin *models.AdminUser, password string) error
	GetAdmin(ctx context.Context, id uuid.UUID) (*models.AdminUser, error)
}

type authService struct {
	profiles ProfileRepository
	admins   AdminRepository
	tokens   TokenIssuer
	logger   *logrus.Logger
}

func NewAuthService(profiles ProfileRepository, admins AdminRepository, tokens TokenIssuer, logger *logrus.Logger) AuthService {
	return &authService{
		profiles: profiles,
		admins:   admins,
		tokens:   tokens,
		logger:   logger,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// RegisterTourist создает профиль туриста и сразу выдает токен
func (s *authService) RegisterTourist(ctx context.Context, profile *models.Profile, password string) (*AuthResult, error) {
	profile.Email = normalizeEmail(profile.Email)
	log := s.logger.WithFields(logrus.Fields{
		"service": "auth",
		"method":  "RegisterTourist",
		"email":   profile.Email,
	})
	log.Info("Registering tourist")

	if err := auth.ValidatePassword(password); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPassword, err)
	}

	existing, err := s.profiles.GetByEmail(ctx, profile.Email)
	if err != nil && !errors.Is(err, ErrNotFound) {
		log.WithError(err).Error("Failed to check existing profile")
		return nil, fmt.Errorf("service: could not register tourist: %w", err)
	}
	if existing != nil {
		log.Warn("Email already registered")
		return nil, ErrEmailTaken
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("service: could not register tourist: %w", err)
	}
	profile.PasswordHash = hash
	profile.IsActive = true

	if err := s.profiles.Create(ctx, profile); err != nil {
		log.WithError(err).Error("Failed to create profile in repository")
		return nil, fmt.Errorf("service: could not register tourist: %w", err)
	}

	token, expiresAt, err := s.tokens.Generate(profile.ID, models.RoleTourist, profile.Email)
	if err != nil {
		return nil, fmt.Errorf("service: could not issue token: %w", err)
	}

	log.WithField("tourist_id", profile.ID).Info("Tourist registered successfully")
	return &AuthResult{Token: token, ExpiresAt: expiresAt, Role: models.RoleTourist, Profile: profile}, nil
}

// LoginTourist проверяет пароль туриста
func (s *authService) LoginTourist(ctx context.Context, email, password string) (*AuthResult, error) {
	email = normalizeEmail(email)
	log := s.logger.WithFields(logrus.Fields{
		"service": "auth",
		"method":  "LoginTourist",
		"email":   email,
	})

	profile, err := s.profiles.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("Login attempt for unknown email")
			return nil, ErrInvalidCredentials
		}
		log.WithError(err).Error("Failed to get profile by email")
		return nil, fmt.Errorf("service: could not login tourist: %w", err)
	}
	if !auth.CheckPassword(profile.PasswordHash, password) {
		log.Warn("Wrong password")
		return nil, ErrInvalidCredentials
	}
	if !profile.IsActive {
		log.Warn("Login attempt for disabled profile")
		return nil, ErrAccountDisabled
	}

	token, expiresAt, err := s.tokens.Generate(profile.ID, models.RoleTourist, profile.Email)
	if err != nil {
		return nil, fmt.Errorf("service: could not issue token: %w", err)
	}

	log.WithField("tourist_id", profile.ID).Info("Tourist logged in")
	return &AuthResult{Token: token, ExpiresAt: expiresAt, Role: models.RoleTourist, Profile: profile}, nil
}

// LoginAdmin проверяет пароль администратора и фиксирует время входа
func (s *authService) LoginAdmin(ctx context.Context, email, password string) (*AuthResult, error) {
	email = normalizeEmail(email)
	log := s.logger.WithFields(logrus.Fields{
		"service": "auth",
		"method":  "LoginAdmin",
		"email":   email,
	})

	admin, err := s.admins.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("Admin login attempt for unknown email")
			return nil, ErrInvalidCredentials
		}
		log.WithError(err).Error("Failed to get admin by email")
		return nil, fmt.Errorf("service: could not login admin: %w", err)
	}
	if !auth.CheckPassword(admin.PasswordHash, password) {
		log.Warn("Wrong admin password")
		return nil, ErrInvalidCredentials
	}
	if !admin.IsActive {
		log.Warn("Login attempt for disabled admin")
		return nil, ErrAccountDisabled
	}

	if err := s.admins.TouchLastLogin(ctx, admin.ID); err != nil {
		// вход не блокируем, это только аудит
		log.WithError(err).Warn("Failed to update admin last login")
	}

	token, expiresAt, err := s.tokens.Generate(admin.ID, admin.Role, admin.Email)
	if err != nil {
		return nil, fmt.Errorf("service: could not issue token: %w", err)
	}

	log.WithField("admin_id", admin.ID).Info("Admin logged in")
	return &AuthResult{Token: token, ExpiresAt: expiresAt, Role: admin.Role, Admin: admin}, nil
}

// CreateAdmin заводит нового администратора
func (s *authService) CreateAdmin(ctx context.Context, admin *models.AdminUser, password string) error {
	admin.Email = normalizeEmail(admin.Email)
	log := s.logger.WithFields(logrus.Fields{
		"service": "auth",
		"method":  "CreateAdmin",
		"email":   admin.Email,
	})

	if admin.Role == "" {
		admin.Role = models.RoleAdmin
	}
	if !models.IsAdminRole(admin.Role) {
		return fmt.Errorf("service: unknown admin role %q", admin.Role)
	}
	if err := auth.ValidatePassword(password); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPassword, err)
	}

	existing, err := s.admins.GetByEmail(ctx, admin.Email)
	if err != nil && !errors.Is(err, ErrNotFound) {
		log.WithError(err).Error("Failed to check existing admin")
		return fmt.Errorf("service: could not create admin: %w", err)
	}
	if existing != nil {
		return ErrEmailTaken
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("service: could not create admin: %w", err)
	}
	admin.PasswordHash = hash
	admin.IsActive = true

	if err := s.admins.Create(ctx, admin); err != nil {
		log.WithError(err).Error("Failed to create admin in repository")
		return fmt.Errorf("service: could not create admin: %w", err)
	}

	log.WithField("admin_id", admin.ID).Info("Admin created")
	return nil
}

// GetAdmin возвращает администратора по ID
func (s *authService) GetAdmin(ctx context.Context, id uuid.UUID) (*models.AdminUser, error) {
	admin, err := s.admins.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: could not get admin: %w", err)
	}
	return admin, nil
}
