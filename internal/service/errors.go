package service

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidTransition  = errors.New("invalid alert status transition")
	ErrInvalidGeofence    = errors.New("invalid geofence")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrAlertAlreadyOpen   = errors.New("open alert already exists")
)
