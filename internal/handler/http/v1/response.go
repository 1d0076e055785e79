package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/tourist_safety_system/internal/service"
	"github.com/sirupsen/logrus"
)

// Response - общий конверт ответа API
// @Description Общий конверт ответа API
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func respondOK(c *gin.Context, status int, data any) {
	c.JSON(status, Response{Success: true, Data: data})
}

func respondError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, Response{Success: false, Message: message})
}

// respondServiceError переводит ошибку сервиса в HTTP-статус
func respondServiceError(c *gin.Context, log *logrus.Entry, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		log.WithError(err).Warn("Resource not found")
		respondError(c, http.StatusNotFound, "resource not found")
	case errors.Is(err, service.ErrForbidden):
		log.WithError(err).Warn("Access denied")
		respondError(c, http.StatusForbidden, "access denied")
	case errors.Is(err, service.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, "invalid email or password")
	case errors.Is(err, service.ErrAccountDisabled):
		respondError(c, http.StatusUnauthorized, "account is disabled")
	case errors.Is(err, service.ErrEmailTaken):
		respondError(c, http.StatusConflict, "email already registered")
	case errors.Is(err, service.ErrInvalidTransition):
		log.WithError(err).Warn("Rejected status transition")
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidPassword):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidGeofence):
		log.WithError(err).Warn("Rejected geofence")
		respondError(c, http.StatusBadRequest, err.Error())
	default:
		log.WithError(err).Error("Internal error")
		respondError(c, http.StatusInternalServerError, "internal server error")
	}
}
