package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shenikar/tourist_safety_system/internal/config"
	"github.com/shenikar/tourist_safety_system/internal/realtime"
	"github.com/shenikar/tourist_safety_system/internal/service"
	"github.com/sirupsen/logrus"
)

// Services - набор сервисов, которые обслуживает HTTP-слой
type Services struct {
	Auth     service.AuthService
	Tourist  service.TouristService
	Alert    service.AlertService
	Admin    service.AdminService
	Geofence service.GeofenceService
}

type Handler struct {
	authService     service.AuthService
	touristService  service.TouristService
	alertService    service.AlertService
	adminService    service.AdminService
	geofenceService service.GeofenceService
	tokens          realtime.TokenParser
	hub             *realtime.Hub
	logger          *logrus.Logger
	validate        *validator.Validate
	cfg             *config.Config
}

func NewHandler(services Services, tokens realtime.TokenParser, hub *realtime.Hub, logger *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{
		authService:     services.Auth,
		touristService:  services.Tourist,
		alertService:    services.Alert,
		adminService:    services.Admin,
		geofenceService: services.Geofence,
		tokens:          tokens,
		hub:             hub,
		logger:          logger,
		validate:        validator.New(),
		cfg:             cfg,
	}
}

// bindAndValidate читает JSON тела и проверяет теги validate
func (h *Handler) bindAndValidate(c *gin.Context, log *logrus.Entry, input any) bool {
	if err := c.ShouldBindJSON(input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		respondError(c, http.StatusBadRequest, "invalid request body")
		return false
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		respondError(c, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid "+name+" ID")
		return uuid.Nil, false
	}
	return id, true
}

func queryInt(c *gin.Context, key string, def int) int {
	v, err := strconv.Atoi(c.DefaultQuery(key, strconv.Itoa(def)))
	if err != nil {
		return def
	}
	return v
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Produce json
// @Success 200 {object} Response{data=HealthResponse}
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	respondOK(c, http.StatusOK, HealthResponse{Status: "ok"})
}
