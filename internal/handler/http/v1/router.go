package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/shenikar/tourist_safety_system/internal/models"
)

// RegisterRoutes регистрирует все маршруты API
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	authRequired := AuthMiddleware(h.tokens, h.logger)
	touristOnly := RequireRoles(models.RoleTourist)
	adminOnly := RequireRoles(models.RoleAdmin, models.RoleSuperAdmin)

	// Регистрация и вход
	auth := api.Group("/auth")
	{
		auth.POST("/register", h.register)
		auth.POST("/login", h.login)
		auth.POST("/admin/login", h.adminLogin)
		auth.GET("/me", authRequired, h.me)
	}

	// Приложение туриста
	tourists := api.Group("/tourists", authRequired, touristOnly)
	{
		tourists.GET("/profile", h.getProfile)
		tourists.PUT("/profile", h.updateProfile)
		tourists.POST("/location", h.updateLocation)
		tourists.GET("/location/history", h.locationHistory)
		tourists.GET("/geofences", h.activeGeofences)
	}

	// Алерты: создание и отмена - турист, просмотр - владелец или администратор
	alerts := api.Group("/alerts", authRequired)
	{
		alerts.POST("", touristOnly, h.createAlert)
		alerts.GET("/my", touristOnly, h.myAlerts)
		alerts.GET("/:id", h.getAlert)
		alerts.PATCH("/:id/cancel", touristOnly, h.cancelAlert)
	}

	// Панель диспетчера
	admin := api.Group("/admin", authRequired, adminOnly)
	{
		admin.GET("/dashboard", h.dashboard)
		admin.GET("/tourists", h.listTourists)
		admin.GET("/tourists/locations", h.touristLocations)
		admin.GET("/tourists/nearby", h.nearbyTourists)
		admin.GET("/tourists/:id", h.getTourist)
		admin.GET("/alerts", h.listAlerts)
		admin.PUT("/alerts/:id/status", h.updateAlertStatus)
		admin.GET("/geofences", h.listGeofences)
		admin.POST("/geofences", h.createGeofence)
		admin.GET("/geofences/:id", h.getGeofence)
		admin.PUT("/geofences/:id", h.updateGeofence)
		admin.DELETE("/geofences/:id", h.deleteGeofence)
		admin.POST("/admins", RequireRoles(models.RoleSuperAdmin), h.createAdmin)
	}

	// Нативный websocket, токен передается в query
	api.GET("/ws", h.serveWS)

	// Маршрут Health-check
	api.GET("/system/health", h.healthCheck)
}
