package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/tourist_safety_system/internal/geo"
	"github.com/shenikar/tourist_safety_system/internal/models"
)

// @Summary Dashboard statistics
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=models.DashboardStats}
// @Failure 401 {object} Response "Unauthorized"
// @Failure 403 {object} Response "Forbidden"
// @Failure 500 {object} Response "Internal server error"
// @Router /admin/dashboard [get]
func (h *Handler) dashboard(c *gin.Context) {
	log := h.logger.WithField("method", "dashboard")

	stats, err := h.adminService.Dashboard(c.Request.Context())
	if err != nil {
		respondServiceError(c, log, err)
		return
	}
	respondOK(c, http.StatusOK, stats)
}

// @Summary List tourists
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Number of items per page" default(20)
// @Param search query string false "Name, email or phone"
// @Success 200 {object} Response{data=[]models.Profile}
// @Failure 401 {object} Response "Unauthorized"
// @Failure 403 {object} Response "Forbidden"
// @Router /admin/tourists [get]
func (h *Handler) listTourists(c *gin.Context) {
	log := h.logger.WithField("method", "listTourists")

	profiles, err := h.adminService.ListTourists(c.Request.Context(), queryInt(c, "page", 1), queryInt(c, "pageSize", 20), c.Query("search"))
	if err != nil {
		respondServiceError(c, log, err)
		return
	}
	respondOK(c, http.StatusOK, profiles)
}

// @Summary Tourist detail
// @Description Profile, last known location and recent alerts
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Tourist ID"
// @Success 200 {object} Response{data=service.TouristDetail}
// @Failure 400 {object} Response "Invalid tourist ID"
// @Failure 404 {object} Response "Tourist not found"
// @Router /admin/tourists/{id} [get]
func (h *Handler) getTourist(c *gin.Context) {
	id, ok := parseIDParam(c, "tourist")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "getTourist").WithField("tourist_id", id)

	detail, err := h.adminService.TouristDetail(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, log, err)
		return
	}
	respondOK(c, http.StatusOK, detail)
}

// @Summary Latest tourist locations
// @Description Newest point of every tourist. Stale tourists are included unless within is set.
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param within query int false "Only tourists active within this many minutes" default(0)
// @Success 200 {object} Response{data=[]models.TouristLocation}
// @Router /admin/tourists/locations [get]
func (h *Handler) touristLocations(c *gin.Context) {
	log := h.logger.WithField("method", "touristLocations")

	locations, err := h.adminService.LatestLocations(c.Request.Context(), queryInt(c, "within", 0))
	if err != nil {
		respondServiceError(c, log, err)
		return
	}
	respondOK(c, http.StatusOK, locations)
}

// @Summary Tourists near a point
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param lat query number true "Latitude"
// @Param lon query number true "Longitude"
// @Param radius query number false "Radius in meters" default(1000)
// @Success 200 {object} Response{data=[]models.NearbyTourist}
// @Failure 400 {object} Response "Invalid coordinates"
// @Router /admin/tourists/nearby [get]
func (h *Handler) nearbyTourists(c *gin.Context) {
	log := h.logger.WithField("method", "nearbyTourists")

	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lon, errLon := strconv.ParseFloat(c.Query("lon"), 64)
	if errLat != nil || errLon != nil || !geo.ValidCoordinates(lat, lon) {
		respondError(c, http.StatusBadRequest, "invalid coordinates")
		return
	}
	radius, err := strconv.ParseFloat(c.DefaultQuery("radius", "1000"), 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid radius")
		return
	}

	nearby, err := h.adminService.NearbyTourists(c.Request.Context(), lat, lon, radius)
	if err != nil {
		respondServiceError(c, log, err)
		return
	}
	respondOK(c, http.StatusOK, nearby)
}

// @Summary Create an admin user
// @Description Only super admins can add dispatchers
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param input body CreateAdminRequest true "Admin"
// @Success 201 {object} Response{data=models.AdminUser}
// @Failure 400 {object} Response "Invalid request body or validation error"
// @Failure 403 {object} Response "Forbidden"
// @Failure 409 {object} Response "Email already registered"
// @Router /admin/admins [post]
func (h *Handler) createAdmin(c *gin.Context) {
	log := h.logger.WithField("method", "createAdmin").WithField("by", principalFrom(c).ID)

	var input CreateAdminRequest
	if !h.bindAndValidate(c, log, &input) {
		return
	}

	admin := &models.AdminUser{Email: input.Email, FullName: input.FullName, Role: input.Role}
	if err := h.authService.CreateAdmin(c.Request.Context(), admin, input.Password); err != nil {
		respondServiceError(c, log, err)
		return
	}
	respondOK(c, http.StatusCreated, admin)
}
