package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary Get own profile
// @Tags Tourists
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=models.Profile}
// @Failure 401 {object} Response "Unauthorized"
// @Failure 404 {object} Response "Profile not found"
// @Router /tourists/profile [get]
func (h *Handler) getProfile(c *gin.Context) {
	principal := principalFrom(c)
	log := h.logger.WithField("method", "getProfile").WithField("tourist_id", principal.ID)

	profile, err := h.touristService.GetProfile(c.Request.Context(), principal.ID)
	if err != nil {
		respondServiceError(c, log, err)
		return
	}
	respondOK(c, http.StatusOK, profile)
}

// @Summary Update own profile
// @Tags Tourists
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param input body UpdateProfileRequest true "Profile fields"
// @Success 200 {object} Response{data=models.Profile}
// @Failure 400 {object} Response "Invalid request body or validation error"
// @Failure 401 {object} Response "Unauthorized"
// @Failure 404 {object} Response "Profile not found"
// @Router /tourists/profile [put]
func (h *Handler) updateProfile(c *gin.Context) {
	principal := principalFrom(c)
	log := h.logger.WithField("method", "updateProfile").WithField("tourist_id", principal.ID)

	var input UpdateProfileRequest
	if !h.bindAndValidate(c, log, &input) {
		return
	}

	model := UpdateDTOToProfileModel(input)
	model.ID = principal.ID
	profile, err := h.touristService.UpdateProfile(c.Request.Context(), model)
	if err != nil {
		respondServiceError(c, log, err)
		return
	}
	respondOK(c, http.StatusOK, profile)
}

// @Summary Report current location
// @Description Store a track point, evaluate geofences and notify dispatchers
// @Tags Tourists
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param input body LocationRequest true "Coordinates"
// @Success 201 {object} Response{data=LocationUpdateResponse}
// @Failure 400 {object} Response "Invalid request body or validation error"
// @Failure 401 {object} Response "Unauthorized"
// @Failure 500 {object} Response "Internal server error"
// @Router /tourists/location [post]
func (h *Handler) updateLocation(c *gin.Context) {
	principal := principalFrom(c)
	log := h.logger.WithField("method", "updateLocation").WithField("tourist_id", principal.ID)

	var input LocationRequest
	if !h.bindAndValidate(c, log, &input) {
		return
	}

	model := DTOToLocationModel(input)
	model.TouristID = principal.ID
	result, err := h.touristService.UpdateLocation(c.Request.Context(), model)
	if err != nil {
		respondServiceError(c, log, err)
		return
	}
	respondOK(c, http.StatusCreated, ResultToLocationResponse(result))
}

// @Summary Own location history
// @Tags Tourists
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Number of points" default(50)
// @Success 200 {object} Response{data=[]models.TouristLocation}
// @Failure 401 {object} Response "Unauthorized"
// @Router /tourists/location/history [get]
func (h *Handler) locationHistory(c *gin.Context) {
	principal := principalFrom(c)
	log := h.logger.WithField("method", "locationHistory").WithField("tourist_id", principal.ID)

	history, err := h.touristService.LocationHistory(c.Request.Context(), principal.ID, queryInt(c, "limit", 50))
	if err != nil {
		respondServiceError(c, log, err)
		return
	}
	respondOK(c, http.StatusOK, history)
}

// @Summary Active geofences for the map
// @Tags Tourists
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]GeofenceResponse}
// @Failure 401 {object} Response "Unauthorized"
// @Router /tourists/geofences [get]
func (h *Handler) activeGeofences(c *gin.Context) {
	log := h.logger.WithField("method", "activeGeofences")

	zones, err := h.geofenceService.ListGeofences(c.Request.Context(), true)
	if err != nil {
		respondServiceError(c, log, err)
		return
	}
	respondOK(c, http.StatusOK, ModelsToGeofenceResponses(zones))
}
