package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary List geofences
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param active query bool false "Only active zones"
// @Success 200 {object} Response{data=[]GeofenceResponse}
// @Router /admin/geofences [get]
func (h *Handler) listGeofences(c *gin.Context) {
	log := h.logger.WithField("method", "listGeofences")

	zones, err := h.geofenceService.ListGeofences(c.Request.Context(), c.Query("active") == "true")
	if err != nil {
		respondServiceError(c, log, err)
		return
	}
	respondOK(c, http.StatusOK, ModelsToGeofenceResponses(zones))
}

// @Summary Get geofence by ID
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Geofence ID"
// @Success 200 {object} Response{data=GeofenceResponse}
// @Failure 400 {object} Response "Invalid geofence ID"
// @Failure 404 {object} Response "Geofence not found"
// @Router /admin/geofences/{id} [get]
func (h *Handler) getGeofence(c *gin.Context) {
	id, ok := parseIDParam(c, "geofence")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "getGeofence").WithField("geofence_id", id)

	zone, err := h.geofenceService.GetGeofence(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, log, err)
		return
	}
	respondOK(c, http.StatusOK, ModelToGeofenceResponse(zone))
}

// @Summary Create a geofence
// @Description Circle needs center and radius, polygon needs at least 4 [lon,lat] points
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param input body GeofenceRequest true "Geofence"
// @Success 201 {object} Response{data=GeofenceResponse}
// @Failure 400 {object} Response "Invalid geofence"
// @Router /admin/geofences [post]
func (h *Handler) createGeofence(c *gin.Context) {
	principal := principalFrom(c)
	log := h.logger.WithField("method", "createGeofence").WithField("admin_id", principal.ID)

	var input GeofenceRequest
	if !h.bindAndValidate(c, log, &input) {
		return
	}

	model := DTOToGeofenceModel(input)
	model.CreatedBy = &principal.ID
	if err := h.geofenceService.CreateGeofence(c.Request.Context(), model); err != nil {
		respondServiceError(c, log, err)
		return
	}
	respondOK(c, http.StatusCreated, ModelToGeofenceResponse(model))
}

// @Summary Update a geofence
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Geofence ID"
// @Param input body GeofenceRequest true "Geofence"
// @Success 200 {object} Response{data=GeofenceResponse}
// @Failure 400 {object} Response "Invalid geofence"
// @Failure 404 {object} Response "Geofence not found"
// @Router /admin/geofences/{id} [put]
func (h *Handler) updateGeofence(c *gin.Context) {
	id, ok := parseIDParam(c, "geofence")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "updateGeofence").WithField("geofence_id", id)

	var input GeofenceRequest
	if !h.bindAndValidate(c, log, &input) {
		return
	}

	model := DTOToGeofenceModel(input)
	model.ID = id
	if err := h.geofenceService.UpdateGeofence(c.Request.Context(), model); err != nil {
		respondServiceError(c, log, err)
		return
	}
	respondOK(c, http.StatusOK, ModelToGeofenceResponse(model))
}

// @Summary Deactivate a geofence
// @Description The zone is kept for alert history and stops matching locations
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Geofence ID"
// @Success 204 "No Content"
// @Failure 404 {object} Response "Geofence not found"
// @Router /admin/geofences/{id} [delete]
func (h *Handler) deleteGeofence(c *gin.Context) {
	id, ok := parseIDParam(c, "geofence")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "deleteGeofence").WithField("geofence_id", id)

	if err := h.geofenceService.DeactivateGeofence(c.Request.Context(), id); err != nil {
		respondServiceError(c, log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
