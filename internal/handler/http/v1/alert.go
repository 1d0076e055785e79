package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shenikar/tourist_safety_system/internal/models"
)

// @Summary Raise an emergency alert
// @Description SOS from the tourist app. Type defaults to sos, which is critical priority.
// @Tags Alerts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param input body CreateAlertRequest true "Alert"
// @Success 201 {object} Response{data=models.EmergencyAlert}
// @Failure 400 {object} Response "Invalid request body or validation error"
// @Failure 401 {object} Response "Unauthorized"
// @Failure 403 {object} Response "Only tourists can raise alerts"
// @Failure 500 {object} Response "Internal server error"
// @Router /alerts [post]
func (h *Handler) createAlert(c *gin.Context) {
	principal := principalFrom(c)
	log := h.logger.WithField("method", "createAlert").WithField("tourist_id", principal.ID)

	var input CreateAlertRequest
	if !h.bindAndValidate(c, log, &input) {
		return
	}

	alert := DTOToAlertModel(input)
	alert.TouristID = principal.ID
	if err := h.alertService.CreateAlert(c.Request.Context(), alert); err != nil {
		respondServiceError(c, log, err)
		return
	}
	respondOK(c, http.StatusCreated, alert)
}

// @Summary Own alerts
// @Tags Alerts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]models.EmergencyAlert}
// @Failure 401 {object} Response "Unauthorized"
// @Router /alerts/my [get]
func (h *Handler) myAlerts(c *gin.Context) {
	principal := principalFrom(c)
	log := h.logger.WithField("method", "myAlerts").WithField("tourist_id", principal.ID)

	alerts, err := h.alertService.ListTouristAlerts(c.Request.Context(), principal.ID)
	if err != nil {
		respondServiceError(c, log, err)
		return
	}
	respondOK(c, http.StatusOK, alerts)
}

// @Summary Get alert by ID
// @Description Available to the owning tourist and to admins
// @Tags Alerts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Alert ID"
// @Success 200 {object} Response{data=models.EmergencyAlert}
// @Failure 400 {object} Response "Invalid alert ID"
// @Failure 401 {object} Response "Unauthorized"
// @Failure 403 {object} Response "Foreign alert"
// @Failure 404 {object} Response "Alert not found"
// @Router /alerts/{id} [get]
func (h *Handler) getAlert(c *gin.Context) {
	id, ok := parseIDParam(c, "alert")
	if !ok {
		return
	}
	principal := principalFrom(c)
	log := h.logger.WithField("method", "getAlert").WithField("alert_id", id)

	alert, err := h.alertService.GetAlert(c.Request.Context(), id, principal)
	if err != nil {
		respondServiceError(c, log, err)
		return
	}
	respondOK(c, http.StatusOK, alert)
}

// @Summary Cancel own alert
// @Tags Alerts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Alert ID"
// @Success 200 {object} Response{data=models.EmergencyAlert}
// @Failure 400 {object} Response "Alert can no longer be cancelled"
// @Failure 401 {object} Response "Unauthorized"
// @Failure 403 {object} Response "Foreign alert"
// @Failure 404 {object} Response "Alert not found"
// @Router /alerts/{id}/cancel [patch]
func (h *Handler) cancelAlert(c *gin.Context) {
	id, ok := parseIDParam(c, "alert")
	if !ok {
		return
	}
	principal := principalFrom(c)
	log := h.logger.WithField("method", "cancelAlert").WithField("alert_id", id)

	alert, err := h.alertService.CancelAlert(c.Request.Context(), id, principal.ID)
	if err != nil {
		respondServiceError(c, log, err)
		return
	}
	respondOK(c, http.StatusOK, alert)
}

// @Summary List alerts
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter"
// @Param priority query string false "Priority filter"
// @Param touristId query string false "Tourist filter"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Number of items per page" default(20)
// @Success 200 {object} Response{data=[]models.EmergencyAlert}
// @Failure 400 {object} Response "Invalid tourist ID"
// @Failure 401 {object} Response "Unauthorized"
// @Failure 403 {object} Response "Forbidden"
// @Router /admin/alerts [get]
func (h *Handler) listAlerts(c *gin.Context) {
	log := h.logger.WithField("method", "listAlerts")

	filter := models.AlertFilter{
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
		Page:     queryInt(c, "page", 1),
		PageSize: queryInt(c, "pageSize", 20),
	}
	if raw := c.Query("touristId"); raw != "" {
		touristID, err := uuid.Parse(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid tourist ID")
			return
		}
		filter.TouristID = &touristID
	}

	alerts, err := h.alertService.ListAlerts(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, log, err)
		return
	}
	respondOK(c, http.StatusOK, alerts)
}

// @Summary Update alert status
// @Description Dispatcher moves the alert through acknowledged, in_progress, resolved or false_alarm
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Alert ID"
// @Param input body UpdateAlertStatusRequest true "New status"
// @Success 200 {object} Response{data=models.EmergencyAlert}
// @Failure 400 {object} Response "Invalid transition or request body"
// @Failure 401 {object} Response "Unauthorized"
// @Failure 403 {object} Response "Forbidden"
// @Failure 404 {object} Response "Alert not found"
// @Router /admin/alerts/{id}/status [put]
func (h *Handler) updateAlertStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "alert")
	if !ok {
		return
	}
	principal := principalFrom(c)
	log := h.logger.WithField("method", "updateAlertStatus").WithField("alert_id", id)

	var input UpdateAlertStatusRequest
	if !h.bindAndValidate(c, log, &input) {
		return
	}

	alert, err := h.alertService.UpdateAlertStatus(c.Request.Context(), id, principal.ID, input.Status, input.ResolutionNotes)
	if err != nil {
		respondServiceError(c, log, err)
		return
	}
	respondOK(c, http.StatusOK, alert)
}
