package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/tourist_safety_system/internal/models"
)

// @Summary Register a tourist
// @Description Create a tourist profile and return an access token
// @Tags Auth
// @Accept json
// @Produce json
// @Param input body RegisterRequest true "Registration data"
// @Success 201 {object} Response{data=AuthResponse}
// @Failure 400 {object} Response "Invalid request body or validation error"
// @Failure 409 {object} Response "Email already registered"
// @Failure 500 {object} Response "Internal server error"
// @Router /auth/register [post]
func (h *Handler) register(c *gin.Context) {
	var input RegisterRequest
	log := h.logger.WithField("method", "register")
	if !h.bindAndValidate(c, log, &input) {
		return
	}

	result, err := h.authService.RegisterTourist(c.Request.Context(), DTOToProfileModel(input), input.Password)
	if err != nil {
		respondServiceError(c, log, err)
		return
	}
	respondOK(c, http.StatusCreated, ResultToAuthResponse(result))
}

// @Summary Tourist login
// @Tags Auth
// @Accept json
// @Produce json
// @Param input body LoginRequest true "Credentials"
// @Success 200 {object} Response{data=AuthResponse}
// @Failure 400 {object} Response "Invalid request body"
// @Failure 401 {object} Response "Invalid credentials"
// @Router /auth/login [post]
func (h *Handler) login(c *gin.Context) {
	var input LoginRequest
	log := h.logger.WithField("method", "login")
	if !h.bindAndValidate(c, log, &input) {
		return
	}

	result, err := h.authService.LoginTourist(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		respondServiceError(c, log, err)
		return
	}
	respondOK(c, http.StatusOK, ResultToAuthResponse(result))
}

// @Summary Admin login
// @Tags Auth
// @Accept json
// @Produce json
// @Param input body LoginRequest true "Credentials"
// @Success 200 {object} Response{data=AuthResponse}
// @Failure 400 {object} Response "Invalid request body"
// @Failure 401 {object} Response "Invalid credentials"
// @Router /auth/admin/login [post]
func (h *Handler) adminLogin(c *gin.Context) {
	var input LoginRequest
	log := h.logger.WithField("method", "adminLogin")
	if !h.bindAndValidate(c, log, &input) {
		return
	}

	result, err := h.authService.LoginAdmin(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		respondServiceError(c, log, err)
		return
	}
	respondOK(c, http.StatusOK, ResultToAuthResponse(result))
}

// @Summary Current user
// @Description Profile of the tourist or admin owning the token
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response
// @Failure 401 {object} Response "Unauthorized"
// @Failure 404 {object} Response "User not found"
// @Router /auth/me [get]
func (h *Handler) me(c *gin.Context) {
	principal := principalFrom(c)
	log := h.logger.WithField("method", "me").WithField("user_id", principal.ID)

	if principal.Role == models.RoleTourist {
		profile, err := h.touristService.GetProfile(c.Request.Context(), principal.ID)
		if err != nil {
			respondServiceError(c, log, err)
			return
		}
		respondOK(c, http.StatusOK, gin.H{"role": principal.Role, "user": profile})
		return
	}

	admin, err := h.authService.GetAdmin(c.Request.Context(), principal.ID)
	if err != nil {
		respondServiceError(c, log, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"role": principal.Role, "user": admin})
}
