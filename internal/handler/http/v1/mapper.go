package v1

import (
	"time"

	"github.com/shenikar/tourist_safety_system/internal/models"
	"github.com/shenikar/tourist_safety_system/internal/service"
)

// DTOToProfileModel преобразует запрос регистрации в профиль
func DTOToProfileModel(dto RegisterRequest) *models.Profile {
	return &models.Profile{
		Email:                 dto.Email,
		FullName:              dto.FullName,
		Phone:                 dto.Phone,
		Nationality:           dto.Nationality,
		PassportNumber:        dto.PassportNumber,
		EmergencyContactName:  dto.EmergencyContactName,
		EmergencyContactPhone: dto.EmergencyContactPhone,
	}
}

func UpdateDTOToProfileModel(dto UpdateProfileRequest) *models.Profile {
	return &models.Profile{
		FullName:              dto.FullName,
		Phone:                 dto.Phone,
		Nationality:           dto.Nationality,
		PassportNumber:        dto.PassportNumber,
		EmergencyContactName:  dto.EmergencyContactName,
		EmergencyContactPhone: dto.EmergencyContactPhone,
	}
}

// ResultToAuthResponse собирает ответ входа, user - профиль туриста или администратор
func ResultToAuthResponse(result *service.AuthResult) *AuthResponse {
	resp := &AuthResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		Role:      result.Role,
	}
	if result.Admin != nil {
		resp.User = result.Admin
	} else {
		resp.User = result.Profile
	}
	return resp
}

func DTOToLocationModel(dto LocationRequest) *models.TouristLocation {
	location := &models.TouristLocation{
		Latitude:       *dto.Latitude,
		Longitude:      *dto.Longitude,
		AccuracyMeters: dto.AccuracyMeters,
		RecordedAt:     time.Now().UTC(),
	}
	if dto.RecordedAt != nil && !dto.RecordedAt.IsZero() {
		location.RecordedAt = dto.RecordedAt.UTC()
	}
	return location
}

func ResultToLocationResponse(result *service.LocationUpdateResult) *LocationUpdateResponse {
	return &LocationUpdateResponse{
		Location: result.Location,
		Zones:    ModelsToGeofenceResponses(result.Zones),
		Alert:    result.Alert,
	}
}

func DTOToAlertModel(dto CreateAlertRequest) *models.EmergencyAlert {
	return &models.EmergencyAlert{
		AlertType: dto.AlertType,
		Priority:  dto.Priority,
		Message:   dto.Message,
		Latitude:  *dto.Latitude,
		Longitude: *dto.Longitude,
	}
}

// DTOToGeofenceModel преобразует запрос в зону; без is_active зона активна
func DTOToGeofenceModel(dto GeofenceRequest) *models.Geofence {
	geofence := &models.Geofence{
		Name:         dto.Name,
		Description:  dto.Description,
		ZoneType:     dto.ZoneType,
		Shape:        dto.Shape,
		CenterLat:    dto.CenterLat,
		CenterLon:    dto.CenterLon,
		RadiusMeters: dto.RadiusMeters,
		Polygon:      dto.Polygon,
		IsActive:     true,
	}
	if dto.IsActive != nil {
		geofence.IsActive = *dto.IsActive
	}
	return geofence
}

func ModelToGeofenceResponse(model *models.Geofence) *GeofenceResponse {
	return &GeofenceResponse{
		ID:           model.ID,
		Name:         model.Name,
		Description:  model.Description,
		ZoneType:     model.ZoneType,
		Shape:        model.Shape,
		CenterLat:    model.CenterLat,
		CenterLon:    model.CenterLon,
		RadiusMeters: model.RadiusMeters,
		Polygon:      model.Polygon,
		IsActive:     model.IsActive,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}
}

// ModelsToGeofenceResponses преобразует слайс моделей в слайс DTO
func ModelsToGeofenceResponses(models []*models.Geofence) []*GeofenceResponse {
	responses := make([]*GeofenceResponse, len(models))
	for i, model := range models {
		responses[i] = ModelToGeofenceResponse(model)
	}
	return responses
}
