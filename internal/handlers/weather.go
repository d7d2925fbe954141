// internal/handlers/weather.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/agrohaat/agrohaat-backend/internal/i18n"
	"github.com/agrohaat/agrohaat-backend/internal/services"
	"github.com/agrohaat/agrohaat-backend/internal/utils"
)

type WeatherHandler struct {
	weatherService *services.WeatherService
}

func NewWeatherHandler(weatherService *services.WeatherService) *WeatherHandler {
	return &WeatherHandler{
		weatherService: weatherService,
	}
}

// GET /weather?location=
func (h *WeatherHandler) GetForecast(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	location := c.Query("location")
	if location == "" {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationRequired, "location"), nil)
		return
	}

	report, err := h.weatherService.GetForecast(location)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, report)
}
