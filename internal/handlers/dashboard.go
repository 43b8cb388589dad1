package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/studyhub-dev/studyhub/internal/logging"
	"github.com/studyhub-dev/studyhub/internal/repositories"
	"github.com/studyhub-dev/studyhub/internal/services"
	"github.com/studyhub-dev/studyhub/internal/types"
	"github.com/studyhub-dev/studyhub/internal/utils"
	"github.com/studyhub-dev/studyhub/internal/weather"
)

type DashboardResponse struct {
	Summary *services.DashboardSummary `json:"summary"`
	Weather *weather.Summary           `json:"weather,omitempty"`
}

type DashboardHandler struct {
	dashboard *services.DashboardService
	users     repositories.UserRepository
	weather   *weather.Client
}

func NewDashboardHandler(dashboard *services.DashboardService, users repositories.UserRepository, weatherClient *weather.Client) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, users: users, weather: weatherClient}
}

func (h *DashboardHandler) Get(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var settings types.UserSettings

	if user, err := h.users.ByID(userID); err == nil && user != nil && len(user.Settings) > 0 {
		_ = json.Unmarshal(user.Settings, &settings)
	}

	summary, err := h.dashboard.Summary(userID, settings.UpcomingDays, time.Now().UTC())

	if err != nil {
		respondServiceError(ctx, err, "Dashboard not found")
		return
	}

	response := DashboardResponse{Summary: summary}

	// Weather is decorative; failures never fail the dashboard.
	city := ctx.Query("city")
	if city == "" {
		city = settings.City
	}

	if h.weather != nil && city != "" {
		current, err := h.weather.CurrentWeather(city)
		if err != nil {
			logging.Logger.WithError(err).Debug("weather lookup failed")
		} else {
			response.Weather = current
		}
	}

	ctx.JSON(http.StatusOK, response)
}
