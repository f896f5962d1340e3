package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-menu/services"
	"github.com/yeremiapane/restaurant-menu/utils"
)

const defaultTopN = 3

type AnalyticsController struct {
	Analytics *services.AnalyticsService
}

func NewAnalyticsController(analytics *services.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{Analytics: analytics}
}

// GetPriceAnalytics ranks restaurants by average item price.
func (ac *AnalyticsController) GetPriceAnalytics(c *gin.Context) {
	n := defaultTopN
	if raw := c.Query("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			utils.RespondFailure(c, utils.NewValidationError("Invalid n parameter"), "")
			return
		}
		n = parsed
	}

	result, err := ac.Analytics.PriceAnalytics(c.Request.Context(), n)
	if err != nil {
		utils.RespondFailure(c, err, "Failed to compute price analytics")
		return
	}
	utils.RespondSuccess(c, result)
}

func (ac *AnalyticsController) GetRestaurantAnalytics(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		utils.RespondFailure(c, utils.NewNotFoundError("Restaurant not found"), "")
		return
	}

	result, err := ac.Analytics.RestaurantAnalytics(c.Request.Context(), id)
	if err != nil {
		utils.RespondFailure(c, err, "Failed to compute restaurant analytics")
		return
	}
	utils.RespondSuccess(c, result)
}
