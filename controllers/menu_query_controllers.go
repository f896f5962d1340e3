package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-menu/services"
	"github.com/yeremiapane/restaurant-menu/utils"
)

type MenuQueryController struct {
	Query *services.MenuQueryService
}

func NewMenuQueryController(query *services.MenuQueryService) *MenuQueryController {
	return &MenuQueryController{Query: query}
}

// GetRestaurantSections lists the sections of every version of every menu.
func (mc *MenuQueryController) GetRestaurantSections(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}

	sections, err := mc.Query.SectionsForRestaurant(c.Request.Context(), id)
	if err != nil {
		mc.respondLookupError(c, err, "Restaurant not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"sections": sections})
}

// GetActiveSections lists the sections of the active versions only.
func (mc *MenuQueryController) GetActiveSections(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}

	sections, err := mc.Query.ActiveSectionsForRestaurant(c.Request.Context(), id)
	if err != nil {
		mc.respondLookupError(c, err, "Restaurant not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"sections": sections})
}

func (mc *MenuQueryController) GetMenuVersions(c *gin.Context) {
	restaurantID, ok1 := pathID(c, "id")
	menuID, ok2 := pathID(c, "menu_id")
	if !ok1 || !ok2 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant or Menu not found"})
		return
	}

	versions, err := mc.Query.VersionsForMenu(c.Request.Context(), restaurantID, menuID)
	if err != nil {
		mc.respondLookupError(c, err, "Restaurant or Menu not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"versions": versions})
}

// GetMenuItems returns the items of one version, the active one by default.
func (mc *MenuQueryController) GetMenuItems(c *gin.Context) {
	restaurantID, menuID, ok := menuPath(c)
	if !ok {
		return
	}
	version, err := versionParam(c)
	if err != nil {
		utils.RespondFailure(c, err, "Failed to retrieve menu items")
		return
	}

	items, err := mc.Query.ItemsByVersion(c.Request.Context(), restaurantID, menuID, version)
	if err != nil {
		utils.RespondFailure(c, err, "Failed to retrieve menu items")
		return
	}
	utils.RespondSuccess(c, items)
}

// GetDietaryItems is GetMenuItems narrowed to items carrying any of the
// comma separated restrictions.
func (mc *MenuQueryController) GetDietaryItems(c *gin.Context) {
	restaurantID, menuID, ok := menuPath(c)
	if !ok {
		return
	}
	version, err := versionParam(c)
	if err != nil {
		utils.RespondFailure(c, err, "Failed to retrieve filtered menu items")
		return
	}
	names := splitRestrictions(c.Query("restrictions"))

	items, err := mc.Query.ItemsByDietaryRestrictions(c.Request.Context(), restaurantID, menuID, version, names)
	if err != nil {
		utils.RespondFailure(c, err, "Failed to retrieve filtered menu items")
		return
	}
	utils.RespondSuccess(c, items)
}

func (mc *MenuQueryController) respondLookupError(c *gin.Context, err error, message string) {
	if utils.IsNotFoundError(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": message})
		return
	}
	utils.ErrorLogger.WithError(err).WithField("path", c.Request.URL.Path).Error("menu query failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

func menuPath(c *gin.Context) (uint, uint, bool) {
	restaurantID, ok := pathID(c, "id")
	if !ok {
		utils.RespondFailure(c, utils.NewNotFoundError("Restaurant not found"), "")
		return 0, 0, false
	}
	menuID, ok := pathID(c, "menu_id")
	if !ok {
		utils.RespondFailure(c, utils.NewNotFoundError("Menu not found"), "")
		return 0, 0, false
	}
	return restaurantID, menuID, true
}
