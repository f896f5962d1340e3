package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-menu/services"
	"github.com/yeremiapane/restaurant-menu/utils"
)

type DietaryController struct {
	Catalog *services.CatalogService
}

func NewDietaryController(catalog *services.CatalogService) *DietaryController {
	return &DietaryController{Catalog: catalog}
}

type tagRequest struct {
	Name string `json:"name" binding:"required"`
}

func (dc *DietaryController) ListItemRestrictions(c *gin.Context) {
	itemID, ok := pathID(c, "id")
	if !ok {
		utils.RespondError(c, http.StatusNotFound, errors.New("Menu item not found"))
		return
	}

	restrictions, err := dc.Catalog.ItemRestrictions(c.Request.Context(), itemID)
	if err != nil {
		respondWriteError(c, err, "Dietary restriction")
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of dietary restrictions", restrictions)
}

func (dc *DietaryController) TagItem(c *gin.Context) {
	itemID, ok := pathID(c, "id")
	if !ok {
		utils.RespondError(c, http.StatusNotFound, errors.New("Menu item not found"))
		return
	}

	var req tagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	restriction, err := dc.Catalog.TagItem(c.Request.Context(), itemID, req.Name)
	if err != nil {
		respondWriteError(c, err, "Dietary restriction")
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Menu item tagged", restriction)
}

func (dc *DietaryController) UntagItem(c *gin.Context) {
	itemID, ok1 := pathID(c, "id")
	restrictionID, ok2 := pathID(c, "restriction_id")
	if !ok1 || !ok2 {
		utils.RespondError(c, http.StatusNotFound, errors.New("Dietary restriction link not found"))
		return
	}

	if err := dc.Catalog.UntagItem(c.Request.Context(), itemID, restrictionID); err != nil {
		respondWriteError(c, err, "Dietary restriction")
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu item untagged", nil)
}
