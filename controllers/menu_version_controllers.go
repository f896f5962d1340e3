package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-menu/models"
	"github.com/yeremiapane/restaurant-menu/services"
	"github.com/yeremiapane/restaurant-menu/utils"
)

// MenuVersionController reuses the plain resource for reads and deletes;
// writes go through VersionService.
type MenuVersionController struct {
	*ResourceController[models.MenuVersion, *models.MenuVersion]
	Versions *services.VersionService
}

func NewMenuVersionController(versions *services.VersionService) *MenuVersionController {
	return &MenuVersionController{
		ResourceController: NewResourceController[models.MenuVersion](versions.DB, "Menu version"),
		Versions:           versions,
	}
}

type menuVersionRequest struct {
	MenuID        *uint   `json:"menu_id"`
	VersionNumber *int    `json:"version_number"`
	CreatedBy     *string `json:"created_by"`
	Notes         *string `json:"notes"`
	IsActive      *bool   `json:"is_active"`
}

func (req menuVersionRequest) apply(v *models.MenuVersion) {
	if req.MenuID != nil {
		v.MenuID = *req.MenuID
	}
	if req.VersionNumber != nil {
		v.VersionNumber = *req.VersionNumber
	}
	if req.CreatedBy != nil {
		v.CreatedBy = *req.CreatedBy
	}
	if req.Notes != nil {
		v.Notes = *req.Notes
	}
	if req.IsActive != nil {
		v.IsActive = *req.IsActive
	}
}

func (mc *MenuVersionController) Register(group *gin.RouterGroup) {
	group.GET("", mc.List)
	group.POST("", mc.Create)
	group.GET("/:id", mc.Get)
	group.PATCH("/:id", mc.Update)
	group.PUT("/:id", mc.Update)
	group.DELETE("/:id", mc.Delete)
	group.POST("/:id/activate", mc.Activate)
	group.POST("/:id/deactivate", mc.Deactivate)
}

// Create stores a new version. New versions are active unless the body says
// otherwise, and a missing version number is assigned as the next one.
func (mc *MenuVersionController) Create(c *gin.Context) {
	var req menuVersionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.MenuID == nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("menu_id is required"))
		return
	}
	if req.VersionNumber != nil && *req.VersionNumber < 1 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("version_number must be a positive integer"))
		return
	}

	version := models.MenuVersion{IsActive: true}
	req.apply(&version)

	if err := mc.Versions.Save(c.Request.Context(), &version); err != nil {
		respondWriteError(c, err, mc.Label)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Menu version created", version)
}

func (mc *MenuVersionController) Update(c *gin.Context) {
	version, ok := mc.load(c)
	if !ok {
		return
	}

	var req menuVersionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.VersionNumber != nil && *req.VersionNumber < 1 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("version_number must be a positive integer"))
		return
	}
	req.apply(version)

	if err := mc.Versions.Save(c.Request.Context(), version); err != nil {
		respondWriteError(c, err, mc.Label)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu version updated", version)
}

func (mc *MenuVersionController) Activate(c *gin.Context) {
	mc.toggle(c, mc.Versions.Activate, "Menu version activated")
}

func (mc *MenuVersionController) Deactivate(c *gin.Context) {
	mc.toggle(c, mc.Versions.Deactivate, "Menu version deactivated")
}

func (mc *MenuVersionController) toggle(c *gin.Context, fn func(ctx context.Context, id uint) (*models.MenuVersion, error), message string) {
	id, ok := pathID(c, "id")
	if !ok {
		mc.notFound(c)
		return
	}

	version, err := fn(c.Request.Context(), id)
	if err != nil {
		respondWriteError(c, err, mc.Label)
		return
	}
	utils.RespondJSON(c, http.StatusOK, message, version)
}
