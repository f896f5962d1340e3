package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-menu/models"
	"github.com/yeremiapane/restaurant-menu/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ResourceController serves list/create/retrieve/update/delete for one model.
type ResourceController[T any, PT interface {
	*T
	models.Entity
}] struct {
	DB    *gorm.DB
	Label string
}

func NewResourceController[T any, PT interface {
	*T
	models.Entity
}](db *gorm.DB, label string) *ResourceController[T, PT] {
	return &ResourceController[T, PT]{DB: db, Label: label}
}

// Register mounts the five routes under group.
func (rc *ResourceController[T, PT]) Register(group *gin.RouterGroup) {
	group.GET("", rc.List)
	group.POST("", rc.Create)
	group.GET("/:id", rc.Get)
	group.PATCH("/:id", rc.Update)
	group.PUT("/:id", rc.Update)
	group.DELETE("/:id", rc.Delete)
}

func (rc *ResourceController[T, PT]) List(c *gin.Context) {
	items := make([]T, 0)
	if err := rc.DB.WithContext(c.Request.Context()).Order("id").Find(&items).Error; err != nil {
		utils.ErrorLogger.WithError(err).WithField("resource", rc.Label).Error("list failed")
		utils.RespondError(c, http.StatusInternalServerError, errors.New("failed to list "+rc.Label))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of "+rc.Label, items)
}

func (rc *ResourceController[T, PT]) Create(c *gin.Context) {
	item := PT(new(T))
	if err := c.ShouldBindJSON(item); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if item.GetID() != 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("id is assigned by the server"))
		return
	}

	if err := rc.DB.WithContext(c.Request.Context()).Omit(clause.Associations).Create(item).Error; err != nil {
		respondWriteError(c, err, rc.Label)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, rc.Label+" created", item)
}

func (rc *ResourceController[T, PT]) Get(c *gin.Context) {
	item, ok := rc.load(c)
	if !ok {
		return
	}
	utils.RespondJSON(c, http.StatusOK, rc.Label+" detail", item)
}

// Update overlays the JSON body on the stored row.
func (rc *ResourceController[T, PT]) Update(c *gin.Context) {
	item, ok := rc.load(c)
	if !ok {
		return
	}
	id := item.GetID()

	if err := c.ShouldBindJSON(item); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if item.GetID() != id {
		utils.RespondError(c, http.StatusBadRequest, errors.New("id cannot be changed"))
		return
	}

	if err := rc.DB.WithContext(c.Request.Context()).Omit(clause.Associations).Save(item).Error; err != nil {
		respondWriteError(c, err, rc.Label)
		return
	}
	utils.RespondJSON(c, http.StatusOK, rc.Label+" updated", item)
}

// Delete removes the row; children go with it through ON DELETE CASCADE.
func (rc *ResourceController[T, PT]) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		rc.notFound(c)
		return
	}

	result := rc.DB.WithContext(c.Request.Context()).Delete(PT(new(T)), id)
	if result.Error != nil {
		respondWriteError(c, result.Error, rc.Label)
		return
	}
	if result.RowsAffected == 0 {
		rc.notFound(c)
		return
	}
	utils.RespondJSON(c, http.StatusOK, rc.Label+" deleted", gin.H{"id": id})
}

func (rc *ResourceController[T, PT]) load(c *gin.Context) (PT, bool) {
	id, ok := pathID(c, "id")
	if !ok {
		rc.notFound(c)
		return nil, false
	}

	item := PT(new(T))
	if err := rc.DB.WithContext(c.Request.Context()).First(item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			rc.notFound(c)
			return nil, false
		}
		utils.ErrorLogger.WithError(err).WithField("resource", rc.Label).Error("load failed")
		utils.RespondError(c, http.StatusInternalServerError, errors.New("failed to load "+rc.Label))
		return nil, false
	}
	return item, true
}

func (rc *ResourceController[T, PT]) notFound(c *gin.Context) {
	utils.RespondError(c, http.StatusNotFound, fmt.Errorf("%s not found", rc.Label))
}
