package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-menu/utils"
)

// pathID parses a positive numeric path parameter.
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// versionParam reads the optional version_number query parameter.
func versionParam(c *gin.Context) (*int, error) {
	raw := strings.TrimSpace(c.Query("version_number"))
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return nil, utils.NewValidationError("version_number must be a positive integer")
	}
	return &n, nil
}

// splitRestrictions turns "Vegan, Gluten Free,," into ["Vegan" "Gluten Free"].
func splitRestrictions(raw string) []string {
	names := make([]string, 0)
	for _, token := range strings.Split(raw, ",") {
		if token = strings.TrimSpace(token); token != "" {
			names = append(names, token)
		}
	}
	return names
}

// respondWriteError maps a failed create/update/delete to a CRUD envelope.
func respondWriteError(c *gin.Context, err error, label string) {
	switch {
	case utils.IsNotFoundError(err):
		utils.RespondError(c, http.StatusNotFound, errors.New(utils.GetAppError(err).Message))
	case utils.IsValidationError(err):
		utils.RespondError(c, http.StatusBadRequest, errors.New(utils.GetAppError(err).Message))
	case utils.IsDuplicateError(err):
		utils.RespondError(c, http.StatusConflict, errors.New(label+" already exists"))
	case utils.IsForeignKeyError(err):
		utils.RespondError(c, http.StatusBadRequest, errors.New("referenced record does not exist"))
	default:
		utils.ErrorLogger.WithError(err).WithField("resource", label).Error("write failed")
		utils.RespondError(c, http.StatusInternalServerError, errors.New("failed to save "+label))
	}
}
