package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type JSONResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// RespondJSON is the envelope used by the CRUD resources.
func RespondJSON(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, JSONResponse{
		Status:  code >= 200 && code < 300,
		Message: message,
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, err error) {
	c.JSON(code, JSONResponse{
		Status:  false,
		Message: err.Error(),
	})
}

// QueryResponse is the envelope of the menu and analytics query endpoints.
type QueryResponse struct {
	Status  string      `json:"status"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

func RespondSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, QueryResponse{Status: "success", Data: data})
}

// RespondFailure writes an error envelope. Internal errors are logged and
// answered with fallback so storage details never reach the client.
func RespondFailure(c *gin.Context, err error, fallback string) {
	if appErr := GetAppError(err); appErr != nil && appErr.Type != ErrorTypeInternal {
		c.JSON(appErr.Code, QueryResponse{Status: "error", Message: appErr.Message})
		return
	}
	ErrorLogger.WithError(err).WithField("path", c.Request.URL.Path).Error(fallback)
	c.JSON(http.StatusInternalServerError, QueryResponse{Status: "error", Message: fallback})
}
