package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/flytau/flytau-api/apperrors"
)

// respondError translates a service error into the standard error envelope.
func respondError(c *gin.Context, err error) {
	status := apperrors.HTTPStatus(err)
	code := apperrors.CodeOf(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		// Internal details stay in the logs, not the response body.
		message = "Internal server error"
	}
	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// respondValidationError reports a request-binding failure.
func respondValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "VALIDATION_ERROR",
			"message": "Invalid request data",
			"details": err.Error(),
		},
	})
}

func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}
