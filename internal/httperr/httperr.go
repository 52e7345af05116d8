// Package httperr maps business errors to HTTP responses: NotFound -> 404,
// InvalidOperation -> 400, everything else -> 500 with a generic message.
package httperr

import (
	"net/http"

	"github.com/Kamleshja/pims-service/pkg/apperrors"
	"github.com/gin-gonic/gin"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func Respond(c *gin.Context, err error) {
	switch {
	case apperrors.IsNotFound(err):
		c.JSON(http.StatusNotFound, errorResponse{Message: err.Error()})
	case apperrors.IsInvalidOperation(err):
		c.JSON(http.StatusBadRequest, errorResponse{Message: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, errorResponse{Message: "internal server error"})
	}
}

func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, errorResponse{Message: message})
}
