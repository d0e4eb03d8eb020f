package handlers

import (
	"errors"
	"log"
	"net/http"

	"freeworldfirst/internal/services"

	"github.com/gin-gonic/gin"
)

// JSONError writes the uniform error body.
func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"message": message})
}

// HandleServiceError maps the service error taxonomy onto HTTP status
// codes. Unrecognized errors are infrastructure failures and come back
// as a plain 500 without leaking details.
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		JSONError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrForbidden):
		JSONError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrConflict):
		JSONError(c, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		JSONError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrInvalidVote):
		JSONError(c, http.StatusBadRequest, err.Error())
	default:
		log.Printf("internal error: %v", err)
		JSONError(c, http.StatusInternalServerError, "internal server error")
	}
}
