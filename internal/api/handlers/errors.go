package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/h4d1s/AvtoNetApi/internal/models"
)

// respondError maps service errors onto HTTP statuses. Validation, not-found
// and conflict errors carry safe messages; anything else is a 500 with a
// generic body and the cause attached to the Gin error list for logging.
func respondError(c *gin.Context, err error, fallbackMsg string) {
	switch {
	case errors.Is(err, models.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallbackMsg})
	}
}

// requestBaseURL reconstructs the origin the client used, so stored relative
// image paths resolve to URLs that are reachable from that client.
func requestBaseURL(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return scheme + "://" + c.Request.Host
}
