package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health returns the health status of the service.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
