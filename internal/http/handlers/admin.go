package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Reset erases the snapshot and the wallet connection; the next read reseeds
// the fixtures.
func (h *Handler) Reset(c *gin.Context) {
	if err := h.Store.Reset(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to reset"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reset": true})
}
