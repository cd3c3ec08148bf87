package handlers

import (
	"errors"
	"net/http"

	"asimply_pulse/internal/ledger"

	"github.com/gin-gonic/gin"
)

// GetAchievements returns the user's badges.
func (h *Handler) GetAchievements(c *gin.Context) {
	achievements, err := h.Store.GetAchievements(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get achievements"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"achievements": achievements})
}

// MintAchievement claims a badge. Minting an already-minted badge returns it
// unchanged without paying the bonus again.
func (h *Handler) MintAchievement(c *gin.Context) {
	achievement, err := h.Store.MintAchievement(c.Request.Context(), c.Param("id"))
	if errors.Is(err, ledger.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "achievement not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to mint achievement"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"achievement": achievement})
}
