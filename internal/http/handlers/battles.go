package handlers

import (
	"errors"
	"net/http"

	"asimply_pulse/internal/ledger"

	"github.com/gin-gonic/gin"
)

// GetBattles returns all battles with their leaderboards.
func (h *Handler) GetBattles(c *gin.Context) {
	battles, err := h.Store.GetBattles(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get battles"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"battles": battles})
}

// JoinBattle enrolls the user in a battle; joining twice is a no-op.
func (h *Handler) JoinBattle(c *gin.Context) {
	battle, err := h.Store.JoinBattle(c.Request.Context(), c.Param("id"))
	if errors.Is(err, ledger.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "battle not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to join battle"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"battle": battle})
}
