package handlers

import (
	"net/http"

	"asimply_pulse/internal/domain"

	"github.com/gin-gonic/gin"
)

// Me returns the current user with embedded achievements and staking
// positions.
func (h *Handler) Me(c *gin.Context) {
	user, err := h.Store.GetUser(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// UpdateMe merges the provided profile fields into the user.
func (h *Handler) UpdateMe(c *gin.Context) {
	var upd domain.UserUpdate
	if err := c.BindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	user, err := h.Store.UpdateUser(c.Request.Context(), upd)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

type balanceRequest struct {
	Delta float64 `json:"delta" binding:"required"`
}

// UpdateBalance applies a signed balance delta. Positive deltas also grow
// totalEarned.
func (h *Handler) UpdateBalance(c *gin.Context) {
	var req balanceRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	user, err := h.Store.AdjustBalance(c.Request.Context(), req.Delta)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update balance"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
