package handlers

import (
	"errors"
	"net/http"

	"asimply_pulse/internal/ledger"

	"github.com/gin-gonic/gin"
)

// GetActivities returns all activity records.
func (h *Handler) GetActivities(c *gin.Context) {
	activities, err := h.Store.GetActivities(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get activities"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"activities": activities})
}

type progressRequest struct {
	Progress int `json:"progress"`
}

// UpdateActivityProgress sets an activity's progress. Reaching the target
// completes the activity and pays its reward once.
func (h *Handler) UpdateActivityProgress(c *gin.Context) {
	var req progressRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	activity, err := h.Store.UpdateActivityProgress(c.Request.Context(), c.Param("id"), req.Progress)
	if errors.Is(err, ledger.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "activity not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update progress"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"activity": activity})
}
