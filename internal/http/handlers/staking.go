package handlers

import (
	"errors"
	"net/http"

	"asimply_pulse/internal/domain"
	"asimply_pulse/internal/ledger"

	"github.com/gin-gonic/gin"
)

// GetStaking returns the user's staking positions and the pool table.
func (h *Handler) GetStaking(c *gin.Context) {
	positions, err := h.Store.GetStakingPositions(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get staking positions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"positions": positions, "pools": h.Store.Pools()})
}

type stakeRequest struct {
	Amount   float64         `json:"amount" binding:"required,gt=0"`
	PoolType domain.PoolType `json:"poolType" binding:"required"`
}

// CreateStake locks the requested amount in a pool. Overdraws are rejected by
// the store.
func (h *Handler) CreateStake(c *gin.Context) {
	var req stakeRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	position, err := h.Store.CreateStakePosition(c.Request.Context(), req.Amount, req.PoolType)
	switch {
	case errors.Is(err, ledger.ErrUnknownPool), errors.Is(err, ledger.ErrInvalidAmount):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case errors.Is(err, ledger.ErrInsufficientFunds):
		c.JSON(http.StatusBadRequest, gin.H{"error": "insufficient balance"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create position"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"position": position})
}

// Unstake exits a position, crediting principal plus accrued rewards. A
// position that already exited is returned unchanged.
func (h *Handler) Unstake(c *gin.Context) {
	position, err := h.Store.UnstakePosition(c.Request.Context(), c.Param("id"))
	if errors.Is(err, ledger.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "position not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to unstake"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"position": position})
}
