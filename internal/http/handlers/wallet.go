package handlers

import (
	"net/http"
	"strings"

	"asimply_pulse/internal/ledger"

	"github.com/gin-gonic/gin"
)

// GetWallet returns the stored wallet connection, if any.
func (h *Handler) GetWallet(c *gin.Context) {
	conn, err := h.Store.GetWalletConnection(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get wallet connection"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"connection": conn, "connected": conn != nil})
}

type connectRequest struct {
	WalletID string `json:"walletId" binding:"required"`
}

// ConnectWallet derives the mock address from the supplied identifier and
// persists the connection. Reconnecting overwrites the prior connection.
func (h *Handler) ConnectWallet(c *gin.Context) {
	var req connectRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}
	walletID := strings.TrimSpace(req.WalletID)
	if walletID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "wallet id is required"})
		return
	}

	address := ledger.WalletAddress(walletID)
	conn, err := h.Store.ConnectWallet(c.Request.Context(), walletID, address)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to connect wallet"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"connection": conn})
}

// DisconnectWallet clears the wallet fields and removes the connection
// record.
func (h *Handler) DisconnectWallet(c *gin.Context) {
	if err := h.Store.DisconnectWallet(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to disconnect wallet"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"disconnected": true})
}
