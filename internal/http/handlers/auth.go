package handlers

import (
	"net/http"

	"asimply_pulse/internal/service"

	"github.com/gin-gonic/gin"
)

// Auth issues a session token for the dashboard's singleton user. The mock
// ledger has no credentials; the token only scopes mutating routes.
func (h *Handler) Auth(c *gin.Context) {
	user, err := h.Store.GetUser(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load user"})
		return
	}

	token, err := service.GenerateJWT(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}
