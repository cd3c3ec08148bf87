package handlers

import (
	"net/http"
	"time"

	"asimply_pulse/internal/domain"
	"asimply_pulse/internal/game"

	"github.com/gin-gonic/gin"
)

// GetGameSessions returns the played mini-game history.
func (h *Handler) GetGameSessions(c *gin.Context) {
	sessions, err := h.Store.GetGameSessions(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get game sessions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

type sessionRequest struct {
	GameType domain.GameType `json:"gameType" binding:"required"`
	Score    int             `json:"score"`
	Reward   float64         `json:"reward"`
	Duration int             `json:"duration"`
}

// AddGameSession records a finished game played client-side and credits its
// reward unconditionally.
func (h *Handler) AddGameSession(c *gin.Context) {
	var req sessionRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}
	if req.GameType != domain.GameSpinWin && req.GameType != domain.GameRunner {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown game type"})
		return
	}

	session, err := h.Store.AddGameSession(c.Request.Context(), req.GameType, req.Score, req.Reward, req.Duration)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// Spin runs a server-side wheel spin, at most once per calendar day. The
// prize settles through the session record.
func (h *Handler) Spin(c *gin.Context) {
	ctx := c.Request.Context()

	sessions, err := h.Store.GetGameSessions(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get game sessions"})
		return
	}
	today := h.now().UTC().Truncate(24 * time.Hour)
	for i := range sessions {
		if sessions[i].GameType == domain.GameSpinWin && !sessions[i].PlayedAt.UTC().Before(today) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "already spun today"})
			return
		}
	}

	result := h.Wheel.Spin()
	session, err := h.Store.AddGameSession(ctx, domain.GameSpinWin, int(result.Prize.Reward), result.Prize.Reward, 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": result, "session": session})
}

type runnerRequest struct {
	Score    int `json:"score" binding:"required,gte=0"`
	Duration int `json:"duration"`
}

// Runner settles a finished runner session: 5 AST per full 200 points.
func (h *Handler) Runner(c *gin.Context) {
	var req runnerRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	reward := game.RunnerReward(req.Score)
	session, err := h.Store.AddGameSession(c.Request.Context(), domain.GameRunner, req.Score, reward, req.Duration)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session, "reward": reward})
}
