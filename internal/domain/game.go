package domain

import "time"

// GameType - mini-game identifier
type GameType string

const (
	GameSpinWin GameType = "spin-win"
	GameRunner  GameType = "runner"
)

// GameSession is an append-only record of one played mini-game. Recording a
// session always credits Reward to the user, with no completion gating.
type GameSession struct {
	ID       string    `json:"id"`
	GameType GameType  `json:"gameType"`
	Score    int       `json:"score"`
	Reward   float64   `json:"reward"`
	PlayedAt time.Time `json:"playedAt"`
	Duration int       `json:"duration"`
}
