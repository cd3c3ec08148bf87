// Package game holds the server-side outcome generators for the two
// dashboard mini-games. Animation and physics stay client-side; only the
// result and the reward settlement matter here.
package game

import (
	"crypto/rand"
	"math/big"
)

// SpinPrize is one segment of the spin-win wheel.
type SpinPrize struct {
	ID     int     `json:"id"`
	Label  string  `json:"label"`
	Reward float64 `json:"reward"`
}

// SpinResult is the outcome of one wheel spin.
type SpinResult struct {
	Prize     SpinPrize `json:"prize"`
	SpinAngle float64   `json:"spin_angle"` // final angle for frontend animation
}

// DefaultSpinPrizes returns the eight-segment prize wheel.
func DefaultSpinPrizes() []SpinPrize {
	return []SpinPrize{
		{ID: 1, Label: "+5 AST", Reward: 5},
		{ID: 2, Label: "+10 AST", Reward: 10},
		{ID: 3, Label: "Try Again", Reward: 0},
		{ID: 4, Label: "+2 AST", Reward: 2},
		{ID: 5, Label: "+20 AST", Reward: 20},
		{ID: 6, Label: "+1 AST", Reward: 1},
		{ID: 7, Label: "+15 AST", Reward: 15},
		{ID: 8, Label: "+8 AST", Reward: 8},
	}
}

// SpinWheel represents the spin-win wheel.
type SpinWheel struct {
	Prizes []SpinPrize `json:"prizes"`
}

// NewSpinWheel creates a wheel with the default prizes.
func NewSpinWheel() *SpinWheel {
	return &SpinWheel{Prizes: DefaultSpinPrizes()}
}

// Spin picks a prize uniformly at random and computes the landing angle the
// frontend animates to (segment center after a fixed number of rotations).
func (w *SpinWheel) Spin() SpinResult {
	idx := 0
	if n, err := rand.Int(rand.Reader, big.NewInt(int64(len(w.Prizes)))); err == nil {
		idx = int(n.Int64())
	}

	const rounds = 6
	slice := 360.0 / float64(len(w.Prizes))
	angle := 360*rounds + (360 - float64(idx)*slice) - slice/2

	return SpinResult{
		Prize:     w.Prizes[idx],
		SpinAngle: angle,
	}
}
