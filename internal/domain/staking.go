package domain

import "time"

// PoolType - staking pool identifier, fixes term length and APY
type PoolType string

const (
	Pool30Day PoolType = "30day"
	Pool90Day PoolType = "90day"
)

// PositionStatus - staking position lifecycle state
type PositionStatus string

const (
	PositionActive    PositionStatus = "active"
	PositionCompleted PositionStatus = "completed"
	PositionWithdrawn PositionStatus = "withdrawn"
)

// Pool is one entry of the staking configuration table.
type Pool struct {
	TermDays int     `json:"termDays"`
	APY      float64 `json:"apy"`
}

// StakingPosition locks principal for a fixed term. The principal is debited
// once at creation and credited once on exit; active -> withdrawn and
// active -> completed are both terminal.
type StakingPosition struct {
	ID        string         `json:"id"`
	PoolType  PoolType       `json:"poolType"`
	Amount    float64        `json:"amount"`
	APY       float64        `json:"apy"`
	StartDate time.Time      `json:"startDate"`
	EndDate   time.Time      `json:"endDate"`
	Rewards   float64        `json:"rewards"`
	Status    PositionStatus `json:"status"`
}

// Matured reports whether the lock term has elapsed.
func (p *StakingPosition) Matured(now time.Time) bool {
	return !now.Before(p.EndDate)
}

// Accrued returns the pro-rata reward for the time elapsed since StartDate,
// capped at the full term. Zero elapsed time accrues nothing, so an immediate
// unstake returns exactly the principal.
func (p *StakingPosition) Accrued(now time.Time) float64 {
	elapsed := now.Sub(p.StartDate)
	if elapsed <= 0 {
		return 0
	}
	if term := p.EndDate.Sub(p.StartDate); elapsed > term {
		elapsed = term
	}
	days := elapsed.Hours() / 24
	return p.Amount * p.APY / 100 * days / 365
}
