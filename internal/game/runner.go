package game

// runnerMilestone is the score interval that pays a reward.
const runnerMilestone = 200

// runnerMilestoneReward is the AST paid per reached milestone.
const runnerMilestoneReward = 5

// RunnerReward returns the payout for a finished runner session: 5 AST per
// full 200 points of score. Negative scores pay nothing.
func RunnerReward(score int) float64 {
	if score <= 0 {
		return 0
	}
	return float64(score/runnerMilestone) * runnerMilestoneReward
}
