package domain

// ActivityType - category of an earning activity
type ActivityType string

const (
	ActivityBillPayment ActivityType = "bill_payment"
	ActivityReferral    ActivityType = "referral"
	ActivityGame        ActivityType = "game"
	ActivityStaking     ActivityType = "staking"
	ActivitySurvey      ActivityType = "survey"
)

// Activity is a progressable task. Progress is clamped to [0, MaxProgress];
// completion is edge-triggered at progress >= MaxProgress and pays Reward
// exactly once.
type Activity struct {
	ID            string       `json:"id"`
	Type          ActivityType `json:"type"`
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	Progress      int          `json:"progress"`
	MaxProgress   int          `json:"maxProgress"`
	Reward        float64      `json:"reward"`
	Completed     bool         `json:"completed"`
	CompletedDate string       `json:"completedDate,omitempty"`
}

// Percent returns progress as 0-100 for display.
func (a *Activity) Percent() int {
	if a.MaxProgress <= 0 {
		return 100
	}
	p := (a.Progress * 100) / a.MaxProgress
	if p > 100 {
		return 100
	}
	return p
}
