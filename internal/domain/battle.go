package domain

// BattleStatus - competition window state
type BattleStatus string

const (
	BattleUpcoming  BattleStatus = "upcoming"
	BattleActive    BattleStatus = "active"
	BattleCompleted BattleStatus = "completed"
)

// BattleType - cadence of a battle
type BattleType string

const (
	BattleWeekly  BattleType = "weekly"
	BattleMonthly BattleType = "monthly"
	BattleSpecial BattleType = "special"
)

// BattleParticipant is one leaderboard row inside a battle.
type BattleParticipant struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Score  int    `json:"score"`
	Rank   int    `json:"rank"`
	Avatar string `json:"avatar,omitempty"`
}

// Battle is a scored competition window with an ordered participant list.
// A user id appears at most once in Participants.
type Battle struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	Participants []BattleParticipant `json:"participants"`
	StartDate    string              `json:"startDate"`
	EndDate      string              `json:"endDate"`
	Status       BattleStatus        `json:"status"`
	Prize        float64             `json:"prize"`
	Type         BattleType          `json:"type"`
}

// HasParticipant reports whether the given user id is already enrolled.
func (b *Battle) HasParticipant(id string) bool {
	for i := range b.Participants {
		if b.Participants[i].ID == id {
			return true
		}
	}
	return false
}
