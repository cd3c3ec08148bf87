package domain

// User is the singleton account of a snapshot. Achievements and staking
// positions are embedded, not separately keyed collections.
type User struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Email         string            `json:"email"`
	Avatar        string            `json:"avatar,omitempty"`
	WalletID      string            `json:"walletId,omitempty"`
	WalletAddress string            `json:"walletAddress,omitempty"`
	ASTBalance    float64           `json:"astBalance"`
	Level         int               `json:"level"`
	XP            int               `json:"xp"`
	JoinDate      string            `json:"joinDate"`
	TotalEarned   float64           `json:"totalEarned"`
	Achievements  []Achievement     `json:"achievements"`
	StakingPools  []StakingPosition `json:"stakingPools"`
}

// UserUpdate carries the fields UpdateUser may change. Nil means "leave as
// is". Identity, balance and the embedded collections are deliberately not
// reachable through here.
type UserUpdate struct {
	Name   *string `json:"name,omitempty"`
	Email  *string `json:"email,omitempty"`
	Avatar *string `json:"avatar,omitempty"`
}

// Apply merges the set fields into u.
func (upd UserUpdate) Apply(u *User) {
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.Email != nil {
		u.Email = *upd.Email
	}
	if upd.Avatar != nil {
		u.Avatar = *upd.Avatar
	}
}
