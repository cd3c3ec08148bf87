package ledger

import (
	"time"

	"asimply_pulse/internal/domain"
)

// DefaultPools is the staking configuration table. It is a default, not a
// constant: override per store with WithPools or via env config.
func DefaultPools() map[domain.PoolType]domain.Pool {
	return map[domain.PoolType]domain.Pool{
		domain.Pool30Day: {TermDays: 30, APY: 8},
		domain.Pool90Day: {TermDays: 90, APY: 16},
	}
}

// seedSnapshot builds the fixture state a fresh store starts from. Tests
// assert against these exact values, so treat any edit as a breaking change.
func seedSnapshot() *domain.Snapshot {
	return &domain.Snapshot{
		User: domain.User{
			ID:          "1",
			Name:        "Player One",
			Email:       "player@example.com",
			ASTBalance:  1250,
			Level:       5,
			XP:          2340,
			JoinDate:    "2024-01-15",
			TotalEarned: 3450,
			Achievements: []domain.Achievement{
				{
					ID:          "first-bill",
					Title:       "First Bill Payer",
					Description: "Paid your first bill through the platform",
					Icon:        "💳",
					Minted:      true,
					MintDate:    "2024-02-01",
					Rarity:      domain.RarityCommon,
				},
				{
					ID:          "super-referrer",
					Title:       "Super Referrer",
					Description: "Referred 10 friends to the platform",
					Icon:        "📢",
					Minted:      false,
					Rarity:      domain.RarityRare,
				},
				{
					ID:          "staking-starter",
					Title:       "Staking Starter",
					Description: "Made your first staking deposit",
					Icon:        "💰",
					Minted:      false,
					Rarity:      domain.RarityCommon,
				},
			},
			StakingPools: []domain.StakingPosition{
				{
					ID:        "stake-1",
					PoolType:  domain.Pool30Day,
					Amount:    500,
					APY:       8,
					StartDate: time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC),
					EndDate:   time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC),
					Rewards:   33.33,
					Status:    domain.PositionActive,
				},
			},
		},
		Activities: []domain.Activity{
			{
				ID:          "bill-1",
				Type:        domain.ActivityBillPayment,
				Title:       "Bill Payment",
				Description: "Pay utility bills and earn rewards",
				Progress:    3,
				MaxProgress: 5,
				Reward:      50,
			},
			{
				ID:          "ref-1",
				Type:        domain.ActivityReferral,
				Title:       "Referrals",
				Description: "Invite friends and earn together",
				Progress:    2,
				MaxProgress: 10,
				Reward:      100,
			},
			{
				ID:          "game-1",
				Type:        domain.ActivityGame,
				Title:       "Mini Games",
				Description: "Play games and win AST tokens",
				Progress:    8,
				MaxProgress: 10,
				Reward:      75,
			},
			{
				ID:          "stake-1",
				Type:        domain.ActivityStaking,
				Title:       "Staking",
				Description: "Stake tokens for passive rewards",
				Progress:    1,
				MaxProgress: 3,
				Reward:      200,
			},
			{
				ID:          "survey-1",
				Type:        domain.ActivitySurvey,
				Title:       "Surveys",
				Description: "Complete surveys for bonus rewards",
				Progress:    1,
				MaxProgress: 5,
				Reward:      25,
			},
		},
		Battles: []domain.Battle{
			{
				ID:   "weekly-1",
				Name: "Weekly Champions",
				Participants: []domain.BattleParticipant{
					{ID: "1", Name: "Alex", Score: 1280, Rank: 1, Avatar: "🚀"},
					{ID: "2", Name: "Jordan", Score: 1120, Rank: 2, Avatar: "⚡"},
					{ID: "3", Name: "Sam", Score: 980, Rank: 3, Avatar: "🔥"},
					{ID: "4", Name: "Taylor", Score: 860, Rank: 4, Avatar: "💎"},
					{ID: "5", Name: "Player One", Score: 750, Rank: 5, Avatar: "🎯"},
				},
				StartDate: "2024-09-02",
				EndDate:   "2024-09-09",
				Status:    domain.BattleActive,
				Prize:     1000,
				Type:      domain.BattleWeekly,
			},
		},
		GameSessions: []domain.GameSession{
			{
				ID:       "game-1",
				GameType: domain.GameSpinWin,
				Score:    250,
				Reward:   15,
				PlayedAt: time.Date(2024, 9, 3, 10, 30, 0, 0, time.UTC),
				Duration: 120,
			},
			{
				ID:       "game-2",
				GameType: domain.GameRunner,
				Score:    1850,
				Reward:   25,
				PlayedAt: time.Date(2024, 9, 3, 14, 15, 0, 0, time.UTC),
				Duration: 180,
			},
		},
	}
}
