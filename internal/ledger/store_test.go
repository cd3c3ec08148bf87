package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"asimply_pulse/internal/domain"
	"asimply_pulse/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	return New(storage.NewMemory(), opts...)
}

func TestSeedFixtures(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user, err := s.GetUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1", user.ID)
	assert.Equal(t, "Player One", user.Name)
	assert.Equal(t, float64(1250), user.ASTBalance)
	assert.Equal(t, float64(3450), user.TotalEarned)
	assert.Equal(t, 5, user.Level)
	assert.Equal(t, 2340, user.XP)
	assert.Len(t, user.Achievements, 3)
	assert.True(t, user.Achievements[0].Minted, "First Bill Payer is pre-minted")
	assert.Len(t, user.StakingPools, 1)
	assert.Equal(t, float64(500), user.StakingPools[0].Amount)
	assert.InDelta(t, 33.33, user.StakingPools[0].Rewards, 1e-9)

	activities, err := s.GetActivities(ctx)
	require.NoError(t, err)
	require.Len(t, activities, 5)
	for _, a := range activities {
		assert.False(t, a.Completed, "activity %s should start incomplete", a.ID)
	}

	battles, err := s.GetBattles(ctx)
	require.NoError(t, err)
	require.Len(t, battles, 1)
	assert.Len(t, battles[0].Participants, 5)
	assert.Equal(t, float64(1000), battles[0].Prize)

	sessions, err := s.GetGameSessions(ctx)
	require.NoError(t, err)
	assert.Len(t, sessions, 2)
}

func TestAdjustBalance(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user, err := s.AdjustBalance(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, float64(1350), user.ASTBalance)
	assert.Equal(t, float64(3550), user.TotalEarned)

	// negative deltas move the balance but never totalEarned
	user, err = s.AdjustBalance(ctx, -400)
	require.NoError(t, err)
	assert.Equal(t, float64(950), user.ASTBalance)
	assert.Equal(t, float64(3550), user.TotalEarned)
}

func TestTotalEarnedSumsOnlyPositiveDeltas(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	deltas := []float64{50, -30, 120, -200, 5, -1, 75}
	var positive float64
	prev := float64(3450)
	for _, d := range deltas {
		user, err := s.AdjustBalance(ctx, d)
		require.NoError(t, err)
		if d > 0 {
			positive += d
		}
		assert.GreaterOrEqual(t, user.TotalEarned, prev, "totalEarned must never decrease")
		prev = user.TotalEarned
	}

	user, err := s.GetUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3450+positive, user.TotalEarned)
}

func TestUpdateActivityProgressEdgeTriggered(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// bill-1 has maxProgress 5, reward 50
	steps := []struct {
		progress      int
		wantCompleted bool
		wantBalance   float64
	}{
		{3, false, 1250},
		{4, false, 1250},
		{5, true, 1300},
		{5, true, 1300}, // no second payout
	}
	for _, step := range steps {
		activity, err := s.UpdateActivityProgress(ctx, "bill-1", step.progress)
		require.NoError(t, err)
		assert.Equal(t, step.wantCompleted, activity.Completed)

		user, err := s.GetUser(ctx)
		require.NoError(t, err)
		assert.Equal(t, step.wantBalance, user.ASTBalance)
	}

	activity, err := s.UpdateActivityProgress(ctx, "bill-1", 5)
	require.NoError(t, err)
	assert.NotEmpty(t, activity.CompletedDate)
}

func TestUpdateActivityProgressClamp(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	activity, err := s.UpdateActivityProgress(ctx, "survey-1", 999)
	require.NoError(t, err)
	assert.Equal(t, 5, activity.Progress, "progress clamps to maxProgress")
	assert.True(t, activity.Completed)

	activity, err = s.UpdateActivityProgress(ctx, "ref-1", -3)
	require.NoError(t, err)
	assert.Equal(t, 0, activity.Progress, "progress clamps at zero")
	assert.False(t, activity.Completed)
}

func TestUpdateActivityProgressCompletesSurvey(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	activity, err := s.UpdateActivityProgress(ctx, "survey-1", 5)
	require.NoError(t, err)
	assert.True(t, activity.Completed)
	assert.Equal(t, 5, activity.Progress)

	user, err := s.GetUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, float64(1275), user.ASTBalance, "1250 + survey reward 25")
}

func TestUpdateActivityProgressUnknownID(t *testing.T) {
	s := newTestStore(t)

	_, err := s.UpdateActivityProgress(context.Background(), "nope", 3)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMintAchievementIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	ach, err := s.MintAchievement(ctx, "super-referrer")
	require.NoError(t, err)
	assert.True(t, ach.Minted)
	assert.NotEmpty(t, ach.MintDate)

	user, err := s.GetUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, float64(1300), user.ASTBalance, "1250 + mint bonus 50")

	firstMintDate := ach.MintDate
	ach, err = s.MintAchievement(ctx, "super-referrer")
	require.NoError(t, err)
	assert.True(t, ach.Minted)
	assert.Equal(t, firstMintDate, ach.MintDate)

	user, err = s.GetUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, float64(1300), user.ASTBalance, "re-mint pays nothing")
}

func TestMintPreMintedAchievementPaysNothing(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	ach, err := s.MintAchievement(ctx, "first-bill")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-01", ach.MintDate)

	user, err := s.GetUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, float64(1250), user.ASTBalance)
}

func TestMintAchievementUnknownID(t *testing.T) {
	s := newTestStore(t)

	_, err := s.MintAchievement(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateStakePosition(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	position, err := s.CreateStakePosition(ctx, 200, domain.Pool90Day)
	require.NoError(t, err)
	assert.Equal(t, float64(200), position.Amount)
	assert.Equal(t, float64(16), position.APY)
	assert.Equal(t, domain.PositionActive, position.Status)
	assert.Equal(t, float64(0), position.Rewards)
	assert.Equal(t, position.StartDate.AddDate(0, 0, 90), position.EndDate)

	user, err := s.GetUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, float64(1050), user.ASTBalance)
	assert.Len(t, user.StakingPools, 2)
}

func TestCreateStakePositionRejectsOverdraw(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.CreateStakePosition(ctx, 5000, domain.Pool30Day)
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	user, err := s.GetUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, float64(1250), user.ASTBalance, "rejected stake must not move the balance")
	assert.Len(t, user.StakingPools, 1)
}

func TestCreateStakePositionValidation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.CreateStakePosition(ctx, 0, domain.Pool30Day)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = s.CreateStakePosition(ctx, 100, domain.PoolType("7day"))
	assert.ErrorIs(t, err, ErrUnknownPool)
}

func TestStakeRoundTripConservesPrincipal(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	s := newTestStore(t, WithNow(func() time.Time { return now }))
	ctx := context.Background()

	before, err := s.GetUser(ctx)
	require.NoError(t, err)

	position, err := s.CreateStakePosition(ctx, 100, domain.Pool30Day)
	require.NoError(t, err)

	mid, err := s.GetUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, before.ASTBalance-100, mid.ASTBalance)

	// zero elapsed time accrues zero rewards
	position, err = s.UnstakePosition(ctx, position.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PositionWithdrawn, position.Status)
	assert.Equal(t, float64(0), position.Rewards)

	after, err := s.GetUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, before.ASTBalance, after.ASTBalance)
}

func TestUnstakeAccruesProRata(t *testing.T) {
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	s := newTestStore(t, WithNow(func() time.Time { return now }))
	ctx := context.Background()

	position, err := s.CreateStakePosition(ctx, 1000, domain.Pool30Day)
	require.NoError(t, err)

	now = now.AddDate(0, 0, 15) // halfway through the term
	position, err = s.UnstakePosition(ctx, position.ID)
	require.NoError(t, err)
	assert.InDelta(t, 1000*8.0/100*15.0/365, position.Rewards, 1e-9)
}

func TestUnstakeTwiceCreditsOnce(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	position, err := s.CreateStakePosition(ctx, 100, domain.Pool30Day)
	require.NoError(t, err)

	_, err = s.UnstakePosition(ctx, position.ID)
	require.NoError(t, err)
	balanceAfterFirst := mustUser(t, s).ASTBalance

	again, err := s.UnstakePosition(ctx, position.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PositionWithdrawn, again.Status)
	assert.Equal(t, balanceAfterFirst, mustUser(t, s).ASTBalance, "double withdrawal must not credit twice")
}

func TestUnstakeUnknownID(t *testing.T) {
	s := newTestStore(t)

	_, err := s.UnstakePosition(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSettleMatured(t *testing.T) {
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	s := newTestStore(t, WithNow(func() time.Time { return now }))
	ctx := context.Background()

	// the seed position dates are long past; withdraw it first to isolate
	_, err := s.UnstakePosition(ctx, "stake-1")
	require.NoError(t, err)

	position, err := s.CreateStakePosition(ctx, 1000, domain.Pool30Day)
	require.NoError(t, err)
	balance := mustUser(t, s).ASTBalance

	// not matured yet
	settled, err := s.SettleMatured(ctx)
	require.NoError(t, err)
	assert.Empty(t, settled)

	now = now.AddDate(0, 0, 31)
	settled, err = s.SettleMatured(ctx)
	require.NoError(t, err)
	require.Len(t, settled, 1)
	assert.Equal(t, position.ID, settled[0].ID)
	assert.Equal(t, domain.PositionCompleted, settled[0].Status)

	fullTerm := 1000 * 8.0 / 100 * 30.0 / 365
	assert.InDelta(t, fullTerm, settled[0].Rewards, 1e-9)
	assert.InDelta(t, balance+1000+fullTerm, mustUser(t, s).ASTBalance, 1e-9)

	// a second sweep finds nothing
	settled, err = s.SettleMatured(ctx)
	require.NoError(t, err)
	assert.Empty(t, settled)
}

func TestJoinBattleIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// the seed battle already carries a participant with the user's id, so
	// joining is a no-op
	battle, err := s.JoinBattle(ctx, "weekly-1")
	require.NoError(t, err)
	assert.Len(t, battle.Participants, 5)

	// drop that participant to exercise a real join
	snap, err := s.loadSnapshot(ctx)
	require.NoError(t, err)
	snap.Battles[0].Participants = snap.Battles[0].Participants[1:]
	require.NoError(t, s.saveSnapshot(ctx, snap))

	battle, err = s.JoinBattle(ctx, "weekly-1")
	require.NoError(t, err)
	require.Len(t, battle.Participants, 5)
	joined := battle.Participants[4]
	assert.Equal(t, "1", joined.ID)
	assert.Equal(t, "Player One", joined.Name)
	assert.Equal(t, 0, joined.Score)
	assert.Equal(t, 5, joined.Rank)

	battle, err = s.JoinBattle(ctx, "weekly-1")
	require.NoError(t, err)
	assert.Len(t, battle.Participants, 5, "second join must not duplicate the entry")
}

func TestJoinBattleUnknownID(t *testing.T) {
	s := newTestStore(t)

	_, err := s.JoinBattle(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddGameSessionCreditsUnconditionally(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	session, err := s.AddGameSession(ctx, domain.GameRunner, 800, 20, 95)
	require.NoError(t, err)
	assert.Equal(t, domain.GameRunner, session.GameType)
	assert.Equal(t, 800, session.Score)
	assert.NotEmpty(t, session.ID)

	user, err := s.GetUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, float64(1270), user.ASTBalance)
	assert.Equal(t, float64(3470), user.TotalEarned)

	sessions, err := s.GetGameSessions(ctx)
	require.NoError(t, err)
	assert.Len(t, sessions, 3)
}

func TestWalletConnectionLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	conn, err := s.GetWalletConnection(ctx)
	require.NoError(t, err)
	assert.Nil(t, conn, "fresh store has no wallet connection")

	addr := WalletAddress("my-wallet")
	conn, err = s.ConnectWallet(ctx, "my-wallet", addr)
	require.NoError(t, err)
	assert.Equal(t, "my-wallet", conn.ID)
	assert.Equal(t, addr, conn.Address)

	user := mustUser(t, s)
	assert.Equal(t, "my-wallet", user.WalletID)
	assert.Equal(t, addr, user.WalletAddress)

	// reconnecting overwrites the prior record
	conn, err = s.ConnectWallet(ctx, "other", WalletAddress("other"))
	require.NoError(t, err)
	assert.Equal(t, "other", conn.ID)

	require.NoError(t, s.DisconnectWallet(ctx))
	conn, err = s.GetWalletConnection(ctx)
	require.NoError(t, err)
	assert.Nil(t, conn)

	user = mustUser(t, s)
	assert.Empty(t, user.WalletID)
	assert.Empty(t, user.WalletAddress)
}

// failingRemoveStorage errors every Remove of one key.
type failingRemoveStorage struct {
	storage.Storage
	failKey string
}

func (f *failingRemoveStorage) Remove(ctx context.Context, key string) error {
	if key == f.failKey {
		return errors.New("backend unavailable")
	}
	return f.Storage.Remove(ctx, key)
}

func TestDisconnectWalletKeepsRecordOnBackendError(t *testing.T) {
	st := &failingRemoveStorage{Storage: storage.NewMemory(), failKey: walletKey}
	s := New(st)
	ctx := context.Background()

	_, err := s.ConnectWallet(ctx, "my-wallet", WalletAddress("my-wallet"))
	require.NoError(t, err)

	require.Error(t, s.DisconnectWallet(ctx))

	// the record survives, so a reconnect can recover the cleared user fields
	conn, err := s.GetWalletConnection(ctx)
	require.NoError(t, err)
	require.NotNil(t, conn)
	assert.Equal(t, "my-wallet", conn.ID)

	user := mustUser(t, s)
	assert.Empty(t, user.WalletID)
}

func TestResetRestoresSeed(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.AdjustBalance(ctx, 500)
	require.NoError(t, err)
	_, err = s.MintAchievement(ctx, "super-referrer")
	require.NoError(t, err)
	_, err = s.ConnectWallet(ctx, "w", WalletAddress("w"))
	require.NoError(t, err)

	require.NoError(t, s.Reset(ctx))

	user := mustUser(t, s)
	assert.Equal(t, float64(1250), user.ASTBalance)
	assert.Equal(t, float64(3450), user.TotalEarned)
	assert.False(t, user.Achievements[1].Minted)
	assert.Empty(t, user.WalletID)

	conn, err := s.GetWalletConnection(ctx)
	require.NoError(t, err)
	assert.Nil(t, conn)
}

func TestMalformedSnapshotReseeds(t *testing.T) {
	st := storage.NewMemory()
	ctx := context.Background()
	require.NoError(t, st.Set(ctx, snapshotKey, []byte("{not json")))

	s := New(st)
	user, err := s.GetUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, float64(1250), user.ASTBalance, "corrupt payload falls back to the seed")
}

func TestUpdateUserMergesOnlySetFields(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	name := "Player Two"
	user, err := s.UpdateUser(ctx, domain.UserUpdate{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Player Two", user.Name)
	assert.Equal(t, "player@example.com", user.Email, "unset fields stay untouched")
	assert.Equal(t, float64(1250), user.ASTBalance)
}

func TestReturnedEntitiesAreDetached(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user, err := s.GetUser(ctx)
	require.NoError(t, err)
	user.ASTBalance = 999999
	user.Achievements[0].Minted = false

	fresh := mustUser(t, s)
	assert.Equal(t, float64(1250), fresh.ASTBalance, "mutating a returned copy must not leak into the store")
	assert.True(t, fresh.Achievements[0].Minted)
}

func TestEveryMutationPersists(t *testing.T) {
	// two stores over the same backend see each other's writes, proving the
	// mutation reached storage before returning
	st := storage.NewMemory()
	ctx := context.Background()
	a := New(st)
	b := New(st)

	_, err := a.AdjustBalance(ctx, 100)
	require.NoError(t, err)

	user, err := b.GetUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, float64(1350), user.ASTBalance)
}

func mustUser(t *testing.T, s *Store) *domain.User {
	t.Helper()
	user, err := s.GetUser(context.Background())
	require.NoError(t, err)
	return user
}
