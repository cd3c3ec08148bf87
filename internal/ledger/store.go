// Package ledger owns all persisted dashboard state. The Store is the sole
// writer to durable storage: every mutation loads the full snapshot, applies
// exactly one state change and persists the full snapshot before returning.
package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"asimply_pulse/internal/domain"
	"asimply_pulse/internal/logger"
	"asimply_pulse/internal/storage"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	snapshotKey = "asimply-pulse:data"
	walletKey   = "asimply-pulse:wallet"

	// MintBonus is paid once per achievement, regardless of rarity.
	MintBonus = 50
)

var (
	ErrNotFound          = errors.New("entity not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrUnknownPool       = errors.New("unknown staking pool")
	ErrInvalidAmount     = errors.New("invalid amount")
)

var mutations = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "pulse_ledger_mutations_total",
		Help: "Total ledger mutations applied, by operation",
	},
	[]string{"op"},
)

func init() {
	prometheus.MustRegister(mutations)
}

// Store is the data-access façade over a key-value Storage. All entity
// mutation rules (balance arithmetic, completion thresholds, payouts, lock
// gating) live here and nowhere else.
//
// A mutex serializes operations so each one stays a single atomic
// load-modify-store sequence under a concurrent HTTP host.
type Store struct {
	mu    sync.Mutex
	st    storage.Storage
	pools map[domain.PoolType]domain.Pool
	now   func() time.Time
}

// Option customizes a Store.
type Option func(*Store)

// WithPools replaces the staking configuration table.
func WithPools(pools map[domain.PoolType]domain.Pool) Option {
	return func(s *Store) { s.pools = pools }
}

// WithNow injects the clock, used by tests and the maturity sweep.
func WithNow(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New creates a Store over the given storage backend.
func New(st storage.Storage, opts ...Option) *Store {
	s := &Store{
		st:    st,
		pools: DefaultPools(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// loadSnapshot returns the current snapshot, seeding and persisting the
// fixtures when storage is empty. A payload that fails to parse is treated
// like an empty store: warn and reseed rather than surfacing a fatal error.
func (s *Store) loadSnapshot(ctx context.Context) (*domain.Snapshot, error) {
	b, err := s.st.Get(ctx, snapshotKey)
	if errors.Is(err, storage.ErrNotFound) {
		return s.seed(ctx)
	}
	if err != nil {
		return nil, err
	}

	snap := &domain.Snapshot{}
	if err := json.Unmarshal(b, snap); err != nil {
		logger.Warn("stored snapshot is malformed, reseeding", "error", err)
		return s.seed(ctx)
	}
	return snap, nil
}

func (s *Store) seed(ctx context.Context) (*domain.Snapshot, error) {
	snap := seedSnapshot()
	if err := s.saveSnapshot(ctx, snap); err != nil {
		return nil, err
	}
	return snap, nil
}

func (s *Store) saveSnapshot(ctx context.Context, snap *domain.Snapshot) error {
	b, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return s.st.Set(ctx, snapshotKey, b)
}

// applyBalance is the single balance primitive: astBalance moves by delta,
// totalEarned accumulates only positive deltas. It does not floor at zero;
// overdraw protection belongs to the operations that choose to enforce it.
func applyBalance(u *domain.User, delta float64) {
	u.ASTBalance += delta
	if delta > 0 {
		u.TotalEarned += delta
	}
}

// Queries. Every call deserializes a fresh snapshot, so returned values are
// detached copies; mutating them cannot corrupt store state.

// GetUser returns the singleton user.
func (s *Store) GetUser(ctx context.Context) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	return &snap.User, nil
}

// GetActivities returns all activity records.
func (s *Store) GetActivities(ctx context.Context) ([]domain.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Activities, nil
}

// GetAchievements returns the user's badges.
func (s *Store) GetAchievements(ctx context.Context) ([]domain.Achievement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.User.Achievements, nil
}

// GetStakingPositions returns the user's staking positions.
func (s *Store) GetStakingPositions(ctx context.Context) ([]domain.StakingPosition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.User.StakingPools, nil
}

// GetBattles returns all battles.
func (s *Store) GetBattles(ctx context.Context) ([]domain.Battle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Battles, nil
}

// GetGameSessions returns the played mini-game history.
func (s *Store) GetGameSessions(ctx context.Context) ([]domain.GameSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.GameSessions, nil
}

// Pools returns the staking configuration table.
func (s *Store) Pools() map[domain.PoolType]domain.Pool {
	out := make(map[domain.PoolType]domain.Pool, len(s.pools))
	for k, v := range s.pools {
		out[k] = v
	}
	return out
}

// Mutations.

// UpdateUser merges the set fields of upd into the user.
func (s *Store) UpdateUser(ctx context.Context, upd domain.UserUpdate) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	upd.Apply(&snap.User)
	if err := s.saveSnapshot(ctx, snap); err != nil {
		return nil, err
	}
	mutations.WithLabelValues("update_user").Inc()
	return &snap.User, nil
}

// AdjustBalance moves the balance by delta (positive deltas also grow
// totalEarned). This is the raw ledger primitive: it performs no floor
// check, so direct adjustments may drive the balance negative.
func (s *Store) AdjustBalance(ctx context.Context, delta float64) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	applyBalance(&snap.User, delta)
	if err := s.saveSnapshot(ctx, snap); err != nil {
		return nil, err
	}
	mutations.WithLabelValues("adjust_balance").Inc()
	return &snap.User, nil
}

// UpdateActivityProgress sets an activity's progress, clamped to
// [0, maxProgress]. Reaching maxProgress on a not-yet-completed activity is
// edge-triggered: completed flips once, completedDate is stamped once and the
// reward is paid once. Further calls on a completed activity change nothing.
func (s *Store) UpdateActivityProgress(ctx context.Context, activityID string, progress int) (*domain.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	var activity *domain.Activity
	for i := range snap.Activities {
		if snap.Activities[i].ID == activityID {
			activity = &snap.Activities[i]
			break
		}
	}
	if activity == nil {
		return nil, ErrNotFound
	}

	if !activity.Completed {
		if progress < 0 {
			progress = 0
		}
		if progress > activity.MaxProgress {
			progress = activity.MaxProgress
		}
		activity.Progress = progress
		if activity.Progress >= activity.MaxProgress {
			activity.Completed = true
			activity.CompletedDate = s.now().UTC().Format(time.RFC3339)
			applyBalance(&snap.User, activity.Reward)
		}
	}

	if err := s.saveSnapshot(ctx, snap); err != nil {
		return nil, err
	}
	mutations.WithLabelValues("update_activity_progress").Inc()
	return activity, nil
}

// MintAchievement claims a badge. The unminted -> minted transition is one
// way and pays the fixed MintBonus exactly once; re-minting is a no-op that
// returns the unchanged achievement.
func (s *Store) MintAchievement(ctx context.Context, achievementID string) (*domain.Achievement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	var ach *domain.Achievement
	for i := range snap.User.Achievements {
		if snap.User.Achievements[i].ID == achievementID {
			ach = &snap.User.Achievements[i]
			break
		}
	}
	if ach == nil {
		return nil, ErrNotFound
	}
	if ach.Minted {
		return ach, nil
	}

	ach.Minted = true
	ach.MintDate = s.now().UTC().Format(time.RFC3339)
	applyBalance(&snap.User, MintBonus)

	if err := s.saveSnapshot(ctx, snap); err != nil {
		return nil, err
	}
	mutations.WithLabelValues("mint_achievement").Inc()
	return ach, nil
}

// CreateStakePosition locks amount in the given pool: the principal is
// debited from the balance once and a new active position is appended with
// endDate = now + term. Overdraws are rejected here, the one place that
// decides the balance floor.
func (s *Store) CreateStakePosition(ctx context.Context, amount float64, poolType domain.PoolType) (*domain.StakingPosition, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	pool, ok := s.pools[poolType]
	if !ok {
		return nil, ErrUnknownPool
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	if snap.User.ASTBalance < amount {
		return nil, ErrInsufficientFunds
	}

	now := s.now().UTC()
	position := domain.StakingPosition{
		ID:        "stake-" + uuid.NewString(),
		PoolType:  poolType,
		Amount:    amount,
		APY:       pool.APY,
		StartDate: now,
		EndDate:   now.AddDate(0, 0, pool.TermDays),
		Rewards:   0,
		Status:    domain.PositionActive,
	}
	snap.User.StakingPools = append(snap.User.StakingPools, position)
	applyBalance(&snap.User, -amount)

	if err := s.saveSnapshot(ctx, snap); err != nil {
		return nil, err
	}
	mutations.WithLabelValues("create_stake_position").Inc()
	return &snap.User.StakingPools[len(snap.User.StakingPools)-1], nil
}

// UnstakePosition exits an active position: status moves to withdrawn and
// principal plus accrued rewards are credited back. Non-active positions are
// returned unchanged; the principal can never be credited twice.
func (s *Store) UnstakePosition(ctx context.Context, positionID string) (*domain.StakingPosition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	var position *domain.StakingPosition
	for i := range snap.User.StakingPools {
		if snap.User.StakingPools[i].ID == positionID {
			position = &snap.User.StakingPools[i]
			break
		}
	}
	if position == nil {
		return nil, ErrNotFound
	}
	if position.Status != domain.PositionActive {
		return position, nil
	}

	position.Rewards += position.Accrued(s.now().UTC())
	position.Status = domain.PositionWithdrawn
	applyBalance(&snap.User, position.Amount+position.Rewards)

	if err := s.saveSnapshot(ctx, snap); err != nil {
		return nil, err
	}
	mutations.WithLabelValues("unstake_position").Inc()
	return position, nil
}

// SettleMatured moves every active position past its endDate to completed,
// stamps the full-term rewards and credits principal plus rewards. The
// active -> completed transition is time-driven; the server runs this from a
// ticker. Returns the settled positions.
func (s *Store) SettleMatured(ctx context.Context) ([]domain.StakingPosition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	var settled []domain.StakingPosition
	for i := range snap.User.StakingPools {
		p := &snap.User.StakingPools[i]
		if p.Status != domain.PositionActive || !p.Matured(now) {
			continue
		}
		p.Rewards += p.Accrued(now) // capped at the full term
		p.Status = domain.PositionCompleted
		applyBalance(&snap.User, p.Amount+p.Rewards)
		settled = append(settled, *p)
	}
	if len(settled) == 0 {
		return nil, nil
	}

	if err := s.saveSnapshot(ctx, snap); err != nil {
		return nil, err
	}
	mutations.WithLabelValues("settle_matured").Inc()
	return settled, nil
}

// JoinBattle enrolls the user as a participant with score 0 and the next
// rank. Joining is idempotent by participant id: a second join does not
// duplicate the entry.
func (s *Store) JoinBattle(ctx context.Context, battleID string) (*domain.Battle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	var battle *domain.Battle
	for i := range snap.Battles {
		if snap.Battles[i].ID == battleID {
			battle = &snap.Battles[i]
			break
		}
	}
	if battle == nil {
		return nil, ErrNotFound
	}

	if !battle.HasParticipant(snap.User.ID) {
		battle.Participants = append(battle.Participants, domain.BattleParticipant{
			ID:    snap.User.ID,
			Name:  snap.User.Name,
			Score: 0,
			Rank:  len(battle.Participants) + 1,
		})
		if err := s.saveSnapshot(ctx, snap); err != nil {
			return nil, err
		}
		mutations.WithLabelValues("join_battle").Inc()
	}
	return battle, nil
}

// AddGameSession appends a played-game record and credits its reward
// unconditionally.
func (s *Store) AddGameSession(ctx context.Context, gameType domain.GameType, score int, reward float64, duration int) (*domain.GameSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	session := domain.GameSession{
		ID:       "game-" + uuid.NewString(),
		GameType: gameType,
		Score:    score,
		Reward:   reward,
		PlayedAt: s.now().UTC(),
		Duration: duration,
	}
	snap.GameSessions = append(snap.GameSessions, session)
	applyBalance(&snap.User, reward)

	if err := s.saveSnapshot(ctx, snap); err != nil {
		return nil, err
	}
	mutations.WithLabelValues("add_game_session").Inc()
	return &session, nil
}

// ConnectWallet records a wallet connection under its own storage key and
// mirrors the identifiers onto the user. Reconnecting overwrites the prior
// connection.
func (s *Store) ConnectWallet(ctx context.Context, walletID, address string) (*domain.WalletConnection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	conn := &domain.WalletConnection{
		ID:          walletID,
		Address:     address,
		ConnectedAt: s.now().UTC(),
	}
	b, err := json.Marshal(conn)
	if err != nil {
		return nil, err
	}
	if err := s.st.Set(ctx, walletKey, b); err != nil {
		return nil, err
	}

	snap.User.WalletID = walletID
	snap.User.WalletAddress = address
	if err := s.saveSnapshot(ctx, snap); err != nil {
		return nil, err
	}
	mutations.WithLabelValues("connect_wallet").Inc()
	return conn, nil
}

// GetWalletConnection returns the stored connection, or nil when absent.
func (s *Store) GetWalletConnection(ctx context.Context) (*domain.WalletConnection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := s.st.Get(ctx, walletKey)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	conn := &domain.WalletConnection{}
	if err := json.Unmarshal(b, conn); err != nil {
		logger.Warn("stored wallet connection is malformed, discarding", "error", err)
		_ = s.st.Remove(ctx, walletKey)
		return nil, nil
	}
	return conn, nil
}

// DisconnectWallet clears the user's wallet fields and removes the
// connection record.
func (s *Store) DisconnectWallet(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		return err
	}

	snap.User.WalletID = ""
	snap.User.WalletAddress = ""
	// snapshot first: if removing the record then fails, the connection is
	// still present and a reconnect recovers the user fields
	if err := s.saveSnapshot(ctx, snap); err != nil {
		return err
	}
	if err := s.st.Remove(ctx, walletKey); err != nil {
		return err
	}
	mutations.WithLabelValues("disconnect_wallet").Inc()
	return nil
}

// Reset erases the snapshot and the wallet connection. The next operation
// reseeds the fixtures.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.st.Remove(ctx, snapshotKey); err != nil {
		return err
	}
	if err := s.st.Remove(ctx, walletKey); err != nil {
		return err
	}
	mutations.WithLabelValues("reset").Inc()
	return nil
}
