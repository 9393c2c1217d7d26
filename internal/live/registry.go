package live

import (
	"context"
	"fmt"
	"hash/fnv"
	"sort"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/jimmy058910/replitballgame-sub002/internal/config"
	"github.com/jimmy058910/replitballgame-sub002/internal/game"
	"github.com/jimmy058910/replitballgame-sub002/internal/notify"
	"github.com/jimmy058910/replitballgame-sub002/internal/roster"
	"github.com/jimmy058910/replitballgame-sub002/internal/stadium"
	"github.com/jimmy058910/replitballgame-sub002/internal/store"
)

const supervisorInterval = 30 * time.Second

// Deps are the collaborators every runner shares.
type Deps struct {
	Cfg     *config.Store
	Repo    store.Repository
	Notify  notify.Dispatcher
	Rosters roster.Provider
	Venues  stadium.Provider

	TickInterval   time.Duration
	SnapshotEvents int

	// Seed overrides the per-match RNG seed; nil derives one from the match
	// ID so replays of the same match are identical.
	Seed func(matchID string) int64
}

// Registry tracks every runner, live or completed, and routes commands to
// them. Completed runners stay registered so their final snapshot and log
// remain readable.
type Registry struct {
	deps Deps

	mu      sync.RWMutex
	runners map[string]*Runner
	// pending reserves match IDs between the duplicate check and runner
	// installation, so overlapping Start calls cannot both spawn a runner.
	pending map[string]struct{}

	// runCtx outlives any request context; cancelling it stops every runner.
	runCtx context.Context
	cancel context.CancelFunc

	sched gocron.Scheduler
}

func NewRegistry(deps Deps) *Registry {
	if deps.TickInterval <= 0 {
		deps.TickInterval = 2 * time.Second
	}
	if deps.SnapshotEvents <= 0 {
		deps.SnapshotEvents = 10
	}
	if deps.Repo == nil {
		deps.Repo = store.Nop{}
	}
	if deps.Notify == nil {
		deps.Notify = notify.Nop{}
	}
	if deps.Seed == nil {
		deps.Seed = seedFromID
	}
	runCtx, cancel := context.WithCancel(context.Background())
	return &Registry{
		deps:    deps,
		runners: make(map[string]*Runner),
		pending: make(map[string]struct{}),
		runCtx:  runCtx,
		cancel:  cancel,
	}
}

func seedFromID(matchID string) int64 {
	h := fnv.New64a()
	h.Write([]byte(matchID))
	return int64(h.Sum64())
}

// Start fetches rosters and venue data, spawns the match goroutine, and
// returns the initial snapshot. ctx bounds the collaborator fetches only; the
// runner itself lives on the registry's context. Starting an already-live
// match is rejected; restarting a completed one replaces its record.
func (g *Registry) Start(ctx context.Context, m game.Match) (game.Snapshot, error) {
	rules, ok := g.deps.Cfg.Current().MatchTypes[m.Type]
	if !ok {
		return game.Snapshot{}, fmt.Errorf("%w: no rules configured for match type %q", config.ErrBadConfig, m.Type)
	}

	// Reserve the ID before the collaborator fetches so only one of two
	// overlapping Start calls can ever install a runner.
	g.mu.Lock()
	if existing, ok := g.runners[m.ID]; ok && !existing.Snapshot().Status.Terminal() {
		g.mu.Unlock()
		return game.Snapshot{}, fmt.Errorf("%w: %s", ErrAlreadyLive, m.ID)
	}
	if _, ok := g.pending[m.ID]; ok {
		g.mu.Unlock()
		return game.Snapshot{}, fmt.Errorf("%w: %s", ErrAlreadyLive, m.ID)
	}
	g.pending[m.ID] = struct{}{}
	g.mu.Unlock()

	defer func() {
		g.mu.Lock()
		delete(g.pending, m.ID)
		g.mu.Unlock()
	}()

	home, err := g.deps.Rosters.Roster(ctx, m.HomeTeamID)
	if err != nil {
		return game.Snapshot{}, fmt.Errorf("home roster: %w", err)
	}
	away, err := g.deps.Rosters.Roster(ctx, m.AwayTeamID)
	if err != nil {
		return game.Snapshot{}, fmt.Errorf("away roster: %w", err)
	}

	venue, loyalty, err := g.deps.Venues.ByID(ctx, m.StadiumID)
	if err != nil {
		return game.Snapshot{}, fmt.Errorf("stadium: %w", err)
	}
	effects := stadium.Compute(venue, loyalty, g.deps.Cfg.Current().Stadium)

	rng := game.NewSeededRand(g.deps.Seed(m.ID))
	r := newRunner(m, rules, g.deps, home, away, effects, rng)

	g.mu.Lock()
	g.runners[m.ID] = r
	g.mu.Unlock()

	go r.run(g.runCtx)
	return r.Snapshot(), nil
}

func (g *Registry) runner(matchID string) (*Runner, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	r, ok := g.runners[matchID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMatch, matchID)
	}
	return r, nil
}

// Snapshot returns the latest published state for one match.
func (g *Registry) Snapshot(matchID string) (game.Snapshot, error) {
	r, err := g.runner(matchID)
	if err != nil {
		return game.Snapshot{}, err
	}
	return r.Snapshot(), nil
}

// Commentary returns the full event log for one match, oldest first.
func (g *Registry) Commentary(matchID string) ([]game.LogEntry, error) {
	r, err := g.runner(matchID)
	if err != nil {
		return nil, err
	}
	return r.Log(), nil
}

// List returns a snapshot per registered match, ordered by match ID.
func (g *Registry) List() []game.Snapshot {
	g.mu.RLock()
	out := make([]game.Snapshot, 0, len(g.runners))
	for _, r := range g.runners {
		out = append(out, r.Snapshot())
	}
	g.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].MatchID < out[j].MatchID })
	return out
}

// ForceComplete ends a match immediately. Idempotent.
func (g *Registry) ForceComplete(matchID string) error {
	r, err := g.runner(matchID)
	if err != nil {
		return err
	}
	return r.ForceComplete()
}

// Resume ends a halftime intermission early.
func (g *Registry) Resume(matchID string) error {
	r, err := g.runner(matchID)
	if err != nil {
		return err
	}
	return r.Resume()
}

// StartSupervisor schedules the sweep that force-completes matches exceeding
// their real-time lifetime ceiling. A stuck or clock-skewed match ends in a
// consistent COMPLETED state instead of ticking forever.
func (g *Registry) StartSupervisor() error {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("create supervisor scheduler: %w", err)
	}
	if _, err := sched.NewJob(
		gocron.DurationJob(supervisorInterval),
		gocron.NewTask(g.sweep),
	); err != nil {
		return fmt.Errorf("schedule supervisor job: %w", err)
	}
	sched.Start()
	g.sched = sched
	return nil
}

func (g *Registry) sweep() {
	g.mu.RLock()
	runners := make([]*Runner, 0, len(g.runners))
	for _, r := range g.runners {
		runners = append(runners, r)
	}
	g.mu.RUnlock()

	for _, r := range runners {
		snap := r.Snapshot()
		if snap.Status.Terminal() {
			continue
		}
		limit := time.Duration(r.rules.MaxLifetimeMinutes) * time.Minute
		if limit <= 0 {
			continue
		}
		if age := time.Since(r.StartedAt()); age > limit {
			logInfo("⏱️  supervisor: match %s exceeded lifetime (%s > %s), force-completing", snap.MatchID, age.Round(time.Second), limit)
			if err := r.ForceComplete(); err != nil {
				logInfo("⚠️  supervisor: force-complete %s: %v", snap.MatchID, err)
			}
		}
	}
}

// Shutdown stops the supervisor and cancels every runner. Runners
// force-complete on cancellation so results persist before the process exits.
func (g *Registry) Shutdown(ctx context.Context) {
	if g.sched != nil {
		_ = g.sched.Shutdown()
	}
	g.cancel()

	g.mu.RLock()
	runners := make([]*Runner, 0, len(g.runners))
	for _, r := range g.runners {
		runners = append(runners, r)
	}
	g.mu.RUnlock()

	for _, r := range runners {
		select {
		case <-r.Done():
		case <-ctx.Done():
			return
		}
	}
}
