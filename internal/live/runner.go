package live

import (
	"context"
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"github.com/jimmy058910/replitballgame-sub002/internal/clock"
	"github.com/jimmy058910/replitballgame-sub002/internal/commentary"
	"github.com/jimmy058910/replitballgame-sub002/internal/config"
	"github.com/jimmy058910/replitballgame-sub002/internal/engine"
	"github.com/jimmy058910/replitballgame-sub002/internal/game"
	"github.com/jimmy058910/replitballgame-sub002/internal/notify"
	"github.com/jimmy058910/replitballgame-sub002/internal/stadium"
	"github.com/jimmy058910/replitballgame-sub002/internal/store"
)

// Momentum feedback constants, decayed every tick so swings fade unless
// renewed.
const (
	momentumDecay    = 0.95
	momentumScore    = 0.25
	momentumTurnover = 0.15
	momentumInjury   = 0.10
)

type cmdKind int

const (
	cmdForceComplete cmdKind = iota
	cmdResume
)

type command struct {
	kind  cmdKind
	reply chan error
}

// Runner simulates one match. All fields below the channel block are owned by
// the run goroutine; external readers go through the atomic snapshot and log
// pointers only.
type Runner struct {
	match game.Match
	rules config.MatchTypeRules

	cfg   *config.Store
	gen   *engine.Generator
	comm  *commentary.Engine
	repo  store.Repository
	notif notify.Dispatcher

	home, away []game.Player
	effects    stadium.Effects
	homeCam    float64
	awayCam    float64

	tickEvery      time.Duration
	snapshotEvents int
	startedAt      time.Time

	snap    atomic.Pointer[game.Snapshot]
	fullLog atomic.Pointer[[]game.LogEntry]
	cmds    chan command
	done    chan struct{}

	// run-goroutine state
	status     game.Status
	anchor     time.Time
	paused     time.Duration
	pauseStart time.Time
	otAnchor   time.Time
	gameTime   time.Duration
	half       int
	homeScore  int
	awayScore  int
	possession game.Side
	momentum   float64
	seq        int
	log        []game.LogEntry
	lastPlay   string
}

func newRunner(m game.Match, rules config.MatchTypeRules, deps Deps, home, away []game.Player, effects stadium.Effects, rng game.Rand) *Runner {
	r := &Runner{
		match:          m,
		rules:          rules,
		cfg:            deps.Cfg,
		repo:           deps.Repo,
		notif:          deps.Notify,
		home:           home,
		away:           away,
		effects:        effects,
		homeCam:        camaraderie(home),
		awayCam:        camaraderie(away),
		tickEvery:      deps.TickInterval,
		snapshotEvents: deps.SnapshotEvents,
		startedAt:      time.Now(),
		cmds:           make(chan command),
		done:           make(chan struct{}),
		status:         game.StatusScheduled,
		half:           1,
		possession:     game.SideHome,
	}
	r.gen = engine.New(deps.Cfg, rng, r)
	r.comm = commentary.New(deps.Cfg, rng)
	r.publish(r.startedAt)
	return r
}

// camaraderie is a squad's cohesion, 0-100, read off its leadership spread.
func camaraderie(roster []game.Player) float64 {
	if len(roster) == 0 {
		return 50
	}
	sum := 0.0
	for i := range roster {
		sum += float64(roster[i].Attr.Leadership)
	}
	return sum / float64(len(roster))
}

// ReportInjury satisfies engine.MedicalReporter; injuries go out as domain
// events the moment they happen.
func (r *Runner) ReportInjury(matchID string, p *game.Player, severity game.HealthStatus) {
	r.dispatch(notify.KindPlayerInjured, map[string]any{
		"player_id":   p.ID,
		"player_name": p.Name,
		"team_id":     p.TeamID,
		"severity":    string(severity),
	})
}

// Snapshot returns the latest published state. Safe from any goroutine.
func (r *Runner) Snapshot() game.Snapshot { return *r.snap.Load() }

// Log returns the full append-only event log. Entries already published are
// never mutated, so sharing the slice is safe.
func (r *Runner) Log() []game.LogEntry {
	if p := r.fullLog.Load(); p != nil {
		return *p
	}
	return nil
}

func (r *Runner) Match() game.Match     { return r.match }
func (r *Runner) Done() <-chan struct{} { return r.done }
func (r *Runner) StartedAt() time.Time  { return r.startedAt }

// ForceComplete ends the match now, freezing scores. Idempotent: completing a
// completed match is a no-op.
func (r *Runner) ForceComplete() error { return r.send(cmdForceComplete) }

// Resume ends the halftime intermission early. Any other state is rejected.
func (r *Runner) Resume() error { return r.send(cmdResume) }

func (r *Runner) send(k cmdKind) error {
	reply := make(chan error, 1)
	select {
	case r.cmds <- command{kind: k, reply: reply}:
		return <-reply
	case <-r.done:
		if k == cmdForceComplete {
			return nil
		}
		return fmt.Errorf("%w: match already completed", ErrInvalidTransition)
	}
}

func (r *Runner) run(ctx context.Context) {
	defer close(r.done)

	ticker := time.NewTicker(r.tickEvery)
	defer ticker.Stop()

	r.kickoff(time.Now())

	for {
		select {
		case <-ctx.Done():
			r.finish(time.Now(), true)
			return
		case cmd := <-r.cmds:
			cmd.reply <- r.handle(cmd.kind)
			if r.status.Terminal() {
				return
			}
		case now := <-ticker.C:
			r.tick(now)
			if r.status.Terminal() {
				return
			}
		}
	}
}

func (r *Runner) handle(k cmdKind) error {
	switch k {
	case cmdForceComplete:
		if r.status.Terminal() {
			return nil
		}
		r.finish(time.Now(), true)
		return nil
	case cmdResume:
		if r.status != game.StatusHalftime {
			return fmt.Errorf("%w: resume requires halftime, match is %s", ErrInvalidTransition, r.status)
		}
		r.resumeSecondHalf(time.Now())
		r.publish(time.Now())
		return nil
	}
	return fmt.Errorf("%w: unknown command", ErrInvalidTransition)
}

func (r *Runner) kickoff(now time.Time) {
	r.status = game.StatusLiveFirstHalf
	r.anchor = now
	r.record(game.PhaseChange{Type: game.EventKickoff, Half: 1, HomeScore: r.homeScore, AwayScore: r.awayScore})
	r.dispatchPhase(game.EventKickoff)
	r.publish(now)
	logInfo("🏁 %s vs %s kicked off (match %s, %s)",
		r.match.HomeTeamName, r.match.AwayTeamName, r.match.ID, r.match.Type)
}

func (r *Runner) tick(now time.Time) {
	switch r.status {
	case game.StatusHalftime:
		if now.Sub(r.pauseStart) >= r.intermission() {
			r.resumeSecondHalf(now)
		}
	case game.StatusLiveFirstHalf, game.StatusLiveSecondHalf:
		r.tickRegulation(now)
	case game.StatusOvertime:
		r.tickOvertime(now)
	default:
		return
	}

	if !r.status.Terminal() {
		r.publish(now)
	}
}

func (r *Runner) tickRegulation(now time.Time) {
	reading := clock.Compute(r.anchor, r.paused, r.rules.CompressionFactor, now, r.halfDur(), 2, r.half)
	r.gameTime = reading.GameTime

	if reading.Finished {
		if r.homeScore == r.awayScore && r.rules.RequiresWinner && r.rules.OvertimeSeconds > 0 {
			r.enterOvertime(now)
		} else {
			r.finish(now, false)
		}
		return
	}

	if reading.BoundaryCrossed && r.status == game.StatusLiveFirstHalf {
		r.enterHalftime(now)
		return
	}

	r.playTick()
}

// tickOvertime runs a bounded sudden-death period: first score wins, and the
// match completes at the overtime horizon even if still level.
func (r *Runner) tickOvertime(now time.Time) {
	otDur := time.Duration(r.rules.OvertimeSeconds) * time.Second
	reading := clock.Compute(r.otAnchor, 0, r.rules.CompressionFactor, now, otDur, 1, 1)
	r.gameTime = r.regulationTotal() + reading.GameTime

	if reading.Finished {
		r.finish(now, false)
		return
	}

	r.playTick()
	if r.homeScore != r.awayScore {
		r.finish(now, false)
	}
}

func (r *Runner) playTick() {
	r.momentum = clampMomentum(r.momentum * momentumDecay)

	events := r.gen.GeneratePlays(engine.TickContext{
		MatchID:         r.match.ID,
		Home:            r.home,
		Away:            r.away,
		Possession:      r.possession,
		Effects:         r.effects,
		Phase:           r.phase(),
		Momentum:        r.momentum,
		HomeCamaraderie: r.homeCam,
		AwayCamaraderie: r.awayCam,
	})

	for _, evt := range events {
		r.applyEvent(evt)
	}
}

func (r *Runner) applyEvent(evt game.Event) {
	switch e := evt.(type) {
	case game.Score:
		if e.Side == game.SideAway {
			r.awayScore++
		} else {
			r.homeScore++
		}
		r.nudgeMomentum(e.Side, momentumScore)
		r.dispatch(notify.KindScoreChanged, map[string]any{
			"side":       string(e.Side),
			"scorer":     e.Scorer.Name,
			"home_score": r.homeScore,
			"away_score": r.awayScore,
		})
	case game.Fumble:
		r.nudgeMomentum(e.Side.Opponent(), momentumTurnover)
	case game.Interception:
		r.nudgeMomentum(e.Side, momentumTurnover)
	case game.Injury:
		r.nudgeMomentum(e.Side.Opponent(), momentumInjury)
	case game.PossessionChange:
		r.possession = e.To
	}

	r.record(evt)
}

// record renders and appends one log entry. The log is append-only; entries
// are never rewritten once published.
func (r *Runner) record(evt game.Event) {
	line := r.comm.Render(evt, r.commentaryContext(evt.ActingSide()))
	r.seq++
	entry := game.LogEntry{
		Seq:      r.seq,
		GameTime: r.gameTime,
		Half:     r.half,
		Type:     evt.Kind(),
		Side:     evt.ActingSide(),
		Text:     line,
	}
	r.log = append(r.log, entry)
	if evt.Kind() != game.EventPossessionChange {
		r.lastPlay = line
	}
}

func (r *Runner) enterHalftime(now time.Time) {
	r.status = game.StatusHalftime
	r.pauseStart = now
	r.gameTime = r.halfDur()
	r.record(game.PhaseChange{Type: game.EventHalftime, Half: 1, HomeScore: r.homeScore, AwayScore: r.awayScore})
	r.dispatchPhase(game.EventHalftime)
	r.publish(now)
	logInfo("⏸️  match %s at halftime, %d-%d", r.match.ID, r.homeScore, r.awayScore)
}

func (r *Runner) resumeSecondHalf(now time.Time) {
	r.paused += now.Sub(r.pauseStart)
	r.status = game.StatusLiveSecondHalf
	r.half = 2
	r.record(game.PhaseChange{Type: game.EventKickoff, Half: 2, HomeScore: r.homeScore, AwayScore: r.awayScore})
	r.dispatchPhase(game.EventKickoff)
	logInfo("▶️  match %s second half underway", r.match.ID)
}

func (r *Runner) enterOvertime(now time.Time) {
	r.status = game.StatusOvertime
	r.half = 3
	r.otAnchor = now
	r.record(game.PhaseChange{Type: game.EventOvertime, Half: 3, HomeScore: r.homeScore, AwayScore: r.awayScore})
	r.dispatchPhase(game.EventOvertime)
	r.publish(now)
	logInfo("⏱️  match %s level at %d-%d, sudden-death overtime", r.match.ID, r.homeScore, r.awayScore)
}

// finish is the single exit into COMPLETED. Idempotent; scores freeze here.
func (r *Runner) finish(now time.Time, forcedStop bool) {
	if r.status.Terminal() {
		return
	}
	r.status = game.StatusCompleted
	r.record(game.PhaseChange{Type: game.EventFullTime, Half: r.half, HomeScore: r.homeScore, AwayScore: r.awayScore})
	r.publish(now)

	winner := game.SideNone
	switch {
	case r.homeScore > r.awayScore:
		winner = game.SideHome
	case r.awayScore > r.homeScore:
		winner = game.SideAway
	}

	r.dispatch(notify.KindMatchCompleted, map[string]any{
		"home_score": r.homeScore,
		"away_score": r.awayScore,
		"winner":     string(winner),
		"forced":     forcedStop,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := r.repo.SaveResult(ctx, store.Result{
		MatchID:     r.match.ID,
		HomeTeamID:  r.match.HomeTeamID,
		AwayTeamID:  r.match.AwayTeamID,
		HomeScore:   r.homeScore,
		AwayScore:   r.awayScore,
		Winner:      winner,
		Type:        r.match.Type,
		Forced:      forcedStop,
		CompletedAt: now,
	})
	if err != nil {
		logInfo("⚠️  match %s result not persisted: %v", r.match.ID, err)
	}

	logInfo("🏆 match %s complete: %s %d - %d %s",
		r.match.ID, r.match.HomeTeamName, r.homeScore, r.awayScore, r.match.AwayTeamName)
}

// publish assembles and atomically swaps in a fresh snapshot, then hands it
// to the repository's write buffer.
func (r *Runner) publish(now time.Time) {
	recent := r.log
	if len(recent) > r.snapshotEvents {
		recent = recent[len(recent)-r.snapshotEvents:]
	}

	snap := game.Snapshot{
		MatchID:      r.match.ID,
		Status:       r.status,
		GameTime:     r.gameTime,
		Half:         r.half,
		HomeScore:    r.homeScore,
		AwayScore:    r.awayScore,
		Possession:   r.possession,
		RecentEvents: recent,
		LastPlay:     r.lastPlay,
		IsRunning:    r.status.Live(),
		Stale:        r.repo.Stale(),
		UpdatedAt:    now,
	}
	r.snap.Store(&snap)

	l := r.log
	r.fullLog.Store(&l)

	r.repo.SaveSnapshot(snap)
}

// commentaryContext describes the situation for one rendered line. The
// camaraderie is the acting side's; neutral events read as the home side's.
func (r *Runner) commentaryContext(acting game.Side) game.CommentaryContext {
	cam := r.homeCam
	if acting == game.SideAway {
		cam = r.awayCam
	}
	return game.CommentaryContext{
		GameTime:     r.gameTime,
		MaxTime:      r.regulationTotal(),
		Half:         r.half,
		HomeScore:    r.homeScore,
		AwayScore:    r.awayScore,
		Phase:        r.phase(),
		Momentum:     r.momentum,
		Intimidation: r.effects.IntimidationFactor,
		Camaraderie:  cam,
	}
}

func (r *Runner) phase() game.GamePhase {
	return game.PhaseFor(r.gameTime, r.regulationTotal(), r.half)
}

func (r *Runner) halfDur() time.Duration {
	return time.Duration(r.rules.HalfSeconds) * time.Second
}

func (r *Runner) regulationTotal() time.Duration { return 2 * r.halfDur() }

func (r *Runner) intermission() time.Duration {
	return time.Duration(r.rules.IntermissionSeconds) * time.Second
}

func (r *Runner) nudgeMomentum(toward game.Side, amount float64) {
	if toward == game.SideAway {
		amount = -amount
	}
	r.momentum = clampMomentum(r.momentum + amount)
}

func clampMomentum(m float64) float64 {
	return math.Max(-1, math.Min(1, m))
}

func (r *Runner) dispatch(kind notify.Kind, data map[string]any) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	r.notif.Dispatch(ctx, notify.Event{
		Kind:    kind,
		MatchID: r.match.ID,
		At:      time.Now(),
		Data:    data,
	})
}

func (r *Runner) dispatchPhase(phase game.EventType) {
	r.dispatch(notify.KindMatchPhase, map[string]any{
		"phase":      string(phase),
		"half":       r.half,
		"home_score": r.homeScore,
		"away_score": r.awayScore,
	})
}
