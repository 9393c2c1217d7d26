package live

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jimmy058910/replitballgame-sub002/internal/config"
	"github.com/jimmy058910/replitballgame-sub002/internal/game"
	"github.com/jimmy058910/replitballgame-sub002/internal/notify"
	"github.com/jimmy058910/replitballgame-sub002/internal/roster"
	"github.com/jimmy058910/replitballgame-sub002/internal/stadium"
	"github.com/jimmy058910/replitballgame-sub002/internal/store"
)

const testType game.MatchType = "test"

func testRegistryTunables(t *testing.T, tun *config.Tunables, tick time.Duration) *Registry {
	t.Helper()

	reg := NewRegistry(Deps{
		Cfg:            config.NewStore(tun),
		Rosters:        roster.NewStatic(314),
		Venues:         stadium.StaticProvider{},
		TickInterval:   tick,
		SnapshotEvents: 5,
		Seed:           func(string) int64 { return 271828 },
	})
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		reg.Shutdown(ctx)
	})
	return reg
}

func testRegistry(t *testing.T, rules config.MatchTypeRules, tick time.Duration) *Registry {
	t.Helper()

	tun := config.Default()
	tun.MatchTypes[testType] = rules
	return testRegistryTunables(t, tun, tick)
}

func testMatch(id string) game.Match {
	return game.Match{
		ID:           id,
		HomeTeamID:   "team-h",
		AwayTeamID:   "team-a",
		HomeTeamName: "Harriers",
		AwayTeamName: "Aurochs",
		Type:         testType,
		StadiumID:    "venue-1",
		StartAnchor:  time.Now(),
	}
}

func waitForStatus(t *testing.T, reg *Registry, matchID string, want game.Status, timeout time.Duration) game.Snapshot {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		snap, err := reg.Snapshot(matchID)
		if err != nil {
			t.Fatalf("Snapshot: %v", err)
		}
		if snap.Status == want {
			return snap
		}
		time.Sleep(2 * time.Millisecond)
	}
	snap, _ := reg.Snapshot(matchID)
	t.Fatalf("match %s never reached %s, stuck at %s", matchID, want, snap.Status)
	return game.Snapshot{}
}

func TestMatchRunsToCompletion(t *testing.T) {
	// Two-second halves at 200x: regulation lasts roughly 20ms of real time.
	reg := testRegistry(t, config.MatchTypeRules{
		CompressionFactor:  200,
		HalfSeconds:        2,
		MaxLifetimeMinutes: 1,
	}, 5*time.Millisecond)

	snap, err := reg.Start(context.Background(), testMatch("m-complete"))
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if snap.Status != game.StatusLiveFirstHalf && snap.Status != game.StatusScheduled {
		t.Fatalf("initial status %s", snap.Status)
	}

	final := waitForStatus(t, reg, "m-complete", game.StatusCompleted, 3*time.Second)
	if final.GameTime != 4*time.Second {
		t.Errorf("final GameTime = %v, want full regulation 4s", final.GameTime)
	}
	if final.IsRunning {
		t.Error("completed match still marked running")
	}

	log, err := reg.Commentary("m-complete")
	if err != nil {
		t.Fatalf("Commentary: %v", err)
	}
	if len(log) == 0 {
		t.Fatal("completed match has no event log")
	}
	if last := log[len(log)-1]; last.Type != game.EventFullTime {
		t.Errorf("last log entry is %s, want full_time", last.Type)
	}
	if first := log[0]; first.Type != game.EventKickoff {
		t.Errorf("first log entry is %s, want kickoff", first.Type)
	}

	// The scoreboard is exactly the scores in the log.
	scores := 0
	prevTime := time.Duration(-1)
	for _, entry := range log {
		if entry.Type == game.EventScore {
			scores++
		}
		if entry.GameTime < prevTime {
			t.Fatalf("log game time regressed: %v after %v", entry.GameTime, prevTime)
		}
		prevTime = entry.GameTime
	}
	if scores != final.HomeScore+final.AwayScore {
		t.Errorf("log has %d scores, scoreboard says %d", scores, final.HomeScore+final.AwayScore)
	}
}

func TestForceCompleteIsIdempotent(t *testing.T) {
	// Long regulation so the match is still in the first half when forced.
	reg := testRegistry(t, config.MatchTypeRules{
		CompressionFactor:   3.3333,
		HalfSeconds:         600,
		IntermissionSeconds: 15,
		MaxLifetimeMinutes:  20,
	}, 5*time.Millisecond)

	if _, err := reg.Start(context.Background(), testMatch("m-force")); err != nil {
		t.Fatalf("Start: %v", err)
	}
	time.Sleep(60 * time.Millisecond)

	if err := reg.ForceComplete("m-force"); err != nil {
		t.Fatalf("first ForceComplete: %v", err)
	}
	first, err := reg.Snapshot("m-force")
	if err != nil {
		t.Fatal(err)
	}
	if first.Status != game.StatusCompleted {
		t.Fatalf("status %s after force complete", first.Status)
	}

	if err := reg.ForceComplete("m-force"); err != nil {
		t.Fatalf("second ForceComplete: %v", err)
	}
	second, err := reg.Snapshot("m-force")
	if err != nil {
		t.Fatal(err)
	}

	if second.HomeScore != first.HomeScore || second.AwayScore != first.AwayScore {
		t.Errorf("scores moved after completion: %d-%d then %d-%d",
			first.HomeScore, first.AwayScore, second.HomeScore, second.AwayScore)
	}
	if second.GameTime != first.GameTime {
		t.Errorf("game time moved after completion: %v then %v", first.GameTime, second.GameTime)
	}

	if err := reg.Resume("m-force"); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Resume on completed match = %v, want ErrInvalidTransition", err)
	}
}

func TestHalftimePausesUntilResumed(t *testing.T) {
	// 100ms real halves with an intermission far longer than the test.
	reg := testRegistry(t, config.MatchTypeRules{
		CompressionFactor:   20,
		HalfSeconds:         2,
		IntermissionSeconds: 3600,
		MaxLifetimeMinutes:  10,
	}, 10*time.Millisecond)

	if _, err := reg.Start(context.Background(), testMatch("m-half")); err != nil {
		t.Fatalf("Start: %v", err)
	}

	at := waitForStatus(t, reg, "m-half", game.StatusHalftime, 3*time.Second)
	if at.GameTime != 2*time.Second {
		t.Errorf("halftime GameTime = %v, want frozen at 2s", at.GameTime)
	}
	if at.Half != 1 {
		t.Errorf("halftime Half = %d, want 1", at.Half)
	}

	// The clock must not advance during the intermission.
	time.Sleep(50 * time.Millisecond)
	still, err := reg.Snapshot("m-half")
	if err != nil {
		t.Fatal(err)
	}
	if still.Status != game.StatusHalftime || still.GameTime != at.GameTime {
		t.Fatalf("intermission leaked: status %s, game time %v", still.Status, still.GameTime)
	}

	if err := reg.Resume("m-half"); err != nil {
		t.Fatalf("Resume: %v", err)
	}
	second := waitForStatus(t, reg, "m-half", game.StatusLiveSecondHalf, time.Second)
	if second.Half != 2 {
		t.Errorf("second half snapshot Half = %d, want 2", second.Half)
	}

	if err := reg.Resume("m-half"); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Resume outside halftime = %v, want ErrInvalidTransition", err)
	}
}

func TestSnapshotsAreMonotonicAndBounded(t *testing.T) {
	reg := testRegistry(t, config.MatchTypeRules{
		CompressionFactor:  50,
		HalfSeconds:        2,
		MaxLifetimeMinutes: 1,
	}, 5*time.Millisecond)

	if _, err := reg.Start(context.Background(), testMatch("m-mono")); err != nil {
		t.Fatalf("Start: %v", err)
	}

	prev := time.Duration(-1)
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		snap, err := reg.Snapshot("m-mono")
		if err != nil {
			t.Fatal(err)
		}
		if snap.GameTime < prev {
			t.Fatalf("GameTime regressed: %v after %v", snap.GameTime, prev)
		}
		prev = snap.GameTime
		if len(snap.RecentEvents) > 5 {
			t.Fatalf("snapshot exposes %d events, cap is 5", len(snap.RecentEvents))
		}
		if snap.Status == game.StatusCompleted {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatal("match never completed")
}

func TestRegistryRejectsUnknownAndDuplicate(t *testing.T) {
	reg := testRegistry(t, config.MatchTypeRules{
		CompressionFactor:  3.3333,
		HalfSeconds:        600,
		MaxLifetimeMinutes: 20,
	}, 10*time.Millisecond)

	if _, err := reg.Snapshot("nope"); !errors.Is(err, ErrUnknownMatch) {
		t.Errorf("Snapshot unknown = %v, want ErrUnknownMatch", err)
	}
	if err := reg.ForceComplete("nope"); !errors.Is(err, ErrUnknownMatch) {
		t.Errorf("ForceComplete unknown = %v, want ErrUnknownMatch", err)
	}
	if err := reg.Resume("nope"); !errors.Is(err, ErrUnknownMatch) {
		t.Errorf("Resume unknown = %v, want ErrUnknownMatch", err)
	}

	if _, err := reg.Start(context.Background(), testMatch("m-dup")); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, err := reg.Start(context.Background(), testMatch("m-dup")); !errors.Is(err, ErrAlreadyLive) {
		t.Errorf("duplicate Start = %v, want ErrAlreadyLive", err)
	}

	if _, err := reg.Start(context.Background(), game.Match{
		ID: "m-badtype", HomeTeamID: "h", AwayTeamID: "a",
		Type: "no-such-type", StadiumID: "v",
	}); !errors.Is(err, config.ErrBadConfig) {
		t.Errorf("unknown match type = %v, want ErrBadConfig", err)
	}
}

func TestSupervisorForceCompletesExpiredMatches(t *testing.T) {
	reg := testRegistry(t, config.MatchTypeRules{
		CompressionFactor:  3.3333,
		HalfSeconds:        600,
		MaxLifetimeMinutes: 20,
	}, 5*time.Millisecond)

	if _, err := reg.Start(context.Background(), testMatch("m-stuck")); err != nil {
		t.Fatalf("Start: %v", err)
	}
	time.Sleep(20 * time.Millisecond)

	// Backdate the start so the sweep sees an expired lifetime.
	r, err := reg.runner("m-stuck")
	if err != nil {
		t.Fatal(err)
	}
	r.startedAt = time.Now().Add(-time.Hour)

	reg.sweep()

	snap := waitForStatus(t, reg, "m-stuck", game.StatusCompleted, time.Second)
	if snap.IsRunning {
		t.Error("swept match still running")
	}
}

// gatedRoster blocks roster fetches until released, holding a Start call
// open so another can arrive for the same match ID.
type gatedRoster struct {
	inner *roster.Static
	gate  chan struct{}
}

func (g *gatedRoster) Roster(ctx context.Context, teamID string) ([]game.Player, error) {
	select {
	case <-g.gate:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return g.inner.Roster(ctx, teamID)
}

func TestConcurrentStartInstallsOneRunner(t *testing.T) {
	gate := make(chan struct{})
	tun := config.Default()
	tun.MatchTypes[testType] = config.MatchTypeRules{
		CompressionFactor:  3.3333,
		HalfSeconds:        600,
		MaxLifetimeMinutes: 20,
	}
	reg := NewRegistry(Deps{
		Cfg:            config.NewStore(tun),
		Rosters:        &gatedRoster{inner: roster.NewStatic(314), gate: gate},
		Venues:         stadium.StaticProvider{},
		TickInterval:   5 * time.Millisecond,
		SnapshotEvents: 5,
		Seed:           func(string) int64 { return 271828 },
	})
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		reg.Shutdown(ctx)
	})

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := reg.Start(context.Background(), testMatch("m-race"))
			errs <- err
		}()
	}

	// Give both calls time to pass the duplicate check before any roster
	// fetch can finish.
	time.Sleep(20 * time.Millisecond)
	close(gate)
	wg.Wait()
	close(errs)

	var started, rejected int
	for err := range errs {
		switch {
		case err == nil:
			started++
		case errors.Is(err, ErrAlreadyLive):
			rejected++
		default:
			t.Fatalf("Start: %v", err)
		}
	}
	if started != 1 || rejected != 1 {
		t.Fatalf("got %d started and %d rejected, want exactly one of each", started, rejected)
	}

	// The surviving runner must be the only one producing a log: exactly one
	// kickoff entry.
	time.Sleep(30 * time.Millisecond)
	log, err := reg.Commentary("m-race")
	if err != nil {
		t.Fatalf("Commentary: %v", err)
	}
	kickoffs := 0
	for _, entry := range log {
		if entry.Type == game.EventKickoff {
			kickoffs++
		}
	}
	if kickoffs != 1 {
		t.Errorf("log has %d kickoffs, want 1", kickoffs)
	}
}

func TestTiedRegulationRunsBoundedOvertime(t *testing.T) {
	// Scoring disabled, so regulation ends level and overtime runs its full
	// horizon without producing a winner.
	tun := config.Default()
	tun.Rates.Score = 0
	tun.MatchTypes[testType] = config.MatchTypeRules{
		CompressionFactor:  20,
		HalfSeconds:        1,
		OvertimeSeconds:    2,
		RequiresWinner:     true,
		MaxLifetimeMinutes: 10,
	}
	reg := testRegistryTunables(t, tun, 5*time.Millisecond)

	if _, err := reg.Start(context.Background(), testMatch("m-ot")); err != nil {
		t.Fatalf("Start: %v", err)
	}

	ot := waitForStatus(t, reg, "m-ot", game.StatusOvertime, 3*time.Second)
	if ot.Half != 3 {
		t.Errorf("overtime snapshot Half = %d, want 3", ot.Half)
	}
	if ot.HomeScore != 0 || ot.AwayScore != 0 {
		t.Errorf("overtime entered at %d-%d, want level 0-0", ot.HomeScore, ot.AwayScore)
	}

	final := waitForStatus(t, reg, "m-ot", game.StatusCompleted, 3*time.Second)
	if final.HomeScore != final.AwayScore {
		t.Errorf("final score %d-%d, scoring was disabled", final.HomeScore, final.AwayScore)
	}
	if final.GameTime != 4*time.Second {
		t.Errorf("final GameTime = %v, want regulation 2s plus overtime 2s", final.GameTime)
	}

	log, err := reg.Commentary("m-ot")
	if err != nil {
		t.Fatalf("Commentary: %v", err)
	}
	sawOvertime := false
	for _, entry := range log {
		if entry.Type == game.EventOvertime {
			sawOvertime = true
		}
	}
	if !sawOvertime {
		t.Error("log never announced overtime")
	}
	if last := log[len(log)-1]; last.Type != game.EventFullTime {
		t.Errorf("last log entry is %s, want full_time", last.Type)
	}
}

func testRunner(t *testing.T, tun *config.Tunables, rules config.MatchTypeRules) *Runner {
	t.Helper()

	deps := Deps{
		Cfg:            config.NewStore(tun),
		Repo:           store.Nop{},
		Notify:         notify.Nop{},
		TickInterval:   time.Millisecond,
		SnapshotEvents: 5,
	}
	squads := roster.NewStatic(314)
	home, err := squads.Roster(context.Background(), "team-h")
	if err != nil {
		t.Fatal(err)
	}
	away, err := squads.Roster(context.Background(), "team-a")
	if err != nil {
		t.Fatal(err)
	}
	venue, loyalty, err := stadium.StaticProvider{}.ByID(context.Background(), "venue-1")
	if err != nil {
		t.Fatal(err)
	}
	effects := stadium.Compute(venue, loyalty, tun.Stadium)
	return newRunner(testMatch("m-direct"), rules, deps, home, away, effects, game.NewSeededRand(8))
}

func TestOvertimeEndsOnFirstScore(t *testing.T) {
	// Only score events can occur, so sudden death resolves within a few
	// ticks, well before the horizon.
	tun := config.Default()
	tun.Rates = config.Rates{
		Score:                   0.5,
		PassCompletionBase:      0.62,
		PowerTackleThreshold:    80,
		ClutchInterceptionBonus: 1.5,
	}
	r := testRunner(t, tun, config.MatchTypeRules{
		CompressionFactor:  2,
		HalfSeconds:        600,
		OvertimeSeconds:    600,
		RequiresWinner:     true,
		MaxLifetimeMinutes: 20,
	})

	base := time.Now()
	r.status = game.StatusOvertime
	r.half = 3
	r.otAnchor = base
	r.gameTime = r.regulationTotal()

	for i := 1; i <= 100 && !r.status.Terminal(); i++ {
		r.tickOvertime(base.Add(time.Duration(i) * 50 * time.Millisecond))
	}

	if !r.status.Terminal() {
		t.Fatalf("sudden death never resolved, status %s", r.status)
	}
	if r.homeScore == r.awayScore {
		t.Fatalf("completed overtime level at %d-%d", r.homeScore, r.awayScore)
	}

	snap := r.Snapshot()
	if snap.Status != game.StatusCompleted || snap.Half != 3 {
		t.Errorf("final snapshot status %s half %d, want COMPLETED half 3", snap.Status, snap.Half)
	}
	if snap.GameTime >= r.regulationTotal()+600*time.Second {
		t.Errorf("match ran to the overtime horizon, GameTime %v", snap.GameTime)
	}
}

func TestCommentaryContextUsesActingSidesCamaraderie(t *testing.T) {
	r := testRunner(t, config.Default(), config.MatchTypeRules{
		CompressionFactor:  3.3333,
		HalfSeconds:        600,
		MaxLifetimeMinutes: 20,
	})
	r.homeCam = 80
	r.awayCam = 20

	if got := r.commentaryContext(game.SideHome).Camaraderie; got != 80 {
		t.Errorf("home side camaraderie = %v, want 80", got)
	}
	if got := r.commentaryContext(game.SideAway).Camaraderie; got != 20 {
		t.Errorf("away side camaraderie = %v, want 20", got)
	}
	if got := r.commentaryContext(game.SideNone).Camaraderie; got != 80 {
		t.Errorf("neutral event camaraderie = %v, want the home side's 80", got)
	}
}

func TestListIsOrdered(t *testing.T) {
	reg := testRegistry(t, config.MatchTypeRules{
		CompressionFactor:  3.3333,
		HalfSeconds:        600,
		MaxLifetimeMinutes: 20,
	}, 10*time.Millisecond)

	for _, id := range []string{"m-c", "m-a", "m-b"} {
		if _, err := reg.Start(context.Background(), testMatch(id)); err != nil {
			t.Fatalf("Start %s: %v", id, err)
		}
	}

	list := reg.List()
	if len(list) != 3 {
		t.Fatalf("List returned %d matches, want 3", len(list))
	}
	for i, want := range []string{"m-a", "m-b", "m-c"} {
		if list[i].MatchID != want {
			t.Errorf("List[%d] = %s, want %s", i, list[i].MatchID, want)
		}
	}
}
