// Package engine turns rosters, stadium effects and fatigue into plays. The
// generator owns the per-match fatigue ledger; everything else arrives through
// TickContext and the injected config store, so two generators built from the
// same seed and inputs emit identical event streams.
package engine

import (
	"math"

	"github.com/jimmy058910/replitballgame-sub002/internal/config"
	"github.com/jimmy058910/replitballgame-sub002/internal/game"
	"github.com/jimmy058910/replitballgame-sub002/internal/stadium"
)

// Per-slot activity odds. Three slots per tick gives the 0-3 events the
// cadence of a broadcast play feed.
var slotActivity = [3]float64{0.90, 0.45, 0.15}

// MedicalReporter receives injuries as they happen. Delivery mechanics are
// external; the generator only reports.
type MedicalReporter interface {
	ReportInjury(matchID string, p *game.Player, severity game.HealthStatus)
}

// TickContext is everything one tick of play generation needs.
type TickContext struct {
	MatchID    string
	Home       []game.Player
	Away       []game.Player
	Possession game.Side
	Effects    stadium.Effects
	Phase      game.GamePhase
	// Momentum in [-1,1], positive favors the home side.
	Momentum float64
	// Camaraderie per side, 0-100; cohesive squads complete more passes.
	HomeCamaraderie float64
	AwayCamaraderie float64
}

// Generator emits 0-3 plays per tick.
type Generator struct {
	cfg *config.Store
	rng game.Rand
	med MedicalReporter

	fatigue map[int]float64           // playerID -> 0-100
	injured map[int]game.HealthStatus // players hurt during this match
}

// New creates a generator for one match. med may be nil.
func New(cfg *config.Store, rng game.Rand, med MedicalReporter) *Generator {
	return &Generator{
		cfg:     cfg,
		rng:     rng,
		med:     med,
		fatigue: make(map[int]float64),
		injured: make(map[int]game.HealthStatus),
	}
}

// Fatigue returns the current fatigue for a player, 0-100.
func (g *Generator) Fatigue(playerID int) float64 { return g.fatigue[playerID] }

// GeneratePlays rolls up to three plays for one tick. Turnover and score
// events are followed by a PossessionChange event the state machine applies.
func (g *Generator) GeneratePlays(ctx TickContext) []game.Event {
	var events []game.Event
	possession := ctx.Possession
	if possession == game.SideNone {
		possession = game.SideHome
	}

	for slot := 0; slot < len(slotActivity); slot++ {
		if g.rng.Float64() >= slotActivity[slot] {
			continue
		}

		evt := g.generateOne(ctx, possession)
		if evt == nil {
			continue
		}
		events = append(events, evt)
		g.settleFatigue(ctx, evt)

		if to, flips := flipsPossession(evt, possession); flips {
			events = append(events, game.PossessionChange{To: to})
			possession = to
		}
	}

	return events
}

// generateOne picks an event type by cumulative probability over the adjusted
// rate table, then realizes it with concrete players.
func (g *Generator) generateOne(ctx TickContext, possession game.Side) game.Event {
	rates := g.cfg.Current().Rates

	attack := g.available(ctx.roster(possession))
	defense := g.available(ctx.roster(possession.Opponent()))
	if len(attack) == 0 || len(defense) == 0 {
		return nil
	}

	// Home crowds make life harder for the visiting offense and sharpen the
	// home defense.
	defensiveBoost := 1.0
	if possession == game.SideAway {
		defensiveBoost += ctx.Effects.IntimidationFactor / 20
	}

	adjusted := []struct {
		typ  game.EventType
		prob float64
	}{
		{game.EventRun, rates.Run},
		{game.EventPassComplete, rates.Pass}, // resolved to complete/incomplete/pick below
		{game.EventTackle, rates.Tackle * defensiveBoost},
		{game.EventKnockdown, rates.Knockdown * defensiveBoost},
		{game.EventScore, rates.Score * (1 + momentumFor(possession, ctx.Momentum)*0.3)},
		{game.EventInjury, rates.Injury * (1 + g.squadFatigue(attack)/100)},
		{game.EventFumble, rates.FumbleForced*defensiveBoost + rates.FumbleUnforced},
	}

	total := 0.0
	for _, c := range adjusted {
		total += c.prob
	}
	r := g.rng.Float64() * total
	cumulative := 0.0
	for _, c := range adjusted {
		cumulative += c.prob
		if r <= cumulative {
			return g.realize(c.typ, ctx, possession, attack, defense)
		}
	}
	return g.realize(adjusted[len(adjusted)-1].typ, ctx, possession, attack, defense)
}

func (g *Generator) realize(typ game.EventType, ctx TickContext, possession game.Side, attack, defense []game.Player) game.Event {
	rates := g.cfg.Current().Rates

	switch typ {
	case game.EventRun:
		runner := g.pickByRole(attack, game.RoleRunner)
		yards := g.runYards(runner)
		return game.Run{
			Side:      possession,
			Runner:    runner,
			Yards:     yards,
			Breakaway: runner.Attr.Speed >= 85 && yards >= 12,
		}

	case game.EventPassComplete:
		passer := g.pickByRole(attack, game.RolePasser)
		receiver := g.pickReceiver(attack, passer)
		defender := g.pickByCoverage(defense)

		if g.rng.Float64() < g.interceptionChance(passer, defender, ctx) {
			return game.Interception{Side: possession.Opponent(), Defender: defender, Passer: passer}
		}
		if g.rng.Float64() >= g.completionChance(passer, receiver, possession, ctx) {
			return game.PassIncomplete{Side: possession, Passer: passer, Intended: receiver}
		}
		yards := g.passYards(passer, receiver)
		return game.PassComplete{
			Side:     possession,
			Passer:   passer,
			Receiver: receiver,
			Yards:    yards,
			Precise:  passer.Attr.Throwing >= 85,
		}

	case game.EventTackle:
		tackler := g.pickByPower(defense)
		carrier := g.pickByRole(attack, game.RoleRunner)
		return game.Tackle{
			Side:        possession.Opponent(),
			Tackler:     tackler,
			Carrier:     carrier,
			PowerTackle: tackler.Attr.Power >= rates.PowerTackleThreshold,
		}

	case game.EventKnockdown:
		blocker := g.pickByPower(defense)
		victim := g.pickAny(attack)
		return game.Knockdown{Side: possession.Opponent(), Blocker: blocker, Victim: victim}

	case game.EventScore:
		scorer := g.pickByRole(attack, game.RoleRunner)
		return game.Score{Side: possession, Scorer: scorer}

	case game.EventInjury:
		victim := g.pickMostFatigued(append(append([]game.Player{}, attack...), defense...))
		severity := g.rollSeverity()
		g.injured[victim.ID] = severity
		if g.med != nil {
			g.med.ReportInjury(ctx.MatchID, victim, severity)
		}
		side := possession
		if victim.TeamID == defense[0].TeamID {
			side = possession.Opponent()
		}
		return game.Injury{Side: side, Player: victim, Severity: severity}

	case game.EventFumble:
		carrier := g.pickByRole(attack, game.RoleRunner)
		forced := g.rng.Float64() < rates.FumbleForced/(rates.FumbleForced+rates.FumbleUnforced)
		var forcedBy *game.Player
		if forced {
			forcedBy = g.pickByPower(defense)
		}
		return game.Fumble{Side: possession, Carrier: carrier, Forced: forced, ForcedBy: forcedBy}
	}
	return nil
}

// completionChance folds passer accuracy, receiver hands, passer fatigue and
// crowd noise for the visiting offense into the base completion rate.
func (g *Generator) completionChance(passer, receiver *game.Player, possession game.Side, ctx TickContext) float64 {
	rates := g.cfg.Current().Rates

	p := rates.PassCompletionBase
	p += (float64(passer.Attr.Throwing) - 50) / 250
	p += (float64(receiver.Attr.Catching) - 50) / 400
	p += (ctx.camaraderie(possession) - 50) / 500
	p -= g.fatigue[passer.ID] / 300

	if possession == game.SideAway {
		// Visiting passers hear the crowd.
		p -= ctx.Effects.IntimidationFactor / 60
	}

	return clamp(p, 0.10, 0.95)
}

// interceptionChance scales the base rate by defender coverage, passer
// fatigue, and the late-game pressure bonus that applies only in the clutch
// phase.
func (g *Generator) interceptionChance(passer, defender *game.Player, ctx TickContext) float64 {
	rates := g.cfg.Current().Rates

	p := rates.Interception
	p *= 0.5 + coverage(defender)/66.0
	p *= 1 + g.fatigue[passer.ID]/200

	if ctx.Phase == game.PhaseClutch {
		p *= rates.ClutchInterceptionBonus
	}

	return clamp(p, 0, 0.5)
}

// coverage is a defender's ball-hawking ability.
func coverage(p *game.Player) float64 {
	return (float64(p.Attr.Catching) + float64(p.Attr.Agility)) / 2
}

func (g *Generator) runYards(runner *game.Player) int {
	base := 2 + g.rng.Intn(7)
	burst := (runner.Attr.Speed + runner.Attr.Agility) / 40
	fatiguePenalty := int(g.fatigue[runner.ID] / 25)
	yards := base + burst - fatiguePenalty
	if yards < -2 {
		yards = -2
	}
	return yards
}

func (g *Generator) passYards(passer, receiver *game.Player) int {
	base := 4 + g.rng.Intn(10)
	arm := passer.Attr.Throwing / 25
	route := receiver.Attr.Agility / 33
	return base + arm + route
}

func (g *Generator) rollSeverity() game.HealthStatus {
	switch r := g.rng.Float64(); {
	case r < 0.60:
		return game.HealthMinorInjury
	case r < 0.90:
		return game.HealthModerateInjury
	}
	return game.HealthSevereInjury
}

// flipsPossession reports whether an event hands the ball over, and to whom.
// Scores flip to the conceding side for the restart.
func flipsPossession(evt game.Event, possession game.Side) (game.Side, bool) {
	switch evt.Kind() {
	case game.EventFumble, game.EventInterception:
		return possession.Opponent(), true
	case game.EventScore:
		return possession.Opponent(), true
	}
	return game.SideNone, false
}

func momentumFor(side game.Side, momentum float64) float64 {
	if side == game.SideAway {
		return -momentum
	}
	return momentum
}

func (ctx TickContext) camaraderie(side game.Side) float64 {
	if side == game.SideAway {
		return ctx.AwayCamaraderie
	}
	return ctx.HomeCamaraderie
}

func (ctx TickContext) roster(side game.Side) []game.Player {
	if side == game.SideAway {
		return ctx.Away
	}
	return ctx.Home
}

// available filters out players hurt earlier in this match or already listed
// as unavailable on the roster.
func (g *Generator) available(roster []game.Player) []game.Player {
	out := make([]game.Player, 0, len(roster))
	for _, p := range roster {
		if p.Health == game.HealthSevereInjury || p.Health == game.HealthModerateInjury {
			continue
		}
		if _, hurt := g.injured[p.ID]; hurt {
			continue
		}
		out = append(out, p)
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
