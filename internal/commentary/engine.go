// Package commentary renders one natural-language line per play. Selection is
// two-phase: a softmax over the weights of the contextually applicable flavor
// pools picks a pool, then a template is picked uniformly within it and its
// placeholders substituted. Softmax keeps pool probabilities summing to 1 no
// matter how many optional pools qualify, so a balance designer retunes flavor
// frequency by moving a single weight.
package commentary

import (
	"math"

	"github.com/jimmy058910/replitballgame-sub002/internal/config"
	"github.com/jimmy058910/replitballgame-sub002/internal/game"
)

// Flavor categorizes a template pool.
type Flavor string

const (
	FlavorNeutral    Flavor = "neutral"
	FlavorRace       Flavor = "race_flavor"
	FlavorSkill      Flavor = "skill_flavor"
	FlavorContextual Flavor = "contextual"
)

// Pool is an ordered template list sharing one flavor. Race pools carry the
// race they apply to.
type Pool struct {
	Flavor    Flavor
	Race      game.Race
	Templates []string
}

// Registry maps each event type to its candidate pools.
type Registry map[game.EventType][]Pool

// Engine selects and renders commentary.
type Engine struct {
	cfg *config.Store
	rng game.Rand
	reg Registry
}

// New builds an engine over the default template registry.
func New(cfg *config.Store, rng game.Rand) *Engine {
	return NewWithRegistry(cfg, rng, defaultRegistry)
}

// NewWithRegistry builds an engine over a custom registry, for tests and
// modded template sets.
func NewWithRegistry(cfg *config.Store, rng game.Rand, reg Registry) *Engine {
	return &Engine{cfg: cfg, rng: rng, reg: reg}
}

// Render produces the line for one event. Unknown event types fall back to a
// bare play description rather than failing the tick.
func (e *Engine) Render(evt game.Event, ctx game.CommentaryContext) string {
	pools := e.candidates(evt, ctx)
	if len(pools) == 0 {
		return fallbackLine(evt)
	}

	weights := make([]float64, len(pools))
	for i, p := range pools {
		weights[i] = e.weightFor(p.Flavor)
	}

	probs := softmax(weights)
	pick := e.drawIndex(probs)
	pool := pools[pick]

	tmpl := pool.Templates[e.rng.Intn(len(pool.Templates))]
	return substitute(tmpl, vars(evt, ctx))
}

// candidates filters the event's pools down to the ones applicable right now:
// race flavor only when the acting player's race has a defined pool, skill
// flavor only when the play carried a skill flag, contextual pools only in
// the clutch phase.
func (e *Engine) candidates(evt game.Event, ctx game.CommentaryContext) []Pool {
	all, ok := e.reg[evt.Kind()]
	if !ok {
		return nil
	}

	actorRace := actingRace(evt)
	skilled := skillUsed(evt)

	out := make([]Pool, 0, len(all))
	for _, p := range all {
		switch p.Flavor {
		case FlavorRace:
			if actorRace == "" || p.Race != actorRace {
				continue
			}
		case FlavorSkill:
			if !skilled {
				continue
			}
		case FlavorContextual:
			if ctx.Phase != game.PhaseClutch {
				continue
			}
		}
		out = append(out, p)
	}
	return out
}

func (e *Engine) weightFor(f Flavor) float64 {
	w := e.cfg.Current().Commentary
	switch f {
	case FlavorRace:
		return w.RaceWeight
	case FlavorSkill:
		return w.SkillWeight
	case FlavorContextual:
		return w.ContextualWeight
	}
	return w.NeutralWeight
}

// softmax with max-subtraction for numeric stability. For any nonempty input
// the output sums to 1 within floating-point tolerance.
func softmax(weights []float64) []float64 {
	maxW := weights[0]
	for _, w := range weights[1:] {
		if w > maxW {
			maxW = w
		}
	}

	out := make([]float64, len(weights))
	sum := 0.0
	for i, w := range weights {
		out[i] = math.Exp(w - maxW)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}

// drawIndex picks an index by cumulative probability.
func (e *Engine) drawIndex(probs []float64) int {
	r := e.rng.Float64()
	cumulative := 0.0
	for i, p := range probs {
		cumulative += p
		if r <= cumulative {
			return i
		}
	}
	return len(probs) - 1
}

// skillUsed reports whether the play carried a skill flag that unlocks
// skill-flavor pools.
func skillUsed(evt game.Event) bool {
	switch e := evt.(type) {
	case game.Run:
		return e.Breakaway
	case game.PassComplete:
		return e.Precise
	case game.Tackle:
		return e.PowerTackle
	}
	return false
}

// actingRace returns the race of the player the line is about, or "" when the
// event has no featured player.
func actingRace(evt game.Event) game.Race {
	if p := featuredPlayer(evt); p != nil {
		return p.Race
	}
	return ""
}
