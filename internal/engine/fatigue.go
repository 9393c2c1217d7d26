package engine

import "github.com/jimmy058910/replitballgame-sub002/internal/game"

// Action intensities per event kind. Contact plays drain more than throws.
var actionIntensity = map[game.EventType]float64{
	game.EventRun:            1.0,
	game.EventPassComplete:   0.6,
	game.EventPassIncomplete: 0.5,
	game.EventTackle:         1.2,
	game.EventKnockdown:      1.4,
	game.EventFumble:         1.0,
	game.EventInterception:   0.9,
	game.EventScore:          1.1,
	game.EventInjury:         0.8,
}

// settleFatigue applies the post-event fatigue update to every player on both
// rosters: participants pay depletionRate x intensity (dampened by their
// stamina attribute, floored at the configured minimum loss), everyone else
// recovers by recoveryMultiplier x restProportion. This exact formula is load
// bearing for reproducibility; late-game odds depend on it.
func (g *Generator) settleFatigue(ctx TickContext, evt game.Event) {
	intensity, ok := actionIntensity[evt.Kind()]
	if !ok {
		return
	}

	involved := participants(evt)

	for _, roster := range [][]game.Player{ctx.Home, ctx.Away} {
		for i := range roster {
			p := &roster[i]
			if _, out := g.injured[p.ID]; out {
				continue
			}
			if _, in := involved[p.ID]; in {
				g.applyFatigue(p, intensity, 0)
			} else {
				g.applyFatigue(p, 0, 1)
			}
		}
	}
}

func (g *Generator) applyFatigue(p *game.Player, intensity, restProportion float64) {
	f := g.cfg.Current().Fatigue

	dampen := 1 - f.StaminaOffset*float64(p.Attr.Stamina)/100
	loss := f.DepletionRate*intensity*dampen - f.RecoveryMultiplier*restProportion
	if intensity > 0 && loss < f.MinLoss {
		loss = f.MinLoss
	}

	g.fatigue[p.ID] = clamp(g.fatigue[p.ID]+loss, 0, 100)
}

// participants collects the player IDs touched by an event.
func participants(evt game.Event) map[int]struct{} {
	out := make(map[int]struct{}, 2)
	add := func(p *game.Player) {
		if p != nil {
			out[p.ID] = struct{}{}
		}
	}

	switch e := evt.(type) {
	case game.Run:
		add(e.Runner)
	case game.PassComplete:
		add(e.Passer)
		add(e.Receiver)
	case game.PassIncomplete:
		add(e.Passer)
		add(e.Intended)
	case game.Tackle:
		add(e.Tackler)
		add(e.Carrier)
	case game.Knockdown:
		add(e.Blocker)
		add(e.Victim)
	case game.Fumble:
		add(e.Carrier)
		add(e.ForcedBy)
	case game.Interception:
		add(e.Defender)
		add(e.Passer)
	case game.Injury:
		add(e.Player)
	case game.Score:
		add(e.Scorer)
	}
	return out
}
