package engine

import "github.com/jimmy058910/replitballgame-sub002/internal/game"

// Weighted player selection, cumulative-probability style. Weights favor the
// player whose role or attributes fit the play without making anyone
// impossible.

func (g *Generator) pickByRole(roster []game.Player, role game.Role) *game.Player {
	return g.pickWeighted(roster, func(p *game.Player) float64 {
		if p.Role == role {
			return 4.0
		}
		return 1.0
	})
}

func (g *Generator) pickReceiver(roster []game.Player, passer *game.Player) *game.Player {
	return g.pickWeighted(roster, func(p *game.Player) float64 {
		if p.ID == passer.ID {
			return 0
		}
		return 1 + float64(p.Attr.Catching)/50
	})
}

func (g *Generator) pickByCoverage(roster []game.Player) *game.Player {
	return g.pickWeighted(roster, func(p *game.Player) float64 {
		return 1 + coverage(p)/50
	})
}

func (g *Generator) pickByPower(roster []game.Player) *game.Player {
	return g.pickWeighted(roster, func(p *game.Player) float64 {
		return 1 + float64(p.Attr.Power)/50
	})
}

func (g *Generator) pickAny(roster []game.Player) *game.Player {
	if len(roster) == 0 {
		return nil
	}
	return &roster[g.rng.Intn(len(roster))]
}

// pickMostFatigued weights by accumulated fatigue; tired legs get hurt.
func (g *Generator) pickMostFatigued(roster []game.Player) *game.Player {
	return g.pickWeighted(roster, func(p *game.Player) float64 {
		return 1 + g.fatigue[p.ID]/20
	})
}

func (g *Generator) pickWeighted(roster []game.Player, weight func(*game.Player) float64) *game.Player {
	if len(roster) == 0 {
		return nil
	}

	weights := make([]float64, len(roster))
	total := 0.0
	for i := range roster {
		w := weight(&roster[i])
		if w < 0 {
			w = 0
		}
		weights[i] = w
		total += w
	}
	if total == 0 {
		return &roster[0]
	}

	r := g.rng.Float64() * total
	cumulative := 0.0
	for i, w := range weights {
		cumulative += w
		if r <= cumulative {
			return &roster[i]
		}
	}
	return &roster[len(roster)-1]
}

func (g *Generator) squadFatigue(roster []game.Player) float64 {
	if len(roster) == 0 {
		return 0
	}
	sum := 0.0
	for i := range roster {
		sum += g.fatigue[roster[i].ID]
	}
	return sum / float64(len(roster))
}
