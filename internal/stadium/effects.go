// Package stadium derives the crowd modifiers a venue applies to a live
// match. The calculator is pure: same stadium, loyalty and constants in, same
// effects out. Effects are derived per kickoff and never persisted.
package stadium

import (
	"math"

	"github.com/jimmy058910/replitballgame-sub002/internal/config"
)

// Stadium is the raw venue record supplied by the stadium data provider.
type Stadium struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
	// Tier 1-5, from bare field to fortress.
	Tier int `json:"tier"`
	// Amenities 0-100 aggregate of concessions/screens/lighting upgrades.
	Amenities int `json:"amenities"`
}

// Effects are the derived crowd modifiers consumed by the play generator and
// the commentary context.
type Effects struct {
	AttendanceRate     float64 `json:"attendance_rate"`      // 0.0 to 1.0
	ActualAttendance   int     `json:"actual_attendance"`
	CrowdDensity       float64 `json:"crowd_density"`        // 0.0 to 1.0
	NoiseLevel         float64 `json:"noise_level"`          // 0 to 100
	IntimidationFactor float64 `json:"intimidation_factor"`  // 0 to 10
	HomeFieldAdvantage float64 `json:"home_field_advantage"` // multiplier bonus
	MoraleBoost        float64 `json:"morale_boost"`
}

// Compute turns raw venue attributes and home fan loyalty (0-1) into crowd
// modifiers. Formula constants come from the injected config table.
func Compute(s Stadium, fanLoyalty float64, cfg config.Stadium) Effects {
	fanLoyalty = clamp(fanLoyalty, 0, 1)

	rate := clamp(cfg.BaseAttendanceRate+cfg.LoyaltyWeight*fanLoyalty, 0.05, 1.0)
	actual := int(math.Round(rate * float64(s.Capacity)))

	density := 0.0
	if s.Capacity > 0 {
		density = clamp(float64(actual)/float64(s.Capacity), 0, 1)
	}

	// A packed small ground is louder than a half-empty bowl of the same
	// headcount.
	noise := clamp(density*cfg.NoisePerDensity*(0.8+0.05*float64(s.Tier)), 0, 100)

	intimidation := clamp((noise/100)*cfg.IntimidationScale*(0.5+fanLoyalty/2), 0, 10)

	advantage := cfg.HomeAdvantagePerTier*float64(s.Tier) + intimidation/100

	morale := clamp(cfg.MoraleBoostScale*(density+fanLoyalty)/2+float64(s.Amenities)/2000, 0, 0.25)

	return Effects{
		AttendanceRate:     rate,
		ActualAttendance:   actual,
		CrowdDensity:       density,
		NoiseLevel:         noise,
		IntimidationFactor: intimidation,
		HomeFieldAdvantage: advantage,
		MoraleBoost:        morale,
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
