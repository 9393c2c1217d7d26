// Package config holds every tunable rate and weight the simulation consumes.
// Tables are versioned, validated at load, and swappable at runtime without a
// restart. Components receive an explicit *Store at construction; there is no
// package-level singleton.
package config

import "github.com/jimmy058910/replitballgame-sub002/internal/game"

// Tunables is one immutable version of the rate/weight tables. Mutating a
// loaded Tunables is a bug; swap a new one through Store.Reload instead.
type Tunables struct {
	Version int `yaml:"version"`

	Rates      Rates                             `yaml:"rates"`
	Fatigue    Fatigue                           `yaml:"fatigue"`
	Stadium    Stadium                           `yaml:"stadium"`
	Commentary Commentary                        `yaml:"commentary"`
	MatchTypes map[game.MatchType]MatchTypeRules `yaml:"match_types"`
}

// Rates are per-tick base probabilities before attribute, fatigue and stadium
// modulation.
type Rates struct {
	Run            float64 `yaml:"run"`
	Pass           float64 `yaml:"pass"`
	Tackle         float64 `yaml:"tackle"`
	Knockdown      float64 `yaml:"knockdown"`
	Score          float64 `yaml:"score"`
	Injury         float64 `yaml:"injury"`
	FumbleForced   float64 `yaml:"fumble_forced"`
	FumbleUnforced float64 `yaml:"fumble_unforced"`
	Interception   float64 `yaml:"interception"`

	// PassCompletionBase is the chance a pass attempt completes before
	// modifiers.
	PassCompletionBase float64 `yaml:"pass_completion_base"`
	// PowerTackleThreshold is the power attribute at or above which a tackle
	// counts as a power tackle.
	PowerTackleThreshold int `yaml:"power_tackle_threshold"`
	// ClutchInterceptionBonus multiplies interception odds during the clutch
	// phase only.
	ClutchInterceptionBonus float64 `yaml:"clutch_interception_bonus"`
}

// Fatigue controls the per-event stamina feedback loop:
// loss = DepletionRate*intensity - RecoveryMultiplier*restProportion,
// floored at MinLoss. This loop is what makes late-game events
// probabilistically different from early-game events.
type Fatigue struct {
	DepletionRate      float64 `yaml:"depletion_rate"`
	RecoveryMultiplier float64 `yaml:"recovery_multiplier"`
	MinLoss            float64 `yaml:"min_loss"`
	// StaminaOffset scales how much a player's stamina attribute dampens
	// accumulation.
	StaminaOffset float64 `yaml:"stamina_offset"`
}

// Stadium holds the home-field formula constants.
type Stadium struct {
	BaseAttendanceRate   float64 `yaml:"base_attendance_rate"`
	LoyaltyWeight        float64 `yaml:"loyalty_weight"`
	NoisePerDensity      float64 `yaml:"noise_per_density"`
	IntimidationScale    float64 `yaml:"intimidation_scale"`
	HomeAdvantagePerTier float64 `yaml:"home_advantage_per_tier"`
	MoraleBoostScale     float64 `yaml:"morale_boost_scale"`
}

// Commentary carries the softmax weight per flavor pool. Balance designers
// retune flavor frequency by adjusting a single weight.
type Commentary struct {
	NeutralWeight    float64 `yaml:"neutral_weight"`
	RaceWeight       float64 `yaml:"race_weight"`
	SkillWeight      float64 `yaml:"skill_weight"`
	ContextualWeight float64 `yaml:"contextual_weight"`
}

// MatchTypeRules vary the clock and completion policy per match type.
type MatchTypeRules struct {
	// CompressionFactor is simulated seconds per real second.
	CompressionFactor   float64 `yaml:"compression_factor"`
	HalfSeconds         int     `yaml:"half_seconds"`
	IntermissionSeconds int     `yaml:"intermission_seconds"`
	// OvertimeSeconds bounds sudden-death overtime. Zero means the type never
	// goes to overtime.
	OvertimeSeconds int  `yaml:"overtime_seconds"`
	RequiresWinner  bool `yaml:"requires_winner"`
	// MaxLifetimeMinutes is the real-time ceiling after which the supervisor
	// force-completes the match.
	MaxLifetimeMinutes int `yaml:"max_lifetime_minutes"`
}
