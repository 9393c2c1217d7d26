package config

import "github.com/jimmy058910/replitballgame-sub002/internal/game"

// Default returns the built-in table set, used when no config file is given
// and as the base for partial files.
func Default() *Tunables {
	return &Tunables{
		Version: 1,
		Rates: Rates{
			Run:            0.30,
			Pass:           0.30,
			Tackle:         0.18,
			Knockdown:      0.06,
			Score:          0.05,
			Injury:         0.015,
			FumbleForced:   0.025,
			FumbleUnforced: 0.012,
			Interception:   0.04,

			PassCompletionBase:      0.62,
			PowerTackleThreshold:    80,
			ClutchInterceptionBonus: 1.5,
		},
		Fatigue: Fatigue{
			DepletionRate:      2.4,
			RecoveryMultiplier: 0.8,
			MinLoss:            0.2,
			StaminaOffset:      0.5,
		},
		Stadium: Stadium{
			BaseAttendanceRate:   0.35,
			LoyaltyWeight:        0.6,
			NoisePerDensity:      100.0,
			IntimidationScale:    10.0,
			HomeAdvantagePerTier: 0.02,
			MoraleBoostScale:     0.05,
		},
		Commentary: Commentary{
			NeutralWeight:    1.0,
			RaceWeight:       0.6,
			SkillWeight:      0.8,
			ContextualWeight: 1.2,
		},
		MatchTypes: map[game.MatchType]MatchTypeRules{
			game.TypeLeague: {
				CompressionFactor:   3.3333,
				HalfSeconds:         600,
				IntermissionSeconds: 15,
				OvertimeSeconds:     0,
				RequiresWinner:      false,
				MaxLifetimeMinutes:  20,
			},
			game.TypeExhibition: {
				CompressionFactor:   5.0,
				HalfSeconds:         600,
				IntermissionSeconds: 0,
				OvertimeSeconds:     0,
				RequiresWinner:      false,
				MaxLifetimeMinutes:  15,
			},
			game.TypeTournament: {
				CompressionFactor:   3.3333,
				HalfSeconds:         600,
				IntermissionSeconds: 15,
				OvertimeSeconds:     300,
				RequiresWinner:      true,
				MaxLifetimeMinutes:  25,
			},
			game.TypePlayoff: {
				CompressionFactor:   2.5,
				HalfSeconds:         900,
				IntermissionSeconds: 30,
				OvertimeSeconds:     450,
				RequiresWinner:      true,
				MaxLifetimeMinutes:  40,
			},
		},
	}
}

// applyDefaults fills zero-valued sections from Default so partial YAML files
// stay valid.
func (t *Tunables) applyDefaults() {
	def := Default()
	if t.Version == 0 {
		t.Version = def.Version
	}
	if t.Rates == (Rates{}) {
		t.Rates = def.Rates
	}
	if t.Fatigue == (Fatigue{}) {
		t.Fatigue = def.Fatigue
	}
	if t.Stadium == (Stadium{}) {
		t.Stadium = def.Stadium
	}
	if t.Commentary == (Commentary{}) {
		t.Commentary = def.Commentary
	}
	if len(t.MatchTypes) == 0 {
		t.MatchTypes = def.MatchTypes
		return
	}
	for mt, rules := range def.MatchTypes {
		if _, ok := t.MatchTypes[mt]; !ok {
			t.MatchTypes[mt] = rules
		}
	}
}
