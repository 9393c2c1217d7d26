package config

import "fmt"

// Validate checks that every rate is a probability, every weight is finite,
// and every match type has a usable clock.
func (t *Tunables) Validate() error {
	probs := map[string]float64{
		"rates.run":                  t.Rates.Run,
		"rates.pass":                 t.Rates.Pass,
		"rates.tackle":               t.Rates.Tackle,
		"rates.knockdown":            t.Rates.Knockdown,
		"rates.score":                t.Rates.Score,
		"rates.injury":               t.Rates.Injury,
		"rates.fumble_forced":        t.Rates.FumbleForced,
		"rates.fumble_unforced":      t.Rates.FumbleUnforced,
		"rates.interception":         t.Rates.Interception,
		"rates.pass_completion_base": t.Rates.PassCompletionBase,
	}
	for name, p := range probs {
		if p < 0 || p > 1 {
			return fmt.Errorf("%w: %s = %v outside [0,1]", ErrBadConfig, name, p)
		}
	}

	if t.Rates.PowerTackleThreshold < 1 || t.Rates.PowerTackleThreshold > 100 {
		return fmt.Errorf("%w: rates.power_tackle_threshold = %d outside [1,100]",
			ErrBadConfig, t.Rates.PowerTackleThreshold)
	}
	if t.Rates.ClutchInterceptionBonus < 1 {
		return fmt.Errorf("%w: rates.clutch_interception_bonus = %v must be >= 1",
			ErrBadConfig, t.Rates.ClutchInterceptionBonus)
	}

	if t.Fatigue.DepletionRate <= 0 {
		return fmt.Errorf("%w: fatigue.depletion_rate must be positive", ErrBadConfig)
	}
	if t.Fatigue.RecoveryMultiplier < 0 {
		return fmt.Errorf("%w: fatigue.recovery_multiplier must not be negative", ErrBadConfig)
	}
	if t.Fatigue.MinLoss < 0 {
		return fmt.Errorf("%w: fatigue.min_loss must not be negative", ErrBadConfig)
	}

	if t.Stadium.BaseAttendanceRate < 0 || t.Stadium.BaseAttendanceRate > 1 {
		return fmt.Errorf("%w: stadium.base_attendance_rate outside [0,1]", ErrBadConfig)
	}

	if len(t.MatchTypes) == 0 {
		return fmt.Errorf("%w: no match types defined", ErrBadConfig)
	}
	for mt, rules := range t.MatchTypes {
		if rules.CompressionFactor <= 0 {
			return fmt.Errorf("%w: match_types.%s.compression_factor must be positive", ErrBadConfig, mt)
		}
		if rules.HalfSeconds <= 0 {
			return fmt.Errorf("%w: match_types.%s.half_seconds must be positive", ErrBadConfig, mt)
		}
		if rules.IntermissionSeconds < 0 {
			return fmt.Errorf("%w: match_types.%s.intermission_seconds must not be negative", ErrBadConfig, mt)
		}
		if rules.RequiresWinner && rules.OvertimeSeconds <= 0 {
			return fmt.Errorf("%w: match_types.%s requires a winner but has no overtime period", ErrBadConfig, mt)
		}
		if rules.MaxLifetimeMinutes <= 0 {
			return fmt.Errorf("%w: match_types.%s.max_lifetime_minutes must be positive", ErrBadConfig, mt)
		}
	}

	return nil
}
