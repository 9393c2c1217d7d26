// Package clock maps wall-clock time onto the compressed in-match clock.
// Compute is pure; the state machine polls it every tick and reacts to the
// explicit boundary signal, so each phase transition happens exactly once.
package clock

import "time"

// Reading is one observation of the match clock.
type Reading struct {
	// GameTime is total elapsed simulated time, clamped to the period total.
	GameTime time.Duration
	// Half is 1-based and never exceeds the period count.
	Half int
	// Remaining is simulated time left in the current half.
	Remaining time.Duration
	// BoundaryCrossed is set when this reading sits in a later half than
	// prevHalf, or when the clock just ran out.
	BoundaryCrossed bool
	// Finished is set once GameTime reaches the full period total.
	Finished bool
}

// Compute derives game time from the wall clock.
//
// anchor is the instant simulation (re)started; paused is total real time
// spent in intermissions so resumed halves stay continuous; factor is
// simulated seconds per real second; halfDur and halves describe the period
// structure (regulation passes halves=2, a sudden-death overtime period
// passes halves=1); prevHalf is the half of the previous reading, used to
// signal boundary crossings explicitly rather than leaving callers to infer
// them.
func Compute(anchor time.Time, paused time.Duration, factor float64, now time.Time, halfDur time.Duration, halves, prevHalf int) Reading {
	elapsed := now.Sub(anchor) - paused
	if elapsed < 0 {
		elapsed = 0
	}

	gameTime := time.Duration(float64(elapsed) * factor)
	total := halfDur * time.Duration(halves)

	finished := gameTime >= total
	if gameTime > total {
		gameTime = total
	}

	half := int(gameTime/halfDur) + 1
	if half > halves {
		half = halves
	}

	remaining := halfDur*time.Duration(half) - gameTime
	if remaining < 0 {
		remaining = 0
	}

	return Reading{
		GameTime:        gameTime,
		Half:            half,
		Remaining:       remaining,
		BoundaryCrossed: half > prevHalf || finished,
		Finished:        finished,
	}
}
