package game

import "math/rand"

// Rand is the random source injected into the generator and the commentary
// engine. *math/rand.Rand satisfies it; tests supply scripted sequences to
// assert exact selections.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// NewSeededRand returns a deterministic source for a seed. Two runners built
// from the same seed and inputs produce identical event streams.
func NewSeededRand(seed int64) Rand {
	return rand.New(rand.NewSource(seed))
}

// ScriptedRand replays fixed sequences, for tests that assert exact picks.
// Sequences wrap around when exhausted.
type ScriptedRand struct {
	Floats []float64
	Ints   []int

	fi, ii int
}

func (s *ScriptedRand) Float64() float64 {
	if len(s.Floats) == 0 {
		return 0
	}
	v := s.Floats[s.fi%len(s.Floats)]
	s.fi++
	return v
}

func (s *ScriptedRand) Intn(n int) int {
	if len(s.Ints) == 0 {
		return 0
	}
	v := s.Ints[s.ii%len(s.Ints)] % n
	s.ii++
	return v
}
