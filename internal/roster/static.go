package roster

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"github.com/jimmy058910/replitballgame-sub002/internal/game"
)

var (
	firstNames = []string{
		"Kael", "Mira", "Dorn", "Sella", "Varek", "Lyra", "Thane", "Iska",
		"Bram", "Naia", "Orrin", "Vex", "Talia", "Grum", "Ezzi", "Ruun",
	}
	lastNames = []string{
		"Stonefist", "Brightwind", "Duskwalker", "Emberfall", "Thornweave",
		"Ironroot", "Palegleam", "Nightriver", "Ashvale", "Stormcaller",
		"Deepmoss", "Suncrest", "Hollowpine", "Greyspire", "Moonshade",
	}
	races = []game.Race{
		game.RaceHuman, game.RaceSylvan, game.RaceGryll, game.RaceLumina, game.RaceUmbra,
	}
)

// Squad composition for generated fixtures: enough passers to always field
// one, with the bulk split between runners and blockers.
var squadRoles = []game.Role{
	game.RolePasser, game.RolePasser,
	game.RoleRunner, game.RoleRunner, game.RoleRunner,
	game.RoleBlocker, game.RoleBlocker, game.RoleBlocker,
	game.RoleRunner, game.RoleBlocker,
}

// Static generates deterministic fixture squads in memory. The same seed and
// team ID always produce the same squad, so tests and DB-less runs are
// reproducible.
type Static struct {
	seed int64

	mu     sync.Mutex
	squads map[string][]game.Player
	nextID int
}

func NewStatic(seed int64) *Static {
	return &Static{seed: seed, squads: make(map[string][]game.Player), nextID: 1}
}

func (s *Static) Roster(_ context.Context, teamID string) ([]game.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if squad, ok := s.squads[teamID]; ok {
		return squad, nil
	}

	squad := s.generate(teamID)
	s.squads[teamID] = squad
	return squad, nil
}

func (s *Static) generate(teamID string) []game.Player {
	rng := rand.New(rand.NewSource(s.seed + int64(len(s.squads))))

	squad := make([]game.Player, 0, len(squadRoles))
	for _, role := range squadRoles {
		race := races[rng.Intn(len(races))]
		p := game.Player{
			ID:     s.nextID,
			TeamID: teamID,
			Name: fmt.Sprintf("%s %s",
				firstNames[rng.Intn(len(firstNames))],
				lastNames[rng.Intn(len(lastNames))]),
			Race:   race,
			Role:   role,
			Attr:   rollAttributes(rng, role, race),
			Health: game.HealthHealthy,
		}
		s.nextID++
		squad = append(squad, p)
	}
	return squad
}

// rollAttributes rolls 40-80 across the board, then biases the attributes the
// player's role and race lean on.
func rollAttributes(rng *rand.Rand, role game.Role, race game.Race) game.Attributes {
	roll := func() int { return 40 + rng.Intn(41) }
	a := game.Attributes{
		Speed:      roll(),
		Power:      roll(),
		Throwing:   roll(),
		Catching:   roll(),
		Kicking:    roll(),
		Stamina:    roll(),
		Agility:    roll(),
		Leadership: roll(),
	}

	boost := func(v int) int {
		v += 10 + rng.Intn(11)
		if v > 100 {
			v = 100
		}
		return v
	}

	switch role {
	case game.RolePasser:
		a.Throwing = boost(a.Throwing)
		a.Leadership = boost(a.Leadership)
	case game.RoleRunner:
		a.Speed = boost(a.Speed)
		a.Agility = boost(a.Agility)
	case game.RoleBlocker:
		a.Power = boost(a.Power)
		a.Stamina = boost(a.Stamina)
	}

	switch race {
	case game.RaceSylvan:
		a.Agility = boost(a.Agility)
	case game.RaceGryll:
		a.Power = boost(a.Power)
	case game.RaceLumina:
		a.Speed = boost(a.Speed)
	case game.RaceUmbra:
		a.Catching = boost(a.Catching)
	}

	return a
}
