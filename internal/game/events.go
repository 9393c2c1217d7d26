package game

// EventType tags each play variant.
type EventType string

const (
	EventRun              EventType = "run"
	EventPassComplete     EventType = "pass_complete"
	EventPassIncomplete   EventType = "pass_incomplete"
	EventTackle           EventType = "tackle"
	EventKnockdown        EventType = "knockdown"
	EventFumble           EventType = "fumble"
	EventInterception     EventType = "interception"
	EventInjury           EventType = "injury"
	EventScore            EventType = "score"
	EventPossessionChange EventType = "possession_change"

	// Synthetic phase events emitted by the state machine, never the generator
	EventKickoff  EventType = "kickoff"
	EventHalftime EventType = "halftime"
	EventOvertime EventType = "overtime"
	EventFullTime EventType = "full_time"
)

// Event is one play. Each variant carries only the fields relevant to its
// kind; there are no speculative shared payload fields.
type Event interface {
	Kind() EventType
	// ActingSide is the side credited with the play (the defense for tackles,
	// interceptions and knockdowns).
	ActingSide() Side
}

// Run is a ball carry for positive or negative yardage.
type Run struct {
	Side   Side
	Runner *Player
	Yards  int
	// Breakaway marks a run sprung by elite speed; enables skill-flavor
	// commentary pools.
	Breakaway bool
}

func (e Run) Kind() EventType  { return EventRun }
func (e Run) ActingSide() Side { return e.Side }

// PassComplete is a completed throw from Passer to Receiver.
type PassComplete struct {
	Side     Side
	Passer   *Player
	Receiver *Player
	Yards    int
	// Precise marks a completion carried by elite throwing accuracy.
	Precise bool
}

func (e PassComplete) Kind() EventType  { return EventPassComplete }
func (e PassComplete) ActingSide() Side { return e.Side }

// PassIncomplete is a throw that hits the turf.
type PassIncomplete struct {
	Side     Side
	Passer   *Player
	Intended *Player
}

func (e PassIncomplete) Kind() EventType  { return EventPassIncomplete }
func (e PassIncomplete) ActingSide() Side { return e.Side }

// Tackle brings the carrier down. Credited to the defense.
type Tackle struct {
	Side    Side // defending side
	Tackler *Player
	Carrier *Player
	// PowerTackle marks a hit over the configured power threshold; enables
	// skill-flavor pools.
	PowerTackle bool
}

func (e Tackle) Kind() EventType  { return EventTackle }
func (e Tackle) ActingSide() Side { return e.Side }

// Knockdown flattens a player away from the ball.
type Knockdown struct {
	Side    Side // side delivering the hit
	Blocker *Player
	Victim  *Player
}

func (e Knockdown) Kind() EventType  { return EventKnockdown }
func (e Knockdown) ActingSide() Side { return e.Side }

// Fumble is a dropped ball recovered by the defense. Flips possession.
type Fumble struct {
	Side     Side // side that lost the ball
	Carrier  *Player
	Forced   bool
	ForcedBy *Player // nil when unforced
}

func (e Fumble) Kind() EventType  { return EventFumble }
func (e Fumble) ActingSide() Side { return e.Side.Opponent() }

// Interception is a pass picked off by the defense. Flips possession.
type Interception struct {
	Side     Side // defending side
	Defender *Player
	Passer   *Player
}

func (e Interception) Kind() EventType  { return EventInterception }
func (e Interception) ActingSide() Side { return e.Side }

// Injury removes a player's full health. Reported to the medical collaborator.
type Injury struct {
	Side     Side
	Player   *Player
	Severity HealthStatus
}

func (e Injury) Kind() EventType  { return EventInjury }
func (e Injury) ActingSide() Side { return e.Side }

// Score is a successful scoring play worth one scoring unit.
type Score struct {
	Side   Side
	Scorer *Player
}

func (e Score) Kind() EventType  { return EventScore }
func (e Score) ActingSide() Side { return e.Side }

// PossessionChange hands the ball to the named side.
type PossessionChange struct {
	To Side
}

func (e PossessionChange) Kind() EventType  { return EventPossessionChange }
func (e PossessionChange) ActingSide() Side { return e.To }

// PhaseChange is the synthetic kickoff/halftime/overtime/full-time marker the
// state machine emits exactly once per boundary crossing.
type PhaseChange struct {
	Type      EventType
	Half      int
	HomeScore int
	AwayScore int
}

func (e PhaseChange) Kind() EventType  { return e.Type }
func (e PhaseChange) ActingSide() Side { return SideNone }
