package game

import "time"

// String constants for optimization
const (
	// Match statuses
	StatusScheduled      Status = "SCHEDULED"
	StatusLiveFirstHalf  Status = "LIVE_FIRST_HALF"
	StatusHalftime       Status = "HALFTIME"
	StatusLiveSecondHalf Status = "LIVE_SECOND_HALF"
	StatusOvertime       Status = "OVERTIME"
	StatusCompleted      Status = "COMPLETED"

	// Match types
	TypeLeague     MatchType = "league"
	TypeExhibition MatchType = "exhibition"
	TypeTournament MatchType = "tournament"
	TypePlayoff    MatchType = "playoff"

	// Sides
	SideHome Side = "home"
	SideAway Side = "away"
	SideNone Side = ""

	// Races
	RaceHuman  Race = "human"
	RaceSylvan Race = "sylvan"
	RaceGryll  Race = "gryll"
	RaceLumina Race = "lumina"
	RaceUmbra  Race = "umbra"

	// Tactical roles
	RolePasser  Role = "passer"
	RoleRunner  Role = "runner"
	RoleBlocker Role = "blocker"

	// Health statuses
	HealthHealthy        HealthStatus = "healthy"
	HealthMinorInjury    HealthStatus = "minor_injury"
	HealthModerateInjury HealthStatus = "moderate_injury"
	HealthSevereInjury   HealthStatus = "severe_injury"

	// Game phases
	PhaseEarly  GamePhase = "early"
	PhaseMiddle GamePhase = "middle"
	PhaseLate   GamePhase = "late"
	PhaseClutch GamePhase = "clutch"
)

type (
	Status       string
	MatchType    string
	Side         string
	Race         string
	Role         string
	HealthStatus string
	GamePhase    string
)

// Opponent returns the other side. SideNone maps to itself.
func (s Side) Opponent() Side {
	switch s {
	case SideHome:
		return SideAway
	case SideAway:
		return SideHome
	}
	return s
}

// Terminal reports whether a status admits no further transitions.
func (s Status) Terminal() bool { return s == StatusCompleted }

// Live reports whether the simulation loop should be ticking this match.
func (s Status) Live() bool {
	switch s {
	case StatusLiveFirstHalf, StatusHalftime, StatusLiveSecondHalf, StatusOvertime:
		return true
	}
	return false
}

// Attributes are a player's fixed abilities on a 1-100 scale.
type Attributes struct {
	Speed      int `json:"speed"`      // 1-100
	Power      int `json:"power"`      // 1-100
	Throwing   int `json:"throwing"`   // 1-100
	Catching   int `json:"catching"`   // 1-100
	Kicking    int `json:"kicking"`    // 1-100
	Stamina    int `json:"stamina"`    // 1-100
	Agility    int `json:"agility"`    // 1-100
	Leadership int `json:"leadership"` // 1-100
}

// Player is a read-only roster entry. The core never mutates rosters; the
// per-match fatigue and health bookkeeping lives in the engine's FatigueState.
type Player struct {
	ID     int          `json:"id"`
	TeamID string       `json:"team_id"`
	Name   string       `json:"name"`
	Race   Race         `json:"race"`
	Role   Role         `json:"role"`
	Attr   Attributes   `json:"attributes"`
	Health HealthStatus `json:"health"`
}

// Match is the static identity of a contest. All mutable state (score, clock,
// log) is owned by the live runner and exposed only through Snapshots.
type Match struct {
	ID           string    `json:"id"`
	HomeTeamID   string    `json:"home_team_id"`
	AwayTeamID   string    `json:"away_team_id"`
	HomeTeamName string    `json:"home_team_name"`
	AwayTeamName string    `json:"away_team_name"`
	Type         MatchType `json:"type"`
	StadiumID    string    `json:"stadium_id"`
	StartAnchor  time.Time `json:"start_anchor"`
}

// LogEntry is one rendered row of a match's append-only event log, ordered by
// game time of generation.
type LogEntry struct {
	Seq      int           `json:"seq"`
	GameTime time.Duration `json:"game_time"`
	Half     int           `json:"half"`
	Type     EventType     `json:"type"`
	Side     Side          `json:"side,omitempty"`
	Text     string        `json:"text"`
}

// Snapshot is an immutable point-in-time view of match state for external
// readers. Readers never observe a partially updated snapshot; publication is
// atomic.
type Snapshot struct {
	MatchID      string        `json:"match_id"`
	Status       Status        `json:"status"`
	GameTime     time.Duration `json:"game_time"`
	Half         int           `json:"half"`
	HomeScore    int           `json:"home_score"`
	AwayScore    int           `json:"away_score"`
	Possession   Side          `json:"possession"`
	RecentEvents []LogEntry    `json:"recent_events"`
	LastPlay     string        `json:"last_play"`
	IsRunning    bool          `json:"is_running"`
	Stale        bool          `json:"stale"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// CommentaryContext carries the match situation into template selection.
type CommentaryContext struct {
	GameTime     time.Duration
	MaxTime      time.Duration
	Half         int
	HomeScore    int
	AwayScore    int
	Phase        GamePhase
	Momentum     float64 // -1.0 to 1.0, positive favors the home side
	Intimidation float64
	Camaraderie  float64
}

// PhaseFor buckets a game clock into early/middle/late/clutch. Clutch is the
// final eighth of regulation or any overtime.
func PhaseFor(gameTime, total time.Duration, half int) GamePhase {
	if half > 2 {
		return PhaseClutch
	}
	if total <= 0 {
		return PhaseEarly
	}
	switch ratio := float64(gameTime) / float64(total); {
	case ratio >= 0.875:
		return PhaseClutch
	case ratio >= 0.66:
		return PhaseLate
	case ratio >= 0.33:
		return PhaseMiddle
	}
	return PhaseEarly
}
