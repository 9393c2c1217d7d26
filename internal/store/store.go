// Package store persists match snapshots and final results. Snapshot writes
// are buffered and flushed in batches so persistence latency never reaches
// the simulation loop; a failed flush marks the repository stale until the
// next successful one, and readers surface that flag on served snapshots.
package store

import (
	"context"
	"time"

	"github.com/jimmy058910/replitballgame-sub002/internal/game"
)

// Result is the immutable final record of a completed match.
type Result struct {
	MatchID     string         `json:"match_id"`
	HomeTeamID  string         `json:"home_team_id"`
	AwayTeamID  string         `json:"away_team_id"`
	HomeScore   int            `json:"home_score"`
	AwayScore   int            `json:"away_score"`
	Winner      game.Side      `json:"winner"` // SideNone on a draw
	Type        game.MatchType `json:"type"`
	Forced      bool           `json:"forced"`
	CompletedAt time.Time      `json:"completed_at"`
}

// Repository persists live match state.
//
// SaveSnapshot must never block the caller; implementations buffer and flush
// in the background. SaveResult is synchronous with internal retry, since a
// lost result is a real loss while a lost snapshot is overwritten two seconds
// later anyway.
type Repository interface {
	SaveSnapshot(snap game.Snapshot)
	SaveResult(ctx context.Context, res Result) error
	// Stale reports whether the last flush attempt failed.
	Stale() bool
}

// Nop discards everything, for DB-less runs and tests.
type Nop struct{}

func (Nop) SaveSnapshot(game.Snapshot) {}

func (Nop) SaveResult(context.Context, Result) error { return nil }

func (Nop) Stale() bool { return false }
