// Package roster supplies read-only squads to the simulation. The core never
// mutates rosters; durable player records (contracts, training, long-term
// injuries) belong to the team service that owns them.
package roster

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jimmy058910/replitballgame-sub002/internal/game"
)

// Provider returns the active squad for a team. Implementations must return
// players the caller can treat as immutable.
type Provider interface {
	Roster(ctx context.Context, teamID string) ([]game.Player, error)
}

// Postgres reads squads from the players table.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) Roster(ctx context.Context, teamID string) ([]game.Player, error) {
	const q = `
		SELECT id, team_id, name, race, role,
		       speed, power, throwing, catching, kicking, stamina, agility, leadership,
		       health
		FROM players
		WHERE team_id = $1
		ORDER BY id`

	rows, err := p.db.QueryContext(ctx, q, teamID)
	if err != nil {
		return nil, fmt.Errorf("query roster %s: %w", teamID, err)
	}
	defer rows.Close()

	var out []game.Player
	for rows.Next() {
		var pl game.Player
		if err := rows.Scan(
			&pl.ID, &pl.TeamID, &pl.Name, &pl.Race, &pl.Role,
			&pl.Attr.Speed, &pl.Attr.Power, &pl.Attr.Throwing, &pl.Attr.Catching,
			&pl.Attr.Kicking, &pl.Attr.Stamina, &pl.Attr.Agility, &pl.Attr.Leadership,
			&pl.Health,
		); err != nil {
			return nil, fmt.Errorf("scan roster row: %w", err)
		}
		out = append(out, pl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate roster %s: %w", teamID, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no players for team %s", teamID)
	}
	return out, nil
}
