package stadium

import (
	"context"
	"database/sql"
	"fmt"
	"hash/fnv"
)

// Provider supplies venue records and the home side's fan loyalty (0-1).
type Provider interface {
	ByID(ctx context.Context, stadiumID string) (Stadium, float64, error)
}

// PostgresProvider reads venues from the stadiums table.
type PostgresProvider struct {
	db *sql.DB
}

func NewPostgresProvider(db *sql.DB) *PostgresProvider {
	return &PostgresProvider{db: db}
}

func (p *PostgresProvider) ByID(ctx context.Context, stadiumID string) (Stadium, float64, error) {
	const q = `
		SELECT id, name, capacity, tier, amenities, fan_loyalty
		FROM stadiums WHERE id = $1`

	var s Stadium
	var loyalty float64
	err := p.db.QueryRowContext(ctx, q, stadiumID).Scan(
		&s.ID, &s.Name, &s.Capacity, &s.Tier, &s.Amenities, &loyalty)
	if err != nil {
		return Stadium{}, 0, fmt.Errorf("load stadium %s: %w", stadiumID, err)
	}
	return s, loyalty, nil
}

// StaticProvider derives a stable fixture venue from the stadium ID, for
// DB-less runs and tests. The same ID always yields the same venue.
type StaticProvider struct{}

func (StaticProvider) ByID(_ context.Context, stadiumID string) (Stadium, float64, error) {
	h := fnv.New32a()
	h.Write([]byte(stadiumID))
	roll := h.Sum32()

	tier := int(roll%5) + 1
	s := Stadium{
		ID:        stadiumID,
		Name:      fmt.Sprintf("Arena %s", stadiumID),
		Capacity:  8000 + tier*6000,
		Tier:      tier,
		Amenities: int(roll % 101),
	}
	loyalty := 0.4 + float64(roll%50)/100
	return s, loyalty, nil
}
