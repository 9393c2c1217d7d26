// Package notify publishes domain events to downstream consumers. Delivery is
// fire-and-forget from the simulation's point of view: a failed publish is
// logged and play continues.
package notify

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Kind tags a domain event.
type Kind string

const (
	KindScoreChanged   Kind = "score_changed"
	KindPlayerInjured  Kind = "player_injured"
	KindMatchPhase     Kind = "match_phase"
	KindMatchCompleted Kind = "match_completed"
)

// Event is one domain event. Data carries kind-specific fields.
type Event struct {
	Kind    Kind           `json:"kind"`
	MatchID string         `json:"match_id"`
	At      time.Time      `json:"at"`
	Data    map[string]any `json:"data,omitempty"`
}

// Dispatcher publishes events. Implementations never return errors to the
// caller; publish failure must not stall a live match.
type Dispatcher interface {
	Dispatch(ctx context.Context, ev Event)
}

// Redis publishes events onto a Redis Stream, one entry per event, payload as
// a single JSON field. Consumers read with XREAD/consumer groups.
type Redis struct {
	rdb    *redis.Client
	stream string
	maxLen int64
}

func NewRedis(rdb *redis.Client, stream string) *Redis {
	return &Redis{rdb: rdb, stream: stream, maxLen: 10000}
}

func (r *Redis) Dispatch(ctx context.Context, ev Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		log.Printf("notify: marshal %s event for match %s: %v", ev.Kind, ev.MatchID, err)
		return
	}

	err = r.rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: r.stream,
		MaxLen: r.maxLen,
		Approx: true,
		Values: map[string]any{
			"kind":     string(ev.Kind),
			"match_id": ev.MatchID,
			"payload":  payload,
		},
	}).Err()
	if err != nil {
		log.Printf("notify: publish %s for match %s: %v", ev.Kind, ev.MatchID, err)
	}
}

// Nop drops every event, for DB-less and test runs.
type Nop struct{}

func (Nop) Dispatch(context.Context, Event) {}
