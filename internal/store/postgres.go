package store

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lib/pq"

	"github.com/jimmy058910/replitballgame-sub002/internal/game"
)

const (
	defaultFlushInterval = 2 * time.Second
	defaultMaxBuffer     = 512

	flushAttempts = 3
	retryBase     = 250 * time.Millisecond
)

// Postgres batches snapshot upserts behind a mutex-guarded buffer and a
// background flush loop. Results are written synchronously with the same
// retry policy.
type Postgres struct {
	db            *sql.DB
	flushInterval time.Duration
	maxBuffer     int

	mu  sync.Mutex
	buf []game.Snapshot

	stale atomic.Bool

	stopChan chan struct{}
	wg       sync.WaitGroup
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{
		db:            db,
		flushInterval: defaultFlushInterval,
		maxBuffer:     defaultMaxBuffer,
		stopChan:      make(chan struct{}),
	}
}

// Start launches the background flush loop.
func (p *Postgres) Start() {
	p.wg.Add(1)
	go p.flushLoop()
}

// Close flushes whatever is buffered and stops the loop.
func (p *Postgres) Close() error {
	close(p.stopChan)
	p.wg.Wait()
	return p.flush(context.Background())
}

// SaveSnapshot buffers one snapshot. When the buffer hits its cap the oldest
// entries are dropped; a snapshot is superseded by the next tick anyway, and
// dropping beats blocking a live match on a slow database.
func (p *Postgres) SaveSnapshot(snap game.Snapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.buf) >= p.maxBuffer {
		over := len(p.buf) - p.maxBuffer + 1
		p.buf = p.buf[over:]
	}
	p.buf = append(p.buf, snap)
}

func (p *Postgres) Stale() bool { return p.stale.Load() }

func (p *Postgres) flushLoop() {
	defer p.wg.Done()

	ticker := time.NewTicker(p.flushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := p.flush(context.Background()); err != nil {
				log.Printf("store: snapshot flush failed: %v", err)
			}
		case <-p.stopChan:
			return
		}
	}
}

// flush writes the buffered snapshots in one batched statement. On failure
// the batch is requeued ahead of newer entries and the stale flag raised.
func (p *Postgres) flush(ctx context.Context) error {
	p.mu.Lock()
	batch := p.buf
	p.buf = nil
	p.mu.Unlock()

	if len(batch) == 0 {
		return nil
	}

	err := p.withRetry(ctx, func() error { return p.writeBatch(ctx, batch) })
	if err != nil {
		p.stale.Store(true)
		p.mu.Lock()
		p.buf = append(batch, p.buf...)
		if len(p.buf) > p.maxBuffer {
			p.buf = p.buf[len(p.buf)-p.maxBuffer:]
		}
		p.mu.Unlock()
		return err
	}

	p.stale.Store(false)
	return nil
}

func (p *Postgres) writeBatch(ctx context.Context, batch []game.Snapshot) error {
	n := len(batch)
	matchIDs := make([]string, n)
	statuses := make([]string, n)
	gameTimesMS := make([]int64, n)
	halves := make([]int64, n)
	homeScores := make([]int64, n)
	awayScores := make([]int64, n)
	possessions := make([]string, n)
	lastPlays := make([]string, n)
	updatedAts := make([]time.Time, n)

	for i, s := range batch {
		matchIDs[i] = s.MatchID
		statuses[i] = string(s.Status)
		gameTimesMS[i] = s.GameTime.Milliseconds()
		halves[i] = int64(s.Half)
		homeScores[i] = int64(s.HomeScore)
		awayScores[i] = int64(s.AwayScore)
		possessions[i] = string(s.Possession)
		lastPlays[i] = s.LastPlay
		updatedAts[i] = s.UpdatedAt
	}

	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin snapshot tx: %w", err)
	}
	defer tx.Rollback()

	const q = `
		INSERT INTO match_snapshots
			(match_id, status, game_time_ms, half, home_score, away_score,
			 possession, last_play, updated_at)
		SELECT * FROM UNNEST(
			$1::text[], $2::text[], $3::bigint[], $4::bigint[], $5::bigint[],
			$6::bigint[], $7::text[], $8::text[], $9::timestamptz[])
		ON CONFLICT (match_id) DO UPDATE SET
			status = EXCLUDED.status,
			game_time_ms = EXCLUDED.game_time_ms,
			half = EXCLUDED.half,
			home_score = EXCLUDED.home_score,
			away_score = EXCLUDED.away_score,
			possession = EXCLUDED.possession,
			last_play = EXCLUDED.last_play,
			updated_at = EXCLUDED.updated_at
		WHERE EXCLUDED.updated_at > match_snapshots.updated_at`

	if _, err := tx.ExecContext(ctx, q,
		pq.Array(matchIDs), pq.Array(statuses), pq.Array(gameTimesMS),
		pq.Array(halves), pq.Array(homeScores), pq.Array(awayScores),
		pq.Array(possessions), pq.Array(lastPlays), pq.Array(updatedAts),
	); err != nil {
		return fmt.Errorf("batch upsert %d snapshots: %w", n, err)
	}

	return tx.Commit()
}

// SaveResult writes the final record synchronously. Idempotent: replaying the
// same completed match is a no-op.
func (p *Postgres) SaveResult(ctx context.Context, res Result) error {
	const q = `
		INSERT INTO match_results
			(match_id, home_team_id, away_team_id, home_score, away_score,
			 winner, match_type, forced, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (match_id) DO NOTHING`

	return p.withRetry(ctx, func() error {
		_, err := p.db.ExecContext(ctx, q,
			res.MatchID, res.HomeTeamID, res.AwayTeamID,
			res.HomeScore, res.AwayScore, string(res.Winner),
			string(res.Type), res.Forced, res.CompletedAt)
		if err != nil {
			return fmt.Errorf("insert result for match %s: %w", res.MatchID, err)
		}
		return nil
	})
}

// withRetry runs fn up to flushAttempts times with exponential backoff.
func (p *Postgres) withRetry(ctx context.Context, fn func() error) error {
	var err error
	delay := retryBase
	for attempt := 0; attempt < flushAttempts; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		delay *= 2
	}
	return err
}
