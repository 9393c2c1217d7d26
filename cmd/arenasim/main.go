package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/jimmy058910/replitballgame-sub002/internal/api"
	"github.com/jimmy058910/replitballgame-sub002/internal/config"
	"github.com/jimmy058910/replitballgame-sub002/internal/live"
	"github.com/jimmy058910/replitballgame-sub002/internal/notify"
	"github.com/jimmy058910/replitballgame-sub002/internal/roster"
	"github.com/jimmy058910/replitballgame-sub002/internal/stadium"
	"github.com/jimmy058910/replitballgame-sub002/internal/store"
)

const eventStream = "arena:events"

func main() {
	_ = godotenv.Load()

	env, err := config.LoadEnv()
	if err != nil {
		log.Fatalf("parse environment: %v", err)
	}

	tunables := config.Default()
	if env.TunablesPath != "" {
		tunables, err = config.Load(env.TunablesPath)
		if err != nil {
			// Running with undefined probabilities is worse than not running.
			log.Fatalf("load tunables %s: %v", env.TunablesPath, err)
		}
	}
	cfg := config.NewStore(tunables)

	deps := live.Deps{
		Cfg:            cfg,
		Rosters:        roster.NewStatic(time.Now().UnixNano()),
		Venues:         stadium.StaticProvider{},
		TickInterval:   env.TickInterval,
		SnapshotEvents: env.SnapshotEvents,
	}

	var pg *store.Postgres
	if env.DatabaseURL != "" {
		db, err := sql.Open("postgres", env.DatabaseURL)
		if err != nil {
			log.Fatalf("open database: %v", err)
		}
		if err := db.Ping(); err != nil {
			log.Fatalf("ping database: %v", err)
		}
		defer db.Close()

		pg = store.NewPostgres(db)
		pg.Start()
		deps.Repo = pg
		deps.Rosters = roster.NewPostgres(db)
		deps.Venues = stadium.NewPostgresProvider(db)
		log.Printf("💾 persistence enabled")
	} else {
		log.Printf("💾 no DATABASE_URL, running in-memory")
	}

	if env.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: env.RedisAddr})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Fatalf("ping redis: %v", err)
		}
		defer rdb.Close()
		deps.Notify = notify.NewRedis(rdb, eventStream)
		log.Printf("📣 publishing domain events to %s", eventStream)
	}

	registry := live.NewRegistry(deps)
	if err := registry.StartSupervisor(); err != nil {
		log.Fatalf("start supervisor: %v", err)
	}

	server := &http.Server{
		Addr:         ":" + env.Port,
		Handler:      api.NewServer(registry, cfg).Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("🚀 arenasim listening on :%s", env.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http server: %v", err)
		}
	}()

	// SIGHUP swaps in a fresh tunables table without a restart.
	reload := make(chan os.Signal, 1)
	signal.Notify(reload, syscall.SIGHUP)
	go func() {
		for range reload {
			if env.TunablesPath == "" {
				log.Printf("⚙️  reload requested but TUNABLES_PATH is unset")
				continue
			}
			if err := cfg.Reload(env.TunablesPath); err != nil {
				log.Printf("⚙️  reload rejected, keeping current tables: %v", err)
				continue
			}
			log.Printf("⚙️  tunables reloaded, version %d", cfg.Current().Version)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Printf("🛑 shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	registry.Shutdown(ctx)
	if pg != nil {
		if err := pg.Close(); err != nil {
			log.Printf("flush snapshots: %v", err)
		}
	}
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("http shutdown: %v", err)
	}
}
