package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Env is the process-level configuration, distinct from the simulation
// tunables: where to listen and which collaborators to connect to.
type Env struct {
	Port         string        `env:"PORT" envDefault:"8080"`
	DatabaseURL  string        `env:"DATABASE_URL"`
	RedisAddr    string        `env:"REDIS_ADDR"`
	TunablesPath string        `env:"TUNABLES_PATH"`
	TickInterval time.Duration `env:"TICK_INTERVAL" envDefault:"2s"`
	// SnapshotEvents is K, the number of recent events exposed per snapshot.
	SnapshotEvents int `env:"SNAPSHOT_EVENTS" envDefault:"10"`
}

// LoadEnv parses the process environment.
func LoadEnv() (*Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return nil, err
	}
	return &e, nil
}
