package config

import (
	"fmt"
	"os"
	"sync/atomic"

	"gopkg.in/yaml.v3"
)

// ErrBadConfig wraps every validation failure. Malformed or missing tables
// are fatal at startup; running with undefined probabilities is worse than
// not running.
var ErrBadConfig = fmt.Errorf("bad configuration")

// Load reads a YAML table file, expands ${VAR} environment references, fills
// defaults, and validates.
func Load(path string) (*Tunables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var t Tunables
	if err := yaml.Unmarshal([]byte(expanded), &t); err != nil {
		return nil, fmt.Errorf("parse config yaml: %w", err)
	}

	t.applyDefaults()
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &t, nil
}

// Store hands out the current Tunables and supports restart-free swaps.
// Readers see either the old or the new table, never a mix.
type Store struct {
	current atomic.Pointer[Tunables]
}

// NewStore wraps an already-validated table set.
func NewStore(t *Tunables) *Store {
	s := &Store{}
	s.current.Store(t)
	return s
}

// Current returns the live table set. The returned value must be treated as
// immutable.
func (s *Store) Current() *Tunables {
	return s.current.Load()
}

// Reload loads path and swaps it in atomically. On any error the previous
// tables stay in effect.
func (s *Store) Reload(path string) error {
	t, err := Load(path)
	if err != nil {
		return err
	}
	s.current.Store(t)
	return nil
}
