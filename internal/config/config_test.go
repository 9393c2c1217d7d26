package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jimmy058910/replitballgame-sub002/internal/game"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tunables.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadPartialFileGetsDefaults(t *testing.T) {
	path := writeFile(t, `
version: 7
rates:
  run: 0.4
  pass: 0.2
  tackle: 0.1
  knockdown: 0.05
  score: 0.05
  injury: 0.01
  fumble_forced: 0.02
  fumble_unforced: 0.01
  interception: 0.03
  pass_completion_base: 0.6
  power_tackle_threshold: 75
  clutch_interception_bonus: 2.0
`)

	tun, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tun.Version != 7 {
		t.Errorf("Version = %d, want 7", tun.Version)
	}
	if tun.Rates.Run != 0.4 {
		t.Errorf("Rates.Run = %v, want 0.4", tun.Rates.Run)
	}
	if tun.Fatigue.DepletionRate != Default().Fatigue.DepletionRate {
		t.Errorf("Fatigue section not defaulted: %+v", tun.Fatigue)
	}
	if _, ok := tun.MatchTypes[game.TypeLeague]; !ok {
		t.Error("league match type not defaulted")
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"negative rate", `
rates:
  run: -0.1
  pass: 0.3
  tackle: 0.1
  knockdown: 0.05
  score: 0.05
  injury: 0.01
  fumble_forced: 0.02
  fumble_unforced: 0.01
  interception: 0.03
  pass_completion_base: 0.6
  power_tackle_threshold: 75
  clutch_interception_bonus: 1.5
`},
		{"rate above one", `
rates:
  run: 1.2
  pass: 0.3
  tackle: 0.1
  knockdown: 0.05
  score: 0.05
  injury: 0.01
  fumble_forced: 0.02
  fumble_unforced: 0.01
  interception: 0.03
  pass_completion_base: 0.6
  power_tackle_threshold: 75
  clutch_interception_bonus: 1.5
`},
		{"winner without overtime", `
match_types:
  playoff:
    compression_factor: 2.5
    half_seconds: 900
    intermission_seconds: 30
    overtime_seconds: 0
    requires_winner: true
    max_lifetime_minutes: 40
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.yaml))
			if !errors.Is(err, ErrBadConfig) {
				t.Fatalf("err = %v, want ErrBadConfig", err)
			}
		})
	}
}

func TestLoadRejectsMissingFileAndBadYAML(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("missing file accepted")
	}
	if _, err := Load(writeFile(t, "rates: [not a map")); err == nil {
		t.Fatal("malformed yaml accepted")
	}
}

func TestLoadExpandsEnv(t *testing.T) {
	t.Setenv("ARENA_RUN_RATE", "0.35")
	path := writeFile(t, `
rates:
  run: ${ARENA_RUN_RATE}
  pass: 0.3
  tackle: 0.1
  knockdown: 0.05
  score: 0.05
  injury: 0.01
  fumble_forced: 0.02
  fumble_unforced: 0.01
  interception: 0.03
  pass_completion_base: 0.6
  power_tackle_threshold: 75
  clutch_interception_bonus: 1.5
`)

	tun, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tun.Rates.Run != 0.35 {
		t.Errorf("Rates.Run = %v, want env-expanded 0.35", tun.Rates.Run)
	}
}

func TestStoreReloadKeepsOldTablesOnError(t *testing.T) {
	store := NewStore(Default())
	before := store.Current()

	if err := store.Reload(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("reload of missing file succeeded")
	}
	if store.Current() != before {
		t.Fatal("failed reload swapped the tables")
	}

	good := writeFile(t, "version: 9\n")
	if err := store.Reload(good); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if store.Current().Version != 9 {
		t.Errorf("Version = %d after reload, want 9", store.Current().Version)
	}
}

func TestDefaultValidates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("built-in defaults invalid: %v", err)
	}
}
