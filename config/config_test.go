package config

import (
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/foodchain/components"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Game.GridSize != 20 || cfg.Game.MaxRounds != 30 {
		t.Errorf("defaults = %dx%d rounds, want 20/30", cfg.Game.GridSize, cfg.Game.MaxRounds)
	}
	if cfg.Derived.Era != components.EraPresent {
		t.Errorf("Derived.Era = %v, want Present", cfg.Derived.Era)
	}
	if len(cfg.Derived.Eras) != 3 {
		t.Errorf("Derived.Eras = %v", cfg.Derived.Eras)
	}
	if cfg.Derived.NoteDuration <= 0 {
		t.Error("note duration not derived")
	}
}

func TestLoad_UserFileOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user.yaml")
	if err := os.WriteFile(path, []byte("game:\n  era: past\n  grid_size: 12\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Game.GridSize != 12 {
		t.Errorf("GridSize = %d, want 12", cfg.Game.GridSize)
	}
	if cfg.Game.MaxRounds != 30 {
		t.Errorf("MaxRounds = %d, want default 30", cfg.Game.MaxRounds)
	}
	if cfg.Derived.Era != components.EraPast {
		t.Errorf("Derived.Era = %v, want Past", cfg.Derived.Era)
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	badEra := filepath.Join(dir, "era.yaml")
	os.WriteFile(badEra, []byte("game:\n  era: jurassic\n"), 0644)

	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(dir, "nope.yaml")},
		{"unknown era", badEra},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(tt.path); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestWriteYAML_RoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Game.MaxRounds = 77
	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	back, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if back.Game.MaxRounds != 77 {
		t.Errorf("MaxRounds = %d, want 77", back.Game.MaxRounds)
	}
}

func TestCheckSetup(t *testing.T) {
	g := GameConfig{MinGridSize: 10, MinRounds: 10, MaxGridSize: 40}
	tests := []struct {
		grid, rounds int
		ok           bool
	}{
		{20, 30, true},
		{10, 10, true},
		{9, 30, false},
		{20, 9, false},
		{41, 30, false},
	}
	for _, tt := range tests {
		err := g.CheckSetup(tt.grid, tt.rounds)
		if (err == nil) != tt.ok {
			t.Errorf("CheckSetup(%d, %d) = %v, want ok=%v", tt.grid, tt.rounds, err, tt.ok)
		}
	}
}

func TestFoodChains_Embedded(t *testing.T) {
	chains, err := LoadFoodChains("")
	if err != nil {
		t.Fatalf("LoadFoodChains: %v", err)
	}
	rng := rand.New(rand.NewSource(1))
	for _, era := range components.Eras() {
		fc, err := chains.Names(era, rng)
		if err != nil {
			t.Errorf("%v: %v", era, err)
			continue
		}
		if fc.ForRole(components.RoleApex) != fc.Apex || fc.ForRole(components.RolePrey) != fc.Prey {
			t.Errorf("%v: ForRole mismatch", era)
		}
	}
}

func TestFoodChains_MissingEra(t *testing.T) {
	chains, err := ParseFoodChains([]byte("past:\n  - {apex: A, predator: B, prey: C, food: D}\n"))
	if err != nil {
		t.Fatalf("ParseFoodChains: %v", err)
	}
	_, err = chains.Names(components.EraFuture, rand.New(rand.NewSource(1)))
	if !errors.Is(err, ErrNoFoodChain) {
		t.Errorf("err = %v, want ErrNoFoodChain", err)
	}
}

func TestFoodChains_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown era", "cretaceous:\n  - {apex: A, predator: B, prey: C, food: D}\n"},
		{"missing name", "past:\n  - {apex: A, predator: B, prey: C}\n"},
		{"not yaml", "past: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseFoodChains([]byte(tt.doc)); err == nil {
				t.Error("expected error")
			}
		})
	}
}
