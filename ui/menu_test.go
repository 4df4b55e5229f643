package ui

import (
	"testing"

	"github.com/pthm-cable/foodchain/components"
	"github.com/pthm-cable/foodchain/config"
)

func TestMenuValidate(t *testing.T) {
	limits := config.GameConfig{MinGridSize: 10, MinRounds: 10, MaxGridSize: 40}

	tests := []struct {
		name    string
		setup   GameSetup
		wantErr bool
	}{
		{"minimums", GameSetup{Era: components.EraPast, GridSize: 10, MaxRounds: 10}, false},
		{"typical", GameSetup{Era: components.EraFuture, GridSize: 20, MaxRounds: 30}, false},
		{"grid too small", GameSetup{Era: components.EraPresent, GridSize: 9, MaxRounds: 30}, true},
		{"grid too large", GameSetup{Era: components.EraPresent, GridSize: 41, MaxRounds: 30}, true},
		{"too few rounds", GameSetup{Era: components.EraPresent, GridSize: 20, MaxRounds: 3}, true},
		{"unknown era", GameSetup{Era: components.Era(7), GridSize: 20, MaxRounds: 30}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMenu(limits, tt.setup)
			got, err := m.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.setup {
				t.Errorf("Validate() setup = %+v, want %+v", got, tt.setup)
			}
		})
	}
}

func TestMenuSetupRoundsSliderValues(t *testing.T) {
	m := NewMenu(config.GameConfig{}, GameSetup{})
	m.grid, m.rounds = 14.6, 9.4

	s := m.Setup()
	if s.GridSize != 15 || s.MaxRounds != 9 {
		t.Errorf("Setup() = %+v, want grid 15 and 9 rounds", s)
	}
}

func TestCellInfoLines(t *testing.T) {
	empty := CellInfo{At: components.Cell{X: 2, Y: 3}, Target: TargetAbility}
	lines := empty.Lines()
	if len(lines) != 3 || lines[0] != "Empty" || lines[2] != "Click to use ability" {
		t.Errorf("empty cell lines = %q", lines)
	}

	plain := CellInfo{At: components.Cell{X: 0, Y: 0}}
	if got := len(plain.Lines()); got != 2 {
		t.Errorf("untargeted cell has %d lines, want 2", got)
	}
}
