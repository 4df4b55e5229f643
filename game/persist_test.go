package game

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/pthm-cable/foodchain/components"
	"github.com/pthm-cable/foodchain/telemetry"
)

func TestSaveLoad_RoundTrip(t *testing.T) {
	opts := quietOptions(21)
	opts.GridSize, opts.MaxRounds, opts.Era = 10, 10, components.EraFuture
	e, err := New(opts)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		c := e.AutopilotTarget()
		if err := e.ProcessPlayerMove(c.X, c.Y); err != nil {
			t.Fatal(err)
		}
	}

	path := filepath.Join(t.TempDir(), "savegame.yaml")
	if err := e.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := Load(path, quietOptions(1))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if want, got := e.Snapshot(), loaded.Snapshot(); !reflect.DeepEqual(want, got) {
		t.Errorf("snapshot mismatch:\nwant %+v\ngot  %+v", want, got)
	}
	if loaded.Session() != e.Session() {
		t.Errorf("session = %q, want %q", loaded.Session(), e.Session())
	}
	if loaded.State() != StateAwaitingInput {
		t.Errorf("state = %v, want AwaitingInput", loaded.State())
	}

	// The restored game keeps playing to the end.
	for !loaded.IsGameOver() {
		c := loaded.AutopilotTarget()
		if err := loaded.ProcessPlayerMove(c.X, c.Y); err != nil {
			t.Fatalf("round %d: %v", loaded.Round(), err)
		}
	}
	if loaded.Round() != 10 {
		t.Errorf("round = %d, want 10", loaded.Round())
	}
}

func TestLoad_Failures(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml"), quietOptions(1)); !errors.Is(err, telemetry.ErrNoSave) {
		t.Errorf("missing file: err = %v, want ErrNoSave", err)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("version: 1\ngrid_size: [oops\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if e, err := Load(bad, quietOptions(1)); err == nil || e != nil {
		t.Errorf("corrupt file: engine %v, err %v", e, err)
	}
}

func TestRestore_FinishedGame(t *testing.T) {
	signal := &countingSignal{}
	opts := quietOptions(1)
	opts.Signal = signal
	e, err := Restore(&telemetry.Snapshot{
		Version: telemetry.SnapshotVersion, Era: components.EraPresent,
		GridSize: 10, Round: 10, MaxRounds: 10,
		Entities: []telemetry.EntityState{
			animal(components.RoleApex, "Lion", 0, 0, 0),
			animal(components.RolePredator, "Hyena", 5, 5, 0),
			animal(components.RolePrey, "Gazelle", 9, 9, 0),
		},
	}, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !e.IsGameOver() {
		t.Error("restored finished game is not over")
	}
	if err := e.ProcessPlayerMove(5, 5); !errors.Is(err, ErrInvalidMove) {
		t.Errorf("err = %v, want ErrInvalidMove", err)
	}
	if signal.wins+signal.losses != 0 {
		t.Error("outcome signalled again on restore")
	}
}

func TestRestore_ClampsCooldown(t *testing.T) {
	e := restoreBoard(t, components.EraPast, 10, 0, 10,
		animal(components.RoleApex, "Rex", 0, 0, 99),
		animal(components.RolePredator, "Wolf", 5, 5, -4),
		animal(components.RolePrey, "Hare", 9, 9, 1),
	)
	if got := e.Apex().Cooldown; got != components.DefaultMaxCooldown {
		t.Errorf("apex cooldown = %d, want %d", got, components.DefaultMaxCooldown)
	}
	if got := e.Player().Cooldown; got != 0 {
		t.Errorf("player cooldown = %d, want 0", got)
	}
}

func TestAddLoaded_RejectsOccupiedCell(t *testing.T) {
	e := restoreBoard(t, components.EraPast, 10, 0, 10,
		animal(components.RoleApex, "Rex", 0, 0, 0),
		animal(components.RolePredator, "Wolf", 5, 5, 0),
		animal(components.RolePrey, "Hare", 9, 9, 0),
	)
	if err := e.AddLoadedFood("Berry", components.Cell{X: 5, Y: 5}); err == nil {
		t.Error("food placed on the player")
	}

	e.ClearAllEntities()
	if len(e.Pieces()) != 0 || e.Player().Placed {
		t.Error("board not cleared")
	}
	if err := e.AddLoadedFood("Berry", components.Cell{X: 5, Y: 5}); err != nil {
		t.Errorf("food on cleared board: %v", err)
	}
}
