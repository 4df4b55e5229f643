package telemetry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/foodchain/components"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// FoodKind is the entity kind written for food records.
const FoodKind = "FOOD"

// ErrNoSave is returned by LoadGame when there is no save file.
var ErrNoSave = errors.New("no saved game")

// Snapshot holds everything needed to resume a game.
type Snapshot struct {
	Version   int            `yaml:"version"`
	Session   string         `yaml:"session,omitempty"`
	Era       components.Era `yaml:"era"`
	GridSize  int            `yaml:"grid_size"`
	Round     int            `yaml:"round"`
	MaxRounds int            `yaml:"max_rounds"`

	Entities []EntityState `yaml:"entities"`
}

// EntityState is one board occupant. Kind is a role name or FOOD.
// Score and cooldown are only meaningful for animals.
type EntityState struct {
	Kind     string `yaml:"kind"`
	Name     string `yaml:"name"`
	X        int    `yaml:"x"`
	Y        int    `yaml:"y"`
	Score    int    `yaml:"score,omitempty"`
	Cooldown int    `yaml:"cooldown,omitempty"`
}

// IsFood reports whether the record is a food item.
func (es EntityState) IsFood() bool {
	return es.Kind == FoodKind
}

// Role parses the record kind as a role.
func (es EntityState) Role() (components.Role, error) {
	return components.ParseRole(es.Kind)
}

// Cell returns the record position.
func (es EntityState) Cell() components.Cell {
	return components.Cell{X: es.X, Y: es.Y}
}

// Validate checks the snapshot can rebuild a game: positions are on the board
// and distinct, and there is exactly one animal per role.
func (s *Snapshot) Validate() error {
	if s.Version != SnapshotVersion {
		return fmt.Errorf("unsupported save version %d", s.Version)
	}
	if s.GridSize < 3 {
		return fmt.Errorf("invalid grid size %d", s.GridSize)
	}
	if s.MaxRounds < 1 || s.Round < 0 || s.Round > s.MaxRounds {
		return fmt.Errorf("invalid round %d/%d", s.Round, s.MaxRounds)
	}

	seen := make(map[components.Cell]bool, len(s.Entities))
	var roles [3]int
	for i, es := range s.Entities {
		c := es.Cell()
		if c.X < 0 || c.Y < 0 || c.X >= s.GridSize || c.Y >= s.GridSize {
			return fmt.Errorf("entity %d (%s) at %v is off the board", i, es.Name, c)
		}
		if seen[c] {
			return fmt.Errorf("entity %d (%s) shares cell %v", i, es.Name, c)
		}
		seen[c] = true

		if es.IsFood() {
			continue
		}
		role, err := es.Role()
		if err != nil {
			return fmt.Errorf("entity %d: %w", i, err)
		}
		roles[role]++
	}
	for _, role := range components.Roles() {
		if roles[role] != 1 {
			return fmt.Errorf("save has %d %s animals, want 1", roles[role], role)
		}
	}
	return nil
}

// SaveGame writes a snapshot to path. The file is replaced atomically so a
// failed save leaves any previous save intact.
func SaveGame(snapshot *Snapshot, path string) error {
	data, err := yaml.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshal save: %w", err)
	}

	if err := writeFileAtomic(path, data); err != nil {
		return fmt.Errorf("write save: %w", err)
	}
	return nil
}

// writeFileAtomic replaces path with data through a temp file and rename.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return nil
}

// LoadGame reads and validates a snapshot.
func LoadGame(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoSave
	}
	if err != nil {
		return nil, fmt.Errorf("read save: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrNoSave
	}

	var snapshot Snapshot
	if err := yaml.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal save: %w", err)
	}
	if err := snapshot.Validate(); err != nil {
		return nil, fmt.Errorf("invalid save: %w", err)
	}
	return &snapshot, nil
}

// SaveExists reports whether path holds a non-empty save file.
func SaveExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir() && info.Size() > 0
}
