package game

import (
	"fmt"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/foodchain/components"
	"github.com/pthm-cable/foodchain/telemetry"
)

// Snapshot captures the board, scores, cooldowns and round counter.
func (e *Engine) Snapshot() *telemetry.Snapshot {
	s := &telemetry.Snapshot{
		Version:   telemetry.SnapshotVersion,
		Session:   e.Session(),
		Era:       e.era,
		GridSize:  e.board.Size(),
		Round:     e.round,
		MaxRounds: e.maxRounds,
	}
	for _, p := range e.board.Pieces() {
		es := telemetry.EntityState{Name: p.Tag.Name, X: p.At.X, Y: p.At.Y}
		if p.IsAnimal() {
			es.Kind = p.Animal.Role.String()
			es.Score = p.Animal.Score
			es.Cooldown = p.Animal.Cooldown
		} else {
			es.Kind = telemetry.FoodKind
		}
		s.Entities = append(s.Entities, es)
	}
	return s
}

// Save writes the game to path.
func (e *Engine) Save(path string) error {
	if err := telemetry.SaveGame(e.Snapshot(), path); err != nil {
		return fmt.Errorf("saving game: %w", err)
	}
	e.log.Info("game saved", "path", path, "round", e.round)
	return nil
}

// Restore rebuilds an engine from a snapshot without re-running setup: no
// spawning and no opening prey move. Grid size, era and round limit come from
// the snapshot; the randomness, logging and signal settings come from opts.
func Restore(s *telemetry.Snapshot, opts Options) (*Engine, error) {
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("restoring game: %w", err)
	}
	if opts.Session == "" {
		opts.Session = s.Session
	}
	e, err := newEngine(opts, s.GridSize, s.MaxRounds, s.Era)
	if err != nil {
		return nil, fmt.Errorf("restoring game: %w", err)
	}

	e.ClearAllEntities()
	for _, es := range s.Entities {
		if es.IsFood() {
			err = e.AddLoadedFood(es.Name, es.Cell())
		} else {
			var role components.Role
			role, err = es.Role()
			if err == nil {
				err = e.AddLoadedAnimal(es.Name, role, es.Cell(), es.Score, es.Cooldown)
			}
		}
		if err != nil {
			return nil, fmt.Errorf("restoring game: %w", err)
		}
	}

	e.round = s.Round
	if e.round >= e.maxRounds {
		e.state = StateGameOver
		e.signalled = true
	}
	e.log.Info("game restored", "era", e.era, "round", e.round, "rounds", e.maxRounds)
	return e, nil
}

// Load reads a save file and restores it. On error no engine is returned, so
// whatever game the caller holds stays untouched.
func Load(path string, opts Options) (*Engine, error) {
	s, err := telemetry.LoadGame(path)
	if err != nil {
		return nil, err
	}
	return Restore(s, opts)
}

// ClearAllEntities empties the board and forgets the principals.
func (e *Engine) ClearAllEntities() {
	e.board.Reset()
	e.roster = e.roster[:0]
	e.apex = ecs.Entity{}
	e.player = ecs.Entity{}
	e.prey = ecs.Entity{}
}

// AddLoadedAnimal places a saved animal and makes it the principal of its role.
// The cooldown is clamped to the role's range.
func (e *Engine) AddLoadedAnimal(name string, role components.Role, at components.Cell, score, cooldown int) error {
	if !e.board.Grid().IsEmpty(at) {
		return fmt.Errorf("cell %v is not free for %s", at, name)
	}
	a := components.NewAnimal(role, e.era)
	a.Score = score
	a.SetCooldown(cooldown)

	ent := e.addAnimal(name, a)
	e.board.Grid().Place(ent, at)
	switch role {
	case components.RoleApex:
		e.apex = ent
	case components.RolePredator:
		e.player = ent
	case components.RolePrey:
		e.prey = ent
	}
	return nil
}

// AddLoadedFood places a saved food item.
func (e *Engine) AddLoadedFood(name string, at components.Cell) error {
	if !e.board.Grid().IsEmpty(at) {
		return fmt.Errorf("cell %v is not free for %s", at, name)
	}
	e.board.Grid().Place(e.board.NewFood(name), at)
	return nil
}
