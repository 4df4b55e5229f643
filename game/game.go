// Package game implements the turn engine: setup, player and AI moves, eating,
// scoring, round progression and win determination.
package game

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/foodchain/components"
	"github.com/pthm-cable/foodchain/config"
	"github.com/pthm-cable/foodchain/systems"
	"github.com/pthm-cable/foodchain/telemetry"
)

// Board limits accepted by the engine. Front ends enforce their own, larger minimums.
const (
	MinGridSize  = 3
	MinMaxRounds = 1
)

// ErrInvalidMove is the only rule error. It is always wrapped with a reason.
var ErrInvalidMove = errors.New("invalid move")

func invalidMove(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidMove, reason)
}

// NameSource supplies the species names for an era.
type NameSource interface {
	Names(era components.Era, rng *rand.Rand) (config.FoodChain, error)
}

// OutcomeSignal is notified once when a game ends.
type OutcomeSignal interface {
	OnWin()
	OnLose()
}

// Options configures a new engine. Zero values fall back to sensible defaults.
type Options struct {
	Seed      int64      // 0 = time-based
	Rand      *rand.Rand // overrides Seed
	GridSize  int
	MaxRounds int
	Era       components.Era

	Names    NameSource               // nil = embedded food chains
	Logger   *slog.Logger             // diagnostics, nil = slog.Default()
	EventLog *slog.Logger             // game event log, may be nil
	Output   *telemetry.OutputManager // CSV output, may be nil
	Perf     *telemetry.PerfCollector // round timings, may be nil
	Signal   OutcomeSignal            // may be nil
	Session  string                   // empty = new uuid
}

// State is the turn state machine.
type State uint8

const (
	StateAwaitingInput State = iota
	StateResolving
	StateRoundComplete
	StateGameOver
)

// StateNames returns the display names for all states.
func StateNames() []string {
	return []string{"AwaitingInput", "Resolving", "RoundComplete", "GameOver"}
}

// String returns the display name for a State.
func (s State) String() string {
	names := StateNames()
	if int(s) < len(names) {
		return names[s]
	}
	return "Unknown"
}

// Engine owns the board and drives the fixed turn order:
// prey (AI), player, apex (AI), end of round.
type Engine struct {
	board  *systems.Board
	rng    *rand.Rand
	log    *slog.Logger
	events *telemetry.Collector
	perf   *telemetry.PerfCollector
	signal OutcomeSignal

	seed      int64
	era       components.Era
	round     int
	maxRounds int
	state     State

	// Principals, one per role.
	apex   ecs.Entity
	player ecs.Entity
	prey   ecs.Entity

	// roster lists every animal ever added, for save bookkeeping.
	roster []ecs.Entity

	signalled bool
}

// New creates an engine, spawns the food chain and plays the prey's opening move.
func New(opts Options) (*Engine, error) {
	e, err := newEngine(opts, opts.GridSize, opts.MaxRounds, opts.Era)
	if err != nil {
		return nil, err
	}

	names := opts.Names
	if names == nil {
		chains, err := config.LoadFoodChains("")
		if err != nil {
			return nil, err
		}
		names = chains
	}
	chain, err := names.Names(e.era, e.rng)
	if err != nil {
		return nil, fmt.Errorf("loading names: %w", err)
	}

	e.initialize(chain)
	return e, nil
}

// newEngine builds an empty engine without spawning anything.
func newEngine(opts Options, gridSize, maxRounds int, era components.Era) (*Engine, error) {
	if gridSize < MinGridSize {
		return nil, fmt.Errorf("grid size %d is below %d", gridSize, MinGridSize)
	}
	if maxRounds < MinMaxRounds {
		return nil, fmt.Errorf("max rounds %d is below %d", maxRounds, MinMaxRounds)
	}
	if era > components.EraFuture {
		return nil, fmt.Errorf("unknown era %d", era)
	}

	rng := opts.Rand
	if rng == nil {
		seed := opts.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng = rand.New(rand.NewSource(seed))
		opts.Seed = seed
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	session := opts.Session
	if session == "" {
		session = uuid.NewString()
	}

	return &Engine{
		board:     systems.NewBoard(gridSize),
		rng:       rng,
		log:       logger.With("session", session),
		events:    telemetry.NewCollector(opts.EventLog, opts.Output, session),
		perf:      opts.Perf,
		signal:    opts.Signal,
		seed:      opts.Seed,
		era:       era,
		maxRounds: maxRounds,
		state:     StateAwaitingInput,
	}, nil
}

// initialize spawns the three animals and the food, then lets the prey open round 0.
func (e *Engine) initialize(chain config.FoodChain) {
	e.apex = e.addAnimal(chain.Apex, components.NewAnimal(components.RoleApex, e.era))
	e.player = e.addAnimal(chain.Predator, components.NewAnimal(components.RolePredator, e.era))
	e.prey = e.addAnimal(chain.Prey, components.NewAnimal(components.RolePrey, e.era))

	e.record(telemetry.Event{
		Type:   telemetry.EventGameStart,
		Role:   components.RolePredator.String(),
		Detail: fmt.Sprintf("era=%s totalRounds=%d grid=%d", e.era, e.maxRounds, e.board.Size()),
	})

	for _, ent := range []ecs.Entity{e.apex, e.player, e.prey} {
		e.spawn(ent, telemetry.EventSpawn)
	}
	e.spawn(e.board.NewFood(chain.Food), telemetry.EventSpawn)

	e.log.Info("game started", "era", e.era, "grid", e.board.Size(), "rounds", e.maxRounds,
		"apex", chain.Apex, "predator", chain.Predator, "prey", chain.Prey, "food", chain.Food)

	e.beginRound()
}

func (e *Engine) addAnimal(name string, a components.Animal) ecs.Entity {
	ent := e.board.NewAnimal(name, a)
	e.roster = append(e.roster, ent)
	return ent
}

// spawn places ent on a random empty cell and revives it if it is an animal.
func (e *Engine) spawn(ent ecs.Entity, t telemetry.EventType) bool {
	cell, ok := e.board.RandomEmptyCell(e.rng)
	if !ok {
		e.log.Warn("no empty cell to spawn on", "name", e.board.Tag(ent).Name)
		return false
	}
	e.board.Grid().Place(ent, cell)

	role := telemetry.FoodKind
	if a := e.board.Animal(ent); a != nil {
		a.Revive()
		role = a.Role.String()
	}
	e.record(telemetry.NewSpawnEvent(t, e.round, e.board.Tag(ent).Name, role, cell))
	return true
}

// Era returns the era of the game.
func (e *Engine) Era() components.Era {
	return e.era
}

// Round returns the number of completed rounds.
func (e *Engine) Round() int {
	return e.round
}

// MaxRounds returns the round limit.
func (e *Engine) MaxRounds() int {
	return e.maxRounds
}

// State returns the current turn state.
func (e *Engine) State() State {
	return e.state
}

// IsGameOver reports whether the round limit was reached.
func (e *Engine) IsGameOver() bool {
	return e.state == StateGameOver
}

// Session returns the game's unique id.
func (e *Engine) Session() string {
	return e.events.Session()
}

// Size returns the board dimension.
func (e *Engine) Size() int {
	return e.board.Size()
}

// Pieces returns every occupant of the board in scan order.
func (e *Engine) Pieces() []systems.Piece {
	return e.board.Pieces()
}

// EventCount returns how many events of type t this game has produced.
func (e *Engine) EventCount(t telemetry.EventType) int {
	return e.events.Count(t)
}

// Lifetime returns what the named animal (or food) has done this game.
func (e *Engine) Lifetime(name string) (telemetry.LifetimeStats, bool) {
	return e.events.Lifetime(name)
}

// Bookmarks returns the notable moments of the game so far.
func (e *Engine) Bookmarks() []telemetry.Bookmark {
	return e.events.Bookmarks()
}

// RecentEvents returns the latest game events, oldest first.
func (e *Engine) RecentEvents() []telemetry.Event {
	return e.events.Recent()
}

// AnimalView is a read-only copy of an animal's public state.
type AnimalView struct {
	Name        string
	Symbol      rune
	Role        components.Role
	Alive       bool
	Score       int
	Cooldown    int
	MaxCooldown int
	Ability     string
	Position    components.Cell
	Placed      bool
}

// Apex returns the apex animal.
func (e *Engine) Apex() AnimalView { return e.view(e.apex) }

// Player returns the player-controlled predator.
func (e *Engine) Player() AnimalView { return e.view(e.player) }

// Prey returns the prey animal.
func (e *Engine) Prey() AnimalView { return e.view(e.prey) }

// Principal returns the animal playing role.
func (e *Engine) Principal(role components.Role) AnimalView {
	return e.view(e.principal(role))
}

func (e *Engine) principal(role components.Role) ecs.Entity {
	switch role {
	case components.RoleApex:
		return e.apex
	case components.RolePredator:
		return e.player
	default:
		return e.prey
	}
}

func (e *Engine) view(ent ecs.Entity) AnimalView {
	a := e.board.Animal(ent)
	if a == nil {
		return AnimalView{}
	}
	tag := e.board.Tag(ent)
	pos, placed := e.board.Grid().PositionOf(ent)
	return AnimalView{
		Name:        tag.Name,
		Symbol:      tag.Symbol,
		Role:        a.Role,
		Alive:       a.Alive,
		Score:       a.Score,
		Cooldown:    a.Cooldown,
		MaxCooldown: a.MaxCooldown,
		Ability:     a.Profile().Ability,
		Position:    pos,
		Placed:      placed,
	}
}
