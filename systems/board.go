package systems

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/foodchain/components"
)

// Piece is a read-only view of one board occupant.
type Piece struct {
	Entity ecs.Entity
	At     components.Cell
	Tag    components.Tag
	Animal *components.Animal // nil for food
}

// IsAnimal reports whether the piece is an animal.
func (p Piece) IsAnimal() bool {
	return p.Tag.Kind == components.KindAnimal && p.Animal != nil
}

// Board couples the entity arena (an ECS world) with the grid that indexes it.
// Entities are stored once in the world; the grid only records ids by cell.
type Board struct {
	world   *ecs.World
	grid    *Grid
	tagMap  *ecs.Map[components.Tag]
	animMap *ecs.Map[components.Animal]

	animalMapper *ecs.Map2[components.Tag, components.Animal]
	tagFilter    *ecs.Filter1[components.Tag]
}

// NewBoard creates an empty board of the given size.
func NewBoard(size int) *Board {
	world := ecs.NewWorld()
	return &Board{
		world:        world,
		grid:         NewGrid(size),
		tagMap:       ecs.NewMap[components.Tag](world),
		animMap:      ecs.NewMap[components.Animal](world),
		animalMapper: ecs.NewMap2[components.Tag, components.Animal](world),
		tagFilter:    ecs.NewFilter1[components.Tag](world),
	}
}

// Grid returns the occupancy index.
func (b *Board) Grid() *Grid {
	return b.grid
}

// Size returns the board dimension.
func (b *Board) Size() int {
	return b.grid.Size()
}

// NewAnimal stores an animal in the arena without placing it.
func (b *Board) NewAnimal(name string, a components.Animal) ecs.Entity {
	tag := components.NewAnimalTag(name)
	return b.animalMapper.NewEntity(&tag, &a)
}

// NewFood stores a food item in the arena without placing it.
func (b *Board) NewFood(name string) ecs.Entity {
	tag := components.NewFoodTag(name)
	return b.tagMap.NewEntity(&tag)
}

// Discard removes e from the grid and the arena.
func (b *Board) Discard(e ecs.Entity) {
	b.grid.Remove(e)
	if b.world.Alive(e) {
		b.world.RemoveEntity(e)
	}
}

// Reset removes every entity from the grid and the arena.
func (b *Board) Reset() {
	b.grid.Clear()
	var all []ecs.Entity
	query := b.tagFilter.Query()
	for query.Next() {
		all = append(all, query.Entity())
	}
	for _, e := range all {
		b.world.RemoveEntity(e)
	}
}

// Tag returns the tag of e.
func (b *Board) Tag(e ecs.Entity) components.Tag {
	return *b.tagMap.Get(e)
}

// Animal returns the animal component of e, or nil for food and unknown entities.
func (b *Board) Animal(e ecs.Entity) *components.Animal {
	if e.IsZero() || !b.world.Alive(e) || !b.animMap.Has(e) {
		return nil
	}
	return b.animMap.Get(e)
}

// Piece builds the view of a placed entity.
func (b *Board) Piece(e ecs.Entity) (Piece, bool) {
	at, ok := b.grid.PositionOf(e)
	if !ok {
		return Piece{}, false
	}
	return Piece{Entity: e, At: at, Tag: b.Tag(e), Animal: b.Animal(e)}, true
}

// Occupant returns the piece standing on c.
func (b *Board) Occupant(c components.Cell) (Piece, bool) {
	e, ok := b.grid.At(c)
	if !ok {
		return Piece{}, false
	}
	return b.Piece(e)
}

// Pieces returns every placed entity in scan order.
func (b *Board) Pieces() []Piece {
	entities := b.grid.Entities()
	out := make([]Piece, 0, len(entities))
	for _, e := range entities {
		if p, ok := b.Piece(e); ok {
			out = append(out, p)
		}
	}
	return out
}

// Classify classifies a move of e to c. Unplaced or non-animal entities are Invalid.
func (b *Board) Classify(e ecs.Entity, c components.Cell) components.MoveKind {
	a := b.Animal(e)
	if a == nil {
		return components.MoveInvalid
	}
	from, ok := b.grid.PositionOf(e)
	if !ok {
		return components.MoveInvalid
	}
	return a.Classify(from, c)
}

// CanEnter reports whether mover may end its move on c: the cell is empty or holds
// something mover can eat. Future-era prey may not use an ability to land on food.
func (b *Board) CanEnter(mover *components.Animal, c components.Cell, kind components.MoveKind) bool {
	occ, ok := b.Occupant(c)
	if !ok {
		return b.grid.Contains(c)
	}
	switch occ.Tag.Kind {
	case components.KindFood:
		if kind == components.MoveAbility && FoodBlocksAbility(mover) {
			return false
		}
		return mover.CanEat(components.KindFood, 0)
	case components.KindAnimal:
		if occ.Animal == nil {
			return false
		}
		return mover.CanEat(components.KindAnimal, occ.Animal.Role)
	}
	return false
}

// FoodBlocksAbility reports the Future-era prey restriction: its hop cannot end on food.
func FoodBlocksAbility(a *components.Animal) bool {
	return a.Era == components.EraFuture && a.Role == components.RolePrey
}

// RandomEmptyCell picks a uniformly random unoccupied cell.
func (b *Board) RandomEmptyCell(rng *rand.Rand) (components.Cell, bool) {
	empty := b.grid.EmptyCells()
	if len(empty) == 0 {
		return components.Cell{}, false
	}
	return empty[rng.Intn(len(empty))], true
}
