package systems

import (
	"math/rand"
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/foodchain/components"
)

// checkGridConsistency verifies both indexes of the grid agree.
func checkGridConsistency(t *testing.T, g *Grid) {
	t.Helper()

	seen := make(map[ecs.Entity]bool)
	count := 0
	for x := 0; x < g.Size(); x++ {
		for y := 0; y < g.Size(); y++ {
			c := components.Cell{X: x, Y: y}
			e, ok := g.At(c)
			if !ok {
				continue
			}
			count++
			if seen[e] {
				t.Fatalf("entity %v occupies more than one cell", e)
			}
			seen[e] = true
			at, ok := g.PositionOf(e)
			if !ok || at != c {
				t.Fatalf("entity in cell %v reports position %v (%v)", c, at, ok)
			}
		}
	}
	if count != g.Len() {
		t.Fatalf("grid has %d occupied cells but Len() = %d", count, g.Len())
	}
	if len(g.Entities())+len(g.EmptyCells()) != g.Size()*g.Size() {
		t.Fatalf("entities + empty cells != cell count")
	}
}

func TestGrid_IsValidPosition(t *testing.T) {
	g := NewGrid(10)
	tests := []struct {
		x, y int
		want bool
	}{
		{0, 0, true},
		{9, 9, true},
		{-1, 0, false},
		{0, -1, false},
		{10, 5, false},
		{5, 10, false},
	}
	for _, tt := range tests {
		if got := g.IsValidPosition(tt.x, tt.y); got != tt.want {
			t.Errorf("IsValidPosition(%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestGrid_PlaceOutOfBoundsIsNoOp(t *testing.T) {
	b := NewBoard(5)
	e := b.NewFood("Berry")
	b.Grid().Place(e, components.Cell{X: 5, Y: 0})

	if b.Grid().Len() != 0 {
		t.Errorf("expected empty grid, got %d entities", b.Grid().Len())
	}
	if _, ok := b.Grid().PositionOf(e); ok {
		t.Error("out-of-bounds entity should not have a position")
	}
}

func TestGrid_MoveClearsOldCell(t *testing.T) {
	b := NewBoard(5)
	e := b.NewFood("Berry")
	g := b.Grid()
	g.Place(e, components.Cell{X: 1, Y: 1})
	g.Move(e, components.Cell{X: 3, Y: 2})

	if !g.IsEmpty(components.Cell{X: 1, Y: 1}) {
		t.Error("old cell still occupied after move")
	}
	if at, _ := g.PositionOf(e); at != (components.Cell{X: 3, Y: 2}) {
		t.Errorf("position after move = %v", at)
	}
	checkGridConsistency(t, g)
}

func TestGrid_EntitiesScanOrder(t *testing.T) {
	b := NewBoard(4)
	g := b.Grid()
	cells := []components.Cell{{X: 3, Y: 0}, {X: 0, Y: 3}, {X: 1, Y: 2}, {X: 0, Y: 1}}
	for i, c := range cells {
		g.Place(b.NewFood(string(rune('a'+i))), c)
	}

	want := []components.Cell{{X: 0, Y: 1}, {X: 0, Y: 3}, {X: 1, Y: 2}, {X: 3, Y: 0}}
	got := g.Entities()
	if len(got) != len(want) {
		t.Fatalf("got %d entities, want %d", len(got), len(want))
	}
	for i, e := range got {
		if at, _ := g.PositionOf(e); at != want[i] {
			t.Errorf("entity %d at %v, want %v", i, at, want[i])
		}
	}
}

func TestGrid_RandomOperationsStayConsistent(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	b := NewBoard(6)
	g := b.Grid()

	var pool []ecs.Entity
	for i := 0; i < 12; i++ {
		pool = append(pool, b.NewFood("Berry"))
	}

	randomCell := func() components.Cell {
		return components.Cell{X: rng.Intn(8) - 1, Y: rng.Intn(8) - 1}
	}

	for step := 0; step < 2000; step++ {
		e := pool[rng.Intn(len(pool))]
		switch rng.Intn(4) {
		case 0:
			g.Place(e, randomCell())
		case 1:
			c := randomCell()
			if g.IsEmpty(c) {
				g.Move(e, c)
			}
		case 2:
			g.Remove(e)
		case 3:
			if rng.Intn(50) == 0 {
				g.Clear()
			}
		}
		checkGridConsistency(t, g)
	}
}

func TestBoard_DiscardAndReset(t *testing.T) {
	b := NewBoard(5)
	food := b.NewFood("Berry")
	prey := b.NewAnimal("Rabbit", components.NewAnimal(components.RolePrey, components.EraPast))
	b.Grid().Place(food, components.Cell{X: 0, Y: 0})
	b.Grid().Place(prey, components.Cell{X: 1, Y: 1})

	b.Discard(food)
	if _, ok := b.Occupant(components.Cell{X: 0, Y: 0}); ok {
		t.Error("discarded food still on the board")
	}
	if b.world.Alive(food) {
		t.Error("discarded food still in the world")
	}

	b.Reset()
	if b.Grid().Len() != 0 {
		t.Errorf("grid not empty after reset: %d", b.Grid().Len())
	}
	if b.world.Alive(prey) {
		t.Error("animal survived reset")
	}
}

func TestBoard_CanEnter(t *testing.T) {
	b := NewBoard(10)
	apex := b.NewAnimal("Rex", components.NewAnimal(components.RoleApex, components.EraFuture))
	pred := b.NewAnimal("Wolf", components.NewAnimal(components.RolePredator, components.EraFuture))
	prey := b.NewAnimal("Hare", components.NewAnimal(components.RolePrey, components.EraFuture))
	food := b.NewFood("Clover")
	b.Grid().Place(apex, components.Cell{X: 0, Y: 0})
	b.Grid().Place(pred, components.Cell{X: 5, Y: 5})
	b.Grid().Place(prey, components.Cell{X: 5, Y: 6})
	b.Grid().Place(food, components.Cell{X: 5, Y: 9})

	tests := []struct {
		name  string
		mover ecs.Entity
		cell  components.Cell
		kind  components.MoveKind
		want  bool
	}{
		{"empty cell", pred, components.Cell{X: 4, Y: 4}, components.MoveWalk, true},
		{"off board", pred, components.Cell{X: 10, Y: 4}, components.MoveWalk, false},
		{"predator onto prey", pred, components.Cell{X: 5, Y: 6}, components.MoveWalk, true},
		{"prey onto predator", prey, components.Cell{X: 5, Y: 5}, components.MoveWalk, false},
		{"prey walks onto food", prey, components.Cell{X: 5, Y: 9}, components.MoveWalk, true},
		{"future prey hops onto food", prey, components.Cell{X: 5, Y: 9}, components.MoveAbility, false},
		{"apex onto food", apex, components.Cell{X: 5, Y: 9}, components.MoveAbility, false},
		{"apex onto predator", apex, components.Cell{X: 5, Y: 5}, components.MoveAbility, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.CanEnter(b.Animal(tt.mover), tt.cell, tt.kind); got != tt.want {
				t.Errorf("CanEnter = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBoard_RandomEmptyCellFullBoard(t *testing.T) {
	b := NewBoard(3)
	for x := 0; x < 3; x++ {
		for y := 0; y < 3; y++ {
			b.Grid().Place(b.NewFood("Berry"), components.Cell{X: x, Y: y})
		}
	}
	if _, ok := b.RandomEmptyCell(rand.New(rand.NewSource(1))); ok {
		t.Error("expected no empty cell on a full board")
	}
}
