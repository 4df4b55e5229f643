// Package systems provides the board, occupancy index and AI heuristics for the game.
package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/foodchain/components"
)

// Grid is the square occupancy map of the board.
// It is the single source of truth for entity positions: cells index entity ids and
// the reverse index answers "where is e". Both sides are updated together.
type Grid struct {
	size  int
	cells []ecs.Entity // flat, x-major: idx = x*size + y
	where map[ecs.Entity]components.Cell
}

// NewGrid creates an empty size x size grid.
func NewGrid(size int) *Grid {
	return &Grid{
		size:  size,
		cells: make([]ecs.Entity, size*size),
		where: make(map[ecs.Entity]components.Cell),
	}
}

// Size returns the board dimension.
func (g *Grid) Size() int {
	return g.size
}

// IsValidPosition is the bounds check used by everything else.
func (g *Grid) IsValidPosition(x, y int) bool {
	return x >= 0 && x < g.size && y >= 0 && y < g.size
}

// Contains reports whether c is on the board.
func (g *Grid) Contains(c components.Cell) bool {
	return g.IsValidPosition(c.X, c.Y)
}

// Place writes e into cell c. Out-of-bounds placement is a no-op.
// An entity already on the board is moved instead of duplicated.
func (g *Grid) Place(e ecs.Entity, c components.Cell) {
	if !g.Contains(c) {
		return
	}
	if old, ok := g.where[e]; ok {
		g.cells[g.cellIndex(old)] = ecs.Entity{}
	}
	if prev := g.cells[g.cellIndex(c)]; !prev.IsZero() {
		delete(g.where, prev)
	}
	g.cells[g.cellIndex(c)] = e
	g.where[e] = c
}

// Move relocates e to c, clearing its current cell.
// The caller guarantees c may be occupied; eating rules are not checked here.
func (g *Grid) Move(e ecs.Entity, c components.Cell) {
	if _, ok := g.where[e]; !ok {
		return
	}
	g.Place(e, c)
}

// Remove clears the cell holding e.
func (g *Grid) Remove(e ecs.Entity) {
	c, ok := g.where[e]
	if !ok {
		return
	}
	g.cells[g.cellIndex(c)] = ecs.Entity{}
	delete(g.where, e)
}

// Clear empties every cell.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = ecs.Entity{}
	}
	clear(g.where)
}

// At returns the occupant of c, if any.
func (g *Grid) At(c components.Cell) (ecs.Entity, bool) {
	if !g.Contains(c) {
		return ecs.Entity{}, false
	}
	e := g.cells[g.cellIndex(c)]
	return e, !e.IsZero()
}

// IsEmpty reports whether c is on the board and unoccupied.
func (g *Grid) IsEmpty(c components.Cell) bool {
	if !g.Contains(c) {
		return false
	}
	return g.cells[g.cellIndex(c)].IsZero()
}

// PositionOf returns the cell holding e.
func (g *Grid) PositionOf(e ecs.Entity) (components.Cell, bool) {
	c, ok := g.where[e]
	return c, ok
}

// Entities returns every placed entity in scan order (x-major, then y).
func (g *Grid) Entities() []ecs.Entity {
	out := make([]ecs.Entity, 0, len(g.where))
	for _, e := range g.cells {
		if !e.IsZero() {
			out = append(out, e)
		}
	}
	return out
}

// EmptyCells returns every unoccupied cell in scan order.
func (g *Grid) EmptyCells() []components.Cell {
	out := make([]components.Cell, 0, len(g.cells)-len(g.where))
	for i, e := range g.cells {
		if e.IsZero() {
			out = append(out, components.Cell{X: i / g.size, Y: i % g.size})
		}
	}
	return out
}

// Len returns the number of placed entities.
func (g *Grid) Len() int {
	return len(g.where)
}

// cellIndex returns the flat index for an in-bounds cell.
func (g *Grid) cellIndex(c components.Cell) int {
	return c.X*g.size + c.Y
}
