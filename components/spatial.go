package components

import "fmt"

// Cell is a board coordinate.
type Cell struct {
	X, Y int
}

// String formats the cell as (x,y), the form used in the game log.
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Delta returns the absolute coordinate deltas between c and o.
func (c Cell) Delta(o Cell) (dx, dy int) {
	return abs(o.X - c.X), abs(o.Y - c.Y)
}

// Chebyshev returns max(|dx|, |dy|).
func (c Cell) Chebyshev(o Cell) int {
	dx, dy := c.Delta(o)
	return max(dx, dy)
}

// Adjacent reports whether o is one of the 8 neighbours of c.
func (c Cell) Adjacent(o Cell) bool {
	return c.Chebyshev(o) == 1
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
