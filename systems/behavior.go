package systems

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/foodchain/components"
)

// Heuristic constants.
const (
	missingDistance = 100 // used when no threat or food is on the board
	threatWeight    = 3
	foodCellBonus   = 50
)

// LegalMoves lists the cells e may move to this turn, excluding staying put.
// The window has radius SearchRange and is scanned x-major, then y.
func LegalMoves(b *Board, e ecs.Entity) []components.Cell {
	a := b.Animal(e)
	if a == nil {
		return nil
	}
	from, ok := b.grid.PositionOf(e)
	if !ok {
		return nil
	}

	r := a.SearchRange()
	var moves []components.Cell
	for x := from.X - r; x <= from.X+r; x++ {
		for y := from.Y - r; y <= from.Y+r; y++ {
			c := components.Cell{X: x, Y: y}
			if !b.grid.Contains(c) {
				continue
			}
			kind := a.Classify(from, c)
			if kind != components.MoveWalk && kind != components.MoveAbility {
				continue
			}
			if b.CanEnter(a, c, kind) {
				moves = append(moves, c)
			}
		}
	}
	return moves
}

// picker keeps the best-scoring candidate. A later candidate with an equal score
// replaces the incumbent on a fair coin flip, so the result depends on scan order.
type picker struct {
	rng   *rand.Rand
	best  components.Cell
	score int
	set   bool
}

func (p *picker) offer(c components.Cell, score int) {
	switch {
	case !p.set || score > p.score:
		p.best, p.score, p.set = c, score, true
	case score == p.score && p.rng.Intn(2) == 0:
		p.best = c
	}
}

// PreyMove picks the cell that keeps the prey far from threats and close to food.
// It returns the current cell when there is nowhere to go.
func PreyMove(b *Board, e ecs.Entity, rng *rand.Rand) components.Cell {
	from, _ := b.grid.PositionOf(e)
	moves := LegalMoves(b, e)
	if len(moves) == 0 {
		return from
	}

	var threats, food []components.Cell
	for _, p := range b.Pieces() {
		if p.Entity == e {
			continue
		}
		switch {
		case p.Tag.Kind == components.KindFood:
			food = append(food, p.At)
		case p.IsAnimal() && p.Animal.Alive && p.Animal.Role != components.RolePrey:
			threats = append(threats, p.At)
		}
	}

	pick := picker{rng: rng}
	for _, c := range moves {
		score := threatWeight*nearest(c, threats) - nearest(c, food)
		if occ, ok := b.Occupant(c); ok && occ.Tag.Kind == components.KindFood {
			score += foodCellBonus
		}
		pick.offer(c, score)
	}
	return pick.best
}

// ApexMove hunts the nearest predator or prey. With no target on the board it
// wanders to a random legal cell.
func ApexMove(b *Board, e ecs.Entity, rng *rand.Rand) components.Cell {
	from, _ := b.grid.PositionOf(e)
	moves := LegalMoves(b, e)

	target, ok := NearestAnimal(b, e, components.RolePredator, components.RolePrey)
	if !ok {
		if len(moves) == 0 {
			return from
		}
		return moves[rng.Intn(len(moves))]
	}
	return Chase(from, moves, target, rng)
}

// NearestAnimal finds the closest living animal with one of the given roles.
// Ties keep the first one in scan order.
func NearestAnimal(b *Board, self ecs.Entity, roles ...components.Role) (components.Cell, bool) {
	from, ok := b.grid.PositionOf(self)
	if !ok {
		return components.Cell{}, false
	}

	var best components.Cell
	bestDist := -1
	for _, p := range b.Pieces() {
		if p.Entity == self || !p.IsAnimal() || !p.Animal.Alive {
			continue
		}
		if !hasRole(roles, p.Animal.Role) {
			continue
		}
		if d := from.Chebyshev(p.At); bestDist < 0 || d < bestDist {
			best, bestDist = p.At, d
		}
	}
	return best, bestDist >= 0
}

// Chase picks the candidate closest to target, breaking ties by coin flip.
// It returns from when there are no candidates.
func Chase(from components.Cell, candidates []components.Cell, target components.Cell, rng *rand.Rand) components.Cell {
	if len(candidates) == 0 {
		return from
	}
	pick := picker{rng: rng}
	for _, c := range candidates {
		pick.offer(c, -c.Chebyshev(target))
	}
	return pick.best
}

func nearest(c components.Cell, others []components.Cell) int {
	if len(others) == 0 {
		return missingDistance
	}
	best := c.Chebyshev(others[0])
	for _, o := range others[1:] {
		best = min(best, c.Chebyshev(o))
	}
	return best
}

func hasRole(roles []components.Role, r components.Role) bool {
	for _, want := range roles {
		if want == r {
			return true
		}
	}
	return false
}
