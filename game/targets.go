package game

import (
	"slices"

	"github.com/pthm-cable/foodchain/components"
	"github.com/pthm-cable/foodchain/systems"
)

// playerReady returns the player's animal and cell when it may act.
func (e *Engine) playerReady() (*components.Animal, components.Cell, bool) {
	if e.state == StateGameOver {
		return nil, components.Cell{}, false
	}
	a := e.board.Animal(e.player)
	if a == nil || !a.Alive {
		return nil, components.Cell{}, false
	}
	at, ok := e.board.Grid().PositionOf(e.player)
	return a, at, ok
}

// NormalMoveTargets lists the adjacent cells the player can walk to and act on.
func (e *Engine) NormalMoveTargets() []components.Cell {
	a, at, ok := e.playerReady()
	if !ok {
		return nil
	}

	var targets []components.Cell
	for x := at.X - 1; x <= at.X+1; x++ {
		for y := at.Y - 1; y <= at.Y+1; y++ {
			c := components.Cell{X: x, Y: y}
			if !e.board.Grid().Contains(c) || a.Classify(at, c) != components.MoveWalk {
				continue
			}
			if e.board.CanEnter(a, c, components.MoveWalk) {
				targets = append(targets, c)
			}
		}
	}
	return targets
}

// SpecialMoveTargets lists the cells the player can reach with its ability.
func (e *Engine) SpecialMoveTargets() []components.Cell {
	a, at, ok := e.playerReady()
	if !ok || !a.AbilityAvailable() {
		return nil
	}
	if requiresApexContact(a) && !e.adjacentToApex() {
		return nil
	}

	r := max(2, a.AbilityRange())
	var targets []components.Cell
	for x := at.X - r; x <= at.X+r; x++ {
		for y := at.Y - r; y <= at.Y+r; y++ {
			c := components.Cell{X: x, Y: y}
			if !e.board.Grid().Contains(c) || a.Classify(at, c) != components.MoveAbility {
				continue
			}
			if e.board.CanEnter(a, c, components.MoveAbility) {
				targets = append(targets, c)
			}
		}
	}
	return targets
}

// IsValidTarget reports whether (x, y) is highlighted for the player: its own
// cell, a walk target or an ability target. It is stricter than
// ProcessPlayerMove, which also accepts a reachable cell holding something the
// player cannot eat and resolves it as staying put.
func (e *Engine) IsValidTarget(x, y int) bool {
	_, at, ok := e.playerReady()
	if !ok || !e.board.Grid().IsValidPosition(x, y) {
		return false
	}
	c := components.Cell{X: x, Y: y}
	if c == at {
		return true
	}
	return slices.Contains(e.NormalMoveTargets(), c) || slices.Contains(e.SpecialMoveTargets(), c)
}

// AutopilotTarget picks a move for the player seat when nobody is at the
// controls: chase the nearest prey using the highlighted targets, or stay.
func (e *Engine) AutopilotTarget() components.Cell {
	_, at, ok := e.playerReady()
	if !ok {
		return at
	}
	prey, found := systems.NearestAnimal(e.board, e.player, components.RolePrey)
	if !found {
		return at
	}
	candidates := append([]components.Cell{at}, e.NormalMoveTargets()...)
	candidates = append(candidates, e.SpecialMoveTargets()...)
	return systems.Chase(at, candidates, prey, e.rng)
}
