package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/foodchain/components"
	"github.com/pthm-cable/foodchain/systems"
	"github.com/pthm-cable/foodchain/telemetry"
)

// Score deltas.
const (
	foodGain     = 3
	predatorGain = 3
	apexGain     = 1
	eatenLoss    = -1
)

// ProcessPlayerMove plays one full round: the player's move to (x, y), the apex
// reply and the end of the round (which includes the prey's move for the next one).
// An illegal request returns an error wrapping ErrInvalidMove and changes nothing.
// Moving onto a reachable cell the player cannot eat is accepted as a no-op.
func (e *Engine) ProcessPlayerMove(x, y int) error {
	if e.state == StateGameOver {
		return invalidMove("the game is over")
	}
	if !e.board.Grid().IsValidPosition(x, y) {
		return invalidMove("you cannot go beyond the map boundaries")
	}

	target := components.Cell{X: x, Y: y}
	kind := e.board.Classify(e.player, target)
	if kind == components.MoveInvalid {
		return invalidMove("out of range or ability on cooldown")
	}

	player := e.board.Animal(e.player)
	if kind == components.MoveAbility && requiresApexContact(player) && !e.adjacentToApex() {
		return invalidMove("this ability can only be used next to the apex")
	}
	if kind == components.MoveAbility && systems.FoodBlocksAbility(player) && e.holdsFood(target) {
		return invalidMove("food cannot be eaten with this ability")
	}

	e.perf.StartRound()
	e.perf.StartPhase(telemetry.PhasePlayer)
	e.state = StateResolving
	switch {
	case kind == components.MoveStay:
		from, _ := e.board.Grid().PositionOf(e.player)
		e.recordMove(telemetry.ControllerPlayer, e.player, from, from)
	case kind == components.MoveAbility && requiresApexContact(player):
		e.dash(target)
	default:
		e.relocate(telemetry.ControllerPlayer, e.player, target, kind)
	}

	e.perf.StartPhase(telemetry.PhaseApexAI)
	e.aiMove(e.apex, systems.ApexMove(e.board, e.apex, e.rng))
	e.perf.StartPhase(telemetry.PhaseEndRound)
	e.endRound()
	e.perf.EndRound()
	return nil
}

// requiresApexContact is the Present-era predator special case: its ability is
// always ready but only usable while standing next to the apex.
func requiresApexContact(a *components.Animal) bool {
	return a.Era == components.EraPresent && a.Role == components.RolePredator
}

func (e *Engine) adjacentToApex() bool {
	p, ok1 := e.board.Grid().PositionOf(e.player)
	a, ok2 := e.board.Grid().PositionOf(e.apex)
	return ok1 && ok2 && p.Adjacent(a)
}

func (e *Engine) holdsFood(c components.Cell) bool {
	occ, ok := e.board.Occupant(c)
	return ok && occ.Tag.Kind == components.KindFood
}

// dash executes the Present predator's ability. It has no cooldown to trigger.
func (e *Engine) dash(target components.Cell) {
	from, _ := e.board.Grid().PositionOf(e.player)
	if !e.moveActor(e.player, target) {
		return
	}
	e.recordMove(telemetry.ControllerPlayer, e.player, from, target)
	e.recordAbility(telemetry.ControllerPlayer, e.player, from, target)
}

// aiMove applies an AI decision. Decisions come from the legal move list, so
// anything else is ignored.
func (e *Engine) aiMove(actor ecs.Entity, target components.Cell) {
	a := e.board.Animal(actor)
	if a == nil || !a.Alive {
		return
	}
	kind := e.board.Classify(actor, target)
	switch kind {
	case components.MoveInvalid:
		return
	case components.MoveStay:
		from, _ := e.board.Grid().PositionOf(actor)
		e.recordMove(telemetry.ControllerAI, actor, from, from)
		return
	}
	if kind == components.MoveAbility && systems.FoodBlocksAbility(a) && e.holdsFood(target) {
		return
	}
	e.relocate(telemetry.ControllerAI, actor, target, kind)
}

// relocate moves actor through the move-and-resolve path. A relocating ability
// move triggers the cooldown.
func (e *Engine) relocate(controller string, actor ecs.Entity, target components.Cell, kind components.MoveKind) {
	from, _ := e.board.Grid().PositionOf(actor)
	if !e.moveActor(actor, target) {
		return
	}
	e.recordMove(controller, actor, from, target)
	if kind == components.MoveAbility {
		e.board.Animal(actor).TriggerCooldown()
		e.recordAbility(controller, actor, from, target)
	}
}

// moveActor moves actor to target, eating the occupant if it may.
// It reports whether the actor relocated.
func (e *Engine) moveActor(actor ecs.Entity, target components.Cell) bool {
	occ, ok := e.board.Occupant(target)
	if !ok {
		e.board.Grid().Move(actor, target)
		return true
	}
	if occ.Entity == actor {
		return false
	}

	a := e.board.Animal(actor)
	victimRole := components.Role(0)
	if occ.IsAnimal() {
		victimRole = occ.Animal.Role
	}
	if !a.CanEat(occ.Tag.Kind, victimRole) {
		return false
	}
	e.handleEating(actor, occ, target)
	return true
}

// handleEating scores the meal, clears the victim, moves the attacker in and
// respawns the victim (or a fresh food with the same name) on an empty cell.
func (e *Engine) handleEating(attacker ecs.Entity, victim systems.Piece, at components.Cell) {
	a := e.board.Animal(attacker)
	attackerName := e.board.Tag(attacker).Name

	switch {
	case a.Role == components.RolePrey && victim.Tag.Kind == components.KindFood:
		e.addScore(attacker, foodGain, telemetry.ReasonEatFood)
	case a.Role == components.RolePredator && victim.IsAnimal():
		e.addScore(attacker, predatorGain, telemetry.ReasonEatPrey)
		e.addScore(victim.Entity, eatenLoss, telemetry.ReasonBeEaten)
	case a.Role == components.RoleApex && victim.IsAnimal():
		e.addScore(attacker, apexGain, telemetry.ReasonApexEats)
		e.addScore(victim.Entity, eatenLoss, telemetry.ReasonBeEaten)
	}

	e.board.Grid().Remove(victim.Entity)
	e.board.Grid().Move(attacker, at)

	if victim.IsAnimal() {
		e.board.Animal(victim.Entity).Die()
		e.log.Debug("animal eaten", "attacker", attackerName, "victim", victim.Tag.Name)
		e.spawn(victim.Entity, telemetry.EventRespawn)
		return
	}

	name := victim.Tag.Name
	e.board.Discard(victim.Entity)
	e.spawn(e.board.NewFood(name), telemetry.EventRespawn)
}

func (e *Engine) addScore(ent ecs.Entity, delta int, reason string) {
	a := e.board.Animal(ent)
	a.AddScore(delta)
	e.record(telemetry.NewScoreEvent(e.round, e.board.Tag(ent).Name, a.Role, delta, a.Score, reason))
}

// beginRound opens the current round: the prey always moves first.
func (e *Engine) beginRound() {
	e.record(telemetry.Event{
		Type:   telemetry.EventRoundBegin,
		Round:  e.round,
		Detail: e.roundLabel(),
	})
	e.perf.StartPhase(telemetry.PhasePreyAI)
	e.aiMove(e.prey, systems.PreyMove(e.board, e.prey, e.rng))
	e.state = StateAwaitingInput
}

// endRound ticks cooldowns, advances the counter and either ends the game or
// opens the next round.
func (e *Engine) endRound() {
	e.state = StateRoundComplete
	e.record(telemetry.Event{
		Type:   telemetry.EventRoundEnd,
		Round:  e.round,
		Detail: e.scoreLine(),
	})
	e.events.RecordRound(e.roundStats())

	for _, ent := range []ecs.Entity{e.player, e.apex, e.prey} {
		if a := e.board.Animal(ent); a != nil && a.Alive {
			a.Tick()
		}
	}

	e.round++
	if e.round >= e.maxRounds {
		e.finish()
		return
	}
	e.beginRound()
}

func (e *Engine) roundStats() telemetry.RoundStats {
	apex, player, prey := e.Apex(), e.Player(), e.Prey()
	return telemetry.RoundStats{
		Era:              e.era.String(),
		Round:            e.round,
		ApexScore:        apex.Score,
		PredatorScore:    player.Score,
		PreyScore:        prey.Score,
		ApexCooldown:     apex.Cooldown,
		PredatorCooldown: player.Cooldown,
		PreyCooldown:     prey.Cooldown,
	}
}
