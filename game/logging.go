package game

import (
	"fmt"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/foodchain/components"
	"github.com/pthm-cable/foodchain/telemetry"
)

// record forwards ev to the collector with the current round filled in.
func (e *Engine) record(ev telemetry.Event) {
	if ev.Type != telemetry.EventRoundBegin && ev.Type != telemetry.EventRoundEnd {
		ev.Round = e.round
	}
	e.events.Record(ev)
}

func (e *Engine) recordMove(controller string, actor ecs.Entity, from, to components.Cell) {
	a := e.board.Animal(actor)
	e.record(telemetry.NewMoveEvent(e.round, controller, e.board.Tag(actor).Name, a.Role, from, to))
}

func (e *Engine) recordAbility(controller string, actor ecs.Entity, from, to components.Cell) {
	a := e.board.Animal(actor)
	ev := telemetry.NewMoveEvent(e.round, controller, e.board.Tag(actor).Name, a.Role, from, to)
	ev.Type = telemetry.EventAbility
	ev.Detail = a.Profile().Ability
	e.record(ev)
}

// roundLabel formats the round header, e.g. "r=3/30 era=Past playerRole=Predator".
func (e *Engine) roundLabel() string {
	return fmt.Sprintf("r=%d/%d era=%s playerRole=%s", e.round, e.maxRounds, e.era, components.RolePredator)
}

// scoreLine formats the principals' scores for the end-of-round record.
func (e *Engine) scoreLine() string {
	return fmt.Sprintf("%s scores: player=%d apex=%d prey=%d",
		e.roundLabel(), e.Player().Score, e.Apex().Score, e.Prey().Score)
}
