package telemetry

import (
	"testing"

	"github.com/pthm-cable/foodchain/components"
)

func TestLifetimeTracker_Observe(t *testing.T) {
	lt := NewLifetimeTracker()
	at := func(x, y int) components.Cell { return components.Cell{X: x, Y: y} }

	events := []Event{
		NewSpawnEvent(EventSpawn, 0, "Wolf", components.RolePredator.String(), at(1, 1)),
		NewMoveEvent(0, ControllerPlayer, "Wolf", components.RolePredator, at(1, 1), at(1, 3)),
		{Type: EventAbility, Actor: "Wolf", Role: components.RolePredator.String(), Detail: "Dash"},
		NewScoreEvent(0, "Wolf", components.RolePredator, 3, 3, ReasonEatPrey),
		NewScoreEvent(0, "Hare", components.RolePrey, -1, -1, ReasonBeEaten),
		NewSpawnEvent(EventRespawn, 0, "Hare", components.RolePrey.String(), at(7, 7)),
		NewMoveEvent(1, ControllerPlayer, "Wolf", components.RolePredator, at(1, 3), at(1, 3)),
		NewMoveEvent(1, ControllerPlayer, "Wolf", components.RolePredator, at(1, 3), at(2, 4)),
		{Type: EventRoundEnd, Round: 1},
	}
	for _, ev := range events {
		lt.Observe(ev)
	}

	wolf, ok := lt.Get("Wolf")
	if !ok {
		t.Fatal("Wolf not tracked")
	}
	if wolf.Moves != 2 || wolf.Stays != 1 || wolf.Distance != 3 || wolf.Abilities != 1 || wolf.Meals != 1 || wolf.BestScore != 3 {
		t.Errorf("Wolf = %+v", wolf)
	}

	hare, _ := lt.Get("Hare")
	if hare.TimesEaten != 1 || hare.Respawns != 1 || hare.WorstScore != -1 || hare.Role != components.RolePrey.String() {
		t.Errorf("Hare = %+v", hare)
	}

	if lt.Count() != 2 {
		t.Errorf("Count = %d, want 2", lt.Count())
	}
	if all := lt.All(); all[0].Name != "Wolf" || all[1].Name != "Hare" {
		t.Errorf("order = %s, %s", all[0].Name, all[1].Name)
	}
	if _, ok := lt.Get("Rex"); ok {
		t.Error("unexpected entry for Rex")
	}
}
