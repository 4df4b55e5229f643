package game

import (
	"fmt"
	"time"

	"github.com/pthm-cable/foodchain/components"
	"github.com/pthm-cable/foodchain/telemetry"
)

// Result is the standing of a game. While the game runs it reflects the
// current scores.
type Result struct {
	Name   string
	Role   components.Role // meaningless on a draw
	Draw   bool
	Reason string
}

// String returns the winner's name, "Draw", or the name with the reason when
// the player was eliminated.
func (r Result) String() string {
	switch {
	case r.Draw:
		return "Draw"
	case r.Reason == telemetry.ReasonEliminated:
		return fmt.Sprintf("%s (%s)", r.Name, r.Reason)
	default:
		return r.Name
	}
}

// Winner determines the winner. A dead player hands the game to the apex;
// otherwise the strictly highest score wins and any tie at the top is a draw.
func (e *Engine) Winner() Result {
	apex := e.Apex()
	if !e.Player().Alive {
		return Result{Name: apex.Name, Role: components.RoleApex, Reason: telemetry.ReasonEliminated}
	}

	var best AnimalView
	tied := false
	for i, role := range components.Roles() {
		v := e.Principal(role)
		switch {
		case i == 0 || v.Score > best.Score:
			best, tied = v, false
		case v.Score == best.Score:
			tied = true
		}
	}
	if tied {
		return Result{Draw: true, Reason: telemetry.ReasonTiedScore}
	}
	return Result{Name: best.Name, Role: best.Role, Reason: telemetry.ReasonHighScore}
}

// PlayerWon reports whether the player is the sole winner or tied at the top.
func (e *Engine) PlayerWon() bool {
	player := e.Player()
	if !player.Alive {
		return false
	}
	for _, role := range components.Roles() {
		if e.Principal(role).Score > player.Score {
			return false
		}
	}
	return true
}

// finish ends the game and fires the outcome signal exactly once.
func (e *Engine) finish() {
	e.state = StateGameOver
	result := e.Winner()

	ev := telemetry.Event{
		Type:   telemetry.EventGameOver,
		Actor:  result.Name,
		Reason: result.Reason,
		Detail: fmt.Sprintf("era=%s totalRounds=%d winner=%s", e.era, e.maxRounds, result),
	}
	if !result.Draw {
		ev.Role = result.Role.String()
	}
	e.record(ev)
	e.log.Info("game over", "winner", result.String(), "round", e.round)

	if e.signalled || e.signal == nil {
		return
	}
	e.signalled = true
	if e.PlayerWon() {
		e.signal.OnWin()
	} else {
		e.signal.OnLose()
	}
}

// Result summarizes the game for results.csv.
func (e *Engine) Result() telemetry.GameResult {
	w := e.Winner()
	r := telemetry.GameResult{
		Session:       e.Session(),
		Seed:          e.seed,
		Era:           e.era.String(),
		Grid:          e.board.Size(),
		Rounds:        e.round,
		ApexScore:     e.Apex().Score,
		PredatorScore: e.Player().Score,
		PreyScore:     e.Prey().Score,
		Winner:        w.String(),
		Draw:          w.Draw,
		Reason:        w.Reason,
		Moves:         e.events.Count(telemetry.EventMove),
		Respawns:      e.events.Count(telemetry.EventRespawn),
	}
	if !w.Draw {
		r.WinnerRole = w.Role.String()
	}
	return r
}

// HallEntry describes the player's game for the hall of fame.
func (e *Engine) HallEntry(at time.Time) telemetry.HallEntry {
	outcome := "Lost"
	switch {
	case e.Winner().Draw && e.PlayerWon():
		outcome = "Draw"
	case e.PlayerWon():
		outcome = "Won"
	}
	return telemetry.HallEntry{
		Player:  e.Player().Name,
		Score:   e.Player().Score,
		Era:     e.era.String(),
		Grid:    e.board.Size(),
		Rounds:  e.round,
		Outcome: outcome,
		Session: e.Session(),
		Date:    at,
	}
}
