// Package telemetry provides game event records, CSV output, summary statistics and save files.
package telemetry

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/foodchain/components"
)

// EventType identifies game events.
type EventType uint8

const (
	EventGameStart EventType = iota
	EventSpawn
	EventMove
	EventAbility
	EventScore
	EventRespawn
	EventRoundBegin
	EventRoundEnd
	EventGameOver
)

var eventTypeNames = [...]string{
	"GAME_START", "SPAWN", "MOVE", "ABILITY", "SCORE",
	"RESPAWN", "ROUND_BEGIN", "ROUND_END", "GAME_OVER",
}

// EventTypeNames returns the log names for all event types.
func EventTypeNames() []string {
	return eventTypeNames[:]
}

// String returns the log name of the event type.
func (t EventType) String() string {
	names := EventTypeNames()
	if int(t) < len(names) {
		return names[t]
	}
	return "UNKNOWN"
}

// MarshalCSV writes the event type as its log name.
func (t EventType) MarshalCSV() (string, error) {
	return t.String(), nil
}

// Controller values for move events.
const (
	ControllerPlayer = "PLAYER"
	ControllerAI     = "AI"
)

// Score change reasons.
const (
	ReasonEatFood    = "EAT_FOOD"
	ReasonEatPrey    = "PREDATOR_EATS_PREY"
	ReasonApexEats   = "APEX_EATS_ANIMAL"
	ReasonBeEaten    = "BE_EATEN"
	ReasonEliminated = "Player Eliminated"
	ReasonHighScore  = "Highest Score"
	ReasonTiedScore  = "Tied Score"
)

// Event is a single game event. Fields that do not apply stay zero.
type Event struct {
	Session string    `csv:"session"`
	Round   int       `csv:"round"`
	Type    EventType `csv:"type"`

	Actor      string `csv:"actor"`
	Role       string `csv:"role"`
	Controller string `csv:"controller"`

	FromX int `csv:"from_x"`
	FromY int `csv:"from_y"`
	ToX   int `csv:"to_x"`
	ToY   int `csv:"to_y"`

	Delta  int    `csv:"delta"`
	Score  int    `csv:"score"`
	Reason string `csv:"reason"`
	Detail string `csv:"detail"`
}

// NewMoveEvent creates a move event.
func NewMoveEvent(round int, controller, actor string, role components.Role, from, to components.Cell) Event {
	return Event{
		Type:       EventMove,
		Round:      round,
		Actor:      actor,
		Role:       role.String(),
		Controller: controller,
		FromX:      from.X,
		FromY:      from.Y,
		ToX:        to.X,
		ToY:        to.Y,
	}
}

// NewScoreEvent creates a score change event. score is the total after the change.
func NewScoreEvent(round int, actor string, role components.Role, delta, score int, reason string) Event {
	return Event{
		Type:   EventScore,
		Round:  round,
		Actor:  actor,
		Role:   role.String(),
		Delta:  delta,
		Score:  score,
		Reason: reason,
	}
}

// NewSpawnEvent creates a spawn or respawn event.
func NewSpawnEvent(t EventType, round int, actor, role string, at components.Cell) Event {
	return Event{
		Type:  t,
		Round: round,
		Actor: actor,
		Role:  role,
		ToX:   at.X,
		ToY:   at.Y,
	}
}

// Summary returns a one-line description for on-screen feeds.
func (e Event) Summary() string {
	from := components.Cell{X: e.FromX, Y: e.FromY}
	to := components.Cell{X: e.ToX, Y: e.ToY}
	switch e.Type {
	case EventMove:
		if from == to {
			return fmt.Sprintf("R%d %s stays at %v", e.Round, e.Actor, to)
		}
		return fmt.Sprintf("R%d %s %v -> %v", e.Round, e.Actor, from, to)
	case EventAbility:
		return fmt.Sprintf("R%d %s uses %s", e.Round, e.Actor, e.Detail)
	case EventScore:
		return fmt.Sprintf("R%d %s %+d (%s)", e.Round, e.Actor, e.Delta, e.Reason)
	case EventSpawn, EventRespawn:
		return fmt.Sprintf("R%d %s appears at %v", e.Round, e.Actor, to)
	case EventGameOver:
		return fmt.Sprintf("Game over: %s", e.Detail)
	default:
		return fmt.Sprintf("R%d %s %s", e.Round, e.Type, e.Detail)
	}
}

// LogValue implements slog.LogValuer for structured logging.
// Only the fields relevant to the event type are emitted.
func (e Event) LogValue() slog.Value {
	attrs := []slog.Attr{slog.Int("round", e.Round)}
	if e.Actor != "" {
		attrs = append(attrs, slog.String("actor", e.Actor), slog.String("role", e.Role))
	}
	switch e.Type {
	case EventMove, EventAbility:
		attrs = append(attrs,
			slog.String("by", e.Controller),
			slog.Any("from", components.Cell{X: e.FromX, Y: e.FromY}),
			slog.Any("to", components.Cell{X: e.ToX, Y: e.ToY}),
		)
	case EventSpawn, EventRespawn:
		attrs = append(attrs, slog.Any("at", components.Cell{X: e.ToX, Y: e.ToY}))
	case EventScore:
		attrs = append(attrs, slog.Int("delta", e.Delta), slog.Int("score", e.Score))
	}
	if e.Reason != "" {
		attrs = append(attrs, slog.String("reason", e.Reason))
	}
	if e.Detail != "" {
		attrs = append(attrs, slog.String("detail", e.Detail))
	}
	return slog.GroupValue(attrs...)
}
