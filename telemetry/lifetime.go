package telemetry

import (
	"log/slog"

	"github.com/pthm-cable/foodchain/components"
)

// LifetimeStats tallies what one named entity did during a game.
type LifetimeStats struct {
	Name string
	Role string

	Moves      int // relocating moves
	Stays      int
	Abilities  int
	Distance   int // sum of Chebyshev distances moved
	Meals      int
	TimesEaten int
	Respawns   int

	BestScore  int
	WorstScore int
}

// LogValue implements slog.LogValuer for structured logging.
func (s LifetimeStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("name", s.Name),
		slog.String("role", s.Role),
		slog.Int("moves", s.Moves),
		slog.Int("abilities", s.Abilities),
		slog.Int("distance", s.Distance),
		slog.Int("meals", s.Meals),
		slog.Int("eaten", s.TimesEaten),
		slog.Int("respawns", s.Respawns),
	)
}

// LifetimeTracker builds LifetimeStats from the event stream.
type LifetimeTracker struct {
	stats map[string]*LifetimeStats
	order []string
}

// NewLifetimeTracker creates an empty tracker.
func NewLifetimeTracker() *LifetimeTracker {
	return &LifetimeTracker{stats: make(map[string]*LifetimeStats)}
}

func (lt *LifetimeTracker) entry(name, role string) *LifetimeStats {
	s := lt.stats[name]
	if s == nil {
		s = &LifetimeStats{Name: name, Role: role}
		lt.stats[name] = s
		lt.order = append(lt.order, name)
	}
	if s.Role == "" {
		s.Role = role
	}
	return s
}

// Observe updates the tallies of the event's actor.
func (lt *LifetimeTracker) Observe(ev Event) {
	if ev.Actor == "" {
		return
	}
	switch ev.Type {
	case EventMove:
		s := lt.entry(ev.Actor, ev.Role)
		from := components.Cell{X: ev.FromX, Y: ev.FromY}
		to := components.Cell{X: ev.ToX, Y: ev.ToY}
		if from == to {
			s.Stays++
			return
		}
		s.Moves++
		s.Distance += from.Chebyshev(to)
	case EventAbility:
		lt.entry(ev.Actor, ev.Role).Abilities++
	case EventScore:
		s := lt.entry(ev.Actor, ev.Role)
		if ev.Reason == ReasonBeEaten {
			s.TimesEaten++
		} else {
			s.Meals++
		}
		s.BestScore = max(s.BestScore, ev.Score)
		s.WorstScore = min(s.WorstScore, ev.Score)
	case EventRespawn:
		lt.entry(ev.Actor, ev.Role).Respawns++
	case EventSpawn:
		lt.entry(ev.Actor, ev.Role)
	}
}

// Get returns a copy of the stats for name.
func (lt *LifetimeTracker) Get(name string) (LifetimeStats, bool) {
	s, ok := lt.stats[name]
	if !ok {
		return LifetimeStats{}, false
	}
	return *s, true
}

// All returns every tracked entity in first-seen order.
func (lt *LifetimeTracker) All() []LifetimeStats {
	out := make([]LifetimeStats, 0, len(lt.order))
	for _, name := range lt.order {
		out = append(out, *lt.stats[name])
	}
	return out
}

// Count returns the number of tracked entities.
func (lt *LifetimeTracker) Count() int {
	return len(lt.stats)
}
