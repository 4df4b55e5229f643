package telemetry

import (
	"log/slog"
	"slices"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/foodchain/components"
)

// RoundStats is the board state at the end of one round.
type RoundStats struct {
	Session string `csv:"session"`
	Era     string `csv:"era"`
	Round   int    `csv:"round"`

	ApexScore     int `csv:"apex_score"`
	PredatorScore int `csv:"predator_score"`
	PreyScore     int `csv:"prey_score"`

	ApexCooldown     int `csv:"apex_cooldown"`
	PredatorCooldown int `csv:"predator_cooldown"`
	PreyCooldown     int `csv:"prey_cooldown"`
}

// LogValue implements slog.LogValuer for structured logging.
func (s RoundStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("round", s.Round),
		slog.Int("apex", s.ApexScore),
		slog.Int("predator", s.PredatorScore),
		slog.Int("prey", s.PreyScore),
	)
}

// GameResult is one finished game, as written to results.csv.
type GameResult struct {
	Session string `csv:"session"`
	Seed    int64  `csv:"seed"`
	Era     string `csv:"era"`
	Grid    int    `csv:"grid"`
	Rounds  int    `csv:"rounds"`

	ApexScore     int `csv:"apex_score"`
	PredatorScore int `csv:"predator_score"`
	PreyScore     int `csv:"prey_score"`

	Winner     string `csv:"winner"`
	WinnerRole string `csv:"winner_role"` // empty on a draw
	Draw       bool   `csv:"draw"`
	Reason     string `csv:"reason"`

	Moves    int `csv:"moves"`
	Respawns int `csv:"respawns"`
}

// Score returns the final score of role.
func (r GameResult) Score(role components.Role) int {
	switch role {
	case components.RoleApex:
		return r.ApexScore
	case components.RolePredator:
		return r.PredatorScore
	default:
		return r.PreyScore
	}
}

// RoleSummary aggregates one role over many games.
type RoleSummary struct {
	Role    components.Role
	Mean    float64
	StdDev  float64
	Median  float64
	WinRate float64
}

// Summary aggregates a batch of games.
type Summary struct {
	Games    int
	DrawRate float64
	Roles    []RoleSummary
}

// Summarize computes per-role score statistics and win rates.
func Summarize(results []GameResult) Summary {
	s := Summary{Games: len(results)}
	if len(results) == 0 {
		return s
	}

	draws := 0
	for _, r := range results {
		if r.Draw {
			draws++
		}
	}
	s.DrawRate = float64(draws) / float64(len(results))

	scores := make([]float64, len(results))
	for _, role := range components.Roles() {
		wins := 0
		for i, r := range results {
			scores[i] = float64(r.Score(role))
			if !r.Draw && r.WinnerRole == role.String() {
				wins++
			}
		}
		mean, std := stat.MeanStdDev(scores, nil)
		if len(scores) < 2 {
			std = 0
		}
		sorted := slices.Clone(scores)
		slices.Sort(sorted)

		s.Roles = append(s.Roles, RoleSummary{
			Role:    role,
			Mean:    mean,
			StdDev:  std,
			Median:  stat.Quantile(0.5, stat.Empirical, sorted, nil),
			WinRate: float64(wins) / float64(len(results)),
		})
	}
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s Summary) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("games", s.Games),
		slog.Float64("draw_rate", s.DrawRate),
	}
	for _, r := range s.Roles {
		attrs = append(attrs, slog.Group(r.Role.String(),
			slog.Float64("mean", r.Mean),
			slog.Float64("std", r.StdDev),
			slog.Float64("median", r.Median),
			slog.Float64("win_rate", r.WinRate),
		))
	}
	return slog.GroupValue(attrs...)
}
