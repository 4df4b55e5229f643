package main

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/foodchain/components"
	"github.com/pthm-cable/foodchain/game"
	"github.com/pthm-cable/foodchain/telemetry"
)

// Runner plays batches of headless games.
type Runner struct {
	names     game.NameSource
	gridSize  int
	maxRounds int
	autopilot bool
	workers   int

	// Best game tracking
	mu   sync.Mutex
	hall *telemetry.HallOfFame
}

// NewRunner creates a runner. workers bounds the games played at once.
func NewRunner(names game.NameSource, gridSize, maxRounds int, autopilot bool, workers int, hall *telemetry.HallOfFame) *Runner {
	return &Runner{
		names:     names,
		gridSize:  gridSize,
		maxRounds: maxRounds,
		autopilot: autopilot,
		workers:   max(workers, 1),
		hall:      hall,
	}
}

// gameRun holds the outcome of one game.
type gameRun struct {
	result telemetry.GameResult
	perf   telemetry.PerfStats
	err    error
}

// RunEra plays one game per seed in era, in parallel. Results keep seed order.
func (r *Runner) RunEra(era components.Era, seeds []int64) []gameRun {
	runs := make([]gameRun, len(seeds))
	sem := make(chan struct{}, r.workers)
	var wg sync.WaitGroup

	for i, seed := range seeds {
		wg.Add(1)
		sem <- struct{}{}
		go func(idx int, s int64) {
			defer wg.Done()
			defer func() { <-sem }()
			runs[idx] = r.play(era, s)
		}(i, seed)
	}
	wg.Wait()

	return runs
}

// play runs a single game to the end.
func (r *Runner) play(era components.Era, seed int64) gameRun {
	perf := telemetry.NewPerfCollector(r.maxRounds)
	e, err := game.New(game.Options{
		Seed:      seed,
		GridSize:  r.gridSize,
		MaxRounds: r.maxRounds,
		Era:       era,
		Names:     r.names,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		Perf:      perf,
	})
	if err != nil {
		return gameRun{err: fmt.Errorf("seed %d: %w", seed, err)}
	}

	for !e.IsGameOver() {
		target := e.Player().Position
		if r.autopilot {
			target = e.AutopilotTarget()
		}
		if err := e.ProcessPlayerMove(target.X, target.Y); err != nil {
			return gameRun{err: fmt.Errorf("seed %d round %d: %w", seed, e.Round(), err)}
		}
	}

	if r.hall != nil {
		r.mu.Lock()
		r.hall.Consider(e.HallEntry(time.Now()))
		r.mu.Unlock()
	}

	return gameRun{result: e.Result(), perf: perf.Stats()}
}

// meanRoundMicros averages the per-game mean round time in microseconds.
func meanRoundMicros(runs []gameRun) float64 {
	var xs []float64
	for _, run := range runs {
		if run.err == nil && run.perf.Rounds > 0 {
			xs = append(xs, float64(run.perf.AvgRoundDuration.Microseconds()))
		}
	}
	if len(xs) == 0 {
		return 0
	}
	return stat.Mean(xs, nil)
}
