// Package main runs batches of headless games over seeds and eras and reports
// per-role score statistics and win rates.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"path/filepath"
	"runtime"
	"time"

	"github.com/pthm-cable/foodchain/config"
	"github.com/pthm-cable/foodchain/telemetry"
)

// formatDuration formats a duration as HH:MM:SS or MM:SS for shorter durations.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	games := flag.Int("games", 0, "Games per era (0 = use config)")
	seed := flag.Int64("seed", 0, "First seed; game i uses seed+i (0 = use config)")
	grid := flag.Int("grid", 0, "Grid size (0 = use config)")
	rounds := flag.Int("rounds", 0, "Rounds per game (0 = use config)")
	stay := flag.Bool("stay", false, "Keep the player seat still instead of using the autopilot")
	workers := flag.Int("workers", runtime.NumCPU(), "Games played in parallel")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg := config.Cfg()

	if *games > 0 {
		cfg.Tournament.Games = *games
	}
	if *seed != 0 {
		cfg.Tournament.Seed = *seed
	}
	if *grid > 0 {
		cfg.Game.GridSize = *grid
	}
	if *rounds > 0 {
		cfg.Game.MaxRounds = *rounds
	}
	if *stay {
		cfg.Tournament.Autopilot = false
	}

	out, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}
	defer out.Close()
	if err := out.WriteConfig(cfg); err != nil {
		log.Printf("failed to write config: %v", err)
	}

	names, err := config.LoadFoodChains(cfg.Files.FoodChains)
	if err != nil {
		log.Fatalf("failed to load food chains: %v", err)
	}

	// Generate seeds for evaluation
	seeds := make([]int64, cfg.Tournament.Games)
	for i := range seeds {
		seeds[i] = cfg.Tournament.Seed + int64(i)
	}

	hall := telemetry.NewHallOfFame(filepath.Join(*outputDir, "hall_of_fame.yaml"), cfg.Game.HallOfFameSize)
	runner := NewRunner(names, cfg.Game.GridSize, cfg.Game.MaxRounds, cfg.Tournament.Autopilot, *workers, hall)

	fmt.Printf("Starting tournament: %d games per era, eras=%v, grid=%d, rounds=%d, autopilot=%v\n",
		len(seeds), cfg.Derived.Eras, cfg.Game.GridSize, cfg.Game.MaxRounds, cfg.Tournament.Autopilot)

	var all []telemetry.GameResult
	startTime := time.Now()

	for i, era := range cfg.Derived.Eras {
		eraStart := time.Now()
		runs := runner.RunEra(era, seeds)

		var results []telemetry.GameResult
		var perfRows []telemetry.PerfStatsCSV
		failed := 0
		for j, run := range runs {
			if run.err != nil {
				failed++
				log.Printf("game failed: %v", run.err)
				continue
			}
			if err := out.WriteResult(run.result); err != nil {
				log.Printf("failed to write result: %v", err)
			}
			results = append(results, run.result)
			perfRows = append(perfRows, run.perf.ToCSV(fmt.Sprintf("%s/%d", era, seeds[j])))
		}
		if err := out.WritePerf(perfRows...); err != nil {
			log.Printf("failed to write perf: %v", err)
		}
		all = append(all, results...)

		elapsed := time.Since(startTime)
		remaining := time.Duration(len(cfg.Derived.Eras)-i-1) * time.Since(eraStart)
		fmt.Printf("Era %s: %d games (%d failed), mean round %.0fus | elapsed: %s, ETA: %s\n",
			era, len(results), failed, meanRoundMicros(runs), formatDuration(elapsed), formatDuration(remaining))
		printSummary(telemetry.Summarize(results))
	}

	summary := telemetry.Summarize(all)
	fmt.Printf("\nTournament complete after %d games in %s\n", summary.Games, formatDuration(time.Since(startTime)))
	printSummary(summary)
	slog.Info("tournament summary", "summary", summary)

	if err := hall.Save(); err != nil {
		log.Printf("failed to write hall of fame: %v", err)
	} else if best, ok := hall.Best(); ok {
		fmt.Printf("Best player game: %s scored %d in %s (session %s)\n", best.Player, best.Score, best.Era, best.Session)
	}
}

// printSummary prints one line per role.
func printSummary(s telemetry.Summary) {
	fmt.Printf("  draws: %.1f%%\n", s.DrawRate*100)
	for _, r := range s.Roles {
		fmt.Printf("  %-9s mean=%6.2f std=%6.2f median=%6.1f wins=%5.1f%%\n",
			r.Role, r.Mean, r.StdDev, r.Median, r.WinRate*100)
	}
}
