package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/foodchain/audio"
	"github.com/pthm-cable/foodchain/components"
	"github.com/pthm-cable/foodchain/config"
	"github.com/pthm-cable/foodchain/game"
	"github.com/pthm-cable/foodchain/telemetry"
	"github.com/pthm-cable/foodchain/ui"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Play one game on autopilot without a window")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed of the headless game (0 = time-based)")
	era := flag.String("era", "", "Era of a new game: Past, Present or Future (empty = use config)")
	grid := flag.Int("grid", 0, "Grid size of a new game (0 = use config)")
	rounds := flag.Int("rounds", 0, "Round count of a new game (0 = use config)")
	load := flag.Bool("load", false, "Continue the saved game")

	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := applyOverrides(cfg, *era, *grid, *rounds, *outputDir); err != nil {
		slog.Error("invalid arguments", "error", err)
		os.Exit(2)
	}

	eventLog, logFile, err := telemetry.OpenEventLog(cfg.Files.LogPath)
	if err != nil {
		slog.Warn("game log disabled", "error", err)
	} else {
		defer logFile.Close()
	}

	out, err := telemetry.NewOutputManager(cfg.Files.OutputDir)
	if err != nil {
		slog.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}
	defer out.Close()
	if err := out.WriteConfig(cfg); err != nil {
		slog.Warn("config snapshot not written", "error", err)
	}

	names, err := config.LoadFoodChains(cfg.Files.FoodChains)
	if err != nil {
		slog.Error("failed to load food chains", "error", err)
		os.Exit(1)
	}

	perf := telemetry.NewPerfCollector(60)
	opts := game.Options{
		Seed:      *seed,
		GridSize:  cfg.Game.GridSize,
		MaxRounds: cfg.Game.MaxRounds,
		Era:       cfg.Derived.Era,
		Names:     names,
		Logger:    logger,
		EventLog:  eventLog,
		Output:    out,
		Perf:      perf,
	}

	if *headless {
		if err := runHeadless(cfg, opts, *load); err != nil {
			slog.Error("headless game failed", "error", err)
			os.Exit(1)
		}
		return
	}

	runWindow(cfg, opts, *load)
}

// applyOverrides copies command line settings over the loaded config.
func applyOverrides(cfg *config.Config, era string, grid, rounds int, outputDir string) error {
	if era != "" {
		e, err := components.ParseEra(era)
		if err != nil {
			return fmt.Errorf("-era: %w", err)
		}
		cfg.Game.Era = e.String()
		cfg.Derived.Era = e
	}
	if grid > 0 {
		cfg.Game.GridSize = grid
	}
	if rounds > 0 {
		cfg.Game.MaxRounds = rounds
	}
	if outputDir != "" {
		cfg.Files.OutputDir = outputDir
	}
	return cfg.Game.CheckSetup(cfg.Game.GridSize, cfg.Game.MaxRounds)
}

// runHeadless plays one game with the player seat on autopilot.
func runHeadless(cfg *config.Config, opts game.Options, load bool) error {
	var (
		e   *game.Engine
		err error
	)
	if load {
		e, err = game.Load(cfg.Files.SavePath, opts)
	} else {
		e, err = game.New(opts)
	}
	if err != nil {
		return err
	}

	slog.Info("starting headless game",
		"session", e.Session(),
		"era", e.Era().String(),
		"grid", e.Size(),
		"rounds", e.MaxRounds(),
		"player", e.Player().Name,
	)

	start := time.Now()
	for !e.IsGameOver() {
		c := e.AutopilotTarget()
		if err := e.ProcessPlayerMove(c.X, c.Y); err != nil {
			return fmt.Errorf("round %d: %w", e.Round(), err)
		}
	}

	res := e.Result()
	if err := opts.Output.WriteResult(res); err != nil {
		slog.Warn("result not written", "error", err)
	}
	slog.Info("game finished",
		"winner", res.Winner,
		"reason", res.Reason,
		"apex", res.ApexScore,
		"predator", res.PredatorScore,
		"prey", res.PreyScore,
		"elapsed", time.Since(start).String(),
	)
	slog.Info("performance", "stats", opts.Perf.Stats())
	return nil
}

// runWindow opens the raylib window and runs the menu and board screens.
func runWindow(cfg *config.Config, opts game.Options, load bool) {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Food Chain")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	sound := audio.Open(cfg.Audio, cfg.Derived.NoteDuration, slog.Default())
	defer sound.Cleanup()

	hall, err := telemetry.LoadHallOfFame(cfg.Files.HallOfFame, cfg.Game.HallOfFameSize)
	if err != nil {
		slog.Warn("hall of fame unreadable, starting empty", "error", err)
		hall = telemetry.NewHallOfFame(cfg.Files.HallOfFame, cfg.Game.HallOfFameSize)
	}

	app := ui.NewApp(cfg, ui.Deps{
		Logger:   opts.Logger,
		EventLog: opts.EventLog,
		Output:   opts.Output,
		Perf:     opts.Perf,
		Signal:   sound,
		Names:    opts.Names,
		Hall:     hall,
	})
	if load {
		if err := app.ContinueGame(); err != nil && !errors.Is(err, telemetry.ErrNoSave) {
			slog.Warn("saved game not loaded", "error", err)
		}
	}

	for !rl.WindowShouldClose() && !app.ShouldQuit() {
		opts.Perf.RecordFrame()
		app.Update()

		rl.BeginDrawing()
		app.Draw()
		rl.EndDrawing()
	}

	if e := app.Engine(); e != nil {
		slog.Info("session closed", "session", e.Session(), "round", e.Round(), "performance", opts.Perf.Stats())
	}
}
