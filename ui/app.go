package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/foodchain/camera"
	"github.com/pthm-cable/foodchain/components"
	"github.com/pthm-cable/foodchain/config"
	"github.com/pthm-cable/foodchain/game"
	"github.com/pthm-cable/foodchain/telemetry"
)

// Screen is the active top-level view.
type Screen uint8

const (
	ScreenMenu Screen = iota
	ScreenPlaying
)

const controlsHelp = "Click: move | S: save | A: autopilot | N: new game | M: menu | Tab: overlays | Arrows/Wheel: view | Home: reset view"

// Deps are the collaborators the app hands to every engine it creates.
type Deps struct {
	Logger   *slog.Logger
	EventLog *slog.Logger
	Output   *telemetry.OutputManager
	Perf     *telemetry.PerfCollector
	Signal   game.OutcomeSignal
	Names    game.NameSource
	Hall     *telemetry.HallOfFame
}

// App is the windowed game: the start menu and the board screen.
type App struct {
	cfg  *config.Config
	deps Deps
	log  *slog.Logger

	screen Screen
	engine *game.Engine
	setup  GameSetup
	quit   bool

	cam       *camera.Camera
	board     *BoardView
	hud       *HUD
	inspector *Inspector
	controls  *ControlsPanel
	overlays  *OverlayRegistry
	menu      *Menu

	screenW, screenH int32

	hovered   components.Cell
	hover     bool
	message   string
	isError   bool
	autopilot bool
	lastAuto  time.Time
	recorded  bool // game over already written to the hall of fame

	pending MenuAction
	saveReq bool
}

// NewApp creates the app on the start screen. The raylib window must be open.
func NewApp(cfg *config.Config, deps Deps) *App {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	setup := GameSetup{Era: cfg.Derived.Era, GridSize: cfg.Game.GridSize, MaxRounds: cfg.Game.MaxRounds}
	a := &App{
		cfg:       cfg,
		deps:      deps,
		log:       deps.Logger,
		setup:     setup,
		hud:       NewHUD(0, 0, int32(cfg.Screen.PanelWidth), 0),
		inspector: NewInspector(),
		controls:  NewControlsPanel(0, 0, 220),
		overlays:  NewOverlayRegistry(),
		menu:      NewMenu(cfg.Game, setup),
	}
	a.layout(int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight()))
	a.refreshMenu()
	return a
}

// ShouldQuit reports whether the player chose Exit.
func (a *App) ShouldQuit() bool {
	return a.quit
}

// Engine returns the running game, or nil on the start screen before any game.
func (a *App) Engine() *game.Engine {
	return a.engine
}

// layout sizes the board viewport and info panel to the window.
func (a *App) layout(w, h int32) {
	a.screenW, a.screenH = w, h
	panelW := int32(a.cfg.Screen.PanelWidth)
	a.hud.SetBounds(w-panelW-10, 10, panelW, h-40)
	if a.cam != nil {
		a.cam.Resize(10, 10, float32(w-panelW-30), float32(h-40))
	}
	a.controls.SetPosition(20, h-40-a.controls.Height(a.overlays))
}

func (a *App) options() game.Options {
	return game.Options{
		Logger:   a.deps.Logger,
		EventLog: a.deps.EventLog,
		Output:   a.deps.Output,
		Perf:     a.deps.Perf,
		Signal:   a.deps.Signal,
		Names:    a.deps.Names,
	}
}

// StartGame begins a new game after validating s.
func (a *App) StartGame(s GameSetup) error {
	if err := a.cfg.Game.CheckSetup(s.GridSize, s.MaxRounds); err != nil {
		return err
	}
	opts := a.options()
	opts.Era, opts.GridSize, opts.MaxRounds = s.Era, s.GridSize, s.MaxRounds
	e, err := game.New(opts)
	if err != nil {
		return fmt.Errorf("starting game: %w", err)
	}
	a.setup = s
	a.play(e)
	a.setStatus(fmt.Sprintf("You are %s. Hunt %s, avoid %s.",
		e.Player().Name, e.Prey().Name, e.Apex().Name), false)
	return nil
}

// ContinueGame loads the saved game. On failure the current game is kept.
func (a *App) ContinueGame() error {
	e, err := game.Load(a.cfg.Files.SavePath, a.options())
	if err != nil {
		return err
	}
	a.setup = GameSetup{Era: e.Era(), GridSize: e.Size(), MaxRounds: e.MaxRounds()}
	a.play(e)
	a.setStatus("Game loaded", false)
	return nil
}

func (a *App) play(e *game.Engine) {
	a.engine = e
	a.screen = ScreenPlaying
	a.autopilot = false
	a.recorded = e.IsGameOver()
	panelW := int32(a.cfg.Screen.PanelWidth)
	a.cam = camera.New(10, 10, float32(a.screenW-panelW-30), float32(a.screenH-40), e.Size())
	a.board = NewBoardView(a.cam, float32(a.cfg.Screen.CellPadding))
}

func (a *App) toMenu() {
	a.screen = ScreenMenu
	a.menu.SetSetup(a.setup)
	a.refreshMenu()
}

func (a *App) refreshMenu() {
	a.menu.SetContinue(telemetry.SaveExists(a.cfg.Files.SavePath))
	if a.deps.Hall != nil {
		a.menu.SetHall(a.deps.Hall.Top(5))
	}
}

func (a *App) setStatus(msg string, isError bool) {
	a.message, a.isError = msg, isError
}

// Update processes input and advances the game. Call once per frame.
func (a *App) Update() {
	if rl.IsWindowResized() {
		a.layout(int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight()))
	}

	switch a.screen {
	case ScreenMenu:
		a.updateMenu()
	case ScreenPlaying:
		a.updatePlaying()
	}
}

func (a *App) updateMenu() {
	action := a.pending
	a.pending = MenuNone

	switch action {
	case MenuNewGame:
		s, err := a.menu.Validate()
		if err != nil {
			a.menu.SetMessage(err.Error(), true)
			return
		}
		if err := a.StartGame(s); err != nil {
			a.menu.SetMessage(err.Error(), true)
		}
	case MenuContinue:
		if err := a.ContinueGame(); err != nil {
			a.log.Warn("continue failed", "error", err)
			if errors.Is(err, telemetry.ErrNoSave) {
				a.menu.SetMessage("No saved game", true)
			} else {
				a.menu.SetMessage("Could not load the saved game", true)
			}
			a.refreshMenu()
		}
	case MenuExit:
		a.quit = true
	}
}

func (a *App) updatePlaying() {
	if rl.IsKeyPressed(rl.KeyM) {
		a.toMenu()
		return
	}
	if rl.IsKeyPressed(rl.KeyN) {
		if err := a.StartGame(a.setup); err != nil {
			a.setStatus(err.Error(), true)
		}
		return
	}
	if rl.IsKeyPressed(rl.KeyS) || a.saveReq {
		a.saveReq = false
		a.save()
	}
	if rl.IsKeyPressed(rl.KeyA) {
		a.autopilot = !a.autopilot
		a.lastAuto = time.Now()
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		a.controls.Toggle()
	}
	for _, key := range a.overlays.Keys() {
		if rl.IsKeyPressed(key) {
			a.overlays.HandleKeyPress(key)
		}
	}
	a.handleCameraInput()

	mouse := rl.GetMousePosition()
	x, y, ok := a.cam.CellAt(mouse.X, mouse.Y)
	a.hovered, a.hover = components.Cell{X: x, Y: y}, ok

	if a.engine.IsGameOver() {
		a.recordGameOver()
		return
	}

	if a.autopilot {
		if time.Since(a.lastAuto) >= a.cfg.Derived.AutopilotDelay {
			a.lastAuto = time.Now()
			c := a.engine.AutopilotTarget()
			a.move(c.X, c.Y)
		}
		return
	}

	if ok && rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		if !a.engine.IsValidTarget(x, y) {
			return
		}
		a.move(x, y)
	}
}

func (a *App) move(x, y int) {
	if err := a.engine.ProcessPlayerMove(x, y); err != nil {
		a.setStatus(err.Error(), true)
		return
	}
	a.setStatus("", false)
	if a.engine.IsGameOver() {
		a.recordGameOver()
	}
}

func (a *App) save() {
	if err := a.engine.Save(a.cfg.Files.SavePath); err != nil {
		a.log.Error("save failed", "error", err)
		a.setStatus("Save failed", true)
		return
	}
	a.setStatus("Game saved", false)
}

// recordGameOver enters the finished game into the hall of fame once.
func (a *App) recordGameOver() {
	if a.recorded {
		return
	}
	a.recorded = true
	a.autopilot = false
	hall := a.deps.Hall
	if hall == nil || !hall.Consider(a.engine.HallEntry(time.Now())) {
		return
	}
	if err := hall.Save(); err != nil {
		a.log.Warn("hall of fame not saved", "error", err)
	}
}

func (a *App) handleCameraInput() {
	panSpeed := float32(8.0)
	if rl.IsKeyDown(rl.KeyRight) {
		a.cam.Pan(panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		a.cam.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		a.cam.Pan(0, panSpeed)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		a.cam.Pan(0, -panSpeed)
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		a.cam.ZoomBy(1 + wheel*0.1)
	}
	if rl.IsKeyPressed(rl.KeyHome) {
		a.cam.Reset()
	}
}

// Draw renders the current screen. Call between BeginDrawing and EndDrawing.
func (a *App) Draw() {
	switch a.screen {
	case ScreenMenu:
		if action := a.menu.Draw(a.screenW, a.screenH); action != MenuNone {
			a.pending = action
		}
	case ScreenPlaying:
		a.drawPlaying()
	}
}

func (a *App) drawPlaying() {
	e := a.engine
	rl.ClearBackground(a.hud.renderer.Theme.Background)

	player := e.Player()
	a.board.Draw(BoardFrame{
		Size:    e.Size(),
		Pieces:  e.Pieces(),
		Walk:    e.NormalMoveTargets(),
		Ability: e.SpecialMoveTargets(),
		Player:  player.Position,
		Placed:  player.Placed,
		Hovered: a.hovered,
		Hover:   a.hover,
	}, a.overlays.IsEnabled(OverlayMoveTargets), a.overlays.IsEnabled(OverlayCoordinates))

	a.hud.Draw(a.hudData(), a.overlays.IsEnabled(OverlayLegend), a.overlays.IsEnabled(OverlayEventFeed))
	a.controls.Draw(a.overlays)
	a.hud.DrawControls(a.screenH, controlsHelp)

	panelX := float32(a.screenW - int32(a.cfg.Screen.PanelWidth) - 10)
	if gui.Button(rl.Rectangle{X: panelX + float32(a.cfg.Screen.PanelWidth) - 90, Y: 16, Width: 80, Height: 26}, "Save") {
		a.saveReq = true
	}

	if e.IsGameOver() {
		a.drawGameOver()
		return
	}

	if a.hover && a.overlays.IsEnabled(OverlayInspector) {
		info := CellInfo{At: a.hovered}
		for _, p := range e.Pieces() {
			if p.At == a.hovered {
				info.Piece, info.Occupied = p, true
				break
			}
		}
		switch {
		case a.hovered == player.Position:
		case containsCell(e.NormalMoveTargets(), a.hovered):
			info.Target = TargetWalk
		case containsCell(e.SpecialMoveTargets(), a.hovered):
			info.Target = TargetAbility
		}
		a.inspector.Draw(info, rl.GetMousePosition(), a.screenW, a.screenH)
	}
}

func (a *App) drawGameOver() {
	e := a.engine
	title := "You lose"
	switch {
	case e.Winner().Draw && e.PlayerWon():
		title = "Draw"
	case e.PlayerWon():
		title = "You win!"
	}
	subtitle := fmt.Sprintf("Winner: %s. N: new game, M: menu", e.Winner())
	cx := int32(a.cam.OriginX + a.cam.ViewportW/2)
	cy := int32(a.cam.OriginY + a.cam.ViewportH/2)
	a.hud.DrawBanner(cx, cy, title, subtitle)
}

func (a *App) hudData() HUDData {
	e := a.engine
	theme := a.hud.renderer.Theme
	data := HUDData{
		Round:     e.Round(),
		MaxRounds: e.MaxRounds(),
		Era:       e.Era().String(),
		State:     e.State().String(),
		Standing:  e.Winner().String(),
		Message:   a.message,
		IsError:   a.isError,
		Autopilot: a.autopilot,
		FPS:       rl.GetFPS(),
	}
	for _, role := range components.Roles() {
		v := e.Principal(role)
		tally, _ := e.Lifetime(v.Name)
		data.Animals = append(data.Animals, AnimalRow{View: v, Tally: tally, Color: theme.RoleColor(role)})
	}
	for _, ev := range e.RecentEvents() {
		data.Feed = append(data.Feed, ev.Summary())
	}
	marks := e.Bookmarks()
	if len(marks) > 4 {
		marks = marks[len(marks)-4:]
	}
	for _, b := range marks {
		data.Bookmarks = append(data.Bookmarks, fmt.Sprintf("R%d %s", b.Round, b.Description))
	}
	return data
}

func containsCell(cells []components.Cell, c components.Cell) bool {
	for _, x := range cells {
		if x == c {
			return true
		}
	}
	return false
}
