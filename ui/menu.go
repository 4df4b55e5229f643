package ui

import (
	"fmt"
	"strings"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/foodchain/components"
	"github.com/pthm-cable/foodchain/config"
	"github.com/pthm-cable/foodchain/telemetry"
)

// MenuAction is what the player chose on the start screen.
type MenuAction uint8

const (
	MenuNone MenuAction = iota
	MenuNewGame
	MenuContinue
	MenuExit
)

// Slider ranges. The lower ends sit below the configured minimums so the
// validation message can be seen.
const (
	sliderMinGrid   = 3
	sliderMaxGrid   = 60
	sliderMinRounds = 1
	sliderMaxRounds = 100
)

// GameSetup is a new-game request from the start screen.
type GameSetup struct {
	Era       components.Era
	GridSize  int
	MaxRounds int
}

// Menu is the start screen: era, grid size and round count, plus the
// New Game, Continue and Exit buttons and the hall of fame.
type Menu struct {
	renderer *Renderer
	limits   config.GameConfig

	era         int32
	grid        float32
	rounds      float32
	canContinue bool
	hall        []telemetry.HallEntry
	message     string
	isError     bool
}

// NewMenu creates a start screen preset to defaults.
func NewMenu(limits config.GameConfig, defaults GameSetup) *Menu {
	return &Menu{
		renderer: NewRenderer(),
		limits:   limits,
		era:      int32(defaults.Era),
		grid:     float32(defaults.GridSize),
		rounds:   float32(defaults.MaxRounds),
	}
}

// SetContinue enables or disables the Continue button.
func (m *Menu) SetContinue(ok bool) {
	m.canContinue = ok
}

// SetHall sets the hall of fame entries shown under the buttons.
func (m *Menu) SetHall(entries []telemetry.HallEntry) {
	m.hall = entries
}

// SetMessage shows a status line, in red when isError.
func (m *Menu) SetMessage(msg string, isError bool) {
	m.message, m.isError = msg, isError
}

// Setup returns the current selection.
func (m *Menu) Setup() GameSetup {
	return GameSetup{
		Era:       components.Era(m.era),
		GridSize:  int(m.grid + 0.5),
		MaxRounds: int(m.rounds + 0.5),
	}
}

// SetSetup moves the controls to s.
func (m *Menu) SetSetup(s GameSetup) {
	m.era = int32(s.Era)
	m.grid = float32(s.GridSize)
	m.rounds = float32(s.MaxRounds)
}

// Validate checks the selection against the configured limits.
func (m *Menu) Validate() (GameSetup, error) {
	s := m.Setup()
	if s.Era > components.EraFuture {
		return s, fmt.Errorf("unknown era %d", s.Era)
	}
	if err := m.limits.CheckSetup(s.GridSize, s.MaxRounds); err != nil {
		return s, err
	}
	return s, nil
}

// Draw renders the start screen and returns the button pressed this frame.
func (m *Menu) Draw(screenW, screenH int32) MenuAction {
	r := m.renderer
	t := r.Theme

	rl.ClearBackground(t.Background)

	title := "Food Chain"
	tw := rl.MeasureText(title, t.TitleFontSize*2)
	rl.DrawText(title, screenW/2-tw/2, 60, t.TitleFontSize*2, rl.White)

	const width = 360
	x := float32(screenW/2 - width/2)
	y := float32(160)

	rl.DrawText("Era", int32(x), int32(y), t.HeaderFontSize, t.SectionHeader)
	y += 22
	eras := components.EraNames()
	m.era = gui.ToggleGroup(rl.Rectangle{X: x, Y: y, Width: width/float32(len(eras)) - 4, Height: 30}, strings.Join(eras, ";"), m.era)
	y += 50

	rl.DrawText("Grid size", int32(x), int32(y), t.HeaderFontSize, t.SectionHeader)
	y += 22
	m.grid = gui.SliderBar(
		rl.Rectangle{X: x, Y: y, Width: width - 60, Height: 20},
		"", "",
		m.grid, sliderMinGrid, sliderMaxGrid,
	)
	rl.DrawText(fmt.Sprintf("%d", m.Setup().GridSize), int32(x+width-50), int32(y+2), 16, t.ValueColor)
	y += 40

	rl.DrawText("Rounds", int32(x), int32(y), t.HeaderFontSize, t.SectionHeader)
	y += 22
	m.rounds = gui.SliderBar(
		rl.Rectangle{X: x, Y: y, Width: width - 60, Height: 20},
		"", "",
		m.rounds, sliderMinRounds, sliderMaxRounds,
	)
	rl.DrawText(fmt.Sprintf("%d", m.Setup().MaxRounds), int32(x+width-50), int32(y+2), 16, t.ValueColor)
	y += 50

	action := MenuNone
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: 110, Height: 34}, "New Game") {
		action = MenuNewGame
	}
	if m.canContinue {
		if gui.Button(rl.Rectangle{X: x + 125, Y: y, Width: 110, Height: 34}, "Continue") {
			action = MenuContinue
		}
	}
	if gui.Button(rl.Rectangle{X: x + 250, Y: y, Width: 110, Height: 34}, "Exit") {
		action = MenuExit
	}
	y += 50

	if m.message != "" {
		r.DrawMessage(int32(x), int32(y), m.message, m.isError)
	}
	y += 30

	if len(m.hall) > 0 {
		yy := r.DrawSectionHeader(int32(x), int32(y), "Hall of Fame")
		for i, e := range m.hall {
			line := fmt.Sprintf("%d. %-12s %4d  %s %dx%d, %d rounds (%s)",
				i+1, e.Player, e.Score, e.Era, e.Grid, e.Grid, e.Rounds, e.Outcome)
			rl.DrawText(line, int32(x), yy, t.FontSize, t.LabelColor)
			yy += t.LineHeight
		}
	}

	return action
}
