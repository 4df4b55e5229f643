package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/foodchain/components"
	"github.com/pthm-cable/foodchain/game"
	"github.com/pthm-cable/foodchain/telemetry"
)

// AnimalRow is one principal as shown in the info panel.
type AnimalRow struct {
	View  game.AnimalView
	Tally telemetry.LifetimeStats
	Color rl.Color
}

// HUDData holds everything the info panel shows for one frame.
type HUDData struct {
	Round     int
	MaxRounds int
	Era       string
	State     string
	Standing  string
	Animals   []AnimalRow
	Feed      []string
	Bookmarks []string
	Message   string
	IsError   bool
	Autopilot bool
	FPS       int32
}

// HUD renders the info panel to the right of the board.
type HUD struct {
	renderer *Renderer
	x, y     int32
	width    int32
	height   int32
	sections []SectionDescriptor
}

// NewHUD creates an info panel occupying the given rectangle.
func NewHUD(x, y, width, height int32) *HUD {
	return &HUD{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		height:   height,
		sections: []SectionDescriptor{animalSection()},
	}
}

// SetBounds moves and resizes the panel.
func (h *HUD) SetBounds(x, y, width, height int32) {
	h.x, h.y, h.width, h.height = x, y, width, height
}

// animalSection describes the per-animal block. Data is an AnimalRow.
func animalSection() SectionDescriptor {
	row := func(d any) AnimalRow { return d.(AnimalRow) }
	return SectionDescriptor{
		ID: "animal",
		Fields: []FieldDescriptor{
			{
				ID:     "name",
				Widget: WidgetSwatch,
				ColorGetter: func(d any) rl.Color {
					return row(d).Color
				},
				TextGetter: func(d any) string {
					v := row(d).View
					return fmt.Sprintf("%s  %s (%c)", v.Role, v.Name, v.Symbol)
				},
			},
			{
				ID:     "score",
				Label:  "Score",
				Widget: WidgetText,
				TextGetter: func(d any) string {
					return fmt.Sprintf("%d", row(d).View.Score)
				},
			},
			{
				ID:     "cooldown",
				Label:  "Ability",
				Widget: WidgetCooldown,
				Getter: func(d any) float32 {
					v := row(d).View
					if v.MaxCooldown == 0 {
						return 1
					}
					return 1 - float32(v.Cooldown)/float32(v.MaxCooldown)
				},
				TextGetter: func(d any) string {
					v := row(d).View
					if v.Cooldown == 0 {
						return "ready"
					}
					return fmt.Sprintf("%d/%d", v.Cooldown, v.MaxCooldown)
				},
			},
			{
				ID:     "ability",
				Label:  "Move",
				Widget: WidgetText,
				TextGetter: func(d any) string {
					return row(d).View.Ability
				},
			},
			{
				ID:     "position",
				Label:  "At",
				Widget: WidgetText,
				Visible: func(d any) bool {
					return row(d).View.Placed
				},
				TextGetter: func(d any) string {
					return row(d).View.Position.String()
				},
			},
			{
				ID:     "meals",
				Label:  "Meals",
				Widget: WidgetText,
				TextGetter: func(d any) string {
					t := row(d).Tally
					return fmt.Sprintf("%d eaten, %d lost", t.Meals, t.TimesEaten)
				},
			},
		},
	}
}

// Draw renders the panel. legend and feed select the optional bottom block.
func (h *HUD) Draw(data HUDData, legend, feed bool) {
	r := h.renderer
	pad := r.Theme.Padding
	x := h.x + pad
	w := h.width - pad*2

	r.DrawPanel(h.x, h.y, h.width, h.height)

	y := h.y + pad
	rl.DrawText(fmt.Sprintf("Round %d / %d", data.Round, data.MaxRounds), x, y, 20, rl.White)
	y += 26
	y = r.DrawLabelValue(x, y, "Era", data.Era)
	y = r.DrawLabelValue(x, y, "State", data.State)
	y = r.DrawLabelValue(x, y, "Leader", data.Standing)
	if data.Autopilot {
		y = r.DrawMessage(x, y, "Autopilot on [A]", false)
	}
	y += 6

	for _, a := range data.Animals {
		y = r.DrawSection(x, y, h.sections[0], a, w)
	}

	if data.Message != "" {
		y = r.DrawMessage(x, y, data.Message, data.IsError)
		y += 4
	}

	switch {
	case legend:
		h.drawLegend(x, y)
	case feed:
		h.drawFeed(x, y, data)
	}

	rl.DrawText(fmt.Sprintf("FPS %d", data.FPS), x, h.y+h.height-pad-r.Theme.FontSize, r.Theme.FontSize, rl.Gray)
}

func (h *HUD) drawLegend(x, y int32) int32 {
	r := h.renderer
	y = r.DrawSectionHeader(x, y, "Legend")
	for _, role := range components.Roles() {
		y = r.DrawColorSwatch(x, y, role.String(), r.Theme.RoleColor(role))
	}
	y = r.DrawColorSwatch(x, y, "Food", r.Theme.FoodColor)
	y = r.DrawColorSwatch(x, y, "Walk target", opaque(r.Theme.WalkHighlight))
	y = r.DrawColorSwatch(x, y, "Ability target", opaque(r.Theme.AbilityHighlight))
	return y
}

func opaque(c rl.Color) rl.Color {
	c.A = 255
	return c
}

func (h *HUD) drawFeed(x, y int32, data HUDData) int32 {
	r := h.renderer
	y = r.DrawSectionHeader(x, y, "Recent")
	for _, line := range data.Feed {
		rl.DrawText(line, x, y, r.Theme.FontSize-2, r.Theme.LabelColor)
		y += r.Theme.LineHeight - 2
	}
	if len(data.Bookmarks) > 0 {
		y += 4
		y = r.DrawSectionHeader(x, y, "Moments")
		for _, line := range data.Bookmarks {
			rl.DrawText(line, x, y, r.Theme.FontSize-2, r.Theme.SectionHeader)
			y += r.Theme.LineHeight - 2
		}
	}
	return y
}

// DrawControls renders the key legend along the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-22, 14, rl.Gray)
}

// DrawBanner draws a centered message box over the board.
func (h *HUD) DrawBanner(cx, cy int32, title, subtitle string) {
	r := h.renderer
	tw := rl.MeasureText(title, r.Theme.TitleFontSize)
	sw := rl.MeasureText(subtitle, r.Theme.HeaderFontSize)
	w := max(tw, sw) + r.Theme.Padding*4
	bh := r.Theme.TitleFontSize + r.Theme.HeaderFontSize + r.Theme.Padding*4
	r.DrawPanel(cx-w/2, cy-bh/2, w, bh)
	rl.DrawText(title, cx-tw/2, cy-bh/2+r.Theme.Padding, r.Theme.TitleFontSize, rl.White)
	rl.DrawText(subtitle, cx-sw/2, cy+bh/2-r.Theme.Padding-r.Theme.HeaderFontSize, r.Theme.HeaderFontSize, r.Theme.LabelColor)
}
