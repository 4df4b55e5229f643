// Package ui provides the raylib front end: start menu, board view, info panel
// and overlays. Panels are described by metadata so the info panel layout can
// change without touching drawing code.
package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/foodchain/components"
)

// WidgetType specifies how a field should be rendered.
type WidgetType int

const (
	WidgetText     WidgetType = iota // Plain text with format string
	WidgetBar                        // Progress bar [0, 1]
	WidgetCooldown                   // Cooldown bar, full when ready
	WidgetSwatch                     // Color preview square
	WidgetSection                    // Section header
	WidgetSpacer                     // Vertical spacing
)

// FieldDescriptor defines how to display a single piece of data.
type FieldDescriptor struct {
	ID          string             // Unique identifier for the field
	Label       string             // Display label
	Widget      WidgetType         // How to render
	Format      string             // Printf format for numeric text
	Color       rl.Color           // Optional color override
	Visible     func(any) bool     // Optional visibility check (nil = always visible)
	Getter      func(any) float32  // Value extractor (for numeric fields)
	TextGetter  func(any) string   // Value extractor (for text fields)
	ColorGetter func(any) rl.Color // Color extractor (for swatches)
}

// SectionDescriptor defines a group of fields with a header.
type SectionDescriptor struct {
	ID      string
	Title   string
	Fields  []FieldDescriptor
	Visible func(any) bool // Optional visibility check for entire section
}

// Theme holds UI styling constants.
type Theme struct {
	PanelBg       rl.Color
	PanelBorder   rl.Color
	SectionHeader rl.Color
	LabelColor    rl.Color
	ValueColor    rl.Color
	ErrorColor    rl.Color
	BarBg         rl.Color
	BarFill       rl.Color
	BarFillReady  rl.Color

	// Board
	Background       rl.Color
	CellBg           rl.Color
	GridLine         rl.Color
	WalkHighlight    rl.Color
	AbilityHighlight rl.Color
	PlayerOutline    rl.Color
	FoodColor        rl.Color
	RoleColors       [3]rl.Color // indexed by components.Role

	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
	TitleFontSize  int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:       rl.Color{R: 20, G: 25, B: 30, A: 240},
		PanelBorder:   rl.Color{R: 60, G: 70, B: 80, A: 255},
		SectionHeader: rl.Yellow,
		LabelColor:    rl.LightGray,
		ValueColor:    rl.White,
		ErrorColor:    rl.Color{R: 230, G: 90, B: 80, A: 255},
		BarBg:         rl.Color{R: 40, G: 40, B: 40, A: 255},
		BarFill:       rl.Color{R: 200, G: 180, B: 100, A: 255},
		BarFillReady:  rl.Color{R: 100, G: 200, B: 100, A: 255},

		Background:       rl.Color{R: 12, G: 14, B: 18, A: 255},
		CellBg:           rl.Color{R: 34, G: 40, B: 36, A: 255},
		GridLine:         rl.Color{R: 55, G: 62, B: 58, A: 255},
		WalkHighlight:    rl.Color{R: 80, G: 170, B: 240, A: 110},
		AbilityHighlight: rl.Color{R: 240, G: 150, B: 50, A: 130},
		PlayerOutline:    rl.White,
		FoodColor:        rl.Color{R: 90, G: 180, B: 80, A: 255},
		RoleColors: [3]rl.Color{
			components.RoleApex:     {R: 200, G: 60, B: 60, A: 255},
			components.RolePredator: {R: 70, G: 120, B: 220, A: 255},
			components.RolePrey:     {R: 220, G: 190, B: 80, A: 255},
		},

		Padding:        10,
		LineHeight:     18,
		LabelWidth:     80,
		BarHeight:      12,
		FontSize:       14,
		HeaderFontSize: 16,
		TitleFontSize:  28,
	}
}

// RoleColor returns the board color of an animal role.
func (t Theme) RoleColor(r components.Role) rl.Color {
	if int(r) < len(t.RoleColors) {
		return t.RoleColors[r]
	}
	return t.LabelColor
}
