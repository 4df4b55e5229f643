package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/foodchain/components"
	"github.com/pthm-cable/foodchain/systems"
)

// TargetKind says how the player could reach a cell this turn.
type TargetKind uint8

const (
	TargetNone TargetKind = iota
	TargetWalk
	TargetAbility
)

// CellInfo is what the inspector knows about the hovered cell.
type CellInfo struct {
	At       components.Cell
	Piece    systems.Piece
	Occupied bool
	Target   TargetKind
}

// Lines returns the tooltip text for the cell, header first.
func (ci CellInfo) Lines() []string {
	var lines []string
	switch {
	case !ci.Occupied:
		lines = append(lines, "Empty")
	case ci.Piece.IsAnimal():
		a := ci.Piece.Animal
		lines = append(lines, fmt.Sprintf("%s (%s)", ci.Piece.Tag.Name, a.Role))
		lines = append(lines, fmt.Sprintf("Score: %d", a.Score))
		if a.Cooldown == 0 {
			lines = append(lines, "Ability: ready")
		} else {
			lines = append(lines, fmt.Sprintf("Ability: %d/%d", a.Cooldown, a.MaxCooldown))
		}
	default:
		lines = append(lines, fmt.Sprintf("%s (food)", ci.Piece.Tag.Name))
	}

	lines = append(lines, fmt.Sprintf("Cell %v", ci.At))
	switch ci.Target {
	case TargetWalk:
		lines = append(lines, "Click to walk here")
	case TargetAbility:
		lines = append(lines, "Click to use ability")
	}
	return lines
}

// Inspector draws a tooltip next to the cursor describing the hovered cell.
type Inspector struct {
	renderer *Renderer
}

// NewInspector creates a cell inspector.
func NewInspector() *Inspector {
	return &Inspector{renderer: NewRenderer()}
}

// Draw renders the tooltip for info at the mouse position, kept on screen.
func (ins *Inspector) Draw(info CellInfo, mouse rl.Vector2, screenW, screenH int32) {
	t := ins.renderer.Theme
	lines := info.Lines()

	const fontSize = 14
	const padding = 8
	const lineHeight = 16

	maxWidth := int32(0)
	for _, line := range lines {
		maxWidth = max(maxWidth, rl.MeasureText(line, fontSize))
	}

	tooltipWidth := maxWidth + padding*2
	tooltipHeight := int32(len(lines)*lineHeight + padding*2)

	tooltipX := int32(mouse.X) + 15
	tooltipY := int32(mouse.Y) + 15
	if tooltipX+tooltipWidth > screenW-10 {
		tooltipX = int32(mouse.X) - tooltipWidth - 10
	}
	if tooltipY+tooltipHeight > screenH-10 {
		tooltipY = int32(mouse.Y) - tooltipHeight - 10
	}

	ins.renderer.DrawPanel(tooltipX, tooltipY, tooltipWidth, tooltipHeight)

	header := t.LabelColor
	if info.Occupied {
		header = t.FoodColor
		if info.Piece.IsAnimal() {
			header = t.RoleColor(info.Piece.Animal.Role)
		}
	}
	for i, line := range lines {
		color := t.LabelColor
		if i == 0 {
			color = header
		}
		rl.DrawText(line, tooltipX+padding, tooltipY+padding+int32(i*lineHeight), fontSize, color)
	}
}
