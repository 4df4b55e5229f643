package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/foodchain/camera"
	"github.com/pthm-cable/foodchain/components"
	"github.com/pthm-cable/foodchain/systems"
)

// BoardFrame is what the board view needs to draw one frame.
type BoardFrame struct {
	Size    int
	Pieces  []systems.Piece
	Walk    []components.Cell
	Ability []components.Cell
	Player  components.Cell
	Placed  bool
	Hovered components.Cell
	Hover   bool
}

// BoardView draws the grid, its pieces and the player's move targets.
type BoardView struct {
	renderer *Renderer
	cam      *camera.Camera
	padding  float32
}

// NewBoardView creates a board view drawing through cam.
func NewBoardView(cam *camera.Camera, padding float32) *BoardView {
	return &BoardView{renderer: NewRenderer(), cam: cam, padding: padding}
}

// Draw renders the board. highlights and coords follow the overlay toggles.
func (b *BoardView) Draw(f BoardFrame, highlights, coords bool) {
	t := b.renderer.Theme
	c := b.cam

	rl.DrawRectangle(int32(c.OriginX), int32(c.OriginY), int32(c.ViewportW), int32(c.ViewportH), t.Background)

	for y := 0; y < f.Size; y++ {
		for x := 0; x < f.Size; x++ {
			if !c.IsVisible(x, y) {
				continue
			}
			b.fillCell(x, y, t.CellBg)
		}
	}

	if highlights {
		for _, cell := range f.Walk {
			b.fillCell(cell.X, cell.Y, t.WalkHighlight)
		}
		for _, cell := range f.Ability {
			b.fillCell(cell.X, cell.Y, t.AbilityHighlight)
		}
	}

	for _, p := range f.Pieces {
		b.drawPiece(p)
	}

	if f.Placed && c.IsVisible(f.Player.X, f.Player.Y) {
		sx, sy, size := c.CellRect(f.Player.X, f.Player.Y)
		rl.DrawRectangleLinesEx(rl.Rectangle{X: sx, Y: sy, Width: size, Height: size}, 2, t.PlayerOutline)
	}

	if f.Hover && c.IsVisible(f.Hovered.X, f.Hovered.Y) {
		sx, sy, size := c.CellRect(f.Hovered.X, f.Hovered.Y)
		rl.DrawRectangleLines(int32(sx), int32(sy), int32(size), int32(size), t.GridLine)
	}

	if coords && c.CellSize() >= 24 {
		b.drawCoordinates(f.Size)
	}
}

func (b *BoardView) fillCell(x, y int, color rl.Color) {
	sx, sy, size := b.cam.CellRect(x, y)
	inner := size - b.padding*2
	if inner < 1 {
		inner = size
	}
	rl.DrawRectangle(int32(sx+b.padding), int32(sy+b.padding), int32(inner), int32(inner), color)
}

func (b *BoardView) drawPiece(p systems.Piece) {
	if !b.cam.IsVisible(p.At.X, p.At.Y) {
		return
	}
	t := b.renderer.Theme
	sx, sy, size := b.cam.CellRect(p.At.X, p.At.Y)
	cx, cy := sx+size/2, sy+size/2

	if p.IsAnimal() {
		rl.DrawRectangle(int32(sx+size*0.12), int32(sy+size*0.12), int32(size*0.76), int32(size*0.76), t.RoleColor(p.Animal.Role))
	} else {
		rl.DrawCircle(int32(cx), int32(cy), size*0.3, t.FoodColor)
	}

	if size < 12 {
		return
	}
	font := int32(size * 0.5)
	label := string(p.Tag.Symbol)
	w := rl.MeasureText(label, font)
	rl.DrawText(label, int32(cx)-w/2, int32(cy)-font/2, font, rl.Black)
}

func (b *BoardView) drawCoordinates(n int) {
	c := b.cam
	font := int32(10)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			if !c.IsVisible(x, y) {
				continue
			}
			sx, sy, _ := c.CellRect(x, y)
			rl.DrawText(fmt.Sprintf("%d,%d", x, y), int32(sx)+2, int32(sy)+2, font, rl.Gray)
		}
	}
}
