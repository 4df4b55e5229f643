// Package camera maps between screen pixels and board cells.
package camera

import "math"

// Camera is a viewport onto a square board of Cells x Cells tiles.
// At zoom 1 the whole board fits the viewport.
type Camera struct {
	// Viewport rectangle on screen
	OriginX, OriginY     float32
	ViewportW, ViewportH float32

	// Board dimension in cells
	Cells int

	// Center of the view in board pixels (at zoom 1)
	X, Y float32

	Zoom, MinZoom, MaxZoom float32
}

// New creates a camera that fits a board of n cells into the viewport.
func New(originX, originY, viewportW, viewportH float32, n int) *Camera {
	c := &Camera{
		OriginX:   originX,
		OriginY:   originY,
		ViewportW: viewportW,
		ViewportH: viewportH,
		Cells:     n,
		MinZoom:   1,
		MaxZoom:   4,
	}
	c.Reset()
	return c
}

// boardSize is the board edge length in pixels at zoom 1.
func (c *Camera) boardSize() float32 {
	return min(c.ViewportW, c.ViewportH)
}

// CellSize returns the on-screen edge length of one cell.
func (c *Camera) CellSize() float32 {
	if c.Cells <= 0 {
		return 0
	}
	return c.boardSize() / float32(c.Cells) * c.Zoom
}

// WorldToScreen converts board pixels to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	sx = c.OriginX + c.ViewportW/2 + (wx-c.X)*c.Zoom
	sy = c.OriginY + c.ViewportH/2 + (wy-c.Y)*c.Zoom
	return sx, sy
}

// ScreenToWorld converts screen coordinates to board pixels.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	wx = c.X + (sx-c.OriginX-c.ViewportW/2)/c.Zoom
	wy = c.Y + (sy-c.OriginY-c.ViewportH/2)/c.Zoom
	return wx, wy
}

// CellAt returns the cell under a screen point, or false when the point is
// outside the viewport or the board.
func (c *Camera) CellAt(sx, sy float32) (x, y int, ok bool) {
	if sx < c.OriginX || sy < c.OriginY || sx >= c.OriginX+c.ViewportW || sy >= c.OriginY+c.ViewportH {
		return 0, 0, false
	}
	wx, wy := c.ScreenToWorld(sx, sy)
	unit := c.boardSize() / float32(c.Cells)
	fx := float64(wx / unit)
	fy := float64(wy / unit)
	x, y = int(math.Floor(fx)), int(math.Floor(fy))
	if x < 0 || y < 0 || x >= c.Cells || y >= c.Cells {
		return 0, 0, false
	}
	return x, y, true
}

// CellRect returns the screen rectangle of cell (x, y).
func (c *Camera) CellRect(x, y int) (sx, sy, size float32) {
	unit := c.boardSize() / float32(c.Cells)
	sx, sy = c.WorldToScreen(float32(x)*unit, float32(y)*unit)
	return sx, sy, unit * c.Zoom
}

// IsVisible reports whether any part of cell (x, y) is inside the viewport.
func (c *Camera) IsVisible(x, y int) bool {
	sx, sy, size := c.CellRect(x, y)
	return sx+size > c.OriginX && sy+size > c.OriginY &&
		sx < c.OriginX+c.ViewportW && sy < c.OriginY+c.ViewportH
}

// Resize updates the viewport rectangle and keeps the view inside the board.
func (c *Camera) Resize(originX, originY, viewportW, viewportH float32) {
	if originX == c.OriginX && originY == c.OriginY && viewportW == c.ViewportW && viewportH == c.ViewportH {
		return
	}
	c.OriginX, c.OriginY = originX, originY
	c.ViewportW, c.ViewportH = viewportW, viewportH
	c.Reset()
}

// Pan moves the view by a delta in screen pixels.
func (c *Camera) Pan(dx, dy float32) {
	c.X += dx / c.Zoom
	c.Y += dy / c.Zoom
	c.clampCenter()
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
	c.clampCenter()
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// Reset shows the whole board.
func (c *Camera) Reset() {
	c.Zoom = 1
	half := c.boardSize() / 2
	c.X, c.Y = half, half
}

// clampCenter keeps the board under the viewport center.
func (c *Camera) clampCenter() {
	size := c.boardSize()
	halfW := c.ViewportW / (2 * c.Zoom)
	halfH := c.ViewportH / (2 * c.Zoom)
	c.X = clamp(c.X, min(halfW, size/2), max(size-halfW, size/2))
	c.Y = clamp(c.Y, min(halfH, size/2), max(size-halfH, size/2))
}

// clamp restricts a value to a range.
func clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
