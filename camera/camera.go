// Package camera provides a 2D camera system for viewport control.
package camera

// Camera maps a bounded y-up world region onto a y-down screen.
// Supports pan and zoom; the center is kept inside the world bounds.
type Camera struct {
	// Position is the camera center in world coordinates
	X, Y float32

	// Zoom level in screen pixels per world unit
	Zoom float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// World bounds, padding included
	MinX, MinY, MaxX, MaxY float32

	// FitZoom shows the whole world; MaxZoom is relative to it
	FitZoom, MaxZoom float32
}

// New creates a camera showing the world rectangle [0, worldW] x [0, worldH]
// grown by padding on every side, centered and zoomed to fit the viewport.
func New(viewportW, viewportH, worldW, worldH, padding float32) *Camera {
	c := &Camera{
		ViewportW: viewportW,
		ViewportH: viewportH,
		MinX:      -padding,
		MinY:      -padding,
		MaxX:      worldW + padding,
		MaxY:      worldH + padding,
	}
	c.fit()
	c.Reset()
	return c
}

// fit recomputes the zoom that shows the whole world in the viewport.
func (c *Camera) fit() {
	w := c.MaxX - c.MinX
	h := c.MaxY - c.MinY
	if w <= 0 || h <= 0 || c.ViewportW <= 0 || c.ViewportH <= 0 {
		c.FitZoom = 1
	} else {
		c.FitZoom = min(c.ViewportW/w, c.ViewportH/h)
	}
	c.MaxZoom = c.FitZoom * 8
}

// WorldToScreen converts world coordinates to screen coordinates.
// World y grows upward, screen y downward.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	sx = c.ViewportW/2 + (wx-c.X)*c.Zoom
	sy = c.ViewportH/2 - (wy-c.Y)*c.Zoom
	return sx, sy
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	wx = c.X + (sx-c.ViewportW/2)/c.Zoom
	wy = c.Y - (sy-c.ViewportH/2)/c.Zoom
	return wx, wy
}

// Scale converts a world length to screen pixels.
func (c *Camera) Scale(length float32) float32 {
	return length * c.Zoom
}

// IsVisible returns true if a circle at (wx, wy) with given radius
// could be visible on screen (conservative check for culling).
func (c *Camera) IsVisible(wx, wy, radius float32) bool {
	halfW := c.ViewportW/(2*c.Zoom) + radius
	halfH := c.ViewportH/(2*c.Zoom) + radius
	return absf(wx-c.X) <= halfW && absf(wy-c.Y) <= halfH
}

// Resize updates viewport dimensions and keeps the zoom relative to the fit.
func (c *Camera) Resize(viewportW, viewportH float32) {
	if viewportW == c.ViewportW && viewportH == c.ViewportH {
		return
	}
	rel := c.Zoom / c.FitZoom
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.fit()
	c.SetZoom(c.FitZoom * rel)
}

// Pan moves the camera by the given delta in screen pixels.
// The center stays inside the world bounds.
func (c *Camera) Pan(dx, dy float32) {
	c.X = clamp(c.X+dx/c.Zoom, c.MinX, c.MaxX)
	c.Y = clamp(c.Y-dy/c.Zoom, c.MinY, c.MaxY)
}

// SetZoom sets the zoom level, clamped to [FitZoom, MaxZoom].
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.FitZoom, c.MaxZoom)
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// Reset centers the camera on the world at the fitting zoom.
func (c *Camera) Reset() {
	c.X = (c.MinX + c.MaxX) / 2
	c.Y = (c.MinY + c.MaxY) / 2
	c.Zoom = c.FitZoom
}

// VisibleWorldBounds returns the world-coordinate bounds of the visible area.
func (c *Camera) VisibleWorldBounds() (minX, minY, maxX, maxY float32) {
	halfW := c.ViewportW / (2 * c.Zoom)
	halfH := c.ViewportH / (2 * c.Zoom)
	return c.X - halfW, c.Y - halfH, c.X + halfW, c.Y + halfH
}

// absf returns the absolute value of a float32.
func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
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
