package camera

import (
	"math"
	"testing"
)

// The default mesh: 95 x 77.94 world units, padding 10.
func newTestCamera() *Camera {
	return New(1000, 800, 95, 77.94, 10)
}

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 0.01
}

func TestNewFitsWorld(t *testing.T) {
	cam := newTestCamera()

	if !near(cam.X, 47.5) || !near(cam.Y, 38.97) {
		t.Errorf("expected camera at (47.5, 38.97), got (%f, %f)", cam.X, cam.Y)
	}

	// Width 115 and height 97.94 in world units; height binds.
	if want := float32(800.0 / 97.94); !near(cam.Zoom, want) {
		t.Errorf("expected fit zoom %f, got %f", want, cam.Zoom)
	}

	minX, minY, maxX, maxY := cam.VisibleWorldBounds()
	if minX > -10+0.01 || maxX < 105-0.01 || minY > -10+0.01 || maxY < 87.94-0.01 {
		t.Errorf("padded world not visible: (%f,%f)-(%f,%f)", minX, minY, maxX, maxY)
	}
}

func TestWorldToScreenFlipsY(t *testing.T) {
	cam := newTestCamera()

	sx, sy := cam.WorldToScreen(cam.X, cam.Y)
	if !near(sx, 500) || !near(sy, 400) {
		t.Errorf("expected screen center (500, 400), got (%f, %f)", sx, sy)
	}

	_, low := cam.WorldToScreen(cam.X, 0)
	_, high := cam.WorldToScreen(cam.X, 70)
	if high >= low {
		t.Errorf("higher world y should be higher on screen: y=0 -> %f, y=70 -> %f", low, high)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := newTestCamera()
	cam.ZoomBy(2)
	cam.Pan(40, -25)

	testCases := []struct{ sx, sy float32 }{
		{500, 400},
		{100, 100},
		{950, 700},
	}

	for _, tc := range testCases {
		wx, wy := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy := cam.WorldToScreen(wx, wy)
		if !near(sx, tc.sx) || !near(sy, tc.sy) {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)",
				tc.sx, tc.sy, wx, wy, sx, sy)
		}
	}
}

func TestZoomClamped(t *testing.T) {
	cam := newTestCamera()

	cam.ZoomBy(0.1)
	if cam.Zoom != cam.FitZoom {
		t.Errorf("zoom below fit: %f < %f", cam.Zoom, cam.FitZoom)
	}

	cam.ZoomBy(1000)
	if cam.Zoom != cam.MaxZoom {
		t.Errorf("zoom above max: %f > %f", cam.Zoom, cam.MaxZoom)
	}
}

func TestPanClamped(t *testing.T) {
	cam := newTestCamera()

	cam.Pan(1e6, 1e6)
	if cam.X != cam.MaxX || cam.Y != cam.MinY {
		t.Errorf("pan right/down should stop at (%f, %f), got (%f, %f)", cam.MaxX, cam.MinY, cam.X, cam.Y)
	}

	cam.Reset()
	if !near(cam.X, 47.5) || cam.Zoom != cam.FitZoom {
		t.Errorf("reset failed: (%f, %f) zoom %f", cam.X, cam.Y, cam.Zoom)
	}
}

func TestIsVisible(t *testing.T) {
	cam := newTestCamera()
	cam.SetZoom(cam.MaxZoom)

	if !cam.IsVisible(cam.X, cam.Y, 1) {
		t.Error("center should be visible")
	}
	if cam.IsVisible(cam.X+500, cam.Y, 1) {
		t.Error("far point should not be visible when zoomed in")
	}
}

func TestResizeKeepsRelativeZoom(t *testing.T) {
	cam := newTestCamera()
	cam.ZoomBy(2)
	rel := cam.Zoom / cam.FitZoom

	cam.Resize(500, 400)
	if got := cam.Zoom / cam.FitZoom; !near(got, rel) {
		t.Errorf("relative zoom %f, want %f", got, rel)
	}
}
