// Package renderer draws simulation snapshots with raylib.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/membrane/camera"
	"github.com/pthm-cable/membrane/systems"
)

// Layers selects what MeshRenderer draws on top of the vesicles.
type Layers struct {
	Wireframe bool // triangle outlines
	Occupancy bool // fill claimed triangles
	Samples   bool // perimeter sample markers
	Bounds    bool // placement rectangle [0, XMax] x [0, YMax]
	Trails    bool // recent centers of every vesicle
}

// Palette holds the colors used for the membrane view.
type Palette struct {
	Background rl.Color
	Edge       rl.Color
	Occupied   rl.Color
	Vesicle    rl.Color
	Selected   rl.Color
	Sample     rl.Color
	Bounds     rl.Color
	Trail      rl.Color
}

// DefaultPalette returns the default membrane colors.
func DefaultPalette() Palette {
	return Palette{
		Background: rl.Color{R: 14, G: 18, B: 24, A: 255},
		Edge:       rl.Color{R: 60, G: 80, B: 100, A: 255},
		Occupied:   rl.Color{R: 200, G: 120, B: 60, A: 140},
		Vesicle:    rl.Color{R: 120, G: 200, B: 240, A: 255},
		Selected:   rl.Yellow,
		Sample:     rl.Color{R: 240, G: 240, B: 240, A: 200},
		Bounds:     rl.Color{R: 90, G: 90, B: 90, A: 255},
		Trail:      rl.Color{R: 120, G: 200, B: 240, A: 90},
	}
}

// trailLength is the number of centers remembered per vesicle.
const trailLength = 240

// MeshRenderer draws the membrane mesh and its vesicles.
type MeshRenderer struct {
	Palette Palette

	trails   [][]r2.Vec
	lastTick int32
}

// NewMeshRenderer creates a renderer with the default palette.
func NewMeshRenderer() *MeshRenderer {
	return &MeshRenderer{Palette: DefaultPalette(), lastTick: -1}
}

// Draw renders snap through cam. selected is a vesicle index or -1.
func (r *MeshRenderer) Draw(snap systems.Snapshot, cam *camera.Camera, layers Layers, selected int) {
	r.recordTrails(snap)

	if layers.Occupancy {
		r.drawOccupancy(snap, cam)
	}
	if layers.Wireframe {
		r.drawWireframe(snap, cam)
	}
	if layers.Bounds {
		r.drawBounds(snap, cam)
	}
	if layers.Trails {
		r.drawTrails(cam)
	}

	for i, v := range snap.Vesicles {
		x, y := float32(v.Center.X), float32(v.Center.Y)
		radius := float32(v.Radius)
		if !cam.IsVisible(x, y, radius) {
			continue
		}

		color := r.Palette.Vesicle
		if i == selected {
			color = r.Palette.Selected
		}

		sx, sy := cam.WorldToScreen(x, y)
		rl.DrawCircleLines(int32(sx), int32(sy), cam.Scale(radius), color)
		rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, 2, color)

		if layers.Samples {
			for _, s := range v.Samples {
				px, py := cam.WorldToScreen(float32(s.X), float32(s.Y))
				rl.DrawCircleV(rl.Vector2{X: px, Y: py}, 2, r.Palette.Sample)
			}
		}
	}
}

// Reset forgets all trails, e.g. after the simulation is rebuilt.
func (r *MeshRenderer) Reset() {
	r.trails = nil
	r.lastTick = -1
}

func (r *MeshRenderer) recordTrails(snap systems.Snapshot) {
	if snap.Tick == r.lastTick {
		return
	}
	if snap.Tick < r.lastTick || len(r.trails) != len(snap.Vesicles) {
		r.trails = make([][]r2.Vec, len(snap.Vesicles))
	}
	r.lastTick = snap.Tick

	for i, v := range snap.Vesicles {
		trail := append(r.trails[i], v.Center)
		if len(trail) > trailLength {
			trail = trail[len(trail)-trailLength:]
		}
		r.trails[i] = trail
	}
}

func (r *MeshRenderer) drawOccupancy(snap systems.Snapshot, cam *camera.Camera) {
	for _, t := range snap.Triangles {
		if !t.Occupied {
			continue
		}
		a, b, c := screenTriangle(cam, t.Vertices)
		// The y flip turns counter-clockwise world winding clockwise on
		// screen; raylib wants counter-clockwise, so swap b and c.
		rl.DrawTriangle(a, c, b, r.Palette.Occupied)
	}
}

func (r *MeshRenderer) drawWireframe(snap systems.Snapshot, cam *camera.Camera) {
	for _, t := range snap.Triangles {
		a, b, c := screenTriangle(cam, t.Vertices)
		rl.DrawTriangleLines(a, c, b, r.Palette.Edge)
	}
}

func (r *MeshRenderer) drawBounds(snap systems.Snapshot, cam *camera.Camera) {
	x0, y0 := cam.WorldToScreen(0, float32(snap.YMax))
	x1, y1 := cam.WorldToScreen(float32(snap.XMax), 0)
	rl.DrawRectangleLinesEx(rl.Rectangle{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}, 1, r.Palette.Bounds)
}

func (r *MeshRenderer) drawTrails(cam *camera.Camera) {
	for _, trail := range r.trails {
		for i := 1; i < len(trail); i++ {
			x0, y0 := cam.WorldToScreen(float32(trail[i-1].X), float32(trail[i-1].Y))
			x1, y1 := cam.WorldToScreen(float32(trail[i].X), float32(trail[i].Y))
			rl.DrawLineV(rl.Vector2{X: x0, Y: y0}, rl.Vector2{X: x1, Y: y1}, r.Palette.Trail)
		}
	}
}

func screenTriangle(cam *camera.Camera, v [3]r2.Vec) (a, b, c rl.Vector2) {
	ax, ay := cam.WorldToScreen(float32(v[0].X), float32(v[0].Y))
	bx, by := cam.WorldToScreen(float32(v[1].X), float32(v[1].Y))
	cx, cy := cam.WorldToScreen(float32(v[2].X), float32(v[2].Y))
	return rl.Vector2{X: ax, Y: ay}, rl.Vector2{X: bx, Y: by}, rl.Vector2{X: cx, Y: cy}
}
