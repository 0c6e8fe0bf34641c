package ui

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/membrane/camera"
	"github.com/pthm-cable/membrane/systems"
)

// inspected is the data passed to the vesicle panel's getters.
type inspected struct {
	index     int
	vesicle   systems.VesicleView
	triangles int
}

func asInspected(data any) inspected {
	in, _ := data.(inspected)
	return in
}

// vesiclePanel describes the inspector layout.
func vesiclePanel(width int32) PanelDescriptor {
	return PanelDescriptor{
		ID:    "vesicle",
		Title: "Vesicle",
		Width: width,
		Sections: []SectionDescriptor{
			{
				ID: "state",
				Fields: []FieldDescriptor{
					{ID: "index", Label: "Index", Widget: WidgetText, TextGetter: func(d any) string {
						return fmt.Sprintf("#%d", asInspected(d).index)
					}},
					{ID: "center", Label: "Center", Widget: WidgetText, TextGetter: func(d any) string {
						c := asInspected(d).vesicle.Center
						return fmt.Sprintf("(%.2f, %.2f)", c.X, c.Y)
					}},
					{ID: "radius", Label: "Radius", Widget: WidgetText, Format: "%.2f", Getter: func(d any) float32 {
						return float32(asInspected(d).vesicle.Radius)
					}},
					{ID: "samples", Label: "Samples", Widget: WidgetText, Format: "%.0f", Getter: func(d any) float32 {
						return float32(len(asInspected(d).vesicle.Samples))
					}},
				},
			},
			{
				ID:    "footprint",
				Title: "Footprint",
				Fields: []FieldDescriptor{
					{ID: "triangles", Label: "Triangles", Widget: WidgetText, Format: "%.0f", Getter: func(d any) float32 {
						return float32(len(asInspected(d).vesicle.Footprint))
					}},
					{ID: "share", Label: "Mesh share", Widget: WidgetBar, Range: DefaultRange(), Getter: func(d any) float32 {
						in := asInspected(d)
						if in.triangles == 0 {
							return 0
						}
						return float32(len(in.vesicle.Footprint)) / float32(in.triangles)
					}},
				},
			},
		},
	}
}

// Inspector shows the state of a clicked vesicle.
type Inspector struct {
	renderer *Renderer
	x, y     int32
	width    int32
	selected int
}

// NewInspector creates a new inspector panel with nothing selected.
func NewInspector(x, y, width int32) *Inspector {
	return &Inspector{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		selected: -1,
	}
}

// SetPosition updates the inspector position.
func (ins *Inspector) SetPosition(x, y int32) {
	ins.x = x
	ins.y = y
}

// Selected returns the selected vesicle index, or -1.
func (ins *Inspector) Selected() int {
	return ins.selected
}

// Select picks the vesicle under the screen point, clearing the selection
// when there is none.
func (ins *Inspector) Select(sx, sy float32, cam *camera.Camera, snap systems.Snapshot) {
	wx, wy := cam.ScreenToWorld(sx, sy)
	ins.selected = snap.VesicleAt(r2.Vec{X: float64(wx), Y: float64(wy)})
}

// Draw renders the panel for the selected vesicle, if any.
func (ins *Inspector) Draw(snap systems.Snapshot) {
	if ins.selected < 0 || ins.selected >= len(snap.Vesicles) {
		return
	}
	data := inspected{
		index:     ins.selected,
		vesicle:   snap.Vesicles[ins.selected],
		triangles: len(snap.Triangles),
	}
	ins.renderer.DrawPanelDescriptor(ins.x, ins.y, vesiclePanel(ins.width), data)
}
