package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/membrane/renderer"
)

// OverlayID uniquely identifies an overlay.
type OverlayID string

// Standard overlay IDs.
const (
	OverlayWireframe OverlayID = "wireframe"
	OverlayOccupancy OverlayID = "occupancy"
	OverlaySamples   OverlayID = "samples"
	OverlayBounds    OverlayID = "bounds"
	OverlayTrails    OverlayID = "trails"
)

// OverlayDescriptor defines an overlay that can be toggled.
type OverlayDescriptor struct {
	ID          OverlayID   // Unique identifier
	Name        string      // Display name
	Description string      // What this overlay shows
	Key         int32       // Keyboard key to toggle (0 = no key)
	KeyLabel    string      // Key label for display (e.g., "O")
	Category    string      // Grouping ("mesh" or "vesicles")
	Default     bool        // Enabled at startup
	Exclusive   []OverlayID // Other overlays to disable when this is enabled
}

// OverlayRegistry manages overlay state and metadata.
type OverlayRegistry struct {
	descriptors []OverlayDescriptor
	byID        map[OverlayID]OverlayDescriptor
	enabled     map[OverlayID]bool
}

// NewOverlayRegistry creates a registry with default overlays.
func NewOverlayRegistry() *OverlayRegistry {
	reg := &OverlayRegistry{
		byID:    make(map[OverlayID]OverlayDescriptor),
		enabled: make(map[OverlayID]bool),
	}
	reg.registerDefaults()
	return reg
}

func (r *OverlayRegistry) registerDefaults() {
	r.Register(OverlayDescriptor{
		ID:          OverlayWireframe,
		Name:        "Wireframe",
		Description: "Outline every mesh triangle",
		Key:         rl.KeyW,
		KeyLabel:    "W",
		Category:    "mesh",
		Default:     true,
	})
	r.Register(OverlayDescriptor{
		ID:          OverlayOccupancy,
		Name:        "Occupancy",
		Description: "Fill triangles claimed by a vesicle",
		Key:         rl.KeyO,
		KeyLabel:    "O",
		Category:    "mesh",
		Default:     true,
	})
	r.Register(OverlayDescriptor{
		ID:          OverlayBounds,
		Name:        "Bounds",
		Description: "Placement rectangle",
		Key:         rl.KeyB,
		KeyLabel:    "B",
		Category:    "mesh",
	})
	r.Register(OverlayDescriptor{
		ID:          OverlaySamples,
		Name:        "Samples",
		Description: "Perimeter sample points",
		Key:         rl.KeyS,
		KeyLabel:    "S",
		Category:    "vesicles",
	})
	r.Register(OverlayDescriptor{
		ID:          OverlayTrails,
		Name:        "Trails",
		Description: "Recent vesicle centers",
		Key:         rl.KeyT,
		KeyLabel:    "T",
		Category:    "vesicles",
	})
}

// Register adds an overlay to the registry.
func (r *OverlayRegistry) Register(desc OverlayDescriptor) {
	r.descriptors = append(r.descriptors, desc)
	r.byID[desc.ID] = desc
	r.enabled[desc.ID] = desc.Default
}

// Toggle switches an overlay on/off and handles exclusivity.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	if _, ok := r.byID[id]; !ok {
		return false
	}
	newState := !r.enabled[id]
	r.SetEnabled(id, newState)
	return newState
}

// SetEnabled explicitly sets an overlay's state.
func (r *OverlayRegistry) SetEnabled(id OverlayID, enabled bool) {
	desc, ok := r.byID[id]
	if !ok {
		return
	}

	r.enabled[id] = enabled

	if enabled {
		for _, excl := range desc.Exclusive {
			r.enabled[excl] = false
		}
	}
}

// IsEnabled returns whether an overlay is active.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	return r.enabled[id]
}

// All returns all registered overlays in registration order.
func (r *OverlayRegistry) All() []OverlayDescriptor {
	return r.descriptors
}

// ByCategory returns overlays filtered by category.
func (r *OverlayRegistry) ByCategory(category string) []OverlayDescriptor {
	var result []OverlayDescriptor
	for _, desc := range r.descriptors {
		if desc.Category == category {
			result = append(result, desc)
		}
	}
	return result
}

// Categories returns all unique categories in order.
func (r *OverlayRegistry) Categories() []string {
	seen := make(map[string]bool)
	var cats []string
	for _, desc := range r.descriptors {
		if !seen[desc.Category] {
			seen[desc.Category] = true
			cats = append(cats, desc.Category)
		}
	}
	return cats
}

// HandleKeys toggles every overlay whose key was pressed this frame.
func (r *OverlayRegistry) HandleKeys() {
	for _, desc := range r.descriptors {
		if desc.Key != 0 && rl.IsKeyPressed(desc.Key) {
			r.Toggle(desc.ID)
		}
	}
}

// Layers converts the overlay state into renderer layers.
func (r *OverlayRegistry) Layers() renderer.Layers {
	return renderer.Layers{
		Wireframe: r.IsEnabled(OverlayWireframe),
		Occupancy: r.IsEnabled(OverlayOccupancy),
		Samples:   r.IsEnabled(OverlaySamples),
		Bounds:    r.IsEnabled(OverlayBounds),
		Trails:    r.IsEnabled(OverlayTrails),
	}
}

func categoryLabel(cat string) string {
	switch cat {
	case "mesh":
		return "Mesh"
	case "vesicles":
		return "Vesicles"
	}
	return cat
}
