package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Renderer handles all UI drawing with consistent styling.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel draws a panel background with border.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawSectionHeader draws a section header and returns the new Y position.
func (r *Renderer) DrawSectionHeader(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	return y + r.Theme.LineHeight
}

// DrawLabelValue draws a label and value on the same line.
func (r *Renderer) DrawLabelValue(x, y int32, label, value string) int32 {
	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawText(value, x+r.Theme.LabelWidth, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight
}

// DrawBar draws a progress bar for value within rng.
func (r *Renderer) DrawBar(x, y int32, label string, value float32, rng FieldRange, width int32) int32 {
	ratio := float32(0)
	if rng.Max > rng.Min {
		ratio = min(max((value-rng.Min)/(rng.Max-rng.Min), 0), 1)
	}

	barX := x + r.Theme.LabelWidth
	barWidth := width - r.Theme.LabelWidth - 50

	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawRectangle(barX, y+2, barWidth, r.Theme.BarHeight, r.Theme.BarBg)

	barColor := r.Theme.BarFill
	if ratio > 0.8 {
		barColor = r.Theme.BarFillHigh
	}
	rl.DrawRectangle(barX, y+2, int32(float32(barWidth)*ratio), r.Theme.BarHeight, barColor)

	rl.DrawText(fmt.Sprintf("%.2f", value), barX+barWidth+5, y, r.Theme.FontSize, r.Theme.ValueColor)

	return y + r.Theme.LineHeight + 2
}

// DrawSpacer adds vertical space and returns new Y.
func (r *Renderer) DrawSpacer(y int32, amount int32) int32 {
	return y + amount
}

// DrawField renders a field based on its descriptor.
func (r *Renderer) DrawField(x, y int32, fd FieldDescriptor, data any, width int32) int32 {
	switch fd.Widget {
	case WidgetText:
		var text string
		if fd.TextGetter != nil {
			text = fd.TextGetter(data)
		} else if fd.Getter != nil {
			text = fmt.Sprintf(fd.Format, fd.Getter(data))
		}
		return r.DrawLabelValue(x, y, fd.Label, text)

	case WidgetBar:
		value := float32(0)
		if fd.Getter != nil {
			value = fd.Getter(data)
		}
		return r.DrawBar(x, y, fd.Label, value, fd.Range, width)

	case WidgetSection:
		return r.DrawSectionHeader(x, y, fd.Label)

	case WidgetSpacer:
		return r.DrawSpacer(y, 6)
	}

	return y
}

// DrawSection renders a section with header and fields.
func (r *Renderer) DrawSection(x, y int32, sd SectionDescriptor, data any, width int32) int32 {
	if sd.Visible != nil && !sd.Visible(data) {
		return y
	}

	if sd.Title != "" {
		y = r.DrawSectionHeader(x, y, sd.Title)
	}

	for _, fd := range sd.Fields {
		if fd.Visible != nil && !fd.Visible(data) {
			continue
		}
		y = r.DrawField(x, y, fd, data, width)
	}

	return y + 4 // Small gap after section
}

// MeasurePanel returns the height DrawPanelDescriptor will use for data.
func (r *Renderer) MeasurePanel(pd PanelDescriptor, data any) int32 {
	h := r.Theme.Padding * 2
	if pd.Title != "" {
		h += r.Theme.LineHeight + 4
	}
	for _, sd := range pd.Sections {
		if sd.Visible != nil && !sd.Visible(data) {
			continue
		}
		if sd.Title != "" {
			h += r.Theme.LineHeight
		}
		for _, fd := range sd.Fields {
			if fd.Visible != nil && !fd.Visible(data) {
				continue
			}
			switch fd.Widget {
			case WidgetBar:
				h += r.Theme.LineHeight + 2
			case WidgetSpacer:
				h += 6
			default:
				h += r.Theme.LineHeight
			}
		}
		h += 4
	}
	return h
}

// DrawPanelDescriptor draws a whole panel at (x, y) and returns its bottom edge.
func (r *Renderer) DrawPanelDescriptor(x, y int32, pd PanelDescriptor, data any) int32 {
	r.DrawPanel(x, y, pd.Width, r.MeasurePanel(pd, data))

	inner := pd.Width - r.Theme.Padding*2
	cy := y + r.Theme.Padding
	if pd.Title != "" {
		rl.DrawText(pd.Title, x+r.Theme.Padding, cy, 16, rl.White)
		cy += r.Theme.LineHeight + 4
	}
	for _, sd := range pd.Sections {
		cy = r.DrawSection(x+r.Theme.Padding, cy, sd, data, inner)
	}
	return cy + r.Theme.Padding
}
