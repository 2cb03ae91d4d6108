// Package overlay maps feedback boxes between stored-image pixel space and an
// on-screen display box.
package overlay

import (
	"errors"
	"math"

	"designsight-backend/internal/models"
)

var ErrInvalidDimensions = errors.New("natural and display dimensions must be finite and positive")

const (
	// NewRegionWidth and NewRegionHeight size the box created from a click.
	NewRegionWidth  = 100
	NewRegionHeight = 50

	strokeWidth         = 2
	selectedStrokeWidth = 3
	fillAlphaSuffix     = "20"
)

var severityColors = map[models.Severity]string{
	models.SeverityHigh:   "#ef4444",
	models.SeverityMedium: "#f59e0b",
	models.SeverityLow:    "#10b981",
}

const defaultColor = "#3b82f6"

// SeverityColor returns the stroke color for a severity.
func SeverityColor(s models.Severity) string {
	if c, ok := severityColors[s]; ok {
		return c
	}
	return defaultColor
}

type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Contains is inclusive on every edge.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width && y >= r.Y && y <= r.Y+r.Height
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Mark is one drawable feedback box, in display coordinates.
type Mark struct {
	FeedbackID  string          `json:"feedbackId"`
	Label       int             `json:"label"`
	Rect        Rect            `json:"rect"`
	Severity    models.Severity `json:"severity"`
	Color       string          `json:"color"`
	Fill        string          `json:"fill"`
	StrokeWidth int             `json:"strokeWidth"`
	Glow        bool            `json:"glow"`
	Selected    bool            `json:"selected"`
}

// Viewport scales each axis independently, so the display box need not keep
// the image's aspect ratio.
type Viewport struct {
	displayWidth  float64
	displayHeight float64
	naturalWidth  float64
	naturalHeight float64
}

func NewViewport(displayWidth, displayHeight, naturalWidth, naturalHeight float64) (*Viewport, error) {
	for _, d := range []float64{displayWidth, displayHeight, naturalWidth, naturalHeight} {
		if !(d > 0) || math.IsInf(d, 0) {
			return nil, ErrInvalidDimensions
		}
	}
	return &Viewport{
		displayWidth:  displayWidth,
		displayHeight: displayHeight,
		naturalWidth:  naturalWidth,
		naturalHeight: naturalHeight,
	}, nil
}

func (v *Viewport) ScaleX() float64 { return v.displayWidth / v.naturalWidth }
func (v *Viewport) ScaleY() float64 { return v.displayHeight / v.naturalHeight }

// ToScreen maps a stored box to display coordinates.
func (v *Viewport) ToScreen(c models.Coordinates) Rect {
	sx, sy := v.ScaleX(), v.ScaleY()
	return Rect{
		X:      c.X * sx,
		Y:      c.Y * sy,
		Width:  c.Width * sx,
		Height: c.Height * sy,
	}
}

// ToImage maps a display point back to image pixels.
func (v *Viewport) ToImage(x, y float64) Point {
	return Point{
		X: x * v.naturalWidth / v.displayWidth,
		Y: y * v.naturalHeight / v.displayHeight,
	}
}

// RegionAt builds the default new-feedback box centred on a display click.
// The box is not clamped to the image bounds.
func (v *Viewport) RegionAt(x, y float64) models.Coordinates {
	p := v.ToImage(x, y)
	return models.Coordinates{
		X:      p.X - NewRegionWidth/2,
		Y:      p.Y - NewRegionHeight/2,
		Width:  NewRegionWidth,
		Height: NewRegionHeight,
	}
}

// HitTest returns the index of the first item whose mapped box contains the
// display point, or -1.
func (v *Viewport) HitTest(items []models.Feedback, x, y float64) int {
	for i := range items {
		if v.ToScreen(items[i].Coordinates).Contains(x, y) {
			return i
		}
	}
	return -1
}

// Marks lays out items in draw order: earlier items first, so later ones
// paint on top. Labels are 1-based positions in items.
func (v *Viewport) Marks(items []models.Feedback, selectedID string) []Mark {
	marks := make([]Mark, 0, len(items))
	for i, item := range items {
		color := SeverityColor(item.Severity)
		selected := selectedID != "" && item.ID == selectedID

		stroke := strokeWidth
		if selected {
			stroke = selectedStrokeWidth
		}

		marks = append(marks, Mark{
			FeedbackID:  item.ID,
			Label:       i + 1,
			Rect:        v.ToScreen(item.Coordinates),
			Severity:    item.Severity,
			Color:       color,
			Fill:        color + fillAlphaSuffix,
			StrokeWidth: stroke,
			Glow:        selected,
			Selected:    selected,
		})
	}
	return marks
}
