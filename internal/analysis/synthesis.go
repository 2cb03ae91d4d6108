package analysis

import (
	"fmt"
	"math"
	"strings"

	"designsight-backend/internal/models"
	"designsight-backend/internal/vision"
)

const (
	// FallbackDimension stands in for an unknown image width or height.
	FallbackDimension = 1000

	smallTextMinWidth  = 50
	smallTextMinHeight = 12
	buttonGapThreshold = 0.02
	darkBrightness     = 0.3
	lightBrightness    = 0.7
	channelScale       = 255.0
)

// Annotations is everything the vision provider reported for one image.
// SafeSearch is carried but no rule reads it yet.
type Annotations struct {
	Text       []vision.TextAnnotation
	Objects    []vision.ObjectAnnotation
	Colors     []vision.ColorInfo
	SafeSearch *vision.SafeSearchAnnotation
}

var placeholderBox = models.Coordinates{X: 0, Y: 0, Width: 100, Height: 100}

// Synthesize applies the heuristic rules in order (text, objects, colors,
// general structure) and returns the drafts with a one-line summary.
// width and height are the stored image's pixel size; non-positive values
// fall back to FallbackDimension.
func Synthesize(a Annotations, width, height int) ([]models.FeedbackDraft, string) {
	if width <= 0 {
		width = FallbackDimension
	}
	if height <= 0 {
		height = FallbackDimension
	}

	drafts := make([]models.FeedbackDraft, 0, 4)
	drafts = append(drafts, smallTextDrafts(a.Text)...)
	drafts = append(drafts, buttonSpacingDrafts(a.Objects, float64(width), float64(height))...)
	drafts = append(drafts, contrastDrafts(a.Colors)...)
	if len(a.Text) > 0 && len(a.Objects) > 0 {
		drafts = append(drafts, newDraft(
			"Design Structure Analysis",
			"The design contains both text and interactive elements. Consider reviewing the visual hierarchy to ensure important information stands out and the user flow is intuitive.",
			models.CategoryVisualHierarchy, models.SeverityLow,
			[]models.Role{models.RoleDesigner, models.RoleReviewer},
			placeholderBox,
		))
	}

	return drafts, Summary(drafts)
}

// Summary counts drafts per severity.
func Summary(drafts []models.FeedbackDraft) string {
	var high, medium, low int
	for _, d := range drafts {
		switch d.Severity {
		case models.SeverityHigh:
			high++
		case models.SeverityMedium:
			medium++
		case models.SeverityLow:
			low++
		}
	}
	return fmt.Sprintf("Design analysis completed. Found %d high priority, %d medium priority, and %d low priority issues. Focus on accessibility and visual hierarchy improvements.", high, medium, low)
}

// smallTextDrafts emits at most one draft, anchored at the first small region.
func smallTextDrafts(regions []vision.TextAnnotation) []models.FeedbackDraft {
	for _, region := range regions {
		v := region.BoundingPoly.Vertices
		if len(v) < 4 {
			continue
		}
		w := math.Abs(v[1].X - v[0].X)
		h := math.Abs(v[3].Y - v[0].Y)
		if w >= smallTextMinWidth && h >= smallTextMinHeight {
			continue
		}
		return []models.FeedbackDraft{newDraft(
			"Small Text Detected",
			"Some text elements appear to be very small and may be difficult to read on mobile devices or for users with visual impairments. Consider increasing font sizes to at least 16px for body text.",
			models.CategoryAccessibility, models.SeverityMedium,
			[]models.Role{models.RoleDesigner, models.RoleDeveloper},
			models.Coordinates{
				X:      math.Max(0, v[0].X),
				Y:      math.Max(0, v[0].Y),
				Width:  math.Max(1, w),
				Height: math.Max(1, h),
			},
		)}
	}
	return nil
}

func isButtonLike(name string) bool {
	n := strings.ToLower(name)
	return strings.Contains(n, "button") || strings.Contains(n, "click")
}

// buttonSpacingDrafts checks each adjacent pair of button-like objects, in
// input order, for a vertical gap under the threshold. A pair is skipped when
// either side lacks a full box.
func buttonSpacingDrafts(objects []vision.ObjectAnnotation, width, height float64) []models.FeedbackDraft {
	buttons := make([][]vision.Vertex, 0, len(objects))
	for _, obj := range objects {
		if isButtonLike(obj.Name) {
			buttons = append(buttons, obj.BoundingPoly.NormalizedVertices)
		}
	}

	var drafts []models.FeedbackDraft
	for i := 0; i+1 < len(buttons); i++ {
		first, second := buttons[i], buttons[i+1]
		if len(first) < 4 || len(second) < 4 {
			continue
		}

		gap := math.Abs(second[0].Y - first[2].Y)
		if gap >= buttonGapThreshold {
			continue
		}

		minX := math.Min(first[0].X, second[0].X)
		minY := math.Min(first[0].Y, second[0].Y)
		maxX := math.Max(first[1].X, second[1].X)
		maxY := math.Max(first[2].Y, second[2].Y)

		drafts = append(drafts, newDraft(
			"Button Spacing Issue",
			"Buttons appear to be too close together, which may cause accidental clicks on mobile devices. Consider increasing spacing between interactive elements.",
			models.CategoryUIUXPatterns, models.SeverityMedium,
			[]models.Role{models.RoleDesigner, models.RoleDeveloper},
			models.Coordinates{
				X:      math.Max(0, math.Round(minX*width)),
				Y:      math.Max(0, math.Round(minY*height)),
				Width:  math.Max(1, math.Round((maxX-minX)*width)),
				Height: math.Max(1, math.Round((maxY-minY)*height)),
			},
		))
	}
	return drafts
}

// Brightness is the mean of the three channels scaled to [0,1].
func Brightness(c vision.Color) float64 {
	return (c.Red + c.Green + c.Blue) / 3 / channelScale
}

func contrastDrafts(colors []vision.ColorInfo) []models.FeedbackDraft {
	var dark, light bool
	for _, c := range colors {
		b := Brightness(c.Color)
		if b < darkBrightness {
			dark = true
		}
		if b > lightBrightness {
			light = true
		}
	}
	if !dark || !light {
		return nil
	}
	return []models.FeedbackDraft{newDraft(
		"Color Contrast Review Needed",
		"The design contains both very dark and very light colors. Please verify that text has sufficient contrast ratios (4.5:1 for normal text, 3:1 for large text) to meet WCAG accessibility guidelines.",
		models.CategoryAccessibility, models.SeverityHigh,
		[]models.Role{models.RoleDesigner, models.RoleDeveloper},
		placeholderBox,
	)}
}

func newDraft(title, description string, category models.Category, severity models.Severity, roles []models.Role, box models.Coordinates) models.FeedbackDraft {
	return models.FeedbackDraft{
		Title:       title,
		Description: description,
		Category:    category,
		Severity:    severity,
		Roles:       roles,
		Coordinates: box,
		AIGenerated: true,
		Status:      models.StatusOpen,
	}
}
