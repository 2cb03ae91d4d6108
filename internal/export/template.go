package export

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"math"
	"strings"
	"time"

	"designsight-backend/internal/models"
	"designsight-backend/internal/overlay"
)

//go:embed templates/*.html.tmpl
var templatesFS embed.FS

// ReportDisplayWidth is the overlay width that fits an A4 page with margins.
const ReportDisplayWidth = 720

var reportSeverityColors = map[models.Severity]string{
	models.SeverityHigh:   "#dc2626",
	models.SeverityMedium: "#d97706",
	models.SeverityLow:    "#16a34a",
}

func reportColor(s models.Severity) string {
	if c, ok := reportSeverityColors[s]; ok {
		return c
	}
	return "#3b82f6"
}

var reportTemplate = template.Must(template.New("report.html.tmpl").Funcs(template.FuncMap{
	"severityColor": reportColor,
	"severityBg":    func(s models.Severity) string { return reportColor(s) + "33" },
	"joinRoles": func(roles []models.Role) string {
		out := make([]string, len(roles))
		for i, r := range roles {
			out[i] = string(r)
		}
		return strings.Join(out, ", ")
	},
	"formatTime": func(t time.Time) string { return t.UTC().Format(time.RFC3339) },
}).ParseFS(templatesFS, "templates/report.html.tmpl"))

type OverlayRect struct {
	X        int
	Y        int
	Width    int
	Height   int
	Severity models.Severity
}

type OverlayView struct {
	ImageURL string
	Width    int
	Height   int
	Rects    []OverlayRect
}

type reportView struct {
	Project    *models.Project
	Image      *models.Image
	Feedback   []models.Feedback
	Role       models.Role
	Summary    models.ExportSummary
	ExportDate string
	Overlay    *OverlayView
}

// BuildOverlay scales the feedback boxes to ReportDisplayWidth, keeping the
// image's aspect ratio. It returns nil when the image has no known size.
func BuildOverlay(baseURL string, image *models.Image, items []models.Feedback) *OverlayView {
	if image == nil || image.Width <= 0 || image.Height <= 0 {
		return nil
	}

	scale := float64(ReportDisplayWidth) / float64(image.Width)
	displayHeight := float64(image.Height) * scale

	vp, err := overlay.NewViewport(ReportDisplayWidth, displayHeight, float64(image.Width), float64(image.Height))
	if err != nil {
		return nil
	}

	view := &OverlayView{
		ImageURL: fmt.Sprintf("%s/api/upload/image/%s/file", strings.TrimSuffix(baseURL, "/"), image.ID),
		Width:    ReportDisplayWidth,
		Height:   int(math.Round(displayHeight)),
		Rects:    make([]OverlayRect, 0, len(items)),
	}
	for _, item := range items {
		r := vp.ToScreen(item.Coordinates)
		view.Rects = append(view.Rects, OverlayRect{
			X:        int(math.Round(r.X)),
			Y:        int(math.Round(r.Y)),
			Width:    int(math.Round(r.Width)),
			Height:   int(math.Round(r.Height)),
			Severity: item.Severity,
		})
	}
	return view
}

// RenderHTML renders the printable report. baseURL is where the report's
// image proxy is reachable from the renderer.
func RenderHTML(d *Data, baseURL string) ([]byte, error) {
	view := reportView{
		Project:    d.Project,
		Image:      d.Image,
		Feedback:   d.Feedback,
		Role:       d.Role,
		Summary:    d.Summary,
		ExportDate: d.ExportDate.Format(time.RFC3339),
		Overlay:    BuildOverlay(baseURL, d.Image, d.Feedback),
	}

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("template generation failed: %w", err)
	}
	return buf.Bytes(), nil
}
