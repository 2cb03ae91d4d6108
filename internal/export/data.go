package export

import (
	"fmt"
	"strings"
	"time"

	"designsight-backend/internal/models"
)

// Data is everything a report is built from.
type Data struct {
	Project    *models.Project
	Image      *models.Image
	Feedback   []models.Feedback
	ExportDate time.Time
	Role       models.Role
	Summary    models.ExportSummary
}

func NewData(project *models.Project, image *models.Image, feedback []models.Feedback, role models.Role, now time.Time) *Data {
	return &Data{
		Project:    project,
		Image:      image,
		Feedback:   feedback,
		ExportDate: now.UTC(),
		Role:       role,
		Summary:    Summarize(feedback),
	}
}

// ReportFilename names the PDF attachment.
func ReportFilename(projectName string, now time.Time) string {
	return fmt.Sprintf("designsight-report-%s-%s.pdf", safeName(projectName), now.UTC().Format("2006-01-02"))
}

// DataFilename names the JSON attachment.
func DataFilename(projectName string, now time.Time) string {
	return fmt.Sprintf("designsight-data-%s-%s.json", safeName(projectName), now.UTC().Format("2006-01-02"))
}

// safeName keeps the project name readable while stripping characters that
// would break a Content-Disposition header.
func safeName(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '"' || r == '\\' || r == '/' || r < 0x20 || r == 0x7f:
			return '_'
		}
		return r
	}, name)
}
