package export

import (
	"encoding/json"
	"fmt"
	"time"

	"designsight-backend/internal/models"
)

type Metadata struct {
	ExportDate    time.Time   `json:"exportDate"`
	ProjectName   string      `json:"projectName"`
	ImageName     string      `json:"imageName,omitempty"`
	Role          models.Role `json:"role,omitempty"`
	TotalFeedback int         `json:"totalFeedback"`
}

type ProjectDocument struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

type ImageDocument struct {
	ID           string    `json:"id"`
	OriginalName string    `json:"originalName"`
	URL          string    `json:"url"`
	Width        int       `json:"width"`
	Height       int       `json:"height"`
	UploadedAt   time.Time `json:"uploadedAt"`
}

type FeedbackDocument struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Category    models.Category    `json:"category"`
	Severity    models.Severity    `json:"severity"`
	Roles       []models.Role      `json:"roles"`
	Coordinates models.Coordinates `json:"coordinates"`
	AIGenerated bool               `json:"aiGenerated"`
	Status      models.Status      `json:"status"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

// Document is the JSON export layout.
type Document struct {
	Metadata Metadata             `json:"metadata"`
	Project  ProjectDocument      `json:"project"`
	Image    *ImageDocument       `json:"image"`
	Feedback []FeedbackDocument   `json:"feedback"`
	Summary  models.ExportSummary `json:"summary"`
}

func BuildDocument(d *Data) Document {
	doc := Document{
		Metadata: Metadata{
			ExportDate:    d.ExportDate,
			ProjectName:   d.Project.Name,
			Role:          d.Role,
			TotalFeedback: d.Summary.TotalFeedback,
		},
		Project: ProjectDocument{
			ID:          d.Project.ID,
			Name:        d.Project.Name,
			Description: d.Project.Description,
			CreatedAt:   d.Project.CreatedAt,
		},
		Feedback: make([]FeedbackDocument, 0, len(d.Feedback)),
		Summary:  d.Summary,
	}

	if d.Image != nil {
		doc.Metadata.ImageName = d.Image.OriginalName
		doc.Image = &ImageDocument{
			ID:           d.Image.ID,
			OriginalName: d.Image.OriginalName,
			URL:          d.Image.URL,
			Width:        d.Image.Width,
			Height:       d.Image.Height,
			UploadedAt:   d.Image.UploadedAt,
		}
	}

	for _, f := range d.Feedback {
		doc.Feedback = append(doc.Feedback, FeedbackDocument{
			ID:          f.ID,
			Title:       f.Title,
			Description: f.Description,
			Category:    f.Category,
			Severity:    f.Severity,
			Roles:       f.Roles,
			Coordinates: f.Coordinates,
			AIGenerated: f.AIGenerated,
			Status:      f.Status,
			CreatedAt:   f.CreatedAt,
			UpdatedAt:   f.UpdatedAt,
		})
	}

	return doc
}

// RenderJSON returns the indented JSON export.
func RenderJSON(d *Data) ([]byte, error) {
	out, err := json.MarshalIndent(BuildDocument(d), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("JSON generation failed: %w", err)
	}
	return out, nil
}
