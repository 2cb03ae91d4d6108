package models

import "time"

// Response is the success envelope shared by every JSON endpoint.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Count   *int        `json:"count,omitempty"`
	Message string      `json:"message,omitempty"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type HealthResponse struct {
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	Environment string    `json:"environment"`
}

type UploadResponse struct {
	Image   Image    `json:"image"`
	Project *Project `json:"project"`
}

type ImageURLResponse struct {
	ImageURL string `json:"imageUrl"`
	Image    Image  `json:"image"`
}

type AnalysisResponse struct {
	Feedback []Feedback `json:"feedback"`
	Summary  string     `json:"summary"`
}

type ExportSummary struct {
	TotalFeedback int            `json:"totalFeedback"`
	ByCategory    map[string]int `json:"byCategory"`
	BySeverity    map[string]int `json:"bySeverity"`
	ByStatus      map[string]int `json:"byStatus"`
}

type PreviewProject struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type PreviewImage struct {
	ID           string `json:"id"`
	OriginalName string `json:"originalName"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
}

type ExportPreview struct {
	Project        PreviewProject `json:"project"`
	Image          *PreviewImage  `json:"image"`
	FeedbackCount  int            `json:"feedbackCount"`
	Summary        ExportSummary  `json:"summary"`
	AvailableRoles []Role         `json:"availableRoles"`
}

type MissingImage struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	Reason   string `json:"reason"`
}

type ProjectMissingImages struct {
	ProjectID   string         `json:"projectId"`
	ProjectName string         `json:"projectName"`
	Missing     []MissingImage `json:"missing"`
}

type VerifyImagesReport struct {
	Bucket              string                 `json:"bucket"`
	MissingTotal        int                    `json:"missingTotal"`
	RemovedTotal        int                    `json:"removedTotal"`
	ProjectsWithMissing int                    `json:"projectsWithMissing"`
	Details             []ProjectMissingImages `json:"details"`
}

type OverlayClickResponse struct {
	Region Coordinates `json:"region"`
	Hit    *Feedback   `json:"hit"`
}
