package services

import (
	"context"
	"log/slog"
	"time"

	"designsight-backend/internal/database"
	"designsight-backend/internal/export"
	"designsight-backend/internal/models"
)

type ExportService struct {
	projects *ProjectService
	feedback FeedbackStore
	renderer PDFRenderer
	baseURL  string
	logger   *slog.Logger
}

func NewExportService(projects *ProjectService, feedback FeedbackStore, renderer PDFRenderer, baseURL string, logger *slog.Logger) *ExportService {
	return &ExportService{
		projects: projects,
		feedback: feedback,
		renderer: renderer,
		baseURL:  baseURL,
		logger:   logger,
	}
}

// Artifact is a rendered export ready to be sent as an attachment.
type Artifact struct {
	Filename    string
	ContentType string
	Body        []byte
}

// collect loads the project, optional image and matching feedback, newest first.
func (s *ExportService) collect(ctx context.Context, req models.ExportRequest) (*export.Data, error) {
	if err := req.Normalize(); err != nil {
		return nil, invalid(err)
	}

	project, err := s.projects.Get(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}

	var image *models.Image
	if req.ImageID != "" {
		img, ok := project.FindImage(req.ImageID)
		if !ok {
			return nil, ErrImageNotFound
		}
		image = &img
	}

	items, err := s.feedback.ListFeedback(ctx, database.FeedbackFilter{
		ProjectID: req.ProjectID,
		ImageID:   req.ImageID,
		Role:      req.Role,
	}, false)
	if err != nil {
		return nil, err
	}

	return export.NewData(project, image, items, req.Role, time.Now()), nil
}

func (s *ExportService) JSON(ctx context.Context, req models.ExportRequest) (*Artifact, error) {
	data, err := s.collect(ctx, req)
	if err != nil {
		return nil, err
	}
	body, err := export.RenderJSON(data)
	if err != nil {
		return nil, err
	}
	return &Artifact{
		Filename:    export.DataFilename(data.Project.Name, data.ExportDate),
		ContentType: "application/json",
		Body:        body,
	}, nil
}

func (s *ExportService) PDF(ctx context.Context, req models.ExportRequest) (*Artifact, error) {
	data, err := s.collect(ctx, req)
	if err != nil {
		return nil, err
	}
	html, err := export.RenderHTML(data, s.baseURL)
	if err != nil {
		return nil, err
	}
	if s.renderer == nil {
		return nil, upstream("render pdf", errRendererUnavailable)
	}
	body, err := s.renderer.Render(ctx, html)
	if err != nil {
		s.logger.Error("pdf generation failed", "project_id", data.Project.ID, "error", err)
		return nil, upstream("render pdf", err)
	}
	return &Artifact{
		Filename:    export.ReportFilename(data.Project.Name, data.ExportDate),
		ContentType: "application/pdf",
		Body:        body,
	}, nil
}

func (s *ExportService) Preview(ctx context.Context, req models.ExportRequest) (*models.ExportPreview, error) {
	data, err := s.collect(ctx, req)
	if err != nil {
		return nil, err
	}

	preview := &models.ExportPreview{
		Project: models.PreviewProject{
			ID:          data.Project.ID,
			Name:        data.Project.Name,
			Description: data.Project.Description,
		},
		FeedbackCount:  len(data.Feedback),
		Summary:        data.Summary,
		AvailableRoles: models.AllRoles,
	}
	if data.Image != nil {
		preview.Image = &models.PreviewImage{
			ID:           data.Image.ID,
			OriginalName: data.Image.OriginalName,
			Width:        data.Image.Width,
			Height:       data.Image.Height,
		}
	}
	return preview, nil
}
