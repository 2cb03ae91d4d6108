package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"designsight-backend/internal/analysis"
	"designsight-backend/internal/database"
	"designsight-backend/internal/models"
	"designsight-backend/internal/realtime"
)

const previousAnalysisSummary = "Previous analysis found"

type ImageAnalyzer interface {
	Analyze(ctx context.Context, key string, width, height int) (*analysis.Result, error)
}

type AnalysisOutcome struct {
	Feedback []models.Feedback
	Summary  string
	// Existing is set when earlier AI feedback was returned instead of a new run.
	Existing bool
}

type AnalysisService struct {
	projects *ProjectService
	feedback FeedbackStore
	analyzer ImageAnalyzer
	events   EventPublisher
	logger   *slog.Logger
}

func NewAnalysisService(projects *ProjectService, feedback FeedbackStore, analyzer ImageAnalyzer, events EventPublisher, logger *slog.Logger) *AnalysisService {
	return &AnalysisService{
		projects: projects,
		feedback: feedback,
		analyzer: analyzer,
		events:   publisherOrNoop(events),
		logger:   logger,
	}
}

func aiFilter(projectID, imageID string) database.FeedbackFilter {
	ai := true
	return database.FeedbackFilter{ProjectID: projectID, ImageID: imageID, AIGenerated: &ai}
}

// Analyze runs AI analysis for one image at most once. If AI feedback already
// exists for the image it is returned unchanged.
func (s *AnalysisService) Analyze(ctx context.Context, projectID, imageID string) (*AnalysisOutcome, error) {
	_, img, err := s.projects.ResolveImage(ctx, projectID, imageID)
	if err != nil {
		return nil, err
	}

	existing, err := s.feedback.ListFeedback(ctx, aiFilter(projectID, imageID), false)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return &AnalysisOutcome{Feedback: existing, Summary: previousAnalysisSummary, Existing: true}, nil
	}

	s.events.PublishProjectEvent(projectID, realtime.EventAnalysisStarted,
		realtime.AnalysisStartedPayload(projectID, imageID))

	result, err := s.analyzer.Analyze(ctx, img.Filename, img.Width, img.Height)
	if err != nil {
		s.events.PublishProjectEvent(projectID, realtime.EventAnalysisFailed,
			realtime.AnalysisFailedPayload(projectID, imageID, err.Error()))
		if errors.Is(err, analysis.ErrImageUnavailable) {
			return nil, upstream("AI analysis failed", err)
		}
		return nil, err
	}

	saved, err := s.persist(ctx, projectID, imageID, result.Drafts)
	if err != nil {
		s.events.PublishProjectEvent(projectID, realtime.EventAnalysisFailed,
			realtime.AnalysisFailedPayload(projectID, imageID, err.Error()))
		return nil, err
	}

	s.logger.Info("analysis completed", "project_id", projectID, "image_id", imageID, "drafts", len(saved))
	s.events.PublishProjectEvent(projectID, realtime.EventAnalysisCompleted,
		realtime.AnalysisCompletedPayload(projectID, imageID, len(saved)))

	return &AnalysisOutcome{Feedback: saved, Summary: result.Summary}, nil
}

// persist inserts every draft concurrently. Inserts are independent: if one
// fails the others still land and nothing is rolled back.
func (s *AnalysisService) persist(ctx context.Context, projectID, imageID string, drafts []models.FeedbackDraft) ([]models.Feedback, error) {
	now := time.Now().UTC()
	items := make([]models.Feedback, len(drafts))
	for i, d := range drafts {
		items[i] = models.Feedback{
			ID:          uuid.NewString(),
			ProjectID:   projectID,
			ImageID:     imageID,
			Title:       d.Title,
			Description: d.Description,
			Category:    d.Category,
			Severity:    d.Severity,
			Roles:       d.Roles,
			Coordinates: d.Coordinates,
			AIGenerated: true,
			Status:      d.Status,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
	}

	var g errgroup.Group
	for i := range items {
		item := &items[i]
		g.Go(func() error {
			return s.feedback.CreateFeedback(ctx, item)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to save analysis feedback: %w", err)
	}
	return items, nil
}

// Results lists AI feedback for an image, oldest first.
func (s *AnalysisService) Results(ctx context.Context, projectID, imageID string) ([]models.Feedback, error) {
	return s.feedback.ListFeedback(ctx, aiFilter(projectID, imageID), true)
}
