package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"designsight-backend/internal/database"
	"designsight-backend/internal/models"
	"designsight-backend/internal/realtime"
)

type FeedbackService struct {
	feedback FeedbackStore
	events   EventPublisher
	logger   *slog.Logger
}

func NewFeedbackService(feedback FeedbackStore, events EventPublisher, logger *slog.Logger) *FeedbackService {
	return &FeedbackService{
		feedback: feedback,
		events:   publisherOrNoop(events),
		logger:   logger,
	}
}

// Create stores human-authored feedback. The project and image references
// are not checked.
func (s *FeedbackService) Create(ctx context.Context, req models.CreateFeedbackRequest) (*models.Feedback, error) {
	if err := req.Normalize(); err != nil {
		return nil, invalid(err)
	}

	now := time.Now().UTC()
	item := &models.Feedback{
		ID:          uuid.NewString(),
		ProjectID:   req.ProjectID,
		ImageID:     req.ImageID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Severity:    req.Severity,
		Roles:       req.Roles,
		Coordinates: req.Coordinates,
		AIGenerated: false,
		Status:      models.StatusOpen,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.feedback.CreateFeedback(ctx, item); err != nil {
		return nil, err
	}

	s.events.PublishProjectEvent(item.ProjectID, realtime.EventFeedbackCreated,
		realtime.FeedbackPayload(item.ProjectID, item.ImageID, item.ID))
	return item, nil
}

func (s *FeedbackService) Get(ctx context.Context, id string) (*models.Feedback, error) {
	item, err := s.feedback.GetFeedback(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, ErrFeedbackNotFound)
	}
	return item, nil
}

// List returns feedback newest first. Unknown enum values in the filter are
// rejected rather than silently matching nothing.
func (s *FeedbackService) List(ctx context.Context, filter database.FeedbackFilter) ([]models.Feedback, error) {
	if err := validateFilter(filter); err != nil {
		return nil, invalid(err)
	}
	return s.feedback.ListFeedback(ctx, filter, false)
}

func validateFilter(f database.FeedbackFilter) error {
	switch {
	case f.Category != "" && !f.Category.Valid():
		return errors.New("invalid category filter")
	case f.Severity != "" && !f.Severity.Valid():
		return errors.New("invalid severity filter")
	case f.Status != "" && !f.Status.Valid():
		return errors.New("invalid status filter")
	case f.Role != "" && !f.Role.Valid():
		return errors.New("invalid role filter")
	}
	return nil
}

// Update applies a partial update. An empty update returns the item unchanged.
func (s *FeedbackService) Update(ctx context.Context, id string, req models.UpdateFeedbackRequest) (*models.Feedback, error) {
	if err := req.Normalize(); err != nil {
		return nil, invalid(err)
	}
	if req.Empty() {
		return s.Get(ctx, id)
	}

	item, err := s.feedback.UpdateFeedback(ctx, id, req)
	if err != nil {
		return nil, notFoundAs(err, ErrFeedbackNotFound)
	}

	s.events.PublishProjectEvent(item.ProjectID, realtime.EventFeedbackUpdated,
		realtime.FeedbackPayload(item.ProjectID, item.ImageID, item.ID))
	return item, nil
}

// Delete removes the item only; its comments are left in place.
func (s *FeedbackService) Delete(ctx context.Context, id string) error {
	item, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.feedback.DeleteFeedback(ctx, id); err != nil {
		return notFoundAs(err, ErrFeedbackNotFound)
	}

	s.events.PublishProjectEvent(item.ProjectID, realtime.EventFeedbackDeleted,
		realtime.FeedbackPayload(item.ProjectID, item.ImageID, item.ID))
	return nil
}
