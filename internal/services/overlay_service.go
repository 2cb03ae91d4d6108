package services

import (
	"context"
	"errors"

	"designsight-backend/internal/database"
	"designsight-backend/internal/models"
	"designsight-backend/internal/overlay"
)

type OverlayService struct {
	projects *ProjectService
	feedback FeedbackStore
}

func NewOverlayService(projects *ProjectService, feedback FeedbackStore) *OverlayService {
	return &OverlayService{projects: projects, feedback: feedback}
}

type OverlayQuery struct {
	ProjectID     string
	ImageID       string
	DisplayWidth  float64
	DisplayHeight float64
	Filter        database.FeedbackFilter
}

func (s *OverlayService) viewport(ctx context.Context, q OverlayQuery) (*overlay.Viewport, []models.Feedback, error) {
	_, img, err := s.projects.ResolveImage(ctx, q.ProjectID, q.ImageID)
	if err != nil {
		return nil, nil, err
	}

	vp, err := overlay.NewViewport(q.DisplayWidth, q.DisplayHeight, float64(img.Width), float64(img.Height))
	if err != nil {
		if errors.Is(err, overlay.ErrInvalidDimensions) {
			return nil, nil, invalid(err)
		}
		return nil, nil, err
	}

	filter := q.Filter
	filter.ProjectID = q.ProjectID
	filter.ImageID = q.ImageID
	if err := validateFilter(filter); err != nil {
		return nil, nil, invalid(err)
	}

	items, err := s.feedback.ListFeedback(ctx, filter, false)
	if err != nil {
		return nil, nil, err
	}
	return vp, items, nil
}

// Marks lays out the filtered feedback for one image at the given display size.
func (s *OverlayService) Marks(ctx context.Context, q OverlayQuery, selectedID string) ([]overlay.Mark, error) {
	vp, items, err := s.viewport(ctx, q)
	if err != nil {
		return nil, err
	}
	return vp.Marks(items, selectedID), nil
}

// Click resolves a display click into the default new-feedback region and the
// first listed item under the point, if any.
func (s *OverlayService) Click(ctx context.Context, q OverlayQuery, x, y float64) (*models.OverlayClickResponse, error) {
	vp, items, err := s.viewport(ctx, q)
	if err != nil {
		return nil, err
	}

	resp := &models.OverlayClickResponse{Region: vp.RegionAt(x, y)}
	if i := vp.HitTest(items, x, y); i >= 0 {
		resp.Hit = &items[i]
	}
	return resp, nil
}
