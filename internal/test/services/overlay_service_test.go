package services_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"designsight-backend/internal/database"
	"designsight-backend/internal/models"
	"designsight-backend/internal/services"
)

func overlayFixture() *services.OverlayService {
	store := newMemStore()
	seedProject(store, "p1", models.Image{ID: "i1", Width: 1000, Height: 1000})
	base := time.Now().UTC()
	store.feedback["big"] = models.Feedback{ID: "big", ProjectID: "p1", ImageID: "i1", Severity: models.SeverityLow, Category: models.CategoryUIUXPatterns, Coordinates: models.Coordinates{X: 0, Y: 0, Width: 400, Height: 400}, CreatedAt: base}
	store.feedback["small"] = models.Feedback{ID: "small", ProjectID: "p1", ImageID: "i1", Severity: models.SeverityHigh, Category: models.CategoryAccessibility, Coordinates: models.Coordinates{X: 100, Y: 100, Width: 50, Height: 50}, CreatedAt: base.Add(time.Minute)}
	store.feedback["other"] = models.Feedback{ID: "other", ProjectID: "p1", ImageID: "i2", Severity: models.SeverityHigh, Coordinates: models.Coordinates{X: 0, Y: 0, Width: 10, Height: 10}, CreatedAt: base}
	projects := services.NewProjectService(store, discardLogger())
	return services.NewOverlayService(projects, store)
}

func TestOverlayService_Marks(t *testing.T) {
	svc := overlayFixture()

	marks, err := svc.Marks(context.Background(), services.OverlayQuery{
		ProjectID: "p1", ImageID: "i1", DisplayWidth: 500, DisplayHeight: 500,
	}, "small")
	require.NoError(t, err)

	require.Len(t, marks, 2)
	assert.Equal(t, "small", marks[0].FeedbackID)
	assert.True(t, marks[0].Selected)
	assert.Equal(t, 50.0, marks[0].Rect.X)
	assert.Equal(t, 25.0, marks[0].Rect.Width)
	assert.False(t, marks[1].Selected)
}

func TestOverlayService_MarksFiltered(t *testing.T) {
	svc := overlayFixture()

	marks, err := svc.Marks(context.Background(), services.OverlayQuery{
		ProjectID: "p1", ImageID: "i1", DisplayWidth: 500, DisplayHeight: 500,
		Filter: database.FeedbackFilter{Category: models.CategoryUIUXPatterns, ImageID: "ignored"},
	}, "")
	require.NoError(t, err)
	require.Len(t, marks, 1)
	assert.Equal(t, "big", marks[0].FeedbackID)
}

func TestOverlayService_ClickHitsNewestFirst(t *testing.T) {
	svc := overlayFixture()

	resp, err := svc.Click(context.Background(), services.OverlayQuery{
		ProjectID: "p1", ImageID: "i1", DisplayWidth: 500, DisplayHeight: 500,
	}, 60, 60)
	require.NoError(t, err)

	require.NotNil(t, resp.Hit)
	assert.Equal(t, "small", resp.Hit.ID)
	assert.Equal(t, models.Coordinates{X: 70, Y: 95, Width: 100, Height: 50}, resp.Region)
}

func TestOverlayService_ClickMiss(t *testing.T) {
	svc := overlayFixture()

	resp, err := svc.Click(context.Background(), services.OverlayQuery{
		ProjectID: "p1", ImageID: "i1", DisplayWidth: 500, DisplayHeight: 500,
	}, 400, 400)
	require.NoError(t, err)
	assert.Nil(t, resp.Hit)
}

func TestOverlayService_Errors(t *testing.T) {
	svc := overlayFixture()
	ctx := context.Background()

	_, err := svc.Marks(ctx, services.OverlayQuery{ProjectID: "p1", ImageID: "i1", DisplayWidth: 0, DisplayHeight: 500}, "")
	assert.ErrorIs(t, err, services.ErrInvalidInput)

	_, err = svc.Marks(ctx, services.OverlayQuery{ProjectID: "p1", ImageID: "i1", DisplayWidth: math.NaN(), DisplayHeight: 500}, "")
	assert.ErrorIs(t, err, services.ErrInvalidInput)

	_, err = svc.Click(ctx, services.OverlayQuery{ProjectID: "p1", ImageID: "i1", DisplayWidth: 500, DisplayHeight: math.Inf(1)}, 10, 10)
	assert.ErrorIs(t, err, services.ErrInvalidInput)

	_, err = svc.Marks(ctx, services.OverlayQuery{ProjectID: "p1", ImageID: "nope", DisplayWidth: 10, DisplayHeight: 10}, "")
	assert.ErrorIs(t, err, services.ErrImageNotFound)

	_, err = svc.Marks(ctx, services.OverlayQuery{
		ProjectID: "p1", ImageID: "i1", DisplayWidth: 10, DisplayHeight: 10,
		Filter: database.FeedbackFilter{Severity: "urgent"},
	}, "")
	assert.ErrorIs(t, err, services.ErrInvalidInput)
}
