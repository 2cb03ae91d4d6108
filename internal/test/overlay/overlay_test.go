package overlay_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"designsight-backend/internal/models"
	"designsight-backend/internal/overlay"
)

func item(id string, sev models.Severity, x, y, w, h float64) models.Feedback {
	return models.Feedback{ID: id, Severity: sev, Coordinates: models.Coordinates{X: x, Y: y, Width: w, Height: h}}
}

func TestNewViewport_RejectsNonPositive(t *testing.T) {
	cases := [][4]float64{
		{0, 100, 100, 100},
		{100, -1, 100, 100},
		{100, 100, 0, 100},
		{100, 100, 100, 0},
	}
	for _, c := range cases {
		_, err := overlay.NewViewport(c[0], c[1], c[2], c[3])
		assert.ErrorIs(t, err, overlay.ErrInvalidDimensions)
	}
}

func TestNewViewport_RejectsNonFinite(t *testing.T) {
	for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := overlay.NewViewport(bad, 100, 1000, 1000)
		assert.ErrorIs(t, err, overlay.ErrInvalidDimensions)

		_, err = overlay.NewViewport(100, bad, 1000, 1000)
		assert.ErrorIs(t, err, overlay.ErrInvalidDimensions)

		_, err = overlay.NewViewport(100, 100, bad, 1000)
		assert.ErrorIs(t, err, overlay.ErrInvalidDimensions)
	}
}

func TestViewport_ToScreenNonUniform(t *testing.T) {
	vp, err := overlay.NewViewport(960, 270, 1920, 1080)
	require.NoError(t, err)

	assert.Equal(t, 0.5, vp.ScaleX())
	assert.Equal(t, 0.25, vp.ScaleY())

	r := vp.ToScreen(models.Coordinates{X: 100, Y: 200, Width: 300, Height: 400})
	assert.Equal(t, overlay.Rect{X: 50, Y: 50, Width: 150, Height: 100}, r)
}

func TestViewport_RoundTrip(t *testing.T) {
	vp, err := overlay.NewViewport(800, 450, 1920, 1080)
	require.NoError(t, err)

	r := vp.ToScreen(models.Coordinates{X: 480, Y: 270, Width: 10, Height: 10})
	p := vp.ToImage(r.X, r.Y)

	assert.InDelta(t, 480, p.X, 1e-9)
	assert.InDelta(t, 270, p.Y, 1e-9)
}

func TestViewport_RegionAt(t *testing.T) {
	vp, err := overlay.NewViewport(500, 500, 1000, 1000)
	require.NoError(t, err)

	region := vp.RegionAt(100, 50)

	assert.Equal(t, models.Coordinates{X: 150, Y: 75, Width: 100, Height: 50}, region)
	assert.True(t, region.Valid())
}

func TestViewport_RegionAtNearEdgeIsNotClamped(t *testing.T) {
	vp, err := overlay.NewViewport(1000, 1000, 1000, 1000)
	require.NoError(t, err)

	region := vp.RegionAt(10, 10)

	assert.Equal(t, -40.0, region.X)
	assert.Equal(t, -15.0, region.Y)
}

func TestViewport_HitTestFirstInListOrder(t *testing.T) {
	vp, err := overlay.NewViewport(1000, 1000, 1000, 1000)
	require.NoError(t, err)

	items := []models.Feedback{
		item("a", models.SeverityLow, 0, 0, 10, 10),
		item("b", models.SeverityHigh, 50, 50, 100, 100),
		item("c", models.SeverityMedium, 60, 60, 10, 10),
	}

	assert.Equal(t, 1, vp.HitTest(items, 65, 65))
	assert.Equal(t, 0, vp.HitTest(items, 10, 10), "edges are inclusive")
	assert.Equal(t, -1, vp.HitTest(items, 500, 500))
}

func TestViewport_Marks(t *testing.T) {
	vp, err := overlay.NewViewport(500, 500, 1000, 1000)
	require.NoError(t, err)

	items := []models.Feedback{
		item("a", models.SeverityHigh, 0, 0, 100, 100),
		item("b", models.SeverityMedium, 100, 100, 50, 50),
		item("c", models.SeverityLow, 200, 200, 20, 20),
		item("d", models.Severity("unknown"), 0, 0, 2, 2),
	}

	marks := vp.Marks(items, "b")

	require.Len(t, marks, 4)
	assert.Equal(t, 1, marks[0].Label)
	assert.Equal(t, 4, marks[3].Label)

	assert.Equal(t, "#ef4444", marks[0].Color)
	assert.Equal(t, "#ef444420", marks[0].Fill)
	assert.Equal(t, "#f59e0b", marks[1].Color)
	assert.Equal(t, "#10b981", marks[2].Color)
	assert.Equal(t, "#3b82f6", marks[3].Color)

	assert.Equal(t, 2, marks[0].StrokeWidth)
	assert.False(t, marks[0].Glow)
	assert.True(t, marks[1].Selected)
	assert.True(t, marks[1].Glow)
	assert.Equal(t, 3, marks[1].StrokeWidth)
	assert.Equal(t, overlay.Rect{X: 50, Y: 50, Width: 25, Height: 25}, marks[1].Rect)
}

func TestRect_Contains(t *testing.T) {
	r := overlay.Rect{X: 10, Y: 10, Width: 5, Height: 5}

	assert.True(t, r.Contains(10, 10))
	assert.True(t, r.Contains(15, 15))
	assert.False(t, r.Contains(15.01, 12))
	assert.False(t, r.Contains(9.99, 12))
}
