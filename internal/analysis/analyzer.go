package analysis

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/disintegration/imaging"
	"golang.org/x/sync/errgroup"

	"designsight-backend/internal/models"
	"designsight-backend/internal/vision"
)

// ErrImageUnavailable means the image could not be fetched or decoded, so no
// annotation call was attempted.
var ErrImageUnavailable = errors.New("image unavailable for analysis")

type Annotator interface {
	DetectText(ctx context.Context, image []byte) ([]vision.TextAnnotation, error)
	LocalizeObjects(ctx context.Context, image []byte) ([]vision.ObjectAnnotation, error)
	DominantColors(ctx context.Context, image []byte) ([]vision.ColorInfo, error)
	SafeSearch(ctx context.Context, image []byte) (*vision.SafeSearchAnnotation, error)
}

type ImageSource interface {
	Download(ctx context.Context, key string) ([]byte, error)
}

type Result struct {
	Drafts  []models.FeedbackDraft
	Summary string
}

type Analyzer struct {
	annotator Annotator
	images    ImageSource
	logger    *slog.Logger
}

func NewAnalyzer(annotator Annotator, images ImageSource, logger *slog.Logger) *Analyzer {
	return &Analyzer{
		annotator: annotator,
		images:    images,
		logger:    logger,
	}
}

// Analyze downloads the stored image and runs the four annotation calls in
// parallel. A failing call contributes nothing; a failed download or decode
// fails the whole analysis.
func (a *Analyzer) Analyze(ctx context.Context, key string, width, height int) (*Result, error) {
	data, err := a.images.Download(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrImageUnavailable, err)
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: decode: %w", ErrImageUnavailable, err)
	}
	if width <= 0 || height <= 0 {
		width, height = img.Bounds().Dx(), img.Bounds().Dy()
	}

	var annotations Annotations
	var g errgroup.Group

	g.Go(func() error {
		text, err := a.annotator.DetectText(ctx, data)
		if err != nil {
			a.logger.Warn("text detection failed", "key", key, "error", err)
			return nil
		}
		annotations.Text = text
		return nil
	})
	g.Go(func() error {
		objects, err := a.annotator.LocalizeObjects(ctx, data)
		if err != nil {
			a.logger.Warn("object localization failed", "key", key, "error", err)
			return nil
		}
		annotations.Objects = objects
		return nil
	})
	g.Go(func() error {
		colors, err := a.annotator.DominantColors(ctx, data)
		if err != nil {
			a.logger.Warn("color analysis failed", "key", key, "error", err)
			return nil
		}
		annotations.Colors = colors
		return nil
	})
	g.Go(func() error {
		safe, err := a.annotator.SafeSearch(ctx, data)
		if err != nil {
			a.logger.Warn("safe search failed", "key", key, "error", err)
			return nil
		}
		annotations.SafeSearch = safe
		return nil
	})

	_ = g.Wait()

	drafts, summary := Synthesize(annotations, width, height)
	return &Result{Drafts: drafts, Summary: summary}, nil
}
