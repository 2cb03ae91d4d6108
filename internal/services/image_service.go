package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"designsight-backend/internal/models"
	"designsight-backend/internal/realtime"
	"designsight-backend/internal/supabase"
)

const (
	MaxImageWidth  = 1920
	MaxImageHeight = 1080
	JPEGQuality    = 90
	storedMimeType = "image/jpeg"
)

type ImageService struct {
	projects      ProjectStore
	blobs         BlobStore
	events        EventPublisher
	maxBytes      int64
	signedURLLife time.Duration
	logger        *slog.Logger
}

func NewImageService(projects ProjectStore, blobs BlobStore, events EventPublisher, maxBytes int64, signedURLLife time.Duration, logger *slog.Logger) *ImageService {
	return &ImageService{
		projects:      projects,
		blobs:         blobs,
		events:        publisherOrNoop(events),
		maxBytes:      maxBytes,
		signedURLLife: signedURLLife,
		logger:        logger,
	}
}

func (s *ImageService) MaxBytes() int64 {
	return s.maxBytes
}

// Resize fits img inside MaxImageWidth x MaxImageHeight, preserving aspect
// ratio and never enlarging, then re-encodes it as JPEG.
func Resize(img image.Image) ([]byte, int, int, error) {
	fitted := imaging.Fit(img, MaxImageWidth, MaxImageHeight, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, fitted, imaging.JPEG, imaging.JPEGQuality(JPEGQuality)); err != nil {
		return nil, 0, 0, fmt.Errorf("failed to encode image: %w", err)
	}

	b := fitted.Bounds()
	return buf.Bytes(), b.Dx(), b.Dy(), nil
}

type UploadInput struct {
	ProjectID    string
	OriginalName string
	MimeType     string
	Data         []byte
}

// Upload normalizes the image, stores it under a fresh key and appends it to
// the project.
func (s *ImageService) Upload(ctx context.Context, in UploadInput) (*models.Image, *models.Project, error) {
	if len(in.Data) == 0 {
		return nil, nil, invalid(errors.New("no image file provided"))
	}
	if !strings.HasPrefix(in.MimeType, "image/") {
		return nil, nil, invalid(errors.New("only image files are allowed"))
	}
	if s.maxBytes > 0 && int64(len(in.Data)) > s.maxBytes {
		return nil, nil, invalid(fmt.Errorf("image exceeds %d bytes", s.maxBytes))
	}

	project, err := s.projects.GetProject(ctx, in.ProjectID)
	if err != nil {
		return nil, nil, notFoundAs(err, ErrProjectNotFound)
	}

	decoded, err := imaging.Decode(bytes.NewReader(in.Data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, nil, invalid(fmt.Errorf("unreadable image: %w", err))
	}

	processed, width, height, err := Resize(decoded)
	if err != nil {
		return nil, nil, err
	}

	id := uuid.NewString()
	key := id + ".jpg"

	if err := s.blobs.Upload(ctx, key, processed, storedMimeType); err != nil {
		return nil, nil, upstream("store image", err)
	}

	url, err := s.blobs.SignedURL(ctx, key, s.signedURLLife)
	if err != nil {
		s.discard(ctx, key)
		return nil, nil, upstream("sign image url", err)
	}

	img := models.Image{
		ID:           id,
		Filename:     key,
		OriginalName: in.OriginalName,
		URL:          url,
		Size:         int64(len(processed)),
		MimeType:     storedMimeType,
		Width:        width,
		Height:       height,
		UploadedAt:   time.Now().UTC(),
	}

	project.Images = project.WithImage(img)
	project.UpdatedAt = img.UploadedAt

	if err := s.projects.ReplaceProject(ctx, project); err != nil {
		s.discard(ctx, key)
		return nil, nil, notFoundAs(err, ErrProjectNotFound)
	}

	s.logger.Info("image uploaded", "project_id", project.ID, "image_id", id, "width", width, "height", height)
	s.events.PublishProjectEvent(project.ID, realtime.EventImageUploaded,
		realtime.ImageUploadedPayload(project.ID, id, width, height))

	return &img, project, nil
}

// discard removes a blob whose project write failed.
func (s *ImageService) discard(ctx context.Context, key string) {
	if err := s.blobs.Delete(ctx, key); err != nil {
		s.logger.Warn("failed to remove orphaned image", "key", key, "error", err)
	}
}

func (s *ImageService) find(ctx context.Context, imageID string) (*models.Image, error) {
	project, err := s.projects.FindProjectByImageID(ctx, imageID)
	if err != nil {
		return nil, notFoundAs(err, ErrImageNotFound)
	}
	img, ok := project.FindImage(imageID)
	if !ok {
		return nil, ErrImageNotFound
	}
	return &img, nil
}

// SignedURL issues a fresh retrieval URL. The stored URL is not updated.
func (s *ImageService) SignedURL(ctx context.Context, imageID string) (string, *models.Image, error) {
	img, err := s.find(ctx, imageID)
	if err != nil {
		return "", nil, err
	}
	url, err := s.blobs.SignedURL(ctx, img.Filename, s.signedURLLife)
	if err != nil {
		if errors.Is(err, supabase.ErrObjectNotFound) {
			return "", nil, ErrImageNotFound
		}
		return "", nil, upstream("sign image url", err)
	}
	return url, img, nil
}

// File returns the stored bytes and MIME type for proxying.
func (s *ImageService) File(ctx context.Context, imageID string) ([]byte, string, error) {
	img, err := s.find(ctx, imageID)
	if err != nil {
		return nil, "", err
	}
	data, err := s.blobs.Download(ctx, img.Filename)
	if err != nil {
		if errors.Is(err, supabase.ErrObjectNotFound) {
			return nil, "", ErrImageNotFound
		}
		return nil, "", upstream("retrieve image", err)
	}
	mimeType := img.MimeType
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	return data, mimeType, nil
}
