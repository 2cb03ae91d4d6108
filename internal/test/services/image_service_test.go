package services_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"designsight-backend/internal/models"
	"designsight-backend/internal/realtime"
	"designsight-backend/internal/services"
)

func solid(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: 40, G: 120, B: 200, A: 255})
		}
	}
	return img
}

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, solid(w, h)))
	return buf.Bytes()
}

func newImageService(store *memStore, blobs *memBlobs, events services.EventPublisher) *services.ImageService {
	return services.NewImageService(store, blobs, events, 10<<20, time.Hour, discardLogger())
}

func TestResize_FitsWithinBounds(t *testing.T) {
	data, w, h, err := services.Resize(solid(2000, 1500))
	require.NoError(t, err)
	assert.Equal(t, 1440, w)
	assert.Equal(t, 1080, h)
	assert.NotEmpty(t, data)
}

func TestResize_NeverEnlarges(t *testing.T) {
	_, w, h, err := services.Resize(solid(800, 600))
	require.NoError(t, err)
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, h)
}

func TestImageService_Upload(t *testing.T) {
	store := newMemStore()
	seedProject(store, "p1")
	blobs := newMemBlobs()
	events := &recordingPublisher{}
	svc := newImageService(store, blobs, events)

	img, project, err := svc.Upload(context.Background(), services.UploadInput{
		ProjectID:    "p1",
		OriginalName: "home.png",
		MimeType:     "image/png",
		Data:         encodePNG(t, 64, 32),
	})
	require.NoError(t, err)

	assert.Equal(t, "home.png", img.OriginalName)
	assert.Equal(t, img.ID+".jpg", img.Filename)
	assert.Equal(t, "image/jpeg", img.MimeType)
	assert.Equal(t, 64, img.Width)
	assert.Equal(t, 32, img.Height)
	assert.Contains(t, img.URL, "https://storage.test/sign/"+img.Filename)
	assert.Contains(t, blobs.objects, img.Filename)

	require.Len(t, project.Images, 1)
	assert.Len(t, store.projects["p1"].Images, 1)
	assert.Equal(t, []string{realtime.EventImageUploaded}, events.names())
}

func TestImageService_UploadValidation(t *testing.T) {
	store := newMemStore()
	seedProject(store, "p1")
	svc := services.NewImageService(store, newMemBlobs(), nil, 100, time.Hour, discardLogger())
	ctx := context.Background()

	_, _, err := svc.Upload(ctx, services.UploadInput{ProjectID: "p1", MimeType: "image/png"})
	assert.ErrorIs(t, err, services.ErrInvalidInput)

	_, _, err = svc.Upload(ctx, services.UploadInput{ProjectID: "p1", MimeType: "application/pdf", Data: []byte("x")})
	require.ErrorIs(t, err, services.ErrInvalidInput)
	assert.Contains(t, err.Error(), "only image files are allowed")

	_, _, err = svc.Upload(ctx, services.UploadInput{ProjectID: "p1", MimeType: "image/png", Data: make([]byte, 101)})
	assert.ErrorIs(t, err, services.ErrInvalidInput)

	_, _, err = svc.Upload(ctx, services.UploadInput{ProjectID: "p1", MimeType: "image/png", Data: []byte("not an image")})
	assert.ErrorIs(t, err, services.ErrInvalidInput)
}

func TestImageService_UploadUnknownProject(t *testing.T) {
	blobs := newMemBlobs()
	svc := newImageService(newMemStore(), blobs, nil)

	_, _, err := svc.Upload(context.Background(), services.UploadInput{ProjectID: "nope", MimeType: "image/png", Data: encodePNG(t, 4, 4)})
	assert.ErrorIs(t, err, services.ErrProjectNotFound)
	assert.Empty(t, blobs.objects)
}

func TestImageService_UploadStorageFailures(t *testing.T) {
	store := newMemStore()
	seedProject(store, "p1")
	blobs := newMemBlobs()
	blobs.uploadErr = errors.New("bucket offline")
	svc := newImageService(store, blobs, nil)

	_, _, err := svc.Upload(context.Background(), services.UploadInput{ProjectID: "p1", MimeType: "image/png", Data: encodePNG(t, 4, 4)})
	assert.ErrorIs(t, err, services.ErrUpstream)

	blobs.uploadErr = nil
	blobs.signErr = errors.New("signing refused")
	_, _, err = svc.Upload(context.Background(), services.UploadInput{ProjectID: "p1", MimeType: "image/png", Data: encodePNG(t, 4, 4)})
	assert.ErrorIs(t, err, services.ErrUpstream)
	assert.Len(t, blobs.deleted, 1)
	assert.Empty(t, blobs.objects)
	assert.Empty(t, store.projects["p1"].Images)
}

func TestImageService_FileAndSignedURL(t *testing.T) {
	store := newMemStore()
	seedProject(store, "p1",
		models.Image{ID: "i1", Filename: "i1.jpg", MimeType: "image/jpeg"},
		models.Image{ID: "gone", Filename: "gone.jpg"},
	)
	blobs := newMemBlobs()
	blobs.objects["i1.jpg"] = []byte("jpeg")
	svc := newImageService(store, blobs, nil)
	ctx := context.Background()

	data, mimeType, err := svc.File(ctx, "i1")
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg"), data)
	assert.Equal(t, "image/jpeg", mimeType)

	url, img, err := svc.SignedURL(ctx, "i1")
	require.NoError(t, err)
	assert.Equal(t, "i1", img.ID)
	assert.Contains(t, url, "i1.jpg")

	_, _, err = svc.File(ctx, "gone")
	assert.ErrorIs(t, err, services.ErrImageNotFound)

	_, _, err = svc.File(ctx, "unknown")
	assert.ErrorIs(t, err, services.ErrImageNotFound)

	_, _, err = svc.SignedURL(ctx, "unknown")
	assert.ErrorIs(t, err, services.ErrImageNotFound)
}
