package export_test

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os/exec"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"designsight-backend/internal/export"
)

func chromePath(t *testing.T) string {
	t.Helper()
	for _, name := range []string{"google-chrome", "chromium", "chromium-browser", "headless-shell"} {
		if p, err := exec.LookPath(name); err == nil {
			return p
		}
	}
	t.Skip("no Chrome binary on PATH")
	return ""
}

func TestChromeRenderer_WaitsForSlowImage(t *testing.T) {
	execPath := chromePath(t)

	var pixel bytes.Buffer
	require.NoError(t, png.Encode(&pixel, image.NewRGBA(image.Rect(0, 0, 1, 1))))

	var served atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Second)
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(pixel.Bytes())
		served.Store(true)
	}))
	defer srv.Close()

	html := []byte(`<html><body><img src="` + srv.URL + `/overlay.png"></body></html>`)

	pdf, err := export.NewChromeRenderer(execPath, 30*time.Second).Render(context.Background(), html)
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
	assert.True(t, served.Load(), "image should be served before printing")
}
