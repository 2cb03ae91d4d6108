package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Feature types understood by images:annotate.
const (
	FeatureTextDetection   = "TEXT_DETECTION"
	FeatureObjectLocalizer = "OBJECT_LOCALIZATION"
	FeatureImageProperties = "IMAGE_PROPERTIES"
	FeatureSafeSearch      = "SAFE_SEARCH_DETECTION"
	defaultMaxResults      = 50
)

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

type Vertex struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type BoundingPoly struct {
	Vertices           []Vertex `json:"vertices,omitempty"`
	NormalizedVertices []Vertex `json:"normalizedVertices,omitempty"`
}

// TextAnnotation vertices are in pixels, clockwise from top-left.
type TextAnnotation struct {
	Description  string       `json:"description"`
	BoundingPoly BoundingPoly `json:"boundingPoly"`
}

// ObjectAnnotation vertices are normalized to [0,1].
type ObjectAnnotation struct {
	Name         string       `json:"name"`
	Score        float64      `json:"score"`
	BoundingPoly BoundingPoly `json:"boundingPoly"`
}

// Color channels are 0-255.
type Color struct {
	Red   float64 `json:"red"`
	Green float64 `json:"green"`
	Blue  float64 `json:"blue"`
}

type ColorInfo struct {
	Color         Color   `json:"color"`
	Score         float64 `json:"score"`
	PixelFraction float64 `json:"pixelFraction"`
}

type SafeSearchAnnotation struct {
	Adult    string `json:"adult"`
	Spoof    string `json:"spoof"`
	Medical  string `json:"medical"`
	Violence string `json:"violence"`
	Racy     string `json:"racy"`
}

type feature struct {
	Type       string `json:"type"`
	MaxResults int    `json:"maxResults,omitempty"`
}

type annotateImageRequest struct {
	Image struct {
		Content string `json:"content"`
	} `json:"image"`
	Features []feature `json:"features"`
}

type annotateRequest struct {
	Requests []annotateImageRequest `json:"requests"`
}

type annotateImageResponse struct {
	TextAnnotations            []TextAnnotation   `json:"textAnnotations"`
	LocalizedObjectAnnotations []ObjectAnnotation `json:"localizedObjectAnnotations"`
	ImagePropertiesAnnotation  *struct {
		DominantColors struct {
			Colors []ColorInfo `json:"colors"`
		} `json:"dominantColors"`
	} `json:"imagePropertiesAnnotation"`
	SafeSearchAnnotation *SafeSearchAnnotation `json:"safeSearchAnnotation"`
	Error                *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type annotateResponse struct {
	Responses []annotateImageResponse `json:"responses"`
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) DetectText(ctx context.Context, image []byte) ([]TextAnnotation, error) {
	resp, err := c.annotate(ctx, image, FeatureTextDetection)
	if err != nil {
		return nil, err
	}
	return resp.TextAnnotations, nil
}

func (c *Client) LocalizeObjects(ctx context.Context, image []byte) ([]ObjectAnnotation, error) {
	resp, err := c.annotate(ctx, image, FeatureObjectLocalizer)
	if err != nil {
		return nil, err
	}
	return resp.LocalizedObjectAnnotations, nil
}

func (c *Client) DominantColors(ctx context.Context, image []byte) ([]ColorInfo, error) {
	resp, err := c.annotate(ctx, image, FeatureImageProperties)
	if err != nil {
		return nil, err
	}
	if resp.ImagePropertiesAnnotation == nil {
		return nil, nil
	}
	return resp.ImagePropertiesAnnotation.DominantColors.Colors, nil
}

func (c *Client) SafeSearch(ctx context.Context, image []byte) (*SafeSearchAnnotation, error) {
	resp, err := c.annotate(ctx, image, FeatureSafeSearch)
	if err != nil {
		return nil, err
	}
	return resp.SafeSearchAnnotation, nil
}

func (c *Client) annotate(ctx context.Context, image []byte, featureType string) (*annotateImageResponse, error) {
	var imgReq annotateImageRequest
	imgReq.Image.Content = base64.StdEncoding.EncodeToString(image)
	imgReq.Features = []feature{{Type: featureType, MaxResults: defaultMaxResults}}

	jsonData, err := json.Marshal(annotateRequest{Requests: []annotateImageRequest{imgReq}})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := strings.TrimSuffix(c.baseURL, "/") + "/images:annotate"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("x-goog-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s failed: status %d, body: %s", featureType, resp.StatusCode, string(body))
	}

	var result annotateResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w, body: %s", err, string(body))
	}

	if len(result.Responses) == 0 {
		return nil, fmt.Errorf("%s returned no responses", featureType)
	}

	first := result.Responses[0]
	if first.Error != nil && first.Error.Message != "" {
		return nil, fmt.Errorf("%s failed: code %d: %s", featureType, first.Error.Code, first.Error.Message)
	}

	return &first, nil
}
