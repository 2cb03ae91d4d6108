package services

import (
	"context"
	"time"

	"designsight-backend/internal/database"
	"designsight-backend/internal/models"
)

type ProjectStore interface {
	CreateProject(ctx context.Context, project *models.Project) error
	GetProject(ctx context.Context, id string) (*models.Project, error)
	FindProjectByImageID(ctx context.Context, imageID string) (*models.Project, error)
	ListProjects(ctx context.Context) ([]models.Project, error)
	ReplaceProject(ctx context.Context, project *models.Project) error
	DeleteProject(ctx context.Context, id string) error
}

type FeedbackStore interface {
	CreateFeedback(ctx context.Context, feedback *models.Feedback) error
	GetFeedback(ctx context.Context, id string) (*models.Feedback, error)
	ListFeedback(ctx context.Context, filter database.FeedbackFilter, ascending bool) ([]models.Feedback, error)
	UpdateFeedback(ctx context.Context, id string, req models.UpdateFeedbackRequest) (*models.Feedback, error)
	DeleteFeedback(ctx context.Context, id string) error
}

type CommentStore interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	ListComments(ctx context.Context, feedbackID string, role models.Role) ([]models.Comment, error)
	UpdateCommentContent(ctx context.Context, id, content string) (*models.Comment, error)
	DeleteComment(ctx context.Context, id string) error
}

// BlobStore is a flat key/value object store with signed retrieval URLs.
type BlobStore interface {
	Bucket() string
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	Download(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	SignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)
	Keys(ctx context.Context) (map[string]bool, error)
}

type PDFRenderer interface {
	Render(ctx context.Context, html []byte) ([]byte, error)
}

type EventPublisher interface {
	PublishProjectEvent(projectID, event string, payload map[string]interface{})
}

type CommentEventPublisher interface {
	PublishFeedbackEvent(feedbackID, event string, payload map[string]interface{})
}

type noopPublisher struct{}

func (noopPublisher) PublishProjectEvent(string, string, map[string]interface{})  {}
func (noopPublisher) PublishFeedbackEvent(string, string, map[string]interface{}) {}

func publisherOrNoop(p EventPublisher) EventPublisher {
	if p == nil {
		return noopPublisher{}
	}
	return p
}

func commentPublisherOrNoop(p CommentEventPublisher) CommentEventPublisher {
	if p == nil {
		return noopPublisher{}
	}
	return p
}
