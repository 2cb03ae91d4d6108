package services_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"designsight-backend/internal/database"
	"designsight-backend/internal/models"
	"designsight-backend/internal/supabase"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// memStore is an in-memory document store with the same not-found and
// ordering behavior as the MongoDB client.
type memStore struct {
	mu          sync.Mutex
	projects    map[string]models.Project
	feedback    map[string]models.Feedback
	comments    map[string]models.Comment
	createErr   error
	failCreates int
}

func newMemStore() *memStore {
	return &memStore{
		projects: make(map[string]models.Project),
		feedback: make(map[string]models.Feedback),
		comments: make(map[string]models.Comment),
	}
}

func (m *memStore) CreateProject(_ context.Context, p *models.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.projects[p.ID] = *p
	return nil
}

func (m *memStore) GetProject(_ context.Context, id string) (*models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.projects[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &p, nil
}

func (m *memStore) FindProjectByImageID(_ context.Context, imageID string) (*models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.projects {
		if _, ok := p.FindImage(imageID); ok {
			return &p, nil
		}
	}
	return nil, database.ErrNotFound
}

func (m *memStore) ListProjects(_ context.Context) ([]models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Project, 0, len(m.projects))
	for _, p := range m.projects {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memStore) ReplaceProject(_ context.Context, p *models.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.projects[p.ID]; !ok {
		return database.ErrNotFound
	}
	m.projects[p.ID] = *p
	return nil
}

func (m *memStore) DeleteProject(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.projects[id]; !ok {
		return database.ErrNotFound
	}
	delete(m.projects, id)
	return nil
}

func (m *memStore) CreateFeedback(_ context.Context, f *models.Feedback) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failCreates > 0 {
		m.failCreates--
		return m.createErr
	}
	m.feedback[f.ID] = *f
	return nil
}

func (m *memStore) GetFeedback(_ context.Context, id string) (*models.Feedback, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.feedback[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &f, nil
}

func (m *memStore) ListFeedback(_ context.Context, filter database.FeedbackFilter, ascending bool) ([]models.Feedback, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Feedback, 0)
	for _, f := range m.feedback {
		f := f
		if filter.Matches(&f) {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			if ascending {
				return out[i].CreatedAt.Before(out[j].CreatedAt)
			}
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		if ascending {
			return out[i].ID < out[j].ID
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (m *memStore) UpdateFeedback(_ context.Context, id string, req models.UpdateFeedbackRequest) (*models.Feedback, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.feedback[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	if req.Title != nil {
		f.Title = *req.Title
	}
	if req.Description != nil {
		f.Description = *req.Description
	}
	if req.Category != nil {
		f.Category = *req.Category
	}
	if req.Severity != nil {
		f.Severity = *req.Severity
	}
	if req.Roles != nil {
		f.Roles = req.Roles
	}
	if req.Coordinates != nil {
		f.Coordinates = *req.Coordinates
	}
	if req.Status != nil {
		f.Status = *req.Status
	}
	f.UpdatedAt = time.Now().UTC()
	m.feedback[id] = f
	return &f, nil
}

func (m *memStore) DeleteFeedback(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.feedback[id]; !ok {
		return database.ErrNotFound
	}
	delete(m.feedback, id)
	return nil
}

func (m *memStore) CreateComment(_ context.Context, c *models.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.comments[c.ID] = *c
	return nil
}

func (m *memStore) ListComments(_ context.Context, feedbackID string, role models.Role) ([]models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Comment, 0)
	for _, c := range m.comments {
		if c.FeedbackID == feedbackID && (role == "" || c.Role == role) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *memStore) UpdateCommentContent(_ context.Context, id, content string) (*models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.comments[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	c.Content = content
	c.UpdatedAt = time.Now().UTC()
	m.comments[id] = c
	return &c, nil
}

func (m *memStore) DeleteComment(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.comments[id]; !ok {
		return database.ErrNotFound
	}
	delete(m.comments, id)
	return nil
}

var errObjectMissing = fmt.Errorf("failed to download file: %w", supabase.ErrObjectNotFound)

// memBlobs is an in-memory bucket.
type memBlobs struct {
	mu        sync.Mutex
	objects   map[string][]byte
	uploadErr error
	signErr   error
	listErr   error
	deleted   []string
}

func newMemBlobs() *memBlobs {
	return &memBlobs{objects: make(map[string][]byte)}
}

func (b *memBlobs) Bucket() string { return "designsight" }

func (b *memBlobs) Upload(_ context.Context, key string, data []byte, _ string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.uploadErr != nil {
		return b.uploadErr
	}
	b.objects[key] = data
	return nil
}

func (b *memBlobs) Download(_ context.Context, key string) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	data, ok := b.objects[key]
	if !ok {
		return nil, errObjectMissing
	}
	return data, nil
}

func (b *memBlobs) Delete(_ context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.objects, key)
	b.deleted = append(b.deleted, key)
	return nil
}

func (b *memBlobs) SignedURL(_ context.Context, key string, expiry time.Duration) (string, error) {
	if b.signErr != nil {
		return "", b.signErr
	}
	return "https://storage.test/sign/" + key + "?expires=" + expiry.String(), nil
}

func (b *memBlobs) Keys(_ context.Context) (map[string]bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.listErr != nil {
		return nil, b.listErr
	}
	keys := make(map[string]bool, len(b.objects))
	for k := range b.objects {
		keys[k] = true
	}
	return keys, nil
}

type publishedEvent struct {
	channel string
	event   string
	payload map[string]interface{}
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (r *recordingPublisher) PublishProjectEvent(projectID, event string, payload map[string]interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, publishedEvent{channel: "project:" + projectID, event: event, payload: payload})
}

func (r *recordingPublisher) PublishFeedbackEvent(feedbackID, event string, payload map[string]interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, publishedEvent{channel: "feedback:" + feedbackID, event: event, payload: payload})
}

func (r *recordingPublisher) names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.event
	}
	return out
}

// seedProject stores a project with the given images.
func seedProject(store *memStore, id string, images ...models.Image) *models.Project {
	now := time.Now().UTC()
	p := &models.Project{ID: id, Name: "Project " + id, Images: images, CreatedAt: now, UpdatedAt: now}
	if p.Images == nil {
		p.Images = []models.Image{}
	}
	store.projects[id] = *p
	return p
}
