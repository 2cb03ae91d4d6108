package handlers_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"designsight-backend/internal/database"
	"designsight-backend/internal/models"
	"designsight-backend/internal/overlay"
	"designsight-backend/internal/services"
)

type projectAPI struct {
	mock.Mock
}

func (m *projectAPI) Create(ctx context.Context, req models.CreateProjectRequest) (*models.Project, error) {
	args := m.Called(ctx, req)
	if p, ok := args.Get(0).(*models.Project); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *projectAPI) Get(ctx context.Context, id string) (*models.Project, error) {
	args := m.Called(ctx, id)
	if p, ok := args.Get(0).(*models.Project); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *projectAPI) List(ctx context.Context) ([]models.Project, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]models.Project); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *projectAPI) Update(ctx context.Context, id string, req models.UpdateProjectRequest) (*models.Project, error) {
	args := m.Called(ctx, id, req)
	if p, ok := args.Get(0).(*models.Project); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *projectAPI) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type feedbackAPI struct {
	mock.Mock
}

func (m *feedbackAPI) Create(ctx context.Context, req models.CreateFeedbackRequest) (*models.Feedback, error) {
	args := m.Called(ctx, req)
	if f, ok := args.Get(0).(*models.Feedback); ok {
		return f, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *feedbackAPI) Get(ctx context.Context, id string) (*models.Feedback, error) {
	args := m.Called(ctx, id)
	if f, ok := args.Get(0).(*models.Feedback); ok {
		return f, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *feedbackAPI) List(ctx context.Context, filter database.FeedbackFilter) ([]models.Feedback, error) {
	args := m.Called(ctx, filter)
	if list, ok := args.Get(0).([]models.Feedback); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *feedbackAPI) Update(ctx context.Context, id string, req models.UpdateFeedbackRequest) (*models.Feedback, error) {
	args := m.Called(ctx, id, req)
	if f, ok := args.Get(0).(*models.Feedback); ok {
		return f, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *feedbackAPI) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type commentAPI struct {
	mock.Mock
}

func (m *commentAPI) Create(ctx context.Context, req models.CreateCommentRequest) (*models.Comment, error) {
	args := m.Called(ctx, req)
	if c, ok := args.Get(0).(*models.Comment); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *commentAPI) Thread(ctx context.Context, feedbackID string, role models.Role) ([]*models.CommentNode, int, error) {
	args := m.Called(ctx, feedbackID, role)
	roots, _ := args.Get(0).([]*models.CommentNode)
	return roots, args.Int(1), args.Error(2)
}

func (m *commentAPI) UpdateContent(ctx context.Context, id string, req models.UpdateCommentRequest) (*models.Comment, error) {
	args := m.Called(ctx, id, req)
	if c, ok := args.Get(0).(*models.Comment); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *commentAPI) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type analysisAPI struct {
	mock.Mock
}

func (m *analysisAPI) Analyze(ctx context.Context, projectID, imageID string) (*services.AnalysisOutcome, error) {
	args := m.Called(ctx, projectID, imageID)
	if o, ok := args.Get(0).(*services.AnalysisOutcome); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *analysisAPI) Results(ctx context.Context, projectID, imageID string) ([]models.Feedback, error) {
	args := m.Called(ctx, projectID, imageID)
	if list, ok := args.Get(0).([]models.Feedback); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

type exportAPI struct {
	mock.Mock
}

func (m *exportAPI) JSON(ctx context.Context, req models.ExportRequest) (*services.Artifact, error) {
	args := m.Called(ctx, req)
	if a, ok := args.Get(0).(*services.Artifact); ok {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *exportAPI) PDF(ctx context.Context, req models.ExportRequest) (*services.Artifact, error) {
	args := m.Called(ctx, req)
	if a, ok := args.Get(0).(*services.Artifact); ok {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *exportAPI) Preview(ctx context.Context, req models.ExportRequest) (*models.ExportPreview, error) {
	args := m.Called(ctx, req)
	if p, ok := args.Get(0).(*models.ExportPreview); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

type imageAPI struct {
	mock.Mock
}

func (m *imageAPI) MaxBytes() int64 {
	return m.Called().Get(0).(int64)
}

func (m *imageAPI) Upload(ctx context.Context, in services.UploadInput) (*models.Image, *models.Project, error) {
	args := m.Called(ctx, in)
	img, _ := args.Get(0).(*models.Image)
	project, _ := args.Get(1).(*models.Project)
	return img, project, args.Error(2)
}

func (m *imageAPI) SignedURL(ctx context.Context, imageID string) (string, *models.Image, error) {
	args := m.Called(ctx, imageID)
	img, _ := args.Get(1).(*models.Image)
	return args.String(0), img, args.Error(2)
}

func (m *imageAPI) File(ctx context.Context, imageID string) ([]byte, string, error) {
	args := m.Called(ctx, imageID)
	data, _ := args.Get(0).([]byte)
	return data, args.String(1), args.Error(2)
}

type overlayAPI struct {
	mock.Mock
}

func (m *overlayAPI) Marks(ctx context.Context, q services.OverlayQuery, selectedID string) ([]overlay.Mark, error) {
	args := m.Called(ctx, q, selectedID)
	if marks, ok := args.Get(0).([]overlay.Mark); ok {
		return marks, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *overlayAPI) Click(ctx context.Context, q services.OverlayQuery, x, y float64) (*models.OverlayClickResponse, error) {
	args := m.Called(ctx, q, x, y)
	if r, ok := args.Get(0).(*models.OverlayClickResponse); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

type maintenanceAPI struct {
	mock.Mock
}

func (m *maintenanceAPI) VerifyImages(ctx context.Context, remove bool) (*models.VerifyImagesReport, error) {
	args := m.Called(ctx, remove)
	if r, ok := args.Get(0).(*models.VerifyImagesReport); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}
