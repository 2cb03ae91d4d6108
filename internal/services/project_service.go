package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"designsight-backend/internal/models"
)

type ProjectService struct {
	projects ProjectStore
	logger   *slog.Logger
}

func NewProjectService(projects ProjectStore, logger *slog.Logger) *ProjectService {
	return &ProjectService{projects: projects, logger: logger}
}

func (s *ProjectService) Create(ctx context.Context, req models.CreateProjectRequest) (*models.Project, error) {
	if err := req.Normalize(); err != nil {
		return nil, invalid(err)
	}

	now := time.Now().UTC()
	project := &models.Project{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Images:      []models.Image{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.projects.CreateProject(ctx, project); err != nil {
		return nil, err
	}

	s.logger.Info("project created", "project_id", project.ID)
	return project, nil
}

func (s *ProjectService) Get(ctx context.Context, id string) (*models.Project, error) {
	project, err := s.projects.GetProject(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, ErrProjectNotFound)
	}
	return project, nil
}

func (s *ProjectService) List(ctx context.Context) ([]models.Project, error) {
	return s.projects.ListProjects(ctx)
}

// Update replaces name and description; images are untouched.
func (s *ProjectService) Update(ctx context.Context, id string, req models.UpdateProjectRequest) (*models.Project, error) {
	if err := req.Normalize(); err != nil {
		return nil, invalid(err)
	}

	project, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	project.Name = req.Name
	project.Description = req.Description
	project.UpdatedAt = time.Now().UTC()

	if err := s.projects.ReplaceProject(ctx, project); err != nil {
		return nil, notFoundAs(err, ErrProjectNotFound)
	}
	return project, nil
}

// Delete removes only the project document. Feedback that references it is
// kept and stays reachable by id.
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	if err := s.projects.DeleteProject(ctx, id); err != nil {
		return notFoundAs(err, ErrProjectNotFound)
	}
	s.logger.Info("project deleted", "project_id", id)
	return nil
}

// ResolveImage loads a project and one of its images.
func (s *ProjectService) ResolveImage(ctx context.Context, projectID, imageID string) (*models.Project, *models.Image, error) {
	project, err := s.Get(ctx, projectID)
	if err != nil {
		return nil, nil, err
	}
	img, ok := project.FindImage(imageID)
	if !ok {
		return nil, nil, ErrImageNotFound
	}
	return project, &img, nil
}
