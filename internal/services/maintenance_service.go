package services

import (
	"context"
	"log/slog"
	"time"

	"designsight-backend/internal/models"
)

const missingReason = "NotFound"

type MaintenanceService struct {
	projects ProjectStore
	blobs    BlobStore
	logger   *slog.Logger
}

func NewMaintenanceService(projects ProjectStore, blobs BlobStore, logger *slog.Logger) *MaintenanceService {
	return &MaintenanceService{projects: projects, blobs: blobs, logger: logger}
}

// VerifyImages reports image records whose blob is gone. With remove set,
// those records are dropped from their projects.
func (s *MaintenanceService) VerifyImages(ctx context.Context, remove bool) (*models.VerifyImagesReport, error) {
	keys, err := s.blobs.Keys(ctx)
	if err != nil {
		return nil, upstream("list stored images", err)
	}

	projects, err := s.projects.ListProjects(ctx)
	if err != nil {
		return nil, err
	}

	report := &models.VerifyImagesReport{
		Bucket:  s.blobs.Bucket(),
		Details: make([]models.ProjectMissingImages, 0),
	}

	for i := range projects {
		project := &projects[i]

		var missing []models.MissingImage
		for _, img := range project.Images {
			if !keys[img.Filename] {
				missing = append(missing, models.MissingImage{ID: img.ID, Filename: img.Filename, Reason: missingReason})
			}
		}
		if len(missing) == 0 {
			continue
		}

		report.MissingTotal += len(missing)

		if remove {
			gone := make(map[string]bool, len(missing))
			for _, m := range missing {
				gone[m.ID] = true
			}
			kept := project.WithoutImages(gone)
			removed := len(project.Images) - len(kept)
			project.Images = kept
			project.UpdatedAt = time.Now().UTC()
			if err := s.projects.ReplaceProject(ctx, project); err != nil {
				return nil, err
			}
			report.RemovedTotal += removed
			s.logger.Info("removed missing images", "project_id", project.ID, "count", removed)
		}

		report.Details = append(report.Details, models.ProjectMissingImages{
			ProjectID:   project.ID,
			ProjectName: project.Name,
			Missing:     missing,
		})
	}

	report.ProjectsWithMissing = len(report.Details)
	return report, nil
}
