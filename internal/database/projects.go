package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"designsight-backend/internal/models"
)

func (d *DatabaseClient) CreateProject(ctx context.Context, project *models.Project) error {
	if _, err := d.projects.InsertOne(ctx, project); err != nil {
		return fmt.Errorf("failed to create project: %w", handleMongoError(err))
	}
	return nil
}

func (d *DatabaseClient) GetProject(ctx context.Context, id string) (*models.Project, error) {
	var project models.Project
	err := d.projects.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&project)
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", handleMongoError(err))
	}
	return &project, nil
}

// FindProjectByImageID returns the project that embeds the given image.
func (d *DatabaseClient) FindProjectByImageID(ctx context.Context, imageID string) (*models.Project, error) {
	var project models.Project
	err := d.projects.FindOne(ctx, bson.D{{Key: "images.id", Value: imageID}}).Decode(&project)
	if err != nil {
		return nil, fmt.Errorf("failed to find project by image: %w", handleMongoError(err))
	}
	return &project, nil
}

func (d *DatabaseClient) ListProjects(ctx context.Context) ([]models.Project, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := d.projects.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	projects := make([]models.Project, 0)
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, fmt.Errorf("failed to decode projects: %w", err)
	}
	return projects, nil
}

// ReplaceProject writes the whole document. Concurrent writers are last-write-wins.
func (d *DatabaseClient) ReplaceProject(ctx context.Context, project *models.Project) error {
	result, err := d.projects.ReplaceOne(ctx, bson.D{{Key: "_id", Value: project.ID}}, project)
	if err != nil {
		return fmt.Errorf("failed to replace project: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("failed to replace project: %w", ErrNotFound)
	}
	return nil
}

func (d *DatabaseClient) DeleteProject(ctx context.Context, id string) error {
	result, err := d.projects.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("failed to delete project: %w", ErrNotFound)
	}
	return nil
}
