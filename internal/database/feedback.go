package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"designsight-backend/internal/models"
)

func (d *DatabaseClient) CreateFeedback(ctx context.Context, feedback *models.Feedback) error {
	if _, err := d.feedback.InsertOne(ctx, feedback); err != nil {
		return fmt.Errorf("failed to create feedback: %w", handleMongoError(err))
	}
	return nil
}

func (d *DatabaseClient) GetFeedback(ctx context.Context, id string) (*models.Feedback, error) {
	var feedback models.Feedback
	err := d.feedback.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&feedback)
	if err != nil {
		return nil, fmt.Errorf("failed to get feedback: %w", handleMongoError(err))
	}
	return &feedback, nil
}

// ListFeedback returns matching feedback newest first, or oldest first when ascending is set.
func (d *DatabaseClient) ListFeedback(ctx context.Context, filter FeedbackFilter, ascending bool) ([]models.Feedback, error) {
	order := -1
	if ascending {
		order = 1
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: order}, {Key: "_id", Value: order}})

	cursor, err := d.feedback.Find(ctx, filter.BSON(), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}

	items := make([]models.Feedback, 0)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode feedback: %w", err)
	}
	return items, nil
}

func (d *DatabaseClient) UpdateFeedback(ctx context.Context, id string, req models.UpdateFeedbackRequest) (*models.Feedback, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var feedback models.Feedback
	err := d.feedback.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: id}}, feedbackUpdate(req, time.Now().UTC()), opts).
		Decode(&feedback)
	if err != nil {
		return nil, fmt.Errorf("failed to update feedback: %w", handleMongoError(err))
	}
	return &feedback, nil
}

func (d *DatabaseClient) DeleteFeedback(ctx context.Context, id string) error {
	result, err := d.feedback.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return fmt.Errorf("failed to delete feedback: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("failed to delete feedback: %w", ErrNotFound)
	}
	return nil
}
