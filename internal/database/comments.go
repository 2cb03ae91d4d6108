package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"designsight-backend/internal/models"
)

func (d *DatabaseClient) CreateComment(ctx context.Context, comment *models.Comment) error {
	if _, err := d.comments.InsertOne(ctx, comment); err != nil {
		return fmt.Errorf("failed to create comment: %w", handleMongoError(err))
	}
	return nil
}

// ListComments returns a feedback item's comments oldest first, optionally
// restricted to one role.
func (d *DatabaseClient) ListComments(ctx context.Context, feedbackID string, role models.Role) ([]models.Comment, error) {
	filter := bson.D{{Key: "feedbackId", Value: feedbackID}}
	if role != "" {
		filter = append(filter, bson.E{Key: "role", Value: role})
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})

	cursor, err := d.comments.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	comments := make([]models.Comment, 0)
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, fmt.Errorf("failed to decode comments: %w", err)
	}
	return comments, nil
}

func (d *DatabaseClient) UpdateCommentContent(ctx context.Context, id, content string) (*models.Comment, error) {
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "content", Value: content},
		{Key: "updatedAt", Value: time.Now().UTC()},
	}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var comment models.Comment
	if err := d.comments.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: id}}, update, opts).Decode(&comment); err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", handleMongoError(err))
	}
	return &comment, nil
}

func (d *DatabaseClient) DeleteComment(ctx context.Context, id string) error {
	result, err := d.comments.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("failed to delete comment: %w", ErrNotFound)
	}
	return nil
}
