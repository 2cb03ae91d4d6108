package database

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"designsight-backend/internal/models"
)

// FeedbackFilter narrows a feedback listing. Zero fields do not constrain.
// All set fields are combined with AND and compared exactly, except Role
// which matches when it is among the item's roles.
type FeedbackFilter struct {
	ProjectID   string
	ImageID     string
	Category    models.Category
	Severity    models.Severity
	Status      models.Status
	Role        models.Role
	AIGenerated *bool
}

func (f FeedbackFilter) BSON() bson.D {
	filter := bson.D{}
	if f.ProjectID != "" {
		filter = append(filter, bson.E{Key: "projectId", Value: f.ProjectID})
	}
	if f.ImageID != "" {
		filter = append(filter, bson.E{Key: "imageId", Value: f.ImageID})
	}
	if f.Category != "" {
		filter = append(filter, bson.E{Key: "category", Value: f.Category})
	}
	if f.Severity != "" {
		filter = append(filter, bson.E{Key: "severity", Value: f.Severity})
	}
	if f.Status != "" {
		filter = append(filter, bson.E{Key: "status", Value: f.Status})
	}
	if f.Role != "" {
		filter = append(filter, bson.E{Key: "roles", Value: bson.D{{Key: "$in", Value: bson.A{f.Role}}}})
	}
	if f.AIGenerated != nil {
		filter = append(filter, bson.E{Key: "aiGenerated", Value: *f.AIGenerated})
	}
	return filter
}

// Matches applies the filter to an in-memory item with the same semantics as BSON.
func (f FeedbackFilter) Matches(item *models.Feedback) bool {
	switch {
	case f.ProjectID != "" && item.ProjectID != f.ProjectID:
		return false
	case f.ImageID != "" && item.ImageID != f.ImageID:
		return false
	case f.Category != "" && item.Category != f.Category:
		return false
	case f.Severity != "" && item.Severity != f.Severity:
		return false
	case f.Status != "" && item.Status != f.Status:
		return false
	case f.Role != "" && !item.HasRole(f.Role):
		return false
	case f.AIGenerated != nil && item.AIGenerated != *f.AIGenerated:
		return false
	}
	return true
}

// feedbackUpdate turns a partial update into a $set document. updatedAt is
// always refreshed so an accepted update is visible even if values repeat.
func feedbackUpdate(req models.UpdateFeedbackRequest, now time.Time) bson.D {
	set := bson.D{}
	if req.Title != nil {
		set = append(set, bson.E{Key: "title", Value: *req.Title})
	}
	if req.Description != nil {
		set = append(set, bson.E{Key: "description", Value: *req.Description})
	}
	if req.Category != nil {
		set = append(set, bson.E{Key: "category", Value: *req.Category})
	}
	if req.Severity != nil {
		set = append(set, bson.E{Key: "severity", Value: *req.Severity})
	}
	if req.Roles != nil {
		set = append(set, bson.E{Key: "roles", Value: req.Roles})
	}
	if req.Coordinates != nil {
		set = append(set, bson.E{Key: "coordinates", Value: *req.Coordinates})
	}
	if req.Status != nil {
		set = append(set, bson.E{Key: "status", Value: *req.Status})
	}
	set = append(set, bson.E{Key: "updatedAt", Value: now})
	return bson.D{{Key: "$set", Value: set}}
}
