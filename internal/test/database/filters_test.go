package database_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"designsight-backend/internal/database"
	"designsight-backend/internal/models"
)

func TestFeedbackFilter_EmptyMatchesEverything(t *testing.T) {
	var f database.FeedbackFilter

	assert.Empty(t, f.BSON())
	assert.True(t, f.Matches(&models.Feedback{ID: "x"}))
}

func TestFeedbackFilter_BSON(t *testing.T) {
	ai := true
	f := database.FeedbackFilter{
		ProjectID:   "p1",
		ImageID:     "i1",
		Category:    models.CategoryAccessibility,
		Severity:    models.SeverityHigh,
		Status:      models.StatusOpen,
		Role:        models.RoleDeveloper,
		AIGenerated: &ai,
	}

	want := bson.D{
		{Key: "projectId", Value: "p1"},
		{Key: "imageId", Value: "i1"},
		{Key: "category", Value: models.CategoryAccessibility},
		{Key: "severity", Value: models.SeverityHigh},
		{Key: "status", Value: models.StatusOpen},
		{Key: "roles", Value: bson.D{{Key: "$in", Value: bson.A{models.RoleDeveloper}}}},
		{Key: "aiGenerated", Value: true},
	}
	assert.Equal(t, want, f.BSON())
}

func TestFeedbackFilter_Matches(t *testing.T) {
	item := &models.Feedback{
		ProjectID: "p1",
		ImageID:   "i1",
		Category:  models.CategoryContentCopy,
		Severity:  models.SeverityLow,
		Status:    models.StatusResolved,
		Roles:     []models.Role{models.RoleDesigner, models.RoleReviewer},
	}

	assert.True(t, database.FeedbackFilter{ProjectID: "p1", Role: models.RoleReviewer}.Matches(item))
	assert.True(t, database.FeedbackFilter{Severity: models.SeverityLow, Status: models.StatusResolved}.Matches(item))
	assert.False(t, database.FeedbackFilter{Role: models.RoleDeveloper}.Matches(item))
	assert.False(t, database.FeedbackFilter{ProjectID: "p1", ImageID: "other"}.Matches(item))

	manual := false
	assert.True(t, database.FeedbackFilter{AIGenerated: &manual}.Matches(item))
	ai := true
	assert.False(t, database.FeedbackFilter{AIGenerated: &ai}.Matches(item))
}

func TestCfg_Creds(t *testing.T) {
	assert.Nil(t, database.Cfg{URI: "mongodb://localhost"}.Creds())
	assert.Nil(t, database.Cfg{User: "admin"}.Creds())

	creds := database.Cfg{User: "admin", Pass: "secret"}.Creds()
	require.NotNil(t, creds)
	assert.Equal(t, "admin", creds.Username)
	assert.True(t, creds.PasswordSet)
}
