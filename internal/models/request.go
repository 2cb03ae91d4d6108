package models

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	MaxProjectNameLen        = 100
	MaxProjectDescriptionLen = 500
	MaxFeedbackTitleLen      = 200
	MaxFeedbackDescLen       = 1000
	MaxCommentAuthorLen      = 100
	MaxCommentContentLen     = 1000
)

type CreateProjectRequest struct {
	Name        string `json:"name" example:"Checkout redesign"`
	Description string `json:"description,omitempty" example:"Second iteration of the checkout flow"`
}

func (r *CreateProjectRequest) Normalize() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
	if r.Name == "" {
		return errors.New("project name is required")
	}
	if utf8.RuneCountInString(r.Name) > MaxProjectNameLen {
		return fmt.Errorf("project name must be at most %d characters", MaxProjectNameLen)
	}
	if utf8.RuneCountInString(r.Description) > MaxProjectDescriptionLen {
		return fmt.Errorf("project description must be at most %d characters", MaxProjectDescriptionLen)
	}
	return nil
}

// UpdateProjectRequest replaces name and description.
type UpdateProjectRequest = CreateProjectRequest

type CreateFeedbackRequest struct {
	ProjectID   string      `json:"projectId"`
	ImageID     string      `json:"imageId"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Category    Category    `json:"category"`
	Severity    Severity    `json:"severity"`
	Roles       []Role      `json:"roles"`
	Coordinates Coordinates `json:"coordinates"`
}

func (r *CreateFeedbackRequest) Normalize() error {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	if r.ProjectID == "" || r.ImageID == "" || r.Title == "" || r.Description == "" {
		return errors.New("missing required fields")
	}
	if err := validateFeedbackText(r.Title, r.Description); err != nil {
		return err
	}
	if !r.Category.Valid() {
		return fmt.Errorf("invalid category %q", r.Category)
	}
	if !r.Severity.Valid() {
		return fmt.Errorf("invalid severity %q", r.Severity)
	}
	if r.Roles == nil {
		r.Roles = []Role{}
	}
	if err := validateRoles(r.Roles); err != nil {
		return err
	}
	if !r.Coordinates.Valid() {
		return errors.New("coordinates must have x, y >= 0 and width, height >= 1")
	}
	return nil
}

// UpdateFeedbackRequest is a partial update; nil fields are left unchanged.
type UpdateFeedbackRequest struct {
	Title       *string      `json:"title,omitempty"`
	Description *string      `json:"description,omitempty"`
	Category    *Category    `json:"category,omitempty"`
	Severity    *Severity    `json:"severity,omitempty"`
	Roles       []Role       `json:"roles,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
	Status      *Status      `json:"status,omitempty"`
}

func (r *UpdateFeedbackRequest) Normalize() error {
	if r.Title != nil {
		t := strings.TrimSpace(*r.Title)
		if t == "" || utf8.RuneCountInString(t) > MaxFeedbackTitleLen {
			return fmt.Errorf("title must be 1-%d characters", MaxFeedbackTitleLen)
		}
		r.Title = &t
	}
	if r.Description != nil {
		d := strings.TrimSpace(*r.Description)
		if d == "" || utf8.RuneCountInString(d) > MaxFeedbackDescLen {
			return fmt.Errorf("description must be 1-%d characters", MaxFeedbackDescLen)
		}
		r.Description = &d
	}
	if r.Category != nil && !r.Category.Valid() {
		return fmt.Errorf("invalid category %q", *r.Category)
	}
	if r.Severity != nil && !r.Severity.Valid() {
		return fmt.Errorf("invalid severity %q", *r.Severity)
	}
	if r.Status != nil && !r.Status.Valid() {
		return fmt.Errorf("invalid status %q", *r.Status)
	}
	if err := validateRoles(r.Roles); err != nil {
		return err
	}
	if r.Coordinates != nil && !r.Coordinates.Valid() {
		return errors.New("coordinates must have x, y >= 0 and width, height >= 1")
	}
	return nil
}

func (r *UpdateFeedbackRequest) Empty() bool {
	return r.Title == nil && r.Description == nil && r.Category == nil && r.Severity == nil &&
		r.Roles == nil && r.Coordinates == nil && r.Status == nil
}

type CreateCommentRequest struct {
	FeedbackID string `json:"feedbackId"`
	ParentID   string `json:"parentId,omitempty"`
	Author     string `json:"author"`
	Content    string `json:"content"`
	Role       Role   `json:"role"`
}

func (r *CreateCommentRequest) Normalize() error {
	r.Author = strings.TrimSpace(r.Author)
	r.Content = strings.TrimSpace(r.Content)
	if r.FeedbackID == "" || r.Author == "" || r.Content == "" || r.Role == "" {
		return errors.New("missing required fields")
	}
	if utf8.RuneCountInString(r.Author) > MaxCommentAuthorLen {
		return fmt.Errorf("author must be at most %d characters", MaxCommentAuthorLen)
	}
	if utf8.RuneCountInString(r.Content) > MaxCommentContentLen {
		return fmt.Errorf("content must be at most %d characters", MaxCommentContentLen)
	}
	if !r.Role.Valid() {
		return fmt.Errorf("invalid role %q", r.Role)
	}
	return nil
}

type UpdateCommentRequest struct {
	Content string `json:"content"`
}

func (r *UpdateCommentRequest) Normalize() error {
	r.Content = strings.TrimSpace(r.Content)
	if r.Content == "" {
		return errors.New("comment content is required")
	}
	if utf8.RuneCountInString(r.Content) > MaxCommentContentLen {
		return fmt.Errorf("content must be at most %d characters", MaxCommentContentLen)
	}
	return nil
}

type ExportRequest struct {
	ProjectID string `json:"projectId"`
	ImageID   string `json:"imageId,omitempty"`
	Role      Role   `json:"role,omitempty"`
}

func (r *ExportRequest) Normalize() error {
	if r.ProjectID == "" {
		return errors.New("project ID is required")
	}
	if r.Role != "" && !r.Role.Valid() {
		return fmt.Errorf("invalid role %q", r.Role)
	}
	return nil
}

type OverlayClickRequest struct {
	DisplayWidth  float64 `json:"displayWidth"`
	DisplayHeight float64 `json:"displayHeight"`
	X             float64 `json:"x"`
	Y             float64 `json:"y"`
	Role          Role    `json:"role,omitempty"`
}

func validateFeedbackText(title, description string) error {
	if utf8.RuneCountInString(title) > MaxFeedbackTitleLen {
		return fmt.Errorf("title must be at most %d characters", MaxFeedbackTitleLen)
	}
	if utf8.RuneCountInString(description) > MaxFeedbackDescLen {
		return fmt.Errorf("description must be at most %d characters", MaxFeedbackDescLen)
	}
	return nil
}

func validateRoles(roles []Role) error {
	for _, role := range roles {
		if !role.Valid() {
			return fmt.Errorf("invalid role %q", role)
		}
	}
	return nil
}
