package models

import "time"

type Category string

const (
	CategoryAccessibility   Category = "accessibility"
	CategoryVisualHierarchy Category = "visual_hierarchy"
	CategoryContentCopy     Category = "content_copy"
	CategoryUIUXPatterns    Category = "ui_ux_patterns"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryAccessibility, CategoryVisualHierarchy, CategoryContentCopy, CategoryUIUXPatterns:
		return true
	}
	return false
}

type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

func (s Severity) Valid() bool {
	switch s {
	case SeverityHigh, SeverityMedium, SeverityLow:
		return true
	}
	return false
}

type Role string

const (
	RoleDesigner       Role = "designer"
	RoleReviewer       Role = "reviewer"
	RoleProductManager Role = "product_manager"
	RoleDeveloper      Role = "developer"
)

// AllRoles is ordered the way clients present role pickers.
var AllRoles = []Role{RoleDesigner, RoleReviewer, RoleProductManager, RoleDeveloper}

func (r Role) Valid() bool {
	switch r {
	case RoleDesigner, RoleReviewer, RoleProductManager, RoleDeveloper:
		return true
	}
	return false
}

type Status string

const (
	StatusOpen      Status = "open"
	StatusResolved  Status = "resolved"
	StatusDismissed Status = "dismissed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusResolved, StatusDismissed:
		return true
	}
	return false
}

// Coordinates are in the stored image's pixel space.
type Coordinates struct {
	X      float64 `bson:"x" json:"x"`
	Y      float64 `bson:"y" json:"y"`
	Width  float64 `bson:"width" json:"width"`
	Height float64 `bson:"height" json:"height"`
}

func (c Coordinates) Valid() bool {
	return c.X >= 0 && c.Y >= 0 && c.Width >= 1 && c.Height >= 1
}

type Feedback struct {
	ID          string      `bson:"_id" json:"id"`
	ProjectID   string      `bson:"projectId" json:"projectId"`
	ImageID     string      `bson:"imageId" json:"imageId"`
	Title       string      `bson:"title" json:"title"`
	Description string      `bson:"description" json:"description"`
	Category    Category    `bson:"category" json:"category"`
	Severity    Severity    `bson:"severity" json:"severity"`
	Roles       []Role      `bson:"roles" json:"roles"`
	Coordinates Coordinates `bson:"coordinates" json:"coordinates"`
	AIGenerated bool        `bson:"aiGenerated" json:"aiGenerated"`
	Status      Status      `bson:"status" json:"status"`
	CreatedAt   time.Time   `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time   `bson:"updatedAt" json:"updatedAt"`
}

// HasRole reports whether role is among the feedback's applicable roles.
func (f *Feedback) HasRole(role Role) bool {
	for _, r := range f.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// FeedbackDraft is a synthesized feedback item that has not been persisted yet.
type FeedbackDraft struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Category    Category    `json:"category"`
	Severity    Severity    `json:"severity"`
	Roles       []Role      `json:"roles"`
	Coordinates Coordinates `json:"coordinates"`
	AIGenerated bool        `json:"aiGenerated"`
	Status      Status      `json:"status"`
}
