package models

import "time"

type Comment struct {
	ID         string    `bson:"_id" json:"id"`
	FeedbackID string    `bson:"feedbackId" json:"feedbackId"`
	ParentID   string    `bson:"parentId,omitempty" json:"parentId,omitempty"`
	Author     string    `bson:"author" json:"author"`
	Content    string    `bson:"content" json:"content"`
	Role       Role      `bson:"role" json:"role"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time `bson:"updatedAt" json:"updatedAt"`
}

// CommentNode is a comment with its materialized replies.
type CommentNode struct {
	Comment
	Replies []*CommentNode `json:"replies"`
}
