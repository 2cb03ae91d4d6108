package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"designsight-backend/internal/models"
	"designsight-backend/internal/realtime"
)

type CommentService struct {
	comments CommentStore
	events   CommentEventPublisher
	logger   *slog.Logger
}

func NewCommentService(comments CommentStore, events CommentEventPublisher, logger *slog.Logger) *CommentService {
	return &CommentService{comments: comments, events: commentPublisherOrNoop(events), logger: logger}
}

// Create stores a comment. Feedback and parent references are advisory.
func (s *CommentService) Create(ctx context.Context, req models.CreateCommentRequest) (*models.Comment, error) {
	if err := req.Normalize(); err != nil {
		return nil, invalid(err)
	}

	now := time.Now().UTC()
	comment := &models.Comment{
		ID:         uuid.NewString(),
		FeedbackID: req.FeedbackID,
		ParentID:   req.ParentID,
		Author:     req.Author,
		Content:    req.Content,
		Role:       req.Role,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.comments.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	s.events.PublishFeedbackEvent(comment.FeedbackID, realtime.EventCommentCreated,
		realtime.CommentCreatedPayload(comment.FeedbackID, comment.ID, comment.ParentID))
	return comment, nil
}

// Thread returns the reply tree for a feedback item and the number of
// comments it was built from.
func (s *CommentService) Thread(ctx context.Context, feedbackID string, role models.Role) ([]*models.CommentNode, int, error) {
	if role != "" && !role.Valid() {
		return nil, 0, invalid(errInvalidRole(role))
	}
	comments, err := s.comments.ListComments(ctx, feedbackID, role)
	if err != nil {
		return nil, 0, err
	}
	return BuildCommentTree(comments), len(comments), nil
}

func (s *CommentService) UpdateContent(ctx context.Context, id string, req models.UpdateCommentRequest) (*models.Comment, error) {
	if err := req.Normalize(); err != nil {
		return nil, invalid(err)
	}
	comment, err := s.comments.UpdateCommentContent(ctx, id, req.Content)
	if err != nil {
		return nil, notFoundAs(err, ErrCommentNotFound)
	}
	return comment, nil
}

// Delete removes one comment. Its replies become roots on the next read.
func (s *CommentService) Delete(ctx context.Context, id string) error {
	if err := s.comments.DeleteComment(ctx, id); err != nil {
		return notFoundAs(err, ErrCommentNotFound)
	}
	return nil
}

// BuildCommentTree nests comments under their parents in two passes: index
// every node, then attach. Input order is kept among siblings and roots.
// A comment whose parent is missing from the input is a root. Comments on a
// parent cycle are cut loose at the first node of the cycle seen in input
// order, which becomes a root.
func BuildCommentTree(comments []models.Comment) []*models.CommentNode {
	nodes := make(map[string]*models.CommentNode, len(comments))
	order := make([]*models.CommentNode, 0, len(comments))
	for _, c := range comments {
		n := &models.CommentNode{Comment: c, Replies: []*models.CommentNode{}}
		nodes[c.ID] = n
		order = append(order, n)
	}

	roots := make([]*models.CommentNode, 0)
	cut := make(map[string]bool)
	for _, n := range order {
		parent, ok := nodes[n.ParentID]
		if n.ParentID == "" || !ok || reaches(nodes, cut, parent, n.ID) {
			cut[n.ID] = true
			roots = append(roots, n)
			continue
		}
		parent.Replies = append(parent.Replies, n)
	}
	return roots
}

// reaches walks up the parent chain from start and reports whether target is
// on it. Walks stop at nodes already made roots.
func reaches(nodes map[string]*models.CommentNode, cut map[string]bool, start *models.CommentNode, target string) bool {
	seen := make(map[string]bool)
	for cur := start; cur != nil; cur = nodes[cur.ParentID] {
		if cur.ID == target {
			return true
		}
		if cut[cur.ID] || seen[cur.ID] {
			return false
		}
		seen[cur.ID] = true
	}
	return false
}
