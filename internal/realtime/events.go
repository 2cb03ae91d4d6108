package realtime

import "fmt"

const (
	EventActivity          = "activity"
	EventImageUploaded     = "image_uploaded"
	EventFeedbackCreated   = "feedback_created"
	EventFeedbackUpdated   = "feedback_updated"
	EventFeedbackDeleted   = "feedback_deleted"
	EventCommentCreated    = "comment_created"
	EventAnalysisStarted   = "analysis_started"
	EventAnalysisCompleted = "analysis_completed"
	EventAnalysisFailed    = "analysis_failed"
)

// Publisher fans domain events out to connected clients. A nil hub makes
// every publish a no-op.
type Publisher struct {
	hub *Hub
}

func NewPublisher(hub *Hub) *Publisher {
	return &Publisher{hub: hub}
}

func (p *Publisher) PublishEvent(channel, event string, payload map[string]interface{}) {
	if p == nil || p.hub == nil {
		return
	}
	p.hub.Broadcast(Message{Type: event, Channel: channel, Payload: payload})
}

func (p *Publisher) PublishProjectEvent(projectID, event string, payload map[string]interface{}) {
	p.PublishEvent(fmt.Sprintf("project:%s", projectID), event, payload)
}

func (p *Publisher) PublishFeedbackEvent(feedbackID, event string, payload map[string]interface{}) {
	p.PublishEvent(fmt.Sprintf("feedback:%s", feedbackID), event, payload)
}

// WatchTracker broadcasts the in-flight count whenever it changes.
func (p *Publisher) WatchTracker(t *Tracker) (unsubscribe func()) {
	return t.Subscribe(func(count int) {
		p.PublishEvent("activity", EventActivity, ActivityPayload(count))
	})
}

// Event payloads
func ActivityPayload(inFlight int) map[string]interface{} {
	return map[string]interface{}{
		"inFlight": inFlight,
		"loading":  inFlight > 0,
	}
}

func ImageUploadedPayload(projectID, imageID string, width, height int) map[string]interface{} {
	return map[string]interface{}{
		"projectId": projectID,
		"imageId":   imageID,
		"width":     width,
		"height":    height,
	}
}

func FeedbackPayload(projectID, imageID, feedbackID string) map[string]interface{} {
	return map[string]interface{}{
		"projectId":  projectID,
		"imageId":    imageID,
		"feedbackId": feedbackID,
	}
}

func CommentCreatedPayload(feedbackID, commentID, parentID string) map[string]interface{} {
	return map[string]interface{}{
		"feedbackId": feedbackID,
		"commentId":  commentID,
		"parentId":   parentID,
	}
}

func AnalysisStartedPayload(projectID, imageID string) map[string]interface{} {
	return map[string]interface{}{
		"projectId": projectID,
		"imageId":   imageID,
		"status":    "analyzing",
	}
}

func AnalysisCompletedPayload(projectID, imageID string, feedbackCount int) map[string]interface{} {
	return map[string]interface{}{
		"projectId":     projectID,
		"imageId":       imageID,
		"status":        "completed",
		"feedbackCount": feedbackCount,
	}
}

func AnalysisFailedPayload(projectID, imageID, errorMsg string) map[string]interface{} {
	return map[string]interface{}{
		"projectId": projectID,
		"imageId":   imageID,
		"status":    "failed",
		"error":     errorMsg,
	}
}
