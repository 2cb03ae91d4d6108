package realtime_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"designsight-backend/internal/realtime"
)

func startHub(t *testing.T) (*realtime.Hub, *websocket.Conn) {
	t.Helper()
	hub := realtime.NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	go hub.Run()

	srv := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)
	return hub, conn
}

func readMessage(t *testing.T, conn *websocket.Conn) realtime.Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg realtime.Message
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}

func TestHub_ProjectEventReachesClient(t *testing.T) {
	hub, conn := startHub(t)
	defer hub.Shutdown()

	publisher := realtime.NewPublisher(hub)
	publisher.PublishProjectEvent("p1", realtime.EventFeedbackCreated, realtime.FeedbackPayload("p1", "i1", "f1"))

	msg := readMessage(t, conn)
	assert.Equal(t, realtime.EventFeedbackCreated, msg.Type)
	assert.Equal(t, "project:p1", msg.Channel)
	assert.Equal(t, "f1", msg.Payload["feedbackId"])
	assert.False(t, msg.Timestamp.IsZero())
}

func TestHub_TrackerActivityBroadcast(t *testing.T) {
	hub, conn := startHub(t)
	defer hub.Shutdown()

	tracker := realtime.NewTracker()
	unwatch := realtime.NewPublisher(hub).WatchTracker(tracker)
	defer unwatch()

	tracker.Inc()

	msg := readMessage(t, conn)
	assert.Equal(t, realtime.EventActivity, msg.Type)
	assert.Equal(t, float64(1), msg.Payload["inFlight"])
	assert.Equal(t, true, msg.Payload["loading"])
}

func TestPublisher_NilHubIsNoop(t *testing.T) {
	var p *realtime.Publisher
	assert.NotPanics(t, func() {
		p.PublishProjectEvent("p1", realtime.EventFeedbackDeleted, nil)
		realtime.NewPublisher(nil).PublishFeedbackEvent("f1", realtime.EventCommentCreated, nil)
	})
}
