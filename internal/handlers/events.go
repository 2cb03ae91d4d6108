package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type EventStream interface {
	ServeWS(w http.ResponseWriter, r *http.Request)
}

type EventsHandler struct {
	stream EventStream
}

func NewEventsHandler(stream EventStream) *EventsHandler {
	return &EventsHandler{stream: stream}
}

// Events godoc
// @Summary     Realtime event stream
// @Description Upgrades to a websocket carrying activity counts and domain events as JSON messages.
// @Tags        events
// @Success     101
// @Router      /api/events [get]
func (h *EventsHandler) Events(c *gin.Context) {
	h.stream.ServeWS(c.Writer, c.Request)
}
