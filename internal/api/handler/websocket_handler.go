package handler

import (
	"net/http"
	"strconv"

	"github.com/piyukr2/Bed-Manager/internal/notify"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WebSocketHandler struct {
	hub    *notify.Hub
	logger *zap.Logger
}

func NewWebSocketHandler(hub *notify.Hub, logger *zap.Logger) *WebSocketHandler {
	return &WebSocketHandler{hub: hub, logger: logger}
}

// GET /ws?bed=<id>&ward=<name>
// Subscribes the connection to the requested topics; no query parameters
// means facility-wide events.
func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("failed to upgrade to WebSocket", zap.Error(err))
		return
	}

	topics := []notify.Topic{notify.TopicAll}
	if bedStr := c.Query("bed"); bedStr != "" {
		if bedID, err := strconv.Atoi(bedStr); err == nil {
			topics = append(topics, notify.BedTopic(bedID))
		}
	}
	if ward := c.Query("ward"); ward != "" {
		topics = append(topics, notify.WardTopic(ward))
	}

	sub := h.hub.Subscribe(topics...)

	// Writer: pump hub events to the socket until the subscription closes.
	go func() {
		defer conn.Close()
		for event := range sub.Events() {
			if err := conn.WriteJSON(event); err != nil {
				h.logger.Warn("error writing to WebSocket client", zap.Error(err))
				h.hub.Unsubscribe(sub)
				// Drain until the hub closes the channel.
				for range sub.Events() {
				}
				return
			}
		}
	}()

	// Reader: detect disconnect.
	go func() {
		defer h.hub.Unsubscribe(sub)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					h.logger.Warn("WebSocket error", zap.Error(err))
				}
				return
			}
		}
	}()
}
