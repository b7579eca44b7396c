package handlers

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/gatekeep-dev/gatekeep/internal/types"
)

var (
	feedClients   = make(map[*websocket.Conn]bool)
	feedClientsMu sync.RWMutex
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

type contentEvent struct {
	Type      string `json:"type"`
	ContentID uint   `json:"content_id"`
	Status    string `json:"status"`
}

// BroadcastContentEvent pushes a submission or moderation event to every
// connected moderation dashboard.
func BroadcastContentEvent(eventType string, contentID uint, status string) {
	feedClientsMu.RLock()
	if len(feedClients) == 0 {
		feedClientsMu.RUnlock()
		return
	}

	clients := make([]*websocket.Conn, 0, len(feedClients))
	for conn := range feedClients {
		clients = append(clients, conn)
	}
	feedClientsMu.RUnlock()

	event := contentEvent{
		Type:      eventType,
		ContentID: contentID,
		Status:    status,
	}

	for _, conn := range clients {
		if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			zap.L().Warn("Failed to set write deadline for broadcast", zap.Error(err))
			continue
		}

		if err := conn.WriteJSON(event); err != nil {
			zap.L().Warn("Failed to broadcast content event", zap.Error(err))

			feedClientsMu.Lock()
			delete(feedClients, conn)
			feedClientsMu.Unlock()
			conn.Close()
		}
	}
}

// ModerationFeed upgrades the request to a websocket and keeps the client
// registered for content event broadcasts until it disconnects.
func ModerationFeed(c *gin.Context) {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			for _, allowed := range types.AllowedOrigins {
				if origin == allowed {
					return true
				}
			}
			return false
		},
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		zap.L().Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}

	conn.SetReadLimit(maxMessageSize)
	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		zap.L().Warn("Failed to set initial read deadline", zap.Error(err))
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	feedClientsMu.Lock()
	feedClients[conn] = true
	feedClientsMu.Unlock()

	defer func() {
		feedClientsMu.Lock()
		delete(feedClients, conn)
		feedClientsMu.Unlock()
		conn.Close()
	}()

	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		zap.L().Warn("Failed to set write deadline for welcome message", zap.Error(err))
		return
	}

	if err := conn.WriteJSON(map[string]string{
		"type":    "connected",
		"message": "Moderation feed connected",
	}); err != nil {
		zap.L().Warn("Failed to send welcome message", zap.Error(err))
		return
	}

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	go func() {
		for range ticker.C {
			if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}()

	for {
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			break
		}

		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				zap.L().Warn("WebSocket error on moderation feed", zap.Error(err))
			}
			break
		}
	}
}
