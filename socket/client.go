package socket

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"safecircle/internal/incident/model"
	"safecircle/pkg/logger"
	"safecircle/pkg/response"
)

const (
	pingPeriod   = 30 * time.Second
	writeWait    = 10 * time.Second
	sendBuffer   = 256
	maxChatBytes = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The frontend is served from another origin during development.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type chatPayload struct {
	Message string `json:"message"`
}

// ServeWs upgrades the request and joins the caller to the chat room of
// the incident named by the incidentId query parameter.
func ServeWs(hub *Hub, w http.ResponseWriter, r *http.Request) {
	incidentID := r.URL.Query().Get("incidentId")
	userID := r.URL.Query().Get("userId")
	if incidentID == "" || userID == "" {
		response.Error(w, http.StatusBadRequest, "Missing incidentId or userId parameter")
		return
	}

	if hub.Chat != nil {
		if _, err := hub.Chat.GetMessages(incidentID); err != nil {
			if errors.Is(err, model.ErrIncidentNotFound) {
				logger.Sugar.Warnf("Connection rejected: incident %s not found", incidentID)
				response.Error(w, http.StatusNotFound, "Incident not found")
				return
			}
			logger.Sugar.Errorf("Failed to check incident %s: %v", incidentID, err)
			response.Error(w, http.StatusInternalServerError, "Internal server error")
			return
		}
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Sugar.Error(err)
		return
	}

	client := &Client{
		Hub:        hub,
		Conn:       conn,
		IncidentID: incidentID,
		UserID:     userID,
		Send:       make(chan []byte, sendBuffer),
	}
	client.Hub.Register <- client

	go client.writePump()
	go client.readPump()
}

func (c *Client) readPump() {
	defer func() {
		c.Hub.Unregister <- c
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxChatBytes)

	for {
		_, rawMessage, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Sugar.Errorf("error: %v", err)
			}
			break
		}

		var msg WSMessage
		if err := json.Unmarshal(rawMessage, &msg); err != nil {
			logger.Sugar.Errorf("Error unmarshalling message: %v", err)
			continue
		}

		// Server-authoritative fields, so nobody can post as someone else.
		msg.IncidentID = c.IncidentID
		msg.UserID = c.UserID

		switch msg.Type {
		case ChatType:
			var body chatPayload
			if err := json.Unmarshal(msg.Payload, &body); err != nil {
				logger.Sugar.Warnf("Malformed chat payload from %s: %v", c.UserID, err)
				continue
			}
			if c.Hub.Chat == nil {
				continue
			}
			// PostMessage persists and broadcasts through the hub.
			if _, err := c.Hub.Chat.PostMessage(c.IncidentID, c.UserID, body.Message); err != nil {
				logger.Sugar.Warnf("Chat message from %s rejected: %v", c.UserID, err)
			}
		case TypingType:
			c.Hub.Broadcast <- msg
		default:
			logger.Sugar.Warnf("Ignoring %q message from %s", msg.Type, c.UserID)
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
