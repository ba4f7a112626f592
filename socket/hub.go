package socket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"safecircle/internal/incident/model"
	"safecircle/pkg/logger"
)

const (
	HistoryType        = "HISTORY"         // Chat history sent to a client on join
	ChatType           = "CHAT"            // New chat message
	TypingType         = "TYPING"          // User is typing, not persisted
	PresenceUpdateType = "PRESENCE_UPDATE" // A user joined or left
	IncidentUpdateType = "INCIDENT_UPDATE" // Helpers or status changed
)

type WSMessage struct {
	Type       string          `json:"type"`
	IncidentID string          `json:"incident_id"`
	UserID     string          `json:"user_id"`
	Payload    json.RawMessage `json:"payload"`
}

type UserStatus struct {
	UserID   string    `json:"user_id"`
	LastSeen time.Time `json:"last_seen"`
}

// ChatService persists incident chat messages for the hub.
type ChatService interface {
	GetMessages(incidentID string) ([]model.ChatMessage, error)
	PostMessage(incidentID, sender, text string) (*model.ChatMessage, error)
}

// Hub fans messages out to the clients watching each incident.
type Hub struct {
	Rooms      map[string]map[*Client]bool
	Broadcast  chan WSMessage
	Register   chan *Client
	Unregister chan *Client
	Chat       ChatService

	mu       sync.Mutex
	Presence map[string]map[string]UserStatus // incidentID -> userID -> status
}

type Client struct {
	Hub        *Hub
	Conn       *websocket.Conn
	IncidentID string
	UserID     string
	Send       chan []byte
}

func NewHub() *Hub {
	return &Hub{
		Rooms:      make(map[string]map[*Client]bool),
		Broadcast:  make(chan WSMessage),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Presence:   make(map[string]map[string]UserStatus),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			if h.Rooms[client.IncidentID] == nil {
				h.Rooms[client.IncidentID] = make(map[*Client]bool)
				h.Presence[client.IncidentID] = make(map[string]UserStatus)
			}
			h.Rooms[client.IncidentID][client] = true
			h.Presence[client.IncidentID][client.UserID] = UserStatus{UserID: client.UserID, LastSeen: time.Now()}
			h.mu.Unlock()

			// Send the chat so far to the user who just joined.
			h.sendHistory(client)
			h.broadcastPresenceUpdate(client.IncidentID)

		case client := <-h.Unregister:
			incidentID := client.IncidentID
			if h.removeClient(client) {
				h.broadcastPresenceUpdate(incidentID)
			}

		case msg := <-h.Broadcast:
			payload, err := json.Marshal(msg)
			if err != nil {
				logger.Sugar.Errorf("Error marshalling broadcast message: %v", err)
				continue
			}

			// Chat messages echo back to the sender so it sees the stored id and
			// timestamp; everything else skips the sender.
			h.mu.Lock()
			clientsToSend := make([]*Client, 0, len(h.Rooms[msg.IncidentID]))
			for client := range h.Rooms[msg.IncidentID] {
				if msg.Type == ChatType || client.UserID != msg.UserID {
					clientsToSend = append(clientsToSend, client)
				}
			}
			h.mu.Unlock()

			for _, client := range clientsToSend {
				select {
				case client.Send <- payload:
				default:
					logger.Sugar.Warnf("Client %s's send buffer is full. Unregistering.", client.UserID)
					h.removeClient(client)
					client.Conn.Close()
				}
			}
		}
	}
}

// removeClient drops client from its room and reports whether the room
// still has other clients.
func (h *Hub) removeClient(client *Client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.Rooms[client.IncidentID]
	if !ok || !room[client] {
		return false
	}
	delete(room, client)
	delete(h.Presence[client.IncidentID], client.UserID)
	close(client.Send)

	if len(room) == 0 {
		delete(h.Rooms, client.IncidentID)
		delete(h.Presence, client.IncidentID)
		logger.Sugar.Infof("Closed and cleaned up empty room: %s", client.IncidentID)
		return false
	}
	return true
}

// CloseAll disconnects every client. Their read pumps unregister them.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, room := range h.Rooms {
		for client := range room {
			client.Conn.Close()
		}
	}
}

func (h *Hub) sendHistory(client *Client) {
	messages := []model.ChatMessage{}
	if h.Chat != nil {
		var err error
		if messages, err = h.Chat.GetMessages(client.IncidentID); err != nil {
			logger.Sugar.Errorf("Failed to load chat for incident %s: %v", client.IncidentID, err)
			messages = []model.ChatMessage{}
		}
	}
	payload, _ := json.Marshal(messages)
	msg, _ := json.Marshal(WSMessage{Type: HistoryType, IncidentID: client.IncidentID, Payload: payload})

	select {
	case client.Send <- msg:
	default:
		logger.Sugar.Warnf("Client %s's send buffer was full during history.", client.UserID)
	}
}

func (h *Hub) broadcastPresenceUpdate(incidentID string) {
	var userStatuses []UserStatus
	var clientsToSend []*Client

	h.mu.Lock()
	if _, ok := h.Presence[incidentID]; ok {
		userStatuses = make([]UserStatus, 0, len(h.Presence[incidentID]))
		for _, status := range h.Presence[incidentID] {
			userStatuses = append(userStatuses, status)
		}
		clientsToSend = make([]*Client, 0, len(h.Rooms[incidentID]))
		for client := range h.Rooms[incidentID] {
			clientsToSend = append(clientsToSend, client)
		}
	}
	h.mu.Unlock()

	if len(clientsToSend) == 0 {
		return
	}

	payload, err := json.Marshal(userStatuses)
	if err != nil {
		logger.Sugar.Errorf("Error marshalling presence broadcast: %v", err)
		return
	}
	broadcastPayload, _ := json.Marshal(WSMessage{Type: PresenceUpdateType, IncidentID: incidentID, Payload: payload})

	for _, client := range clientsToSend {
		select {
		case client.Send <- broadcastPayload:
		default:
			// The pumps will deal with unresponsive clients.
			logger.Sugar.Warnf("Client %s's send buffer was full during presence update.", client.UserID)
		}
	}
}
