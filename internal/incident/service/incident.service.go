package service

import (
	"encoding/json"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"safecircle/internal/incident/model"
	"safecircle/internal/incident/repository"
	userrepo "safecircle/internal/user/repository"
	"safecircle/pkg/logger"
	"safecircle/socket"
)

var (
	ErrIncidentNotFound = model.ErrIncidentNotFound
	ErrHelperNotFound   = errors.New("Helper not found")
	ErrInvalidStatus    = errors.New("Invalid status. Must be active, resolved or cancelled")
	ErrEmptyMessage     = errors.New("Sender and message are required")
	ErrMissingType      = errors.New("Incident type is required")
)

type IncidentService struct {
	Repo     *repository.IncidentRepository
	Users    *userrepo.UserRepository
	Hub      *socket.Hub
	Notifier Notifier

	// mu serializes read-modify-write updates of an incident's lists.
	mu sync.Mutex
}

func NewIncidentService(repo *repository.IncidentRepository, users *userrepo.UserRepository, hub *socket.Hub) *IncidentService {
	return &IncidentService{Repo: repo, Users: users, Hub: hub, Notifier: LogNotifier{}}
}

func (s *IncidentService) ListIncidents() []model.Incident {
	return s.Repo.List()
}

func (s *IncidentService) GetIncident(id string) (*model.Incident, error) {
	inc, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inc == nil {
		return nil, ErrIncidentNotFound
	}
	return inc, nil
}

// CreateIncident stores the incident and alerts the victim's emergency contacts.
func (s *IncidentService) CreateIncident(inc model.Incident) (*model.Incident, error) {
	if strings.TrimSpace(inc.Type) == "" {
		return nil, ErrMissingType
	}
	if inc.Status == "" {
		inc.Status = model.StatusActive
	}
	if inc.Timestamp == "" {
		inc.Timestamp = now()
	}
	inc.FillDefaults()

	if err := s.Repo.Create(&inc); err != nil {
		return nil, err
	}
	logger.Sugar.Infof("Incident %s (%s) raised by %s", inc.ID, inc.Type, inc.Victim.ID)
	s.notifyContacts(inc)
	return &inc, nil
}

// Respond records helperID as responding to the incident.
func (s *IncidentService) Respond(id, helperID string) (*model.Incident, error) {
	return s.updateHelpers(id, helperID, false)
}

// Arrive records helperID as arrived; an arriving helper is also responding.
func (s *IncidentService) Arrive(id, helperID string) (*model.Incident, error) {
	return s.updateHelpers(id, helperID, true)
}

func (s *IncidentService) updateHelpers(id, helperID string, arrived bool) (*model.Incident, error) {
	helper, err := s.Users.GetByID(helperID)
	if err != nil {
		return nil, err
	}
	if helper == nil {
		return nil, ErrHelperNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	inc, err := s.GetIncident(id)
	if err != nil {
		return nil, err
	}
	if !slices.Contains(inc.RespondingHelpers, helperID) {
		inc.RespondingHelpers = append(inc.RespondingHelpers, helperID)
	}
	if arrived && !slices.Contains(inc.ArrivedHelpers, helperID) {
		inc.ArrivedHelpers = append(inc.ArrivedHelpers, helperID)
	}
	s.Repo.Set(id, map[string]any{
		"respondingHelpers": inc.RespondingHelpers,
		"arrivedHelpers":    inc.ArrivedHelpers,
	})
	s.broadcast(socket.IncidentUpdateType, id, helperID, inc)
	return inc, nil
}

func (s *IncidentService) UpdateStatus(id, status string) (*model.Incident, error) {
	switch status {
	case model.StatusActive, model.StatusResolved, model.StatusCancelled:
	default:
		return nil, ErrInvalidStatus
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.Repo.Set(id, map[string]any{"status": status}) {
		return nil, ErrIncidentNotFound
	}
	inc, err := s.GetIncident(id)
	if err != nil {
		return nil, err
	}
	s.broadcast(socket.IncidentUpdateType, id, "", inc)
	return inc, nil
}

func (s *IncidentService) GetMessages(id string) ([]model.ChatMessage, error) {
	inc, err := s.GetIncident(id)
	if err != nil {
		return nil, err
	}
	return inc.ChatMessages, nil
}

// PostMessage appends a chat message to the incident and broadcasts it to
// everyone in the incident's chat room.
func (s *IncidentService) PostMessage(id, sender, text string) (*model.ChatMessage, error) {
	if strings.TrimSpace(sender) == "" || strings.TrimSpace(text) == "" {
		return nil, ErrEmptyMessage
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	inc, err := s.GetIncident(id)
	if err != nil {
		return nil, err
	}
	msg := model.ChatMessage{
		ID:        uuid.NewString(),
		Sender:    sender,
		Message:   text,
		Timestamp: now(),
	}
	s.Repo.Set(id, map[string]any{"chatMessages": append(inc.ChatMessages, msg)})
	s.broadcast(socket.ChatType, id, sender, msg)
	return &msg, nil
}

func (s *IncidentService) broadcast(msgType, incidentID, userID string, v any) {
	if s.Hub == nil {
		return
	}
	payload, err := json.Marshal(v)
	if err != nil {
		logger.Sugar.Errorf("Error marshalling %s payload: %v", msgType, err)
		return
	}
	s.Hub.Broadcast <- socket.WSMessage{Type: msgType, IncidentID: incidentID, UserID: userID, Payload: payload}
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}
