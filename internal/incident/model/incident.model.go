package model

import (
	"errors"

	usermodel "safecircle/internal/user/model"
)

// ErrIncidentNotFound is returned for an unknown incident id.
var ErrIncidentNotFound = errors.New("Incident not found")

const (
	StatusActive    = "active"
	StatusResolved  = "resolved"
	StatusCancelled = "cancelled"
)

type ChatMessage struct {
	ID        string `json:"id"`
	Sender    string `json:"sender"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

type Incident struct {
	ID                        string         `json:"id"`
	Type                      string         `json:"type"`
	Victim                    usermodel.User `json:"victim"`
	Location                  map[string]any `json:"location"`
	Distance                  *float64       `json:"distance"`
	Description               *string        `json:"description"`
	Timestamp                 string         `json:"timestamp"`
	Status                    string         `json:"status"`
	RespondingHelpers         []string       `json:"respondingHelpers"`
	ArrivedHelpers            []string       `json:"arrivedHelpers"`
	EmergencyServicesNotified []string       `json:"emergencyServicesNotified"`
	ChatMessages              []ChatMessage  `json:"chatMessages"`
}

// NewIncident returns an Incident carrying the defaults applied to omitted fields.
func NewIncident() Incident {
	i := Incident{Victim: usermodel.NewUser()}
	i.FillDefaults()
	return i
}

// FillDefaults replaces nil collections with empty ones.
func (i *Incident) FillDefaults() {
	i.Victim.FillDefaults()
	if i.Location == nil {
		i.Location = map[string]any{}
	}
	if i.RespondingHelpers == nil {
		i.RespondingHelpers = []string{}
	}
	if i.ArrivedHelpers == nil {
		i.ArrivedHelpers = []string{}
	}
	if i.EmergencyServicesNotified == nil {
		i.EmergencyServicesNotified = []string{}
	}
	if i.ChatMessages == nil {
		i.ChatMessages = []ChatMessage{}
	}
}

type HelperRequest struct {
	HelperID string `json:"helperId"`
}

type StatusRequest struct {
	Status string `json:"status"`
}

type MessageRequest struct {
	Sender  string `json:"sender"`
	Message string `json:"message"`
}
