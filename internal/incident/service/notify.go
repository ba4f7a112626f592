package service

import (
	"fmt"

	"go.uber.org/zap"

	"safecircle/internal/incident/model"
	usermodel "safecircle/internal/user/model"
	"safecircle/pkg/logger"
)

// Notifier delivers an SOS alert to one emergency contact.
type Notifier interface {
	Notify(contact usermodel.EmergencyContact, message string) error
}

// LogNotifier writes alerts to the log instead of sending SMS.
type LogNotifier struct{}

func (LogNotifier) Notify(contact usermodel.EmergencyContact, message string) error {
	logger.Log.Info("Sending SOS notification",
		zap.String("contact", contact.Name),
		zap.String("phone", contact.Phone),
		zap.String("message", message),
	)
	return nil
}

// AlertMessage builds the SOS text sent to a victim's emergency contacts.
func AlertMessage(inc model.Incident) string {
	return fmt.Sprintf("SOS ALERT! %s needs help. Type: %s. Location: https://www.google.com/maps?q=%v,%v",
		inc.Victim.Name, inc.Type, inc.Location["lat"], inc.Location["lng"])
}

// notifyContacts alerts every victim contact that has a phone number.
// Delivery failures are logged and do not fail the incident.
func (s *IncidentService) notifyContacts(inc model.Incident) {
	if s.Notifier == nil {
		return
	}
	msg := AlertMessage(inc)
	for _, contact := range inc.Victim.EmergencyContacts {
		if contact.Phone == "" {
			continue
		}
		if err := s.Notifier.Notify(contact, msg); err != nil {
			logger.Sugar.Errorf("Error sending notification to %s: %v", contact.Name, err)
		}
	}
}
