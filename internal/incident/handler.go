package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"safecircle/internal/incident/model"
	"safecircle/internal/incident/service"
	"safecircle/pkg/logger"
	"safecircle/pkg/response"
)

type IncidentHandler struct {
	Service *service.IncidentService
}

func NewIncidentHandler(service *service.IncidentService) *IncidentHandler {
	return &IncidentHandler{Service: service}
}

func (h *IncidentHandler) GetIncidents(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, h.Service.ListIncidents())
}

func (h *IncidentHandler) GetIncident(w http.ResponseWriter, r *http.Request) {
	inc, err := h.Service.GetIncident(r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, inc)
}

func (h *IncidentHandler) CreateIncident(w http.ResponseWriter, r *http.Request) {
	req := model.NewIncident()
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	inc, err := h.Service.CreateIncident(req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, inc)
}

func (h *IncidentHandler) Respond(w http.ResponseWriter, r *http.Request) {
	h.helperAction(w, r, h.Service.Respond)
}

func (h *IncidentHandler) Arrive(w http.ResponseWriter, r *http.Request) {
	h.helperAction(w, r, h.Service.Arrive)
}

func (h *IncidentHandler) helperAction(w http.ResponseWriter, r *http.Request, action func(id, helperID string) (*model.Incident, error)) {
	var req model.HelperRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.HelperID == "" {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	inc, err := action(r.PathValue("id"), req.HelperID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, inc)
}

func (h *IncidentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req model.StatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	inc, err := h.Service.UpdateStatus(r.PathValue("id"), req.Status)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, inc)
}

func (h *IncidentHandler) GetMessages(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.Service.GetMessages(r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, msgs)
}

func (h *IncidentHandler) PostMessage(w http.ResponseWriter, r *http.Request) {
	var req model.MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	msg, err := h.Service.PostMessage(r.PathValue("id"), req.Sender, req.Message)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, msg)
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrIncidentNotFound), errors.Is(err, service.ErrHelperNotFound):
		response.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidStatus), errors.Is(err, service.ErrEmptyMessage), errors.Is(err, service.ErrMissingType):
		response.Error(w, http.StatusBadRequest, err.Error())
	default:
		logger.Sugar.Errorf("Handler: incident request failed: %v", err)
		response.Error(w, http.StatusInternalServerError, "Internal server error")
	}
}
