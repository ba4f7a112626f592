package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"safecircle/internal/status/model"
	"safecircle/internal/status/repository"
	"safecircle/pkg/logger"
	"safecircle/pkg/response"
)

type StatusHandler struct {
	Repo *repository.StatusRepository
}

func NewStatusHandler(repo *repository.StatusRepository) *StatusHandler {
	return &StatusHandler{Repo: repo}
}

func (h *StatusHandler) Root(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{"message": "Hello World"})
}

func (h *StatusHandler) CreateStatusCheck(w http.ResponseWriter, r *http.Request) {
	var req model.StatusCheckCreate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.ClientName) == "" {
		response.Error(w, http.StatusBadRequest, "client_name is required")
		return
	}

	check := model.StatusCheck{
		ID:         uuid.NewString(),
		ClientName: req.ClientName,
		Timestamp:  time.Now().UTC().Format(time.RFC3339Nano),
	}
	if err := h.Repo.Create(check); err != nil {
		logger.Sugar.Errorf("Handler: Failed to create status check: %v", err)
		response.Error(w, http.StatusInternalServerError, "Failed to create status check")
		return
	}
	response.JSON(w, http.StatusOK, check)
}

func (h *StatusHandler) GetStatusChecks(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, h.Repo.List())
}
