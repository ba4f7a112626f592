package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"safecircle/internal/user/model"
	"safecircle/internal/user/service"
	"safecircle/pkg/logger"
	"safecircle/pkg/response"
)

type UserHandler struct {
	Service *service.UserService
}

func NewUserHandler(service *service.UserService) *UserHandler {
	return &UserHandler{Service: service}
}

func (h *UserHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, h.Service.ListUsers())
}

func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	u, err := h.Service.GetUser(r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, u)
}

func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	req := model.NewUser()
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	u, err := h.Service.CreateUser(req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	logger.Sugar.Infof("Created user %s (%s)", u.ID, u.Email)
	response.JSON(w, http.StatusOK, u)
}

func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var fields map[string]any
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil || fields == nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	u, err := h.Service.UpdateUser(r.PathValue("id"), fields)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, u)
}

func (h *UserHandler) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	var loc model.LocationUpdate
	if err := json.NewDecoder(r.Body).Decode(&loc); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	h.Service.UpdateLocation(r.PathValue("id"), loc)
	response.JSON(w, http.StatusOK, model.StatusResponse{Status: "success"})
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	u, err := h.Service.Login(req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, u)
}

func (h *UserHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, h.Service.Leaderboard())
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrUserNotUpdated):
		response.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Error(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrMissingFields), errors.Is(err, service.ErrUserIDTaken):
		response.Error(w, http.StatusBadRequest, err.Error())
	default:
		logger.Sugar.Errorf("Handler: user request failed: %v", err)
		response.Error(w, http.StatusInternalServerError, "Internal server error")
	}
}
