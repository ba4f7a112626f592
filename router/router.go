package router

import (
	"net/http"

	incidentHandler "safecircle/internal/incident"
	incidentRepo "safecircle/internal/incident/repository"
	incidentService "safecircle/internal/incident/service"
	statusHandler "safecircle/internal/status"
	statusRepo "safecircle/internal/status/repository"
	userHandler "safecircle/internal/user"
	userRepo "safecircle/internal/user/repository"
	userService "safecircle/internal/user/service"
	"safecircle/middleware"
	"safecircle/socket"
	"safecircle/store"
)

// Setup wires repositories, services and handlers over s and returns the
// full HTTP handler. hub must be running.
func Setup(s *store.Store, hub *socket.Hub, allowedOrigins []string) http.Handler {
	mux := http.NewServeMux()

	users := userRepo.NewUserRepository(s)
	userSvc := userService.NewUserService(users)
	userH := userHandler.NewUserHandler(userSvc)

	incidentSvc := incidentService.NewIncidentService(incidentRepo.NewIncidentRepository(s), users, hub)
	incidentH := incidentHandler.NewIncidentHandler(incidentSvc)
	hub.Chat = incidentSvc

	statusH := statusHandler.NewStatusHandler(statusRepo.NewStatusRepository(s))

	// WebSocket
	mux.HandleFunc("GET /ws", func(w http.ResponseWriter, r *http.Request) {
		socket.ServeWs(hub, w, r)
	})

	// REST API
	mux.HandleFunc("GET /api/{$}", statusH.Root)
	mux.HandleFunc("POST /api/status", statusH.CreateStatusCheck)
	mux.HandleFunc("GET /api/status", statusH.GetStatusChecks)

	mux.HandleFunc("GET /api/users", userH.GetUsers)
	mux.HandleFunc("POST /api/users", userH.CreateUser)
	mux.HandleFunc("GET /api/users/{id}", userH.GetUser)
	mux.HandleFunc("PUT /api/users/{id}", userH.UpdateUser)
	mux.HandleFunc("PUT /api/users/{id}/location", userH.UpdateLocation)
	mux.HandleFunc("POST /api/login", userH.Login)
	mux.HandleFunc("GET /api/leaderboard", userH.GetLeaderboard)

	mux.HandleFunc("GET /api/incidents", incidentH.GetIncidents)
	mux.HandleFunc("POST /api/incidents", incidentH.CreateIncident)
	mux.HandleFunc("GET /api/incidents/{id}", incidentH.GetIncident)
	mux.HandleFunc("POST /api/incidents/{id}/respond", incidentH.Respond)
	mux.HandleFunc("POST /api/incidents/{id}/arrive", incidentH.Arrive)
	mux.HandleFunc("PUT /api/incidents/{id}/status", incidentH.UpdateStatus)
	mux.HandleFunc("GET /api/incidents/{id}/messages", incidentH.GetMessages)
	mux.HandleFunc("POST /api/incidents/{id}/messages", incidentH.PostMessage)

	return middleware.CORSMiddleware(middleware.LoggingMiddleware(mux), allowedOrigins)
}
