package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventplanner/internal/delivery/http/controllers"
	"eventplanner/internal/delivery/http/middleware"
	"eventplanner/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes.
func NewRouter(eventController *controllers.EventController, authController *controllers.AuthController, verifier domain.TokenVerifier) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier)

	// Auth
	mux.HandleFunc("POST /auth/signup", authController.SignUp)
	mux.HandleFunc("POST /auth/login", authController.Login)

	// Events
	mux.HandleFunc("POST /events", auth(eventController.CreateEvent))
	mux.HandleFunc("GET /events/organized", auth(eventController.GetOrganizedEvents))
	mux.HandleFunc("GET /events/invited", auth(eventController.GetInvitedEvents))
	mux.HandleFunc("GET /events/search", auth(eventController.SearchEvents))
	mux.HandleFunc("GET /events/invitations/sent", auth(eventController.GetSentInvitations))
	mux.HandleFunc("POST /events/{eventID}/invite", auth(eventController.InviteUser))
	mux.HandleFunc("DELETE /events/{eventID}", auth(eventController.DeleteEvent))
	mux.HandleFunc("GET /events/{eventID}/attendees", auth(eventController.GetEventAttendees))
	mux.HandleFunc("PUT /events/{eventID}/attendance", auth(eventController.UpdateAttendanceStatus))

	// Health
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
