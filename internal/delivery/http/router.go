package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventum/internal/delivery/http/controllers"
	"eventum/internal/delivery/http/middleware"
	"eventum/internal/domain"
)

// Controllers bundles the route handlers the router mounts.
type Controllers struct {
	Auth         *controllers.AuthController
	Event        *controllers.EventController
	Registration *controllers.RegistrationController
	CheckIn      *controllers.CheckInController
	Submission   *controllers.SubmissionController
}

// NewRouter initializes the HTTP router with all application routes.
// Routes other than signup, login, and the published event listing require
// a Bearer token.
func NewRouter(c Controllers, verifier domain.TokenVerifier, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier, logger)

	// Auth
	mux.HandleFunc("POST /auth/signup", c.Auth.SignUp)
	mux.HandleFunc("POST /auth/login", c.Auth.Login)
	mux.HandleFunc("GET /users/me", auth(c.Auth.Me))
	mux.HandleFunc("PATCH /users/me", auth(c.Auth.UpdateSettings))
	mux.HandleFunc("PUT /users/{userID}/group", auth(c.Auth.AssignGroup))
	mux.HandleFunc("DELETE /users/{userID}/group", auth(c.Auth.RemoveFromGroup))

	// Events and activities
	mux.HandleFunc("GET /events", c.Event.ListPublishedEvents)
	mux.HandleFunc("POST /events", auth(c.Event.CreateEvent))
	mux.HandleFunc("GET /events/mine", auth(c.Event.ListMyEvents))
	mux.HandleFunc("GET /events/{eventID}", auth(c.Event.GetEvent))
	mux.HandleFunc("PATCH /events/{eventID}", auth(c.Event.UpdateEvent))
	mux.HandleFunc("DELETE /events/{eventID}", auth(c.Event.DeleteEvent))
	mux.HandleFunc("POST /events/{eventID}/activities", auth(c.Event.CreateActivity))
	mux.HandleFunc("PATCH /activities/{activityID}", auth(c.Event.UpdateActivity))
	mux.HandleFunc("DELETE /activities/{activityID}", auth(c.Event.DeleteActivity))

	// Registrations
	mux.HandleFunc("POST /events/{eventID}/registrations", auth(c.Registration.Register))
	mux.HandleFunc("DELETE /events/{eventID}/registrations", auth(c.Registration.Cancel))
	mux.HandleFunc("GET /registrations", auth(c.Registration.ListMyRegistrations))
	mux.HandleFunc("GET /events/{eventID}/participants", auth(c.Registration.ListParticipants))

	// Check-in
	mux.HandleFunc("POST /activities/{activityID}/checkin/open", auth(c.CheckIn.OpenCheckIn))
	mux.HandleFunc("POST /activities/{activityID}/checkin/close", auth(c.CheckIn.CloseCheckIn))
	mux.HandleFunc("POST /checkin", auth(c.CheckIn.SubmitCode))

	// Submissions
	mux.HandleFunc("POST /events/{eventID}/submissions", auth(c.Submission.Create))
	mux.HandleFunc("GET /events/{eventID}/submissions", auth(c.Submission.ListEventSubmissions))
	mux.HandleFunc("GET /submissions", auth(c.Submission.ListMySubmissions))
	mux.HandleFunc("POST /submissions/{submissionID}/decision", auth(c.Submission.Decide))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
