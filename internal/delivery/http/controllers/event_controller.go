package controllers

import (
	"log/slog"
	"net/http"
	"time"

	"eventum/internal/delivery/http/helpers"
	"eventum/internal/domain"
)

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateEventRequest is the request body for POST /events.
type CreateEventRequest struct {
	Title                string     `json:"title"`
	Description          string     `json:"description"`
	StartsAt             time.Time  `json:"starts_at"`
	EndsAt               time.Time  `json:"ends_at"`
	RegistrationOpensAt  time.Time  `json:"registration_opens_at"`
	RegistrationClosesAt time.Time  `json:"registration_closes_at"`
	SubmissionOpensAt    *time.Time `json:"submission_opens_at"`
	SubmissionClosesAt   *time.Time `json:"submission_closes_at"`
	Workload             int        `json:"workload"`
	GroupID              *string    `json:"group_id"`
}

// Validate implements Validator.
func (c CreateEventRequest) Validate() []string {
	var errs []string
	if c.Title == "" {
		errs = append(errs, "title is required")
	}
	if c.StartsAt.IsZero() || c.EndsAt.IsZero() {
		errs = append(errs, "starts_at and ends_at are required")
	}
	if c.RegistrationOpensAt.IsZero() || c.RegistrationClosesAt.IsZero() {
		errs = append(errs, "registration_opens_at and registration_closes_at are required")
	}
	if c.Workload < 0 {
		errs = append(errs, "workload cannot be negative")
	}
	return errs
}

// EventSuccessResponse is the success response envelope for event endpoints.
type EventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// CreateEvent godoc
// @Summary Create a new event
// @Description Creates a draft event. The authenticated organizer becomes the owner and is registered to the event automatically.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateEventRequest true "Event data"
// @Success 201 {object} controllers.EventSuccessResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := actorID(w, r)
	if !ok {
		return
	}
	event := &domain.Event{
		Title:                req.Title,
		Description:          req.Description,
		StartsAt:             req.StartsAt,
		EndsAt:               req.EndsAt,
		RegistrationOpensAt:  req.RegistrationOpensAt,
		RegistrationClosesAt: req.RegistrationClosesAt,
		SubmissionOpensAt:    req.SubmissionOpensAt,
		SubmissionClosesAt:   req.SubmissionClosesAt,
		Workload:             req.Workload,
		GroupID:              req.GroupID,
	}
	created, err := c.Service.CreateEvent(r.Context(), userID, event)
	if err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, created)
}

// GetEventResponse is the response body for GET /events/{eventID}.
type GetEventResponse struct {
	Event      *domain.Event      `json:"event"`
	Activities []*domain.Activity `json:"activities"`
}

// GetEvent godoc
// @Summary Get an event with its schedule
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains the event and its activities"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	event, activities, err := c.Service.GetEvent(r.Context(), eventID)
	if err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, GetEventResponse{Event: event, Activities: activities})
}

// ListPublishedEvents godoc
// @Summary List published events
// @Tags events
// @Produce json
// @Success 200 {object} helpers.APIResponse "data contains the published events"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) ListPublishedEvents(w http.ResponseWriter, r *http.Request) {
	events, err := c.Service.ListPublishedEvents(r.Context())
	if err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// ListMyEvents godoc
// @Summary List events organized by the authenticated user
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the organizer's events"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/mine [get]
func (c *EventController) ListMyEvents(w http.ResponseWriter, r *http.Request) {
	userID, ok := actorID(w, r)
	if !ok {
		return
	}
	events, err := c.Service.ListMyEvents(r.Context(), userID)
	if err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// UpdateEventRequest is the request body for PATCH /events/{eventID}. All fields optional.
type UpdateEventRequest struct {
	Title                *string    `json:"title"`
	Description          *string    `json:"description"`
	StartsAt             *time.Time `json:"starts_at"`
	EndsAt               *time.Time `json:"ends_at"`
	RegistrationOpensAt  *time.Time `json:"registration_opens_at"`
	RegistrationClosesAt *time.Time `json:"registration_closes_at"`
	SubmissionOpensAt    *time.Time `json:"submission_opens_at"`
	SubmissionClosesAt   *time.Time `json:"submission_closes_at"`
	ClearSubmission      bool       `json:"clear_submission"`
	Status               *string    `json:"status"`
	Workload             *int       `json:"workload"`
}

// Validate implements Validator.
func (u UpdateEventRequest) Validate() []string {
	var errs []string
	if u.Title != nil && *u.Title == "" {
		errs = append(errs, "title cannot be empty")
	}
	if u.Status != nil {
		if _, err := domain.ParseEventStatus(*u.Status); err != nil {
			errs = append(errs, "status must be draft or published")
		}
	}
	if u.Workload != nil && *u.Workload < 0 {
		errs = append(errs, "workload cannot be negative")
	}
	return errs
}

// UpdateEvent godoc
// @Summary Update an event
// @Description Updates event fields, including publishing a draft. Only the owner may update, and only before the event starts.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param body body UpdateEventRequest true "Fields to update (all optional)"
// @Success 200 {object} controllers.EventSuccessResponse "data contains the updated event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or window_closed"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [patch]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	var req UpdateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	userID, ok := actorID(w, r)
	if !ok {
		return
	}
	upd := domain.EventUpdate{
		Title:                req.Title,
		Description:          req.Description,
		StartsAt:             req.StartsAt,
		EndsAt:               req.EndsAt,
		RegistrationOpensAt:  req.RegistrationOpensAt,
		RegistrationClosesAt: req.RegistrationClosesAt,
		SubmissionOpensAt:    req.SubmissionOpensAt,
		SubmissionClosesAt:   req.SubmissionClosesAt,
		ClearSubmission:      req.ClearSubmission,
		Workload:             req.Workload,
	}
	if req.Status != nil {
		status, _ := domain.ParseEventStatus(*req.Status)
		upd.Status = &status
	}
	updated, err := c.Service.UpdateEvent(r.Context(), userID, eventID, upd)
	if err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, updated)
}

// DeleteEvent godoc
// @Summary Delete an event
// @Description Deletes the event and everything attached to it. Owner only.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 204 "no content"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [delete]
func (c *EventController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	userID, ok := actorID(w, r)
	if !ok {
		return
	}
	if err := c.Service.DeleteEvent(r.Context(), userID, eventID); err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CreateActivityRequest is the request body for POST /events/{eventID}/activities.
type CreateActivityRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	Location    string    `json:"location"`
}

// Validate implements Validator.
func (c CreateActivityRequest) Validate() []string {
	var errs []string
	if c.Title == "" {
		errs = append(errs, "title is required")
	}
	if c.StartsAt.IsZero() || c.EndsAt.IsZero() {
		errs = append(errs, "starts_at and ends_at are required")
	}
	return errs
}

// ActivitySuccessResponse is the success response envelope for activity endpoints.
type ActivitySuccessResponse struct {
	Data  *domain.Activity  `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// CreateActivity godoc
// @Summary Add an activity to an event
// @Description Creates an activity inside the event's time span. Owner only.
// @Tags activities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param body body CreateActivityRequest true "Activity data"
// @Success 201 {object} controllers.ActivitySuccessResponse "data contains the created activity"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/activities [post]
func (c *EventController) CreateActivity(w http.ResponseWriter, r *http.Request) {
	var req CreateActivityRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	userID, ok := actorID(w, r)
	if !ok {
		return
	}
	activity := &domain.Activity{
		EventID:     eventID,
		Title:       req.Title,
		Description: req.Description,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		Location:    req.Location,
	}
	created, err := c.Service.CreateActivity(r.Context(), userID, activity)
	if err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, created)
}

// UpdateActivityRequest is the request body for PATCH /activities/{activityID}. All fields optional.
type UpdateActivityRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	StartsAt    *time.Time `json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at"`
	Location    *string    `json:"location"`
}

// Validate implements Validator.
func (u UpdateActivityRequest) Validate() []string {
	if u.Title != nil && *u.Title == "" {
		return []string{"title cannot be empty"}
	}
	return nil
}

// UpdateActivity godoc
// @Summary Update an activity
// @Tags activities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param activityID path string true "Activity ID"
// @Param body body UpdateActivityRequest true "Fields to update (all optional)"
// @Success 200 {object} controllers.ActivitySuccessResponse "data contains the updated activity"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /activities/{activityID} [patch]
func (c *EventController) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	var req UpdateActivityRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	activityID := r.PathValue("activityID")
	if activityID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing activityID")
		return
	}
	userID, ok := actorID(w, r)
	if !ok {
		return
	}
	upd := domain.ActivityUpdate{
		Title:       req.Title,
		Description: req.Description,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		Location:    req.Location,
	}
	updated, err := c.Service.UpdateActivity(r.Context(), userID, activityID, upd)
	if err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, updated)
}

// DeleteActivity godoc
// @Summary Delete an activity
// @Tags activities
// @Produce json
// @Security BearerAuth
// @Param activityID path string true "Activity ID"
// @Success 204 "no content"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /activities/{activityID} [delete]
func (c *EventController) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	activityID := r.PathValue("activityID")
	if activityID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing activityID")
		return
	}
	userID, ok := actorID(w, r)
	if !ok {
		return
	}
	if err := c.Service.DeleteActivity(r.Context(), userID, activityID); err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
