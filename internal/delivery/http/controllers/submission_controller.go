package controllers

import (
	"log/slog"
	"net/http"

	"eventum/internal/delivery/http/helpers"
	"eventum/internal/domain"
)

type SubmissionController struct {
	Logger  *slog.Logger
	Service domain.SubmissionService
}

func NewSubmissionController(logger *slog.Logger, svc domain.SubmissionService) *SubmissionController {
	return &SubmissionController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateSubmissionRequest is the request body for POST /events/{eventID}/submissions.
type CreateSubmissionRequest struct {
	Title   string `json:"title"`
	FileRef string `json:"file_ref"`
}

// Validate implements Validator.
func (c CreateSubmissionRequest) Validate() []string {
	var errs []string
	if c.Title == "" {
		errs = append(errs, "title is required")
	}
	if c.FileRef == "" {
		errs = append(errs, "file_ref is required")
	}
	return errs
}

// SubmissionSuccessResponse is the success response envelope for submission endpoints.
type SubmissionSuccessResponse struct {
	Data  *domain.Submission `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// Create godoc
// @Summary Submit work to an event
// @Description Creates a submission in the submitted state. Requires the speaker role and an open submission window on the event.
// @Tags submissions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param body body CreateSubmissionRequest true "Submission data"
// @Success 201 {object} controllers.SubmissionSuccessResponse "data contains the submission"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or window_closed"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/submissions [post]
func (c *SubmissionController) Create(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	var req CreateSubmissionRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := actorID(w, r)
	if !ok {
		return
	}
	sub, err := c.Service.Create(r.Context(), userID, eventID, req.Title, req.FileRef)
	if err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, sub)
}

// DecideSubmissionRequest is the request body for POST /submissions/{submissionID}/decision.
type DecideSubmissionRequest struct {
	Status string `json:"status"`
}

// Validate implements Validator.
func (d DecideSubmissionRequest) Validate() []string {
	switch domain.SubmissionStatus(d.Status) {
	case domain.SubmissionApproved, domain.SubmissionRejected:
		return nil
	}
	return []string{"status must be approved or rejected"}
}

// Decide godoc
// @Summary Decide on a submission
// @Description Moves a submission to approved or rejected. Only the event's organizer may decide; submissions already decided cannot change again. The author is notified asynchronously.
// @Tags submissions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param submissionID path string true "Submission ID"
// @Param body body DecideSubmissionRequest true "Decision"
// @Success 200 {object} controllers.SubmissionSuccessResponse "data contains the decided submission"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (already decided)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /submissions/{submissionID}/decision [post]
func (c *SubmissionController) Decide(w http.ResponseWriter, r *http.Request) {
	submissionID := r.PathValue("submissionID")
	if submissionID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing submissionID")
		return
	}
	var req DecideSubmissionRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := actorID(w, r)
	if !ok {
		return
	}
	sub, err := c.Service.Decide(r.Context(), userID, submissionID, domain.SubmissionStatus(req.Status))
	if err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, sub)
}

// ListMySubmissions godoc
// @Summary List the authenticated user's submissions
// @Tags submissions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the submissions"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /submissions [get]
func (c *SubmissionController) ListMySubmissions(w http.ResponseWriter, r *http.Request) {
	userID, ok := actorID(w, r)
	if !ok {
		return
	}
	subs, err := c.Service.ListMySubmissions(r.Context(), userID)
	if err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, subs)
}

// ListEventSubmissions godoc
// @Summary List an event's submissions
// @Description Owner only.
// @Tags submissions
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains the submissions"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/submissions [get]
func (c *SubmissionController) ListEventSubmissions(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	userID, ok := actorID(w, r)
	if !ok {
		return
	}
	subs, err := c.Service.ListEventSubmissions(r.Context(), userID, eventID)
	if err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, subs)
}
