package controllers

import (
	"log/slog"
	"net/http"
	"regexp"

	"eventum/internal/delivery/http/helpers"
	"eventum/internal/domain"
)

// codeRegex matches a 6-digit check-in code.
var codeRegex = regexp.MustCompile(`^\d{6}$`)

type CheckInController struct {
	Logger  *slog.Logger
	Service domain.CheckInService
}

func NewCheckInController(logger *slog.Logger, svc domain.CheckInService) *CheckInController {
	return &CheckInController{
		Logger:  logger,
		Service: svc,
	}
}

// OpenCheckIn godoc
// @Summary Open check-in for an activity
// @Description Generates a fresh 6-digit code, unique among open activities, and opens check-in. Owner only.
// @Tags check-in
// @Produce json
// @Security BearerAuth
// @Param activityID path string true "Activity ID"
// @Success 200 {object} controllers.ActivitySuccessResponse "data contains the activity with its code"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /activities/{activityID}/checkin/open [post]
func (c *CheckInController) OpenCheckIn(w http.ResponseWriter, r *http.Request) {
	activityID := r.PathValue("activityID")
	if activityID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing activityID")
		return
	}
	userID, ok := actorID(w, r)
	if !ok {
		return
	}
	activity, err := c.Service.OpenCheckIn(r.Context(), userID, activityID)
	if err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, activity)
}

// CloseCheckIn godoc
// @Summary Close check-in for an activity
// @Description Clears the code and closes check-in, invalidating the code immediately. Owner only.
// @Tags check-in
// @Produce json
// @Security BearerAuth
// @Param activityID path string true "Activity ID"
// @Success 200 {object} controllers.ActivitySuccessResponse "data contains the activity"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /activities/{activityID}/checkin/close [post]
func (c *CheckInController) CloseCheckIn(w http.ResponseWriter, r *http.Request) {
	activityID := r.PathValue("activityID")
	if activityID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing activityID")
		return
	}
	userID, ok := actorID(w, r)
	if !ok {
		return
	}
	activity, err := c.Service.CloseCheckIn(r.Context(), userID, activityID)
	if err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, activity)
}

// SubmitCodeRequest is the request body for POST /checkin.
type SubmitCodeRequest struct {
	Code string `json:"code"`
}

// Validate implements Validator.
func (s SubmitCodeRequest) Validate() []string {
	if !codeRegex.MatchString(s.Code) {
		return []string{"code must be 6 digits"}
	}
	return nil
}

// AttendanceSuccessResponse is the success response envelope for POST /checkin (201).
type AttendanceSuccessResponse struct {
	Data  *domain.Attendance `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// SubmitCode godoc
// @Summary Check in with a code
// @Description Records attendance for the open activity matching the code. The user must be registered to the activity's event.
// @Tags check-in
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SubmitCodeRequest true "Check-in code"
// @Success 201 {object} controllers.AttendanceSuccessResponse "data contains the attendance"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (not registered)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (no open activity matches)"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (already checked in)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /checkin [post]
func (c *CheckInController) SubmitCode(w http.ResponseWriter, r *http.Request) {
	var req SubmitCodeRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := actorID(w, r)
	if !ok {
		return
	}
	att, err := c.Service.SubmitCode(r.Context(), userID, req.Code)
	if err != nil {
		respondError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, att)
}
