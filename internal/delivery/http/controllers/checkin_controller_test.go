package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"eventum/internal/delivery/http/helpers"
	"eventum/internal/delivery/http/middleware"
	"eventum/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCheckInService implements domain.CheckInService for handler tests.
type fakeCheckInService struct {
	openErr      error
	openResult   *domain.Activity
	closeErr     error
	closeResult  *domain.Activity
	submitErr    error
	submitResult *domain.Attendance

	lastSubmitUserID string
	lastSubmitCode   string
}

func (f *fakeCheckInService) OpenCheckIn(ctx context.Context, actorID, activityID string) (*domain.Activity, error) {
	if f.openErr != nil {
		return nil, f.openErr
	}
	return f.openResult, nil
}

func (f *fakeCheckInService) CloseCheckIn(ctx context.Context, actorID, activityID string) (*domain.Activity, error) {
	if f.closeErr != nil {
		return nil, f.closeErr
	}
	return f.closeResult, nil
}

func (f *fakeCheckInService) SubmitCode(ctx context.Context, actorID, code string) (*domain.Attendance, error) {
	f.lastSubmitUserID = actorID
	f.lastSubmitCode = code
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	if f.submitResult != nil {
		return f.submitResult, nil
	}
	return domain.NewAttendance("act-1", actorID, time.Now()), nil
}

func TestCheckInController_OpenCheckIn(t *testing.T) {
	code := "482913"
	tests := []struct {
		name        string
		fakeErr     error
		fakeResult  *domain.Activity
		wantStatus  int
		wantErrCode string
	}{
		{
			name:       "success",
			fakeResult: &domain.Activity{ID: "act-1", CheckInCode: &code, CheckInOpen: true},
			wantStatus: http.StatusOK,
		},
		{
			name:        "forbidden",
			fakeErr:     domain.ErrForbidden,
			wantStatus:  http.StatusForbidden,
			wantErrCode: helpers.ErrCodeForbidden,
		},
		{
			name:        "activity not found",
			fakeErr:     domain.ErrNotFound,
			wantStatus:  http.StatusNotFound,
			wantErrCode: helpers.ErrCodeNotFound,
		},
		{
			name:        "service error",
			fakeErr:     errors.New("db error"),
			wantStatus:  http.StatusInternalServerError,
			wantErrCode: helpers.ErrCodeInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeCheckInService{openErr: tt.fakeErr, openResult: tt.fakeResult}
			ctrl := NewCheckInController(testLogger, fake)
			req := httptest.NewRequest(http.MethodPost, "http://test/activities/act-1/checkin/open", nil)
			req.SetPathValue("activityID", "act-1")
			req = req.WithContext(middleware.SetUserID(req.Context(), "user-123"))
			rr := httptest.NewRecorder()

			ctrl.OpenCheckIn(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			var envelope helpers.APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
			if tt.wantStatus == http.StatusOK {
				require.Nil(t, envelope.Error)
				dataBytes, err := json.Marshal(envelope.Data)
				require.NoError(t, err)
				var activity domain.Activity
				require.NoError(t, json.Unmarshal(dataBytes, &activity))
				require.NotNil(t, activity.CheckInCode)
				assert.Equal(t, code, *activity.CheckInCode)
				assert.True(t, activity.CheckInOpen)
				return
			}
			require.NotNil(t, envelope.Error)
			assert.Equal(t, tt.wantErrCode, envelope.Error.Code, "error code")
		})
	}
}

func TestCheckInController_SubmitCode(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		noUserContext  bool
		fakeErr        error
		wantStatus     int
		wantErrCode    string
		wantBodySubstr string
	}{
		{
			name:       "success",
			body:       `{"code":"482913"}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:           "malformed code",
			body:           `{"code":"12ab"}`,
			wantStatus:     http.StatusBadRequest,
			wantErrCode:    helpers.ErrCodeBadRequest,
			wantBodySubstr: "code must be 6 digits",
		},
		{
			name:           "invalid json",
			body:           `{invalid`,
			wantStatus:     http.StatusBadRequest,
			wantErrCode:    helpers.ErrCodeBadRequest,
			wantBodySubstr: "invalid",
		},
		{
			name:          "no user in context",
			body:          `{"code":"482913"}`,
			noUserContext: true,
			wantStatus:    http.StatusUnauthorized,
			wantErrCode:   helpers.ErrCodeUnauthorized,
		},
		{
			name:        "no open activity matches",
			body:        `{"code":"000000"}`,
			fakeErr:     domain.ErrInvalidCode,
			wantStatus:  http.StatusNotFound,
			wantErrCode: helpers.ErrCodeNotFound,
		},
		{
			name:        "not registered",
			body:        `{"code":"482913"}`,
			fakeErr:     domain.ErrNotRegistered,
			wantStatus:  http.StatusBadRequest,
			wantErrCode: helpers.ErrCodeBadRequest,
		},
		{
			name:        "duplicate check-in",
			body:        `{"code":"482913"}`,
			fakeErr:     domain.ErrDuplicateCheckIn,
			wantStatus:  http.StatusConflict,
			wantErrCode: helpers.ErrCodeConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeCheckInService{submitErr: tt.fakeErr}
			ctrl := NewCheckInController(testLogger, fake)
			req := httptest.NewRequest(http.MethodPost, "http://test/checkin", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			if !tt.noUserContext {
				req = req.WithContext(middleware.SetUserID(req.Context(), "user-123"))
			}
			rr := httptest.NewRecorder()

			ctrl.SubmitCode(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			var envelope helpers.APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
			if tt.wantStatus == http.StatusCreated {
				require.Nil(t, envelope.Error)
				assert.Equal(t, "user-123", fake.lastSubmitUserID)
				assert.Equal(t, "482913", fake.lastSubmitCode)
				return
			}
			require.NotNil(t, envelope.Error)
			assert.Equal(t, tt.wantErrCode, envelope.Error.Code, "error code")
			if tt.wantBodySubstr != "" {
				assert.Contains(t, envelope.Error.Message, tt.wantBodySubstr, "error message")
			}
		})
	}
}
