package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"eventum/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func submissionFixture(now time.Time) (*fakeEventRepo, *fakeUserRepo) {
	opens := now.Add(-time.Hour)
	closes := now.Add(time.Hour)
	event := &domain.Event{
		ID:                   "ev-1",
		Title:                "GopherCon Campus",
		StartsAt:             now.Add(24 * time.Hour),
		EndsAt:               now.Add(48 * time.Hour),
		RegistrationOpensAt:  now.Add(-2 * time.Hour),
		RegistrationClosesAt: now.Add(2 * time.Hour),
		SubmissionOpensAt:    &opens,
		SubmissionClosesAt:   &closes,
		Status:               domain.EventPublished,
		OrganizerID:          "org-1",
	}
	organizer := &domain.User{ID: "org-1", Name: "Olga", Email: "olga@example.com", Role: domain.RoleOrganizer}
	speaker := &domain.User{ID: "spk-1", Name: "Sam", Email: "sam@example.com", Role: domain.RoleSpeaker}
	participant := &domain.User{ID: "user-1", Name: "Ana", Email: "ana@example.com", Role: domain.RoleParticipant}
	return newFakeEventRepo(event), newFakeUserRepo(organizer, speaker, participant)
}

func newSubmissionServiceForTest(now time.Time, events *fakeEventRepo, users *fakeUserRepo, subs *fakeSubmissionRepo, emails *fakeEmailService) domain.SubmissionService {
	return NewSubmissionService(subs, events, users, emails, fixedClock{now: now}, testLogger(), 2*time.Second)
}

func TestSubmissionService_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		actorID string
		mutate  func(e *domain.Event)
		wantErr error
	}{
		{
			name:    "speaker inside window",
			actorID: "spk-1",
		},
		{
			name:    "participant cannot submit",
			actorID: "user-1",
			wantErr: domain.ErrForbidden,
		},
		{
			name:    "speaker after window closes",
			actorID: "spk-1",
			mutate: func(e *domain.Event) {
				closed := now.Add(-time.Minute)
				e.SubmissionClosesAt = &closed
			},
			wantErr: domain.ErrWindowClosed,
		},
		{
			name:    "event without submission window",
			actorID: "spk-1",
			mutate: func(e *domain.Event) {
				e.SubmissionOpensAt = nil
				e.SubmissionClosesAt = nil
			},
			wantErr: domain.ErrWindowClosed,
		},
		{
			name:    "draft event is invisible",
			actorID: "spk-1",
			mutate:  func(e *domain.Event) { e.Status = domain.EventDraft },
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, users := submissionFixture(now)
			if tt.mutate != nil {
				tt.mutate(events.byID["ev-1"])
			}
			subs := newFakeSubmissionRepo()
			svc := newSubmissionServiceForTest(now, events, users, subs, newFakeEmailService())

			sub, err := svc.Create(ctx, tt.actorID, "ev-1", "Generics in Practice", "uploads/talk.pdf")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, domain.SubmissionSubmitted, sub.Status)
			assert.Equal(t, tt.actorID, sub.AuthorID)
		})
	}
}

func TestSubmissionService_Decide(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		actorID   string
		initial   domain.SubmissionStatus
		target    domain.SubmissionStatus
		wantErr   error
		wantEmail bool
	}{
		{name: "approve submitted", actorID: "org-1", initial: domain.SubmissionSubmitted, target: domain.SubmissionApproved, wantEmail: true},
		{name: "reject under review", actorID: "org-1", initial: domain.SubmissionUnderReview, target: domain.SubmissionRejected, wantEmail: true},
		{name: "terminal rejects further decisions", actorID: "org-1", initial: domain.SubmissionApproved, target: domain.SubmissionRejected, wantErr: domain.ErrInvalidTransition},
		{name: "decision target must be terminal", actorID: "org-1", initial: domain.SubmissionSubmitted, target: domain.SubmissionUnderReview, wantErr: domain.ErrInvalidTransition},
		{name: "author cannot decide", actorID: "spk-1", initial: domain.SubmissionSubmitted, target: domain.SubmissionApproved, wantErr: domain.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, users := submissionFixture(now)
			subs := newFakeSubmissionRepo(&domain.Submission{
				ID:       "sub-1",
				EventID:  "ev-1",
				AuthorID: "spk-1",
				Title:    "Generics in Practice",
				Status:   tt.initial,
			})
			emails := newFakeEmailService()
			svc := newSubmissionServiceForTest(now, events, users, subs, emails)

			sub, err := svc.Decide(ctx, tt.actorID, "sub-1", tt.target)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, emails.decisions)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.target, sub.Status)
			if tt.wantEmail {
				require.Len(t, emails.decisions, 1)
				assert.Equal(t, "sam@example.com", emails.decisions[0].Email)
				assert.Equal(t, string(tt.target), emails.decisions[0].Decision)
			}
		})
	}
}

// Concurrent reviewers race on the same submission; the conditional update
// lets exactly one decision land.
func TestSubmissionService_Decide_concurrent(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)

	events, users := submissionFixture(now)
	subs := newFakeSubmissionRepo(&domain.Submission{
		ID:       "sub-1",
		EventID:  "ev-1",
		AuthorID: "spk-1",
		Title:    "Generics in Practice",
		Status:   domain.SubmissionSubmitted,
	})
	svc := newSubmissionServiceForTest(now, events, users, subs, newFakeEmailService())

	const attempts = 16
	var wg sync.WaitGroup
	errs := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		target := domain.SubmissionApproved
		if i%2 == 1 {
			target = domain.SubmissionRejected
		}
		wg.Add(1)
		go func(target domain.SubmissionStatus) {
			defer wg.Done()
			_, err := svc.Decide(ctx, "org-1", "sub-1", target)
			errs <- err
		}(target)
	}
	wg.Wait()
	close(errs)

	successes, conflicts := 0, 0
	for err := range errs {
		switch {
		case err == nil:
			successes++
		case err == domain.ErrInvalidTransition:
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, attempts-1, conflicts)

	final, err := subs.GetByID(ctx, "sub-1")
	require.NoError(t, err)
	assert.True(t, final.Status.Terminal())
}

func TestSubmissionService_ListEventSubmissions_owner_only(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)

	events, users := submissionFixture(now)
	subs := newFakeSubmissionRepo(&domain.Submission{ID: "sub-1", EventID: "ev-1", AuthorID: "spk-1", Status: domain.SubmissionSubmitted})
	svc := newSubmissionServiceForTest(now, events, users, subs, newFakeEmailService())

	got, err := svc.ListEventSubmissions(ctx, "org-1", "ev-1")
	require.NoError(t, err)
	require.Len(t, got, 1)

	_, err = svc.ListEventSubmissions(ctx, "spk-1", "ev-1")
	require.ErrorIs(t, err, domain.ErrForbidden)
}
