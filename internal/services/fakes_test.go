package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"eventum/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fixedClock returns the same instant on every call.
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

// fakeUserRepo is an in-memory UserRepository for tests.
type fakeUserRepo struct {
	byID   map[string]*domain.User
	nextID int
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	f := &fakeUserRepo{byID: make(map[string]*domain.User), nextID: 1}
	for _, u := range users {
		f.byID[u.ID] = u
	}
	return f
}

func (f *fakeUserRepo) Create(ctx context.Context, u *domain.User) error {
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return domain.ErrDuplicateEmail
		}
	}
	u.ID = fmt.Sprintf("user-%d", f.nextID)
	f.nextID++
	f.byID[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) UpdateSettings(ctx context.Context, id string, name, email *string, allowPublicProfile *bool) (*domain.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if name != nil {
		u.Name = *name
	}
	if email != nil {
		u.Email = *email
	}
	if allowPublicProfile != nil {
		u.AllowPublicProfile = *allowPublicProfile
	}
	return u, nil
}

func (f *fakeUserRepo) SetGroup(ctx context.Context, id string, groupID *string) error {
	u, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.GroupID = groupID
	return nil
}

// fakeEventRepo is an in-memory EventRepository for tests.
type fakeEventRepo struct {
	byID   map[string]*domain.Event
	nextID int
}

func newFakeEventRepo(events ...*domain.Event) *fakeEventRepo {
	f := &fakeEventRepo{byID: make(map[string]*domain.Event), nextID: 1}
	for _, e := range events {
		f.byID[e.ID] = e
	}
	return f
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	e.ID = fmt.Sprintf("ev-%d", f.nextID)
	f.nextID++
	f.byID[e.ID] = e
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if e, ok := f.byID[id]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) ListPublished(ctx context.Context) ([]*domain.Event, error) {
	out := make([]*domain.Event, 0)
	for _, e := range f.byID {
		if e.Status == domain.EventPublished {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) ListByOrganizerID(ctx context.Context, organizerID string) ([]*domain.Event, error) {
	out := make([]*domain.Event, 0)
	for _, e := range f.byID {
		if e.OrganizerID == organizerID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) Update(ctx context.Context, id string, upd domain.EventUpdate) (*domain.Event, error) {
	e, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if upd.Title != nil {
		e.Title = *upd.Title
	}
	if upd.Description != nil {
		e.Description = *upd.Description
	}
	if upd.StartsAt != nil {
		e.StartsAt = *upd.StartsAt
	}
	if upd.EndsAt != nil {
		e.EndsAt = *upd.EndsAt
	}
	if upd.RegistrationOpensAt != nil {
		e.RegistrationOpensAt = *upd.RegistrationOpensAt
	}
	if upd.RegistrationClosesAt != nil {
		e.RegistrationClosesAt = *upd.RegistrationClosesAt
	}
	if upd.ClearSubmission {
		e.SubmissionOpensAt = nil
		e.SubmissionClosesAt = nil
	} else {
		if upd.SubmissionOpensAt != nil {
			e.SubmissionOpensAt = upd.SubmissionOpensAt
		}
		if upd.SubmissionClosesAt != nil {
			e.SubmissionClosesAt = upd.SubmissionClosesAt
		}
	}
	if upd.Status != nil {
		e.Status = *upd.Status
	}
	if upd.Workload != nil {
		e.Workload = *upd.Workload
	}
	return e, nil
}

func (f *fakeEventRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

// fakeActivityRepo is an in-memory ActivityRepository for tests.
type fakeActivityRepo struct {
	byID   map[string]*domain.Activity
	nextID int
}

func newFakeActivityRepo(activities ...*domain.Activity) *fakeActivityRepo {
	f := &fakeActivityRepo{byID: make(map[string]*domain.Activity), nextID: 1}
	for _, a := range activities {
		f.byID[a.ID] = a
	}
	return f
}

func (f *fakeActivityRepo) Create(ctx context.Context, a *domain.Activity) error {
	a.ID = fmt.Sprintf("act-%d", f.nextID)
	f.nextID++
	f.byID[a.ID] = a
	return nil
}

func (f *fakeActivityRepo) GetByID(ctx context.Context, id string) (*domain.Activity, error) {
	if a, ok := f.byID[id]; ok {
		return a, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeActivityRepo) ListByEventID(ctx context.Context, eventID string) ([]*domain.Activity, error) {
	out := make([]*domain.Activity, 0)
	for _, a := range f.byID {
		if a.EventID == eventID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeActivityRepo) Update(ctx context.Context, id string, upd domain.ActivityUpdate) (*domain.Activity, error) {
	a, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if upd.Title != nil {
		a.Title = *upd.Title
	}
	if upd.Description != nil {
		a.Description = *upd.Description
	}
	if upd.StartsAt != nil {
		a.StartsAt = *upd.StartsAt
	}
	if upd.EndsAt != nil {
		a.EndsAt = *upd.EndsAt
	}
	if upd.Location != nil {
		a.Location = *upd.Location
	}
	return a, nil
}

func (f *fakeActivityRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeActivityRepo) SetCheckIn(ctx context.Context, id string, code *string, open bool) error {
	a, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	a.CheckInCode = code
	a.CheckInOpen = open
	return nil
}

func (f *fakeActivityRepo) ListOpenByCode(ctx context.Context, code string) ([]*domain.Activity, error) {
	out := make([]*domain.Activity, 0)
	for _, a := range f.byID {
		if a.CheckInOpen && a.CheckInCode != nil && *a.CheckInCode == code {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeActivityRepo) OpenCodeInUse(ctx context.Context, code string) (bool, error) {
	matches, _ := f.ListOpenByCode(ctx, code)
	return len(matches) > 0, nil
}

// fakeRegistrationRepo is an in-memory RegistrationRepository. The mutex
// makes it safe for the concurrent registration tests.
type fakeRegistrationRepo struct {
	mu           sync.Mutex
	byKey        map[string]*domain.Registration
	participants []*domain.Participant
}

func newFakeRegistrationRepo() *fakeRegistrationRepo {
	return &fakeRegistrationRepo{byKey: make(map[string]*domain.Registration)}
}

func regKey(eventID, userID string) string { return eventID + "|" + userID }

func (f *fakeRegistrationRepo) Create(ctx context.Context, reg *domain.Registration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := regKey(reg.EventID, reg.UserID)
	if _, ok := f.byKey[key]; ok {
		return domain.ErrAlreadyRegistered
	}
	f.byKey[key] = reg
	return nil
}

func (f *fakeRegistrationRepo) Get(ctx context.Context, eventID, userID string) (*domain.Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if reg, ok := f.byKey[regKey(eventID, userID)]; ok {
		return reg, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeRegistrationRepo) Delete(ctx context.Context, eventID, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := regKey(eventID, userID)
	if _, ok := f.byKey[key]; !ok {
		return domain.ErrNotRegistered
	}
	delete(f.byKey, key)
	return nil
}

func (f *fakeRegistrationRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*domain.Registration, 0)
	for _, reg := range f.byKey {
		if reg.UserID == userID {
			out = append(out, reg)
		}
	}
	return out, nil
}

func (f *fakeRegistrationRepo) ListParticipants(ctx context.Context, eventID string) ([]*domain.Participant, error) {
	return f.participants, nil
}

func (f *fakeRegistrationRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.byKey)
}

// fakeAttendanceRepo is an in-memory AttendanceRepository.
type fakeAttendanceRepo struct {
	mu    sync.Mutex
	byKey map[string]*domain.Attendance
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{byKey: make(map[string]*domain.Attendance)}
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, att *domain.Attendance) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := regKey(att.ActivityID, att.UserID)
	if _, ok := f.byKey[key]; ok {
		return domain.ErrDuplicateCheckIn
	}
	f.byKey[key] = att
	return nil
}

func (f *fakeAttendanceRepo) Get(ctx context.Context, activityID, userID string) (*domain.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if att, ok := f.byKey[regKey(activityID, userID)]; ok {
		return att, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeAttendanceRepo) ListByActivityID(ctx context.Context, activityID string) ([]*domain.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*domain.Attendance, 0)
	for _, att := range f.byKey {
		if att.ActivityID == activityID {
			out = append(out, att)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*domain.Attendance, 0)
	for _, att := range f.byKey {
		if att.UserID == userID {
			out = append(out, att)
		}
	}
	return out, nil
}

// fakeSubmissionRepo is an in-memory SubmissionRepository with a CAS-style
// DecideStatus matching the SQL implementation.
type fakeSubmissionRepo struct {
	mu     sync.Mutex
	byID   map[string]*domain.Submission
	nextID int
}

func newFakeSubmissionRepo(subs ...*domain.Submission) *fakeSubmissionRepo {
	f := &fakeSubmissionRepo{byID: make(map[string]*domain.Submission), nextID: 1}
	for _, s := range subs {
		f.byID[s.ID] = s
	}
	return f
}

func (f *fakeSubmissionRepo) Create(ctx context.Context, s *domain.Submission) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s.ID = fmt.Sprintf("sub-%d", f.nextID)
	f.nextID++
	f.byID[s.ID] = s
	return nil
}

func (f *fakeSubmissionRepo) GetByID(ctx context.Context, id string) (*domain.Submission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.byID[id]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeSubmissionRepo) ListByAuthorID(ctx context.Context, authorID string) ([]*domain.Submission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*domain.Submission, 0)
	for _, s := range f.byID {
		if s.AuthorID == authorID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSubmissionRepo) ListByEventID(ctx context.Context, eventID string) ([]*domain.Submission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*domain.Submission, 0)
	for _, s := range f.byID {
		if s.EventID == eventID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSubmissionRepo) DecideStatus(ctx context.Context, id string, status domain.SubmissionStatus) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.byID[id]
	if !ok {
		return false, nil
	}
	if s.Status.Terminal() {
		return false, nil
	}
	s.Status = status
	return true, nil
}

// fakeGroupRepo is an in-memory GroupRepository.
type fakeGroupRepo struct {
	byID map[string]*domain.StudyGroup
}

func newFakeGroupRepo(groups ...*domain.StudyGroup) *fakeGroupRepo {
	f := &fakeGroupRepo{byID: make(map[string]*domain.StudyGroup)}
	for _, g := range groups {
		f.byID[g.ID] = g
	}
	return f
}

func (f *fakeGroupRepo) GetByID(ctx context.Context, id string) (*domain.StudyGroup, error) {
	if g, ok := f.byID[id]; ok {
		return g, nil
	}
	return nil, domain.ErrNotFound
}

// fakeEmailService records which notifications were requested.
type fakeEmailService struct {
	mu        sync.Mutex
	welcome   []*domain.WelcomeEmailData
	confirmed []*domain.RegistrationConfirmedEmailData
	decisions []*domain.SubmissionDecisionEmailData
	credits   []*domain.CheckInCreditEmailData
}

func newFakeEmailService() *fakeEmailService { return &fakeEmailService{} }

func (f *fakeEmailService) SendWelcome(ctx context.Context, data *domain.WelcomeEmailData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.welcome = append(f.welcome, data)
	return nil
}

func (f *fakeEmailService) SendRegistrationConfirmed(ctx context.Context, data *domain.RegistrationConfirmedEmailData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.confirmed = append(f.confirmed, data)
	return nil
}

func (f *fakeEmailService) SendSubmissionDecision(ctx context.Context, data *domain.SubmissionDecisionEmailData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.decisions = append(f.decisions, data)
	return nil
}

func (f *fakeEmailService) SendCheckInCredit(ctx context.Context, data *domain.CheckInCreditEmailData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.credits = append(f.credits, data)
	return nil
}
