package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventum/internal/domain"
)

type eventService struct {
	eventRepo        domain.EventRepository
	activityRepo     domain.ActivityRepository
	registrationRepo domain.RegistrationRepository
	userRepo         domain.UserRepository
	clock            domain.Clock
	contextTimeout   time.Duration
}

func NewEventService(
	eventRepo domain.EventRepository,
	activityRepo domain.ActivityRepository,
	registrationRepo domain.RegistrationRepository,
	userRepo domain.UserRepository,
	clock domain.Clock,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		eventRepo:        eventRepo,
		activityRepo:     activityRepo,
		registrationRepo: registrationRepo,
		userRepo:         userRepo,
		clock:            clock,
		contextTimeout:   timeout,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, actorID string, event *domain.Event) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get actor: %w", err)
	}
	if !domain.Allow(actor, domain.ActionManageEvent, domain.Resource{EventOwnerID: actorID}) {
		return nil, domain.ErrForbidden
	}

	if event.Title == "" {
		return nil, domain.ErrInvalidInput
	}
	normalizeEventTimes(event)
	if err := validateEventWindows(event); err != nil {
		return nil, err
	}

	if event.Status == "" {
		event.Status = domain.EventDraft
	}
	event.OrganizerID = actorID
	now := s.clock.Now()
	event.CreatedAt = now
	event.UpdatedAt = now

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	// The organizer attends their own event; seed the ledger so check-in works
	// for them without a separate registration step.
	reg := domain.NewRegistration(event.ID, actorID, now)
	if err := s.registrationRepo.Create(ctx, reg); err != nil && !errors.Is(err, domain.ErrAlreadyRegistered) {
		return nil, fmt.Errorf("register organizer: %w", err)
	}
	return event, nil
}

func (s *eventService) GetEvent(ctx context.Context, eventID string) (*domain.Event, []*domain.Activity, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, fmt.Errorf("get event: %w", err)
	}
	activities, err := s.activityRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, nil, fmt.Errorf("list activities: %w", err)
	}
	return event, activities, nil
}

func (s *eventService) ListPublishedEvents(ctx context.Context) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.eventRepo.ListPublished(ctx)
}

func (s *eventService) ListMyEvents(ctx context.Context, actorID string) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.eventRepo.ListByOrganizerID(ctx, actorID)
}

func (s *eventService) UpdateEvent(ctx context.Context, actorID, eventID string, upd domain.EventUpdate) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.authorizeEventAction(ctx, actorID, eventID)
	if err != nil {
		return nil, err
	}
	// Schedule edits stop once the event has started.
	if !s.clock.Now().Before(event.StartsAt) {
		return nil, domain.ErrWindowClosed
	}
	merged := mergeEventUpdate(event, upd)
	if err := validateEventWindows(merged); err != nil {
		return nil, err
	}
	updated, err := s.eventRepo.Update(ctx, eventID, upd)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return updated, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, actorID, eventID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.authorizeEventAction(ctx, actorID, eventID); err != nil {
		return err
	}
	if err := s.eventRepo.Delete(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

func (s *eventService) CreateActivity(ctx context.Context, actorID string, activity *domain.Activity) (*domain.Activity, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.authorizeEventAction(ctx, actorID, activity.EventID)
	if err != nil {
		return nil, err
	}
	activity.StartsAt = activity.StartsAt.UTC()
	activity.EndsAt = activity.EndsAt.UTC()
	if err := validateActivitySpan(activity.StartsAt, activity.EndsAt, event); err != nil {
		return nil, err
	}
	now := s.clock.Now()
	activity.CheckInCode = nil
	activity.CheckInOpen = false
	activity.CreatedAt = now
	activity.UpdatedAt = now
	if err := s.activityRepo.Create(ctx, activity); err != nil {
		return nil, fmt.Errorf("create activity: %w", err)
	}
	return activity, nil
}

func (s *eventService) UpdateActivity(ctx context.Context, actorID, activityID string, upd domain.ActivityUpdate) (*domain.Activity, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	activity, err := s.activityRepo.GetByID(ctx, activityID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get activity: %w", err)
	}
	event, err := s.authorizeEventAction(ctx, actorID, activity.EventID)
	if err != nil {
		return nil, err
	}
	// Schedule edits stop once the activity has started.
	if !s.clock.Now().Before(activity.StartsAt) {
		return nil, domain.ErrWindowClosed
	}
	start := activity.StartsAt
	if upd.StartsAt != nil {
		t := upd.StartsAt.UTC()
		upd.StartsAt = &t
		start = t
	}
	end := activity.EndsAt
	if upd.EndsAt != nil {
		t := upd.EndsAt.UTC()
		upd.EndsAt = &t
		end = t
	}
	if err := validateActivitySpan(start, end, event); err != nil {
		return nil, err
	}
	updated, err := s.activityRepo.Update(ctx, activityID, upd)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update activity: %w", err)
	}
	return updated, nil
}

func (s *eventService) DeleteActivity(ctx context.Context, actorID, activityID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	activity, err := s.activityRepo.GetByID(ctx, activityID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get activity: %w", err)
	}
	if _, err := s.authorizeEventAction(ctx, actorID, activity.EventID); err != nil {
		return err
	}
	if !s.clock.Now().Before(activity.StartsAt) {
		return domain.ErrWindowClosed
	}
	if err := s.activityRepo.Delete(ctx, activityID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete activity: %w", err)
	}
	return nil
}

// authorizeEventAction loads the event and checks the actor may manage it.
func (s *eventService) authorizeEventAction(ctx context.Context, actorID, eventID string) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get actor: %w", err)
	}
	if !domain.Allow(actor, domain.ActionManageEvent, domain.Resource{EventOwnerID: event.OrganizerID}) {
		return nil, domain.ErrForbidden
	}
	return event, nil
}

func normalizeEventTimes(e *domain.Event) {
	e.StartsAt = e.StartsAt.UTC()
	e.EndsAt = e.EndsAt.UTC()
	e.RegistrationOpensAt = e.RegistrationOpensAt.UTC()
	e.RegistrationClosesAt = e.RegistrationClosesAt.UTC()
	if e.SubmissionOpensAt != nil {
		t := e.SubmissionOpensAt.UTC()
		e.SubmissionOpensAt = &t
	}
	if e.SubmissionClosesAt != nil {
		t := e.SubmissionClosesAt.UTC()
		e.SubmissionClosesAt = &t
	}
}

func validateEventWindows(e *domain.Event) error {
	if !e.EndsAt.After(e.StartsAt) {
		return domain.ErrInvalidInput
	}
	if !e.RegistrationClosesAt.After(e.RegistrationOpensAt) {
		return domain.ErrInvalidInput
	}
	// The submission window is optional but must come as a pair.
	if (e.SubmissionOpensAt == nil) != (e.SubmissionClosesAt == nil) {
		return domain.ErrInvalidInput
	}
	if e.HasSubmissionWindow() && !e.SubmissionClosesAt.After(*e.SubmissionOpensAt) {
		return domain.ErrInvalidInput
	}
	return nil
}

func validateActivitySpan(start, end time.Time, event *domain.Event) error {
	if !end.After(start) {
		return domain.ErrInvalidInput
	}
	if start.Before(event.StartsAt) || end.After(event.EndsAt) {
		return domain.ErrInvalidInput
	}
	return nil
}

// mergeEventUpdate applies upd over a copy of event so the resulting window
// set can be validated before the row changes.
func mergeEventUpdate(event *domain.Event, upd domain.EventUpdate) *domain.Event {
	merged := *event
	if upd.Title != nil {
		merged.Title = *upd.Title
	}
	if upd.Description != nil {
		merged.Description = *upd.Description
	}
	if upd.StartsAt != nil {
		merged.StartsAt = upd.StartsAt.UTC()
	}
	if upd.EndsAt != nil {
		merged.EndsAt = upd.EndsAt.UTC()
	}
	if upd.RegistrationOpensAt != nil {
		merged.RegistrationOpensAt = upd.RegistrationOpensAt.UTC()
	}
	if upd.RegistrationClosesAt != nil {
		merged.RegistrationClosesAt = upd.RegistrationClosesAt.UTC()
	}
	if upd.ClearSubmission {
		merged.SubmissionOpensAt = nil
		merged.SubmissionClosesAt = nil
	} else {
		if upd.SubmissionOpensAt != nil {
			t := upd.SubmissionOpensAt.UTC()
			merged.SubmissionOpensAt = &t
		}
		if upd.SubmissionClosesAt != nil {
			t := upd.SubmissionClosesAt.UTC()
			merged.SubmissionClosesAt = &t
		}
	}
	if upd.Status != nil {
		merged.Status = *upd.Status
	}
	if upd.Workload != nil {
		merged.Workload = *upd.Workload
	}
	return &merged
}
