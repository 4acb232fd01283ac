package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"eventum/internal/domain"
)

const (
	checkInCodeLength = 6
	maxCodeAttempts   = 5
)

type checkInService struct {
	activityRepo     domain.ActivityRepository
	attendanceRepo   domain.AttendanceRepository
	registrationRepo domain.RegistrationRepository
	eventRepo        domain.EventRepository
	userRepo         domain.UserRepository
	groupRepo        domain.GroupRepository
	emailService     domain.EmailService
	clock            domain.Clock
	logger           *slog.Logger
	contextTimeout   time.Duration
}

func NewCheckInService(
	activityRepo domain.ActivityRepository,
	attendanceRepo domain.AttendanceRepository,
	registrationRepo domain.RegistrationRepository,
	eventRepo domain.EventRepository,
	userRepo domain.UserRepository,
	groupRepo domain.GroupRepository,
	emailService domain.EmailService,
	clock domain.Clock,
	logger *slog.Logger,
	timeout time.Duration,
) domain.CheckInService {
	return &checkInService{
		activityRepo:     activityRepo,
		attendanceRepo:   attendanceRepo,
		registrationRepo: registrationRepo,
		eventRepo:        eventRepo,
		userRepo:         userRepo,
		groupRepo:        groupRepo,
		emailService:     emailService,
		clock:            clock,
		logger:           logger,
		contextTimeout:   timeout,
	}
}

func (s *checkInService) OpenCheckIn(ctx context.Context, actorID, activityID string) (*domain.Activity, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	activity, err := s.authorizeActivityAction(ctx, actorID, activityID)
	if err != nil {
		return nil, err
	}

	code, err := s.generateUniqueCode(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.activityRepo.SetCheckIn(ctx, activityID, &code, true); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("open check-in: %w", err)
	}
	activity.CheckInCode = &code
	activity.CheckInOpen = true
	return activity, nil
}

func (s *checkInService) CloseCheckIn(ctx context.Context, actorID, activityID string) (*domain.Activity, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	activity, err := s.authorizeActivityAction(ctx, actorID, activityID)
	if err != nil {
		return nil, err
	}
	// Clearing the code invalidates it immediately for anyone still holding it.
	if err := s.activityRepo.SetCheckIn(ctx, activityID, nil, false); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("close check-in: %w", err)
	}
	activity.CheckInCode = nil
	activity.CheckInOpen = false
	return activity, nil
}

func (s *checkInService) SubmitCode(ctx context.Context, actorID, code string) (*domain.Attendance, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	matches, err := s.activityRepo.ListOpenByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("resolve check-in code: %w", err)
	}
	// Codes are unique among open activities; anything but exactly one match
	// means the code identifies nothing.
	if len(matches) != 1 {
		return nil, domain.ErrInvalidCode
	}
	activity := matches[0]

	if _, err := s.registrationRepo.Get(ctx, activity.EventID, actorID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotRegistered
		}
		return nil, fmt.Errorf("get registration: %w", err)
	}

	att := domain.NewAttendance(activity.ID, actorID, s.clock.Now())
	if err := s.attendanceRepo.Create(ctx, att); err != nil {
		if errors.Is(err, domain.ErrDuplicateCheckIn) {
			return nil, domain.ErrDuplicateCheckIn
		}
		return nil, fmt.Errorf("create attendance: %w", err)
	}

	s.notifyGroupCredit(ctx, activity, actorID)
	return att, nil
}

// notifyGroupCredit emails the organizer when a member of the event's
// academic group checks in, so credit hours can be accounted. Failures only
// log; the check-in already succeeded.
func (s *checkInService) notifyGroupCredit(ctx context.Context, activity *domain.Activity, userID string) {
	event, err := s.eventRepo.GetByID(ctx, activity.EventID)
	if err != nil {
		s.logger.Warn("credit notification skipped, event lookup failed", "event_id", activity.EventID, "err", err)
		return
	}
	if event.GroupID == nil {
		return
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		s.logger.Warn("credit notification skipped, user lookup failed", "user_id", userID, "err", err)
		return
	}
	if user.GroupID == nil || *user.GroupID != *event.GroupID {
		return
	}
	group, err := s.groupRepo.GetByID(ctx, *event.GroupID)
	if err != nil {
		s.logger.Warn("credit notification skipped, group lookup failed", "group_id", *event.GroupID, "err", err)
		return
	}
	organizer, err := s.userRepo.GetByID(ctx, event.OrganizerID)
	if err != nil {
		s.logger.Warn("credit notification skipped, organizer lookup failed", "organizer_id", event.OrganizerID, "err", err)
		return
	}
	data := &domain.CheckInCreditEmailData{
		Email:         organizer.Email,
		OrganizerName: organizer.Name,
		StudentName:   user.Name,
		GroupName:     group.Name,
		ActivityTitle: activity.Title,
		EventTitle:    event.Title,
		CreditHours:   event.Workload,
	}
	if err := s.emailService.SendCheckInCredit(ctx, data); err != nil {
		s.logger.Warn("failed to queue credit notification", "event_id", event.ID, "err", err)
	}
}

func (s *checkInService) authorizeActivityAction(ctx context.Context, actorID, activityID string) (*domain.Activity, error) {
	activity, err := s.activityRepo.GetByID(ctx, activityID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get activity: %w", err)
	}
	event, err := s.eventRepo.GetByID(ctx, activity.EventID)
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
	return activity, nil
}

// generateUniqueCode draws 6-digit codes until one is free among open
// activities. Collisions are regenerated at issue time so an incoming code
// always resolves to at most one open activity.
func (s *checkInService) generateUniqueCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := generateCheckInCode()
		if err != nil {
			return "", fmt.Errorf("generate check-in code: %w", err)
		}
		inUse, err := s.activityRepo.OpenCodeInUse(ctx, code)
		if err != nil {
			return "", fmt.Errorf("check code uniqueness: %w", err)
		}
		if !inUse {
			return code, nil
		}
	}
	return "", fmt.Errorf("could not find a free check-in code after %d attempts", maxCodeAttempts)
}

var checkInCodeDigits = []rune("0123456789")

func generateCheckInCode() (string, error) {
	b := make([]rune, checkInCodeLength)
	max := big.NewInt(int64(len(checkInCodeDigits)))
	for i := 0; i < checkInCodeLength; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = checkInCodeDigits[n.Int64()]
	}
	return string(b), nil
}
