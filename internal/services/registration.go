package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"eventum/internal/domain"
)

type registrationService struct {
	registrationRepo domain.RegistrationRepository
	eventRepo        domain.EventRepository
	userRepo         domain.UserRepository
	emailService     domain.EmailService
	clock            domain.Clock
	logger           *slog.Logger
	contextTimeout   time.Duration
}

func NewRegistrationService(
	registrationRepo domain.RegistrationRepository,
	eventRepo domain.EventRepository,
	userRepo domain.UserRepository,
	emailService domain.EmailService,
	clock domain.Clock,
	logger *slog.Logger,
	timeout time.Duration,
) domain.RegistrationService {
	return &registrationService{
		registrationRepo: registrationRepo,
		eventRepo:        eventRepo,
		userRepo:         userRepo,
		emailService:     emailService,
		clock:            clock,
		logger:           logger,
		contextTimeout:   timeout,
	}
}

func (s *registrationService) Register(ctx context.Context, actorID, eventID string) (*domain.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	// A draft event is not open for registration, same outcome as a closed
	// window.
	if event.Status != domain.EventPublished {
		return nil, domain.ErrWindowClosed
	}
	if !domain.WindowOpen(s.clock.Now(), event.RegistrationOpensAt, event.RegistrationClosesAt) {
		return nil, domain.ErrWindowClosed
	}

	// The insert is the arbiter under concurrency: the composite key rejects
	// the losing duplicate, no read-then-write race.
	reg := domain.NewRegistration(eventID, actorID, s.clock.Now())
	if err := s.registrationRepo.Create(ctx, reg); err != nil {
		if errors.Is(err, domain.ErrAlreadyRegistered) {
			return nil, domain.ErrAlreadyRegistered
		}
		return nil, fmt.Errorf("create registration: %w", err)
	}

	user, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		s.logger.Warn("registered user lookup failed, skipping confirmation email", "user_id", actorID, "err", err)
		return reg, nil
	}
	data := &domain.RegistrationConfirmedEmailData{
		Email:      user.Email,
		Name:       user.Name,
		EventTitle: event.Title,
	}
	if err := s.emailService.SendRegistrationConfirmed(ctx, data); err != nil {
		s.logger.Warn("failed to queue registration confirmation", "user_id", actorID, "event_id", eventID, "err", err)
	}
	return reg, nil
}

// Cancel removes the registration. The registration window does not gate
// cancellation; participants can always withdraw.
func (s *registrationService) Cancel(ctx context.Context, actorID, eventID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.registrationRepo.Delete(ctx, eventID, actorID); err != nil {
		if errors.Is(err, domain.ErrNotRegistered) {
			return domain.ErrNotRegistered
		}
		return fmt.Errorf("delete registration: %w", err)
	}
	return nil
}

func (s *registrationService) ListMyRegistrations(ctx context.Context, actorID string) ([]*domain.RegistrationWithEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	regs, err := s.registrationRepo.ListByUserID(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	out := make([]*domain.RegistrationWithEvent, 0, len(regs))
	for _, reg := range regs {
		event, err := s.eventRepo.GetByID(ctx, reg.EventID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("get event: %w", err)
		}
		out = append(out, &domain.RegistrationWithEvent{Registration: reg, Event: event})
	}
	return out, nil
}

func (s *registrationService) ListParticipants(ctx context.Context, actorID, eventID string) ([]*domain.Participant, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	participants, err := s.registrationRepo.ListParticipants(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	if event.OrganizerID == actorID {
		return participants, nil
	}
	// Non-owners only see opted-in participants, without email addresses.
	public := make([]*domain.Participant, 0, len(participants))
	for _, p := range participants {
		if !p.AllowPublicProfile {
			continue
		}
		public = append(public, &domain.Participant{
			UserID:             p.UserID,
			Name:               p.Name,
			AllowPublicProfile: true,
		})
	}
	return public, nil
}
