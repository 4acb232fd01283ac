package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"eventum/internal/domain"
)

type submissionService struct {
	submissionRepo domain.SubmissionRepository
	eventRepo      domain.EventRepository
	userRepo       domain.UserRepository
	emailService   domain.EmailService
	clock          domain.Clock
	logger         *slog.Logger
	contextTimeout time.Duration
}

func NewSubmissionService(
	submissionRepo domain.SubmissionRepository,
	eventRepo domain.EventRepository,
	userRepo domain.UserRepository,
	emailService domain.EmailService,
	clock domain.Clock,
	logger *slog.Logger,
	timeout time.Duration,
) domain.SubmissionService {
	return &submissionService{
		submissionRepo: submissionRepo,
		eventRepo:      eventRepo,
		userRepo:       userRepo,
		emailService:   emailService,
		clock:          clock,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *submissionService) Create(ctx context.Context, actorID, eventID, title, fileRef string) (*domain.Submission, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if title == "" || fileRef == "" {
		return nil, domain.ErrInvalidInput
	}
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if event.Status != domain.EventPublished {
		return nil, domain.ErrNotFound
	}
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get actor: %w", err)
	}

	windowOpen := event.HasSubmissionWindow() &&
		domain.WindowOpen(s.clock.Now(), *event.SubmissionOpensAt, *event.SubmissionClosesAt)
	if !domain.Allow(actor, domain.ActionCreateSubmission, domain.Resource{SubmissionWindowOpen: windowOpen}) {
		if actor.Role == domain.RoleSpeaker && !windowOpen {
			return nil, domain.ErrWindowClosed
		}
		return nil, domain.ErrForbidden
	}

	now := s.clock.Now()
	sub := &domain.Submission{
		EventID:   eventID,
		AuthorID:  actorID,
		Title:     title,
		FileRef:   fileRef,
		Status:    domain.SubmissionSubmitted,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.submissionRepo.Create(ctx, sub); err != nil {
		return nil, fmt.Errorf("create submission: %w", err)
	}
	return sub, nil
}

func (s *submissionService) Decide(ctx context.Context, actorID, submissionID string, newStatus domain.SubmissionStatus) (*domain.Submission, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	sub, err := s.submissionRepo.GetByID(ctx, submissionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get submission: %w", err)
	}
	event, err := s.eventRepo.GetByID(ctx, sub.EventID)
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
	if !domain.Allow(actor, domain.ActionDecideSubmission, domain.Resource{EventOwnerID: event.OrganizerID}) {
		return nil, domain.ErrForbidden
	}
	if !sub.Status.CanDecideTo(newStatus) {
		return nil, domain.ErrInvalidTransition
	}

	// Conditional update: a concurrent reviewer who already decided wins and
	// this call reports the conflict instead of overwriting.
	won, err := s.submissionRepo.DecideStatus(ctx, submissionID, newStatus)
	if err != nil {
		return nil, fmt.Errorf("decide submission: %w", err)
	}
	if !won {
		return nil, domain.ErrInvalidTransition
	}
	sub.Status = newStatus
	sub.UpdatedAt = s.clock.Now()

	s.notifyAuthor(ctx, sub, event)
	return sub, nil
}

func (s *submissionService) notifyAuthor(ctx context.Context, sub *domain.Submission, event *domain.Event) {
	author, err := s.userRepo.GetByID(ctx, sub.AuthorID)
	if err != nil {
		s.logger.Warn("decision notification skipped, author lookup failed", "author_id", sub.AuthorID, "err", err)
		return
	}
	data := &domain.SubmissionDecisionEmailData{
		Email:           author.Email,
		Name:            author.Name,
		SubmissionTitle: sub.Title,
		EventTitle:      event.Title,
		Decision:        string(sub.Status),
	}
	if err := s.emailService.SendSubmissionDecision(ctx, data); err != nil {
		s.logger.Warn("failed to queue decision notification", "submission_id", sub.ID, "err", err)
	}
}

func (s *submissionService) ListMySubmissions(ctx context.Context, actorID string) ([]*domain.Submission, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.submissionRepo.ListByAuthorID(ctx, actorID)
}

func (s *submissionService) ListEventSubmissions(ctx context.Context, actorID, eventID string) ([]*domain.Submission, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if event.OrganizerID != actorID {
		return nil, domain.ErrForbidden
	}
	return s.submissionRepo.ListByEventID(ctx, eventID)
}
