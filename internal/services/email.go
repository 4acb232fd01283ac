package services

import (
	"context"
	"fmt"

	"eventum/internal/domain"
)

type emailService struct {
	renderer   domain.EmailTemplateRenderer
	dispatcher domain.Dispatcher
}

// NewEmailService returns an EmailService that renders templates and hands
// the result to the dispatcher. Transport failures never reach the caller.
func NewEmailService(renderer domain.EmailTemplateRenderer, dispatcher domain.Dispatcher) domain.EmailService {
	return &emailService{renderer: renderer, dispatcher: dispatcher}
}

func (s *emailService) SendWelcome(ctx context.Context, data *domain.WelcomeEmailData) error {
	if data == nil {
		return fmt.Errorf("welcome email data is nil")
	}
	return s.enqueue("welcome", data.Email, data)
}

func (s *emailService) SendRegistrationConfirmed(ctx context.Context, data *domain.RegistrationConfirmedEmailData) error {
	if data == nil {
		return fmt.Errorf("registration confirmed email data is nil")
	}
	return s.enqueue("registration_confirmed", data.Email, data)
}

func (s *emailService) SendSubmissionDecision(ctx context.Context, data *domain.SubmissionDecisionEmailData) error {
	if data == nil {
		return fmt.Errorf("submission decision email data is nil")
	}
	return s.enqueue("submission_decision", data.Email, data)
}

func (s *emailService) SendCheckInCredit(ctx context.Context, data *domain.CheckInCreditEmailData) error {
	if data == nil {
		return fmt.Errorf("check-in credit email data is nil")
	}
	return s.enqueue("checkin_credit", data.Email, data)
}

func (s *emailService) enqueue(templateName, to string, data interface{}) error {
	subject, htmlBody, textBody, err := s.renderer.Render(templateName, data)
	if err != nil {
		return fmt.Errorf("failed to render %s template: %w", templateName, err)
	}
	s.dispatcher.Enqueue(domain.NewNotificationJob(to, subject, htmlBody, textBody))
	return nil
}
