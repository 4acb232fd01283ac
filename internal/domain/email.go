package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the
// given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// WelcomeEmailData holds data for the account welcome email.
type WelcomeEmailData struct {
	Email string
	Name  string
}

// RegistrationConfirmedEmailData holds data for the registration
// confirmation email.
type RegistrationConfirmedEmailData struct {
	Email      string
	Name       string
	EventTitle string
}

// SubmissionDecisionEmailData holds data for the review decision email sent
// to the author.
type SubmissionDecisionEmailData struct {
	Email           string
	Name            string
	SubmissionTitle string
	EventTitle      string
	Decision        string
}

// CheckInCreditEmailData holds data for the credit-hours email sent to the
// organizer when a group member checks in.
type CheckInCreditEmailData struct {
	Email         string
	OrganizerName string
	StudentName   string
	GroupName     string
	ActivityTitle string
	EventTitle    string
	CreditHours   int
}

// EmailService renders domain emails and hands them to the dispatcher.
// Delivery is fire-and-forget: a returned error means the message could not
// be rendered or enqueued, never that transport failed.
type EmailService interface {
	SendWelcome(ctx context.Context, data *WelcomeEmailData) error
	SendRegistrationConfirmed(ctx context.Context, data *RegistrationConfirmedEmailData) error
	SendSubmissionDecision(ctx context.Context, data *SubmissionDecisionEmailData) error
	SendCheckInCredit(ctx context.Context, data *CheckInCreditEmailData) error
}
