package services

import (
	"context"
	"fmt"

	"eventplanner/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer}
}

// SendEventInvitation sends the invitation email using the
// "event_invitation" template and the given data.
func (s *emailService) SendEventInvitation(ctx context.Context, data *domain.EventInvitationEmailData) error {
	if data == nil {
		return fmt.Errorf("event invitation data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("event_invitation", data)
	if err != nil {
		return fmt.Errorf("failed to render event_invitation template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send invitation email: %w", err)
	}
	return nil
}
