package email

import (
	"testing"

	"github.com/stretchr/testify/require"

	"eventplanner/internal/domain"
)

func TestTemplateRenderer_EventInvitation(t *testing.T) {
	renderer := NewTemplateRenderer()
	data := &domain.EventInvitationEmailData{
		Email:         "bea@example.com",
		OrganizerName: "Ada",
		EventTitle:    "Standup",
		EventDate:     "2025-01-10",
		EventLocation: "Remote",
	}

	subject, htmlBody, textBody, err := renderer.Render("event_invitation", data)
	require.NoError(t, err)
	require.Contains(t, subject, "Standup")
	require.Contains(t, htmlBody, "Ada")
	require.Contains(t, htmlBody, "Remote")
	require.Contains(t, textBody, "2025-01-10")
}

func TestTemplateRenderer_UnknownTemplate(t *testing.T) {
	renderer := NewTemplateRenderer()
	_, _, _, err := renderer.Render("no_such_template", nil)
	require.Error(t, err)
}
