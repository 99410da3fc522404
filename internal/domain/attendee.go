package domain

import (
	"context"
	"time"
)

// Membership roles. Every event has exactly one organizer row, created in
// the same transaction as the event itself and never changed afterward.
const (
	RoleOrganizer = "organizer"
	RoleAttendee  = "attendee"
)

// Attendance statuses. A new membership starts as pending; transitions
// among the active statuses are free-form once membership exists.
const (
	StatusPending  = "pending"
	StatusGoing    = "going"
	StatusMaybe    = "maybe"
	StatusNotGoing = "not_going"
)

// ValidStatus reports whether s is one of the enumerated attendance statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusGoing, StatusMaybe, StatusNotGoing:
		return true
	}
	return false
}

// ValidRole reports whether s is one of the enumerated membership roles.
func ValidRole(s string) bool {
	return s == RoleOrganizer || s == RoleAttendee
}

// Attendee is a membership row: one (event, user) pair with its role and
// RSVP status. The pair is unique per event.
// swagger:model Attendee
type Attendee struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	UserID    string    `json:"user_id"`
	Role      string    `json:"role"`
	Status    string    `json:"attendance_status"`
	CreatedAt time.Time `json:"created_at"`
}

// NewAttendee returns a membership row with status pending.
func NewAttendee(eventID, userID, role string, createdAt time.Time) *Attendee {
	return &Attendee{
		EventID:   eventID,
		UserID:    userID,
		Role:      role,
		Status:    StatusPending,
		CreatedAt: createdAt,
	}
}

// SentInvitation is one row of an organizer's cross-event invitation
// report: the event, the invited user, and that user's current status.
// swagger:model SentInvitation
type SentInvitation struct {
	EventID          string    `json:"event_id"`
	EventTitle       string    `json:"event_title"`
	EventDate        time.Time `json:"event_date"`
	InvitedUserID    string    `json:"invited_user_id"`
	InvitedUserName  string    `json:"invited_user_name"`
	InvitedUserEmail string    `json:"invited_user_email"`
	Status           string    `json:"attendance_status"`
	InvitedAt        time.Time `json:"invited_at"`
}

// AttendeeRepository defines storage operations for membership rows.
// Add joins the caller-supplied transaction when tx is non-nil and returns
// ErrAlreadyMember when the (event, user) pair already exists; the unique
// constraint is the correctness backstop for concurrent invites.
// UpdateStatus returns ErrNotFound when no row matched, which callers that
// already verified membership should treat as a lost race.
type AttendeeRepository interface {
	Add(ctx context.Context, tx Tx, attendee *Attendee) error
	ListByEventID(ctx context.Context, eventID string) ([]*Attendee, error)
	IsOrganizer(ctx context.Context, eventID, userID string) (bool, error)
	IsMember(ctx context.Context, eventID, userID string) (bool, error)
	UpdateStatus(ctx context.Context, eventID, userID, status string) error
	ListInvitedEvents(ctx context.Context, userID string) ([]*Event, error)
	ListSentInvitations(ctx context.Context, organizerID string) ([]*SentInvitation, error)
}
