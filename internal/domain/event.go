package domain

import (
	"context"
	"time"
)

// Event represents a planned event. OrganizerID references the user who
// created the event and is immutable after creation.
// swagger:model Event
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Date        time.Time `json:"date"`
	Time        string    `json:"time"` // clock time, "HH:MM:SS"
	Location    string    `json:"location"`
	Description *string   `json:"description"`
	OrganizerID string    `json:"organizer_user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewEvent returns a new Event with the given fields. ID is set by the
// repository on create.
func NewEvent(organizerID, title string, date time.Time, clockTime, location string, description *string, createdAt, updatedAt time.Time) *Event {
	return &Event{
		Title:       title,
		Date:        date,
		Time:        clockTime,
		Location:    location,
		Description: description,
		OrganizerID: organizerID,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

// EventSearchFilter holds the optional predicates for Search. Nil fields
// are not applied. Keyword and Location match as case-insensitive
// substrings of title/description and location; Role and Status match the
// searching user's membership row exactly.
type EventSearchFilter struct {
	Keyword   *string
	StartDate *time.Time
	EndDate   *time.Time
	Role      *string
	Location  *string
	Status    *string
}

// EventWithAttendees bundles an event with its full membership list.
// swagger:model EventWithAttendees
type EventWithAttendees struct {
	*Event
	Attendees []*Attendee `json:"attendees"`
}

// Tx is a transaction scope passed to repository writes that must commit
// or roll back together.
type Tx interface {
	Commit() error
	Rollback() error
}

// TxBeginner opens a transaction scope against the storage engine.
type TxBeginner interface {
	BeginTx(ctx context.Context) (Tx, error)
}

// EventRepository defines the interface for event storage. Create joins
// the caller-supplied transaction when tx is non-nil. Delete removes the
// event row; attendance rows are removed by the storage engine's
// ON DELETE CASCADE, not by application code.
type EventRepository interface {
	Create(ctx context.Context, tx Tx, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	ListByOrganizerID(ctx context.Context, userID string) ([]*Event, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, userID string, filter EventSearchFilter) ([]*Event, error)
}

// CreateEventInput carries the validated fields for a new event.
type CreateEventInput struct {
	Title       string
	Date        time.Time
	Time        string
	Location    string
	Description *string
}

// EventService defines the event collaboration workflows: transactional
// creation with organizer membership, the invitation flow, attendance
// status updates, and read compositions.
type EventService interface {
	CreateEvent(ctx context.Context, organizerID string, in CreateEventInput) (*EventWithAttendees, error)
	InviteUser(ctx context.Context, eventID, inviterID, invitedUserID string) (*Attendee, error)
	DeleteEvent(ctx context.Context, eventID, userID string) error
	UpdateAttendanceStatus(ctx context.Context, eventID, userID, status string) error
	GetEventAttendees(ctx context.Context, eventID, requestingUserID string) ([]*Attendee, error)
	SearchEvents(ctx context.Context, userID string, filter EventSearchFilter) ([]*EventWithAttendees, error)
	GetOrganizedEvents(ctx context.Context, userID string) ([]*EventWithAttendees, error)
	GetInvitedEvents(ctx context.Context, userID string) ([]*EventWithAttendees, error)
	GetSentInvitations(ctx context.Context, organizerID string) ([]*SentInvitation, error)
}
