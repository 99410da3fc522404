package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"eventplanner/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	attendeeRepo   domain.AttendeeRepository
	userRepo       domain.UserRepository
	txBeginner     domain.TxBeginner
	emailService   domain.EmailService
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewEventService creates an EventService with the given repositories,
// transaction beginner, and optional email service (nil disables
// invitation emails).
func NewEventService(
	eventRepo domain.EventRepository,
	attendeeRepo domain.AttendeeRepository,
	userRepo domain.UserRepository,
	txBeginner domain.TxBeginner,
	emailService domain.EmailService,
	logger *slog.Logger,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		attendeeRepo:   attendeeRepo,
		userRepo:       userRepo,
		txBeginner:     txBeginner,
		emailService:   emailService,
		logger:         logger,
		contextTimeout: timeout,
	}
}

// CreateEvent inserts the event and its organizer membership row in one
// transaction. Both inserts commit or both roll back: no event is ever
// observable without its organizer membership.
func (s *eventService) CreateEvent(ctx context.Context, organizerID string, in domain.CreateEventInput) (*domain.EventWithAttendees, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	title, err := validateTitle(in.Title)
	if err != nil {
		return nil, err
	}
	location, err := validateLocation(in.Location)
	if err != nil {
		return nil, err
	}
	description, err := validateDescription(in.Description)
	if err != nil {
		return nil, err
	}
	clock, err := validateClockTime(in.Time)
	if err != nil {
		return nil, err
	}
	if in.Date.IsZero() {
		return nil, fmt.Errorf("%w: event date is required", domain.ErrInvalidInput)
	}

	if _, err := s.userRepo.GetByID(ctx, organizerID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	tx, err := s.txBeginner.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}

	now := time.Now()
	event := domain.NewEvent(organizerID, title, in.Date, clock, location, description, now, now)
	if err := s.eventRepo.Create(ctx, tx, event); err != nil {
		_ = tx.Rollback()
		return nil, fmt.Errorf("create event: %w", err)
	}

	organizer := domain.NewAttendee(event.ID, organizerID, domain.RoleOrganizer, now)
	if err := s.attendeeRepo.Add(ctx, tx, organizer); err != nil {
		_ = tx.Rollback()
		return nil, fmt.Errorf("add organizer membership: %w", err)
	}

	if err := tx.Commit(); err != nil {
		_ = tx.Rollback()
		return nil, fmt.Errorf("commit event creation: %w", err)
	}

	s.logger.InfoContext(ctx, "event created", "event_id", event.ID, "organizer_id", organizerID)
	return &domain.EventWithAttendees{
		Event:     event,
		Attendees: []*domain.Attendee{organizer},
	}, nil
}

// InviteUser adds an attendee membership with status pending. Only the
// event's organizer may invite; self-invites and existing members are
// rejected. The unique constraint on (event_id, user_id) backstops the
// membership pre-check under concurrent invites.
func (s *eventService) InviteUser(ctx context.Context, eventID, inviterID, invitedUserID string) (*domain.Attendee, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	isOrganizer, err := s.attendeeRepo.IsOrganizer(ctx, eventID, inviterID)
	if err != nil {
		return nil, fmt.Errorf("check organizer role: %w", err)
	}
	if !isOrganizer {
		return nil, domain.ErrForbidden
	}

	invited, err := s.userRepo.GetByID(ctx, invitedUserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get invited user: %w", err)
	}

	if inviterID == invitedUserID {
		return nil, fmt.Errorf("%w: cannot invite yourself as an attendee", domain.ErrInvalidInput)
	}

	isMember, err := s.attendeeRepo.IsMember(ctx, eventID, invitedUserID)
	if err != nil {
		return nil, fmt.Errorf("check membership: %w", err)
	}
	if isMember {
		return nil, fmt.Errorf("%w: user already invited to this event", domain.ErrInvalidInput)
	}

	attendee := domain.NewAttendee(eventID, invitedUserID, domain.RoleAttendee, time.Now())
	if err := s.attendeeRepo.Add(ctx, nil, attendee); err != nil {
		if errors.Is(err, domain.ErrAlreadyMember) {
			return nil, domain.ErrAlreadyMember
		}
		return nil, fmt.Errorf("add attendee: %w", err)
	}

	s.sendInvitationEmail(ctx, event, invited)

	s.logger.InfoContext(ctx, "user invited", "event_id", eventID, "invited_user_id", invitedUserID)
	return attendee, nil
}

// sendInvitationEmail notifies the invited user. Delivery is best-effort:
// a send failure is logged and never fails the invite.
func (s *eventService) sendInvitationEmail(ctx context.Context, event *domain.Event, invited *domain.User) {
	if s.emailService == nil {
		return
	}
	organizerName := "The organizer"
	if organizer, err := s.userRepo.GetByID(ctx, event.OrganizerID); err == nil {
		organizerName = organizer.Name
	}
	data := &domain.EventInvitationEmailData{
		Email:         invited.Email,
		OrganizerName: organizerName,
		EventTitle:    event.Title,
		EventDate:     event.Date.Format("2006-01-02"),
		EventLocation: event.Location,
	}
	if err := s.emailService.SendEventInvitation(ctx, data); err != nil {
		s.logger.WarnContext(ctx, "invitation email failed", "event_id", event.ID, "email", invited.Email, "err", err)
	}
}

// DeleteEvent removes the event. Only the organizer may delete; attendance
// rows are removed by the storage engine's cascade.
func (s *eventService) DeleteEvent(ctx context.Context, eventID, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	if event.OrganizerID != userID {
		return domain.ErrForbidden
	}
	if err := s.eventRepo.Delete(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	s.logger.InfoContext(ctx, "event deleted", "event_id", eventID, "organizer_id", userID)
	return nil
}

// UpdateAttendanceStatus sets the caller's RSVP status on an event they
// are a member of. A ledger miss after the membership check means a
// concurrent removal and is surfaced as an internal error.
func (s *eventService) UpdateAttendanceStatus(ctx context.Context, eventID, userID, status string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	status, err := validateStatus(status)
	if err != nil {
		return err
	}

	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}

	isMember, err := s.attendeeRepo.IsMember(ctx, eventID, userID)
	if err != nil {
		return fmt.Errorf("check membership: %w", err)
	}
	if !isMember {
		return fmt.Errorf("%w: user is not an attendee of this event", domain.ErrInvalidInput)
	}

	if err := s.attendeeRepo.UpdateStatus(ctx, eventID, userID, status); err != nil {
		// Membership was just confirmed, so a missing row is a lost race,
		// not a not-found. %v keeps the sentinel from reaching the boundary.
		return fmt.Errorf("update attendance status for event %s: %v", eventID, err)
	}

	s.logger.InfoContext(ctx, "attendance updated", "event_id", eventID, "user_id", userID, "status", status)
	return nil
}

// GetEventAttendees returns the full membership list with statuses.
// Visibility is all-or-nothing per event: any member sees everyone.
func (s *eventService) GetEventAttendees(ctx context.Context, eventID, requestingUserID string) ([]*domain.Attendee, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	isMember, err := s.attendeeRepo.IsMember(ctx, eventID, requestingUserID)
	if err != nil {
		return nil, fmt.Errorf("check membership: %w", err)
	}
	if !isMember {
		return nil, domain.ErrForbidden
	}

	attendees, err := s.attendeeRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list attendees: %w", err)
	}
	return attendees, nil
}

// SearchEvents returns events where the user holds any membership row,
// narrowed by the filter, each hydrated with its attendee list.
func (s *eventService) SearchEvents(ctx context.Context, userID string, filter domain.EventSearchFilter) ([]*domain.EventWithAttendees, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	filter, err := validateSearchFilter(filter)
	if err != nil {
		return nil, err
	}

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	events, err := s.eventRepo.Search(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("search events: %w", err)
	}
	return s.hydrateAttendees(ctx, events)
}

// GetOrganizedEvents lists events the user organizes, newest first.
func (s *eventService) GetOrganizedEvents(ctx context.Context, userID string) ([]*domain.EventWithAttendees, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.ListByOrganizerID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list organized events: %w", err)
	}
	return s.hydrateAttendees(ctx, events)
}

// GetInvitedEvents lists events the user holds an attendee (not organizer)
// row on, newest first.
func (s *eventService) GetInvitedEvents(ctx context.Context, userID string) ([]*domain.EventWithAttendees, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.attendeeRepo.ListInvitedEvents(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list invited events: %w", err)
	}
	return s.hydrateAttendees(ctx, events)
}

// GetSentInvitations reports everyone the organizer has invited across
// all their events, with each invitee's current status.
func (s *eventService) GetSentInvitations(ctx context.Context, organizerID string) ([]*domain.SentInvitation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.userRepo.GetByID(ctx, organizerID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	invitations, err := s.attendeeRepo.ListSentInvitations(ctx, organizerID)
	if err != nil {
		return nil, fmt.Errorf("list sent invitations: %w", err)
	}
	return invitations, nil
}

// hydrateAttendees attaches the attendee list to each event. One query per
// event; acceptable at this scale.
func (s *eventService) hydrateAttendees(ctx context.Context, events []*domain.Event) ([]*domain.EventWithAttendees, error) {
	result := make([]*domain.EventWithAttendees, 0, len(events))
	for _, event := range events {
		attendees, err := s.attendeeRepo.ListByEventID(ctx, event.ID)
		if err != nil {
			return nil, fmt.Errorf("list attendees for event %s: %w", event.ID, err)
		}
		result = append(result, &domain.EventWithAttendees{Event: event, Attendees: attendees})
	}
	return result, nil
}
