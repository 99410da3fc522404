package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"eventplanner/internal/domain"
)

type attendeeRepository struct {
	DB *sql.DB
}

func NewAttendeeRepository(db *sql.DB) domain.AttendeeRepository {
	return &attendeeRepository{DB: db}
}

func (r *attendeeRepository) Add(ctx context.Context, tx domain.Tx, a *domain.Attendee) error {
	query := `
		INSERT INTO event_attendees (event_id, user_id, role, attendance_status, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := runner(r.DB, tx).QueryRowContext(ctx, query,
		a.EventID, a.UserID, a.Role, a.Status, a.CreatedAt,
	).Scan(&a.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return domain.ErrAlreadyMember
		}
		return err
	}
	return nil
}

func (r *attendeeRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Attendee, error) {
	query := `
		SELECT id, event_id, user_id, role, attendance_status, created_at
		FROM event_attendees
		WHERE event_id = $1
		ORDER BY created_at ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	attendees := make([]*domain.Attendee, 0)
	for rows.Next() {
		a := &domain.Attendee{}
		if err := rows.Scan(&a.ID, &a.EventID, &a.UserID, &a.Role, &a.Status, &a.CreatedAt); err != nil {
			return nil, err
		}
		attendees = append(attendees, a)
	}
	return attendees, rows.Err()
}

func (r *attendeeRepository) IsOrganizer(ctx context.Context, eventID, userID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM event_attendees
			WHERE event_id = $1 AND user_id = $2 AND role = $3
		)
	`
	var exists bool
	err := r.DB.QueryRowContext(ctx, query, eventID, userID, domain.RoleOrganizer).Scan(&exists)
	return exists, err
}

func (r *attendeeRepository) IsMember(ctx context.Context, eventID, userID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM event_attendees
			WHERE event_id = $1 AND user_id = $2
		)
	`
	var exists bool
	err := r.DB.QueryRowContext(ctx, query, eventID, userID).Scan(&exists)
	return exists, err
}

func (r *attendeeRepository) UpdateStatus(ctx context.Context, eventID, userID, status string) error {
	query := `
		UPDATE event_attendees
		SET attendance_status = $1
		WHERE event_id = $2 AND user_id = $3
	`
	result, err := r.DB.ExecContext(ctx, query, status, eventID, userID)
	if err != nil {
		return err
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *attendeeRepository) ListInvitedEvents(ctx context.Context, userID string) ([]*domain.Event, error) {
	query := `
		SELECT e.id, e.title, e.date, e.time, e.location, e.description, e.organizer_user_id, e.created_at, e.updated_at
		FROM events e
		INNER JOIN event_attendees ea ON ea.event_id = e.id
		WHERE ea.user_id = $1 AND ea.role = $2
		ORDER BY e.created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, userID, domain.RoleAttendee)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEvents(rows)
}

func (r *attendeeRepository) ListSentInvitations(ctx context.Context, organizerID string) ([]*domain.SentInvitation, error) {
	query := `
		SELECT e.id, e.title, e.date, u.id, u.name, u.email, ea.attendance_status, ea.created_at
		FROM events e
		INNER JOIN event_attendees ea ON ea.event_id = e.id
		INNER JOIN users u ON u.id = ea.user_id
		WHERE e.organizer_user_id = $1 AND ea.role = $2
		ORDER BY e.date DESC, ea.created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, organizerID, domain.RoleAttendee)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	invitations := make([]*domain.SentInvitation, 0)
	for rows.Next() {
		inv := &domain.SentInvitation{}
		if err := rows.Scan(&inv.EventID, &inv.EventTitle, &inv.EventDate, &inv.InvitedUserID, &inv.InvitedUserName, &inv.InvitedUserEmail, &inv.Status, &inv.InvitedAt); err != nil {
			return nil, err
		}
		invitations = append(invitations, inv)
	}
	return invitations, rows.Err()
}
