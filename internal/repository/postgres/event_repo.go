package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventplanner/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{DB: db}
}

const eventColumns = `id, title, date, time, location, description, organizer_user_id, created_at, updated_at`

func (r *eventRepository) Create(ctx context.Context, tx domain.Tx, e *domain.Event) error {
	query := `
		INSERT INTO events (title, date, time, location, description, organizer_user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	return runner(r.DB, tx).QueryRowContext(ctx, query,
		e.Title, e.Date, e.Time, e.Location, e.Description, e.OrganizerID, e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) ListByOrganizerID(ctx context.Context, userID string) ([]*domain.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE organizer_user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEvents(rows)
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Search returns events where the user holds any membership row, narrowed
// by the optional filter predicates. Keyword and location match as
// case-insensitive substrings; role, status, and date range match exactly.
func (r *eventRepository) Search(ctx context.Context, userID string, f domain.EventSearchFilter) ([]*domain.Event, error) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT DISTINCT e.id, e.title, e.date, e.time, e.location, e.description, e.organizer_user_id, e.created_at, e.updated_at
		FROM events e
		INNER JOIN event_attendees ea ON ea.event_id = e.id
		WHERE ea.user_id = $1
	`)
	args := []any{userID}
	n := 2

	add := func(clause string, vals ...any) {
		placeholders := make([]any, len(vals))
		for i := range vals {
			placeholders[i] = n
			args = append(args, vals[i])
			n++
		}
		sb.WriteString(" AND " + fmt.Sprintf(clause, placeholders...))
	}

	if f.Role != nil {
		add("ea.role = $%d", *f.Role)
	}
	if f.Status != nil {
		add("ea.attendance_status = $%d", *f.Status)
	}
	if f.Keyword != nil {
		pattern := "%" + *f.Keyword + "%"
		add("(e.title ILIKE $%d OR e.description ILIKE $%d)", pattern, pattern)
	}
	if f.StartDate != nil {
		add("e.date >= $%d", *f.StartDate)
	}
	if f.EndDate != nil {
		add("e.date <= $%d", *f.EndDate)
	}
	if f.Location != nil {
		add("e.location ILIKE $%d", "%"+*f.Location+"%")
	}
	sb.WriteString(" ORDER BY e.date DESC, e.created_at DESC")

	rows, err := r.DB.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEvents(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	e := &domain.Event{}
	var descNull sql.NullString
	var clock any
	if err := row.Scan(&e.ID, &e.Title, &e.Date, &clock, &e.Location, &descNull, &e.OrganizerID, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	if descNull.Valid {
		e.Description = &descNull.String
	}
	e.Time = normalizeClockTime(clock)
	return e, nil
}

func scanEvents(rows *sql.Rows) ([]*domain.Event, error) {
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// normalizeClockTime converts whatever the driver returns for a TIME
// column into an "HH:MM:SS" string so callers never see a driver-specific
// representation.
func normalizeClockTime(v any) string {
	switch t := v.(type) {
	case time.Time:
		return t.Format("15:04:05")
	case []byte:
		return trimClock(string(t))
	case string:
		return trimClock(t)
	}
	return ""
}

func trimClock(s string) string {
	if len(s) > 8 {
		s = s[:8]
	}
	return s
}
