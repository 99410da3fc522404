package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"eventplanner/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func TestAttendeeRepository_Add(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO event_attendees \(event_id, user_id, role, attendance_status, created_at\)`).
					WithArgs("ev-1", "user-2", domain.RoleAttendee, domain.StatusPending, created).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("att-1"))
			},
		},
		{
			name: "duplicate membership",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO event_attendees`).
					WillReturnError(&pq.Error{Code: "23505"})
			},
			wantErr: domain.ErrAlreadyMember,
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO event_attendees`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: sql.ErrConnDone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			attendee := domain.NewAttendee("ev-1", "user-2", domain.RoleAttendee, created)
			err = NewAttendeeRepository(db).Add(ctx, nil, attendee)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, "att-1", attendee.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAttendeeRepository_ListByEventID(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	t1 := time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC)
	t2 := time.Date(2025, 1, 2, 11, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT id, event_id, user_id, role, attendance_status, created_at`).
		WithArgs("ev-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "event_id", "user_id", "role", "attendance_status", "created_at"}).
			AddRow("att-1", "ev-1", "user-1", domain.RoleOrganizer, domain.StatusGoing, t1).
			AddRow("att-2", "ev-1", "user-2", domain.RoleAttendee, domain.StatusPending, t2))

	attendees, err := NewAttendeeRepository(db).ListByEventID(ctx, "ev-1")
	require.NoError(t, err)
	require.Len(t, attendees, 2)
	require.Equal(t, domain.RoleOrganizer, attendees[0].Role)
	require.Equal(t, "user-2", attendees[1].UserID)
	require.Equal(t, domain.StatusPending, attendees[1].Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendeeRepository_IsOrganizer(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("ev-1", "user-1", domain.RoleOrganizer).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := NewAttendeeRepository(db).IsOrganizer(ctx, "ev-1", "user-1")
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendeeRepository_IsMember(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("ev-1", "user-3").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	ok, err := NewAttendeeRepository(db).IsMember(ctx, "ev-1", "user-3")
	require.NoError(t, err)
	require.False(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendeeRepository_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`UPDATE event_attendees`).
			WithArgs(domain.StatusGoing, "ev-1", "user-2").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, NewAttendeeRepository(db).UpdateStatus(ctx, "ev-1", "user-2", domain.StatusGoing))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no membership row", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`UPDATE event_attendees`).
			WithArgs(domain.StatusGoing, "ev-1", "user-9").
			WillReturnResult(sqlmock.NewResult(0, 0))

		require.ErrorIs(t, NewAttendeeRepository(db).UpdateStatus(ctx, "ev-1", "user-9", domain.StatusGoing), domain.ErrNotFound)
	})
}

func TestAttendeeRepository_ListInvitedEvents(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	ts := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`INNER JOIN event_attendees ea ON ea.event_id = e.id`).
		WithArgs("user-2", domain.RoleAttendee).
		WillReturnRows(sqlmock.NewRows(eventCols).
			AddRow("ev-1", "Standup", time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), "09:00:00", "Remote", nil, "user-1", ts, ts))

	events, err := NewAttendeeRepository(db).ListInvitedEvents(ctx, "user-2")
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, "user-1", events[0].OrganizerID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendeeRepository_ListSentInvitations(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	invitedAt := time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`INNER JOIN users u ON u.id = ea.user_id`).
		WithArgs("user-1", domain.RoleAttendee).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "date", "id", "name", "email", "attendance_status", "created_at"}).
			AddRow("ev-1", "Standup", time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), "user-2", "Bea", "bea@example.com", domain.StatusPending, invitedAt))

	invitations, err := NewAttendeeRepository(db).ListSentInvitations(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, invitations, 1)
	require.Equal(t, "Standup", invitations[0].EventTitle)
	require.Equal(t, "bea@example.com", invitations[0].InvitedUserEmail)
	require.Equal(t, domain.StatusPending, invitations[0].Status)
	require.NoError(t, mock.ExpectationsWereMet())
}
