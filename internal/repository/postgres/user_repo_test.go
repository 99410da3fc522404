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

func TestUserRepository_Create(t *testing.T) {
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
				mock.ExpectQuery(`INSERT INTO users \(name, email, password_hash, salt, created_at, updated_at\)`).
					WithArgs("Ada", "ada@example.com", "hash", "salt", created, created).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("user-1"))
			},
		},
		{
			name: "duplicate email",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO users`).
					WillReturnError(&pq.Error{Code: "23505"})
			},
			wantErr: domain.ErrDuplicateEmail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			user := &domain.User{
				Name:         "Ada",
				Email:        "ada@example.com",
				PasswordHash: "hash",
				Salt:         "salt",
				CreatedAt:    created,
				UpdatedAt:    created,
			}
			err = NewUserRepository(db).Create(ctx, user)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, "user-1", user.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	ts := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, name, email, password_hash, salt, created_at, updated_at`).
			WithArgs("user-1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "salt", "created_at", "updated_at"}).
				AddRow("user-1", "Ada", "ada@example.com", "hash", "salt", ts, ts))

		user, err := NewUserRepository(db).GetByID(ctx, "user-1")
		require.NoError(t, err)
		require.Equal(t, "ada@example.com", user.Email)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, name, email, password_hash, salt, created_at, updated_at`).
			WithArgs("user-missing").
			WillReturnError(sql.ErrNoRows)

		user, err := NewUserRepository(db).GetByID(ctx, "user-missing")
		require.ErrorIs(t, err, domain.ErrUserNotFound)
		require.Nil(t, user)
	})
}

func TestUserRepository_GetByEmail(t *testing.T) {
	ctx := context.Background()
	ts := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, name, email, password_hash, salt, created_at, updated_at`).
		WithArgs("ada@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "salt", "created_at", "updated_at"}).
			AddRow("user-1", "Ada", "ada@example.com", "hash", "salt", ts, ts))

	user, err := NewUserRepository(db).GetByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	require.Equal(t, "user-1", user.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}
