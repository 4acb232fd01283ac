package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"eventum/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func TestRegistrationRepository_Create(t *testing.T) {
	ctx := context.Background()
	createdAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		reg     *domain.Registration
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "success",
			reg:  domain.NewRegistration("ev-1", "user-1", createdAt),
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO registrations \(event_id, user_id, created_at\)`).
					WithArgs("ev-1", "user-1", createdAt).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			wantErr: nil,
		},
		{
			name: "duplicate pair maps to already registered",
			reg:  domain.NewRegistration("ev-1", "user-1", createdAt),
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO registrations`).
					WithArgs("ev-1", "user-1", createdAt).
					WillReturnError(&pq.Error{Code: "23505"})
			},
			wantErr: domain.ErrAlreadyRegistered,
		},
		{
			name: "db error passes through",
			reg:  domain.NewRegistration("ev-1", "user-1", createdAt),
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO registrations`).
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
			repo := NewRegistrationRepository(db)
			err = repo.Create(ctx, tt.reg)
			if tt.wantErr != nil {
				require.Error(t, err)
				require.True(t, errors.Is(err, tt.wantErr))
			} else {
				require.NoError(t, err)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRegistrationRepository_Delete(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM registrations WHERE event_id = \$1 AND user_id = \$2`).
					WithArgs("ev-1", "user-1").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			wantErr: nil,
		},
		{
			name: "missing pair maps to not registered",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM registrations WHERE event_id = \$1 AND user_id = \$2`).
					WithArgs("ev-1", "user-1").
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: domain.ErrNotRegistered,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewRegistrationRepository(db)
			err = repo.Delete(ctx, "ev-1", "user-1")
			if tt.wantErr != nil {
				require.True(t, errors.Is(err, tt.wantErr))
			} else {
				require.NoError(t, err)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRegistrationRepository_ListParticipants(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "name", "email", "allow_public_profile"}).
		AddRow("user-1", "Ana", "ana@example.com", true).
		AddRow("user-2", "Bruno", "bruno@example.com", false)
	mock.ExpectQuery(`SELECT u.id, u.name, u.email, u.allow_public_profile`).
		WithArgs("ev-1").
		WillReturnRows(rows)

	repo := NewRegistrationRepository(db)
	got, err := repo.ListParticipants(ctx, "ev-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "Ana", got[0].Name)
	require.False(t, got[1].AllowPublicProfile)
	require.NoError(t, mock.ExpectationsWereMet())
}
