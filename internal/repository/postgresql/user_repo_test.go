package postgresql

import (
	"context"
	"testing"
	"time"

	"github.com/piyukr2/Bed-Manager/internal/domain"
	"github.com/piyukr2/Bed-Manager/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockUserRepo(t *testing.T) (repository.UserRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPgUserRepository(db), mock
}

func TestPgUserRepository_Create(t *testing.T) {
	repo, mock := newMockUserRepo(t)

	now := time.Now().UTC()
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("jdoe", "hashed", "Dr. Doe", "icu_manager", "ICU").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(3, now, now))

	user, err := repo.Create(context.Background(), &domain.User{
		Username: "jdoe",
		Password: "hashed",
		Name:     "Dr. Doe",
		Role:     domain.RoleICUManager,
		Ward:     "ICU",
	})
	require.NoError(t, err)
	assert.Equal(t, 3, user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A race past the pre-existence check surfaces the database's unique
// constraint; both driver error types must map to ErrDuplicateEntry.
func TestPgUserRepository_Create_DuplicateUsername(t *testing.T) {
	driverErrors := map[string]error{
		"pgx": &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"},
		"pq":  &pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"},
	}

	for name, driverErr := range driverErrors {
		t.Run(name, func(t *testing.T) {
			repo, mock := newMockUserRepo(t)
			mock.ExpectQuery(`INSERT INTO users`).
				WillReturnError(driverErr)

			_, err := repo.Create(context.Background(), &domain.User{Username: "jdoe", Password: "hashed", Role: domain.RoleAdmin})
			assert.ErrorIs(t, err, repository.ErrDuplicateEntry)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPgUserRepository_FindByUsername_NotFound(t *testing.T) {
	repo, mock := newMockUserRepo(t)

	mock.ExpectQuery(`SELECT .+ FROM users WHERE username`).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password", "name", "role", "ward", "created_at", "updated_at"}))

	_, err := repo.FindByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
