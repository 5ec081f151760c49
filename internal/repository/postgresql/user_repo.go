package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/piyukr2/Bed-Manager/internal/domain"
	"github.com/piyukr2/Bed-Manager/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

const uniqueViolationCode = "23505"

// isUniqueViolation detects a unique-constraint error from whichever Postgres
// driver produced it (pgx backs the live pool, pq error types still appear
// behind database/sql wrappers).
func isUniqueViolation(err error) bool {
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return pgxErr.Code == uniqueViolationCode
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolationCode
	}
	return false
}

type pgUserRepository struct {
	db *sql.DB
}

func NewPgUserRepository(db *sql.DB) repository.UserRepository {
	return &pgUserRepository{db: db}
}

func (r *pgUserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `INSERT INTO users (username, password, name, role, ward, created_at, updated_at)
	           VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
	           RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query,
		user.Username, user.Password, user.Name, user.Role,
		sql.NullString{String: user.Ward, Valid: user.Ward != ""},
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: username '%s' is taken", repository.ErrDuplicateEntry, user.Username)
		}
		return nil, fmt.Errorf("UserRepository.Create: %w", err)
	}
	return user, nil
}

func (r *pgUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT id, username, password, name, role, ward, created_at, updated_at FROM users WHERE username = $1`
	return r.findOne(ctx, query, username)
}

func (r *pgUserRepository) FindByID(ctx context.Context, id int) (*domain.User, error) {
	query := `SELECT id, username, password, name, role, ward, created_at, updated_at FROM users WHERE id = $1`
	return r.findOne(ctx, query, id)
}

func (r *pgUserRepository) findOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	user := &domain.User{}
	var ward sql.NullString
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.Username, &user.Password, &user.Name, &user.Role,
		&ward, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("UserRepository.findOne: %w", err)
	}
	if ward.Valid {
		user.Ward = ward.String
	}
	return user, nil
}
