package teacher

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Piyush-Inovation/ClassSnap/internal/model"
)

// ErrUsernameTaken is returned when a teacher username already exists.
// Uniqueness is enforced by the database constraint, not in-process locks.
var ErrUsernameTaken = errors.New("username already exists")

// Repository persists teacher accounts in Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new teacher and fills in the generated id and timestamp.
func (r *Repository) Create(ctx context.Context, t *model.Teacher) error {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO teachers (username, password_hash, name, email)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, t.Username, t.PasswordHash, t.Name, t.Email)
	if err := row.Scan(&t.ID, &t.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrUsernameTaken
		}
		return err
	}
	return nil
}

// GetByUsername returns a teacher or nil when absent.
func (r *Repository) GetByUsername(ctx context.Context, username string) (*model.Teacher, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, username, password_hash, name, email, created_at
		FROM teachers WHERE username = $1
	`, username)
	return scanTeacher(row)
}

// GetByID returns a teacher or nil when absent.
func (r *Repository) GetByID(ctx context.Context, id int64) (*model.Teacher, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, username, password_hash, name, email, created_at
		FROM teachers WHERE id = $1
	`, id)
	return scanTeacher(row)
}

func scanTeacher(row *sql.Row) (*model.Teacher, error) {
	var t model.Teacher
	if err := row.Scan(&t.ID, &t.Username, &t.PasswordHash, &t.Name, &t.Email, &t.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}
