package student

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Piyush-Inovation/ClassSnap/internal/model"
)

// ErrStudentExists is returned when the external student id is already registered.
var ErrStudentExists = errors.New("student id already exists")

// Repository persists student records in Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new student and fills in the generated id and timestamp.
func (r *Repository) Create(ctx context.Context, st *model.Student) error {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO students (student_id, name, class_name, photo_url, created_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, st.StudentID, st.Name, st.ClassName, st.PhotoURL, st.CreatedBy)
	if err := row.Scan(&st.ID, &st.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrStudentExists
		}
		return err
	}
	return nil
}

// GetByID returns a student by database id, or nil when absent.
func (r *Repository) GetByID(ctx context.Context, id int64) (*model.Student, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, student_id, name, class_name, photo_url, face_enrolled, COALESCE(created_by, 0), created_at
		FROM students WHERE id = $1
	`, id)
	return scanStudent(row)
}

// GetByStudentID returns a student by external student id, or nil when absent.
func (r *Repository) GetByStudentID(ctx context.Context, studentID string) (*model.Student, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, student_id, name, class_name, photo_url, face_enrolled, COALESCE(created_by, 0), created_at
		FROM students WHERE student_id = $1
	`, studentID)
	return scanStudent(row)
}

// List returns all students, newest first.
func (r *Repository) List(ctx context.Context) ([]model.Student, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, student_id, name, class_name, photo_url, face_enrolled, COALESCE(created_by, 0), created_at
		FROM students ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []model.Student
	for rows.Next() {
		var st model.Student
		if err := rows.Scan(&st.ID, &st.StudentID, &st.Name, &st.ClassName, &st.PhotoURL, &st.FaceEnrolled, &st.CreatedBy, &st.CreatedAt); err != nil {
			return nil, err
		}
		students = append(students, st)
	}
	return students, rows.Err()
}

// Delete removes a student row; attendance rows cascade at the database.
// Returns false when no row matched.
func (r *Repository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// SetFaceEnrolled flips the enrollment flag after the face service accepts a photo.
func (r *Repository) SetFaceEnrolled(ctx context.Context, id int64, enrolled bool) error {
	_, err := r.db.ExecContext(ctx, `UPDATE students SET face_enrolled = $2 WHERE id = $1`, id, enrolled)
	return err
}

func scanStudent(row *sql.Row) (*model.Student, error) {
	var st model.Student
	if err := row.Scan(&st.ID, &st.StudentID, &st.Name, &st.ClassName, &st.PhotoURL, &st.FaceEnrolled, &st.CreatedBy, &st.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &st, nil
}
