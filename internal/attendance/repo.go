package attendance

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Piyush-Inovation/ClassSnap/internal/model"
)

// ErrUnknownStudent is returned when a mark references a student id that is
// not registered.
var ErrUnknownStudent = errors.New("unknown student")

// Repository persists attendance records in Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const recordColumns = `
	a.id, a.student_id, s.name, s.class_name, a.date, a.status, a.confidence, a.recorded_at, COALESCE(a.teacher_id, 0)
`

// Insert writes a new record and fills in the generated id and timestamp.
func (r *Repository) Insert(ctx context.Context, rec *model.AttendanceRecord) error {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO attendance (student_id, date, status, confidence, teacher_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, recorded_at
	`, rec.StudentID, rec.Date, rec.Status, rec.Confidence, rec.TeacherID)
	if err := row.Scan(&rec.ID, &rec.Timestamp); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrUnknownStudent
		}
		return err
	}
	return nil
}

// GetForDate returns the record for a student on a given date, or nil.
func (r *Repository) GetForDate(ctx context.Context, studentID, date string) (*model.AttendanceRecord, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+recordColumns+`
		FROM attendance a
		JOIN students s ON s.student_id = a.student_id
		WHERE a.student_id = $1 AND a.date = $2
	`, studentID, date)
	var rec model.AttendanceRecord
	if err := row.Scan(&rec.ID, &rec.StudentID, &rec.Name, &rec.ClassName, &rec.Date, &rec.Status, &rec.Confidence, &rec.Timestamp, &rec.TeacherID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// ListByDate returns all records for a date, joined with student details.
func (r *Repository) ListByDate(ctx context.Context, date string) ([]model.AttendanceRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+recordColumns+`
		FROM attendance a
		JOIN students s ON s.student_id = a.student_id
		WHERE a.date = $1
		ORDER BY a.recorded_at
	`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRecords(rows)
}

// ListAll returns every record, oldest date first.
func (r *Repository) ListAll(ctx context.Context) ([]model.AttendanceRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+recordColumns+`
		FROM attendance a
		JOIN students s ON s.student_id = a.student_id
		ORDER BY a.date, a.recorded_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRecords(rows)
}

func collectRecords(rows *sql.Rows) ([]model.AttendanceRecord, error) {
	var res []model.AttendanceRecord
	for rows.Next() {
		var rec model.AttendanceRecord
		if err := rows.Scan(&rec.ID, &rec.StudentID, &rec.Name, &rec.ClassName, &rec.Date, &rec.Status, &rec.Confidence, &rec.Timestamp, &rec.TeacherID); err != nil {
			return nil, err
		}
		res = append(res, rec)
	}
	return res, rows.Err()
}
