package store

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/Piyush-Inovation/ClassSnap/internal/auth"
)

const schema = `
CREATE TABLE IF NOT EXISTS teachers (
	id            BIGSERIAL PRIMARY KEY,
	username      TEXT UNIQUE NOT NULL,
	password_hash TEXT NOT NULL,
	name          TEXT NOT NULL,
	email         TEXT NOT NULL DEFAULT '',
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS students (
	id            BIGSERIAL PRIMARY KEY,
	student_id    TEXT UNIQUE NOT NULL,
	name          TEXT NOT NULL,
	class_name    TEXT NOT NULL DEFAULT '',
	photo_url     TEXT NOT NULL DEFAULT '',
	face_enrolled BOOLEAN NOT NULL DEFAULT FALSE,
	created_by    BIGINT REFERENCES teachers(id),
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS attendance (
	id         BIGSERIAL PRIMARY KEY,
	student_id TEXT NOT NULL REFERENCES students(student_id) ON DELETE CASCADE,
	date       TEXT NOT NULL,
	status     TEXT NOT NULL,
	confidence DOUBLE PRECISION,
	recorded_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	teacher_id BIGINT REFERENCES teachers(id)
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_attendance_student_date ON attendance(student_id, date);
CREATE INDEX IF NOT EXISTS idx_attendance_date ON attendance(date);
CREATE INDEX IF NOT EXISTS idx_students_created_by ON students(created_by);
`

// Migrate creates the schema if missing and optionally seeds the default
// admin account (admin/password123) so a fresh install is usable immediately.
func Migrate(ctx context.Context, db *sql.DB, seedAdmin bool) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if seedAdmin {
		if err := seedDefaultAdmin(ctx, db); err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}
	}
	return nil
}

func seedDefaultAdmin(ctx context.Context, db *sql.DB) error {
	var exists bool
	err := db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM teachers WHERE username = 'admin')`).Scan(&exists)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	hash, err := auth.HashPassword("password123")
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `
		INSERT INTO teachers (username, password_hash, name, email)
		VALUES ('admin', $1, 'System Administrator', 'admin@school.com')
		ON CONFLICT (username) DO NOTHING
	`, hash)
	if err == nil {
		log.Println("default admin account created (admin/password123)")
	}
	return err
}
