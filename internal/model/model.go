package model

import "time"

// Teacher is an authenticated account that may operate on students and
// attendance. The password hash never leaves the server.
type Teacher struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Email        string    `json:"email,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Student represents a registered student.
type Student struct {
	ID           int64     `json:"id"`
	StudentID    string    `json:"student_id"`
	Name         string    `json:"name"`
	ClassName    string    `json:"class,omitempty"`
	PhotoURL     string    `json:"photo_url,omitempty"`
	FaceEnrolled bool      `json:"face_enrolled"`
	CreatedBy    int64     `json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
}

// AttendanceRecord is a single attendance log entry. TeacherID records which
// teacher's token authorized the write.
type AttendanceRecord struct {
	ID         int64     `json:"id"`
	StudentID  string    `json:"student_id"`
	Name       string    `json:"name,omitempty"` // joined from students
	ClassName  string    `json:"class,omitempty"`
	Date       string    `json:"date"` // YYYY-MM-DD
	Status     string    `json:"status"`
	Confidence *float64  `json:"confidence,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
	TeacherID  int64     `json:"teacher_id"`
}
