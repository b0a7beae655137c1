package attendance

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Piyush-Inovation/ClassSnap/internal/model"
)

const dateLayout = "2006-01-02"

// Store is the persistence surface the service needs.
type Store interface {
	Insert(ctx context.Context, rec *model.AttendanceRecord) error
	GetForDate(ctx context.Context, studentID, date string) (*model.AttendanceRecord, error)
	ListByDate(ctx context.Context, date string) ([]model.AttendanceRecord, error)
	ListAll(ctx context.Context) ([]model.AttendanceRecord, error)
}

// MarkInput carries the fields accepted when marking attendance.
type MarkInput struct {
	StudentID  string
	Date       string
	Status     string
	Confidence *float64
}

// Service coordinates attendance marking and queries.
type Service struct {
	store Store
	now   func() time.Time
}

// NewService creates a service backed by a store.
func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// Mark records attendance for a student, stamped with the marking teacher's
// id. A second mark for the same student and date returns the existing record
// instead of creating a duplicate.
func (s *Service) Mark(ctx context.Context, teacherID int64, in MarkInput) (*model.AttendanceRecord, bool, error) {
	in.StudentID = strings.TrimSpace(in.StudentID)
	in.Status = strings.TrimSpace(in.Status)
	if in.StudentID == "" || in.Status == "" {
		return nil, false, model.Validationf("student_id and status are required")
	}
	if in.Date == "" {
		in.Date = s.now().Format(dateLayout)
	} else if _, err := time.Parse(dateLayout, in.Date); err != nil {
		return nil, false, model.Validationf("date must be YYYY-MM-DD")
	}

	if existing, err := s.store.GetForDate(ctx, in.StudentID, in.Date); err != nil {
		return nil, false, err
	} else if existing != nil {
		return existing, false, nil
	}

	rec := &model.AttendanceRecord{
		StudentID:  in.StudentID,
		Date:       in.Date,
		Status:     in.Status,
		Confidence: in.Confidence,
		TeacherID:  teacherID,
	}
	if err := s.store.Insert(ctx, rec); err != nil {
		if errors.Is(err, ErrUnknownStudent) {
			return nil, false, model.Validationf("student_id is not registered")
		}
		return nil, false, err
	}
	return rec, true, nil
}

// ListToday returns records for the current date.
func (s *Service) ListToday(ctx context.Context) (string, []model.AttendanceRecord, error) {
	date := s.now().Format(dateLayout)
	recs, err := s.store.ListByDate(ctx, date)
	return date, recs, err
}

// ListByDate returns records for a specific date.
func (s *Service) ListByDate(ctx context.Context, date string) ([]model.AttendanceRecord, error) {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, model.Validationf("date must be YYYY-MM-DD")
	}
	return s.store.ListByDate(ctx, date)
}

// Export returns records for an export; date is optional.
func (s *Service) Export(ctx context.Context, date string) ([]model.AttendanceRecord, error) {
	if date == "" {
		return s.store.ListAll(ctx)
	}
	return s.ListByDate(ctx, date)
}
