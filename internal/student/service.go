package student

import (
	"context"
	"errors"
	"strings"

	"github.com/Piyush-Inovation/ClassSnap/internal/model"
)

// ErrNotFound is returned when a student id does not exist.
var ErrNotFound = errors.New("student not found")

// Store is the persistence surface the service needs.
type Store interface {
	Create(ctx context.Context, st *model.Student) error
	GetByID(ctx context.Context, id int64) (*model.Student, error)
	GetByStudentID(ctx context.Context, studentID string) (*model.Student, error)
	List(ctx context.Context) ([]model.Student, error)
	Delete(ctx context.Context, id int64) (bool, error)
	SetFaceEnrolled(ctx context.Context, id int64, enrolled bool) error
}

// RegisterInput carries the fields accepted at student registration.
type RegisterInput struct {
	StudentID string
	Name      string
	ClassName string
	PhotoURL  string
}

// Service implements student roster operations over a Store.
type Service struct {
	store Store
}

// NewService creates a service backed by a store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Register creates a student record stamped with the registering teacher's id.
func (s *Service) Register(ctx context.Context, teacherID int64, in RegisterInput) (*model.Student, error) {
	in.StudentID = strings.TrimSpace(in.StudentID)
	in.Name = strings.TrimSpace(in.Name)
	if in.StudentID == "" || in.Name == "" {
		return nil, model.Validationf("student_id and name are required")
	}

	st := &model.Student{
		StudentID: in.StudentID,
		Name:      in.Name,
		ClassName: strings.TrimSpace(in.ClassName),
		PhotoURL:  in.PhotoURL,
		CreatedBy: teacherID,
	}
	if err := s.store.Create(ctx, st); err != nil {
		if errors.Is(err, ErrStudentExists) {
			return nil, model.Validationf("student id already exists")
		}
		return nil, err
	}
	return st, nil
}

// Delete removes a student and returns the removed record so callers can
// clean up external state (stored photos, face gallery).
func (s *Service) Delete(ctx context.Context, id int64) (*model.Student, error) {
	st, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, ErrNotFound
	}
	ok, err := s.store.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	return st, nil
}

// List returns every registered student.
func (s *Service) List(ctx context.Context) ([]model.Student, error) {
	return s.store.List(ctx)
}

// Get returns one student by database id.
func (s *Service) Get(ctx context.Context, id int64) (*model.Student, error) {
	st, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, ErrNotFound
	}
	return st, nil
}

// MarkFaceEnrolled records that the face service accepted the student's photo.
func (s *Service) MarkFaceEnrolled(ctx context.Context, id int64) error {
	return s.store.SetFaceEnrolled(ctx, id, true)
}
