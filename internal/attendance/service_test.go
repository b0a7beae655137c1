package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Piyush-Inovation/ClassSnap/internal/model"
)

type memStore struct {
	nextID  int64
	records []model.AttendanceRecord
	known   map[string]bool
}

func newMemStore(studentIDs ...string) *memStore {
	known := map[string]bool{}
	for _, id := range studentIDs {
		known[id] = true
	}
	return &memStore{nextID: 1, known: known}
}

func (m *memStore) Insert(_ context.Context, rec *model.AttendanceRecord) error {
	if !m.known[rec.StudentID] {
		return ErrUnknownStudent
	}
	rec.ID = m.nextID
	rec.Timestamp = time.Now().UTC()
	m.nextID++
	m.records = append(m.records, *rec)
	return nil
}

func (m *memStore) GetForDate(_ context.Context, studentID, date string) (*model.AttendanceRecord, error) {
	for i := range m.records {
		if m.records[i].StudentID == studentID && m.records[i].Date == date {
			return &m.records[i], nil
		}
	}
	return nil, nil
}

func (m *memStore) ListByDate(_ context.Context, date string) ([]model.AttendanceRecord, error) {
	var out []model.AttendanceRecord
	for _, rec := range m.records {
		if rec.Date == date {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (m *memStore) ListAll(_ context.Context) ([]model.AttendanceRecord, error) {
	return append([]model.AttendanceRecord(nil), m.records...), nil
}

func fixedService(store Store) *Service {
	svc := NewService(store)
	svc.now = func() time.Time { return time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC) }
	return svc
}

func TestMarkStampsTeacherID(t *testing.T) {
	svc := fixedService(newMemStore("S001"))

	conf := 0.92
	rec, created, err := svc.Mark(context.Background(), 3, MarkInput{StudentID: "S001", Status: "PRESENT", Confidence: &conf})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, int64(3), rec.TeacherID)
	assert.Equal(t, "2025-03-10", rec.Date) // defaults to today
	require.NotNil(t, rec.Confidence)
	assert.InDelta(t, 0.92, *rec.Confidence, 1e-9)
}

func TestMarkDeduplicatesPerDay(t *testing.T) {
	svc := fixedService(newMemStore("S001"))

	first, created, err := svc.Mark(context.Background(), 1, MarkInput{StudentID: "S001", Status: "PRESENT"})
	require.NoError(t, err)
	require.True(t, created)

	second, created, err := svc.Mark(context.Background(), 2, MarkInput{StudentID: "S001", Status: "PRESENT"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	// The original marking teacher stays on the record.
	assert.Equal(t, int64(1), second.TeacherID)
}

func TestMarkValidation(t *testing.T) {
	svc := fixedService(newMemStore("S001"))
	var verr *model.ValidationError

	_, _, err := svc.Mark(context.Background(), 1, MarkInput{Status: "PRESENT"})
	assert.ErrorAs(t, err, &verr)

	_, _, err = svc.Mark(context.Background(), 1, MarkInput{StudentID: "S001"})
	assert.ErrorAs(t, err, &verr)

	_, _, err = svc.Mark(context.Background(), 1, MarkInput{StudentID: "S001", Status: "PRESENT", Date: "10/03/2025"})
	assert.ErrorAs(t, err, &verr)

	_, _, err = svc.Mark(context.Background(), 1, MarkInput{StudentID: "S999", Status: "PRESENT"})
	assert.ErrorAs(t, err, &verr)
}

func TestListByDateValidatesFormat(t *testing.T) {
	svc := fixedService(newMemStore("S001"))

	var verr *model.ValidationError
	_, err := svc.ListByDate(context.Background(), "not-a-date")
	assert.ErrorAs(t, err, &verr)
}

func TestListTodayAndExport(t *testing.T) {
	svc := fixedService(newMemStore("S001", "S002"))

	_, _, err := svc.Mark(context.Background(), 1, MarkInput{StudentID: "S001", Status: "PRESENT"})
	require.NoError(t, err)
	_, _, err = svc.Mark(context.Background(), 1, MarkInput{StudentID: "S002", Status: "PRESENT", Date: "2025-03-09"})
	require.NoError(t, err)

	date, today, err := svc.ListToday(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10", date)
	assert.Len(t, today, 1)

	all, err := svc.Export(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	one, err := svc.Export(context.Background(), "2025-03-09")
	require.NoError(t, err)
	assert.Len(t, one, 1)
}
