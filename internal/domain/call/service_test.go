package call

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

type mockRepo struct {
	scheduled []*ScheduledReminderCall
	logs      map[uuid.UUID]*ReminderCallLog
	details   map[uuid.UUID]*LogDetail
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		logs:    make(map[uuid.UUID]*ReminderCallLog),
		details: make(map[uuid.UUID]*LogDetail),
	}
}

func (m *mockRepo) Schedule(_ context.Context, s *ScheduledReminderCall) error {
	s.ID = uuid.New()
	s.CreatedAt = time.Now()
	m.scheduled = append(m.scheduled, s)
	return nil
}

func (m *mockRepo) ListUpcomingByPatient(_ context.Context, patientID uuid.UUID, _, _ int) ([]*ScheduledReminderCall, int, error) {
	var result []*ScheduledReminderCall
	for _, s := range m.scheduled {
		if s.PatientID == patientID {
			result = append(result, s)
		}
	}
	return result, len(result), nil
}

func (m *mockRepo) GetLogByID(_ context.Context, id uuid.UUID) (*ReminderCallLog, error) {
	l, ok := m.logs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return l, nil
}

func (m *mockRepo) GetLogDetail(_ context.Context, id uuid.UUID) (*LogDetail, error) {
	d, ok := m.details[id]
	if !ok {
		return nil, ErrNotFound
	}
	return d, nil
}

func (m *mockRepo) ListLogsByPatient(_ context.Context, patientID uuid.UUID, _, _ int) ([]*ReminderCallLog, int, error) {
	var result []*ReminderCallLog
	for _, l := range m.logs {
		if l.PatientID == patientID {
			result = append(result, l)
		}
	}
	return result, len(result), nil
}

func TestScheduleFirst_SetsAttemptOne(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	now := time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)
	patientID, medID := uuid.New(), uuid.New()

	sc, err := svc.ScheduleFirst(context.Background(), patientID, medID, "08:30", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sc.AttemptNumber != 1 {
		t.Errorf("expected attempt_number 1, got %d", sc.AttemptNumber)
	}
	want := time.Date(2025, 6, 10, 8, 30, 0, 0, time.UTC)
	if !sc.ScheduledFor.Equal(want) {
		t.Errorf("expected scheduled_for %v, got %v", want, sc.ScheduledFor)
	}
	if len(sc.MedicationIDs) != 1 || sc.MedicationIDs[0] != medID {
		t.Errorf("expected medication_ids [%s], got %v", medID, sc.MedicationIDs)
	}
}

func TestScheduleFirst_RollsToNextDay(t *testing.T) {
	svc := NewService(newMockRepo())

	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	sc, err := svc.ScheduleFirst(context.Background(), uuid.New(), uuid.New(), "08:30", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2025, 6, 11, 8, 30, 0, 0, time.UTC)
	if !sc.ScheduledFor.Equal(want) {
		t.Errorf("expected scheduled_for %v, got %v", want, sc.ScheduledFor)
	}
}

func TestScheduleFirst_RejectsBadTime(t *testing.T) {
	svc := NewService(newMockRepo())

	if _, err := svc.ScheduleFirst(context.Background(), uuid.New(), uuid.New(), "25:00", time.Now()); err == nil {
		t.Error("expected error for malformed reminder time")
	}
}

func TestGetLogDetail_NotFound(t *testing.T) {
	svc := NewService(newMockRepo())

	if _, err := svc.GetLogDetail(context.Background(), uuid.New()); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
