package setup

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/carecall/carecall/internal/domain/call"
	"github.com/carecall/carecall/internal/domain/caregiver"
	"github.com/carecall/carecall/internal/domain/medication"
	"github.com/carecall/carecall/internal/domain/patient"
)

type fakeCaregivers struct {
	byAuthUser map[string]*caregiver.Caregiver
}

func (f *fakeCaregivers) GetOrCreate(_ context.Context, authUserID, accountEmail string, profile caregiver.Profile) (*caregiver.Caregiver, error) {
	if cg, ok := f.byAuthUser[authUserID]; ok {
		return cg, nil
	}
	name := profile.Name
	if name == "" {
		name = "Caregiver"
	}
	cg := &caregiver.Caregiver{ID: uuid.New(), AuthUserID: authUserID, Name: name}
	f.byAuthUser[authUserID] = cg
	return cg, nil
}

type link struct {
	patientID, caregiverID uuid.UUID
}

type fakePatients struct {
	byPhone map[string]*patient.Patient
	links   []link
}

func (f *fakePatients) GetOrCreateByPhone(_ context.Context, name, phone, timezone string) (*patient.Patient, error) {
	if p, ok := f.byPhone[phone]; ok {
		return p, nil
	}
	p := &patient.Patient{ID: uuid.New(), Name: name, PhoneNumber: phone, Timezone: timezone}
	f.byPhone[phone] = p
	return p, nil
}

func (f *fakePatients) LinkCaregiver(_ context.Context, patientID, caregiverID uuid.UUID, _ bool) error {
	for _, l := range f.links {
		if l.patientID == patientID && l.caregiverID == caregiverID {
			return nil
		}
	}
	f.links = append(f.links, link{patientID, caregiverID})
	return nil
}

type fakeMedications struct {
	created []*medication.Medication
}

func (f *fakeMedications) Create(_ context.Context, m *medication.Medication) error {
	if m.ReminderDays == nil {
		m.ReminderDays = medication.AllDays()
	}
	m.ID = uuid.New()
	f.created = append(f.created, m)
	return nil
}

type fakeCalls struct {
	scheduled []*call.ScheduledReminderCall
	err       error
}

func (f *fakeCalls) ScheduleFirst(_ context.Context, patientID, medicationID uuid.UUID, reminderTime string, now time.Time) (*call.ScheduledReminderCall, error) {
	if f.err != nil {
		return nil, f.err
	}
	at, err := call.FirstCallTime(now, reminderTime)
	if err != nil {
		return nil, err
	}
	sc := &call.ScheduledReminderCall{
		ID:            uuid.New(),
		PatientID:     patientID,
		MedicationID:  medicationID,
		ScheduledFor:  at,
		AttemptNumber: 1,
	}
	f.scheduled = append(f.scheduled, sc)
	return sc, nil
}

type fixture struct {
	svc        *Service
	caregivers *fakeCaregivers
	patients   *fakePatients
	meds       *fakeMedications
	calls      *fakeCalls
}

func newFixture(now time.Time) *fixture {
	f := &fixture{
		caregivers: &fakeCaregivers{byAuthUser: make(map[string]*caregiver.Caregiver)},
		patients:   &fakePatients{byPhone: make(map[string]*patient.Patient)},
		meds:       &fakeMedications{},
		calls:      &fakeCalls{},
	}
	f.svc = NewService(f.caregivers, f.patients, f.meds, f.calls, "America/Toronto")
	f.svc.now = func() time.Time { return now }
	return f
}

func validRequest() *Request {
	return &Request{
		PatientName:    "Margaret Chen",
		PatientPhone:   "+14165551234",
		MedicationName: "Metformin",
		ReminderTime:   "08:30",
	}
}

func TestProvision_CreatesFullChain(t *testing.T) {
	now := time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)
	f := newFixture(now)

	result, err := f.svc.Provision(context.Background(), "auth-1", "meg@example.com", validRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(f.patients.byPhone) != 1 || len(f.meds.created) != 1 || len(f.calls.scheduled) != 1 {
		t.Fatalf("expected one patient, medication and scheduled call, got %d/%d/%d",
			len(f.patients.byPhone), len(f.meds.created), len(f.calls.scheduled))
	}
	if len(f.patients.links) != 1 {
		t.Fatalf("expected one caregiver link, got %d", len(f.patients.links))
	}

	want := time.Date(2025, 6, 10, 8, 30, 0, 0, time.UTC)
	if !result.FirstCallScheduled.Equal(want) {
		t.Errorf("reminder before now should schedule today: want %v, got %v", want, result.FirstCallScheduled)
	}
	if f.calls.scheduled[0].AttemptNumber != 1 {
		t.Errorf("first call must be attempt 1, got %d", f.calls.scheduled[0].AttemptNumber)
	}
	if got := f.meds.created[0].ReminderDays; len(got) != 7 {
		t.Errorf("reminder_days should default to all seven days, got %v", got)
	}
}

func TestProvision_SchedulesTomorrowWhenTimePassed(t *testing.T) {
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	f := newFixture(now)

	result, err := f.svc.Provision(context.Background(), "auth-1", "", validRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2025, 6, 11, 8, 30, 0, 0, time.UTC)
	if !result.FirstCallScheduled.Equal(want) {
		t.Errorf("want %v, got %v", want, result.FirstCallScheduled)
	}
}

func TestProvision_IdempotentOnPhone(t *testing.T) {
	f := newFixture(time.Date(2025, 6, 10, 7, 0, 0, 0, time.UTC))

	first, err := f.svc.Provision(context.Background(), "auth-1", "", validRequest())
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	second, err := f.svc.Provision(context.Background(), "auth-1", "", validRequest())
	if err != nil {
		t.Fatalf("second call: %v", err)
	}

	if first.PatientID != second.PatientID {
		t.Error("same phone number must reuse the patient row")
	}
	if len(f.patients.byPhone) != 1 {
		t.Errorf("expected one patient row, got %d", len(f.patients.byPhone))
	}
	if len(f.patients.links) != 1 {
		t.Errorf("duplicate link must be tolerated, got %d links", len(f.patients.links))
	}
}

func TestProvision_ValidationFailures(t *testing.T) {
	f := newFixture(time.Now())

	cases := []struct {
		name   string
		mutate func(*Request)
	}{
		{"missing patient_name", func(r *Request) { r.PatientName = "" }},
		{"missing patient_phone", func(r *Request) { r.PatientPhone = "" }},
		{"missing medication_name", func(r *Request) { r.MedicationName = "" }},
		{"missing reminder_time", func(r *Request) { r.ReminderTime = "" }},
		{"phone without plus", func(r *Request) { r.PatientPhone = "14165551234" }},
		{"phone with letters", func(r *Request) { r.PatientPhone = "+1416555abcd" }},
		{"phone leading zero", func(r *Request) { r.PatientPhone = "+04165551234" }},
		{"bad reminder time", func(r *Request) { r.ReminderTime = "9:00" }},
		{"hour out of range", func(r *Request) { r.ReminderTime = "24:00" }},
		{"day zero", func(r *Request) { r.ReminderDays = []int{0} }},
		{"day eight", func(r *Request) { r.ReminderDays = []int{1, 8} }},
		{"name too long", func(r *Request) { r.PatientName = string(make([]byte, 201)) }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(req)
			_, err := f.svc.Provision(context.Background(), "auth-1", "", req)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("expected ValidationError, got %v", err)
			}
		})
	}

	if len(f.patients.byPhone) != 0 || len(f.meds.created) != 0 || len(f.calls.scheduled) != 0 {
		t.Error("validation failures must not create rows")
	}
}

func TestProvision_DefaultTimezoneApplied(t *testing.T) {
	f := newFixture(time.Now())

	if _, err := f.svc.Provision(context.Background(), "auth-1", "", validRequest()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p := f.patients.byPhone["+14165551234"]
	if p.Timezone != "America/Toronto" {
		t.Errorf("expected default timezone, got %q", p.Timezone)
	}
}

func TestProvision_ScheduleFailurePropagates(t *testing.T) {
	f := newFixture(time.Now())
	f.calls.err = errors.New("insert failed")

	_, err := f.svc.Provision(context.Background(), "auth-1", "", validRequest())
	if err == nil {
		t.Fatal("expected error when scheduling fails")
	}
	var verr *ValidationError
	if errors.As(err, &verr) {
		t.Error("infrastructure failure must not be a ValidationError")
	}
}
