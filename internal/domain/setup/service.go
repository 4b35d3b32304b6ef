package setup

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/carecall/carecall/internal/domain/call"
	"github.com/carecall/carecall/internal/domain/caregiver"
	"github.com/carecall/carecall/internal/domain/medication"
	"github.com/carecall/carecall/internal/domain/patient"
)

// ValidationError marks an input problem the caller can fix. Handlers map it
// to 400 with the message as the reason.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func validationErr(msg string) error { return &ValidationError{Message: msg} }

var phoneE164 = regexp.MustCompile(`^\+[1-9]\d{1,14}$`)

const maxPatientNameLen = 200

// Caregivers, Patients, Medications and Calls are the slices of the domain
// services provisioning orchestrates. The concrete services satisfy them.
type Caregivers interface {
	GetOrCreate(ctx context.Context, authUserID, accountEmail string, profile caregiver.Profile) (*caregiver.Caregiver, error)
}

type Patients interface {
	GetOrCreateByPhone(ctx context.Context, name, phone, timezone string) (*patient.Patient, error)
	LinkCaregiver(ctx context.Context, patientID, caregiverID uuid.UUID, isPrimary bool) error
}

type Medications interface {
	Create(ctx context.Context, m *medication.Medication) error
}

type Calls interface {
	ScheduleFirst(ctx context.Context, patientID, medicationID uuid.UUID, reminderTime string, now time.Time) (*call.ScheduledReminderCall, error)
}

type Service struct {
	caregivers      Caregivers
	patients        Patients
	medications     Medications
	calls           Calls
	defaultTimezone string

	now func() time.Time
}

func NewService(cg Caregivers, p Patients, m Medications, c Calls, defaultTimezone string) *Service {
	return &Service{
		caregivers:      cg,
		patients:        p,
		medications:     m,
		calls:           c,
		defaultTimezone: defaultTimezone,
		now:             time.Now,
	}
}

// Provision sets up everything a new patient needs in one transaction-like
// sequence: the caregiver row, the patient row, their link, the medication,
// and the first scheduled reminder call. It is idempotent on the patient's
// phone number.
func (s *Service) Provision(ctx context.Context, authUserID, accountEmail string, req *Request) (*Result, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	tz := req.Timezone
	if tz == "" {
		tz = s.defaultTimezone
	}

	cg, err := s.caregivers.GetOrCreate(ctx, authUserID, accountEmail, caregiver.Profile{
		Name:  req.CaregiverName,
		Phone: req.CaregiverPhone,
		Email: req.CaregiverEmail,
	})
	if err != nil {
		return nil, fmt.Errorf("get or create caregiver: %w", err)
	}

	p, err := s.patients.GetOrCreateByPhone(ctx, req.PatientName, req.PatientPhone, tz)
	if err != nil {
		return nil, fmt.Errorf("get or create patient: %w", err)
	}

	if err := s.patients.LinkCaregiver(ctx, p.ID, cg.ID, true); err != nil {
		return nil, fmt.Errorf("link caregiver: %w", err)
	}

	med := &medication.Medication{
		PatientID:    p.ID,
		Name:         req.MedicationName,
		ReminderTime: req.ReminderTime,
		ReminderDays: req.ReminderDays,
	}
	if req.MedicationDescription != "" {
		med.Description = &req.MedicationDescription
	}
	if req.MedicationDosage != "" {
		med.Dosage = &req.MedicationDosage
	}
	if err := s.medications.Create(ctx, med); err != nil {
		return nil, fmt.Errorf("create medication: %w", err)
	}

	sc, err := s.calls.ScheduleFirst(ctx, p.ID, med.ID, req.ReminderTime, s.now())
	if err != nil {
		return nil, fmt.Errorf("schedule first call: %w", err)
	}

	log.Info().
		Str("patient_id", p.ID.String()).
		Str("caregiver_id", cg.ID.String()).
		Str("medication_id", med.ID.String()).
		Time("first_call", sc.ScheduledFor).
		Msg("patient setup complete")

	return &Result{
		PatientID:          p.ID,
		CaregiverID:        cg.ID,
		MedicationID:       med.ID,
		FirstCallScheduled: sc.ScheduledFor,
	}, nil
}

func validate(req *Request) error {
	var missing []string
	if req.PatientName == "" {
		missing = append(missing, "patient_name")
	}
	if req.PatientPhone == "" {
		missing = append(missing, "patient_phone")
	}
	if req.MedicationName == "" {
		missing = append(missing, "medication_name")
	}
	if req.ReminderTime == "" {
		missing = append(missing, "reminder_time")
	}
	if len(missing) > 0 {
		return validationErr("Missing required fields: " + strings.Join(missing, ", "))
	}

	if !phoneE164.MatchString(req.PatientPhone) {
		return validationErr("Phone number must be in E.164 format (e.g. +1234567890)")
	}
	if !medication.ValidReminderTime(req.ReminderTime) {
		return validationErr("reminder_time must be in HH:MM format (e.g. 09:00)")
	}
	if req.ReminderDays != nil && !medication.ValidReminderDays(req.ReminderDays) {
		return validationErr("reminder_days must be an array of integers 1-7")
	}
	if len(req.PatientName) > maxPatientNameLen {
		return validationErr("Patient name too long (max 200 characters)")
	}
	return nil
}
