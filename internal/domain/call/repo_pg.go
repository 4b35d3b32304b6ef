package call

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) Schedule(ctx context.Context, s *ScheduledReminderCall) error {
	s.ID = uuid.New()
	return r.pool.QueryRow(ctx, `
		INSERT INTO scheduled_reminder_calls (id, patient_id, medication_id, medication_ids, scheduled_for, attempt_number)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`,
		s.ID, s.PatientID, s.MedicationID, s.MedicationIDs, s.ScheduledFor, s.AttemptNumber,
	).Scan(&s.CreatedAt)
}

func (r *repoPG) ListUpcomingByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*ScheduledReminderCall, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM scheduled_reminder_calls
		WHERE patient_id = $1 AND scheduled_for > NOW()`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, patient_id, medication_id, medication_ids, scheduled_for, attempt_number, created_at
		FROM scheduled_reminder_calls
		WHERE patient_id = $1 AND scheduled_for > NOW()
		ORDER BY scheduled_for
		LIMIT $2 OFFSET $3`, patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var calls []*ScheduledReminderCall
	for rows.Next() {
		var s ScheduledReminderCall
		if err := rows.Scan(&s.ID, &s.PatientID, &s.MedicationID, &s.MedicationIDs,
			&s.ScheduledFor, &s.AttemptNumber, &s.CreatedAt); err != nil {
			return nil, 0, err
		}
		calls = append(calls, &s)
	}
	return calls, total, rows.Err()
}

const logCols = `id, patient_id, medication_id, call_status, duration_seconds, patient_response, created_at`

func (r *repoPG) GetLogByID(ctx context.Context, id uuid.UUID) (*ReminderCallLog, error) {
	var l ReminderCallLog
	err := r.pool.QueryRow(ctx,
		`SELECT `+logCols+` FROM reminder_call_logs WHERE id = $1`, id,
	).Scan(&l.ID, &l.PatientID, &l.MedicationID, &l.CallStatus, &l.DurationSeconds, &l.PatientResponse, &l.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repoPG) GetLogDetail(ctx context.Context, id uuid.UUID) (*LogDetail, error) {
	var d LogDetail
	err := r.pool.QueryRow(ctx, `
		SELECT l.id, l.patient_id, l.medication_id, l.call_status, l.duration_seconds, l.patient_response, l.created_at,
			p.name, m.name, m.dosage
		FROM reminder_call_logs l
		JOIN patients p ON p.id = l.patient_id
		LEFT JOIN medications m ON m.id = l.medication_id
		WHERE l.id = $1`, id,
	).Scan(&d.ID, &d.PatientID, &d.MedicationID, &d.CallStatus, &d.DurationSeconds, &d.PatientResponse, &d.CreatedAt,
		&d.PatientName, &d.MedicationName, &d.MedicationDosage)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *repoPG) ListLogsByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*ReminderCallLog, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM reminder_call_logs WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+logCols+`
		FROM reminder_call_logs
		WHERE patient_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`, patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var logs []*ReminderCallLog
	for rows.Next() {
		var l ReminderCallLog
		if err := rows.Scan(&l.ID, &l.PatientID, &l.MedicationID, &l.CallStatus,
			&l.DurationSeconds, &l.PatientResponse, &l.CreatedAt); err != nil {
			return nil, 0, err
		}
		logs = append(logs, &l)
	}
	return logs, total, rows.Err()
}
