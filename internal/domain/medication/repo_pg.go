package medication

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

const medicationCols = `id, patient_id, name, description, dosage, reminder_time, reminder_days, created_at, updated_at`

func (r *repoPG) Create(ctx context.Context, m *Medication) error {
	m.ID = uuid.New()
	if m.ReminderDays == nil {
		m.ReminderDays = AllDays()
	}
	return r.pool.QueryRow(ctx, `
		INSERT INTO medications (id, patient_id, name, description, dosage, reminder_time, reminder_days)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`,
		m.ID, m.PatientID, m.Name, m.Description, m.Dosage, m.ReminderTime, m.ReminderDays,
	).Scan(&m.CreatedAt, &m.UpdatedAt)
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Medication, error) {
	return scanMedication(r.pool.QueryRow(ctx,
		`SELECT `+medicationCols+` FROM medications WHERE id = $1`, id))
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Medication, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+medicationCols+` FROM medications WHERE patient_id = $1 ORDER BY name`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var meds []*Medication
	for rows.Next() {
		var m Medication
		if err := rows.Scan(&m.ID, &m.PatientID, &m.Name, &m.Description, &m.Dosage,
			&m.ReminderTime, &m.ReminderDays, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		meds = append(meds, &m)
	}
	return meds, rows.Err()
}

func (r *repoPG) Update(ctx context.Context, m *Medication) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE medications SET name = $2, description = $3, dosage = $4,
			reminder_time = $5, reminder_days = $6, updated_at = NOW()
		WHERE id = $1`,
		m.ID, m.Name, m.Description, m.Dosage, m.ReminderTime, m.ReminderDays,
	)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM medications WHERE id = $1`, id)
	return err
}

func scanMedication(row pgx.Row) (*Medication, error) {
	var m Medication
	err := row.Scan(&m.ID, &m.PatientID, &m.Name, &m.Description, &m.Dosage,
		&m.ReminderTime, &m.ReminderDays, &m.CreatedAt, &m.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}
