package patient

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

const patientCols = `id, name, phone_number, timezone, created_at, updated_at`

func (r *repoPG) Create(ctx context.Context, p *Patient) error {
	p.ID = uuid.New()
	return r.pool.QueryRow(ctx, `
		INSERT INTO patients (id, name, phone_number, timezone)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`,
		p.ID, p.Name, p.PhoneNumber, p.Timezone,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return scanPatient(r.pool.QueryRow(ctx,
		`SELECT `+patientCols+` FROM patients WHERE id = $1`, id))
}

func (r *repoPG) GetByPhone(ctx context.Context, phone string) (*Patient, error) {
	return scanPatient(r.pool.QueryRow(ctx,
		`SELECT `+patientCols+` FROM patients WHERE phone_number = $1`, phone))
}

func (r *repoPG) Update(ctx context.Context, p *Patient) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE patients SET name = $2, phone_number = $3, timezone = $4, updated_at = NOW()
		WHERE id = $1`,
		p.ID, p.Name, p.PhoneNumber, p.Timezone,
	)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM patients WHERE id = $1`, id)
	return err
}

func (r *repoPG) ListByCaregiver(ctx context.Context, caregiverID uuid.UUID, limit, offset int) ([]*Patient, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM patients p
		JOIN patient_caregivers pc ON pc.patient_id = p.id
		WHERE pc.caregiver_id = $1`, caregiverID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT p.id, p.name, p.phone_number, p.timezone, p.created_at, p.updated_at
		FROM patients p
		JOIN patient_caregivers pc ON pc.patient_id = p.id
		WHERE pc.caregiver_id = $1
		ORDER BY p.name
		LIMIT $2 OFFSET $3`, caregiverID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var patients []*Patient
	for rows.Next() {
		var p Patient
		if err := rows.Scan(&p.ID, &p.Name, &p.PhoneNumber, &p.Timezone, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, err
		}
		patients = append(patients, &p)
	}
	return patients, total, rows.Err()
}

// LinkCaregiver is an atomic upsert: concurrent setup calls for the same
// pair land on the unique constraint instead of racing a read-then-write.
func (r *repoPG) LinkCaregiver(ctx context.Context, patientID, caregiverID uuid.UUID, isPrimary bool) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO patient_caregivers (patient_id, caregiver_id, is_primary)
		VALUES ($1, $2, $3)
		ON CONFLICT (patient_id, caregiver_id) DO NOTHING`,
		patientID, caregiverID, isPrimary,
	)
	return err
}

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.Name, &p.PhoneNumber, &p.Timezone, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
