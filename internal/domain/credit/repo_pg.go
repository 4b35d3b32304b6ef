package credit

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

// GetBalance returns a zero balance for caregivers with no row yet.
func (r *repoPG) GetBalance(ctx context.Context, caregiverID uuid.UUID) (*Balance, error) {
	var b Balance
	err := r.pool.QueryRow(ctx, `
		SELECT caregiver_id, balance_minutes, updated_at
		FROM credit_balances WHERE caregiver_id = $1`, caregiverID,
	).Scan(&b.CaregiverID, &b.BalanceMinutes, &b.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return &Balance{CaregiverID: caregiverID}, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repoPG) ListUsage(ctx context.Context, caregiverID uuid.UUID, limit, offset int) ([]*Usage, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM credit_usage WHERE caregiver_id = $1`, caregiverID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, caregiver_id, patient_id, call_log_id, total_duration_seconds,
			billable_seconds, minutes_deducted, balance_after, created_at
		FROM credit_usage
		WHERE caregiver_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`, caregiverID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var usage []*Usage
	for rows.Next() {
		var u Usage
		if err := rows.Scan(&u.ID, &u.CaregiverID, &u.PatientID, &u.CallLogID,
			&u.TotalDurationSeconds, &u.BillableSeconds, &u.MinutesDeducted,
			&u.BalanceAfter, &u.CreatedAt); err != nil {
			return nil, 0, err
		}
		usage = append(usage, &u)
	}
	return usage, total, rows.Err()
}

func (r *repoPG) ListPurchases(ctx context.Context, caregiverID uuid.UUID, limit, offset int) ([]*Purchase, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM credit_purchases WHERE caregiver_id = $1`, caregiverID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, caregiver_id, pack_label, minutes_purchased, price_cents, created_at
		FROM credit_purchases
		WHERE caregiver_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`, caregiverID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var purchases []*Purchase
	for rows.Next() {
		var p Purchase
		if err := rows.Scan(&p.ID, &p.CaregiverID, &p.PackLabel, &p.MinutesPurchased,
			&p.PriceCents, &p.CreatedAt); err != nil {
			return nil, 0, err
		}
		purchases = append(purchases, &p)
	}
	return purchases, total, rows.Err()
}
