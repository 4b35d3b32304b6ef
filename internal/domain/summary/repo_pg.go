package summary

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) Insert(ctx context.Context, s *ConversationSummary) error {
	s.ID = uuid.New()
	if s.KeyFacts == nil {
		s.KeyFacts = []string{}
	}
	return r.pool.QueryRow(ctx, `
		INSERT INTO conversation_summaries (id, patient_id, call_log_id, summary, sentiment, key_facts)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`,
		s.ID, s.PatientID, s.CallLogID, s.Summary, s.Sentiment, s.KeyFacts,
	).Scan(&s.CreatedAt)
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*ConversationSummary, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM conversation_summaries WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, patient_id, call_log_id, summary, sentiment, key_facts, created_at
		FROM conversation_summaries
		WHERE patient_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`, patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var summaries []*ConversationSummary
	for rows.Next() {
		var s ConversationSummary
		if err := rows.Scan(&s.ID, &s.PatientID, &s.CallLogID, &s.Summary,
			&s.Sentiment, &s.KeyFacts, &s.CreatedAt); err != nil {
			return nil, 0, err
		}
		summaries = append(summaries, &s)
	}
	return summaries, total, rows.Err()
}
