package summary

import (
	"time"

	"github.com/google/uuid"
)

// ConversationSummary maps to the conversation_summaries table: a structured
// digest of one reminder call, produced by the language model.
type ConversationSummary struct {
	ID        uuid.UUID `db:"id" json:"id"`
	PatientID uuid.UUID `db:"patient_id" json:"patient_id"`
	CallLogID uuid.UUID `db:"call_log_id" json:"call_log_id"`
	Summary   string    `db:"summary" json:"summary"`
	Sentiment string    `db:"sentiment" json:"sentiment"`
	KeyFacts  []string  `db:"key_facts" json:"key_facts"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Digest is the JSON shape the model is asked to respond with.
type Digest struct {
	Summary   string   `json:"summary"`
	Sentiment string   `json:"sentiment"`
	KeyFacts  []string `json:"key_facts"`
}
