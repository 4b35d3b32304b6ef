package summary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/carecall/carecall/internal/domain/call"
)

// CallLogs supplies the joined call log a summary is built from.
type CallLogs interface {
	GetLogDetail(ctx context.Context, id uuid.UUID) (*call.LogDetail, error)
}

// MessageCreator sends one prompt to the language model and returns its text.
type MessageCreator interface {
	CreateMessage(ctx context.Context, prompt string) (string, error)
}

// ErrLogNotFound indicates the referenced call log does not exist.
var ErrLogNotFound = errors.New("call log not found")

// Result reports the outcome of one summarization request. A call with no
// transcript is skipped rather than summarized.
type Result struct {
	Skipped   bool      `json:"skipped,omitempty"`
	Reason    string    `json:"reason,omitempty"`
	SummaryID uuid.UUID `json:"summary_id,omitempty"`
	Digest    *Digest   `json:"summary,omitempty"`
}

type Service struct {
	repo Repository
	logs CallLogs
	llm  MessageCreator
}

func NewService(repo Repository, logs CallLogs, llm MessageCreator) *Service {
	return &Service{repo: repo, logs: logs, llm: llm}
}

// Summarize fetches the call log, asks the model for a structured digest of
// the transcript, and persists the result.
func (s *Service) Summarize(ctx context.Context, callLogID uuid.UUID) (*Result, error) {
	detail, err := s.logs.GetLogDetail(ctx, callLogID)
	if errors.Is(err, call.ErrNotFound) {
		return nil, ErrLogNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetch call log: %w", err)
	}

	transcript := detail.Transcript()
	if strings.TrimSpace(transcript) == "" {
		log.Debug().Str("call_log_id", callLogID.String()).Msg("no transcript available, skipping summary")
		return &Result{Skipped: true, Reason: "No transcript"}, nil
	}

	content, err := s.llm.CreateMessage(ctx, buildPrompt(detail, transcript))
	if err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}

	digest := parseDigest(content)

	row := &ConversationSummary{
		PatientID: detail.PatientID,
		CallLogID: callLogID,
		Summary:   digest.Summary,
		Sentiment: digest.Sentiment,
		KeyFacts:  digest.KeyFacts,
	}
	if err := s.repo.Insert(ctx, row); err != nil {
		return nil, fmt.Errorf("insert summary: %w", err)
	}

	return &Result{SummaryID: row.ID, Digest: &digest}, nil
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*ConversationSummary, int, error) {
	return s.repo.ListByPatient(ctx, patientID, limit, offset)
}

func buildPrompt(detail *call.LogDetail, transcript string) string {
	name := detail.PatientName
	if name == "" {
		name = "unknown"
	}
	medName, dosage := "unknown", "unknown dosage"
	if detail.MedicationName != nil && *detail.MedicationName != "" {
		medName = *detail.MedicationName
	}
	if detail.MedicationDosage != nil && *detail.MedicationDosage != "" {
		dosage = *detail.MedicationDosage
	}

	return fmt.Sprintf(`Analyze this medication reminder phone call transcript between an AI assistant and a patient named %s. The medication is %s (%s).

Transcript:
%s

Respond in JSON format only:
{
  "summary": "1-2 sentence summary of the call outcome",
  "sentiment": "positive|neutral|negative|concerned",
  "key_facts": ["array of notable facts mentioned by patient, e.g. side effects, feelings, timing"]
}

Only include key_facts that would be useful context for future calls. If nothing notable, use an empty array.`,
		name, medName, dosage, transcript)
}

// parseDigest extracts the JSON object from the model's reply, tolerating
// markdown fences around it. An unparsable reply degrades to a truncated
// plain-text summary with neutral sentiment.
func parseDigest(content string) Digest {
	digest := Digest{Sentiment: "neutral", KeyFacts: []string{}}

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end <= start {
		return digest
	}

	if err := json.Unmarshal([]byte(content[start:end+1]), &digest); err != nil {
		log.Warn().Err(err).Msg("failed to parse model response")
		return Digest{Summary: truncate(content, 200), Sentiment: "neutral", KeyFacts: []string{}}
	}
	if digest.KeyFacts == nil {
		digest.KeyFacts = []string{}
	}
	return digest
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
