package ports

import (
	"context"

	"github.com/hoavote/ballotbot/internal/core/domain"
)

// VoterAnswers pairs a voter's display name with their recorded answers.
type VoterAnswers struct {
	DisplayName string
	Answers     []domain.Answer
}

// TallySummary holds per-question choice counts plus the voter roll.
// Counts cover complete ballots only, and only choices that belong to
// the question's fixed set.
type TallySummary struct {
	Counts map[string]map[string]int
	Voters []VoterAnswers
	Total  int
}

type TallyService interface {
	Summarize(ctx context.Context) (*TallySummary, error)
}
