package ports

import (
	"context"

	"github.com/hoavote/ballotbot/internal/core/domain"
)

// BallotService drives the sequential one-ballot-per-voter workflow.
type BallotService interface {
	// Begin starts a fresh ballot and returns the first question.
	Begin(ctx context.Context, voterID domain.VoterID, displayName string) (domain.Question, error)

	// Answer records a choice for the voter's current question. It
	// returns the next question, or done=true when the ballot is
	// complete and has been persisted.
	Answer(ctx context.Context, voterID domain.VoterID, questionKey, choice string) (next domain.Question, done bool, err error)

	// Revote deletes the voter's existing ballot so they can begin again.
	Revote(ctx context.Context, voterID domain.VoterID) error
}
