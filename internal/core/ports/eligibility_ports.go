package ports

import (
	"context"

	"github.com/hoavote/ballotbot/internal/core/domain"
)

// EligibilityService drives the multi-step registration dialog. Each call
// returns the step the voter should be prompted with next; StepDone means
// the registration has been persisted.
type EligibilityService interface {
	Start(ctx context.Context, voterID domain.VoterID) (domain.RegistrationStep, error)

	// Text feeds a free-text message into the voter's current step.
	Text(ctx context.Context, voterID domain.VoterID, text string) (domain.RegistrationStep, error)

	// Choose feeds a button choice into the voter's current step.
	Choose(ctx context.Context, voterID domain.VoterID, stepKey, value string) (domain.RegistrationStep, error)

	// Cancel abandons any in-progress registration without writing a record.
	Cancel(ctx context.Context, voterID domain.VoterID) error
}
