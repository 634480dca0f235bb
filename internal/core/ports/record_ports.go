package ports

import (
	"context"

	"github.com/hoavote/ballotbot/internal/core/domain"
)

// BallotRepository is the keyed store of completed ballots. Save must be
// atomic: a ballot and its answers become visible to readers as one unit
// or not at all. Get returns (nil, nil) when no ballot exists.
type BallotRepository interface {
	GetByVoter(ctx context.Context, voterID domain.VoterID) (*domain.BallotRecord, error)
	Save(ctx context.Context, ballot *domain.BallotRecord) error
	DeleteByVoter(ctx context.Context, voterID domain.VoterID) error
	List(ctx context.Context) ([]domain.BallotRecord, error)
	DeleteAll(ctx context.Context) error
}

// EligibilityRepository stores completed pre-vote registrations, at most
// one per voter. Get returns (nil, nil) when no registration exists.
type EligibilityRepository interface {
	GetByVoter(ctx context.Context, voterID domain.VoterID) (*domain.EligibilityRecord, error)
	Save(ctx context.Context, rec *domain.EligibilityRecord) error
	DeleteByVoter(ctx context.Context, voterID domain.VoterID) error
}
