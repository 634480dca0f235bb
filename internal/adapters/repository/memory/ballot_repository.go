package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/hoavote/ballotbot/internal/core/domain"
	"github.com/hoavote/ballotbot/internal/core/ports"
)

// ballotRepository is a mutex-guarded map satisfying the same contract
// as the postgres backend. Single-record operations are atomic under
// the lock, so it doubles as the contract fake in tests.
type ballotRepository struct {
	mu      sync.RWMutex
	ballots map[domain.VoterID]domain.BallotRecord
}

func NewBallotRepository() ports.BallotRepository {
	return &ballotRepository{
		ballots: make(map[domain.VoterID]domain.BallotRecord),
	}
}

func (r *ballotRepository) Save(_ context.Context, ballot *domain.BallotRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ballots[ballot.VoterID] = cloneBallot(*ballot)
	return nil
}

func (r *ballotRepository) GetByVoter(_ context.Context, voterID domain.VoterID) (*domain.BallotRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.ballots[voterID]
	if !ok {
		return nil, nil
	}
	out := cloneBallot(rec)
	return &out, nil
}

func (r *ballotRepository) DeleteByVoter(_ context.Context, voterID domain.VoterID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.ballots, voterID)
	return nil
}

func (r *ballotRepository) List(_ context.Context) ([]domain.BallotRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.BallotRecord, 0, len(r.ballots))
	for _, rec := range r.ballots {
		out = append(out, cloneBallot(rec))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].SubmittedAt.Before(out[j].SubmittedAt)
	})
	return out, nil
}

func (r *ballotRepository) DeleteAll(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ballots = make(map[domain.VoterID]domain.BallotRecord)
	return nil
}

func cloneBallot(rec domain.BallotRecord) domain.BallotRecord {
	answers := make([]domain.Answer, len(rec.Answers))
	copy(answers, rec.Answers)
	rec.Answers = answers
	return rec
}
