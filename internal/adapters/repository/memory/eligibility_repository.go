package memory

import (
	"context"
	"sync"

	"github.com/hoavote/ballotbot/internal/core/domain"
	"github.com/hoavote/ballotbot/internal/core/ports"
)

type eligibilityRepository struct {
	mu      sync.RWMutex
	records map[domain.VoterID]domain.EligibilityRecord
}

func NewEligibilityRepository() ports.EligibilityRepository {
	return &eligibilityRepository{
		records: make(map[domain.VoterID]domain.EligibilityRecord),
	}
}

func (r *eligibilityRepository) Save(_ context.Context, rec *domain.EligibilityRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[rec.VoterID] = *rec
	return nil
}

func (r *eligibilityRepository) GetByVoter(_ context.Context, voterID domain.VoterID) (*domain.EligibilityRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[voterID]
	if !ok {
		return nil, nil
	}
	out := rec
	return &out, nil
}

func (r *eligibilityRepository) DeleteByVoter(_ context.Context, voterID domain.VoterID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.records, voterID)
	return nil
}
