package domain

import (
	"time"

	"github.com/google/uuid"
)

// VoterID is the transport-supplied numeric account id of a participant.
type VoterID int64

type Answer struct {
	Question string `json:"question"`
	Choice   string `json:"choice"`
}

type BallotRecord struct {
	ID          uuid.UUID `json:"id"`
	VoterID     VoterID   `json:"voter_id"`
	DisplayName string    `json:"display_name"`
	Answers     []Answer  `json:"answers"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// Complete reports whether every question in the catalog has an answer.
func (b *BallotRecord) Complete() bool {
	for _, q := range Questions {
		if _, ok := b.Choice(q.Key); !ok {
			return false
		}
	}
	return true
}

// Choice returns the recorded choice for a question, if any.
func (b *BallotRecord) Choice(questionKey string) (string, bool) {
	for _, a := range b.Answers {
		if a.Question == questionKey {
			return a.Choice, true
		}
	}
	return "", false
}
