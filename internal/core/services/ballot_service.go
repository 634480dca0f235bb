package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hoavote/ballotbot/internal/core/domain"
	"github.com/hoavote/ballotbot/internal/core/ports"
)

// ballotSession is a voter's in-progress ballot: answers collected so
// far plus the index of the question currently being asked. Nothing is
// persisted until the last answer lands.
type ballotSession struct {
	displayName string
	answers     []domain.Answer
	current     int
}

type BallotConfig struct {
	// RequireRegistration gates Begin on a completed eligibility record.
	RequireRegistration bool
	SessionTTL          time.Duration
}

type ballotService struct {
	ballots     ports.BallotRepository
	eligibility ports.EligibilityRepository
	window      *VotingWindow
	sessions    *sessionStore[*ballotSession]
	locks       *voterLocks
	requireReg  bool
}

func NewBallotService(ballots ports.BallotRepository, eligibility ports.EligibilityRepository, window *VotingWindow, cfg BallotConfig) ports.BallotService {
	return &ballotService{
		ballots:     ballots,
		eligibility: eligibility,
		window:      window,
		sessions:    newSessionStore[*ballotSession](cfg.SessionTTL),
		locks:       newVoterLocks(),
		requireReg:  cfg.RequireRegistration,
	}
}

func (s *ballotService) Begin(ctx context.Context, voterID domain.VoterID, displayName string) (domain.Question, error) {
	unlock := s.locks.Lock(voterID)
	defer unlock()

	if !s.window.Allow() {
		return domain.Question{}, domain.ErrGateClosed
	}

	if s.requireReg {
		reg, err := s.eligibility.GetByVoter(ctx, voterID)
		if err != nil {
			return domain.Question{}, err
		}
		if reg == nil {
			return domain.Question{}, domain.ErrNotEligible
		}
	}

	existing, err := s.ballots.GetByVoter(ctx, voterID)
	if err != nil {
		return domain.Question{}, err
	}
	if existing != nil && existing.Complete() {
		return domain.Question{}, domain.ErrAlreadyVoted
	}

	s.sessions.Put(voterID, &ballotSession{displayName: displayName})
	return domain.Questions[0], nil
}

func (s *ballotService) Answer(ctx context.Context, voterID domain.VoterID, questionKey, choice string) (domain.Question, bool, error) {
	unlock := s.locks.Lock(voterID)
	defer unlock()

	if !s.window.Allow() {
		return domain.Question{}, false, domain.ErrGateClosed
	}

	sess, ok := s.sessions.Get(voterID)
	if !ok {
		return domain.Question{}, false, domain.ErrWrongState
	}

	q := domain.Questions[sess.current]
	if q.Key != questionKey {
		// Late duplicate or out-of-order tap: reject rather than
		// misapply the choice to the current question.
		return domain.Question{}, false, domain.ErrWrongState
	}
	if !q.ValidChoice(choice) {
		return domain.Question{}, false, domain.ErrInvalidChoice
	}

	if sess.current == len(domain.Questions)-1 {
		// Final answer: persist the whole ballot as one unit. The
		// session is kept intact if the store fails so the voter can
		// simply retry the step.
		answers := make([]domain.Answer, 0, len(domain.Questions))
		answers = append(answers, sess.answers...)
		answers = append(answers, domain.Answer{Question: questionKey, Choice: choice})
		rec := &domain.BallotRecord{
			ID:          uuid.New(),
			VoterID:     voterID,
			DisplayName: sess.displayName,
			Answers:     answers,
			SubmittedAt: time.Now(),
		}
		if err := s.ballots.Save(ctx, rec); err != nil {
			return domain.Question{}, false, err
		}
		s.sessions.Delete(voterID)
		return domain.Question{}, true, nil
	}

	sess.answers = append(sess.answers, domain.Answer{Question: questionKey, Choice: choice})
	sess.current++
	s.sessions.Put(voterID, sess)
	return domain.Questions[sess.current], false, nil
}

func (s *ballotService) Revote(ctx context.Context, voterID domain.VoterID) error {
	unlock := s.locks.Lock(voterID)
	defer unlock()

	if !s.window.Allow() {
		return domain.ErrGateClosed
	}

	existing, err := s.ballots.GetByVoter(ctx, voterID)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrBallotNotFound
	}

	if err := s.ballots.DeleteByVoter(ctx, voterID); err != nil {
		return err
	}
	s.sessions.Delete(voterID)
	return nil
}
