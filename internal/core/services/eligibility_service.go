package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hoavote/ballotbot/internal/core/domain"
	"github.com/hoavote/ballotbot/internal/core/ports"
)

// registrationSession accumulates a voter's answers through the dialog.
// The record is only written once the declaration step is acknowledged.
type registrationSession struct {
	step domain.RegistrationStep
	rec  domain.EligibilityRecord
}

type eligibilityService struct {
	repo     ports.EligibilityRepository
	window   *VotingWindow
	sessions *sessionStore[*registrationSession]
	locks    *voterLocks
}

func NewEligibilityService(repo ports.EligibilityRepository, window *VotingWindow, sessionTTL time.Duration) ports.EligibilityService {
	return &eligibilityService{
		repo:     repo,
		window:   window,
		sessions: newSessionStore[*registrationSession](sessionTTL),
		locks:    newVoterLocks(),
	}
}

func (s *eligibilityService) Start(ctx context.Context, voterID domain.VoterID) (domain.RegistrationStep, error) {
	unlock := s.locks.Lock(voterID)
	defer unlock()

	if !s.window.Allow() {
		return domain.StepDone, domain.ErrGateClosed
	}

	existing, err := s.repo.GetByVoter(ctx, voterID)
	if err != nil {
		return domain.StepDone, err
	}
	if existing != nil {
		return domain.StepDone, domain.ErrAlreadyRegistered
	}

	s.sessions.Put(voterID, &registrationSession{
		step: domain.StepFullName,
		rec:  domain.EligibilityRecord{VoterID: voterID},
	})
	return domain.StepFullName, nil
}

func (s *eligibilityService) Text(ctx context.Context, voterID domain.VoterID, text string) (domain.RegistrationStep, error) {
	unlock := s.locks.Lock(voterID)
	defer unlock()

	if !s.window.Allow() {
		return domain.StepDone, domain.ErrGateClosed
	}

	sess, ok := s.sessions.Get(voterID)
	if !ok {
		return domain.StepDone, domain.ErrWrongState
	}
	if !sess.step.FreeText() {
		return domain.StepDone, domain.ErrWrongState
	}

	text = strings.TrimSpace(text)
	switch sess.step {
	case domain.StepFullName:
		sess.rec.FullName = text
	case domain.StepAddress:
		sess.rec.Address = text
	case domain.StepMobile:
		sess.rec.Mobile = text
	case domain.StepEmail:
		sess.rec.Email = text
	case domain.StepNomineeNames:
		sess.rec.NomineeNames = text
	}

	if sess.step == domain.StepNomineeNames {
		sess.step = domain.StepDeclaration
	} else {
		sess.step++
	}
	s.sessions.Put(voterID, sess)
	return sess.step, nil
}

func (s *eligibilityService) Choose(ctx context.Context, voterID domain.VoterID, stepKey, value string) (domain.RegistrationStep, error) {
	unlock := s.locks.Lock(voterID)
	defer unlock()

	if !s.window.Allow() {
		return domain.StepDone, domain.ErrGateClosed
	}

	sess, ok := s.sessions.Get(voterID)
	if !ok {
		return domain.StepDone, domain.ErrWrongState
	}

	step, ok := domain.StepByKey(stepKey)
	if !ok || step != sess.step || sess.step.FreeText() {
		return domain.StepDone, domain.ErrWrongState
	}
	if !sess.step.ValidOption(value) {
		return domain.StepDone, domain.ErrInvalidChoice
	}

	switch sess.step {
	case domain.StepMembershipStatus:
		sess.rec.MembershipStatus = domain.MembershipStatus(value)
		sess.step = domain.StepAttendance
	case domain.StepAttendance:
		sess.rec.Attendance = domain.Attendance(value)
		sess.step = domain.StepNominationDecision
	case domain.StepNominationDecision:
		if value == "yes" {
			sess.rec.WishesToNominate = true
			sess.step = domain.StepNomineeNames
		} else {
			sess.step = domain.StepDeclaration
		}
	case domain.StepDeclaration:
		sess.rec.Declared = true
		sess.rec.ID = uuid.New()
		sess.rec.SubmittedAt = time.Now()
		if err := s.repo.Save(ctx, &sess.rec); err != nil {
			// Leave the session in place so the voter can retry the
			// declaration without re-entering everything.
			sess.rec.Declared = false
			return domain.StepDone, err
		}
		s.sessions.Delete(voterID)
		return domain.StepDone, nil
	}

	s.sessions.Put(voterID, sess)
	return sess.step, nil
}

func (s *eligibilityService) Cancel(ctx context.Context, voterID domain.VoterID) error {
	unlock := s.locks.Lock(voterID)
	defer unlock()
	s.sessions.Delete(voterID)
	return nil
}
