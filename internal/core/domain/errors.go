package domain

import "errors"

var (
	ErrGateClosed        = errors.New("voting is currently closed")
	ErrNotEligible       = errors.New("voter has not completed pre-vote registration")
	ErrAlreadyVoted      = errors.New("voter has already voted")
	ErrAlreadyRegistered = errors.New("voter has already registered")
	ErrInvalidChoice     = errors.New("choice is not valid for this question")
	ErrWrongState        = errors.New("interaction does not match the voter's current step")
	ErrBallotNotFound    = errors.New("no ballot recorded for this voter")
	ErrUnauthorized      = errors.New("operation restricted to administrators")
	ErrStoreUnavailable  = errors.New("record store unavailable")
)
