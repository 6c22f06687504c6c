package domain

import "errors"

var (
	ErrUnauthorized          = errors.New("unauthorized")
	ErrInvalidRequest        = errors.New("invalid request")
	ErrEventNotFound         = errors.New("vote event not found")
	ErrNomineeNotFound       = errors.New("nominee registration not found")
	ErrNotRegistered         = errors.New("user is not registered to vote")
	ErrAlreadyRegistered     = errors.New("user is already registered")
	ErrAlreadyVoted          = errors.New("user has already voted")
	ErrAlreadyApproved       = errors.New("nominee is already approved")
	ErrBallotUnavailable     = errors.New("selected ballot is not available")
	ErrRegistrationClosed    = errors.New("registration period has ended")
	ErrVotingClosed          = errors.New("voting is not currently open")
	ErrEmptySelection        = errors.New("at least one nominee must be selected")
	ErrInvalidSelectionCount = errors.New("single elections require exactly one nominee")
	ErrInvalidNominee        = errors.New("selected nominee is not valid for this event")
	ErrDataIntegrity         = errors.New("nominee ballot data is missing")
	ErrInternal              = errors.New("internal server error")
)
