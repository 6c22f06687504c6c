package domain

import "time"

// Phase is the lifecycle stage of an event, derived purely from its
// three timestamps and the current time. Any observer holding the
// event can re-derive it.
type Phase string

const (
	PhaseRegistration Phase = "registration"
	PhaseWaiting      Phase = "waiting"
	PhaseVoting       Phase = "voting"
	PhaseFinished     Phase = "finished"
)

func ParsePhase(s string) (Phase, error) {
	switch Phase(s) {
	case PhaseRegistration, PhaseWaiting, PhaseVoting, PhaseFinished:
		return Phase(s), nil
	}
	return "", ErrInvalidRequest
}

// PhaseAt resolves the event phase at the given instant. The rules
// form an ordered decision list; the voting window is inclusive on
// both ends.
func (e *VoteEvent) PhaseAt(now time.Time) Phase {
	switch {
	case now.Before(e.RegEndTime):
		return PhaseRegistration
	case now.Before(e.VoteStartTime):
		return PhaseWaiting
	case !now.After(e.VoteEndTime):
		return PhaseVoting
	default:
		return PhaseFinished
	}
}
