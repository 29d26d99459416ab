package controller

// Phase is the request lifecycle state of a screen:
//
//	Idle → Validating → Requesting → (Succeeded | Failed) → CoolingDown → Idle
//
// Validation failures go straight to Failed without a cooldown; every
// completed or cancelled network request passes through CoolingDown.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseValidating
	PhaseRequesting
	PhaseSucceeded
	PhaseFailed
	PhaseCoolingDown
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseValidating:
		return "validating"
	case PhaseRequesting:
		return "requesting"
	case PhaseSucceeded:
		return "succeeded"
	case PhaseFailed:
		return "failed"
	case PhaseCoolingDown:
		return "cooling_down"
	}
	return "unknown"
}

// RequestAllowed reports whether the request affordance is enabled:
// disabled while a call is in flight and during the cooldown window.
func (p Phase) RequestAllowed() bool {
	return p != PhaseRequesting && p != PhaseCoolingDown
}
