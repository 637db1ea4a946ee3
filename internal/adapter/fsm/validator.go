package fsm

import (
	"context"
	"errors"

	loopfsm "github.com/looplab/fsm"

	"github.com/neomorfeo/licenseiq/internal/domain"
)

// Compile-time check: Validator implements domain.TransitionValidator.
var _ domain.TransitionValidator = (*Validator)(nil)

// events is domain.Transitions translated into looplab/fsm EventDesc form.
// Rows sharing an event and destination collapse into one EventDesc with
// multiple sources, so expire from "active" and from "suspended" become a
// single "expire" event with Src {"active", "suspended"}.
var events = buildEvents()

func buildEvents() []loopfsm.EventDesc {
	var descs []loopfsm.EventDesc
	index := make(map[string]int)

	for _, t := range domain.Transitions {
		k := string(t.Event) + "\x00" + string(t.Dst)
		if i, ok := index[k]; ok {
			descs[i].Src = append(descs[i].Src, string(t.Src))
			continue
		}
		index[k] = len(descs)
		descs = append(descs, loopfsm.EventDesc{
			Name: string(t.Event),
			Src:  []string{string(t.Src)},
			Dst:  string(t.Dst),
		})
	}
	return descs
}

// Validator implements domain.TransitionValidator using looplab/fsm.
// It creates a short-lived FSM instance per Apply call, initialized with
// the license's current status. This is necessary because looplab/fsm is
// stateful (it tracks the current state internally).
type Validator struct{}

// New creates a new FSM-backed transition validator.
func New() *Validator {
	return &Validator{}
}

// Apply checks if the given event is valid from the current status and
// returns the destination status. Returns a domain.TransitionError if
// the transition is not allowed. Terminal statuses (expired, denied)
// reject every event because no transition lists them as a source.
func (v *Validator) Apply(ctx context.Context, current domain.Status, event domain.Event) (domain.Status, error) {
	machine := loopfsm.NewFSM(string(current), events, nil)

	if err := machine.Event(ctx, string(event)); err != nil {
		var invalidEvent loopfsm.InvalidEventError
		var noTransition loopfsm.NoTransitionError
		if errors.As(err, &invalidEvent) || errors.As(err, &noTransition) {
			return "", &domain.TransitionError{
				Event:   event,
				Current: current,
			}
		}
		return "", err
	}

	return domain.Status(machine.Current()), nil
}
