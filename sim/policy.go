// The policy is the mutable scheduling state of one episode: which resource
// is pushed by which source, split into agent-chosen (trainable) and fixed
// (default) assignments. Assignments only accumulate; nothing removes one
// within an episode.

package sim

import (
	"errors"
	"fmt"
)

// ErrConflictingAssignment is reported when a mutation targets a resource
// that already has a pusher. This is a logic error in the caller; a silent
// overwrite would corrupt the observable push plan.
var ErrConflictingAssignment = errors.New("conflicting push assignment")

// SourcePushes pairs a source resource with the resources it pushes,
// in assignment order.
type SourcePushes struct {
	Source Resource
	Pushes []Resource
}

// Policy tracks the realized push-scheduling state of one episode.
// Create it empty with NewPolicy and mutate it only through ApplyAction
// and AddDefaultAction; discard it at episode end.
type Policy struct {
	space *ActionSpace

	pushedBy map[string]string // target URL -> source URL, union of both sets

	trainable      []SourcePushes
	trainableIndex map[string]int // source URL -> index into trainable
	defaults       []SourcePushes
	defaultIndex   map[string]int
}

// NewPolicy creates an empty policy bound to the episode's action space.
// The binding lets assignments shrink the space as they are recorded.
func NewPolicy(space *ActionSpace) *Policy {
	return &Policy{
		space:          space,
		pushedBy:       make(map[string]string),
		trainableIndex: make(map[string]int),
		defaultIndex:   make(map[string]int),
	}
}

// ApplyAction records a trainable assignment from an action-space entry and
// shrinks the action space for the entry's target. The conflict check is
// defensive: a correctly shrinking space never offers an assigned target.
func (p *Policy) ApplyAction(entry ActionSpaceEntry) error {
	if err := p.record(entry.Source, entry.Target, &p.trainable, p.trainableIndex); err != nil {
		return err
	}
	p.space.UseTarget(entry.Target)
	return nil
}

// AddDefaultAction records a fixed assignment outside the action space's
// control, intended for non-trainable groups or any push the agent does
// not choose. The same conflict rule applies across both assignment sets.
func (p *Policy) AddDefaultAction(source, target Resource) error {
	if err := p.record(source, target, &p.defaults, p.defaultIndex); err != nil {
		return err
	}
	p.space.UseTarget(target)
	return nil
}

func (p *Policy) record(source, target Resource, set *[]SourcePushes, index map[string]int) error {
	if prev, ok := p.pushedBy[target.URL]; ok {
		return fmt.Errorf("%w: %s already pushed by %s", ErrConflictingAssignment, target.URL, prev)
	}
	p.pushedBy[target.URL] = source.URL

	i, ok := index[source.URL]
	if !ok {
		i = len(*set)
		index[source.URL] = i
		*set = append(*set, SourcePushes{Source: source})
	}
	(*set)[i].Pushes = append((*set)[i].Pushes, target)
	return nil
}

// Assignments yields the trainable (agent-chosen) assignments grouped by
// source, in assignment order. Used to validate agent behavior independent
// of fixed defaults.
func (p *Policy) Assignments() []SourcePushes {
	return p.trainable
}

// Observable yields the union of trainable and default assignments grouped
// by source: the push plan that would actually be realized on the wire.
// Trainable sources come first in assignment order, then default-only
// sources; a source present in both sets appears once with its trainable
// pushes followed by its default pushes.
func (p *Policy) Observable() []SourcePushes {
	out := make([]SourcePushes, 0, len(p.trainable)+len(p.defaults))
	merged := make(map[string]int, len(p.trainable))

	for _, sp := range p.trainable {
		merged[sp.Source.URL] = len(out)
		out = append(out, SourcePushes{Source: sp.Source, Pushes: append([]Resource(nil), sp.Pushes...)})
	}
	for _, sp := range p.defaults {
		if i, ok := merged[sp.Source.URL]; ok {
			out[i].Pushes = append(out[i].Pushes, sp.Pushes...)
			continue
		}
		out = append(out, SourcePushes{Source: sp.Source, Pushes: append([]Resource(nil), sp.Pushes...)})
	}
	return out
}

// NumAssigned returns the total number of recorded assignments across both
// sets.
func (p *Policy) NumAssigned() int {
	return len(p.pushedBy)
}

// PushedBy returns the source URL assigned to push the given target, if any.
func (p *Policy) PushedBy(target Resource) (string, bool) {
	src, ok := p.pushedBy[target.URL]
	return src, ok
}
