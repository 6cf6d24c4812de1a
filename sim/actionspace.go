// The action space enumerates the legal, still-available push assignments
// over the trainable push groups of one episode. It shrinks monotonically
// as assignments are applied and is never mutated otherwise.

package sim

import (
	"errors"
	"fmt"
	"math/rand"
)

// ErrEmptySpace is reported when Sample is called with no remaining
// candidates. Callers should check Len before sampling or handle this
// explicitly; it marks the end of an episode's useful actions.
var ErrEmptySpace = errors.New("action space is empty")

// ActionSpaceEntry is one candidate assignment: Source may push Target.
// Both belong to the same trainable push group and Source arrives before
// Target, so its response can still trigger the push.
type ActionSpaceEntry struct {
	Source Resource
	Target Resource
}

func (e ActionSpaceEntry) String() string {
	return fmt.Sprintf("(%s -> %s)", e.Source.URL, e.Target.URL)
}

// ActionSpace holds the not-yet-assigned candidate pairs of an episode.
// Constructed once per episode from a fixed set of push groups; only
// trainable groups contribute entries. Sampling is reproducible under a
// fixed seed.
type ActionSpace struct {
	entries []ActionSpaceEntry
	rng     *rand.Rand
}

// NewActionSpace enumerates the candidate pairs of the trainable groups.
// The RNG drives Sample; pass the SubsystemActionSpace RNG of a
// PartitionedRNG for reproducible episodes.
func NewActionSpace(groups []*PushGroup, rng *rand.Rand) *ActionSpace {
	var entries []ActionSpaceEntry
	for _, group := range groups {
		if !group.Trainable {
			continue
		}
		for i := 0; i < len(group.Resources); i++ {
			for j := i + 1; j < len(group.Resources); j++ {
				entries = append(entries, ActionSpaceEntry{
					Source: group.Resources[i],
					Target: group.Resources[j],
				})
			}
		}
	}
	return &ActionSpace{entries: entries, rng: rng}
}

// Len returns the number of currently unassigned candidate pairs.
func (s *ActionSpace) Len() int {
	return len(s.entries)
}

// Sample returns one uniformly selected unassigned candidate pair.
// Sampling does not remove the entry; removal happens only when the
// policy records an assignment for the entry's target.
func (s *ActionSpace) Sample() (ActionSpaceEntry, error) {
	if len(s.entries) == 0 {
		return ActionSpaceEntry{}, ErrEmptySpace
	}
	return s.entries[s.rng.Intn(len(s.entries))], nil
}

// UseTarget removes every candidate pair whose target is the given
// resource, regardless of source: a resource can be pushed by at most one
// source, so all competing candidates become invalid simultaneously.
func (s *ActionSpace) UseTarget(target Resource) {
	kept := s.entries[:0]
	for _, e := range s.entries {
		if !SameResource(e.Target, target) {
			kept = append(kept, e)
		}
	}
	s.entries = kept
}
