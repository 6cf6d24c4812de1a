// Package trace provides decision-trace recording for push-scheduling
// episodes. This package has no dependencies on sim/ — it stores pure data
// types.
package trace

// AssignmentRecord captures a single push assignment made during an episode.
type AssignmentRecord struct {
	Step      int // 0-based position in the episode's mutation sequence
	SourceURL string
	TargetURL string
	Default   bool // true for fixed assignments outside the action space
}

// SampleRecord captures one action-space draw, including draws that were
// never applied.
type SampleRecord struct {
	Step      int
	SourceURL string
	TargetURL string
	Remaining int // action-space size at sampling time
}
