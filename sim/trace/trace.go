package trace

// TraceLevel controls the verbosity of episode tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelDecisions captures all samples and assignments of an episode.
	TraceLevelDecisions TraceLevel = "decisions"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:      true,
	TraceLevelDecisions: true,
	"":                  true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// EpisodeTrace collects decision records during one training episode.
type EpisodeTrace struct {
	Level       TraceLevel
	Seed        int64
	Samples     []SampleRecord
	Assignments []AssignmentRecord
}

// NewEpisodeTrace creates an EpisodeTrace ready for recording.
func NewEpisodeTrace(level TraceLevel, seed int64) *EpisodeTrace {
	return &EpisodeTrace{
		Level:       level,
		Seed:        seed,
		Samples:     make([]SampleRecord, 0),
		Assignments: make([]AssignmentRecord, 0),
	}
}

// RecordSample appends an action-space draw record.
func (et *EpisodeTrace) RecordSample(record SampleRecord) {
	if et.Level == TraceLevelNone || et.Level == "" {
		return
	}
	et.Samples = append(et.Samples, record)
}

// RecordAssignment appends a push-assignment record.
func (et *EpisodeTrace) RecordAssignment(record AssignmentRecord) {
	if et.Level == TraceLevelNone || et.Level == "" {
		return
	}
	et.Assignments = append(et.Assignments, record)
}
