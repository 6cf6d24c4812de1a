package trace

// TraceSummary aggregates statistics from an EpisodeTrace.
type TraceSummary struct {
	TotalAssignments   int
	AgentAssignments   int
	DefaultAssignments int
	UniqueSources      int
	SourceDistribution map[string]int // source URL → count of pushes it triggers
}

// Summarize computes aggregate statistics from an EpisodeTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(et *EpisodeTrace) *TraceSummary {
	summary := &TraceSummary{
		SourceDistribution: make(map[string]int),
	}
	if et == nil {
		return summary
	}

	summary.TotalAssignments = len(et.Assignments)
	for _, a := range et.Assignments {
		if a.Default {
			summary.DefaultAssignments++
		} else {
			summary.AgentAssignments++
		}
		summary.SourceDistribution[a.SourceURL]++
	}
	summary.UniqueSources = len(summary.SourceDistribution)

	return summary
}
