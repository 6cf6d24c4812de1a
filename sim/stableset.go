// Implements stable-set discovery: collapsing N noisy capture runs of the
// same page into one deterministic, ordered list of the resources common to
// every successful run.

package sim

import (
	"sort"

	"github.com/sirupsen/logrus"
)

// DefaultStableSetRuns is the number of capture runs aggregated per page.
const DefaultStableSetRuns = 10

// precedenceMatrix counts, for every ordered pair of URLs, how many runs
// observed the first URL strictly before the second. Absent pairs count 0;
// votes never auto-vivifies nested maps.
type precedenceMatrix map[string]map[string]int

func (p precedenceMatrix) increment(before, after string) {
	row, ok := p[before]
	if !ok {
		row = make(map[string]int)
		p[before] = row
	}
	row[after]++
}

func (p precedenceMatrix) votes(before, after string) int {
	return p[before][after]
}

// Discoverer aggregates independent capture runs of one URL into a stable
// set. It is a blocking-barrier consumer: callers hand it the complete set
// of run results (or their recorded failures as empty runs) and it never
// speculates on partial data.
type Discoverer struct {
	runs int
	log  *logrus.Entry
}

// NewDiscoverer creates a Discoverer expecting the given number of runs.
// A non-positive count falls back to DefaultStableSetRuns.
func NewDiscoverer(runs int) *Discoverer {
	if runs <= 0 {
		runs = DefaultStableSetRuns
	}
	return &Discoverer{
		runs: runs,
		log:  logrus.WithField("component", "stableset"),
	}
}

// Runs returns the configured number of capture runs per discovery.
func (d *Discoverer) Runs() int {
	return d.runs
}

// Discover computes the ordered stable set across the given runs. Each run
// is an ordered resource sequence; empty or nil runs are treated as failed
// captures, logged, and excluded from the intersection denominator. The
// result is empty (not an error) when no run produced resources or the
// intersection is empty.
//
// Ordering rule: resource a precedes b when a was observed before b in more
// than half of the successful runs. Ties keep the relative order of the
// first successful run, so repeated discoveries on the same input are
// byte-for-byte reproducible.
func (d *Discoverer) Discover(runs [][]Resource) []Resource {
	precedence := make(precedenceMatrix)
	var successful [][]Resource

	for n, run := range runs {
		if len(run) == 0 {
			d.log.WithField("run", n+1).Warn("no response received")
			continue
		}
		for i := 0; i < len(run); i++ {
			for j := i + 1; j < len(run); j++ {
				precedence.increment(run[i].URL, run[j].URL)
			}
		}
		successful = append(successful, run)
	}

	if len(successful) == 0 {
		d.log.Warn("all capture runs failed, stable set is empty")
		return nil
	}

	// Intersection over successful runs: a URL survives only if every
	// successful run observed it. Seed the candidate list from the first
	// successful run so the pre-sort order is deterministic.
	seen := make(map[string]int)
	for _, run := range successful {
		inRun := make(map[string]bool, len(run))
		for _, res := range run {
			if !inRun[res.URL] {
				inRun[res.URL] = true
				seen[res.URL]++
			}
		}
	}

	var common []Resource
	for _, res := range successful[0] {
		if seen[res.URL] == len(successful) {
			common = append(common, res)
			seen[res.URL] = -1 // dedup within the seeding run
		}
	}

	majority := len(successful) / 2
	sort.SliceStable(common, func(i, j int) bool {
		return precedence.votes(common[i].URL, common[j].URL) > majority
	})

	for i := range common {
		common[i].Order = i
	}

	d.log.WithFields(logrus.Fields{
		"runs":       len(runs),
		"successful": len(successful),
		"stable":     len(common),
	}).Debug("discovered stable set")
	return common
}
