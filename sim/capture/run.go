// Package capture aggregates page-load capture runs for stable-set
// discovery. The browser/network orchestration that produces a capture is
// an external collaborator hidden behind CaptureFunc; this package only
// collects results, records failures, and converts HAR entries to the
// core resource model.
package capture

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/pushsim/pushsim/sim"
)

// Run is one capture attempt of a page load. Every attempt gets a unique
// identifier so failed runs stay traceable in logs and manifests even
// though they carry no resources.
type Run struct {
	ID        uuid.UUID
	URL       string
	Resources []sim.Resource // in observed load order; nil when the capture failed
}

// Failed reports whether the capture produced no resources.
func (r Run) Failed() bool {
	return len(r.Resources) == 0
}

// CaptureFunc performs one capture of the given URL and returns its
// resources in observed order. Implementations may shell out to a browser,
// replay a recorded load, or synthesize traffic in tests.
type CaptureFunc func(url string) ([]sim.Resource, error)

// CollectRuns performs n independent captures of the URL and returns one
// Run per attempt, failures included, so the stable-set discoverer can
// count and skip them. A failed run is kept with a warning, never a fatal
// error; partial results degrade gracefully.
func CollectRuns(fn CaptureFunc, url string, n int) []Run {
	log := logrus.WithField("component", "capture")

	runs := make([]Run, n)
	for i := range runs {
		runs[i] = Run{ID: uuid.New(), URL: url}
		log.WithFields(logrus.Fields{"run": i + 1, "id": runs[i].ID, "url": url}).Debug("capturing")

		resources, err := fn(url)
		if err != nil {
			log.WithFields(logrus.Fields{"run": i + 1, "id": runs[i].ID}).WithError(err).Warn("capture failed")
			continue
		}
		runs[i].Resources = resources
	}
	return runs
}

// ResourceSets flattens runs into one resource slice per attempt, failed
// runs as nil entries, the shape the stable-set discoverer consumes.
func ResourceSets(runs []Run) [][]sim.Resource {
	sets := make([][]sim.Resource, len(runs))
	for i, run := range runs {
		sets[i] = run.Resources
	}
	return sets
}
