// Cache-time annotation: enriches push-group resources with lifetimes
// looked up from a persisted replay store. A pure enrichment pass — it
// never adds, removes, or reorders resources, and re-running it with the
// same inputs yields the same annotated state.

package sim

import (
	"github.com/sirupsen/logrus"
)

// CacheableFile is one cacheable entry exposed by a replay store.
type CacheableFile struct {
	Host      string
	URI       string
	CacheTime int64 // seconds
}

// ReplayStore is the boundary to the persisted record/replay directory.
// Implementations live outside the core (see sim/replay).
type ReplayStore interface {
	CacheableFiles() []CacheableFile
}

// AnnotateCacheTimes sets CacheTime on every resource in every group whose
// URL matches a positive cache lifetime in the store. The lookup is keyed
// by both the http:// and https:// reconstructions of host+uri since the
// store records no scheme. Resources with no match, or a non-positive
// lookup result, keep their current value (0 unless previously annotated
// with the same store, which makes the pass idempotent).
func AnnotateCacheTimes(store ReplayStore, groups []*PushGroup) {
	log := logrus.WithField("component", "cache")

	files := store.CacheableFiles()
	cacheTimes := make(map[string]int64, 2*len(files))
	for _, f := range files {
		httpURL, httpsURL := SchemeVariants(f.Host, f.URI)
		cacheTimes[httpURL] = f.CacheTime
		cacheTimes[httpsURL] = f.CacheTime
	}

	annotated := 0
	for _, group := range groups {
		for i := range group.Resources {
			if t := cacheTimes[group.Resources[i].URL]; t > 0 {
				group.Resources[i].CacheTime = t
				annotated++
			}
		}
	}
	log.WithFields(logrus.Fields{
		"cacheable": len(files),
		"annotated": annotated,
	}).Debug("annotated cache times")
}
