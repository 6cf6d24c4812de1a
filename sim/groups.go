// Partitions an ordered stable set into push groups and classifies each
// group as trainable or fixed by matching the source domain against the
// configured training globs.

package sim

import (
	"fmt"
	"path"

	"github.com/sirupsen/logrus"
)

// GroupStrategy decides which resources share a push group. Implementations
// must be deterministic: the same resource always maps to the same key.
type GroupStrategy interface {
	// GroupKey buckets a resource; resources with equal keys share a group.
	GroupKey(res Resource) string
}

// DomainGrouping is the default strategy: one group per exact domain, with
// the earliest-ordered resource of the domain acting as the group source.
type DomainGrouping struct{}

func (DomainGrouping) GroupKey(res Resource) string {
	return res.Domain
}

// DefaultTrainDomainGlobs returns the training globs used when none are
// configured: any domain containing the requested page's domain.
func DefaultTrainDomainGlobs(pageURL string) []string {
	return []string{fmt.Sprintf("*%s*", ParseDomain(pageURL))}
}

// GroupBuilder partitions an ordered resource list into push groups.
// Group formation is deterministic given the same input and patterns.
type GroupBuilder struct {
	patterns []string
	strategy GroupStrategy
	log      *logrus.Entry
}

// NewGroupBuilder creates a GroupBuilder with the given training globs.
// A nil strategy selects DomainGrouping.
func NewGroupBuilder(trainDomainGlobs []string, strategy GroupStrategy) *GroupBuilder {
	if strategy == nil {
		strategy = DomainGrouping{}
	}
	return &GroupBuilder{
		patterns: trainDomainGlobs,
		strategy: strategy,
		log:      logrus.WithField("component", "groups"),
	}
}

// Build buckets every input resource into exactly one push group, in input
// order. The first resource bucketed into a group becomes its source, and
// the source domain decides trainability via the configured globs.
func (b *GroupBuilder) Build(resources []Resource) []*PushGroup {
	var groups []*PushGroup
	index := make(map[string]int)

	for _, res := range resources {
		key := b.strategy.GroupKey(res)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, &PushGroup{
				Trainable: b.matchesTrainable(res.Domain),
			})
		}
		groups[i].Resources = append(groups[i].Resources, res)
	}

	b.log.WithFields(logrus.Fields{
		"resources": len(resources),
		"groups":    len(groups),
	}).Debug("built push groups")
	return groups
}

// matchesTrainable reports whether the domain matches any training glob.
// Malformed patterns never match.
func (b *GroupBuilder) matchesTrainable(domain string) bool {
	for _, pattern := range b.patterns {
		if ok, err := path.Match(pattern, domain); err == nil && ok {
			return true
		}
	}
	return false
}
