// Defines the Resource and PushGroup structs that model a page's dependency
// structure. Resources are identified by URL; every other field is an
// attribute, not identity.

package sim

import (
	"fmt"
)

// ResourceType classifies a fetched object of a page load.
type ResourceType int

const (
	ResourceDocument ResourceType = iota
	ResourceStylesheet
	ResourceScript
	ResourceImage
	ResourceFont
	ResourceOther
)

// resourceTypeNames maps each ResourceType to its manifest name.
var resourceTypeNames = map[ResourceType]string{
	ResourceDocument:   "document",
	ResourceStylesheet: "stylesheet",
	ResourceScript:     "script",
	ResourceImage:      "image",
	ResourceFont:       "font",
	ResourceOther:      "other",
}

// ParseResourceType maps a manifest name back to its ResourceType.
// Unknown names resolve to ResourceOther.
func ParseResourceType(name string) ResourceType {
	for rt, n := range resourceTypeNames {
		if n == name {
			return rt
		}
	}
	return ResourceOther
}

func (rt ResourceType) String() string {
	if n, ok := resourceTypeNames[rt]; ok {
		return n
	}
	return "other"
}

// MaxResourceType is the highest valid ResourceType code, used for
// observation bounds checking.
const MaxResourceType = int(ResourceOther)

// Resource models one fetched object of a page load.
// Two Resources are equal iff their URLs are equal.
type Resource struct {
	URL       string       `json:"url"`
	Domain    string       `json:"domain"`
	Type      ResourceType `json:"type"`
	Size      int64        `json:"size"`       // response body bytes
	Order     int          `json:"order"`      // rank assigned by the stable-set discoverer
	CacheTime int64        `json:"cache_time"` // seconds servable from cache; 0 = not cacheable or unknown
	Critical  bool         `json:"critical"`   // observed on the critical rendering path
}

// SameResource reports identity per the URL-only equality rule.
func SameResource(a, b Resource) bool {
	return a.URL == b.URL
}

func (r Resource) String() string {
	return fmt.Sprintf("Resource: (URL: %s, Type: %s, Order: %d, Size: %d)", r.URL, r.Type, r.Order, r.Size)
}

// PushGroup is an ordered, non-empty sequence of resources sharing one
// initiating resource. Resources[0] is the source: the resource whose
// response is eligible to trigger pushes of the remaining entries. The
// source never pushes itself.
type PushGroup struct {
	Resources []Resource `json:"resources"`
	Trainable bool       `json:"trainable"`
}

// Source returns the group's initiating resource.
func (g *PushGroup) Source() Resource {
	return g.Resources[0]
}

func (g *PushGroup) String() string {
	return fmt.Sprintf("PushGroup: (Source: %s, Resources: %d, Trainable: %v)",
		g.Resources[0].URL, len(g.Resources), g.Trainable)
}
