package capture

import (
	"strings"

	"github.com/pushsim/pushsim/sim"
)

// HAREntry is one request/response pair of a recorded page load, trimmed to
// the fields the environment consumes.
type HAREntry struct {
	Request  HARRequest  `json:"request"`
	Response HARResponse `json:"response"`
	Critical bool        `json:"critical"`
	// ResourceType is the devtools-style type annotation some exporters
	// attach per entry. When present it wins over MIME sniffing.
	ResourceType string `json:"_resourceType,omitempty"`
}

// HARRequest carries the requested URL.
type HARRequest struct {
	URL string `json:"url"`
}

// HARResponse carries the response metadata used for typing and sizing.
type HARResponse struct {
	MimeType string `json:"mimeType"`
	BodySize int64  `json:"bodySize"`
}

// ResourceTypeFromMime maps a response MIME type onto the resource model.
func ResourceTypeFromMime(mimeType string) sim.ResourceType {
	mime := strings.ToLower(mimeType)
	switch {
	case strings.Contains(mime, "html"):
		return sim.ResourceDocument
	case strings.Contains(mime, "css"):
		return sim.ResourceStylesheet
	case strings.Contains(mime, "javascript"), strings.Contains(mime, "ecmascript"):
		return sim.ResourceScript
	case strings.HasPrefix(mime, "image/"):
		return sim.ResourceImage
	case strings.Contains(mime, "font"):
		return sim.ResourceFont
	}
	return sim.ResourceOther
}

// EntriesToResources converts HAR entries to resources in entry order.
// Entries with negative body sizes (connection reuse artifacts) are clamped
// to zero; duplicate URLs keep only their first occurrence, since resource
// identity is URL-only.
func EntriesToResources(entries []HAREntry) []sim.Resource {
	var resources []sim.Resource
	seen := make(map[string]bool, len(entries))

	for _, entry := range entries {
		if seen[entry.Request.URL] {
			continue
		}
		seen[entry.Request.URL] = true

		size := entry.Response.BodySize
		if size < 0 {
			size = 0
		}
		resType := ResourceTypeFromMime(entry.Response.MimeType)
		if entry.ResourceType != "" {
			resType = sim.ParseResourceType(entry.ResourceType)
		}
		resources = append(resources, sim.Resource{
			URL:      entry.Request.URL,
			Domain:   sim.ParseDomain(entry.Request.URL),
			Type:     resType,
			Size:     size,
			Order:    len(resources),
			Critical: entry.Critical,
		})
	}
	return resources
}

// MarkCritical flags every resource whose URL appears in criticalURLs and
// stores the flagged copies back into the returned slice.
func MarkCritical(resources []sim.Resource, criticalURLs map[string]bool) []sim.Resource {
	for i := range resources {
		if criticalURLs[resources[i].URL] {
			resources[i].Critical = true
		}
	}
	return resources
}
