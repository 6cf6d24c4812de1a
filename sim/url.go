package sim

import (
	"fmt"
	"net/url"
	"strings"
)

// ParseDomain extracts the host (without port) from a raw URL.
// Scheme-relative and path-only references resolve to an empty domain.
func ParseDomain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

// SchemeVariants returns the http:// and https:// reconstructions of a
// host+uri pair. The cache annotator keys its lookup by both since the
// replay store records host and path without a scheme.
func SchemeVariants(host, uri string) (string, string) {
	if !strings.HasPrefix(uri, "/") {
		uri = "/" + uri
	}
	return fmt.Sprintf("http://%s%s", host, uri), fmt.Sprintf("https://%s%s", host, uri)
}
