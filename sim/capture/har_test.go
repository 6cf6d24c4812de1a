package capture

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pushsim/pushsim/sim"
)

func TestResourceTypeFromMime(t *testing.T) {
	tests := []struct {
		mime string
		want sim.ResourceType
	}{
		{"text/html; charset=utf-8", sim.ResourceDocument},
		{"text/css", sim.ResourceStylesheet},
		{"application/javascript", sim.ResourceScript},
		{"text/javascript; charset=UTF-8", sim.ResourceScript},
		{"image/png", sim.ResourceImage},
		{"image/svg+xml", sim.ResourceImage},
		{"font/woff2", sim.ResourceFont},
		{"application/font-woff", sim.ResourceFont},
		{"application/json", sim.ResourceOther},
		{"", sim.ResourceOther},
	}
	for _, tt := range tests {
		if got := ResourceTypeFromMime(tt.mime); got != tt.want {
			t.Errorf("ResourceTypeFromMime(%q) = %v, want %v", tt.mime, got, tt.want)
		}
	}
}

func harEntry(url, mime string, size int64) HAREntry {
	return HAREntry{
		Request:  HARRequest{URL: url},
		Response: HARResponse{MimeType: mime, BodySize: size},
	}
}

func TestEntriesToResources(t *testing.T) {
	entries := []HAREntry{
		harEntry("https://example.com/", "text/html", 12000),
		harEntry("https://example.com/app.css", "text/css", 4000),
		harEntry("https://example.com/", "text/html", 12000), // duplicate URL
		harEntry("https://example.com/pixel.gif", "image/gif", -1),
	}

	resources := EntriesToResources(entries)

	if len(resources) != 3 {
		t.Fatalf("got %d resources, want 3 (duplicate dropped)", len(resources))
	}
	assert.Equal(t, "example.com", resources[0].Domain)
	assert.Equal(t, sim.ResourceDocument, resources[0].Type)
	for i, r := range resources {
		if r.Order != i {
			t.Errorf("resource %s: order = %d, want %d", r.URL, r.Order, i)
		}
	}
	// Negative body sizes are connection artifacts, clamped to zero.
	assert.Equal(t, int64(0), resources[2].Size)
}

func TestEntriesToResources_HonorsTypeAnnotation(t *testing.T) {
	// Exporters that annotate entries with a type name override MIME
	// sniffing; unannotated entries still fall back to the MIME type.
	annotated := harEntry("https://example.com/styles", "text/plain", 100)
	annotated.ResourceType = "stylesheet"
	entries := []HAREntry{
		annotated,
		harEntry("https://example.com/app.js", "application/javascript", 100),
	}

	resources := EntriesToResources(entries)

	assert.Equal(t, sim.ResourceStylesheet, resources[0].Type)
	assert.Equal(t, sim.ResourceScript, resources[1].Type)
}

func TestMarkCritical_StoresFlaggedCopies(t *testing.T) {
	resources := EntriesToResources([]HAREntry{
		harEntry("https://example.com/", "text/html", 100),
		harEntry("https://example.com/app.css", "text/css", 100),
	})

	marked := MarkCritical(resources, map[string]bool{"https://example.com/app.css": true})

	assert.False(t, marked[0].Critical)
	assert.True(t, marked[1].Critical)
}

func TestMarkCritical_FlagsSurviveGrouping(t *testing.T) {
	// Critical flags set before grouping must come out the other side on
	// the grouped resources, the path the preprocess pipeline takes.
	stable := EntriesToResources([]HAREntry{
		harEntry("https://example.com/", "text/html", 100),
		harEntry("https://example.com/app.css", "text/css", 100),
	})
	stable = MarkCritical(stable, map[string]bool{"https://example.com/app.css": true})

	groups := sim.NewGroupBuilder([]string{"*example.com*"}, nil).Build(stable)

	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(groups))
	}
	assert.False(t, groups[0].Resources[0].Critical)
	assert.True(t, groups[0].Resources[1].Critical)
}
