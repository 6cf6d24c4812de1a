package capture

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// mapFetcher serves canned pages keyed by URL.
type mapFetcher map[string]string

func (m mapFetcher) Fetch(url string) (string, error) {
	body, ok := m[url]
	if !ok {
		return "", errors.New("not found")
	}
	return body, nil
}

func TestPageLinks_SameDomainOnly(t *testing.T) {
	fetcher := mapFetcher{
		"https://example.com/": `<html><body>
			<a href="https://example.com/about">about</a>
			<a href="https://other.org/away">away</a>
			<a href="mailto:hi@example.com">mail</a>
			<a href="/relative">relative</a>
			<a href="">empty</a>
		</body></html>`,
	}

	links := NewCrawler(fetcher, 1).PageLinks("https://example.com/")
	assert.Equal(t, []string{"https://example.com/about"}, links)
}

func TestPageLinks_DepthBounded(t *testing.T) {
	fetcher := mapFetcher{
		"https://example.com/":     `<a href="https://example.com/a">a</a>`,
		"https://example.com/a":    `<a href="https://example.com/b">b</a>`,
		"https://example.com/b":    `<a href="https://example.com/deep">deep</a>`,
		"https://example.com/deep": ``,
	}

	tests := []struct {
		depth int
		want  []string
	}{
		{0, nil},
		{1, []string{"https://example.com/a"}},
		{2, []string{"https://example.com/a", "https://example.com/b"}},
		{3, []string{"https://example.com/a", "https://example.com/b", "https://example.com/deep"}},
	}
	for _, tt := range tests {
		got := NewCrawler(fetcher, tt.depth).PageLinks("https://example.com/")
		assert.Equal(t, tt.want, got, "depth %d", tt.depth)
	}
}

func TestPageLinks_VisitedSetDedups(t *testing.T) {
	// a and b link to each other and back to the start; the walk must
	// terminate and report each link once, in first-seen order.
	fetcher := mapFetcher{
		"https://example.com/":  `<a href="https://example.com/a">a</a><a href="https://example.com/b">b</a>`,
		"https://example.com/a": `<a href="https://example.com/b">b</a><a href="https://example.com/">home</a>`,
		"https://example.com/b": `<a href="https://example.com/a">a</a>`,
	}

	links := NewCrawler(fetcher, 5).PageLinks("https://example.com/")
	assert.Equal(t, []string{"https://example.com/a", "https://example.com/b"}, links)
}

func TestPageLinks_FetchFailureSkipsPage(t *testing.T) {
	fetcher := mapFetcher{
		"https://example.com/":   `<a href="https://example.com/broken">broken</a><a href="https://example.com/ok">ok</a>`,
		"https://example.com/ok": `<a href="https://example.com/more">more</a>`,
		// /broken is unfetchable
		"https://example.com/more": ``,
	}

	links := NewCrawler(fetcher, 3).PageLinks("https://example.com/")
	assert.Equal(t, []string{"https://example.com/broken", "https://example.com/ok", "https://example.com/more"}, links)
}
