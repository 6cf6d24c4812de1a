package sim

import (
	"math/rand"
)

// res builds a test resource with its domain derived from the URL.
func res(order int, url string, rt ResourceType, size int64) Resource {
	return Resource{
		URL:    url,
		Domain: ParseDomain(url),
		Type:   rt,
		Size:   size,
		Order:  order,
	}
}

// testPushGroups is the standard fixture: two trainable groups on the page
// domain and one fixed third-party group, with globally unique orders.
func testPushGroups() []*PushGroup {
	return []*PushGroup{
		{
			Trainable: true,
			Resources: []Resource{
				res(0, "https://example.com/", ResourceDocument, 12000),
				res(1, "https://example.com/app.css", ResourceStylesheet, 4000),
				res(2, "https://example.com/app.js", ResourceScript, 30000),
				res(3, "https://example.com/hero.jpg", ResourceImage, 150000),
			},
		},
		{
			Trainable: true,
			Resources: []Resource{
				res(4, "https://static.example.com/vendor.js", ResourceScript, 90000),
				res(5, "https://static.example.com/icons.woff2", ResourceFont, 20000),
			},
		},
		{
			Trainable: false,
			Resources: []Resource{
				res(6, "https://cdn.tracker.net/t.js", ResourceScript, 2000),
				res(7, "https://cdn.tracker.net/pixel.gif", ResourceImage, 100),
				res(8, "https://cdn.tracker.net/beacon.js", ResourceScript, 900),
			},
		},
	}
}

// testEpisode builds a seeded action space and empty policy over the groups.
func testEpisode(groups []*PushGroup, seed int64) (*ActionSpace, *Policy) {
	space := NewActionSpace(groups, rand.New(rand.NewSource(seed)))
	return space, NewPolicy(space)
}

// runOf builds an ordered capture run from URLs, typing everything "other".
func runOf(urls ...string) []Resource {
	run := make([]Resource, len(urls))
	for i, u := range urls {
		run[i] = Resource{URL: u, Domain: ParseDomain(u), Type: ResourceOther, Size: int64(1000 * (i + 1))}
	}
	return run
}

// repeatRuns duplicates one run n times.
func repeatRuns(run []Resource, n int) [][]Resource {
	runs := make([][]Resource, n)
	for i := range runs {
		runs[i] = append([]Resource(nil), run...)
	}
	return runs
}

// urlsOf projects a resource list onto its URLs, for order assertions.
func urlsOf(resources []Resource) []string {
	urls := make([]string, len(resources))
	for i, r := range resources {
		urls[i] = r.URL
	}
	return urls
}
