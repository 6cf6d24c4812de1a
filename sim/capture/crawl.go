package capture

import (
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/html"

	"github.com/pushsim/pushsim/sim"
)

// Fetcher retrieves the body of a page. Implementations live outside the
// core; tests supply canned pages.
type Fetcher interface {
	Fetch(url string) (string, error)
}

// Crawler discovers same-domain links on a page up to a bounded depth,
// using an explicit visited set and returning links in first-seen order
// without duplicates.
type Crawler struct {
	fetcher  Fetcher
	maxDepth int
	log      *logrus.Entry
}

// NewCrawler creates a Crawler with the given depth bound. Depth 1 scans
// only the start page; depth 0 discovers nothing.
func NewCrawler(fetcher Fetcher, maxDepth int) *Crawler {
	return &Crawler{
		fetcher:  fetcher,
		maxDepth: maxDepth,
		log:      logrus.WithField("component", "crawl"),
	}
}

// PageLinks walks pages breadth-first from startURL, collecting anchor
// targets on the same domain. Fetch or parse failures skip the page with a
// warning and the walk continues.
func (c *Crawler) PageLinks(startURL string) []string {
	domain := sim.ParseDomain(startURL)
	visited := map[string]bool{startURL: true}
	var found []string

	frontier := []string{startURL}
	for depth := 0; depth < c.maxDepth && len(frontier) > 0; depth++ {
		var next []string
		for _, pageURL := range frontier {
			for _, link := range c.pageAnchors(pageURL, domain) {
				if visited[link] {
					continue
				}
				visited[link] = true
				found = append(found, link)
				next = append(next, link)
			}
		}
		frontier = next
	}
	return found
}

// pageAnchors fetches one page and extracts its same-domain anchor targets.
func (c *Crawler) pageAnchors(pageURL, domain string) []string {
	body, err := c.fetcher.Fetch(pageURL)
	if err != nil {
		c.log.WithField("url", pageURL).WithError(err).Warn("failed to fetch page")
		return nil
	}

	root, err := html.Parse(strings.NewReader(body))
	if err != nil {
		c.log.WithField("url", pageURL).WithError(err).Warn("failed to parse page")
		return nil
	}

	var links []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			if href, ok := anchorHref(n); ok && keepLink(href, domain) {
				links = append(links, href)
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(root)

	c.log.WithFields(logrus.Fields{"url": pageURL, "links": len(links)}).Debug("found links")
	return links
}

func anchorHref(n *html.Node) (string, bool) {
	for _, attr := range n.Attr {
		if attr.Key == "href" {
			return attr.Val, attr.Val != ""
		}
	}
	return "", false
}

// keepLink accepts absolute http(s) links on the crawl domain and rejects
// everything else (fragments, mailto, foreign domains).
func keepLink(href, domain string) bool {
	if !strings.HasPrefix(href, "http") {
		return false
	}
	return sim.ParseDomain(href) == domain
}
