package capture

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/pushsim/pushsim/sim"
)

func TestCollectRuns_KeepsFailuresAsEmptyRuns(t *testing.T) {
	calls := 0
	fn := func(url string) ([]sim.Resource, error) {
		calls++
		if calls == 2 {
			return nil, errors.New("connection reset")
		}
		return []sim.Resource{{URL: url, Domain: sim.ParseDomain(url)}}, nil
	}

	runs := CollectRuns(fn, "https://example.com/", 3)

	if len(runs) != 3 {
		t.Fatalf("got %d run slots, want 3", len(runs))
	}
	if runs[0].Failed() || runs[2].Failed() {
		t.Error("successful runs lost")
	}
	if !runs[1].Failed() {
		t.Error("failed run should surface as an empty run, not be compacted away")
	}
	if calls != 3 {
		t.Errorf("capture invoked %d times, want 3", calls)
	}
}

func TestCollectRuns_IdentifiesEveryAttempt(t *testing.T) {
	fn := func(url string) ([]sim.Resource, error) {
		return []sim.Resource{{URL: url}}, nil
	}

	runs := CollectRuns(fn, "https://example.com/", 4)

	seen := make(map[uuid.UUID]bool)
	for _, run := range runs {
		if run.ID == uuid.Nil {
			t.Error("run without an identifier")
		}
		if seen[run.ID] {
			t.Errorf("duplicate run identifier %s", run.ID)
		}
		seen[run.ID] = true
		if run.URL != "https://example.com/" {
			t.Errorf("run URL = %q, want the captured page", run.URL)
		}
	}
}

func TestCollectRuns_FeedsDiscovererThroughResourceSets(t *testing.T) {
	// A failed run degrades gracefully: the stable set still forms from
	// the remaining captures.
	page := []sim.Resource{
		{URL: "https://example.com/", Domain: "example.com"},
		{URL: "https://example.com/app.js", Domain: "example.com"},
	}
	calls := 0
	fn := func(string) ([]sim.Resource, error) {
		calls++
		if calls == 5 {
			return nil, errors.New("timeout")
		}
		return append([]sim.Resource(nil), page...), nil
	}

	runs := CollectRuns(fn, "https://example.com/", 10)

	sets := ResourceSets(runs)
	if len(sets) != 10 {
		t.Fatalf("got %d resource sets, want 10", len(sets))
	}
	if sets[4] != nil {
		t.Error("failed run should flatten to a nil resource set")
	}

	stable := sim.NewDiscoverer(10).Discover(sets)
	if len(stable) != 2 {
		t.Fatalf("stable set size = %d, want 2", len(stable))
	}
}
