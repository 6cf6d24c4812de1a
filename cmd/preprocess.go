package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pushsim/pushsim/sim"
	"github.com/pushsim/pushsim/sim/capture"
	"github.com/pushsim/pushsim/sim/replay"
)

var (
	// CLI flags for the preprocess command
	recordDir        string   // Directory holding the recorded webpage
	outputPath       string   // Location to save the prepared manifest
	configPath       string   // Optional YAML preprocess config
	trainDomainGlobs []string // Glob patterns of domains to enable training for
	stableSetRuns    int      // Number of capture runs per stable-set discovery
	crawlDepth       int      // Link-crawl depth for discovering same-domain pages
	criticalURLs     []string // URLs observed on the critical rendering path
)

// preprocessCmd prepares a recorded website for training: it aggregates the
// recorded capture runs into a stable set, partitions it into push groups,
// annotates cache lifetimes from the record directory, and writes the
// training manifest. With a positive crawl depth it also walks the live
// site for same-domain linked pages worth recording next.
var preprocessCmd = &cobra.Command{
	Use:   "preprocess <website-url>",
	Short: "Build a training manifest from a recorded webpage",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		website := args[0]

		bundle := &sim.PreprocessBundle{}
		if configPath != "" {
			loaded, err := sim.LoadPreprocessBundle(configPath)
			if err != nil {
				logrus.Fatalf("unable to read preprocess config: %v", err)
			}
			if err := loaded.Validate(); err != nil {
				logrus.Fatalf("invalid preprocess config: %v", err)
			}
			bundle = loaded
		}

		globs := trainDomainGlobs
		if len(globs) == 0 {
			globs = bundle.TrainDomainGlobs
		}
		if len(globs) == 0 {
			globs = sim.DefaultTrainDomainGlobs(website)
		}
		runs := stableSetRuns
		if runs == 0 {
			runs = bundle.StableSetRuns
		}
		depth := crawlDepth
		if depth == 0 {
			depth = bundle.CrawlDepth
		}

		logrus.Infof("preprocessing %s (record_dir=%s, train_domain_globs=%v)", website, recordDir, globs)

		discoverer := sim.NewDiscoverer(runs)
		captured := capture.CollectRuns(recordedRunCapture(recordDir), website, discoverer.Runs())

		logrus.Info("finding dependency stable set...")
		stableSet := discoverer.Discover(capture.ResourceSets(captured))
		logrus.Infof("found %d total dependencies", len(stableSet))

		if len(criticalURLs) > 0 {
			critical := make(map[string]bool, len(criticalURLs))
			for _, u := range criticalURLs {
				critical[u] = true
			}
			stableSet = capture.MarkCritical(stableSet, critical)
		}

		builder := sim.NewGroupBuilder(globs, nil)
		pushGroups := builder.Build(stableSet)

		logrus.Info("finding cacheable objects")
		sim.AnnotateCacheTimes(replay.NewFileStore(recordDir), pushGroups)

		var linkedPages []string
		if depth > 0 {
			logrus.Infof("crawling for linked pages (depth=%d)", depth)
			crawler := capture.NewCrawler(capture.NewHTTPFetcher(10*time.Second), depth)
			linkedPages = crawler.PageLinks(website)
			for _, page := range linkedPages {
				logrus.Infof("found linked page %s", page)
			}
		}

		manifest := &sim.EnvironmentConfig{
			RequestURL:   website,
			ReplayDir:    recordDir,
			LinkedPages:  linkedPages,
			PushGroups:   pushGroups,
			HARResources: firstSuccessful(captured),
		}
		if err := sim.SaveManifest(manifest, outputPath); err != nil {
			logrus.Fatalf("unable to save manifest: %v", err)
		}
		logrus.Infof("successfully prepared website for training (output=%s)", outputPath)
	},
}

// recordedRunCapture replays the HAR run files the external capture shell
// left under <record-dir>/runs, one file per invocation in lexical order.
func recordedRunCapture(dir string) capture.CaptureFunc {
	paths, globErr := filepath.Glob(filepath.Join(dir, "runs", "*.json"))
	sort.Strings(paths)

	next := 0
	return func(url string) ([]sim.Resource, error) {
		if globErr != nil {
			return nil, fmt.Errorf("listing recorded runs: %w", globErr)
		}
		if next >= len(paths) {
			return nil, fmt.Errorf("no recorded run left (have %d)", len(paths))
		}
		path := paths[next]
		next++

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading recorded run: %w", err)
		}
		var entries []capture.HAREntry
		if err := json.Unmarshal(data, &entries); err != nil {
			return nil, fmt.Errorf("parsing recorded run %s: %w", path, err)
		}
		return capture.EntriesToResources(entries), nil
	}
}

// firstSuccessful returns the resources of the first run that captured any.
func firstSuccessful(runs []capture.Run) []sim.Resource {
	for _, run := range runs {
		if !run.Failed() {
			return run.Resources
		}
	}
	return nil
}

func init() {
	preprocessCmd.Flags().StringVar(&recordDir, "record-dir", "", "The directory of the recorded webpage")
	preprocessCmd.Flags().StringVar(&outputPath, "output", "", "The location to save the prepared manifest")
	preprocessCmd.Flags().StringVar(&configPath, "config", "", "Optional preprocess config YAML")
	preprocessCmd.Flags().StringSliceVar(&trainDomainGlobs, "train-domain-globs", nil,
		"Glob patterns of domain names to enable training for (default *.domain of the given URL)")
	preprocessCmd.Flags().IntVar(&stableSetRuns, "runs", 0, "Number of capture runs per stable-set discovery (default 10)")
	preprocessCmd.Flags().IntVar(&crawlDepth, "crawl-depth", 0, "Crawl the live site this many levels deep for linked pages (0 disables)")
	preprocessCmd.Flags().StringSliceVar(&criticalURLs, "critical-urls", nil,
		"URLs on the critical rendering path, flagged in the manifest")
	_ = preprocessCmd.MarkFlagRequired("record-dir")
	_ = preprocessCmd.MarkFlagRequired("output")
}
