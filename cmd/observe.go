package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pushsim/pushsim/sim"
	"github.com/pushsim/pushsim/sim/trace"
)

var (
	// CLI flags for the observe command
	manifestPath string // Prepared manifest to run the episode over
	seed         int64  // Seed for reproducible episodes
	maxSteps     int    // Number of actions to sample before stopping
	randomClient bool   // Sample the client environment instead of the default
)

// observeCmd replays one seeded episode over a prepared manifest: it seeds
// default pushes for the fixed groups, samples and applies agent actions,
// and prints the resulting observation plus an episode trace summary.
// Useful for eyeballing what a learner would see without a training loop.
var observeCmd = &cobra.Command{
	Use:   "observe",
	Short: "Run one seeded episode over a manifest and print the observation",
	Run: func(cmd *cobra.Command, args []string) {
		manifest, err := sim.LoadManifest(manifestPath)
		if err != nil {
			logrus.Fatalf("unable to load manifest: %v", err)
		}

		obs, summary, err := runEpisode(manifest, seed, maxSteps, randomClient)
		if err != nil {
			logrus.Fatalf("episode aborted: %v", err)
		}

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(obs); err != nil {
			logrus.Fatalf("unable to encode observation: %v", err)
		}
		logrus.Infof("episode complete: %d assignments (%d agent, %d default) from %d sources",
			summary.TotalAssignments, summary.AgentAssignments, summary.DefaultAssignments, summary.UniqueSources)
	},
}

// runEpisode executes a single seeded episode over the manifest's push
// groups. Conflicting assignments and premature exhaustion abort the
// episode with a diagnostic rather than producing a corrupt observation.
func runEpisode(manifest *sim.EnvironmentConfig, seed int64, steps int, sampleClient bool) (sim.Observation, *trace.TraceSummary, error) {
	rng := sim.NewPartitionedRNG(sim.NewEpisodeKey(seed))

	env := sim.DefaultClientEnvironment()
	if sampleClient {
		env = sim.RandomClientEnvironment(rng.ForSubsystem(sim.SubsystemClient))
	}

	space := sim.NewActionSpace(manifest.PushGroups, rng.ForSubsystem(sim.SubsystemActionSpace))
	policy := sim.NewPolicy(space)
	episode := trace.NewEpisodeTrace(trace.TraceLevelDecisions, seed)

	// Fixed groups are outside agent control: their source pushes every
	// remaining member by default.
	step := 0
	for _, group := range manifest.PushGroups {
		if group.Trainable {
			continue
		}
		source := group.Source()
		for _, target := range group.Resources[1:] {
			if err := policy.AddDefaultAction(source, target); err != nil {
				return sim.Observation{}, nil, fmt.Errorf("seeding default pushes: %w", err)
			}
			episode.RecordAssignment(trace.AssignmentRecord{
				Step: step, SourceURL: source.URL, TargetURL: target.URL, Default: true,
			})
			step++
		}
	}

	for i := 0; i < steps; i++ {
		entry, err := space.Sample()
		if errors.Is(err, sim.ErrEmptySpace) {
			logrus.Debugf("action space exhausted after %d steps", i)
			break
		}
		episode.RecordSample(trace.SampleRecord{
			Step: step, SourceURL: entry.Source.URL, TargetURL: entry.Target.URL, Remaining: space.Len(),
		})
		if err := policy.ApplyAction(entry); err != nil {
			return sim.Observation{}, nil, fmt.Errorf("applying action %s: %w", entry, err)
		}
		episode.RecordAssignment(trace.AssignmentRecord{
			Step: step, SourceURL: entry.Source.URL, TargetURL: entry.Target.URL,
		})
		step++
	}

	obs := sim.Encode(env, manifest.PushGroups, policy)
	if err := sim.NewObservationSpace(manifest.PushGroups).Validate(obs); err != nil {
		return sim.Observation{}, nil, fmt.Errorf("observation out of bounds: %w", err)
	}
	return obs, trace.Summarize(episode), nil
}

func init() {
	observeCmd.Flags().StringVar(&manifestPath, "manifest", "", "The prepared training manifest")
	observeCmd.Flags().Int64Var(&seed, "seed", 42, "Seed for reproducible episodes")
	observeCmd.Flags().IntVar(&maxSteps, "steps", 5, "Number of actions to sample")
	observeCmd.Flags().BoolVar(&randomClient, "random-client", false, "Sample the client environment instead of using the default")
	_ = observeCmd.MarkFlagRequired("manifest")
}
