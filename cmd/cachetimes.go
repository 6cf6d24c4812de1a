package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pushsim/pushsim/sim"
	"github.com/pushsim/pushsim/sim/replay"
)

var fromManifest string // Manifest file of the recorded webpage

// cacheTimesCmd re-annotates a manifest's push groups from its record
// directory and prints the cache lifetime of every resource.
var cacheTimesCmd = &cobra.Command{
	Use:   "cachetimes",
	Short: "Print the cache lifetimes of a prepared manifest's resources",
	Run: func(cmd *cobra.Command, args []string) {
		manifest, err := sim.LoadManifest(fromManifest)
		if err != nil {
			logrus.Fatalf("unable to load manifest: %v", err)
		}

		sim.AnnotateCacheTimes(replay.NewFileStore(manifest.ReplayDir), manifest.PushGroups)
		for _, group := range manifest.PushGroups {
			for _, res := range group.Resources {
				fmt.Printf("%-48s  %d\n", res.URL, res.CacheTime)
			}
		}
	},
}

func init() {
	cacheTimesCmd.Flags().StringVar(&fromManifest, "from-manifest", "", "The manifest file of the recorded webpage")
	_ = cacheTimesCmd.MarkFlagRequired("from-manifest")
}
