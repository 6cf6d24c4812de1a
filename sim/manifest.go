// The training manifest: the persisted output of preprocessing, read back
// at simulation time to reconstruct push groups and HAR resources.

package sim

import (
	"encoding/json"
	"fmt"
	"os"
)

// EnvironmentConfig is the manifest payload written by preprocessing and
// consumed by the training loop.
type EnvironmentConfig struct {
	RequestURL   string       `json:"request_url"`
	ReplayDir    string       `json:"replay_dir"`
	LinkedPages  []string     `json:"linked_pages,omitempty"` // same-domain pages discovered by the link crawl
	PushGroups   []*PushGroup `json:"push_groups"`
	HARResources []Resource   `json:"har_resources"`
}

// TrainableGroups returns the push groups under agent control.
func (c *EnvironmentConfig) TrainableGroups() []*PushGroup {
	var trainable []*PushGroup
	for _, g := range c.PushGroups {
		if g.Trainable {
			trainable = append(trainable, g)
		}
	}
	return trainable
}

// SaveManifest writes the manifest as indented JSON.
func SaveManifest(c *EnvironmentConfig, path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	return nil
}

// LoadManifest reads a manifest written by SaveManifest.
func LoadManifest(path string) (*EnvironmentConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	var c EnvironmentConfig
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	return &c, nil
}
