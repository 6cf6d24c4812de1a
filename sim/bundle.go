package sim

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PreprocessBundle holds preprocessing configuration, loadable from a YAML
// file. Zero-valued fields mean "not set" and fall back to defaults at the
// point of use.
type PreprocessBundle struct {
	TrainDomainGlobs []string     `yaml:"train_domain_globs"`
	StableSetRuns    int          `yaml:"stable_set_runs"`
	CrawlDepth       int          `yaml:"crawl_depth"`
	Client           ClientConfig `yaml:"client"`
}

// ClientConfig selects the simulated client environment by name.
type ClientConfig struct {
	NetworkType string `yaml:"network_type"`
	DeviceSpeed string `yaml:"device_speed"`
}

// LoadPreprocessBundle reads and parses a YAML preprocessing config file.
func LoadPreprocessBundle(path string) (*PreprocessBundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading preprocess config: %w", err)
	}
	var bundle PreprocessBundle
	if err := yaml.Unmarshal(data, &bundle); err != nil {
		return nil, fmt.Errorf("parsing preprocess config: %w", err)
	}
	return &bundle, nil
}

// ValidNetworkTypes is the set of recognized network type names.
// Shared by Validate() and ClientEnvironmentFromConfig.
var ValidNetworkTypes = map[string]NetworkType{
	"": NetworkWired, "wired": NetworkWired, "wifi": NetworkWiFi, "lte": NetworkLTE, "3g": Network3G,
}

// ValidDeviceSpeeds is the set of recognized device speed names.
var ValidDeviceSpeeds = map[string]DeviceSpeed{
	"": DeviceFast, "fast": DeviceFast, "average": DeviceAverage, "slow": DeviceSlow,
}

// Validate checks that all names and parameter ranges in the bundle are valid.
func (b *PreprocessBundle) Validate() error {
	if b.StableSetRuns < 0 {
		return fmt.Errorf("stable_set_runs must be non-negative, got %d", b.StableSetRuns)
	}
	if b.CrawlDepth < 0 {
		return fmt.Errorf("crawl_depth must be non-negative, got %d", b.CrawlDepth)
	}
	if _, ok := ValidNetworkTypes[b.Client.NetworkType]; !ok {
		return fmt.Errorf("unknown network type %q", b.Client.NetworkType)
	}
	if _, ok := ValidDeviceSpeeds[b.Client.DeviceSpeed]; !ok {
		return fmt.Errorf("unknown device speed %q", b.Client.DeviceSpeed)
	}
	return nil
}

// ClientEnvironment resolves the named client environment. Empty names
// select the defaults (wired, fast). Call Validate first; unknown names
// here resolve to the defaults.
func (b *PreprocessBundle) ClientEnvironment() ClientEnvironment {
	return ClientEnvironment{
		NetworkType: ValidNetworkTypes[b.Client.NetworkType],
		DeviceSpeed: ValidDeviceSpeeds[b.Client.DeviceSpeed],
	}
}
