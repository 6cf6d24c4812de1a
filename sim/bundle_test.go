package sim

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "preprocess.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadPreprocessBundle_ValidYAML(t *testing.T) {
	yaml := `
train_domain_globs:
  - "*example.com*"
  - "*assets.example.net*"
stable_set_runs: 12
crawl_depth: 2
client:
  network_type: lte
  device_speed: slow
`
	path := writeTempYAML(t, yaml)
	bundle, err := LoadPreprocessBundle(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bundle.TrainDomainGlobs) != 2 || bundle.TrainDomainGlobs[0] != "*example.com*" {
		t.Errorf("unexpected globs: %v", bundle.TrainDomainGlobs)
	}
	if bundle.StableSetRuns != 12 {
		t.Errorf("stable_set_runs = %d, want 12", bundle.StableSetRuns)
	}
	if bundle.CrawlDepth != 2 {
		t.Errorf("crawl_depth = %d, want 2", bundle.CrawlDepth)
	}
	if err := bundle.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
	env := bundle.ClientEnvironment()
	if env.NetworkType != NetworkLTE || env.DeviceSpeed != DeviceSlow {
		t.Errorf("client environment = %+v, want lte/slow", env)
	}
}

func TestLoadPreprocessBundle_EmptyFieldsDefault(t *testing.T) {
	path := writeTempYAML(t, "stable_set_runs: 5\n")
	bundle, err := LoadPreprocessBundle(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := bundle.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
	if env := bundle.ClientEnvironment(); env != DefaultClientEnvironment() {
		t.Errorf("empty client config = %+v, want default", env)
	}
}

func TestLoadPreprocessBundle_NonexistentFile(t *testing.T) {
	if _, err := LoadPreprocessBundle("/nonexistent/preprocess.yaml"); err == nil {
		t.Fatal("expected error for nonexistent file")
	}
}

func TestLoadPreprocessBundle_MalformedYAML(t *testing.T) {
	path := writeTempYAML(t, "{{invalid yaml")
	if _, err := LoadPreprocessBundle(path); err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}

func TestPreprocessBundle_Validate(t *testing.T) {
	tests := []struct {
		name    string
		bundle  PreprocessBundle
		wantErr bool
	}{
		{"empty is valid", PreprocessBundle{}, false},
		{"negative runs", PreprocessBundle{StableSetRuns: -1}, true},
		{"negative depth", PreprocessBundle{CrawlDepth: -1}, true},
		{"bad network type", PreprocessBundle{Client: ClientConfig{NetworkType: "dialup"}}, true},
		{"bad device speed", PreprocessBundle{Client: ClientConfig{DeviceSpeed: "warp"}}, true},
		{"known names", PreprocessBundle{Client: ClientConfig{NetworkType: "3g", DeviceSpeed: "average"}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.bundle.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
