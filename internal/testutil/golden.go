// Package testutil provides shared test infrastructure for the push
// environment. It consolidates the golden manifest fixture and push-group
// builders used across sim/, sim/capture/, and cmd/ test packages.
//
// Import it only from external test packages (package foo_test): it imports
// sim, so in-package sim tests would create an import cycle.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/pushsim/pushsim/sim"
)

// GoldenManifestPath resolves testdata/manifest.json relative to this
// source file: internal/testutil/ → repo root testdata/.
func GoldenManifestPath(t *testing.T) string {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	return filepath.Join(filepath.Dir(thisFile), "..", "..", "testdata", "manifest.json")
}

// LoadGoldenManifest loads the golden training manifest from testdata.
func LoadGoldenManifest(t *testing.T) *sim.EnvironmentConfig {
	t.Helper()

	manifest, err := sim.LoadManifest(GoldenManifestPath(t))
	if err != nil {
		t.Fatalf("Failed to load golden manifest: %v", err)
	}
	return manifest
}

// PushGroups builds the standard push-group fixture: two trainable groups
// on the page domain and one fixed third-party group, with globally unique
// orders. Mirrors the shape of a small real manifest.
func PushGroups() []*sim.PushGroup {
	res := func(order int, url string, rt sim.ResourceType, size int64) sim.Resource {
		return sim.Resource{
			URL:    url,
			Domain: sim.ParseDomain(url),
			Type:   rt,
			Size:   size,
			Order:  order,
		}
	}
	return []*sim.PushGroup{
		{
			Trainable: true,
			Resources: []sim.Resource{
				res(0, "https://example.com/", sim.ResourceDocument, 12000),
				res(1, "https://example.com/app.css", sim.ResourceStylesheet, 4000),
				res(2, "https://example.com/app.js", sim.ResourceScript, 30000),
				res(3, "https://example.com/hero.jpg", sim.ResourceImage, 150000),
			},
		},
		{
			Trainable: true,
			Resources: []sim.Resource{
				res(4, "https://static.example.com/vendor.js", sim.ResourceScript, 90000),
				res(5, "https://static.example.com/icons.woff2", sim.ResourceFont, 20000),
			},
		},
		{
			Trainable: false,
			Resources: []sim.Resource{
				res(6, "https://cdn.tracker.net/t.js", sim.ResourceScript, 2000),
				res(7, "https://cdn.tracker.net/pixel.gif", sim.ResourceImage, 100),
				res(8, "https://cdn.tracker.net/beacon.js", sim.ResourceScript, 900),
			},
		},
	}
}

// WriteManifest writes a manifest to a temp file and returns its path.
func WriteManifest(t *testing.T, manifest *sim.EnvironmentConfig) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "manifest.json")
	if err := sim.SaveManifest(manifest, path); err != nil {
		t.Fatalf("Failed to write manifest: %v", err)
	}
	return path
}

// WriteFile writes arbitrary bytes into dir and returns the full path.
func WriteFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}
