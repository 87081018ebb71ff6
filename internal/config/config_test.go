package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"svggeo/internal/geom"
)

func TestLoadFlags(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := Load([]string{
		"--north", "51.52", "--east", "-0.07", "--south", "51.49", "--west", "-0.13",
		"-c", "8", "-a", "id", "-a", "class", "-j", "4", "--format", "wkt",
		"plan.json",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := geom.Bounds{North: 51.52, East: -0.07, South: 51.49, West: -0.13}
	if cfg.Bounds != want {
		t.Errorf("expected bounds %v, got %v", want, cfg.Bounds)
	}
	if cfg.Input != "plan.json" {
		t.Errorf("expected input plan.json, got %q", cfg.Input)
	}
	opts := cfg.Options()
	if opts.Complexity != 8 || opts.Workers != 4 {
		t.Errorf("unexpected options %+v", opts)
	}
	if d := cmp.Diff([]string{"id", "class"}, opts.Attributes); d != "" {
		t.Errorf("attributes mismatch (-want +got):\n%s", d)
	}
	if cfg.Output.Format != "wkt" || cfg.Log.Level != "info" || cfg.Log.Format != "text" {
		t.Errorf("unexpected output/log config %+v %+v", cfg.Output, cfg.Log)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := Load([]string{"--north", "1", "--east", "1", "-"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Convert.Complexity != 5 || cfg.Convert.Workers != 1 || cfg.Convert.Tolerance != 0 {
		t.Errorf("unexpected defaults %+v", cfg.Convert)
	}
	if cfg.Output.Format != "geojson" || cfg.Preview {
		t.Errorf("unexpected defaults %+v preview=%v", cfg.Output, cfg.Preview)
	}
}

func TestLoadEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SVGGEO_BOUNDS_NORTH", "10")
	t.Setenv("SVGGEO_BOUNDS_EAST", "20")
	t.Setenv("SVGGEO_CONVERT_COMPLEXITY", "12")
	t.Setenv("SVGGEO_LOG_LEVEL", "debug")
	cfg, err := Load([]string{"--complexity", "3", "in.json"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Bounds.North != 10 || cfg.Bounds.East != 20 {
		t.Errorf("env bounds not applied: %v", cfg.Bounds)
	}
	if cfg.Convert.Complexity != 3 {
		t.Errorf("flag must win over env, got complexity %d", cfg.Convert.Complexity)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected debug level, got %q", cfg.Log.Level)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	yaml := `
input: campus.json
bounds:
  north: 40.0
  east: -3.6
  south: 39.9
  west: -3.8
convert:
  complexity: 16
  attributes: [id, name]
output:
  indent: true
`
	if err := os.MkdirAll(filepath.Join(dir, "configs"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "configs", "svggeo.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Input != "campus.json" || cfg.Convert.Complexity != 16 || !cfg.Output.Indent {
		t.Errorf("config file not applied: %+v", cfg)
	}
	if d := cmp.Diff([]string{"id", "name"}, cfg.Convert.Attributes); d != "" {
		t.Errorf("attributes mismatch (-want +got):\n%s", d)
	}
	if cfg.Bounds.West != -3.8 {
		t.Errorf("expected west -3.8, got %g", cfg.Bounds.West)
	}
}

func TestLoadExplicitConfigMissing(t *testing.T) {
	t.Chdir(t.TempDir())
	_, err := Load([]string{"--config", "nope.yaml", "x.json"})
	if err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestValidate(t *testing.T) {
	t.Chdir(t.TempDir())
	_, err := Load([]string{"-c", "0", "-j", "0", "--format", "svg", "--log-format", "xml", "--tolerance=-1"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	msg := err.Error()
	for _, want := range []string{
		"input drawing is required",
		"bounds are required",
		"convert.complexity must be at least 1",
		"convert.workers must be at least 1",
		"convert.tolerance must be a non-negative number",
		"output.format must be geojson or wkt",
		"log.format must be text or json",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected %q in error:\n%s", want, msg)
		}
	}
}

func TestPreviewCollectionNeedsNoBounds(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := Load([]string{"-p", "out.geojson"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.PreviewsCollection() {
		t.Error("expected a collection preview")
	}
	if _, err := Load([]string{"out.geojson"}); err == nil || !strings.Contains(err.Error(), "bounds are required") {
		t.Errorf("expected bounds error without preview, got %v", err)
	}
}

func TestLoadZeroBounds(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := Load([]string{"--north", "0", "--east", "0", "--south", "0", "--west", "0", "in.json"})
	if err != nil {
		t.Fatalf("explicit zero bounds rejected: %v", err)
	}
	if cfg.Bounds != (geom.Bounds{}) {
		t.Errorf("expected zero bounds, got %v", cfg.Bounds)
	}

	t.Setenv("SVGGEO_BOUNDS_SOUTH", "0")
	if _, err := Load([]string{"in.json"}); err != nil {
		t.Errorf("zero bound from env rejected: %v", err)
	}
}
