package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	errs "github.com/matzehuels/boxroute/pkg/errors"
	"github.com/matzehuels/boxroute/pkg/layout"
	"github.com/matzehuels/boxroute/pkg/layout/pathfind"
)

func TestDefaultIsValid(t *testing.T) {
	f := Default()
	if err := f.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if diff := cmp.Diff(layout.DefaultConstraint(), f.Constraint()); diff != "" {
		t.Errorf("default constraint mismatch (-want +got):\n%s", diff)
	}
}

func TestParse(t *testing.T) {
	data := []byte(`
[screen]
width = 80
placement = "connectivity"

[block]
min_limited_width = 24

[router]
policy = "permissive"
penalty = 7
`)
	f, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	want := Default()
	want.Screen.Width = 80
	want.Screen.Placement = "connectivity"
	want.Block.MinLimitedWidth = 24
	want.Router.Policy = "permissive"
	want.Router.Penalty = 7
	if diff := cmp.Diff(want, f); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}

	p, err := f.Policy()
	if err != nil {
		t.Fatalf("Policy: %v", err)
	}
	if p.Backtrack || p.Cost != (pathfind.Permissive{Penalty: 7}) {
		t.Errorf("Policy() = %+v, want permissive with penalty 7", p)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"syntax", "[screen\nwidth = 1"},
		{"unknown key", "[screen]\ncolour = 1\n"},
		{"unknown policy", "[router]\npolicy = \"lenient\"\n"},
		{"unknown placement", "[screen]\nplacement = \"grid\"\n"},
		{"narrow blocks", "[block]\nmin_limited_width = 2\n"},
		{"zero screen", "[screen]\nwidth = 0\n"},
		{"huge screen", "[screen]\nheight = 5000\n"},
		{"zero penalty", "[router]\npenalty = 0\n"},
		{"negative cache", "[server]\ncache_entries = -1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if !errs.Is(err, errs.ErrCodeInvalidConfig) {
				t.Errorf("Parse error = %v, want %s", err, errs.ErrCodeInvalidConfig)
			}
		})
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/custom-config")
	path, err := DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath: %v", err)
	}
	if want := filepath.Join("/tmp/custom-config", appName, "config.toml"); path != want {
		t.Errorf("DefaultPath() = %q, want %q", path, want)
	}

	t.Setenv("XDG_CONFIG_HOME", "")
	path, err = DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath: %v", err)
	}
	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, ".config", appName, "config.toml"); path != want {
		t.Errorf("DefaultPath() = %q, want %q", path, want)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	f, err := LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault without file: %v", err)
	}
	if diff := cmp.Diff(Default(), f); diff != "" {
		t.Errorf("missing file should give defaults (-want +got):\n%s", diff)
	}

	if _, err := Load(filepath.Join(dir, "nope.toml")); !errs.Is(err, errs.ErrCodeFileNotFound) {
		t.Errorf("Load(missing) error = %v, want %s", err, errs.ErrCodeFileNotFound)
	}

	path := filepath.Join(dir, appName, "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("[server]\naddr = \":9000\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	f, err = LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault: %v", err)
	}
	if f.Server.Addr != ":9000" {
		t.Errorf("Server.Addr = %q, want :9000", f.Server.Addr)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	f := Default()
	f.Router.Policy = "permissive"
	data, err := f.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse(Encode()): %v\n%s", err, data)
	}
	if diff := cmp.Diff(f, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}
