package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFileIsEmptyConfig(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(cfg.Directories) != 0 || len(cfg.Sessions) != 0 {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadValid(t *testing.T) {
	path := writeConfig(t, `
directories:
  - path: /work
    mindepth: 1
    maxdepth: 2
    grep: "proj-.*"
sessions:
  - dotfiles
environment:
  - EDITOR=nvim
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(cfg.Directories) != 1 {
		t.Fatalf("got %d rules, want 1", len(cfg.Directories))
	}
	r := cfg.Directories[0]
	if r.Path != "/work" || r.MinDepth != 1 || r.MaxDepth != 2 {
		t.Errorf("unexpected rule: %+v", r)
	}
	if !r.Pattern().MatchString("proj-a") {
		t.Error("pattern should match proj-a")
	}
	if r.Pattern().MatchString("xproj-a") {
		t.Error("pattern must match the whole name, not a substring")
	}
	if len(cfg.Sessions) != 1 || cfg.Sessions[0] != "dotfiles" {
		t.Errorf("unexpected sessions: %v", cfg.Sessions)
	}
	if len(cfg.Environment) != 1 || cfg.Environment[0] != "EDITOR=nvim" {
		t.Errorf("unexpected environment: %v", cfg.Environment)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "maxdepth below mindepth",
			content: `
directories:
  - path: /work
    mindepth: 3
    maxdepth: 1
`,
		},
		{
			name: "negative mindepth",
			content: `
directories:
  - path: /work
    mindepth: -1
`,
		},
		{
			name: "bad grep pattern",
			content: `
directories:
  - path: /work
    mindepth: 1
    grep: "["
`,
		},
		{
			name: "rule without path",
			content: `
directories:
  - mindepth: 1
`,
		},
		{
			name: "duplicate rule path",
			content: `
directories:
  - path: /work
    mindepth: 1
  - path: /work
    mindepth: 2
`,
		},
		{
			name:    "not yaml at all",
			content: "::\n\t-",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if !errors.Is(err, ErrInvalid) {
				t.Fatalf("Load() error = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	cfg := &Config{Directories: []Rule{{Path: "/work", MinDepth: 2}}}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if got := cfg.Directories[0].MaxDepth; got != 2 {
		t.Errorf("omitted maxdepth = %d, want mindepth (2)", got)
	}
	if !cfg.Directories[0].Pattern().MatchString("anything") {
		t.Error("omitted grep should match everything")
	}
}

func TestValidateExpandsHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("home dir not available")
	}
	cfg := &Config{Directories: []Rule{{Path: "~/work"}}}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if got, want := cfg.Directories[0].Path, filepath.Join(home, "work"); got != want {
		t.Errorf("path = %q, want %q", got, want)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	in := &Config{
		Directories: []Rule{{Path: "/work", MinDepth: 1, MaxDepth: 1, Grep: "x.*"}},
		Sessions:    []string{"dotfiles", "notes"},
		Environment: []string{"A=1"},
	}
	if err := Save(path, in); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	out, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(out.Directories) != 1 {
		t.Fatalf("got %d rules, want 1", len(out.Directories))
	}
	r := out.Directories[0]
	if r.Path != "/work" || r.MinDepth != 1 || r.MaxDepth != 1 || r.Grep != "x.*" {
		t.Errorf("rule did not round-trip: %+v", r)
	}
	if len(out.Sessions) != 2 || out.Sessions[0] != "dotfiles" || out.Sessions[1] != "notes" {
		t.Errorf("sessions did not round-trip: %v", out.Sessions)
	}
}
