package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"
)

// ErrInvalid marks a config that fails validation. Checked with errors.Is.
var ErrInvalid = errors.New("invalid config")

// Rule describes one directory-scanning rule. The path doubles as the rule's
// identity within a config; it need not exist until the rule is evaluated.
type Rule struct {
	Path     string `yaml:"path"`
	MinDepth int    `yaml:"mindepth"`
	MaxDepth int    `yaml:"maxdepth"`
	Grep     string `yaml:"grep,omitempty"`

	pattern *regexp.Regexp
}

// Pattern returns the compiled name filter, anchored so it matches the whole
// base name. Validate rejects filters that don't compile; a rule that skipped
// validation falls back to matching everything.
func (r *Rule) Pattern() *regexp.Regexp {
	if r.pattern == nil {
		r.pattern = compileGrep(r.Grep)
	}
	return r.pattern
}

func compileGrep(grep string) *regexp.Regexp {
	if grep == "" {
		grep = ".*"
	}
	pat, err := regexp.Compile("^(?:" + grep + ")$")
	if err != nil {
		return regexp.MustCompile(".*")
	}
	return pat
}

type Config struct {
	Directories []Rule   `yaml:"directories,omitempty"`
	Sessions    []string `yaml:"sessions,omitempty"`
	Environment []string `yaml:"environment,omitempty"`
}

// DefaultPath returns ~/.config/sessionizer/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "sessionizer", "config.yaml"), nil
}

// Load reads and validates the config at path. A missing file is an empty
// config, not an error, so the tool works before `config init` has run.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalid, path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate normalizes rules in place and rejects malformed ones before any
// scan runs: negative depths, maxdepth < mindepth, filters that don't
// compile. An omitted maxdepth defaults to mindepth, an omitted grep matches
// everything.
func (c *Config) Validate() error {
	seen := make(map[string]struct{}, len(c.Directories))
	for i := range c.Directories {
		r := &c.Directories[i]

		if r.Path == "" {
			return fmt.Errorf("%w: directory rule %d has no path", ErrInvalid, i)
		}
		r.Path = expandHome(r.Path)
		if _, dup := seen[r.Path]; dup {
			return fmt.Errorf("%w: duplicate directory rule %q", ErrInvalid, r.Path)
		}
		seen[r.Path] = struct{}{}

		if r.MinDepth < 0 {
			return fmt.Errorf("%w: rule %q: mindepth %d is negative", ErrInvalid, r.Path, r.MinDepth)
		}
		if r.MaxDepth == 0 && r.MinDepth > 0 {
			r.MaxDepth = r.MinDepth
		}
		if r.MaxDepth < r.MinDepth {
			return fmt.Errorf("%w: rule %q: maxdepth %d < mindepth %d",
				ErrInvalid, r.Path, r.MaxDepth, r.MinDepth)
		}

		grep := r.Grep
		if grep == "" {
			grep = ".*"
		}
		pat, err := regexp.Compile("^(?:" + grep + ")$")
		if err != nil {
			return fmt.Errorf("%w: rule %q: bad grep %q: %v", ErrInvalid, r.Path, r.Grep, err)
		}
		r.pattern = pat
	}
	return nil
}

// Save writes the config atomically (temp file then rename) so a concurrent
// reader never observes a partial file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".config-*.yaml")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func expandHome(path string) string {
	if len(path) > 0 && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
