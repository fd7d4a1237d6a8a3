package cmd

import (
	"os"

	"github.com/simon/sessionizer/internal/candidate"
	"github.com/simon/sessionizer/internal/config"
	"github.com/simon/sessionizer/internal/history"
	"github.com/simon/sessionizer/internal/scan"
	"github.com/simon/sessionizer/internal/tmux"
)

// configPath resolves the config location: --config flag, then
// SESSIONIZER_CONFIG, then the default under ~/.config.
func configPath() (string, error) {
	if cfgFile != "" {
		return cfgFile, nil
	}
	if env := os.Getenv("SESSIONIZER_CONFIG"); env != "" {
		return env, nil
	}
	return config.DefaultPath()
}

func loadConfig() (*config.Config, string, error) {
	path, err := configPath()
	if err != nil {
		return nil, "", err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func openHistory() (*history.SQLiteBackend, error) {
	return history.Open()
}

// buildCandidates runs the scanner over all rules and merges the results
// with history and the declared session names.
func buildCandidates(cfg *config.Config, store *history.Store) ([]candidate.Candidate, error) {
	scanned, err := scan.All(cfg.Directories)
	if err != nil {
		return nil, err
	}
	return candidate.Build(store.List(), cfg.Sessions, scanned), nil
}

// ensureSession creates the session if it doesn't exist, then switches to it
// when already inside tmux, or attaches otherwise.
func ensureSession(ex tmux.Executor, name, dir string, env []string) error {
	if !ex.HasSession(name) {
		if err := ex.NewSession(name, dir, env); err != nil {
			return err
		}
	}
	if tmux.InsideTmux() {
		return ex.SwitchClient(name)
	}
	return ex.Attach(name)
}
