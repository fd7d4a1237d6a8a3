package tmux

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Local runs tmux commands on the local machine.
type Local struct{}

// FindTmux locates the tmux binary.
func FindTmux() (string, error) {
	return exec.LookPath("tmux")
}

// InsideTmux reports whether the current process runs inside a tmux client,
// which decides between switch-client and attach.
func InsideTmux() bool {
	return os.Getenv("TMUX") != ""
}

func (l *Local) ListSessions() ([]string, error) {
	tmuxBin, err := FindTmux()
	if err != nil {
		return nil, fmt.Errorf("tmux not found: %w", err)
	}

	cmd := exec.Command(tmuxBin, "list-sessions", "-F", "#{session_name}")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		// Only a stopped server is an empty snapshot. Anything else (socket
		// permission, bad TMUX_TMPDIR) must surface: reverse sync prunes
		// history against this list, and a failure read as "nothing running"
		// would wipe it.
		if noServerRunning(stderr.String()) {
			return nil, nil
		}
		return nil, fmt.Errorf("tmux list-sessions: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return parseSessionList(string(out)), nil
}

// noServerRunning reports whether list-sessions failed only because no tmux
// server is up: tmux prints "no server running on <socket>", or "error
// connecting to <socket> (No such file or directory)" when the socket is
// gone.
func noServerRunning(stderr string) bool {
	return strings.Contains(stderr, "no server running") ||
		strings.Contains(stderr, "No such file or directory")
}

// parseSessionList splits list-sessions output into names.
func parseSessionList(output string) []string {
	var names []string
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		if line != "" {
			names = append(names, line)
		}
	}
	return names
}

func (l *Local) HasSession(name string) bool {
	tmuxBin, err := FindTmux()
	if err != nil {
		return false
	}
	return exec.Command(tmuxBin, "has-session", "-t", exact(name)).Run() == nil
}

func (l *Local) NewSession(name, dir string, env []string) error {
	tmuxBin, err := FindTmux()
	if err != nil {
		return err
	}

	args := []string{"new-session", "-d", "-s", name}
	if dir != "" {
		args = append(args, "-c", dir)
	}
	for _, kv := range env {
		args = append(args, "-e", kv)
	}

	return run(tmuxBin, args...)
}

func (l *Local) SwitchClient(name string) error {
	tmuxBin, err := FindTmux()
	if err != nil {
		return err
	}
	return run(tmuxBin, "switch-client", "-t", exact(name))
}

func (l *Local) Attach(name string) error {
	tmuxBin, err := FindTmux()
	if err != nil {
		return err
	}

	cmd := exec.Command(tmuxBin, "attach-session", "-t", exact(name))
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = filterTMUX(os.Environ())
	return cmd.Run()
}

func (l *Local) CurrentSession() (string, error) {
	tmuxBin, err := FindTmux()
	if err != nil {
		return "", err
	}

	out, err := exec.Command(tmuxBin, "display-message", "-p", "#{session_name}").Output()
	if err != nil {
		return "", fmt.Errorf("not inside a tmux session: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

func (l *Local) KillSession(name string) error {
	tmuxBin, err := FindTmux()
	if err != nil {
		return err
	}
	return run(tmuxBin, "kill-session", "-t", exact(name))
}

// exact prefixes a target with "=" so tmux matches the name exactly instead
// of by prefix.
func exact(name string) string {
	return "=" + name
}

// filterTMUX removes the TMUX env var so attach works from within tmux.
func filterTMUX(env []string) []string {
	filtered := make([]string, 0, len(env))
	for _, e := range env {
		if !strings.HasPrefix(e, "TMUX=") {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// run executes a tmux command and surfaces stderr in the error verbatim.
func run(bin string, args ...string) error {
	out, err := exec.Command(bin, args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("tmux %s: %w: %s", args[0], err, strings.TrimSpace(string(out)))
	}
	return nil
}
