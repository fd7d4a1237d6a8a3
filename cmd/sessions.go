package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simon/sessionizer/internal/candidate"
	"github.com/simon/sessionizer/internal/history"
	"github.com/simon/sessionizer/internal/tmux"
	"github.com/simon/sessionizer/internal/ui"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Manage tmux sessions created through sessionizer",
}

var sessionsHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List previously visited sessions, most recent first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ex := &tmux.Local{}
		live, err := ex.ListSessions()
		if err != nil {
			return err
		}

		backend, err := openHistory()
		if err != nil {
			return err
		}
		defer backend.Close()

		store, err := backend.Load()
		if err != nil {
			return err
		}

		// Live sessions are user-intended: remember them before printing.
		if history.Forward(store, live) > 0 {
			if err := backend.Save(store); err != nil {
				return err
			}
		}

		alive := make(map[string]struct{}, len(live))
		for _, name := range live {
			alive[name] = struct{}{}
		}
		for _, name := range store.List() {
			if _, ok := alive[name]; ok {
				fmt.Printf("%s %s\n", name, ui.Green("●"))
			} else {
				fmt.Println(name)
			}
		}
		return nil
	},
}

var sessionsGoCmd = &cobra.Command{
	Use:   "go <session>",
	Short: "Create or attach a session and record it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := candidate.SafeName(args[0])

		cfg, _, err := loadConfig()
		if err != nil {
			return err
		}

		backend, err := openHistory()
		if err != nil {
			return err
		}
		defer backend.Close()

		store, err := backend.Load()
		if err != nil {
			return err
		}

		// Resolve the working directory through the same candidate merge the
		// interactive flow uses, so `go` on a scanned name lands in its
		// directory.
		candidates, err := buildCandidates(cfg, store)
		if err != nil {
			return err
		}
		dir := ""
		if c, ok := findCandidate(candidates, name); ok {
			dir = c.Path
		}

		ex := &tmux.Local{}
		if err := ensureSession(ex, name, dir, cfg.Environment); err != nil {
			return err
		}

		store.Record(name)
		return backend.Save(store)
	},
}

var sessionsAddCmd = &cobra.Command{
	Use:   "add <session>",
	Short: "Record a session in history without touching tmux",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := openHistory()
		if err != nil {
			return err
		}
		defer backend.Close()

		store, err := backend.Load()
		if err != nil {
			return err
		}

		store.Record(candidate.SafeName(args[0]))
		return backend.Save(store)
	},
}

var sessionsRemoveCmd = &cobra.Command{
	Use:   "remove <session>",
	Short: "Remove a session from history and kill it if running",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := candidate.SafeName(args[0])

		backend, err := openHistory()
		if err != nil {
			return err
		}
		defer backend.Close()

		store, err := backend.Load()
		if err != nil {
			return err
		}

		// A missing entry surfaces: it usually means a stale reference the
		// user should know about.
		if err := store.Remove(name); err != nil {
			return err
		}
		if err := backend.Save(store); err != nil {
			return err
		}

		ex := &tmux.Local{}
		if ex.HasSession(name) {
			if err := ex.KillSession(name); err != nil {
				return err
			}
		}
		return nil
	},
}

var sessionsNextCmd = &cobra.Command{
	Use:   "next",
	Short: "Go to the next session in history",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		show, _ := cmd.Flags().GetBool("show")
		return stepHistory(1, show)
	},
}

var sessionsPreviousCmd = &cobra.Command{
	Use:   "previous",
	Short: "Go to the previous session in history",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		show, _ := cmd.Flags().GetBool("show")
		return stepHistory(-1, show)
	},
}

// stepHistory moves through history as a ring relative to the current tmux
// session. Navigation deliberately doesn't record: recording would move the
// target to the front and two hops would only ever flip between the same
// pair.
func stepHistory(delta int, show bool) error {
	ex := &tmux.Local{}
	current, err := ex.CurrentSession()
	if err != nil {
		return err
	}

	backend, err := openHistory()
	if err != nil {
		return err
	}
	defer backend.Close()

	store, err := backend.Load()
	if err != nil {
		return err
	}

	var target string
	var ok bool
	if delta > 0 {
		target, ok = store.Next(current)
	} else {
		target, ok = store.Previous(current)
	}
	if !ok {
		return fmt.Errorf("session %q is not in history", current)
	}

	if show {
		fmt.Println(target)
		return nil
	}
	return ensureSession(ex, target, "", nil)
}

var sessionsSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Reconcile history with the running tmux sessions",
	Long: "Forward sync (default) records every running session missing from " +
		"history. Reverse sync (--reverse) prunes history entries whose " +
		"session is no longer running.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ex := &tmux.Local{}
		live, err := ex.ListSessions()
		if err != nil {
			return err
		}

		backend, err := openHistory()
		if err != nil {
			return err
		}
		defer backend.Close()

		store, err := backend.Load()
		if err != nil {
			return err
		}

		reverse, _ := cmd.Flags().GetBool("reverse")
		var changed int
		if reverse {
			changed = history.Reverse(store, live)
			ui.Success("Removed %d stale session(s) from history", changed)
		} else {
			changed = history.Forward(store, live)
			ui.Success("Recorded %d running session(s)", changed)
		}

		if changed == 0 {
			return nil
		}
		return backend.Save(store)
	},
}

func findCandidate(candidates []candidate.Candidate, id string) (candidate.Candidate, bool) {
	for _, c := range candidates {
		if c.ID == id {
			return c, true
		}
	}
	return candidate.Candidate{}, false
}

func init() {
	sessionsNextCmd.Flags().BoolP("show", "s", false, "Print the next session instead of switching")
	sessionsPreviousCmd.Flags().BoolP("show", "s", false, "Print the previous session instead of switching")
	sessionsSyncCmd.Flags().BoolP("reverse", "r", false, "Remove history entries with no running session")
	sessionsCmd.AddCommand(sessionsHistoryCmd, sessionsGoCmd, sessionsAddCmd,
		sessionsRemoveCmd, sessionsNextCmd, sessionsPreviousCmd, sessionsSyncCmd)
	rootCmd.AddCommand(sessionsCmd)
}
