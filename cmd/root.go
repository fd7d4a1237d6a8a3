package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/simon/sessionizer/internal/candidate"
	"github.com/simon/sessionizer/internal/picker"
	"github.com/simon/sessionizer/internal/tmux"
	"github.com/simon/sessionizer/internal/ui"
)

var cfgFile string

func SetVersionInfo(version, commit string) {
	rootCmd.Version = fmt.Sprintf("%s (%s)", version, commit)
}

var rootCmd = &cobra.Command{
	Use:   "sessionizer",
	Short: "Handle tmux sessions based on your file system",
	Long: "Scan configured directories, merge them with session history and " +
		"declared sessions, pick one interactively, and create or attach " +
		"the matching tmux session.",
	RunE: func(cmd *cobra.Command, args []string) error {
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

		candidates, err := buildCandidates(cfg, store)
		if err != nil {
			return err
		}
		if len(candidates) == 0 {
			fmt.Println("No candidates. Add directory rules with `sessionizer directories add`.")
			return nil
		}

		displays := make([]string, len(candidates))
		for i, c := range candidates {
			displays[i] = c.Display()
		}

		sel := picker.Default("Select a directory or session.",
			"ctrl-x:execute-silent(sessionizer sessions remove {1})+reload(sessionizer list)")
		choice, ok, err := sel.Choose(displays)
		if err != nil {
			return err
		}
		if !ok {
			// Cancelled: no action, no writes.
			return nil
		}

		chosen, found := matchCandidate(candidates, choice)
		if !found {
			return fmt.Errorf("selection %q is not a known candidate", choice)
		}

		ex := &tmux.Local{}
		if err := ensureSession(ex, chosen.ID, chosen.Path, cfg.Environment); err != nil {
			return err
		}

		// Record only after the selection is confirmed and acted on.
		store.Record(chosen.ID)
		return backend.Save(store)
	},
}

func matchCandidate(candidates []candidate.Candidate, display string) (candidate.Candidate, bool) {
	for _, c := range candidates {
		if c.Display() == display {
			return c, true
		}
	}
	return candidate.Candidate{}, false
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		ui.Fail("%v", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"Config file (default ~/.config/sessionizer/config.yaml, or $SESSIONIZER_CONFIG)")
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
}
