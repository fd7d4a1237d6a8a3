package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// listCmd prints the ranked candidate list, one display line per candidate.
// It backs the fzf reload binding and is handy for scripting, but stays out
// of --help.
var listCmd = &cobra.Command{
	Use:    "list",
	Short:  "Print the ranked candidate list",
	Hidden: true,
	Args:   cobra.NoArgs,
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
		for _, c := range candidates {
			fmt.Println(c.Display())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
