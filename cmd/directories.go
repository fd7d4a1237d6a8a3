package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/simon/sessionizer/internal/config"
	"github.com/simon/sessionizer/internal/scan"
	"github.com/simon/sessionizer/internal/ui"
)

var directoriesCmd = &cobra.Command{
	Use:   "directories",
	Short: "Manage the sessionizer directories",
}

var directoriesAddCmd = &cobra.Command{
	Use:   "add <path>",
	Short: "Add a directory rule",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, path, err := loadConfig()
		if err != nil {
			return err
		}

		minDepth, _ := cmd.Flags().GetInt("mindepth")
		maxDepth, _ := cmd.Flags().GetInt("maxdepth")
		grep, _ := cmd.Flags().GetString("grep")

		rule := config.Rule{
			Path:     args[0],
			MinDepth: minDepth,
			MaxDepth: maxDepth,
			Grep:     grep,
		}
		cfg.Directories = append(cfg.Directories, rule)

		// Rejects bad depths, bad filters and duplicate paths before anything
		// is written.
		if err := cfg.Validate(); err != nil {
			return err
		}
		if err := config.Save(path, cfg); err != nil {
			return err
		}
		ui.Success("Added %s", args[0])
		return nil
	},
}

var directoriesRemoveCmd = &cobra.Command{
	Use:   "remove <path>",
	Short: "Remove a directory rule",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, path, err := loadConfig()
		if err != nil {
			return err
		}

		target, err := filepath.Abs(args[0])
		if err != nil {
			return err
		}

		kept := cfg.Directories[:0]
		found := false
		for _, rule := range cfg.Directories {
			if rule.Path == args[0] || rule.Path == target {
				found = true
				continue
			}
			kept = append(kept, rule)
		}
		if !found {
			return fmt.Errorf("no directory rule for %q", args[0])
		}
		cfg.Directories = kept

		if err := config.Save(path, cfg); err != nil {
			return err
		}
		ui.Success("Removed %s", args[0])
		return nil
	},
}

var directoriesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the configured directory rules",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig()
		if err != nil {
			return err
		}
		for _, rule := range cfg.Directories {
			extra := fmt.Sprintf("depth %d..%d", rule.MinDepth, rule.MaxDepth)
			if rule.Grep != "" {
				extra += fmt.Sprintf(", grep %s", rule.Grep)
			}
			fmt.Printf("%s %s\n", rule.Path, ui.Dim("("+extra+")"))
		}
		return nil
	},
}

var directoriesEvaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Print every directory the rules currently match",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig()
		if err != nil {
			return err
		}
		paths, err := scan.All(cfg.Directories)
		if err != nil {
			return err
		}
		for _, p := range paths {
			fmt.Println(p)
		}
		return nil
	},
}

func init() {
	directoriesAddCmd.Flags().IntP("mindepth", "m", 1, "Minimum scan depth below the directory")
	directoriesAddCmd.Flags().IntP("maxdepth", "M", 1, "Maximum scan depth below the directory")
	directoriesAddCmd.Flags().StringP("grep", "g", "", "Only match directory names against this pattern")
	directoriesCmd.AddCommand(directoriesAddCmd, directoriesRemoveCmd, directoriesListCmd, directoriesEvaluateCmd)
	rootCmd.AddCommand(directoriesCmd)
}
