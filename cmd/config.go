package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/simon/sessionizer/internal/ui"
)

const defaultConfig = `# sessionizer configuration.
#
# directories: scanning rules. Depth 0 is the path itself; grep is a regular
# expression matched against the whole directory name.
# sessions: names always offered as candidates.
# environment: KEY=VALUE pairs injected into new tmux sessions.

directories:
  - path: ~/work
    mindepth: 1
    maxdepth: 1

sessions: []

environment: []
`

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the sessionizer configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configPath()
		if err != nil {
			return err
		}

		force, _ := cmd.Flags().GetBool("force")
		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("config %s already exists (use --force to overwrite)", path)
		}

		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(path, []byte(defaultConfig), 0o644); err != nil {
			return err
		}
		ui.Success("Wrote %s", path)
		return nil
	},
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the configuration in $EDITOR",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configPath()
		if err != nil {
			return err
		}

		editor := os.Getenv("EDITOR")
		if editor == "" {
			editor = "vi"
		}

		edit := exec.Command(editor, path)
		edit.Stdin = os.Stdin
		edit.Stdout = os.Stdout
		edit.Stderr = os.Stderr
		return edit.Run()
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the configuration file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configPath()
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		fmt.Print(string(data))
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolP("force", "f", false, "Overwrite an existing config")
	configCmd.AddCommand(configInitCmd, configEditCmd, configShowCmd)
	rootCmd.AddCommand(configCmd)
}
