// ABOUTME: Browse command launching the interactive TUI
// ABOUTME: Also runs when the CLI is invoked without a subcommand

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bookhaven/bookhaven-cli/internal/notify"
	"github.com/bookhaven/bookhaven-cli/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse books interactively",
	Long:  `Launch the interactive terminal browser: featured books, the catalog, reviews, and your profile.`,
	Run: func(cmd *cobra.Command, args []string) {
		if exitCode := runBrowse(); exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
	rootCmd.Run = browseCmd.Run
}

// runBrowse starts the TUI and returns an exit code
func runBrowse() int {
	d, err := newDeps()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}
	defer d.recorder.Flush()

	if err := tui.Run(d.client, d.sessions, notify.NewService(), d.log); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}
	return 0
}
