// ABOUTME: Logout command for the bookhaven CLI
// ABOUTME: Invalidates the server session and clears the stored token

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Logout from BookHaven",
	Long:  `Invalidate the server-side session and remove the locally stored token.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runLogout(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

// runLogout clears the session and returns an exit code
func runLogout(ctx context.Context, w io.Writer) int {
	d, err := newDeps()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	defer d.recorder.Flush()

	if _, ok := d.store.Token(); !ok {
		fmt.Fprintln(w, "Not logged in.")
		return 0
	}

	// The local token is cleared even when the server call fails.
	if err := d.sessions.Logout(ctx); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	fmt.Fprintln(w, "Logged out.")
	return 0
}
