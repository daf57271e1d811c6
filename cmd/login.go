// ABOUTME: Login command for the bookhaven CLI
// ABOUTME: Authenticates against the backend and persists the session token

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/bookhaven/bookhaven-cli/internal/api"
	"github.com/bookhaven/bookhaven-cli/internal/tui/styles"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Login to BookHaven",
	Long:  `Authenticate against the BookHaven backend and store the session token for subsequent commands.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if err := promptCredentials(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(2)
		}

		exitCode := runLogin(ctx, os.Stdout, loginEmail, loginPassword)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password (prompted when omitted)")
	rootCmd.AddCommand(loginCmd)
}

// promptCredentials asks interactively for anything not given as a flag
func promptCredentials() error {
	var fields []huh.Field
	if loginEmail == "" {
		fields = append(fields, huh.NewInput().Title("Email").Value(&loginEmail))
	}
	if loginPassword == "" {
		fields = append(fields, huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&loginPassword))
	}
	if len(fields) == 0 {
		return nil
	}
	return huh.NewForm(huh.NewGroup(fields...)).WithTheme(styles.FormTheme()).Run()
}

// runLogin performs the login and returns an exit code
func runLogin(ctx context.Context, w io.Writer, email, password string) int {
	if email == "" || password == "" {
		fmt.Fprintln(w, "Error: email and password are required")
		return 1
	}

	d, err := newDeps()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	defer d.recorder.Flush()

	user, err := d.sessions.Login(ctx, email, password)
	if err != nil {
		if api.IsAuth(err) {
			fmt.Fprintln(w, "Error: invalid email or password")
			return 1
		}
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(user, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintf(w, "Logged in as %s (%s)\n", user.Name, user.Email)
	}
	return 0
}
