// ABOUTME: Register command for the bookhaven CLI
// ABOUTME: Creates an account; login remains a separate step

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/bookhaven/bookhaven-cli/internal/tui/styles"
)

const minPasswordLength = 6

var (
	registerName     string
	registerEmail    string
	registerPassword string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a BookHaven account",
	Long:  `Create a new BookHaven account. Run "bookhaven login" afterwards to start a session.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if err := promptRegistration(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(2)
		}

		exitCode := runRegister(ctx, os.Stdout, registerName, registerEmail, registerPassword)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	registerCmd.Flags().StringVar(&registerName, "name", "", "Your display name")
	registerCmd.Flags().StringVar(&registerEmail, "email", "", "Account email")
	registerCmd.Flags().StringVar(&registerPassword, "password", "", "Account password (prompted when omitted)")
	rootCmd.AddCommand(registerCmd)
}

func promptRegistration() error {
	var fields []huh.Field
	if registerName == "" {
		fields = append(fields, huh.NewInput().Title("Name").Value(&registerName))
	}
	if registerEmail == "" {
		fields = append(fields, huh.NewInput().Title("Email").Value(&registerEmail))
	}
	if registerPassword == "" {
		fields = append(fields, huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&registerPassword))
	}
	if len(fields) == 0 {
		return nil
	}
	return huh.NewForm(huh.NewGroup(fields...)).WithTheme(styles.FormTheme()).Run()
}

// validateRegistration checks the inputs before any network call
func validateRegistration(name, email, password string) string {
	if strings.TrimSpace(name) == "" {
		return "name is required"
	}
	if !strings.Contains(email, "@") {
		return "a valid email is required"
	}
	if len(password) < minPasswordLength {
		return fmt.Sprintf("password must be at least %d characters", minPasswordLength)
	}
	return ""
}

// runRegister creates the account and returns an exit code
func runRegister(ctx context.Context, w io.Writer, name, email, password string) int {
	if problem := validateRegistration(name, email, password); problem != "" {
		fmt.Fprintf(w, "Error: %s\n", problem)
		return 1
	}

	d, err := newDeps()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	defer d.recorder.Flush()

	if err := d.sessions.Register(ctx, strings.TrimSpace(name), strings.TrimSpace(email), password); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	fmt.Fprintf(w, "Account created for %s. Run \"bookhaven login\" to start a session.\n", email)
	return 0
}
