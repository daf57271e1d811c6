// ABOUTME: Profile commands for the bookhaven CLI
// ABOUTME: Shows and updates the logged-in user's profile

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bookhaven/bookhaven-cli/internal/api"
)

var (
	profileName   string
	profileBio    string
	profileGenres []string
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Work with your profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show your profile",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runProfileShow(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update your profile",
	Long:  `Update your display name, bio, or favorite genres. Only given flags are changed.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runProfileUpdate(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	profileUpdateCmd.Flags().StringVar(&profileName, "name", "", "Display name")
	profileUpdateCmd.Flags().StringVar(&profileBio, "bio", "", "Short bio")
	profileUpdateCmd.Flags().StringSliceVar(&profileGenres, "genre", nil, "Favorite genre (repeatable)")

	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileUpdateCmd)
	rootCmd.AddCommand(profileCmd)
}

// runProfileShow fetches the profile and returns an exit code
func runProfileShow(ctx context.Context, w io.Writer) int {
	d, err := newDeps()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	defer d.recorder.Flush()

	profile, err := d.client.GetProfile(ctx)
	if err != nil {
		if api.IsAuth(err) {
			fmt.Fprintln(w, "Error: not logged in")
			return 1
		}
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(profile, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprintln(w, formatProfile(profile))
	return 0
}

// runProfileUpdate applies the given flags and returns an exit code
func runProfileUpdate(ctx context.Context, w io.Writer) int {
	if profileName == "" && profileBio == "" && len(profileGenres) == 0 {
		fmt.Fprintln(w, "Error: nothing to update; pass --name, --bio, or --genre")
		return 1
	}

	d, err := newDeps()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	defer d.recorder.Flush()

	profile, err := d.client.UpdateProfile(ctx, api.ProfileUpdate{
		Name:           profileName,
		Bio:            profileBio,
		FavoriteGenres: profileGenres,
	})
	if err != nil {
		if api.IsAuth(err) {
			fmt.Fprintln(w, "Error: not logged in")
			return 1
		}
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(profile, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintln(w, "Profile updated.")
		fmt.Fprintln(w, formatProfile(profile))
	}
	return 0
}

// formatProfile renders a profile for human readability
func formatProfile(profile *api.Profile) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:     %s\n", profile.Name))
	sb.WriteString(fmt.Sprintf("Email:    %s\n", profile.Email))
	sb.WriteString(fmt.Sprintf("Role:     %s\n", profile.Role))
	sb.WriteString(fmt.Sprintf("Reviews:  %d", profile.ReviewCount))
	if profile.Bio != "" {
		sb.WriteString(fmt.Sprintf("\nBio:      %s", profile.Bio))
	}
	if len(profile.FavoriteGenres) > 0 {
		sb.WriteString(fmt.Sprintf("\nGenres:   %s", strings.Join(profile.FavoriteGenres, ", ")))
	}
	return sb.String()
}
