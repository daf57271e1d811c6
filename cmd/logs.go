// ABOUTME: Logs command for the bookhaven CLI
// ABOUTME: Probes the backend at debug level and dumps the captured client log

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bookhaven/bookhaven-cli/internal/api"
	"github.com/bookhaven/bookhaven-cli/internal/logger"
	"github.com/bookhaven/bookhaven-cli/internal/session"
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Diagnose backend connectivity",
	Long: `Probe the backend with debug logging enabled and print the captured
client log, newest first. Useful when the interactive browser misbehaves.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runLogs(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(logsCmd)
}

// runLogs probes the backend and dumps the log ring buffer
func runLogs(ctx context.Context, w io.Writer) int {
	d, err := newDeps()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	// Rebuild the stack at debug level so the probe captures request detail.
	log, recorder := logger.New("debug", d.cfg.Log.CollectorURL)
	client := api.New(d.cfg.API.BaseURL, d.store, log)
	client.SetTimeout(d.cfg.API.Timeout)
	sessions := session.NewManager(client, d.store, log)

	// Probe the main read paths; failures land in the log like any other.
	ok := true
	if _, err := client.FeaturedBooks(ctx); err != nil {
		ok = false
	}
	if _, err := client.ListBooks(ctx, 1, 1, api.BookFilters{}); err != nil {
		ok = false
	}
	sessions.Resolve(ctx)
	recorder.Flush()

	entries := recorder.Recent()
	if IsJSONOutput() {
		data, _ := json.MarshalIndent(entries, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintf(w, "Backend: %s\n\n", d.cfg.API.BaseURL)
		for _, entry := range entries {
			fmt.Fprintln(w, formatLogEntry(entry))
		}
	}

	if !ok {
		return 2
	}
	return 0
}

// formatLogEntry renders one captured log line
func formatLogEntry(entry logger.Entry) string {
	line := fmt.Sprintf("%s %-5s %s", entry.Timestamp.Format("2006-01-02 15:04:05"), entry.Level, entry.Message)
	for key, value := range entry.Context {
		line += fmt.Sprintf(" %s=%v", key, value)
	}
	return line
}
