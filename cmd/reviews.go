// ABOUTME: Reviews commands for the bookhaven CLI
// ABOUTME: Lists, submits, and deletes reviews from the command line

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

const minReviewLength = 10

var (
	reviewsPage  int
	reviewsLimit int

	reviewRating  int
	reviewContent string
)

var reviewsCmd = &cobra.Command{
	Use:   "reviews",
	Short: "Work with book reviews",
}

var reviewsListCmd = &cobra.Command{
	Use:   "list <book-id>",
	Short: "List reviews for a book",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runReviewsList(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var reviewsMineCmd = &cobra.Command{
	Use:   "mine",
	Short: "List your own reviews",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runReviewsMine(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var reviewsAddCmd = &cobra.Command{
	Use:   "add <book-id>",
	Short: "Submit a review",
	Long:  `Submit a star rating and review text for a book. Requires a session.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runReviewsAdd(ctx, os.Stdout, args[0], reviewRating, reviewContent)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var reviewsDeleteCmd = &cobra.Command{
	Use:   "delete <review-id>",
	Short: "Delete a review",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runReviewsDelete(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	reviewsListCmd.Flags().IntVar(&reviewsPage, "page", 1, "Page number")
	reviewsListCmd.Flags().IntVar(&reviewsLimit, "limit", 10, "Reviews per page")
	reviewsMineCmd.Flags().IntVar(&reviewsPage, "page", 1, "Page number")
	reviewsMineCmd.Flags().IntVar(&reviewsLimit, "limit", 10, "Reviews per page")

	reviewsAddCmd.Flags().IntVar(&reviewRating, "rating", 0, "Star rating from 1 to 5 (required)")
	reviewsAddCmd.Flags().StringVar(&reviewContent, "content", "", "Review text, at least 10 characters (required)")

	reviewsCmd.AddCommand(reviewsListCmd)
	reviewsCmd.AddCommand(reviewsMineCmd)
	reviewsCmd.AddCommand(reviewsAddCmd)
	reviewsCmd.AddCommand(reviewsDeleteCmd)
	rootCmd.AddCommand(reviewsCmd)
}

// validateReviewInput checks the review before any network call
func validateReviewInput(rating int, content string) string {
	if rating < 1 || rating > 5 {
		return "rating must be between 1 and 5"
	}
	if len(strings.TrimSpace(content)) < minReviewLength {
		return fmt.Sprintf("review content must be at least %d characters", minReviewLength)
	}
	return ""
}

// runReviewsList fetches reviews for a book and returns an exit code
func runReviewsList(ctx context.Context, w io.Writer, bookID string) int {
	d, err := newDeps()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	defer d.recorder.Flush()

	page, err := d.client.BookReviews(ctx, bookID, reviewsPage, reviewsLimit)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	printReviewPage(w, page)
	return 0
}

// runReviewsMine fetches the caller's reviews and returns an exit code
func runReviewsMine(ctx context.Context, w io.Writer) int {
	d, err := newDeps()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	defer d.recorder.Flush()

	page, err := d.client.MyReviews(ctx, reviewsPage, reviewsLimit)
	if err != nil {
		if api.IsAuth(err) {
			fmt.Fprintln(w, "Error: not logged in")
			return 1
		}
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	printReviewPage(w, page)
	return 0
}

// runReviewsAdd validates locally, submits, and returns an exit code
func runReviewsAdd(ctx context.Context, w io.Writer, bookID string, rating int, content string) int {
	if problem := validateReviewInput(rating, content); problem != "" {
		fmt.Fprintf(w, "Error: %s\n", problem)
		return 1
	}

	d, err := newDeps()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	defer d.recorder.Flush()

	review, err := d.client.AddReview(ctx, api.NewReview{
		BookID:  bookID,
		Rating:  rating,
		Content: strings.TrimSpace(content),
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
		data, _ := json.MarshalIndent(review, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintf(w, "Review %s submitted.\n", review.ID)
	}
	return 0
}

// runReviewsDelete removes a review and returns an exit code
func runReviewsDelete(ctx context.Context, w io.Writer, id string) int {
	d, err := newDeps()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	defer d.recorder.Flush()

	if err := d.client.DeleteReview(ctx, id); err != nil {
		switch {
		case api.IsAuth(err):
			fmt.Fprintln(w, "Error: not logged in")
			return 1
		case api.IsNotFound(err):
			fmt.Fprintf(w, "Error: review %q not found\n", id)
			return 1
		default:
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
	}

	fmt.Fprintln(w, "Review deleted.")
	return 0
}

func printReviewPage(w io.Writer, page *api.ReviewPage) {
	if IsJSONOutput() {
		data, _ := json.MarshalIndent(page, "", "  ")
		fmt.Fprintln(w, string(data))
		return
	}

	if len(page.Data) == 0 {
		fmt.Fprintln(w, "No reviews found.")
		return
	}
	for _, review := range page.Data {
		fmt.Fprintf(w, "%-24s  %d★  %s\n", review.ID, review.Rating, review.Content)
	}
	if page.Pagination.TotalPages > 1 {
		fmt.Fprintf(w, "\nPage %d of %d (%d reviews)\n",
			page.Pagination.CurrentPage, page.Pagination.TotalPages, page.Pagination.TotalCount)
	}
}
