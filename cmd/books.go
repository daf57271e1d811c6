// ABOUTME: Books commands for the bookhaven CLI
// ABOUTME: Lists, shows, and creates catalog entries for scripting use

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
	booksPage   int
	booksLimit  int
	booksTitle  string
	booksAuthor string
	booksGenre  string

	addTitle     string
	addAuthor    string
	addDesc      string
	addCover     string
	addISBN      string
	addYear      int
	addPublisher string
	addGenres    []string
)

var booksCmd = &cobra.Command{
	Use:   "books",
	Short: "Work with the book catalog",
}

var booksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List books",
	Long:  `List books from the catalog with optional title, author, and genre filters.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runBooksList(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var booksShowCmd = &cobra.Command{
	Use:   "show <book-id>",
	Short: "Show one book",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runBooksShow(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var booksFeaturedCmd = &cobra.Command{
	Use:   "featured",
	Short: "List featured books",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runBooksFeatured(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var booksAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a book (admin only)",
	Long:  `Add a new book to the catalog. Requires an admin session.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runBooksAdd(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	booksListCmd.Flags().IntVar(&booksPage, "page", 1, "Page number")
	booksListCmd.Flags().IntVar(&booksLimit, "limit", 10, "Books per page")
	booksListCmd.Flags().StringVar(&booksTitle, "title", "", "Filter by title")
	booksListCmd.Flags().StringVar(&booksAuthor, "author", "", "Filter by author")
	booksListCmd.Flags().StringVar(&booksGenre, "genre", "", "Filter by genre")

	booksAddCmd.Flags().StringVar(&addTitle, "title", "", "Book title (required)")
	booksAddCmd.Flags().StringVar(&addAuthor, "author", "", "Book author (required)")
	booksAddCmd.Flags().StringVar(&addDesc, "description", "", "Book description (required)")
	booksAddCmd.Flags().StringVar(&addCover, "cover-image", "", "Cover image URL")
	booksAddCmd.Flags().StringVar(&addISBN, "isbn", "", "ISBN")
	booksAddCmd.Flags().IntVar(&addYear, "year", 0, "Publication year")
	booksAddCmd.Flags().StringVar(&addPublisher, "publisher", "", "Publisher")
	booksAddCmd.Flags().StringSliceVar(&addGenres, "genre", nil, "Genre (repeatable, at least one required)")

	booksCmd.AddCommand(booksListCmd)
	booksCmd.AddCommand(booksShowCmd)
	booksCmd.AddCommand(booksFeaturedCmd)
	booksCmd.AddCommand(booksAddCmd)
	rootCmd.AddCommand(booksCmd)
}

// runBooksList fetches one catalog page and returns an exit code
func runBooksList(ctx context.Context, w io.Writer) int {
	d, err := newDeps()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	defer d.recorder.Flush()

	filters := api.BookFilters{Title: booksTitle, Author: booksAuthor, Genre: booksGenre}
	page, err := d.client.ListBooks(ctx, booksPage, booksLimit, filters)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(page, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprintln(w, formatBookList(page.Data))
	fmt.Fprintf(w, "\nPage %d of %d (%d books)\n",
		page.Pagination.CurrentPage, page.Pagination.TotalPages, page.Pagination.TotalCount)
	return 0
}

// runBooksShow fetches a single book and returns an exit code
func runBooksShow(ctx context.Context, w io.Writer, id string) int {
	d, err := newDeps()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	defer d.recorder.Flush()

	book, err := d.client.GetBook(ctx, id)
	if err != nil {
		if api.IsNotFound(err) {
			fmt.Fprintf(w, "Error: book %q not found\n", id)
			return 1
		}
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(book, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprintln(w, formatBook(book))
	return 0
}

// runBooksFeatured fetches the featured list and returns an exit code
func runBooksFeatured(ctx context.Context, w io.Writer) int {
	d, err := newDeps()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	defer d.recorder.Flush()

	featured, err := d.client.FeaturedBooks(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(featured, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprintln(w, formatBookList(featured))
	return 0
}

// runBooksAdd creates a book and returns an exit code
func runBooksAdd(ctx context.Context, w io.Writer) int {
	if addTitle == "" || addAuthor == "" || addDesc == "" {
		fmt.Fprintln(w, "Error: --title, --author, and --description are required")
		return 1
	}
	if len(addGenres) == 0 {
		fmt.Fprintln(w, "Error: at least one --genre is required")
		return 1
	}

	d, err := newDeps()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	defer d.recorder.Flush()

	book, err := d.client.AddBook(ctx, api.NewBook{
		Title:           addTitle,
		Author:          addAuthor,
		Description:     addDesc,
		CoverImage:      addCover,
		ISBN:            addISBN,
		PublicationYear: addYear,
		Publisher:       addPublisher,
		Genre:           addGenres,
	})
	if err != nil {
		if api.IsAuth(err) {
			fmt.Fprintln(w, "Error: adding books requires an admin session")
			return 1
		}
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(book, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintf(w, "Added %q (%s)\n", book.Title, book.ID)
	}
	return 0
}

// formatBookList renders one line per book
func formatBookList(list []api.Book) string {
	if len(list) == 0 {
		return "No books found."
	}
	var sb strings.Builder
	for i, book := range list {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("%-24s  %s by %s  %.1f★ (%d)",
			book.ID, book.Title, book.Author, book.AverageRating, book.ReviewCount))
	}
	return sb.String()
}

// formatBook renders a detailed single-book view
func formatBook(book *api.Book) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Title:       %s\n", book.Title))
	sb.WriteString(fmt.Sprintf("Author:      %s\n", book.Author))
	sb.WriteString(fmt.Sprintf("Rating:      %.1f (%d reviews)\n", book.AverageRating, book.ReviewCount))
	if len(book.Genre) > 0 {
		sb.WriteString(fmt.Sprintf("Genre:       %s\n", strings.Join(book.Genre, ", ")))
	}
	if book.Publisher != "" {
		sb.WriteString(fmt.Sprintf("Publisher:   %s\n", book.Publisher))
	}
	if book.PublicationYear > 0 {
		sb.WriteString(fmt.Sprintf("Published:   %d\n", book.PublicationYear))
	}
	if book.ISBN != "" {
		sb.WriteString(fmt.Sprintf("ISBN:        %s\n", book.ISBN))
	}
	sb.WriteString(fmt.Sprintf("\n%s", book.Description))
	return sb.String()
}
