// ABOUTME: Book detail screen with the review list and the review form
// ABOUTME: Applies optimistic rating updates when a review is accepted

package bookdetail

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/bookhaven/bookhaven-cli/internal/api"
	"github.com/bookhaven/bookhaven-cli/internal/notify"
	"github.com/bookhaven/bookhaven-cli/internal/session"
	"github.com/bookhaven/bookhaven-cli/internal/tui/icons"
	"github.com/bookhaven/bookhaven-cli/internal/tui/styles"
	"github.com/bookhaven/bookhaven-cli/internal/tui/widgets"
)

const (
	reviewsPerPage    = 10
	minReviewLength   = 10
	descriptionHeight = 6
)

// BackMsg is sent when the user leaves the detail screen.
type BackMsg struct{}

// bookLoadedMsg is sent when the book has been fetched
type bookLoadedMsg struct {
	book *api.Book
	err  error
}

// reviewsLoadedMsg is sent when a page of reviews has been fetched
type reviewsLoadedMsg struct {
	page *api.ReviewPage
	err  error
}

// reviewSubmittedMsg is sent when a review submission completes
type reviewSubmittedMsg struct {
	review *api.Review
	err    error
}

// Detail is the book detail screen model.
type Detail struct {
	client   *api.Client
	sessions *session.Manager
	toasts   *notify.Service

	bookID     string
	book       *api.Book
	reviews    []api.Review
	pagination api.Pagination
	page       int
	loading    bool
	err        error
	width      int

	// Review form state; non-nil while the form is open.
	form       *huh.Form
	rating     int
	content    string
	submitting bool
}

// New creates a detail screen for the given book.
func New(client *api.Client, sessions *session.Manager, toasts *notify.Service, bookID string) *Detail {
	return &Detail{
		client:   client,
		sessions: sessions,
		toasts:   toasts,
		bookID:   bookID,
		page:     1,
		loading:  true,
	}
}

// Init implements tea.Model
func (d *Detail) Init() tea.Cmd {
	return tea.Batch(d.loadBook(), d.loadReviews())
}

func (d *Detail) loadBook() tea.Cmd {
	return func() tea.Msg {
		book, err := d.client.GetBook(context.Background(), d.bookID)
		return bookLoadedMsg{book: book, err: err}
	}
}

func (d *Detail) loadReviews() tea.Cmd {
	page := d.page
	return func() tea.Msg {
		result, err := d.client.BookReviews(context.Background(), d.bookID, page, reviewsPerPage)
		return reviewsLoadedMsg{page: result, err: err}
	}
}

// FormActive reports whether the review form is capturing keyboard input.
func (d *Detail) FormActive() bool {
	return d.form != nil
}

// validateReview checks a review before any network call is made. It returns
// an empty string when the review is acceptable.
func validateReview(rating int, content string) string {
	if rating < 1 || rating > widgets.MaxStars {
		return "Please select a rating"
	}
	if len(strings.TrimSpace(content)) < minReviewLength {
		return fmt.Sprintf("Review must be at least %d characters", minReviewLength)
	}
	return ""
}

// applyReview folds an accepted review into the cached book so the screen
// reflects it without refetching. The new average is recomputed from the old
// aggregate: (avg*count + rating) / (count + 1).
func applyReview(book *api.Book, review api.Review) {
	count := book.ReviewCount
	book.AverageRating = (book.AverageRating*float64(count) + float64(review.Rating)) / float64(count+1)
	book.ReviewCount = count + 1
}

// Update implements tea.Model
func (d *Detail) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		d.width = msg.Width
		if d.form != nil {
			return d.updateForm(msg)
		}
		return d, nil

	case bookLoadedMsg:
		d.loading = false
		if msg.err != nil {
			d.err = msg.err
			return d, nil
		}
		d.book = msg.book
		return d, nil

	case reviewsLoadedMsg:
		if msg.err != nil {
			d.err = msg.err
			return d, nil
		}
		d.reviews = msg.page.Data
		d.pagination = msg.page.Pagination
		return d, nil

	case reviewSubmittedMsg:
		d.submitting = false
		if msg.err != nil {
			// Submission failed: leave the book and review list untouched.
			d.toasts.Publish(submitFailureMessage(msg.err), notify.LevelError)
			return d, nil
		}
		if d.book != nil {
			applyReview(d.book, *msg.review)
		}
		d.reviews = append([]api.Review{*msg.review}, d.reviews...)
		d.toasts.Publish("Review submitted successfully!", notify.LevelSuccess)
		return d, nil

	case tea.KeyMsg:
		if d.form != nil {
			if msg.String() == "esc" {
				d.form = nil
				return d, nil
			}
			return d.updateForm(msg)
		}
		return d.handleKey(msg)

	default:
		if d.form != nil {
			return d.updateForm(msg)
		}
	}
	return d, nil
}

// submitFailureMessage prefers the backend's own message when it sent one.
func submitFailureMessage(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return "Failed to submit review. Please try again."
}

func (d *Detail) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "b", "esc":
		return d, func() tea.Msg { return BackMsg{} }
	case "n", "right":
		if d.page < d.pagination.TotalPages {
			d.page++
			return d, d.loadReviews()
		}
	case "p", "left":
		if d.page > 1 {
			d.page--
			return d, d.loadReviews()
		}
	case "r":
		d.loading = true
		d.err = nil
		return d, tea.Batch(d.loadBook(), d.loadReviews())
	case "w":
		if d.submitting {
			return d, nil
		}
		if !d.sessions.IsAuthenticated() {
			d.toasts.Publish("Please login to write a review", notify.LevelWarning)
			return d, nil
		}
		d.openReviewForm()
		return d, d.form.Init()
	}
	return d, nil
}

var ratingOptions = []huh.Option[int]{
	huh.NewOption("Choose a rating", 0),
	huh.NewOption(widgets.Stars(1)+" 1 - Poor", 1),
	huh.NewOption(widgets.Stars(2)+" 2 - Fair", 2),
	huh.NewOption(widgets.Stars(3)+" 3 - Good", 3),
	huh.NewOption(widgets.Stars(4)+" 4 - Very Good", 4),
	huh.NewOption(widgets.Stars(5)+" 5 - Excellent", 5),
}

func (d *Detail) openReviewForm() {
	d.rating = 0
	d.content = ""

	d.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Rating").
				Options(ratingOptions...).
				Value(&d.rating).
				Validate(func(r int) error {
					if r < 1 {
						return fmt.Errorf("please select a rating")
					}
					return nil
				}),
			huh.NewText().
				Title("Your review").
				Placeholder("What did you think of this book?").
				Lines(descriptionHeight).
				Value(&d.content).
				Validate(func(s string) error {
					if len(strings.TrimSpace(s)) < minReviewLength {
						return fmt.Errorf("review must be at least %d characters", minReviewLength)
					}
					return nil
				}),
		).Title("Write a Review"),
	).WithTheme(styles.FormTheme())
}

func (d *Detail) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := d.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		d.form = f
	}

	if d.form.State == huh.StateCompleted {
		rating, content := d.rating, d.content
		d.form = nil

		// Validation gate: nothing goes on the wire for an invalid review.
		if problem := validateReview(rating, content); problem != "" {
			d.toasts.Publish(problem, notify.LevelError)
			return d, nil
		}

		d.submitting = true
		return d, d.submitReview(rating, content)
	}
	return d, cmd
}

func (d *Detail) submitReview(rating int, content string) tea.Cmd {
	input := api.NewReview{
		BookID:  d.bookID,
		Rating:  rating,
		Content: strings.TrimSpace(content),
	}
	return func() tea.Msg {
		review, err := d.client.AddReview(context.Background(), input)
		return reviewSubmittedMsg{review: review, err: err}
	}
}

// View implements tea.Model
func (d *Detail) View() string {
	if d.form != nil {
		return d.form.View()
	}
	if d.loading {
		return styles.Subtitle.Render("Loading book...")
	}
	if d.err != nil {
		return styles.StatusCritical.Render("Error: " + d.err.Error())
	}
	if d.book == nil {
		return styles.Help.Render("Book not found.")
	}

	var sb strings.Builder

	sb.WriteString(styles.Title.Render(icons.Book.String() + " " + d.book.Title))
	sb.WriteString("\n")
	sb.WriteString(styles.Subtitle.Render("by " + d.book.Author))
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("%s (%d reviews)\n", widgets.AverageStars(d.book.AverageRating), d.book.ReviewCount))
	if len(d.book.Genre) > 0 {
		sb.WriteString(styles.Help.Render(strings.Join(d.book.Genre, ", ")))
		sb.WriteString("\n")
	}
	if d.book.Publisher != "" || d.book.PublicationYear > 0 {
		meta := d.book.Publisher
		if d.book.PublicationYear > 0 {
			if meta != "" {
				meta += ", "
			}
			meta += fmt.Sprintf("%d", d.book.PublicationYear)
		}
		sb.WriteString(styles.Help.Render(meta))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(d.book.Description)
	sb.WriteString("\n\n")

	sb.WriteString(styles.ValueStyle.Render(icons.Review.String() + " Reviews"))
	sb.WriteString("\n")
	if d.submitting {
		sb.WriteString(styles.Subtitle.Render("Submitting review..."))
		sb.WriteString("\n")
	}
	if len(d.reviews) == 0 {
		sb.WriteString(styles.Help.Render("No reviews yet. Be the first to review this book!"))
		sb.WriteString("\n")
	}
	for _, review := range d.reviews {
		sb.WriteString(fmt.Sprintf("%s %s\n", widgets.Stars(review.Rating), styles.ValueStyle.Render(review.UserName)))
		sb.WriteString(review.Content)
		sb.WriteString("\n\n")
	}

	if d.pagination.TotalPages > 1 {
		sb.WriteString(styles.Help.Render(fmt.Sprintf("Reviews page %d of %d",
			d.pagination.CurrentPage, d.pagination.TotalPages)))
	}

	return sb.String()
}
