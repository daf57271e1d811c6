// ABOUTME: Admin-only screen for adding a book to the catalog
// ABOUTME: Validates required fields and at least one genre before submitting

package addbook

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/bookhaven/bookhaven-cli/internal/api"
	"github.com/bookhaven/bookhaven-cli/internal/notify"
	"github.com/bookhaven/bookhaven-cli/internal/tui/icons"
	"github.com/bookhaven/bookhaven-cli/internal/tui/styles"
)

// BookAddedMsg is sent when the book has been created.
type BookAddedMsg struct {
	ID string
}

// CancelledMsg is sent when the user backs out of the form.
type CancelledMsg struct{}

// doneMsg is sent when the create call completes
type doneMsg struct {
	book *api.Book
	err  error
}

var genreChoices = []huh.Option[string]{
	huh.NewOption("Fiction", "fiction"),
	huh.NewOption("Non-Fiction", "non-fiction"),
	huh.NewOption("Mystery", "mystery"),
	huh.NewOption("Thriller", "thriller"),
	huh.NewOption("Romance", "romance"),
	huh.NewOption("Science Fiction", "science fiction"),
	huh.NewOption("Fantasy", "fantasy"),
	huh.NewOption("Biography", "biography"),
	huh.NewOption("History", "history"),
	huh.NewOption("Self-Help", "self-help"),
}

// AddBook is the add-book screen model.
type AddBook struct {
	client *api.Client
	toasts *notify.Service

	form       *huh.Form
	title      string
	author     string
	desc       string
	coverImage string
	isbn       string
	year       string
	publisher  string
	genres     []string
	submitting bool
	width      int
}

// New creates the add-book screen.
func New(client *api.Client, toasts *notify.Service) *AddBook {
	a := &AddBook{
		client: client,
		toasts: toasts,
		year:   strconv.Itoa(time.Now().Year()),
	}
	a.form = a.newForm()
	return a
}

func (a *AddBook) newForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title *").
				Value(&a.title).
				Validate(required("title")),
			huh.NewInput().
				Title("Author *").
				Value(&a.author).
				Validate(required("author")),
			huh.NewText().
				Title("Description *").
				Placeholder("Enter book description").
				Lines(6).
				Value(&a.desc).
				Validate(required("description")),
		).Title(icons.Plus.String() + " Add New Book"),
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Genres *").
				Description("Select at least one genre").
				Options(genreChoices...).
				Value(&a.genres).
				Validate(func(selected []string) error {
					if len(selected) == 0 {
						return fmt.Errorf("please select at least one genre")
					}
					return nil
				}),
			huh.NewInput().
				Title("Cover image URL").
				Value(&a.coverImage),
			huh.NewInput().
				Title("ISBN").
				Value(&a.isbn),
			huh.NewInput().
				Title("Publication year").
				CharLimit(4).
				Value(&a.year).
				Validate(func(s string) error {
					if s == "" {
						return nil
					}
					if _, err := strconv.Atoi(s); err != nil {
						return fmt.Errorf("year must be a number")
					}
					return nil
				}),
			huh.NewInput().
				Title("Publisher").
				Value(&a.publisher),
		).Title("Details"),
	).WithTheme(styles.FormTheme())
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

// Init implements tea.Model
func (a *AddBook) Init() tea.Cmd {
	return a.form.Init()
}

// Update implements tea.Model
func (a *AddBook) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width

	case doneMsg:
		a.submitting = false
		if msg.err != nil {
			a.toasts.Publish("Failed to add book. Please try again.", notify.LevelError)
			a.form = a.newForm()
			return a, a.form.Init()
		}
		a.toasts.Publish("Book added successfully!", notify.LevelSuccess)
		id := msg.book.ID
		return a, func() tea.Msg { return BookAddedMsg{ID: id} }

	case tea.KeyMsg:
		if msg.String() == "esc" && !a.submitting {
			return a, func() tea.Msg { return CancelledMsg{} }
		}
	}

	if a.submitting {
		return a, nil
	}

	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	if a.form.State == huh.StateCompleted {
		a.submitting = true
		return a, a.submit()
	}
	return a, cmd
}

func (a *AddBook) submit() tea.Cmd {
	year, _ := strconv.Atoi(a.year)
	input := api.NewBook{
		Title:           strings.TrimSpace(a.title),
		Author:          strings.TrimSpace(a.author),
		Description:     strings.TrimSpace(a.desc),
		CoverImage:      strings.TrimSpace(a.coverImage),
		ISBN:            strings.TrimSpace(a.isbn),
		PublicationYear: year,
		Publisher:       strings.TrimSpace(a.publisher),
		Genre:           a.genres,
	}
	return func() tea.Msg {
		book, err := a.client.AddBook(context.Background(), input)
		return doneMsg{book: book, err: err}
	}
}

// View implements tea.Model
func (a *AddBook) View() string {
	if a.submitting {
		return styles.Subtitle.Render("Adding book...")
	}
	return a.form.View()
}
