// ABOUTME: Paginated book catalog screen with title/author/genre filters
// ABOUTME: Filter changes reset pagination to the first page

package books

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/bookhaven/bookhaven-cli/internal/api"
	"github.com/bookhaven/bookhaven-cli/internal/tui/icons"
	"github.com/bookhaven/bookhaven-cli/internal/tui/styles"
	"github.com/bookhaven/bookhaven-cli/internal/tui/widgets"
)

const pageSize = 10

// OpenBookMsg is sent when the user selects a book to view.
type OpenBookMsg struct {
	ID string
}

// loadedMsg is sent when a catalog page has been fetched
type loadedMsg struct {
	page *api.BookPage
	err  error
}

var genreOptions = []huh.Option[string]{
	huh.NewOption("All Genres", ""),
	huh.NewOption("Fiction", "fiction"),
	huh.NewOption("Non-Fiction", "non-fiction"),
	huh.NewOption("Science Fiction", "science-fiction"),
	huh.NewOption("Fantasy", "fantasy"),
	huh.NewOption("Mystery", "mystery"),
	huh.NewOption("Thriller", "thriller"),
	huh.NewOption("Romance", "romance"),
	huh.NewOption("Biography", "biography"),
}

// Books is the catalog screen model.
type Books struct {
	client *api.Client

	books      []api.Book
	pagination api.Pagination
	page       int
	filters    api.BookFilters
	loading    bool
	err        error
	cursor     int
	width      int
	sp         spinner.Model

	// Filter form state; non-nil while the filter form is open.
	form        *huh.Form
	titleInput  string
	authorInput string
	genreInput  string
}

// New creates the catalog screen.
func New(client *api.Client) *Books {
	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(styles.Primary)),
	)
	return &Books{client: client, page: 1, loading: true, sp: sp}
}

// Init implements tea.Model
func (b *Books) Init() tea.Cmd {
	return tea.Batch(b.load(), b.sp.Tick)
}

func (b *Books) load() tea.Cmd {
	page, filters := b.page, b.filters
	return func() tea.Msg {
		result, err := b.client.ListBooks(context.Background(), page, pageSize, filters)
		return loadedMsg{page: result, err: err}
	}
}

// FormActive reports whether the filter form is capturing keyboard input.
func (b *Books) FormActive() bool {
	return b.form != nil
}

// Update implements tea.Model
func (b *Books) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width = msg.Width
		if b.form != nil {
			return b.updateForm(msg)
		}
		return b, nil

	case loadedMsg:
		b.loading = false
		b.err = msg.err
		if msg.page != nil {
			b.books = msg.page.Data
			b.pagination = msg.page.Pagination
		}
		b.cursor = 0
		return b, nil

	case tea.KeyMsg:
		if b.form != nil {
			if msg.String() == "esc" {
				b.form = nil
				return b, nil
			}
			return b.updateForm(msg)
		}
		return b.handleKey(msg)

	case spinner.TickMsg:
		if b.loading {
			var cmd tea.Cmd
			b.sp, cmd = b.sp.Update(msg)
			return b, cmd
		}
		return b, nil

	default:
		if b.form != nil {
			return b.updateForm(msg)
		}
	}
	return b, nil
}

func (b *Books) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if b.cursor > 0 {
			b.cursor--
		}
	case "down", "j":
		if b.cursor < len(b.books)-1 {
			b.cursor++
		}
	case "enter":
		if b.cursor < len(b.books) {
			id := b.books[b.cursor].ID
			return b, func() tea.Msg { return OpenBookMsg{ID: id} }
		}
	case "n", "right":
		if b.page < b.pagination.TotalPages {
			b.page++
			b.loading = true
			return b, tea.Batch(b.load(), b.sp.Tick)
		}
	case "p", "left":
		if b.page > 1 {
			b.page--
			b.loading = true
			return b, tea.Batch(b.load(), b.sp.Tick)
		}
	case "f", "/":
		b.openFilterForm()
		return b, b.form.Init()
	case "c":
		if b.filters != (api.BookFilters{}) {
			b.filters = api.BookFilters{}
			b.page = 1
			b.loading = true
			return b, tea.Batch(b.load(), b.sp.Tick)
		}
	case "r":
		b.loading = true
		return b, tea.Batch(b.load(), b.sp.Tick)
	}
	return b, nil
}

func (b *Books) openFilterForm() {
	b.titleInput = b.filters.Title
	b.authorInput = b.filters.Author
	b.genreInput = b.filters.Genre

	b.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Placeholder("Search by title").
				Value(&b.titleInput),
			huh.NewInput().
				Title("Author").
				Placeholder("Search by author").
				Value(&b.authorInput),
			huh.NewSelect[string]().
				Title("Genre").
				Options(genreOptions...).
				Value(&b.genreInput),
		).Title("Filter Books").
			Description("Narrow the catalog; leave fields empty to match everything"),
	).WithTheme(styles.FormTheme())
}

func (b *Books) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := b.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		b.form = f
	}

	if b.form.State == huh.StateCompleted {
		b.filters = api.BookFilters{
			Title:  strings.TrimSpace(b.titleInput),
			Author: strings.TrimSpace(b.authorInput),
			Genre:  b.genreInput,
		}
		b.form = nil
		// New filters always restart from the first page.
		b.page = 1
		b.loading = true
		return b, tea.Batch(b.load(), b.sp.Tick)
	}
	return b, cmd
}

// View implements tea.Model
func (b *Books) View() string {
	if b.form != nil {
		return b.form.View()
	}
	if b.loading {
		return b.sp.View() + styles.Subtitle.Render("Loading books...")
	}
	if b.err != nil {
		return styles.StatusCritical.Render("Error: " + b.err.Error())
	}

	var sb strings.Builder

	sb.WriteString(styles.Title.Render(icons.Books.String() + " Browse Books"))
	sb.WriteString("\n")
	if desc := b.describeFilters(); desc != "" {
		sb.WriteString(styles.Subtitle.Render(desc))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	if len(b.books) == 0 {
		sb.WriteString(styles.Help.Render("No books match your filters."))
		return sb.String()
	}

	for i, book := range b.books {
		line := fmt.Sprintf("%s by %s  %s (%d)",
			book.Title, book.Author, widgets.AverageStars(book.AverageRating), book.ReviewCount)
		if i == b.cursor {
			sb.WriteString(styles.Selected.Render("> " + line))
		} else {
			sb.WriteString("  " + line)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(styles.Help.Render(fmt.Sprintf("Page %d of %d (%d books)",
		b.pagination.CurrentPage, b.pagination.TotalPages, b.pagination.TotalCount)))

	return sb.String()
}

func (b *Books) describeFilters() string {
	var parts []string
	if b.filters.Title != "" {
		parts = append(parts, "title: "+b.filters.Title)
	}
	if b.filters.Author != "" {
		parts = append(parts, "author: "+b.filters.Author)
	}
	if b.filters.Genre != "" {
		parts = append(parts, "genre: "+b.filters.Genre)
	}
	if len(parts) == 0 {
		return ""
	}
	return icons.Search.String() + " " + strings.Join(parts, ", ")
}
