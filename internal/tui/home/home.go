// ABOUTME: Home screen showing featured books and recent arrivals
// ABOUTME: Loads both sections asynchronously and supports opening a book

package home

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bookhaven/bookhaven-cli/internal/api"
	"github.com/bookhaven/bookhaven-cli/internal/tui/icons"
	"github.com/bookhaven/bookhaven-cli/internal/tui/styles"
	"github.com/bookhaven/bookhaven-cli/internal/tui/widgets"
)

const recentLimit = 5

// OpenBookMsg is sent when the user selects a book to view.
type OpenBookMsg struct {
	ID string
}

// loadedMsg is sent when both home sections have been fetched
type loadedMsg struct {
	featured []api.Book
	recent   []api.Book
	err      error
}

// Home is the landing screen model.
type Home struct {
	client   *api.Client
	featured []api.Book
	recent   []api.Book
	loading  bool
	err      error
	cursor   int
	width    int
}

// New creates the home screen.
func New(client *api.Client) *Home {
	return &Home{client: client, loading: true}
}

// Init implements tea.Model
func (h *Home) Init() tea.Cmd {
	return h.load()
}

func (h *Home) load() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		featured, err := h.client.FeaturedBooks(ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		recent, err := h.client.ListBooks(ctx, 1, recentLimit, api.BookFilters{})
		if err != nil {
			return loadedMsg{err: err}
		}
		return loadedMsg{featured: featured, recent: recent.Data}
	}
}

// Update implements tea.Model
func (h *Home) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h.width = msg.Width
		return h, nil

	case loadedMsg:
		h.loading = false
		h.err = msg.err
		h.featured = msg.featured
		h.recent = msg.recent
		h.cursor = 0
		return h, nil

	case tea.KeyMsg:
		return h.handleKey(msg)
	}
	return h, nil
}

func (h *Home) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	total := len(h.featured) + len(h.recent)

	switch msg.String() {
	case "up", "k":
		if h.cursor > 0 {
			h.cursor--
		}
	case "down", "j":
		if h.cursor < total-1 {
			h.cursor++
		}
	case "r":
		h.loading = true
		h.err = nil
		return h, h.load()
	case "enter":
		if book := h.selectedBook(); book != nil {
			id := book.ID
			return h, func() tea.Msg { return OpenBookMsg{ID: id} }
		}
	}
	return h, nil
}

// selectedBook resolves the cursor across the featured and recent sections.
func (h *Home) selectedBook() *api.Book {
	if h.cursor < len(h.featured) {
		return &h.featured[h.cursor]
	}
	idx := h.cursor - len(h.featured)
	if idx < len(h.recent) {
		return &h.recent[idx]
	}
	return nil
}

// View implements tea.Model
func (h *Home) View() string {
	if h.loading {
		return styles.Subtitle.Render("Loading books...")
	}
	if h.err != nil {
		return styles.StatusCritical.Render("Error: " + h.err.Error())
	}

	var sb strings.Builder

	sb.WriteString(styles.Title.Render(icons.App.String() + " Welcome to BookHaven"))
	sb.WriteString("\n")
	sb.WriteString(styles.Subtitle.Render("Discover your next favorite book"))
	sb.WriteString("\n\n")

	sb.WriteString(styles.ValueStyle.Render(icons.Star.String() + " Featured Books"))
	sb.WriteString("\n")
	if len(h.featured) == 0 {
		sb.WriteString(styles.Help.Render("No featured books right now."))
		sb.WriteString("\n")
	}
	for i, book := range h.featured {
		sb.WriteString(h.renderRow(book, i == h.cursor))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(styles.ValueStyle.Render(icons.Books.String() + " Recently Added"))
	sb.WriteString("\n")
	if len(h.recent) == 0 {
		sb.WriteString(styles.Help.Render("No books yet."))
		sb.WriteString("\n")
	}
	for i, book := range h.recent {
		sb.WriteString(h.renderRow(book, len(h.featured)+i == h.cursor))
		sb.WriteString("\n")
	}

	return sb.String()
}

func (h *Home) renderRow(book api.Book, selected bool) string {
	marker := "  "
	line := fmt.Sprintf("%s by %s  %s (%d)",
		book.Title, book.Author, widgets.AverageStars(book.AverageRating), book.ReviewCount)
	if selected {
		return styles.Selected.Render("> " + line)
	}
	return marker + line
}
