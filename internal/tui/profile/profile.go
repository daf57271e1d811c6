// ABOUTME: Profile screen with details and my-reviews tabs
// ABOUTME: Supports editing profile fields and deleting own reviews

package profile

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/bookhaven/bookhaven-cli/internal/api"
	"github.com/bookhaven/bookhaven-cli/internal/notify"
	"github.com/bookhaven/bookhaven-cli/internal/tui/icons"
	"github.com/bookhaven/bookhaven-cli/internal/tui/styles"
	"github.com/bookhaven/bookhaven-cli/internal/tui/widgets"
)

const reviewsPerPage = 10

// tabRecord pins the tab order explicitly; rendering and key handling both
// iterate this slice rather than any map.
type tabRecord struct {
	key   string
	label string
}

var tabs = []tabRecord{
	{key: "details", label: "Profile"},
	{key: "reviews", label: "My Reviews"},
}

// BackMsg is sent when the user leaves the profile screen.
type BackMsg struct{}

// profileLoadedMsg is sent when the profile has been fetched
type profileLoadedMsg struct {
	profile *api.Profile
	err     error
}

// reviewsLoadedMsg is sent when the user's reviews have been fetched
type reviewsLoadedMsg struct {
	page *api.ReviewPage
	err  error
}

// profileSavedMsg is sent when a profile update completes
type profileSavedMsg struct {
	profile *api.Profile
	err     error
}

// reviewDeletedMsg is sent when a review deletion completes
type reviewDeletedMsg struct {
	id  string
	err error
}

// Profile is the profile screen model.
type Profile struct {
	client *api.Client
	toasts *notify.Service

	profile    *api.Profile
	reviews    []api.Review
	pagination api.Pagination
	page       int
	activeTab  int
	cursor     int
	loading    bool
	err        error
	width      int

	// Pending delete confirmation; empty when none.
	pendingDelete string

	// Edit form state; non-nil while the form is open.
	form        *huh.Form
	nameInput   string
	bioInput    string
	genresInput string
	saving      bool
}

// New creates the profile screen.
func New(client *api.Client, toasts *notify.Service) *Profile {
	return &Profile{client: client, toasts: toasts, page: 1, loading: true}
}

// Init implements tea.Model
func (p *Profile) Init() tea.Cmd {
	return tea.Batch(p.loadProfile(), p.loadReviews())
}

func (p *Profile) loadProfile() tea.Cmd {
	return func() tea.Msg {
		profile, err := p.client.GetProfile(context.Background())
		return profileLoadedMsg{profile: profile, err: err}
	}
}

func (p *Profile) loadReviews() tea.Cmd {
	page := p.page
	return func() tea.Msg {
		result, err := p.client.MyReviews(context.Background(), page, reviewsPerPage)
		return reviewsLoadedMsg{page: result, err: err}
	}
}

// FormActive reports whether the edit form is capturing keyboard input.
func (p *Profile) FormActive() bool {
	return p.form != nil
}

// Update implements tea.Model
func (p *Profile) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		if p.form != nil {
			return p.updateForm(msg)
		}
		return p, nil

	case profileLoadedMsg:
		p.loading = false
		if msg.err != nil {
			p.err = msg.err
			return p, nil
		}
		p.profile = msg.profile
		return p, nil

	case reviewsLoadedMsg:
		if msg.err != nil {
			p.err = msg.err
			return p, nil
		}
		p.reviews = msg.page.Data
		p.pagination = msg.page.Pagination
		p.cursor = 0
		return p, nil

	case profileSavedMsg:
		p.saving = false
		if msg.err != nil {
			p.toasts.Publish("Failed to update profile: "+msg.err.Error(), notify.LevelError)
			return p, nil
		}
		p.profile = msg.profile
		p.toasts.Publish("Profile updated successfully!", notify.LevelSuccess)
		return p, nil

	case reviewDeletedMsg:
		if msg.err != nil {
			p.toasts.Publish("Failed to delete review: "+msg.err.Error(), notify.LevelError)
			return p, nil
		}
		p.removeReview(msg.id)
		p.toasts.Publish("Review deleted", notify.LevelSuccess)
		return p, nil

	case tea.KeyMsg:
		if p.form != nil {
			if msg.String() == "esc" {
				p.form = nil
				return p, nil
			}
			return p.updateForm(msg)
		}
		return p.handleKey(msg)

	default:
		if p.form != nil {
			return p.updateForm(msg)
		}
	}
	return p, nil
}

func (p *Profile) removeReview(id string) {
	kept := p.reviews[:0]
	for _, review := range p.reviews {
		if review.ID != id {
			kept = append(kept, review)
		}
	}
	p.reviews = kept
	if p.cursor >= len(p.reviews) && p.cursor > 0 {
		p.cursor--
	}
	if p.profile != nil && p.profile.ReviewCount > 0 {
		p.profile.ReviewCount--
	}
}

func (p *Profile) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// A pending delete only understands confirm/abort.
	if p.pendingDelete != "" {
		switch msg.String() {
		case "y":
			id := p.pendingDelete
			p.pendingDelete = ""
			return p, func() tea.Msg {
				return reviewDeletedMsg{id: id, err: p.client.DeleteReview(context.Background(), id)}
			}
		default:
			p.pendingDelete = ""
		}
		return p, nil
	}

	switch msg.String() {
	case "tab", "right", "l":
		p.activeTab = (p.activeTab + 1) % len(tabs)
	case "shift+tab", "left", "h":
		p.activeTab = (p.activeTab + len(tabs) - 1) % len(tabs)
	case "b", "esc":
		return p, func() tea.Msg { return BackMsg{} }
	case "r":
		p.loading = true
		p.err = nil
		return p, tea.Batch(p.loadProfile(), p.loadReviews())
	}

	switch tabs[p.activeTab].key {
	case "details":
		if msg.String() == "e" && p.profile != nil && !p.saving {
			p.openEditForm()
			return p, p.form.Init()
		}
	case "reviews":
		switch msg.String() {
		case "up", "k":
			if p.cursor > 0 {
				p.cursor--
			}
		case "down", "j":
			if p.cursor < len(p.reviews)-1 {
				p.cursor++
			}
		case "n":
			if p.page < p.pagination.TotalPages {
				p.page++
				return p, p.loadReviews()
			}
		case "p":
			if p.page > 1 {
				p.page--
				return p, p.loadReviews()
			}
		case "d":
			if p.cursor < len(p.reviews) {
				p.pendingDelete = p.reviews[p.cursor].ID
			}
		}
	}
	return p, nil
}

func (p *Profile) openEditForm() {
	p.nameInput = p.profile.Name
	p.bioInput = p.profile.Bio
	p.genresInput = strings.Join(p.profile.FavoriteGenres, ", ")

	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&p.nameInput).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}),
			huh.NewText().
				Title("Bio").
				Placeholder("Tell other readers about yourself").
				Lines(4).
				Value(&p.bioInput),
			huh.NewInput().
				Title("Favorite genres").
				Description("Comma-separated, e.g. fantasy, mystery").
				Value(&p.genresInput),
		).Title("Edit Profile"),
	).WithTheme(styles.FormTheme())
}

func (p *Profile) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := p.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		p.form = f
	}

	if p.form.State == huh.StateCompleted {
		update := api.ProfileUpdate{
			Name:           strings.TrimSpace(p.nameInput),
			Bio:            strings.TrimSpace(p.bioInput),
			FavoriteGenres: splitGenres(p.genresInput),
		}
		p.form = nil
		p.saving = true
		return p, func() tea.Msg {
			profile, err := p.client.UpdateProfile(context.Background(), update)
			return profileSavedMsg{profile: profile, err: err}
		}
	}
	return p, cmd
}

// splitGenres parses the comma-separated genre input, dropping empties.
func splitGenres(s string) []string {
	var genres []string
	for _, part := range strings.Split(s, ",") {
		if g := strings.TrimSpace(part); g != "" {
			genres = append(genres, g)
		}
	}
	return genres
}

// View implements tea.Model
func (p *Profile) View() string {
	if p.form != nil {
		return p.form.View()
	}
	if p.loading {
		return styles.Subtitle.Render("Loading profile...")
	}
	if p.err != nil {
		return styles.StatusCritical.Render("Error: " + p.err.Error())
	}
	if p.profile == nil {
		return styles.Help.Render("Profile unavailable.")
	}

	var sb strings.Builder
	sb.WriteString(p.renderTabs())
	sb.WriteString("\n\n")

	switch tabs[p.activeTab].key {
	case "details":
		sb.WriteString(p.renderDetails())
	case "reviews":
		sb.WriteString(p.renderReviews())
	}
	return sb.String()
}

func (p *Profile) renderTabs() string {
	var parts []string
	for i, tab := range tabs {
		if i == p.activeTab {
			parts = append(parts, styles.Selected.Render("[ "+tab.label+" ]"))
		} else {
			parts = append(parts, styles.Help.Render("  "+tab.label+"  "))
		}
	}
	return strings.Join(parts, " ")
}

func (p *Profile) renderDetails() string {
	var sb strings.Builder

	icon := icons.User.String()
	if p.profile.Role == api.RoleAdmin {
		icon = icons.Admin.String()
	}
	sb.WriteString(styles.Title.Render(icon + " " + p.profile.Name))
	sb.WriteString("\n")
	sb.WriteString(styles.Subtitle.Render(p.profile.Email))
	sb.WriteString("\n\n")

	if p.saving {
		sb.WriteString(styles.Subtitle.Render("Saving..."))
		sb.WriteString("\n")
	}

	sb.WriteString(styles.KeyStyle.Render("Role: "))
	sb.WriteString(p.profile.Role)
	sb.WriteString("\n")
	sb.WriteString(styles.KeyStyle.Render("Reviews: "))
	sb.WriteString(fmt.Sprintf("%d", p.profile.ReviewCount))
	sb.WriteString("\n")
	if p.profile.Bio != "" {
		sb.WriteString(styles.KeyStyle.Render("Bio: "))
		sb.WriteString(p.profile.Bio)
		sb.WriteString("\n")
	}
	if len(p.profile.FavoriteGenres) > 0 {
		sb.WriteString(styles.KeyStyle.Render("Favorite genres: "))
		sb.WriteString(strings.Join(p.profile.FavoriteGenres, ", "))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(styles.Help.Render("e Edit profile"))
	return sb.String()
}

func (p *Profile) renderReviews() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(icons.Review.String() + " My Reviews"))
	sb.WriteString("\n")

	if len(p.reviews) == 0 {
		sb.WriteString(styles.Help.Render("You haven't written any reviews yet."))
		return sb.String()
	}

	for i, review := range p.reviews {
		line := fmt.Sprintf("%s %s", widgets.Stars(review.Rating), review.Content)
		if i == p.cursor {
			if p.pendingDelete == review.ID {
				sb.WriteString(styles.StatusWarning.Render("> Delete this review? y to confirm, any other key to cancel"))
				sb.WriteString("\n")
			}
			sb.WriteString(styles.Selected.Render("> " + line))
		} else {
			sb.WriteString("  " + line)
		}
		sb.WriteString("\n")
	}

	if p.pagination.TotalPages > 1 {
		sb.WriteString("\n")
		sb.WriteString(styles.Help.Render(fmt.Sprintf("Page %d of %d",
			p.pagination.CurrentPage, p.pagination.TotalPages)))
	}
	return sb.String()
}
