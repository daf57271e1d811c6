// ABOUTME: Star rating widgets for displaying and selecting ratings
// ABOUTME: Renders filled/empty stars with an optional numeric suffix

package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bookhaven/bookhaven-cli/internal/tui/icons"
	"github.com/bookhaven/bookhaven-cli/internal/tui/styles"
)

// MaxStars is the rating scale used across the app.
const MaxStars = 5

// Stars renders a whole-star rating like "★★★★☆".
func Stars(rating int) string {
	if rating < 0 {
		rating = 0
	}
	if rating > MaxStars {
		rating = MaxStars
	}

	var sb strings.Builder
	for i := 1; i <= MaxStars; i++ {
		if i <= rating {
			sb.WriteString(icons.Star.String())
		} else {
			sb.WriteString(icons.StarOff.String())
		}
	}
	return styles.StarStyle.Render(sb.String())
}

// AverageStars renders a fractional average rating with its numeric value,
// e.g. "★★★☆☆ 3.3". Stars are filled by rounding the average.
func AverageStars(average float64) string {
	if average < 0 {
		average = 0
	}
	if average > MaxStars {
		average = MaxStars
	}
	rounded := int(average + 0.5)
	return fmt.Sprintf("%s %.1f", Stars(rounded), average)
}

// StarPicker renders a selectable star row for the review form, highlighting
// the currently chosen rating.
func StarPicker(selected int) string {
	var parts []string
	for i := 1; i <= MaxStars; i++ {
		star := icons.StarOff.String()
		style := lipgloss.NewStyle().Foreground(styles.Muted)
		if i <= selected {
			star = icons.Star.String()
			style = styles.StarStyle
		}
		parts = append(parts, style.Render(star))
	}
	return strings.Join(parts, " ")
}
