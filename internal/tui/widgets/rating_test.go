// ABOUTME: Tests for the star rating widgets
// ABOUTME: Strips styling to assert on the rendered star counts

package widgets

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bookhaven/bookhaven-cli/internal/tui/icons"
)

func TestStarsCounts(t *testing.T) {
	view := Stars(3)
	assert.Equal(t, 3, strings.Count(view, icons.Star.String()))
	assert.Equal(t, 2, strings.Count(view, icons.StarOff.String()))
}

func TestStarsClamped(t *testing.T) {
	assert.Equal(t, MaxStars, strings.Count(Stars(9), icons.Star.String()))
	assert.Equal(t, MaxStars, strings.Count(Stars(-2), icons.StarOff.String()))
}

func TestAverageStarsRoundsAndShowsValue(t *testing.T) {
	view := AverageStars(3.33)
	assert.Contains(t, view, "3.3")
	assert.Equal(t, 3, strings.Count(view, icons.Star.String()))
}

func TestStarPickerHighlightsSelection(t *testing.T) {
	view := StarPicker(2)
	assert.Equal(t, 2, strings.Count(view, icons.Star.String()))
	assert.Equal(t, 3, strings.Count(view, icons.StarOff.String()))
}
