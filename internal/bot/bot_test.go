package bot

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linktracker/internal/service"
	"linktracker/internal/types"
)

func TestParseNewCommand(t *testing.T) {
	req, err := parseNewCommand("  example.com   Spring   campaign ")
	require.NoError(t, err)
	assert.Equal(t, types.CreateLinkRequest{OriginalURL: "example.com", Title: "Spring campaign"}, req)

	_, err = parseNewCommand("example.com")
	assert.ErrorIs(t, err, ErrUsage)

	_, err = parseNewCommand("")
	assert.ErrorIs(t, err, ErrUsage)
}

func TestCreateErrorText(t *testing.T) {
	assert.Equal(t, "That link is not valid.", createErrorText(service.ErrInvalidURL))
	assert.Equal(t, "That link is not valid.", createErrorText(fmt.Errorf("wrap: %w", service.ErrMissingFields)))
	assert.Equal(t, "Could not create the link, please try again.", createErrorText(service.ErrCodeSpace))
}

func TestFormatLinks(t *testing.T) {
	assert.Equal(t, "No links yet. Create one with /new.", formatLinks(nil, "http://x"))

	got := formatLinks([]types.Link{
		{Title: "Docs", TrackingCode: "abc", ClickCount: 3},
		{Title: "Blog", TrackingCode: "def"},
	}, "http://x")
	assert.Equal(t, "Docs - http://x/track/abc (3 clicks)\nBlog - http://x/track/def (0 clicks)", got)
}

func TestFormatLinksTruncates(t *testing.T) {
	links := make([]types.Link, maxListedLink+5)
	for i := range links {
		links[i] = types.Link{Title: fmt.Sprint(i), TrackingCode: fmt.Sprint(i)}
	}

	assert.Contains(t, formatLinks(links, "http://x"), "...and 5 more")
}

func TestFormatStats(t *testing.T) {
	got := formatStats(types.DashboardStats{
		TotalLinks:     2,
		TotalClicks:    5,
		UniqueVisitors: 3,
		TopCountries:   []types.CountryCount{{Country: "Ukraine", Count: 4}, {Country: "Poland", Count: 1}},
	})

	assert.Equal(t, "Links: 2\nClicks: 5\nUnique visitors: 3\nTop countries:\n  Ukraine: 4\n  Poland: 1", got)
	assert.Equal(t, "Links: 0\nClicks: 0\nUnique visitors: 0", formatStats(types.DashboardStats{}))
}
