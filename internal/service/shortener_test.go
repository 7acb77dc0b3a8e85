package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linktracker/internal/ident"
	"linktracker/internal/store"
	"linktracker/internal/types"
)

type scriptedIDs struct {
	codes []string
	n     int
}

func (s *scriptedIDs) NewID() string { return "id" }

func (s *scriptedIDs) TrackingCode(int) string {
	code := s.codes[min(s.n, len(s.codes)-1)]
	s.n++
	return code
}

func newTestShortener(t *testing.T) (*Shortener, *store.Store) {
	t.Helper()
	s := store.New(store.NewMemoryBackend())
	sh := NewShortener(s, ident.Random{}, 8)
	sh.now = func() time.Time { return time.Date(2025, 2, 3, 4, 5, 6, 0, time.UTC) }
	return sh, s
}

func TestFormatURL(t *testing.T) {
	assert.Equal(t, "https://example.com", FormatURL("example.com"))
	assert.Equal(t, "http://example.com", FormatURL("http://example.com"))
	assert.Equal(t, "https://example.com", FormatURL("https://example.com"))
	assert.Equal(t, "HTTPS://example.com", FormatURL("HTTPS://example.com"))
	assert.Equal(t, "https://ftp://example.com", FormatURL("ftp://example.com"))
}

func TestIsValidURL(t *testing.T) {
	assert.True(t, IsValidURL("https://example.com"))
	assert.True(t, IsValidURL("http://example.com/path?q=1"))
	assert.False(t, IsValidURL("not a url"))
	assert.False(t, IsValidURL(FormatURL("not a url")))
	assert.False(t, IsValidURL("https://"))
	assert.False(t, IsValidURL(""))
}

func TestCreateLink(t *testing.T) {
	sh, s := newTestShortener(t)

	link, err := sh.CreateLink(context.Background(), types.CreateLinkRequest{OriginalURL: "example.com", Title: "Test"})

	require.NoError(t, err)
	assert.Equal(t, "https://example.com", link.OriginalURL)
	assert.Equal(t, "Test", link.Title)
	assert.EqualValues(t, 0, link.ClickCount)
	assert.Len(t, link.TrackingCode, 8)
	assert.NotEmpty(t, link.ID)
	assert.Equal(t, time.Date(2025, 2, 3, 4, 5, 6, 0, time.UTC), link.CreatedAt)

	stored, err := s.LinkByCode(context.Background(), link.TrackingCode)
	require.NoError(t, err)
	assert.Equal(t, link, stored)
}

func TestCreateLinkValidation(t *testing.T) {
	sh, s := newTestShortener(t)
	ctx := context.Background()

	_, err := sh.CreateLink(ctx, types.CreateLinkRequest{Title: "no url"})
	assert.ErrorIs(t, err, ErrMissingFields)

	_, err = sh.CreateLink(ctx, types.CreateLinkRequest{OriginalURL: "example.com", Title: "  "})
	assert.ErrorIs(t, err, ErrMissingFields)

	_, err = sh.CreateLink(ctx, types.CreateLinkRequest{OriginalURL: "not a url", Title: "bad"})
	assert.ErrorIs(t, err, ErrInvalidURL)

	_, err = sh.CreateLink(ctx, types.CreateLinkRequest{OriginalURL: "example.com", Title: "bad", CustomCode: "a/b"})
	assert.ErrorIs(t, err, ErrInvalidCode)

	links, err := s.Links(ctx)
	require.NoError(t, err)
	assert.Empty(t, links)
}

func TestCreateLinkCustomCodeCharacters(t *testing.T) {
	sh, _ := newTestShortener(t)
	ctx := context.Background()

	for _, code := range []string{"my.promo", "spring~2025", "a_b-c"} {
		link, err := sh.CreateLink(ctx, types.CreateLinkRequest{OriginalURL: "example.com", Title: code, CustomCode: code})
		require.NoError(t, err, code)
		assert.Equal(t, code, link.TrackingCode)
	}

	for _, code := range []string{"a/b", "with space", "q?x", "percent%20", ".", ".."} {
		_, err := sh.CreateLink(ctx, types.CreateLinkRequest{OriginalURL: "example.com", Title: "bad", CustomCode: code})
		assert.ErrorIs(t, err, ErrInvalidCode, code)
	}
}

func TestCreateLinkCustomCodeConflict(t *testing.T) {
	sh, s := newTestShortener(t)
	ctx := context.Background()

	first, err := sh.CreateLink(ctx, types.CreateLinkRequest{OriginalURL: "example.com", Title: "one", CustomCode: "promo"})
	require.NoError(t, err)
	assert.Equal(t, "promo", first.TrackingCode)

	_, err = sh.CreateLink(ctx, types.CreateLinkRequest{OriginalURL: "example.org", Title: "two", CustomCode: "promo"})
	assert.ErrorIs(t, err, ErrCodeExists)

	links, err := s.Links(ctx)
	require.NoError(t, err)
	assert.Len(t, links, 1)
}

func TestCreateLinkRetriesGeneratedCollision(t *testing.T) {
	s := store.New(store.NewMemoryBackend())
	require.NoError(t, s.AddLink(context.Background(), types.Link{ID: "old", TrackingCode: "TAKEN001"}))
	sh := NewShortener(s, &scriptedIDs{codes: []string{"TAKEN001", "FREE0002"}}, 8)

	link, err := sh.CreateLink(context.Background(), types.CreateLinkRequest{OriginalURL: "example.com", Title: "t"})

	require.NoError(t, err)
	assert.Equal(t, "FREE0002", link.TrackingCode)
}

func TestCreateLinkGivesUpAfterAttempts(t *testing.T) {
	s := store.New(store.NewMemoryBackend())
	require.NoError(t, s.AddLink(context.Background(), types.Link{ID: "old", TrackingCode: "TAKEN001"}))
	sh := NewShortener(s, &scriptedIDs{codes: []string{"TAKEN001"}}, 8)

	_, err := sh.CreateLink(context.Background(), types.CreateLinkRequest{OriginalURL: "example.com", Title: "t"})

	assert.ErrorIs(t, err, ErrCodeSpace)
}

func TestTrackingCodesStayUnique(t *testing.T) {
	sh, s := newTestShortener(t)
	ctx := context.Background()

	for range 200 {
		_, err := sh.CreateLink(ctx, types.CreateLinkRequest{OriginalURL: "example.com", Title: "t"})
		require.NoError(t, err)
	}

	links, err := s.Links(ctx)
	require.NoError(t, err)
	seen := map[string]bool{}
	for _, l := range links {
		require.False(t, seen[l.TrackingCode], "duplicate code %s", l.TrackingCode)
		seen[l.TrackingCode] = true
	}
}

func TestTrackingURL(t *testing.T) {
	assert.Equal(t, "http://localhost:8080/track/abc", TrackingURL("http://localhost:8080/", "abc"))
	assert.Equal(t, "https://t.example/track/abc", TrackingURL("https://t.example", "abc"))
}
