package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strings"
	"time"

	"linktracker/internal/ident"
	"linktracker/internal/store"
	"linktracker/internal/types"
)

const maxCodeAttempts = 5

var (
	ErrMissingFields = errors.New("URL and title are required")
	ErrInvalidURL    = errors.New("invalid URL format")
	ErrInvalidCode   = errors.New("custom code may only contain letters, digits and '-', '_', '.', '~'")
	ErrCodeExists    = store.ErrCodeExists
	ErrCodeSpace     = errors.New("could not generate a free tracking code")
)

var customCodePattern = regexp.MustCompile(`^[A-Za-z0-9._~-]{1,64}$`)

type LinkStore interface {
	AddLink(ctx context.Context, link types.Link) error
	LinkByCode(ctx context.Context, code string) (types.Link, error)
}

type Shortener struct {
	links      LinkStore
	ids        ident.Generator
	codeLength int
	now        func() time.Time
}

func NewShortener(links LinkStore, ids ident.Generator, codeLength int) *Shortener {
	if codeLength <= 0 {
		codeLength = ident.DefaultCodeLength
	}
	return &Shortener{links: links, ids: ids, codeLength: codeLength, now: time.Now}
}

// CreateLink validates req and stores a new link with a zero click count.
// A custom code that is already taken fails with ErrCodeExists; generated
// codes are retried on collision.
func (s *Shortener) CreateLink(ctx context.Context, req types.CreateLinkRequest) (types.Link, error) {
	original := strings.TrimSpace(req.OriginalURL)
	title := strings.TrimSpace(req.Title)
	if original == "" || title == "" {
		return types.Link{}, ErrMissingFields
	}

	formatted := FormatURL(original)
	if !IsValidURL(formatted) {
		return types.Link{}, ErrInvalidURL
	}

	link := types.Link{
		ID:          s.ids.NewID(),
		OriginalURL: formatted,
		Title:       title,
		Description: req.Description,
		CreatedAt:   s.now().UTC(),
	}

	if req.CustomCode != "" {
		// "." and ".." would be cleaned out of the /track/ path.
		if !customCodePattern.MatchString(req.CustomCode) || strings.Trim(req.CustomCode, ".") == "" {
			return types.Link{}, ErrInvalidCode
		}
		if _, err := s.links.LinkByCode(ctx, req.CustomCode); err == nil {
			return types.Link{}, ErrCodeExists
		} else if !errors.Is(err, store.ErrLinkNotFound) {
			return types.Link{}, err
		}
		link.TrackingCode = req.CustomCode
		if err := s.links.AddLink(ctx, link); err != nil {
			return types.Link{}, err
		}
		return link, nil
	}

	for range maxCodeAttempts {
		link.TrackingCode = s.ids.TrackingCode(s.codeLength)
		err := s.links.AddLink(ctx, link)
		if errors.Is(err, store.ErrCodeExists) {
			slog.Warn("tracking code collision, retrying", "code", link.TrackingCode)
			continue
		}
		if err != nil {
			return types.Link{}, err
		}
		return link, nil
	}
	return types.Link{}, fmt.Errorf("%w after %d attempts", ErrCodeSpace, maxCodeAttempts)
}

// FormatURL prefixes https:// unless the URL already has an http(s) scheme.
func FormatURL(u string) string {
	lower := strings.ToLower(u)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return u
	}
	return "https://" + u
}

func IsValidURL(u string) bool {
	parsed, err := url.ParseRequestURI(u)
	if err != nil {
		return false
	}
	return parsed.Scheme != "" && parsed.Host != ""
}

func TrackingURL(base, code string) string {
	return strings.TrimRight(base, "/") + "/track/" + code
}
