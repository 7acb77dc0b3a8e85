package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"

	"linktracker/internal/stats"
	"linktracker/internal/types"
)

const (
	LinksKey     = "tracking_links"
	AnalyticsKey = "tracking_analytics"
)

var (
	ErrLinkNotFound  = errors.New("link not found")
	ErrEntryNotFound = errors.New("analytics entry not found")
	ErrCodeExists    = errors.New("tracking code already exists")
)

// Store owns the link and analytics collections. Every operation reads the
// collection from the backend, applies one change and writes it back while
// holding mu, so operations never interleave within a process.
type Store struct {
	mu      sync.Mutex
	backend Backend
}

func New(backend Backend) *Store {
	return &Store{backend: backend}
}

func (s *Store) AddLink(ctx context.Context, link types.Link) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	links, err := s.links(ctx)
	if err != nil {
		return err
	}
	if slices.ContainsFunc(links, func(l types.Link) bool { return l.TrackingCode == link.TrackingCode }) {
		return ErrCodeExists
	}
	return s.save(ctx, LinksKey, append(links, link))
}

func (s *Store) Links(ctx context.Context) ([]types.Link, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.links(ctx)
}

func (s *Store) LinkByCode(ctx context.Context, code string) (types.Link, error) {
	return s.findLink(ctx, func(l types.Link) bool { return l.TrackingCode == code })
}

func (s *Store) LinkByID(ctx context.Context, id string) (types.Link, error) {
	return s.findLink(ctx, func(l types.Link) bool { return l.ID == id })
}

// UpdateLinkClicks increments the click counter of the link with linkID.
// A missing link is not an error.
func (s *Store) UpdateLinkClicks(ctx context.Context, linkID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	links, err := s.links(ctx)
	if err != nil {
		return err
	}
	i := slices.IndexFunc(links, func(l types.Link) bool { return l.ID == linkID })
	if i == -1 {
		return nil
	}
	links[i].ClickCount++
	return s.save(ctx, LinksKey, links)
}

func (s *Store) AddAnalyticsEntry(ctx context.Context, entry types.AnalyticsEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.analytics(ctx)
	if err != nil {
		return err
	}
	return s.save(ctx, AnalyticsKey, append(entries, entry))
}

func (s *Store) Analytics(ctx context.Context) ([]types.AnalyticsEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.analytics(ctx)
}

func (s *Store) AnalyticsByLinkID(ctx context.Context, linkID string) ([]types.AnalyticsEntry, error) {
	entries, err := s.Analytics(ctx)
	if err != nil {
		return nil, err
	}
	return slices.DeleteFunc(entries, func(e types.AnalyticsEntry) bool { return e.LinkID != linkID }), nil
}

func (s *Store) AnalyticsEntry(ctx context.Context, id string) (types.AnalyticsEntry, error) {
	entries, err := s.Analytics(ctx)
	if err != nil {
		return types.AnalyticsEntry{}, err
	}
	i := slices.IndexFunc(entries, func(e types.AnalyticsEntry) bool { return e.ID == id })
	if i == -1 {
		return types.AnalyticsEntry{}, ErrEntryNotFound
	}
	return entries[i], nil
}

// DeleteAnalyticsEntry removes the first entry with id and reports whether
// anything was removed. The owning link's click count is left as is.
func (s *Store) DeleteAnalyticsEntry(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.analytics(ctx)
	if err != nil {
		return false, err
	}
	i := slices.IndexFunc(entries, func(e types.AnalyticsEntry) bool { return e.ID == id })
	if i == -1 {
		return false, nil
	}
	if err := s.save(ctx, AnalyticsKey, slices.Delete(entries, i, i+1)); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) ClearAllData(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backend.Remove(ctx, LinksKey); err != nil {
		return fmt.Errorf("remove links: %w", err)
	}
	if err := s.backend.Remove(ctx, AnalyticsKey); err != nil {
		return fmt.Errorf("remove analytics: %w", err)
	}
	return nil
}

func (s *Store) Dashboard(ctx context.Context) (types.DashboardStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	links, err := s.links(ctx)
	if err != nil {
		return types.DashboardStats{}, err
	}
	entries, err := s.analytics(ctx)
	if err != nil {
		return types.DashboardStats{}, err
	}
	return stats.Compute(links, entries), nil
}

func (s *Store) findLink(ctx context.Context, match func(types.Link) bool) (types.Link, error) {
	links, err := s.Links(ctx)
	if err != nil {
		return types.Link{}, err
	}
	i := slices.IndexFunc(links, match)
	if i == -1 {
		return types.Link{}, ErrLinkNotFound
	}
	return links[i], nil
}

func (s *Store) links(ctx context.Context) ([]types.Link, error) {
	var links []types.Link
	if err := s.load(ctx, LinksKey, &links); err != nil {
		return nil, err
	}
	if links == nil {
		links = []types.Link{}
	}
	return links, nil
}

func (s *Store) analytics(ctx context.Context) ([]types.AnalyticsEntry, error) {
	var entries []types.AnalyticsEntry
	if err := s.load(ctx, AnalyticsKey, &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []types.AnalyticsEntry{}
	}
	return entries, nil
}

func (s *Store) load(ctx context.Context, key string, dst any) error {
	data, err := s.backend.Load(ctx, key)
	if err != nil {
		return fmt.Errorf("load %s: %w", key, err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func (s *Store) save(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.backend.Save(ctx, key, data); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
