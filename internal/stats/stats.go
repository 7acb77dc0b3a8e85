package stats

import (
	"cmp"
	"slices"

	"linktracker/internal/types"
)

const (
	TopCountriesLimit = 10
	RecentClicksLimit = 20
)

// Compute builds dashboard statistics from the full link and analytics
// collections. total_clicks is the number of entries, not the sum of the
// per-link click counters; the two drift apart once entries are deleted.
func Compute(links []types.Link, entries []types.AnalyticsEntry) types.DashboardStats {
	return types.DashboardStats{
		TotalLinks:     len(links),
		TotalClicks:    len(entries),
		UniqueVisitors: UniqueVisitors(entries),
		TopCountries:   TopCountries(entries, TopCountriesLimit),
		RecentClicks:   RecentClicks(entries, RecentClicksLimit),
	}
}

// UniqueVisitors counts distinct ip_address values. "Unknown" is one value.
func UniqueVisitors(entries []types.AnalyticsEntry) int {
	ips := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		ips[e.IPAddress] = struct{}{}
	}
	return len(ips)
}

// TopCountries groups entries by country, skipping empty ones, and returns
// at most limit groups by count descending. Equal counts are ordered by
// country name.
func TopCountries(entries []types.AnalyticsEntry, limit int) []types.CountryCount {
	limit = max(limit, 0)
	groups := Breakdown(entries, func(e types.AnalyticsEntry) string { return e.Country })

	res := make([]types.CountryCount, 0, min(len(groups), limit))
	for _, g := range groups {
		if len(res) == limit {
			break
		}
		res = append(res, types.CountryCount{Country: g.Value, Count: g.Count})
	}
	return res
}

// RecentClicks returns the newest limit entries, newest first. Entries with
// the same timestamp keep their insertion order.
func RecentClicks(entries []types.AnalyticsEntry, limit int) []types.AnalyticsEntry {
	limit = max(limit, 0)
	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b types.AnalyticsEntry) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	if sorted == nil {
		sorted = []types.AnalyticsEntry{}
	}
	return sorted
}

// Breakdown counts entries per value of field. Empty values are skipped.
// Groups are ordered by count descending, then value ascending.
func Breakdown(entries []types.AnalyticsEntry, field func(types.AnalyticsEntry) string) []types.GroupCount {
	counts := make(map[string]int)
	for _, e := range entries {
		if v := field(e); v != "" {
			counts[v]++
		}
	}

	res := make([]types.GroupCount, 0, len(counts))
	for v, n := range counts {
		res = append(res, types.GroupCount{Value: v, Count: n})
	}
	slices.SortFunc(res, func(a, b types.GroupCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Value, b.Value)
	})
	return res
}
