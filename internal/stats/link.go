package stats

import (
	"linktracker/internal/geo"
	"linktracker/internal/types"
)

// ForLink summarizes the entries recorded for one link.
func ForLink(link types.Link, entries []types.AnalyticsEntry) types.LinkStats {
	return types.LinkStats{
		LinkID:         link.ID,
		ClickCount:     link.ClickCount,
		Entries:        len(entries),
		UniqueVisitors: UniqueVisitors(entries),
		Devices:        Breakdown(entries, func(e types.AnalyticsEntry) string { return e.DeviceType }),
		Browsers:       Breakdown(entries, func(e types.AnalyticsEntry) string { return e.Browser }),
		OS:             Breakdown(entries, func(e types.AnalyticsEntry) string { return e.OS }),
		SpreadKm:       Spread(entries),
	}
}

// SpreadSampleLimit caps how many located visits Spread compares.
const SpreadSampleLimit = 500

// Spread is the largest distance in kilometres between two visits that
// carry coordinates. Only the newest SpreadSampleLimit located visits are
// compared. Zero when fewer than two are located.
func Spread(entries []types.AnalyticsEntry) float64 {
	var located []types.Coordinates
	for _, e := range entries {
		if e.Latitude != nil && e.Longitude != nil {
			located = append(located, types.Coordinates{Latitude: *e.Latitude, Longitude: *e.Longitude})
		}
	}

	if len(located) > SpreadSampleLimit {
		located = located[len(located)-SpreadSampleLimit:]
	}

	var best float64
	for i := range located {
		for j := i + 1; j < len(located); j++ {
			d := geo.Haversine(located[i].Latitude, located[i].Longitude, located[j].Latitude, located[j].Longitude)
			best = max(best, d)
		}
	}
	return best
}
