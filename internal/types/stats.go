package types

type CountryCount struct {
	Country string `json:"country"`
	Count   int    `json:"count"`
}

type DashboardStats struct {
	TotalLinks     int              `json:"total_links"`
	TotalClicks    int              `json:"total_clicks"`
	UniqueVisitors int              `json:"unique_visitors"`
	TopCountries   []CountryCount   `json:"top_countries"`
	RecentClicks   []AnalyticsEntry `json:"recent_clicks"`
}

type GroupCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// LinkStats summarizes the analytics of a single link.
type LinkStats struct {
	LinkID         string       `json:"link_id"`
	ClickCount     int64        `json:"click_count"`
	Entries        int          `json:"entries"`
	UniqueVisitors int          `json:"unique_visitors"`
	Devices        []GroupCount `json:"devices"`
	Browsers       []GroupCount `json:"browsers"`
	OS             []GroupCount `json:"os"`
	SpreadKm       float64      `json:"spread_km"`
}
