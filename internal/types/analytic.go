package types

import "time"

type AnalyticsEntry struct {
	ID         string    `json:"id"`
	LinkID     string    `json:"link_id"`
	Latitude   *float64  `json:"latitude"`
	Longitude  *float64  `json:"longitude"`
	IPAddress  string    `json:"ip_address"`
	UserAgent  string    `json:"user_agent"`
	Timestamp  time.Time `json:"timestamp"`
	Country    string    `json:"country,omitempty"`
	City       string    `json:"city,omitempty"`
	Referrer   string    `json:"referrer,omitempty"`
	DeviceType string    `json:"device_type,omitempty"`
	Browser    string    `json:"browser,omitempty"`
	OS         string    `json:"os,omitempty"`
}

// AnalyticsSubmission is what a tracking client reports about a visit.
// Request-derived fields (ip, user agent) are filled in server-side.
type AnalyticsSubmission struct {
	LinkID    string   `json:"link_id"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Country   string   `json:"country,omitempty"`
	City      string   `json:"city,omitempty"`
	Referrer  string   `json:"referrer,omitempty"`
}

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type IPLocation struct {
	Country   string  `json:"country"`
	City      string  `json:"city"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	IP        string  `json:"ip"`
}
