package tracking

import "strings"

const unknown = "Unknown"

type DeviceInfo struct {
	DeviceType string
	Browser    string
	OS         string
}

var (
	mobileTokens = []string{"Mobile", "Android", "iPhone", "iPad"}
	tabletTokens = []string{"iPad", "Tablet"}

	browserTokens = []struct{ token, name string }{
		{"Chrome", "Chrome"},
		{"Firefox", "Firefox"},
		{"Safari", "Safari"},
		{"Edge", "Edge"},
	}
	osTokens = []struct{ token, name string }{
		{"Windows", "Windows"},
		{"Mac", "macOS"},
		{"Linux", "Linux"},
		{"Android", "Android"},
		{"iOS", "iOS"},
	}
)

// ParseUserAgent classifies a raw User-Agent by substring tokens. The first
// matching token wins, so Chrome-based Edge reports Chrome and Android
// reports Linux.
func ParseUserAgent(ua string) DeviceInfo {
	info := DeviceInfo{DeviceType: "Desktop", Browser: unknown, OS: unknown}

	switch {
	case containsAny(ua, mobileTokens):
		info.DeviceType = "Mobile"
	case containsAny(ua, tabletTokens):
		info.DeviceType = "Tablet"
	}

	for _, b := range browserTokens {
		if strings.Contains(ua, b.token) {
			info.Browser = b.name
			break
		}
	}
	for _, o := range osTokens {
		if strings.Contains(ua, o.token) {
			info.OS = o.name
			break
		}
	}
	return info
}

func containsAny(s string, tokens []string) bool {
	for _, t := range tokens {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
