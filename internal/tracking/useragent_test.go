package tracking

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseUserAgent(t *testing.T) {
	tests := []struct {
		name string
		ua   string
		want DeviceInfo
	}{
		{
			name: "desktop chrome on windows",
			ua:   "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36",
			want: DeviceInfo{DeviceType: "Desktop", Browser: "Chrome", OS: "Windows"},
		},
		{
			name: "firefox on linux",
			ua:   "Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0",
			want: DeviceInfo{DeviceType: "Desktop", Browser: "Firefox", OS: "Linux"},
		},
		{
			name: "safari on mac",
			ua:   "Mozilla/5.0 (Macintosh; Intel Mac OS X 14_2) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.2 Safari/605.1.15",
			want: DeviceInfo{DeviceType: "Desktop", Browser: "Safari", OS: "macOS"},
		},
		{
			name: "android phone reports linux first",
			ua:   "Mozilla/5.0 (Linux; Android 14; Pixel 8) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Mobile Safari/537.36",
			want: DeviceInfo{DeviceType: "Mobile", Browser: "Chrome", OS: "Linux"},
		},
		{
			name: "ipad counts as mobile",
			ua:   "Mozilla/5.0 (iPad; CPU OS 17_2 like Mac OS X) AppleWebKit/605.1.15 Version/17.2 Safari/604.1",
			want: DeviceInfo{DeviceType: "Mobile", Browser: "Safari", OS: "macOS"},
		},
		{
			name: "generic tablet",
			ua:   "SomeTablet Tablet Browser",
			want: DeviceInfo{DeviceType: "Tablet", Browser: "Unknown", OS: "Unknown"},
		},
		{
			name: "chromium edge reports chrome",
			ua:   "Mozilla/5.0 (Windows NT 10.0) AppleWebKit/537.36 Chrome/120.0 Safari/537.36 Edg/120.0",
			want: DeviceInfo{DeviceType: "Desktop", Browser: "Chrome", OS: "Windows"},
		},
		{
			name: "legacy edge",
			ua:   "Mozilla/5.0 (X11) Edge/18.19041",
			want: DeviceInfo{DeviceType: "Desktop", Browser: "Edge", OS: "Unknown"},
		},
		{
			name: "unknown",
			ua:   "curl/8.4.0",
			want: DeviceInfo{DeviceType: "Desktop", Browser: "Unknown", OS: "Unknown"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseUserAgent(tt.ua))
		})
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{"forwarded first hop", map[string]string{"X-Forwarded-For": " 203.0.113.7 , 10.0.0.1", "X-Real-IP": "1.1.1.1"}, "203.0.113.7"},
		{"real ip", map[string]string{"X-Real-IP": "198.51.100.2", "CF-Connecting-IP": "2.2.2.2"}, "198.51.100.2"},
		{"cloudflare", map[string]string{"CF-Connecting-IP": "192.0.2.9"}, "192.0.2.9"},
		{"none", nil, "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := http.Header{}
			for k, v := range tt.headers {
				h.Set(k, v)
			}
			assert.Equal(t, tt.want, ClientIP(h))
		})
	}
}

func TestClientFromRequest(t *testing.T) {
	r, _ := http.NewRequest(http.MethodGet, "/track/abc", nil)
	r.Header.Set("User-Agent", "agent")
	r.Header.Set("Referer", "https://ref.example")
	r.Header.Set("X-Real-IP", "198.51.100.2")

	assert.Equal(t, Client{IP: "198.51.100.2", UserAgent: "agent", Referrer: "https://ref.example"}, ClientFromRequest(r))
}
