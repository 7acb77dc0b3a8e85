package tracking

import (
	"net/http"
	"strings"
)

// Client is the request-side view of a visitor.
type Client struct {
	IP        string
	UserAgent string
	Referrer  string
}

func ClientFromRequest(r *http.Request) Client {
	return Client{
		IP:        ClientIP(r.Header),
		UserAgent: r.UserAgent(),
		Referrer:  r.Referer(),
	}
}

// ClientIP picks the visitor address from proxy headers: the first
// X-Forwarded-For hop, then X-Real-IP, then CF-Connecting-IP.
func ClientIP(h http.Header) string {
	if forwarded := h.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}
	if ip := h.Get("X-Real-IP"); ip != "" {
		return ip
	}
	if ip := h.Get("CF-Connecting-IP"); ip != "" {
		return ip
	}
	return unknown
}
