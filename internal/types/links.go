package types

import "time"

type Link struct {
	ID           string    `json:"id"`
	OriginalURL  string    `json:"original_url"`
	TrackingCode string    `json:"tracking_code"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	ClickCount   int64     `json:"click_count"`
}

type CreateLinkRequest struct {
	OriginalURL string `json:"original_url"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	CustomCode  string `json:"custom_code,omitempty"`
}
