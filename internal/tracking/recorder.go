package tracking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"linktracker/internal/ident"
	"linktracker/internal/types"
)

var ErrLinkIDRequired = errors.New("link id is required")

type RecordStore interface {
	AddAnalyticsEntry(ctx context.Context, entry types.AnalyticsEntry) error
	UpdateLinkClicks(ctx context.Context, linkID string) error
}

// Sink receives every entry after it has been stored.
type Sink interface {
	Push(entry types.AnalyticsEntry)
}

type Recorder struct {
	store RecordStore
	ids   ident.Generator
	now   func() time.Time
	sink  Sink
}

type RecorderOption func(*Recorder)

func WithSink(sink Sink) RecorderOption {
	return func(r *Recorder) { r.sink = sink }
}

func WithIDGenerator(ids ident.Generator) RecorderOption {
	return func(r *Recorder) { r.ids = ids }
}

func WithClock(now func() time.Time) RecorderOption {
	return func(r *Recorder) { r.now = now }
}

func NewRecorder(store RecordStore, opts ...RecorderOption) *Recorder {
	r := &Recorder{
		store: store,
		ids:   ident.Random{},
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Record stores one visit and bumps the link's click counter. A failed
// counter update is logged and leaves the stored entry in place.
func (r *Recorder) Record(ctx context.Context, sub types.AnalyticsSubmission, client Client) (types.AnalyticsEntry, error) {
	if sub.LinkID == "" {
		return types.AnalyticsEntry{}, ErrLinkIDRequired
	}

	userAgent := orDefault(client.UserAgent, unknown)
	device := ParseUserAgent(userAgent)

	entry := types.AnalyticsEntry{
		ID:         r.ids.NewID(),
		LinkID:     sub.LinkID,
		Latitude:   usableCoordinate(sub.Latitude),
		Longitude:  usableCoordinate(sub.Longitude),
		IPAddress:  orDefault(client.IP, unknown),
		UserAgent:  userAgent,
		Timestamp:  r.now().UTC(),
		Country:    orDefault(sub.Country, unknown),
		City:       orDefault(sub.City, unknown),
		Referrer:   orDefault(client.Referrer, sub.Referrer),
		DeviceType: device.DeviceType,
		Browser:    device.Browser,
		OS:         device.OS,
	}

	if err := r.store.AddAnalyticsEntry(ctx, entry); err != nil {
		return types.AnalyticsEntry{}, fmt.Errorf("save analytics entry: %w", err)
	}

	if err := r.store.UpdateLinkClicks(ctx, entry.LinkID); err != nil {
		slog.Error("failed to update click count", "link_id", entry.LinkID, "entry_id", entry.ID, "error", err)
	}

	if r.sink != nil {
		r.sink.Push(entry)
	}

	slog.Debug("analytics entry recorded", "link_id", entry.LinkID, "entry_id", entry.ID, "country", entry.Country)
	return entry, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// usableCoordinate treats a zero or non-finite coordinate as missing.
func usableCoordinate(v *float64) *float64 {
	if v == nil || *v == 0 || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return nil
	}
	c := *v
	return &c
}
