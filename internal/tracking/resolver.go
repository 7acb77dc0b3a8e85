package tracking

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"linktracker/internal/types"
)

const (
	DefaultLocationTimeout = 10 * time.Second
	DefaultIPLookupTimeout = 3 * time.Second
)

var ErrLocationUnavailable = errors.New("location unavailable")

type State int

const (
	StateLoading State = iota
	StateRedirecting
	StateError
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateRedirecting:
		return "redirecting"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

type LinkFinder interface {
	LinkByCode(ctx context.Context, code string) (types.Link, error)
}

//go:generate mockgen -destination=mocks/mocks.go -package=mocks linktracker/internal/tracking CoordinateSource,IPLocator,RecordStore,Sink

// CoordinateSource provides precise visitor coordinates, typically
// reported by the visitor's own device.
type CoordinateSource interface {
	Coordinates(ctx context.Context, visit Visit) (*types.Coordinates, error)
}

type IPLocator interface {
	LocateIP(ctx context.Context, ip string) (*types.IPLocation, error)
}

type Visit struct {
	Code   string
	Client Client
	// Reported holds coordinates the visitor's client sent along, if any.
	Reported *types.Coordinates
}

type Outcome struct {
	State       State
	Link        types.Link
	Entry       *types.AnalyticsEntry
	RedirectURL string
	// Attempts counts external location lookups made for this visit.
	Attempts int
}

type Resolver struct {
	links           LinkFinder
	recorder        *Recorder
	coords          CoordinateSource
	ipLocator       IPLocator
	locationTimeout time.Duration
	ipLookupTimeout time.Duration
}

type ResolverOption func(*Resolver)

func WithCoordinateSource(src CoordinateSource) ResolverOption {
	return func(r *Resolver) { r.coords = src }
}

func WithIPLocator(l IPLocator) ResolverOption {
	return func(r *Resolver) { r.ipLocator = l }
}

func WithTimeouts(location, ipLookup time.Duration) ResolverOption {
	return func(r *Resolver) {
		if location > 0 {
			r.locationTimeout = location
		}
		if ipLookup > 0 {
			r.ipLookupTimeout = ipLookup
		}
	}
}

func NewResolver(links LinkFinder, recorder *Recorder, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		links:           links,
		recorder:        recorder,
		locationTimeout: DefaultLocationTimeout,
		ipLookupTimeout: DefaultIPLookupTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Visit resolves a tracking code, records the visit with whatever location
// could be found and returns where to send the visitor. Only a failed link
// lookup ends in StateError; location and recording failures degrade to
// less data and the visitor is still redirected.
func (r *Resolver) Visit(ctx context.Context, v Visit) (Outcome, error) {
	out := Outcome{State: StateLoading}

	link, err := r.links.LinkByCode(ctx, v.Code)
	if err != nil {
		out.State = StateError
		return out, err
	}
	out.Link = link

	sub := types.AnalyticsSubmission{LinkID: link.ID}
	out.Attempts = r.locate(ctx, v, &sub)

	entry, err := r.recorder.Record(ctx, sub, v.Client)
	if err != nil {
		slog.Error("failed to save analytics", "code", v.Code, "link_id", link.ID, "error", err)
	} else {
		out.Entry = &entry
	}

	out.State = StateRedirecting
	out.RedirectURL = link.OriginalURL
	return out, nil
}

// locate fills sub with precise coordinates, or failing that with an
// IP-based location, and returns how many lookups it made.
func (r *Resolver) locate(ctx context.Context, v Visit, sub *types.AnalyticsSubmission) int {
	attempts := 0

	if r.coords != nil {
		attempts++
		c, err := withTimeout(ctx, r.locationTimeout, func(ctx context.Context) (*types.Coordinates, error) {
			return r.coords.Coordinates(ctx, v)
		})
		if err == nil && c != nil {
			sub.Latitude = &c.Latitude
			sub.Longitude = &c.Longitude
			return attempts
		}
		slog.Debug("precise location not available, using IP location", "code", v.Code, "error", err)
	}

	if r.ipLocator != nil {
		attempts++
		loc, err := withTimeout(ctx, r.ipLookupTimeout, func(ctx context.Context) (*types.IPLocation, error) {
			return r.ipLocator.LocateIP(ctx, v.Client.IP)
		})
		if err != nil || loc == nil {
			slog.Debug("IP location also failed", "code", v.Code, "ip", v.Client.IP, "error", err)
			return attempts
		}
		sub.Country = loc.Country
		sub.City = loc.City
		sub.Latitude = usableCoordinate(&loc.Latitude)
		sub.Longitude = usableCoordinate(&loc.Longitude)
	}

	return attempts
}

type lookupResult[T any] struct {
	v   T
	err error
}

// withTimeout bounds fn by d even when fn ignores its context.
func withTimeout[T any](ctx context.Context, d time.Duration, fn func(context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, d)
	defer cancel()

	done := make(chan lookupResult[T], 1)
	go func() {
		v, err := fn(ctx)
		done <- lookupResult[T]{v, err}
	}()

	select {
	case res := <-done:
		return res.v, res.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// ReportedCoordinates hands back what the visitor's client reported.
type ReportedCoordinates struct{}

func (ReportedCoordinates) Coordinates(_ context.Context, v Visit) (*types.Coordinates, error) {
	if v.Reported == nil {
		return nil, ErrLocationUnavailable
	}
	c := *v.Reported
	return &c, nil
}
