package geo

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/oschwald/geoip2-golang"

	"linktracker/internal/types"
)

const unknown = "Unknown"

var ErrInvalidIP = errors.New("invalid ip address")

type cityReader interface {
	City(ip net.IP) (*geoip2.City, error)
	Close() error
}

// GeoIP resolves visitor addresses against a MaxMind GeoLite2 City database.
type GeoIP struct {
	reader cityReader
}

func OpenGeoIP(path string) (*GeoIP, error) {
	reader, err := geoip2.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open geoip database: %w", err)
	}
	return &GeoIP{reader: reader}, nil
}

func (g *GeoIP) LocateIP(ctx context.Context, ip string) (*types.IPLocation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	parsed := net.ParseIP(ip)
	if parsed == nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidIP, ip)
	}

	record, err := g.reader.City(parsed)
	if err != nil {
		return nil, fmt.Errorf("geoip lookup: %w", err)
	}

	loc := &types.IPLocation{
		Country:   unknown,
		City:      unknown,
		Latitude:  record.Location.Latitude,
		Longitude: record.Location.Longitude,
		IP:        ip,
	}
	if name, ok := record.City.Names["en"]; ok && name != "" {
		loc.City = name
	}
	if name, ok := record.Country.Names["en"]; ok && name != "" {
		loc.Country = name
	}
	return loc, nil
}

func (g *GeoIP) Close() error {
	if g.reader == nil {
		return nil
	}
	return g.reader.Close()
}
