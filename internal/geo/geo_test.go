package geo

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/oschwald/geoip2-golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReader struct {
	city   *geoip2.City
	err    error
	closed bool
}

func (f *fakeReader) City(net.IP) (*geoip2.City, error) { return f.city, f.err }

func (f *fakeReader) Close() error {
	f.closed = true
	return nil
}

func TestLocateIP(t *testing.T) {
	city := &geoip2.City{}
	city.City.Names = map[string]string{"en": "Kyiv"}
	city.Country.Names = map[string]string{"en": "Ukraine"}
	city.Location.Latitude = 50.45
	city.Location.Longitude = 30.52
	g := &GeoIP{reader: &fakeReader{city: city}}

	loc, err := g.LocateIP(context.Background(), "93.184.216.34")

	require.NoError(t, err)
	assert.Equal(t, "Kyiv", loc.City)
	assert.Equal(t, "Ukraine", loc.Country)
	assert.Equal(t, 50.45, loc.Latitude)
	assert.Equal(t, 30.52, loc.Longitude)
	assert.Equal(t, "93.184.216.34", loc.IP)
}

func TestLocateIPMissingNames(t *testing.T) {
	g := &GeoIP{reader: &fakeReader{city: &geoip2.City{}}}

	loc, err := g.LocateIP(context.Background(), "10.0.0.1")

	require.NoError(t, err)
	assert.Equal(t, "Unknown", loc.City)
	assert.Equal(t, "Unknown", loc.Country)
}

func TestLocateIPErrors(t *testing.T) {
	g := &GeoIP{reader: &fakeReader{err: errors.New("corrupt")}}

	_, err := g.LocateIP(context.Background(), "Unknown")
	assert.ErrorIs(t, err, ErrInvalidIP)

	_, err = g.LocateIP(context.Background(), "8.8.8.8")
	assert.ErrorContains(t, err, "corrupt")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = g.LocateIP(ctx, "8.8.8.8")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClose(t *testing.T) {
	r := &fakeReader{}
	require.NoError(t, (&GeoIP{reader: r}).Close())
	assert.True(t, r.closed)
	assert.NoError(t, (&GeoIP{}).Close())
}

func TestHaversine(t *testing.T) {
	assert.Zero(t, Haversine(1, 2, 1, 2))
	// London to Paris
	assert.InDelta(t, 343.5, Haversine(51.5074, -0.1278, 48.8566, 2.3522), 1)
}
