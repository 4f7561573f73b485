package geodesy_test

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tzneal/geodesy"
)

func TestGeocentricLondon(t *testing.T) {
	p := geodesy.WGS84.ToGeocentric(london)
	assert.InDelta(t, 3977018.848, p.X, 1e-3)
	assert.InDelta(t, -8815.695, p.Y, 1e-3)
	assert.InDelta(t, 4969650.564, p.Z, 1e-3)

	v := p.Vector()
	assert.Equal(t, r3.Vector{X: p.X, Y: p.Y, Z: p.Z}, v)
	assert.Equal(t, p, geodesy.GeocentricFromVector(v))
}

func TestGeocentricRoundTrip(t *testing.T) {
	steep, err := geodesy.NewEllipsoid(6378137, 1/150.0)
	require.NoError(t, err)

	for _, e := range []geodesy.Ellipsoid{geodesy.WGS84, airy(t), steep} {
		for lng := -179.0; lng < 180; lng += 7 {
			for lat := -85.0; lat <= 85; lat += 5 {
				for _, alt := range []float64{0, 1000, -100} {
					g := geodesy.GeodesicFromDegrees(lng, lat, alt)
					g2, est := geodesy.DefaultSolver.ToGeodesic(e, e.ToGeocentric(g))
					if !est.Converged {
						t.Fatalf("no convergence at %s", g)
					}
					if angleDiff(g.Longitude, g2.Longitude) > 1e-10 || angleDiff(g.Latitude, g2.Latitude) > 1e-10 {
						t.Fatalf("expected %s, got %s", g, g2)
					}
					if math.Abs(g.Altitude-g2.Altitude) > 1e-3 {
						t.Fatalf("expected altitude %v, got %v", g.Altitude, g2.Altitude)
					}
				}
			}
		}
	}
}

func TestGeodesicLatLng(t *testing.T) {
	ll := s2.LatLngFromDegrees(51.518602, -0.127005)
	g := geodesy.GeodesicFromLatLng(ll, 35)
	assert.Equal(t, ll, g.LatLng())
	assert.Equal(t, 35.0, g.Altitude)
	assert.InDelta(t, london.Longitude.Radians(), g.Longitude.Radians(), 1e-15)
	assert.InDelta(t, london.Latitude.Radians(), g.Latitude.Radians(), 1e-15)
}
