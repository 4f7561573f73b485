package geodesy_test

import (
	"math"
	"testing"

	"github.com/golang/geo/s1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tzneal/geodesy"
)

func TestTransformGeocentricSelfIsExact(t *testing.T) {
	paris := geodesy.PrimeMeridian{EPSG: 8903, Name: "Paris", Longitude: 2.33722917 * s1.Degree}
	skewed, err := geodesy.NewDatum(geodesy.WGS84, paris, geodesy.Helmert{Dx: -168, Dy: -60, Dz: 320, Rx: 1, Ry: -2, Rz: 3, Ds: 4})
	require.NoError(t, err)

	for _, d := range []geodesy.Datum{geodesy.WGS84Datum, osgb36(t), skewed} {
		for lng := -179.0; lng < 180; lng += 13 {
			for lat := -85.0; lat <= 85; lat += 17 {
				p := d.Ellipsoid.ToGeocentric(geodesy.GeodesicFromDegrees(lng, lat, 250))
				if got := geodesy.TransformGeocentric(d, d, p); got != p {
					t.Fatalf("%s: expected %s, got %s", d.Name, p, got)
				}
			}
		}
	}
}

func TestDatumTransformOSGB36(t *testing.T) {
	osgb := osgb36(t)
	g := geodesy.WGS84Datum.Transform(osgb, london)
	assert.InDelta(t, -451.433/3600, g.Longitude.Degrees(), 1e-6)
	assert.InDelta(t, 51+31.0/60+5.134/3600, g.Latitude.Degrees(), 1e-6)
	assert.InDelta(t, -46.124, g.Altitude, 1e-3)

	back := osgb.Transform(geodesy.WGS84Datum, g)
	assert.InDelta(t, 0, angleDiff(london.Longitude, back.Longitude), 1e-8)
	assert.InDelta(t, 0, angleDiff(london.Latitude, back.Latitude), 1e-8)
	assert.InDelta(t, 0, back.Altitude, 0.05)
}

func TestDatumPrimeMeridian(t *testing.T) {
	paris := geodesy.PrimeMeridian{EPSG: 8903, Name: "Paris", Longitude: 2.33722917 * s1.Degree}
	ntf, err := geodesy.NewDatum(geodesy.WGS84, paris, geodesy.Helmert{})
	require.NoError(t, err)

	// the Paris meridian itself, counted from Paris
	g := geodesy.GeodesicFromDegrees(0, 48.8, 0)
	p := ntf.ToGeocentric(g)
	want := geodesy.WGS84.ToGeocentric(geodesy.GeodesicFromDegrees(2.33722917, 48.8, 0))
	assert.InDelta(t, want.X, p.X, 1e-6)
	assert.InDelta(t, want.Y, p.Y, 1e-6)
	assert.InDelta(t, want.Z, p.Z, 1e-6)

	g2 := ntf.ToGeodesic(p)
	assert.InDelta(t, 0, g2.Longitude.Radians(), 1e-12)
	assert.InDelta(t, g.Latitude.Radians(), g2.Latitude.Radians(), 1e-12)

	// same ellipsoid and frame, only the meridian differs
	w := ntf.Transform(geodesy.WGS84Datum, g)
	assert.InDelta(t, 2.33722917, w.Longitude.Degrees(), 1e-9)
	assert.InDelta(t, 48.8, w.Latitude.Degrees(), 1e-9)
}

func TestNewDatumRejectsInvalid(t *testing.T) {
	_, err := geodesy.NewDatum(geodesy.WGS84, geodesy.Greenwich, geodesy.Helmert{Dx: math.NaN()})
	assert.ErrorIs(t, err, geodesy.ErrInvalidParameter)

	_, err = geodesy.NewDatum(geodesy.Ellipsoid{A: 1}, geodesy.Greenwich, geodesy.Helmert{})
	assert.ErrorIs(t, err, geodesy.ErrInvalidEllipsoid)

	far := geodesy.PrimeMeridian{Longitude: 200 * s1.Degree}
	_, err = geodesy.NewDatum(geodesy.WGS84, far, geodesy.Helmert{})
	assert.ErrorIs(t, err, geodesy.ErrInvalidParameter)
}
