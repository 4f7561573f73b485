package geodesy_test

import (
	"math"
	"testing"

	"github.com/golang/geo/s1"

	"github.com/tzneal/geodesy"
)

var (
	london = geodesy.GeodesicFromDegrees(-0.127005, 51.518602, 0)
	dublin = geodesy.GeodesicFromDegrees(-6.259437, 53.350765, 0)
)

// angleDiff is the absolute difference of two angles in radians, modulo a
// full turn.
func angleDiff(a, b s1.Angle) float64 {
	return math.Abs((a - b).Normalized().Radians())
}

func airy(t *testing.T) geodesy.Ellipsoid {
	t.Helper()
	e, err := geodesy.NewEllipsoid(6377563.396, 1/299.3249646)
	if err != nil {
		t.Fatalf("error creating Airy ellipsoid: %s", err)
	}
	return e
}

func osgb36(t *testing.T) geodesy.Datum {
	t.Helper()
	d, err := geodesy.NewDatum(airy(t), geodesy.Greenwich, geodesy.Helmert{
		Dx: 446.448, Dy: -125.157, Dz: 542.06,
		Rx: 0.15, Ry: 0.247, Rz: 0.842,
		Ds: -20.489,
	})
	if err != nil {
		t.Fatalf("error creating OSGB36 datum: %s", err)
	}
	return d
}

func britishNationalGrid() geodesy.TransverseMercatorParams {
	return geodesy.TransverseMercatorParams{
		CentralMeridian: -2 * s1.Degree,
		OriginLatitude:  49 * s1.Degree,
		ScaleFactor:     0.9996012717,
		FalseEasting:    400000,
		FalseNorthing:   -100000,
	}
}

// roundTrip projects a grid of points offset from the central meridian and
// checks the inverse recovers them.
func roundTrip(t *testing.T, p geodesy.Projection, centralMeridian, span, tolerance float64) {
	t.Helper()
	const latInc = 5.0
	lngInc := span / 20
	for dlng := -span; dlng <= span; dlng += lngInc {
		for lat := -85.0; lat <= 85; lat += latInc {
			g := geodesy.GeodesicFromDegrees(centralMeridian+dlng, lat, 12.5)
			xy, err := p.Forward(g)
			if err != nil {
				t.Fatalf("%s: forward failed at %s: %s", p.Kind(), g, err)
			}
			g2, err := p.Inverse(xy)
			if err != nil {
				t.Fatalf("%s: expected no error in round trip, got one at %s (%s)", p.Kind(), g, err)
			}
			if angleDiff(g.Longitude, g2.Longitude) > tolerance || angleDiff(g.Latitude, g2.Latitude) > tolerance {
				t.Fatalf("%s: expected %s, got %s", p.Kind(), g, g2)
			}
			if g2.Altitude != g.Altitude {
				t.Fatalf("%s: altitude not carried through: %v", p.Kind(), g2.Altitude)
			}
		}
	}
}
