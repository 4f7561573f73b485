package geodesy_test

import (
	"math"
	"testing"

	"github.com/golang/geo/s1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/geodesic"

	"github.com/tzneal/geodesy"
)

func TestDistanceLondonDublin(t *testing.T) {
	c := geodesy.WGS84.Distance(london, dublin)
	assert.InDelta(t, 464025.22, c.Distance, 0.1)
	assert.InDelta(t, -61.54, c.InitialBearing.Degrees(), 0.1)
	assert.InDelta(t, -66.40, c.FinalBearing.Degrees(), 0.1)

	back := geodesy.WGS84.Distance(dublin, london)
	assert.InDelta(t, 464025.22, back.Distance, 0.1)
	assert.InDelta(t, 113.6, back.InitialBearing.Degrees(), 0.1)
	assert.InDelta(t, 118.5, back.FinalBearing.Degrees(), 0.1)
}

func TestDistanceCoincidentPoints(t *testing.T) {
	c, est := geodesy.DefaultSolver.Distance(geodesy.WGS84, london, london)
	assert.Equal(t, geodesy.Course{}, c)
	assert.True(t, est.Converged)
	assert.Equal(t, 0, est.Iterations)
}

func TestDistanceCoarseSolver(t *testing.T) {
	coarse := geodesy.Solver{Epsilon: 1e-3, MaxIterations: 100}
	start := geodesy.GeodesicFromDegrees(2.3522, 48.8566, 0)
	for _, d := range []float64{1e-5, 1e-3, 0.01, 0.05} {
		end := geodesy.GeodesicFromDegrees(2.3522+d, 48.8566+d, 0)
		want := geodesy.WGS84.Distance(start, end)
		got, _ := coarse.Distance(geodesy.WGS84, start, end)
		require.Greater(t, got.Distance, 0.0, "offset %v", d)
		// one refinement of the longitude difference
		assert.InEpsilon(t, want.Distance, got.Distance, 1e-3, "offset %v", d)
	}
}

// pairs away from the antipodal region, where Vincenty's inverse may not
// converge.
func testPairs() [][2]geodesy.Geodesic {
	var pairs [][2]geodesy.Geodesic
	for lat := -70.0; lat <= 70; lat += 20 {
		for lng := -170.0; lng <= 170; lng += 40 {
			for _, d := range [][2]float64{{0.01, 0.02}, {3, -5}, {-25, 40}, {10, 100}, {0, 60}} {
				lat2 := math.Max(-89, math.Min(89, lat+d[0]))
				pairs = append(pairs, [2]geodesy.Geodesic{
					geodesy.GeodesicFromDegrees(lng, lat, 0),
					geodesy.GeodesicFromDegrees(lng+d[1], lat2, 0),
				})
			}
		}
	}
	return pairs
}

func TestDistanceAgainstKarney(t *testing.T) {
	for _, p := range testPairs() {
		c, est := geodesy.DefaultSolver.Distance(geodesy.WGS84, p[0], p[1])
		require.True(t, est.Converged, "%s -> %s", p[0], p[1])

		var s12, azi1, azi2 float64
		geodesic.WGS84.Inverse(p[0].Latitude.Degrees(), p[0].Longitude.Degrees(),
			p[1].Latitude.Degrees(), p[1].Longitude.Degrees(), &s12, &azi1, &azi2)
		if math.Abs(c.Distance-s12) > 1e-3 {
			t.Fatalf("%s -> %s: expected distance %v, got %v", p[0], p[1], s12, c.Distance)
		}
		if angleDiff(c.InitialBearing, s1.Angle(azi1)*s1.Degree) > 1e-8 {
			t.Fatalf("%s -> %s: expected initial bearing %v, got %v", p[0], p[1], azi1, c.InitialBearing.Degrees())
		}
		if angleDiff(c.FinalBearing, s1.Angle(azi2)*s1.Degree) > 1e-8 {
			t.Fatalf("%s -> %s: expected final bearing %v, got %v", p[0], p[1], azi2, c.FinalBearing.Degrees())
		}
	}
}

func TestDistanceSymmetry(t *testing.T) {
	for _, p := range testPairs() {
		there := geodesy.WGS84.Distance(p[0], p[1])
		back := geodesy.WGS84.Distance(p[1], p[0])
		if math.Abs(there.Distance-back.Distance) > 1e-6 {
			t.Fatalf("%s <-> %s: %v != %v", p[0], p[1], there.Distance, back.Distance)
		}
	}
}

func TestDestinationRoundTrip(t *testing.T) {
	for _, p := range testPairs() {
		c := geodesy.WGS84.Distance(p[0], p[1])
		w, est := geodesy.DefaultSolver.Destination(geodesy.WGS84, p[0], c.InitialBearing, c.Distance)
		require.True(t, est.Converged)
		if angleDiff(w.Longitude, p[1].Longitude) > 1e-9 || angleDiff(w.Latitude, p[1].Latitude) > 1e-9 {
			t.Fatalf("expected %s, got %s", p[1], w)
		}
		if angleDiff(w.Bearing, c.FinalBearing) > 1e-9 {
			t.Fatalf("expected final bearing %v, got %v", c.FinalBearing.Degrees(), w.Bearing.Degrees())
		}
	}
}

func TestDestinationAgainstKarney(t *testing.T) {
	for _, bearing := range []float64{0, 30, 90, 135, 180, -45, -120} {
		for _, dist := range []float64{1, 1000, 250000, 5e6} {
			w := geodesy.WGS84.Destination(dublin, s1.Angle(bearing)*s1.Degree, dist)

			var lat2, lon2, azi2 float64
			geodesic.WGS84.Direct(dublin.Latitude.Degrees(), dublin.Longitude.Degrees(), bearing, dist, &lat2, &lon2, &azi2)
			assert.InDelta(t, lat2, w.Latitude.Degrees(), 1e-7, "bearing %v distance %v", bearing, dist)
			assert.InDelta(t, 0, angleDiff(w.Longitude, s1.Angle(lon2)*s1.Degree), 1e-9, "bearing %v distance %v", bearing, dist)
			assert.InDelta(t, 0, angleDiff(w.Bearing, s1.Angle(azi2)*s1.Degree), 1e-8, "bearing %v distance %v", bearing, dist)
		}
	}
}

func TestNPoints(t *testing.T) {
	for _, n := range []int{0, 1, 10, 100} {
		points, err := geodesy.WGS84.NPoints(london, dublin, n)
		require.NoError(t, err)
		require.Len(t, points, n+2)
		assert.Equal(t, london.Longitude, points[0].Longitude)
		assert.Equal(t, london.Latitude, points[0].Latitude)

		last := points[n+1]
		assert.InDelta(t, 0, angleDiff(dublin.Longitude, last.Longitude), 1e-9)
		assert.InDelta(t, 0, angleDiff(dublin.Latitude, last.Latitude), 1e-9)

		// evenly spaced
		step := geodesy.WGS84.Distance(london, dublin).Distance / float64(n+1)
		for i := 1; i < len(points); i++ {
			d := geodesy.WGS84.Distance(points[i-1].Geodesic(), points[i].Geodesic()).Distance
			if math.Abs(d-step) > 1e-3 {
				t.Fatalf("n=%d segment %d: expected %v, got %v", n, i, step, d)
			}
		}
	}

	points, est, err := geodesy.DefaultSolver.NPoints(geodesy.WGS84, london, dublin, 3)
	require.NoError(t, err)
	assert.Len(t, points, 5)
	assert.True(t, est.Converged)
	assert.InDelta(t, 464025.22, est.Value, 0.1)

	_, err = geodesy.WGS84.NPoints(london, dublin, -1)
	assert.ErrorIs(t, err, geodesy.ErrInvalidParameter)
}
