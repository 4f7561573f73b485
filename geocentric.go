package geodesy

import (
	"math"

	"github.com/golang/geo/s1"
)

// ToGeocentric converts a geodesic point on e to geocentric coordinates.
func (e Ellipsoid) ToGeocentric(g Geodesic) Geocentric {
	lon := g.Longitude.Radians()
	lat := g.Latitude.Radians()
	v := e.PrimeVerticalRadius(g.Latitude)
	return Geocentric{
		X: (v + g.Altitude) * math.Cos(lat) * math.Cos(lon),
		Y: (v + g.Altitude) * math.Cos(lat) * math.Sin(lon),
		Z: (v*(1-e.E*e.E) + g.Altitude) * math.Sin(lat),
	}
}

// ToGeodesic converts geocentric coordinates to a geodesic point on e using
// DefaultSolver.
func (e Ellipsoid) ToGeodesic(p Geocentric) Geodesic {
	g, _ := DefaultSolver.ToGeodesic(e, p)
	return g
}

// ToGeodesic converts geocentric coordinates to a geodesic point on e. The
// latitude is refined Bowring style; the returned Estimate describes that
// iteration and holds the latitude in radians.
func (s Solver) ToGeodesic(e Ellipsoid, p Geocentric) (Geodesic, Estimate) {
	e2 := e.E * e.E
	r := math.Hypot(p.X, p.Y)

	est := s.fixedPoint(solverGeodesic, math.Atan2(p.Z, (1-e2)*r), func(phi float64) float64 {
		return math.Atan2(p.Z+e2*e.PrimeVerticalRadius(s1.Angle(phi))*math.Sin(phi), r)
	})

	phi := s1.Angle(est.Value)
	return Geodesic{
		Longitude: s1.Angle(math.Atan2(p.Y, p.X)),
		Latitude:  phi,
		Altitude:  r/math.Cos(est.Value) - e.PrimeVerticalRadius(phi),
	}, est
}
