package geodesy

import (
	"fmt"
	"math"

	"github.com/golang/geo/s1"
)

// factorials used by the series
const (
	f3 = 3 * 2
	f4 = 4 * f3
	f5 = 5 * f4
	f6 = 6 * f5
	f7 = 7 * f6
	f8 = 8 * f7
)

// maxDeltaLong bounds the distance to the central meridian accepted by
// Forward. The series degrade quickly past a few degrees.
const maxDeltaLong = (math.Pi * 70) / 180.0

// TransverseMercatorParams configures a Transverse Mercator projection.
type TransverseMercatorParams struct {
	CentralMeridian s1.Angle
	OriginLatitude  s1.Angle
	ScaleFactor     float64
	FalseEasting    float64
	FalseNorthing   float64
}

// Kind implements ProjectionParams.
func (TransverseMercatorParams) Kind() Kind { return KindTransverseMercator }

func (p TransverseMercatorParams) build(e Ellipsoid, s Solver) (Projection, error) {
	t, err := NewTransverseMercator(e, p)
	if err != nil {
		return nil, err
	}
	t.solver = s
	return t, nil
}

// TransverseMercator provides conversions between geodetic coordinates and
// Transverse Mercator easting and northing, using Redfearn's series to the
// eighth order in the longitude difference.
type TransverseMercator struct {
	params    TransverseMercatorParams
	ellipsoid Ellipsoid
	solver    Solver

	m0 float64 // meridian arc length at the origin latitude
}

// NewTransverseMercator constructs a new TransverseMercator converter.
func NewTransverseMercator(e Ellipsoid, p TransverseMercatorParams) (*TransverseMercator, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	if err := checkLatitude("origin latitude", p.OriginLatitude); err != nil {
		return nil, err
	}
	if err := checkLongitude("central meridian", p.CentralMeridian); err != nil {
		return nil, err
	}
	if err := checkScaleFactor(p.ScaleFactor); err != nil {
		return nil, err
	}
	if err := checkFalseOrigin(p.FalseEasting, p.FalseNorthing); err != nil {
		return nil, err
	}
	return &TransverseMercator{
		params:    p,
		ellipsoid: e,
		solver:    DefaultSolver,
		m0:        e.MeridianArcLength(p.OriginLatitude),
	}, nil
}

// Kind implements Projection.
func (*TransverseMercator) Kind() Kind { return KindTransverseMercator }

// Forward implements Projection.
func (t *TransverseMercator) Forward(g Geodesic) (Geographic, error) {
	if err := checkGeodesic(g); err != nil {
		return Geographic{}, err
	}
	//  Convert longitude (Greenwich) to longitude from the central meridian
	lambda := wrapLongitude((g.Longitude - t.params.CentralMeridian).Radians())
	if math.Abs(lambda) > maxDeltaLong {
		return Geographic{}, fmt.Errorf("%w: longitude too far from the central meridian", ErrOutOfRange)
	}

	e := t.ellipsoid
	phi := g.Latitude.Radians()
	m := e.MeridianArcLength(g.Latitude) - t.m0
	v := e.PrimeVerticalRadius(g.Latitude)
	b := v / e.MeridionalRadius(g.Latitude)
	lc := math.Cos(phi) * lambda
	tn := math.Tan(phi)
	lc2 := lc * lc

	b2, t2 := b*b, tn*tn
	b3, t4 := b*b2, t2*t2
	b4, t6 := b*b3, t2*t4

	w3 := b - t2
	w4 := 4*b2 + b - t2
	w5 := 4*b3*(1-6*t2) + b2*(1+8*t2) - 2*b*t2 + t4
	w6 := 8*b4*(11-24*t2) - 28*b3*(1-6*t2) + b2*(1-32*t2) - 2*b*t2 + t4
	w7 := 61 - 479*t2 + 179*t4 - t6
	w8 := 1385 - 3111*t2 + 543*t4 - t6

	x := v * lc * (1 + lc2*(w3/f3+lc2*(w5/f5+lc2*w7/f7)))
	y := m + v*tn*lc2*(0.5+lc2*(w4/f4+lc2*(w6/f6+lc2*w8/f8)))

	k0 := t.params.ScaleFactor
	return planar(KindTransverseMercator, k0*x+t.params.FalseEasting, k0*y+t.params.FalseNorthing, g.Altitude)
}

// Inverse implements Projection.
func (t *TransverseMercator) Inverse(p Geographic) (Geodesic, error) {
	if err := checkGeographic(p); err != nil {
		return Geodesic{}, err
	}
	e := t.ellipsoid
	k0 := t.params.ScaleFactor

	// footpoint
	est := t.solver.FootpointLatitude(e, t.m0+(p.Y-t.params.FalseNorthing)/k0)
	f := s1.Angle(est.Value)
	v := e.PrimeVerticalRadius(f)
	x := (p.X - t.params.FalseEasting) / (k0 * v)
	x2 := x * x

	b := v / e.MeridionalRadius(f)
	tn := math.Tan(f.Radians())
	c := math.Cos(f.Radians())

	b2, t2 := b*b, tn*tn
	b3, t4 := b*b2, t2*t2
	b4, t6 := b*b3, t2*t4

	v3 := b + 2*t2
	v5 := 4*b3*(1-6*t2) - b2*(9-68*t2) - 72*b*t2 - 24*t4
	v7 := 61 + 662*t2 + 1320*t4 + 720*t6
	u4 := 4*b2 - 9*b*(1-t2) - 12*t2
	u6 := 8*b4*(11-24*t2) - 12*b3*(21-71*t2) + 15*b2*(15-98*t2+15*t4) + 180*b*(5*t2-3*t4) + 360*t4
	u8 := -1385 - 3633*t2 - 4095*t4 - 1575*t6

	lambda := x / c * (1 - x2*(v3/f3+x2*(v5/f5+x2*v7/f7)))
	phi := f.Radians() - x2*b*tn*(0.5+x2*(u4/f4+x2*(u6/f6+x2*u8/f8)))

	return geodetic(KindTransverseMercator, lambda+t.params.CentralMeridian.Radians(), phi, p.Altitude)
}
