package geodesy

import (
	"fmt"
	"math"

	"github.com/golang/geo/s1"
)

// MercatorParams configures the normal aspect Mercator projection. The
// scale along StandardParallel is ScaleFactor.
type MercatorParams struct {
	CentralMeridian  s1.Angle
	OriginLatitude   s1.Angle
	StandardParallel s1.Angle
	ScaleFactor      float64
	FalseEasting     float64
	FalseNorthing    float64
}

// Kind implements ProjectionParams.
func (MercatorParams) Kind() Kind { return KindMercator }

func (p MercatorParams) build(e Ellipsoid, s Solver) (Projection, error) {
	m, err := NewMercator(e, p)
	if err != nil {
		return nil, err
	}
	m.solver = s
	return m, nil
}

// Mercator is the cylindrical conformal projection.
type Mercator struct {
	params    MercatorParams
	ellipsoid Ellipsoid
	solver    Solver

	ak0 float64 // k0 times the parallel radius at the standard parallel
}

// NewMercator validates the parameters and builds the projection.
func NewMercator(e Ellipsoid, p MercatorParams) (*Mercator, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	if err := checkLongitude("central meridian", p.CentralMeridian); err != nil {
		return nil, err
	}
	if err := checkLatitude("origin latitude", p.OriginLatitude); err != nil {
		return nil, err
	}
	if err := checkLatitude("standard parallel", p.StandardParallel); err != nil {
		return nil, err
	}
	if math.Abs(p.StandardParallel.Radians()) >= math.Pi/2 {
		return nil, fmt.Errorf("%w: standard parallel cannot be a pole", ErrInvalidParameter)
	}
	if err := checkScaleFactor(p.ScaleFactor); err != nil {
		return nil, err
	}
	if err := checkFalseOrigin(p.FalseEasting, p.FalseNorthing); err != nil {
		return nil, err
	}

	phi1 := p.StandardParallel
	return &Mercator{
		params:    p,
		ellipsoid: e,
		solver:    DefaultSolver,
		ak0:       p.ScaleFactor * math.Cos(math.Abs(phi1.Radians())) * e.PrimeVerticalRadius(phi1),
	}, nil
}

// Kind implements Projection.
func (*Mercator) Kind() Kind { return KindMercator }

// Forward implements Projection.
func (m *Mercator) Forward(g Geodesic) (Geographic, error) {
	if err := checkGeodesic(g); err != nil {
		return Geographic{}, err
	}
	phi := (g.Latitude - m.params.OriginLatitude).Radians()
	if math.Abs(phi) >= math.Pi/2 {
		return Geographic{}, fmt.Errorf("%w: mercator is undefined at the poles", ErrOutOfRange)
	}
	lambda := wrapLongitude((g.Longitude - m.params.CentralMeridian).Radians())
	return planar(KindMercator,
		m.params.FalseEasting+m.ak0*lambda,
		m.params.FalseNorthing+m.ak0*isometricLatitude(m.ellipsoid.E, phi),
		g.Altitude)
}

// Inverse implements Projection.
func (m *Mercator) Inverse(p Geographic) (Geodesic, error) {
	if err := checkGeographic(p); err != nil {
		return Geodesic{}, err
	}
	phi := m.solver.InverseIsometricLatitude(m.ellipsoid, (p.Y-m.params.FalseNorthing)/m.ak0)
	return geodetic(KindMercator,
		(p.X-m.params.FalseEasting)/m.ak0+m.params.CentralMeridian.Radians(),
		phi.Value+m.params.OriginLatitude.Radians(),
		p.Altitude)
}
