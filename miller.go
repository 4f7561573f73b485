package geodesy

import (
	"math"

	"github.com/golang/geo/s1"
)

// MillerParams configures the Miller cylindrical projection. Only the
// semi-major axis of the ellipsoid is used.
type MillerParams struct {
	CentralMeridian s1.Angle
	FalseEasting    float64
	FalseNorthing   float64
}

// Kind implements ProjectionParams.
func (MillerParams) Kind() Kind { return KindMiller }

func (p MillerParams) build(e Ellipsoid, _ Solver) (Projection, error) {
	return NewMiller(e, p)
}

// Miller is a compromise cylindrical projection with closed form inverse.
type Miller struct {
	params MillerParams
	a      float64
}

// NewMiller validates the parameters and builds the projection.
func NewMiller(e Ellipsoid, p MillerParams) (*Miller, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	if err := checkLongitude("central meridian", p.CentralMeridian); err != nil {
		return nil, err
	}
	if err := checkFalseOrigin(p.FalseEasting, p.FalseNorthing); err != nil {
		return nil, err
	}
	return &Miller{params: p, a: e.A}, nil
}

// Kind implements Projection.
func (*Miller) Kind() Kind { return KindMiller }

// Forward implements Projection.
func (m *Miller) Forward(g Geodesic) (Geographic, error) {
	if err := checkGeodesic(g); err != nil {
		return Geographic{}, err
	}
	lambda := wrapLongitude((g.Longitude - m.params.CentralMeridian).Radians())
	return planar(KindMiller,
		m.a*lambda+m.params.FalseEasting,
		m.a*1.25*math.Log(math.Tan(math.Pi/4+0.4*g.Latitude.Radians()))+m.params.FalseNorthing,
		g.Altitude)
}

// Inverse implements Projection.
func (m *Miller) Inverse(p Geographic) (Geodesic, error) {
	if err := checkGeographic(p); err != nil {
		return Geodesic{}, err
	}
	return geodetic(KindMiller,
		(p.X-m.params.FalseEasting)/m.a+m.params.CentralMeridian.Radians(),
		2.5*(math.Atan(math.Exp(0.8*(p.Y-m.params.FalseNorthing)/m.a))-math.Pi/4),
		p.Altitude)
}
