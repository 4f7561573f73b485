package geodesy

import (
	"fmt"
	"math"

	"github.com/golang/geo/s1"
)

// LambertConformalConicParams configures a Lambert Conformal Conic
// projection. When both standard parallels are equal the cone is tangent
// along OriginLatitude and ScaleFactor applies there; otherwise the cone is
// secant along the two parallels and ScaleFactor is ignored.
type LambertConformalConicParams struct {
	CentralMeridian   s1.Angle
	OriginLatitude    s1.Angle
	StandardParallel1 s1.Angle
	StandardParallel2 s1.Angle
	ScaleFactor       float64
	FalseEasting      float64
	FalseNorthing     float64
}

// Kind implements ProjectionParams.
func (LambertConformalConicParams) Kind() Kind { return KindLambertConformalConic }

func (p LambertConformalConicParams) build(e Ellipsoid, s Solver) (Projection, error) {
	l, err := NewLambertConformalConic(e, p)
	if err != nil {
		return nil, err
	}
	l.solver = s
	return l, nil
}

func (p LambertConformalConicParams) tangent() bool {
	return p.StandardParallel1 == p.StandardParallel2
}

// LambertConformalConic is the conic conformal projection, one or two
// standard parallels.
type LambertConformalConic struct {
	params    LambertConformalConicParams
	ellipsoid Ellipsoid
	solver    Solver

	n      float64 // cone constant
	c      float64 // radius of the equator image
	xs, ys float64 // image of the pole
}

// NewLambertConformalConic validates the parameters and computes the cone.
func NewLambertConformalConic(e Ellipsoid, p LambertConformalConicParams) (*LambertConformalConic, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	if err := checkLongitude("central meridian", p.CentralMeridian); err != nil {
		return nil, err
	}
	for _, c := range []struct {
		name string
		phi  s1.Angle
	}{
		{"origin latitude", p.OriginLatitude},
		{"first standard parallel", p.StandardParallel1},
		{"second standard parallel", p.StandardParallel2},
	} {
		if err := checkLatitude(c.name, c.phi); err != nil {
			return nil, err
		}
	}
	if err := checkFalseOrigin(p.FalseEasting, p.FalseNorthing); err != nil {
		return nil, err
	}

	l := &LambertConformalConic{
		params:    p,
		ellipsoid: e,
		solver:    DefaultSolver,
		xs:        p.FalseEasting,
	}
	phi0 := p.OriginLatitude.Radians()
	iso0 := isometricLatitude(e.E, phi0)

	if p.tangent() {
		if phi0 == 0 {
			return nil, fmt.Errorf("%w: tangent cone needs a non-zero origin latitude", ErrInvalidParameter)
		}
		if math.Abs(phi0) >= math.Pi/2 {
			return nil, fmt.Errorf("%w: tangent cone cannot touch a pole", ErrInvalidParameter)
		}
		if err := checkScaleFactor(p.ScaleFactor); err != nil {
			return nil, err
		}
		r0 := p.ScaleFactor * e.PrimeVerticalRadius(p.OriginLatitude) / math.Tan(phi0)
		l.n = math.Sin(phi0)
		l.c = r0 * math.Exp(l.n*iso0)
		l.ys = p.FalseNorthing + r0
		return l, nil
	}

	phi1, phi2 := p.StandardParallel1.Radians(), p.StandardParallel2.Radians()
	if math.Abs(phi1) >= math.Pi/2 || math.Abs(phi2) >= math.Pi/2 {
		return nil, fmt.Errorf("%w: secant cone cannot pass through a pole", ErrInvalidParameter)
	}
	if math.Abs(phi1+phi2) < defaultEpsilon {
		return nil, fmt.Errorf("%w: standard parallels symmetric about the equator", ErrInvalidParameter)
	}
	r1 := e.PrimeVerticalRadius(p.StandardParallel1) * math.Cos(phi1)
	r2 := e.PrimeVerticalRadius(p.StandardParallel2) * math.Cos(phi2)
	iso1 := isometricLatitude(e.E, phi1)
	iso2 := isometricLatitude(e.E, phi2)

	l.n = math.Log(r2/r1) / (iso1 - iso2)
	l.c = r1 / l.n * math.Exp(l.n*iso1)
	if math.Abs(phi0-math.Pi/2) < defaultEpsilon {
		l.ys = p.FalseNorthing
	} else {
		l.ys = p.FalseNorthing + l.c*math.Exp(-l.n*iso0)
	}
	return l, nil
}

// Kind implements Projection.
func (*LambertConformalConic) Kind() Kind { return KindLambertConformalConic }

// Forward implements Projection.
func (l *LambertConformalConic) Forward(g Geodesic) (Geographic, error) {
	if err := checkGeodesic(g); err != nil {
		return Geographic{}, err
	}
	r := l.c * math.Exp(-l.n*isometricLatitude(l.ellipsoid.E, g.Latitude.Radians()))
	theta := l.n * wrapLongitude((g.Longitude - l.params.CentralMeridian).Radians())
	return planar(KindLambertConformalConic, l.xs+r*math.Sin(theta), l.ys-r*math.Cos(theta), g.Altitude)
}

// Inverse implements Projection. The polar angle is measured with the sign of
// the cone constant so southern cones invert as well.
func (l *LambertConformalConic) Inverse(p Geographic) (Geodesic, error) {
	if err := checkGeographic(p); err != nil {
		return Geodesic{}, err
	}
	dx, dy := p.X-l.xs, l.ys-p.Y
	sign := 1.0
	if l.n < 0 {
		sign = -1
	}
	r := math.Hypot(dx, dy)
	theta := math.Atan2(sign*dx, sign*dy)
	est := l.solver.InverseIsometricLatitude(l.ellipsoid, -math.Log(math.Abs(r/l.c))/l.n)
	return geodetic(KindLambertConformalConic, l.params.CentralMeridian.Radians()+theta/l.n, est.Value, p.Altitude)
}
