package geodesy

import (
	"fmt"
	"math"

	"github.com/golang/geo/s1"
)

// Ellipsoid is an oblate spheroid defined by its semi-major axis A and
// semi-minor axis B. E is the first eccentricity and F the flattening; both
// are derived from the axes by the constructors. A zero flattening describes
// a sphere.
type Ellipsoid struct {
	EPSG int    // catalog identifier, 0 when unknown
	Name string // catalog name, may be empty

	A float64 // semi-major axis in meters
	B float64 // semi-minor axis in meters
	E float64 // eccentricity
	F float64 // flattening
}

// NewEllipsoid builds an ellipsoid from its semi-major axis (meters) and
// flattening.
func NewEllipsoid(semiMajorAxis, flattening float64) (Ellipsoid, error) {
	e := Ellipsoid{
		A: semiMajorAxis,
		B: semiMajorAxis * (1 - flattening),
		E: math.Sqrt(2*flattening - flattening*flattening),
		F: flattening,
	}
	if err := e.Validate(); err != nil {
		return Ellipsoid{}, err
	}
	return e, nil
}

// NewEllipsoidFromAxes builds an ellipsoid from both axes (meters).
func NewEllipsoidFromAxes(semiMajorAxis, semiMinorAxis float64) (Ellipsoid, error) {
	if semiMajorAxis <= 0 {
		return Ellipsoid{}, fmt.Errorf("%w: semi-major axis must be greater than zero", ErrInvalidEllipsoid)
	}
	ratio := semiMinorAxis / semiMajorAxis
	e := Ellipsoid{
		A: semiMajorAxis,
		B: semiMinorAxis,
		E: math.Sqrt(1 - ratio*ratio),
		F: 1 - ratio,
	}
	if err := e.Validate(); err != nil {
		return Ellipsoid{}, err
	}
	return e, nil
}

// Validate reports whether the ellipsoid parameters are usable.
func (e Ellipsoid) Validate() error {
	for _, v := range []float64{e.A, e.B, e.E, e.F} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: parameters must be finite", ErrInvalidEllipsoid)
		}
	}
	if e.A <= 0 {
		return fmt.Errorf("%w: semi-major axis must be greater than zero", ErrInvalidEllipsoid)
	}
	if e.B <= 0 {
		return fmt.Errorf("%w: semi-minor axis must be greater than zero", ErrInvalidEllipsoid)
	}
	if e.B > e.A {
		return fmt.Errorf("%w: semi-minor axis larger than semi-major axis", ErrInvalidEllipsoid)
	}
	if e.F < 0 || e.F >= 1 {
		return fmt.Errorf("%w: flattening must be in [0, 1)", ErrInvalidEllipsoid)
	}
	return nil
}

// InverseFlattening returns 1/f, or 0 for a sphere.
func (e Ellipsoid) InverseFlattening() float64 {
	if e.F == 0 {
		return 0
	}
	return 1 / e.F
}

func (e Ellipsoid) String() string {
	return fmt.Sprintf("<Ellipsoid epsg=%d a=%.6f 1/f=%.8f>", e.EPSG, e.A, e.InverseFlattening())
}

// The geometry below follows "The Mercator Projections", P. Osborne, 2008,
// chapter 5.

// PrimeVerticalRadius returns the radius of curvature in the prime vertical
// at latitude phi.
func (e Ellipsoid) PrimeVerticalRadius(phi s1.Angle) float64 {
	es := e.E * math.Sin(phi.Radians())
	return e.A / math.Sqrt(1-es*es)
}

// MeridionalRadius returns the radius of curvature in the meridian at
// latitude phi.
func (e Ellipsoid) MeridionalRadius(phi s1.Angle) float64 {
	es := e.E * math.Sin(phi.Radians())
	return e.A * (1 - e.E*e.E) / math.Pow(1-es*es, 1.5)
}

// IsometricLatitude returns the isometric latitude of phi.
func (e Ellipsoid) IsometricLatitude(phi s1.Angle) float64 {
	return isometricLatitude(e.E, phi.Radians())
}

// InverseIsometricLatitude returns the geodesic latitude whose isometric
// latitude is iso, using DefaultSolver.
func (e Ellipsoid) InverseIsometricLatitude(iso float64) s1.Angle {
	return s1.Angle(DefaultSolver.InverseIsometricLatitude(e, iso).Value)
}

// MeridianArcLength returns the distance in meters along the meridian from
// the equator to latitude phi.
func (e Ellipsoid) MeridianArcLength(phi s1.Angle) float64 {
	return meridianArcLength(e.A, e.E, phi.Radians())
}

// FootpointLatitude returns the latitude whose meridian arc length is
// distance, using DefaultSolver.
func (e Ellipsoid) FootpointLatitude(distance float64) s1.Angle {
	return s1.Angle(DefaultSolver.FootpointLatitude(e, distance).Value)
}

// InverseIsometricLatitude inverts the isometric latitude by fixed point
// iteration from the spherical (conformal) approximation. Value is in
// radians.
func (s Solver) InverseIsometricLatitude(e Ellipsoid, iso float64) Estimate {
	expIso := math.Exp(iso)
	halfE := e.E / 2
	return s.fixedPoint(solverIsometric, 2*math.Atan(expIso)-math.Pi/2, func(phi float64) float64 {
		es := e.E * math.Sin(phi)
		return 2*math.Atan(math.Pow((1+es)/(1-es), halfE)*expIso) - math.Pi/2
	})
}

// FootpointLatitude inverts the meridian arc length with Newton steps scaled
// by the semi-major axis. Value is in radians.
func (s Solver) FootpointLatitude(e Ellipsoid, distance float64) Estimate {
	return s.fixedPoint(solverFootpoint, distance/e.A, func(phi float64) float64 {
		return phi - (meridianArcLength(e.A, e.E, phi)-distance)/e.A
	})
}

func isometricLatitude(e, phi float64) float64 {
	es := e * math.Sin(phi)
	return math.Log(math.Tan(math.Pi/4+phi/2) * math.Pow((1-es)/(1+es), e/2))
}

// meridianArcLength expands the arc length to e^8.
func meridianArcLength(a, e, phi float64) float64 {
	e2 := e * e
	e4 := e2 * e2
	e6 := e4 * e2
	e8 := e4 * e4

	a0 := 1 - e2/4 - 3*e4/64 - 5*e6/256 - 175*e8/16384
	a2 := -3*e2/8 - 3*e4/32 - 45*e6/1024 - 420*e8/16384
	a4 := 15*e4/256 + 45*e6/1024 + 525*e8/16384
	a6 := -35*e6/3072 - 175*e8/12288
	a8 := 315 * e8 / 131072

	return a * (a0*phi + a2*math.Sin(2*phi) + a4*math.Sin(4*phi) + a6*math.Sin(6*phi) + a8*math.Sin(8*phi))
}
