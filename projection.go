package geodesy

import (
	"fmt"
	"math"
	"strings"

	"github.com/golang/geo/s1"
)

// Kind identifies a projection method.
type Kind int

// Supported projection methods.
const (
	KindLatLong Kind = iota
	KindMercator
	KindTransverseMercator
	KindLambertConformalConic
	KindObliqueMercator
	KindMiller
	KindEquirectangular
)

var kindNames = [...]string{
	KindLatLong:               "latlong",
	KindMercator:              "merc",
	KindTransverseMercator:    "tmerc",
	KindLambertConformalConic: "lcc",
	KindObliqueMercator:       "omerc",
	KindMiller:                "miller",
	KindEquirectangular:       "eqc",
}

// String returns the short method name used in catalogs.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind maps a short method name to its Kind. Names the engine has no
// implementation for yield ErrNotImplemented.
func ParseKind(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("%w: projection %q", ErrNotImplemented, name)
}

// Projection converts between geodesic and planar coordinates. Planar
// coordinates are in meters, false origin included.
type Projection interface {
	Kind() Kind
	Forward(Geodesic) (Geographic, error)
	Inverse(Geographic) (Geodesic, error)
}

// ProjectionParams is the set of coefficients one projection method needs.
// It is implemented by the *Params types of this package only.
type ProjectionParams interface {
	Kind() Kind
	build(e Ellipsoid, s Solver) (Projection, error)
}

// NewProjection validates params against e and returns the matching
// projection, using DefaultSolver for its iterative steps.
func NewProjection(e Ellipsoid, params ProjectionParams) (Projection, error) {
	return newProjection(e, params, DefaultSolver)
}

func newProjection(e Ellipsoid, params ProjectionParams, s Solver) (Projection, error) {
	if params == nil {
		return nil, fmt.Errorf("%w: missing projection parameters", ErrInvalidParameter)
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return params.build(e, s)
}

func checkFalseOrigin(x0, y0 float64) error {
	if !isFinite(x0) || !isFinite(y0) {
		return fmt.Errorf("%w: false origin must be finite", ErrInvalidParameter)
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func checkLatitude(name string, phi s1.Angle) error {
	if !isFinite(phi.Radians()) || math.Abs(phi.Radians()) > math.Pi/2 {
		return fmt.Errorf("%w: %s out of range", ErrInvalidParameter, name)
	}
	return nil
}

func checkLongitude(name string, lambda s1.Angle) error {
	if !isFinite(lambda.Radians()) || math.Abs(lambda.Radians()) > 2*math.Pi {
		return fmt.Errorf("%w: %s out of range", ErrInvalidParameter, name)
	}
	return nil
}

func checkScaleFactor(k0 float64) error {
	const minScaleFactor = 0.1
	const maxScaleFactor = 10.0
	if !(k0 >= minScaleFactor && k0 <= maxScaleFactor) {
		return fmt.Errorf("%w: scale factor out of range", ErrInvalidParameter)
	}
	return nil
}

// wrapLongitude brings a longitude difference back to [-Pi, Pi].
func wrapLongitude(lambda float64) float64 {
	if lambda > math.Pi {
		lambda -= 2 * math.Pi
	}
	if lambda < -math.Pi {
		lambda += 2 * math.Pi
	}
	return lambda
}

// checkGeodesic rejects points no projection can handle.
func checkGeodesic(g Geodesic) error {
	lon, lat := g.Longitude.Radians(), g.Latitude.Radians()
	if !isFinite(lon) || !isFinite(lat) {
		return fmt.Errorf("%w: non-finite geodesic coordinates", ErrOutOfRange)
	}
	if math.Abs(lat) > math.Pi/2 {
		return fmt.Errorf("%w: latitude %.6f° beyond the poles", ErrOutOfRange, g.Latitude.Degrees())
	}
	return nil
}

func checkGeographic(p Geographic) error {
	if !isFinite(p.X) || !isFinite(p.Y) {
		return fmt.Errorf("%w: non-finite planar coordinates", ErrOutOfRange)
	}
	return nil
}

// planar assembles a forward result, failing on overflow such as a pole
// under a cylindrical projection.
func planar(k Kind, x, y, altitude float64) (Geographic, error) {
	if !isFinite(x) || !isFinite(y) {
		return Geographic{}, fmt.Errorf("%w: %s projection undefined at this point", ErrOutOfRange, k)
	}
	return Geographic{X: x, Y: y, Altitude: altitude}, nil
}

// geodetic assembles an inverse result with a normalized longitude.
func geodetic(k Kind, lambda, phi, altitude float64) (Geodesic, error) {
	if !isFinite(lambda) || !isFinite(phi) || math.Abs(phi) > math.Pi/2+1e-9 {
		return Geodesic{}, fmt.Errorf("%w: %s inverse undefined at this point", ErrOutOfRange, k)
	}
	return Geodesic{
		Longitude: s1.Angle(lambda).Normalized(),
		Latitude:  s1.Angle(phi),
		Altitude:  altitude,
	}, nil
}

// LatLongParams selects the plain angular grid: longitude scaled by the
// semi-major axis and latitude by the semi-minor axis.
type LatLongParams struct{}

// Kind implements ProjectionParams.
func (LatLongParams) Kind() Kind { return KindLatLong }

func (p LatLongParams) build(e Ellipsoid, _ Solver) (Projection, error) {
	return &LatLong{ellipsoid: e}, nil
}

// LatLong is the identity projection of unprojected coordinate systems.
type LatLong struct {
	ellipsoid Ellipsoid
}

// Kind implements Projection.
func (*LatLong) Kind() Kind { return KindLatLong }

// Forward implements Projection.
func (l *LatLong) Forward(g Geodesic) (Geographic, error) {
	if err := checkGeodesic(g); err != nil {
		return Geographic{}, err
	}
	return planar(KindLatLong, g.Longitude.Radians()*l.ellipsoid.A, g.Latitude.Radians()*l.ellipsoid.B, g.Altitude)
}

// Inverse implements Projection.
func (l *LatLong) Inverse(p Geographic) (Geodesic, error) {
	if err := checkGeographic(p); err != nil {
		return Geodesic{}, err
	}
	return geodetic(KindLatLong, p.X/l.ellipsoid.A, p.Y/l.ellipsoid.B, p.Altitude)
}
