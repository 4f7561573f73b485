package geodesy

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
)

// arcsecond in radians
const arcSecond = math.Pi / 648000

// Helmert holds the seven parameters of a similarity transformation towards
// the reference (WGS84) frame, position vector convention.
type Helmert struct {
	Dx, Dy, Dz float64 // translations in meters
	Rx, Ry, Rz float64 // rotations in arcseconds
	Ds         float64 // scale change in parts per million
}

func (h Helmert) finite() bool {
	for _, v := range []float64{h.Dx, h.Dy, h.Dz, h.Rx, h.Ry, h.Rz, h.Ds} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// PrimeMeridian is the meridian longitudes of a datum are counted from,
// expressed as its Greenwich longitude.
type PrimeMeridian struct {
	EPSG      int
	Name      string
	Longitude s1.Angle
}

// Greenwich is the zero prime meridian.
var Greenwich = PrimeMeridian{EPSG: 8901, Name: "Greenwich"}

// Datum ties an ellipsoid to the reference frame.
type Datum struct {
	EPSG          int
	Name          string
	Ellipsoid     Ellipsoid
	PrimeMeridian PrimeMeridian
	ToWGS84       Helmert
}

// NewDatum validates its arguments and builds a datum.
func NewDatum(ellipsoid Ellipsoid, prime PrimeMeridian, toWGS84 Helmert) (Datum, error) {
	d := Datum{Ellipsoid: ellipsoid, PrimeMeridian: prime, ToWGS84: toWGS84}
	if err := d.Validate(); err != nil {
		return Datum{}, err
	}
	return d, nil
}

// Validate reports whether the datum can be used in transformations.
func (d Datum) Validate() error {
	if err := d.Ellipsoid.Validate(); err != nil {
		return fmt.Errorf("datum %q: %w", d.Name, err)
	}
	if !d.ToWGS84.finite() {
		return fmt.Errorf("%w: datum %q has non-finite Helmert parameters", ErrInvalidParameter, d.Name)
	}
	lon := d.PrimeMeridian.Longitude.Radians()
	if math.IsNaN(lon) || math.Abs(lon) > math.Pi {
		return fmt.Errorf("%w: prime meridian longitude out of range", ErrInvalidParameter)
	}
	return nil
}

func (d Datum) String() string {
	h := d.ToWGS84
	return fmt.Sprintf("<Datum epsg=%d %s to wgs84: %g, %g, %g, %g, %g, %g, %g>",
		d.EPSG, d.Ellipsoid, h.Dx, h.Dy, h.Dz, h.Ds, h.Rx, h.Ry, h.Rz)
}

// ToGeocentric converts a point whose longitude is counted from the datum's
// prime meridian to geocentric coordinates.
func (d Datum) ToGeocentric(g Geodesic) Geocentric {
	g.Longitude += d.PrimeMeridian.Longitude
	return d.Ellipsoid.ToGeocentric(g)
}

// ToGeodesic converts geocentric coordinates to a point whose longitude is
// counted from the datum's prime meridian.
func (d Datum) ToGeodesic(p Geocentric) Geodesic {
	return d.toGeodesic(DefaultSolver, p)
}

func (d Datum) toGeodesic(s Solver, p Geocentric) Geodesic {
	g, _ := s.ToGeodesic(d.Ellipsoid, p)
	g.Longitude -= d.PrimeMeridian.Longitude
	return g
}

// Transform moves a geodesic point expressed in d to dst, through geocentric
// coordinates.
func (d Datum) Transform(dst Datum, g Geodesic) Geodesic {
	return d.transform(DefaultSolver, dst, g)
}

func (d Datum) transform(s Solver, dst Datum, g Geodesic) Geodesic {
	return dst.toGeodesic(s, TransformGeocentric(d, dst, d.ToGeocentric(g)))
}

// TransformGeocentric applies the difference between the Helmert parameters
// of src and dst to p, with the small angle rotation matrix. Transforming a
// datum to itself returns p unchanged.
func TransformGeocentric(src, dst Datum, p Geocentric) Geocentric {
	s, t := src.ToWGS84, dst.ToWGS84
	rx := (s.Rx - t.Rx) * arcSecond
	ry := (s.Ry - t.Ry) * arcSecond
	rz := (s.Rz - t.Rz) * arcSecond
	scale := 1 + (s.Ds-t.Ds)/1e6

	v := p.Vector()
	rotated := r3.Vector{
		X: r3.Vector{X: 1, Y: -rz, Z: ry}.Dot(v),
		Y: r3.Vector{X: rz, Y: 1, Z: -rx}.Dot(v),
		Z: r3.Vector{X: -ry, Y: rx, Z: 1}.Dot(v),
	}
	shift := r3.Vector{X: s.Dx - t.Dx, Y: s.Dy - t.Dy, Z: s.Dz - t.Dz}
	return GeocentricFromVector(shift.Add(rotated.Mul(scale)))
}
