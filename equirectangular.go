package geodesy

import (
	"fmt"
	"math"

	"github.com/golang/geo/s1"
)

// EquirectangularParams configures the equidistant cylindrical projection.
// Scale is true along StandardParallel.
type EquirectangularParams struct {
	CentralMeridian  s1.Angle
	OriginLatitude   s1.Angle
	StandardParallel s1.Angle
	FalseEasting     float64
	FalseNorthing    float64
}

// Kind implements ProjectionParams.
func (EquirectangularParams) Kind() Kind { return KindEquirectangular }

func (p EquirectangularParams) build(e Ellipsoid, _ Solver) (Projection, error) {
	return NewEquirectangular(e, p)
}

// Equirectangular maps meridians and parallels to equally spaced lines.
type Equirectangular struct {
	params EquirectangularParams
	a      float64
	cos1   float64
}

// NewEquirectangular validates the parameters and builds the projection.
func NewEquirectangular(e Ellipsoid, p EquirectangularParams) (*Equirectangular, error) {
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
	if err := checkFalseOrigin(p.FalseEasting, p.FalseNorthing); err != nil {
		return nil, err
	}
	return &Equirectangular{params: p, a: e.A, cos1: math.Cos(p.StandardParallel.Radians())}, nil
}

// Kind implements Projection.
func (*Equirectangular) Kind() Kind { return KindEquirectangular }

// Forward implements Projection.
func (q *Equirectangular) Forward(g Geodesic) (Geographic, error) {
	if err := checkGeodesic(g); err != nil {
		return Geographic{}, err
	}
	lambda := wrapLongitude((g.Longitude - q.params.CentralMeridian).Radians())
	return planar(KindEquirectangular,
		q.cos1*lambda*q.a+q.params.FalseEasting,
		(g.Latitude-q.params.OriginLatitude).Radians()*q.a+q.params.FalseNorthing,
		g.Altitude)
}

// Inverse implements Projection.
func (q *Equirectangular) Inverse(p Geographic) (Geodesic, error) {
	if err := checkGeographic(p); err != nil {
		return Geodesic{}, err
	}
	return geodetic(KindEquirectangular,
		(p.X-q.params.FalseEasting)/(q.cos1*q.a)+q.params.CentralMeridian.Radians(),
		(p.Y-q.params.FalseNorthing)/q.a+q.params.OriginLatitude.Radians(),
		p.Altitude)
}
