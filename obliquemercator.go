package geodesy

import (
	"fmt"
	"math"

	"github.com/golang/geo/s1"
)

// ObliqueMercatorParams configures a Hotine Oblique Mercator projection
// (rectified skew orthomorphic) with its false origin at the projection
// centre. RectifiedGridAngle rotates the skew grid to the output grid; when
// nil the azimuth of the initial line is used.
type ObliqueMercatorParams struct {
	CenterLongitude    s1.Angle
	CenterLatitude     s1.Angle
	Azimuth            s1.Angle // of the initial line at the centre
	RectifiedGridAngle *s1.Angle
	ScaleFactor        float64 // on the initial line
	FalseEasting       float64
	FalseNorthing      float64
}

// Kind implements ProjectionParams.
func (ObliqueMercatorParams) Kind() Kind { return KindObliqueMercator }

func (p ObliqueMercatorParams) build(e Ellipsoid, _ Solver) (Projection, error) {
	return NewObliqueMercator(e, p)
}

// ObliqueMercator implements the Hotine variant B formulas of EPSG guidance
// note 7-2. Neither direction iterates.
type ObliqueMercator struct {
	params    ObliqueMercatorParams
	ellipsoid Ellipsoid

	b, a, h      float64
	gamma0       float64
	lambda0      float64
	uc           float64
	sinG0, cosG0 float64
	sinGc, cosGc float64
}

// NewObliqueMercator validates the parameters and computes the constants of
// the projection.
func NewObliqueMercator(e Ellipsoid, p ObliqueMercatorParams) (*ObliqueMercator, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	if err := checkLongitude("centre longitude", p.CenterLongitude); err != nil {
		return nil, err
	}
	if err := checkLatitude("centre latitude", p.CenterLatitude); err != nil {
		return nil, err
	}
	phic := p.CenterLatitude.Radians()
	if phic == 0 || math.Abs(phic) >= math.Pi/2 {
		return nil, fmt.Errorf("%w: centre latitude must lie strictly between the equator and a pole", ErrInvalidParameter)
	}
	alphac := p.Azimuth.Radians()
	if !isFinite(alphac) {
		return nil, fmt.Errorf("%w: azimuth must be finite", ErrInvalidParameter)
	}
	gammac := alphac
	if p.RectifiedGridAngle != nil {
		gammac = p.RectifiedGridAngle.Radians()
		if !isFinite(gammac) {
			return nil, fmt.Errorf("%w: rectified grid angle must be finite", ErrInvalidParameter)
		}
	}
	if err := checkScaleFactor(p.ScaleFactor); err != nil {
		return nil, err
	}
	if err := checkFalseOrigin(p.FalseEasting, p.FalseNorthing); err != nil {
		return nil, err
	}

	e2 := e.E * e.E
	sinPhic, cosPhic := math.Sincos(phic)
	sign := 1.0
	if phic < 0 {
		sign = -1
	}

	o := &ObliqueMercator{params: p, ellipsoid: e}
	o.b = math.Sqrt(1 + e2*math.Pow(cosPhic, 4)/(1-e2))
	o.a = e.A * o.b * p.ScaleFactor * math.Sqrt(1-e2) / (1 - e2*sinPhic*sinPhic)
	t0 := conformalT(e.E, phic)
	d := o.b * math.Sqrt(1-e2) / (cosPhic * math.Sqrt(1-e2*sinPhic*sinPhic))
	d2 := 1.0
	if d >= 1 {
		d2 = d * d
	}
	f := d + math.Sqrt(d2-1)*sign
	o.h = f * math.Pow(t0, o.b)
	g := (f - 1/f) / 2

	sinG0 := math.Sin(alphac) / d
	if math.Abs(sinG0) > 1 {
		return nil, fmt.Errorf("%w: azimuth not reachable from the centre latitude", ErrInvalidParameter)
	}
	o.gamma0 = math.Asin(sinG0)
	arg := g * math.Tan(o.gamma0)
	if math.Abs(arg) > 1 {
		return nil, fmt.Errorf("%w: azimuth not reachable from the centre latitude", ErrInvalidParameter)
	}
	o.lambda0 = p.CenterLongitude.Radians() - math.Asin(arg)/o.b

	if math.Abs(math.Cos(alphac)) < defaultEpsilon {
		o.uc = o.a * (p.CenterLongitude.Radians() - o.lambda0)
	} else {
		// gamma0 is the same for alphac and pi-alphac, so uc only depends
		// on the magnitude of the angle
		o.uc = o.a / o.b * math.Abs(math.Atan(math.Sqrt(d2-1)/math.Cos(alphac))) * sign
	}

	o.sinG0, o.cosG0 = math.Sincos(o.gamma0)
	o.sinGc, o.cosGc = math.Sincos(gammac)
	return o, nil
}

// conformalT is the t function of the isometric latitude, exp(-psi).
func conformalT(e, phi float64) float64 {
	es := e * math.Sin(phi)
	return math.Tan(math.Pi/4-phi/2) / math.Pow((1-es)/(1+es), e/2)
}

// Kind implements Projection.
func (*ObliqueMercator) Kind() Kind { return KindObliqueMercator }

// Forward implements Projection.
func (o *ObliqueMercator) Forward(g Geodesic) (Geographic, error) {
	if err := checkGeodesic(g); err != nil {
		return Geographic{}, err
	}
	phi := g.Latitude.Radians()
	if math.Abs(phi) >= math.Pi/2 {
		return Geographic{}, fmt.Errorf("%w: oblique mercator pole", ErrOutOfRange)
	}
	t := conformalT(o.ellipsoid.E, phi)
	q := o.h / math.Pow(t, o.b)
	s := (q - 1/q) / 2
	tt := (q + 1/q) / 2
	dl := wrapLongitude(g.Longitude.Radians() - o.lambda0)
	sinBdl, cosBdl := math.Sincos(o.b * dl)
	u0 := (-sinBdl*o.cosG0 + s*o.sinG0) / tt
	if math.Abs(u0) >= 1 {
		return Geographic{}, fmt.Errorf("%w: point on the oblique mercator singular line", ErrOutOfRange)
	}
	v := o.a * math.Log((1-u0)/(1+u0)) / (2 * o.b)
	u := o.a*math.Atan2(s*o.cosG0+sinBdl*o.sinG0, cosBdl)/o.b - o.uc

	return planar(KindObliqueMercator,
		v*o.cosGc+u*o.sinGc+o.params.FalseEasting,
		u*o.cosGc-v*o.sinGc+o.params.FalseNorthing,
		g.Altitude)
}

// Inverse implements Projection.
func (o *ObliqueMercator) Inverse(p Geographic) (Geodesic, error) {
	if err := checkGeographic(p); err != nil {
		return Geodesic{}, err
	}
	de := p.X - o.params.FalseEasting
	dn := p.Y - o.params.FalseNorthing
	v := de*o.cosGc - dn*o.sinGc
	u := dn*o.cosGc + de*o.sinGc + o.uc

	q := math.Exp(-o.b * v / o.a)
	s := (q - 1/q) / 2
	tt := (q + 1/q) / 2
	sinBu, cosBu := math.Sincos(o.b * u / o.a)
	u0 := (sinBu*o.cosG0 + s*o.sinG0) / tt
	if math.Abs(u0) >= 1 {
		return Geodesic{}, fmt.Errorf("%w: oblique mercator pole", ErrOutOfRange)
	}
	t := math.Pow(o.h/math.Sqrt((1+u0)/(1-u0)), 1/o.b)
	chi := math.Pi/2 - 2*math.Atan(t)

	e2 := o.ellipsoid.E * o.ellipsoid.E
	e4 := e2 * e2
	e6 := e4 * e2
	e8 := e4 * e4
	phi := chi +
		math.Sin(2*chi)*(e2/2+5*e4/24+e6/12+13*e8/360) +
		math.Sin(4*chi)*(7*e4/48+29*e6/240+811*e8/11520) +
		math.Sin(6*chi)*(7*e6/120+81*e8/1120) +
		math.Sin(8*chi)*(4279*e8/161280)
	lambda := o.lambda0 - math.Atan2(s*o.cosG0-sinBu*o.sinG0, cosBu)/o.b

	return geodetic(KindObliqueMercator, lambda, phi, p.Altitude)
}
