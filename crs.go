package geodesy

import (
	"fmt"
)

// CRS is a projected coordinate reference system: a datum, the linear unit of
// its planar coordinates and a projection method with its parameters.
type CRS struct {
	EPSG   int
	Name   string
	Datum  Datum
	Unit   Unit
	Params ProjectionParams

	solver     Solver
	projection Projection
}

// CRSOption customises CRS construction.
type CRSOption func(*CRS)

// WithSolver sets the iteration policy used by the projection inverses and
// datum transformations of the CRS.
func WithSolver(s Solver) CRSOption {
	return func(c *CRS) {
		c.solver = s
	}
}

// WithName sets the display name.
func WithName(name string) CRSOption {
	return func(c *CRS) {
		c.Name = name
	}
}

// WithEPSG sets the EPSG identifier.
func WithEPSG(id int) CRSOption {
	return func(c *CRS) {
		c.EPSG = id
	}
}

// NewCRS validates every component and builds the projection. Invalid
// parameters are reported here rather than on first use.
func NewCRS(datum Datum, unit Unit, params ProjectionParams, opts ...CRSOption) (*CRS, error) {
	c := &CRS{
		Datum:  datum,
		Unit:   unit,
		Params: params,
		solver: DefaultSolver,
	}
	for _, opt := range opts {
		opt(c)
	}
	if err := datum.Validate(); err != nil {
		return nil, fmt.Errorf("crs %q: %w", c.Name, err)
	}
	if err := unit.Validate(); err != nil {
		return nil, fmt.Errorf("crs %q: %w", c.Name, err)
	}
	p, err := newProjection(datum.Ellipsoid, params, c.solver)
	if err != nil {
		return nil, fmt.Errorf("crs %q: %w", c.Name, err)
	}
	c.projection = p
	return c, nil
}

// Kind returns the projection method.
func (c *CRS) Kind() Kind {
	return c.projection.Kind()
}

// Projection returns the projection working in meters, before unit scaling.
func (c *CRS) Projection() Projection {
	return c.projection
}

// Project converts a geodesic point of the CRS datum to planar coordinates
// in the CRS unit.
func (c *CRS) Project(g Geodesic) (Geographic, error) {
	p, err := c.projection.Forward(g)
	if err != nil {
		return Geographic{}, err
	}
	p.X /= c.Unit.Ratio
	p.Y /= c.Unit.Ratio
	return p, nil
}

// Deproject converts planar coordinates in the CRS unit to a geodesic point
// of the CRS datum.
func (c *CRS) Deproject(p Geographic) (Geodesic, error) {
	p.X *= c.Unit.Ratio
	p.Y *= c.Unit.Ratio
	return c.projection.Inverse(p)
}

// Transform moves planar coordinates of c to planar coordinates of dst,
// through geodesic coordinates and a datum transformation.
func (c *CRS) Transform(dst *CRS, p Geographic) (Geographic, error) {
	g, err := c.Deproject(p)
	if err != nil {
		return Geographic{}, fmt.Errorf("deproject from %q: %w", c.Name, err)
	}
	g = c.Datum.transform(c.solver, dst.Datum, g)
	q, err := dst.Project(g)
	if err != nil {
		return Geographic{}, fmt.Errorf("project to %q: %w", dst.Name, err)
	}
	return q, nil
}

// TransformCRS moves planar coordinates from src to dst.
func TransformCRS(src, dst *CRS, p Geographic) (Geographic, error) {
	return src.Transform(dst, p)
}

func (c *CRS) String() string {
	return fmt.Sprintf("<Crs epsg=%d %s %s projection %s>", c.EPSG, c.Unit, c.Datum, c.Kind())
}
