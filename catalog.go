package geodesy

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/dhconnelly/rtreego"
	"github.com/golang/geo/s1"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalogYAML string

// Catalog is a parameter registry keyed by EPSG identifier: units, prime
// meridians, ellipsoids, datums and projected systems. Angles are stored in
// degrees. Every record can also be found by its case-insensitive name.
//
// A Catalog is read-only once loaded and safe for concurrent use.
type Catalog struct {
	units      map[int]Unit
	primes     map[int]PrimeMeridian
	ellipsoids map[int]Ellipsoid
	datums     map[int]Datum
	crs        map[int]crsRecord
	names      map[string]map[string]int

	areas *rtreego.Rtree
}

type catalogFile struct {
	Units          []unitRecord      `yaml:"units"`
	PrimeMeridians []primeRecord     `yaml:"prime_meridians"`
	Ellipsoids     []ellipsoidRecord `yaml:"ellipsoids"`
	Datums         []datumRecord     `yaml:"datums"`
	CRS            []crsRecord       `yaml:"crs"`
}

type unitRecord struct {
	EPSG  int     `yaml:"epsg"`
	Name  string  `yaml:"name"`
	Ratio float64 `yaml:"ratio"`
}

type primeRecord struct {
	EPSG      int     `yaml:"epsg"`
	Name      string  `yaml:"name"`
	Longitude float64 `yaml:"longitude"`
}

type ellipsoidRecord struct {
	EPSG int     `yaml:"epsg"`
	Name string  `yaml:"name"`
	A    float64 `yaml:"a"`
	B    float64 `yaml:"b"`
	InvF float64 `yaml:"invf"`
}

type datumRecord struct {
	EPSG          int       `yaml:"epsg"`
	Name          string    `yaml:"name"`
	Ellipsoid     int       `yaml:"ellipsoid"`
	PrimeMeridian int       `yaml:"prime_meridian"`
	ToWGS84       []float64 `yaml:"towgs84"` // dx dy dz rx ry rz ds
}

type crsRecord struct {
	EPSG       int       `yaml:"epsg"`
	Name       string    `yaml:"name"`
	Datum      int       `yaml:"datum"`
	Unit       int       `yaml:"unit"`
	Projection string    `yaml:"projection"`
	Lambda0    float64   `yaml:"lambda0"`
	Phi0       float64   `yaml:"phi0"`
	Phi1       float64   `yaml:"phi1"`
	Phi2       float64   `yaml:"phi2"`
	K0         float64   `yaml:"k0"`
	X0         float64   `yaml:"x0"`
	Y0         float64   `yaml:"y0"`
	Azimuth    float64   `yaml:"azimuth"`
	Gamma      *float64  `yaml:"gamma"`
	Area       []float64 `yaml:"area"` // west south east north, west > east crosses 180°
}

// areaEntry is the rtreego.Spatial stored for every CRS with an area of use.
type areaEntry struct {
	epsg                     int
	west, south, east, north float64
}

// Bounds implements rtreego.Spatial.
func (a areaEntry) Bounds() rtreego.Rect {
	point := rtreego.Point{a.west, a.south}
	lengths := []float64{a.east - a.west, a.north - a.south}
	rect, _ := rtreego.NewRect(point, lengths)
	return rect
}

func (a areaEntry) contains(lon, lat float64) bool {
	return lon >= a.west && lon <= a.east && lat >= a.south && lat <= a.north
}

const (
	tableUnit      = "unit"
	tablePrime     = "prime meridian"
	tableEllipsoid = "ellipsoid"
	tableDatum     = "datum"
	tableCRS       = "crs"
)

var (
	defaultCatalog     *Catalog
	defaultCatalogOnce sync.Once
)

// DefaultCatalog returns the catalog embedded in the package. It panics if
// the embedded document is invalid.
func DefaultCatalog() *Catalog {
	defaultCatalogOnce.Do(func() {
		c, err := LoadCatalog(strings.NewReader(defaultCatalogYAML))
		if err != nil {
			panic(fmt.Sprintf("error loading embedded catalog: %s", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// LoadCatalog reads a YAML catalog. Units, prime meridians, ellipsoids and
// datums are validated while loading. Projected systems are resolved on
// lookup, so a catalog may list methods this package does not implement.
func LoadCatalog(r io.Reader) (*Catalog, error) {
	var doc catalogFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}

	c := &Catalog{
		units:      map[int]Unit{},
		primes:     map[int]PrimeMeridian{Greenwich.EPSG: Greenwich},
		ellipsoids: map[int]Ellipsoid{},
		datums:     map[int]Datum{},
		crs:        map[int]crsRecord{},
		names:      map[string]map[string]int{},
		areas:      rtreego.NewTree(2, 25, 50),
	}
	c.addName(tablePrime, Greenwich.Name, Greenwich.EPSG)

	for _, rec := range doc.Units {
		u := Unit{EPSG: rec.EPSG, Name: rec.Name, Ratio: rec.Ratio}
		if err := u.Validate(); err != nil {
			return nil, fmt.Errorf("unit %d: %w", rec.EPSG, err)
		}
		c.units[rec.EPSG] = u
		c.addName(tableUnit, rec.Name, rec.EPSG)
	}
	if _, ok := c.units[Metre.EPSG]; !ok {
		c.units[Metre.EPSG] = Metre
		c.addName(tableUnit, Metre.Name, Metre.EPSG)
	}

	for _, rec := range doc.PrimeMeridians {
		c.primes[rec.EPSG] = PrimeMeridian{
			EPSG:      rec.EPSG,
			Name:      rec.Name,
			Longitude: s1.Angle(rec.Longitude) * s1.Degree,
		}
		c.addName(tablePrime, rec.Name, rec.EPSG)
	}

	for _, rec := range doc.Ellipsoids {
		e, err := rec.ellipsoid()
		if err != nil {
			return nil, fmt.Errorf("ellipsoid %d: %w", rec.EPSG, err)
		}
		c.ellipsoids[rec.EPSG] = e
		c.addName(tableEllipsoid, rec.Name, rec.EPSG)
	}

	for _, rec := range doc.Datums {
		d, err := c.datum(rec)
		if err != nil {
			return nil, fmt.Errorf("datum %d: %w", rec.EPSG, err)
		}
		c.datums[rec.EPSG] = d
		c.addName(tableDatum, rec.Name, rec.EPSG)
	}

	for _, rec := range doc.CRS {
		if _, ok := c.datums[rec.Datum]; !ok {
			return nil, fmt.Errorf("crs %d: %w: datum %d", rec.EPSG, ErrNotFound, rec.Datum)
		}
		if _, ok := c.units[rec.unit()]; !ok {
			return nil, fmt.Errorf("crs %d: %w: unit %d", rec.EPSG, ErrNotFound, rec.Unit)
		}
		if len(rec.Area) > 0 {
			areas, err := rec.areas()
			if err != nil {
				return nil, fmt.Errorf("crs %d: %w", rec.EPSG, err)
			}
			for _, a := range areas {
				c.areas.Insert(a)
			}
		}
		c.crs[rec.EPSG] = rec
		c.addName(tableCRS, rec.Name, rec.EPSG)
	}
	return c, nil
}

func (c *Catalog) addName(table, name string, id int) {
	if name == "" {
		return
	}
	if c.names[table] == nil {
		c.names[table] = map[string]int{}
	}
	c.names[table][strings.ToLower(name)] = id
}

func (c *Catalog) idByName(table, name string) (int, error) {
	id, ok := c.names[table][strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("%w: %s %q", ErrNotFound, table, name)
	}
	return id, nil
}

func lookup[T any](m map[int]T, table string, id int) (T, error) {
	v, ok := m[id]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: %s %d", ErrNotFound, table, id)
	}
	return v, nil
}

func (rec ellipsoidRecord) ellipsoid() (Ellipsoid, error) {
	var (
		e   Ellipsoid
		err error
	)
	switch {
	case rec.InvF > 0:
		e, err = NewEllipsoid(rec.A, 1/rec.InvF)
	case rec.B > 0:
		e, err = NewEllipsoidFromAxes(rec.A, rec.B)
	default:
		e, err = NewEllipsoid(rec.A, 0)
	}
	if err != nil {
		return Ellipsoid{}, err
	}
	e.EPSG, e.Name = rec.EPSG, rec.Name
	return e, nil
}

func (c *Catalog) datum(rec datumRecord) (Datum, error) {
	e, err := lookup(c.ellipsoids, tableEllipsoid, rec.Ellipsoid)
	if err != nil {
		return Datum{}, err
	}
	prime := Greenwich
	if rec.PrimeMeridian != 0 {
		if prime, err = lookup(c.primes, tablePrime, rec.PrimeMeridian); err != nil {
			return Datum{}, err
		}
	}
	var h Helmert
	switch len(rec.ToWGS84) {
	case 0:
	case 3, 7:
		p := append(rec.ToWGS84, make([]float64, 7-len(rec.ToWGS84))...)
		h = Helmert{Dx: p[0], Dy: p[1], Dz: p[2], Rx: p[3], Ry: p[4], Rz: p[5], Ds: p[6]}
	default:
		return Datum{}, fmt.Errorf("%w: towgs84 needs 3 or 7 values, got %d", ErrInvalidParameter, len(rec.ToWGS84))
	}
	d, err := NewDatum(e, prime, h)
	if err != nil {
		return Datum{}, err
	}
	d.EPSG, d.Name = rec.EPSG, rec.Name
	return d, nil
}

func (rec crsRecord) unit() int {
	if rec.Unit == 0 {
		return Metre.EPSG
	}
	return rec.Unit
}

// areas returns the rectangles of the area of use. An area crossing the
// antimeridian is split in two at 180°.
func (rec crsRecord) areas() ([]areaEntry, error) {
	if len(rec.Area) != 4 {
		return nil, fmt.Errorf("%w: area needs west, south, east and north", ErrInvalidParameter)
	}
	a := areaEntry{epsg: rec.EPSG, west: rec.Area[0], south: rec.Area[1], east: rec.Area[2], north: rec.Area[3]}
	if !(a.south < a.north) || a.west == a.east {
		return nil, fmt.Errorf("%w: empty area of use", ErrInvalidParameter)
	}
	if a.west < -180 || a.west > 180 || a.east < -180 || a.east > 180 {
		return nil, fmt.Errorf("%w: area longitudes must lie in [-180, 180]", ErrInvalidParameter)
	}
	if a.west < a.east {
		return []areaEntry{a}, nil
	}
	east, west := a, a
	east.east = 180
	west.west = -180
	return []areaEntry{east, west}, nil
}

// params maps the flat record to the parameter set of its projection.
func (rec crsRecord) params() (ProjectionParams, error) {
	kind, err := ParseKind(rec.Projection)
	if err != nil {
		return nil, err
	}
	deg := func(v float64) s1.Angle { return s1.Angle(v) * s1.Degree }
	k0 := rec.K0
	if k0 == 0 {
		k0 = 1
	}
	switch kind {
	case KindLatLong:
		return LatLongParams{}, nil
	case KindMercator:
		return MercatorParams{
			CentralMeridian:  deg(rec.Lambda0),
			OriginLatitude:   deg(rec.Phi0),
			StandardParallel: deg(rec.Phi1),
			ScaleFactor:      k0,
			FalseEasting:     rec.X0,
			FalseNorthing:    rec.Y0,
		}, nil
	case KindTransverseMercator:
		return TransverseMercatorParams{
			CentralMeridian: deg(rec.Lambda0),
			OriginLatitude:  deg(rec.Phi0),
			ScaleFactor:     k0,
			FalseEasting:    rec.X0,
			FalseNorthing:   rec.Y0,
		}, nil
	case KindLambertConformalConic:
		return LambertConformalConicParams{
			CentralMeridian:   deg(rec.Lambda0),
			OriginLatitude:    deg(rec.Phi0),
			StandardParallel1: deg(rec.Phi1),
			StandardParallel2: deg(rec.Phi2),
			ScaleFactor:       k0,
			FalseEasting:      rec.X0,
			FalseNorthing:     rec.Y0,
		}, nil
	case KindObliqueMercator:
		var gamma *s1.Angle
		if rec.Gamma != nil {
			g := deg(*rec.Gamma)
			gamma = &g
		}
		return ObliqueMercatorParams{
			CenterLongitude:    deg(rec.Lambda0),
			CenterLatitude:     deg(rec.Phi0),
			Azimuth:            deg(rec.Azimuth),
			RectifiedGridAngle: gamma,
			ScaleFactor:        k0,
			FalseEasting:       rec.X0,
			FalseNorthing:      rec.Y0,
		}, nil
	case KindMiller:
		return MillerParams{
			CentralMeridian: deg(rec.Lambda0),
			FalseEasting:    rec.X0,
			FalseNorthing:   rec.Y0,
		}, nil
	case KindEquirectangular:
		return EquirectangularParams{
			CentralMeridian:  deg(rec.Lambda0),
			OriginLatitude:   deg(rec.Phi0),
			StandardParallel: deg(rec.Phi1),
			FalseEasting:     rec.X0,
			FalseNorthing:    rec.Y0,
		}, nil
	}
	return nil, fmt.Errorf("%w: projection %s", ErrNotImplemented, kind)
}

// Unit returns the unit with the given EPSG identifier.
func (c *Catalog) Unit(id int) (Unit, error) {
	return lookup(c.units, tableUnit, id)
}

// UnitByName returns the unit with the given name.
func (c *Catalog) UnitByName(name string) (Unit, error) {
	id, err := c.idByName(tableUnit, name)
	if err != nil {
		return Unit{}, err
	}
	return c.Unit(id)
}

// PrimeMeridian returns the prime meridian with the given EPSG identifier.
func (c *Catalog) PrimeMeridian(id int) (PrimeMeridian, error) {
	return lookup(c.primes, tablePrime, id)
}

// Ellipsoid returns the ellipsoid with the given EPSG identifier.
func (c *Catalog) Ellipsoid(id int) (Ellipsoid, error) {
	return lookup(c.ellipsoids, tableEllipsoid, id)
}

// EllipsoidByName returns the ellipsoid with the given name.
func (c *Catalog) EllipsoidByName(name string) (Ellipsoid, error) {
	id, err := c.idByName(tableEllipsoid, name)
	if err != nil {
		return Ellipsoid{}, err
	}
	return c.Ellipsoid(id)
}

// Datum returns the datum with the given EPSG identifier.
func (c *Catalog) Datum(id int) (Datum, error) {
	return lookup(c.datums, tableDatum, id)
}

// DatumByName returns the datum with the given name.
func (c *Catalog) DatumByName(name string) (Datum, error) {
	id, err := c.idByName(tableDatum, name)
	if err != nil {
		return Datum{}, err
	}
	return c.Datum(id)
}

// CRS builds the projected system with the given EPSG identifier. Options
// are applied after the catalog's name and identifier. A projection method
// without implementation yields ErrNotImplemented.
func (c *Catalog) CRS(id int, opts ...CRSOption) (*CRS, error) {
	rec, err := lookup(c.crs, tableCRS, id)
	if err != nil {
		return nil, err
	}
	params, err := rec.params()
	if err != nil {
		return nil, fmt.Errorf("crs %d: %w", id, err)
	}
	// references were checked by LoadCatalog
	datum := c.datums[rec.Datum]
	unit := c.units[rec.unit()]
	opts = append([]CRSOption{WithEPSG(rec.EPSG), WithName(rec.Name)}, opts...)
	return NewCRS(datum, unit, params, opts...)
}

// CRSByName builds the projected system with the given name.
func (c *Catalog) CRSByName(name string, opts ...CRSOption) (*CRS, error) {
	id, err := c.idByName(tableCRS, name)
	if err != nil {
		return nil, err
	}
	return c.CRS(id, opts...)
}

// Covering returns, in increasing order, the EPSG identifiers of the
// projected systems whose area of use contains g.
func (c *Catalog) Covering(g Geodesic) []int {
	const tol = 1e-9
	lon, lat := g.Longitude.Normalized().Degrees(), g.Latitude.Degrees()
	query, err := rtreego.NewRect(rtreego.Point{lon - tol, lat - tol}, []float64{2 * tol, 2 * tol})
	if err != nil {
		return nil
	}
	var ids []int
	seen := make(map[int]bool)
	for _, s := range c.areas.SearchIntersect(query) {
		if a := s.(areaEntry); a.contains(lon, lat) && !seen[a.epsg] {
			seen[a.epsg] = true
			ids = append(ids, a.epsg)
		}
	}
	sort.Ints(ids)
	return ids
}
