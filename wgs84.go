package geodesy

import "fmt"

// WGS84 is the World Geodetic System 1984 ellipsoid.
var WGS84 Ellipsoid

// WGS84Datum is the reference datum: every other datum carries its Helmert
// parameters towards it.
var WGS84Datum Datum

func init() {
	const semiMajorAxis = 6378137
	const flattening = 1 / 298.257223563
	var err error
	WGS84, err = NewEllipsoid(semiMajorAxis, flattening)
	if err != nil {
		panic(fmt.Sprintf("error constructing WGS84 ellipsoid: %s", err))
	}
	WGS84.EPSG, WGS84.Name = 7030, "WGS 84"

	WGS84Datum, err = NewDatum(WGS84, Greenwich, Helmert{})
	if err != nil {
		panic(fmt.Sprintf("error constructing WGS84 datum: %s", err))
	}
	WGS84Datum.EPSG, WGS84Datum.Name = 6326, "World Geodetic System 1984"
}
