package geodesy

import (
	"fmt"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// Geodesic is a position on an ellipsoid: longitude, latitude and the
// ellipsoidal height in meters.
type Geodesic struct {
	Longitude s1.Angle
	Latitude  s1.Angle
	Altitude  float64
}

// GeodesicFromDegrees builds a geodesic point from degrees and meters.
func GeodesicFromDegrees(longitude, latitude, altitude float64) Geodesic {
	return Geodesic{
		Longitude: s1.Angle(longitude) * s1.Degree,
		Latitude:  s1.Angle(latitude) * s1.Degree,
		Altitude:  altitude,
	}
}

// GeodesicFromLatLng builds a geodesic point from an s2.LatLng and a height.
func GeodesicFromLatLng(ll s2.LatLng, altitude float64) Geodesic {
	return Geodesic{Longitude: ll.Lng, Latitude: ll.Lat, Altitude: altitude}
}

// LatLng drops the height.
func (g Geodesic) LatLng() s2.LatLng {
	return s2.LatLng{Lat: g.Latitude, Lng: g.Longitude}
}

func (g Geodesic) String() string {
	return fmt.Sprintf("<lon=%s lat=%s alt=%.3f>",
		ToDMS(g.Longitude.Degrees()), ToDMS(g.Latitude.Degrees()), g.Altitude)
}

// Geocentric is a cartesian position in meters relative to the center of an
// ellipsoid. Z points to the north pole, X to the prime meridian.
type Geocentric struct {
	X, Y, Z float64
}

// GeocentricFromVector converts an r3.Vector.
func GeocentricFromVector(v r3.Vector) Geocentric {
	return Geocentric{X: v.X, Y: v.Y, Z: v.Z}
}

// Vector returns the position as an r3.Vector.
func (p Geocentric) Vector() r3.Vector {
	return r3.Vector{X: p.X, Y: p.Y, Z: p.Z}
}

func (p Geocentric) String() string {
	return fmt.Sprintf("<X=%.3f Y=%.3f Z=%.3f>", p.X, p.Y, p.Z)
}

// Geographic is a position on a map projection. X and Y only have a meaning
// relative to the CRS that produced them; Altitude is carried through.
type Geographic struct {
	X, Y     float64
	Altitude float64
}

func (p Geographic) String() string {
	return fmt.Sprintf("<X=%.3f Y=%.3f alt=%.3f>", p.X, p.Y, p.Altitude)
}
