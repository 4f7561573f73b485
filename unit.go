package geodesy

import (
	"fmt"
	"math"
)

// Unit is a linear unit of planar coordinates. Ratio is the length of one
// unit in meters.
type Unit struct {
	EPSG  int
	Name  string
	Ratio float64
}

// Common units.
var (
	Metre = Unit{EPSG: 9001, Name: "metre", Ratio: 1}
	Foot  = Unit{EPSG: 9002, Name: "foot", Ratio: 0.3048}
)

// Validate reports whether the unit can scale coordinates.
func (u Unit) Validate() error {
	if !(u.Ratio > 0) || math.IsInf(u.Ratio, 0) {
		return fmt.Errorf("%w: unit %q ratio must be positive", ErrInvalidParameter, u.Name)
	}
	return nil
}

func (u Unit) String() string {
	return fmt.Sprintf("<Unit epsg=%d ratio=%g>", u.EPSG, u.Ratio)
}
