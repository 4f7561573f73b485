package geodesy_test

import (
	"fmt"

	"github.com/tzneal/geodesy"
)

func ExampleEllipsoid_Distance() {
	london := geodesy.GeodesicFromDegrees(-0.127005, 51.518602, 0)
	dublin := geodesy.GeodesicFromDegrees(-6.259437, 53.350765, 0)
	course := geodesy.WGS84.Distance(london, dublin)
	fmt.Println(course)
	// Output: <Dist 464.025km initial bearing=-61.5° final bearing=-66.4°>
}

func ExampleCRS_Project() {
	bng, _ := geodesy.DefaultCatalog().CRS(27700)
	xy, _ := bng.Project(geodesy.GeodesicFromDegrees(-0.127005, 51.518602, 0))
	fmt.Printf("%.1f %.1f\n", xy.X, xy.Y)
	// Output: 529939.1 181681.0
}

func ExampleToDMS() {
	fmt.Println(geodesy.ToDMS(-0.127005))
	// Output: -000°07'37.218"
}

func ExampleParseDMS() {
	lat, _ := geodesy.ParseDMS("51 31 5.134 N")
	fmt.Printf("%.6f\n", lat)
	// Output: 51.518093
}
