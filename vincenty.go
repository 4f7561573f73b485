package geodesy

import (
	"fmt"
	"math"

	"github.com/golang/geo/s1"
)

// Geometric limits of the inverse solver, independent of Solver.Epsilon.
const (
	coincidentSinSigma  = 1e-12 // about 6 µm on the earth
	equatorialCos2Alpha = 1e-12
)

// Course is the solution of the inverse geodesic problem: the length of the
// geodesic between two points and the bearings at both ends.
type Course struct {
	Distance       float64 // meters
	InitialBearing s1.Angle
	FinalBearing   s1.Angle
}

func (c Course) String() string {
	return fmt.Sprintf("<Dist %.3fkm initial bearing=%.1f° final bearing=%.1f°>",
		c.Distance/1000, c.InitialBearing.Degrees(), c.FinalBearing.Degrees())
}

// Waypoint is the solution of the direct geodesic problem: the point reached
// and the bearing held on arrival.
type Waypoint struct {
	Longitude s1.Angle
	Latitude  s1.Angle
	Bearing   s1.Angle
}

// Geodesic returns the waypoint position at zero height.
func (w Waypoint) Geodesic() Geodesic {
	return Geodesic{Longitude: w.Longitude, Latitude: w.Latitude}
}

func (w Waypoint) String() string {
	return fmt.Sprintf("<Dest lon=%s lat=%s end bearing=%.1f°>",
		ToDMS(w.Longitude.Degrees()), ToDMS(w.Latitude.Degrees()), w.Bearing.Degrees())
}

// Distance solves the inverse problem between p0 and p1 with Vincenty's
// formulae and DefaultSolver. Heights are ignored.
func (e Ellipsoid) Distance(p0, p1 Geodesic) Course {
	c, _ := DefaultSolver.Distance(e, p0, p1)
	return c
}

// Destination solves the direct problem: the point reached from start after
// distance meters along the geodesic leaving with bearing.
func (e Ellipsoid) Destination(start Geodesic, bearing s1.Angle, distance float64) Waypoint {
	w, _ := DefaultSolver.Destination(e, start, bearing, distance)
	return w
}

// NPoints returns n+2 waypoints evenly spaced along the geodesic from p0 to
// p1, both ends included.
func (e Ellipsoid) NPoints(p0, p1 Geodesic, n int) ([]Waypoint, error) {
	points, _, err := DefaultSolver.NPoints(e, p0, p1, n)
	return points, err
}

// Distance solves the inverse problem by iterating on the longitude
// difference on the auxiliary sphere. Coincident points short-circuit to a
// zero Course. The Estimate holds the converged longitude difference.
//
// See http://www.movable-type.co.uk/scripts/latlong-vincenty.html
func (s Solver) Distance(e Ellipsoid, p0, p1 Geodesic) (Course, Estimate) {
	f := e.F
	L := (p1.Longitude - p0.Longitude).Radians()
	u1 := math.Atan((1 - f) * math.Tan(p0.Latitude.Radians()))
	u2 := math.Atan((1 - f) * math.Tan(p1.Latitude.Radians()))
	sinU1, cosU1 := math.Sincos(u1)
	sinU2, cosU2 := math.Sincos(u2)

	var (
		sinLambda, cosLambda float64
		sinSigma, cosSigma   float64
		sigma                float64
		cos2Alpha            float64
		cos2SigmaM           float64
		degenerate           bool
	)
	est := s.fixedPoint(solverInverse, L, func(lambda float64) float64 {
		sinLambda, cosLambda = math.Sincos(lambda)
		t := cosU1*sinU2 - sinU1*cosU2*cosLambda
		sinSigma = math.Sqrt(cosU2*sinLambda*cosU2*sinLambda + t*t)
		if sinSigma < coincidentSinSigma {
			degenerate = true
			return lambda
		}
		cosSigma = sinU1*sinU2 + cosU1*cosU2*cosLambda
		sigma = math.Atan2(sinSigma, cosSigma)
		sinAlpha := cosU1 * cosU2 * sinLambda / sinSigma
		cos2Alpha = 1 - sinAlpha*sinAlpha
		if cos2Alpha < equatorialCos2Alpha {
			// equatorial line
			cos2SigmaM = 0
		} else {
			cos2SigmaM = cosSigma - 2*sinU1*sinU2/cos2Alpha
		}
		c := f / 16 * cos2Alpha * (4 + f*(4-3*cos2Alpha))
		return L + (1-c)*f*sinAlpha*(sigma+c*sinSigma*(cos2SigmaM+c*cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)))
	})
	if degenerate {
		return Course{}, est
	}

	u2sq := cos2Alpha * (e.A*e.A - e.B*e.B) / (e.B * e.B)
	k1 := (math.Sqrt(1+u2sq) - 1) / (math.Sqrt(1+u2sq) + 1)
	a := (1 + k1*k1/4) / (1 - k1)
	b := k1 * (1 - 3*k1*k1/8)
	deltaSigma := b * sinSigma * (cos2SigmaM + b/4*(cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)-
		b/6*cos2SigmaM*(-3+4*sinSigma*sinSigma)*(-3+4*cos2SigmaM*cos2SigmaM)))

	return Course{
		Distance:       e.B * a * (sigma - deltaSigma),
		InitialBearing: s1.Angle(math.Atan2(cosU2*sinLambda, cosU1*sinU2-sinU1*cosU2*cosLambda)),
		FinalBearing:   s1.Angle(math.Atan2(cosU1*sinLambda, -sinU1*cosU2+cosU1*sinU2*cosLambda)),
	}, est
}

// Destination solves the direct problem by iterating on the angular distance
// on the auxiliary sphere. The Estimate holds the converged angular
// distance.
//
// See http://www.movable-type.co.uk/scripts/latlong-vincenty-direct.html
func (s Solver) Destination(e Ellipsoid, start Geodesic, bearing s1.Angle, distance float64) (Waypoint, Estimate) {
	f := e.F
	sinAlpha1, cosAlpha1 := math.Sincos(bearing.Radians())
	tanU1 := (1 - f) * math.Tan(start.Latitude.Radians())
	cosU1 := 1 / math.Sqrt(1+tanU1*tanU1)
	sinU1 := tanU1 * cosU1
	sigma1 := math.Atan2(tanU1, cosAlpha1)
	sinAlpha := cosU1 * sinAlpha1
	cos2Alpha := 1 - sinAlpha*sinAlpha
	u2 := cos2Alpha * (e.A*e.A - e.B*e.B) / (e.B * e.B)
	a := 1 + u2/16384*(4096+u2*(-768+u2*(320-175*u2)))
	b := u2 / 1024 * (256 + u2*(-128+u2*(74-47*u2)))

	var sinSigma, cosSigma, cos2SigmaM float64
	est := s.fixedPoint(solverDirect, distance/(e.B*a), func(sigma float64) float64 {
		cos2SigmaM = math.Cos(2*sigma1 + sigma)
		sinSigma, cosSigma = math.Sincos(sigma)
		deltaSigma := b * sinSigma * (cos2SigmaM + b/4*(cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)-
			b/6*cos2SigmaM*(-3+4*sinSigma*sinSigma)*(-3+4*cos2SigmaM*cos2SigmaM)))
		return distance/(e.B*a) + deltaSigma
	})
	sigma := est.Value

	t := sinU1*sinSigma - cosU1*cosSigma*cosAlpha1
	phi2 := math.Atan2(sinU1*cosSigma+cosU1*sinSigma*cosAlpha1, (1-f)*math.Sqrt(sinAlpha*sinAlpha+t*t))
	lambda := math.Atan2(sinSigma*sinAlpha1, cosU1*cosSigma-sinU1*sinSigma*cosAlpha1)
	c := f / 16 * cos2Alpha * (4 + f*(4-3*cos2Alpha))
	L := lambda - (1-c)*f*sinAlpha*(sigma+c*sinSigma*(cos2SigmaM+c*cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)))

	return Waypoint{
		Longitude: (start.Longitude + s1.Angle(L)).Normalized(),
		Latitude:  s1.Angle(phi2),
		Bearing:   s1.Angle(math.Atan2(sinAlpha, -t)),
	}, est
}

// NPoints solves the inverse problem once, then walks from p0 towards p1 in
// n+1 equal steps, each step leaving with the bearing the previous one
// arrived with. The result always has n+2 elements, the first being p0.
// The returned Estimate sums the iterations of every solver call, its Value
// is the total distance and Converged is false if any call hit the cap.
func (s Solver) NPoints(e Ellipsoid, p0, p1 Geodesic, n int) ([]Waypoint, Estimate, error) {
	if n < 0 {
		return nil, Estimate{}, fmt.Errorf("%w: number of intermediate points must not be negative", ErrInvalidParameter)
	}
	course, est := s.Distance(e, p0, p1)
	total := Estimate{Value: course.Distance, Converged: est.Converged, Iterations: est.Iterations}
	step := course.Distance / float64(n+1)

	points := make([]Waypoint, n+2)
	w := Waypoint{Longitude: p0.Longitude, Latitude: p0.Latitude, Bearing: course.InitialBearing}
	points[0] = w
	for i := 1; i < n+2; i++ {
		w, est = s.Destination(e, w.Geodesic(), w.Bearing, step)
		total.Converged = total.Converged && est.Converged
		total.Iterations += est.Iterations
		points[i] = w
	}
	return points, total, nil
}
