package geodesy

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// DMS is an angle split into degrees, minutes and seconds. Sign is -1 for
// negative angles and 1 otherwise; the other fields are magnitudes.
type DMS struct {
	Sign   int
	Degree int
	Minute int
	Second float64
}

// ToDMS decomposes an angle in degrees, reduced modulo 360. Seconds that
// would print as 60 carry into the minutes, and minutes into the degrees.
func ToDMS(degrees float64) DMS {
	sign, value := splitSign(degrees)
	d := math.Floor(value)
	minutes := (value - d) * 60
	seconds := (minutes - math.Floor(minutes)) * 60
	minutes = math.Floor(minutes)

	if roundsUp(seconds, 1e3) {
		seconds = 0
		minutes++
	}
	if minutes >= 60 {
		minutes = 0
		d++
	}
	return DMS{Sign: sign, Degree: int(d), Minute: int(minutes), Second: seconds}
}

// Degrees recomposes the angle.
func (d DMS) Degrees() float64 {
	return float64(signOf(d.Sign)) * (float64(d.Degree) + float64(d.Minute)/60 + d.Second/3600)
}

func (d DMS) String() string {
	return fmt.Sprintf("%c%03d°%02d'%06.3f\"", signRune(d.Sign), d.Degree, d.Minute, d.Second)
}

// DMM is an angle split into degrees and decimal minutes.
type DMM struct {
	Sign   int
	Degree int
	Minute float64
}

// ToDMM decomposes an angle in degrees, reduced modulo 360. Minutes that
// would print as 60 carry into the degrees.
func ToDMM(degrees float64) DMM {
	sign, value := splitSign(degrees)
	d := math.Floor(value)
	minutes := (value - d) * 60
	if roundsUp(minutes, 1e6) {
		minutes = 0
		d++
	}
	return DMM{Sign: sign, Degree: int(d), Minute: minutes}
}

// Degrees recomposes the angle.
func (d DMM) Degrees() float64 {
	return float64(signOf(d.Sign)) * (float64(d.Degree) + d.Minute/60)
}

func (d DMM) String() string {
	return fmt.Sprintf("%c%03d°%09.6f'", signRune(d.Sign), d.Degree, d.Minute)
}

// roundsUp reports whether v prints as 60 once rounded to 1/scale, the
// precision String uses.
func roundsUp(v, scale float64) bool {
	return math.Round(v*scale) >= 60*scale
}

func splitSign(degrees float64) (int, float64) {
	sign := 1
	if degrees < 0 {
		sign = -1
	}
	return sign, math.Mod(math.Abs(degrees), 360)
}

func signOf(sign int) int {
	if sign < 0 {
		return -1
	}
	return 1
}

func signRune(sign int) rune {
	if sign < 0 {
		return '-'
	}
	return '+'
}

// ParseDMS reads an angle written as degrees, optional minutes and optional
// seconds, such as -000°07'37.218", 51 31 5.134 N or 2°21.132'E. Any
// character other than digits and the decimal point separates the fields. A
// leading sign or a trailing hemisphere letter (S and W are negative) sets
// the sign; giving both is an error.
func ParseDMS(s string) (float64, error) {
	str := strings.TrimSpace(s)
	if str == "" {
		return 0, fmt.Errorf("%w: empty angle", ErrInvalidParameter)
	}

	sign := 1.0
	signed := false
	switch str[0] {
	case '-':
		sign, signed = -1, true
		str = str[1:]
	case '+':
		signed = true
		str = str[1:]
	}
	str = strings.TrimSpace(str)
	if n := len(str); n > 0 {
		hemisphere := unicode.ToUpper(rune(str[n-1]))
		switch hemisphere {
		case 'N', 'E', 'S', 'W':
			if signed {
				return 0, fmt.Errorf("%w: both a sign and a hemisphere in %q", ErrInvalidParameter, s)
			}
			if hemisphere == 'S' || hemisphere == 'W' {
				sign = -1
			}
			str = str[:n-1]
		}
	}

	fields := strings.FieldsFunc(str, func(r rune) bool {
		return !unicode.IsDigit(r) && r != '.'
	})
	if len(fields) == 0 || len(fields) > 3 {
		return 0, fmt.Errorf("%w: cannot read angle %q", ErrInvalidParameter, s)
	}

	var parts [3]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: cannot read angle %q: %v", ErrInvalidParameter, s, err)
		}
		// only the last field may carry decimals
		if i < len(fields)-1 && v != math.Trunc(v) {
			return 0, fmt.Errorf("%w: fractional field before the last in %q", ErrInvalidParameter, s)
		}
		parts[i] = v
	}
	if parts[1] >= 60 || parts[2] >= 60 {
		return 0, fmt.Errorf("%w: minutes and seconds must be below 60 in %q", ErrInvalidParameter, s)
	}
	return sign * (parts[0] + parts[1]/60 + parts[2]/3600), nil
}
